package collision

import (
	"slices"

	"github.com/automoto/slopecollide/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// Object binds a Listener to a bounding box, a movement for the current step
// and a collision group. Objects are owned by a System and identified by a
// donburi entity; references between objects are entity handles, so a
// removed object is never reached through a stale pointer.
type Object struct {
	entity   donburi.Entity
	sys      *System
	listener Listener
	owned    bool

	// bbox is the committed position, dest the position anticipated during
	// the current Update.
	bbox     gamemath.Box
	dest     gamemath.Box
	movement mgl64.Vec2
	group    Group
	unisolid bool

	// riders holds the objects detected standing on top of this one during
	// the last Update.
	riders []donburi.Entity
}

func (o *Object) Entity() donburi.Entity { return o.entity }
func (o *Object) Listener() Listener     { return o.listener }
func (o *Object) BBox() gamemath.Box     { return o.bbox }
func (o *Object) Dest() gamemath.Box     { return o.dest }
func (o *Object) Movement() mgl64.Vec2   { return o.movement }
func (o *Object) Group() Group           { return o.group }
func (o *Object) Unisolid() bool         { return o.unisolid }
func (o *Object) Pos() mgl64.Vec2        { return o.bbox.P1 }

func (o *Object) SetGroup(g Group)          { o.group = g }
func (o *Object) SetUnisolid(unisolid bool) { o.unisolid = unisolid }

// SetMovement sets the displacement for the next Update.
func (o *Object) SetMovement(m mgl64.Vec2) { o.movement = m }

// AddMovement adds to the displacement for the next Update.
func (o *Object) AddMovement(m mgl64.Vec2) { o.movement = o.movement.Add(m) }

// SetPos places the object without any collision checks.
func (o *Object) SetPos(pos mgl64.Vec2) {
	o.dest.Move(pos.Sub(o.bbox.P1))
	o.bbox.SetPos(pos)
}

// SetSize resizes the object without any collision checks.
func (o *Object) SetSize(w, h float64) {
	o.dest.SetSize(w, h)
	o.bbox.SetSize(w, h)
}

// Riders returns the live objects currently resting on top of o.
func (o *Object) Riders() []*Object {
	riders := make([]*Object, 0, len(o.riders))
	for _, e := range o.riders {
		if r := o.sys.lookup(e); r != nil {
			riders = append(riders, r)
		}
	}
	return riders
}

// CollisionSolid forwards a solid contact to the listener.
func (o *Object) CollisionSolid(hit Hit) {
	o.listener.CollisionSolid(hit)
}

// Collides asks the listener whether a contact with other is processed.
func (o *Object) Collides(other *Object, hit Hit) bool {
	return o.listener.Collides(other.listener, hit)
}

// Collision forwards a contact with other and returns the listener's answer.
func (o *Object) Collision(other *Object, hit Hit) Response {
	return o.listener.Collision(other.listener, hit)
}

// CollisionTile forwards touched tile attributes to the listener.
func (o *Object) CollisionTile(attributes uint32) {
	o.listener.CollisionTile(attributes)
}

// CollisionMovingObjectBottom records that other landed on top of o. Only
// Static and MovingStatic objects carry riders.
func (o *Object) CollisionMovingObjectBottom(other *Object) {
	if !o.group.IsObstacle() || other == o {
		return
	}
	if !slices.Contains(o.riders, other.entity) {
		o.riders = append(o.riders, other.entity)
	}
}

// NotifyObjectRemoval forgets other as a rider.
func (o *Object) NotifyObjectRemoval(other *Object) {
	o.riders = slices.DeleteFunc(o.riders, func(e donburi.Entity) bool {
		return e == other.entity
	})
}

// ClearBottomCollisionList forgets every rider. The static pass of each
// Update refills the list.
func (o *Object) ClearBottomCollisionList() {
	o.riders = o.riders[:0]
}

// PropagateMovement hands movement to everything resting on o, transitively.
// Each non-static rider gets a ground movement claim from o and then passes
// the movement on to its own riders; Static riders end the chain.
func (o *Object) PropagateMovement(movement mgl64.Vec2) {
	visited := map[donburi.Entity]struct{}{o.entity: {}}
	o.propagate(movement, visited)
}

func (o *Object) propagate(movement mgl64.Vec2, visited map[donburi.Entity]struct{}) {
	for _, e := range o.riders {
		rider := o.sys.lookup(e)
		if rider == nil || rider.group == Static {
			continue
		}
		if _, seen := visited[e]; seen {
			continue
		}
		visited[e] = struct{}{}
		o.sys.ground.RegisterMovement(o, rider, movement)
		rider.propagate(movement, visited)
	}
}

// IsValid reports whether the object is still registered and its listener
// alive.
func (o *Object) IsValid() bool {
	return o.sys.lookup(o.entity) == o && o.listener.IsValid()
}
