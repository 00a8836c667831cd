package factory

import (
	"math"

	"github.com/automoto/slopecollide/collision"
	"github.com/automoto/slopecollide/components"
	"github.com/automoto/slopecollide/tags"
	"github.com/yohamta/donburi"
)

// entityListener turns collision callbacks into component updates of one
// entity.
type entityListener struct {
	world  donburi.World
	entity donburi.Entity
}

var _ collision.Listener = (*entityListener)(nil)

func newListener(w donburi.World, e *donburi.Entry) *entityListener {
	return &entityListener{world: w, entity: e.Entity()}
}

func (l *entityListener) entry() (*donburi.Entry, bool) {
	if !l.world.Valid(l.entity) {
		return nil, false
	}
	return l.world.Entry(l.entity), true
}

func (l *entityListener) CollisionSolid(hit collision.Hit) {
	e, ok := l.entry()
	if !ok || !e.HasComponent(components.Physics) {
		return
	}
	physics := components.Physics.Get(e)

	switch {
	case hit.Bottom():
		physics.OnGround = true
		if physics.Velocity.Y() > 0 {
			physics.Velocity[1] = 0
		}
	case hit.Top():
		if physics.Velocity.Y() < 0 {
			physics.Velocity[1] = 0
		}
	}

	// Walls turn walking bodies around
	if math.Abs(hit.Normal.X()) > 0.9 {
		physics.Velocity[0] = 0
		if (hit.Right() && physics.Walk > 0) || (hit.Left() && physics.Walk < 0) {
			physics.Walk = -physics.Walk
		}
	}

	if hit.Crush {
		physics.Crushed = true
	}
}

func (l *entityListener) Collides(other collision.Listener, hit collision.Hit) bool {
	e, ok := l.entry()
	if !ok {
		return false
	}
	if e.HasComponent(components.Collectible) {
		return !components.Collectible.Get(e).Collected
	}
	return true
}

func (l *entityListener) Collision(other collision.Listener, hit collision.Hit) collision.Response {
	e, ok := l.entry()
	if !ok {
		return collision.AbortMove
	}

	o, ok := other.(*entityListener)
	if !ok {
		return collision.Continue
	}
	oe, ok := o.entry()
	if !ok {
		return collision.AbortMove
	}

	switch {
	case e.HasComponent(tags.Coin) && oe.HasComponent(tags.Body):
		l.collect(e)
	case e.HasComponent(tags.Body) && oe.HasComponent(tags.Body):
		// Bodies bump into each other and walk away
		physics := components.Physics.Get(e)
		if (hit.Right() && physics.Walk > 0) || (hit.Left() && physics.Walk < 0) {
			physics.Walk = -physics.Walk
		}
	}
	return collision.Continue
}

func (l *entityListener) collect(e *donburi.Entry) {
	coin := components.Collectible.Get(e)
	if coin.Collected {
		return
	}
	coin.Collected = true

	if level, ok := components.GetLevel(l.world); ok {
		components.Level.Get(level).Score += coin.Value
	}
}

func (l *entityListener) CollisionTile(attributes uint32) {
	e, ok := l.entry()
	if !ok || !e.HasComponent(components.Physics) {
		return
	}
	components.Physics.Get(e).OnIce = attributes&collision.TileIce != 0
}

func (l *entityListener) IsValid() bool {
	e, ok := l.entry()
	if !ok {
		return false
	}
	if e.HasComponent(components.Collectible) {
		return !components.Collectible.Get(e).Collected
	}
	return true
}
