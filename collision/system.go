package collision

import (
	"math"
	"slices"

	"github.com/automoto/slopecollide/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"go.uber.org/zap"
)

// Settings tunes the resolution pipeline.
type Settings struct {
	// MaxSpeed caps the length of an object's movement per Update.
	MaxSpeed float64
	// Epsilon is the gap kept between an object and the surface it was
	// pushed out of.
	Epsilon float64
	// ShiftDelta extends the ice probe below an object and is the remaining
	// penetration above which a wedged object is reported as crushed.
	ShiftDelta float64
	// Forgiveness is the area by which a MovingStatic object may exceed
	// another MovingStatic before it stops treating it as an obstacle.
	Forgiveness float64
	// ResolvePasses bounds the resolutions per phase of the static pass.
	ResolvePasses int
}

func DefaultSettings() Settings {
	return Settings{
		MaxSpeed:      16,
		Epsilon:       0.002,
		ShiftDelta:    7,
		Forgiveness:   256,
		ResolvePasses: 2,
	}
}

type Option func(*System)

func WithLogger(l *zap.Logger) Option {
	return func(s *System) { s.log = l }
}

func WithSettings(settings Settings) Option {
	return func(s *System) { s.settings = settings }
}

// ObjectComponent links an entity to its collision object.
var ObjectComponent = donburi.NewComponentType[*Object]()

// TileMapComponent links an entity to a registered tile layer.
var TileMapComponent = donburi.NewComponentType[*TileMap]()

// System owns every collision object and tile layer of one world and moves
// them once per Update. Objects live on donburi entities, so a handle to a
// removed object resolves to nil instead of a stale object.
type System struct {
	world    donburi.World
	settings Settings
	log      *zap.Logger

	objects  []*Object
	tilemaps []*TileMap
	ground   *GroundMovementManager
}

func NewSystem(world donburi.World, opts ...Option) *System {
	s := &System{
		world:    world,
		settings: DefaultSettings(),
		log:      zap.NewNop(),
		ground:   NewGroundMovementManager(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *System) World() donburi.World            { return s.world }
func (s *System) Settings() Settings              { return s.settings }
func (s *System) Ground() *GroundMovementManager  { return s.ground }
func (s *System) TileMaps() []*TileMap            { return s.tilemaps }
func (s *System) Objects() []*Object              { return s.objects }
func (s *System) Lookup(e donburi.Entity) *Object { return s.lookup(e) }
func (s *System) SetLogger(l *zap.Logger)         { s.log = l }
func (s *System) SetSettings(settings Settings)   { s.settings = settings }

// Spawn creates an entity owning a new collision object.
func (s *System) Spawn(listener Listener, group Group, bbox gamemath.Box) *Object {
	e := s.world.Create(ObjectComponent)
	o := s.bind(e, listener, group, bbox)
	o.owned = true
	return o
}

// Attach makes an existing entity collidable. Removing the object later
// leaves the entity alive.
func (s *System) Attach(e donburi.Entity, listener Listener, group Group, bbox gamemath.Box) *Object {
	entry := s.world.Entry(e)
	if !entry.HasComponent(ObjectComponent) {
		entry.AddComponent(ObjectComponent)
	}
	return s.bind(e, listener, group, bbox)
}

func (s *System) bind(e donburi.Entity, listener Listener, group Group, bbox gamemath.Box) *Object {
	o := &Object{
		entity:   e,
		sys:      s,
		listener: listener,
		bbox:     bbox,
		dest:     bbox,
		group:    group,
	}
	ObjectComponent.SetValue(s.world.Entry(e), o)
	s.objects = append(s.objects, o)
	return o
}

// Remove unregisters o and drops it from every rider list.
func (s *System) Remove(o *Object) {
	if s.lookup(o.entity) != o {
		return
	}
	s.forget(o)
	entry := s.world.Entry(o.entity)
	if o.owned {
		s.world.Remove(o.entity)
	} else {
		entry.RemoveComponent(ObjectComponent)
	}
}

func (s *System) forget(o *Object) {
	s.objects = slices.DeleteFunc(s.objects, func(other *Object) bool { return other == o })
	for _, other := range s.objects {
		other.NotifyObjectRemoval(o)
	}
	for _, tm := range s.tilemaps {
		tm.NotifyObjectRemoval(o)
	}
}

// AddTileMap registers a solid tile layer.
func (s *System) AddTileMap(source TileSource) *TileMap {
	e := s.world.Create(TileMapComponent)
	tm := &TileMap{entity: e, sys: s, source: source}
	TileMapComponent.SetValue(s.world.Entry(e), tm)
	s.tilemaps = append(s.tilemaps, tm)
	return tm
}

// RemoveTileMap unregisters a tile layer.
func (s *System) RemoveTileMap(tm *TileMap) {
	s.tilemaps = slices.DeleteFunc(s.tilemaps, func(other *TileMap) bool { return other == tm })
	if s.world.Valid(tm.entity) {
		s.world.Remove(tm.entity)
	}
}

func (s *System) lookup(e donburi.Entity) *Object {
	if !s.world.Valid(e) {
		return nil
	}
	entry := s.world.Entry(e)
	if !entry.HasComponent(ObjectComponent) {
		return nil
	}
	return *ObjectComponent.Get(entry)
}

// prune drops objects whose entity was destroyed behind the system's back.
func (s *System) prune() {
	for _, o := range slices.Clone(s.objects) {
		if s.lookup(o.entity) == o {
			continue
		}
		s.log.Debug("dropping orphaned collision object",
			zap.Any("entity", o.entity), zap.Stringer("group", o.group))
		s.forget(o)
	}
}

// Update moves every object by its movement, resolving it against tiles,
// obstacles and other objects, and commits the result.
func (s *System) Update() {
	s.prune()
	s.ground.ApplyAllGroundMovement()

	for _, o := range s.objects {
		o.movement = gamemath.ClampLength(o.movement, s.settings.MaxSpeed)
		o.dest = o.bbox.Moved(o.movement)
		o.ClearBottomCollisionList()
	}
	for _, tm := range s.tilemaps {
		tm.clearBottomCollisionList()
	}

	for _, o := range s.objects {
		if o.group.IsMoving() && o.IsValid() {
			s.resolveStatic(o)
		}
	}

	for _, o := range s.objects {
		if !o.group.IsMoving() || !o.IsValid() {
			continue
		}
		if attributes := s.tileAttributes(o.dest); attributes >= FirstInterestingFlag {
			o.CollisionTile(attributes)
		}
	}

	s.touchables()
	s.movingPairs()

	for _, o := range s.objects {
		o.bbox = o.dest
		o.movement = mgl64.Vec2{}
	}
	for _, tm := range s.tilemaps {
		tm.movement = mgl64.Vec2{}
	}
}

// contact is one candidate of the static pass.
type contact struct {
	hit      Hit
	obstacle *Object
	tilemap  *TileMap
}

// resolveStatic pushes o out of tiles and obstacles. The first phase only
// accepts contacts above or below o and moves it straight up or down; the
// second phase accepts every contact and pushes along its normal. Contacts
// are swept with the movement that brought o there, its own movement plus
// every push applied so far, so a push into a second obstacle is measured
// against the push. A contact opposing an earlier one means o is wedged.
func (s *System) resolveStatic(o *Object) {
	excluded := make(map[donburi.Entity]struct{})
	var (
		displaced mgl64.Vec2
		normals   []mgl64.Vec2
		wedged    bool
	)
phases:
	for _, vertical := range []bool{true, false} {
		for pass := 0; pass < s.settings.ResolvePasses; {
			c, ok := s.earliestContact(o, vertical, displaced, excluded)
			if !ok {
				break
			}
			if c.obstacle != nil && !s.acceptObstacle(o, c, excluded) {
				continue
			}
			if opposes(normals, c.hit.Normal) {
				wedged = true
				break phases
			}
			push := s.separation(c.hit, vertical)
			o.dest.Move(push)
			displaced = displaced.Add(push)
			normals = append(normals, c.hit.Normal)
			s.registerBottom(o, c)
			o.CollisionSolid(c.hit)
			pass++
		}
	}
	if wedged || len(normals) > 0 {
		s.checkCrush(o, excluded)
	}
}

func opposes(normals []mgl64.Vec2, n mgl64.Vec2) bool {
	for _, prev := range normals {
		if prev.Dot(n) < -0.9 {
			return true
		}
	}
	return false
}

// acceptObstacle runs the listener handshake for an obstacle contact. A
// refused or aborted contact excludes the obstacle for the rest of the pass.
func (s *System) acceptObstacle(o *Object, c contact, excluded map[donburi.Entity]struct{}) bool {
	other := c.obstacle
	if !o.Collides(other, c.hit) || !other.Collides(o, c.hit.Flipped()) {
		excluded[other.entity] = struct{}{}
		return false
	}
	o.Collision(other, c.hit)
	if other.Collision(o, c.hit.Flipped()) == AbortMove {
		s.log.Debug("static contact aborted",
			zap.Any("entity", o.entity), zap.Any("obstacle", other.entity))
		excluded[other.entity] = struct{}{}
		return false
	}
	return true
}

func (s *System) separation(hit Hit, vertical bool) mgl64.Vec2 {
	if !vertical || hit.Normal.Y() == 0 {
		return hit.Push(s.settings.Epsilon)
	}
	dy := hit.Depth/math.Abs(hit.Normal.Y()) + s.settings.Epsilon
	return mgl64.Vec2{0, math.Copysign(dy, hit.Normal.Y())}
}

func (s *System) registerBottom(o *Object, c contact) {
	switch {
	case c.tilemap != nil && c.hit.Bottom():
		c.tilemap.HitsObjectBottom(o)
	case c.obstacle != nil && c.hit.Bottom():
		c.obstacle.CollisionMovingObjectBottom(o)
	case c.obstacle != nil && c.hit.Top():
		o.CollisionMovingObjectBottom(c.obstacle)
	}
}

// earliestContact returns the contact of o that resolves first. With
// vertical set, contacts beside o are ignored.
func (s *System) earliestContact(o *Object, vertical bool, displaced mgl64.Vec2, excluded map[donburi.Entity]struct{}) (contact, bool) {
	var best contact
	found := false
	consider := func(c contact) {
		if vertical && c.hit.Normal.Y() == 0 {
			return
		}
		if !found || c.hit.Time < best.hit.Time {
			best, found = c, true
		}
	}

	for _, tm := range s.tilemaps {
		rel := o.movement.Sub(tm.movement).Add(displaced)
		prev := o.bbox.Moved(tm.movement)
		for _, tile := range tm.source.TilesOverlapping(o.dest.Grown(s.settings.Epsilon)) {
			if !tile.IsSolid() {
				continue
			}
			hit, ok := tile.Sweep(o.dest, rel)
			if !ok {
				continue
			}
			if tile.IsUnisolid() && !s.landsOnTile(tile, prev, hit) {
				continue
			}
			consider(contact{hit: hit, tilemap: tm})
		}
	}

	for _, other := range s.objects {
		if other == o || !other.group.IsObstacle() || !other.IsValid() {
			continue
		}
		if _, skip := excluded[other.entity]; skip {
			continue
		}
		if o.group == MovingStatic && other.group == MovingStatic &&
			o.bbox.Area() > other.bbox.Area()+s.settings.Forgiveness {
			continue
		}
		hit, ok := BoxVsBox(o.dest, o.movement.Sub(other.movement).Add(displaced), other.dest)
		if !ok {
			continue
		}
		if other.unisolid {
			prev := o.bbox.Moved(other.movement)
			if !hit.Bottom() || prev.Bottom() > other.dest.Top()+s.settings.Epsilon {
				continue
			}
		}
		consider(contact{hit: hit, obstacle: other})
	}
	return best, found
}

// landsOnTile reports whether an object at prev, relative to the tile's
// current position, came from above a unisolid tile.
func (s *System) landsOnTile(tile Tile, prev gamemath.Box, hit Hit) bool {
	if !hit.Bottom() {
		return false
	}
	if tile.IsSlope() {
		return tile.Slope.Depth(tile.Slope.Corner(prev)) <= s.settings.Epsilon
	}
	return prev.Bottom() <= tile.Box.Top()+s.settings.Epsilon
}

// checkCrush reports o as crushed when it is still wedged into solid
// geometry after the static pass.
func (s *System) checkCrush(o *Object, excluded map[donburi.Entity]struct{}) {
	worst := Hit{}
	for _, tm := range s.tilemaps {
		for _, tile := range tm.source.TilesOverlapping(o.dest) {
			if !tile.IsSolid() || tile.IsUnisolid() {
				continue
			}
			if h, ok := penetration(o.dest, tile); ok && h.Depth > worst.Depth {
				worst = h
			}
		}
	}
	for _, other := range s.objects {
		if other == o || !other.group.IsObstacle() || other.unisolid || !other.IsValid() {
			continue
		}
		if _, skip := excluded[other.entity]; skip {
			continue
		}
		if !o.dest.Overlaps(other.dest) {
			continue
		}
		if h := penetrationHit(o.dest, other.dest); h.Depth > worst.Depth {
			worst = h
		}
	}
	if worst.Depth <= s.settings.Epsilon {
		return
	}
	worst.Time = 0
	worst.Crush = worst.Depth > s.settings.ShiftDelta
	if worst.Crush {
		s.log.Debug("object crushed",
			zap.Any("entity", o.entity), zap.Float64("depth", worst.Depth))
	}
	o.CollisionSolid(worst)
}

// penetration measures how deep box reaches into a tile, ignoring movement.
func penetration(box gamemath.Box, tile Tile) (Hit, bool) {
	if !box.Overlaps(tile.Box) {
		return Hit{}, false
	}
	if !tile.IsSlope() {
		return penetrationHit(box, tile.Box), true
	}
	depth := tile.Slope.Depth(tile.Slope.Corner(box))
	if depth <= 0 {
		return Hit{}, false
	}
	normal, _ := tile.Slope.Plane()
	return Hit{Depth: depth, Normal: normal}, true
}

// penetrationHit picks the axis of least penetration between two overlapping
// boxes. The normal points from b towards a.
func penetrationHit(a, b gamemath.Box) Hit {
	itop := a.Bottom() - b.Top()
	ibottom := b.Bottom() - a.Top()
	ileft := a.Right() - b.Left()
	iright := b.Right() - a.Left()

	vert := math.Min(itop, ibottom)
	horiz := math.Min(ileft, iright)
	if vert < horiz {
		if itop < ibottom {
			return Hit{Depth: vert, Normal: mgl64.Vec2{0, -1}}
		}
		return Hit{Depth: vert, Normal: mgl64.Vec2{0, 1}}
	}
	if ileft < iright {
		return Hit{Depth: horiz, Normal: mgl64.Vec2{-1, 0}}
	}
	return Hit{Depth: horiz, Normal: mgl64.Vec2{1, 0}}
}

// contactHit is the penetration hit between two objects seen from a, left
// empty when a unisolid party was not approached from above.
func contactHit(a, b *Object) Hit {
	if a.unisolid && b.dest.Bottom()-b.movement.Y() > a.dest.Top() {
		return Hit{}
	}
	if b.unisolid && a.dest.Bottom()-a.movement.Y() > b.dest.Top() {
		return Hit{}
	}
	return penetrationHit(a.dest, b.dest)
}

// tileAttributes unions the attributes of all tiles touching dest. Tiles
// within ShiftDelta below dest only contribute TileIce.
func (s *System) tileAttributes(dest gamemath.Box) uint32 {
	probe := dest
	probe.P2 = probe.P2.Add(mgl64.Vec2{0, s.settings.ShiftDelta})

	var result uint32
	for _, tm := range s.tilemaps {
		for _, tile := range tm.source.TilesOverlapping(probe) {
			switch {
			case tile.Touches(dest):
				result |= tile.Attributes
			case tile.Touches(probe):
				result |= tile.Attributes & TileIce
			}
		}
	}
	return result
}

// touchables reports overlaps between moving objects and touchable ones.
// Neither side is moved.
func (s *System) touchables() {
	for _, o := range s.objects {
		if (o.group != Moving && o.group != MovingStatic) || !o.IsValid() {
			continue
		}
		for _, t := range s.objects {
			if t.group != Touchable || !t.IsValid() || !o.dest.Overlaps(t.dest) {
				continue
			}
			hit := contactHit(o, t)
			if !o.Collides(t, hit) || !t.Collides(o, hit.Flipped()) {
				continue
			}
			o.Collision(t, hit)
			t.Collision(o, hit.Flipped())
		}
	}
}

// movingPairs separates overlapping moving objects according to both
// listeners' responses.
func (s *System) movingPairs() {
	for i, a := range s.objects {
		if (a.group != Moving && a.group != MovingStatic) || !a.IsValid() {
			continue
		}
		for _, b := range s.objects[i+1:] {
			if (b.group != Moving && b.group != MovingStatic) || !b.IsValid() {
				continue
			}
			if a.dest.Overlaps(b.dest) {
				s.separate(a, b)
			}
		}
	}
}

func (s *System) separate(a, b *Object) {
	hit := contactHit(a, b)
	if !a.Collides(b, hit) || !b.Collides(a, hit.Flipped()) {
		return
	}
	ra := a.Collision(b, hit)
	rb := b.Collision(a, hit.Flipped())

	push := hit.Normal.Mul(hit.Depth)
	switch {
	case ra == Continue && rb == Continue:
		push = push.Mul(0.5 + s.settings.Epsilon)
		a.dest.Move(push)
		b.dest.Move(push.Mul(-1))
	case ra == Continue && rb == ForceMove:
		a.dest.Move(push.Mul(1 + s.settings.Epsilon))
	case ra == ForceMove && rb == Continue:
		b.dest.Move(push.Mul(-(1 + s.settings.Epsilon)))
	default:
		s.log.Debug("moving contact left unresolved",
			zap.Any("entity", a.entity), zap.Any("other", b.entity),
			zap.Stringer("response", ra), zap.Stringer("other_response", rb))
	}
}
