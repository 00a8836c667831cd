package collision

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
)

// recorder is a Listener that remembers what the engine told it.
type recorder struct {
	solids     []Hit
	collisions []Listener
	tiles      uint32
	response   Response
	refuse     bool
	dead       bool
}

func (r *recorder) CollisionSolid(hit Hit)                { r.solids = append(r.solids, hit) }
func (r *recorder) Collides(other Listener, hit Hit) bool { return !r.refuse }
func (r *recorder) CollisionTile(attributes uint32)       { r.tiles |= attributes }
func (r *recorder) IsValid() bool                         { return !r.dead }

func (r *recorder) Collision(other Listener, hit Hit) Response {
	r.collisions = append(r.collisions, other)
	return r.response
}

func newTestSystem() *System {
	return NewSystem(donburi.NewWorld())
}

func TestObjectForwardsToListener(t *testing.T) {
	sys := newTestSystem()
	ra, rb := &recorder{response: ForceMove}, &recorder{refuse: true}
	a := sys.Spawn(ra, Moving, box(0, 0, 1, 1))
	b := sys.Spawn(rb, Moving, box(2, 0, 3, 1))

	hit := Hit{Depth: 1, Normal: mgl64.Vec2{0, -1}}
	a.CollisionSolid(hit)
	assert.Equal(t, []Hit{hit}, ra.solids)

	assert.True(t, a.Collides(b, hit))
	assert.False(t, b.Collides(a, hit.Flipped()))

	assert.Equal(t, ForceMove, a.Collision(b, hit))
	require.Len(t, ra.collisions, 1)
	assert.Same(t, rb, ra.collisions[0])

	a.CollisionTile(TileIce | TileWater)
	assert.Equal(t, TileIce|TileWater, ra.tiles)
}

func TestCollisionMovingObjectBottomOnlyForObstacles(t *testing.T) {
	sys := newTestSystem()
	platform := sys.Spawn(&recorder{}, MovingStatic, box(0, 10, 10, 12))
	ground := sys.Spawn(&recorder{}, Static, box(0, 20, 10, 22))
	body := sys.Spawn(&recorder{}, Moving, box(0, 0, 4, 10))
	other := sys.Spawn(&recorder{}, Moving, box(0, -4, 4, 0))

	platform.CollisionMovingObjectBottom(body)
	platform.CollisionMovingObjectBottom(body)
	platform.CollisionMovingObjectBottom(platform)
	ground.CollisionMovingObjectBottom(platform)
	body.CollisionMovingObjectBottom(other)

	assert.Equal(t, []*Object{body}, platform.Riders())
	assert.Equal(t, []*Object{platform}, ground.Riders())
	assert.Empty(t, body.Riders())

	platform.ClearBottomCollisionList()
	assert.Empty(t, platform.Riders())
}

func TestPropagationChain(t *testing.T) {
	sys := newTestSystem()
	c := sys.Spawn(&recorder{}, Static, box(0, 20, 10, 30))
	b := sys.Spawn(&recorder{}, MovingStatic, box(0, 10, 10, 20))
	a := sys.Spawn(&recorder{}, Moving, box(0, 0, 10, 10))

	c.CollisionMovingObjectBottom(b)
	b.CollisionMovingObjectBottom(a)

	b.PropagateMovement(mgl64.Vec2{0, -3})
	assert.Equal(t, 1, sys.Ground().Len(), "only a is claimed")

	sys.Ground().ApplyAllGroundMovement()
	assert.Equal(t, mgl64.Vec2{0, -3}, a.Movement())
	assert.Equal(t, mgl64.Vec2{}, b.Movement())
	assert.Equal(t, mgl64.Vec2{}, c.Movement())
}

func TestPropagationIsTransitive(t *testing.T) {
	sys := newTestSystem()
	c := sys.Spawn(&recorder{}, MovingStatic, box(0, 20, 10, 30))
	b := sys.Spawn(&recorder{}, MovingStatic, box(0, 10, 10, 20))
	a := sys.Spawn(&recorder{}, Moving, box(0, 0, 10, 10))
	c.CollisionMovingObjectBottom(b)
	b.CollisionMovingObjectBottom(a)

	c.PropagateMovement(mgl64.Vec2{2, 0})
	sys.Ground().ApplyAllGroundMovement()

	assert.Equal(t, mgl64.Vec2{2, 0}, b.Movement())
	assert.Equal(t, mgl64.Vec2{2, 0}, a.Movement())
}

func TestPropagationStopsAtStaticRiders(t *testing.T) {
	sys := newTestSystem()
	platform := sys.Spawn(&recorder{}, MovingStatic, box(0, 10, 10, 20))
	block := sys.Spawn(&recorder{}, Static, box(0, 0, 10, 10))
	platform.CollisionMovingObjectBottom(block)

	platform.PropagateMovement(mgl64.Vec2{0, -1})
	assert.Zero(t, sys.Ground().Len())
}

func TestPropagationSurvivesCycles(t *testing.T) {
	sys := newTestSystem()
	p1 := sys.Spawn(&recorder{}, MovingStatic, box(0, 0, 10, 10))
	p2 := sys.Spawn(&recorder{}, MovingStatic, box(0, 10, 10, 20))
	p1.CollisionMovingObjectBottom(p2)
	p2.CollisionMovingObjectBottom(p1)

	p1.PropagateMovement(mgl64.Vec2{1, 0})
	assert.Equal(t, 1, sys.Ground().Len())

	sys.Ground().ApplyAllGroundMovement()
	assert.Equal(t, mgl64.Vec2{1, 0}, p2.Movement())
	assert.Equal(t, mgl64.Vec2{}, p1.Movement())
}

func TestRemoveNotifiesOtherObjects(t *testing.T) {
	sys := newTestSystem()
	platform := sys.Spawn(&recorder{}, MovingStatic, box(0, 10, 10, 20))
	body := sys.Spawn(&recorder{}, Moving, box(0, 0, 10, 10))
	tm := sys.AddTileMap(tileList{})
	platform.CollisionMovingObjectBottom(body)
	tm.HitsObjectBottom(body)

	sys.Remove(body)

	assert.False(t, body.IsValid())
	assert.Empty(t, platform.riders)
	assert.Empty(t, tm.riders)
	assert.False(t, sys.World().Valid(body.Entity()))
	assert.Equal(t, []*Object{platform}, sys.Objects())

	sys.Remove(body)
	assert.Len(t, sys.Objects(), 1, "removing twice is a no-op")
}

func TestStaleRidersAreSkipped(t *testing.T) {
	sys := newTestSystem()
	platform := sys.Spawn(&recorder{}, MovingStatic, box(0, 10, 10, 20))
	body := sys.Spawn(&recorder{}, Moving, box(0, 0, 10, 10))
	platform.CollisionMovingObjectBottom(body)

	sys.World().Remove(body.Entity())

	assert.Empty(t, platform.Riders())
	platform.PropagateMovement(mgl64.Vec2{0, -1})
	assert.Zero(t, sys.Ground().Len())
}

func TestAttachLeavesEntityAlive(t *testing.T) {
	sys := newTestSystem()
	owned := donburi.NewTag().SetName("Owned")
	e := sys.World().Create(owned)
	o := sys.Attach(e, &recorder{}, Touchable, box(0, 0, 1, 1))

	assert.Same(t, o, sys.Lookup(e))
	sys.Remove(o)

	assert.True(t, sys.World().Valid(e))
	assert.True(t, sys.World().Entry(e).HasComponent(owned))
	assert.False(t, sys.World().Entry(e).HasComponent(ObjectComponent))
	assert.Nil(t, sys.Lookup(e))
	assert.False(t, o.IsValid())
}

func TestIsValidFollowsListener(t *testing.T) {
	sys := newTestSystem()
	r := &recorder{}
	o := sys.Spawn(r, Moving, box(0, 0, 1, 1))
	assert.True(t, o.IsValid())

	r.dead = true
	assert.False(t, o.IsValid())
}

func TestSetPosAndSize(t *testing.T) {
	sys := newTestSystem()
	o := sys.Spawn(&recorder{}, Moving, box(0, 0, 4, 4))

	o.SetPos(mgl64.Vec2{10, 20})
	assert.Equal(t, box(10, 20, 14, 24), o.BBox())
	assert.Equal(t, mgl64.Vec2{10, 20}, o.Pos())

	o.SetSize(2, 8)
	assert.Equal(t, box(10, 20, 12, 28), o.BBox())
	assert.Panics(t, func() { o.SetSize(-1, 2) })
}
