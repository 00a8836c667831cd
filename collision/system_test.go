package collision

import (
	"testing"

	"github.com/automoto/slopecollide/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tileList is a brute force TileSource.
type tileList []Tile

func (l tileList) TilesOverlapping(area gamemath.Box) []Tile {
	var out []Tile
	for _, tile := range l {
		if Intersects(area, tile.Box) {
			out = append(out, tile)
		}
	}
	return out
}

func (l tileList) translate(v mgl64.Vec2) {
	for i := range l {
		l[i].Box.Move(v)
		l[i].Slope.Box.Move(v)
	}
}

func floor(y float64, attributes uint32) tileList {
	return tileList{
		{Box: box(0, y, 32, y+32), Attributes: attributes},
		{Box: box(32, y, 64, y+32), Attributes: attributes},
	}
}

const eps = 0.002

func TestFallingBodyLandsOnFloor(t *testing.T) {
	sys := newTestSystem()
	tm := sys.AddTileMap(floor(64, TileSolid))
	r := &recorder{}
	body := sys.Spawn(r, Moving, box(8, 40, 24, 56))

	body.SetMovement(mgl64.Vec2{0, 10})
	sys.Update()

	assert.InDelta(t, 64-eps, body.BBox().Bottom(), 1e-9)
	assert.InDelta(t, 8, body.BBox().Left(), 1e-9)
	assert.Equal(t, mgl64.Vec2{}, body.Movement())
	require.Len(t, r.solids, 1)
	assert.True(t, r.solids[0].Bottom())
	assert.Equal(t, []*Object{body}, tm.Riders())
}

func TestBodyStopsAtWall(t *testing.T) {
	sys := newTestSystem()
	sys.AddTileMap(tileList{{Box: box(64, 0, 96, 32), Attributes: TileSolid}})
	r := &recorder{}
	body := sys.Spawn(r, Moving, box(40, 8, 56, 24))

	body.SetMovement(mgl64.Vec2{10, 0})
	sys.Update()

	assert.InDelta(t, 64-eps, body.BBox().Right(), 1e-9)
	assert.InDelta(t, 8, body.BBox().Top(), 1e-9)
	require.Len(t, r.solids, 1)
	assert.True(t, r.solids[0].Right())
}

func TestMovementIsClampedToMaxSpeed(t *testing.T) {
	sys := newTestSystem()
	body := sys.Spawn(&recorder{}, Moving, box(0, 0, 1, 1))

	body.SetMovement(mgl64.Vec2{0, 100})
	sys.Update()

	assert.InDelta(t, DefaultSettings().MaxSpeed, body.BBox().Top(), 1e-9)
}

func TestSlopeLiftsBodyVertically(t *testing.T) {
	sys := newTestSystem()
	sys.AddTileMap(tileList{NewSlopeTile(southWest32(), TileSolid)})
	r := &recorder{}
	body := sys.Spawn(r, Moving, box(8, -6, 16, 2))

	body.SetMovement(mgl64.Vec2{0, 10})
	sys.Update()

	// The surface of the slope is at y=8 for x=8.
	assert.InDelta(t, 8-eps, body.BBox().Bottom(), 1e-9)
	assert.InDelta(t, 8, body.BBox().Left(), 1e-9)
	require.Len(t, r.solids, 1)
	assert.True(t, r.solids[0].Bottom())
	assert.NotZero(t, r.solids[0].Normal.X())
}

func TestUnisolidTiles(t *testing.T) {
	t.Run("passable from below", func(t *testing.T) {
		sys := newTestSystem()
		sys.AddTileMap(floor(64, TileSolid|TileUnisolid))
		r := &recorder{}
		body := sys.Spawn(r, Moving, box(8, 70, 24, 86))

		body.SetMovement(mgl64.Vec2{0, -10})
		sys.Update()

		assert.InDelta(t, 60, body.BBox().Top(), 1e-9)
		assert.Empty(t, r.solids)
	})

	t.Run("solid from above", func(t *testing.T) {
		sys := newTestSystem()
		sys.AddTileMap(floor(64, TileSolid|TileUnisolid))
		body := sys.Spawn(&recorder{}, Moving, box(8, 40, 24, 56))

		body.SetMovement(mgl64.Vec2{0, 10})
		sys.Update()

		assert.InDelta(t, 64-eps, body.BBox().Bottom(), 1e-9)
	})
}

func TestUnisolidObjectOnlyBlocksFromAbove(t *testing.T) {
	sys := newTestSystem()
	ledge := sys.Spawn(&recorder{}, Static, box(0, 64, 64, 72))
	ledge.SetUnisolid(true)
	rising := sys.Spawn(&recorder{}, Moving, box(0, 74, 8, 82))
	falling := sys.Spawn(&recorder{}, Moving, box(32, 50, 40, 58))

	rising.SetMovement(mgl64.Vec2{0, -10})
	falling.SetMovement(mgl64.Vec2{0, 10})
	sys.Update()

	assert.InDelta(t, 64, rising.BBox().Top(), 1e-9)
	assert.InDelta(t, 64-eps, falling.BBox().Bottom(), 1e-9)
	assert.Equal(t, []*Object{falling}, ledge.Riders())
}

func TestBodyRidesRisingPlatform(t *testing.T) {
	sys := newTestSystem()
	platform := sys.Spawn(&recorder{}, MovingStatic, box(0, 100, 64, 116))
	r := &recorder{}
	body := sys.Spawn(r, Moving, box(16, 84, 32, 100))

	for i := 0; i < 10; i++ {
		body.AddMovement(mgl64.Vec2{0, 1})
		platform.SetMovement(mgl64.Vec2{0, -2})
		platform.PropagateMovement(mgl64.Vec2{0, -2})
		sys.Update()

		require.InDelta(t, platform.BBox().Top()-eps, body.BBox().Bottom(), 1e-6, "frame %d", i)
	}
	assert.InDelta(t, 80, platform.BBox().Top(), 1e-9)
	assert.Equal(t, []*Object{body}, platform.Riders())
	assert.Len(t, r.solids, 10)
}

func TestBodyRidesMovingTileMap(t *testing.T) {
	sys := newTestSystem()
	tiles := floor(64, TileSolid)
	tm := sys.AddTileMap(tiles)
	body := sys.Spawn(&recorder{}, Moving, box(8, 40, 24, 56))

	body.SetMovement(mgl64.Vec2{0, 10})
	sys.Update()
	require.Equal(t, []*Object{body}, tm.Riders())

	lift := mgl64.Vec2{0, -2}
	tiles.translate(lift)
	tm.SetMovement(lift)
	tm.PropagateMovement(lift)
	body.AddMovement(mgl64.Vec2{0, 1})
	sys.Update()

	assert.InDelta(t, 62-eps, body.BBox().Bottom(), 1e-9)
	assert.Equal(t, []*Object{body}, tm.Riders())
	assert.Equal(t, mgl64.Vec2{}, tm.Movement())
}

func TestMovingPairResponses(t *testing.T) {
	tests := []struct {
		name          string
		ra, rb        Response
		refuse        bool
		aLeft, bLeft  float64
		wantCollision bool
	}{
		{"both continue", Continue, Continue, false, -2 * (0.5 + eps), 8 + 2*(0.5+eps), true},
		{"b forces a out", Continue, ForceMove, false, -2 * (1 + eps), 8, true},
		{"a forces b out", ForceMove, Continue, false, 0, 8 + 2*(1+eps), true},
		{"abort keeps both", AbortMove, Continue, false, 0, 8, true},
		{"refused contact", Continue, Continue, true, 0, 8, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := newTestSystem()
			ra := &recorder{response: tt.ra, refuse: tt.refuse}
			rb := &recorder{response: tt.rb}
			a := sys.Spawn(ra, Moving, box(0, 0, 10, 10))
			b := sys.Spawn(rb, Moving, box(8, 0, 18, 10))

			sys.Update()

			assert.InDelta(t, tt.aLeft, a.BBox().Left(), 1e-9)
			assert.InDelta(t, tt.bLeft, b.BBox().Left(), 1e-9)
			assert.Equal(t, tt.wantCollision, len(ra.collisions) == 1)
			assert.Equal(t, tt.wantCollision, len(rb.collisions) == 1)
		})
	}
}

func TestTouchablesAreReportedButNotMoved(t *testing.T) {
	sys := newTestSystem()
	rc, rb := &recorder{}, &recorder{}
	coin := sys.Spawn(rc, Touchable, box(10, 0, 18, 8))
	body := sys.Spawn(rb, Moving, box(0, 0, 8, 8))

	body.SetMovement(mgl64.Vec2{4, 0})
	sys.Update()

	assert.InDelta(t, 4, body.BBox().Left(), 1e-9)
	assert.Equal(t, box(10, 0, 18, 8), coin.BBox())
	require.Len(t, rc.collisions, 1)
	assert.Same(t, rb, rc.collisions[0])
	require.Len(t, rb.collisions, 1)
	assert.Same(t, rc, rb.collisions[0])
}

func TestTileAttributes(t *testing.T) {
	t.Run("ice below and water around", func(t *testing.T) {
		sys := newTestSystem()
		tiles := floor(64, TileSolid|TileIce)
		tiles = append(tiles, Tile{Box: box(0, 32, 32, 64), Attributes: TileWater})
		sys.AddTileMap(tiles)
		r := &recorder{}
		sys.Spawn(r, Moving, box(8, 48-eps, 24, 64-eps))

		sys.Update()

		assert.Equal(t, TileWater|TileIce, r.tiles)
	})

	t.Run("plain solid tiles are not reported", func(t *testing.T) {
		sys := newTestSystem()
		sys.AddTileMap(floor(64, TileSolid))
		r := &recorder{}
		sys.Spawn(r, Moving, box(8, 48-eps, 24, 64-eps))

		sys.Update()

		assert.Zero(t, r.tiles)
	})
}

func TestCrushBetweenStatics(t *testing.T) {
	sys := newTestSystem()
	sys.Spawn(&recorder{}, Static, box(0, 8, 64, 40))
	sys.Spawn(&recorder{}, Static, box(0, -32, 64, 0))
	r := &recorder{}
	body := sys.Spawn(r, Moving, box(0, 0, 16, 16))

	body.SetMovement(mgl64.Vec2{0, 1})
	sys.Update()

	require.NotEmpty(t, r.solids)
	last := r.solids[len(r.solids)-1]
	assert.True(t, last.Crush)
	assert.Greater(t, last.Depth, DefaultSettings().ShiftDelta)
}

func TestAbortedStaticContactIsIgnored(t *testing.T) {
	sys := newTestSystem()
	sys.Spawn(&recorder{response: AbortMove}, Static, box(0, 64, 64, 72))
	r := &recorder{}
	body := sys.Spawn(r, Moving, box(8, 40, 24, 56))

	body.SetMovement(mgl64.Vec2{0, 10})
	sys.Update()

	assert.InDelta(t, 66, body.BBox().Bottom(), 1e-9)
	assert.Empty(t, r.solids)
}

func TestMovingStaticForgiveness(t *testing.T) {
	sys := newTestSystem()
	small := sys.Spawn(&recorder{}, MovingStatic, box(0, 64, 8, 72))
	big := sys.Spawn(&recorder{}, MovingStatic, box(0, 30, 64, 60))

	big.SetMovement(mgl64.Vec2{0, 8})
	sys.Update()

	assert.InDelta(t, 68, big.BBox().Bottom(), 1e-9, "big platforms ignore small ones")
	assert.InDelta(t, 68+eps, small.BBox().Top(), 1e-9, "small ones are pushed aside")
	assert.Equal(t, []*Object{big}, small.Riders())
}

func TestUpdatePrunesOrphanedObjects(t *testing.T) {
	sys := newTestSystem()
	platform := sys.Spawn(&recorder{}, MovingStatic, box(0, 100, 64, 116))
	body := sys.Spawn(&recorder{}, Moving, box(16, 84, 32, 100))
	platform.CollisionMovingObjectBottom(body)

	sys.World().Remove(body.Entity())
	sys.Update()

	assert.Equal(t, []*Object{platform}, sys.Objects())
	assert.Empty(t, platform.riders)
}

func TestQueries(t *testing.T) {
	sys := newTestSystem()
	tiles := floor(64, TileSolid)
	tiles = append(tiles,
		NewSlopeTile(gamemath.NewSlope(box(64, 32, 96, 64), gamemath.SouthEast, gamemath.DeformNone), TileSolid),
		Tile{Box: box(96, 32, 128, 40), Attributes: TileSolid | TileUnisolid},
	)
	sys.AddTileMap(tiles)
	wall := sys.Spawn(&recorder{}, Static, box(200, 0, 210, 64))
	platform := sys.Spawn(&recorder{}, MovingStatic, box(300, 0, 340, 8))
	body := sys.Spawn(&recorder{}, Moving, box(400, 0, 410, 10))

	t.Run("tiles", func(t *testing.T) {
		assert.True(t, sys.IsFreeOfTiles(box(0, 0, 16, 64), false))
		assert.False(t, sys.IsFreeOfTiles(box(0, 60, 16, 70), false))
		assert.True(t, sys.IsFreeOfTiles(box(64, 32, 72, 40), false), "above the slope surface")
		assert.False(t, sys.IsFreeOfTiles(box(88, 50, 94, 62), false), "below the slope surface")
		assert.False(t, sys.IsFreeOfTiles(box(100, 34, 110, 38), false))
		assert.True(t, sys.IsFreeOfTiles(box(100, 34, 110, 38), true))
		assert.False(t, sys.IsFreeOfTileType(box(0, 60, 16, 70), false, TileSolid|TileIce))
		assert.True(t, sys.IsFreeOfTileType(box(0, 60, 16, 70), false, TileIce))
	})

	t.Run("objects", func(t *testing.T) {
		assert.False(t, sys.IsFreeOfStatics(box(195, 10, 205, 20), nil, false))
		assert.True(t, sys.IsFreeOfStatics(box(195, 10, 205, 20), wall, false))
		assert.True(t, sys.IsFreeOfStatics(box(310, 2, 320, 6), nil, false), "moving statics are not statics")
		assert.False(t, sys.IsFreeOfMovingStatics(box(310, 2, 320, 6), nil))
		assert.False(t, sys.IsFreeOfMovingStatics(box(402, 2, 404, 4), nil))
		assert.True(t, sys.IsFreeOfMovingStatics(box(402, 2, 404, 4), body))
		assert.False(t, sys.IsFreeOfSpecificallyMovingStatics(box(310, 2, 320, 6), nil))
		assert.True(t, sys.IsFreeOfSpecificallyMovingStatics(box(195, 10, 205, 20), nil))
	})

	t.Run("line of sight", func(t *testing.T) {
		assert.True(t, sys.FreeLineOfSight(mgl64.Vec2{0, 10}, mgl64.Vec2{60, 10}, false, nil))
		assert.False(t, sys.FreeLineOfSight(mgl64.Vec2{10, 10}, mgl64.Vec2{10, 80}, false, nil))

		res, hit := sys.FirstLineIntersection(mgl64.Vec2{150, 20}, mgl64.Vec2{250, 20}, false, nil)
		require.True(t, hit)
		assert.Same(t, wall, res.Object)
		assert.Nil(t, res.Tile)

		assert.True(t, sys.FreeLineOfSight(mgl64.Vec2{150, 20}, mgl64.Vec2{250, 20}, true, nil))
		assert.True(t, sys.FreeLineOfSight(mgl64.Vec2{150, 20}, mgl64.Vec2{250, 20}, false, wall))

		res, hit = sys.FirstLineIntersection(mgl64.Vec2{90, 0}, mgl64.Vec2{90, 60}, true, nil)
		require.True(t, hit)
		require.NotNil(t, res.Tile)
		assert.True(t, res.Tile.IsSlope())
	})

	t.Run("nearby", func(t *testing.T) {
		near := sys.NearbyObjects(mgl64.Vec2{320, 20}, 15)
		assert.Equal(t, []*Object{platform}, near)
		assert.Equal(t, []*Object{wall, platform, body}, sys.NearbyObjects(mgl64.Vec2{300, 5}, 100), "edge distance is inclusive")
		assert.Equal(t, []*Object{wall, platform}, sys.NearbyObjects(mgl64.Vec2{300, 20}, 100), "body corner is 100.5 away")
	})
}

func runScenario(frames int) []uint64 {
	sys := newTestSystem()
	sys.AddTileMap(floor(128, TileSolid))
	platform := sys.Spawn(&recorder{}, MovingStatic, box(0, 100, 48, 108))
	bodies := []*Object{
		sys.Spawn(&recorder{}, Moving, box(4, 60, 20, 76)),
		sys.Spawn(&recorder{}, Moving, box(30, 40, 46, 56)),
		sys.Spawn(&recorder{}, Moving, box(50, 0, 62, 12)),
	}

	digests := make([]uint64, 0, frames)
	for i := 0; i < frames; i++ {
		for _, b := range bodies {
			b.AddMovement(mgl64.Vec2{0.5, 2})
		}
		v := mgl64.Vec2{0, -1}
		if (i/10)%2 == 1 {
			v = mgl64.Vec2{0, 1}
		}
		platform.SetMovement(v)
		platform.PropagateMovement(v)
		sys.Update()
		digests = append(digests, sys.Digest())
	}
	return digests
}

func TestDigestIsReproducible(t *testing.T) {
	first := runScenario(40)
	second := runScenario(40)

	assert.Equal(t, first, second)
	assert.NotEqual(t, first[0], first[len(first)-1])
}
