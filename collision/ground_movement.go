package collision

import (
	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

type groundClaims struct {
	target  *Object
	objects map[donburi.Entity]mgl64.Vec2
	tiles   map[donburi.Entity]mgl64.Vec2
}

// GroundMovementManager collects, for one frame, the displacements that
// platforms want to hand to the objects resting on them. When several movers
// claim the same target, exactly one claim is applied: the one moving the
// target furthest up (smallest y). Claims are never summed, so a target
// standing on two converging platforms is not pushed twice.
type GroundMovementManager struct {
	targets *orderedmap.OrderedMap[donburi.Entity, *groundClaims]
}

func NewGroundMovementManager() *GroundMovementManager {
	return &GroundMovementManager{
		targets: orderedmap.NewOrderedMap[donburi.Entity, *groundClaims](),
	}
}

func (m *GroundMovementManager) claims(target *Object) *groundClaims {
	c, ok := m.targets.Get(target.entity)
	if !ok {
		c = &groundClaims{
			target:  target,
			objects: make(map[donburi.Entity]mgl64.Vec2),
			tiles:   make(map[donburi.Entity]mgl64.Vec2),
		}
		m.targets.Set(target.entity, c)
	}
	return c
}

// RegisterMovement records that mover wants to move target by movement this
// frame, replacing an earlier claim of the same mover.
func (m *GroundMovementManager) RegisterMovement(mover, target *Object, movement mgl64.Vec2) {
	m.claims(target).objects[mover.entity] = movement
}

// RegisterTileMovement is RegisterMovement for a moving tile map.
func (m *GroundMovementManager) RegisterTileMovement(mover *TileMap, target *Object, movement mgl64.Vec2) {
	m.claims(target).tiles[mover.entity] = movement
}

// Len returns the number of targets with pending claims.
func (m *GroundMovementManager) Len() int {
	return m.targets.Len()
}

// ApplyAllGroundMovement adds the winning claim of every target to its
// movement and drops all claims. Targets are visited in the order of their
// first claim; targets removed since then are skipped.
func (m *GroundMovementManager) ApplyAllGroundMovement() {
	for el := m.targets.Front(); el != nil; el = el.Next() {
		c := el.Value
		if c.target.sys.lookup(c.target.entity) != c.target {
			continue
		}
		if movement, ok := c.winner(); ok {
			c.target.AddMovement(movement)
		}
	}
	m.targets = orderedmap.NewOrderedMap[donburi.Entity, *groundClaims]()
}

// winner picks the claim with the smallest y. Equal y values resolve to
// object movers before tile movers, then to the lower entity id.
func (c *groundClaims) winner() (mgl64.Vec2, bool) {
	var (
		best     mgl64.Vec2
		bestKind int
		bestID   donburi.Entity
		found    bool
	)
	consider := func(kind int, id donburi.Entity, v mgl64.Vec2) {
		switch {
		case !found:
		case v.Y() < best.Y():
		case v.Y() > best.Y():
			return
		case kind < bestKind:
		case kind > bestKind:
			return
		case id.Id() < bestID.Id():
		default:
			return
		}
		best, bestKind, bestID, found = v, kind, id, true
	}
	for id, v := range c.objects {
		consider(0, id, v)
	}
	for id, v := range c.tiles {
		consider(1, id, v)
	}
	return best, found
}
