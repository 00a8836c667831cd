package collision

import "github.com/pkg/errors"

// Group decides which pairs are tested and which objects count as ground.
type Group uint8

const (
	// Disabled objects are never tested.
	Disabled Group = iota

	// MovingStatic objects move like Moving ones but also act as obstacles
	// during the static pass. Use for platforms and pushable rocks.
	MovingStatic

	// Moving objects are tested against tiles, statics, touchables and other
	// moving objects.
	Moving

	// MovingOnlyStatic objects are tested against tiles and statics only.
	// Use for interactive particles.
	MovingOnlyStatic

	// Static objects are obstacles that moving objects stand on.
	Static

	// Touchable objects only report overlaps with moving objects. Use for
	// coins, spikes and trigger areas.
	Touchable
)

func (g Group) String() string {
	switch g {
	case Disabled:
		return "disabled"
	case MovingStatic:
		return "moving-static"
	case Moving:
		return "moving"
	case MovingOnlyStatic:
		return "moving-only-static"
	case Static:
		return "static"
	case Touchable:
		return "touchable"
	default:
		return "unknown"
	}
}

// IsMoving reports whether the group takes part in the static pass as the
// moving side.
func (g Group) IsMoving() bool {
	return g == Moving || g == MovingStatic || g == MovingOnlyStatic
}

// IsObstacle reports whether the group blocks moving objects in the static
// pass.
func (g Group) IsObstacle() bool {
	return g == Static || g == MovingStatic
}

// Tile attribute flags as handed over by the tile grid.
const (
	TileSolid    uint32 = 0x0001
	TileUnisolid uint32 = 0x0002
	TileBrick    uint32 = 0x0004
	TileGoal     uint32 = 0x0008
	TileSlope    uint32 = 0x0010
	TileFullbox  uint32 = 0x0020
	TileCoin     uint32 = 0x0040

	// Attributes from here upward are reported through CollisionTile.
	FirstInterestingFlag uint32 = 0x0100

	TileIce      uint32 = 0x0100
	TileWater    uint32 = 0x0200
	TileHurts    uint32 = 0x0400
	TileFire     uint32 = 0x0800
	TileWallJump uint32 = 0x1000
)

var attributeNames = map[string]uint32{
	"solid":    TileSolid,
	"unisolid": TileUnisolid,
	"brick":    TileBrick,
	"goal":     TileGoal,
	"slope":    TileSlope,
	"fullbox":  TileFullbox,
	"coin":     TileCoin,
	"ice":      TileIce,
	"water":    TileWater,
	"hurts":    TileHurts,
	"fire":     TileFire,
	"walljump": TileWallJump,
}

// ParseAttributes turns tile flag names as written in level files into
// attribute bits.
func ParseAttributes(names []string) (uint32, error) {
	var attributes uint32
	for _, name := range names {
		flag, ok := attributeNames[name]
		if !ok {
			return 0, errors.Errorf("unknown tile attribute %q", name)
		}
		attributes |= flag
	}
	return attributes, nil
}
