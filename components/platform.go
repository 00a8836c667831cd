package components

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

// PlatformData moves an entity along a straight path. Path yields the
// progress from Origin (0) to Origin+Travel (1).
type PlatformData struct {
	Path   *gween.Sequence
	Origin mgl64.Vec2
	Travel mgl64.Vec2
}

var Platform = donburi.NewComponentType[PlatformData]()
