package factory

import (
	"github.com/automoto/slopecollide/archetypes"
	"github.com/automoto/slopecollide/collision"
	"github.com/automoto/slopecollide/components"
	cfg "github.com/automoto/slopecollide/config"
	"github.com/automoto/slopecollide/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreatePlatform spawns a platform moving back and forth between (x, y) and
// (x, y) + travel. Zero sizes fall back to cfg.Platform.
func CreatePlatform(ecs *ecs.ECS, x, y, w, h float64, travel mgl64.Vec2, duration float32) *donburi.Entry {
	if w <= 0 || h <= 0 {
		w, h = cfg.Platform.Width, cfg.Platform.Height
	}
	if duration <= 0 {
		duration = cfg.Platform.Duration
	}

	platform := archetypes.Platform.Spawn(ecs)
	origin := mgl64.Vec2{x, y}
	components.Platform.SetValue(platform, newPath(origin, travel, duration))

	bbox := gamemath.BoxFromSize(origin, w, h)
	components.GetSpace(ecs.World).Attach(platform.Entity(), newListener(ecs.World, platform), collision.MovingStatic, bbox)
	return platform
}

// newPath builds the tween sequence for one round trip. It yields the
// progress along travel.
func newPath(origin, travel mgl64.Vec2, duration float32) components.PlatformData {
	tw := gween.NewSequence()
	tw.Add(
		gween.New(0, 1, duration, ease.Linear),
		gween.New(1, 0, duration, ease.Linear),
	)
	return components.PlatformData{
		Path:   tw,
		Origin: origin,
		Travel: travel,
	}
}
