// Package sim runs a level headless: it owns the ECS world, the collision
// space and the order the systems run in.
package sim

import (
	"github.com/automoto/slopecollide/collision"
	"github.com/automoto/slopecollide/components"
	"github.com/automoto/slopecollide/shared/leveldata"
	"github.com/automoto/slopecollide/systems"
	"github.com/automoto/slopecollide/systems/factory"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

// World is one running level.
type World struct {
	ecs   *ecs.ECS
	space *collision.System
	level *donburi.Entry
	log   *zap.Logger
}

// NewWorld builds a world for level using the active configuration. Building
// worlds touches donburi's global state, so NewWorld must not run
// concurrently. Stepping distinct worlds in parallel is safe.
func NewWorld(level *leveldata.Level, logger *zap.Logger) (*World, error) {
	s := systems.New()
	e := ecs.NewECS(donburi.NewWorld())
	e.AddSystem(s.UpdatePhysics)
	e.AddSystem(s.UpdatePlatforms)
	e.AddSystem(s.UpdateCollisions)
	e.AddSystem(s.RemoveCollected)
	e.AddSystem(s.UpdateLevel)

	space := factory.CreateSpace(e, logger)
	entry, err := factory.CreateLevel(e, level)
	if err != nil {
		return nil, err
	}

	w := &World{
		ecs:   e,
		space: components.Space.Get(space).System,
		level: entry,
		log:   logger,
	}
	logger.Info("level loaded",
		zap.String("level", level.Name),
		zap.Int("layers", len(level.Layers)),
		zap.Int("objects", len(w.space.Objects())),
		zap.Int("width", level.MapWidth),
		zap.Int("height", level.MapHeight),
	)
	return w, nil
}

// Step advances the world by one frame.
func (w *World) Step() {
	w.ecs.Update()
}

// ECS returns the underlying ECS.
func (w *World) ECS() *ecs.ECS { return w.ecs }

// Space returns the collision system.
func (w *World) Space() *collision.System { return w.space }

// Frame returns the number of completed frames.
func (w *World) Frame() int { return components.Level.Get(w.level).Frame }

// Score returns the value of the coins collected so far.
func (w *World) Score() int { return components.Level.Get(w.level).Score }

// Digest hashes the committed state of every collision object.
func (w *World) Digest() uint64 { return w.space.Digest() }
