package sim

import (
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// GameLoop steps a World. A positive tick rate paces frames in real time;
// otherwise frames run back to back.
type GameLoop struct {
	world       *World
	tickRate    int
	frames      int
	digestEvery int
	running     atomic.Bool
	stopChan    chan struct{}
	stopOnce    sync.Once
	log         *zap.Logger
}

func NewGameLoop(world *World, tickRate, frames, digestEvery int) *GameLoop {
	return &GameLoop{
		world:       world,
		tickRate:    tickRate,
		frames:      frames,
		digestEvery: digestEvery,
		stopChan:    make(chan struct{}),
		log:         world.log,
	}
}

// Run steps the world until the frame budget is spent or Stop is called.
// A frame budget of zero runs until Stop. It returns the final digest.
func (g *GameLoop) Run() uint64 {
	g.running.Store(true)
	defer g.running.Store(false)

	var tick <-chan time.Time
	if g.tickRate > 0 {
		ticker := time.NewTicker(time.Second / time.Duration(g.tickRate))
		defer ticker.Stop()
		tick = ticker.C
	}

	g.log.Info("game loop started", zap.Int("tickRate", g.tickRate), zap.Int("frames", g.frames))

	for g.frames == 0 || g.world.Frame() < g.frames {
		if tick != nil {
			select {
			case <-g.stopChan:
				g.log.Info("game loop stopped", zap.Int("frame", g.world.Frame()))
				return g.world.Digest()
			case <-tick:
			}
		} else {
			select {
			case <-g.stopChan:
				g.log.Info("game loop stopped", zap.Int("frame", g.world.Frame()))
				return g.world.Digest()
			default:
			}
		}
		g.tick()
	}

	digest := g.world.Digest()
	g.log.Info("game loop finished",
		zap.Int("frame", g.world.Frame()),
		zap.Int("score", g.world.Score()),
		zap.String("digest", hex(digest)),
	)
	return digest
}

// Stop ends Run. It is safe to call from any goroutine, more than once.
func (g *GameLoop) Stop() {
	g.stopOnce.Do(func() { close(g.stopChan) })
}

// Running reports whether Run is in progress.
func (g *GameLoop) Running() bool { return g.running.Load() }

func (g *GameLoop) tick() {
	g.world.Step()

	if g.digestEvery > 0 && g.world.Frame()%g.digestEvery == 0 {
		g.log.Debug("frame",
			zap.Int("frame", g.world.Frame()),
			zap.Int("objects", len(g.world.Space().Objects())),
			zap.String("digest", hex(g.world.Digest())),
		)
	}
}
