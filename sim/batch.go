package sim

import (
	"context"
	"sort"
	"sync"

	"github.com/automoto/slopecollide/shared/leveldata"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// RunAll simulates every level on its own world in parallel and returns the
// final digest of each, keyed by level name. Worlds are built one after the
// other and only stepped concurrently.
func RunAll(ctx context.Context, levels map[string]*leveldata.Level, frames int, logger *zap.Logger) (map[string]uint64, error) {
	if frames <= 0 {
		return nil, errors.Errorf("batch runs need a frame budget, got %d", frames)
	}

	names := make([]string, 0, len(levels))
	for name := range levels {
		names = append(names, name)
	}
	sort.Strings(names)

	worlds := make(map[string]*World, len(levels))
	for _, name := range names {
		w, err := NewWorld(levels[name], logger.With(zap.String("level", name)))
		if err != nil {
			return nil, err
		}
		worlds[name] = w
	}

	g, ctx := errgroup.WithContext(ctx)
	var mu sync.Mutex
	digests := make(map[string]uint64, len(levels))

	for name, w := range worlds {
		name, w := name, w
		g.Go(func() error {
			for w.Frame() < frames {
				if err := ctx.Err(); err != nil {
					return errors.Wrapf(err, "level %s stopped at frame %d", name, w.Frame())
				}
				w.Step()
			}

			mu.Lock()
			digests[name] = w.Digest()
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return digests, nil
}
