package config

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// LoadFile reads YAML overrides from path. See Load.
func LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open config %s", path)
	}
	defer f.Close()

	return errors.Wrapf(Load(f), "load config %s", path)
}

// Load decodes YAML overrides on top of the active configuration. Keys that
// are missing keep their current value. Nothing is applied if the result
// does not validate.
func Load(r io.Reader) error {
	c := Current()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return errors.Wrap(err, "decode yaml")
	}
	if err := c.Validate(); err != nil {
		return err
	}
	Apply(c)
	return nil
}

// Validate rejects values the simulator cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Collision.MaxSpeed <= 0:
		return errors.Errorf("collision.max_speed must be positive, got %v", c.Collision.MaxSpeed)
	case c.Collision.Epsilon <= 0:
		return errors.Errorf("collision.epsilon must be positive, got %v", c.Collision.Epsilon)
	case c.Collision.ShiftDelta < 0:
		return errors.Errorf("collision.shift_delta must not be negative, got %v", c.Collision.ShiftDelta)
	case c.Collision.ResolvePasses < 1:
		return errors.Errorf("collision.resolve_passes must be at least 1, got %d", c.Collision.ResolvePasses)
	case c.Body.Width <= 0 || c.Body.Height <= 0:
		return errors.Errorf("body size must be positive, got %vx%v", c.Body.Width, c.Body.Height)
	case c.Crate.Size <= 0:
		return errors.Errorf("crate.size must be positive, got %v", c.Crate.Size)
	case c.Platform.Width <= 0 || c.Platform.Height <= 0:
		return errors.Errorf("platform size must be positive, got %vx%v", c.Platform.Width, c.Platform.Height)
	case c.Platform.Duration <= 0:
		return errors.Errorf("platform.duration must be positive, got %v", c.Platform.Duration)
	case c.Coin.Size <= 0:
		return errors.Errorf("coin.size must be positive, got %v", c.Coin.Size)
	case c.Sim.TickRate <= 0:
		return errors.Errorf("sim.tick_rate must be positive, got %d", c.Sim.TickRate)
	case c.Sim.Frames < 0:
		return errors.Errorf("sim.frames must not be negative, got %d", c.Sim.Frames)
	}
	return nil
}
