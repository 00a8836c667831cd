package config

import "github.com/yohamta/donburi/ecs"

// Default is the only ECS layer the simulator uses.
const Default ecs.LayerID = 0

// CollisionConfig tunes the collision pipeline.
type CollisionConfig struct {
	MaxSpeed      float64 `yaml:"max_speed"`   // Longest movement per frame
	Epsilon       float64 `yaml:"epsilon"`     // Gap left after pushing out of a surface
	ShiftDelta    float64 `yaml:"shift_delta"` // Ice probe depth and crush threshold
	Forgiveness   float64 `yaml:"forgiveness"` // Area slack between moving statics
	ResolvePasses int     `yaml:"resolve_passes"`
}

// PhysicsConfig contains physics-related configuration values
type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity"`
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
	Friction     float64 `yaml:"friction"`
	IceFriction  float64 `yaml:"ice_friction"` // Friction while standing on ice tiles
	MaxSpeed     float64 `yaml:"max_speed"`    // Horizontal speed cap
}

// BodyConfig contains the defaults for spawned bodies
type BodyConfig struct {
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	WalkSpeed float64 `yaml:"walk_speed"` // Used by spawns that set no walk speed
}

// CrateConfig contains the defaults for pushable crates
type CrateConfig struct {
	Size     float64 `yaml:"size"`
	Friction float64 `yaml:"friction"`
}

// PlatformConfig contains moving platform configuration
type PlatformConfig struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Duration float32 `yaml:"duration"` // Seconds for one leg of the path
}

// CoinConfig contains collectible configuration
type CoinConfig struct {
	Size  float64 `yaml:"size"`
	Value int     `yaml:"value"`
}

// SimConfig contains the headless runner options
type SimConfig struct {
	TickRate    int    `yaml:"tick_rate"` // Updates per second
	Frames      int    `yaml:"frames"`    // 0 runs until interrupted
	Level       string `yaml:"level"`
	LogLevel    string `yaml:"log_level"`
	Development bool   `yaml:"development"`
	DigestEvery int    `yaml:"digest_every"` // Frames between digest log lines
}

// Config groups every section so a YAML file can override any of them.
type Config struct {
	Collision CollisionConfig `yaml:"collision"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Body      BodyConfig      `yaml:"body"`
	Crate     CrateConfig     `yaml:"crate"`
	Platform  PlatformConfig  `yaml:"platform"`
	Coin      CoinConfig      `yaml:"coin"`
	Sim       SimConfig       `yaml:"sim"`
}

// Global configuration instances
var Collision CollisionConfig
var Physics PhysicsConfig
var Body BodyConfig
var Crate CrateConfig
var Platform PlatformConfig
var Coin CoinConfig
var Sim SimConfig

func init() {
	Reset()
}

// Reset restores every section to its built-in defaults.
func Reset() {
	Collision = CollisionConfig{
		MaxSpeed:      16,
		Epsilon:       0.002,
		ShiftDelta:    7,
		Forgiveness:   256,
		ResolvePasses: 2,
	}

	Physics = PhysicsConfig{
		Gravity:      0.75,
		MaxFallSpeed: 10.0,
		Friction:     0.5,
		IceFriction:  0.05,
		MaxSpeed:     6.0,
	}

	Body = BodyConfig{
		Width:     16,
		Height:    32,
		WalkSpeed: 2.0,
	}

	Crate = CrateConfig{
		Size:     32,
		Friction: 0.2,
	}

	Platform = PlatformConfig{
		Width:    64,
		Height:   16,
		Duration: 2,
	}

	Coin = CoinConfig{
		Size:  16,
		Value: 1,
	}

	Sim = SimConfig{
		TickRate:    60,
		Frames:      600,
		LogLevel:    "info",
		DigestEvery: 60,
	}
}

// Current returns a copy of the active configuration.
func Current() Config {
	return Config{
		Collision: Collision,
		Physics:   Physics,
		Body:      Body,
		Crate:     Crate,
		Platform:  Platform,
		Coin:      Coin,
		Sim:       Sim,
	}
}

// Apply makes c the active configuration.
func Apply(c Config) {
	Collision = c.Collision
	Physics = c.Physics
	Body = c.Body
	Crate = c.Crate
	Platform = c.Platform
	Coin = c.Coin
	Sim = c.Sim
}
