package components

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

type PhysicsData struct {
	Velocity mgl64.Vec2
	Gravity  float64
	Friction float64
	MaxSpeed float64
	Walk     float64 // Horizontal speed kept while on the ground

	// Contact state, reset every frame before collisions run
	OnGround bool
	OnIce    bool
	Crushed  bool
}

var Physics = donburi.NewComponentType[PhysicsData]()
