package collision

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Hit describes a single resolved contact. Normal is the unit direction the
// moving shape has to be pushed to leave the obstacle, Depth the distance along
// it, and Time the fraction of the step's movement at which the contact
// resolves.
type Hit struct {
	Time   float64
	Depth  float64
	Normal mgl64.Vec2

	// Crush is set when the object stays wedged between obstacles after the
	// static pass.
	Crush bool
}

// NewHit returns an empty hit with Time at +Inf.
func NewHit() Hit {
	return Hit{Time: math.Inf(1)}
}

// Bottom reports whether the contact is under the moving shape (it landed).
func (h Hit) Bottom() bool { return h.Normal.Y() < 0 }

// Top reports whether the contact is above the moving shape.
func (h Hit) Top() bool { return h.Normal.Y() > 0 }

// Left reports whether the contact is to the left of the moving shape.
func (h Hit) Left() bool { return h.Normal.X() > 0 }

// Right reports whether the contact is to the right of the moving shape.
func (h Hit) Right() bool { return h.Normal.X() < 0 }

// Flipped returns the hit as seen by the other party of the contact.
func (h Hit) Flipped() Hit {
	h.Normal = h.Normal.Mul(-1)
	return h
}

// Push returns the displacement that separates the moving shape from the
// obstacle, grown by extra along the normal.
func (h Hit) Push(extra float64) mgl64.Vec2 {
	return h.Normal.Mul(h.Depth + extra)
}
