package shot

import (
	"math"

	"github.com/soocke/flick-bot-go/domain/geom"
)

// EaseInOutSine maps s onto the sine S-curve (sin(s*pi - pi/2) + 1) / 2.
// The output stays within [0, 1] for any input but is only monotonic on
// [0, 1]; callers feed it values outside that range.
func EaseInOutSine(s float64) float64 {
	return (math.Sin(s*math.Pi-math.Pi/2) + 1) / 2
}

// Trajectory is a planned flick plus the intermediate values used for logging.
type Trajectory struct {
	DiffX      float64
	DiffScaled float64
	MoveX      int
	MoveY      int
}

// Plan computes the flick vector from object to target.
//
// The horizontal offset is measured in object widths; a zero-width object
// yields a zero offset instead of dividing by zero. Offsets inside the dead
// zone produce no horizontal movement. MoveX is clamped to the configured
// maximum and MoveY always points up the screen.
func Plan(object, target geom.Rect, p Params) Trajectory {
	t := Trajectory{
		DiffX: target.CenterX() - object.CenterX(),
		MoveY: -p.VerticalMagnitude,
	}
	if w := object.Width(); w != 0 {
		t.DiffScaled = t.DiffX / float64(w)
	}
	bound := float64(p.MaxHorizontalMagnitude)
	if t.DiffScaled <= 0 {
		bound = -bound
	}
	if math.Abs(t.DiffScaled) > p.DeadZone {
		mx := int(math.Round(bound * EaseInOutSine(t.DiffScaled*p.EaseScale)))
		t.MoveX = max(-p.MaxHorizontalMagnitude, min(p.MaxHorizontalMagnitude, mx))
	}
	return t
}
