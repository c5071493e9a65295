package shot

import "github.com/soocke/flick-bot-go/domain/geom"

// Classify decides whether the target is in the moving stage.
//
// A long round (more than p.MovingStageAttempts attempts) counts as moving
// regardless of geometry. Otherwise two consecutive frames with a non-zero
// horizontal target displacement are required, so single-frame detector
// jitter cannot flip the verdict.
func Classify(targetXDelta, previousTargetXDelta int, inRound bool, attempts int, p Params) bool {
	if inRound && attempts > p.MovingStageAttempts {
		return true
	}
	return targetXDelta != 0 && previousTargetXDelta != 0
}

// InterceptWindow is the horizontal span, three object widths wide, on the
// side of the object the moving target approaches from.
type InterceptWindow struct {
	Start, End int
	CompareX   int
}

// Contains reports whether the target centre lies inside the window.
func (w InterceptWindow) Contains() bool { return w.CompareX >= w.Start && w.CompareX <= w.End }

// InterceptWindowFor computes the window for a target moving by targetXDelta.
// It is diagnostic only; firing does not depend on it.
func InterceptWindowFor(object, target geom.Rect, targetXDelta int) InterceptWindow {
	span := int(float64(object.Width()) * 3.0)
	w := InterceptWindow{CompareX: int(target.CenterX())}
	if targetXDelta > 0 {
		w.Start, w.End = object.Left-span, object.Left
	} else {
		w.Start, w.End = object.Right, object.Right+span
	}
	return w
}
