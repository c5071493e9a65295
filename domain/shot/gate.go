package shot

import (
	"time"

	"github.com/soocke/flick-bot-go/domain/geom"
)

// GateInput is everything the shot gate looks at for one frame.
type GateInput struct {
	Now          time.Time
	LastActionAt Option[time.Time]
	Object       geom.Rect
	LastObject   Option[geom.Rect]
	Target       geom.Rect
	LastTarget   Option[geom.Rect]
	MovingStage  bool
}

// GateReading holds the derived measurements behind a gate decision.
type GateReading struct {
	Elapsed            time.Duration
	ElapsedKnown       bool
	Cooldown           time.Duration
	ObjectXMovement    int
	TargetXDelta       int
	VerticalSeparation int
}

// Measure derives the gate measurements. A missing previous rectangle
// counts as no movement; a missing last action counts as infinitely long ago.
func Measure(in GateInput, p Params) GateReading {
	r := GateReading{
		Cooldown:           p.SettleCooldown,
		VerticalSeparation: in.Object.Bottom - in.Target.Bottom,
	}
	if in.MovingStage {
		r.Cooldown = p.MovingCooldown
	}
	if last, ok := in.LastActionAt.Get(); ok {
		r.Elapsed = in.Now.Sub(last)
		r.ElapsedKnown = true
	}
	if last, ok := in.LastObject.Get(); ok {
		r.ObjectXMovement = abs(in.Object.Left - last.Left)
	}
	if last, ok := in.LastTarget.Get(); ok {
		r.TargetXDelta = in.Target.Left - last.Left
	}
	return r
}

// Fire reports whether the reading passes every gate condition.
func (r GateReading) Fire(movingStage bool, p Params) bool {
	cooled := !r.ElapsedKnown || r.Elapsed > r.Cooldown
	return cooled &&
		r.ObjectXMovement < p.MaxObjectJitter &&
		r.VerticalSeparation > p.MinVerticalSeparation &&
		(r.TargetXDelta == 0 || movingStage)
}

// ShouldFire is the shot gate: enough time since the last action, a settled
// object, a meaningful vertical gap, and a still target unless in the moving
// stage.
func ShouldFire(in GateInput, p Params) bool {
	return Measure(in, p).Fire(in.MovingStage, p)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
