package shot

import (
	"testing"
	"time"

	"github.com/soocke/flick-bot-go/domain/geom"
)

// stillInput is a settled frame with vertical separation 150 and no movement.
func stillInput(now time.Time, last Option[time.Time]) GateInput {
	object := geom.R(100, 250, 140, 290)
	target := geom.R(300, 100, 340, 140)
	return GateInput{
		Now:          now,
		LastActionAt: last,
		Object:       object,
		LastObject:   Some(object),
		Target:       target,
		LastTarget:   Some(target),
	}
}

func TestShouldFire_TimingBoundary(t *testing.T) {
	p := DefaultParams()
	last := Some(at(0))
	if ShouldFire(stillInput(at(2999), last), p) {
		t.Fatalf("expected no fire at 2999ms")
	}
	if ShouldFire(stillInput(at(3000), last), p) {
		t.Fatalf("expected no fire at exactly the cooldown")
	}
	if !ShouldFire(stillInput(at(3001), last), p) {
		t.Fatalf("expected fire at 3001ms")
	}
}

func TestShouldFire_MovingStageUsesLongCooldown(t *testing.T) {
	p := DefaultParams()
	in := stillInput(at(4000), Some(at(0)))
	in.MovingStage = true
	if ShouldFire(in, p) {
		t.Fatalf("expected moving-stage cooldown to block at 4000ms")
	}
	in.Now = at(5001)
	if !ShouldFire(in, p) {
		t.Fatalf("expected fire after moving-stage cooldown")
	}
}

func TestShouldFire_NoPreviousActionIsInfinitelyOld(t *testing.T) {
	if !ShouldFire(stillInput(at(0), None[time.Time]()), DefaultParams()) {
		t.Fatalf("expected fire with no previous action")
	}
}

func TestShouldFire_Conditions(t *testing.T) {
	p := DefaultParams()
	cases := []struct {
		name   string
		mutate func(*GateInput)
		want   bool
	}{
		{"baseline", func(*GateInput) {}, true},
		{"object jitter 4", func(in *GateInput) { in.LastObject = Some(shiftX(in.Object, 4)) }, true},
		{"object jitter 5", func(in *GateInput) { in.LastObject = Some(shiftX(in.Object, -5)) }, false},
		{"no previous object", func(in *GateInput) { in.LastObject = None[geom.Rect]() }, true},
		{"separation 100", func(in *GateInput) { in.Target.Bottom = in.Object.Bottom - 100 }, false},
		{"separation 101", func(in *GateInput) { in.Target.Bottom = in.Object.Bottom - 101 }, true},
		{"target moved", func(in *GateInput) { in.LastTarget = Some(shiftX(in.Target, 3)) }, false},
		{"target moved in moving stage", func(in *GateInput) {
			in.LastTarget = Some(shiftX(in.Target, 3))
			in.MovingStage = true
		}, true},
		{"no previous target", func(in *GateInput) { in.LastTarget = None[geom.Rect]() }, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := stillInput(at(10_000), Some(at(0)))
			tc.mutate(&in)
			if got := ShouldFire(in, p); got != tc.want {
				t.Fatalf("ShouldFire=%v want %v (reading %+v)", got, tc.want, Measure(in, p))
			}
		})
	}
}

func TestMeasure_Readings(t *testing.T) {
	in := stillInput(at(1200), Some(at(200)))
	in.LastObject = Some(shiftX(in.Object, -3))
	in.LastTarget = Some(shiftX(in.Target, 7))
	r := Measure(in, DefaultParams())
	if r.Elapsed != time.Second || !r.ElapsedKnown {
		t.Fatalf("unexpected elapsed %v known=%v", r.Elapsed, r.ElapsedKnown)
	}
	if r.ObjectXMovement != 3 || r.TargetXDelta != -7 || r.VerticalSeparation != 150 {
		t.Fatalf("unexpected reading %+v", r)
	}
	if r.Cooldown != 3*time.Second {
		t.Fatalf("expected settle cooldown, got %v", r.Cooldown)
	}
}
