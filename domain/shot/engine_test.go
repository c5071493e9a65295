package shot

import (
	"testing"
)

func newTestEngine() *Engine { return NewEngine(discardLogger, nil) }

func TestEngine_RoundLifecycle(t *testing.T) {
	e := newTestEngine()
	frames := []DetectionFrame{
		Absent(at(0)),
		Detected(restObject, highTarget, at(50)),
		Detected(restObject, highTarget, at(100)),
		Absent(at(150)),
	}
	want := []bool{false, true, true, false}
	for i, f := range frames {
		e.Process(f)
		if got := e.State().InRound; got != want[i] {
			t.Fatalf("frame %d: inRound=%v want %v", i, got, want[i])
		}
	}
}

func TestEngine_AbsenceKeepsMemory(t *testing.T) {
	e := newTestEngine()
	e.Process(Detected(restObject, highTarget, at(0)))
	before := e.State()
	for i := 1; i <= 5; i++ {
		e.Process(Absent(at(i * 50)))
		st := e.State()
		if st.InRound || st.AttemptsThisRound != 0 {
			t.Fatalf("absent frame %d: expected round closed, got %+v", i, st.SessionTracker)
		}
		if st.LastObjectRect != before.LastObjectRect || st.LastTargetRect != before.LastTargetRect {
			t.Fatalf("absent frame %d changed last-seen memory", i)
		}
	}
	if e.Phase() != PhaseNoRound || e.Round() != "" {
		t.Fatalf("expected no-round phase without round id, got %v %q", e.Phase(), e.Round())
	}
}

func TestEngine_FirstFrameFires(t *testing.T) {
	e := newTestEngine()
	cmd, ok := e.Process(Detected(restObject, highTarget, at(0)))
	if !ok {
		t.Fatalf("expected fire on first settled frame")
	}
	if cmd.Origin != restObject || cmd.MoveX != 26 || cmd.MoveY != -40 {
		t.Fatalf("unexpected command %+v", cmd)
	}
	if cmd.Round == "" || cmd.Round != e.Round() {
		t.Fatalf("command round %q does not match engine round %q", cmd.Round, e.Round())
	}
	if last, ok := e.State().LastActionAt.Get(); !ok || !last.Equal(at(0)) {
		t.Fatalf("expected lastActionAt stamped at issue time, got %v %v", last, ok)
	}
}

func TestEngine_CooldownBetweenShots(t *testing.T) {
	e := newTestEngine()
	if _, ok := e.Process(Detected(restObject, highTarget, at(0))); !ok {
		t.Fatalf("expected initial fire")
	}
	fired := 0
	for ms := 100; ms <= 3000; ms += 100 {
		if _, ok := e.Process(Detected(restObject, highTarget, at(ms))); ok {
			fired++
		}
	}
	if fired != 0 {
		t.Fatalf("expected no fire during cooldown, got %d", fired)
	}
	if _, ok := e.Process(Detected(restObject, highTarget, at(3100))); !ok {
		t.Fatalf("expected fire after cooldown")
	}
}

func TestEngine_MovingTarget(t *testing.T) {
	e := newTestEngine()
	var phases []Phase
	e.AddListener(func(prev, next Phase) { phases = append(phases, next) })

	target := highTarget
	if _, ok := e.Process(Detected(restObject, target, at(0))); !ok {
		t.Fatalf("expected initial fire")
	}
	// one displaced frame: not yet moving, and a moving target blocks firing
	target = shiftX(target, 10)
	if _, ok := e.Process(Detected(restObject, target, at(3500))); ok {
		t.Fatalf("single displacement must not fire")
	}
	if e.Phase() != PhaseSettling {
		t.Fatalf("expected settling after one displacement, got %v", e.Phase())
	}
	target = shiftX(target, 10)
	if _, ok := e.Process(Detected(restObject, target, at(4000))); ok {
		t.Fatalf("moving stage must wait for the longer cooldown")
	}
	if e.Phase() != PhaseMovingTarget {
		t.Fatalf("expected moving-target phase, got %v", e.Phase())
	}
	target = shiftX(target, 10)
	if _, ok := e.Process(Detected(restObject, target, at(5100))); !ok {
		t.Fatalf("expected fire after moving-stage cooldown")
	}
	want := []Phase{PhaseSettling, PhaseMovingTarget}
	if len(phases) != len(want) || phases[0] != want[0] || phases[1] != want[1] {
		t.Fatalf("unexpected phase sequence %v", phases)
	}
}

func TestEngine_ObjectJitterBlocks(t *testing.T) {
	e := newTestEngine()
	e.Process(Detected(restObject, highTarget, at(0)))
	if _, ok := e.Process(Detected(shiftX(restObject, 8), highTarget, at(4000))); ok {
		t.Fatalf("object still moving; expected no fire")
	}
	if _, ok := e.Process(Detected(shiftX(restObject, 9), highTarget, at(4100))); !ok {
		t.Fatalf("object settled; expected fire")
	}
}

func TestEngine_NewRoundGetsNewID(t *testing.T) {
	e := newTestEngine()
	e.Process(Detected(restObject, highTarget, at(0)))
	first := e.Round()
	e.Process(Absent(at(50)))
	e.Process(Detected(restObject, highTarget, at(100)))
	if e.Round() == "" || e.Round() == first {
		t.Fatalf("expected fresh round id, got %q (previous %q)", e.Round(), first)
	}
}

func TestEngine_ConfirmAction(t *testing.T) {
	p := DefaultParams()
	p.StampOnCompletion = true
	e := NewEngineWithParams(discardLogger, p)
	e.Process(Detected(restObject, highTarget, at(0)))
	e.ConfirmAction(at(2000))
	if _, ok := e.Process(Detected(restObject, highTarget, at(3500))); ok {
		t.Fatalf("cooldown should restart at completion time")
	}
	if _, ok := e.Process(Detected(restObject, highTarget, at(5100))); !ok {
		t.Fatalf("expected fire 3s after completion")
	}

	issue := newTestEngine()
	issue.Process(Detected(restObject, highTarget, at(0)))
	issue.ConfirmAction(at(2000))
	if _, ok := issue.Process(Detected(restObject, highTarget, at(3500))); !ok {
		t.Fatalf("issue-time stamping should allow fire at 3500ms")
	}
}

func TestAdvance_LongRoundCountsAsMoving(t *testing.T) {
	st := EngineState{SessionTracker: SessionTracker{InRound: true, AttemptsThisRound: 11}}
	tick := Advance(&st, Detected(restObject, highTarget, at(0)), DefaultParams())
	if !tick.MovingStage {
		t.Fatalf("expected moving stage for long round")
	}
	if !tick.Fired {
		t.Fatalf("expected fire with no prior action")
	}
}

func TestAdvance_TracksTargetDelta(t *testing.T) {
	var st EngineState
	p := DefaultParams()
	Advance(&st, Detected(restObject, highTarget, at(0)), p)
	Advance(&st, Detected(restObject, shiftX(highTarget, -4), at(50)), p)
	if st.LastTargetXDelta != -4 {
		t.Fatalf("expected last target delta -4, got %d", st.LastTargetXDelta)
	}
}
