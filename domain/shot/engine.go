package shot

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/soocke/flick-bot-go/config"
)

// Tick is the outcome of advancing the engine by one frame.
type Tick struct {
	Command      ActionCommand
	Fired        bool
	RoundChanged bool
	MovingStage  bool
	TargetXDelta int
	Reading      GateReading
	Trajectory   Trajectory
}

// Advance feeds one frame into st. Absent frames only end the round; present
// frames run classifier, gate and planner, then always refresh the last-seen
// memory. At most one command is produced per call.
func Advance(st *EngineState, f DetectionFrame, p Params) Tick {
	var t Tick
	t.RoundChanged = st.OnFrame(f.Present)
	if !f.Present {
		return t
	}
	if last, ok := st.LastTargetRect.Get(); ok {
		t.TargetXDelta = f.Target.Left - last.Left
	}
	t.MovingStage = Classify(t.TargetXDelta, st.LastTargetXDelta, st.InRound, st.AttemptsThisRound, p)
	t.Reading = Measure(GateInput{
		Now:          f.ObservedAt,
		LastActionAt: st.LastActionAt,
		Object:       f.Object,
		LastObject:   st.LastObjectRect,
		Target:       f.Target,
		LastTarget:   st.LastTargetRect,
		MovingStage:  t.MovingStage,
	}, p)
	if t.Reading.Fire(t.MovingStage, p) {
		t.Trajectory = Plan(f.Object, f.Target, p)
		t.Command = ActionCommand{
			Origin:   f.Object,
			MoveX:    t.Trajectory.MoveX,
			MoveY:    t.Trajectory.MoveY,
			IssuedAt: f.ObservedAt,
		}
		t.Fired = true
		st.LastActionAt = Some(f.ObservedAt)
	}
	st.LastObjectRect = Some(f.Object)
	st.LastTargetRect = Some(f.Target)
	st.LastTargetXDelta = t.TargetXDelta
	return t
}

// Engine owns the EngineState and turns detection frames into flick commands.
// Not safe for concurrent use; feed frames from a single goroutine.
type Engine struct {
	logger    *slog.Logger
	params    Params
	state     EngineState
	phase     Phase
	round     string
	listeners []PhaseListener
}

// NewEngine constructs an engine in the no-round phase with empty memory.
// A nil cfg uses defaults.
func NewEngine(logger *slog.Logger, cfg *config.Config) *Engine {
	return NewEngineWithParams(logger, ParamsFromConfig(cfg))
}

// NewEngineWithParams constructs an engine from explicit parameters.
func NewEngineWithParams(logger *slog.Logger, p Params) *Engine {
	return &Engine{logger: logger, params: p, phase: PhaseNoRound}
}

// AddListener registers a listener for phase changes.
func (e *Engine) AddListener(l PhaseListener) { e.listeners = append(e.listeners, l) }

func (e *Engine) Phase() Phase       { return e.phase }
func (e *Engine) State() EngineState { return e.state }
func (e *Engine) Params() Params     { return e.params }
func (e *Engine) InRound() bool      { return e.state.InRound }

// Round returns the id of the active round, or "" outside a round.
func (e *Engine) Round() string { return e.round }

// Process handles one frame and returns the command to execute, if any.
func (e *Engine) Process(f DetectionFrame) (ActionCommand, bool) {
	t := Advance(&e.state, f, e.params)
	if t.RoundChanged {
		e.onRoundChange()
	}
	next := PhaseNoRound
	if e.state.InRound {
		next = PhaseSettling
		if t.MovingStage {
			next = PhaseMovingTarget
		}
	}
	e.transition(next)
	if !f.Present {
		return ActionCommand{}, false
	}
	if t.MovingStage && e.logger != nil {
		w := InterceptWindowFor(f.Object, f.Target, t.TargetXDelta)
		e.logger.Debug("moving stage", "round", e.round, "compare_x", w.CompareX, "bounds_start", w.Start, "bounds_end", w.End, "inside", w.Contains())
	}
	if !t.Fired {
		if e.logger != nil {
			e.logger.Debug("not firing",
				"elapsed_ms", t.Reading.Elapsed.Milliseconds(),
				"elapsed_known", t.Reading.ElapsedKnown,
				"object_x_movement", t.Reading.ObjectXMovement,
				"target_x_delta", t.Reading.TargetXDelta,
				"vertical_separation", t.Reading.VerticalSeparation,
				"moving_stage", t.MovingStage,
			)
		}
		return ActionCommand{}, false
	}
	cmd := t.Command
	cmd.Round = e.round
	if e.logger != nil {
		e.logger.Info("shot fired",
			"round", e.round,
			"object_center_x", f.Object.CenterX(),
			"target_center_x", f.Target.CenterX(),
			"diff_x", t.Trajectory.DiffX,
			"diff_scaled", t.Trajectory.DiffScaled,
			"move_x", cmd.MoveX,
			"move_y", cmd.MoveY,
		)
	}
	return cmd, true
}

// ConfirmAction reports that the last command finished executing at
// completedAt. With StampOnCompletion the cooldown restarts from that moment;
// otherwise the issue-time stamp is kept.
func (e *Engine) ConfirmAction(completedAt time.Time) {
	if !e.params.StampOnCompletion {
		return
	}
	if last, ok := e.state.LastActionAt.Get(); ok && completedAt.After(last) {
		e.state.LastActionAt = Some(completedAt)
	}
}

func (e *Engine) onRoundChange() {
	if e.state.InRound {
		e.round = uuid.NewString()
		if e.logger != nil {
			e.logger.Info("round started", "round", e.round)
		}
		return
	}
	if e.logger != nil {
		e.logger.Info("round ended", "round", e.round)
	}
	e.round = ""
}

func (e *Engine) transition(next Phase) {
	prev := e.phase
	if prev == next {
		return
	}
	e.phase = next
	if e.logger != nil {
		e.logger.Debug("engine phase transition", "from", prev.String(), "to", next.String())
	}
	for _, l := range e.listeners {
		l(prev, next)
	}
}
