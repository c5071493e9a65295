package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/soocke/flick-bot-go/domain/capture"
	"github.com/soocke/flick-bot-go/domain/detect"
	"github.com/soocke/flick-bot-go/domain/preview"
	"github.com/soocke/flick-bot-go/domain/shot"
)

// Injector performs an action command. Execute returns once the gesture has
// completed.
type Injector interface {
	Execute(ctx context.Context, cmd shot.ActionCommand) error
}

// RunnerStats is a snapshot of the frame loop counters.
type RunnerStats struct {
	Frames     uint64
	Detections uint64
	Shots      uint64
	Failed     uint64
	Rounds     uint64
	RoundTime  time.Duration
	TotalTime  time.Duration
}

// Runner drives the detect-decide-act loop on a single goroutine, so at most
// one command is ever in flight.
type Runner struct {
	source   capture.FrameSource
	detector detect.Detector
	engine   *shot.Engine
	injector Injector
	limiter  *rate.Limiter
	focus    *FocusGate
	preview  *preview.Writer
	clock    *RoundClock
	logger   *slog.Logger
	now      func() time.Time

	lastSeq    uint64
	frames     atomic.Uint64
	detections atomic.Uint64
	shots      atomic.Uint64
	failed     atomic.Uint64
	rounds     atomic.Uint64
}

// NewRunner wires the loop. focus and pw may be nil; a non-positive interval
// processes frames as fast as they arrive.
func NewRunner(src capture.FrameSource, det detect.Detector, eng *shot.Engine, inj Injector, interval time.Duration, focus *FocusGate, pw *preview.Writer, logger *slog.Logger) *Runner {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	r := &Runner{
		source:   src,
		detector: det,
		engine:   eng,
		injector: inj,
		limiter:  rate.NewLimiter(limit, 1),
		focus:    focus,
		preview:  pw,
		clock:    NewRoundClock(),
		logger:   logger,
		now:      time.Now,
	}
	eng.AddListener(func(prev, next shot.Phase) {
		if prev == shot.PhaseNoRound {
			r.rounds.Add(1)
		}
	})
	return r
}

// Run processes frames until ctx is cancelled. A panic while handling a
// frame stops the loop and is returned as an error.
func (r *Runner) Run(ctx context.Context) (err error) {
	defer func() {
		if v := recover(); v != nil {
			if r.logger != nil {
				r.logger.Error("runner panic", "error", v)
			}
			err = fmt.Errorf("runner panic: %v", v)
		}
	}()
	for {
		if err := r.limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		r.Step(ctx)
	}
}

// Step handles the latest captured frame once. It reports false when there
// was nothing new to process or the game window is not focused.
func (r *Runner) Step(ctx context.Context) bool {
	snap := r.source.LatestFrame()
	if snap.Image == nil || snap.Sequence == r.lastSeq {
		return false
	}
	r.lastSeq = snap.Sequence
	if !r.focus.Focused(r.now()) {
		return false
	}
	frame := r.detector.Detect(ctx, snap)
	r.frames.Add(1)
	if frame.Present {
		r.detections.Add(1)
	}
	// The detector sees the captured image; the engine and the mouse work
	// in screen coordinates.
	screen := frame
	if frame.Present {
		screen.Object = frame.Object.Add(snap.Origin)
		screen.Target = frame.Target.Add(snap.Origin)
	}
	cmd, fire := r.engine.Process(screen)
	r.clock.OnTick(r.engine.InRound(), frame.ObservedAt)
	if !fire {
		return true
	}
	if r.preview.Enabled() {
		if err := r.preview.Save(snap.Image, frame.Object, frame.Target); err != nil && r.logger != nil {
			r.logger.Warn("preview save failed", "error", err)
		}
	}
	if err := r.injector.Execute(ctx, cmd); err != nil {
		r.failed.Add(1)
		if r.logger != nil {
			r.logger.Error("flick failed", "round", cmd.Round, "error", err)
		}
	} else {
		r.shots.Add(1)
	}
	r.engine.ConfirmAction(r.now())
	return true
}

// Stats returns the loop counters.
func (r *Runner) Stats() RunnerStats {
	round, total := r.clock.Values()
	return RunnerStats{
		Frames:     r.frames.Load(),
		Detections: r.detections.Load(),
		Shots:      r.shots.Load(),
		Failed:     r.failed.Load(),
		Rounds:     r.rounds.Load(),
		RoundTime:  round,
		TotalTime:  total,
	}
}
