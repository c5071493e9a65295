package action

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/soocke/flick-bot-go/config"
	"github.com/soocke/flick-bot-go/domain/shot"
)

// ErrUnsupported is returned by the system mouse on platforms without input injection.
var ErrUnsupported = errors.New("input injection not supported on this platform")

// Mouse is the low-level pointer device a flick is performed with.
type Mouse interface {
	MoveTo(x, y int) error
	MoveBy(dx, dy int) error
	Press() error
	Release() error
}

// Flicker executes shot commands as press-drag-release gestures.
type Flicker struct {
	mouse     Mouse
	steps     int
	stepDelay time.Duration
	logger    *slog.Logger
}

// NewFlicker builds a flicker driving m. A nil m uses the system mouse and a
// nil cfg uses defaults.
func NewFlicker(m Mouse, cfg *config.Config, logger *slog.Logger) *Flicker {
	if m == nil {
		m = SystemMouse()
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	steps := cfg.FlickSteps
	if steps < 1 {
		steps = 1
	}
	return &Flicker{
		mouse:     m,
		steps:     steps,
		stepDelay: time.Duration(cfg.FlickStepDelayMs) * time.Millisecond,
		logger:    logger,
	}
}

// Execute presses at the centre of cmd.Origin, drags by (MoveX, MoveY) in
// even steps and releases. The button is released even when ctx is cancelled
// mid-drag. Execute returns once the gesture is complete.
func (f *Flicker) Execute(ctx context.Context, cmd shot.ActionCommand) (err error) {
	x, y := int(cmd.Origin.CenterX()), int(cmd.Origin.CenterY())
	if err := f.mouse.MoveTo(x, y); err != nil {
		return fmt.Errorf("move to origin: %w", err)
	}
	if err := f.mouse.Press(); err != nil {
		return fmt.Errorf("press: %w", err)
	}
	defer func() {
		if rerr := f.mouse.Release(); rerr != nil && err == nil {
			err = fmt.Errorf("release: %w", rerr)
		}
	}()
	for _, d := range splitMove(cmd.MoveX, cmd.MoveY, f.steps) {
		if err := sleepContext(ctx, f.stepDelay); err != nil {
			return err
		}
		if err := f.mouse.MoveBy(d[0], d[1]); err != nil {
			return fmt.Errorf("drag: %w", err)
		}
	}
	if f.logger != nil {
		f.logger.Info("flick executed", "round", cmd.Round, "x", x, "y", y, "move_x", cmd.MoveX, "move_y", cmd.MoveY)
	}
	return nil
}

// splitMove divides (dx, dy) into n relative steps whose sums are exact.
func splitMove(dx, dy, n int) [][2]int {
	if n < 1 {
		n = 1
	}
	out := make([][2]int, 0, n)
	px, py := 0, 0
	for i := 1; i <= n; i++ {
		cx, cy := dx*i/n, dy*i/n
		out = append(out, [2]int{cx - px, cy - py})
		px, py = cx, cy
	}
	return out
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
