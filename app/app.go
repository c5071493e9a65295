package app

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/soocke/flick-bot-go/config"
	"github.com/soocke/flick-bot-go/debug"
)

const (
	statsInterval = 10 * time.Second
	debugInterval = 2 * time.Second
)

// App owns the bot lifecycle: capture, frame loop and diagnostics.
type App struct {
	c *Container
}

// NewApp builds an application from cfg.
func NewApp(cfg *config.Config, logger *slog.Logger) *App {
	return &App{c: BuildContainer(cfg, logger)}
}

// Container exposes the wired components.
func (a *App) Container() *Container { return a.c }

// Run starts capturing and processing frames and blocks until ctx is
// cancelled or a component fails.
func (a *App) Run(ctx context.Context) error {
	c := a.c
	c.Logger.Info("starting",
		"detector", c.Config.DetectorCommand,
		"frame_interval_ms", c.Config.FrameIntervalMs,
		"window", c.Config.WindowTitle,
		"stamp_on_completion", c.Config.StampOnCompletion,
	)
	c.CaptureSvc.Start()
	defer c.CaptureSvc.Stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return c.Runner.Run(ctx) })
	g.Go(func() error {
		logStats(ctx, c.Runner, c.Logger, statsInterval)
		return nil
	})
	if c.Config.Debug {
		g.Go(func() error {
			<-debug.StartRuntimeLogger(ctx, debugInterval, c.Logger)
			return nil
		})
	}
	err := g.Wait()
	s := c.Runner.Stats()
	c.Logger.Info("stopped", "frames", s.Frames, "shots", s.Shots, "rounds", s.Rounds, "time_in_rounds", s.TotalTime)
	return err
}

func logStats(ctx context.Context, r *Runner, logger *slog.Logger, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s := r.Stats()
			logger.Info("runner.stats",
				"frames", s.Frames,
				"detections", s.Detections,
				"shots", s.Shots,
				"failed", s.Failed,
				"rounds", s.Rounds,
				"round_time", s.RoundTime,
				"time_in_rounds", s.TotalTime,
			)
		}
	}
}
