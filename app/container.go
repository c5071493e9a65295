package app

import (
	"image"
	"log/slog"
	"time"

	"github.com/soocke/flick-bot-go/config"
	"github.com/soocke/flick-bot-go/domain/action"
	"github.com/soocke/flick-bot-go/domain/capture"
	"github.com/soocke/flick-bot-go/domain/detect"
	"github.com/soocke/flick-bot-go/domain/preview"
	"github.com/soocke/flick-bot-go/domain/shot"
)

// Container assembles the services of a bot run.
type Container struct {
	Config     *config.Config
	Logger     *slog.Logger
	CaptureSvc *capture.Service
	Detector   detect.Detector
	Engine     *shot.Engine
	Flicker    *action.Flicker
	Focus      *FocusGate
	Preview    *preview.Writer
	Runner     *Runner
}

// BuildContainer constructs all components from cfg without starting any.
func BuildContainer(cfg *config.Config, logger *slog.Logger) *Container {
	c := &Container{Config: cfg, Logger: logger}
	interval := time.Duration(cfg.FrameIntervalMs) * time.Millisecond
	c.CaptureSvc = capture.NewService(logger, nil, interval)
	c.CaptureSvc.SetSelectionProvider(selectionFromConfig(cfg))
	c.Detector = detect.NewProcessDetector(cfg, logger)
	c.Engine = shot.NewEngine(logger, cfg)
	c.Engine.AddListener(func(prev, next shot.Phase) {
		if logger == nil {
			return
		}
		logger.Info("phase", "from", prev.String(), "to", next.String(), "round", c.Engine.Round())
	})
	c.Flicker = action.NewFlicker(nil, cfg, logger)
	if cfg.WindowTitle != "" {
		c.Focus = NewFocusGate(cfg.WindowTitle, logger, nil)
	}
	if cfg.PreviewPath != "" {
		c.Preview = &preview.Writer{Path: cfg.PreviewPath, Margin: cfg.CropMargin}
	}
	c.Runner = NewRunner(c.CaptureSvc, c.Detector, c.Engine, c.Flicker, interval, c.Focus, c.Preview, logger)
	return c
}

// selectionFromConfig returns the capture region provider; a zero-sized
// selection captures the full screen.
func selectionFromConfig(cfg *config.Config) func() *image.Rectangle {
	if cfg.SelectionW <= 0 || cfg.SelectionH <= 0 {
		return func() *image.Rectangle { return nil }
	}
	r := image.Rect(cfg.SelectionX, cfg.SelectionY, cfg.SelectionX+cfg.SelectionW, cfg.SelectionY+cfg.SelectionH)
	return func() *image.Rectangle { return &r }
}
