package app

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/soocke/flick-bot-go/domain/action"
)

const defaultFocusInterval = 250 * time.Millisecond

// FocusGate reports whether the configured game window is in the foreground.
// The foreground title is polled at most once per interval; an empty title
// disables the gate.
type FocusGate struct {
	Foreground func() (string, error)
	title      string
	interval   time.Duration
	logger     *slog.Logger

	mu        sync.Mutex
	checkedAt time.Time
	focused   bool
	lastTitle string // last foreground title seen (normalized)
}

// NewFocusGate builds a gate for title. A nil fg uses the system foreground window.
func NewFocusGate(title string, logger *slog.Logger, fg func() (string, error)) *FocusGate {
	if fg == nil {
		fg = action.ForegroundWindowTitle
	}
	return &FocusGate{
		Foreground: fg,
		title:      strings.ToLower(strings.TrimSpace(title)),
		interval:   defaultFocusInterval,
		logger:     logger,
	}
}

// Focused reports whether the selected window was focused at the last check.
func (g *FocusGate) Focused(now time.Time) bool {
	if g == nil || g.title == "" {
		return true
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.checkedAt.IsZero() && now.Sub(g.checkedAt) < g.interval {
		return g.focused
	}
	g.checkedAt = now
	fgTitle, err := g.Foreground()
	if err != nil {
		if g.logger != nil {
			g.logger.Error("foreground title error", "error", err)
		}
		g.focused = false
		return false
	}
	current := strings.ToLower(strings.TrimSpace(fgTitle))
	focused := current == g.title
	if current != g.lastTitle || focused != g.focused {
		g.lastTitle = current
		if g.logger != nil {
			if focused {
				g.logger.Debug("focus acquired", "window", fgTitle)
			} else {
				g.logger.Debug("focus lost", "window", fgTitle)
			}
		}
	}
	g.focused = focused
	return focused
}
