package capture

import (
	"image"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

const (
	statsLogInterval       = 5 * time.Second
	defaultCaptureInterval = 20 * time.Millisecond
)

// Service acquires frames (selection or full screen) on its own goroutine and
// exposes the latest capture alongside instrumentation data.
type Service struct {
	grab     GrabFunc
	interval time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	selFn   func() *image.Rectangle
	done    chan struct{}
	stopped chan struct{}

	running      atomic.Bool
	latest       atomic.Pointer[FrameSnapshot]
	captures     atomic.Uint64
	skipped      atomic.Uint64
	captureNanos atomic.Uint64
	sequence     atomic.Uint64
}

// NewService constructs a capture service. A nil grab uses the screen
// grabber; a non-positive interval uses the default pacing.
func NewService(logger *slog.Logger, grab GrabFunc, interval time.Duration) *Service {
	if grab == nil {
		grab = Grab
	}
	if interval <= 0 {
		interval = defaultCaptureInterval
	}
	return &Service{grab: grab, interval: interval, logger: logger}
}

// SetSelectionProvider sets the function returning the capture rectangle.
func (s *Service) SetSelectionProvider(fn func() *image.Rectangle) {
	s.mu.Lock()
	s.selFn = fn
	s.mu.Unlock()
}

func (s *Service) LatestFrame() FrameSnapshot {
	snap := s.latest.Load()
	if snap == nil {
		return FrameSnapshot{}
	}
	return *snap
}

func (s *Service) Running() bool { return s.running.Load() }

func (s *Service) Stats() Stats {
	captures := s.captures.Load()
	total := s.captureNanos.Load()
	var avg time.Duration
	if captures > 0 {
		avg = time.Duration(total / captures)
	}
	snapshot := s.LatestFrame()
	age := time.Duration(0)
	if !snapshot.CapturedAt.IsZero() {
		age = time.Since(snapshot.CapturedAt)
	}
	return Stats{
		Captures:       captures,
		Skipped:        s.skipped.Load(),
		AvgCapture:     avg,
		LastCapture:    snapshot.CapturedAt,
		LatestFrameAge: age,
		Sequence:       snapshot.Sequence,
	}
}

// Start launches the capture goroutine. Idempotent.
func (s *Service) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running.Load() {
		return
	}
	s.done = make(chan struct{})
	s.stopped = make(chan struct{})
	s.running.Store(true)
	go s.loop(s.done, s.stopped)
}

// Stop halts the capture goroutine and waits for it to exit. Idempotent.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.running.Load() {
		s.mu.Unlock()
		return
	}
	s.running.Store(false)
	close(s.done)
	stopped := s.stopped
	s.mu.Unlock()
	<-stopped
}

func (s *Service) selection() *image.Rectangle {
	s.mu.Lock()
	fn := s.selFn
	s.mu.Unlock()
	if fn == nil {
		return nil
	}
	return fn()
}

// selectionOrigin is where a grab of sel starts on screen; Grab returns
// images anchored at (0,0).
func selectionOrigin(sel *image.Rectangle) image.Point {
	if sel == nil || sel.Empty() {
		return image.Point{}
	}
	return sel.Min
}

func (s *Service) loop(done <-chan struct{}, stopped chan<- struct{}) {
	defer close(stopped)
	defer recoverLog(s.logger, "capture loop panic")
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	logTicker := time.NewTicker(statsLogInterval)
	defer logTicker.Stop()
	for {
		select {
		case <-done:
			return
		case <-logTicker.C:
			s.logStats()
		case <-ticker.C:
			s.captureOnce()
		}
	}
}

func (s *Service) captureOnce() {
	start := time.Now()
	sel := s.selection()
	img, err := s.grab(sel)
	if err != nil || img == nil {
		s.skipped.Add(1)
		if err != nil && s.logger != nil {
			s.logger.Error("capture", "error", err)
		}
		return
	}
	s.captureNanos.Add(uint64(time.Since(start).Nanoseconds()))
	s.captures.Add(1)
	seq := s.sequence.Add(1)
	s.latest.Store(&FrameSnapshot{Image: img, CapturedAt: time.Now(), Sequence: seq, Origin: selectionOrigin(sel)})
}

func (s *Service) logStats() {
	if s.logger == nil {
		return
	}
	stats := s.Stats()
	s.logger.Debug("capture.stats",
		"captures", stats.Captures,
		"skipped", stats.Skipped,
		"avg_capture", stats.AvgCapture,
		"age", stats.LatestFrameAge,
	)
}

func recoverLog(logger *slog.Logger, msg string) {
	if r := recover(); r != nil {
		if logger != nil {
			logger.Error(msg, "error", r)
		}
	}
}

var _ FrameSource = (*Service)(nil)
