package detect

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	jsoniter "github.com/json-iterator/go"

	"github.com/soocke/flick-bot-go/config"
	"github.com/soocke/flick-bot-go/domain/capture"
	"github.com/soocke/flick-bot-go/domain/geom"
	"github.com/soocke/flick-bot-go/domain/shot"
)

// ErrMalformed reports detector output that is not a usable response.
var ErrMalformed = errors.New("malformed detector response")

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// waitDelay bounds how long a killed detector may hold its output pipes.
const waitDelay = 500 * time.Millisecond

// Detector turns a captured frame into a detection frame. Implementations
// never fail: any problem is reported as an absent detection.
type Detector interface {
	Detect(ctx context.Context, snap capture.FrameSnapshot) shot.DetectionFrame
}

// response is the detector's stdout payload: ball is the tracked object and
// net is the target.
type response struct {
	Ball *geom.Rect `json:"ball"`
	Net  *geom.Rect `json:"net"`
}

// ParseResponse decodes detector stdout into object and target rectangles.
func ParseResponse(out []byte) (object, target geom.Rect, err error) {
	if !bytes.HasPrefix(out, []byte("{")) {
		return geom.Rect{}, geom.Rect{}, fmt.Errorf("%w: output does not start with '{'", ErrMalformed)
	}
	var res response
	if err := json.Unmarshal(out, &res); err != nil {
		return geom.Rect{}, geom.Rect{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if res.Ball == nil || res.Net == nil {
		return geom.Rect{}, geom.Rect{}, fmt.Errorf("%w: missing ball or net", ErrMalformed)
	}
	return *res.Ball, *res.Net, nil
}

// ProcessDetector runs an external detector executable once per frame. The
// frame is written to FramePath as JPEG and the command is expected to print
// a JSON response on stdout and exit 0.
type ProcessDetector struct {
	Command   string
	Args      []string
	FramePath string
	Timeout   time.Duration
	logger    *slog.Logger
	now       func() time.Time
}

// NewProcessDetector builds a detector from cfg. A nil cfg uses defaults.
func NewProcessDetector(cfg *config.Config, logger *slog.Logger) *ProcessDetector {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &ProcessDetector{
		Command:   cfg.DetectorCommand,
		Args:      frameArgs(cfg.DetectorArgs, cfg.FramePath),
		FramePath: cfg.FramePath,
		Timeout:   time.Duration(cfg.DetectorTimeoutMs) * time.Millisecond,
		logger:    logger,
		now:       time.Now,
	}
}

// Detect saves the frame, runs the detector and parses its answer. The
// returned frame is stamped when the detector result arrives.
func (d *ProcessDetector) Detect(ctx context.Context, snap capture.FrameSnapshot) shot.DetectionFrame {
	object, target, err := d.run(ctx, snap)
	now := d.now()
	if err != nil {
		if d.logger != nil {
			d.logger.Debug("no detection", "sequence", snap.Sequence, "error", err)
		}
		return shot.Absent(now)
	}
	return shot.Detected(object, target, now)
}

func (d *ProcessDetector) run(ctx context.Context, snap capture.FrameSnapshot) (geom.Rect, geom.Rect, error) {
	if snap.Image != nil {
		if err := imaging.Save(snap.Image, d.FramePath); err != nil {
			return geom.Rect{}, geom.Rect{}, fmt.Errorf("save frame: %w", err)
		}
	}
	if d.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.Timeout)
		defer cancel()
	}
	cmd := exec.CommandContext(ctx, d.Command, d.Args...)
	cmd.WaitDelay = waitDelay
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return geom.Rect{}, geom.Rect{}, fmt.Errorf("run detector %q: %w (stderr: %s)", d.Command, err, bytes.TrimSpace(stderr.Bytes()))
	}
	return ParseResponse(out)
}

// frameArgs copies args with the frame placeholder replaced by framePath.
func frameArgs(args []string, framePath string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = strings.ReplaceAll(a, config.FramePlaceholder, framePath)
	}
	return out
}

var _ Detector = (*ProcessDetector)(nil)
