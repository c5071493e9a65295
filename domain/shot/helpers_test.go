package shot

import (
	"log/slog"
	"time"

	"github.com/soocke/flick-bot-go/domain/geom"
)

var discardLogger = slog.New(slog.NewTextHandler(&discardWriter{}, nil))

type discardWriter struct{}

func (d *discardWriter) Write(p []byte) (int, error) { return len(p), nil }

var base = time.Unix(1_700_000_000, 0)

// at returns base shifted by ms milliseconds.
func at(ms int) time.Time { return base.Add(time.Duration(ms) * time.Millisecond) }

// Object resting low on screen and a target well above it (separation 160).
var (
	restObject = geom.R(100, 200, 140, 240)
	highTarget = geom.R(300, 40, 340, 80)
)

func shiftX(r geom.Rect, dx int) geom.Rect {
	return geom.R(r.Left+dx, r.Top, r.Right+dx, r.Bottom)
}
