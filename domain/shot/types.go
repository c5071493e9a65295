package shot

import (
	"time"

	"github.com/soocke/flick-bot-go/config"
	"github.com/soocke/flick-bot-go/domain/geom"
)

// Option holds a value that may be absent. The zero value is None.
type Option[T any] struct {
	value T
	set   bool
}

// Some wraps v as a present value.
func Some[T any](v T) Option[T] { return Option[T]{value: v, set: true} }

// None returns an absent value.
func None[T any]() Option[T] { return Option[T]{} }

// Get returns the value and whether it is present.
func (o Option[T]) Get() (T, bool) { return o.value, o.set }

// IsSome reports whether a value is present.
func (o Option[T]) IsSome() bool { return o.set }

// DetectionFrame is one detector observation. Object and Target are only
// meaningful when Present is true.
type DetectionFrame struct {
	Present    bool
	Object     geom.Rect
	Target     geom.Rect
	ObservedAt time.Time
}

// Absent builds a frame with no detection observed at t.
func Absent(t time.Time) DetectionFrame { return DetectionFrame{ObservedAt: t} }

// Detected builds a frame carrying both rectangles observed at t.
func Detected(object, target geom.Rect, t time.Time) DetectionFrame {
	return DetectionFrame{Present: true, Object: object, Target: target, ObservedAt: t}
}

// ActionCommand is a single flick: press at the origin centre and drag by
// (MoveX, MoveY) in screen pixels.
type ActionCommand struct {
	Origin   geom.Rect
	MoveX    int
	MoveY    int
	IssuedAt time.Time
	Round    string
}

// EngineState is the long-lived memory of the engine between frames.
type EngineState struct {
	SessionTracker
	LastObjectRect   Option[geom.Rect]
	LastTargetRect   Option[geom.Rect]
	LastTargetXDelta int
	LastActionAt     Option[time.Time]
}

// Phase is the engine's macro state as of the last processed frame.
type Phase int

const (
	PhaseNoRound Phase = iota
	PhaseSettling
	PhaseMovingTarget
)

func (p Phase) String() string {
	switch p {
	case PhaseNoRound:
		return "no-round"
	case PhaseSettling:
		return "settling"
	case PhaseMovingTarget:
		return "moving-target"
	default:
		return "unknown"
	}
}

// PhaseListener is called on every phase change.
type PhaseListener func(prev, next Phase)

// Params are the tuning constants of the gate, classifier and planner.
type Params struct {
	VerticalMagnitude      int
	MaxHorizontalMagnitude int
	SettleCooldown         time.Duration
	MovingCooldown         time.Duration
	MaxObjectJitter        int
	MinVerticalSeparation  int
	DeadZone               float64
	EaseScale              float64
	MovingStageAttempts    int
	StampOnCompletion      bool
}

// DefaultParams returns the parameters derived from config.DefaultConfig.
func DefaultParams() Params { return ParamsFromConfig(nil) }

// ParamsFromConfig extracts engine parameters. A nil cfg yields defaults.
func ParamsFromConfig(cfg *config.Config) Params {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return Params{
		VerticalMagnitude:      cfg.FlickMovementY,
		MaxHorizontalMagnitude: cfg.FlickMovementXMax,
		SettleCooldown:         time.Duration(cfg.SettleCooldownMs) * time.Millisecond,
		MovingCooldown:         time.Duration(cfg.MovingCooldownMs) * time.Millisecond,
		MaxObjectJitter:        cfg.MaxObjectJitterPx,
		MinVerticalSeparation:  cfg.MinVerticalSeparationPx,
		DeadZone:               cfg.DeadZone,
		EaseScale:              cfg.EaseScale,
		MovingStageAttempts:    cfg.MovingStageAttempts,
		StampOnCompletion:      cfg.StampOnCompletion,
	}
}
