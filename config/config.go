package config

import (
	"encoding/json"
	"os"
)

// Config holds runtime configuration for the detector, the shot engine and
// the action executor. Fields may be loaded from a JSON file and overridden
// by command-line flags.
type Config struct {
	Debug    bool   `json:"debug"`
	LogLevel string `json:"log_level"`
	LogFile  string `json:"log_file"`

	// External detector
	DetectorCommand   string   `json:"detector_command"`
	DetectorArgs      []string `json:"detector_args"`
	FramePath         string   `json:"frame_path"`
	DetectorTimeoutMs int      `json:"detector_timeout_ms"`
	FrameIntervalMs   int      `json:"frame_interval_ms"`

	// Flick shape
	FlickMovementY    int `json:"flick_movement_y"`
	FlickMovementXMax int `json:"flick_movement_x_max"`
	FlickSteps        int `json:"flick_steps"`
	FlickStepDelayMs  int `json:"flick_step_delay_ms"`

	// Shot gate and classifier
	SettleCooldownMs        int     `json:"settle_cooldown_ms"`
	MovingCooldownMs        int     `json:"moving_cooldown_ms"`
	MaxObjectJitterPx       int     `json:"max_object_jitter_px"`
	MinVerticalSeparationPx int     `json:"min_vertical_separation_px"`
	DeadZone                float64 `json:"dead_zone"`
	EaseScale               float64 `json:"ease_scale"`
	MovingStageAttempts     int     `json:"moving_stage_attempts"`
	StampOnCompletion       bool    `json:"stamp_on_completion"`

	// Preview and focus
	CropMargin  int    `json:"crop_margin"`
	PreviewPath string `json:"preview_path"`
	WindowTitle string `json:"window_title"`

	// Capture selection rectangle; zero size captures the full screen.
	SelectionX int `json:"selection_x"`
	SelectionY int `json:"selection_y"`
	SelectionW int `json:"selection_w"`
	SelectionH int `json:"selection_h"`
}

// FramePlaceholder in DetectorArgs is replaced by FramePath.
const FramePlaceholder = "{frame}"

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:                   false,
		LogLevel:                "info",
		LogFile:                 "",
		DetectorCommand:         "custom_object_detector",
		DetectorArgs:            []string{".", FramePlaceholder},
		FramePath:               "last_frame.jpg",
		DetectorTimeoutMs:       10000,
		FrameIntervalMs:         50,
		FlickMovementY:          40,
		FlickMovementXMax:       30,
		FlickSteps:              10,
		FlickStepDelayMs:        5,
		SettleCooldownMs:        3000,
		MovingCooldownMs:        5000,
		MaxObjectJitterPx:       5,
		MinVerticalSeparationPx: 100,
		DeadZone:                0.1,
		EaseScale:               0.65,
		MovingStageAttempts:     10,
		StampOnCompletion:       false,
		CropMargin:              200,
		PreviewPath:             "",
		WindowTitle:             "",
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	d := DefaultConfig()
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		c.LogLevel = d.LogLevel
	}
	if c.DetectorCommand == "" {
		c.DetectorCommand = d.DetectorCommand
	}
	if c.FramePath == "" {
		c.FramePath = d.FramePath
	}
	if c.DetectorTimeoutMs <= 0 {
		c.DetectorTimeoutMs = d.DetectorTimeoutMs
	}
	if c.FrameIntervalMs <= 0 {
		c.FrameIntervalMs = d.FrameIntervalMs
	}
	if c.FlickMovementY < 0 {
		c.FlickMovementY = d.FlickMovementY
	}
	if c.FlickMovementXMax < 0 {
		c.FlickMovementXMax = d.FlickMovementXMax
	}
	if c.FlickSteps <= 0 {
		c.FlickSteps = 1
	}
	if c.FlickStepDelayMs < 0 {
		c.FlickStepDelayMs = 0
	}
	if c.SettleCooldownMs < 0 {
		c.SettleCooldownMs = d.SettleCooldownMs
	}
	if c.MovingCooldownMs < 0 {
		c.MovingCooldownMs = d.MovingCooldownMs
	}
	if c.MaxObjectJitterPx <= 0 {
		c.MaxObjectJitterPx = d.MaxObjectJitterPx
	}
	if c.MinVerticalSeparationPx < 0 {
		c.MinVerticalSeparationPx = d.MinVerticalSeparationPx
	}
	if c.DeadZone < 0 || c.DeadZone >= 1 {
		c.DeadZone = d.DeadZone
	}
	if c.EaseScale <= 0 {
		c.EaseScale = d.EaseScale
	}
	if c.MovingStageAttempts < 0 {
		c.MovingStageAttempts = d.MovingStageAttempts
	}
	if c.CropMargin < 0 {
		c.CropMargin = 0
	}
	if c.SelectionW < 0 || c.SelectionH < 0 {
		c.SelectionW, c.SelectionH = 0, 0
	}
	return nil
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return DefaultConfig(), err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
