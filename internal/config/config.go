// Package config defines workhours configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Loading functions accept context.Context as the first parameter.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/okian/workhours/internal/domain/aggregate"
	"github.com/okian/workhours/internal/domain/layout"
	"github.com/okian/workhours/internal/domain/validate"
	"github.com/okian/workhours/pkg/logger"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text, json or auto (text on a terminal).
	LogFormat string `koanf:"log_format"`

	// SourceURL is the time-entry endpoint, including any access code query.
	SourceURL string `koanf:"source_url"`

	// RequestTimeout bounds the single fetch.
	RequestTimeout time.Duration `koanf:"request_timeout"`

	// SkipDeleted drops entries carrying a DeletedOn timestamp.
	SkipDeleted bool `koanf:"skip_deleted"`

	// MaxBodyBytes caps the accepted response size.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`

	// OutputPath is where the PNG chart is written.
	OutputPath string `koanf:"output_path"`

	// GroupBy is the aggregation key: name or id.
	GroupBy string `koanf:"group_by"`

	// IntervalPolicy handles entries ending before they start: keep, warn, clamp, reject.
	IntervalPolicy string `koanf:"interval_policy"`

	// ColorPolicy picks slice colors: palette, seeded, random.
	ColorPolicy string `koanf:"color_policy"`

	// ColorSeed seeds the seeded color policy.
	ColorSeed int64 `koanf:"color_seed"`

	// Width and Height set the canvas size in pixels.
	Width  int `koanf:"width"`
	Height int `koanf:"height"`

	// Margin is the gap between the canvas edge and the pie.
	Margin int `koanf:"margin"`

	// FontSize is the label size in points.
	FontSize float64 `koanf:"font_size"`

	// MetricsTextfile, when set, receives the run metrics in Prometheus text format.
	MetricsTextfile string `koanf:"metrics_textfile"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		LogFormat:      logger.FormatText,
		RequestTimeout: 30 * time.Second,
		MaxBodyBytes:   32 << 20,
		OutputPath:     "pie-chart.png",
		GroupBy:        string(aggregate.ByName),
		IntervalPolicy: string(validate.PolicyWarn),
		ColorPolicy:    layout.ColorPolicyPalette,
		ColorSeed:      1,
		Width:          800,
		Height:         800,
		Margin:         50,
		FontSize:       24,
	}
}

// Validate checks every field and reports the first problem found.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.SourceURL) == "" {
		return fmt.Errorf("%w: source_url must not be empty", ErrInvalidConfig)
	}
	u, err := url.Parse(c.SourceURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: source_url %q must be an absolute http(s) URL", ErrInvalidConfig, c.SourceURL)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("%w: request_timeout must be positive", ErrInvalidConfig)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("%w: max_body_bytes must be positive", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.OutputPath) == "" {
		return fmt.Errorf("%w: output_path must not be empty", ErrInvalidConfig)
	}
	switch strings.ToLower(c.LogFormat) {
	case logger.FormatText, logger.FormatJSON, logger.FormatAuto:
	default:
		return fmt.Errorf("%w: log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	if _, err := aggregate.ParseKey(c.GroupBy); err != nil {
		return fmt.Errorf("%w: group_by: %w", ErrInvalidConfig, err)
	}
	if _, err := validate.ParsePolicy(c.IntervalPolicy); err != nil {
		return fmt.Errorf("%w: interval_policy: %w", ErrInvalidConfig, err)
	}
	if _, err := layout.ParseColorPolicy(c.ColorPolicy, c.ColorSeed); err != nil {
		return fmt.Errorf("%w: color_policy: %w", ErrInvalidConfig, err)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: width and height must be positive", ErrInvalidConfig)
	}
	if c.Margin < 0 || 2*c.Margin >= min(c.Width, c.Height) {
		return fmt.Errorf("%w: margin %d does not fit a %dx%d canvas", ErrInvalidConfig, c.Margin, c.Width, c.Height)
	}
	if c.FontSize <= 0 {
		return fmt.Errorf("%w: font_size must be positive", ErrInvalidConfig)
	}
	return nil
}
