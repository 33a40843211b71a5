package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Environment variable names and the flag that points at a config file.
const (
	envPrefix  = "WORKHOURS_"
	envConfig  = envPrefix + "CONFIG"
	envDotenv  = envPrefix + "DOTENV"
	dotenvFile = ".env"
	flagConfig = "config"
)

// BindFlags registers a flag for every config key on flags, plus --config.
// Flags are only applied by Load when set explicitly.
func BindFlags(flags *pflag.FlagSet) {
	d := New()
	flags.String(flagConfig, "", "path to a YAML config file (env "+envConfig+")")
	flags.String("log-level", d.LogLevel, "log level: debug, info, warn, error")
	flags.String("log-format", d.LogFormat, "log format: text, json, auto")
	flags.String("source-url", d.SourceURL, "time entry endpoint URL")
	flags.Duration("request-timeout", d.RequestTimeout, "timeout for the time entry request")
	flags.Bool("skip-deleted", d.SkipDeleted, "drop entries that carry a DeletedOn timestamp")
	flags.Int64("max-body-bytes", d.MaxBodyBytes, "maximum accepted response size")
	flags.StringP("output-path", "o", d.OutputPath, "where to write the PNG chart")
	flags.String("group-by", d.GroupBy, "aggregation key: name or id")
	flags.String("interval-policy", d.IntervalPolicy, "inverted interval handling: keep, warn, clamp, reject")
	flags.String("color-policy", d.ColorPolicy, "slice colors: palette, seeded, random")
	flags.Int64("color-seed", d.ColorSeed, "seed for the seeded color policy")
	flags.Int("width", d.Width, "canvas width in pixels")
	flags.Int("height", d.Height, "canvas height in pixels")
	flags.Int("margin", d.Margin, "gap between canvas edge and pie in pixels")
	flags.Float64("font-size", d.FontSize, "label font size in points")
	flags.String("metrics-textfile", d.MetricsTextfile, "write run metrics to this file in Prometheus text format")
}

// Load builds a Config by layering defaults, optional .env, optional file, env vars and flags.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. .env in the working directory, or the file named by WORKHOURS_DOTENV;
//     it never overrides variables already present in the environment
//  3. file (YAML) from --config or WORKHOURS_CONFIG
//  4. env (prefix WORKHOURS_)
//  5. flags explicitly set on flags (may be nil)
func Load(_ context.Context, flags *pflag.FlagSet) (*Config, error) {
	base := New()

	if err := loadDotenv(); err != nil {
		return nil, fmt.Errorf("%w: dotenv: %w", ErrLoadConfig, err)
	}

	k := koanf.New(".")

	if path := configPath(flags); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: file %s: %w", ErrLoadConfig, path, err)
		}
	}

	// WORKHOURS_SOURCE_URL -> source_url. Underscores are kept to match koanf tags.
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	if flags != nil {
		flagProvider := posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed || f.Name == flagConfig {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		})
		if err := k.Load(flagProvider, nil); err != nil {
			return nil, fmt.Errorf("%w: flags: %w", ErrLoadConfig, err)
		}
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func configPath(flags *pflag.FlagSet) string {
	if flags != nil {
		if f := flags.Lookup(flagConfig); f != nil && f.Changed {
			return f.Value.String()
		}
	}
	return os.Getenv(envConfig)
}

func loadDotenv() error {
	path, explicit := os.LookupEnv(envDotenv)
	if !explicit || path == "" {
		path, explicit = dotenvFile, false
	}
	if _, err := os.Stat(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}
