package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/okian/workhours/internal/adapters/render"
	"github.com/okian/workhours/internal/adapters/source"
	app "github.com/okian/workhours/internal/app"
	"github.com/okian/workhours/internal/config"
	"github.com/okian/workhours/internal/domain/aggregate"
	"github.com/okian/workhours/internal/domain/layout"
	"github.com/okian/workhours/internal/domain/validate"
	"github.com/okian/workhours/pkg/logger"
	"github.com/okian/workhours/pkg/metrics"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Stderr.WriteString("workhours: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workhours",
		Short: "Chart worked hours per employee as a PNG pie chart",
		Long: `workhours fetches time entries from a time-tracking endpoint, sums the
worked hours of every employee and writes a pie chart of their shares.

Configuration is layered: defaults, .env, YAML file (--config or
WORKHOURS_CONFIG), WORKHOURS_* environment variables, then flags.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return run(ctx, cmd.Flags(), cmd.OutOrStdout())
		},
	}
	config.BindFlags(cmd.Flags())
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "workhours "+version)
		},
	})
	return cmd
}

func run(ctx context.Context, flags *pflag.FlagSet, out io.Writer) error {
	// Bootstrap logger until the configured format is known
	if err := logger.Init(logger.WithOutput(os.Stderr)); err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}

	// Load configuration (defaults -> .env -> file -> env -> flags)
	cfg, err := config.Load(ctx, flags)
	if err != nil {
		return err
	}

	if err := logger.Init(logger.WithOutput(os.Stderr), logger.WithFormat(cfg.LogFormat)); err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()
	loggerInstance := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc, err := newService(cfg, loggerInstance)
	if err != nil {
		return err
	}

	res, err := svc.Run(ctx)
	if cfg.MetricsTextfile != "" {
		if werr := metrics.WriteTextfile(cfg.MetricsTextfile); werr != nil {
			loggerInstance.Warn(ctx, "could not write metrics textfile", logger.String("path", cfg.MetricsTextfile), logger.Error(werr))
		}
	}
	if err != nil {
		loggerInstance.Error(ctx, "chart generation failed", logger.String("runID", svc.RunID()), logger.Error(err))
		return err
	}

	fmt.Fprintf(out, "Pie chart generated: %s (%d employees, %.2f hours)\n",
		res.OutputPath, len(res.Employees), res.TotalHours)
	return nil
}

// newService wires the source, renderer and domain policies from cfg.
func newService(cfg *config.Config, l logger.Logger) (*app.Service, error) {
	groupBy, err := aggregate.ParseKey(cfg.GroupBy)
	if err != nil {
		return nil, err
	}
	policy, err := validate.ParsePolicy(cfg.IntervalPolicy)
	if err != nil {
		return nil, err
	}
	colors, err := layout.ParseColorPolicy(cfg.ColorPolicy, cfg.ColorSeed)
	if err != nil {
		return nil, err
	}

	renderer, err := render.NewPNGRenderer(
		render.WithSize(cfg.Width, cfg.Height),
		render.WithMargin(cfg.Margin),
		render.WithFontSize(cfg.FontSize),
	)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	src := source.NewHTTPSource(cfg.SourceURL,
		source.WithTimeout(cfg.RequestTimeout),
		source.WithSkipDeleted(cfg.SkipDeleted),
		source.WithMaxBodyBytes(cfg.MaxBodyBytes),
		source.WithRequestID(runID),
		source.WithLogger(l),
	)

	return app.New(
		app.WithLogger(l),
		app.WithRunID(runID),
		app.WithSource(src),
		app.WithRenderer(renderer),
		app.WithOutputPath(cfg.OutputPath),
		app.WithGroupBy(groupBy),
		app.WithIntervalPolicy(policy),
		app.WithColorPolicy(colors),
	), nil
}
