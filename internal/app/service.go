// Package service runs one chart generation: fetch time entries, aggregate
// hours per employee, lay out the pie and write the image.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/okian/workhours/internal/adapters/source"
	"github.com/okian/workhours/internal/domain/aggregate"
	"github.com/okian/workhours/internal/domain/layout"
	"github.com/okian/workhours/internal/domain/model"
	"github.com/okian/workhours/internal/domain/validate"
	"github.com/okian/workhours/pkg/logger"
	"github.com/okian/workhours/pkg/metrics"
)

const defaultOutputPath = "pie-chart.png"

// Renderer writes laid-out slices to a file.
type Renderer interface {
	RenderFile(path string, slices []model.PieSlice) error
}

// Result describes a finished chart.
type Result struct {
	RunID      string
	Entries    int
	Report     validate.Report
	Employees  []model.AggregatedEmployee
	TotalHours float64
	Slices     []model.PieSlice
	OutputPath string
}

// Service wires the source, the domain pipeline and the renderer.
type Service struct {
	source         source.Source
	renderer       Renderer
	outputPath     string
	groupBy        aggregate.Key
	intervalPolicy validate.Policy
	colors         layout.ColorPolicy
	runID          string
	logger         logger.Logger
}

// New constructs a Service. Without WithRenderer, Run fails in the render
// stage; cmd wires a render.PNGRenderer.
func New(opts ...Option) *Service {
	s := &Service{
		outputPath:     defaultOutputPath,
		groupBy:        aggregate.ByName,
		intervalPolicy: validate.PolicyWarn,
		colors:         layout.PaletteColors(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.runID == "" {
		s.runID = uuid.NewString()
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	s.logger = logger.With(s.logger, logger.String("runID", s.runID))
	return s
}

// RunID returns the identifier of this service's run.
func (s *Service) RunID() string { return s.runID }

// Run fetches, charts and writes. It either produces the full image or
// returns an error naming the stage that failed; nothing is retried.
func (s *Service) Run(ctx context.Context) (res Result, err error) {
	defer func() {
		if err != nil {
			metrics.RecordRun(metrics.OutcomeFailure)
			return
		}
		metrics.RecordRun(metrics.OutcomeSuccess)
	}()

	if s.source == nil {
		return Result{RunID: s.runID}, ErrNoSource
	}

	s.logger.Info(ctx, "fetching time entries")
	entries, err := s.source.Fetch(ctx)
	if err != nil {
		return Result{RunID: s.runID}, fmt.Errorf("%w: %w", ErrFetch, err)
	}

	res, err = s.Chart(ctx, entries)
	if err != nil {
		return res, err
	}

	if s.renderer == nil {
		return res, fmt.Errorf("%w: no renderer configured", ErrRender)
	}
	start := time.Now()
	if err := s.renderer.RenderFile(s.outputPath, res.Slices); err != nil {
		return res, fmt.Errorf("%w: %w", ErrRender, err)
	}
	metrics.RecordRenderDuration(float64(time.Since(start).Milliseconds()))
	res.OutputPath = s.outputPath

	s.logger.Info(ctx, "pie chart written",
		logger.String("path", s.outputPath),
		logger.Int("slices", len(res.Slices)),
	)
	return res, nil
}

// Chart turns raw entries into slices without touching the network or disk.
func (s *Service) Chart(ctx context.Context, entries []model.TimeEntry) (Result, error) {
	res := Result{RunID: s.runID, Entries: len(entries)}

	kept, report, err := validate.Apply(entries, s.intervalPolicy)
	res.Report = report
	if err != nil {
		return res, fmt.Errorf("%w: %w", ErrValidate, err)
	}
	for _, issue := range report.Issues {
		s.logger.Warn(ctx, "time entry ends before it starts",
			logger.Int("index", issue.Index),
			logger.String("employee", issue.EmployeeName),
			logger.Float64("hours", issue.Hours),
			logger.String("policy", string(report.Policy)),
		)
	}
	if n := len(report.Issues); n > 0 {
		metrics.RecordInvalidIntervals(string(report.Policy), n)
	}

	res.Employees = aggregate.Aggregate(kept, aggregate.WithKey(s.groupBy))
	res.TotalHours = aggregate.TotalHours(res.Employees)
	metrics.UpdateChart(len(res.Employees), res.TotalHours)
	s.logger.Debug(ctx, "aggregated hours",
		logger.Int("entries", len(kept)),
		logger.Int("employees", len(res.Employees)),
		logger.Float64("totalHours", res.TotalHours),
	)

	res.Slices, err = layout.Layout(res.Employees, layout.WithColorPolicy(s.colors))
	if err != nil {
		return res, fmt.Errorf("%w: %w", ErrLayout, err)
	}
	return res, nil
}
