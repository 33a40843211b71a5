package service

import (
	"github.com/okian/workhours/internal/adapters/source"
	"github.com/okian/workhours/internal/domain/aggregate"
	"github.com/okian/workhours/internal/domain/layout"
	"github.com/okian/workhours/internal/domain/validate"
	"github.com/okian/workhours/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSource sets where time entries come from.
func WithSource(src source.Source) Option {
	return func(s *Service) {
		if src != nil {
			s.source = src
		}
	}
}

// WithRenderer sets the chart renderer.
func WithRenderer(r Renderer) Option {
	return func(s *Service) {
		if r != nil {
			s.renderer = r
		}
	}
}

// WithOutputPath sets the chart file path.
func WithOutputPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.outputPath = path
		}
	}
}

// WithGroupBy sets the aggregation key.
func WithGroupBy(k aggregate.Key) Option {
	return func(s *Service) {
		if k != "" {
			s.groupBy = k
		}
	}
}

// WithIntervalPolicy sets how inverted intervals are handled.
func WithIntervalPolicy(p validate.Policy) Option {
	return func(s *Service) {
		if p != "" {
			s.intervalPolicy = p
		}
	}
}

// WithColorPolicy sets the slice color policy.
func WithColorPolicy(p layout.ColorPolicy) Option {
	return func(s *Service) {
		if p != nil {
			s.colors = p
		}
	}
}

// WithRunID sets the identifier attached to logs of this run.
func WithRunID(id string) Option {
	return func(s *Service) {
		if id != "" {
			s.runID = id
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
