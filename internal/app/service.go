// Package service builds the medal dashboard: it loads every data group,
// isolates their failures, and renders the page and chart exports.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/medailles/internal/adapters/loader"
	"github.com/okian/medailles/internal/adapters/render/export"
	"github.com/okian/medailles/internal/config"
	"github.com/okian/medailles/internal/domain/chartstyle"
	"github.com/okian/medailles/internal/domain/interaction"
	"github.com/okian/medailles/internal/domain/model"
	"github.com/okian/medailles/internal/domain/series"
	"github.com/okian/medailles/pkg/logger"
	"github.com/okian/medailles/pkg/metrics"
)

// Service builds dashboards from one data source.
type Service struct {
	loader    loader.Loader
	resources config.Resources
	years     []int
	siteURL   string
	outputDir string

	styleOpts []chartstyle.Option
	tolerance float64
	width     int
	height    int

	logger logger.Logger
	now    func() time.Time

	composerOnce sync.Once
	composer     *export.Composer
	composerErr  error
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithResources sets the input file names.
func WithResources(r config.Resources) Option {
	return func(s *Service) {
		if r.Editions != "" {
			s.resources.Editions = r.Editions
		}
		if r.DayPattern != "" {
			s.resources.DayPattern = r.DayPattern
		}
		if r.Sports != "" {
			s.resources.Sports = r.Sports
		}
		if r.Athletes != "" {
			s.resources.Athletes = r.Athletes
		}
	}
}

// WithYears sets the comparison years, active year first.
func WithYears(years []int) Option {
	return func(s *Service) {
		if len(years) > 0 {
			s.years = append([]int(nil), years...)
		}
	}
}

// WithSiteURL sets the watermark text.
func WithSiteURL(url string) Option {
	return func(s *Service) {
		if url != "" {
			s.siteURL = url
		}
	}
}

// WithOutputDir sets where Rebuild writes the site.
func WithOutputDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.outputDir = dir
		}
	}
}

// WithOpacityRange bounds the historical line opacity.
func WithOpacityRange(minOpacity, maxOpacity float64) Option {
	return func(s *Service) {
		s.styleOpts = append(s.styleOpts, chartstyle.WithOpacityRange(minOpacity, maxOpacity))
	}
}

// WithHoverTolerance sets the nearest-line distance in pixels.
func WithHoverTolerance(px float64) Option {
	return func(s *Service) {
		if px > 0 {
			s.tolerance = px
		}
	}
}

// WithChartSize sets the raster chart size in CSS pixels.
func WithChartSize(width, height int) Option {
	return func(s *Service) {
		if width > 0 && height > 0 {
			s.width, s.height = width, height
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

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a Service reading through l.
func New(l loader.Loader, opts ...Option) *Service {
	defaults := config.New(context.Background())
	s := &Service{
		loader:    l,
		resources: defaults.Resources,
		years:     append([]int(nil), series.DefaultYears...),
		siteURL:   defaults.SiteURL,
		outputDir: defaults.OutputDir,
		tolerance: interaction.DefaultTolerance,
		width:     defaults.ChartWidth,
		height:    defaults.ChartHeight,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	return s
}

// ActiveYear is the emphasized comparison year.
func (s *Service) ActiveYear() int { return s.years[0] }

// Build loads the four data groups. A failing group is logged, counted and
// recorded on the Dashboard; the others are unaffected. Build itself only
// fails when ctx is done.
func (s *Service) Build(ctx context.Context) (*Dashboard, error) {
	start := s.now()
	d := &Dashboard{
		BuildID: uuid.NewString(),
		BuiltAt: start,
		Years:   s.years,
		errs:    make(map[Group]error, len(Groups)),
	}
	s.logger.Info(ctx, "building dashboard", logger.String("buildID", d.BuildID), logger.Any("years", s.years))

	d.errs[GroupEditions] = s.runGroup(ctx, GroupEditions, func(ctx context.Context) error {
		rows, err := loader.LoadJSON[[]model.EditionRecord](ctx, s.loader, s.resources.Editions)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return model.ErrInvalidData
		}
		d.Editions = rows
		return nil
	})

	d.errs[GroupComparison] = s.runGroup(ctx, GroupComparison, func(ctx context.Context) error {
		days, err := loader.LoadComparison(ctx, s.loader, s.years, s.resources.DayFile)
		if err != nil {
			return err
		}
		if err := s.checkDays(ctx, days); err != nil {
			return err
		}
		d.Days = days
		d.Series = series.BuildAll(days, s.years)
		return nil
	})

	d.errs[GroupSports] = s.runGroup(ctx, GroupSports, func(ctx context.Context) error {
		rows, err := loader.LoadJSON[[]model.SportRecord](ctx, s.loader, s.resources.Sports)
		if err != nil {
			return err
		}
		d.Sports = rows
		return nil
	})

	d.errs[GroupAthletes] = s.runGroup(ctx, GroupAthletes, func(ctx context.Context) error {
		rows, err := loader.LoadJSON[[]model.AthleteRecord](ctx, s.loader, s.resources.Athletes)
		if err != nil {
			return err
		}
		d.Athletes = rows
		return nil
	})

	elapsed := s.now().Sub(start)
	outcome := metrics.OutcomeOK
	if len(d.Failed()) > 0 {
		outcome = metrics.OutcomeError
	}
	metrics.RecordBuild(outcome, float64(elapsed.Microseconds())/1000, s.now().Unix())

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "dashboard built",
		logger.String("buildID", d.BuildID),
		logger.Any("failed", d.Failed()),
		logger.Duration("elapsed", elapsed),
	)
	return d, nil
}

// checkDays rejects unusable comparison data. The active year must have
// rows; an empty historical year is dropped with a warning.
func (s *Service) checkDays(ctx context.Context, days model.DaysByYear) error {
	for _, year := range s.years {
		rows := days[year]
		if len(rows) == 0 {
			if year == s.ActiveYear() {
				return fmt.Errorf("%w: active year %d has no rows", model.ErrInvalidData, year)
			}
			s.logger.Warn(ctx, "comparison year has no rows", logger.Int("year", year))
			delete(days, year)
			continue
		}
		if err := model.ValidateDays(rows); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) runGroup(ctx context.Context, g Group, fn func(context.Context) error) error {
	start := s.now()
	err := fn(ctx)
	ms := float64(s.now().Sub(start).Microseconds()) / 1000
	if err != nil {
		metrics.RecordGroupLoad(string(g), metrics.OutcomeError, ms)
		metrics.RecordErrorByComponent(string(g), errorType(err))
		s.logger.Error(ctx, "data group failed", logger.String("group", string(g)), logger.Error(err))
		return err
	}
	metrics.RecordGroupLoad(string(g), metrics.OutcomeOK, ms)
	s.logger.Debug(ctx, "data group loaded", logger.String("group", string(g)), logger.Float64("ms", ms))
	return nil
}

func errorType(err error) string {
	switch {
	case errors.Is(err, loader.ErrDecode):
		return "decode"
	case errors.Is(err, loader.ErrLoad):
		return "load"
	case errors.Is(err, model.ErrInvalidData):
		return "invalid_data"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	}
	return "other"
}

// Rebuild builds and writes the site to the configured output directory.
func (s *Service) Rebuild(ctx context.Context) error {
	d, err := s.Build(ctx)
	if err != nil {
		return err
	}
	return s.Write(ctx, d, s.outputDir)
}

func (s *Service) exporter() (*export.Composer, error) {
	s.composerOnce.Do(func() {
		s.composer, s.composerErr = export.New(export.WithSiteURL(s.siteURL))
	})
	return s.composer, s.composerErr
}
