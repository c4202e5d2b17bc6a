package service

import (
	"context"
	"time"

	"github.com/fintrack/fintrack-backend/internal/domain"
	"github.com/fintrack/fintrack-backend/internal/util"
	"golang.org/x/sync/errgroup"
)

// AnalyticsService computes aggregate views over transactions
type AnalyticsService struct {
	analyticsRepo domain.AnalyticsRepository
	now           func() time.Time
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(analyticsRepo domain.AnalyticsRepository) *AnalyticsService {
	return &AnalyticsService{
		analyticsRepo: analyticsRepo,
		now:           time.Now,
	}
}

// SetClock replaces the time source used for trailing windows
func (s *AnalyticsService) SetClock(now func() time.Time) {
	s.now = now
}

// GetSummary aggregates transactions over the trailing window named by period.
// A nil period means month; any unrecognised value, the empty string
// included, aggregates all time. The period is echoed back as given.
func (s *AnalyticsService) GetSummary(ctx context.Context, period *string) (*domain.Summary, error) {
	p := domain.DefaultPeriod
	if period != nil {
		p = domain.Period(*period)
	}

	var since *time.Time
	if days, ok := p.WindowDays(); ok {
		start := util.TrailingWindowStart(s.now(), days)
		since = &start
	}

	var (
		byType     []*domain.TypeSummary
		byCategory []*domain.CategorySummary
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		byType, err = s.analyticsRepo.SummarizeByType(gctx, since)
		return err
	})
	g.Go(func() error {
		var err error
		byCategory, err = s.analyticsRepo.SummarizeByCategory(gctx, since)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if byType == nil {
		byType = []*domain.TypeSummary{}
	}
	if byCategory == nil {
		byCategory = []*domain.CategorySummary{}
	}

	return &domain.Summary{
		Summary:    byType,
		Categories: byCategory,
		Period:     p,
	}, nil
}

// GetTrends returns per-month, per-type totals for the current month and the
// months-1 calendar months before it
func (s *AnalyticsService) GetTrends(ctx context.Context, months int) ([]*domain.MonthlyTrend, error) {
	if months < 1 || months > domain.MaxTrendMonths {
		return nil, domain.ErrInvalidMonthsWindow
	}

	since := util.TrailingMonthsStart(s.now(), months)
	trends, err := s.analyticsRepo.MonthlyTrends(ctx, since)
	if err != nil {
		return nil, err
	}
	if trends == nil {
		trends = []*domain.MonthlyTrend{}
	}
	return trends, nil
}
