package service

import (
	"context"
	"time"

	"github.com/fincoach/backend/internal/analytics"
	"github.com/fincoach/backend/internal/model"
)

// Dashboard is the month-level summary returned to the client: the cashflow
// picture plus any material category movements.
type Dashboard struct {
	Month    string                `json:"month"`
	Cashflow model.Cashflow        `json:"cashflow"`
	Trends   []model.CategoryTrend `json:"trends"`
}

// GetDashboard computes the dashboard for one calendar month.
func (s *CoachService) GetDashboard(ctx context.Context, userID string, target analytics.Month) (*Dashboard, error) {
	if userID == "" {
		return nil, errRequired("userId")
	}

	// Fetch a padded superset of the two months the detectors compare; the
	// engine itself buckets by local calendar day, so the instant-based range
	// filter only needs to not lose rows at the edges.
	prev := target.Prev()
	start := time.Date(prev.Year, prev.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	end := time.Date(target.Year, target.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 1)

	txs, err := s.listAllTransactions(ctx, userID, &start, &end)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Month:    target.String(),
		Cashflow: analytics.CalculateCashflow(txs, target),
		Trends:   analytics.DetectCategoryTrends(txs, target, prev),
	}, nil
}
