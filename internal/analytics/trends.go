package analytics

import (
	"math"
	"sort"

	"github.com/fincoach/backend/internal/model"
)

// Materiality gates: a category shift must move more than 10% relative or
// $20 absolute to emit a signal. Small categories produce noisy percentages,
// so either threshold alone suffices.
const (
	trendMinDeltaPercent = 10.0
	trendMinDeltaDollars = 20.0
)

// DetectCategoryTrends computes month-over-month expense deltas per
// normalized category and returns the material ones, sorted by absolute
// monthly impact descending (category name breaks ties).
func DetectCategoryTrends(transactions []*model.Transaction, current, previous Month) []model.CategoryTrend {
	currentTotals := categoryExpenseTotals(transactions, current)
	previousTotals := categoryExpenseTotals(transactions, previous)

	categories := make(map[string]bool)
	for c := range currentTotals {
		categories[c] = true
	}
	for c := range previousTotals {
		categories[c] = true
	}

	var trends []model.CategoryTrend
	for category := range categories {
		cur := currentTotals[category]
		prev := previousTotals[category]
		if cur == 0 && prev == 0 {
			continue
		}

		var deltaPercent float64
		if prev == 0 {
			if cur > 0 {
				deltaPercent = 100
			}
		} else {
			deltaPercent = (cur - prev) / prev * 100
		}

		if math.Abs(deltaPercent) <= trendMinDeltaPercent && math.Abs(cur-prev) <= trendMinDeltaDollars {
			continue
		}

		// Larger, better-sampled categories get higher confidence,
		// capped at 0.95.
		confidence := math.Min(0.95, 0.7+math.Min(cur, prev)/1000*0.25)

		trends = append(trends, model.CategoryTrend{
			Category:           category,
			DeltaPercent:       round1(deltaPercent),
			MonthlyImpact:      round2(cur - prev),
			Confidence:         round2(confidence),
			CurrentMonthTotal:  round2(cur),
			PreviousMonthTotal: round2(prev),
		})
	}

	sort.Slice(trends, func(i, j int) bool {
		ai, aj := math.Abs(trends[i].MonthlyImpact), math.Abs(trends[j].MonthlyImpact)
		if ai != aj {
			return ai > aj
		}
		return trends[i].Category < trends[j].Category
	})

	return trends
}

// categoryExpenseTotals sums absolute expense amounts per normalized
// category for one month.
func categoryExpenseTotals(transactions []*model.Transaction, m Month) map[string]float64 {
	totals := make(map[string]float64)
	for _, t := range transactions {
		if t.Amount >= 0 || !m.Contains(t.Date) {
			continue
		}
		totals[NormalizeCategory(t.Category)] += -t.Amount
	}
	return totals
}
