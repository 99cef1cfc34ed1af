package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/fincoach/backend/internal/model"
)

// Frequency bands by average day-gap between occurrences. Anything outside
// every band is not classified and the group is dropped.
const (
	weeklyMinDays, weeklyMaxDays   = 5.0, 9.0
	monthlyMinDays, monthlyMaxDays = 25.0, 35.0
	yearlyMinDays, yearlyMaxDays   = 360.0, 370.0
)

// Interval-variance divisors for the confidence score. Weekly demands
// tighter regularity than monthly since its band is narrower. Yearly groups
// have too few samples to estimate variance, so they get a flat 0.7.
const (
	monthlyVarianceScale = 100.0
	weeklyVarianceScale  = 10.0
	yearlyConfidence     = 0.7
)

// chargeKey groups expenses by merchant identity and exact-cent amount.
// Amount matching is deliberately strict: different amounts for the same
// merchant are different charges.
type chargeKey struct {
	name  string
	cents int64
}

// DetectRecurringCharges finds subscription-like expense patterns: groups of
// at least two same-merchant, same-amount expenses whose spacing fits a
// weekly, monthly, or yearly band with confidence above 0.5. Results are
// sorted by confidence descending, then name.
func DetectRecurringCharges(transactions []*model.Transaction) []model.RecurringCharge {
	groups := make(map[chargeKey][]time.Time)
	for _, t := range transactions {
		if t.Amount >= 0 {
			continue
		}
		key := chargeKey{
			name:  t.Merchant(),
			cents: int64(math.Round(-t.Amount * 100)),
		}
		groups[key] = append(groups[key], t.Date)
	}

	var charges []model.RecurringCharge
	for key, dates := range groups {
		if len(dates) < 2 {
			continue
		}

		sort.Slice(dates, func(i, j int) bool {
			return DateOnly(dates[i]).Before(DateOnly(dates[j]))
		})

		intervals := make([]float64, 0, len(dates)-1)
		for i := 1; i < len(dates); i++ {
			intervals = append(intervals, float64(DaysBetween(dates[i-1], dates[i])))
		}

		frequency, confidence, ok := classifyIntervals(intervals)
		if !ok || confidence <= 0.5 {
			continue
		}

		charges = append(charges, model.RecurringCharge{
			Name:             key.name,
			Amount:           round2(float64(key.cents) / 100),
			Frequency:        frequency,
			Confidence:       round2(confidence),
			TransactionCount: len(dates),
		})
	}

	sort.Slice(charges, func(i, j int) bool {
		if charges[i].Confidence != charges[j].Confidence {
			return charges[i].Confidence > charges[j].Confidence
		}
		return charges[i].Name < charges[j].Name
	})

	return charges
}

// classifyIntervals infers a frequency from the average day-gap and scores
// confidence from interval regularity, floored at 0.5.
func classifyIntervals(intervals []float64) (model.Frequency, float64, bool) {
	if len(intervals) == 0 {
		return "", 0, false
	}

	var sum float64
	for _, d := range intervals {
		sum += d
	}
	avg := sum / float64(len(intervals))

	switch {
	case avg >= monthlyMinDays && avg <= monthlyMaxDays:
		return model.FrequencyMonthly, math.Max(0.5, 1-variance(intervals, avg)/monthlyVarianceScale), true
	case avg >= weeklyMinDays && avg <= weeklyMaxDays:
		return model.FrequencyWeekly, math.Max(0.5, 1-variance(intervals, avg)/weeklyVarianceScale), true
	case avg >= yearlyMinDays && avg <= yearlyMaxDays:
		return model.FrequencyYearly, yearlyConfidence, true
	}
	return "", 0, false
}

func variance(values []float64, mean float64) float64 {
	var sumSq float64
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	return sumSq / float64(len(values))
}
