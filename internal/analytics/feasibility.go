package analytics

import (
	"math"
	"time"

	"github.com/fincoach/backend/internal/model"
)

// Baseline surplus averages net cashflow over the trailing 3 calendar
// months, current month included. Months without transactions contribute a
// net of zero rather than being skipped.
const baselineMonths = 3

// CalculateFeasibility derives the required monthly savings for a goal and
// compares it to the user's recent surplus. Months remaining uses a 30-day
// month approximation and is floored at 1, so past-due targets never divide
// by zero.
func CalculateFeasibility(transactions []*model.Transaction, targetAmount float64, targetDate, now time.Time) model.GoalFeasibility {
	daysRemaining := DaysBetween(now, targetDate)
	monthsRemaining := math.Max(1, math.Ceil(float64(daysRemaining)/30))

	requiredPerMonth := round2(targetAmount / monthsRemaining)

	current := MonthOf(now)
	var netSum float64
	for i := 0; i < baselineMonths; i++ {
		cf := CalculateCashflow(transactions, current.AddMonths(-i))
		netSum += cf.Net
	}
	surplusPerMonth := round2(netSum / baselineMonths)

	gapPerMonth := round2(requiredPerMonth - surplusPerMonth)

	status := model.GoalOffTrack
	if gapPerMonth <= 0 {
		status = model.GoalOnTrack
	}

	return model.GoalFeasibility{
		RequiredPerMonth:         requiredPerMonth,
		EstimatedSurplusPerMonth: surplusPerMonth,
		GapPerMonth:              gapPerMonth,
		Status:                   status,
	}
}
