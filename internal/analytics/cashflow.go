package analytics

import (
	"math"

	"github.com/fincoach/backend/internal/model"
)

// Net change beyond ±5% month-over-month moves the trend off "stable".
const trendChangeThresholdPercent = 5.0

// CalculateCashflow aggregates income, expenses, net, and savings rate for
// the target month, and classifies the trend against the immediately
// preceding month. SavingsRate is nil for months with no income.
func CalculateCashflow(transactions []*model.Transaction, target Month) model.Cashflow {
	income, expenses := monthTotals(transactions, target)
	net := income - expenses

	var savingsRate *float64
	if income > 0 {
		r := round2(net / income * 100)
		savingsRate = &r
	}

	prevIncome, prevExpenses := monthTotals(transactions, target.Prev())
	prevNet := prevIncome - prevExpenses

	trend := model.TrendStable
	if prevNet != 0 {
		changePercent := (net - prevNet) / math.Abs(prevNet) * 100
		switch {
		case changePercent > trendChangeThresholdPercent:
			trend = model.TrendImproving
		case changePercent < -trendChangeThresholdPercent:
			trend = model.TrendDeclining
		}
	}

	return model.Cashflow{
		MonthlyIncome:   round2(income),
		MonthlyExpenses: round2(expenses),
		Net:             round2(net),
		SavingsRate:     savingsRate,
		Trend:           trend,
	}
}

// monthTotals sums positive amounts (income) and absolute negative amounts
// (expenses) for transactions dated inside the month.
func monthTotals(transactions []*model.Transaction, m Month) (income, expenses float64) {
	for _, t := range transactions {
		if !m.Contains(t.Date) {
			continue
		}
		if t.Amount > 0 {
			income += t.Amount
		} else {
			expenses += -t.Amount
		}
	}
	return income, expenses
}
