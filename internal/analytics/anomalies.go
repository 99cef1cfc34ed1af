package analytics

import (
	"fmt"
	"math"
	"sort"

	"github.com/fincoach/backend/internal/model"
)

// Statistics over fewer than 3 expenses are meaningless; return nothing.
const anomalyMinSampleSize = 3

// DetectAnomalies flags expense transactions whose absolute amount exceeds
// mean + 2 standard deviations of all expense amounts. Results are sorted by
// amount descending, then transaction ID; the same input set always yields
// the same flagged set.
func DetectAnomalies(transactions []*model.Transaction) []model.Anomaly {
	var expenses []*model.Transaction
	var amounts []float64
	for _, t := range transactions {
		if t.Amount < 0 {
			expenses = append(expenses, t)
			amounts = append(amounts, -t.Amount)
		}
	}
	if len(expenses) < anomalyMinSampleSize {
		return nil
	}

	var sum float64
	for _, a := range amounts {
		sum += a
	}
	mean := sum / float64(len(amounts))

	var sumSq float64
	for _, a := range amounts {
		d := a - mean
		sumSq += d * d
	}
	stdDev := math.Sqrt(sumSq / float64(len(amounts)))

	threshold := mean + 2*stdDev

	var anomalies []model.Anomaly
	for _, t := range expenses {
		abs := -t.Amount
		if abs <= threshold {
			continue
		}
		percentOfAverage := int(math.Round(abs / mean * 100))
		anomalies = append(anomalies, model.Anomaly{
			TransactionID: t.ID,
			Amount:        t.Amount,
			Date:          t.Date,
			Reason:        fmt.Sprintf("Unusually large expense: %d%% of your average transaction", percentOfAverage),
			Confidence:    round2(math.Min(0.9, 0.6+abs/threshold*0.3)),
		})
	}

	sort.Slice(anomalies, func(i, j int) bool {
		ai, aj := math.Abs(anomalies[i].Amount), math.Abs(anomalies[j].Amount)
		if ai != aj {
			return ai > aj
		}
		return anomalies[i].TransactionID < anomalies[j].TransactionID
	})

	return anomalies
}
