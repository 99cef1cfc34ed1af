package analytics

import (
	"testing"

	"github.com/fincoach/backend/internal/model"
)

// baselineTxns yields net +300 in each of Nov 2024, Dec 2024, and Jan 2025.
func baselineTxns() []*model.Transaction {
	return []*model.Transaction{
		tx("n1", 1000, "2024-11-01", "", "Payroll", ""),
		tx("n2", -700, "2024-11-15", "RENT", "Rent", ""),
		tx("d1", 1000, "2024-12-01", "", "Payroll", ""),
		tx("d2", -700, "2024-12-15", "RENT", "Rent", ""),
		tx("j1", 1000, "2025-01-01", "", "Payroll", ""),
		tx("j2", -700, "2025-01-15", "RENT", "Rent", ""),
	}
}

func TestCalculateFeasibility(t *testing.T) {
	now := mustDate(t, "2025-01-15")

	t.Run("off track when required exceeds baseline surplus", func(t *testing.T) {
		// 60 days out -> 2 months; 1200/2 = 600 required vs 300 surplus.
		got := CalculateFeasibility(baselineTxns(), 1200, mustDate(t, "2025-03-16"), now)

		if got.RequiredPerMonth != 600 {
			t.Errorf("requiredPerMonth = %v, want 600", got.RequiredPerMonth)
		}
		if got.EstimatedSurplusPerMonth != 300 {
			t.Errorf("estimatedSurplusPerMonth = %v, want 300", got.EstimatedSurplusPerMonth)
		}
		if got.GapPerMonth != 300 {
			t.Errorf("gapPerMonth = %v, want 300", got.GapPerMonth)
		}
		if got.Status != model.GoalOffTrack {
			t.Errorf("status = %v, want off_track", got.Status)
		}
	})

	t.Run("zero gap is on track", func(t *testing.T) {
		got := CalculateFeasibility(baselineTxns(), 600, mustDate(t, "2025-03-16"), now)

		if got.GapPerMonth != 0 {
			t.Errorf("gapPerMonth = %v, want 0", got.GapPerMonth)
		}
		if got.Status != model.GoalOnTrack {
			t.Errorf("status = %v, want on_track (non-strict inequality)", got.Status)
		}
	})

	t.Run("surplus above required is on track", func(t *testing.T) {
		got := CalculateFeasibility(baselineTxns(), 400, mustDate(t, "2025-03-16"), now)

		if got.RequiredPerMonth != 200 {
			t.Errorf("requiredPerMonth = %v, want 200", got.RequiredPerMonth)
		}
		if got.GapPerMonth != -100 {
			t.Errorf("gapPerMonth = %v, want -100", got.GapPerMonth)
		}
		if got.Status != model.GoalOnTrack {
			t.Errorf("status = %v, want on_track", got.Status)
		}
	})

	t.Run("months remaining floors at 1", func(t *testing.T) {
		// Target already past: no division blowup, full amount due this month.
		got := CalculateFeasibility(nil, 900, mustDate(t, "2024-12-01"), now)

		if got.RequiredPerMonth != 900 {
			t.Errorf("requiredPerMonth = %v, want 900", got.RequiredPerMonth)
		}
	})

	t.Run("partial month rounds up", func(t *testing.T) {
		// 31 days out -> ceil(31/30) = 2 months.
		got := CalculateFeasibility(nil, 1000, mustDate(t, "2025-02-15"), now)

		if got.RequiredPerMonth != 500 {
			t.Errorf("requiredPerMonth = %v, want 500", got.RequiredPerMonth)
		}
	})

	t.Run("months without transactions contribute zero net", func(t *testing.T) {
		// Only January has data (+300); Nov and Dec are empty months and
		// still count in the 3-month average: 300/3 = 100.
		txns := []*model.Transaction{
			tx("j1", 1000, "2025-01-01", "", "Payroll", ""),
			tx("j2", -700, "2025-01-15", "RENT", "Rent", ""),
		}

		got := CalculateFeasibility(txns, 1200, mustDate(t, "2025-03-16"), now)

		if got.EstimatedSurplusPerMonth != 100 {
			t.Errorf("estimatedSurplusPerMonth = %v, want 100", got.EstimatedSurplusPerMonth)
		}
	})

	t.Run("empty transactions yield neutral baseline", func(t *testing.T) {
		got := CalculateFeasibility(nil, 1200, mustDate(t, "2025-03-16"), now)

		if got.EstimatedSurplusPerMonth != 0 {
			t.Errorf("estimatedSurplusPerMonth = %v, want 0", got.EstimatedSurplusPerMonth)
		}
		if got.GapPerMonth != 600 || got.Status != model.GoalOffTrack {
			t.Errorf("unexpected result: %+v", got)
		}
	})
}
