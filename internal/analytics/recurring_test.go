package analytics

import (
	"reflect"
	"testing"

	"github.com/fincoach/backend/internal/model"
)

func TestDetectRecurringCharges(t *testing.T) {
	t.Run("exact 30-day spacing classifies monthly with confidence 1", func(t *testing.T) {
		txns := []*model.Transaction{
			tx("t1", -15.99, "2025-01-03", "ENTERTAINMENT", "NETFLIX.COM", "Netflix"),
			tx("t2", -15.99, "2025-02-02", "ENTERTAINMENT", "NETFLIX.COM", "Netflix"),
			tx("t3", -15.99, "2025-03-04", "ENTERTAINMENT", "NETFLIX.COM", "Netflix"),
		}

		charges := DetectRecurringCharges(txns)

		if len(charges) != 1 {
			t.Fatalf("expected 1 charge, got %d: %+v", len(charges), charges)
		}
		c := charges[0]
		if c.Name != "Netflix" {
			t.Errorf("name = %q, want merchantName over name", c.Name)
		}
		if c.Frequency != model.FrequencyMonthly {
			t.Errorf("frequency = %v, want monthly", c.Frequency)
		}
		if c.Confidence != 1 {
			t.Errorf("confidence = %v, want 1 (zero variance)", c.Confidence)
		}
		if c.Amount != 15.99 {
			t.Errorf("amount = %v, want 15.99", c.Amount)
		}
		if c.TransactionCount != 3 {
			t.Errorf("transactionCount = %v, want 3", c.TransactionCount)
		}
	})

	t.Run("falls back to name when merchantName absent", func(t *testing.T) {
		txns := []*model.Transaction{
			tx("t1", -9.5, "2025-01-01", "", "GYM DIRECT DEBIT", ""),
			tx("t2", -9.5, "2025-01-08", "", "GYM DIRECT DEBIT", ""),
			tx("t3", -9.5, "2025-01-15", "", "GYM DIRECT DEBIT", ""),
		}

		charges := DetectRecurringCharges(txns)

		if len(charges) != 1 {
			t.Fatalf("expected 1 charge, got %d", len(charges))
		}
		if charges[0].Name != "GYM DIRECT DEBIT" {
			t.Errorf("name = %q, want GYM DIRECT DEBIT", charges[0].Name)
		}
		if charges[0].Frequency != model.FrequencyWeekly {
			t.Errorf("frequency = %v, want weekly", charges[0].Frequency)
		}
		if charges[0].Confidence != 1 {
			t.Errorf("confidence = %v, want 1", charges[0].Confidence)
		}
	})

	t.Run("irregular intervals averaging into the monthly band are low confidence", func(t *testing.T) {
		// Gaps of 10 and 40 days average to 25 (inside 25..35), but the
		// variance (225) drives confidence to the 0.5 floor, which does
		// not clear the strict > 0.5 emission bar.
		txns := []*model.Transaction{
			tx("t1", -20, "2025-01-01", "", "Irregular", ""),
			tx("t2", -20, "2025-01-11", "", "Irregular", ""),
			tx("t3", -20, "2025-02-20", "", "Irregular", ""),
		}

		if charges := DetectRecurringCharges(txns); len(charges) != 0 {
			t.Errorf("expected no charges, got %+v", charges)
		}
	})

	t.Run("average interval outside every band is dropped", func(t *testing.T) {
		txns := []*model.Transaction{
			tx("t1", -20, "2025-01-01", "", "Fortnightly", ""),
			tx("t2", -20, "2025-01-15", "", "Fortnightly", ""),
			tx("t3", -20, "2025-01-29", "", "Fortnightly", ""),
		}

		if charges := DetectRecurringCharges(txns); len(charges) != 0 {
			t.Errorf("expected no charges for 14-day spacing, got %+v", charges)
		}
	})

	t.Run("two yearly occurrences get flat 0.7 confidence", func(t *testing.T) {
		txns := []*model.Transaction{
			tx("t1", -120, "2024-03-15", "", "Domain renewal", ""),
			tx("t2", -120, "2025-03-15", "", "Domain renewal", ""),
		}

		charges := DetectRecurringCharges(txns)

		if len(charges) != 1 {
			t.Fatalf("expected 1 charge, got %d", len(charges))
		}
		if charges[0].Frequency != model.FrequencyYearly {
			t.Errorf("frequency = %v, want yearly", charges[0].Frequency)
		}
		if charges[0].Confidence != 0.7 {
			t.Errorf("confidence = %v, want 0.7", charges[0].Confidence)
		}
	})

	t.Run("different amounts for the same merchant are different charges", func(t *testing.T) {
		txns := []*model.Transaction{
			tx("t1", -15.99, "2025-01-01", "", "Spotify", ""),
			tx("t2", -17.99, "2025-01-31", "", "Spotify", ""),
			tx("t3", -15.99, "2025-03-02", "", "Spotify", ""),
		}

		// Each amount group has fewer than the occurrences needed for a
		// clean 30-day chain: 15.99 occurs on days 0 and 60 (gap 60,
		// outside all bands), 17.99 only once.
		if charges := DetectRecurringCharges(txns); len(charges) != 0 {
			t.Errorf("expected strict amount matching to split groups, got %+v", charges)
		}
	})

	t.Run("single occurrence never recurs", func(t *testing.T) {
		txns := []*model.Transaction{
			tx("t1", -50, "2025-01-01", "", "One-off", ""),
		}
		if charges := DetectRecurringCharges(txns); len(charges) != 0 {
			t.Errorf("expected no charges, got %+v", charges)
		}
	})

	t.Run("income ignored", func(t *testing.T) {
		txns := []*model.Transaction{
			tx("t1", 2000, "2025-01-01", "", "Payroll", ""),
			tx("t2", 2000, "2025-01-31", "", "Payroll", ""),
			tx("t3", 2000, "2025-03-02", "", "Payroll", ""),
		}
		if charges := DetectRecurringCharges(txns); len(charges) != 0 {
			t.Errorf("expected no charges from income, got %+v", charges)
		}
	})

	t.Run("order independent", func(t *testing.T) {
		txns := []*model.Transaction{
			tx("t1", -15.99, "2025-01-03", "", "Netflix", ""),
			tx("t2", -15.99, "2025-02-02", "", "Netflix", ""),
			tx("t3", -15.99, "2025-03-04", "", "Netflix", ""),
			tx("t4", -9.5, "2025-01-01", "", "Gym", ""),
			tx("t5", -9.5, "2025-01-08", "", "Gym", ""),
			tx("t6", -9.5, "2025-01-15", "", "Gym", ""),
			tx("t7", -120, "2024-03-15", "", "Domain", ""),
			tx("t8", -120, "2025-03-15", "", "Domain", ""),
		}

		a := DetectRecurringCharges(txns)
		b := DetectRecurringCharges(shuffled(txns))

		if len(a) != 3 {
			t.Fatalf("expected 3 charges, got %d: %+v", len(a), a)
		}
		if !reflect.DeepEqual(a, b) {
			t.Errorf("shuffled input changed output:\n%+v\n%+v", a, b)
		}
	})
}
