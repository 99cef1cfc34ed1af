package analytics

import (
	"reflect"
	"strings"
	"testing"

	"github.com/fincoach/backend/internal/model"
)

func TestDetectAnomalies(t *testing.T) {
	t.Run("fewer than 3 expenses returns empty", func(t *testing.T) {
		txns := []*model.Transaction{
			tx("t1", -5000, "2025-02-01", "", "Huge", ""),
			tx("t2", -1, "2025-02-02", "", "Tiny", ""),
			tx("t3", 9000, "2025-02-03", "", "Income", ""),
		}

		if got := DetectAnomalies(txns); len(got) != 0 {
			t.Errorf("expected no anomalies on tiny sample, got %+v", got)
		}
	})

	t.Run("flags expenses above mean plus two stddev", func(t *testing.T) {
		txns := []*model.Transaction{
			tx("inc", 4000, "2025-02-01", "", "Payroll", ""),
		}
		for i := 0; i < 10; i++ {
			txns = append(txns, tx("small-"+string(rune('a'+i)), -10, "2025-02-05", "COFFEE", "Cafe", ""))
		}
		txns = append(txns, tx("outlier", -500, "2025-02-20", "SHOPPING", "Laptop", ""))

		got := DetectAnomalies(txns)

		if len(got) != 1 {
			t.Fatalf("expected 1 anomaly, got %d: %+v", len(got), got)
		}
		a := got[0]
		if a.TransactionID != "outlier" {
			t.Errorf("transactionId = %q, want outlier", a.TransactionID)
		}
		if a.Amount != -500 {
			t.Errorf("amount = %v, want -500", a.Amount)
		}
		if a.Confidence != 0.9 {
			t.Errorf("confidence = %v, want capped 0.9", a.Confidence)
		}
		// |amount|/mean*100 = 500/54.55*100 ~ 917%.
		if !strings.Contains(a.Reason, "917%") {
			t.Errorf("reason = %q, want mention of 917%%", a.Reason)
		}
		if !a.Date.Equal(mustDate(t, "2025-02-20")) {
			t.Errorf("date = %v, want 2025-02-20", a.Date)
		}
	})

	t.Run("identical amounts never anomalous", func(t *testing.T) {
		var txns []*model.Transaction
		for i := 0; i < 5; i++ {
			txns = append(txns, tx("t-"+string(rune('a'+i)), -42, "2025-02-05", "", "Same", ""))
		}

		if got := DetectAnomalies(txns); len(got) != 0 {
			t.Errorf("expected no anomalies for zero-variance sample, got %+v", got)
		}
	})

	t.Run("deterministic and order independent", func(t *testing.T) {
		txns := []*model.Transaction{
			tx("t1", -20, "2025-02-01", "", "A", ""),
			tx("t2", -25, "2025-02-02", "", "B", ""),
			tx("t3", -30, "2025-02-03", "", "C", ""),
			tx("t4", -22, "2025-02-04", "", "D", ""),
			tx("t5", -23, "2025-02-05", "", "E", ""),
			tx("t6", -21, "2025-02-06", "", "F", ""),
			tx("t7", -24, "2025-02-07", "", "G", ""),
			tx("t8", -26, "2025-02-08", "", "H", ""),
			tx("t9", -300, "2025-02-09", "", "Outlier", ""),
		}

		a := DetectAnomalies(txns)
		b := DetectAnomalies(shuffled(txns))

		if len(a) == 0 {
			t.Fatal("expected the outlier to be flagged")
		}
		if !reflect.DeepEqual(a, b) {
			t.Errorf("shuffled input changed output:\n%+v\n%+v", a, b)
		}
	})
}
