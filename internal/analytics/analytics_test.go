package analytics

import (
	"math/rand"
	"testing"
	"time"

	"github.com/fincoach/backend/internal/model"
)

// tx builds a test transaction. Empty category means uncategorized (nil),
// empty merchant means no MerchantName.
func tx(id string, amount float64, date string, category, name, merchant string) *model.Transaction {
	d, err := ParseDate(date)
	if err != nil {
		panic(err)
	}
	t := &model.Transaction{
		ID:     id,
		UserID: "user-1",
		Amount: amount,
		Date:   d,
		Name:   name,
	}
	if category != "" {
		t.Category = &category
	}
	if merchant != "" {
		t.MerchantName = &merchant
	}
	return t
}

func shuffled(txns []*model.Transaction) []*model.Transaction {
	out := make([]*model.Transaction, len(txns))
	copy(out, txns)
	rand.New(rand.NewSource(42)).Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	if err != nil {
		t.Fatalf("ParseDate(%q): %v", s, err)
	}
	return d
}
