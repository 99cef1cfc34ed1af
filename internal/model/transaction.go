// Package model defines the domain types shared by the analytics engine,
// the store, and the service layer.
package model

import "time"

// Transaction is a single bank transaction as supplied by the upstream
// ingestion layer. Amounts are already sign-normalized: negative = expense,
// positive = income. Date carries calendar-day semantics only; callers must
// never shift it across timezones.
type Transaction struct {
	ID           string    `json:"id" firestore:"Id"`
	UserID       string    `json:"userId" firestore:"UserId"`
	Amount       float64   `json:"amount" firestore:"Amount"`
	Date         time.Time `json:"date" firestore:"Date"`
	Category     *string   `json:"category,omitempty" firestore:"Category"`
	Name         string    `json:"name" firestore:"Name"`
	MerchantName *string   `json:"merchantName,omitempty" firestore:"MerchantName"`
	CreatedAt    time.Time `json:"createdAt" firestore:"CreatedAt"`
}

// Merchant returns the preferred grouping key for this transaction:
// MerchantName when present, otherwise Name.
func (t *Transaction) Merchant() string {
	if t.MerchantName != nil && *t.MerchantName != "" {
		return *t.MerchantName
	}
	return t.Name
}

// RecurringChargeStatus is a user-supplied label for a detected recurring
// charge, persisted by the storage layer and merged back into detection
// results by name.
type RecurringChargeStatus string

const (
	RecurringStatusActive    RecurringChargeStatus = "active"
	RecurringStatusCancelled RecurringChargeStatus = "cancelled"
	RecurringStatusUnsure    RecurringChargeStatus = "unsure"
)

// ValidRecurringStatus reports whether s is one of the accepted labels.
func ValidRecurringStatus(s RecurringChargeStatus) bool {
	switch s {
	case RecurringStatusActive, RecurringStatusCancelled, RecurringStatusUnsure:
		return true
	}
	return false
}

// RecurringStatusOverride records a user's label for a recurring charge,
// keyed by charge name (matched case-insensitively against detections).
type RecurringStatusOverride struct {
	UserID    string                `json:"userId" firestore:"UserId"`
	Name      string                `json:"name" firestore:"Name"`
	Status    RecurringChargeStatus `json:"status" firestore:"Status"`
	UpdatedAt time.Time             `json:"updatedAt" firestore:"UpdatedAt"`
}
