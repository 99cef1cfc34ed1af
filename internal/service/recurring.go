package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"

	"github.com/fincoach/backend/internal/analytics"
	"github.com/fincoach/backend/internal/model"
)

// Confidence buckets for the recurring charges list.
const (
	BucketHigh   = "high"   // confidence >= 0.8
	BucketMedium = "medium" // 0.6 <= confidence < 0.8
	BucketLow    = "low"    // confidence < 0.6
)

// Override names that merely differ in punctuation or a truncated character
// ("NETFLIX.COM" vs "Netflix com") should still attach to the detected
// charge, so near matches within this edit distance count when no exact
// case-insensitive match exists.
const overrideMatchMaxDistance = 2

// RecurringChargeView is a detected charge annotated with the user's
// persisted status label, or "unsure" when the user has never labeled it.
type RecurringChargeView struct {
	model.RecurringCharge
	Status model.RecurringChargeStatus `json:"status"`
}

// ListRecurringCharges detects recurring charges from the user's full
// history, merges stored status overrides, and optionally filters to one
// confidence bucket.
func (s *CoachService) ListRecurringCharges(ctx context.Context, userID, bucket string) ([]RecurringChargeView, error) {
	if userID == "" {
		return nil, errRequired("userId")
	}
	if bucket != "" && bucket != BucketHigh && bucket != BucketMedium && bucket != BucketLow {
		return nil, fmt.Errorf("%w: unknown confidence bucket %q", ErrInvalidInput, bucket)
	}

	txs, err := s.listAllTransactions(ctx, userID, nil, nil)
	if err != nil {
		return nil, err
	}

	charges := analytics.DetectRecurringCharges(txs)

	overrides, err := s.store.ListRecurringStatuses(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring statuses: %w", err)
	}

	views := make([]RecurringChargeView, 0, len(charges))
	for _, charge := range charges {
		if !inBucket(charge.Confidence, bucket) {
			continue
		}
		views = append(views, RecurringChargeView{
			RecurringCharge: charge,
			Status:          overrideStatus(charge.Name, overrides),
		})
	}

	return views, nil
}

// SetRecurringStatus records the user's label for a recurring charge by name.
func (s *CoachService) SetRecurringStatus(ctx context.Context, userID, name string, status model.RecurringChargeStatus) error {
	if userID == "" {
		return errRequired("userId")
	}
	if name == "" {
		return errRequired("name")
	}
	if !model.ValidRecurringStatus(status) {
		return fmt.Errorf("%w: status must be one of active, cancelled, unsure", ErrInvalidInput)
	}

	override := &model.RecurringStatusOverride{
		UserID:    userID,
		Name:      name,
		Status:    status,
		UpdatedAt: time.Now(),
	}
	if err := s.store.UpsertRecurringStatus(ctx, override); err != nil {
		return fmt.Errorf("failed to save recurring status: %w", err)
	}

	s.logger.Info().
		Str("user_id", userID).
		Str("name", name).
		Str("status", string(status)).
		Msg("recurring status updated")

	return nil
}

func inBucket(confidence float64, bucket string) bool {
	switch bucket {
	case BucketHigh:
		return confidence >= 0.8
	case BucketMedium:
		return confidence >= 0.6 && confidence < 0.8
	case BucketLow:
		return confidence < 0.6
	default:
		return true
	}
}

// overrideStatus finds the stored label for a charge name: exact
// case-insensitive match first, then the closest near match within the edit
// distance cap. Unlabeled charges report as unsure.
func overrideStatus(name string, overrides []*model.RecurringStatusOverride) model.RecurringChargeStatus {
	lower := strings.ToLower(name)

	for _, o := range overrides {
		if strings.ToLower(o.Name) == lower {
			return o.Status
		}
	}

	best := overrideMatchMaxDistance + 1
	status := model.RecurringStatusUnsure
	for _, o := range overrides {
		d := levenshtein.ComputeDistance(lower, strings.ToLower(o.Name))
		if d < best {
			best = d
			status = o.Status
		}
	}
	return status
}
