package store

import (
	"context"
	"encoding/base64"
	"errors"
	"time"

	"github.com/fincoach/backend/internal/model"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for all database operations used by the service
type Store interface {
	// Transaction operations
	CreateTransaction(ctx context.Context, tx *model.Transaction) error
	BatchCreateTransactions(ctx context.Context, txs []*model.Transaction) error
	GetTransaction(ctx context.Context, txID string) (*model.Transaction, error)
	DeleteTransaction(ctx context.Context, txID string) error
	ListTransactions(ctx context.Context, userID string, startDate, endDate *time.Time, pageSize int32, pageToken string) ([]*model.Transaction, string, error)

	// Goal operations
	CreateGoal(ctx context.Context, goal *model.Goal) error
	GetGoal(ctx context.Context, goalID string) (*model.Goal, error)
	UpdateGoal(ctx context.Context, goal *model.Goal) error
	DeleteGoal(ctx context.Context, goalID string) error
	ListGoals(ctx context.Context, userID string) ([]*model.Goal, error)

	// Recurring charge status overrides
	UpsertRecurringStatus(ctx context.Context, override *model.RecurringStatusOverride) error
	ListRecurringStatuses(ctx context.Context, userID string) ([]*model.RecurringStatusOverride, error)

	// Goal insight cache
	SaveGoalInsight(ctx context.Context, insight *model.GoalInsight) error
	GetGoalInsight(ctx context.Context, goalID string) (*model.GoalInsight, error)
	DeleteGoalInsight(ctx context.Context, goalID string) error
}

// EncodePageToken encodes a document ID into a page token.
func EncodePageToken(docID string) string {
	if docID == "" {
		return ""
	}
	return base64.URLEncoding.EncodeToString([]byte(docID))
}

// DecodePageToken decodes a page token back to a document ID.
func DecodePageToken(token string) (string, error) {
	if token == "" {
		return "", nil
	}
	b, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
