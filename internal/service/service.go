// Package service composes the analytics engine with the store into the
// operations exposed over HTTP: dashboard summaries, recurring charge
// management, and goal insights.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fincoach/backend/internal/model"
	"github.com/fincoach/backend/internal/store"
)

// ErrInvalidInput marks request validation failures so the transport layer
// can map them to a 400 instead of a 500.
var ErrInvalidInput = errors.New("invalid input")

const listPageSize = 500

func errRequired(field string) error {
	return fmt.Errorf("%w: %s is required", ErrInvalidInput, field)
}

// CoachService implements the application operations on top of a Store.
type CoachService struct {
	store  store.Store
	logger zerolog.Logger
}

// NewCoachService creates a new coach service
func NewCoachService(s store.Store, logger zerolog.Logger) *CoachService {
	return &CoachService{
		store:  s,
		logger: logger,
	}
}

// listAllTransactions pages through the full transaction history for a user.
// The detectors need complete history, not a single page.
func (s *CoachService) listAllTransactions(ctx context.Context, userID string, startDate, endDate *time.Time) ([]*model.Transaction, error) {
	var all []*model.Transaction
	pageToken := ""
	for {
		txs, next, err := s.store.ListTransactions(ctx, userID, startDate, endDate, listPageSize, pageToken)
		if err != nil {
			return nil, fmt.Errorf("failed to list transactions: %w", err)
		}
		all = append(all, txs...)
		if next == "" {
			return all, nil
		}
		pageToken = next
	}
}

// CreateTransaction validates and persists a single transaction.
func (s *CoachService) CreateTransaction(ctx context.Context, tx *model.Transaction) (*model.Transaction, error) {
	if tx.UserID == "" {
		return nil, errRequired("userId")
	}
	if tx.Name == "" {
		return nil, errRequired("name")
	}
	if tx.Date.IsZero() {
		return nil, errRequired("date")
	}

	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	tx.CreatedAt = time.Now()

	if err := s.store.CreateTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	return tx, nil
}

// ImportTransactions persists a parsed batch, assigning IDs where missing.
func (s *CoachService) ImportTransactions(ctx context.Context, userID string, txs []*model.Transaction) (int, error) {
	if userID == "" {
		return 0, errRequired("userId")
	}

	now := time.Now()
	for _, tx := range txs {
		tx.UserID = userID
		if tx.ID == "" {
			tx.ID = uuid.New().String()
		}
		tx.CreatedAt = now
	}

	if err := s.store.BatchCreateTransactions(ctx, txs); err != nil {
		return 0, fmt.Errorf("failed to import transactions: %w", err)
	}

	s.logger.Info().
		Str("user_id", userID).
		Int("count", len(txs)).
		Msg("imported transactions")

	return len(txs), nil
}

// ListTransactions returns one page of a user's transactions.
func (s *CoachService) ListTransactions(ctx context.Context, userID string, startDate, endDate *time.Time, pageSize int32, pageToken string) ([]*model.Transaction, string, error) {
	if userID == "" {
		return nil, "", errRequired("userId")
	}
	return s.store.ListTransactions(ctx, userID, startDate, endDate, pageSize, pageToken)
}
