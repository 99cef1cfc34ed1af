package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fincoach/backend/internal/analytics"
	"github.com/fincoach/backend/internal/model"
	"github.com/fincoach/backend/internal/store"
)

// CreateGoal validates and persists a new savings goal.
func (s *CoachService) CreateGoal(ctx context.Context, userID, name string, targetAmount float64, targetDate time.Time) (*model.Goal, error) {
	if userID == "" {
		return nil, errRequired("userId")
	}
	if name == "" {
		return nil, errRequired("name")
	}
	if targetAmount <= 0 {
		return nil, fmt.Errorf("%w: targetAmount must be positive", ErrInvalidInput)
	}
	if targetDate.IsZero() {
		return nil, errRequired("targetDate")
	}

	now := time.Now()
	goal := &model.Goal{
		ID:           uuid.New().String(),
		UserID:       userID,
		Name:         name,
		TargetAmount: targetAmount,
		TargetDate:   targetDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.CreateGoal(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}
	return goal, nil
}

// GetGoal returns a goal, treating another user's goal as absent.
func (s *CoachService) GetGoal(ctx context.Context, userID, goalID string) (*model.Goal, error) {
	goal, err := s.store.GetGoal(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if goal.UserID != userID {
		return nil, fmt.Errorf("goal %s: %w", goalID, store.ErrNotFound)
	}
	return goal, nil
}

// UpdateGoal applies name/amount/date changes to an existing goal.
func (s *CoachService) UpdateGoal(ctx context.Context, userID, goalID, name string, targetAmount float64, targetDate time.Time) (*model.Goal, error) {
	goal, err := s.GetGoal(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errRequired("name")
	}
	if targetAmount <= 0 {
		return nil, fmt.Errorf("%w: targetAmount must be positive", ErrInvalidInput)
	}

	goal.Name = name
	goal.TargetAmount = targetAmount
	goal.TargetDate = targetDate
	goal.UpdatedAt = time.Now()

	if err := s.store.UpdateGoal(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}
	return goal, nil
}

// DeleteGoal removes a goal and its cached insight.
func (s *CoachService) DeleteGoal(ctx context.Context, userID, goalID string) error {
	if _, err := s.GetGoal(ctx, userID, goalID); err != nil {
		return err
	}
	if err := s.store.DeleteGoal(ctx, goalID); err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	if err := s.store.DeleteGoalInsight(ctx, goalID); err != nil {
		return fmt.Errorf("failed to delete goal insight: %w", err)
	}
	return nil
}

// ListGoals returns all goals for a user.
func (s *CoachService) ListGoals(ctx context.Context, userID string) ([]*model.Goal, error) {
	if userID == "" {
		return nil, errRequired("userId")
	}
	return s.store.ListGoals(ctx, userID)
}

// GetGoalInsight returns the cached insight packet for a goal, computing and
// caching it on first request. Cached packets stay as-is until the caller
// asks for regeneration; new transactions alone never invalidate them.
func (s *CoachService) GetGoalInsight(ctx context.Context, userID, goalID string, regenerate bool) (*model.GoalInsight, error) {
	goal, err := s.GetGoal(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	if !regenerate {
		insight, err := s.store.GetGoalInsight(ctx, goalID)
		if err == nil {
			return insight, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("failed to load goal insight: %w", err)
		}
	}

	insight, err := s.computeGoalInsight(ctx, goal)
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveGoalInsight(ctx, insight); err != nil {
		return nil, fmt.Errorf("failed to cache goal insight: %w", err)
	}

	s.logger.Info().
		Str("user_id", userID).
		Str("goal_id", goalID).
		Bool("regenerate", regenerate).
		Msg("goal insight generated")

	return insight, nil
}

// computeGoalInsight runs the feasibility calculator and all four detectors
// over the user's full history to build the packet a coaching layer consumes.
func (s *CoachService) computeGoalInsight(ctx context.Context, goal *model.Goal) (*model.GoalInsight, error) {
	txs, err := s.listAllTransactions(ctx, goal.UserID, nil, nil)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	current := analytics.MonthOf(now)

	return &model.GoalInsight{
		GoalID:           goal.ID,
		UserID:           goal.UserID,
		Feasibility:      analytics.CalculateFeasibility(txs, goal.TargetAmount, goal.TargetDate, now),
		Cashflow:         analytics.CalculateCashflow(txs, current),
		Trends:           analytics.DetectCategoryTrends(txs, current, current.Prev()),
		Anomalies:        analytics.DetectAnomalies(txs),
		RecurringCharges: analytics.DetectRecurringCharges(txs),
		GeneratedAt:      now,
	}, nil
}
