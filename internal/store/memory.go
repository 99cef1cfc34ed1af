package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fincoach/backend/internal/model"
)

// MemoryStore implements Store interface with in-memory storage
type MemoryStore struct {
	mu sync.RWMutex

	transactions      map[string]*model.Transaction
	goals             map[string]*model.Goal
	recurringStatuses map[string]*model.RecurringStatusOverride
	goalInsights      map[string]*model.GoalInsight
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		transactions:      make(map[string]*model.Transaction),
		goals:             make(map[string]*model.Goal),
		recurringStatuses: make(map[string]*model.RecurringStatusOverride),
		goalInsights:      make(map[string]*model.GoalInsight),
	}
}

// paginateIDs applies cursor-based pagination to a sorted slice of IDs.
// Returns the paginated IDs and the next page token (empty if no more pages).
func paginateIDs(ids []string, pageSize int32, pageToken string) ([]string, string) {
	if pageSize <= 0 {
		pageSize = 100
	}

	sort.Strings(ids)

	startIdx := 0
	if pageToken != "" {
		cursorID, err := DecodePageToken(pageToken)
		if err == nil {
			for i, id := range ids {
				if id > cursorID {
					startIdx = i
					break
				}
				if i == len(ids)-1 {
					return nil, ""
				}
			}
		}
	}

	ids = ids[startIdx:]

	var nextToken string
	if int32(len(ids)) > pageSize {
		nextToken = EncodePageToken(ids[pageSize-1])
		ids = ids[:pageSize]
	}

	return ids, nextToken
}

// recurringStatusKey identifies one override per (user, charge name), matched
// case-insensitively so "netflix" and "Netflix" share a single record.
func recurringStatusKey(userID, name string) string {
	return userID + "/" + strings.ToLower(name)
}

// Transaction operations

func (m *MemoryStore) CreateTransaction(ctx context.Context, tx *model.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now()
	}

	m.transactions[tx.ID] = tx
	return nil
}

// BatchCreateTransactions creates multiple transactions in the memory store.
func (m *MemoryStore) BatchCreateTransactions(ctx context.Context, txs []*model.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, tx := range txs {
		if tx.ID == "" {
			tx.ID = uuid.New().String()
		}
		if tx.CreatedAt.IsZero() {
			tx.CreatedAt = time.Now()
		}
		m.transactions[tx.ID] = tx
	}
	return nil
}

func (m *MemoryStore) GetTransaction(ctx context.Context, txID string) (*model.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tx, ok := m.transactions[txID]
	if !ok {
		return nil, fmt.Errorf("transaction %s: %w", txID, ErrNotFound)
	}

	return tx, nil
}

func (m *MemoryStore) DeleteTransaction(ctx context.Context, txID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.transactions[txID]; !ok {
		return fmt.Errorf("transaction %s: %w", txID, ErrNotFound)
	}

	delete(m.transactions, txID)
	return nil
}

func (m *MemoryStore) ListTransactions(ctx context.Context, userID string, startDate, endDate *time.Time, pageSize int32, pageToken string) ([]*model.Transaction, string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var matchingIDs []string
	for id, tx := range m.transactions {
		if userID != "" && tx.UserID != userID {
			continue
		}
		if startDate != nil && tx.Date.Before(*startDate) {
			continue
		}
		if endDate != nil && tx.Date.After(*endDate) {
			continue
		}
		matchingIDs = append(matchingIDs, id)
	}

	paginatedIDs, nextToken := paginateIDs(matchingIDs, pageSize, pageToken)
	result := make([]*model.Transaction, 0, len(paginatedIDs))
	for _, id := range paginatedIDs {
		result = append(result, m.transactions[id])
	}

	return result, nextToken, nil
}

// Goal operations

func (m *MemoryStore) CreateGoal(ctx context.Context, goal *model.Goal) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if goal.ID == "" {
		goal.ID = uuid.New().String()
	}

	m.goals[goal.ID] = goal
	return nil
}

func (m *MemoryStore) GetGoal(ctx context.Context, goalID string) (*model.Goal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	goal, ok := m.goals[goalID]
	if !ok {
		return nil, fmt.Errorf("goal %s: %w", goalID, ErrNotFound)
	}

	return goal, nil
}

func (m *MemoryStore) UpdateGoal(ctx context.Context, goal *model.Goal) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.goals[goal.ID]; !ok {
		return fmt.Errorf("goal %s: %w", goal.ID, ErrNotFound)
	}

	m.goals[goal.ID] = goal
	return nil
}

func (m *MemoryStore) DeleteGoal(ctx context.Context, goalID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.goals[goalID]; !ok {
		return fmt.Errorf("goal %s: %w", goalID, ErrNotFound)
	}

	delete(m.goals, goalID)
	return nil
}

func (m *MemoryStore) ListGoals(ctx context.Context, userID string) ([]*model.Goal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var goals []*model.Goal
	for _, goal := range m.goals {
		if userID != "" && goal.UserID != userID {
			continue
		}
		goals = append(goals, goal)
	}

	sort.Slice(goals, func(i, j int) bool {
		return goals[i].ID < goals[j].ID
	})

	return goals, nil
}

// Recurring charge status overrides

func (m *MemoryStore) UpsertRecurringStatus(ctx context.Context, override *model.RecurringStatusOverride) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if override.UpdatedAt.IsZero() {
		override.UpdatedAt = time.Now()
	}

	m.recurringStatuses[recurringStatusKey(override.UserID, override.Name)] = override
	return nil
}

func (m *MemoryStore) ListRecurringStatuses(ctx context.Context, userID string) ([]*model.RecurringStatusOverride, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var overrides []*model.RecurringStatusOverride
	for _, override := range m.recurringStatuses {
		if override.UserID != userID {
			continue
		}
		overrides = append(overrides, override)
	}

	sort.Slice(overrides, func(i, j int) bool {
		return overrides[i].Name < overrides[j].Name
	})

	return overrides, nil
}

// Goal insight cache

func (m *MemoryStore) SaveGoalInsight(ctx context.Context, insight *model.GoalInsight) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.goalInsights[insight.GoalID] = insight
	return nil
}

func (m *MemoryStore) GetGoalInsight(ctx context.Context, goalID string) (*model.GoalInsight, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	insight, ok := m.goalInsights[goalID]
	if !ok {
		return nil, fmt.Errorf("goal insight %s: %w", goalID, ErrNotFound)
	}

	return insight, nil
}

func (m *MemoryStore) DeleteGoalInsight(ctx context.Context, goalID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.goalInsights, goalID)
	return nil
}
