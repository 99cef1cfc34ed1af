package store

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/fincoach/backend/internal/model"
)

const (
	transactionsCollection      = "transactions"
	goalsCollection             = "goals"
	recurringStatusesCollection = "recurringStatuses"
	goalInsightsCollection      = "goalInsights"
)

// FirestoreStore implements the Store interface using Firestore
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed store
func NewFirestoreStore(client *firestore.Client) Store {
	return &FirestoreStore{
		client: client,
	}
}

// recurringStatusDocID builds a deterministic document ID for a (user, charge
// name) pair. Base64 keeps names with slashes or other reserved characters
// valid as Firestore document IDs.
func recurringStatusDocID(userID, name string) string {
	return base64.URLEncoding.EncodeToString([]byte(recurringStatusKey(userID, name)))
}

// applyDateAwarePagination handles pagination for queries with date range filters.
// Firestore requires OrderBy on inequality fields first, so we use OrderBy("Date") + OrderBy(__name__).
// The cursor must include both the Date value and the document ID.
func (s *FirestoreStore) applyDateAwarePagination(ctx context.Context, query firestore.Query, collection string, pageSize int32, pageToken string) (firestore.Query, error) {
	query = query.OrderBy("Date", firestore.Asc).OrderBy(firestore.DocumentID, firestore.Asc)

	if pageToken != "" {
		docID, err := DecodePageToken(pageToken)
		if err != nil {
			return query, fmt.Errorf("invalid page token: %w", err)
		}
		// Fetch the cursor document to get its Date value for composite StartAfter
		cursorDoc, err := s.client.Collection(collection).Doc(docID).Get(ctx)
		if err != nil {
			return query, fmt.Errorf("failed to fetch cursor document: %w", err)
		}
		dateVal := cursorDoc.Data()["Date"]
		query = query.StartAfter(dateVal, docID)
	}

	if pageSize <= 0 {
		pageSize = 100
	}
	query = query.Limit(int(pageSize) + 1)
	return query, nil
}

// applyCursorPagination adds OrderBy + StartAfter + Limit to a query for cursor-based pagination.
// It fetches pageSize+1 docs so the caller can detect whether a next page exists.
func (s *FirestoreStore) applyCursorPagination(query firestore.Query, pageSize int32, pageToken string) (firestore.Query, error) {
	query = query.OrderBy(firestore.DocumentID, firestore.Asc)

	if pageToken != "" {
		docID, err := DecodePageToken(pageToken)
		if err != nil {
			return query, fmt.Errorf("invalid page token: %w", err)
		}
		query = query.StartAfter(docID)
	}

	if pageSize <= 0 {
		pageSize = 100
	}
	query = query.Limit(int(pageSize) + 1) // +1 to detect next page
	return query, nil
}

// Transaction operations

func (s *FirestoreStore) CreateTransaction(ctx context.Context, tx *model.Transaction) error {
	_, err := s.client.Collection(transactionsCollection).Doc(tx.ID).Set(ctx, tx)
	return err
}

// BatchCreateTransactions writes transactions with a bulk writer so large CSV
// imports don't pay one round trip per row.
func (s *FirestoreStore) BatchCreateTransactions(ctx context.Context, txs []*model.Transaction) error {
	bw := s.client.BulkWriter(ctx)
	for _, tx := range txs {
		if _, err := bw.Set(s.client.Collection(transactionsCollection).Doc(tx.ID), tx); err != nil {
			return fmt.Errorf("failed to queue transaction %s: %w", tx.ID, err)
		}
	}
	bw.End()
	return nil
}

func (s *FirestoreStore) GetTransaction(ctx context.Context, txID string) (*model.Transaction, error) {
	doc, err := s.client.Collection(transactionsCollection).Doc(txID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("transaction %s: %w", txID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	var tx model.Transaction
	if err := doc.DataTo(&tx); err != nil {
		return nil, fmt.Errorf("failed to parse transaction: %w", err)
	}
	return &tx, nil
}

func (s *FirestoreStore) DeleteTransaction(ctx context.Context, txID string) error {
	doc := s.client.Collection(transactionsCollection).Doc(txID)
	if _, err := doc.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("transaction %s: %w", txID, ErrNotFound)
		}
		return fmt.Errorf("failed to get transaction: %w", err)
	}

	_, err := doc.Delete(ctx)
	return err
}

func (s *FirestoreStore) ListTransactions(ctx context.Context, userID string, startDate, endDate *time.Time, pageSize int32, pageToken string) ([]*model.Transaction, string, error) {
	query := s.client.Collection(transactionsCollection).Query

	// NOTE: Field names must match the firestore struct tags (PascalCase)
	if userID != "" {
		query = query.Where("UserId", "==", userID)
	}

	hasDateFilter := startDate != nil || endDate != nil
	if startDate != nil {
		query = query.Where("Date", ">=", *startDate)
	}
	if endDate != nil {
		query = query.Where("Date", "<=", *endDate)
	}

	// When date range filters are present, Firestore requires OrderBy on the
	// range field first.
	var err error
	if hasDateFilter {
		query, err = s.applyDateAwarePagination(ctx, query, transactionsCollection, pageSize, pageToken)
	} else {
		query, err = s.applyCursorPagination(query, pageSize, pageToken)
	}
	if err != nil {
		return nil, "", err
	}

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, "", fmt.Errorf("failed to list transactions: %w", err)
	}

	if pageSize <= 0 {
		pageSize = 100
	}

	var nextPageToken string
	if len(docs) > int(pageSize) {
		docs = docs[:pageSize]
		nextPageToken = EncodePageToken(docs[pageSize-1].Ref.ID)
	}

	txs := make([]*model.Transaction, 0, len(docs))
	for _, doc := range docs {
		var tx model.Transaction
		if err := doc.DataTo(&tx); err != nil {
			return nil, "", fmt.Errorf("failed to parse transaction: %w", err)
		}
		txs = append(txs, &tx)
	}

	return txs, nextPageToken, nil
}

// Goal operations

func (s *FirestoreStore) CreateGoal(ctx context.Context, goal *model.Goal) error {
	_, err := s.client.Collection(goalsCollection).Doc(goal.ID).Set(ctx, goal)
	return err
}

func (s *FirestoreStore) GetGoal(ctx context.Context, goalID string) (*model.Goal, error) {
	doc, err := s.client.Collection(goalsCollection).Doc(goalID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("goal %s: %w", goalID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}

	var goal model.Goal
	if err := doc.DataTo(&goal); err != nil {
		return nil, fmt.Errorf("failed to parse goal: %w", err)
	}
	return &goal, nil
}

func (s *FirestoreStore) UpdateGoal(ctx context.Context, goal *model.Goal) error {
	if _, err := s.GetGoal(ctx, goal.ID); err != nil {
		return err
	}

	_, err := s.client.Collection(goalsCollection).Doc(goal.ID).Set(ctx, goal)
	return err
}

func (s *FirestoreStore) DeleteGoal(ctx context.Context, goalID string) error {
	if _, err := s.GetGoal(ctx, goalID); err != nil {
		return err
	}

	_, err := s.client.Collection(goalsCollection).Doc(goalID).Delete(ctx)
	return err
}

func (s *FirestoreStore) ListGoals(ctx context.Context, userID string) ([]*model.Goal, error) {
	query := s.client.Collection(goalsCollection).Query
	if userID != "" {
		query = query.Where("UserId", "==", userID)
	}
	query = query.OrderBy(firestore.DocumentID, firestore.Asc)

	var goals []*model.Goal
	it := query.Documents(ctx)
	defer it.Stop()
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list goals: %w", err)
		}
		var goal model.Goal
		if err := doc.DataTo(&goal); err != nil {
			return nil, fmt.Errorf("failed to parse goal: %w", err)
		}
		goals = append(goals, &goal)
	}

	return goals, nil
}

// Recurring charge status overrides

func (s *FirestoreStore) UpsertRecurringStatus(ctx context.Context, override *model.RecurringStatusOverride) error {
	docID := recurringStatusDocID(override.UserID, override.Name)
	_, err := s.client.Collection(recurringStatusesCollection).Doc(docID).Set(ctx, override)
	return err
}

func (s *FirestoreStore) ListRecurringStatuses(ctx context.Context, userID string) ([]*model.RecurringStatusOverride, error) {
	query := s.client.Collection(recurringStatusesCollection).
		Where("UserId", "==", userID).
		OrderBy("Name", firestore.Asc)

	var overrides []*model.RecurringStatusOverride
	it := query.Documents(ctx)
	defer it.Stop()
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list recurring statuses: %w", err)
		}
		var override model.RecurringStatusOverride
		if err := doc.DataTo(&override); err != nil {
			return nil, fmt.Errorf("failed to parse recurring status: %w", err)
		}
		overrides = append(overrides, &override)
	}

	return overrides, nil
}

// Goal insight cache

func (s *FirestoreStore) SaveGoalInsight(ctx context.Context, insight *model.GoalInsight) error {
	_, err := s.client.Collection(goalInsightsCollection).Doc(insight.GoalID).Set(ctx, insight)
	return err
}

func (s *FirestoreStore) GetGoalInsight(ctx context.Context, goalID string) (*model.GoalInsight, error) {
	doc, err := s.client.Collection(goalInsightsCollection).Doc(goalID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("goal insight %s: %w", goalID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get goal insight: %w", err)
	}

	var insight model.GoalInsight
	if err := doc.DataTo(&insight); err != nil {
		return nil, fmt.Errorf("failed to parse goal insight: %w", err)
	}
	return &insight, nil
}

func (s *FirestoreStore) DeleteGoalInsight(ctx context.Context, goalID string) error {
	_, err := s.client.Collection(goalInsightsCollection).Doc(goalID).Delete(ctx)
	return err
}
