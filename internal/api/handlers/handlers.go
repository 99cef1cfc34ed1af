// Package handlers exposes the coach service over JSON HTTP.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/fincoach/backend/internal/analytics"
	"github.com/fincoach/backend/internal/api/middleware"
	"github.com/fincoach/backend/internal/ingest"
	"github.com/fincoach/backend/internal/model"
	"github.com/fincoach/backend/internal/service"
	"github.com/fincoach/backend/internal/store"
)

// CoachHandler handles all API endpoints.
type CoachHandler struct {
	svc *service.CoachService
	log zerolog.Logger
}

// NewCoachHandler creates a new coach handler.
func NewCoachHandler(svc *service.CoachService, log zerolog.Logger) *CoachHandler {
	return &CoachHandler{
		svc: svc,
		log: log,
	}
}

// Register attaches all routes to the mux.
func (h *CoachHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.Health)

	mux.HandleFunc("POST /api/v1/transactions", h.CreateTransaction)
	mux.HandleFunc("GET /api/v1/transactions", h.ListTransactions)
	mux.HandleFunc("POST /api/v1/transactions/import", h.ImportTransactions)

	mux.HandleFunc("GET /api/v1/dashboard", h.GetDashboard)

	mux.HandleFunc("GET /api/v1/recurring", h.ListRecurringCharges)
	mux.HandleFunc("PUT /api/v1/recurring/status", h.SetRecurringStatus)

	mux.HandleFunc("POST /api/v1/goals", h.CreateGoal)
	mux.HandleFunc("GET /api/v1/goals", h.ListGoals)
	mux.HandleFunc("GET /api/v1/goals/{id}", h.GetGoal)
	mux.HandleFunc("PUT /api/v1/goals/{id}", h.UpdateGoal)
	mux.HandleFunc("DELETE /api/v1/goals/{id}", h.DeleteGoal)
	mux.HandleFunc("GET /api/v1/goals/{id}/insight", h.GetGoalInsight)
}

// userID extracts the caller identity. There is no auth layer in front of
// this service yet, so identity travels in a header.
func userID(r *http.Request) string {
	return r.Header.Get("X-User-ID")
}

// writeServiceError maps service errors to HTTP statuses.
func (h *CoachHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNotFound):
		middleware.WriteError(w, http.StatusNotFound, err.Error())
	default:
		h.log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		middleware.WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// Health handles GET /healthz
func (h *CoachHandler) Health(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// CreateTransaction handles POST /api/v1/transactions
func (h *CoachHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount       float64 `json:"amount"`
		Date         string  `json:"date"`
		Category     *string `json:"category"`
		Name         string  `json:"name"`
		MerchantName *string `json:"merchantName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	date, err := analytics.ParseDate(req.Date)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	tx, err := h.svc.CreateTransaction(r.Context(), &model.Transaction{
		UserID:       userID(r),
		Amount:       req.Amount,
		Date:         date,
		Category:     req.Category,
		Name:         req.Name,
		MerchantName: req.MerchantName,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, tx)
}

// ListTransactions handles GET /api/v1/transactions
func (h *CoachHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var startDate, endDate *time.Time
	if s := q.Get("start"); s != "" {
		d, err := analytics.ParseDate(s)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, "start must be YYYY-MM-DD")
			return
		}
		startDate = &d
	}
	if s := q.Get("end"); s != "" {
		d, err := analytics.ParseDate(s)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, "end must be YYYY-MM-DD")
			return
		}
		endDate = &d
	}

	pageSize := 0
	if s := q.Get("pageSize"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			middleware.WriteError(w, http.StatusBadRequest, "pageSize must be a non-negative integer")
			return
		}
		pageSize = n
	}

	txs, nextToken, err := h.svc.ListTransactions(r.Context(), userID(r), startDate, endDate, int32(pageSize), q.Get("pageToken"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"transactions":  txs,
		"count":         len(txs),
		"nextPageToken": nextToken,
	})
}

// ImportTransactions handles POST /api/v1/transactions/import with a CSV body.
func (h *CoachHandler) ImportTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := ingest.ReadTransactionsCSV(r.Body)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	count, err := h.svc.ImportTransactions(r.Context(), userID(r), txs)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]int{"imported": count})
}

// GetDashboard handles GET /api/v1/dashboard?month=YYYY-MM
func (h *CoachHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	target := analytics.MonthOf(time.Now())
	if s := r.URL.Query().Get("month"); s != "" {
		m, err := analytics.ParseMonth(s)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, "month must be YYYY-MM")
			return
		}
		target = m
	}

	dash, err := h.svc.GetDashboard(r.Context(), userID(r), target)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dash)
}

// ListRecurringCharges handles GET /api/v1/recurring?bucket=high|medium|low
func (h *CoachHandler) ListRecurringCharges(w http.ResponseWriter, r *http.Request) {
	charges, err := h.svc.ListRecurringCharges(r.Context(), userID(r), r.URL.Query().Get("bucket"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"charges": charges,
		"count":   len(charges),
	})
}

// SetRecurringStatus handles PUT /api/v1/recurring/status
func (h *CoachHandler) SetRecurringStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name   string `json:"name"`
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.svc.SetRecurringStatus(r.Context(), userID(r), req.Name, model.RecurringChargeStatus(req.Status)); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]string{
		"name":   req.Name,
		"status": req.Status,
	})
}

type goalRequest struct {
	Name         string  `json:"name"`
	TargetAmount float64 `json:"targetAmount"`
	TargetDate   string  `json:"targetDate"`
}

func (g goalRequest) parseTargetDate() (time.Time, error) {
	return analytics.ParseDate(g.TargetDate)
}

// CreateGoal handles POST /api/v1/goals
func (h *CoachHandler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	targetDate, err := req.parseTargetDate()
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "targetDate must be YYYY-MM-DD")
		return
	}

	goal, err := h.svc.CreateGoal(r.Context(), userID(r), req.Name, req.TargetAmount, targetDate)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, goal)
}

// ListGoals handles GET /api/v1/goals
func (h *CoachHandler) ListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := h.svc.ListGoals(r.Context(), userID(r))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"goals": goals,
		"count": len(goals),
	})
}

// GetGoal handles GET /api/v1/goals/{id}
func (h *CoachHandler) GetGoal(w http.ResponseWriter, r *http.Request) {
	goal, err := h.svc.GetGoal(r.Context(), userID(r), r.PathValue("id"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, goal)
}

// UpdateGoal handles PUT /api/v1/goals/{id}
func (h *CoachHandler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	targetDate, err := req.parseTargetDate()
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "targetDate must be YYYY-MM-DD")
		return
	}

	goal, err := h.svc.UpdateGoal(r.Context(), userID(r), r.PathValue("id"), req.Name, req.TargetAmount, targetDate)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, goal)
}

// DeleteGoal handles DELETE /api/v1/goals/{id}
func (h *CoachHandler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteGoal(r.Context(), userID(r), r.PathValue("id")); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]string{"deleted": r.PathValue("id")})
}

// GetGoalInsight handles GET /api/v1/goals/{id}/insight?regenerate=true
func (h *CoachHandler) GetGoalInsight(w http.ResponseWriter, r *http.Request) {
	regenerate := r.URL.Query().Get("regenerate") == "true"

	insight, err := h.svc.GetGoalInsight(r.Context(), userID(r), r.PathValue("id"), regenerate)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, insight)
}
