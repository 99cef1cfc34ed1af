package model

import "time"

// Goal is a user savings goal: reach TargetAmount by TargetDate.
type Goal struct {
	ID           string    `json:"id" firestore:"Id"`
	UserID       string    `json:"userId" firestore:"UserId"`
	Name         string    `json:"name" firestore:"Name"`
	TargetAmount float64   `json:"targetAmount" firestore:"TargetAmount"`
	TargetDate   time.Time `json:"targetDate" firestore:"TargetDate"`
	CreatedAt    time.Time `json:"createdAt" firestore:"CreatedAt"`
	UpdatedAt    time.Time `json:"updatedAt" firestore:"UpdatedAt"`
}

// GoalStatus classifies goal feasibility.
type GoalStatus string

const (
	GoalOnTrack  GoalStatus = "on_track"
	GoalOffTrack GoalStatus = "off_track"
)

// GoalFeasibility is the derived gap between what a goal requires per month
// and what recent history suggests the user can sustain.
type GoalFeasibility struct {
	RequiredPerMonth         float64    `json:"requiredPerMonth"`
	EstimatedSurplusPerMonth float64    `json:"estimatedSurplusPerMonth"`
	GapPerMonth              float64    `json:"gapPerMonth"`
	Status                   GoalStatus `json:"status"`
}

// GoalInsight is the combined analytics packet for one goal, cached by the
// storage layer and handed to the external coaching-text generator. It is
// invalidated only on an explicit regeneration request.
type GoalInsight struct {
	GoalID           string            `json:"goalId" firestore:"GoalId"`
	UserID           string            `json:"userId" firestore:"UserId"`
	Feasibility      GoalFeasibility   `json:"feasibility" firestore:"Feasibility"`
	Cashflow         Cashflow          `json:"cashflow" firestore:"Cashflow"`
	Trends           []CategoryTrend   `json:"trends" firestore:"Trends"`
	Anomalies        []Anomaly         `json:"anomalies" firestore:"Anomalies"`
	RecurringCharges []RecurringCharge `json:"recurringCharges" firestore:"RecurringCharges"`
	GeneratedAt      time.Time         `json:"generatedAt" firestore:"GeneratedAt"`
}
