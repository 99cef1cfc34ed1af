package model

import "time"

// SignalKind discriminates the Signal union.
type SignalKind string

const (
	SignalKindCategoryTrend   SignalKind = "category_trend"
	SignalKindAnomaly         SignalKind = "anomaly"
	SignalKindRecurringCharge SignalKind = "recurring_charge"
	SignalKindCashflow        SignalKind = "cashflow"
)

// Signal is the sealed union of analytics outputs. Consumers switch on
// Kind() instead of inspecting runtime types. All variants are immutable
// value objects built fresh on every engine invocation.
type Signal interface {
	Kind() SignalKind
}

// Frequency classifies the periodicity of a recurring charge.
type Frequency string

const (
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

// TrendDirection classifies month-over-month cashflow movement.
type TrendDirection string

const (
	TrendImproving TrendDirection = "improving"
	TrendDeclining TrendDirection = "declining"
	TrendStable    TrendDirection = "stable"
)

// CategoryTrend reports a material month-over-month spending shift in one
// normalized category.
type CategoryTrend struct {
	Category           string  `json:"category"`
	DeltaPercent       float64 `json:"deltaPercent"`
	MonthlyImpact      float64 `json:"monthlyImpact"`
	Confidence         float64 `json:"confidence"`
	CurrentMonthTotal  float64 `json:"currentMonthTotal"`
	PreviousMonthTotal float64 `json:"previousMonthTotal"`
}

func (CategoryTrend) Kind() SignalKind { return SignalKindCategoryTrend }

// Anomaly flags a statistically unusual expense transaction.
type Anomaly struct {
	TransactionID string    `json:"transactionId"`
	Amount        float64   `json:"amount"`
	Date          time.Time `json:"date"`
	Reason        string    `json:"reason"`
	Confidence    float64   `json:"confidence"`
}

func (Anomaly) Kind() SignalKind { return SignalKindAnomaly }

// RecurringCharge describes a detected subscription-like charge.
type RecurringCharge struct {
	Name             string    `json:"name"`
	Amount           float64   `json:"amount"`
	Frequency        Frequency `json:"frequency"`
	Confidence       float64   `json:"confidence"`
	TransactionCount int       `json:"transactionCount"`
}

func (RecurringCharge) Kind() SignalKind { return SignalKindRecurringCharge }

// Cashflow summarizes one calendar month. SavingsRate is nil when the month
// has no income (never NaN or Inf).
type Cashflow struct {
	MonthlyIncome   float64        `json:"monthlyIncome"`
	MonthlyExpenses float64        `json:"monthlyExpenses"`
	Net             float64        `json:"net"`
	SavingsRate     *float64       `json:"savingsRate"`
	Trend           TrendDirection `json:"trend"`
}

func (Cashflow) Kind() SignalKind { return SignalKindCashflow }
