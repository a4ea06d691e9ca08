package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategorySummary is one category's roll-up inside a period summary.
type CategorySummary struct {
	CategoryID    string          `json:"categoryId"`
	CategoryKey   string          `json:"categoryKey"`
	CategoryName  string          `json:"categoryName"`
	CategoryColor string          `json:"categoryColor"`
	CategoryIcon  string          `json:"categoryIcon"`
	Total         decimal.Decimal `json:"total"`
	Count         int64           `json:"count"`
}

// SummarySide holds one direction (expenses or incomes) of a period summary.
type SummarySide struct {
	Total      decimal.Decimal   `json:"total"`
	ByCategory []CategorySummary `json:"byCategory"`
}

// SummaryPeriod echoes the requested period back to the caller.
type SummaryPeriod struct {
	From     time.Time `json:"from"`
	To       time.Time `json:"to"`
	Currency string    `json:"currency"`
}

// PeriodSummary is the category-grouped roll-up of a date range plus the most
// recent entries inside it. It is always well-formed: zero matches yield zero
// totals and empty slices, never nil.
type PeriodSummary struct {
	Period             SummaryPeriod   `json:"period"`
	Expenses           SummarySide     `json:"expenses"`
	Incomes            SummarySide     `json:"incomes"`
	Balance            decimal.Decimal `json:"balance"`
	LatestTransactions []LedgerEntry   `json:"latestTransactions"`
}
