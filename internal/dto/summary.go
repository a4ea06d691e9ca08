package dto

// PeriodSummaryRequest carries the period-summary query parameters. Both
// dates are required; currency empty means all currencies combined.
type PeriodSummaryRequest struct {
	DateFrom    string `form:"dateFrom" binding:"required"`
	DateTo      string `form:"dateTo" binding:"required"`
	Currency    string `form:"currency"`
	LatestCount int    `form:"latestCount"`
}
