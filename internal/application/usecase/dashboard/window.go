// Package dashboard contains dashboard aggregation use cases.
package dashboard

import (
	"time"

	domainerror "github.com/expense-claims/backend/internal/domain/error"
)

// TimeFilter selects the reporting window for the dashboard.
type TimeFilter string

const (
	FilterThisMonth       TimeFilter = "this_month"
	FilterLastThreeMonths TimeFilter = "last_three_months"
	FilterYearToDate      TimeFilter = "year_to_date"
	FilterAllTime         TimeFilter = "all_time"
)

// ParseTimeFilter maps a query value to a TimeFilter. An empty value
// defaults to this month.
func ParseTimeFilter(value string) (TimeFilter, error) {
	switch TimeFilter(value) {
	case FilterThisMonth, FilterLastThreeMonths, FilterYearToDate, FilterAllTime:
		return TimeFilter(value), nil
	case "":
		return FilterThisMonth, nil
	}
	return "", domainerror.NewDashboardError(
		domainerror.ErrCodeInvalidDashboardFilter,
		"filter must be one of: this_month, last_three_months, year_to_date, all_time",
		domainerror.ErrInvalidDashboardFilter,
	)
}

// WindowFor resolves the filter to a [start, end] range ending at now.
func WindowFor(filter TimeFilter, now time.Time) (start, end time.Time) {
	switch filter {
	case FilterLastThreeMonths:
		return now.AddDate(0, -3, 0), now
	case FilterYearToDate:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()), now
	case FilterAllTime:
		return time.Time{}, now
	default:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), now
	}
}
