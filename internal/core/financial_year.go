package core

import (
	"fmt"
	"time"
)

// FinancialYear is one April 1 – March 31 accounting period. Years are never
// persisted; they are regenerated deterministically whenever needed.
type FinancialYear struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// defaultFYFromYear is the first financial year offered in filters.
const defaultFYFromYear = 2000

// GenerateFinancialYears returns the ordered FY sequence for start years
// fromYear..toYear inclusive. FY ids look like "FY2023-2024"; the span runs
// April 1 of the start year through March 31 of the following year.
func GenerateFinancialYears(fromYear, toYear int) []FinancialYear {
	if toYear < fromYear {
		return nil
	}
	years := make([]FinancialYear, 0, toYear-fromYear+1)
	for y := fromYear; y <= toYear; y++ {
		years = append(years, FinancialYear{
			ID:        fmt.Sprintf("FY%d-%d", y, y+1),
			Label:     fmt.Sprintf("%d-%d", y, y+1),
			StartDate: time.Date(y, time.April, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(y+1, time.March, 31, 0, 0, 0, 0, time.UTC),
		})
	}
	return years
}

// DefaultFinancialYears returns the filter range used by the UI:
// FY2000 through ten years past the current wall-clock year.
func DefaultFinancialYears(now time.Time) []FinancialYear {
	return GenerateFinancialYears(defaultFYFromYear, now.Year()+10)
}

// midnight strips the time-of-day and zone offset, keeping the civil date.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// MatchFinancialYear returns the id of the FY whose boundaries exactly equal
// the given range, comparing civil dates only. A range one day short of a
// full FY does not match; there is no partial or overlap matching.
func MatchFinancialYear(years []FinancialYear, startDate, endDate time.Time) (string, bool) {
	start := midnight(startDate)
	end := midnight(endDate)
	for _, fy := range years {
		if midnight(fy.StartDate).Equal(start) && midnight(fy.EndDate).Equal(end) {
			return fy.ID, true
		}
	}
	return "", false
}

// FinancialYearByID looks up a generated FY by its id.
func FinancialYearByID(years []FinancialYear, id string) (FinancialYear, bool) {
	for _, fy := range years {
		if fy.ID == id {
			return fy, true
		}
	}
	return FinancialYear{}, false
}
