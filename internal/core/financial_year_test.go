package core_test

import (
	"testing"
	"time"

	"vendordesk/internal/core"
)

func TestGenerateFinancialYears(t *testing.T) {
	years := core.GenerateFinancialYears(2022, 2024)
	if len(years) != 3 {
		t.Fatalf("got %d years, want 3", len(years))
	}

	first := years[0]
	if first.ID != "FY2022-2023" {
		t.Errorf("id = %s, want FY2022-2023", first.ID)
	}
	if !first.StartDate.Equal(time.Date(2022, time.April, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %s, want 2022-04-01", first.StartDate)
	}
	if !first.EndDate.Equal(time.Date(2023, time.March, 31, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("end = %s, want 2023-03-31", first.EndDate)
	}

	if core.GenerateFinancialYears(2024, 2020) != nil {
		t.Errorf("inverted range should yield nil")
	}
}

func TestDefaultFinancialYears(t *testing.T) {
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)
	years := core.DefaultFinancialYears(now)
	if years[0].ID != "FY2000-2001" {
		t.Errorf("first id = %s, want FY2000-2001", years[0].ID)
	}
	if last := years[len(years)-1]; last.ID != "FY2036-2037" {
		t.Errorf("last id = %s, want FY2036-2037", last.ID)
	}
}

func TestMatchFinancialYear(t *testing.T) {
	years := core.GenerateFinancialYears(2020, 2030)

	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		wantID  string
		matched bool
	}{
		{
			name:    "exact boundaries match",
			start:   time.Date(2023, time.April, 1, 0, 0, 0, 0, time.UTC),
			end:     time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC),
			wantID:  "FY2023-2024",
			matched: true,
		},
		{
			name:    "time of day is stripped before comparing",
			start:   time.Date(2023, time.April, 1, 15, 30, 0, 0, time.UTC),
			end:     time.Date(2024, time.March, 31, 23, 59, 59, 0, time.UTC),
			wantID:  "FY2023-2024",
			matched: true,
		},
		{
			name:    "one day off start does not match",
			start:   time.Date(2023, time.April, 2, 0, 0, 0, 0, time.UTC),
			end:     time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC),
			matched: false,
		},
		{
			name:    "one day short of a full FY does not match",
			start:   time.Date(2023, time.April, 1, 0, 0, 0, 0, time.UTC),
			end:     time.Date(2024, time.March, 30, 0, 0, 0, 0, time.UTC),
			matched: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := core.MatchFinancialYear(years, tt.start, tt.end)
			if ok != tt.matched {
				t.Fatalf("matched = %v, want %v", ok, tt.matched)
			}
			if ok && id != tt.wantID {
				t.Errorf("id = %s, want %s", id, tt.wantID)
			}
		})
	}
}

func TestFinancialYearByID(t *testing.T) {
	years := core.GenerateFinancialYears(2020, 2025)
	fy, ok := core.FinancialYearByID(years, "FY2024-2025")
	if !ok || fy.StartDate.Year() != 2024 {
		t.Errorf("lookup failed: ok=%v fy=%+v", ok, fy)
	}
	if _, ok := core.FinancialYearByID(years, "FY1999-2000"); ok {
		t.Errorf("expected miss for out-of-range id")
	}
}
