package reporting

import (
	"testing"
	"time"
)

func TestLabelFor(t *testing.T) {
	tests := []struct {
		name      string
		date      string
		weekLabel string
		month     string
	}{
		{"first week of january", "2024-01-01", "Week 1 - January 2024", "January"},
		{"mid year", "2024-06-12", "Week 24 - June 2024", "June"},
		{"sunday maps to its monday week", "2024-01-07", "Week 1 - January 2024", "January"},
		{"next monday starts week 2", "2024-01-08", "Week 2 - January 2024", "January"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LabelFor(tt.date)
			if got.WeekLabel != tt.weekLabel {
				t.Errorf("WeekLabel = %q, expected %q", got.WeekLabel, tt.weekLabel)
			}
			if got.MonthLabel != tt.month {
				t.Errorf("MonthLabel = %q, expected %q", got.MonthLabel, tt.month)
			}
		})
	}
}

// A date whose Thursday falls in the next ISO year keeps the calendar month
// and year of the input date. Historical records were written this way, so
// the mismatch is load-bearing.
func TestLabelFor_YearBoundaryQuirk(t *testing.T) {
	got := LabelFor("2024-12-30")
	want := "Week 1 - December 2024"
	if got.WeekLabel != want {
		t.Errorf("WeekLabel = %q, expected %q", got.WeekLabel, want)
	}
	if got.MonthLabel != "December" {
		t.Errorf("MonthLabel = %q, expected %q", got.MonthLabel, "December")
	}
}

func TestLabelFor_SameWeekSameLabel(t *testing.T) {
	// Monday through Sunday of one week share the week number.
	monday := LabelFor("2024-06-10")
	sunday := LabelFor("2024-06-16")
	if monday.WeekLabel != sunday.WeekLabel {
		t.Errorf("labels differ within one week: %q vs %q", monday.WeekLabel, sunday.WeekLabel)
	}
}

func TestLabelFor_BadInput(t *testing.T) {
	for _, date := range []string{"", "not-a-date", "2024-13-45", "06/12/2024"} {
		got := LabelFor(date)
		if got.WeekLabel != "" || got.MonthLabel != "" {
			t.Errorf("LabelFor(%q) = %+v, expected empty labels", date, got)
		}
	}
}

func TestLabelFor_Deterministic(t *testing.T) {
	first := LabelFor("2024-03-15")
	for i := 0; i < 10; i++ {
		if got := LabelFor("2024-03-15"); got != first {
			t.Fatalf("LabelFor is not deterministic: %+v vs %+v", got, first)
		}
	}
}

func TestWeekRange(t *testing.T) {
	// 2024-06-12 is a Wednesday.
	d := time.Date(2024, 6, 12, 15, 30, 0, 0, time.UTC)
	monday, sunday := WeekRange(d)

	if monday.Weekday() != time.Monday {
		t.Errorf("range start is %s, expected Monday", monday.Weekday())
	}
	if sunday.Weekday() != time.Sunday {
		t.Errorf("range end is %s, expected Sunday", sunday.Weekday())
	}
	if got := monday.Format(DateLayout); got != "2024-06-10" {
		t.Errorf("monday = %s, expected 2024-06-10", got)
	}
	if got := sunday.Format(DateLayout); got != "2024-06-16" {
		t.Errorf("sunday = %s, expected 2024-06-16", got)
	}
}

func TestWeekOptions(t *testing.T) {
	now := time.Date(2024, 6, 12, 12, 0, 0, 0, time.UTC)
	options := WeekOptions(now)

	if len(options) != 15 {
		t.Fatalf("expected 15 options (12 past + current + 2 future), got %d", len(options))
	}

	// Newest first: the first option is two weeks ahead of now.
	first, _ := time.Parse(DateLayout, options[0].Value)
	last, _ := time.Parse(DateLayout, options[len(options)-1].Value)
	if !first.After(last) {
		t.Errorf("options are not newest first: first=%s last=%s", options[0].Value, last.Format(DateLayout))
	}

	for _, opt := range options {
		if opt.WeekNo < 1 || opt.WeekNo > 53 {
			t.Errorf("option %q has impossible week number %d", opt.Label, opt.WeekNo)
		}
		// A Mon-Sun week has at most 5 business days.
		if opt.WorkDays < 1 || opt.WorkDays > 5 {
			t.Errorf("option %q has %d work days", opt.Label, opt.WorkDays)
		}
		d, err := time.Parse(DateLayout, opt.Value)
		if err != nil {
			t.Errorf("option value %q is not an ISO date", opt.Value)
		} else if d.Weekday() != time.Thursday {
			t.Errorf("option value %s is a %s, expected Thursday", opt.Value, d.Weekday())
		}
	}
}

func TestWeekOptions_HolidayWeekHasFewerWorkDays(t *testing.T) {
	// Week containing July 4, 2024 (a Thursday).
	now := time.Date(2024, 7, 3, 12, 0, 0, 0, time.UTC)
	options := WeekOptions(now)

	// Current week is the third from the top (two future weeks precede it).
	current := options[2]
	if current.WorkDays != 4 {
		t.Errorf("July 4th week should have 4 work days, got %d (label %q)", current.WorkDays, current.Label)
	}
}
