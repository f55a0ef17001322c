package reporting

import (
	"fmt"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
)

// DateLayout is the wire format for submission dates.
const DateLayout = "2006-01-02"

// Labels holds the derived period labels stored on a report at submission time.
type Labels struct {
	WeekLabel  string `json:"week_label"`
	MonthLabel string `json:"month_label"`
}

var monthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// LabelFor derives the week and month labels for a submission date.
//
// The week number is ISO-8601 style: the date is shifted to the Thursday of its
// Monday-starting week, and the number counts Thursdays since the first
// Thursday of that Thursday's year. The month and year in the label are taken
// from the input date itself, so a date near a year boundary can carry a week
// number from one ISO year and the calendar month/year of the other. That
// mismatch is a documented quirk of the historical records, not a bug to fix.
//
// Empty or unparseable input yields empty labels rather than an error; the
// caller decides whether that is acceptable.
func LabelFor(dateStr string) Labels {
	if dateStr == "" {
		return Labels{}
	}
	d, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		return Labels{}
	}

	monthLabel := monthNames[int(d.Month())-1]

	thursday := d.AddDate(0, 0, 3-mondayIndex(d))
	weekNum := 1 + daysBetween(firstThursday(thursday.Year()), thursday)/7

	return Labels{
		WeekLabel:  fmt.Sprintf("Week %d - %s %d", weekNum, monthLabel, d.Year()),
		MonthLabel: monthLabel,
	}
}

// mondayIndex returns the day offset within a Monday-starting week (Mon=0 .. Sun=6).
func mondayIndex(d time.Time) int {
	return (int(d.Weekday()) + 6) % 7
}

// firstThursday returns the first Thursday on or after January 1 of the year.
func firstThursday(year int) time.Time {
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(time.Thursday) - int(jan1.Weekday()) + 7) % 7
	return jan1.AddDate(0, 0, offset)
}

func daysBetween(from, to time.Time) int {
	from = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	to = time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from) / (24 * time.Hour))
}

// WeekRange returns the Monday and Sunday of the plain calendar week containing
// d. This is display-range alignment only; it is independent of the ISO week
// numbering above and the two do not necessarily agree at year boundaries.
func WeekRange(d time.Time) (monday, sunday time.Time) {
	monday = d.AddDate(0, 0, -mondayIndex(d))
	monday = time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, d.Location())
	sunday = monday.AddDate(0, 0, 6)
	return monday, sunday
}

// WeekOption is one selectable week in the submission/admin dropdowns.
type WeekOption struct {
	Label    string `json:"label"`
	Value    string `json:"value"` // ISO date of the week's Thursday
	WeekNo   int    `json:"week_no"`
	WorkDays int    `json:"work_days"`
}

var businessCal = cal.NewBusinessCalendar()

func init() {
	businessCal.AddHoliday(us.Holidays...)
}

// WeekOptions lists the last 12 and next 2 weeks relative to now, newest first.
// Labels follow the dropdown convention "Week {n} ({Mon DD} - {Mon DD})".
func WeekOptions(now time.Time) []WeekOption {
	options := make([]WeekOption, 0, 15)
	for i := -12; i <= 2; i++ {
		d := now.AddDate(0, 0, i*7)
		thursday := d.AddDate(0, 0, 3-mondayIndex(d))
		weekNo := 1 + daysBetween(firstThursday(thursday.Year()), thursday)/7

		monday, sunday := WeekRange(d)
		options = append(options, WeekOption{
			Label: fmt.Sprintf("Week %d (%s - %s)",
				weekNo, monday.Format("Jan 02"), sunday.Format("Jan 02")),
			Value:    thursday.Format(DateLayout),
			WeekNo:   weekNo,
			WorkDays: businessCal.WorkdaysInRange(monday, sunday),
		})
	}
	// Newest week first.
	for i, j := 0, len(options)-1; i < j; i, j = i+1, j-1 {
		options[i], options[j] = options[j], options[i]
	}
	return options
}
