package reporting

import (
	"errors"
	"testing"

	"github.com/yaas-media/reportdesk/internal/models"
)

func builderUser() *models.User {
	return &models.User{
		ID:       3,
		Email:    "asha@example.com",
		FullName: "Asha Verma",
		YaasID:   "Y-101",
	}
}

func validGeneral() GeneralAnswers {
	return GeneralAnswers{
		HygieneScore:     8.5,
		MistakesRepeated: "No",
		Delays:           "No",
	}
}

func validEntries() []models.ProjectEntry {
	return []models.ProjectEntry{
		{
			IPName:      "Sunrise Tales",
			SFDaily:     f64(4),
			HasBlockers: "No",
			HasQCRepeat: "No",
			DriveLinks:  "https://drive.example.com/a",
		},
	}
}

func TestBuildReport(t *testing.T) {
	report, err := BuildReport(builderUser(), "2024-06-12", validGeneral(), validEntries())
	if err != nil {
		t.Fatalf("BuildReport() error = %v", err)
	}

	if report.UserID != 3 || report.EditorName != "Asha Verma" || report.YaasID != "Y-101" {
		t.Errorf("editor identity not denormalized: %+v", report)
	}
	if report.WeekLabel != "Week 24 - June 2024" {
		t.Errorf("WeekLabel = %q, labels must be derived at build time", report.WeekLabel)
	}
	if report.MonthLabel != "June" {
		t.Errorf("MonthLabel = %q", report.MonthLabel)
	}
	if report.MistakesRepeated || report.Delays {
		t.Error("No answers must map to false")
	}
	if len(report.Entries) != 1 {
		t.Errorf("entries not carried over: %d", len(report.Entries))
	}
}

func TestBuildReport_ValidationFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(u *models.User, g *GeneralAnswers, e *[]models.ProjectEntry, date *string)
		field  string
	}{
		{
			"missing yaas id",
			func(u *models.User, g *GeneralAnswers, e *[]models.ProjectEntry, date *string) { u.YaasID = " " },
			"yaas_id",
		},
		{
			"bad date",
			func(u *models.User, g *GeneralAnswers, e *[]models.ProjectEntry, date *string) { *date = "12/06/2024" },
			"submission_date",
		},
		{
			"hygiene above range",
			func(u *models.User, g *GeneralAnswers, e *[]models.ProjectEntry, date *string) { g.HygieneScore = 10.5 },
			"hygiene_score",
		},
		{
			"hygiene not half step",
			func(u *models.User, g *GeneralAnswers, e *[]models.ProjectEntry, date *string) { g.HygieneScore = 7.3 },
			"hygiene_score",
		},
		{
			"mistakes yes without details",
			func(u *models.User, g *GeneralAnswers, e *[]models.ProjectEntry, date *string) { g.MistakesRepeated = "Yes" },
			"mistake_details",
		},
		{
			"delays yes without reason",
			func(u *models.User, g *GeneralAnswers, e *[]models.ProjectEntry, date *string) { g.Delays = "yes" },
			"delay_reasons",
		},
		{
			"no entries",
			func(u *models.User, g *GeneralAnswers, e *[]models.ProjectEntry, date *string) { *e = nil },
			"entries",
		},
		{
			"entry without ip name",
			func(u *models.User, g *GeneralAnswers, e *[]models.ProjectEntry, date *string) { (*e)[0].IPName = "" },
			"ip_name",
		},
		{
			"entry without links",
			func(u *models.User, g *GeneralAnswers, e *[]models.ProjectEntry, date *string) { (*e)[0].DriveLinks = "  " },
			"drive_links",
		},
		{
			"blockers yes without details",
			func(u *models.User, g *GeneralAnswers, e *[]models.ProjectEntry, date *string) { (*e)[0].HasBlockers = "Yes" },
			"blocker_details",
		},
		{
			"qc yes without details",
			func(u *models.User, g *GeneralAnswers, e *[]models.ProjectEntry, date *string) { (*e)[0].HasQCRepeat = "YES" },
			"qc_details",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := builderUser()
			general := validGeneral()
			entries := validEntries()
			date := "2024-06-12"
			tt.mutate(user, &general, &entries, &date)

			_, err := BuildReport(user, date, general, entries)
			if err == nil {
				t.Fatal("expected a validation error")
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("error type = %T, expected *ValidationError", err)
			}
			if verr.Field != tt.field {
				t.Errorf("Field = %q, expected %q", verr.Field, tt.field)
			}
		})
	}
}

func TestBuildReport_HalfPointScoresAccepted(t *testing.T) {
	for _, score := range []float64{0, 0.5, 5, 7.5, 10} {
		general := validGeneral()
		general.HygieneScore = score
		if _, err := BuildReport(builderUser(), "2024-06-12", general, validEntries()); err != nil {
			t.Errorf("score %v should be accepted, got %v", score, err)
		}
	}
}

func TestBuildReport_FlagAnswersCaseInsensitive(t *testing.T) {
	general := validGeneral()
	general.MistakesRepeated = " yes "
	general.MistakeDetails = "missed a title card"

	report, err := BuildReport(builderUser(), "2024-06-12", general, validEntries())
	if err != nil {
		t.Fatalf("BuildReport() error = %v", err)
	}
	if !report.MistakesRepeated {
		t.Error("a padded, lowercased yes must count as Yes")
	}
}
