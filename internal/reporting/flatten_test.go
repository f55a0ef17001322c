package reporting

import (
	"reflect"
	"testing"

	"github.com/yaas-media/reportdesk/internal/models"
)

func f64(v float64) *float64 { return &v }

func sampleReport() models.Report {
	return models.Report{
		ID:             7,
		EditorName:     "Asha Verma",
		EditorEmail:    "asha@example.com",
		YaasID:         "Y-101",
		SubmissionDate: "2024-06-12",
		WeekLabel:      "Week 24 - June 2024",
		MonthLabel:     "June",
		HygieneScore:   8.5,
		Entries: []models.ProjectEntry{
			{
				IPName:      "Sunrise Tales",
				LeadEditor:  "Kiran",
				SFDaily:     f64(4),
				LFDaily:     f64(1),
				Approved:    f64(3),
				HasBlockers: "No",
				HasQCRepeat: "No",
				DriveLinks:  "https://drive.example.com/a",
			},
			{
				IPName:      "Night Owls",
				SFDaily:     f64(2),
				HasBlockers: "Yes",
				HasQCRepeat: "No",
				DriveLinks:  "https://drive.example.com/b",
			},
		},
	}
}

func TestFlatten_OneRowPerEntry(t *testing.T) {
	rows := Flatten([]models.Report{sampleReport()})

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	if rows[0].ID != "7_0" || rows[1].ID != "7_1" {
		t.Errorf("row ids = %q, %q; expected 7_0, 7_1", rows[0].ID, rows[1].ID)
	}

	// General fields are duplicated onto each row.
	for i, row := range rows {
		if row.EditorName != "Asha Verma" {
			t.Errorf("row %d EditorName = %q", i, row.EditorName)
		}
		if row.HygieneScore != 8.5 {
			t.Errorf("row %d HygieneScore = %v", i, row.HygieneScore)
		}
		if row.WeekLabel != "Week 24 - June 2024" {
			t.Errorf("row %d WeekLabel = %q", i, row.WeekLabel)
		}
	}

	if rows[0].IPName != "Sunrise Tales" || rows[1].IPName != "Night Owls" {
		t.Errorf("entry order not preserved: %q, %q", rows[0].IPName, rows[1].IPName)
	}
	if rows[0].SFDaily != 4 || rows[1].SFDaily != 2 {
		t.Errorf("SFDaily = %v, %v", rows[0].SFDaily, rows[1].SFDaily)
	}
}

func TestFlatten_EmptyEntriesYieldPlaceholderRow(t *testing.T) {
	report := sampleReport()
	report.Entries = nil

	rows := Flatten([]models.Report{report})
	if len(rows) != 1 {
		t.Fatalf("expected 1 placeholder row, got %d", len(rows))
	}

	row := rows[0]
	if row.IPName != Placeholder || row.DriveLinks != Placeholder {
		t.Errorf("entry columns should hold %q, got IPName=%q DriveLinks=%q", Placeholder, row.IPName, row.DriveLinks)
	}
	if row.EditorName != "Asha Verma" {
		t.Errorf("general fields should survive: EditorName = %q", row.EditorName)
	}
	if row.SFDaily != 0 {
		t.Errorf("numeric entry columns should be zero, got %v", row.SFDaily)
	}
}

func TestFlatten_LegacyFallback(t *testing.T) {
	report := sampleReport()
	report.Entries = []models.ProjectEntry{
		{
			IPName:         "Archive Show",
			ReelsDelivered: f64(6),
			ApprovedReels:  f64(5),
			HasBlockers:    "No",
			HasQCRepeat:    "No",
		},
	}

	rows := Flatten([]models.Report{report})
	row := rows[0]

	if row.SFDaily != 6 {
		t.Errorf("SFDaily = %v, expected legacy delivered count 6", row.SFDaily)
	}
	if !row.SFLegacy {
		t.Error("SFLegacy should be set when the fallback was taken")
	}
	if row.SFNote != LegacySFNote {
		t.Errorf("SFNote = %q, expected %q", row.SFNote, LegacySFNote)
	}
	if row.Approved != 5 {
		t.Errorf("Approved = %v, expected legacy approved count 5", row.Approved)
	}
}

func TestFlatten_ModernFieldWinsOverLegacy(t *testing.T) {
	report := sampleReport()
	report.Entries = []models.ProjectEntry{
		{
			IPName:         "Mixed Era",
			SFDaily:        f64(3),
			ReelsDelivered: f64(9),
			HasBlockers:    "No",
			HasQCRepeat:    "No",
		},
	}

	row := Flatten([]models.Report{report})[0]
	if row.SFDaily != 3 {
		t.Errorf("SFDaily = %v, the named field must win over the legacy one", row.SFDaily)
	}
	if row.SFLegacy {
		t.Error("SFLegacy should not be set when the named field is present")
	}
	if row.SFNote == LegacySFNote {
		t.Error("legacy note must not be attached when no fallback happened")
	}
}

func TestFlatten_PureAndIdempotent(t *testing.T) {
	reports := []models.Report{sampleReport()}

	first := Flatten(reports)
	second := Flatten(reports)

	if !reflect.DeepEqual(first, second) {
		t.Error("repeated flattening of the same reports should be structurally equal")
	}
	if reports[0].Entries[0].SFNote != "" {
		t.Error("input reports must not be mutated")
	}
}

func TestFlatten_Empty(t *testing.T) {
	if rows := Flatten(nil); len(rows) != 0 {
		t.Errorf("expected no rows for no reports, got %d", len(rows))
	}
}
