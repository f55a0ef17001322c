package reporting

import (
	"reflect"
	"testing"

	"github.com/yaas-media/reportdesk/internal/models"
)

// Three reports: two entries, three entries, no entries (placeholder).
func engineFixture() []FlatRow {
	reports := []models.Report{
		{
			ID:             1,
			EditorName:     "Asha Verma",
			YaasID:         "Y-101",
			SubmissionDate: "2024-06-10",
			HygieneScore:   9,
			Entries: []models.ProjectEntry{
				{IPName: "Sunrise Tales", SFDaily: f64(4), HasBlockers: "No", HasQCRepeat: "No"},
				{IPName: "Night Owls", SFDaily: f64(2), HasBlockers: "No", HasQCRepeat: "No"},
			},
		},
		{
			ID:             2,
			EditorName:     "Ben Okafor",
			YaasID:         "Y-102",
			SubmissionDate: "2024-06-11",
			HygieneScore:   7.5,
			Entries: []models.ProjectEntry{
				{IPName: "Sunrise Tales", SFDaily: f64(5), HasBlockers: "Yes", HasQCRepeat: "No"},
				{IPName: "Deep Dive", SFDaily: f64(1), HasBlockers: "No", HasQCRepeat: "No"},
				{IPName: "Night Owls", SFDaily: f64(3), HasBlockers: "No", HasQCRepeat: "No"},
			},
		},
		{
			ID:             3,
			EditorName:     "Chen Wei",
			YaasID:         "Y-103",
			SubmissionDate: "2024-06-12",
			HygieneScore:   8,
		},
	}
	return Flatten(reports)
}

func TestProcess_NoParamsKeepsOrder(t *testing.T) {
	rows := engineFixture()
	out := Process(rows, "", nil, SortSpec{})

	if len(out) != 6 {
		t.Fatalf("expected 6 rows, got %d", len(out))
	}
	for i, row := range out {
		if row.ID != rows[i].ID {
			t.Errorf("row %d reordered: got %q, expected %q", i, row.ID, rows[i].ID)
		}
		// No grouping key: every row stands alone.
		if row.RowSpan != 1 || row.Merged {
			t.Errorf("row %d should be ungrouped, got span=%d merged=%v", i, row.RowSpan, row.Merged)
		}
	}
}

func TestProcess_SearchMatchesNameIDAndIP(t *testing.T) {
	rows := engineFixture()

	tests := []struct {
		search string
		want   int
	}{
		{"asha", 2},       // editor name, both entry rows
		{"y-102", 3},      // YAAS id
		{"night owls", 2}, // IP name across two reports
		{"OWLS", 2},       // case-insensitive
		{"zzz", 0},
	}

	for _, tt := range tests {
		out := Process(rows, tt.search, nil, SortSpec{})
		if len(out) != tt.want {
			t.Errorf("search %q matched %d rows, expected %d", tt.search, len(out), tt.want)
		}
	}
}

func TestProcess_FiltersCompose(t *testing.T) {
	rows := engineFixture()

	out := Process(rows, "", map[string]string{
		"ip_name":      "Sunrise",
		"has_blockers": "Yes",
	}, SortSpec{})

	if len(out) != 1 {
		t.Fatalf("expected 1 row after AND of filters, got %d", len(out))
	}
	if out[0].EditorName != "Ben Okafor" {
		t.Errorf("wrong row survived: %q", out[0].EditorName)
	}
}

func TestProcess_SearchAndFilterTogether(t *testing.T) {
	rows := engineFixture()

	out := Process(rows, "night owls", map[string]string{"editor_name": "ben"}, SortSpec{})
	if len(out) != 1 {
		t.Fatalf("expected 1 row, got %d", len(out))
	}
	if out[0].YaasID != "Y-102" {
		t.Errorf("wrong row: %q", out[0].YaasID)
	}
}

func TestProcess_NumericSortDescDisablesGrouping(t *testing.T) {
	rows := engineFixture()
	out := Process(rows, "", nil, SortSpec{Key: "sf_daily", Direction: SortDesc})

	var values []float64
	for _, row := range out {
		values = append(values, row.SFDaily)
	}
	want := []float64{5, 4, 3, 2, 1, 0}
	if !reflect.DeepEqual(values, want) {
		t.Errorf("sf_daily desc order = %v, expected %v", values, want)
	}

	// Metric sort interleaves reports, so no row-span blocks.
	for i, row := range out {
		if row.RowSpan != 1 || row.Merged {
			t.Errorf("row %d should be ungrouped under metric sort", i)
		}
	}
}

func TestProcess_GroupingOnEditorSort(t *testing.T) {
	rows := engineFixture()
	out := Process(rows, "", nil, SortSpec{Key: "editor_name", Direction: SortAsc})

	if len(out) != 6 {
		t.Fatalf("expected 6 rows, got %d", len(out))
	}

	// Asha (2 rows), Ben (3 rows), Chen (1 placeholder row).
	if out[0].RowSpan != 2 || out[0].Merged {
		t.Errorf("first block: span=%d merged=%v, expected span 2", out[0].RowSpan, out[0].Merged)
	}
	if !out[1].Merged || out[1].RowSpan != 0 {
		t.Errorf("second row should be merged follower, got span=%d merged=%v", out[1].RowSpan, out[1].Merged)
	}
	if out[2].RowSpan != 3 {
		t.Errorf("Ben's block span = %d, expected 3", out[2].RowSpan)
	}
	if !out[3].Merged || !out[4].Merged {
		t.Error("Ben's follower rows should be merged")
	}
	if out[5].RowSpan != 1 || out[5].Merged {
		t.Errorf("single-row block should have span 1, got span=%d merged=%v", out[5].RowSpan, out[5].Merged)
	}

	// Entry-specific values stay on their own rows inside a block.
	if out[2].IPName == out[3].IPName {
		t.Error("entry columns must not be merged away")
	}
}

func TestProcess_StableSortKeepsEntryOrder(t *testing.T) {
	rows := engineFixture()
	out := Process(rows, "", nil, SortSpec{Key: "submission_date", Direction: SortAsc})

	// Within one report the entries keep their original order on ties.
	if out[2].IPName != "Sunrise Tales" || out[3].IPName != "Deep Dive" || out[4].IPName != "Night Owls" {
		t.Errorf("entry order broke under stable sort: %q, %q, %q", out[2].IPName, out[3].IPName, out[4].IPName)
	}
}

func TestProcess_InputUntouched(t *testing.T) {
	rows := engineFixture()
	snapshot := make([]FlatRow, len(rows))
	copy(snapshot, rows)

	Process(rows, "asha", map[string]string{"ip_name": "owls"}, SortSpec{Key: "sf_daily", Direction: SortDesc})

	if !reflect.DeepEqual(rows, snapshot) {
		t.Error("Process must not mutate its input")
	}
}

func TestProcess_RepeatedCallsEqual(t *testing.T) {
	rows := engineFixture()
	spec := SortSpec{Key: "editor_name", Direction: SortDesc}

	first := Process(rows, "", nil, spec)
	second := Process(rows, "", nil, spec)

	if !reflect.DeepEqual(first, second) {
		t.Error("identical calls should return structurally equal results")
	}
}

func TestFieldString_UnknownKeyEmpty(t *testing.T) {
	row := engineFixture()[0]
	if got := FieldString(&row, "no_such_column"); got != "" {
		t.Errorf("unknown key should stringify to empty, got %q", got)
	}
}

func TestFieldString_Booleans(t *testing.T) {
	row := FlatRow{MistakesRepeated: true, Delays: false}
	if got := FieldString(&row, "mistakes_repeated"); got != "Yes" {
		t.Errorf("mistakes_repeated = %q, expected Yes", got)
	}
	if got := FieldString(&row, "delays"); got != "No" {
		t.Errorf("delays = %q, expected No", got)
	}
}
