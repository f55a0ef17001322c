package reporting

import (
	"fmt"
	"math"
	"strings"

	"github.com/yaas-media/reportdesk/internal/models"
)

// GeneralAnswers are the week-level questions of the submission form. Flags
// arrive as the form's Yes/No strings and are stored as booleans.
type GeneralAnswers struct {
	HygieneScore        float64 `json:"hygiene_score"`
	MistakesRepeated    string  `json:"mistakes_repeated"`
	MistakeDetails      string  `json:"mistake_details"`
	Delays              string  `json:"delays"`
	DelayReasons        string  `json:"delay_reasons"`
	GeneralImprovements string  `json:"general_improvements"`
	NextWeekCommitment  float64 `json:"next_week_commitment"`
	AreasImprovement    string  `json:"areas_improvement"`
	OverallFeedback     string  `json:"overall_feedback"`
}

// ValidationError is a user-correctable submission problem. It blocks the
// submission and is surfaced verbatim; nothing is silently defaulted.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func isYes(v string) bool {
	return strings.EqualFold(strings.TrimSpace(v), "yes")
}

// BuildReport assembles one persistable report from form state. Week and
// month labels are computed here, at submission time, and never recomputed
// later. Validation precedes any persistence attempt:
//
//   - the editor must have an assigned YAAS id
//   - at least one project entry
//   - each entry needs an IP name and at least one populated link
//   - a Yes answer on any flag requires its paired detail text
//   - hygiene score must be 0-10 in half-point steps
func BuildReport(user *models.User, date string, general GeneralAnswers, entries []models.ProjectEntry) (*models.Report, error) {
	if strings.TrimSpace(user.YaasID) == "" {
		return nil, &ValidationError{Field: "yaas_id", Message: "YAAS ID is missing, contact an administrator"}
	}

	labels := LabelFor(date)
	if labels.WeekLabel == "" {
		return nil, &ValidationError{Field: "submission_date", Message: "a valid submission date is required"}
	}

	if general.HygieneScore < 0 || general.HygieneScore > 10 ||
		math.Mod(general.HygieneScore*2, 1) != 0 {
		return nil, &ValidationError{Field: "hygiene_score", Message: "hygiene score must be between 0 and 10 in half-point steps"}
	}
	if isYes(general.MistakesRepeated) && strings.TrimSpace(general.MistakeDetails) == "" {
		return nil, &ValidationError{Field: "mistake_details", Message: "details are required when mistakes were repeated"}
	}
	if isYes(general.Delays) && strings.TrimSpace(general.DelayReasons) == "" {
		return nil, &ValidationError{Field: "delay_reasons", Message: "a reason is required when delays occurred"}
	}

	if len(entries) == 0 {
		return nil, &ValidationError{Field: "entries", Message: "at least one IP entry is required"}
	}
	for i := range entries {
		e := &entries[i]
		n := i + 1
		if strings.TrimSpace(e.IPName) == "" {
			return nil, &ValidationError{Field: "ip_name", Message: fmt.Sprintf("IP %d: name is required", n)}
		}
		if strings.TrimSpace(e.DriveLinks) == "" {
			return nil, &ValidationError{Field: "drive_links", Message: fmt.Sprintf("IP %d: at least one work link is required", n)}
		}
		if isYes(e.HasBlockers) && strings.TrimSpace(e.BlockerDetails) == "" {
			return nil, &ValidationError{Field: "blocker_details", Message: fmt.Sprintf("IP %d: blocker details are required", n)}
		}
		if isYes(e.HasQCRepeat) && strings.TrimSpace(e.QCDetails) == "" {
			return nil, &ValidationError{Field: "qc_details", Message: fmt.Sprintf("IP %d: QC details are required", n)}
		}
	}

	return &models.Report{
		UserID:      user.ID,
		EditorName:  user.FullName,
		EditorEmail: user.Email,
		YaasID:      user.YaasID,

		SubmissionDate: date,
		WeekLabel:      labels.WeekLabel,
		MonthLabel:     labels.MonthLabel,

		HygieneScore:        general.HygieneScore,
		MistakesRepeated:    isYes(general.MistakesRepeated),
		MistakeDetails:      general.MistakeDetails,
		Delays:              isYes(general.Delays),
		DelayReasons:        general.DelayReasons,
		GeneralImprovements: general.GeneralImprovements,
		NextWeekCommitment:  general.NextWeekCommitment,
		AreasImprovement:    general.AreasImprovement,
		OverallFeedback:     general.OverallFeedback,

		Entries: entries,
	}, nil
}
