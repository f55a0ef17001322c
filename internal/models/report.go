package models

import "time"

// ProjectEntry holds the per-IP metrics of one weekly report. Entries have no
// identity of their own; they live inside their parent report's JSON column.
//
// Numeric metrics are pointers so that an absent value can be told apart from
// an explicit zero, which is what the legacy fallback rules key on.
type ProjectEntry struct {
	IPName         string `json:"ip_name"`
	LeadEditor     string `json:"lead_editor"`
	ChannelManager string `json:"channel_manager"`

	SFDaily      *float64 `json:"sf_daily,omitempty"`
	SFNote       string   `json:"sf_note,omitempty"`
	LFDaily      *float64 `json:"lf_daily,omitempty"`
	LFNote       string   `json:"lf_note,omitempty"`
	TotalMinutes *float64 `json:"total_minutes,omitempty"`
	MinutesNote  string   `json:"minutes_note,omitempty"`
	Approved     *float64 `json:"approved,omitempty"`

	CreativeInputs  string `json:"creative_inputs"`
	HasBlockers     string `json:"has_blockers"` // Yes, No
	BlockerDetails  string `json:"blocker_details"`
	HasQCRepeat     string `json:"has_qc_repeat"` // Yes, No
	QCDetails       string `json:"qc_details"`
	Improvements    string `json:"improvements"`
	DriveLinks      string `json:"drive_links"`
	ManagerComments string `json:"manager_comments"`

	// Legacy reel counters from records imported before the named daily
	// metrics existed. Readers fall back to these when the new field is nil.
	ReelsDelivered *float64 `json:"reels_delivered,omitempty"`
	ApprovedReels  *float64 `json:"approved_reels,omitempty"`
}

// EffectiveSF resolves the short-form daily metric, falling back to the legacy
// delivered count. legacy reports whether the fallback path was taken.
func (e *ProjectEntry) EffectiveSF() (value float64, legacy bool) {
	if e.SFDaily != nil {
		return *e.SFDaily, false
	}
	if e.ReelsDelivered != nil {
		return *e.ReelsDelivered, true
	}
	return 0, false
}

// EffectiveLF resolves the long-form daily metric, defaulting to zero.
func (e *ProjectEntry) EffectiveLF() float64 {
	if e.LFDaily != nil {
		return *e.LFDaily
	}
	return 0
}

// EffectiveApproved resolves the approved count, falling back to the legacy
// approved-reels field.
func (e *ProjectEntry) EffectiveApproved() float64 {
	if e.Approved != nil {
		return *e.Approved
	}
	if e.ApprovedReels != nil {
		return *e.ApprovedReels
	}
	return 0
}

// EffectiveMinutes resolves the total-minutes metric, defaulting to zero.
func (e *ProjectEntry) EffectiveMinutes() float64 {
	if e.TotalMinutes != nil {
		return *e.TotalMinutes
	}
	return 0
}

// Report is one editor's weekly submission. Editor identity is denormalized
// onto the row so admin views never need a join against users, and the entries
// list is owned exclusively by the report.
//
// Reports are insert-only: a resubmission for the same week creates a new row,
// and week-scoped lookups treat the first match as authoritative.
type Report struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"index" json:"user_id"`

	EditorName  string `gorm:"size:200" json:"editor_name"`
	EditorEmail string `gorm:"size:255;index" json:"editor_email"`
	YaasID      string `gorm:"size:50;index" json:"yaas_id"`

	SubmissionDate string `gorm:"size:20;index" json:"submission_date"` // YYYY-MM-DD
	WeekLabel      string `gorm:"size:100;index" json:"week_label"`
	MonthLabel     string `gorm:"size:50" json:"month_label"`

	HygieneScore        float64 `json:"hygiene_score"`
	MistakesRepeated    bool    `json:"mistakes_repeated"`
	MistakeDetails      string  `gorm:"type:text" json:"mistake_details"`
	Delays              bool    `json:"delays"`
	DelayReasons        string  `gorm:"type:text" json:"delay_reasons"`
	GeneralImprovements string  `gorm:"type:text" json:"general_improvements"`
	NextWeekCommitment  float64 `json:"next_week_commitment"`
	AreasImprovement    string  `gorm:"type:text" json:"areas_improvement"`
	OverallFeedback     string  `gorm:"type:text" json:"overall_feedback"`

	Entries []ProjectEntry `gorm:"serializer:json;type:text" json:"entries"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (Report) TableName() string { return "reports" }
