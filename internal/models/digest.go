package models

import "time"

// WeeklyDigest is a generated admin summary of one reporting week: aggregate
// totals, submission coverage against the roster, and an optional AI-written
// narrative. One digest per week label; regeneration overwrites it.
type WeeklyDigest struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	WeekLabel string `gorm:"uniqueIndex;size:100;not null" json:"week_label"`

	TotalReports  int     `json:"total_reports"`
	MissingCount  int     `json:"missing_count"`
	AvgHygiene    string  `gorm:"size:20" json:"avg_hygiene"`
	TotalSF       float64 `json:"total_sf"`
	TotalLF       float64 `json:"total_lf"`
	TotalApproved float64 `json:"total_approved"`
	TotalMinutes  float64 `json:"total_minutes"`

	TopEditors string `gorm:"type:text" json:"top_editors"` // JSON list of name/score pairs

	AISummary   string `gorm:"type:text" json:"ai_summary"`
	AIModelUsed string `gorm:"size:100" json:"ai_model_used"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (WeeklyDigest) TableName() string { return "weekly_digests" }
