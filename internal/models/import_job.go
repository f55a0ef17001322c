package models

import "time"

// Import job states.
const (
	ImportStatusPending  = "pending"
	ImportStatusRunning  = "running"
	ImportStatusFinished = "finished"
	ImportStatusFailed   = "failed"
)

// ImportJob tracks one bulk historical import. The import is best-effort:
// per-record failures are tallied, not fatal, so a finished job can carry both
// imported and failed counts.
type ImportJob struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"` // UUID
	Status    string    `gorm:"size:20;default:pending" json:"status"`
	TotalRows int       `json:"total_rows"`
	Imported  int       `json:"imported"`
	Failed    int       `json:"failed"`
	Log       string    `gorm:"type:text" json:"log"`
	CreatedBy uint      `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ImportJob) TableName() string { return "import_jobs" }
