package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/yaas-media/reportdesk/internal/config"
	"github.com/yaas-media/reportdesk/internal/reporting"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Bulk-imported reports carry whatever week label the source spreadsheet had.
// This recomputes week and month labels from the submission date so imported
// history groups consistently with live submissions.

type Report struct {
	ID             uint   `gorm:"primaryKey"`
	SubmissionDate string `gorm:"size:20"`
	WeekLabel      string `gorm:"size:100"`
	MonthLabel     string `gorm:"size:50"`
}

func (Report) TableName() string {
	return "reports"
}

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case "mysql":
		dialector = mysql.Open(cfg.Database.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.Database.DSN)
	default:
		dialector = sqlite.Open(cfg.Database.DSN)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	var reports []Report
	if err := db.Order("id").Find(&reports).Error; err != nil {
		log.Fatalf("Failed to query reports: %v", err)
	}

	fmt.Printf("Found %d reports\n\n", len(reports))

	apply := len(os.Args) > 1 && os.Args[1] == "--apply"
	changed := 0

	for _, r := range reports {
		if _, err := time.Parse("2006-01-02", r.SubmissionDate); err != nil {
			fmt.Printf("skip #%d: bad submission date %q\n", r.ID, r.SubmissionDate)
			continue
		}

		labels := reporting.LabelFor(r.SubmissionDate)
		if labels.WeekLabel == r.WeekLabel && labels.MonthLabel == r.MonthLabel {
			continue
		}

		changed++
		fmt.Printf("#%-5d %s: %q -> %q\n", r.ID, r.SubmissionDate, r.WeekLabel, labels.WeekLabel)

		if apply {
			err := db.Model(&Report{}).Where("id = ?", r.ID).Updates(map[string]interface{}{
				"week_label":  labels.WeekLabel,
				"month_label": labels.MonthLabel,
			}).Error
			if err != nil {
				log.Fatalf("Failed to update report %d: %v", r.ID, err)
			}
		}
	}

	fmt.Println("")
	if apply {
		fmt.Printf("Updated %d reports\n", changed)
	} else {
		fmt.Printf("%d reports would change, re-run with --apply to write\n", changed)
	}
}
