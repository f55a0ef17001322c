package services

import (
	"sync"
	"time"

	"github.com/yaas-media/reportdesk/internal/models"
	"github.com/yaas-media/reportdesk/internal/reporting"
	"github.com/yaas-media/reportdesk/pkg/logger"
	"gorm.io/gorm"
)

// TrackerService produces the "who has/hasn't submitted this week" view. It
// keeps a per-week snapshot of the joined roster so concurrent refreshes for
// the same week cannot publish out of order: each refresh takes a generation
// number up front, and a completed refresh is discarded when a newer
// generation has already published. This closes the last-response-wins race
// where a slow stale fetch could overwrite fresher data.
type TrackerService struct {
	db *gorm.DB

	mu        sync.Mutex
	nextGen   uint64
	snapshots map[string]*trackerSnapshot
}

type trackerSnapshot struct {
	generation uint64
	statuses   []reporting.EditorStatus
	fetchedAt  time.Time
}

func NewTrackerService(db *gorm.DB) *TrackerService {
	return &TrackerService{
		db:        db,
		snapshots: make(map[string]*trackerSnapshot),
	}
}

type TrackerRequest struct {
	Week   string `form:"week"`   // ISO date inside the wanted week
	Query  string `form:"q"`      // name / YAAS id substring
	Status string `form:"status"` // submitted, missing
}

type TrackerResponse struct {
	WeekLabel string                   `json:"week_label"`
	FetchedAt time.Time                `json:"fetched_at"`
	Total     int                      `json:"total"`
	Submitted int                      `json:"submitted"`
	Editors   []reporting.EditorStatus `json:"editors"`
}

// Tracker refreshes and returns the submission tracker for the week
// containing the given date (today when empty). Filters are applied on the
// way out, after the join, so the cached snapshot stays complete.
func (s *TrackerService) Tracker(req *TrackerRequest) *TrackerResponse {
	date := req.Week
	if date == "" {
		date = time.Now().Format(reporting.DateLayout)
	}
	labels := reporting.LabelFor(date)

	gen := s.beginRefresh()
	statuses := s.fetchStatuses(labels.WeekLabel)
	s.publish(labels.WeekLabel, gen, statuses)

	snap := s.snapshot(labels.WeekLabel)
	resp := &TrackerResponse{WeekLabel: labels.WeekLabel}
	if snap == nil {
		resp.Editors = []reporting.EditorStatus{}
		return resp
	}

	resp.FetchedAt = snap.fetchedAt
	resp.Total = len(snap.statuses)
	for _, st := range snap.statuses {
		if st.HasSubmitted {
			resp.Submitted++
		}
	}
	resp.Editors = reporting.FilterStatuses(snap.statuses, req.Query, req.Status)
	return resp
}

// fetchStatuses joins the active roster against the week's reports. Either
// read failing degrades to an empty set (fail-soft; logged inside the loads).
func (s *TrackerService) fetchStatuses(weekLabel string) []reporting.EditorStatus {
	var roster []models.EditorRegistry
	if err := s.db.Where("is_active = ?", true).Order("name").Find(&roster).Error; err != nil {
		logger.Error().Err(err).Msg("failed to load editor roster")
		roster = nil
	}

	var reports []models.Report
	if err := s.db.Where("week_label = ?", weekLabel).Order("id").Find(&reports).Error; err != nil {
		logger.Error().Err(err).Str("week", weekLabel).Msg("failed to load reports for tracker")
		reports = nil
	}

	return reporting.Join(roster, reports)
}

// beginRefresh hands out the next fetch generation.
func (s *TrackerService) beginRefresh() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextGen++
	return s.nextGen
}

// publish stores a refreshed snapshot unless a newer generation already
// published for the week. Reports whether the snapshot was accepted.
func (s *TrackerService) publish(weekLabel string, generation uint64, statuses []reporting.EditorStatus) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cur, ok := s.snapshots[weekLabel]; ok && cur.generation > generation {
		// Stale response: a faster, newer refresh already landed.
		return false
	}
	s.snapshots[weekLabel] = &trackerSnapshot{
		generation: generation,
		statuses:   statuses,
		fetchedAt:  time.Now(),
	}
	return true
}

func (s *TrackerService) snapshot(weekLabel string) *trackerSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshots[weekLabel]
}
