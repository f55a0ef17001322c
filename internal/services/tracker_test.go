package services

import (
	"sync"
	"testing"

	"github.com/yaas-media/reportdesk/internal/reporting"
)

func statusesNamed(names ...string) []reporting.EditorStatus {
	out := make([]reporting.EditorStatus, 0, len(names))
	for _, n := range names {
		out = append(out, reporting.EditorStatus{Name: n})
	}
	return out
}

func TestTracker_StaleGenerationDiscarded(t *testing.T) {
	s := NewTrackerService(nil)
	week := "Week 24 - June 2024"

	// Two refreshes start; the newer one finishes first.
	genOld := s.beginRefresh()
	genNew := s.beginRefresh()

	if !s.publish(week, genNew, statusesNamed("fresh")) {
		t.Fatal("newest refresh must publish")
	}
	if s.publish(week, genOld, statusesNamed("stale")) {
		t.Error("stale refresh must be discarded once a newer one has published")
	}

	snap := s.snapshot(week)
	if snap == nil {
		t.Fatal("expected a snapshot")
	}
	if snap.statuses[0].Name != "fresh" {
		t.Errorf("snapshot holds %q, the stale response overwrote fresher data", snap.statuses[0].Name)
	}
	if snap.generation != genNew {
		t.Errorf("snapshot generation = %d, expected %d", snap.generation, genNew)
	}
}

func TestTracker_InOrderPublishesReplace(t *testing.T) {
	s := NewTrackerService(nil)
	week := "Week 25 - June 2024"

	gen1 := s.beginRefresh()
	if !s.publish(week, gen1, statusesNamed("first")) {
		t.Fatal("first publish must land")
	}

	gen2 := s.beginRefresh()
	if !s.publish(week, gen2, statusesNamed("second")) {
		t.Fatal("newer publish must replace the old snapshot")
	}

	if got := s.snapshot(week).statuses[0].Name; got != "second" {
		t.Errorf("snapshot holds %q, expected the newer refresh", got)
	}
}

func TestTracker_WeeksAreIndependent(t *testing.T) {
	s := NewTrackerService(nil)

	genA := s.beginRefresh()
	genB := s.beginRefresh()

	// The newer generation belongs to another week; it must not block week A.
	if !s.publish("Week 1 - January 2024", genB, statusesNamed("b")) {
		t.Fatal("publish for week B failed")
	}
	if !s.publish("Week 2 - January 2024", genA, statusesNamed("a")) {
		t.Error("weeks keep separate snapshots; an older generation for a different week must publish")
	}
}

func TestTracker_ConcurrentRefreshesConverge(t *testing.T) {
	s := NewTrackerService(nil)
	week := "Week 30 - July 2024"

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			gen := s.beginRefresh()
			s.publish(week, gen, statusesNamed("editor"))
		}()
	}
	wg.Wait()

	snap := s.snapshot(week)
	if snap == nil {
		t.Fatal("expected a snapshot after concurrent refreshes")
	}
	// Whatever interleaving happened, the surviving snapshot is never older
	// than any accepted one.
	if snap.generation == 0 {
		t.Error("snapshot generation should be set")
	}
}
