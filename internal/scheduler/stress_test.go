package scheduler

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

// Every worker schedules the same reminder ids, so each id must fire once
// no matter how the replacements interleave.
func TestEngineStressRescheduleSameIDs(t *testing.T) {
	engine := NewEngine(2048)
	engine.Start()
	defer engine.Stop()

	const workers = 8
	const reminders = 300

	base := time.Now().Add(300 * time.Millisecond)
	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := int64(1); id <= reminders; id++ {
				ev := DueEvent{
					ReminderID: id,
					Text:       fmt.Sprintf("lembrete %d (worker %d)", id, w),
					DueAt:      base.Add(time.Duration(w*3+int(id%7)) * time.Millisecond),
				}
				if err := engine.Schedule(ev); err != nil {
					t.Errorf("schedule #%d: %v", id, err)
					return
				}
			}
		}()
	}
	wg.Wait()

	// Cancel every seventh id; the ones that already fired report false.
	cancelled := make(map[int64]bool)
	for id := int64(7); id <= reminders; id += 7 {
		if engine.Cancel(id) {
			cancelled[id] = true
		}
	}

	want := reminders - len(cancelled)
	seen := make(map[int64]int, want)
	deadline := time.After(5 * time.Second)
	for len(seen) < want {
		select {
		case <-deadline:
			t.Fatalf("timeout: got %d distinct ids, want %d (dropped=%d)", len(seen), want, engine.Dropped())
		case ev := <-engine.C():
			if cancelled[ev.ReminderID] {
				t.Fatalf("cancelled reminder #%d fired", ev.ReminderID)
			}
			seen[ev.ReminderID]++
		}
	}

	// Give stale heap entries a chance to surface if lazy deletion were broken.
	select {
	case ev := <-engine.C():
		t.Fatalf("unexpected extra event for #%d", ev.ReminderID)
	case <-time.After(100 * time.Millisecond):
	}

	for id, n := range seen {
		if n != 1 {
			t.Fatalf("reminder #%d fired %d times", id, n)
		}
	}
	if engine.Dropped() != 0 {
		t.Fatalf("expected zero drops with active consumer, got %d", engine.Dropped())
	}
	if engine.Pending() != 0 {
		t.Fatalf("expected empty schedule, got %d pending", engine.Pending())
	}
}
