package scheduler

import (
	"testing"
	"time"
)

func TestEngineEmitsInDueOrder(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now()
	if err := engine.Schedule(DueEvent{ReminderID: 2, Text: "later", DueAt: now.Add(80 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule later: %v", err)
	}
	if err := engine.Schedule(DueEvent{ReminderID: 1, Text: "sooner", DueAt: now.Add(20 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule sooner: %v", err)
	}

	first := waitEvent(t, engine.C(), time.Second)
	second := waitEvent(t, engine.C(), time.Second)
	if first.ReminderID != 1 || second.ReminderID != 2 {
		t.Fatalf("unexpected order: first=%d second=%d", first.ReminderID, second.ReminderID)
	}
	if engine.Pending() != 0 {
		t.Fatalf("expected nothing pending, got %d", engine.Pending())
	}
}

func TestEngineCancelRemovesPendingEvent(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now()
	_ = engine.Schedule(DueEvent{ReminderID: 1, DueAt: now.Add(30 * time.Millisecond)})
	_ = engine.Schedule(DueEvent{ReminderID: 2, DueAt: now.Add(60 * time.Millisecond)})
	if !engine.Cancel(1) {
		t.Fatal("expected cancel to find reminder 1")
	}
	if engine.Cancel(1) {
		t.Fatal("second cancel must report false")
	}

	ev := waitEvent(t, engine.C(), time.Second)
	if ev.ReminderID != 2 {
		t.Fatalf("cancelled reminder fired: %+v", ev)
	}
}

func TestEngineRescheduleReplacesEvent(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now()
	_ = engine.Schedule(DueEvent{ReminderID: 1, Text: "old", DueAt: now.Add(20 * time.Millisecond)})
	_ = engine.Schedule(DueEvent{ReminderID: 1, Text: "new", DueAt: now.Add(50 * time.Millisecond)})
	if engine.Pending() != 1 {
		t.Fatalf("expected one pending event, got %d", engine.Pending())
	}

	ev := waitEvent(t, engine.C(), time.Second)
	if ev.Text != "new" {
		t.Fatalf("expected rescheduled event, got %+v", ev)
	}
	select {
	case extra := <-engine.C():
		t.Fatalf("unexpected extra event: %+v", extra)
	case <-time.After(80 * time.Millisecond):
	}
}

func TestEngineNonBlockingDropsWhenConsumerIsSlow(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	due := time.Now().Add(20 * time.Millisecond)
	for i := 0; i < 25; i++ {
		if err := engine.Schedule(DueEvent{ReminderID: int64(i + 1), DueAt: due}); err != nil {
			t.Fatalf("schedule event: %v", err)
		}
	}

	time.Sleep(120 * time.Millisecond)
	if engine.Dropped() == 0 {
		t.Fatalf("expected dropped events > 0, got %d", engine.Dropped())
	}
}

func TestScheduleValidatesTriggerTime(t *testing.T) {
	engine := NewEngine(1)
	if err := engine.Schedule(DueEvent{ReminderID: 1}); err != ErrInvalidTriggerTime {
		t.Fatalf("expected ErrInvalidTriggerTime, got %v", err)
	}
}

func TestScheduleAfterStop(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	engine.Stop()
	if err := engine.Schedule(DueEvent{ReminderID: 1, DueAt: time.Now()}); err != ErrStopped {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
}

func TestTriggerTime(t *testing.T) {
	day := time.Date(2026, time.May, 4, 0, 0, 0, 0, time.UTC)
	got := TriggerTime(day, 9, time.UTC)
	want := time.Date(2026, time.May, 4, 9, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %s want %s", got, want)
	}
}

func waitEvent(t *testing.T, ch <-chan DueEvent, timeout time.Duration) DueEvent {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for event")
		return DueEvent{}
	}
}
