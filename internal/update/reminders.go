package update

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/lembrete/internal/model"
	"github.com/sandeepkv93/lembrete/internal/scheduler"
)

const (
	dueLogLimit       = 20
	notificationLimit = 40
)

func waitForDueCmd(ch <-chan scheduler.DueEvent) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return ReminderDueMsg{Event: ev}
	}
}

// scheduleAll queues every pending reminder due today or later.
func (m *Model) scheduleAll() {
	if m.scheduler == nil {
		return
	}
	for _, rem := range m.Reminders {
		m.syncSchedule(rem)
	}
}

// syncSchedule makes the scheduler agree with rem's current state.
func (m *Model) syncSchedule(rem model.Reminder) {
	if m.scheduler == nil {
		return
	}
	now := m.now()
	y, mo, d := now.Date()
	today := time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
	if rem.Completed || rem.DueDate.Before(today) {
		m.scheduler.Cancel(rem.ID)
		return
	}
	ev := scheduler.DueEvent{
		ReminderID: rem.ID,
		Text:       rem.Text,
		DueAt:      scheduler.TriggerTime(rem.DueDate, m.triggerHour, now.Location()),
	}
	if err := m.scheduler.Schedule(ev); err != nil {
		m.logger.Warn("schedule reminder", "id", rem.ID, "err", err)
	}
}

func (m *Model) unschedule(id int64) {
	if m.scheduler != nil {
		m.scheduler.Cancel(id)
	}
}

func (m *Model) onReminderDue(ev scheduler.DueEvent) {
	m.DueLog = append(m.DueLog, ev)
	if len(m.DueLog) > dueLogLimit {
		m.DueLog = m.DueLog[len(m.DueLog)-dueLogLimit:]
	}
	m.Status = StatusBar{Text: fmt.Sprintf("due today: #%d %s", ev.ReminderID, ev.Text)}
	m.notify("Lembrete", ev.Text, "info")
}

func (m *Model) notify(title, body, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	n := Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    m.now(),
	}
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > notificationLimit {
		m.Notifications = m.Notifications[len(m.Notifications)-notificationLimit:]
	}
	if m.desktop && m.notifier != nil {
		if err := m.notifier.Send(n); err != nil {
			m.logger.Warn("desktop notification", "err", err)
		}
	}
}
