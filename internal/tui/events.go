package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/agbru/moneymask/internal/field"
	"github.com/agbru/moneymask/internal/numfmt"
)

// DefaultEventLines is how many recent events the log keeps.
const DefaultEventLines = 8

type eventEntry struct {
	at    time.Time
	event field.Event
}

// EventLog records the binding's edit events for display. It is shared by
// pointer between copies of Model, since bubbletea passes models by value.
type EventLog struct {
	entries []eventEntry
	counts  map[numfmt.OutcomeKind]int
	max     int
	now     func() time.Time
}

// NewEventLog keeps the last lines events.
func NewEventLog(lines int) *EventLog {
	if lines < 1 {
		lines = DefaultEventLines
	}
	return &EventLog{counts: map[numfmt.OutcomeKind]int{}, max: lines, now: time.Now}
}

// ObserveEdit implements field.Observer.
func (l *EventLog) ObserveEdit(e field.Event) {
	l.counts[e.Outcome.Kind]++
	l.entries = append(l.entries, eventEntry{at: l.now(), event: e})
	if len(l.entries) > l.max {
		l.entries = l.entries[len(l.entries)-l.max:]
	}
}

// Count returns how many events of a kind were seen.
func (l *EventLog) Count(k numfmt.OutcomeKind) int { return l.counts[k] }

// Len returns the number of retained events.
func (l *EventLog) Len() int { return len(l.entries) }

// Last returns the most recent event.
func (l *EventLog) Last() (field.Event, bool) {
	if len(l.entries) == 0 {
		return field.Event{}, false
	}
	return l.entries[len(l.entries)-1].event, true
}

// Render draws the retained events, oldest first.
func (l *EventLog) Render(s Styles) string {
	if len(l.entries) == 0 {
		return s.Muted.Render("no edits yet")
	}
	lines := make([]string, 0, len(l.entries))
	for _, en := range l.entries {
		e := en.event
		style := s.Muted
		switch {
		case e.Outcome.Kind == numfmt.NoOpAnomaly:
			style = s.Error
		case e.Outcome.Changed():
			style = s.Changed
		}
		line := fmt.Sprintf("%-14s %q", e.Outcome.Kind, e.Text)
		if e.Outcome.Changed() {
			line += fmt.Sprintf(" -> %q", e.Outcome.Result.DisplayText)
		}
		lines = append(lines, s.Muted.Render(en.at.Format("15:04:05"))+" "+style.Render(line))
	}
	return strings.Join(lines, "\n")
}
