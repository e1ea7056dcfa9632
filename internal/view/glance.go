// Package view holds per-session navigation state for front-ends that render
// the calendar glance.
package view

import (
	"sync"

	"github.com/mmynk/pocketbook/internal/models"
	"github.com/mmynk/pocketbook/internal/stats"
)

// Glance is the navigation state of the monthly calendar: the month shown and
// the expanded day, if any.
type Glance struct {
	Month    stats.Month
	Selected int
}

// NewGlance starts on the month containing today with nothing expanded.
func NewGlance(today models.Date) *Glance {
	return &Glance{Month: stats.MonthOf(today)}
}

// Next moves to the following month and collapses the selection.
func (g *Glance) Next() {
	g.Month = g.Month.Next()
	g.Selected = 0
}

// Prev moves to the preceding month and collapses the selection.
func (g *Glance) Prev() {
	g.Month = g.Month.Prev()
	g.Selected = 0
}

// Toggle expands day, or collapses it if it is already expanded. Days outside
// the month are ignored. It reports whether a day is now expanded.
func (g *Glance) Toggle(day int) bool {
	if day < 1 || day > g.Month.Days() {
		return g.Selected != 0
	}
	if g.Selected == day {
		g.Selected = 0
		return false
	}
	g.Selected = day
	return true
}

// Render derives the calendar for the current state. A selection on a day
// without entries renders collapsed.
func (g *Glance) Render(categories []models.Category, entries []models.Entry, today models.Date) stats.Calendar {
	return stats.BuildCalendar(categories, entries, g.Month.Year, g.Month.Month, g.Selected, today)
}

// Sessions keeps one Glance per session key.
type Sessions struct {
	mu       sync.Mutex
	glances  map[string]*Glance
	todayFun func() models.Date
}

// NewSessions creates an empty session table.
func NewSessions() *Sessions {
	return NewSessionsWithClock(models.Today)
}

// NewSessionsWithClock is NewSessions with a custom notion of today, used
// when a session starts.
func NewSessionsWithClock(today func() models.Date) *Sessions {
	return &Sessions{
		glances:  make(map[string]*Glance),
		todayFun: today,
	}
}

// Glance returns the state for key, creating it on first use. The returned
// value is shared; callers serialise access per key.
func (s *Sessions) Glance(key string) *Glance {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.glances[key]
	if !ok {
		g = NewGlance(s.todayFun())
		s.glances[key] = g
	}
	return g
}

// SignOut drops all cached state for key.
func (s *Sessions) SignOut(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.glances, key)
}

// Len returns the number of active sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.glances)
}
