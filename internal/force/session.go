// Package force scores every unit of a game session. Force bonuses (TAG
// and C3) depend on the other units present, so each unit is scored
// against a snapshot of the whole session.
package force

import (
	"sync"

	"github.com/google/uuid"

	"github.com/JustinWhittecar/bvengine/internal/bvcalc"
)

// Session is the set of units in one game. It is safe for concurrent use
// and implements bvcalc.Game.
type Session struct {
	mu    sync.RWMutex
	units []*bvcalc.Unit
}

var _ bvcalc.Game = (*Session)(nil)

// NewSession returns a session holding units.
func NewSession(units ...*bvcalc.Unit) *Session {
	s := &Session{}
	for _, u := range units {
		s.Add(u)
	}
	return s
}

// Add puts u in the session and returns its ID. Units without an ID get a
// random one.
func (s *Session) Add(u *bvcalc.Unit) string {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	s.mu.Lock()
	s.units = append(s.units, u)
	s.mu.Unlock()
	return u.ID
}

// Remove drops the unit with id and reports whether it was present.
func (s *Session) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, u := range s.units {
		if u.ID == id {
			s.units = append(s.units[:i], s.units[i+1:]...)
			return true
		}
	}
	return false
}

// Unit returns the unit with id, or nil.
func (s *Session) Unit(id string) *bvcalc.Unit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.units {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// Units returns a snapshot of the session in insertion order.
func (s *Session) Units() []*bvcalc.Unit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*bvcalc.Unit, len(s.units))
	copy(out, s.units)
	return out
}

// Len returns the number of units.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.units)
}
