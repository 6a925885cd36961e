package store

import (
	"github.com/google/uuid"

	"chosenoffset.com/dutyfree/internal/catalog"
)

// Entry is one row of the item listing
type Entry struct {
	Item catalog.Item
	Exit bool // The synthetic trailing row that closes the listing
}

// Session is the state of one store visit. Wallet and basket are not part of
// it; they live on the bus and survive the visit.
type Session struct {
	ID      uuid.UUID
	StoreID string
	Speaker string

	phase    Phase
	script   []string
	line     int
	entries  []Entry
	selected int
}

func newSession(storeID string, script []string) *Session {
	s := &Session{
		ID:      uuid.New(),
		StoreID: storeID,
		script:  append([]string(nil), script...),
	}
	s.reset()
	return s
}

func (s *Session) reset() {
	s.phase = Browse
	s.line = 0
	s.entries = nil
	s.selected = 0
}

// Phase returns the current phase
func (s *Session) Phase() Phase { return s.phase }

// Line returns the dialogue line index
func (s *Session) Line() int { return s.line }

// Script returns the dialogue lines
func (s *Session) Script() []string { return s.script }

// Selected returns the listing selection index
func (s *Session) Selected() int { return s.selected }

// Entries returns the listing rows, exit row included
func (s *Session) Entries() []Entry { return s.entries }

func (s *Session) guards(near Proximity) Guards {
	g := Guards{
		NearClerk: near.Clerk,
		NearExit:  near.Exit,
	}
	if s.phase == Dialogue {
		g.HasNextLine = s.line+1 < len(s.script)
	}
	if s.phase == Listing && s.selected < len(s.entries) {
		g.ExitSelected = s.entries[s.selected].Exit
	}
	return g
}

func (s *Session) openListing(items []catalog.Item) {
	s.entries = make([]Entry, 0, len(items)+1)
	for _, it := range items {
		s.entries = append(s.entries, Entry{Item: it})
	}
	s.entries = append(s.entries, Entry{Exit: true})
	s.selected = 0
}

func (s *Session) move(delta int) {
	n := len(s.entries)
	if n == 0 {
		return
	}
	s.selected = ((s.selected+delta)%n + n) % n
}
