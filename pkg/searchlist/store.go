// Package searchlist keeps per-session lists of saved comics. Lists are
// deliberately process-local: they live for the lifetime of the server and
// are never written to the database.
package searchlist

import "sync"

// Store maps session ids to ordered lists of comic record ids. All methods
// are safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	sessions map[string][]string
}

func NewStore() *Store {
	return &Store{
		sessions: map[string][]string{},
	}
}

// Add appends the comic id to the session's list. Adding an id already in
// the list is a no-op, keeping its original position.
func (s *Store) Add(sessionID, comicID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.sessions[sessionID] {
		if id == comicID {
			return
		}
	}
	s.sessions[sessionID] = append(s.sessions[sessionID], comicID)
}

// Remove deletes the comic id from the session's list. Removing an id not
// in the list is a no-op.
func (s *Store) Remove(sessionID, comicID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.sessions[sessionID]
	for i, id := range ids {
		if id == comicID {
			s.sessions[sessionID] = append(ids[:i], ids[i+1:]...)
			return
		}
	}
}

// Clear empties the session's list but keeps the session itself.
func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; ok {
		s.sessions[sessionID] = []string{}
	}
}

// List returns a copy of the session's list in insertion order.
func (s *Store) List(sessionID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.sessions[sessionID]
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

// DropSession forgets the session entirely.
func (s *Store) DropSession(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
}
