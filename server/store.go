// Package server hosts a reference reasoning service endpoint: an
// in-memory axiom store per knowledge base behind a websocket
// request/response loop speaking the reasoner wire protocol.
//
// The host stores axiom sets and reports digests — it performs no
// inference. It exists so the client has a real peer on the wire and so
// integration tests can exercise the full protocol path.
package server

import (
	"sync"

	"github.com/teranos/kbsync/kb"
)

// Store holds one axiom set per knowledge base. Operations are serialized
// under one lock, so concurrent sessions observe each knowledge base
// moving through a single history of digests.
type Store struct {
	mu  sync.Mutex
	kbs map[kb.ID]map[string]kb.Axiom // axiom key → axiom
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{kbs: make(map[kb.ID]map[string]kb.Axiom)}
}

// Digest returns the current digest of the knowledge base. An unknown
// knowledge base digests as the empty set.
func (s *Store) Digest(id kb.ID) kb.Digest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return kb.DigestOf(s.axiomsLocked(id))
}

// Apply applies the changes in list order and returns the resulting
// digest. Additions of present axioms and removals of absent ones are
// no-ops, matching set semantics.
func (s *Store) Apply(id kb.ID, changes []kb.Change) kb.Digest {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.kbs[id]
	if !ok {
		set = make(map[string]kb.Axiom)
		s.kbs[id] = set
	}

	for _, ch := range changes {
		key := ch.Axiom.Key()
		switch ch.Op {
		case kb.OpAdd:
			set[key] = ch.Axiom
		case kb.OpRemove:
			delete(set, key)
		}
	}

	return kb.DigestOf(s.axiomsLocked(id))
}

// Replace discards the knowledge base's axiom set, installs the given
// one, and returns the resulting digest.
func (s *Store) Replace(id kb.ID, axioms []kb.Axiom) kb.Digest {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := make(map[string]kb.Axiom, len(axioms))
	for _, ax := range axioms {
		set[ax.Key()] = ax
	}
	s.kbs[id] = set

	return kb.DigestOf(s.axiomsLocked(id))
}

// Axioms returns a copy of the knowledge base's current axiom set, in
// canonical order. For inspection and tests.
func (s *Store) Axioms(id kb.ID) []kb.Axiom {
	s.mu.Lock()
	defer s.mu.Unlock()
	axioms := s.axiomsLocked(id)
	kb.SortAxioms(axioms)
	return axioms
}

func (s *Store) axiomsLocked(id kb.ID) []kb.Axiom {
	set := s.kbs[id]
	axioms := make([]kb.Axiom, 0, len(set))
	for _, ax := range set {
		axioms = append(axioms, ax)
	}
	return axioms
}
