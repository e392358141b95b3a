package discordipc

import (
	"context"
	"encoding/json"
	"sync"
)

// RelationshipState is an in-memory reducer over the relationships spoke,
// keeping a deduplicated-by-user-id view of the caller's relationship list
// (§4.9).
type RelationshipState struct {
	mu    sync.RWMutex
	byID  map[string]Relationship
	order []string
}

// NewRelationshipState creates an empty projection and starts consuming w's
// relationships spoke until ctx is cancelled. It does not fetch
// GET_RELATIONSHIPS itself; an initial list is loaded through Seed.
func NewRelationshipState(ctx context.Context, w *Wheel) *RelationshipState {
	s := &RelationshipState{byID: make(map[string]Relationship)}
	events, unsub := w.Relationships()
	go func() {
		defer unsub()
		for {
			select {
			case <-ctx.Done():
				return
			case e, ok := <-events:
				if !ok {
					return
				}
				s.reduce(e)
			}
		}
	}()
	return s
}

// Seed replaces the tracked set with the result of a GET_RELATIONSHIPS call,
// preserving insertion order.
func (s *RelationshipState) Seed(relationships []Relationship) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID = make(map[string]Relationship, len(relationships))
	s.order = s.order[:0]
	for _, r := range relationships {
		s.upsertLocked(r)
	}
}

// All returns a snapshot of every tracked relationship in insertion order.
func (s *RelationshipState) All() []Relationship {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Relationship, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

func (s *RelationshipState) reduce(e Event) {
	if e.Kind != EvtRelationshipUpdate {
		return
	}
	var body RelationshipUpdatePayload
	if err := json.Unmarshal(e.Data, &body); err != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upsertLocked(body.Relationship)
}

func (s *RelationshipState) upsertLocked(r Relationship) {
	if _, exists := s.byID[r.User.ID]; !exists {
		s.order = append(s.order, r.User.ID)
	}
	s.byID[r.User.ID] = r
}
