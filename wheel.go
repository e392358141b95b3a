package discordipc

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// ///////////////////////////////////////////////
// Generic spokes
// ///////////////////////////////////////////////

// broadcastSpoke is a multi-consumer channel with a bounded per-subscriber
// ring that drops the oldest unread value when a subscriber falls behind,
// rather than blocking the publisher or delivering stale ordering (§4.6,
// property S10).
type broadcastSpoke[T any] struct {
	mu     sync.Mutex
	subs   map[int]chan T
	nextID int
	bound  int
	logger *slog.Logger
	name   string
}

func newBroadcastSpoke[T any](bound int, logger *slog.Logger, name string) *broadcastSpoke[T] {
	return &broadcastSpoke[T]{subs: make(map[int]chan T), bound: bound, logger: logger, name: name}
}

// subscribe returns a receive channel and an unsubscribe function.
func (s *broadcastSpoke[T]) subscribe() (<-chan T, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	ch := make(chan T, s.bound)
	s.subs[id] = ch
	return ch, func() { s.unsubscribe(id) }
}

func (s *broadcastSpoke[T]) unsubscribe(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ch, ok := s.subs[id]; ok {
		delete(s.subs, id)
		close(ch)
	}
}

// publish broadcasts v to every subscriber, dropping the oldest queued
// value for any subscriber whose ring is full.
func (s *broadcastSpoke[T]) publish(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.subs) == 0 {
		s.logger.Warn("wheel: broadcast with no subscribers", "spoke", s.name)
		return
	}
	for _, ch := range s.subs {
		select {
		case ch <- v:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- v:
			default:
			}
		}
	}
}

// latestValueSpoke is a single-slot channel retaining the most recently
// published value; a subscriber attaching after a publish immediately
// observes it without ever seeing an older value (§4.6, property S9).
type latestValueSpoke[T any] struct {
	mu     sync.Mutex
	value  T
	subs   map[int]chan T
	nextID int
}

func newLatestValueSpoke[T any](initial T) *latestValueSpoke[T] {
	return &latestValueSpoke[T]{value: initial, subs: make(map[int]chan T)}
}

func (s *latestValueSpoke[T]) subscribe() (<-chan T, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	ch := make(chan T, 1)
	ch <- s.value
	s.subs[id] = ch
	return ch, func() { s.unsubscribe(id) }
}

func (s *latestValueSpoke[T]) unsubscribe(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ch, ok := s.subs[id]; ok {
		delete(s.subs, id)
		close(ch)
	}
}

func (s *latestValueSpoke[T]) publish(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = v
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- v
	}
}

// ///////////////////////////////////////////////
// Wheel
// ///////////////////////////////////////////////

// UserState is the latest-value payload of the User spoke: either a
// connected user, or the reason the client is disconnected.
type UserState struct {
	Connected bool
	User      *User
	Err       error
}

// Wheel routes classified inbound events to their per-class spoke (C6).
// Error frames are pre-intercepted by the correlator and never reach
// classification here.
type Wheel struct {
	activity      *broadcastSpoke[Event]
	lobby         *broadcastSpoke[Event]
	relationships *broadcastSpoke[Event]
	user          *latestValueSpoke[UserState]
	overlay       *latestValueSpoke[OverlayState]
	logger        *slog.Logger
}

func newWheel(logger *slog.Logger) *Wheel {
	return &Wheel{
		activity:      newBroadcastSpoke[Event](10, logger, "activity"),
		lobby:         newBroadcastSpoke[Event](10, logger, "lobby"),
		relationships: newBroadcastSpoke[Event](10, logger, "relationships"),
		user:          newLatestValueSpoke(UserState{Err: ErrNoConnection}),
		overlay:       newLatestValueSpoke(OverlayState{Visible: VisibilityHidden}),
		logger:        logger,
	}
}

// dispatch classifies a parsed dispatch event and routes it to its spoke,
// following the ClassifiedEvent table in §4.6.
func (w *Wheel) dispatch(evt EventKind, data json.RawMessage) {
	switch evt {
	case EvtReady, EvtCurrentUserUpdate:
		var body struct {
			User User `json:"user"`
		}
		if err := json.Unmarshal(data, &body); err != nil {
			w.logger.Warn("wheel: malformed user payload", "evt", evt, "error", err)
			return
		}
		w.user.publish(UserState{Connected: true, User: &body.User})
	case EvtOverlayUpdate:
		var state OverlayState
		if err := json.Unmarshal(data, &state); err != nil {
			w.logger.Warn("wheel: malformed overlay payload", "error", err)
			return
		}
		w.overlay.publish(state)
	case EvtRelationshipUpdate:
		w.relationships.publish(Event{Kind: evt, Data: data})
	case EvtLobbyUpdate, EvtLobbyDelete, EvtLobbyMemberConnect, EvtLobbyMemberUpdate,
		EvtLobbyMemberDisconnect, EvtLobbyMessage, EvtSpeakingStart, EvtSpeakingStop:
		w.lobby.publish(Event{Kind: evt, Data: data})
	case EvtActivityJoinRequest, EvtActivityJoin, EvtActivitySpectate, EvtActivityInvite:
		w.activity.publish(Event{Kind: evt, Data: data})
	default:
		w.logger.Warn("wheel: unclassified event kind", "evt", evt)
	}
}

// disconnected synthesizes the user-visible Disconnected notification.
func (w *Wheel) disconnected(err error) {
	w.user.publish(UserState{Connected: false, Err: err})
}

// Activity subscribes to the activity spoke (join/spectate/invite events).
func (w *Wheel) Activity() (<-chan Event, func()) { return w.activity.subscribe() }

// Lobby subscribes to the lobby spoke (update/delete, member, message and
// speaking events).
func (w *Wheel) Lobby() (<-chan Event, func()) { return w.lobby.subscribe() }

// Relationships subscribes to the relationships spoke.
func (w *Wheel) Relationships() (<-chan Event, func()) { return w.relationships.subscribe() }

// User subscribes to the latest-value user-connection spoke.
func (w *Wheel) User() (<-chan UserState, func()) { return w.user.subscribe() }

// Overlay subscribes to the latest-value overlay-state spoke.
func (w *Wheel) Overlay() (<-chan OverlayState, func()) { return w.overlay.subscribe() }
