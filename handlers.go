package discordipc

import (
	"context"
	"log/slog"
)

// Handler receives every event and user-state change observed on a wheel.
// It is the callback-style alternative to subscribing to individual spokes
// directly (§9: "reserve the callback for a forwarder that re-emits into
// user-supplied channels").
type Handler interface {
	OnEvent(Event)
	OnUserState(UserState)
	OnOverlayState(OverlayState)
}

// Printer is a [Handler] that logs every event and state transition. Useful
// during development to observe wheel traffic without wiring up real
// subscribers.
type Printer struct {
	Logger *slog.Logger
}

func (p Printer) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

func (p Printer) OnEvent(e Event) {
	p.logger().Debug("event", "kind", e.Kind, "data", string(e.Data))
}

func (p Printer) OnUserState(s UserState) {
	if s.Connected {
		p.logger().Debug("user connected", "user_id", s.User.ID)
		return
	}
	p.logger().Warn("user disconnected", "error", s.Err)
}

func (p Printer) OnOverlayState(s OverlayState) {
	p.logger().Debug("overlay state", "enabled", s.Enabled, "visible", s.Visible)
}

// Forwarder is a [Handler] that re-emits every wheel notification onto a
// single channel it creates (see [Forwarder.C]), letting a caller drain one stream instead
// of subscribing to each spoke independently.
type Forwarder struct {
	ch chan any
}

// NewForwarder creates a Forwarder whose channel has the given buffer size.
func NewForwarder(buffer int) *Forwarder {
	return &Forwarder{ch: make(chan any, buffer)}
}

// C returns the channel events, user states, and overlay states are
// forwarded onto.
func (f *Forwarder) C() <-chan any { return f.ch }

func (f *Forwarder) OnEvent(e Event)               { f.ch <- e }
func (f *Forwarder) OnUserState(s UserState)        { f.ch <- s }
func (f *Forwarder) OnOverlayState(s OverlayState)  { f.ch <- s }

// Run subscribes h to every spoke on w and feeds it until ctx is cancelled.
func Run(ctx context.Context, w *Wheel, h Handler) {
	activity, unsubA := w.Activity()
	lobby, unsubL := w.Lobby()
	rel, unsubR := w.Relationships()
	user, unsubU := w.User()
	overlay, unsubO := w.Overlay()
	defer unsubA()
	defer unsubL()
	defer unsubR()
	defer unsubU()
	defer unsubO()

	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-activity:
			if !ok {
				return
			}
			h.OnEvent(e)
		case e, ok := <-lobby:
			if !ok {
				return
			}
			h.OnEvent(e)
		case e, ok := <-rel:
			if !ok {
				return
			}
			h.OnEvent(e)
		case s, ok := <-user:
			if !ok {
				return
			}
			h.OnUserState(s)
		case s, ok := <-overlay:
			if !ok {
				return
			}
			h.OnOverlayState(s)
		}
	}
}
