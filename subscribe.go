package discordipc

import (
	"encoding/json"
	"strconv"
)

// Subscriptions is an immutable bitflag set selected at construction,
// expanding into a fixed set of EventKind subscriptions (§4.7).
type Subscriptions uint32

const (
	SubActivity Subscriptions = 1 << iota
	SubLobby
	SubUser
	SubOverlay
	SubRelationships
	SubVoice
)

// expandSubscriptions maps the configured bitflags onto the wire EventKinds
// to subscribe to, in a stable order, with no duplicates when two flags
// expand to an overlapping event (e.g. LOBBY and VOICE both cover speaking
// start/stop).
func expandSubscriptions(subs Subscriptions) []EventKind {
	seen := make(map[EventKind]bool)
	var kinds []EventKind
	add := func(ks ...EventKind) {
		for _, k := range ks {
			if !seen[k] {
				seen[k] = true
				kinds = append(kinds, k)
			}
		}
	}
	if subs&SubActivity != 0 {
		add(EvtActivityInvite, EvtActivityJoin, EvtActivityJoinRequest, EvtActivitySpectate)
	}
	if subs&SubLobby != 0 {
		add(EvtLobbyDelete, EvtLobbyMemberConnect, EvtLobbyMemberDisconnect,
			EvtLobbyMemberUpdate, EvtLobbyMessage, EvtLobbyUpdate, EvtSpeakingStart, EvtSpeakingStop)
	}
	if subs&SubUser != 0 {
		add(EvtCurrentUserUpdate)
	}
	if subs&SubOverlay != 0 {
		add(EvtOverlayUpdate)
	}
	if subs&SubRelationships != 0 {
		add(EvtRelationshipUpdate)
	}
	if subs&SubVoice != 0 {
		add(EvtSpeakingStart, EvtSpeakingStop)
	}
	return kinds
}

// runSubscriptions batches one SUBSCRIBE frame per configured event kind
// into a single buffer and enqueues it with one push. Nonces are offset by subscribeNonceBit so
// they never collide with RPC request nonces; acks are fire-and-forget and
// are neither awaited nor surfaced to the caller.
func (c *Client) runSubscriptions() {
	kinds := expandSubscriptions(c.subs)
	var batch []byte
	for i, kind := range kinds {
		nonce := subscribeNonceBit | uint64(i+1)

		var args json.RawMessage
		if kind == EvtOverlayUpdate {
			b, err := json.Marshal(OverlayPidArgs{PID: c.pid})
			if err != nil {
				c.logger.Warn("subscribe: marshaling overlay args failed", "error", err)
				continue
			}
			args = b
		}

		env := outboundEnvelope{Cmd: CmdSubscribe, Evt: kind, Args: args, Nonce: strconv.FormatUint(nonce, 10)}
		body, err := json.Marshal(env)
		if err != nil {
			c.logger.Warn("subscribe: marshaling envelope failed", "evt", kind, "error", err)
			continue
		}
		frame, err := EncodeFrame(OpFrame, body)
		if err != nil {
			c.logger.Warn("subscribe: encoding frame failed", "evt", kind, "error", err)
			continue
		}
		batch = append(batch, frame...)
	}
	if len(batch) == 0 {
		return
	}
	if err := c.queue.push(batch); err != nil {
		c.logger.Warn("subscribe: send queue closed")
	}
}
