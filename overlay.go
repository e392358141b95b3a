package discordipc

import "encoding/json"

// Visibility is the overlay's show/hide state.
type Visibility int

const (
	VisibilityHidden Visibility = iota
	VisibilityVisible
)

func (v Visibility) String() string {
	if v == VisibilityVisible {
		return "visible"
	}
	return "hidden"
}

// OverlayState is the latest-value payload of the Overlay spoke, carried by
// OVERLAY_UPDATE events.
type OverlayState struct {
	Enabled bool       `json:"enabled"`
	Visible Visibility `json:"-"`
}

// overlayUpdatePayload mirrors the wire shape of an OVERLAY_UPDATE event;
// Discord encodes visibility as a boolean "visible" field rather than the
// enum used internally.
type overlayUpdatePayload struct {
	Enabled bool `json:"enabled"`
	Visible bool `json:"visible"`
}

// UnmarshalJSON adapts the wire's boolean "visible" field onto [Visibility].
func (s *OverlayState) UnmarshalJSON(data []byte) error {
	var raw overlayUpdatePayload
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.Enabled = raw.Enabled
	if raw.Visible {
		s.Visible = VisibilityVisible
	} else {
		s.Visible = VisibilityHidden
	}
	return nil
}

// MarshalJSON mirrors [OverlayState.UnmarshalJSON] for round-tripping in tests.
func (s OverlayState) MarshalJSON() ([]byte, error) {
	return json.Marshal(overlayUpdatePayload{Enabled: s.Enabled, Visible: s.Visible == VisibilityVisible})
}

// OverlayPidArgs is the sole argument-bearing SUBSCRIBE: OVERLAY_UPDATE
// requires the caller's process id (§4.7).
type OverlayPidArgs struct {
	PID int `json:"pid"`
}

// OverlayLockedArgs is the SET_OVERLAY_LOCKED command argument.
type OverlayLockedArgs struct {
	Locked bool `json:"locked"`
}

// SetOverlayLocked locks or unlocks the overlay (disabling/enabling the
// in-game toggle shortcut).
func (c *Client) SetOverlayLocked(locked bool) error {
	return c.call(CmdSetOverlayLocked, OverlayLockedArgs{Locked: locked}, nil)
}

type overlayActivityInviteArgs struct {
	Type   int    `json:"type"`
	UserID string `json:"user_id"`
}

// OpenOverlayActivityInvite opens the overlay's activity invite picker.
func (c *Client) OpenOverlayActivityInvite(inviteType int, userID string) error {
	return c.call(CmdOpenOverlayActivityInvite, overlayActivityInviteArgs{Type: inviteType, UserID: userID}, nil)
}

// OpenOverlayGuildInvite opens the overlay to redeem a guild invite code.
func (c *Client) OpenOverlayGuildInvite(code string) error {
	return c.call(CmdOpenOverlayGuildInvite, struct {
		Code string `json:"code"`
	}{Code: code}, nil)
}

// OpenOverlayVoiceSettings opens the overlay's voice settings panel for the
// given lobby voice channel.
func (c *Client) OpenOverlayVoiceSettings(lobbyID string) error {
	return c.call(CmdOpenOverlayVoiceSettings, struct {
		ChannelID string `json:"channel_id"`
	}{ChannelID: lobbyID}, nil)
}
