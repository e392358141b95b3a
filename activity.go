package discordipc

// Button is a clickable button shown on a Rich Presence activity.
type Button struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Timestamps holds the start/end timestamps shown as an elapsed or
// remaining-time counter on an activity.
type Timestamps struct {
	Start int64 `json:"start,omitempty"`
	End   int64 `json:"end,omitempty"`
}

// Assets holds image keys and tooltip text for an activity.
type Assets struct {
	LargeImage string `json:"large_image,omitempty"`
	LargeText  string `json:"large_text,omitempty"`
	SmallImage string `json:"small_image,omitempty"`
	SmallText  string `json:"small_text,omitempty"`
}

// Party describes the player's party, shown as "N of M" alongside the
// activity when Size is non-zero.
type Party struct {
	ID   string `json:"id,omitempty"`
	Size [2]int `json:"size,omitempty"` // [current, max]
}

// Secrets carries the join/spectate/match secrets used to correlate an
// ACTIVITY_JOIN, ACTIVITY_SPECTATE, or ACTIVITY_JOIN_REQUEST invite back to
// this activity. A lobby-backed activity's JoinSecret is the canonical
// "<lobby_id>:<lobby_secret>" form parsed by [ParseLobbySecret].
type Secrets struct {
	Join     string `json:"join,omitempty"`
	Spectate string `json:"spectate,omitempty"`
	Match    string `json:"match,omitempty"`
}

// Activity represents a Discord Rich Presence activity.
type Activity struct {
	State      string      `json:"state,omitempty"`
	Details    string      `json:"details,omitempty"`
	Timestamps *Timestamps `json:"timestamps,omitempty"`
	Assets     *Assets     `json:"assets,omitempty"`
	Party      *Party      `json:"party,omitempty"`
	Secrets    *Secrets    `json:"secrets,omitempty"`
	Buttons    []Button    `json:"buttons,omitempty"`
	Instance   bool        `json:"instance,omitempty"`
}

// ///////////////////////////////////////////////
// Event payloads
// ///////////////////////////////////////////////

// ActivityJoinRequestPayload is the ACTIVITY_JOIN_REQUEST event body: another
// user has asked to join this activity's party.
type ActivityJoinRequestPayload struct {
	User User `json:"user"`
}

// ActivityJoinPayload is the ACTIVITY_JOIN event body: the local user
// accepted an invite and should connect using Secret.
type ActivityJoinPayload struct {
	Secret string `json:"secret"`
}

// ActivitySpectatePayload is the ACTIVITY_SPECTATE event body.
type ActivitySpectatePayload struct {
	Secret string `json:"secret"`
}

// ActivityInvitePayload is the ACTIVITY_INVITE event body: an invite to join
// or spectate was received from another user.
type ActivityInvitePayload struct {
	Type     int      `json:"type"`
	User     User     `json:"user"`
	Activity Activity `json:"activity"`
}

// ///////////////////////////////////////////////
// RPC façade
// ///////////////////////////////////////////////

type setActivityArgs struct {
	PID      int       `json:"pid"`
	Activity *Activity `json:"activity"`
}

// SetActivity publishes activity as the caller's Rich Presence. Passing nil
// clears the current activity.
func (c *Client) SetActivity(activity *Activity) (*Activity, error) {
	var resp Activity
	if err := c.call(CmdSetActivity, setActivityArgs{PID: c.pid, Activity: activity}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ClearActivity clears the caller's Rich Presence. Equivalent to
// SetActivity(nil).
func (c *Client) ClearActivity() error {
	_, err := c.SetActivity(nil)
	return err
}

type sendActivityJoinInviteArgs struct {
	UserID string `json:"user_id"`
}

// SendActivityJoinInvite invites userID to join the caller's activity party.
func (c *Client) SendActivityJoinInvite(userID string) error {
	return c.call(CmdSendActivityJoinInvite, sendActivityJoinInviteArgs{UserID: userID}, nil)
}

// CloseActivityJoinRequest rejects a pending ACTIVITY_JOIN_REQUEST from userID.
func (c *Client) CloseActivityJoinRequest(userID string) error {
	return c.call(CmdCloseActivityJoinRequest, sendActivityJoinInviteArgs{UserID: userID}, nil)
}

type activityInviteUserArgs struct {
	Type   int    `json:"type"`
	UserID string `json:"user_id"`
}

// ActivityInviteUser sends a join invite of the given type to userID.
func (c *Client) ActivityInviteUser(inviteType int, userID string) error {
	return c.call(CmdActivityInviteUser, activityInviteUserArgs{Type: inviteType, UserID: userID}, nil)
}

type acceptActivityInviteArgs struct {
	UserID   string   `json:"user_id"`
	Type     int      `json:"type"`
	Activity Activity `json:"activity"`
}

// AcceptActivityInvite accepts an ACTIVITY_INVITE event.
func (c *Client) AcceptActivityInvite(userID string, inviteType int, activity Activity) error {
	return c.call(CmdAcceptActivityInvite, acceptActivityInviteArgs{UserID: userID, Type: inviteType, Activity: activity}, nil)
}
