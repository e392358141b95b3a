package discordipc

import (
	"fmt"
	"strings"
)

// LobbyType distinguishes private invite-only lobbies from publicly
// searchable ones.
type LobbyType int

const (
	LobbyPrivate LobbyType = 1
	LobbyPublic  LobbyType = 2
)

// Lobby is a server-side group of users with metadata, membership, and an
// optional voice channel.
type Lobby struct {
	ID       string            `json:"id"`
	Type     LobbyType         `json:"type"`
	OwnerID  string            `json:"owner_id"`
	Secret   string            `json:"secret"`
	Capacity int               `json:"capacity"`
	Locked   bool              `json:"locked"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// LobbyMember is a user connected to a lobby, along with lobby-scoped
// metadata and whether they are currently transmitting voice.
type LobbyMember struct {
	User     User              `json:"user"`
	Metadata map[string]string `json:"metadata,omitempty"`
	Speaking bool              `json:"-"`
}

// ///////////////////////////////////////////////
// Lobby secret
// ///////////////////////////////////////////////

// ParseLobbySecret splits a lobby activity join/spectate secret into its
// canonical "<lobby_id>:<lobby_secret>" parts. Returns
// [ErrMalformedLobbySecret] if the secret doesn't have that shape.
func ParseLobbySecret(secret string) (lobbyID, lobbySecret string, err error) {
	idx := strings.IndexByte(secret, ':')
	if idx <= 0 || idx == len(secret)-1 {
		return "", "", ErrMalformedLobbySecret
	}
	return secret[:idx], secret[idx+1:], nil
}

// FormatLobbySecret builds the canonical join/spectate secret for a lobby.
func FormatLobbySecret(lobbyID, lobbySecret string) string {
	return fmt.Sprintf("%s:%s", lobbyID, lobbySecret)
}

// ///////////////////////////////////////////////
// Event payloads
// ///////////////////////////////////////////////

// LobbyMessagePayload is the LOBBY_MESSAGE event body.
type LobbyMessagePayload struct {
	LobbyID string `json:"lobby_id"`
	Sender  User   `json:"sender"`
	Data    string `json:"data"`
}

// LobbyMemberPayload is the body shared by LOBBY_MEMBER_CONNECT,
// LOBBY_MEMBER_UPDATE, and LOBBY_MEMBER_DISCONNECT.
type LobbyMemberPayload struct {
	LobbyID string      `json:"lobby_id"`
	Member  LobbyMember `json:"member"`
}

// SpeakingPayload is the body shared by SPEAKING_START and SPEAKING_STOP.
type SpeakingPayload struct {
	LobbyID string `json:"lobby_id"`
	UserID  string `json:"user_id"`
}

// ///////////////////////////////////////////////
// RPC façade
// ///////////////////////////////////////////////

type createLobbyArgs struct {
	Type     LobbyType         `json:"type"`
	Capacity int               `json:"capacity"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// CreateLobby creates a new lobby of the given type and capacity.
func (c *Client) CreateLobby(typ LobbyType, capacity int, metadata map[string]string) (*Lobby, error) {
	var lobby Lobby
	if err := c.call(CmdCreateLobby, createLobbyArgs{Type: typ, Capacity: capacity, Metadata: metadata}, &lobby); err != nil {
		return nil, err
	}
	return &lobby, nil
}

type updateLobbyArgs struct {
	ID       string            `json:"id"`
	Type     LobbyType         `json:"type,omitempty"`
	Capacity int               `json:"capacity,omitempty"`
	Locked   bool              `json:"locked"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// UpdateLobby updates a lobby's mutable fields.
func (c *Client) UpdateLobby(lobbyID string, typ LobbyType, capacity int, locked bool, metadata map[string]string) error {
	return c.call(CmdUpdateLobby, updateLobbyArgs{ID: lobbyID, Type: typ, Capacity: capacity, Locked: locked, Metadata: metadata}, nil)
}

// DeleteLobby deletes a lobby the caller owns.
func (c *Client) DeleteLobby(lobbyID string) error {
	return c.call(CmdDeleteLobby, struct {
		ID string `json:"id"`
	}{ID: lobbyID}, nil)
}

// LobbySearchQuery filters a SEARCH_LOBBIES request.
type LobbySearchQuery struct {
	Filter     []LobbySearchFilter `json:"filter,omitempty"`
	Sort       []LobbySearchFilter `json:"sort,omitempty"`
	Limit      int                 `json:"limit,omitempty"`
	Distance   int                 `json:"distance,omitempty"`
}

// LobbySearchFilter is a single comparison clause over lobby metadata.
type LobbySearchFilter struct {
	Key        string `json:"key"`
	Value      string `json:"value"`
	Comparison string `json:"comparison"` // "==", "!=", "<", "<=", ">", ">=", "near"
	Cast       string `json:"cast,omitempty"`
}

// SearchLobbies returns lobbies matching query.
func (c *Client) SearchLobbies(query LobbySearchQuery) ([]Lobby, error) {
	var lobbies []Lobby
	if err := c.call(CmdSearchLobbies, query, &lobbies); err != nil {
		return nil, err
	}
	return lobbies, nil
}

type connectToLobbyArgs struct {
	ID     string `json:"id"`
	Secret string `json:"secret"`
}

// ConnectToLobby joins a lobby using its id and join secret.
func (c *Client) ConnectToLobby(lobbyID, secret string) (*Lobby, error) {
	var lobby Lobby
	if err := c.call(CmdConnectToLobby, connectToLobbyArgs{ID: lobbyID, Secret: secret}, &lobby); err != nil {
		return nil, err
	}
	return &lobby, nil
}

// DisconnectFromLobby leaves a lobby.
func (c *Client) DisconnectFromLobby(lobbyID string) error {
	return c.call(CmdDisconnectFromLobby, struct {
		ID string `json:"id"`
	}{ID: lobbyID}, nil)
}

type sendToLobbyArgs struct {
	ID   string `json:"id"`
	Data string `json:"data"`
}

// SendToLobby broadcasts an opaque message to every member of a lobby.
func (c *Client) SendToLobby(lobbyID, data string) error {
	return c.call(CmdSendToLobby, sendToLobbyArgs{ID: lobbyID, Data: data}, nil)
}

// ConnectToLobbyVoice joins the lobby's voice channel.
func (c *Client) ConnectToLobbyVoice(lobbyID string) error {
	return c.call(CmdConnectToLobbyVoice, struct {
		ID string `json:"id"`
	}{ID: lobbyID}, nil)
}

// DisconnectFromLobbyVoice leaves the lobby's voice channel. Sends the
// corresponding DISCONNECT kind; one source variant conflates this with
// CONNECT_TO_LOBBY_VOICE (a copy/paste bug) which is deliberately not
// reproduced here (§9).
func (c *Client) DisconnectFromLobbyVoice(lobbyID string) error {
	return c.call(CmdDisconnectFromLobbyVoice, struct {
		ID string `json:"id"`
	}{ID: lobbyID}, nil)
}

type updateLobbyMemberArgs struct {
	LobbyID  string            `json:"lobby_id"`
	UserID   string            `json:"user_id"`
	Metadata map[string]string `json:"metadata"`
}

// UpdateLobbyMember updates a member's lobby-scoped metadata.
func (c *Client) UpdateLobbyMember(lobbyID, userID string, metadata map[string]string) error {
	return c.call(CmdUpdateLobbyMember, updateLobbyMemberArgs{LobbyID: lobbyID, UserID: userID, Metadata: metadata}, nil)
}
