package discordipc

// CommandKind is the SCREAMING_SNAKE_CASE `cmd` field of the RPC envelope.
type CommandKind string

const (
	CmdDispatch                   CommandKind = "DISPATCH"
	CmdSubscribe                  CommandKind = "SUBSCRIBE"
	CmdUnsubscribe                CommandKind = "UNSUBSCRIBE"
	CmdSetActivity                CommandKind = "SET_ACTIVITY"
	CmdSendActivityJoinInvite     CommandKind = "SEND_ACTIVITY_JOIN_INVITE"
	CmdCloseActivityJoinRequest   CommandKind = "CLOSE_ACTIVITY_JOIN_REQUEST"
	CmdActivityInviteUser         CommandKind = "ACTIVITY_INVITE_USER"
	CmdAcceptActivityInvite       CommandKind = "ACCEPT_ACTIVITY_INVITE"
	CmdCreateLobby                CommandKind = "CREATE_LOBBY"
	CmdUpdateLobby                CommandKind = "UPDATE_LOBBY"
	CmdSearchLobbies              CommandKind = "SEARCH_LOBBIES"
	CmdDeleteLobby                CommandKind = "DELETE_LOBBY"
	CmdConnectToLobby             CommandKind = "CONNECT_TO_LOBBY"
	CmdDisconnectFromLobby        CommandKind = "DISCONNECT_FROM_LOBBY"
	CmdSendToLobby                CommandKind = "SEND_TO_LOBBY"
	CmdConnectToLobbyVoice        CommandKind = "CONNECT_TO_LOBBY_VOICE"
	CmdDisconnectFromLobbyVoice   CommandKind = "DISCONNECT_FROM_LOBBY_VOICE"
	CmdUpdateLobbyMember          CommandKind = "UPDATE_LOBBY_MEMBER"
	CmdSetOverlayLocked           CommandKind = "SET_OVERLAY_LOCKED"
	CmdOpenOverlayActivityInvite  CommandKind = "OPEN_OVERLAY_ACTIVITY_INVITE"
	CmdOpenOverlayGuildInvite     CommandKind = "OPEN_OVERLAY_GUILD_INVITE"
	CmdOpenOverlayVoiceSettings   CommandKind = "OPEN_OVERLAY_VOICE_SETTINGS"
	CmdGetRelationships           CommandKind = "GET_RELATIONSHIPS"
	CmdSetVoiceSettings           CommandKind = "SET_VOICE_SETTINGS"
	CmdSetUserVoiceSettings       CommandKind = "SET_USER_VOICE_SETTINGS"
)

// EventKind is the SCREAMING_SNAKE_CASE `evt` field of a dispatch frame.
type EventKind string

const (
	EvtReady                 EventKind = "READY"
	EvtError                 EventKind = "ERROR"
	EvtCurrentUserUpdate     EventKind = "CURRENT_USER_UPDATE"
	EvtActivityJoinRequest   EventKind = "ACTIVITY_JOIN_REQUEST"
	EvtActivityJoin          EventKind = "ACTIVITY_JOIN"
	EvtActivitySpectate      EventKind = "ACTIVITY_SPECTATE"
	EvtActivityInvite        EventKind = "ACTIVITY_INVITE"
	EvtLobbyUpdate           EventKind = "LOBBY_UPDATE"
	EvtLobbyDelete           EventKind = "LOBBY_DELETE"
	EvtLobbyMemberConnect    EventKind = "LOBBY_MEMBER_CONNECT"
	EvtLobbyMemberUpdate     EventKind = "LOBBY_MEMBER_UPDATE"
	EvtLobbyMemberDisconnect EventKind = "LOBBY_MEMBER_DISCONNECT"
	EvtLobbyMessage          EventKind = "LOBBY_MESSAGE"
	EvtSpeakingStart         EventKind = "SPEAKING_START"
	EvtSpeakingStop          EventKind = "SPEAKING_STOP"
	EvtOverlayUpdate         EventKind = "OVERLAY_UPDATE"
	EvtRelationshipUpdate    EventKind = "RELATIONSHIP_UPDATE"

	// There are no lobby create/connect event kinds: Discord does not send
	// distinct wire events for them, and LobbyState treats the first
	// LOBBY_UPDATE for an unknown lobby ID as its creation (see
	// state_lobbies.go).
)

// subscribeNonceBit distinguishes subscription-engine nonces from RPC
// request nonces so the correlator never confuses the two (§4.7).
const subscribeNonceBit = uint64(0x1000_0000_0000_0000)
