package discordipc

import (
	"errors"
	"fmt"
	"strings"
)

// ///////////////////////////////////////////////
// Sentinel Errors
// ///////////////////////////////////////////////

// ErrNoConnection is returned when no socket could be opened on any
// candidate path ([ErrIPCNotAvailable] wraps it), or when a façade call is
// made after [Client.Close] has shut down the send queue.
var ErrNoConnection = errors.New("discordipc: no connection")

// ErrChannelDisconnected is returned to a pending RPC when [Client.Close] is
// called before its response arrived. A dropped connection does not fail
// pending RPCs; they stay pending across the reconnect.
var ErrChannelDisconnected = errors.New("discordipc: channel disconnected")

// ErrCorruptConnection is returned when the peer sends a HANDSHAKE frame
// mid-session, which is never valid after the initial handshake completes.
var ErrCorruptConnection = errors.New("discordipc: corrupt connection")

// ErrTimedOut is not returned by anything in this package: the core never
// times out an RPC, and façade calls take no context or deadline.
var ErrTimedOut = errors.New("discordipc: timed out")

// ///////////////////////////////////////////////
// Structured Errors
// ///////////////////////////////////////////////

// CloseError reports a terminal CLOSE frame sent by Discord. It is never
// followed by a reconnect attempt.
type CloseError struct {
	Code    int32
	Message string
}

func (e *CloseError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "unknown reason"
	}
	return fmt.Sprintf("discordipc: connection closed by peer: %s", msg)
}

// ProtocolError covers malformed JSON, a missing or invalid required field,
// or an unknown enum variant on the wire.
type ProtocolError struct {
	Kind   string // e.g. "OpCode", "Command", "Event"
	Value  string
	Reason string // "malformed json" | "missing field" | "invalid field" | "unknown variant"
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("discordipc: protocol error: %s %s=%q", e.Reason, e.Kind, e.Value)
}

// MismatchedResponseError is returned when a response's nonce matched a
// pending RPC but its cmd kind differed from the one that RPC expected.
type MismatchedResponseError struct {
	Expected CommandKind
	Actual   CommandKind
	Nonce    uint64
}

func (e *MismatchedResponseError) Error() string {
	return fmt.Sprintf("discordipc: mismatched response: expected cmd %s, got %s (nonce %d)", e.Expected, e.Actual, e.Nonce)
}

// APIErrorKind classifies a well-formed Discord error frame. Kinds beyond
// Unknown/MalformedCommand/InvalidCommand/Generic (the four spec.md names
// explicitly) are recognized on a best-effort basis from message text, the
// same way the original SDK carries named variants instead of falling
// through to Generic for common lobby errors.
type APIErrorKind int

const (
	APIGeneric APIErrorKind = iota
	APIUnknown
	APIMalformedCommand
	APIInvalidCommand
	APIAlreadyConnectedToLobby
	APIAlreadyConnectingToLobby
	APIInvalidLobbySecret
	APINoErrorData
)

func (k APIErrorKind) String() string {
	switch k {
	case APIUnknown:
		return "Unknown"
	case APIMalformedCommand:
		return "MalformedCommand"
	case APIInvalidCommand:
		return "InvalidCommand"
	case APIAlreadyConnectedToLobby:
		return "AlreadyConnectedToLobby"
	case APIAlreadyConnectingToLobby:
		return "AlreadyConnectingToLobby"
	case APIInvalidLobbySecret:
		return "InvalidLobbySecret"
	case APINoErrorData:
		return "NoErrorData"
	default:
		return "Generic"
	}
}

// APIError is a well-formed error frame from Discord (`evt: "ERROR"`),
// classified per the code/message mapping in §4.8.
type APIError struct {
	Kind    APIErrorKind
	Code    int
	Message string
	// Reason holds the extracted reason text for InvalidCommand.
	Reason string
}

func (e *APIError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("discordipc: api error %s: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("discordipc: api error %s (code %d): %s", e.Kind, e.Code, e.Message)
}

// classifyAPIError maps a Discord error frame's code and message onto an
// [APIError], following the mapping table in §4.8.
func classifyAPIError(code int, message string) *APIError {
	switch {
	case code == 1000 && message == "Unknown Error":
		return &APIError{Kind: APIUnknown, Code: code, Message: message}
	case code == 1003 && message == "protocol error":
		return &APIError{Kind: APIMalformedCommand, Code: code, Message: message}
	case code == 4000:
		reason := message
		if reason == "" {
			reason = "unknown problem"
		}
		return &APIError{Kind: APIInvalidCommand, Code: code, Message: message, Reason: reason}
	case code == 4002 && strings.HasPrefix(message, "Invalid command: "):
		return &APIError{Kind: APIInvalidCommand, Code: code, Message: message, Reason: strings.TrimPrefix(message, "Invalid command: ")}
	case message == "":
		return &APIError{Kind: APINoErrorData, Code: code, Message: message}
	case strings.Contains(strings.ToLower(message), "already connected to lobby"):
		return &APIError{Kind: APIAlreadyConnectedToLobby, Code: code, Message: message}
	case strings.Contains(strings.ToLower(message), "already connecting to lobby"):
		return &APIError{Kind: APIAlreadyConnectingToLobby, Code: code, Message: message}
	case strings.Contains(strings.ToLower(message), "invalid lobby secret"):
		return &APIError{Kind: APIInvalidLobbySecret, Code: code, Message: message}
	default:
		return &APIError{Kind: APIGeneric, Code: code, Message: message}
	}
}

// ErrMalformedLobbySecret is returned by ParseLobbySecret when a lobby
// activity secret does not have the canonical "<lobby_id>:<lobby_secret>" shape.
var ErrMalformedLobbySecret = errors.New("discordipc: non-canonical lobby activity secret")
