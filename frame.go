package discordipc

import (
	"encoding/binary"
	"fmt"
	"io"
)

// ///////////////////////////////////////////////
// Constants
// ///////////////////////////////////////////////

// Opcode identifies the class of a Discord IPC frame.
type Opcode uint32

const (
	// OpHandshake is the opcode for the initial IPC handshake.
	OpHandshake Opcode = 0
	// OpFrame is the opcode for a standard IPC data frame (RPC or event).
	OpFrame Opcode = 1
	// OpClose is the opcode for a terminal close notification.
	OpClose Opcode = 2
	// OpPing is the opcode for a keepalive ping.
	OpPing Opcode = 3
	// OpPong is the opcode for a keepalive pong.
	OpPong Opcode = 4

	// frameHeaderSize is the byte length of the IPC frame header: a 4-byte
	// little-endian opcode followed by a 4-byte little-endian length.
	frameHeaderSize = 8

	// maxIPCSlots is the number of IPC socket/pipe slots Discord may listen on (0-9).
	maxIPCSlots = 10
)

// ErrIPCNotAvailable is returned when no Discord IPC socket can be reached.
var ErrIPCNotAvailable = fmt.Errorf("%w: no discord instance reachable", ErrNoConnection)

// ///////////////////////////////////////////////
// Frame Encoding / Decoding
// ///////////////////////////////////////////////

// EncodeFrame builds a Discord IPC frame: [4-byte LE opcode][4-byte LE length][payload].
func EncodeFrame(opcode Opcode, payload []byte) ([]byte, error) {
	frame := make([]byte, frameHeaderSize+len(payload))
	binary.LittleEndian.PutUint32(frame[0:4], uint32(opcode))
	binary.LittleEndian.PutUint32(frame[4:8], uint32(len(payload)))
	copy(frame[8:], payload)
	return frame, nil
}

// DecodeFrame reads a single Discord IPC frame from reader, handling partial
// reads via [io.ReadFull]. The codec enforces no body size cap; a corrupt or
// adversarial length is the caller's problem, not the wire format's.
func DecodeFrame(reader io.Reader) (opcode Opcode, payload []byte, err error) {
	header := make([]byte, frameHeaderSize)
	if _, err = io.ReadFull(reader, header); err != nil {
		return 0, nil, fmt.Errorf("reading frame header: %w", err)
	}

	raw := binary.LittleEndian.Uint32(header[0:4])
	length := binary.LittleEndian.Uint32(header[4:8])

	opcode = Opcode(raw)
	if opcode > OpPong {
		return 0, nil, &ProtocolError{Kind: "OpCode", Value: fmt.Sprintf("%d", raw), Reason: "unknown variant"}
	}

	payload = make([]byte, length)
	if _, err = io.ReadFull(reader, payload); err != nil {
		return 0, nil, fmt.Errorf("reading frame payload: %w", err)
	}

	return opcode, payload, nil
}
