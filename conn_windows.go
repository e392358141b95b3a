// conn_windows.go implements Discord IPC socket discovery for Windows.
// It connects via named pipes (\\?\pipe\discord-ipc-N) using the go-winio
// library.

//go:build windows

package discordipc

import (
	"fmt"
	"net"
	"strconv"

	"github.com/Microsoft/go-winio"
)

// ///////////////////////////////////////////////
// Connection
// ///////////////////////////////////////////////

// connectToDiscord tries each Discord named pipe slot and returns the first
// successful connection. If instanceID is set, only that slot is tried.
func connectToDiscord(instanceID string) (net.Conn, error) {
	if instanceID != "" {
		n, err := strconv.Atoi(instanceID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid instance id %q", ErrIPCNotAvailable, instanceID)
		}
		conn, err := winio.DialPipe(fmt.Sprintf(`\\?\pipe\discord-ipc-%d`, n), nil)
		if err != nil {
			return nil, fmt.Errorf("%w: pinned instance %d unreachable", ErrIPCNotAvailable, n)
		}
		return conn, nil
	}

	for i := range maxIPCSlots {
		conn, err := winio.DialPipe(fmt.Sprintf(`\\?\pipe\discord-ipc-%d`, i), nil)
		if err == nil {
			return conn, nil
		}
	}
	return nil, ErrIPCNotAvailable
}
