// conn_unix.go implements Discord IPC socket discovery for Unix-like systems
// (Linux, macOS, FreeBSD). It probes the runtime directory plus Snap and
// Flatpak socket locations.

//go:build !windows

package discordipc

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
)

// ///////////////////////////////////////////////
// Connection
// ///////////////////////////////////////////////

// runtimeDir returns the directory Discord's IPC sockets live under: the
// first defined of XDG_RUNTIME_DIR, TMPDIR, TMP, TEMP, else /tmp.
func runtimeDir() string {
	for _, k := range []string{"XDG_RUNTIME_DIR", "TMPDIR", "TMP", "TEMP"} {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return "/tmp"
}

// connectToDiscord tries each known IPC socket path and returns the first
// successful connection. If DISCORD_INSTANCE_ID is set, only that slot is
// tried and the rest of discovery is skipped entirely.
func connectToDiscord(instanceID string) (net.Conn, error) {
	dir := runtimeDir()

	if instanceID != "" {
		n, err := strconv.Atoi(instanceID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid instance id %q", ErrIPCNotAvailable, instanceID)
		}
		conn, err := net.Dial("unix", filepath.Join(dir, fmt.Sprintf("discord-ipc-%d", n)))
		if err != nil {
			return nil, fmt.Errorf("%w: pinned instance %d unreachable", ErrIPCNotAvailable, n)
		}
		return conn, nil
	}

	var paths []string
	for i := range maxIPCSlots {
		paths = append(paths, filepath.Join(dir, fmt.Sprintf("discord-ipc-%d", i)))
	}

	// Snap-packaged Discord uses a distinct socket directory.
	uid := strconv.Itoa(os.Getuid())
	snapDirs := []string{"snap.discord", "snap.discord-canary", "snap.discord-ptb"}
	for _, sd := range snapDirs {
		for i := range maxIPCSlots {
			paths = append(paths, fmt.Sprintf("/run/user/%s/%s/discord-ipc-%d", uid, sd, i))
		}
	}

	// Flatpak-packaged Discord uses its own app-scoped directory.
	flatpakApps := []string{
		"com.discordapp.Discord",
		"com.discordapp.DiscordCanary",
		"com.discordapp.DiscordPTB",
	}
	for _, app := range flatpakApps {
		for i := range maxIPCSlots {
			paths = append(paths, fmt.Sprintf("/run/user/%s/app/%s/discord-ipc-%d", uid, app, i))
		}
	}

	// On WSL, append additional paths where a relay bridge (socat + npiperelay)
	// may have created the socket. Overlap with the paths above is harmless
	// since dialing a missing path is cheap.
	paths = append(paths, wslSocketPaths()...)

	for _, path := range paths {
		conn, err := net.Dial("unix", path)
		if err == nil {
			return conn, nil
		}
	}

	if isWSL() {
		return nil, fmt.Errorf("%w: running under WSL, a relay (socat + npiperelay.exe) may be required", ErrIPCNotAvailable)
	}
	return nil, ErrIPCNotAvailable
}
