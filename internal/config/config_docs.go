package config

// ///////////////////////////////////////////////
// Documentation Types
// ///////////////////////////////////////////////

// FieldDoc holds documentation and alternative examples for a single config field.
// The genconfig tool uses [FieldDoc] values to annotate the generated config.default.toml.
type FieldDoc struct {
	// Comment is shown as a header comment above the field in the example config.
	Comment string

	// Alternatives are shown as commented-out lines below the active value.
	Alternatives []string
}

// ///////////////////////////////////////////////
// Field Documentation Map
// ///////////////////////////////////////////////

// ConfigDocs maps TOML field paths (dot-separated, e.g. "behavior.reconnect_min_ms")
// to their [FieldDoc] entries. The genconfig tool uses this map to annotate the
// generated config.default.toml with inline comments and alternative examples.
var ConfigDocs = map[string]FieldDoc{
	// ── Root ──────────────────────────────────────────────────────
	"version": {
		Comment: "Config schema version — do not edit.",
	},

	// ── Discord ──────────────────────────────────────────────────
	"discord.app_id": {
		Comment: "Discord application ID presented during the IPC handshake.",
	},
	"discord.instance_id": {
		Comment: "Pins connection discovery to a single IPC socket slot\n(mirrors the DISCORD_INSTANCE_ID environment variable). Leave\nempty to probe every discord-ipc-{0..9} slot in order.",
		Alternatives: []string{
			`instance_id = "1"`,
		},
	},

	// ── Log ──────────────────────────────────────────────────────
	"log": {
		Comment: "Logging configuration",
	},
	"log.level": {
		Comment: "Minimum log level. Options: \"trace\", \"debug\", \"info\", \"warn\", \"error\"",
		Alternatives: []string{
			`level = "debug"`,
			`level = "warn"`,
		},
	},
	"log.max_size_mb": {
		Comment: "Maximum log file size in megabytes before rotation.",
	},

	// ── Behavior ─────────────────────────────────────────────────
	"behavior.reconnect_min_ms": {
		Comment: "Initial reconnect backoff, in milliseconds. Doubles on each\nfailed attempt up to reconnect_max_ms, and resets once connected.",
	},
	"behavior.reconnect_max_ms": {
		Comment: "Reconnect backoff ceiling, in milliseconds.",
	},
	"behavior.send_queue_capacity": {
		Comment: "Outbound frames buffered while waiting for the connection to\naccept writes before the caller blocks.",
	},

	// ── Subscriptions ──────────────────────────────────────────────
	"subscriptions": {
		Comment: "Event classes to subscribe to once READY fires. Options:\n\"activity\", \"lobby\", \"user\", \"overlay\", \"relationships\", \"voice\"",
		Alternatives: []string{
			`subscriptions = ["activity", "lobby", "user"]`,
		},
	},
}
