// Package config provides configuration loading and defaults for discordipc
// clients.
//
// Configuration is loaded from a TOML file in the user's data directory and
// covers the connection, logging, and reconnect/subscription knobs exposed
// by [Client]'s functional options — letting a caller drive the client from
// a config file instead of hardcoding [Option] values.
package config

//go:generate go run ../../cmd/genconfig

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"tools.zach/dev/discordipc/internal/atomicfile"
	"tools.zach/dev/discordipc/internal/migrate"
	"tools.zach/dev/discordipc/internal/paths"
)

// ///////////////////////////////////////////////
// Configuration Types
// ///////////////////////////////////////////////

// Config represents the top-level client configuration.
type Config struct {
	// Version is the config schema version used for migrations.
	Version int `toml:"version"`
	// Discord holds Discord connection settings.
	Discord DiscordConfig `toml:"discord"`
	// Log holds logging settings.
	Log LogConfig `toml:"log"`
	// Behavior holds reconnect and queueing behavior.
	Behavior BehaviorConfig `toml:"behavior"`
	// Subscriptions lists the subscription classes to request at READY.
	// Valid entries: "activity", "lobby", "user", "overlay",
	// "relationships", "voice".
	Subscriptions []string `toml:"subscriptions,omitempty"`
}

// DiscordConfig holds Discord connection settings.
type DiscordConfig struct {
	// AppID is the Discord application ID to hand the client during
	// handshake.
	AppID string `toml:"app_id"`
	// InstanceID pins connection attempts to a single IPC socket slot
	// (DISCORD_INSTANCE_ID), bypassing discovery entirely. Empty means
	// "probe every slot".
	InstanceID string `toml:"instance_id,omitempty"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is the minimum log level (trace, debug, info, warn, error).
	Level string `toml:"level"`
	// MaxSizeMB is the maximum log file size in megabytes before rotation.
	MaxSizeMB int `toml:"max_size_mb"`
}

// BehaviorConfig holds reconnect backoff and queueing settings.
type BehaviorConfig struct {
	// ReconnectMinMS is the initial reconnect backoff, in milliseconds.
	ReconnectMinMS int `toml:"reconnect_min_ms"`
	// ReconnectMaxMS is the backoff ceiling, in milliseconds.
	ReconnectMaxMS int `toml:"reconnect_max_ms"`
	// SendQueueCapacity bounds the number of outbound frames buffered
	// while waiting for the connection to accept writes.
	SendQueueCapacity int `toml:"send_queue_capacity"`
}

// ///////////////////////////////////////////////
// Default Configuration
// ///////////////////////////////////////////////

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: migrate.Config.CurrentVersion,
		Discord: DiscordConfig{},
		Log: LogConfig{
			Level:     "info",
			MaxSizeMB: 10,
		},
		Behavior: BehaviorConfig{
			ReconnectMinMS:    500,
			ReconnectMaxMS:    60_000,
			SendQueueCapacity: 100,
		},
		Subscriptions: []string{},
	}
}

// ///////////////////////////////////////////////
// Example Configuration
// ///////////////////////////////////////////////

// ExampleConfig returns a Config suitable for generating config.default.toml.
func ExampleConfig() *Config {
	cfg := DefaultConfig()
	cfg.Discord.AppID = "0"
	cfg.Subscriptions = []string{"activity", "lobby", "user"}
	return cfg
}

// ///////////////////////////////////////////////
// PeekVersion
// ///////////////////////////////////////////////

// PeekVersion reads just the version field from raw TOML bytes.
// Returns 1 if the version field is missing or zero.
func PeekVersion(data []byte) int {
	var v struct {
		Version int `toml:"version"`
	}
	if err := toml.Unmarshal(data, &v); err != nil {
		return 1
	}
	if v.Version == 0 {
		return 1
	}
	return v.Version
}

// ///////////////////////////////////////////////
// Loading and Saving
// ///////////////////////////////////////////////

// Load reads and parses the configuration file from dataDir/config.toml.
// If the file doesn't exist, returns DefaultConfig.
func Load(dataDir string) (*Config, error) {
	path := filepath.Join(dataDir, paths.ConfigFile)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	version := PeekVersion(data)

	shouldMigrate := version != migrate.Config.CurrentVersion
	if shouldMigrate {
		if backupErr := os.WriteFile(path+".bak", data, 0o644); backupErr != nil {
			slog.Warn("failed to write config backup", "error", backupErr)
		}
		var migrateErr error
		data, _, migrateErr = migrate.Config.Run(data, version)
		if migrateErr != nil {
			return nil, fmt.Errorf("migrate config: %w", migrateErr)
		}
	}

	if migrate.Config.HasDev() {
		var devErr error
		data, devErr = migrate.Config.RunDev(data)
		if devErr != nil {
			return nil, fmt.Errorf("apply dev transforms: %w", devErr)
		}
		shouldMigrate = true
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.Version = migrate.Config.CurrentVersion

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	if shouldMigrate {
		if err := cfg.Save(path); err != nil {
			slog.Warn("failed to save migrated config", "error", err)
		}
	}

	return cfg, nil
}

// Save writes the config to disk as TOML using atomic file write.
func (c *Config) Save(path string) error {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return atomicfile.Write(path, buf.Bytes(), 0o644)
}

// ///////////////////////////////////////////////
// Validation
// ///////////////////////////////////////////////

// validLogLevels is the set of accepted log level strings.
var validLogLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "error": true,
}

// validSubscriptions is the set of accepted subscription class names.
var validSubscriptions = map[string]bool{
	"activity": true, "lobby": true, "user": true,
	"overlay": true, "relationships": true, "voice": true,
}

// Validate checks that all configuration values are within acceptable ranges.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Discord.AppID) == "" {
		return fmt.Errorf("discord.app_id must not be empty")
	}

	if !validLogLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("invalid log.level %q: must be trace, debug, info, warn, or error", c.Log.Level)
	}

	if c.Behavior.ReconnectMinMS <= 0 {
		return fmt.Errorf("reconnect_min_ms must be > 0, got %d", c.Behavior.ReconnectMinMS)
	}

	if c.Behavior.ReconnectMaxMS < c.Behavior.ReconnectMinMS {
		return fmt.Errorf("reconnect_max_ms (%d) must be >= reconnect_min_ms (%d)", c.Behavior.ReconnectMaxMS, c.Behavior.ReconnectMinMS)
	}

	if c.Behavior.SendQueueCapacity <= 0 {
		return fmt.Errorf("send_queue_capacity must be > 0, got %d", c.Behavior.SendQueueCapacity)
	}

	for _, s := range c.Subscriptions {
		if !validSubscriptions[strings.ToLower(s)] {
			return fmt.Errorf("invalid subscriptions entry %q", s)
		}
	}

	return nil
}

// ///////////////////////////////////////////////
// Reconnect duration helpers
// ///////////////////////////////////////////////

// ReconnectMin returns the initial reconnect backoff as a [time.Duration].
func (c *Config) ReconnectMin() time.Duration {
	return time.Duration(c.Behavior.ReconnectMinMS) * time.Millisecond
}

// ReconnectMax returns the reconnect backoff ceiling as a [time.Duration].
func (c *Config) ReconnectMax() time.Duration {
	return time.Duration(c.Behavior.ReconnectMaxMS) * time.Millisecond
}
