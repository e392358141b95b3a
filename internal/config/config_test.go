// Tests for the config package covering [Load] behavior (defaults, overrides,
// missing files, malformed input, migration), validation ([Config.Validate]),
// serialization round-trips ([Config.Save]), and [ConfigDocs] completeness.

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
)

// ///////////////////////////////////////////////
// Load
// ///////////////////////////////////////////////

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		config  string // config file content; empty means no file written
		noFile  bool   // if true, skip writing a config file
		wantErr bool
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name:   "defaults from minimal config",
			config: "version = 1\n\n[discord]\napp_id = \"123\"\n",
			check: func(t *testing.T, cfg *Config) {
				t.Helper()
				def := DefaultConfig()
				if cfg.Log.Level != def.Log.Level {
					t.Errorf("Level = %q, want %q", cfg.Log.Level, def.Log.Level)
				}
				if cfg.Behavior.ReconnectMinMS != def.Behavior.ReconnectMinMS {
					t.Errorf("ReconnectMinMS = %d, want %d", cfg.Behavior.ReconnectMinMS, def.Behavior.ReconnectMinMS)
				}
			},
		},
		{
			name: "user overrides applied",
			config: `
version = 1

[discord]
app_id = "custom-app-id"
instance_id = "2"

[behavior]
reconnect_min_ms = 250
reconnect_max_ms = 30000
`,
			check: func(t *testing.T, cfg *Config) {
				t.Helper()
				if cfg.Discord.AppID != "custom-app-id" {
					t.Errorf("AppID = %q, want %q", cfg.Discord.AppID, "custom-app-id")
				}
				if cfg.Discord.InstanceID != "2" {
					t.Errorf("InstanceID = %q, want %q", cfg.Discord.InstanceID, "2")
				}
				if cfg.Behavior.ReconnectMinMS != 250 {
					t.Errorf("ReconnectMinMS = %d, want 250", cfg.Behavior.ReconnectMinMS)
				}
				if cfg.Behavior.ReconnectMaxMS != 30000 {
					t.Errorf("ReconnectMaxMS = %d, want 30000", cfg.Behavior.ReconnectMaxMS)
				}
			},
		},
		{
			name: "partial override preserves other defaults",
			config: `
version = 1

[discord]
app_id = "123"

[log]
level = "debug"
`,
			check: func(t *testing.T, cfg *Config) {
				t.Helper()
				if cfg.Log.Level != "debug" {
					t.Errorf("Level = %q, want %q", cfg.Log.Level, "debug")
				}
				def := DefaultConfig()
				if cfg.Log.MaxSizeMB != def.Log.MaxSizeMB {
					t.Errorf("MaxSizeMB = %d, want default %d", cfg.Log.MaxSizeMB, def.Log.MaxSizeMB)
				}
			},
		},
		{
			name:   "missing file returns defaults",
			noFile: true,
			check: func(t *testing.T, cfg *Config) {
				t.Helper()
				def := DefaultConfig()
				if cfg.Version != def.Version {
					t.Errorf("Version = %d, want %d", cfg.Version, def.Version)
				}
			},
		},
		{
			name:    "malformed TOML returns error",
			config:  "this is not valid toml [[[",
			wantErr: true,
		},
		{
			name: "missing app_id fails validation",
			config: `
version = 1
`,
			wantErr: true,
		},
		{
			name: "subscriptions list parsed",
			config: `
version = 1

[discord]
app_id = "123"

subscriptions = ["activity", "lobby"]
`,
			check: func(t *testing.T, cfg *Config) {
				t.Helper()
				if len(cfg.Subscriptions) != 2 {
					t.Fatalf("Subscriptions = %v, want 2 entries", cfg.Subscriptions)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if !tt.noFile {
				writeConfig(t, dir, tt.config)
			}

			cfg, err := Load(dir)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Load: %v", err)
				return
			}
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

// ///////////////////////////////////////////////
// Migration integration
// ///////////////////////////////////////////////

func TestLoad_Migration(t *testing.T) {
	tests := []struct {
		name        string
		config      string
		wantVersion int
	}{
		{
			name: "missing version treated as current",
			config: `
[discord]
app_id = "test"
`, // version 0 (missing) -- should be normalized to 1
			wantVersion: 1,
		},
		{
			name: "skips migration when current",
			config: `
version = 1
[discord]
app_id = "test"
`,
			wantVersion: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tt.config)

			cfg, err := Load(dir)
			if err != nil {
				t.Fatalf("Load: %v", err)
				return
			}
			if cfg.Version != tt.wantVersion {
				t.Errorf("Version = %d, want %d", cfg.Version, tt.wantVersion)
			}
		})
	}
}

// ///////////////////////////////////////////////
// PeekVersion
// ///////////////////////////////////////////////

func TestPeekVersion(t *testing.T) {
	tests := []struct {
		name string
		data string
		want int
	}{
		{
			name: "reads version from TOML",
			data: "version = 3\n[discord]\napp_id = \"test\"\n",
			want: 3,
		},
		{
			name: "missing version returns 1",
			data: "[discord]\napp_id = \"test\"\n",
			want: 1, // normalized from 0
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PeekVersion([]byte(tt.data))
			if got != tt.want {
				t.Errorf("PeekVersion() = %d, want %d", got, tt.want)
			}
		})
	}
}

// ///////////////////////////////////////////////
// ExampleConfig
// ///////////////////////////////////////////////

func TestExampleConfig(t *testing.T) {
	cfg := ExampleConfig()
	if cfg == nil {
		t.Fatal("ExampleConfig returned nil")
		return
	}
	if cfg.Version != 1 {
		t.Errorf("Version = %d, want 1", cfg.Version)
	}
	if cfg.Discord.AppID == "" {
		t.Error("expected non-empty app_id")
	}
	var buf strings.Builder
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(cfg); err != nil {
		t.Fatalf("failed to marshal ExampleConfig: %v", err)
	}
}

// ///////////////////////////////////////////////
// ConfigDocs completeness
// ///////////////////////////////////////////////

func TestConfigDocsComplete(t *testing.T) {
	fields := collectTOMLFields(reflect.TypeOf(Config{}), "")
	for _, field := range fields {
		if _, ok := ConfigDocs[field]; !ok {
			t.Errorf("ConfigDocs missing entry for field %q", field)
		}
	}
}

// collectTOMLFields recursively walks a struct type and returns the
// dot-separated TOML key path for every tagged field. Used by
// TestConfigDocsComplete to verify that [ConfigDocs] covers all fields.
func collectTOMLFields(typ reflect.Type, prefix string) []string {
	var fields []string
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		tag := f.Tag.Get("toml")
		if tag == "" || tag == "-" {
			continue
		}
		if idx := strings.Index(tag, ","); idx != -1 {
			tag = tag[:idx]
		}
		path := tag
		if prefix != "" {
			path = prefix + "." + tag
		}
		if f.Type.Kind() == reflect.Struct {
			fields = append(fields, collectTOMLFields(f.Type, path)...)
		} else {
			fields = append(fields, path)
		}
	}
	return fields
}

// ///////////////////////////////////////////////
// Marshal field order
// ///////////////////////////////////////////////

func TestConfigMarshalFieldOrder(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Discord.AppID = "123"
	var buf strings.Builder
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(cfg); err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out := buf.String()

	tests := []struct {
		name   string
		before string
		after  string
	}{
		{
			name:   "version before [discord]",
			before: "version",
			after:  "[discord]",
		},
		{
			name:   "[discord] before [log]",
			before: "[discord]",
			after:  "[log]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bIdx := strings.Index(out, tt.before)
			aIdx := strings.Index(out, tt.after)
			if bIdx < 0 || aIdx < 0 || bIdx > aIdx {
				t.Errorf("expected %q before %q in marshaled output", tt.before, tt.after)
			}
		})
	}
}

// ///////////////////////////////////////////////
// Config.Save round-trip
// ///////////////////////////////////////////////

func TestConfig_Save_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	orig := DefaultConfig()
	orig.Discord.AppID = "round-trip-test"
	orig.Behavior.SendQueueCapacity = 42
	orig.Subscriptions = []string{"activity", "user"}

	if err := orig.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
		return
	}

	loaded := DefaultConfig()
	if err := toml.Unmarshal(data, loaded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
		return
	}

	if loaded.Discord.AppID != orig.Discord.AppID {
		t.Errorf("AppID = %q, want %q", loaded.Discord.AppID, orig.Discord.AppID)
	}
	if loaded.Behavior.SendQueueCapacity != orig.Behavior.SendQueueCapacity {
		t.Errorf("SendQueueCapacity = %d, want %d",
			loaded.Behavior.SendQueueCapacity, orig.Behavior.SendQueueCapacity)
	}
	if strings.Join(loaded.Subscriptions, ",") != strings.Join(orig.Subscriptions, ",") {
		t.Errorf("Subscriptions = %v, want %v", loaded.Subscriptions, orig.Subscriptions)
	}
}

// ///////////////////////////////////////////////
// Validate
// ///////////////////////////////////////////////

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(cfg *Config)
		wantErr bool
	}{
		{
			name:    "default config fails (empty app_id)",
			setup:   func(cfg *Config) {},
			wantErr: true,
		},
		{
			name:    "valid app_id passes",
			setup:   func(cfg *Config) { cfg.Discord.AppID = "123" },
			wantErr: false,
		},
		{
			name: "invalid log.level",
			setup: func(cfg *Config) {
				cfg.Discord.AppID = "123"
				cfg.Log.Level = "verbose"
			},
			wantErr: true,
		},
		{
			name: "reconnect_min_ms = 0",
			setup: func(cfg *Config) {
				cfg.Discord.AppID = "123"
				cfg.Behavior.ReconnectMinMS = 0
			},
			wantErr: true,
		},
		{
			name: "reconnect_max_ms below reconnect_min_ms",
			setup: func(cfg *Config) {
				cfg.Discord.AppID = "123"
				cfg.Behavior.ReconnectMinMS = 1000
				cfg.Behavior.ReconnectMaxMS = 500
			},
			wantErr: true,
		},
		{
			name: "send_queue_capacity = 0",
			setup: func(cfg *Config) {
				cfg.Discord.AppID = "123"
				cfg.Behavior.SendQueueCapacity = 0
			},
			wantErr: true,
		},
		{
			name: "invalid subscription entry",
			setup: func(cfg *Config) {
				cfg.Discord.AppID = "123"
				cfg.Subscriptions = []string{"bogus"}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.setup(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Validate_EnumPositive(t *testing.T) {
	tests := []struct {
		name  string
		setup func(cfg *Config)
	}{
		{name: "log.level debug", setup: func(cfg *Config) { cfg.Log.Level = "debug" }},
		{name: "log.level warn", setup: func(cfg *Config) { cfg.Log.Level = "warn" }},
		{name: "subscriptions voice", setup: func(cfg *Config) { cfg.Subscriptions = []string{"voice"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Discord.AppID = "123"
			tt.setup(cfg)
			if err := cfg.Validate(); err != nil {
				t.Errorf("Validate() returned error for valid enum: %v", err)
			}
		})
	}
}

// ///////////////////////////////////////////////
// Helpers
// ///////////////////////////////////////////////

// writeConfig writes a TOML config string to config.toml in dir for use
// by [Load] in test cases.
func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write test config: %v", err)
	}
}
