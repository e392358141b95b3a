package discordipc

import (
	"testing"
	"time"

	"tools.zach/dev/discordipc/internal/config"
)

func TestParseSubscriptions(t *testing.T) {
	got := ParseSubscriptions([]string{"activity", "LOBBY", "unknown"})
	want := SubActivity | SubLobby
	if got != want {
		t.Fatalf("got %b, want %b", got, want)
	}
}

func TestParseSubscriptions_Empty(t *testing.T) {
	if got := ParseSubscriptions(nil); got != 0 {
		t.Fatalf("got %b, want 0", got)
	}
}

func TestNewClientFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Discord.AppID = "12345"
	cfg.Discord.InstanceID = "2"
	cfg.Subscriptions = []string{"activity", "user"}
	cfg.Behavior.ReconnectMinMS = 250
	cfg.Behavior.ReconnectMaxMS = 30_000
	cfg.Behavior.SendQueueCapacity = 50

	c := NewClientFromConfig(cfg)

	if c.appID != "12345" {
		t.Fatalf("appID = %q, want 12345", c.appID)
	}
	if c.instanceID != "2" {
		t.Fatalf("instanceID = %q, want 2", c.instanceID)
	}
	if c.subs != SubActivity|SubUser {
		t.Fatalf("subs = %b, want SubActivity|SubUser", c.subs)
	}
	if c.reconnectSeed != 250*time.Millisecond || c.reconnectMax != 30*time.Second {
		t.Fatalf("reconnect policy = (%v, %v), want (250ms, 30s)", c.reconnectSeed, c.reconnectMax)
	}
	if c.sendQueueCap != 50 {
		t.Fatalf("sendQueueCap = %d, want 50", c.sendQueueCap)
	}
}

func TestNewClientFromConfig_NoInstanceID(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Discord.AppID = "1"

	c := NewClientFromConfig(cfg)
	if c.instanceID != "" {
		t.Fatalf("instanceID = %q, want empty", c.instanceID)
	}
}

func TestDurationOrDefault(t *testing.T) {
	if got := durationOrDefault(0, 500*time.Millisecond); got != 500*time.Millisecond {
		t.Fatalf("got %v, want fallback 500ms", got)
	}
	if got := durationOrDefault(250, 500*time.Millisecond); got != 250*time.Millisecond {
		t.Fatalf("got %v, want 250ms", got)
	}
}
