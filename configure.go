package discordipc

import (
	"strings"
	"time"

	"tools.zach/dev/discordipc/internal/config"
)

// subscriptionNames maps config.toml's subscription class names onto their
// Subscriptions bitflag.
var subscriptionNames = map[string]Subscriptions{
	"activity":      SubActivity,
	"lobby":         SubLobby,
	"user":          SubUser,
	"overlay":       SubOverlay,
	"relationships": SubRelationships,
	"voice":         SubVoice,
}

// ParseSubscriptions turns config.toml's ["activity", "lobby", ...] list
// into the corresponding Subscriptions bitflags, skipping unknown entries.
func ParseSubscriptions(names []string) Subscriptions {
	var subs Subscriptions
	for _, n := range names {
		if bit, ok := subscriptionNames[strings.ToLower(n)]; ok {
			subs |= bit
		}
	}
	return subs
}

// NewClientFromConfig builds a Client using the connection, reconnect, and
// subscription settings loaded from a config.toml file, letting callers
// drive [NewClient] from [config.Load] instead of hardcoding [Option]s.
func NewClientFromConfig(cfg *config.Config, opts ...Option) *Client {
	base := []Option{
		WithSubscriptions(ParseSubscriptions(cfg.Subscriptions)),
		WithReconnectPolicy(
			durationOrDefault(cfg.Behavior.ReconnectMinMS, 500*time.Millisecond),
			durationOrDefault(cfg.Behavior.ReconnectMaxMS, 60*time.Second),
		),
		WithSendQueueCapacity(cfg.Behavior.SendQueueCapacity),
	}
	if cfg.Discord.InstanceID != "" {
		base = append(base, WithInstanceID(cfg.Discord.InstanceID))
	}
	return NewClient(cfg.Discord.AppID, append(base, opts...)...)
}

func durationOrDefault(ms int, fallback time.Duration) time.Duration {
	if ms <= 0 {
		return fallback
	}
	return time.Duration(ms) * time.Millisecond
}
