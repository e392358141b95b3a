package discordipc

import "sync"

// VoiceState holds the single latest snapshot of the local user's voice
// settings (§4.9). Unlike the other projections, Discord does not dispatch
// a VOICE_SETTINGS_UPDATE event, so this is updated directly from the
// responses of [Client.SetVoiceSettings] rather than from a wheel spoke.
type VoiceState struct {
	mu       sync.RWMutex
	settings *VoiceSettings
}

// NewVoiceState creates an empty voice projection.
func NewVoiceState() *VoiceState {
	return &VoiceState{}
}

// Update records the latest known voice settings.
func (s *VoiceState) Update(settings VoiceSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = &settings
}

// Current returns the latest known voice settings, if any have been
// observed yet.
func (s *VoiceState) Current() (VoiceSettings, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.settings == nil {
		return VoiceSettings{}, false
	}
	return *s.settings, true
}

// SetVoiceSettingsTracked calls [Client.SetVoiceSettings] and records the
// resulting settings into s.
func (s *VoiceState) SetVoiceSettingsTracked(c *Client, settings VoiceSettings) (*VoiceSettings, error) {
	resp, err := c.SetVoiceSettings(settings)
	if err != nil {
		return nil, err
	}
	s.Update(*resp)
	return resp, nil
}
