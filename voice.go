package discordipc

// VoiceInputMode selects between push-to-talk and voice activity detection.
type VoiceInputMode struct {
	Type     string `json:"type"` // "PUSH_TO_TALK" | "VOICE_ACTIVITY"
	Shortcut string `json:"shortcut,omitempty"`
}

// VoiceDevice is a single input/output audio device.
type VoiceDevice struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// VoiceIO describes one side (input or output) of the local voice setup.
type VoiceIO struct {
	DeviceID string  `json:"device_id,omitempty"`
	Volume   float64 `json:"volume,omitempty"`
	AvailableDevices []VoiceDevice `json:"available_devices,omitempty"`
}

// VoiceSettings is the local user's overall voice configuration.
type VoiceSettings struct {
	Input               VoiceIO        `json:"input"`
	Output              VoiceIO        `json:"output"`
	Mode                VoiceInputMode `json:"mode"`
	AutomaticGainControl bool          `json:"automatic_gain_control"`
	EchoCancellation     bool          `json:"echo_cancellation"`
	NoiseSuppression     bool          `json:"noise_suppression"`
	QOS                  bool          `json:"qos"`
	SilenceWarning       bool          `json:"silence_warning"`
	Deaf                 bool          `json:"deaf"`
	Mute                 bool          `json:"mute"`
}

// SetVoiceSettings applies the local user's voice configuration.
func (c *Client) SetVoiceSettings(settings VoiceSettings) (*VoiceSettings, error) {
	var resp VoiceSettings
	if err := c.call(CmdSetVoiceSettings, settings, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UserVoiceSettings is a per-user voice override (mute/volume/pan) within a
// lobby voice channel.
type UserVoiceSettings struct {
	UserID string   `json:"user_id"`
	Pan    *VoicePan `json:"pan,omitempty"`
	Volume *float64  `json:"volume,omitempty"`
	Mute   *bool     `json:"mute,omitempty"`
}

// VoicePan is a stereo pan setting in [0,1] for left/right.
type VoicePan struct {
	Left  float64 `json:"left"`
	Right float64 `json:"right"`
}

// SetUserVoiceSettings applies a per-user voice override in the current
// lobby voice channel.
func (c *Client) SetUserVoiceSettings(settings UserVoiceSettings) error {
	return c.call(CmdSetUserVoiceSettings, settings, nil)
}
