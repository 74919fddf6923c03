package domain

type MediaSettings struct {
	SelectedAudioDevice string `json:"selected_audio_device" mapstructure:"selected_audio_device"`
	SelectedVideoDevice string `json:"selected_video_device" mapstructure:"selected_video_device"`
	Resolution          string `json:"resolution" mapstructure:"resolution"`
	Bandwidth           int    `json:"bandwidth" mapstructure:"bandwidth"`
	Codec               string `json:"codec" mapstructure:"codec"`
	FrameRate           int    `json:"frame_rate" mapstructure:"frame_rate"`
	DevMode             bool   `json:"dev_mode" mapstructure:"dev_mode"`
}

func DefaultMediaSettings() MediaSettings {
	return MediaSettings{
		Resolution: "qvga",
		Bandwidth:  256,
		Codec:      "vp8",
		FrameRate:  20,
		DevMode:    true,
	}
}

// WithDevices returns a copy carrying the given capture devices.
func (s MediaSettings) WithDevices(audio, video string) MediaSettings {
	s.SelectedAudioDevice = audio
	s.SelectedVideoDevice = video
	return s
}

type DeviceConstraint struct {
	DeviceID string `json:"deviceId"`
}

type AdvancedConstraints struct {
	Audio DeviceConstraint `json:"audio"`
	Video DeviceConstraint `json:"video"`
}

// Constraints is what gets re-applied to an active publish.
type Constraints struct {
	FrameRate  int                 `json:"frameRate"`
	Bitrate    int                 `json:"bitrate"`
	Resolution string              `json:"resolution"`
	Advanced   AdvancedConstraints `json:"advancedMediaConstraints"`
}

func (s MediaSettings) Constraints() Constraints {
	return Constraints{
		FrameRate:  s.FrameRate,
		Bitrate:    s.Bandwidth,
		Resolution: s.Resolution,
		Advanced: AdvancedConstraints{
			Audio: DeviceConstraint{DeviceID: s.SelectedAudioDevice},
			Video: DeviceConstraint{DeviceID: s.SelectedVideoDevice},
		},
	}
}
