package domain

// LoginInfo holds the values of a join request.
type LoginInfo struct {
	RoomID              RoomID `json:"room_id" validate:"required,roomid"`
	RoomName            string `json:"room_name"`
	DisplayName         string `json:"display_name" validate:"required,max=36"`
	Role                Role   `json:"role" validate:"required"`
	Env                 Env    `json:"env" validate:"required"`
	AudioOnly           bool   `json:"audio_only"`
	VideoOnly           bool   `json:"video_only"`
	SelectedAudioDevice string `json:"selected_audio_device"`
	SelectedVideoDevice string `json:"selected_video_device"`
}

// DisplayRoomName falls back to the product name.
func (l LoginInfo) DisplayRoomName() string {
	if l.RoomName != "" {
		return l.RoomName
	}
	return DefaultRoomName
}

type Token string

type TokenRequest struct {
	RoomID   RoomID `json:"room_id"`
	UserName string `json:"user_name"`
	Env      Env    `json:"env"`
	Role     Role   `json:"role"`
}
