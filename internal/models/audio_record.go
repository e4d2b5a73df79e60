package models

import "time"

// 사용자별 문장 녹음, (user_id, phrase_id) 당 한 건
type AudioRecord struct {
	UserID    int       `json:"user_id"`
	PhraseID  int       `json:"phrase_id"`
	Audio     []byte    `json:"-"`
	AudioPath string    `json:"audio_path,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasInlineAudio reports whether the payload is stored in the row itself.
func (r *AudioRecord) HasInlineAudio() bool {
	return len(r.Audio) > 0
}
