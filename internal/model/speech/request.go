package speech

import "io"

// TranscribeRequest 音声認識リクエスト
type TranscribeRequest struct {
	SessionID string    `json:"sessionId"`
	Audio     io.Reader `json:"-"`
	Size      int64     `json:"size"`
	Filename  string    `json:"filename"`
	Language  string    `json:"language"` // ja, en, etc.
}
