package speech

import (
	"time"

	"github.com/ryuujih/voice-diary-hackathon/internal/model/diary"
)

// TranscribeResult 音声認識レスポンス
type TranscribeResult struct {
	SessionID  string     `json:"sessionId,omitempty"`
	Text       string     `json:"text"`
	Confidence float64    `json:"confidence"`
	Mode       diary.Mode `json:"mode"`
	CreatedAt  time.Time  `json:"createdAt"`
}
