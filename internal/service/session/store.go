package session

import (
	"context"
	"errors"

	"github.com/ryuujih/voice-diary-hackathon/internal/model/diary"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionCompleted = errors.New("session already completed")
)

// Store is the single source of truth for in-progress conversations.
// Implementations must serialize mutations per session so concurrent
// requests for the same id cannot interleave a read-modify-write.
type Store interface {
	Create(ctx context.Context) (diary.Session, error)
	Get(ctx context.Context, sessionID string) (diary.Session, error)
	Append(ctx context.Context, sessionID string, message diary.Message) (diary.Session, error)
	Complete(ctx context.Context, sessionID, summary string, mode diary.Mode) (diary.Session, error)
	List(ctx context.Context) ([]diary.Session, error)
}
