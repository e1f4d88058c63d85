package stream

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	diaryservice "github.com/ryuujih/voice-diary-hackathon/internal/service/diary"
	"github.com/ryuujih/voice-diary-hackathon/pkg/utils"
)

// StreamService 面談応答をストリーミング生成する業務境界
type StreamService interface {
	EnsureSession(ctx context.Context, sessionID string) error
	StreamMessage(ctx context.Context, sessionID, text string, sink func(chunk string) error) (*diaryservice.MessageResult, error)
}

// Handler SSEで面談応答を配信するHTTPハンドラ
type Handler struct {
	svc    StreamService
	logger *zap.Logger
}

// New ストリームハンドラを生成する
func New(svc StreamService, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// StreamResponse SSEで送るチャンクの形
type StreamResponse struct {
	Event        string `json:"event"`
	Content      string `json:"content,omitempty"`
	SessionID    string `json:"sessionId,omitempty"`
	TurnCount    int    `json:"turnCount,omitempty"`
	CanSummarize bool   `json:"canSummarize,omitempty"`
	Mode         string `json:"mode,omitempty"`
	Finished     bool   `json:"finished,omitempty"`
	Error        string `json:"error,omitempty"`
}

// HandleStreamRequest は1回分の面談応答をSSEで配信する。
// delta イベントで逐次チャンクを流し、message で確定した全文、
// end でターン情報を添えて終了を知らせる。
func (h *Handler) HandleStreamRequest(ctx context.Context, w http.ResponseWriter, sessionID, userMessage string) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return fmt.Errorf("streaming unsupported")
	}

	// 未知のセッションはSSEに切り替える前に通常のエラーで返す。
	if err := h.svc.EnsureSession(ctx, sessionID); err != nil {
		if errors.Is(err, diaryservice.ErrSessionNotFound) {
			utils.RespondError(w, http.StatusBadRequest, "session not found")
		} else {
			utils.RespondError(w, http.StatusInternalServerError, "internal error")
		}
		return err
	}

	utils.SetupSSEHeaders(w)

	h.sendSSE(w, flusher, StreamResponse{
		Event:     "start",
		SessionID: sessionID,
	})

	sink := func(chunk string) error {
		if chunk == "" {
			return nil
		}
		h.sendSSE(w, flusher, StreamResponse{
			Event:     "delta",
			SessionID: sessionID,
			Content:   chunk,
		})
		return nil
	}

	result, err := h.svc.StreamMessage(ctx, sessionID, userMessage, sink)
	if err != nil {
		h.sendSSEError(w, flusher, fmt.Sprintf("failed to generate reply: %v", err))
		return err
	}

	h.sendSSE(w, flusher, StreamResponse{
		Event:     "message",
		SessionID: sessionID,
		Content:   result.Reply,
		Mode:      string(result.Mode),
	})

	h.sendSSE(w, flusher, StreamResponse{
		Event:        "end",
		SessionID:    sessionID,
		TurnCount:    result.TurnCount,
		CanSummarize: result.CanSummarize,
		Finished:     true,
	})

	h.logger.Info("stream completed",
		zap.String("sessionId", sessionID),
		zap.Int("turn", result.TurnCount),
		zap.String("mode", string(result.Mode)))
	return nil
}

func (h *Handler) sendSSE(w http.ResponseWriter, flusher http.Flusher, response StreamResponse) {
	utils.SendSSEChunk(w, flusher, response)
}

func (h *Handler) sendSSEError(w http.ResponseWriter, flusher http.Flusher, errorMsg string) {
	h.sendSSE(w, flusher, StreamResponse{Event: "error", Error: errorMsg})
}
