package diary

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	diarymodel "github.com/ryuujih/voice-diary-hackathon/internal/model/diary"
	diaryservice "github.com/ryuujih/voice-diary-hackathon/internal/service/diary"
	"github.com/ryuujih/voice-diary-hackathon/pkg/utils"
)

// DiaryService 日記業務を抽象化し、テストでの差し替えを可能にする
type DiaryService interface {
	Start(ctx context.Context) (*diaryservice.StartResult, error)
	PostMessage(ctx context.Context, sessionID, text string) (*diaryservice.MessageResult, error)
	Summarize(ctx context.Context, sessionID string) (*diaryservice.SummaryResult, error)
	MakeTitle(ctx context.Context, content string) (*diaryservice.TitleResult, error)
	List(ctx context.Context) ([]diarymodel.Overview, error)
}

// Handler 日記サービスのHTTPハンドラ
type Handler struct {
	svc    DiaryService
	logger *zap.Logger
}

// New 日記ハンドラを生成する
func New(svc DiaryService, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// RegisterRoutes 日記関連のルートを登録する
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/session", h.handleStartSession)
	r.Post("/messages", h.handlePostMessage)
	r.Post("/summary", h.handleSummarize)
	r.Post("/title", h.handleMakeTitle)
	r.Get("/sessions", h.handleListSessions)
}

func (h *Handler) handleStartSession(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.Start(r.Context())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, result)
}

func (h *Handler) handlePostMessage(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SessionID string `json:"sessionId"`
		Message   string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.SessionID == "" {
		utils.RespondError(w, http.StatusBadRequest, "sessionId is required")
		return
	}

	result, err := h.svc.PostMessage(r.Context(), payload.SessionID, payload.Message)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) handleSummarize(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SessionID string `json:"sessionId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.SessionID == "" {
		utils.RespondError(w, http.StatusBadRequest, "sessionId is required")
		return
	}

	result, err := h.svc.Summarize(r.Context(), payload.SessionID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) handleMakeTitle(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.MakeTitle(r.Context(), payload.Content)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) handleListSessions(w http.ResponseWriter, r *http.Request) {
	overviews, err := h.svc.List(r.Context())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, overviews)
}

// respondServiceError はサービス層のエラーをHTTPステータスへ対応付ける。
// 会話系の失敗はサービス層でフォールバック済みなので、ここに届くのは
// 入力エラーか想定外の内部エラーだけになる。
func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, diaryservice.ErrSessionNotFound):
		utils.RespondError(w, http.StatusBadRequest, "session not found")
	case errors.Is(err, diaryservice.ErrEmptyMessage):
		utils.RespondError(w, http.StatusBadRequest, "message is required")
	case errors.Is(err, diaryservice.ErrEmptyContent):
		utils.RespondError(w, http.StatusBadRequest, "content is required")
	default:
		h.logger.Error("unexpected handler error", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "internal error")
	}
}
