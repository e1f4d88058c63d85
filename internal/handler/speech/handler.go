package speech

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	speechmodel "github.com/ryuujih/voice-diary-hackathon/internal/model/speech"
	speechsvc "github.com/ryuujih/voice-diary-hackathon/internal/service/speech"
	"github.com/ryuujih/voice-diary-hackathon/pkg/utils"
)

// maxUploadBytes bounds the multipart form kept in memory.
const maxUploadBytes = 32 << 20

// Handler 音声サービスのHTTPハンドラ
type Handler struct {
	svc    speechsvc.Transcriber
	logger *zap.Logger
}

// New 音声ハンドラを生成する
func New(svc speechsvc.Transcriber, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// RegisterRoutes 音声関連のルートを登録する
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/speech", func(speechRouter chi.Router) {
		speechRouter.Post("/transcribe", h.handleTranscribe)
	})
}

func (h *Handler) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "failed to parse multipart form: "+err.Error())
		return
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "audio file is required")
		return
	}
	defer file.Close()

	// アップロードは一時ファイルに書き出し、どの経路でも必ず削除する。
	tmp, err := os.CreateTemp("", "diary-audio-*"+filepath.Ext(header.Filename))
	if err != nil {
		h.logger.Error("failed to create temp audio file", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	defer func() {
		tmp.Close()
		if removeErr := os.Remove(tmp.Name()); removeErr != nil {
			h.logger.Warn("failed to remove temp audio file",
				zap.String("path", tmp.Name()), zap.Error(removeErr))
		}
	}()

	size, err := io.Copy(tmp, file)
	if err != nil {
		h.logger.Error("failed to spool audio upload", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		h.logger.Error("failed to rewind temp audio file", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	req := &speechmodel.TranscribeRequest{
		SessionID: strings.TrimSpace(r.FormValue("sessionId")),
		Audio:     tmp,
		Size:      size,
		Filename:  header.Filename,
		Language:  strings.TrimSpace(r.FormValue("language")),
	}

	result, err := h.svc.Transcribe(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, speechsvc.ErrAudioTooShort):
			utils.RespondError(w, http.StatusBadRequest, "audio too short")
		case errors.Is(err, speechsvc.ErrAudioTooLong):
			utils.RespondError(w, http.StatusBadRequest, "audio too long")
		default:
			h.logger.Error("transcription error", zap.Error(err))
			utils.RespondError(w, http.StatusInternalServerError, "speech recognition failed")
		}
		return
	}

	utils.RespondJSON(w, http.StatusOK, result)
}
