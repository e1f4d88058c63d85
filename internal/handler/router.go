package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	diaryhandler "github.com/ryuujih/voice-diary-hackathon/internal/handler/diary"
	speechhandler "github.com/ryuujih/voice-diary-hackathon/internal/handler/speech"
	"github.com/ryuujih/voice-diary-hackathon/internal/handler/stream"
	middlewarePkg "github.com/ryuujih/voice-diary-hackathon/internal/middleware"
	diaryservice "github.com/ryuujih/voice-diary-hackathon/internal/service/diary"
	speechservice "github.com/ryuujih/voice-diary-hackathon/internal/service/speech"
	"github.com/ryuujih/voice-diary-hackathon/pkg/utils"
)

// NewRouter はHTTPルートと中核サービスを結線する。
func NewRouter(diarySvc *diaryservice.Service, speechSvc *speechservice.Service, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	diaryHandler := diaryhandler.New(diarySvc, logger)
	speechHandler := speechhandler.New(speechSvc, logger)
	streamHandler := stream.New(diarySvc, logger)

	r.Route("/api", func(api chi.Router) {
		diaryHandler.RegisterRoutes(api)
		speechHandler.RegisterRoutes(api)

		// ストリーミング版の発話エンドポイント。応答をSSEで逐次配信する。
		api.Get("/stream/{sessionID}", func(w http.ResponseWriter, r *http.Request) {
			sessionID := chi.URLParam(r, "sessionID")
			userMessage := r.URL.Query().Get("message")
			if userMessage == "" {
				utils.RespondError(w, http.StatusBadRequest, "message query parameter is required")
				return
			}

			if err := streamHandler.HandleStreamRequest(r.Context(), w, sessionID, userMessage); err != nil {
				logger.Error("stream request failed",
					zap.String("sessionId", sessionID), zap.Error(err))
			}
		})

		api.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			utils.RespondJSON(w, http.StatusOK, map[string]any{
				"status": "ok",
				"ai":     modeLabel(diarySvc.LiveEnabled()),
				"speech": modeLabel(speechSvc.Enabled()),
			})
		})
	})

	return r
}

func modeLabel(live bool) string {
	if live {
		return "live"
	}
	return "demo"
}
