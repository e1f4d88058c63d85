package speech

import (
	"context"
	"errors"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.uber.org/zap"

	"github.com/ryuujih/voice-diary-hackathon/internal/config"
	"github.com/ryuujih/voice-diary-hackathon/internal/model/diary"
	speechmodel "github.com/ryuujih/voice-diary-hackathon/internal/model/speech"
)

// Audio size bounds enforced before any upload leaves the process.
const (
	MinAudioBytes = 1 << 10   // 1 KiB
	MaxAudioBytes = 500 << 10 // 500 KiB
)

var (
	ErrAudioTooShort = errors.New("audio too short")
	ErrAudioTooLong  = errors.New("audio too long")
)

const (
	liveConfidence = 0.95
	demoConfidence = 0.9
)

// Canned transcripts returned in demo mode, picked by payload length so
// repeated uploads of the same file transcribe identically.
var demoTranscripts = []string{
	"今日は朝から天気が良くて、散歩に出かけました。",
	"仕事が忙しかったけれど、なんとか一段落つきました。",
	"友達とカフェでゆっくり話せて、楽しい時間でした。",
	"今日は少し疲れたので、早めに休もうと思います。",
}

// Transcriber is the effectful boundary to the speech-to-text provider.
type Transcriber interface {
	Transcribe(ctx context.Context, req *speechmodel.TranscribeRequest) (*speechmodel.TranscribeResult, error)
}

// Service transcribes uploaded audio via the Whisper API, with a
// deterministic demo path when no credentials are configured.
type Service struct {
	client   openai.Client
	enabled  bool
	model    string
	language string
	timeout  time.Duration
	logger   *zap.Logger
}

// NewService builds the transcription service from config.
func NewService(cfg config.SpeechConfig, logger *zap.Logger) *Service {
	svc := &Service{
		enabled:  cfg.Enabled,
		model:    cfg.Model,
		language: cfg.Language,
		timeout:  cfg.Timeout,
		logger:   logger,
	}
	if cfg.Enabled {
		svc.client = openai.NewClient(option.WithAPIKey(cfg.APIKey))
	}
	return svc
}

// Enabled reports whether the live provider is configured.
func (s *Service) Enabled() bool {
	return s != nil && s.enabled
}

// Transcribe validates the audio size, then either calls the provider or
// serves the demo transcript. Provider failure is recovered into the
// deterministic transcript tagged as fallback, never surfaced raw.
func (s *Service) Transcribe(ctx context.Context, req *speechmodel.TranscribeRequest) (*speechmodel.TranscribeResult, error) {
	if req.Size < MinAudioBytes {
		return nil, ErrAudioTooShort
	}
	if req.Size > MaxAudioBytes {
		return nil, ErrAudioTooLong
	}

	if !s.enabled {
		return s.demoResult(req, diary.ModeDemo), nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	language := req.Language
	if language == "" {
		language = s.language
	}

	transcription, err := s.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		Model:    openai.AudioModel(s.model),
		File:     openai.File(req.Audio, req.Filename, "application/octet-stream"),
		Language: openai.String(language),
	})
	if err != nil {
		s.logger.Warn("transcription failed, serving fallback transcript",
			zap.String("sessionId", req.SessionID), zap.Error(err))
		return s.demoResult(req, diary.ModeFallback), nil
	}

	return &speechmodel.TranscribeResult{
		SessionID:  req.SessionID,
		Text:       transcription.Text,
		Confidence: liveConfidence,
		Mode:       diary.ModeLive,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

func (s *Service) demoResult(req *speechmodel.TranscribeRequest, mode diary.Mode) *speechmodel.TranscribeResult {
	idx := int(req.Size) % len(demoTranscripts)
	return &speechmodel.TranscribeResult{
		SessionID:  req.SessionID,
		Text:       demoTranscripts[idx],
		Confidence: demoConfidence,
		Mode:       mode,
		CreatedAt:  time.Now().UTC(),
	}
}
