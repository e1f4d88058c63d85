package diary

import (
	"context"
	"errors"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/ryuujih/voice-diary-hackathon/internal/analysis/title"
	"github.com/ryuujih/voice-diary-hackathon/internal/interview"
	"github.com/ryuujih/voice-diary-hackathon/internal/model/diary"
	"github.com/ryuujih/voice-diary-hackathon/internal/service/ai"
	"github.com/ryuujih/voice-diary-hackathon/internal/service/session"
)

var (
	ErrEmptyMessage = errors.New("message is required")
	ErrEmptyContent = errors.New("content is required")

	// ErrSessionNotFound is re-exported so handlers depend on one package.
	ErrSessionNotFound = session.ErrSessionNotFound
)

// Service drives the interview conversation: it owns turn accounting,
// prompt selection, fallback substitution and the summarize/title flows.
// A nil generator puts every conversational path into demo mode.
type Service struct {
	store     session.Store
	generator ai.Generator
	selector  interview.Selector
	titles    *title.Sanitizer
	logger    *zap.Logger
}

// NewService wires the orchestrator.
func NewService(store session.Store, generator ai.Generator, logger *zap.Logger) *Service {
	return &Service{
		store:     store,
		generator: generator,
		titles:    title.NewSanitizer(),
		logger:    logger,
	}
}

// LiveEnabled reports whether the generation provider is configured.
func (s *Service) LiveEnabled() bool {
	return s.generator != nil
}

// EnsureSession returns ErrSessionNotFound when the id is unknown. Used
// by callers that must reject a bad session before committing to a
// response format.
func (s *Service) EnsureSession(ctx context.Context, sessionID string) error {
	_, err := s.store.Get(ctx, sessionID)
	return err
}

// StartResult is the response to a session start.
type StartResult struct {
	SessionID string `json:"sessionId"`
	Greeting  string `json:"greeting"`
}

// Start provisions a session and records the fixed greeting as the first
// assistant message so later history windows include it.
func (s *Service) Start(ctx context.Context) (*StartResult, error) {
	sess, err := s.store.Create(ctx)
	if err != nil {
		return nil, err
	}

	greeting := interview.Greeting()
	if _, err := s.store.Append(ctx, sess.ID, diary.Message{
		Role:    diary.RoleAssistant,
		Content: greeting,
	}); err != nil {
		return nil, err
	}

	s.logger.Info("session started", zap.String("sessionId", sess.ID))
	return &StartResult{SessionID: sess.ID, Greeting: greeting}, nil
}

// MessageResult is the response to a posted message.
type MessageResult struct {
	Reply        string     `json:"reply"`
	TurnCount    int        `json:"turnCount"`
	CanSummarize bool       `json:"canSummarize"`
	Mode         diary.Mode `json:"mode"`
}

// PostMessage records the user's message, asks the generator for the next
// interview question and records the reply. The user's message is appended
// before the provider call so a failed generation never loses it; failures
// degrade to the canned ladder, tagged fallback.
func (s *Service) PostMessage(ctx context.Context, sessionID, text string) (*MessageResult, error) {
	return s.postMessage(ctx, sessionID, text, nil)
}

// StreamMessage behaves like PostMessage but forwards reply chunks to sink
// as they arrive when the generator supports streaming. Fallback replies
// are delivered to sink as a single chunk.
func (s *Service) StreamMessage(ctx context.Context, sessionID, text string, sink func(chunk string) error) (*MessageResult, error) {
	return s.postMessage(ctx, sessionID, text, sink)
}

func (s *Service) postMessage(ctx context.Context, sessionID, text string, sink func(chunk string) error) (*MessageResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	snapshot, err := s.store.Append(ctx, sessionID, diary.Message{
		Role:    diary.RoleUser,
		Content: text,
	})
	if err != nil {
		return nil, err
	}

	turn := snapshot.TurnCount()
	history := snapshot.Messages[:len(snapshot.Messages)-1]
	inst := s.selector.Build(turn, history, text)

	reply, mode := s.generateReply(ctx, inst, turn, sink)

	if _, err := s.store.Append(ctx, sessionID, diary.Message{
		Role:    diary.RoleAssistant,
		Content: reply,
	}); err != nil {
		s.logger.Warn("failed to record assistant reply",
			zap.String("sessionId", sessionID), zap.Error(err))
	}

	return &MessageResult{
		Reply:        reply,
		TurnCount:    turn,
		CanSummarize: snapshot.CanSummarize(),
		Mode:         mode,
	}, nil
}

func (s *Service) generateReply(ctx context.Context, inst interview.Instruction, turn int, sink func(chunk string) error) (string, diary.Mode) {
	if s.generator == nil {
		reply := interview.FallbackReply(turn, inst.Emotion.Type)
		deliver(sink, reply)
		return reply, diary.ModeDemo
	}

	reply, err := s.invokeGenerator(ctx, inst, sink)
	if err != nil || reply == "" {
		s.logger.Warn("generation failed, serving ladder reply",
			zap.Int("turn", turn), zap.String("phase", string(inst.Phase)), zap.Error(err))
		fallback := interview.FallbackReply(turn, inst.Emotion.Type)
		deliver(sink, fallback)
		return fallback, diary.ModeFallback
	}
	return reply, diary.ModeLive
}

func (s *Service) invokeGenerator(ctx context.Context, inst interview.Instruction, sink func(chunk string) error) (string, error) {
	if sink != nil {
		if streamer, ok := s.generator.(ai.StreamGenerator); ok {
			return streamer.GenerateStream(ctx, inst, sink)
		}
	}
	reply, err := s.generator.Generate(ctx, inst)
	if err != nil {
		return "", err
	}
	deliver(sink, reply)
	return reply, nil
}

func deliver(sink func(chunk string) error, reply string) {
	if sink != nil {
		_ = sink(reply)
	}
}

// SummaryResult is the response to a summarize call.
type SummaryResult struct {
	Diary           string     `json:"diary"`
	TurnCount       int        `json:"turnCount"`
	DurationMinutes int        `json:"durationMinutes"`
	Mode            diary.Mode `json:"mode"`
}

// Summarize assembles the diary entry and completes the session. The
// session always ends up completed with a summary: the live path on
// success, the demo narrative without a provider, and the generic
// recovery narrative when the provider call fails.
func (s *Service) Summarize(ctx context.Context, sessionID string) (*SummaryResult, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if sess.Status == diary.StatusCompleted {
		// Completed at most once; later calls replay the recorded entry.
		return summaryResult(sess), nil
	}

	var summary string
	var mode diary.Mode
	switch {
	case s.generator == nil:
		summary = interview.DemoSummary(sess.Messages)
		mode = diary.ModeDemo
	default:
		generated, genErr := s.generator.Generate(ctx, interview.SummaryInstruction(sess.Messages))
		if genErr != nil || strings.TrimSpace(generated) == "" {
			s.logger.Warn("summary generation failed, serving recovery narrative",
				zap.String("sessionId", sessionID), zap.Error(genErr))
			summary = interview.RecoverySummary()
			mode = diary.ModeFallback
		} else {
			summary = strings.TrimSpace(generated)
			mode = diary.ModeLive
		}
	}

	completed, err := s.store.Complete(ctx, sessionID, summary, mode)
	if err != nil {
		if errors.Is(err, session.ErrSessionCompleted) {
			// Lost the race with a concurrent summarize; replay the winner.
			if again, getErr := s.store.Get(ctx, sessionID); getErr == nil {
				return summaryResult(again), nil
			}
		}
		return nil, err
	}

	s.logger.Info("session summarized",
		zap.String("sessionId", sessionID), zap.String("mode", string(mode)))
	return summaryResult(completed), nil
}

func summaryResult(sess diary.Session) *SummaryResult {
	return &SummaryResult{
		Diary:           sess.Summary,
		TurnCount:       sess.TurnCount(),
		DurationMinutes: durationMinutes(sess),
		Mode:            sess.SummaryMode,
	}
}

func durationMinutes(sess diary.Session) int {
	if sess.EndedAt.IsZero() {
		return 0
	}
	return int(math.Round(sess.EndedAt.Sub(sess.StartedAt).Minutes()))
}

// TitleResult is the response to a title request.
type TitleResult struct {
	Title string     `json:"title"`
	Mode  diary.Mode `json:"mode"`
}

// MakeTitle produces a sanitized title for diary text. Without a
// provider the content itself is trimmed into a title; when generation
// fails the sanitizer's date fallback takes over.
func (s *Service) MakeTitle(ctx context.Context, content string) (*TitleResult, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	if s.generator == nil {
		return &TitleResult{Title: s.titles.Sanitize(content), Mode: diary.ModeDemo}, nil
	}

	raw, err := s.generator.Generate(ctx, interview.TitleInstruction(content))
	if err != nil {
		s.logger.Warn("title generation failed, using date fallback", zap.Error(err))
		return &TitleResult{Title: s.titles.Sanitize(""), Mode: diary.ModeFallback}, nil
	}
	return &TitleResult{Title: s.titles.Sanitize(raw), Mode: diary.ModeLive}, nil
}

// List returns overviews of all known sessions.
func (s *Service) List(ctx context.Context) ([]diary.Overview, error) {
	sessions, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	overviews := make([]diary.Overview, 0, len(sessions))
	for _, sess := range sessions {
		overviews = append(overviews, sess.Overview())
	}
	return overviews, nil
}
