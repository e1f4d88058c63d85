package ai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"go.uber.org/zap"

	"github.com/ryuujih/voice-diary-hackathon/internal/config"
	"github.com/ryuujih/voice-diary-hackathon/internal/interview"
	"github.com/ryuujih/voice-diary-hackathon/internal/model/diary"
)

// Generator is the effectful boundary to the text-generation provider.
// A nil Generator means demo mode.
type Generator interface {
	Generate(ctx context.Context, inst interview.Instruction) (string, error)
}

// StreamGenerator is implemented by generators that can deliver a reply
// incrementally. sink receives each chunk; the full reply is returned.
type StreamGenerator interface {
	GenerateStream(ctx context.Context, inst interview.Instruction, sink func(chunk string) error) (string, error)
}

// Service runs instructions through a compiled eino chain.
type Service struct {
	chain   compose.Runnable[map[string]any, *schema.Message]
	timeout time.Duration
	logger  *zap.Logger
}

// NewService compiles the prompt chain against the configured chat model.
func NewService(ctx context.Context, cfg config.AIConfig, logger *zap.Logger) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Service{chain: runnable, timeout: timeout, logger: logger}, nil
}

// Generate runs an instruction and returns the model's reply.
func (s *Service) Generate(ctx context.Context, inst interview.Instruction) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	response, err := s.chain.Invoke(ctx, chainInput(inst))
	if err != nil {
		return "", fmt.Errorf("failed to run generation chain: %w", err)
	}

	s.logger.Debug("generated response",
		zap.String("phase", string(inst.Phase)),
		zap.Int("length", len(response.Content)))
	return strings.TrimSpace(response.Content), nil
}

// GenerateStream streams the reply chunk by chunk through sink and
// returns the concatenated content.
func (s *Service) GenerateStream(ctx context.Context, inst interview.Instruction, sink func(chunk string) error) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	stream, err := s.chain.Stream(ctx, chainInput(inst))
	if err != nil {
		return "", fmt.Errorf("failed to open generation stream: %w", err)
	}
	defer stream.Close()

	chunks := make([]*schema.Message, 0, 8)
	for {
		chunk, recvErr := stream.Recv()
		if errors.Is(recvErr, io.EOF) {
			break
		}
		if recvErr != nil {
			return "", recvErr
		}
		if chunk == nil {
			continue
		}

		chunks = append(chunks, chunk)
		if chunk.Content != "" && sink != nil {
			if err := sink(chunk.Content); err != nil {
				return "", err
			}
		}
	}

	response, err := schema.ConcatMessages(chunks)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(response.Content), nil
}

func chainInput(inst interview.Instruction) map[string]any {
	return map[string]any{
		"system":  inst.System,
		"history": historyMessages(inst.History),
		"query":   inst.Query,
	}
}

func historyMessages(messages []diary.Message) []*schema.Message {
	if len(messages) == 0 {
		return nil
	}

	history := make([]*schema.Message, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case diary.RoleUser:
			history = append(history, schema.UserMessage(msg.Content))
		case diary.RoleAssistant:
			history = append(history, schema.AssistantMessage(msg.Content, nil))
		}
	}
	return history
}
