package interview

import (
	"github.com/ryuujih/voice-diary-hackathon/internal/analysis/emotion"
	"github.com/ryuujih/voice-diary-hackathon/internal/analysis/topic"
	"github.com/ryuujih/voice-diary-hackathon/internal/model/diary"
)

// contextWindow is the number of recent user messages a Context covers.
const contextWindow = 4

// Context is the rolling view of a conversation: the most recent topics
// and emotions, oldest first.
type Context struct {
	Topics    []string
	Emotions  []emotion.Result
	FlowState string
}

// BuildContext derives the rolling context from a session's history.
func BuildContext(messages []diary.Message) Context {
	ctx := Context{FlowState: "continuing"}

	var userMessages []diary.Message
	for _, msg := range messages {
		if msg.Role == diary.RoleUser {
			userMessages = append(userMessages, msg)
		}
	}
	if len(userMessages) > contextWindow {
		userMessages = userMessages[len(userMessages)-contextWindow:]
	}

	for _, msg := range userMessages {
		ctx.Topics = append(ctx.Topics, topic.Extract(msg.Content))
		ctx.Emotions = append(ctx.Emotions, emotion.Classify(msg.Content))
	}
	return ctx
}

// LatestTopic returns the most recent topic, or the general sentinel when
// no user message has been seen yet.
func (c Context) LatestTopic() string {
	if len(c.Topics) == 0 {
		return topic.General
	}
	return c.Topics[len(c.Topics)-1]
}
