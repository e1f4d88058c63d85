package interview

import (
	"fmt"
	"strings"

	"github.com/ryuujih/voice-diary-hackathon/internal/analysis/emotion"
	"github.com/ryuujih/voice-diary-hackathon/internal/analysis/topic"
	"github.com/ryuujih/voice-diary-hackathon/internal/model/diary"
)

// Instruction is the payload handed to the text-generation collaborator.
// It only shapes what is requested; nothing in it is executed locally.
type Instruction struct {
	System  string
	History []diary.Message
	Query   string
	Phase   Phase
	Emotion emotion.Result
}

// historyWindow bounds how much recent context rides along with an
// instruction.
const historyWindow = 7

const systemPreamble = "あなたは音声日記アプリの聞き役インタビュアーです。" +
	"ユーザーが今日の出来事を話しやすいように、短い相づちとひとつだけの質問を返してください。" +
	"回答は2〜3文、話し言葉で簡潔に。"

// Selector builds phase-specific instructions from turn count and history.
type Selector struct{}

// Build selects the interview phase for the turn and assembles the
// instruction: tone guidance from the emotion classification, the phase
// template, and a slice of recent history for the mid-interview phases.
func (Selector) Build(turn int, history []diary.Message, userMessage string) Instruction {
	phase := PhaseFor(turn)
	emo := emotion.Classify(userMessage)
	convCtx := BuildContext(append(append([]diary.Message{}, history...), diary.Message{
		Role:    diary.RoleUser,
		Content: userMessage,
	}))

	inst := Instruction{
		System:  buildSystem(phase, emo, convCtx),
		Query:   userMessage,
		Phase:   phase,
		Emotion: emo,
	}

	switch phase {
	case PhaseDeepen, PhaseEmotionProbe, PhaseBroaden:
		inst.History = windowHistory(history)
	}
	return inst
}

func buildSystem(phase Phase, emo emotion.Result, convCtx Context) string {
	var b strings.Builder
	b.WriteString(systemPreamble)
	b.WriteString("\n口調: ")
	b.WriteString(toneGuidance(emo.Type))

	b.WriteString("\n今回の役割: ")
	switch phase {
	case PhaseOpening:
		b.WriteString("最初の発話を受け止めて、今日どんなことがあったのかを尋ねてください。")
	case PhaseDeepen:
		b.WriteString("直前のやりとりについて、もう少し詳しく掘り下げる質問をしてください。")
	case PhaseEmotionProbe:
		b.WriteString("気持ちを直接は尋ねず、その場の様子や印象を尋ねることで間接的に感情を引き出してください。" +
			"「どう感じましたか」という聞き方は禁止です。")
	case PhaseBroaden:
		b.WriteString("ここまでの話に区切りをつけて、他に話しておきたいことがないか尋ねてください。")
	case PhaseWrapUp:
		b.WriteString("ここまで話してくれたことに感謝を伝え、今日の日記としてまとめることを提案してください。")
	}

	if t := convCtx.LatestTopic(); t != topic.General {
		fmt.Fprintf(&b, "\n直近の話題: %s", t)
	}
	return b.String()
}

func toneGuidance(t emotion.Type) string {
	switch t {
	case emotion.Positive:
		return "明るく、一緒に喜ぶように。"
	case emotion.Negative:
		return "やさしく、寄り添うように。"
	default:
		return "落ち着いた自然な調子で。"
	}
}

func windowHistory(messages []diary.Message) []diary.Message {
	if len(messages) <= historyWindow {
		out := make([]diary.Message, len(messages))
		copy(out, messages)
		return out
	}
	out := make([]diary.Message, historyWindow)
	copy(out, messages[len(messages)-historyWindow:])
	return out
}
