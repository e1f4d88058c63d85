package interview

import (
	"strings"

	"github.com/ryuujih/voice-diary-hackathon/internal/model/diary"
)

const summarySystem = "あなたは音声日記アプリの書き手です。以下の会話からユーザー本人の一日を日記としてまとめてください。\n" +
	"守ること:\n" +
	"- ユーザーが明示的に話した事実だけを使う\n" +
	"- 聞き手（アシスタント）の質問は日記に含めない\n" +
	"- 話していない日時・感情の解釈を付け足さない\n" +
	"- 段落を分けず、ひと続きの自然な文章にする\n" +
	"- 話題が出た順番のまま時系列を保つ"

// demoSummaryLimit is how many runes of the user's own words the demo
// narrative embeds.
const demoSummaryLimit = 50

// SummaryInstruction builds the live-path instruction for turning a
// session's messages into diary prose.
func SummaryInstruction(messages []diary.Message) Instruction {
	var lines []string
	for _, msg := range messages {
		if msg.Role == diary.RoleUser {
			lines = append(lines, msg.Content)
		}
	}

	return Instruction{
		System: summarySystem,
		Query:  "今日話した内容:\n" + strings.Join(lines, "\n"),
		Phase:  PhaseWrapUp,
	}
}

// DemoSummary deterministically synthesizes a diary from the user's own
// messages; used when no generation model is configured.
func DemoSummary(messages []diary.Message) string {
	var parts []string
	for _, msg := range messages {
		if msg.Role == diary.RoleUser {
			parts = append(parts, strings.TrimSpace(msg.Content))
		}
	}

	joined := strings.Join(parts, "。")
	if runes := []rune(joined); len(runes) > demoSummaryLimit {
		joined = string(runes[:demoSummaryLimit])
	}
	if joined == "" {
		return RecoverySummary()
	}

	return "今日を振り返ると、" + joined + "……。こうして声に出して話してみると、一日の出来事が少し整理された気がする。"
}

// RecoverySummary is the fully generic narrative used when the generation
// call fails after it was attempted. It draws nothing from the conversation.
func RecoverySummary() string {
	return "今日も一日が終わった。うまく言葉にできないこともあったけれど、こうして声で振り返る時間を持てたことに意味がある気がする。明日もまた、ゆっくり話していきたい。"
}

// TitleInstruction asks the model for a short diary title.
func TitleInstruction(content string) Instruction {
	return Instruction{
		System: "あなたは日記のタイトル付けの名人です。本文の内容を踏まえ、12文字以内の短い日本語タイトルだけを返してください。記号や引用符は付けないこと。",
		Query:  content,
		Phase:  PhaseWrapUp,
	}
}
