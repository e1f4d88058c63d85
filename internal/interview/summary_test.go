package interview

import (
	"strings"
	"testing"

	"github.com/ryuujih/voice-diary-hackathon/internal/model/diary"
)

func TestSummaryInstructionUsesOnlyUserMessages(t *testing.T) {
	messages := []diary.Message{
		{Role: diary.RoleAssistant, Content: "今日はどんな一日でしたか？"},
		{Role: diary.RoleUser, Content: "朝から仕事が忙しかった"},
		{Role: diary.RoleAssistant, Content: "大変でしたね。"},
		{Role: diary.RoleUser, Content: "夜は友達とご飯に行った"},
	}

	inst := SummaryInstruction(messages)
	if !strings.Contains(inst.Query, "朝から仕事が忙しかった") {
		t.Fatalf("expected user message in query: %q", inst.Query)
	}
	if !strings.Contains(inst.Query, "夜は友達とご飯に行った") {
		t.Fatalf("expected second user message in query: %q", inst.Query)
	}
	if strings.Contains(inst.Query, "どんな一日でしたか") {
		t.Fatalf("assistant question leaked into query: %q", inst.Query)
	}
	if inst.System == "" {
		t.Fatal("expected system prompt")
	}
}

func TestDemoSummaryEmbedsUserWords(t *testing.T) {
	messages := []diary.Message{
		{Role: diary.RoleAssistant, Content: "こんにちは"},
		{Role: diary.RoleUser, Content: "散歩した"},
	}

	summary := DemoSummary(messages)
	if !strings.Contains(summary, "散歩した") {
		t.Fatalf("expected user words in demo summary: %q", summary)
	}
	if !strings.HasPrefix(summary, "今日を振り返ると、") {
		t.Fatalf("unexpected demo summary opening: %q", summary)
	}
}

func TestDemoSummaryTruncatesLongInput(t *testing.T) {
	long := strings.Repeat("あ", 200)
	messages := []diary.Message{{Role: diary.RoleUser, Content: long}}

	summary := DemoSummary(messages)
	embedded := strings.TrimPrefix(summary, "今日を振り返ると、")
	embedded = strings.SplitN(embedded, "……", 2)[0]
	if got := len([]rune(embedded)); got != 50 {
		t.Fatalf("expected 50 embedded runes, got %d", got)
	}
}

func TestDemoSummaryWithoutUserMessages(t *testing.T) {
	summary := DemoSummary([]diary.Message{{Role: diary.RoleAssistant, Content: "こんにちは"}})
	if summary != RecoverySummary() {
		t.Fatalf("expected recovery narrative, got %q", summary)
	}
}

func TestTitleInstructionCarriesContent(t *testing.T) {
	inst := TitleInstruction("今日は友達と出かけた。")
	if inst.Query != "今日は友達と出かけた。" {
		t.Fatalf("unexpected query: %q", inst.Query)
	}
	if !strings.Contains(inst.System, "12文字以内") {
		t.Fatalf("expected length constraint in system prompt: %q", inst.System)
	}
}
