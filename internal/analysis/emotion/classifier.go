package emotion

import "strings"

// Type はユーザー発話から推定した感情カテゴリ。
type Type string

const (
	Positive Type = "positive"
	Negative Type = "negative"
	Neutral  Type = "neutral"
)

// Result carries the classified emotion and a fixed confidence per category.
type Result struct {
	Type       Type    `json:"type"`
	Confidence float64 `json:"confidence"`
}

const (
	matchedConfidence = 0.8
	defaultConfidence = 0.5
)

var positiveKeywords = []string{
	"楽し", "嬉し", "うれし", "幸せ", "最高", "良かった", "よかった", "面白",
	"おもしろ", "わくわく", "すごい", "素敵", "ありがと", "happy", "great", "fun", "good",
}

var negativeKeywords = []string{
	"悲し", "辛い", "つら", "疲れ", "しんど", "嫌", "最悪", "大変", "苦し",
	"不安", "怒", "イライラ", "残念", "落ち込", "sad", "tired", "bad", "angry",
}

var neutralKeywords = []string{
	"普通", "ふつう", "まあまあ", "特に", "いつも通り", "いつもどおり", "変わらない", "okay", "so-so",
}

// Classify maps free text to an emotion category by keyword match.
// Categories are tested in priority order: positive, then negative, then
// neutral. The first category with any keyword contained in the text wins.
func Classify(text string) Result {
	normalized := strings.ToLower(text)

	for _, set := range []struct {
		emotion  Type
		keywords []string
	}{
		{Positive, positiveKeywords},
		{Negative, negativeKeywords},
		{Neutral, neutralKeywords},
	} {
		for _, word := range set.keywords {
			if strings.Contains(normalized, word) {
				return Result{Type: set.emotion, Confidence: matchedConfidence}
			}
		}
	}

	return Result{Type: Neutral, Confidence: defaultConfidence}
}
