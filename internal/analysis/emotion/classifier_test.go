package emotion

import "testing"

func TestClassifyPositiveKeyword(t *testing.T) {
	result := Classify("今日は楽しかった")
	if result.Type != Positive {
		t.Fatalf("expected positive, got %s", result.Type)
	}
	if result.Confidence != 0.8 {
		t.Fatalf("expected confidence 0.8, got %f", result.Confidence)
	}
}

func TestClassifyNegativeKeyword(t *testing.T) {
	result := Classify("仕事で疲れた一日だった")
	if result.Type != Negative {
		t.Fatalf("expected negative, got %s", result.Type)
	}
	if result.Confidence != 0.8 {
		t.Fatalf("expected confidence 0.8, got %f", result.Confidence)
	}
}

func TestClassifyPositiveWinsOverNegative(t *testing.T) {
	// 両方のキーワードを含む場合は優先順位の高い positive を返す。
	result := Classify("疲れたけど楽しかった")
	if result.Type != Positive {
		t.Fatalf("expected positive priority, got %s", result.Type)
	}
}

func TestClassifyNoMatchDefaultsNeutral(t *testing.T) {
	result := Classify("今日は会議があった")
	if result.Type != Neutral {
		t.Fatalf("expected neutral, got %s", result.Type)
	}
	if result.Confidence != 0.5 {
		t.Fatalf("expected confidence 0.5, got %f", result.Confidence)
	}
}

func TestClassifyEnglishCaseInsensitive(t *testing.T) {
	result := Classify("It was GREAT today")
	if result.Type != Positive {
		t.Fatalf("expected positive, got %s", result.Type)
	}
}
