package title

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// MaxRunes is the upper bound on a sanitized title length.
const MaxRunes = 12

// minRunes below which the date fallback kicks in.
const minRunes = 2

// markupChars are stripped from generated titles wherever they appear.
const markupChars = "*_`#[](){}|~\\"

// Opening and closing quote glyphs, ASCII and Japanese.
const (
	openingQuotes = `"'「『“‘`
	closingQuotes = `"'」』”’`
)

var (
	labelPrefixes = []string{"タイトル：", "タイトル:", "題名：", "題名:", "Title:", "title:"}
	periodRuns    = regexp.MustCompile(`[。．.]{2,}`)
	ellipses      = strings.NewReplacer("…", "", "⋯", "", "・・・", "")
)

// Sanitizer normalizes model-generated titles. The date fallback depends
// on the clock, so Now is injectable for tests.
type Sanitizer struct {
	Now func() time.Time
}

// NewSanitizer returns a sanitizer on the wall clock.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{Now: time.Now}
}

// Sanitize cleans a raw generated title into at most MaxRunes runes with
// no markup, quotes, labels, ellipses or whitespace. When the cleaned
// title is shorter than two runes it substitutes a date-based fallback.
func (s *Sanitizer) Sanitize(raw string) string {
	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(markupChars, r) {
			return -1
		}
		return r
	}, raw)

	cleaned = strings.TrimSpace(cleaned)
	cleaned = strings.TrimLeft(cleaned, openingQuotes)
	cleaned = strings.TrimRight(cleaned, closingQuotes)

	cleaned = strings.TrimSpace(cleaned)
	for _, prefix := range labelPrefixes {
		if strings.HasPrefix(cleaned, prefix) {
			cleaned = cleaned[len(prefix):]
			break
		}
	}

	cleaned = periodRuns.ReplaceAllString(cleaned, "。")
	cleaned = ellipses.Replace(cleaned)

	cleaned = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, cleaned)

	if runes := []rune(cleaned); len(runes) > MaxRunes {
		cleaned = string(runes[:MaxRunes])
	}

	if utf8.RuneCountInString(cleaned) < minRunes {
		return s.fallbackTitle()
	}
	return cleaned
}

func (s *Sanitizer) fallbackTitle() string {
	now := s.Now()
	return fmt.Sprintf("%d月%d日の日記", int(now.Month()), now.Day())
}
