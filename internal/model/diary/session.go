package diary

import "time"

// Status describes the lifecycle of a diary session.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Mode tags which response path produced a result: the live model,
// the deterministic demo scripts, or the error-recovery fallback.
type Mode string

const (
	ModeLive     Mode = "live"
	ModeDemo     Mode = "demo"
	ModeFallback Mode = "fallback"
)

// Session captures one end-to-end interview that produces a single diary entry.
type Session struct {
	ID          string    `json:"id"`
	Status      Status    `json:"status"`
	Messages    []Message `json:"messages"`
	Summary     string    `json:"summary,omitempty"`
	SummaryMode Mode      `json:"summaryMode,omitempty"`
	StartedAt   time.Time `json:"startedAt"`
	EndedAt     time.Time `json:"endedAt,omitempty"`
}

// TurnCount is the number of user-submitted messages; all interview
// branching derives from it.
func (s Session) TurnCount() int {
	count := 0
	for _, msg := range s.Messages {
		if msg.Role == RoleUser {
			count++
		}
	}
	return count
}

// CanSummarize reports whether enough has been said to assemble a diary.
func (s Session) CanSummarize() bool {
	return s.TurnCount() >= 2
}

// HasSummary reports whether a diary text has been recorded.
func (s Session) HasSummary() bool {
	return s.Summary != ""
}

// Overview is the listing shape returned by the sessions endpoint.
type Overview struct {
	ID           string     `json:"id"`
	Status       Status     `json:"status"`
	MessageCount int        `json:"messageCount"`
	StartedAt    time.Time  `json:"startedAt"`
	EndedAt      *time.Time `json:"endedAt,omitempty"`
	HasSummary   bool       `json:"hasSummary"`
}

// Overview derives the listing shape from a session.
func (s Session) Overview() Overview {
	o := Overview{
		ID:           s.ID,
		Status:       s.Status,
		MessageCount: len(s.Messages),
		StartedAt:    s.StartedAt,
		HasSummary:   s.HasSummary(),
	}
	if !s.EndedAt.IsZero() {
		ended := s.EndedAt
		o.EndedAt = &ended
	}
	return o
}
