package diary

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	diarymodel "github.com/ryuujih/voice-diary-hackathon/internal/model/diary"
	diaryservice "github.com/ryuujih/voice-diary-hackathon/internal/service/diary"
)

type fakeDiaryService struct {
	startResult   *diaryservice.StartResult
	messageResult *diaryservice.MessageResult
	summaryResult *diaryservice.SummaryResult
	titleResult   *diaryservice.TitleResult
	overviews     []diarymodel.Overview
	err           error

	lastSessionID string
	lastMessage   string
	lastContent   string
}

func (f *fakeDiaryService) Start(_ context.Context) (*diaryservice.StartResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.startResult, nil
}

func (f *fakeDiaryService) PostMessage(_ context.Context, sessionID, text string) (*diaryservice.MessageResult, error) {
	f.lastSessionID = sessionID
	f.lastMessage = text
	if f.err != nil {
		return nil, f.err
	}
	return f.messageResult, nil
}

func (f *fakeDiaryService) Summarize(_ context.Context, sessionID string) (*diaryservice.SummaryResult, error) {
	f.lastSessionID = sessionID
	if f.err != nil {
		return nil, f.err
	}
	return f.summaryResult, nil
}

func (f *fakeDiaryService) MakeTitle(_ context.Context, content string) (*diaryservice.TitleResult, error) {
	f.lastContent = content
	if f.err != nil {
		return nil, f.err
	}
	return f.titleResult, nil
}

func (f *fakeDiaryService) List(_ context.Context) ([]diarymodel.Overview, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.overviews, nil
}

func newTestRouter(svc DiaryService) *chi.Mux {
	handler := New(svc, zap.NewNop())
	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func postJSON(t *testing.T, r http.Handler, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Marshal err: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestStartSession(t *testing.T) {
	fake := &fakeDiaryService{startResult: &diaryservice.StartResult{
		SessionID: "session-1",
		Greeting:  "こんにちは！今日の日記を一緒に作りましょう。",
	}}
	r := newTestRouter(fake)

	req := httptest.NewRequest(http.MethodPost, "/session", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("unexpected status: %d", rr.Code)
	}

	var payload diaryservice.StartResult
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("Unmarshal err: %v", err)
	}
	if payload.SessionID != "session-1" {
		t.Fatalf("unexpected sessionId: %q", payload.SessionID)
	}
	if payload.Greeting == "" {
		t.Fatal("expected greeting in response")
	}
}

func TestPostMessage(t *testing.T) {
	fake := &fakeDiaryService{messageResult: &diaryservice.MessageResult{
		Reply:        "それは良かったですね。特に印象に残ったのはどんなことですか？",
		TurnCount:    2,
		CanSummarize: true,
		Mode:         diarymodel.ModeDemo,
	}}
	r := newTestRouter(fake)

	rr := postJSON(t, r, "/messages", map[string]string{
		"sessionId": "session-1",
		"message":   "友達と出かけました",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
	if fake.lastSessionID != "session-1" {
		t.Fatalf("unexpected sessionId passed to service: %q", fake.lastSessionID)
	}
	if fake.lastMessage != "友達と出かけました" {
		t.Fatalf("unexpected message passed to service: %q", fake.lastMessage)
	}

	var payload diaryservice.MessageResult
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("Unmarshal err: %v", err)
	}
	if !payload.CanSummarize {
		t.Fatal("expected canSummarize true")
	}
	if payload.TurnCount != 2 {
		t.Fatalf("unexpected turnCount: %d", payload.TurnCount)
	}
}

func TestPostMessageMissingSessionID(t *testing.T) {
	r := newTestRouter(&fakeDiaryService{})

	rr := postJSON(t, r, "/messages", map[string]string{"message": "こんにちは"})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestPostMessageUnknownSession(t *testing.T) {
	fake := &fakeDiaryService{err: diaryservice.ErrSessionNotFound}
	r := newTestRouter(fake)

	rr := postJSON(t, r, "/messages", map[string]string{
		"sessionId": "missing",
		"message":   "こんにちは",
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown session, got %d", rr.Code)
	}
	if !bytes.Contains(rr.Body.Bytes(), []byte("session not found")) {
		t.Fatalf("unexpected body: %s", rr.Body.String())
	}
}

func TestSummarize(t *testing.T) {
	fake := &fakeDiaryService{summaryResult: &diaryservice.SummaryResult{
		Diary:           "今日を振り返ると、友達と出かけた一日でした。",
		TurnCount:       3,
		DurationMinutes: 5,
		Mode:            diarymodel.ModeLive,
	}}
	r := newTestRouter(fake)

	rr := postJSON(t, r, "/summary", map[string]string{"sessionId": "session-1"})
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rr.Code)
	}

	var payload diaryservice.SummaryResult
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("Unmarshal err: %v", err)
	}
	if payload.Diary == "" {
		t.Fatal("expected diary text in response")
	}
	if payload.DurationMinutes != 5 {
		t.Fatalf("unexpected durationMinutes: %d", payload.DurationMinutes)
	}
}

func TestMakeTitle(t *testing.T) {
	fake := &fakeDiaryService{titleResult: &diaryservice.TitleResult{
		Title: "友達と出かけた日",
		Mode:  diarymodel.ModeDemo,
	}}
	r := newTestRouter(fake)

	rr := postJSON(t, r, "/title", map[string]string{"content": "今日は友達と出かけました。"})
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
	if fake.lastContent != "今日は友達と出かけました。" {
		t.Fatalf("unexpected content passed to service: %q", fake.lastContent)
	}
}

func TestMakeTitleEmptyContent(t *testing.T) {
	fake := &fakeDiaryService{err: diaryservice.ErrEmptyContent}
	r := newTestRouter(fake)

	rr := postJSON(t, r, "/title", map[string]string{})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestListSessions(t *testing.T) {
	fake := &fakeDiaryService{overviews: []diarymodel.Overview{
		{ID: "session-2", Status: diarymodel.StatusActive},
		{ID: "session-1", Status: diarymodel.StatusCompleted},
	}}
	r := newTestRouter(fake)

	req := httptest.NewRequest(http.MethodGet, "/sessions", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rr.Code)
	}

	var payload []diarymodel.Overview
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("Unmarshal err: %v", err)
	}
	if len(payload) != 2 {
		t.Fatalf("expected 2 overviews, got %d", len(payload))
	}
	if payload[0].ID != "session-2" {
		t.Fatalf("unexpected ordering, first id %q", payload[0].ID)
	}
}

func TestInvalidJSONBody(t *testing.T) {
	r := newTestRouter(&fakeDiaryService{})

	req := httptest.NewRequest(http.MethodPost, "/messages", bytes.NewReader([]byte("{not json")))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid body, got %d", rr.Code)
	}
}
