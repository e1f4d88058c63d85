package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ryuujih/voice-diary-hackathon/internal/model/diary"
	"github.com/ryuujih/voice-diary-hackathon/internal/service/session"
)

func TestMemoryStoreCreateAndGet(t *testing.T) {
	store := session.NewMemoryStore(0, 0)
	ctx := context.Background()

	created, err := store.Create(ctx)
	if err != nil {
		t.Fatalf("Create err: %v", err)
	}
	if created.Status != diary.StatusActive {
		t.Fatalf("unexpected status: %s", created.Status)
	}

	got, err := store.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if got.ID != created.ID {
		t.Fatalf("unexpected session ID: got %s want %s", got.ID, created.ID)
	}
}

func TestMemoryStoreGetNotFound(t *testing.T) {
	store := session.NewMemoryStore(0, 0)
	if _, err := store.Get(context.Background(), "missing"); !errors.Is(err, session.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestMemoryStoreAppendCountsTurns(t *testing.T) {
	store := session.NewMemoryStore(0, 0)
	ctx := context.Background()

	created, err := store.Create(ctx)
	if err != nil {
		t.Fatalf("Create err: %v", err)
	}

	snap, err := store.Append(ctx, created.ID, diary.Message{Role: diary.RoleUser, Content: "一言目"})
	if err != nil {
		t.Fatalf("Append err: %v", err)
	}
	if snap.TurnCount() != 1 {
		t.Fatalf("expected 1 turn, got %d", snap.TurnCount())
	}

	snap, err = store.Append(ctx, created.ID, diary.Message{Role: diary.RoleAssistant, Content: "返事"})
	if err != nil {
		t.Fatalf("Append err: %v", err)
	}
	if snap.TurnCount() != 1 {
		t.Fatalf("assistant messages must not count as turns, got %d", snap.TurnCount())
	}
	if len(snap.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(snap.Messages))
	}
}

func TestMemoryStoreCompleteOnce(t *testing.T) {
	store := session.NewMemoryStore(0, 0)
	ctx := context.Background()

	created, err := store.Create(ctx)
	if err != nil {
		t.Fatalf("Create err: %v", err)
	}

	completed, err := store.Complete(ctx, created.ID, "まとめ", diary.ModeDemo)
	if err != nil {
		t.Fatalf("Complete err: %v", err)
	}
	if completed.Status != diary.StatusCompleted {
		t.Fatalf("unexpected status: %s", completed.Status)
	}
	if completed.EndedAt.IsZero() {
		t.Fatal("expected end time to be stamped")
	}
	if completed.Summary != "まとめ" || completed.SummaryMode != diary.ModeDemo {
		t.Fatalf("unexpected summary record: %q mode=%s", completed.Summary, completed.SummaryMode)
	}

	if _, err := store.Complete(ctx, created.ID, "二度目", diary.ModeDemo); !errors.Is(err, session.ErrSessionCompleted) {
		t.Fatalf("expected ErrSessionCompleted, got %v", err)
	}
}

func TestMemoryStoreConcurrentAppends(t *testing.T) {
	store := session.NewMemoryStore(0, 0)
	ctx := context.Background()

	created, err := store.Create(ctx)
	if err != nil {
		t.Fatalf("Create err: %v", err)
	}

	const writers = 20
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func() {
			defer wg.Done()
			if _, err := store.Append(ctx, created.ID, diary.Message{Role: diary.RoleUser, Content: "並行"}); err != nil {
				t.Errorf("Append err: %v", err)
			}
		}()
	}
	wg.Wait()

	got, err := store.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if got.TurnCount() != writers {
		t.Fatalf("expected %d turns, got %d", writers, got.TurnCount())
	}
}

func TestMemoryStoreListNewestFirst(t *testing.T) {
	store := session.NewMemoryStore(0, 0)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := store.Create(ctx); err != nil {
			t.Fatalf("Create err: %v", err)
		}
	}

	sessions, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List err: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	if sessions[0].StartedAt.Before(sessions[1].StartedAt) {
		t.Fatal("expected newest session first")
	}
}
