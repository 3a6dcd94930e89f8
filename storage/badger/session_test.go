package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/variantlab/genechat/core"
	"github.com/variantlab/genechat/storage"
)

func TestSessionBasics(t *testing.T) {
	sessions, messages, backend, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer func() {
		messages.Close()
		sessions.Close()
		backend.Close()
	}()

	ctx := context.Background()

	session := &core.Session{Kind: core.KindFileAnalysis}
	added, err := sessions.AddSession(ctx, session)
	if err != nil {
		t.Fatalf("Failed to add session: %v", err)
	}

	if added.Id == 0 {
		t.Fatal("Expected non-zero ID")
	}
	if added.Title != core.DefaultTitle {
		t.Fatalf("Expected default title %q, got %q", core.DefaultTitle, added.Title)
	}
	if added.CreatedAt.IsZero() {
		t.Fatal("Expected CreatedAt to be set")
	}

	retrieved, err := sessions.GetSession(ctx, added.Id)
	if err != nil {
		t.Fatalf("Failed to get session: %v", err)
	}
	if retrieved.Kind != core.KindFileAnalysis {
		t.Fatalf("Expected kind %v, got %v", core.KindFileAnalysis, retrieved.Kind)
	}
}

func TestSessionExplicitTitleKept(t *testing.T) {
	sessions, messages, backend, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer func() { messages.Close(); sessions.Close(); backend.Close() }()

	ctx := context.Background()

	added, err := sessions.AddSession(ctx, &core.Session{Title: "BRCA1 review", Kind: core.KindGeneral})
	if err != nil {
		t.Fatalf("Failed to add session: %v", err)
	}
	if added.Title != "BRCA1 review" {
		t.Fatalf("Expected explicit title to survive, got %q", added.Title)
	}
}

func TestSessionNotFound(t *testing.T) {
	sessions, messages, backend, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer func() { messages.Close(); sessions.Close(); backend.Close() }()

	_, err = sessions.GetSession(context.Background(), core.ID(9999))
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestSetSessionTitle(t *testing.T) {
	sessions, messages, backend, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer func() { messages.Close(); sessions.Close(); backend.Close() }()

	ctx := context.Background()

	added, err := sessions.AddSession(ctx, &core.Session{Kind: core.KindGeneral})
	if err != nil {
		t.Fatalf("Failed to add session: %v", err)
	}

	updated, err := sessions.SetSessionTitle(ctx, added.Id, "Variant Pathogenicity Discussion")
	if err != nil {
		t.Fatalf("Failed to set title: %v", err)
	}
	if updated.Title != "Variant Pathogenicity Discussion" {
		t.Fatalf("Expected updated title, got %q", updated.Title)
	}
	if !updated.UpdatedAt.After(added.CreatedAt) && !updated.UpdatedAt.Equal(added.CreatedAt) {
		t.Fatal("Expected UpdatedAt to advance")
	}

	retrieved, err := sessions.GetSession(ctx, added.Id)
	if err != nil {
		t.Fatalf("Failed to get session: %v", err)
	}
	if retrieved.Title != "Variant Pathogenicity Discussion" {
		t.Fatalf("Title not persisted, got %q", retrieved.Title)
	}

	// Empty titles are rejected
	if _, err := sessions.SetSessionTitle(ctx, added.Id, ""); !errors.Is(err, core.ErrEmptyTitle) {
		t.Fatalf("Expected ErrEmptyTitle, got %v", err)
	}

	// Missing sessions are reported
	if _, err := sessions.SetSessionTitle(ctx, core.ID(9999), "x"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestListSessionsNewestFirst(t *testing.T) {
	sessions, messages, backend, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer func() { messages.Close(); sessions.Close(); backend.Close() }()

	ctx := context.Background()

	var ids []core.ID
	for _, title := range []string{"first", "second", "third"} {
		added, err := sessions.AddSession(ctx, &core.Session{Title: title, Kind: core.KindGeneral})
		if err != nil {
			t.Fatalf("Failed to add session: %v", err)
		}
		ids = append(ids, added.Id)
	}

	listed, err := sessions.ListSessions(ctx)
	if err != nil {
		t.Fatalf("Failed to list sessions: %v", err)
	}
	if len(listed) != 3 {
		t.Fatalf("Expected 3 sessions, got %d", len(listed))
	}
	if listed[0].Id != ids[2] || listed[2].Id != ids[0] {
		t.Fatalf("Expected newest-first ordering, got %v, %v, %v", listed[0].Id, listed[1].Id, listed[2].Id)
	}
}

func TestDeleteSessionCascades(t *testing.T) {
	sessions, messages, backend, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer func() { messages.Close(); sessions.Close(); backend.Close() }()

	ctx := context.Background()

	added, err := sessions.AddSession(ctx, &core.Session{Kind: core.KindGeneral})
	if err != nil {
		t.Fatalf("Failed to add session: %v", err)
	}

	_, err = messages.AppendMessages(ctx, added.Id,
		&core.Message{Role: core.RoleUser, Contents: "hello"},
		&core.Message{Role: core.RoleAssistant, Contents: "hi there"},
	)
	if err != nil {
		t.Fatalf("Failed to append messages: %v", err)
	}

	if err := sessions.DeleteSession(ctx, added.Id); err != nil {
		t.Fatalf("Failed to delete session: %v", err)
	}

	if _, err := sessions.GetSession(ctx, added.Id); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound after delete, got %v", err)
	}
	if _, err := messages.ListMessages(ctx, added.Id); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected message log gone after delete, got %v", err)
	}

	listed, err := sessions.ListSessions(ctx)
	if err != nil {
		t.Fatalf("Failed to list sessions: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("Expected empty session list, got %d", len(listed))
	}
}
