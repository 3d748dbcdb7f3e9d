package sqlite

import (
	"testing"
	"time"

	"github.com/learnify/backend/internal/storage/models"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	client, err := NewClient(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	if err := client.InitSchema(); err != nil {
		t.Fatalf("failed to initialize schema: %v", err)
	}

	return client
}

func interaction(username, queryText string, createdAt time.Time) *models.InteractionRecord {
	return &models.InteractionRecord{
		QueryText: queryText,
		Topic:     "python",
		Mood:      "Neutral",
		Polarity:  0.0,
		Username:  username,
		CreatedAt: createdAt,
	}
}

func TestInsertAndGetInteractions(t *testing.T) {
	client := newTestClient(t)
	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	first := interaction("alice", "learn python", base)
	second := interaction("alice", "python projects", base.Add(time.Hour))
	other := interaction("bob", "learn go", base)

	for _, r := range []*models.InteractionRecord{first, second, other} {
		if err := client.InsertInteraction(r); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
		if r.ID == 0 {
			t.Error("insert did not set record id")
		}
	}

	records, err := client.GetInteractions("alice", 0)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].QueryText != "python projects" {
		t.Errorf("newest first expected, got %q", records[0].QueryText)
	}
	if !records[0].CreatedAt.Equal(base.Add(time.Hour)) {
		t.Errorf("CreatedAt = %v, want %v", records[0].CreatedAt, base.Add(time.Hour))
	}

	limited, err := client.GetInteractions("alice", 1)
	if err != nil {
		t.Fatalf("get with limit failed: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("limit ignored: got %d records", len(limited))
	}
}

func TestGetAllInteractions(t *testing.T) {
	client := newTestClient(t)
	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	client.InsertInteraction(interaction("alice", "learn python", base))
	client.InsertInteraction(interaction("bob", "learn ai", base.Add(time.Minute)))

	records, err := client.GetAllInteractions()
	if err != nil {
		t.Fatalf("get all failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
}

func TestUpdateFeedback(t *testing.T) {
	client := newTestClient(t)
	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	client.InsertInteraction(interaction("alice", "learn python", base))
	client.InsertInteraction(interaction("alice", "learn python", base.Add(time.Hour)))

	updated, err := client.UpdateFeedback("alice", "learn python", "positive")
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if !updated {
		t.Fatal("expected a matching record")
	}

	records, _ := client.GetInteractions("alice", 0)
	if records[0].Feedback != "positive" {
		t.Errorf("most recent record feedback = %q, want positive", records[0].Feedback)
	}
	if records[1].Feedback != "" {
		t.Errorf("older record touched: feedback = %q", records[1].Feedback)
	}

	updated, err = client.UpdateFeedback("alice", "no such query", "positive")
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated {
		t.Error("expected no match for unknown query text")
	}
}

func TestCountInteractions(t *testing.T) {
	client := newTestClient(t)
	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	client.InsertInteraction(interaction("alice", "a", base))
	client.InsertInteraction(interaction("alice", "b", base))
	client.InsertInteraction(interaction("bob", "c", base))

	if n, _ := client.CountInteractions("alice"); n != 2 {
		t.Errorf("CountInteractions(alice) = %d, want 2", n)
	}
	if n, _ := client.CountAllInteractions(); n != 3 {
		t.Errorf("CountAllInteractions() = %d, want 3", n)
	}
}

func TestUserLifecycle(t *testing.T) {
	client := newTestClient(t)

	user := &models.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "deadbeef",
	}
	if err := client.CreateUser(user); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if user.ID == 0 {
		t.Error("create did not set user id")
	}
	if user.CreatedAt.IsZero() {
		t.Error("create did not default CreatedAt")
	}

	got, err := client.GetUserByUsername("alice")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got == nil || got.Username != "alice" || got.PasswordHash != "deadbeef" {
		t.Errorf("got %+v", got)
	}

	missing, err := client.GetUserByUsername("nobody")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown user, got %+v", missing)
	}

	users, err := client.ListUsers()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(users) != 1 {
		t.Errorf("got %d users, want 1", len(users))
	}
}

func TestDeleteUserRemovesHistory(t *testing.T) {
	client := newTestClient(t)
	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	user := &models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "deadbeef"}
	if err := client.CreateUser(user); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	client.InsertInteraction(interaction("alice", "learn python", base))

	deleted, err := client.DeleteUser(user.ID)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if !deleted {
		t.Fatal("expected delete to report success")
	}

	if got, _ := client.GetUserByUsername("alice"); got != nil {
		t.Error("user still present after delete")
	}
	if n, _ := client.CountInteractions("alice"); n != 0 {
		t.Errorf("history survived delete: %d records", n)
	}

	deleted, err = client.DeleteUser(9999)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if deleted {
		t.Error("expected false for unknown user id")
	}
}
