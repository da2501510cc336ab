package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"aidconnect/pkg/types"
)

func TestFileCollectionLoadAllMissingFile(t *testing.T) {
	col := NewFileCollection[types.NGO](filepath.Join(t.TempDir(), "ngousers.json"))

	ngos, err := col.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if ngos == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(ngos) != 0 {
		t.Fatalf("expected no records, got %d", len(ngos))
	}
}

func TestFileCollectionRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "uploads.json")
	col := NewFileCollection[types.AidRequest](path)
	ctx := context.Background()

	records := []types.AidRequest{
		{
			ID:          "req-1",
			Name:        "A",
			Location:    "X",
			Description: "flooded street",
			ImageURL:    "https://bucket.s3.amazonaws.com/k/img.jpg",
			Timestamp:   time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC),
			Status:      types.RequestStatusPending,
		},
		{
			ID:       "req-2",
			Name:     "B",
			Location: "Y",
			Status:   types.RequestStatusHelped,
			HelpedBy: "Org1",
		},
	}

	if err := col.SaveAll(ctx, records); err != nil {
		t.Fatalf("SaveAll: %v", err)
	}

	loaded, err := col.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}

	// Re-persisting an unmodified collection must be byte-for-byte stable.
	if err := col.SaveAll(ctx, loaded); err != nil {
		t.Fatalf("second SaveAll: %v", err)
	}

	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}

	reloaded, err := col.LoadAll(ctx)
	if err != nil {
		t.Fatalf("second LoadAll: %v", err)
	}
	if err := col.SaveAll(ctx, reloaded); err != nil {
		t.Fatalf("third SaveAll: %v", err)
	}

	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}

	if string(first) != string(second) {
		t.Fatal("round-tripped collection is not byte-identical")
	}

	if len(reloaded) != 2 || reloaded[0].ID != "req-1" || reloaded[1].HelpedBy != "Org1" {
		t.Fatalf("unexpected records after round trip: %+v", reloaded)
	}
	if !reloaded[0].Timestamp.Equal(records[0].Timestamp) {
		t.Fatalf("timestamp changed across round trip: %v", reloaded[0].Timestamp)
	}
}

func TestNGORepositoryExists(t *testing.T) {
	ctx := context.Background()
	repo := NewNGORepository(NewMemoryCollection[types.NGO]())

	if err := repo.Append(ctx, types.NGO{
		Fullname:     "Jane Doe",
		Organization: "Org1",
		Email:        "jane@org1.example",
		Username:     "jane",
		Password:     "hash",
	}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	cases := []struct {
		name     string
		username string
		email    string
		want     bool
	}{
		{"same username", "jane", "other@example.com", true},
		{"same email", "other", "jane@org1.example", true},
		{"both new", "other", "other@example.com", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := repo.Exists(ctx, tc.username, tc.email)
			if err != nil {
				t.Fatalf("Exists: %v", err)
			}
			if got != tc.want {
				t.Fatalf("Exists(%q, %q) = %v, want %v", tc.username, tc.email, got, tc.want)
			}
		})
	}
}

func TestNGORepositoryUpdatePassword(t *testing.T) {
	ctx := context.Background()
	repo := NewNGORepository(NewMemoryCollection[types.NGO]())

	if err := repo.UpdatePassword(ctx, "missing", "hash"); !errors.Is(err, types.ErrNGONotFound) {
		t.Fatalf("expected ErrNGONotFound, got %v", err)
	}

	if err := repo.Append(ctx, types.NGO{Username: "jane", Email: "jane@org1.example", Password: "old"}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	if err := repo.UpdatePassword(ctx, "jane", "new"); err != nil {
		t.Fatalf("UpdatePassword: %v", err)
	}

	ngo, err := repo.FindByUsername(ctx, "jane")
	if err != nil {
		t.Fatalf("FindByUsername: %v", err)
	}
	if ngo.Password != "new" {
		t.Fatalf("password not replaced: %q", ngo.Password)
	}
}

func TestNGORepositoryDeleteAt(t *testing.T) {
	ctx := context.Background()
	repo := NewNGORepository(NewMemoryCollection[types.NGO]())

	for _, u := range []string{"a", "b", "c"} {
		if err := repo.Append(ctx, types.NGO{Username: u, Email: u + "@example.com"}); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	if err := repo.DeleteAt(ctx, 3); !errors.Is(err, types.ErrNGONotFound) {
		t.Fatalf("expected ErrNGONotFound for out-of-range index, got %v", err)
	}
	if err := repo.DeleteAt(ctx, -1); !errors.Is(err, types.ErrNGONotFound) {
		t.Fatalf("expected ErrNGONotFound for negative index, got %v", err)
	}

	if err := repo.DeleteAt(ctx, 1); err != nil {
		t.Fatalf("DeleteAt: %v", err)
	}

	ngos, err := repo.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(ngos) != 2 || ngos[0].Username != "a" || ngos[1].Username != "c" {
		t.Fatalf("unexpected records after positional delete: %+v", ngos)
	}
}

func TestRequestRepositoryUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewRequestRepository(NewMemoryCollection[types.AidRequest]())

	if err := repo.Update(ctx, types.AidRequest{ID: "missing"}); !errors.Is(err, types.ErrRequestNotFound) {
		t.Fatalf("expected ErrRequestNotFound, got %v", err)
	}

	if err := repo.Append(ctx, types.AidRequest{ID: "req-1", Status: types.RequestStatusPending}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	if err := repo.Update(ctx, types.AidRequest{
		ID:       "req-1",
		Status:   types.RequestStatusInProgress,
		HelpedBy: "Org1",
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := repo.FindByID(ctx, "req-1")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Status != types.RequestStatusInProgress || got.HelpedBy != "Org1" {
		t.Fatalf("record not updated: %+v", got)
	}
}

func TestResetTokenRepositoryTakeIsSingleUse(t *testing.T) {
	ctx := context.Background()
	repo := NewResetTokenRepository(NewMemoryCollection[types.ResetToken]())

	token := types.ResetToken{
		Nonce:     "nonce-1",
		Username:  "jane",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	if err := repo.Put(ctx, token); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := repo.Take(ctx, "nonce-1")
	if err != nil {
		t.Fatalf("Take: %v", err)
	}
	if got.Username != "jane" {
		t.Fatalf("unexpected token record: %+v", got)
	}

	if _, err := repo.Take(ctx, "nonce-1"); !errors.Is(err, types.ErrResetTokenInvalid) {
		t.Fatalf("expected ErrResetTokenInvalid on second take, got %v", err)
	}
}
