package aid

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"aidconnect/internal/store"
	"aidconnect/pkg/types"

	"github.com/sirupsen/logrus"
)

type fakeStorage struct {
	uploads int
	fail    bool
}

func (f *fakeStorage) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	if f.fail {
		return "", errors.New("connection refused")
	}
	f.uploads++
	return "https://bucket.example/" + key, nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type fixture struct {
	service  *Service
	requests *store.RequestRepository
	ngos     *store.NGORepository
	storage  *fakeStorage
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	requests := store.NewRequestRepository(store.NewMemoryCollection[types.AidRequest]())
	ngos := store.NewNGORepository(store.NewMemoryCollection[types.NGO]())
	storage := &fakeStorage{}

	return &fixture{
		service:  NewService(testLogger(), requests, ngos, storage),
		requests: requests,
		ngos:     ngos,
		storage:  storage,
	}
}

func (f *fixture) addNGO(t *testing.T, username, organization string) {
	t.Helper()
	err := f.ngos.Append(context.Background(), types.NGO{
		Fullname:     "Someone",
		Organization: organization,
		Email:        username + "@example.com",
		Username:     username,
		Password:     "hash",
	})
	if err != nil {
		t.Fatalf("append ngo: %v", err)
	}
}

func submitInput(name string) SubmitInput {
	return SubmitInput{
		Name:        name,
		Location:    "X",
		Description: "flooded street",
		Filename:    "photo.jpg",
		ContentType: "image/jpeg",
		File:        strings.NewReader("fake image bytes"),
	}
}

func TestSubmitCreatesPendingRequest(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		request, err := f.service.Submit(ctx, submitInput(fmt.Sprintf("request-%d", i)))
		if err != nil {
			t.Fatalf("Submit: %v", err)
		}

		if request.Status != types.RequestStatusPending {
			t.Fatalf("new request status = %q, want pending", request.Status)
		}
		if request.HelpedBy != "" {
			t.Fatalf("new request helpedBy = %q, want empty", request.HelpedBy)
		}
		if request.ID == "" {
			t.Fatal("new request has no id")
		}
		if seen[request.ID] {
			t.Fatalf("duplicate id generated: %s", request.ID)
		}
		seen[request.ID] = true
		if request.Timestamp.IsZero() {
			t.Fatal("new request has no timestamp")
		}
		if !strings.HasPrefix(request.ImageURL, "https://bucket.example/") {
			t.Fatalf("unexpected image url: %s", request.ImageURL)
		}
	}
}

func TestSubmitValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		field string
		in    SubmitInput
	}{
		{"missing name", "name", SubmitInput{Location: "X", Description: "d", Filename: "a.jpg", File: strings.NewReader("x")}},
		{"missing location", "location", SubmitInput{Name: "A", Description: "d", Filename: "a.jpg", File: strings.NewReader("x")}},
		{"missing description", "description", SubmitInput{Name: "A", Location: "X", Filename: "a.jpg", File: strings.NewReader("x")}},
		{"missing file", "file", SubmitInput{Name: "A", Location: "X", Description: "d"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.service.Submit(ctx, tc.in)

			var ve types.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Field != tc.field {
				t.Fatalf("validation field = %q, want %q", ve.Field, tc.field)
			}
		})
	}

	requests, err := f.requests.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(requests) != 0 {
		t.Fatalf("rejected submissions must not persist, found %d records", len(requests))
	}
}

func TestSubmitStorageFailureCommitsNothing(t *testing.T) {
	f := newFixture(t)
	f.storage.fail = true
	ctx := context.Background()

	_, err := f.service.Submit(ctx, submitInput("A"))
	if !errors.Is(err, types.ErrExternalService) {
		t.Fatalf("expected ErrExternalService, got %v", err)
	}

	requests, err := f.requests.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(requests) != 0 {
		t.Fatal("upload failure must not append a record")
	}
}

func TestClaimTransitions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	request, err := f.service.Submit(ctx, submitInput("A"))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if err := f.service.Claim(ctx, request.ID, "Org1"); err != nil {
		t.Fatalf("Claim: %v", err)
	}

	got, err := f.requests.FindByID(ctx, request.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Status != types.RequestStatusInProgress || got.HelpedBy != "Org1" {
		t.Fatalf("after claim: %+v", got)
	}

	// Re-claiming an in-progress request silently reassigns ownership.
	if err := f.service.Claim(ctx, request.ID, "Org2"); err != nil {
		t.Fatalf("re-claim: %v", err)
	}
	got, _ = f.requests.FindByID(ctx, request.ID)
	if got.HelpedBy != "Org2" {
		t.Fatalf("re-claim did not reassign helpedBy: %+v", got)
	}

	if err := f.service.MarkHelped(ctx, request.ID); err != nil {
		t.Fatalf("MarkHelped: %v", err)
	}

	// A helped request is terminal.
	if err := f.service.Claim(ctx, request.ID, "Org3"); !errors.Is(err, types.ErrRequestClosed) {
		t.Fatalf("expected ErrRequestClosed, got %v", err)
	}
	got, _ = f.requests.FindByID(ctx, request.ID)
	if got.Status != types.RequestStatusHelped || got.HelpedBy != "Org2" {
		t.Fatalf("terminal request mutated: %+v", got)
	}
}

func TestClaimUnknownID(t *testing.T) {
	f := newFixture(t)

	if err := f.service.Claim(context.Background(), "missing", "Org1"); !errors.Is(err, types.ErrRequestNotFound) {
		t.Fatalf("expected ErrRequestNotFound, got %v", err)
	}
}

func TestMarkHelpedRequiresClaim(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	request, err := f.service.Submit(ctx, submitInput("A"))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	// Policy: a never-claimed request cannot be marked helped.
	if err := f.service.MarkHelped(ctx, request.ID); !errors.Is(err, types.ErrRequestNotClaimed) {
		t.Fatalf("expected ErrRequestNotClaimed, got %v", err)
	}

	got, _ := f.requests.FindByID(ctx, request.ID)
	if got.Status != types.RequestStatusPending || got.HelpedBy != "" {
		t.Fatalf("rejected markHelped mutated the record: %+v", got)
	}

	if err := f.service.MarkHelped(ctx, "missing"); !errors.Is(err, types.ErrRequestNotFound) {
		t.Fatalf("expected ErrRequestNotFound, got %v", err)
	}
}

func TestMarkHelpedIdempotentOnHelped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	request, err := f.service.Submit(ctx, submitInput("A"))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if err := f.service.Claim(ctx, request.ID, "Org1"); err != nil {
		t.Fatalf("Claim: %v", err)
	}
	if err := f.service.MarkHelped(ctx, request.ID); err != nil {
		t.Fatalf("MarkHelped: %v", err)
	}

	if err := f.service.MarkHelped(ctx, request.ID); err != nil {
		t.Fatalf("second MarkHelped should be a no-op, got %v", err)
	}

	got, _ := f.requests.FindByID(ctx, request.ID)
	if got.Status != types.RequestStatusHelped || got.HelpedBy != "Org1" {
		t.Fatalf("helped request mutated: %+v", got)
	}
}

func TestListForVisibilityAndOrdering(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addNGO(t, "user1", "Org1")
	f.addNGO(t, "user2", "Org2")

	ids := make([]string, 0, 6)
	for i := 0; i < 6; i++ {
		request, err := f.service.Submit(ctx, submitInput(fmt.Sprintf("request-%d", i)))
		if err != nil {
			t.Fatalf("Submit: %v", err)
		}
		ids = append(ids, request.ID)
	}

	// 0,1 stay pending. 2,3 claimed by Org1 (3 helped). 4,5 claimed by Org2.
	for _, claim := range []struct {
		id  string
		org string
	}{
		{ids[2], "Org1"},
		{ids[3], "Org1"},
		{ids[4], "Org2"},
		{ids[5], "Org2"},
	} {
		if err := f.service.Claim(ctx, claim.id, claim.org); err != nil {
			t.Fatalf("Claim: %v", err)
		}
	}
	if err := f.service.MarkHelped(ctx, ids[3]); err != nil {
		t.Fatalf("MarkHelped: %v", err)
	}

	visible, err := f.service.ListFor(ctx, "user1")
	if err != nil {
		t.Fatalf("ListFor: %v", err)
	}

	wantOrder := []string{ids[0], ids[1], ids[2], ids[3]}
	if len(visible) != len(wantOrder) {
		t.Fatalf("ListFor(user1) returned %d requests, want %d", len(visible), len(wantOrder))
	}
	for i, want := range wantOrder {
		if visible[i].ID != want {
			t.Fatalf("position %d: got %s, want %s (ordering must be pending < in-progress < helped, stable)", i, visible[i].ID, want)
		}
	}

	// Nothing belonging to another organization leaks, except pending work.
	for _, request := range visible {
		if request.Status != types.RequestStatusPending && request.HelpedBy != "Org1" {
			t.Fatalf("user1 sees %s claimed by %q", request.ID, request.HelpedBy)
		}
	}

	visible2, err := f.service.ListFor(ctx, "user2")
	if err != nil {
		t.Fatalf("ListFor: %v", err)
	}
	for _, request := range visible2 {
		if request.ID == ids[2] || request.ID == ids[3] {
			t.Fatalf("user2 sees Org1's request %s", request.ID)
		}
	}

	if _, err := f.service.ListFor(ctx, "ghost"); !errors.Is(err, types.ErrNGONotFound) {
		t.Fatalf("expected ErrNGONotFound, got %v", err)
	}
}

func TestClaimedBy(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addNGO(t, "user1", "Org1")

	first, err := f.service.Submit(ctx, submitInput("A"))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if _, err := f.service.Submit(ctx, submitInput("B")); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if err := f.service.Claim(ctx, first.ID, "Org1"); err != nil {
		t.Fatalf("Claim: %v", err)
	}

	claimed, err := f.service.ClaimedBy(ctx, "user1")
	if err != nil {
		t.Fatalf("ClaimedBy: %v", err)
	}
	if len(claimed) != 1 || claimed[0].ID != first.ID {
		t.Fatalf("unexpected claimed set: %+v", claimed)
	}
}

func TestLifecycleScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addNGO(t, "org1user", "Org1")
	f.addNGO(t, "org2user", "Org2")

	request, err := f.service.Submit(ctx, submitInput("A"))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	visible, err := f.service.ListFor(ctx, "org2user")
	if err != nil {
		t.Fatalf("ListFor: %v", err)
	}
	if len(visible) != 1 || visible[0].Status != types.RequestStatusPending {
		t.Fatalf("pending request not visible to every ngo: %+v", visible)
	}

	if err := f.service.Claim(ctx, request.ID, "Org1"); err != nil {
		t.Fatalf("Claim: %v", err)
	}

	visible, _ = f.service.ListFor(ctx, "org2user")
	for _, r := range visible {
		if r.ID == request.ID {
			t.Fatal("claimed request still visible to another organization")
		}
	}

	if err := f.service.MarkHelped(ctx, request.ID); err != nil {
		t.Fatalf("MarkHelped: %v", err)
	}

	visible, _ = f.service.ListFor(ctx, "org1user")
	found := false
	for _, r := range visible {
		if r.ID == request.ID && r.Status == types.RequestStatusHelped {
			found = true
		}
	}
	if !found {
		t.Fatal("helped request not visible to the claiming organization")
	}

	visible, _ = f.service.ListFor(ctx, "org2user")
	for _, r := range visible {
		if r.ID == request.ID {
			t.Fatal("helped request visible to another organization")
		}
	}
}

func TestDeleteAt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.service.Submit(ctx, submitInput("A"))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	second, err := f.service.Submit(ctx, submitInput("B"))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if err := f.service.DeleteAt(ctx, 5); !errors.Is(err, types.ErrRequestNotFound) {
		t.Fatalf("expected ErrRequestNotFound for out-of-range index, got %v", err)
	}

	if err := f.service.DeleteAt(ctx, 0); err != nil {
		t.Fatalf("DeleteAt: %v", err)
	}

	remaining, err := f.service.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != second.ID {
		t.Fatalf("unexpected records after positional delete: %+v", remaining)
	}

	if err := f.service.DeleteByID(ctx, first.ID); !errors.Is(err, types.ErrRequestNotFound) {
		t.Fatalf("expected ErrRequestNotFound for already-deleted id, got %v", err)
	}
	if err := f.service.DeleteByID(ctx, second.ID); err != nil {
		t.Fatalf("DeleteByID: %v", err)
	}
}
