package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/gatherhub/api/internal/model"
)

// mockEventRepo is an in-memory event store. AddAttendee mirrors the real
// store's contract: a single guarded set-union, safe under concurrent calls.
type mockEventRepo struct {
	mu      sync.Mutex
	events  map[string]*model.Event
	nextID  int
	listErr error
}

func newMockEventRepo() *mockEventRepo {
	return &mockEventRepo{events: make(map[string]*model.Event)}
}

func (m *mockEventRepo) Create(ctx context.Context, event *model.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	event.ID = fmt.Sprintf("event:%d", m.nextID)
	if event.Tags == nil {
		event.Tags = []string{}
	}
	event.JoinedUserIDs = []string{}
	event.CreatedOn = time.Now()
	event.UpdatedOn = time.Now()
	m.events[event.ID] = copyEvent(event)
	return nil
}

func (m *mockEventRepo) Get(ctx context.Context, id string) (*model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[id]
	if !ok {
		return nil, nil
	}
	return copyEvent(e), nil
}

func (m *mockEventRepo) List(ctx context.Context) ([]*model.Event, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*model.Event
	for _, e := range m.events {
		result = append(result, copyEvent(e))
	}
	return result, nil
}

func (m *mockEventRepo) ListJoinedBy(ctx context.Context, userID string) ([]*model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*model.Event
	for _, e := range m.events {
		if e.HasJoined(userID) {
			result = append(result, copyEvent(e))
		}
	}
	return result, nil
}

func (m *mockEventRepo) ListCreatedBy(ctx context.Context, userID string) ([]*model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*model.Event
	for _, e := range m.events {
		if e.CreatorID == userID {
			result = append(result, copyEvent(e))
		}
	}
	return result, nil
}

func (m *mockEventRepo) Update(ctx context.Context, id string, req *model.UpdateEventRequest) (*model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[id]
	if !ok {
		return nil, nil
	}
	e.Title = req.Title
	e.Date = req.Date
	e.Speaker = req.Speaker
	e.Description = req.Description
	e.UpdatedOn = time.Now()
	return copyEvent(e), nil
}

func (m *mockEventRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.events, id)
	return nil
}

func (m *mockEventRepo) AddAttendee(ctx context.Context, eventID, userID string) (*model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[eventID]
	if !ok {
		return nil, nil
	}
	if !e.HasJoined(userID) {
		e.JoinedUserIDs = append(e.JoinedUserIDs, userID)
	}
	e.UpdatedOn = time.Now()
	return copyEvent(e), nil
}

func copyEvent(e *model.Event) *model.Event {
	c := *e
	c.Tags = append([]string(nil), e.Tags...)
	c.JoinedUserIDs = append([]string(nil), e.JoinedUserIDs...)
	return &c
}

func setupEventService(t *testing.T) (*EventService, *mockEventRepo) {
	t.Helper()
	repo := newMockEventRepo()
	return NewEventService(repo), repo
}

func createRequest() *model.CreateEventRequest {
	return &model.CreateEventRequest{
		Title:       "Go Meetup",
		Date:        "2026-09-15",
		Speaker:     "Rob",
		Description: "Monthly meetup",
		Tags:        []string{"go", "meetup"},
	}
}

// Tests

func TestEventService_CreateAndGet(t *testing.T) {
	svc, _ := setupEventService(t)
	ctx := context.Background()

	created, err := svc.CreateEvent(ctx, "user:alice", createRequest())
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected created event to have an id")
	}

	got, err := svc.GetEvent(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetEvent failed: %v", err)
	}
	if got.CreatorID != "user:alice" {
		t.Errorf("expected creator user:alice, got %s", got.CreatorID)
	}
	if got.JoinedCount() != 0 {
		t.Errorf("expected joined count 0 on a fresh event, got %d", got.JoinedCount())
	}
	if got.Title != "Go Meetup" {
		t.Errorf("expected title Go Meetup, got %s", got.Title)
	}
}

func TestEventService_CreateEvent_MissingIdentity(t *testing.T) {
	svc, _ := setupEventService(t)
	ctx := context.Background()

	_, err := svc.CreateEvent(ctx, "", createRequest())
	if !errors.Is(err, ErrMissingIdentity) {
		t.Errorf("expected ErrMissingIdentity, got %v", err)
	}
}

func TestEventService_GetEvent_NotFound(t *testing.T) {
	svc, _ := setupEventService(t)
	ctx := context.Background()

	_, err := svc.GetEvent(ctx, "event:missing")
	if !errors.Is(err, ErrEventNotFound) {
		t.Errorf("expected ErrEventNotFound, got %v", err)
	}
}

func TestEventService_RSVP_Idempotent(t *testing.T) {
	svc, _ := setupEventService(t)
	ctx := context.Background()

	created, err := svc.CreateEvent(ctx, "user:alice", createRequest())
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}

	first, err := svc.RSVP(ctx, created.ID, "user:bob")
	if err != nil {
		t.Fatalf("first RSVP failed: %v", err)
	}
	if first.JoinedCount() != 1 {
		t.Errorf("expected joined count 1, got %d", first.JoinedCount())
	}

	// Joining again is success, not conflict, and the count holds
	second, err := svc.RSVP(ctx, created.ID, "user:bob")
	if err != nil {
		t.Fatalf("repeat RSVP failed: %v", err)
	}
	if second.JoinedCount() != 1 {
		t.Errorf("expected joined count to stay 1, got %d", second.JoinedCount())
	}
}

func TestEventService_RSVP_Concurrent(t *testing.T) {
	svc, _ := setupEventService(t)
	ctx := context.Background()

	created, err := svc.CreateEvent(ctx, "user:alice", createRequest())
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}

	var wg sync.WaitGroup
	for _, user := range []string{"user:u1", "user:u2"} {
		wg.Add(1)
		go func(u string) {
			defer wg.Done()
			if _, err := svc.RSVP(ctx, created.ID, u); err != nil {
				t.Errorf("RSVP for %s failed: %v", u, err)
			}
		}(user)
	}
	wg.Wait()

	got, err := svc.GetEvent(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetEvent failed: %v", err)
	}
	if got.JoinedCount() != 2 {
		t.Errorf("expected both joins recorded, got count %d", got.JoinedCount())
	}
}

func TestEventService_RSVP_NotFound(t *testing.T) {
	svc, _ := setupEventService(t)
	ctx := context.Background()

	_, err := svc.RSVP(ctx, "event:missing", "user:bob")
	if !errors.Is(err, ErrEventNotFound) {
		t.Errorf("expected ErrEventNotFound, got %v", err)
	}
}

func TestEventService_GetRSVPStatus(t *testing.T) {
	svc, _ := setupEventService(t)
	ctx := context.Background()

	created, err := svc.CreateEvent(ctx, "user:alice", createRequest())
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}

	status, err := svc.GetRSVPStatus(ctx, created.ID, "user:bob")
	if err != nil {
		t.Fatalf("GetRSVPStatus failed: %v", err)
	}
	if status.Joined {
		t.Error("expected joined=false before RSVP")
	}

	if _, err := svc.RSVP(ctx, created.ID, "user:bob"); err != nil {
		t.Fatalf("RSVP failed: %v", err)
	}

	status, err = svc.GetRSVPStatus(ctx, created.ID, "user:bob")
	if err != nil {
		t.Fatalf("GetRSVPStatus failed: %v", err)
	}
	if !status.Joined {
		t.Error("expected joined=true after RSVP")
	}
}

func TestEventService_GetRSVPStatus_NotFound(t *testing.T) {
	svc, _ := setupEventService(t)
	ctx := context.Background()

	_, err := svc.GetRSVPStatus(ctx, "event:missing", "user:bob")
	if !errors.Is(err, ErrEventNotFound) {
		t.Errorf("expected ErrEventNotFound, got %v", err)
	}
}

func TestEventService_UpdateEvent_OnlyCreator(t *testing.T) {
	svc, _ := setupEventService(t)
	ctx := context.Background()

	created, err := svc.CreateEvent(ctx, "user:alice", createRequest())
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}

	update := &model.UpdateEventRequest{
		Title:       "Go Meetup (moved)",
		Date:        "2026-09-22",
		Speaker:     "Rob",
		Description: "Monthly meetup, new room",
	}

	_, err = svc.UpdateEvent(ctx, created.ID, "user:mallory", update)
	if !errors.Is(err, ErrNotEventCreator) {
		t.Errorf("expected ErrNotEventCreator, got %v", err)
	}

	updated, err := svc.UpdateEvent(ctx, created.ID, "user:alice", update)
	if err != nil {
		t.Fatalf("UpdateEvent failed: %v", err)
	}
	if updated.Title != "Go Meetup (moved)" {
		t.Errorf("expected updated title, got %s", updated.Title)
	}
	if updated.Date != "2026-09-22" {
		t.Errorf("expected updated date, got %s", updated.Date)
	}
}

func TestEventService_UpdateEvent_PreservesMembershipAndTags(t *testing.T) {
	svc, _ := setupEventService(t)
	ctx := context.Background()

	created, err := svc.CreateEvent(ctx, "user:alice", createRequest())
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}
	if _, err := svc.RSVP(ctx, created.ID, "user:bob"); err != nil {
		t.Fatalf("RSVP failed: %v", err)
	}

	updated, err := svc.UpdateEvent(ctx, created.ID, "user:alice", &model.UpdateEventRequest{
		Title:       "New title",
		Date:        "2026-10-01",
		Speaker:     "Ken",
		Description: "New description",
	})
	if err != nil {
		t.Fatalf("UpdateEvent failed: %v", err)
	}
	if updated.JoinedCount() != 1 {
		t.Errorf("update must not touch membership, got count %d", updated.JoinedCount())
	}
	if len(updated.Tags) != 2 {
		t.Errorf("update must not touch tags, got %v", updated.Tags)
	}
}

func TestEventService_UpdateEvent_NotFoundBeforeForbidden(t *testing.T) {
	svc, _ := setupEventService(t)
	ctx := context.Background()

	// A missing event is NotFound even for a caller who would have been
	// rejected on ownership.
	_, err := svc.UpdateEvent(ctx, "event:missing", "user:mallory", &model.UpdateEventRequest{
		Title:       "x",
		Date:        "2026-10-01",
		Speaker:     "x",
		Description: "x",
	})
	if !errors.Is(err, ErrEventNotFound) {
		t.Errorf("expected ErrEventNotFound, got %v", err)
	}
}

func TestEventService_DeleteEvent(t *testing.T) {
	svc, _ := setupEventService(t)
	ctx := context.Background()

	created, err := svc.CreateEvent(ctx, "user:alice", createRequest())
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}

	if err := svc.DeleteEvent(ctx, created.ID, "user:mallory"); !errors.Is(err, ErrNotEventCreator) {
		t.Errorf("expected ErrNotEventCreator, got %v", err)
	}

	if err := svc.DeleteEvent(ctx, created.ID, "user:alice"); err != nil {
		t.Fatalf("DeleteEvent failed: %v", err)
	}

	if _, err := svc.GetEvent(ctx, created.ID); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("expected ErrEventNotFound after delete, got %v", err)
	}

	if err := svc.DeleteEvent(ctx, created.ID, "user:alice"); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("expected ErrEventNotFound on repeat delete, got %v", err)
	}
}

func TestEventService_Listings(t *testing.T) {
	svc, _ := setupEventService(t)
	ctx := context.Background()

	first, err := svc.CreateEvent(ctx, "user:alice", createRequest())
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}
	req := createRequest()
	req.Title = "Second"
	if _, err := svc.CreateEvent(ctx, "user:bob", req); err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}
	if _, err := svc.RSVP(ctx, first.ID, "user:bob"); err != nil {
		t.Fatalf("RSVP failed: %v", err)
	}

	all, err := svc.ListEvents(ctx)
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 events, got %d", len(all))
	}

	joined, err := svc.ListJoined(ctx, "user:bob")
	if err != nil {
		t.Fatalf("ListJoined failed: %v", err)
	}
	if len(joined) != 1 || joined[0].ID != first.ID {
		t.Errorf("expected bob's joined list to be exactly the first event, got %v", joined)
	}
	if joined[0].JoinedCount != 1 {
		t.Errorf("expected joined_count 1 in summary, got %d", joined[0].JoinedCount)
	}

	createdByAlice, err := svc.ListCreated(ctx, "user:alice")
	if err != nil {
		t.Fatalf("ListCreated failed: %v", err)
	}
	if len(createdByAlice) != 1 || createdByAlice[0].ID != first.ID {
		t.Errorf("expected alice's created list to be exactly the first event, got %v", createdByAlice)
	}
}

func TestEventService_Listings_MissingIdentity(t *testing.T) {
	svc, _ := setupEventService(t)
	ctx := context.Background()

	if _, err := svc.ListJoined(ctx, ""); !errors.Is(err, ErrMissingIdentity) {
		t.Errorf("expected ErrMissingIdentity, got %v", err)
	}
	if _, err := svc.ListCreated(ctx, ""); !errors.Is(err, ErrMissingIdentity) {
		t.Errorf("expected ErrMissingIdentity, got %v", err)
	}
}

func TestEventService_ListEvents_RepoError(t *testing.T) {
	svc, repo := setupEventService(t)
	ctx := context.Background()

	repo.listErr = fmt.Errorf("store down")

	_, err := svc.ListEvents(ctx)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}
