package service

import (
	"context"

	"github.com/gatherhub/api/internal/model"
)

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	Get(ctx context.Context, id string) (*model.Event, error)
	List(ctx context.Context) ([]*model.Event, error)
	ListJoinedBy(ctx context.Context, userID string) ([]*model.Event, error)
	ListCreatedBy(ctx context.Context, userID string) ([]*model.Event, error)
	Update(ctx context.Context, id string, req *model.UpdateEventRequest) (*model.Event, error)
	Delete(ctx context.Context, id string) error
	AddAttendee(ctx context.Context, eventID, userID string) (*model.Event, error)
}

// EventService handles the event directory: creation, listings, membership,
// and creator-only mutations.
type EventService struct {
	eventRepo EventRepository
}

// NewEventService creates a new event service
func NewEventService(eventRepo EventRepository) *EventService {
	return &EventService{eventRepo: eventRepo}
}

// CreateEvent creates an event owned by the acting user. The membership set
// starts empty; the creator does not join implicitly.
func (s *EventService) CreateEvent(ctx context.Context, creatorID string, req *model.CreateEventRequest) (*model.Event, error) {
	if creatorID == "" {
		return nil, ErrMissingIdentity
	}

	event := &model.Event{
		Title:       req.Title,
		Date:        req.Date,
		Speaker:     req.Speaker,
		Description: req.Description,
		Tags:        req.Tags,
		CreatorID:   creatorID,
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	return event, nil
}

// ListEvents returns all events ordered by date ascending. Summaries carry
// the derived joined count, never the member list.
func (s *EventService) ListEvents(ctx context.Context) ([]model.EventSummary, error) {
	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return summarize(events), nil
}

// ListJoined returns events the acting user has joined, date ascending.
func (s *EventService) ListJoined(ctx context.Context, userID string) ([]model.EventSummary, error) {
	if userID == "" {
		return nil, ErrMissingIdentity
	}

	events, err := s.eventRepo.ListJoinedBy(ctx, userID)
	if err != nil {
		return nil, err
	}
	return summarize(events), nil
}

// ListCreated returns events the acting user created, date ascending.
func (s *EventService) ListCreated(ctx context.Context, userID string) ([]model.EventSummary, error) {
	if userID == "" {
		return nil, ErrMissingIdentity
	}

	events, err := s.eventRepo.ListCreatedBy(ctx, userID)
	if err != nil {
		return nil, err
	}
	return summarize(events), nil
}

// GetEvent retrieves a single event by ID
func (s *EventService) GetEvent(ctx context.Context, eventID string) (*model.Event, error) {
	event, err := s.eventRepo.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	return event, nil
}

// GetRSVPStatus reports whether the acting user has joined the event.
// A missing event is still ErrEventNotFound; the handler decides how to
// degrade the response.
func (s *EventService) GetRSVPStatus(ctx context.Context, eventID, userID string) (*model.RSVPStatus, error) {
	event, err := s.eventRepo.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	return &model.RSVPStatus{Joined: event.HasJoined(userID)}, nil
}

// RSVP adds the acting user to an event's membership set. Joining twice is
// not an error: the set-add is a no-op and the current state comes back.
func (s *EventService) RSVP(ctx context.Context, eventID, userID string) (*model.Event, error) {
	if userID == "" {
		return nil, ErrMissingIdentity
	}

	event, err := s.eventRepo.AddAttendee(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	return event, nil
}

// UpdateEvent replaces the editable fields of an event. Existence is checked
// before ownership: an absent event is NotFound even for a caller who would
// not have been allowed to touch it.
func (s *EventService) UpdateEvent(ctx context.Context, eventID, userID string, req *model.UpdateEventRequest) (*model.Event, error) {
	event, err := s.eventRepo.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	if event.CreatorID != userID {
		return nil, ErrNotEventCreator
	}

	updated, err := s.eventRepo.Update(ctx, eventID, req)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrEventNotFound
	}
	return updated, nil
}

// DeleteEvent removes an event. Same existence-before-ownership ordering as
// UpdateEvent; deletion cascades nothing.
func (s *EventService) DeleteEvent(ctx context.Context, eventID, userID string) error {
	event, err := s.eventRepo.Get(ctx, eventID)
	if err != nil {
		return err
	}
	if event == nil {
		return ErrEventNotFound
	}
	if event.CreatorID != userID {
		return ErrNotEventCreator
	}

	return s.eventRepo.Delete(ctx, eventID)
}

func summarize(events []*model.Event) []model.EventSummary {
	summaries := make([]model.EventSummary, 0, len(events))
	for _, e := range events {
		summaries = append(summaries, e.Summarize())
	}
	return summaries
}
