package repository

import (
	"context"
	"errors"

	"github.com/gatherhub/api/internal/database"
	"github.com/gatherhub/api/internal/model"
)

// EventRepository handles event data access
type EventRepository struct {
	db database.Database
}

// NewEventRepository creates a new event repository
func NewEventRepository(db database.Database) *EventRepository {
	return &EventRepository{db: db}
}

// Create creates a new event with an empty membership set
func (r *EventRepository) Create(ctx context.Context, event *model.Event) error {
	query := `
		CREATE event CONTENT {
			title: $title,
			date: $date,
			speaker: $speaker,
			description: $description,
			tags: $tags,
			creator_id: type::record($creator_id),
			joined_user_ids: [],
			created_on: time::now(),
			updated_on: time::now()
		}
	`

	tags := event.Tags
	if tags == nil {
		tags = []string{}
	}

	vars := map[string]interface{}{
		"title":       event.Title,
		"date":        event.Date,
		"speaker":     event.Speaker,
		"description": event.Description,
		"tags":        tags,
		"creator_id":  event.CreatorID,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return err
	}

	event.ID = created.ID
	event.Tags = tags
	event.JoinedUserIDs = []string{}
	event.CreatedOn = created.CreatedOn
	event.UpdatedOn = created.UpdatedOn
	return nil
}

// Get retrieves an event by ID. Returns (nil, nil) when no such event exists.
func (r *EventRepository) Get(ctx context.Context, id string) (*model.Event, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	event, err := parseEventResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return event, nil
}

// List retrieves all events ordered by date ascending
func (r *EventRepository) List(ctx context.Context) ([]*model.Event, error) {
	query := `SELECT * FROM event ORDER BY date ASC`

	result, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	return parseEventsResult(result)
}

// ListJoinedBy retrieves events whose membership set contains the given user
func (r *EventRepository) ListJoinedBy(ctx context.Context, userID string) ([]*model.Event, error) {
	query := `
		SELECT * FROM event
		WHERE type::record($user_id) IN joined_user_ids
		ORDER BY date ASC
	`
	vars := map[string]interface{}{"user_id": userID}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return parseEventsResult(result)
}

// ListCreatedBy retrieves events created by the given user
func (r *EventRepository) ListCreatedBy(ctx context.Context, userID string) ([]*model.Event, error) {
	query := `
		SELECT * FROM event
		WHERE creator_id = type::record($user_id)
		ORDER BY date ASC
	`
	vars := map[string]interface{}{"user_id": userID}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return parseEventsResult(result)
}

// Update replaces the four editable fields of an event. Membership and tags
// are untouched. Returns (nil, nil) when no such event exists.
func (r *EventRepository) Update(ctx context.Context, id string, req *model.UpdateEventRequest) (*model.Event, error) {
	query := `
		UPDATE type::record($id) SET
			title = $title,
			date = $date,
			speaker = $speaker,
			description = $description,
			updated_on = time::now()
		RETURN AFTER
	`
	vars := map[string]interface{}{
		"id":          id,
		"title":       req.Title,
		"date":        req.Date,
		"speaker":     req.Speaker,
		"description": req.Description,
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseEventResult(result)
}

// Delete deletes an event
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE type::record($id)`
	vars := map[string]interface{}{"id": id}

	return r.db.Execute(ctx, query, vars)
}

// AddAttendee adds a user to an event's membership set in a single statement.
// array::union has set semantics, so a repeat join leaves the set unchanged,
// and the whole update is atomic at the record level. Returns (nil, nil) when
// no such event exists.
func (r *EventRepository) AddAttendee(ctx context.Context, eventID, userID string) (*model.Event, error) {
	query := `
		UPDATE type::record($event_id) SET
			joined_user_ids = array::union(joined_user_ids, [type::record($user_id)]),
			updated_on = time::now()
		RETURN AFTER
	`
	vars := map[string]interface{}{
		"event_id": eventID,
		"user_id":  userID,
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseEventResult(result)
}

// Helper functions

func parseEventResult(result interface{}) (*model.Event, error) {
	if result == nil {
		return nil, database.ErrNotFound
	}

	// Navigate through SurrealDB response structure
	if resp, ok := result.(map[string]interface{}); ok {
		if status, ok := resp["status"].(string); ok && status == "OK" {
			if resultData, ok := resp["result"].([]interface{}); ok {
				if len(resultData) == 0 {
					return nil, database.ErrNotFound
				}
				result = resultData[0]
			}
		}
	}

	if arr, ok := result.([]interface{}); ok {
		if len(arr) == 0 {
			return nil, database.ErrNotFound
		}
		result = arr[0]
	}

	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}

	event := &model.Event{
		ID:          convertSurrealID(data["id"]),
		Title:       getString(data, "title"),
		Date:        getString(data, "date"),
		Speaker:     getString(data, "speaker"),
		Description: getString(data, "description"),
		CreatorID:   convertSurrealID(data["creator_id"]),
	}

	event.Tags = getStringSlice(data, "tags")
	if event.Tags == nil {
		event.Tags = []string{}
	}

	event.JoinedUserIDs = getRecordIDSlice(data, "joined_user_ids")
	if event.JoinedUserIDs == nil {
		event.JoinedUserIDs = []string{}
	}

	if t := getTime(data, "created_on"); t != nil {
		event.CreatedOn = *t
	}
	if t := getTime(data, "updated_on"); t != nil {
		event.UpdatedOn = *t
	}

	return event, nil
}

func parseEventsResult(result []interface{}) ([]*model.Event, error) {
	events := make([]*model.Event, 0)

	for _, res := range result {
		if resp, ok := res.(map[string]interface{}); ok {
			if resultData, ok := resp["result"].([]interface{}); ok {
				for _, item := range resultData {
					event, err := parseEventResult(item)
					if err != nil {
						continue
					}
					events = append(events, event)
				}
				continue
			}
		}

		event, err := parseEventResult(res)
		if err != nil {
			continue
		}
		events = append(events, event)
	}

	return events, nil
}
