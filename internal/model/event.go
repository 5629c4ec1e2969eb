package model

import "time"

// DateLayout is the calendar-date format events use. Events carry a date,
// not a timestamp; upcoming/past partitioning is a caller-side concern.
const DateLayout = "2006-01-02"

// Event represents a schedulable item with a creator and a membership set.
// JoinedUserIDs is internal only: API responses expose the aggregate count
// and a per-user boolean, never the raw id list.
type Event struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Date          string    `json:"date"` // calendar date, DateLayout
	Speaker       string    `json:"speaker"`
	Description   string    `json:"description"`
	Tags          []string  `json:"tags"`
	CreatorID     string    `json:"creator_id"`
	JoinedUserIDs []string  `json:"-"`
	CreatedOn     time.Time `json:"created_on"`
	UpdatedOn     time.Time `json:"updated_on"`
}

// JoinedCount is the derived membership size. It is never persisted
// independently of the set, so it cannot drift.
func (e *Event) JoinedCount() int {
	return len(e.JoinedUserIDs)
}

// HasJoined reports whether the given user is in the membership set.
func (e *Event) HasJoined(userID string) bool {
	for _, id := range e.JoinedUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// EventSummary is the listing shape: full metadata plus the derived count,
// without the membership set.
type EventSummary struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Date        string   `json:"date"`
	Speaker     string   `json:"speaker"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	CreatorID   string   `json:"creator_id"`
	JoinedCount int      `json:"joined_count"`
}

// Summarize converts an event to its listing shape.
func (e *Event) Summarize() EventSummary {
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	return EventSummary{
		ID:          e.ID,
		Title:       e.Title,
		Date:        e.Date,
		Speaker:     e.Speaker,
		Description: e.Description,
		Tags:        tags,
		CreatorID:   e.CreatorID,
		JoinedCount: e.JoinedCount(),
	}
}

// CreateEventRequest is the payload for creating an event. Tags are optional
// and default to empty; everything else is required.
type CreateEventRequest struct {
	Title       string   `json:"title" validate:"required"`
	Date        string   `json:"date" validate:"required,datetime=2006-01-02"`
	Speaker     string   `json:"speaker" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Tags        []string `json:"tags"`
}

// UpdateEventRequest is the payload for updating an event. It is a full
// replace of the four editable fields; tags and membership are untouched.
type UpdateEventRequest struct {
	Title       string `json:"title" validate:"required"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Speaker     string `json:"speaker" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// RSVPStatus is the per-user membership check result.
type RSVPStatus struct {
	Joined bool `json:"joined"`
}
