package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gatherhub/api/internal/middleware"
	"github.com/gatherhub/api/internal/model"
	"github.com/gatherhub/api/internal/service"
)

// EventHandler handles the event directory endpoints
type EventHandler struct {
	eventService *service.EventService
}

// NewEventHandler creates a new event handler
func NewEventHandler(eventService *service.EventService) *EventHandler {
	return &EventHandler{
		eventService: eventService,
	}
}

// EventResponse represents an event in API responses. The membership set is
// never serialized; only its size is.
type EventResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Date        string   `json:"date"`
	Speaker     string   `json:"speaker"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	CreatorID   string   `json:"creator_id"`
	JoinedCount int      `json:"joined_count"`
	CreatedOn   string   `json:"created_on"`
	UpdatedOn   string   `json:"updated_on"`
}

func toEventResponse(e *model.Event) EventResponse {
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	return EventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Date:        e.Date,
		Speaker:     e.Speaker,
		Description: e.Description,
		Tags:        tags,
		CreatorID:   e.CreatorID,
		JoinedCount: e.JoinedCount(),
		CreatedOn:   e.CreatedOn.Format(time.RFC3339),
		UpdatedOn:   e.UpdatedOn.Format(time.RFC3339),
	}
}

// Create handles POST /v1/events
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req model.CreateEventRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	if fields := validateStruct(&req); fields != nil {
		WriteError(w, model.NewValidationError(fields))
		return
	}

	event, err := h.eventService.CreateEvent(r.Context(), userID, &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, toEventResponse(event), map[string]string{
		"self": "/v1/events/" + event.ID,
	})
}

// List handles GET /v1/events
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.eventService.ListEvents(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, summaries, nil)
}

// ListJoined handles GET /v1/events/my
func (h *EventHandler) ListJoined(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	summaries, err := h.eventService.ListJoined(r.Context(), userID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, summaries, nil)
}

// ListCreated handles GET /v1/events/my-created
func (h *EventHandler) ListCreated(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	summaries, err := h.eventService.ListCreated(r.Context(), userID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, summaries, nil)
}

// Get handles GET /v1/events/{id}
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("id")

	event, err := h.eventService.GetEvent(r.Context(), eventID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, toEventResponse(event), nil)
}

// RSVPStatus handles GET /v1/events/{id}/status. An absent event degrades to
// joined=false with a 404 status rather than a problem document, so clients
// polling the flag after a deletion see a coherent answer.
func (h *EventHandler) RSVPStatus(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("id")
	userID := middleware.GetUserID(r.Context())

	status, err := h.eventService.GetRSVPStatus(r.Context(), eventID, userID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			WriteJSON(w, http.StatusNotFound, model.RSVPStatus{Joined: false})
			return
		}
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, status, nil)
}

// RSVP handles POST /v1/events/{id}/rsvp. Joining twice is success, not
// conflict; the response is the current event state either way.
func (h *EventHandler) RSVP(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("id")
	userID := middleware.GetUserID(r.Context())

	event, err := h.eventService.RSVP(r.Context(), eventID, userID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, toEventResponse(event), nil)
}

// Update handles PUT /v1/events/{id}
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("id")
	userID := middleware.GetUserID(r.Context())

	var req model.UpdateEventRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	if fields := validateStruct(&req); fields != nil {
		WriteError(w, model.NewValidationError(fields))
		return
	}

	event, err := h.eventService.UpdateEvent(r.Context(), eventID, userID, &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, toEventResponse(event), nil)
}

// Delete handles DELETE /v1/events/{id}
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("id")
	userID := middleware.GetUserID(r.Context())

	if err := h.eventService.DeleteEvent(r.Context(), eventID, userID); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, MessageResponse{Message: "event deleted"}, nil)
}
