package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/traderscope/journal/backend/internal/journal"
	"github.com/traderscope/journal/backend/pkg/logger"
)

// NoteHandler handles note and event endpoints
type NoteHandler struct {
	repo   *journal.Repository
	logger *logger.Logger
}

// NewNoteHandler creates a new note handler
func NewNoteHandler(repo *journal.Repository, log *logger.Logger) *NoteHandler {
	return &NoteHandler{
		repo:   repo,
		logger: log,
	}
}

// NoteRequest represents a note create/update payload
type NoteRequest struct {
	TradeID string   `json:"trade_id,omitempty"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags,omitempty"`
}

// ListNotes returns the user's notes
// GET /api/notes
func (h *NoteHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := r.Header.Get(UserIDHeader)

	notes, err := h.repo.ListNotes(ctx, userID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list notes")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve notes")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"notes": notes,
		"count": len(notes),
	})
}

// GetNote returns a single note
// GET /api/notes/{id}
func (h *NoteHandler) GetNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := r.Header.Get(UserIDHeader)
	noteID := mux.Vars(r)["id"]

	note, err := h.repo.GetNote(ctx, userID, noteID)
	if err != nil {
		if errors.Is(err, journal.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Note not found")
			return
		}
		h.logger.WithError(err).Error("Failed to get note")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve note")
		return
	}

	respondJSON(w, http.StatusOK, note)
}

// CreateNote inserts a new note
// POST /api/notes
func (h *NoteHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := r.Header.Get(UserIDHeader)

	var req NoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Title == "" {
		respondError(w, http.StatusBadRequest, "title is required")
		return
	}

	note := &journal.Note{
		UserID:  userID,
		TradeID: req.TradeID,
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	}

	if err := h.repo.CreateNote(ctx, note); err != nil {
		h.logger.WithError(err).Error("Failed to create note")
		respondError(w, http.StatusInternalServerError, "Failed to create note")
		return
	}

	respondJSON(w, http.StatusCreated, note)
}

// UpdateNote updates an existing note
// PUT /api/notes/{id}
func (h *NoteHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := r.Header.Get(UserIDHeader)
	noteID := mux.Vars(r)["id"]

	var req NoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Title == "" {
		respondError(w, http.StatusBadRequest, "title is required")
		return
	}

	note := &journal.Note{
		ID:      noteID,
		UserID:  userID,
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	}

	if err := h.repo.UpdateNote(ctx, note); err != nil {
		if errors.Is(err, journal.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Note not found")
			return
		}
		h.logger.WithError(err).Error("Failed to update note")
		respondError(w, http.StatusInternalServerError, "Failed to update note")
		return
	}

	respondJSON(w, http.StatusOK, note)
}

// DeleteNote removes a note
// DELETE /api/notes/{id}
func (h *NoteHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := r.Header.Get(UserIDHeader)
	noteID := mux.Vars(r)["id"]

	if err := h.repo.DeleteNote(ctx, userID, noteID); err != nil {
		if errors.Is(err, journal.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Note not found")
			return
		}
		h.logger.WithError(err).Error("Failed to delete note")
		respondError(w, http.StatusInternalServerError, "Failed to delete note")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"note_id": noteID,
	})
}

// EventRequest represents an event create payload
type EventRequest struct {
	Title       string `json:"title"`
	Kind        string `json:"kind"`
	EventTime   string `json:"event_time"` // RFC 3339
	Description string `json:"description,omitempty"`
}

// ListEvents returns the user's events
// GET /api/events?from=2024-01-01&to=2024-12-31
func (h *NoteHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := r.Header.Get(UserIDHeader)

	filter, err := tradeFilterFromQuery(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	events, err := h.repo.ListEvents(ctx, userID, filter)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list events")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve events")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"events": events,
		"count":  len(events),
	})
}

// CreateEvent inserts a new event
// POST /api/events
func (h *NoteHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := r.Header.Get(UserIDHeader)

	var req EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Title == "" {
		respondError(w, http.StatusBadRequest, "title is required")
		return
	}

	eventTime, err := time.Parse(time.RFC3339, req.EventTime)
	if err != nil {
		respondError(w, http.StatusBadRequest, "event_time must be RFC 3339")
		return
	}

	event := &journal.Event{
		UserID:      userID,
		Title:       req.Title,
		Kind:        req.Kind,
		EventTime:   eventTime,
		Description: req.Description,
	}

	if err := h.repo.CreateEvent(ctx, event); err != nil {
		h.logger.WithError(err).Error("Failed to create event")
		respondError(w, http.StatusInternalServerError, "Failed to create event")
		return
	}

	respondJSON(w, http.StatusCreated, event)
}

// DeleteEvent removes an event
// DELETE /api/events/{id}
func (h *NoteHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := r.Header.Get(UserIDHeader)
	eventID := mux.Vars(r)["id"]

	if err := h.repo.DeleteEvent(ctx, userID, eventID); err != nil {
		if errors.Is(err, journal.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Event not found")
			return
		}
		h.logger.WithError(err).Error("Failed to delete event")
		respondError(w, http.StatusInternalServerError, "Failed to delete event")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"event_id": eventID,
	})
}
