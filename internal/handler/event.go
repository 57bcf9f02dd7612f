package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Benny9193/Family-App/internal/auth"
	"github.com/Benny9193/Family-App/internal/model"
	"github.com/Benny9193/Family-App/internal/store"
)

const defaultColor = "#3B82F6"

type EventHandler struct {
	events   *store.EventStore
	families *store.FamilyStore
	logger   *slog.Logger
}

func NewEventHandler(es *store.EventStore, fs *store.FamilyStore, logger *slog.Logger) *EventHandler {
	return &EventHandler{events: es, families: fs, logger: logger}
}

type eventRequest struct {
	FamilyID    int64  `json:"familyId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	AllDay      bool   `json:"allDay"`
	Color       string `json:"color"`
}

// parseEventRequest decodes and validates an event body. Validation failures
// are written to w and reported with ok=false.
func parseEventRequest(w http.ResponseWriter, r *http.Request, requireFamily bool) (req *eventRequest, start time.Time, end *time.Time, ok bool) {
	var body eventRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return nil, time.Time{}, nil, false
	}

	body.Title = strings.TrimSpace(body.Title)

	var errs []fieldError
	if requireFamily && body.FamilyID <= 0 {
		errs = append(errs, fieldError{"familyId", "Family ID is required"})
	}
	if body.Title == "" {
		errs = append(errs, fieldError{"title", "Title is required"})
	}

	startDate, err := parseTime(body.StartDate)
	if err != nil {
		errs = append(errs, fieldError{"startDate", "Valid start date is required"})
	}

	var endDate *time.Time
	if body.EndDate != "" {
		t, err := parseTime(body.EndDate)
		if err != nil {
			errs = append(errs, fieldError{"endDate", "End date must be a valid date"})
		} else {
			endDate = &t
		}
	}

	if len(errs) > 0 {
		writeFieldErrors(w, errs)
		return nil, time.Time{}, nil, false
	}

	if body.Color == "" {
		body.Color = defaultColor
	}
	return &body, startDate, endDate, true
}

// gate answers whether the caller may touch the given family's resources.
// Non-members see the same 404 as a missing resource.
func (h *EventHandler) gate(w http.ResponseWriter, r *http.Request, familyID int64, notFoundMsg string) bool {
	ok, err := h.families.IsMember(familyID, auth.UserID(r.Context()))
	if err != nil {
		h.logger.Error("check membership", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to check family access")
		return false
	}
	if !ok {
		writeError(w, http.StatusNotFound, notFoundMsg)
		return false
	}
	return true
}

func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	familyID, err := parsePathID(r, "familyId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid family id")
		return
	}
	if !h.gate(w, r, familyID, "Family not found") {
		return
	}

	events, err := h.events.ListByFamily(familyID)
	if err != nil {
		h.logger.Error("list events", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to get events")
		return
	}
	if events == nil {
		events = []model.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, start, end, ok := parseEventRequest(w, r, true)
	if !ok {
		return
	}
	if !h.gate(w, r, req.FamilyID, "Family not found") {
		return
	}

	event, err := h.events.Create(req.FamilyID, req.Title, req.Description, start, end, req.AllDay, req.Color, auth.UserID(r.Context()))
	if err != nil {
		h.logger.Error("create event", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create event")
		return
	}

	writeJSON(w, http.StatusCreated, event)
}

func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	existing, err := h.events.GetByID(id)
	if err != nil {
		h.logger.Error("get event", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update event")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "Event not found")
		return
	}
	if !h.gate(w, r, existing.FamilyID, "Event not found") {
		return
	}

	req, start, end, ok := parseEventRequest(w, r, false)
	if !ok {
		return
	}

	event, err := h.events.Update(id, req.Title, req.Description, start, end, req.AllDay, req.Color)
	if err != nil {
		h.logger.Error("update event", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update event")
		return
	}

	writeJSON(w, http.StatusOK, event)
}

func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	existing, err := h.events.GetByID(id)
	if err != nil {
		h.logger.Error("get event", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete event")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "Event not found")
		return
	}
	if !h.gate(w, r, existing.FamilyID, "Event not found") {
		return
	}

	if err := h.events.Delete(id); err != nil {
		h.logger.Error("delete event", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete event")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Event deleted successfully"})
}
