package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Benny9193/Family-App/internal/auth"
	"github.com/Benny9193/Family-App/internal/model"
	"github.com/Benny9193/Family-App/internal/store"
	"github.com/Benny9193/Family-App/internal/upload"
)

type NoteHandler struct {
	notes       *store.NoteStore
	attachments *store.AttachmentStore
	families    *store.FamilyStore
	uploads     *upload.Manager
	logger      *slog.Logger
}

func NewNoteHandler(ns *store.NoteStore, as *store.AttachmentStore, fs *store.FamilyStore, um *upload.Manager, logger *slog.Logger) *NoteHandler {
	return &NoteHandler{notes: ns, attachments: as, families: fs, uploads: um, logger: logger}
}

type noteRequest struct {
	FamilyID int64  `json:"familyId"`
	Title    string `json:"title"`
	Content  string `json:"content"`
}

func parseNoteRequest(w http.ResponseWriter, r *http.Request, requireFamily bool) (*noteRequest, bool) {
	var body noteRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return nil, false
	}

	body.Title = strings.TrimSpace(body.Title)

	var errs []fieldError
	if requireFamily && body.FamilyID <= 0 {
		errs = append(errs, fieldError{"familyId", "Family ID is required"})
	}
	if body.Title == "" {
		errs = append(errs, fieldError{"title", "Title is required"})
	}
	if len(errs) > 0 {
		writeFieldErrors(w, errs)
		return nil, false
	}
	return &body, true
}

func (h *NoteHandler) gate(w http.ResponseWriter, r *http.Request, familyID int64, notFoundMsg string) bool {
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

func (h *NoteHandler) fetchGated(w http.ResponseWriter, r *http.Request) *model.Note {
	id, err := parsePathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return nil
	}

	note, err := h.notes.GetByID(id)
	if err != nil {
		h.logger.Error("get note", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to get note")
		return nil
	}
	if note == nil {
		writeError(w, http.StatusNotFound, "Note not found")
		return nil
	}
	if !h.gate(w, r, note.FamilyID, "Note not found") {
		return nil
	}
	return note
}

func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	familyID, err := parsePathID(r, "familyId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid family id")
		return
	}
	if !h.gate(w, r, familyID, "Family not found") {
		return
	}

	notes, err := h.notes.ListByFamily(familyID)
	if err != nil {
		h.logger.Error("list notes", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to get notes")
		return
	}
	if notes == nil {
		notes = []model.Note{}
	}
	writeJSON(w, http.StatusOK, notes)
}

func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := parseNoteRequest(w, r, true)
	if !ok {
		return
	}
	if !h.gate(w, r, req.FamilyID, "Family not found") {
		return
	}

	note, err := h.notes.Create(req.FamilyID, req.Title, req.Content, auth.UserID(r.Context()))
	if err != nil {
		h.logger.Error("create note", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create note")
		return
	}

	writeJSON(w, http.StatusCreated, note)
}

func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	existing := h.fetchGated(w, r)
	if existing == nil {
		return
	}

	req, ok := parseNoteRequest(w, r, false)
	if !ok {
		return
	}

	note, err := h.notes.Update(existing.ID, req.Title, req.Content)
	if err != nil {
		h.logger.Error("update note", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update note")
		return
	}

	writeJSON(w, http.StatusOK, note)
}

// Delete removes a note and its attachments. Attachment rows cascade with the
// note row; backing files are removed afterwards, and a file that cannot be
// removed is logged and left behind rather than failing the delete.
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	existing := h.fetchGated(w, r)
	if existing == nil {
		return
	}

	attachments, err := h.attachments.ListByNote(existing.ID)
	if err != nil {
		h.logger.Error("list note attachments", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete note")
		return
	}

	if err := h.notes.Delete(existing.ID); err != nil {
		h.logger.Error("delete note", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete note")
		return
	}

	for _, a := range attachments {
		h.uploads.RemoveLogged(a.FilePath)
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Note deleted successfully"})
}
