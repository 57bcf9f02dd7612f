package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Benny9193/Family-App/internal/auth"
	"github.com/Benny9193/Family-App/internal/model"
	"github.com/Benny9193/Family-App/internal/store"
	"github.com/Benny9193/Family-App/internal/upload"
)

type UploadHandler struct {
	users       *store.UserStore
	notes       *store.NoteStore
	attachments *store.AttachmentStore
	families    *store.FamilyStore
	uploads     *upload.Manager
	logger      *slog.Logger
}

func NewUploadHandler(us *store.UserStore, ns *store.NoteStore, as *store.AttachmentStore, fs *store.FamilyStore, um *upload.Manager, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{users: us, notes: ns, attachments: as, families: fs, uploads: um, logger: logger}
}

// Avatar stores a new avatar image for the caller, then removes the previous
// avatar file if there was one.
func (h *UploadHandler) Avatar(w http.ResponseWriter, r *http.Request) {
	// Generous cap on the whole body; the manager enforces the real ceiling.
	r.Body = http.MaxBytesReader(w, r.Body, upload.MaxAvatarSize+1<<20)

	file, header, err := r.FormFile("avatar")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	saved, err := h.uploads.SaveAvatar(file, header.Filename)
	if err != nil {
		h.writeSaveError(w, err, "Only image files are allowed for avatars")
		return
	}

	previous, err := h.users.UpdateAvatar(auth.UserID(r.Context()), saved.URLPath)
	if err != nil {
		// Row update failed: clean up the file we just wrote.
		h.uploads.RemoveLogged(saved.URLPath)
		h.logger.Error("update avatar", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to upload avatar")
		return
	}

	if previous != nil {
		h.uploads.RemoveLogged(*previous)
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message":   "Avatar uploaded successfully",
		"avatarUrl": saved.URLPath,
	})
}

// Attachment stores a file against a note. The note's family membership is
// verified before anything touches disk.
func (h *UploadHandler) Attachment(w http.ResponseWriter, r *http.Request) {
	note := h.fetchNoteGated(w, r, "noteId")
	if note == nil {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, upload.MaxAttachmentSize+1<<20)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	saved, err := h.uploads.SaveAttachment(file, header.Filename)
	if err != nil {
		h.writeSaveError(w, err, "File type not supported")
		return
	}

	mimeType := header.Header.Get("Content-Type")
	attachment, err := h.attachments.Create(note.ID, saved.Name, header.Filename, saved.URLPath, saved.Size, mimeType)
	if err != nil {
		// Row insert failed after the file write: compensate.
		h.uploads.RemoveLogged(saved.URLPath)
		h.logger.Error("create attachment", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to upload attachment")
		return
	}

	writeJSON(w, http.StatusCreated, attachment)
}

func (h *UploadHandler) ListAttachments(w http.ResponseWriter, r *http.Request) {
	note := h.fetchNoteGated(w, r, "noteId")
	if note == nil {
		return
	}

	attachments, err := h.attachments.ListByNote(note.ID)
	if err != nil {
		h.logger.Error("list attachments", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to get attachments")
		return
	}
	if attachments == nil {
		attachments = []model.Attachment{}
	}
	writeJSON(w, http.StatusOK, attachments)
}

// DeleteAttachment removes the ledger row, then the backing file. A file that
// cannot be removed is logged and left behind; the delete still succeeds.
func (h *UploadHandler) DeleteAttachment(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	attachment, err := h.attachments.GetByID(id)
	if err != nil {
		h.logger.Error("get attachment", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete attachment")
		return
	}
	if attachment == nil {
		writeError(w, http.StatusNotFound, "Attachment not found")
		return
	}

	note, err := h.notes.GetByID(attachment.NoteID)
	if err != nil {
		h.logger.Error("get attachment note", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete attachment")
		return
	}
	if note == nil || !h.isMember(r, note.FamilyID) {
		writeError(w, http.StatusNotFound, "Attachment not found")
		return
	}

	if err := h.attachments.Delete(attachment.ID); err != nil {
		h.logger.Error("delete attachment", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete attachment")
		return
	}

	h.uploads.RemoveLogged(attachment.FilePath)

	writeJSON(w, http.StatusOK, map[string]string{"message": "Attachment deleted successfully"})
}

// fetchNoteGated loads the note named by the path parameter and verifies the
// caller's membership in its family. Missing and foreign notes are both 404.
func (h *UploadHandler) fetchNoteGated(w http.ResponseWriter, r *http.Request, param string) *model.Note {
	noteID, err := parsePathID(r, param)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid note id")
		return nil
	}

	note, err := h.notes.GetByID(noteID)
	if err != nil {
		h.logger.Error("get note", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to get note")
		return nil
	}
	if note == nil {
		writeError(w, http.StatusNotFound, "Note not found or no access")
		return nil
	}

	ok, err := h.families.IsMember(note.FamilyID, auth.UserID(r.Context()))
	if err != nil {
		h.logger.Error("check membership", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to check family access")
		return nil
	}
	if !ok {
		writeError(w, http.StatusNotFound, "Note not found or no access")
		return nil
	}
	return note
}

// isMember checks membership without writing a response; the caller decides
// what a refusal looks like.
func (h *UploadHandler) isMember(r *http.Request, familyID int64) bool {
	ok, err := h.families.IsMember(familyID, auth.UserID(r.Context()))
	if err != nil {
		h.logger.Error("check membership", "error", err)
		return false
	}
	return ok
}

func (h *UploadHandler) writeSaveError(w http.ResponseWriter, err error, typeMsg string) {
	switch {
	case errors.Is(err, upload.ErrFileType):
		writeError(w, http.StatusBadRequest, typeMsg)
	case errors.Is(err, upload.ErrFileSize):
		writeError(w, http.StatusBadRequest, "File too large")
	default:
		h.logger.Error("save upload", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to save file")
	}
}
