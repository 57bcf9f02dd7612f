package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Benny9193/Family-App/internal/auth"
	"github.com/Benny9193/Family-App/internal/database"
	"github.com/Benny9193/Family-App/internal/model"
	"github.com/Benny9193/Family-App/internal/store"
)

type FamilyHandler struct {
	families *store.FamilyStore
	logger   *slog.Logger
}

func NewFamilyHandler(fs *store.FamilyStore, logger *slog.Logger) *FamilyHandler {
	return &FamilyHandler{families: fs, logger: logger}
}

func (h *FamilyHandler) List(w http.ResponseWriter, r *http.Request) {
	families, err := h.families.ListForUser(auth.UserID(r.Context()))
	if err != nil {
		h.logger.Error("list families", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to get families")
		return
	}
	if families == nil {
		families = []model.FamilySummary{}
	}
	writeJSON(w, http.StatusOK, families)
}

func (h *FamilyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeFieldErrors(w, []fieldError{{"name", "Family name is required"}})
		return
	}

	family, err := h.families.Create(req.Name, auth.UserID(r.Context()))
	if err != nil {
		h.logger.Error("create family", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create family")
		return
	}

	writeJSON(w, http.StatusCreated, family)
}

func (h *FamilyHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req struct {
		InviteCode string `json:"inviteCode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.InviteCode = strings.TrimSpace(req.InviteCode)
	if req.InviteCode == "" {
		writeFieldErrors(w, []fieldError{{"inviteCode", "Invite code is required"}})
		return
	}

	family, err := h.families.GetByInviteCode(req.InviteCode)
	if err != nil {
		h.logger.Error("lookup invite code", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to join family")
		return
	}
	if family == nil {
		writeError(w, http.StatusNotFound, "Invalid invite code")
		return
	}

	userID := auth.UserID(r.Context())
	existing, err := h.families.GetMember(family.ID, userID)
	if err != nil {
		h.logger.Error("check membership", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to join family")
		return
	}
	if existing != nil {
		writeError(w, http.StatusBadRequest, "You are already a member of this family")
		return
	}

	if _, err := h.families.AddMember(family.ID, userID, model.RoleMember); err != nil {
		// The ledger's primary key catches a user racing against itself.
		if database.IsUniqueViolation(err) {
			writeError(w, http.StatusBadRequest, "You are already a member of this family")
			return
		}
		h.logger.Error("add member", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to join family")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Successfully joined family",
		"family":  family,
	})
}

func (h *FamilyHandler) Members(w http.ResponseWriter, r *http.Request) {
	familyID, err := parsePathID(r, "familyId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid family id")
		return
	}

	ok, err := h.families.IsMember(familyID, auth.UserID(r.Context()))
	if err != nil {
		h.logger.Error("check membership", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to get family members")
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "Family not found")
		return
	}

	members, err := h.families.ListMembers(familyID)
	if err != nil {
		h.logger.Error("list members", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to get family members")
		return
	}
	if members == nil {
		members = []model.Member{}
	}
	writeJSON(w, http.StatusOK, members)
}
