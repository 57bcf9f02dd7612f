package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"

	"github.com/Benny9193/Family-App/internal/auth"
	"github.com/Benny9193/Family-App/internal/database"
	"github.com/Benny9193/Family-App/internal/model"
	"github.com/Benny9193/Family-App/internal/store"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	users  *store.UserStore
	tokens *auth.Tokens
	logger *slog.Logger
}

func NewAuthHandler(us *store.UserStore, tokens *auth.Tokens, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{users: us, tokens: tokens, logger: logger}
}

// userResponse is the client-facing user shape. The API's request/response
// fields are camelCase; internal rows stay snake_case.
type userResponse struct {
	ID          int64   `json:"id"`
	Username    string  `json:"username"`
	Email       string  `json:"email"`
	FullName    string  `json:"fullName"`
	AvatarColor string  `json:"avatarColor"`
	AvatarURL   *string `json:"avatarUrl"`
}

func toUserResponse(u *model.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FullName:    u.FullName,
		AvatarColor: u.AvatarColor,
		AvatarURL:   u.AvatarURL,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		FullName string `json:"fullName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	req.FullName = strings.TrimSpace(req.FullName)

	var errs []fieldError
	if len(req.Username) < 3 {
		errs = append(errs, fieldError{"username", "Username must be at least 3 characters"})
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		errs = append(errs, fieldError{"email", "Invalid email address"})
	}
	if len(req.Password) < 6 {
		errs = append(errs, fieldError{"password", "Password must be at least 6 characters"})
	}
	if req.FullName == "" {
		errs = append(errs, fieldError{"fullName", "Full name is required"})
	}
	if len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}

	exists, err := h.users.UsernameOrEmailExists(req.Username, req.Email)
	if err != nil {
		h.logger.Error("check existing user", "error", err)
		writeError(w, http.StatusInternalServerError, "Registration failed")
		return
	}
	if exists {
		writeError(w, http.StatusBadRequest, "Username or email already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.Error("hash password", "error", err)
		writeError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	user, err := h.users.Create(req.Username, req.Email, string(hash), req.FullName)
	if err != nil {
		// Unique constraint backstops the existence check losing a race.
		if database.IsUniqueViolation(err) {
			writeError(w, http.StatusBadRequest, "Username or email already exists")
			return
		}
		h.logger.Error("create user", "error", err)
		writeError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	token, err := h.tokens.Generate(user.ID, user.Username)
	if err != nil {
		h.logger.Error("generate token", "error", err)
		writeError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "User registered successfully",
		"token":   token,
		"user":    toUserResponse(user),
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Username = strings.TrimSpace(req.Username)

	var errs []fieldError
	if req.Username == "" {
		errs = append(errs, fieldError{"username", "Username is required"})
	}
	if req.Password == "" {
		errs = append(errs, fieldError{"password", "Password is required"})
	}
	if len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}

	user, err := h.users.GetByUsername(req.Username)
	if err != nil {
		h.logger.Error("login lookup", "error", err)
		writeError(w, http.StatusInternalServerError, "Login failed")
		return
	}
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.tokens.Generate(user.ID, user.Username)
	if err != nil {
		h.logger.Error("generate token", "error", err)
		writeError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"token":   token,
		"user":    toUserResponse(user),
	})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetByID(auth.UserID(r.Context()))
	if err != nil {
		h.logger.Error("get current user", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to get user")
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}
