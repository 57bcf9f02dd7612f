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

var validPriorities = map[string]bool{"low": true, "medium": true, "high": true}

type TodoHandler struct {
	todos    *store.TodoStore
	families *store.FamilyStore
	logger   *slog.Logger
}

func NewTodoHandler(ts *store.TodoStore, fs *store.FamilyStore, logger *slog.Logger) *TodoHandler {
	return &TodoHandler{todos: ts, families: fs, logger: logger}
}

type todoRequest struct {
	FamilyID    int64  `json:"familyId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	Priority    string `json:"priority"`
	AssignedTo  *int64 `json:"assignedTo"`
	DueDate     string `json:"dueDate"`
}

func parseTodoRequest(w http.ResponseWriter, r *http.Request, requireFamily bool) (req *todoRequest, due *time.Time, ok bool) {
	var body todoRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return nil, nil, false
	}

	body.Title = strings.TrimSpace(body.Title)
	if body.Priority == "" {
		body.Priority = "medium"
	}

	var errs []fieldError
	if requireFamily && body.FamilyID <= 0 {
		errs = append(errs, fieldError{"familyId", "Family ID is required"})
	}
	if body.Title == "" {
		errs = append(errs, fieldError{"title", "Title is required"})
	}
	if !validPriorities[body.Priority] {
		errs = append(errs, fieldError{"priority", "Priority must be low, medium, or high"})
	}

	var dueDate *time.Time
	if body.DueDate != "" {
		t, err := parseTime(body.DueDate)
		if err != nil {
			errs = append(errs, fieldError{"dueDate", "Due date must be a valid date"})
		} else {
			dueDate = &t
		}
	}

	if len(errs) > 0 {
		writeFieldErrors(w, errs)
		return nil, nil, false
	}
	return &body, dueDate, true
}

func (h *TodoHandler) gate(w http.ResponseWriter, r *http.Request, familyID int64, notFoundMsg string) bool {
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

// fetchGated loads a todo and verifies the caller's membership in its family.
// Missing rows and foreign rows both come back as 404.
func (h *TodoHandler) fetchGated(w http.ResponseWriter, r *http.Request) *model.Todo {
	id, err := parsePathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return nil
	}

	todo, err := h.todos.GetByID(id)
	if err != nil {
		h.logger.Error("get todo", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to get todo")
		return nil
	}
	if todo == nil {
		writeError(w, http.StatusNotFound, "Todo not found")
		return nil
	}
	if !h.gate(w, r, todo.FamilyID, "Todo not found") {
		return nil
	}
	return todo
}

func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	familyID, err := parsePathID(r, "familyId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid family id")
		return
	}
	if !h.gate(w, r, familyID, "Family not found") {
		return
	}

	todos, err := h.todos.ListByFamily(familyID)
	if err != nil {
		h.logger.Error("list todos", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to get todos")
		return
	}
	if todos == nil {
		todos = []model.Todo{}
	}
	writeJSON(w, http.StatusOK, todos)
}

func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, due, ok := parseTodoRequest(w, r, true)
	if !ok {
		return
	}
	if !h.gate(w, r, req.FamilyID, "Family not found") {
		return
	}

	// An assignee must belong to the same family as the todo.
	if req.AssignedTo != nil {
		member, err := h.families.GetMember(req.FamilyID, *req.AssignedTo)
		if err != nil {
			h.logger.Error("check assignee", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to create todo")
			return
		}
		if member == nil {
			writeFieldErrors(w, []fieldError{{"assignedTo", "Assignee is not a member of this family"}})
			return
		}
	}

	todo, err := h.todos.Create(req.FamilyID, req.Title, req.Description, req.Priority, req.AssignedTo, due, auth.UserID(r.Context()))
	if err != nil {
		h.logger.Error("create todo", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create todo")
		return
	}

	writeJSON(w, http.StatusCreated, todo)
}

func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	existing := h.fetchGated(w, r)
	if existing == nil {
		return
	}

	req, due, ok := parseTodoRequest(w, r, false)
	if !ok {
		return
	}

	if req.AssignedTo != nil {
		member, err := h.families.GetMember(existing.FamilyID, *req.AssignedTo)
		if err != nil {
			h.logger.Error("check assignee", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to update todo")
			return
		}
		if member == nil {
			writeFieldErrors(w, []fieldError{{"assignedTo", "Assignee is not a member of this family"}})
			return
		}
	}

	todo, err := h.todos.Update(existing.ID, req.Title, req.Description, req.Completed, req.Priority, req.AssignedTo, due)
	if err != nil {
		h.logger.Error("update todo", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update todo")
		return
	}

	writeJSON(w, http.StatusOK, todo)
}

func (h *TodoHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	existing := h.fetchGated(w, r)
	if existing == nil {
		return
	}

	todo, err := h.todos.Toggle(existing.ID)
	if err != nil {
		h.logger.Error("toggle todo", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to toggle todo")
		return
	}

	writeJSON(w, http.StatusOK, todo)
}

func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	existing := h.fetchGated(w, r)
	if existing == nil {
		return
	}

	if err := h.todos.Delete(existing.ID); err != nil {
		h.logger.Error("delete todo", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete todo")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Todo deleted successfully"})
}
