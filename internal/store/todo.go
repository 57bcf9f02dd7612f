package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Benny9193/Family-App/internal/model"
)

type TodoStore struct {
	db *sql.DB
}

func NewTodoStore(db *sql.DB) *TodoStore {
	return &TodoStore{db: db}
}

const todoSelect = `
	SELECT t.id, t.family_id, t.title, t.description, t.completed, t.priority,
	       t.assigned_to, t.due_date, t.created_by,
	       u1.username, u2.username, u2.full_name, t.created_at
	FROM todos t
	JOIN users u1 ON t.created_by = u1.id
	LEFT JOIN users u2 ON t.assigned_to = u2.id`

func scanTodo(scanner interface{ Scan(...any) error }) (*model.Todo, error) {
	var t model.Todo
	var completed int
	var assignedTo sql.NullInt64
	var dueDate sql.NullTime
	var assignedName, assignedFullName sql.NullString
	err := scanner.Scan(
		&t.ID, &t.FamilyID, &t.Title, &t.Description, &completed, &t.Priority,
		&assignedTo, &dueDate, &t.CreatedBy,
		&t.CreatedByName, &assignedName, &assignedFullName, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.Completed = completed != 0
	if assignedTo.Valid {
		t.AssignedTo = &assignedTo.Int64
	}
	if dueDate.Valid {
		t.DueDate = &dueDate.Time
	}
	if assignedName.Valid {
		t.AssignedToName = &assignedName.String
	}
	if assignedFullName.Valid {
		t.AssignedToFullName = &assignedFullName.String
	}
	return &t, nil
}

func (s *TodoStore) Create(familyID int64, title, description, priority string, assignedTo *int64, dueDate *time.Time, createdBy int64) (*model.Todo, error) {
	var assigned sql.NullInt64
	if assignedTo != nil {
		assigned = sql.NullInt64{Int64: *assignedTo, Valid: true}
	}
	var due sql.NullTime
	if dueDate != nil {
		due = sql.NullTime{Time: dueDate.UTC(), Valid: true}
	}

	result, err := s.db.Exec(
		`INSERT INTO todos (family_id, title, description, priority, assigned_to, due_date, created_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		familyID, title, description, priority, assigned, due, createdBy,
	)
	if err != nil {
		return nil, fmt.Errorf("insert todo: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *TodoStore) GetByID(id int64) (*model.Todo, error) {
	row := s.db.QueryRow(todoSelect+` WHERE t.id = ?`, id)
	t, err := scanTodo(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get todo: %w", err)
	}
	return t, nil
}

// ListByFamily returns a family's todos: open before completed, then by due
// date ascending, then most recently created first.
func (s *TodoStore) ListByFamily(familyID int64) ([]model.Todo, error) {
	rows, err := s.db.Query(
		todoSelect+` WHERE t.family_id = ?
		 ORDER BY t.completed ASC, t.due_date ASC, t.created_at DESC, t.id DESC`,
		familyID,
	)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()

	var todos []model.Todo
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		todos = append(todos, *t)
	}
	return todos, rows.Err()
}

// Update replaces all mutable fields of a todo.
func (s *TodoStore) Update(id int64, title, description string, completed bool, priority string, assignedTo *int64, dueDate *time.Time) (*model.Todo, error) {
	var completedInt int
	if completed {
		completedInt = 1
	}
	var assigned sql.NullInt64
	if assignedTo != nil {
		assigned = sql.NullInt64{Int64: *assignedTo, Valid: true}
	}
	var due sql.NullTime
	if dueDate != nil {
		due = sql.NullTime{Time: dueDate.UTC(), Valid: true}
	}

	_, err := s.db.Exec(
		`UPDATE todos SET title = ?, description = ?, completed = ?, priority = ?, assigned_to = ?, due_date = ?
		 WHERE id = ?`,
		title, description, completedInt, priority, assigned, due, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update todo: %w", err)
	}
	return s.GetByID(id)
}

// Toggle flips the completion flag and returns the updated row.
func (s *TodoStore) Toggle(id int64) (*model.Todo, error) {
	_, err := s.db.Exec(`UPDATE todos SET completed = 1 - completed WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("toggle todo: %w", err)
	}
	return s.GetByID(id)
}

func (s *TodoStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	return nil
}
