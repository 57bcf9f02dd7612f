package store

import (
	"database/sql"
	"fmt"

	"github.com/Benny9193/Family-App/internal/model"
)

type NoteStore struct {
	db *sql.DB
}

func NewNoteStore(db *sql.DB) *NoteStore {
	return &NoteStore{db: db}
}

const noteSelect = `
	SELECT n.id, n.family_id, n.title, n.content, n.created_by,
	       u.username, u.full_name, n.created_at, n.updated_at
	FROM notes n
	JOIN users u ON n.created_by = u.id`

func scanNote(scanner interface{ Scan(...any) error }) (*model.Note, error) {
	var n model.Note
	err := scanner.Scan(
		&n.ID, &n.FamilyID, &n.Title, &n.Content, &n.CreatedBy,
		&n.CreatedByName, &n.CreatedByFullName, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *NoteStore) Create(familyID int64, title, content string, createdBy int64) (*model.Note, error) {
	result, err := s.db.Exec(
		`INSERT INTO notes (family_id, title, content, created_by) VALUES (?, ?, ?, ?)`,
		familyID, title, content, createdBy,
	)
	if err != nil {
		return nil, fmt.Errorf("insert note: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *NoteStore) GetByID(id int64) (*model.Note, error) {
	row := s.db.QueryRow(noteSelect+` WHERE n.id = ?`, id)
	n, err := scanNote(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get note: %w", err)
	}
	return n, nil
}

// ListByFamily returns a family's notes ordered by last update, newest first.
func (s *NoteStore) ListByFamily(familyID int64) ([]model.Note, error) {
	rows, err := s.db.Query(
		noteSelect+` WHERE n.family_id = ? ORDER BY n.updated_at DESC, n.id DESC`,
		familyID,
	)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var notes []model.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, *n)
	}
	return notes, rows.Err()
}

// Update replaces title and content and bumps updated_at.
func (s *NoteStore) Update(id int64, title, content string) (*model.Note, error) {
	_, err := s.db.Exec(
		`UPDATE notes SET title = ?, content = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		title, content, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}
	return s.GetByID(id)
}

// Delete removes a note. Attachment rows cascade via foreign key; the caller
// is responsible for the backing files.
func (s *NoteStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}
