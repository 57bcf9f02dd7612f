package store

import (
	"database/sql"
	"fmt"

	"github.com/Benny9193/Family-App/internal/model"
)

type AttachmentStore struct {
	db *sql.DB
}

func NewAttachmentStore(db *sql.DB) *AttachmentStore {
	return &AttachmentStore{db: db}
}

func scanAttachment(scanner interface{ Scan(...any) error }) (*model.Attachment, error) {
	var a model.Attachment
	err := scanner.Scan(
		&a.ID, &a.NoteID, &a.Filename, &a.OriginalName, &a.FilePath,
		&a.FileSize, &a.MimeType, &a.UploadedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

const attachmentCols = `id, note_id, filename, original_name, file_path, file_size, mime_type, uploaded_at`

func (s *AttachmentStore) Create(noteID int64, filename, originalName, filePath string, fileSize int64, mimeType string) (*model.Attachment, error) {
	result, err := s.db.Exec(
		`INSERT INTO note_attachments (note_id, filename, original_name, file_path, file_size, mime_type)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		noteID, filename, originalName, filePath, fileSize, mimeType,
	)
	if err != nil {
		return nil, fmt.Errorf("insert attachment: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	row := s.db.QueryRow(`SELECT `+attachmentCols+` FROM note_attachments WHERE id = ?`, id)
	return scanAttachment(row)
}

func (s *AttachmentStore) GetByID(id int64) (*model.Attachment, error) {
	row := s.db.QueryRow(`SELECT `+attachmentCols+` FROM note_attachments WHERE id = ?`, id)
	a, err := scanAttachment(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get attachment: %w", err)
	}
	return a, nil
}

func (s *AttachmentStore) ListByNote(noteID int64) ([]model.Attachment, error) {
	rows, err := s.db.Query(
		`SELECT `+attachmentCols+` FROM note_attachments WHERE note_id = ? ORDER BY uploaded_at ASC, id ASC`,
		noteID,
	)
	if err != nil {
		return nil, fmt.Errorf("list attachments: %w", err)
	}
	defer rows.Close()

	var attachments []model.Attachment
	for rows.Next() {
		a, err := scanAttachment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attachment: %w", err)
		}
		attachments = append(attachments, *a)
	}
	return attachments, rows.Err()
}

func (s *AttachmentStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM note_attachments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete attachment: %w", err)
	}
	return nil
}
