package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Benny9193/Family-App/internal/model"
)

type EventStore struct {
	db *sql.DB
}

func NewEventStore(db *sql.DB) *EventStore {
	return &EventStore{db: db}
}

const eventSelect = `
	SELECT e.id, e.family_id, e.title, e.description, e.start_date, e.end_date,
	       e.all_day, e.color, e.created_by, u.username, u.full_name, e.created_at
	FROM events e
	JOIN users u ON e.created_by = u.id`

func scanEvent(scanner interface{ Scan(...any) error }) (*model.Event, error) {
	var e model.Event
	var endDate sql.NullTime
	var allDay int
	err := scanner.Scan(
		&e.ID, &e.FamilyID, &e.Title, &e.Description, &e.StartDate, &endDate,
		&allDay, &e.Color, &e.CreatedBy, &e.CreatedByName, &e.CreatedByFullName, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.AllDay = allDay != 0
	if endDate.Valid {
		e.EndDate = &endDate.Time
	}
	return &e, nil
}

func (s *EventStore) Create(familyID int64, title, description string, startDate time.Time, endDate *time.Time, allDay bool, color string, createdBy int64) (*model.Event, error) {
	var allDayInt int
	if allDay {
		allDayInt = 1
	}
	var end sql.NullTime
	if endDate != nil {
		end = sql.NullTime{Time: endDate.UTC(), Valid: true}
	}

	result, err := s.db.Exec(
		`INSERT INTO events (family_id, title, description, start_date, end_date, all_day, color, created_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		familyID, title, description, startDate.UTC(), end, allDayInt, color, createdBy,
	)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *EventStore) GetByID(id int64) (*model.Event, error) {
	row := s.db.QueryRow(eventSelect+` WHERE e.id = ?`, id)
	e, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	return e, nil
}

// ListByFamily returns a family's events ordered by start time ascending.
func (s *EventStore) ListByFamily(familyID int64) ([]model.Event, error) {
	rows, err := s.db.Query(eventSelect+` WHERE e.family_id = ? ORDER BY e.start_date ASC`, familyID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

// Update replaces all mutable fields of an event.
func (s *EventStore) Update(id int64, title, description string, startDate time.Time, endDate *time.Time, allDay bool, color string) (*model.Event, error) {
	var allDayInt int
	if allDay {
		allDayInt = 1
	}
	var end sql.NullTime
	if endDate != nil {
		end = sql.NullTime{Time: endDate.UTC(), Valid: true}
	}

	_, err := s.db.Exec(
		`UPDATE events SET title = ?, description = ?, start_date = ?, end_date = ?, all_day = ?, color = ?
		 WHERE id = ?`,
		title, description, startDate.UTC(), end, allDayInt, color, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	return s.GetByID(id)
}

func (s *EventStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
