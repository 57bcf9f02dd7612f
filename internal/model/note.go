package model

import "time"

type Note struct {
	ID                int64     `json:"id"`
	FamilyID          int64     `json:"family_id"`
	Title             string    `json:"title"`
	Content           string    `json:"content"`
	CreatedBy         int64     `json:"created_by"`
	CreatedByName     string    `json:"created_by_name"`
	CreatedByFullName string    `json:"created_by_full_name"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
