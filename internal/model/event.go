package model

import "time"

type Event struct {
	ID                int64      `json:"id"`
	FamilyID          int64      `json:"family_id"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	StartDate         time.Time  `json:"start_date"`
	EndDate           *time.Time `json:"end_date"`
	AllDay            bool       `json:"all_day"`
	Color             string     `json:"color"`
	CreatedBy         int64      `json:"created_by"`
	CreatedByName     string     `json:"created_by_name"`
	CreatedByFullName string     `json:"created_by_full_name"`
	CreatedAt         time.Time  `json:"created_at"`
}
