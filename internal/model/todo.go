package model

import "time"

type Todo struct {
	ID                 int64      `json:"id"`
	FamilyID           int64      `json:"family_id"`
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	Completed          bool       `json:"completed"`
	Priority           string     `json:"priority"`
	AssignedTo         *int64     `json:"assigned_to"`
	DueDate            *time.Time `json:"due_date"`
	CreatedBy          int64      `json:"created_by"`
	CreatedByName      string     `json:"created_by_name"`
	AssignedToName     *string    `json:"assigned_to_name"`
	AssignedToFullName *string    `json:"assigned_to_full_name"`
	CreatedAt          time.Time  `json:"created_at"`
}
