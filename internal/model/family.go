package model

import "time"

type Family struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	InviteCode string    `json:"invite_code"`
	CreatedBy  int64     `json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
}

// FamilySummary is a family row joined with the caller's membership and the
// group's member count, as returned by the family list endpoint.
type FamilySummary struct {
	Family
	Role        string `json:"role"`
	MemberCount int    `json:"member_count"`
}

// Membership is one row of the (family, user) ledger.
type Membership struct {
	FamilyID int64     `json:"family_id"`
	UserID   int64     `json:"user_id"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

// Member is a membership joined with the user's display identity.
type Member struct {
	UserID      int64     `json:"id"`
	Username    string    `json:"username"`
	FullName    string    `json:"full_name"`
	AvatarColor string    `json:"avatar_color"`
	Role        string    `json:"role"`
	JoinedAt    time.Time `json:"joined_at"`
}

// Membership roles.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)
