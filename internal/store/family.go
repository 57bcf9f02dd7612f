package store

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/Benny9193/Family-App/internal/database"
	"github.com/Benny9193/Family-App/internal/model"
)

// maxInviteAttempts bounds invite-code regeneration when a freshly generated
// code collides with an existing family. With a 2^32 code space a single
// retry is already vanishingly unlikely.
const maxInviteAttempts = 5

type FamilyStore struct {
	db *sql.DB
}

func NewFamilyStore(db *sql.DB) *FamilyStore {
	return &FamilyStore{db: db}
}

func scanFamily(scanner interface{ Scan(...any) error }) (*model.Family, error) {
	var f model.Family
	err := scanner.Scan(&f.ID, &f.Name, &f.InviteCode, &f.CreatedBy, &f.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

const familyCols = `id, name, invite_code, created_by, created_at`

// generateInviteCode returns 4 cryptographically random bytes hex-encoded and
// upper-cased: an 8-character human-enterable code.
func generateInviteCode() (string, error) {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate invite code: %w", err)
	}
	return strings.ToUpper(hex.EncodeToString(b)), nil
}

// Create inserts a family with a fresh invite code and its creator's admin
// membership in a single transaction. A collision on the invite code's
// uniqueness constraint regenerates the code and retries.
func (s *FamilyStore) Create(name string, creatorID int64) (*model.Family, error) {
	for attempt := 0; attempt < maxInviteAttempts; attempt++ {
		code, err := generateInviteCode()
		if err != nil {
			return nil, err
		}

		id, err := s.createWithCode(name, code, creatorID)
		if err != nil {
			if database.IsUniqueViolation(err) {
				continue
			}
			return nil, err
		}
		return s.GetByID(id)
	}
	return nil, fmt.Errorf("create family: exhausted %d invite code attempts", maxInviteAttempts)
}

func (s *FamilyStore) createWithCode(name, code string, creatorID int64) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`INSERT INTO families (name, invite_code, created_by) VALUES (?, ?, ?)`,
		name, code, creatorID,
	)
	if err != nil {
		return 0, fmt.Errorf("insert family: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	if _, err := tx.Exec(
		`INSERT INTO family_members (family_id, user_id, role) VALUES (?, ?, ?)`,
		id, creatorID, model.RoleAdmin,
	); err != nil {
		return 0, fmt.Errorf("insert creator membership: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit tx: %w", err)
	}
	return id, nil
}

func (s *FamilyStore) GetByID(id int64) (*model.Family, error) {
	row := s.db.QueryRow(`SELECT `+familyCols+` FROM families WHERE id = ?`, id)
	f, err := scanFamily(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get family: %w", err)
	}
	return f, nil
}

// GetByInviteCode looks up a family by invite code. Codes are stored
// upper-case; the input is normalized before comparison.
func (s *FamilyStore) GetByInviteCode(code string) (*model.Family, error) {
	row := s.db.QueryRow(
		`SELECT `+familyCols+` FROM families WHERE invite_code = ?`,
		strings.ToUpper(strings.TrimSpace(code)),
	)
	f, err := scanFamily(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get family by invite code: %w", err)
	}
	return f, nil
}

func (s *FamilyStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM families WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete family: %w", err)
	}
	return nil
}

// AddMember inserts a membership row. The (family_id, user_id) primary key
// rejects duplicate redemption at the storage layer; callers can test for it
// with database.IsUniqueViolation.
func (s *FamilyStore) AddMember(familyID, userID int64, role string) (*model.Membership, error) {
	if _, err := s.db.Exec(
		`INSERT INTO family_members (family_id, user_id, role) VALUES (?, ?, ?)`,
		familyID, userID, role,
	); err != nil {
		return nil, fmt.Errorf("add member: %w", err)
	}
	return s.GetMember(familyID, userID)
}

func (s *FamilyStore) GetMember(familyID, userID int64) (*model.Membership, error) {
	var m model.Membership
	err := s.db.QueryRow(
		`SELECT family_id, user_id, role, joined_at FROM family_members WHERE family_id = ? AND user_id = ?`,
		familyID, userID,
	).Scan(&m.FamilyID, &m.UserID, &m.Role, &m.JoinedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get member: %w", err)
	}
	return &m, nil
}

// IsMember is the access gate: it reports whether userID currently holds a
// membership row for familyID. Every family-scoped read or write must pass
// through this check before touching resource data.
func (s *FamilyStore) IsMember(familyID, userID int64) (bool, error) {
	var exists int
	err := s.db.QueryRow(
		`SELECT 1 FROM family_members WHERE family_id = ? AND user_id = ?`,
		familyID, userID,
	).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check membership: %w", err)
	}
	return true, nil
}

// ListForUser returns the families userID belongs to, newest first, each with
// the caller's role and the family's member count.
func (s *FamilyStore) ListForUser(userID int64) ([]model.FamilySummary, error) {
	rows, err := s.db.Query(
		`SELECT f.id, f.name, f.invite_code, f.created_by, f.created_at, fm.role,
		        (SELECT COUNT(*) FROM family_members WHERE family_id = f.id) AS member_count
		 FROM families f
		 JOIN family_members fm ON f.id = fm.family_id
		 WHERE fm.user_id = ?
		 ORDER BY f.created_at DESC, f.id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list families for user: %w", err)
	}
	defer rows.Close()

	var families []model.FamilySummary
	for rows.Next() {
		var fs model.FamilySummary
		if err := rows.Scan(&fs.ID, &fs.Name, &fs.InviteCode, &fs.CreatedBy, &fs.CreatedAt, &fs.Role, &fs.MemberCount); err != nil {
			return nil, fmt.Errorf("scan family summary: %w", err)
		}
		families = append(families, fs)
	}
	return families, rows.Err()
}

// ListMembers returns all members of a family with display identity, ordered
// by join time ascending.
func (s *FamilyStore) ListMembers(familyID int64) ([]model.Member, error) {
	rows, err := s.db.Query(
		`SELECT u.id, u.username, u.full_name, u.avatar_color, fm.role, fm.joined_at
		 FROM users u
		 JOIN family_members fm ON u.id = fm.user_id
		 WHERE fm.family_id = ?
		 ORDER BY fm.joined_at ASC, u.id ASC`,
		familyID,
	)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	var members []model.Member
	for rows.Next() {
		var m model.Member
		if err := rows.Scan(&m.UserID, &m.Username, &m.FullName, &m.AvatarColor, &m.Role, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}
