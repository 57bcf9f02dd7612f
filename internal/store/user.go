package store

import (
	"database/sql"
	"fmt"

	"github.com/Benny9193/Family-App/internal/model"
)

type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

func scanUser(scanner interface{ Scan(...any) error }) (*model.User, error) {
	var u model.User
	var avatarURL sql.NullString
	err := scanner.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.FullName, &u.AvatarColor, &avatarURL, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	if avatarURL.Valid {
		u.AvatarURL = &avatarURL.String
	}
	return &u, nil
}

const userCols = `id, username, email, password, full_name, avatar_color, avatar_url, created_at`

func (s *UserStore) Create(username, email, passwordHash, fullName string) (*model.User, error) {
	result, err := s.db.Exec(
		`INSERT INTO users (username, email, password, full_name) VALUES (?, ?, ?, ?)`,
		username, email, passwordHash, fullName,
	)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *UserStore) GetByID(id int64) (*model.User, error) {
	row := s.db.QueryRow(`SELECT `+userCols+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *UserStore) GetByUsername(username string) (*model.User, error) {
	row := s.db.QueryRow(`SELECT `+userCols+` FROM users WHERE username = ?`, username)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return u, nil
}

// UsernameOrEmailExists reports whether any user already holds the given
// username or email. Registration checks this before hashing a password.
func (s *UserStore) UsernameOrEmailExists(username, email string) (bool, error) {
	var exists int
	err := s.db.QueryRow(
		`SELECT 1 FROM users WHERE username = ? OR email = ?`,
		username, email,
	).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check username or email: %w", err)
	}
	return true, nil
}

// UpdateAvatar replaces the user's avatar URL and returns the previous one so
// the caller can remove the orphaned file.
func (s *UserStore) UpdateAvatar(id int64, avatarURL string) (previous *string, err error) {
	var old sql.NullString
	err = s.db.QueryRow(`SELECT avatar_url FROM users WHERE id = ?`, id).Scan(&old)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("update avatar: user %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get previous avatar: %w", err)
	}

	if _, err := s.db.Exec(`UPDATE users SET avatar_url = ? WHERE id = ?`, avatarURL, id); err != nil {
		return nil, fmt.Errorf("update avatar: %w", err)
	}

	if old.Valid {
		return &old.String, nil
	}
	return nil, nil
}
