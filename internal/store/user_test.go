package store

import (
	"testing"

	"github.com/Benny9193/Family-App/internal/database"
)

func setupUserTestDB(t *testing.T) *UserStore {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewUserStore(db)
}

func TestUserCreateAndGet(t *testing.T) {
	us := setupUserTestDB(t)

	user, err := us.Create("alice", "alice@example.com", "hashed-password", "Alice Smith")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("username = %q, want %q", user.Username, "alice")
	}
	if user.Email != "alice@example.com" {
		t.Errorf("email = %q, want %q", user.Email, "alice@example.com")
	}
	if user.FullName != "Alice Smith" {
		t.Errorf("full_name = %q, want %q", user.FullName, "Alice Smith")
	}
	if user.AvatarColor == "" {
		t.Error("expected a default avatar color")
	}
	if user.AvatarURL != nil {
		t.Errorf("avatar_url = %v, want nil", user.AvatarURL)
	}

	got, err := us.GetByID(user.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got == nil {
		t.Fatal("expected user, got nil")
	}
	if got.Password != "hashed-password" {
		t.Errorf("password = %q, want stored hash", got.Password)
	}

	byName, err := us.GetByUsername("alice")
	if err != nil {
		t.Fatalf("get user by username: %v", err)
	}
	if byName == nil || byName.ID != user.ID {
		t.Errorf("get by username = %v, want id %d", byName, user.ID)
	}
}

func TestUserNotFound(t *testing.T) {
	us := setupUserTestDB(t)

	got, err := us.GetByID(999)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got != nil {
		t.Error("expected nil for non-existent user")
	}

	got, err = us.GetByUsername("nobody")
	if err != nil {
		t.Fatalf("get user by username: %v", err)
	}
	if got != nil {
		t.Error("expected nil for non-existent username")
	}
}

func TestUsernameOrEmailExists(t *testing.T) {
	us := setupUserTestDB(t)

	if _, err := us.Create("alice", "alice@example.com", "hash", "Alice"); err != nil {
		t.Fatalf("create user: %v", err)
	}

	cases := []struct {
		username, email string
		want            bool
	}{
		{"alice", "other@example.com", true},
		{"other", "alice@example.com", true},
		{"alice", "alice@example.com", true},
		{"bob", "bob@example.com", false},
	}
	for _, c := range cases {
		got, err := us.UsernameOrEmailExists(c.username, c.email)
		if err != nil {
			t.Fatalf("check %q/%q: %v", c.username, c.email, err)
		}
		if got != c.want {
			t.Errorf("exists(%q, %q) = %v, want %v", c.username, c.email, got, c.want)
		}
	}
}

func TestUserDuplicateUsername(t *testing.T) {
	us := setupUserTestDB(t)

	if _, err := us.Create("alice", "alice@example.com", "hash", "Alice"); err != nil {
		t.Fatalf("create user: %v", err)
	}
	_, err := us.Create("alice", "different@example.com", "hash", "Other Alice")
	if err == nil {
		t.Fatal("expected error for duplicate username")
	}
	if !database.IsUniqueViolation(err) {
		t.Errorf("expected unique violation, got %v", err)
	}
}

func TestUserUpdateAvatar(t *testing.T) {
	us := setupUserTestDB(t)

	user, err := us.Create("alice", "alice@example.com", "hash", "Alice")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	previous, err := us.UpdateAvatar(user.ID, "/uploads/avatars/first.png")
	if err != nil {
		t.Fatalf("update avatar: %v", err)
	}
	if previous != nil {
		t.Errorf("previous = %v, want nil for first avatar", previous)
	}

	previous, err = us.UpdateAvatar(user.ID, "/uploads/avatars/second.png")
	if err != nil {
		t.Fatalf("update avatar again: %v", err)
	}
	if previous == nil || *previous != "/uploads/avatars/first.png" {
		t.Errorf("previous = %v, want first avatar path", previous)
	}

	got, err := us.GetByID(user.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.AvatarURL == nil || *got.AvatarURL != "/uploads/avatars/second.png" {
		t.Errorf("avatar_url = %v, want second avatar path", got.AvatarURL)
	}
}

func TestUserUpdateAvatarMissingUser(t *testing.T) {
	us := setupUserTestDB(t)

	if _, err := us.UpdateAvatar(999, "/uploads/avatars/x.png"); err == nil {
		t.Fatal("expected error for missing user")
	}
}
