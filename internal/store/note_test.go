package store

import (
	"testing"

	"github.com/Benny9193/Family-App/internal/database"
)

func setupNoteTestDB(t *testing.T) (*NoteStore, *FamilyStore, *UserStore) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewNoteStore(db), NewFamilyStore(db), NewUserStore(db)
}

func TestNoteCRUD(t *testing.T) {
	ns, fs, us := setupNoteTestDB(t)
	alice := createTestUser(t, us, "alice")
	family := createTestFamily(t, fs, alice.ID)

	note, err := ns.Create(family.ID, "Wifi password", "hunter2", alice.ID)
	if err != nil {
		t.Fatalf("create note: %v", err)
	}
	if note.Title != "Wifi password" {
		t.Errorf("title = %q, want %q", note.Title, "Wifi password")
	}
	if note.Content != "hunter2" {
		t.Errorf("content = %q, want %q", note.Content, "hunter2")
	}
	if note.CreatedByName != "alice" {
		t.Errorf("created_by username = %q, want alice", note.CreatedByName)
	}

	updated, err := ns.Update(note.ID, "Wifi password", "correct horse battery staple")
	if err != nil {
		t.Fatalf("update note: %v", err)
	}
	if updated.Content != "correct horse battery staple" {
		t.Errorf("content = %q, want updated content", updated.Content)
	}
	if updated.UpdatedAt.Before(note.UpdatedAt) {
		t.Errorf("updated_at went backwards: %v -> %v", note.UpdatedAt, updated.UpdatedAt)
	}

	if err := ns.Delete(note.ID); err != nil {
		t.Fatalf("delete note: %v", err)
	}
	got, err := ns.GetByID(note.ID)
	if err != nil {
		t.Fatalf("get deleted note: %v", err)
	}
	if got != nil {
		t.Error("expected nil after delete")
	}
}

func TestNoteNotFound(t *testing.T) {
	ns, _, _ := setupNoteTestDB(t)

	got, err := ns.GetByID(999)
	if err != nil {
		t.Fatalf("get note: %v", err)
	}
	if got != nil {
		t.Error("expected nil for non-existent note")
	}
}

func TestNoteListOrdering(t *testing.T) {
	ns, fs, us := setupNoteTestDB(t)
	alice := createTestUser(t, us, "alice")
	family := createTestFamily(t, fs, alice.ID)

	ns.Create(family.ID, "Oldest", "", alice.ID)
	ns.Create(family.ID, "Middle", "", alice.ID)
	ns.Create(family.ID, "Newest", "", alice.ID)

	notes, err := ns.ListByFamily(family.ID)
	if err != nil {
		t.Fatalf("list notes: %v", err)
	}
	if len(notes) != 3 {
		t.Fatalf("expected 3 notes, got %d", len(notes))
	}

	// Most recently updated first; equal timestamps fall back to id descending.
	want := []string{"Newest", "Middle", "Oldest"}
	for i, w := range want {
		if notes[i].Title != w {
			t.Errorf("notes[%d].Title = %q, want %q", i, notes[i].Title, w)
		}
	}
}

func TestNoteListScopedToFamily(t *testing.T) {
	ns, fs, us := setupNoteTestDB(t)
	alice := createTestUser(t, us, "alice")
	bob := createTestUser(t, us, "bob")
	familyA := createTestFamily(t, fs, alice.ID)
	familyB := createTestFamily(t, fs, bob.ID)

	ns.Create(familyA.ID, "Ours", "", alice.ID)
	ns.Create(familyB.ID, "Theirs", "", bob.ID)

	notes, err := ns.ListByFamily(familyA.ID)
	if err != nil {
		t.Fatalf("list notes: %v", err)
	}
	if len(notes) != 1 || notes[0].Title != "Ours" {
		t.Errorf("notes = %v, want only the family's own note", notes)
	}
}
