package store

import (
	"testing"
	"time"

	"github.com/Benny9193/Family-App/internal/database"
	"github.com/Benny9193/Family-App/internal/model"
)

func setupEventTestDB(t *testing.T) (*EventStore, *FamilyStore, *UserStore) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewEventStore(db), NewFamilyStore(db), NewUserStore(db)
}

func createTestFamily(t *testing.T, fs *FamilyStore, creatorID int64) *model.Family {
	t.Helper()
	family, err := fs.Create("Test Family", creatorID)
	if err != nil {
		t.Fatalf("create family: %v", err)
	}
	return family
}

func TestEventCRUD(t *testing.T) {
	es, fs, us := setupEventTestDB(t)
	alice := createTestUser(t, us, "alice")
	family := createTestFamily(t, fs, alice.ID)

	start := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	event, err := es.Create(family.ID, "Dentist", "Checkup", start, &end, false, "#FF0000", alice.ID)
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	if event.Title != "Dentist" {
		t.Errorf("title = %q, want %q", event.Title, "Dentist")
	}
	if !event.StartDate.Equal(start) {
		t.Errorf("start_date = %v, want %v", event.StartDate, start)
	}
	if event.EndDate == nil || !event.EndDate.Equal(end) {
		t.Errorf("end_date = %v, want %v", event.EndDate, end)
	}
	if event.AllDay {
		t.Error("expected not all-day")
	}
	if event.Color != "#FF0000" {
		t.Errorf("color = %q, want %q", event.Color, "#FF0000")
	}
	if event.CreatedByName != "alice" {
		t.Errorf("created_by username = %q, want alice", event.CreatedByName)
	}

	updated, err := es.Update(event.ID, "Dentist (moved)", "Checkup", start.Add(time.Hour), nil, true, "#00FF00")
	if err != nil {
		t.Fatalf("update event: %v", err)
	}
	if updated.Title != "Dentist (moved)" {
		t.Errorf("title = %q, want %q", updated.Title, "Dentist (moved)")
	}
	if updated.EndDate != nil {
		t.Errorf("end_date = %v, want nil", updated.EndDate)
	}
	if !updated.AllDay {
		t.Error("expected all-day after update")
	}

	if err := es.Delete(event.ID); err != nil {
		t.Fatalf("delete event: %v", err)
	}
	got, err := es.GetByID(event.ID)
	if err != nil {
		t.Fatalf("get deleted event: %v", err)
	}
	if got != nil {
		t.Error("expected nil after delete")
	}
}

func TestEventNotFound(t *testing.T) {
	es, _, _ := setupEventTestDB(t)

	got, err := es.GetByID(999)
	if err != nil {
		t.Fatalf("get event: %v", err)
	}
	if got != nil {
		t.Error("expected nil for non-existent event")
	}
}

func TestEventListOrdering(t *testing.T) {
	es, fs, us := setupEventTestDB(t)
	alice := createTestUser(t, us, "alice")
	family := createTestFamily(t, fs, alice.ID)

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	// Insert out of chronological order.
	es.Create(family.ID, "Third", "", base.AddDate(0, 0, 2), nil, false, "#3B82F6", alice.ID)
	es.Create(family.ID, "First", "", base, nil, false, "#3B82F6", alice.ID)
	es.Create(family.ID, "Second", "", base.AddDate(0, 0, 1), nil, false, "#3B82F6", alice.ID)

	events, err := es.ListByFamily(family.ID)
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	want := []string{"First", "Second", "Third"}
	for i, w := range want {
		if events[i].Title != w {
			t.Errorf("events[%d].Title = %q, want %q", i, events[i].Title, w)
		}
	}
}

func TestEventListScopedToFamily(t *testing.T) {
	es, fs, us := setupEventTestDB(t)
	alice := createTestUser(t, us, "alice")
	bob := createTestUser(t, us, "bob")
	familyA := createTestFamily(t, fs, alice.ID)
	familyB := createTestFamily(t, fs, bob.ID)

	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	es.Create(familyA.ID, "Ours", "", start, nil, false, "#3B82F6", alice.ID)
	es.Create(familyB.ID, "Theirs", "", start, nil, false, "#3B82F6", bob.ID)

	events, err := es.ListByFamily(familyA.ID)
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) != 1 || events[0].Title != "Ours" {
		t.Errorf("events = %v, want only the family's own event", events)
	}
}

func TestEventCascadeOnFamilyDelete(t *testing.T) {
	es, fs, us := setupEventTestDB(t)
	alice := createTestUser(t, us, "alice")
	family := createTestFamily(t, fs, alice.ID)

	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	event, err := es.Create(family.ID, "Doomed", "", start, nil, false, "#3B82F6", alice.ID)
	if err != nil {
		t.Fatalf("create event: %v", err)
	}

	if err := fs.Delete(family.ID); err != nil {
		t.Fatalf("delete family: %v", err)
	}

	got, err := es.GetByID(event.ID)
	if err != nil {
		t.Fatalf("get event after family delete: %v", err)
	}
	if got != nil {
		t.Error("expected event to cascade away with its family")
	}
}
