package client

import (
	"errors"
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }

var noon = time.Date(2024, 1, 10, 12, 30, 0, 0, time.UTC)

// TestIsPastDay checks the date-only boundary: yesterday is past, today and
// tomorrow are not, regardless of the time of day.
func TestIsPastDay(t *testing.T) {
	cases := []struct {
		date string
		now  time.Time
		want bool
	}{
		{"2024-01-09", noon, true},
		{"2024-01-10", noon, false},
		{"2024-01-11", noon, false},
		// late in the evening today is still today
		{"2024-01-10", time.Date(2024, 1, 10, 23, 59, 0, 0, time.UTC), false},
		// just after midnight, yesterday flips to past
		{"2024-01-10", time.Date(2024, 1, 11, 0, 1, 0, 0, time.UTC), true},
		{"2023-12-31", noon, true},
		{"not-a-date", noon, false},
	}
	for _, tc := range cases {
		if got := IsPastDay(tc.date, tc.now); got != tc.want {
			t.Errorf("IsPastDay(%q, %v) = %v, want %v", tc.date, tc.now, got, tc.want)
		}
	}
}

func TestHours(t *testing.T) {
	hours := Hours()
	if len(hours) != 16 {
		t.Fatalf("expected 16 hourly slots, got %d", len(hours))
	}
	if hours[0] != 7 || hours[len(hours)-1] != 22 {
		t.Errorf("expected hours 7..22, got %d..%d", hours[0], hours[len(hours)-1])
	}
	if SlotStart(hours[0]) != "07:00" {
		t.Errorf("expected 07:00, got %s", SlotStart(hours[0]))
	}
}

// TestSlotText verifies events render into their hour slot sorted by start,
// and other days' events stay out.
func TestSlotText(t *testing.T) {
	view := &DayView{
		Owner: "boss@x.com",
		Date:  "2024-01-10",
		Events: []Event{
			{ID: "1", Date: "2024-01-10", Start: strPtr("09:30"), Title: "Late standup"},
			{ID: "2", Date: "2024-01-10", Start: strPtr("09:00"), Title: "Standup"},
			{ID: "3", Date: "2024-01-11", Start: strPtr("09:00"), Title: "Tomorrow"},
			{ID: "4", Date: "2024-01-10", Start: nil, Title: "All day-ish"},
		},
	}

	if got := view.SlotText(9); got != "Standup\nLate standup" {
		t.Errorf("slot 9: got %q", got)
	}
	if got := view.SlotText(10); got != "" {
		t.Errorf("slot 10: expected empty, got %q", got)
	}
}

// TestEditSlotUpdatesExisting verifies editing a slot that already has an
// event at HH:00 rewrites its title in place.
func TestEditSlotUpdatesExisting(t *testing.T) {
	view := &DayView{
		Owner: "boss@x.com",
		Date:  "2024-01-10",
		Events: []Event{
			{ID: "1", OwnerEmail: "boss@x.com", Date: "2024-01-10", Start: strPtr("09:00"), Title: "Standup"},
		},
	}

	edit, err := view.EditSlot(9, "Standup2", noon)
	if err != nil {
		t.Fatalf("EditSlot: %v", err)
	}
	if edit == nil || edit.Create {
		t.Fatalf("expected an in-place update, got %+v", edit)
	}
	if edit.Event.ID != "1" || edit.Event.Title != "Standup2" {
		t.Errorf("unexpected edit: %+v", edit.Event)
	}
}

// TestEditSlotCreatesNew verifies editing an empty slot with non-blank text
// produces a creation for (owner, date, HH:00).
func TestEditSlotCreatesNew(t *testing.T) {
	view := &DayView{Owner: "boss@x.com", Date: "2024-01-10"}

	edit, err := view.EditSlot(14, "1:1 with Sam", noon)
	if err != nil {
		t.Fatalf("EditSlot: %v", err)
	}
	if edit == nil || !edit.Create {
		t.Fatalf("expected a creation, got %+v", edit)
	}
	ev := edit.Event
	if ev.OwnerEmail != "boss@x.com" || ev.Date != "2024-01-10" || ev.Title != "1:1 with Sam" {
		t.Errorf("unexpected event: %+v", ev)
	}
	if ev.Start == nil || *ev.Start != "14:00" {
		t.Errorf("expected start 14:00, got %v", ev.Start)
	}
}

// TestEditSlotBlankNoOp verifies clearing an already-empty slot does nothing.
func TestEditSlotBlankNoOp(t *testing.T) {
	view := &DayView{Owner: "boss@x.com", Date: "2024-01-10"}

	edit, err := view.EditSlot(14, "   ", noon)
	if err != nil {
		t.Fatalf("EditSlot: %v", err)
	}
	if edit != nil {
		t.Fatalf("expected no-op, got %+v", edit)
	}
}

// TestEditSlotPastDayRejected verifies past days refuse every edit,
// regardless of slot contents.
func TestEditSlotPastDayRejected(t *testing.T) {
	view := &DayView{
		Owner: "boss@x.com",
		Date:  "2024-01-09",
		Events: []Event{
			{ID: "1", Date: "2024-01-09", Start: strPtr("09:00"), Title: "Standup"},
		},
	}

	if _, err := view.EditSlot(9, "rewrite history", noon); !errors.Is(err, ErrPastDay) {
		t.Fatalf("expected ErrPastDay, got %v", err)
	}
}

// TestCanEditRemarks verifies the two read-only reasons stay distinct and
// that past days win for non-owners too.
func TestCanEditRemarks(t *testing.T) {
	if perm := CanEditRemarks("boss@x.com", "boss@x.com", "2024-01-10", noon); !perm.Editable {
		t.Errorf("owner on today should be editable, got %+v", perm)
	}

	perm := CanEditRemarks("viewer@x.com", "boss@x.com", "2024-01-10", noon)
	if perm.Editable || perm.Reason != "only the owner can edit remarks" {
		t.Errorf("non-owner: got %+v", perm)
	}

	perm = CanEditRemarks("boss@x.com", "boss@x.com", "2024-01-09", noon)
	if perm.Editable || perm.Reason != "past days are read-only" {
		t.Errorf("past day: got %+v", perm)
	}

	// When both apply, the past-day reason is the one shown.
	perm = CanEditRemarks("viewer@x.com", "boss@x.com", "2024-01-09", noon)
	if perm.Editable || perm.Reason != "past days are read-only" {
		t.Errorf("past day non-owner: got %+v", perm)
	}
}
