package client

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// The day grid shows hourly slots from 07:00 through 22:00.
const (
	DayStartHour = 7
	DayEndHour   = 22
)

var ErrPastDay = errors.New("past days are read-only")

// Hours lists the grid's slot hours in order.
func Hours() []int {
	hours := make([]int, 0, DayEndHour-DayStartHour+1)
	for h := DayStartHour; h <= DayEndHour; h++ {
		hours = append(hours, h)
	}
	return hours
}

// SlotStart formats an hour as the HH:00 start value events use.
func SlotStart(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

// IsPastDay reports whether the date (yyyy-mm-dd) is strictly before now's
// calendar day. Time-of-day is ignored on both sides. Unparseable dates are
// not considered past.
func IsPastDay(date string, now time.Time) bool {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return d.Before(today)
}

// DayView is one owner's calendar on one date, backed by the full event
// list for that owner.
type DayView struct {
	Owner  string
	Date   string
	Events []Event
}

// SlotEvents returns the events starting within the given hour on this
// day, ordered by start time.
func (d *DayView) SlotEvents(hour int) []Event {
	prefix := fmt.Sprintf("%02d:", hour)
	var matched []Event
	for _, ev := range d.Events {
		if ev.Date == d.Date && ev.Start != nil && strings.HasPrefix(*ev.Start, prefix) {
			matched = append(matched, ev)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return *matched[i].Start < *matched[j].Start
	})
	return matched
}

// SlotText renders a slot's events the way the grid shows them, one title
// per line.
func (d *DayView) SlotText(hour int) string {
	var titles []string
	for _, ev := range d.SlotEvents(hour) {
		titles = append(titles, ev.Title)
	}
	return strings.Join(titles, "\n")
}

// SlotEdit is the mutation an EditSlot call resolved to. Create is false
// when an existing event's title changes in place.
type SlotEdit struct {
	Create bool
	Event  Event
}

// EditSlot applies a text edit to an hour slot: the event already at
// (date, HH:00) gets the new title, otherwise a new event is created when
// the trimmed text is non-empty. A blank edit of an empty slot is a no-op
// and returns nil. Past days reject all edits.
func (d *DayView) EditSlot(hour int, text string, now time.Time) (*SlotEdit, error) {
	if IsPastDay(d.Date, now) {
		return nil, ErrPastDay
	}

	start := SlotStart(hour)
	for _, ev := range d.Events {
		if ev.Date == d.Date && ev.Start != nil && *ev.Start == start {
			ev.Title = text
			return &SlotEdit{Event: ev}, nil
		}
	}

	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	end := start
	return &SlotEdit{
		Create: true,
		Event: Event{
			OwnerEmail: d.Owner,
			Title:      text,
			Date:       d.Date,
			Start:      &start,
			End:        &end,
		},
	}, nil
}

// RemarkPermission says whether the remarks panel is editable and, when it
// is not, why.
type RemarkPermission struct {
	Editable bool
	Reason   string
}

// CanEditRemarks applies the remark rules client-side: only the owner may
// edit, and never on a past day. The past-day reason wins when both apply,
// since it explains why even the owner could not edit.
func CanEditRemarks(currentUser, owner, date string, now time.Time) RemarkPermission {
	if IsPastDay(date, now) {
		return RemarkPermission{Reason: "past days are read-only"}
	}
	if currentUser != owner {
		return RemarkPermission{Reason: "only the owner can edit remarks"}
	}
	return RemarkPermission{Editable: true}
}
