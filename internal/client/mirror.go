package client

import (
	"context"
	"fmt"
	"time"
)

// Mirror keeps the local cache in step with the server: day views are
// fetched from the API and written through to the cache, and edits go to
// the API first. When the server is unreachable, reads serve the cached
// copy and report it as stale.
type Mirror struct {
	api   *Client
	cache *Cache
	now   func() time.Time
}

func NewMirror(api *Client, cache *Cache) *Mirror {
	return &Mirror{api: api, cache: cache, now: time.Now}
}

// OpenDay loads the owner's events for a date. stale is true when the
// events came from the cache because the server could not be reached.
func (m *Mirror) OpenDay(ctx context.Context, owner, date string) (view *DayView, stale bool, err error) {
	events, err := m.api.ListEvents(ctx, owner)
	if err != nil {
		cached, found, cacheErr := m.cache.LoadEvents(owner)
		if cacheErr != nil || !found {
			return nil, false, err
		}
		return &DayView{Owner: owner, Date: date, Events: cached}, true, nil
	}

	if err := m.cache.SaveEvents(owner, events); err != nil {
		return nil, false, err
	}
	return &DayView{Owner: owner, Date: date, Events: events}, false, nil
}

// EditSlot applies a slot edit through the API and writes the result to
// the cache. No-op edits return nil without touching either.
func (m *Mirror) EditSlot(ctx context.Context, view *DayView, hour int, text string) error {
	edit, err := view.EditSlot(hour, text, m.now())
	if err != nil {
		return err
	}
	if edit == nil {
		return nil
	}

	if edit.Create {
		id, err := m.api.CreateEvent(ctx, edit.Event)
		if err != nil {
			return err
		}
		edit.Event.ID = id
		view.Events = append(view.Events, edit.Event)
	} else {
		if err := m.api.UpdateEvent(ctx, edit.Event); err != nil {
			return err
		}
		for i := range view.Events {
			if view.Events[i].ID == edit.Event.ID {
				view.Events[i] = edit.Event
				break
			}
		}
	}

	return m.cache.SaveEvents(view.Owner, view.Events)
}

// Remark loads the owner's remark, falling back to the cache offline.
func (m *Mirror) Remark(ctx context.Context, owner string) (remark Remark, stale bool, err error) {
	remark, err = m.api.GetRemark(ctx, owner)
	if err != nil {
		cached, found, cacheErr := m.cache.LoadRemark(owner)
		if cacheErr != nil || !found {
			return Remark{}, false, err
		}
		return cached, true, nil
	}

	if err := m.cache.SaveRemark(remark); err != nil {
		return Remark{}, false, err
	}
	return remark, false, nil
}

// SaveRemark enforces the client-side remark rules, then writes through
// API first, cache second.
func (m *Mirror) SaveRemark(ctx context.Context, currentUser, owner, date, text string) error {
	perm := CanEditRemarks(currentUser, owner, date, m.now())
	if !perm.Editable {
		return fmt.Errorf("remarks are read-only: %s", perm.Reason)
	}

	if err := m.api.SetRemark(ctx, owner, text); err != nil {
		return err
	}
	return m.cache.SaveRemark(Remark{OwnerEmail: owner, Remarks: text})
}
