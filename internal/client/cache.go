package client

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
)

// Cache is the local mirror of server data, one JSON file per owner. It is
// strictly an offline copy: reads fall back to it when the server is
// unreachable and every successful fetch or save writes through to it. The
// server stays the source of truth.
type Cache struct {
	Dir string
}

func NewCache(dir string) *Cache {
	return &Cache{Dir: dir}
}

func (c *Cache) eventsPath(owner string) string {
	return filepath.Join(c.Dir, "events_"+url.QueryEscape(owner)+".json")
}

func (c *Cache) remarkPath(owner string) string {
	return filepath.Join(c.Dir, "remarks_"+url.QueryEscape(owner)+".json")
}

func (c *Cache) sessionPath() string {
	return filepath.Join(c.Dir, "session.json")
}

func (c *Cache) read(path string, out any) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("parsing %s: %w", path, err)
	}
	return true, nil
}

func (c *Cache) write(path string, v any) error {
	if err := os.MkdirAll(c.Dir, 0o700); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// LoadEvents returns the cached events for an owner. A missing cache file
// yields an empty list and found=false.
func (c *Cache) LoadEvents(owner string) (events []Event, found bool, err error) {
	events = []Event{}
	found, err = c.read(c.eventsPath(owner), &events)
	return events, found, err
}

func (c *Cache) SaveEvents(owner string, events []Event) error {
	return c.write(c.eventsPath(owner), events)
}

func (c *Cache) LoadRemark(owner string) (Remark, bool, error) {
	remark := Remark{OwnerEmail: owner}
	found, err := c.read(c.remarkPath(owner), &remark)
	return remark, found, err
}

func (c *Cache) SaveRemark(remark Remark) error {
	return c.write(c.remarkPath(remark.OwnerEmail), remark)
}

// LoadSession restores the saved login, if any.
func (c *Cache) LoadSession() (Session, bool, error) {
	var sess Session
	found, err := c.read(c.sessionPath(), &sess)
	return sess, found, err
}

func (c *Cache) SaveSession(sess Session) error {
	return c.write(c.sessionPath(), sess)
}
