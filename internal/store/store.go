// Package store persists captured events as a flat JSON file under the
// user's data directory.
package store

import (
	"cmp"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"nlcal/internal/nlp"
)

// Entry is a single stored calendar event.
type Entry struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Date      string `json:"date"` // YYYY-MM-DD
	Time      string `json:"time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`
	CreatedAt string `json:"created_at"` // RFC3339
}

// dataDir returns the data directory path.
// Exported as a var for testing.
var dataDir = defaultDataDir

func defaultDataDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "nlcal")
}

func eventsPath() string {
	return filepath.Join(dataDir(), "events.json")
}

// Load reads the store and returns all entries sorted by date then time.
// Returns nil slice and nil error if the file does not exist.
func Load() ([]Entry, error) {
	data, err := os.ReadFile(eventsPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}

	sortEntries(entries)
	return entries, nil
}

// Append stores a parsed event and returns the saved entry.
// Swallows load errors on corrupt files (starts fresh).
func Append(ev nlp.Event) (Entry, error) {
	entry := Entry{
		ID:        uuid.NewString(),
		Title:     ev.Title,
		Date:      ev.Date,
		Time:      ev.Time,
		EndTime:   ev.EndTime,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	err := withLock(func() error {
		entries, err := Load()
		if err != nil {
			// Corrupt file — start fresh.
			entries = nil
		}
		entries = append(entries, entry)
		return atomicWrite(entries)
	})
	if err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// Remove deletes the first entry whose ID matches id exactly or by prefix.
// Returns false when nothing matched.
func Remove(id string) (bool, error) {
	found := false
	err := withLock(func() error {
		entries, err := Load()
		if err != nil {
			return err
		}

		idx := slices.IndexFunc(entries, func(e Entry) bool { return e.ID == id })
		if idx == -1 && id != "" {
			idx = slices.IndexFunc(entries, func(e Entry) bool {
				return strings.HasPrefix(e.ID, id)
			})
		}
		if idx == -1 {
			return nil
		}

		found = true
		entries = append(entries[:idx], entries[idx+1:]...)
		return atomicWrite(entries)
	})
	return found, err
}

// Upcoming returns entries dated today or later, relative to now's
// calendar date, in chronological order.
func Upcoming(now time.Time) ([]Entry, error) {
	entries, err := Load()
	if err != nil {
		return nil, err
	}

	// ISO dates compare chronologically as strings.
	today := now.Format("2006-01-02")
	var upcoming []Entry
	for _, e := range entries {
		if e.Date >= today {
			upcoming = append(upcoming, e)
		}
	}
	return upcoming, nil
}

// Clear removes all stored events.
func Clear() error {
	err := os.Remove(eventsPath())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func sortEntries(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		if c := cmp.Compare(a.Date, b.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.Time, b.Time)
	})
}

func atomicWrite(entries []Entry) error {
	path := eventsPath()

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}

	return os.Rename(tmp, path)
}
