// Package storage owns the date-keyed task mapping: one JSON blob under a
// single key of the persistence adapter, read-modify-written on every
// mutation. A date key is only present while its list is non-empty, so
// "day has tasks" is a key-presence test.
package storage

import (
	"encoding/json"
	"errors"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"agenda/internal/calendar"
)

// DefaultKey is the adapter key the task mapping lives under.
const DefaultKey = "tasks"

// ErrEmptyText rejects a task whose text trims to nothing. Validation is
// the UI's job; this is the store's backstop so empty text is never
// persisted.
var ErrEmptyText = errors.New("task text is empty")

// Task is one timestamped entry of a day's list.
type Task struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Time      string `json:"time"` // "HH:MM", empty = no time set
	Completed bool   `json:"completed"`
}

// Store maps date keys to ordered task lists. Every mutation reads the
// current mapping from the adapter, applies the change, and writes the
// whole mapping back.
type Store struct {
	kv       Adapter
	key      string
	now      func() time.Time
	migrated bool
}

// New builds a store over the adapter. now supplies the wall clock for
// migration targeting and the id fallback; pass time.Now outside tests.
func New(kv Adapter, now func() time.Time) *Store {
	return &Store{kv: kv, key: DefaultKey, now: now}
}

// GetAll returns the full mapping. Absent, malformed, or wrong-shaped
// persisted data degrades to an empty mapping; this never fails.
func (s *Store) GetAll() map[string][]Task {
	raw, ok, err := s.kv.Read(s.key)
	if err != nil || !ok {
		return map[string][]Task{}
	}
	var all map[string][]Task
	if err := json.Unmarshal([]byte(raw), &all); err != nil || all == nil {
		return map[string][]Task{}
	}
	return all
}

// GetForDate returns the ordered list for the date, empty if absent.
func (s *Store) GetForDate(date string) []Task {
	return s.GetAll()[date]
}

// SaveForDate replaces the list at date. An empty list deletes the key.
func (s *Store) SaveForDate(date string, tasks []Task) error {
	all := s.GetAll()
	if len(tasks) > 0 {
		all[date] = tasks
	} else {
		delete(all, date)
	}
	return s.write(all)
}

// Add appends a fresh task to the date's list and returns it so the
// caller can highlight it. Text is trimmed; empty text is rejected.
func (s *Store) Add(date, text, at string) (Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Task{}, ErrEmptyText
	}
	task := Task{
		ID:   s.GenerateID(),
		Text: text,
		Time: at,
	}
	list := append(s.GetForDate(date), task)
	if err := s.SaveForDate(date, list); err != nil {
		return Task{}, err
	}
	return task, nil
}

// Update replaces text and time of the matching task in place, leaving
// its completed state alone. Unknown ids are a silent no-op.
func (s *Store) Update(date, id, text, at string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyText
	}
	list := s.GetForDate(date)
	for i := range list {
		if list[i].ID == id {
			list[i].Text = text
			list[i].Time = at
			return s.SaveForDate(date, list)
		}
	}
	return nil
}

// Toggle flips the completed flag of the matching task. Unknown ids are
// a silent no-op.
func (s *Store) Toggle(date, id string) error {
	list := s.GetForDate(date)
	for i := range list {
		if list[i].ID == id {
			list[i].Completed = !list[i].Completed
			return s.SaveForDate(date, list)
		}
	}
	return nil
}

// Remove filters the matching task out of the date's list. Removing the
// last task removes the date key entirely.
func (s *Store) Remove(date, id string) error {
	list := s.GetForDate(date)
	kept := list[:0:0]
	for _, t := range list {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(list) {
		return nil
	}
	return s.SaveForDate(date, kept)
}

// GenerateID returns an id unique with overwhelming probability: a
// random UUID, or a timestamp+random composite if the random source
// fails.
func (s *Store) GenerateID() string {
	if id, err := uuid.NewRandom(); err == nil {
		return id.String()
	}
	return strconv.FormatInt(s.now().UnixNano(), 36) + "-" + strconv.FormatUint(rand.Uint64(), 36)
}

func (s *Store) write(all map[string][]Task) error {
	data, err := json.Marshal(all)
	if err != nil {
		return err
	}
	return s.kv.Write(s.key, string(data))
}

func (s *Store) todayKey() string {
	return calendar.TodayKey(s.now())
}
