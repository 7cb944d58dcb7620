package storage

import "encoding/json"

// untitledText fills in for legacy entries that carry no usable text.
const untitledText = "untitled task"

// legacyEntry is the pre-date-keyed format: a bare array of tasks with
// two generations of field names. The older Portuguese names lose the
// tie-break: the first non-empty of text/texto (time/horario) wins.
type legacyEntry struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Texto     string `json:"texto"`
	Time      string `json:"time"`
	Horario   string `json:"horario"`
	Completed bool   `json:"completed"`
}

// Migrate rewrites a legacy single-list value into the date-keyed shape
// under today's key. Mapping-shaped, absent, and malformed values are a
// no-op; malformed data is swallowed, never surfaced. Runs at most once
// per process, before the first read.
func (s *Store) Migrate() error {
	if s.migrated {
		return nil
	}
	s.migrated = true

	raw, ok, err := s.kv.Read(s.key)
	if err != nil || !ok {
		return err
	}
	var legacy []legacyEntry
	if err := json.Unmarshal([]byte(raw), &legacy); err != nil {
		// Already mapping-shaped, or not JSON at all. GetAll deals with it.
		return nil
	}

	tasks := make([]Task, 0, len(legacy))
	for _, old := range legacy {
		t := Task{
			ID:        old.ID,
			Text:      firstNonEmpty(old.Text, old.Texto),
			Time:      firstNonEmpty(old.Time, old.Horario),
			Completed: old.Completed,
		}
		if t.ID == "" {
			t.ID = s.GenerateID()
		}
		if t.Text == "" {
			t.Text = untitledText
		}
		tasks = append(tasks, t)
	}

	all := map[string][]Task{}
	if len(tasks) > 0 {
		all[s.todayKey()] = tasks
	}
	return s.write(all)
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
