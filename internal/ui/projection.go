package ui

import (
	"sort"
	"strconv"
	"time"

	"agenda/internal/session"
	"agenda/internal/storage"
)

// visibleTasks projects a day's stored list for display: filtered by the
// session filter, timed tasks first in ascending clock order, untimed
// tasks after them in store order.
func visibleTasks(tasks []storage.Task, filter session.Filter) []storage.Task {
	var out []storage.Task
	for _, t := range tasks {
		switch filter {
		case session.FilterPending:
			if t.Completed {
				continue
			}
		case session.FilterCompleted:
			if !t.Completed {
				continue
			}
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Time, out[j].Time
		if a == "" || b == "" {
			return a != "" && b == ""
		}
		return a < b
	})
	return out
}

// badgeLabel caps the per-day calendar count for display.
func badgeLabel(n int) string {
	if n > 9 {
		return "9+"
	}
	return strconv.Itoa(n)
}

// countTasks tallies the selected day's summary line.
func countTasks(tasks []storage.Task) (total, pending, done int) {
	total = len(tasks)
	for _, t := range tasks {
		if t.Completed {
			done++
		}
	}
	return total, total - done, done
}

// validClockTime accepts 24-hour "HH:MM" strings.
func validClockTime(s string) bool {
	if len(s) != 5 {
		return false
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}
