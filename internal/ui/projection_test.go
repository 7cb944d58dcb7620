package ui

import (
	"testing"

	"agenda/internal/session"
	"agenda/internal/storage"
)

func TestVisibleTasksTimedFirstAscending(t *testing.T) {
	in := []storage.Task{
		{ID: "1", Text: "no time"},
		{ID: "2", Text: "late", Time: "08:00"},
		{ID: "3", Text: "early", Time: "07:00"},
	}
	got := visibleTasks(in, session.FilterAll)
	want := []string{"3", "2", "1"}
	if len(got) != len(want) {
		t.Fatalf("expected %d tasks, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d: expected id %s, got %s", i, id, got[i].ID)
		}
	}
}

func TestVisibleTasksStableAmongUntimed(t *testing.T) {
	in := []storage.Task{
		{ID: "a", Text: "first untimed"},
		{ID: "b", Text: "second untimed"},
		{ID: "c", Text: "timed", Time: "12:00"},
		{ID: "d", Text: "third untimed"},
	}
	got := visibleTasks(in, session.FilterAll)
	want := []string{"c", "a", "b", "d"}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d: expected id %s, got %s", i, id, got[i].ID)
		}
	}
}

func TestVisibleTasksEqualTimesKeepStoreOrder(t *testing.T) {
	in := []storage.Task{
		{ID: "a", Time: "09:00"},
		{ID: "b", Time: "09:00"},
	}
	got := visibleTasks(in, session.FilterAll)
	if got[0].ID != "a" || got[1].ID != "b" {
		t.Fatalf("equal times must keep store order, got %v then %v", got[0].ID, got[1].ID)
	}
}

func TestVisibleTasksFilters(t *testing.T) {
	in := []storage.Task{
		{ID: "p", Text: "pending"},
		{ID: "c", Text: "completed", Completed: true},
	}
	if got := visibleTasks(in, session.FilterPending); len(got) != 1 || got[0].ID != "p" {
		t.Fatalf("pending filter: got %+v", got)
	}
	if got := visibleTasks(in, session.FilterCompleted); len(got) != 1 || got[0].ID != "c" {
		t.Fatalf("completed filter: got %+v", got)
	}
	if got := visibleTasks(in, session.FilterAll); len(got) != 2 {
		t.Fatalf("all filter: got %+v", got)
	}
}

func TestVisibleTasksDoesNotMutateInput(t *testing.T) {
	in := []storage.Task{
		{ID: "b", Time: "09:00"},
		{ID: "a", Time: "08:00"},
	}
	visibleTasks(in, session.FilterAll)
	if in[0].ID != "b" || in[1].ID != "a" {
		t.Fatalf("input slice reordered: %v then %v", in[0].ID, in[1].ID)
	}
}

func TestBadgeLabel(t *testing.T) {
	cases := map[int]string{1: "1", 9: "9", 10: "9+", 11: "9+", 42: "9+"}
	for n, want := range cases {
		if got := badgeLabel(n); got != want {
			t.Fatalf("badgeLabel(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestCountTasks(t *testing.T) {
	total, pending, done := countTasks([]storage.Task{
		{ID: "1"},
		{ID: "2", Completed: true},
		{ID: "3", Completed: true},
	})
	if total != 3 || pending != 1 || done != 2 {
		t.Fatalf("got total=%d pending=%d done=%d", total, pending, done)
	}
	total, pending, done = countTasks(nil)
	if total != 0 || pending != 0 || done != 0 {
		t.Fatalf("expected zero counts for empty day")
	}
}

func TestValidClockTime(t *testing.T) {
	valid := []string{"00:00", "09:30", "23:59"}
	for _, s := range valid {
		if !validClockTime(s) {
			t.Fatalf("expected %q valid", s)
		}
	}
	invalid := []string{"", "24:00", "9:30", "09:60", "0930", "ab:cd", "09:30:00"}
	for _, s := range invalid {
		if validClockTime(s) {
			t.Fatalf("expected %q invalid", s)
		}
	}
}
