// Package session reconciles the selected date with the displayed month.
// The controller is the only place allowed to move both together; views
// learn what to refresh from the Render mask each transition returns.
package session

import (
	"time"

	"agenda/internal/calendar"
)

// Filter narrows the task list projection for the selected date.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterPending   Filter = "pending"
	FilterCompleted Filter = "completed"
)

// ParseFilter maps a config value onto a filter mode, defaulting to all.
func ParseFilter(s string) Filter {
	switch Filter(s) {
	case FilterPending:
		return FilterPending
	case FilterCompleted:
		return FilterCompleted
	default:
		return FilterAll
	}
}

// Cycle returns the next filter mode in all → pending → completed order.
func (f Filter) Cycle() Filter {
	switch f {
	case FilterAll:
		return FilterPending
	case FilterPending:
		return FilterCompleted
	default:
		return FilterAll
	}
}

// Render names the views a transition invalidated.
type Render uint8

const (
	RenderCalendar Render = 1 << iota
	RenderTasks
)

// Controller holds the non-persisted session state: which date is
// selected, which month the grid shows, and the active filter.
type Controller struct {
	selected string
	cursor   calendar.Cursor
	filter   Filter
}

// New starts a session on today's date and the current month.
func New(now time.Time, filter Filter) *Controller {
	return &Controller{
		selected: calendar.TodayKey(now),
		cursor:   calendar.CursorOf(now),
		filter:   filter,
	}
}

func (c *Controller) Selected() string        { return c.selected }
func (c *Controller) Cursor() calendar.Cursor { return c.cursor }
func (c *Controller) Filter() Filter          { return c.filter }

// SelectDate moves the selection. When the date falls outside the
// displayed month the cursor snaps to its month, so the grid always
// contains the selection after a cross-month select.
func (c *Controller) SelectDate(key string) Render {
	c.selected = key
	if cur, err := calendar.CursorForKey(key); err == nil && cur != c.cursor {
		c.cursor = cur
	}
	return RenderCalendar | RenderTasks
}

// NavigateMonth shifts the displayed month without touching the
// selection.
func (c *Controller) NavigateMonth(delta int) Render {
	c.cursor = c.cursor.Shift(delta)
	return RenderCalendar
}

// SetFilter changes the task list projection for the current selection.
func (c *Controller) SetFilter(f Filter) Render {
	c.filter = f
	return RenderTasks
}

// TaskMutated records that the store changed for a date: the list and the
// badge counts both need a refresh. An add that targeted another day
// moves the selection there.
func (c *Controller) TaskMutated(date string) Render {
	if date != c.selected {
		return c.SelectDate(date)
	}
	return RenderCalendar | RenderTasks
}
