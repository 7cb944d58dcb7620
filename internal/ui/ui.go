package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"agenda/internal/calendar"
	"agenda/internal/config"
	"agenda/internal/session"
	"agenda/internal/storage"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
)

type field int

const (
	fieldText field = iota
	fieldDate
	fieldTime
)

// confirmWindow is how long an armed remove stays armed before it
// auto-cancels.
const confirmWindow = 2 * time.Second

type confirmTimeoutMsg struct {
	gen int
}

var (
	styleTitle    = lipgloss.NewStyle().Bold(true)
	styleFaint    = lipgloss.NewStyle().Faint(true)
	styleToday    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	styleSelected = lipgloss.NewStyle().Reverse(true)
	styleBadge    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	styleDone     = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	styleWarn     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Model is the whole view projection: it renders store + session state
// and turns key presses into store mutations and session transitions.
type Model struct {
	store *storage.Store
	cfg   config.Config
	sess  *session.Controller
	now   func() time.Time

	all    map[string][]storage.Task
	tasks  []storage.Task
	cursor int

	mode      mode
	input     textinput.Model
	field     field
	draftText string
	draftDate string
	draftTime string
	editID    string

	confirmDel bool
	pendingDel *storage.Task
	confirmGen int

	status string
}

func Run(store *storage.Store, cfg config.Config) error {
	m := NewModel(store, cfg, time.Now)
	program := tea.NewProgram(m)
	_, err := program.Run()
	return err
}

// NewModel wires the model with an injectable clock.
func NewModel(store *storage.Store, cfg config.Config, now func() time.Time) Model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 40

	m := Model{
		store:  store,
		cfg:    cfg,
		sess:   session.New(now(), session.ParseFilter(cfg.DefaultFilter)),
		now:    now,
		input:  ti,
		status: "Press 'a' to add, space to toggle, 'd' to remove.",
	}
	return m.refresh(session.RenderCalendar | session.RenderTasks)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.confirmDel {
			return m.updateConfirmRemove(msg.String())
		}
		if m.mode != modeList {
			return m.updateFormMode(msg.String(), msg)
		}
		return m.updateListMode(msg.String())
	case confirmTimeoutMsg:
		// A newer arm or an explicit answer outdates the pending reset.
		if m.confirmDel && msg.gen == m.confirmGen {
			m.confirmDel = false
			m.pendingDel = nil
			m.status = "Remove timed out"
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - 10
	}
	return m, nil
}

// refresh re-reads the views named by the render mask: the full mapping
// feeds the calendar badges, the selected day's projection feeds the
// list.
func (m Model) refresh(r session.Render) Model {
	if r&session.RenderCalendar != 0 {
		m.all = m.store.GetAll()
	}
	if r&session.RenderTasks != 0 {
		m.tasks = visibleTasks(m.all[m.sess.Selected()], m.sess.Filter())
		m.cursor = clampCursor(m.cursor, len(m.tasks))
	}
	return m
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	keys := m.cfg.Keys
	switch key {
	case "ctrl+c", keys.Quit:
		return m, tea.Quit
	case keys.Down:
		if len(m.tasks) > 0 {
			m.cursor = clampCursor(m.cursor+1, len(m.tasks))
		}
	case keys.Up:
		if m.cursor > 0 {
			m.cursor = clampCursor(m.cursor-1, len(m.tasks))
		}
	case keys.PrevDay:
		return m.selectShiftedDay(-1)
	case keys.NextDay:
		return m.selectShiftedDay(1)
	case keys.PrevMonth:
		m = m.refresh(m.sess.NavigateMonth(-1))
	case keys.NextMonth:
		m = m.refresh(m.sess.NavigateMonth(1))
	case keys.Today:
		m = m.refresh(m.sess.SelectDate(calendar.TodayKey(m.now())))
		m.status = "Jumped to today"
	case keys.Filter:
		m = m.refresh(m.sess.SetFilter(m.sess.Filter().Cycle()))
		m.status = fmt.Sprintf("Filter: %s", m.sess.Filter())
	case keys.Add:
		m.mode = modeAdd
		m.field = fieldText
		m.draftDate = m.sess.Selected()
		m.input.SetValue("")
		m.input.Placeholder = "Task description"
		m.input.Focus()
		m.status = "Add: description, then date, then time. Esc cancels."
		return m, textinput.Blink
	case keys.Toggle:
		if len(m.tasks) == 0 {
			return m, nil
		}
		t := m.tasks[m.cursor]
		if err := m.store.Toggle(m.sess.Selected(), t.ID); err != nil {
			m.status = fmt.Sprintf("save failed: %v", err)
			return m, nil
		}
		m = m.refresh(m.sess.TaskMutated(m.sess.Selected()))
		m.status = "Toggled task"
	case keys.Delete:
		if len(m.tasks) == 0 {
			return m, nil
		}
		t := m.tasks[m.cursor]
		m.confirmDel = true
		m.pendingDel = &t
		m.confirmGen++
		gen := m.confirmGen
		m.status = fmt.Sprintf("Remove %q? y to confirm, esc to cancel", t.Text)
		return m, tea.Tick(confirmWindow, func(time.Time) tea.Msg {
			return confirmTimeoutMsg{gen: gen}
		})
	case keys.Edit:
		if len(m.tasks) == 0 {
			m.status = "No tasks to edit"
			return m, nil
		}
		t := m.tasks[m.cursor]
		if t.Completed {
			m.status = "Completed tasks cannot be edited"
			return m, nil
		}
		m.mode = modeEdit
		m.field = fieldText
		m.editID = t.ID
		m.draftTime = t.Time
		m.input.SetValue(t.Text)
		m.input.Placeholder = "Task description"
		m.input.Focus()
		m.status = "Edit: description, then time. Esc cancels."
		return m, textinput.Blink
	}
	return m, nil
}

func (m Model) selectShiftedDay(delta int) (tea.Model, tea.Cmd) {
	key, err := calendar.ShiftDay(m.sess.Selected(), delta)
	if err != nil {
		return m, nil
	}
	m = m.refresh(m.sess.SelectDate(key))
	return m, nil
}

func (m Model) updateConfirmRemove(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "y", "Y", m.cfg.Keys.Delete:
		t := m.pendingDel
		m.confirmDel = false
		m.pendingDel = nil
		if t == nil {
			return m, nil
		}
		if err := m.store.Remove(m.sess.Selected(), t.ID); err != nil {
			m.status = fmt.Sprintf("remove failed: %v", err)
			return m, nil
		}
		m = m.refresh(m.sess.TaskMutated(m.sess.Selected()))
		m.status = fmt.Sprintf("Removed %q", t.Text)
		return m, nil
	case "n", "N", m.cfg.Keys.Cancel, "esc":
		m.confirmDel = false
		m.pendingDel = nil
		m.status = "Remove cancelled"
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) updateFormMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m = m.closeForm()
		m.status = "Cancelled"
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		return m.advanceForm()
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) advanceForm() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.input.Value())
	switch m.field {
	case fieldText:
		if value == "" {
			m.status = "Description is required"
			return m, nil
		}
		m.draftText = value
		if m.mode == modeAdd {
			m.field = fieldDate
			m.input.SetValue(m.draftDate)
			m.input.Placeholder = "YYYY-MM-DD"
			m.status = "Date for the task"
		} else {
			m.field = fieldTime
			m.input.SetValue(m.draftTime)
			m.input.Placeholder = "HH:MM (empty = no time)"
			m.status = "Time for the task"
		}
		return m, nil
	case fieldDate:
		y, mo, d, err := calendar.Parse(value)
		if err != nil {
			m.status = "Enter a valid date as YYYY-MM-DD"
			return m, nil
		}
		m.draftDate = calendar.Key(y, mo, d)
		m.field = fieldTime
		m.input.SetValue("")
		m.input.Placeholder = "HH:MM"
		m.status = "Time for the task"
		return m, nil
	case fieldTime:
		if m.mode == modeAdd {
			if !validClockTime(value) {
				m.status = "Time must be HH:MM"
				return m, nil
			}
			return m.submitAdd(value)
		}
		if value != "" && !validClockTime(value) {
			m.status = "Time must be HH:MM or empty"
			return m, nil
		}
		return m.submitEdit(value)
	}
	return m, nil
}

func (m Model) submitAdd(at string) (tea.Model, tea.Cmd) {
	task, err := m.store.Add(m.draftDate, m.draftText, at)
	if err != nil {
		m.status = fmt.Sprintf("save failed: %v", err)
		return m, nil
	}
	date := m.draftDate
	m = m.closeForm()
	m = m.refresh(m.sess.TaskMutated(date))
	for i, t := range m.tasks {
		if t.ID == task.ID {
			m.cursor = clampCursor(i, len(m.tasks))
			break
		}
	}
	m.status = fmt.Sprintf("Added %q", task.Text)
	return m, nil
}

func (m Model) submitEdit(at string) (tea.Model, tea.Cmd) {
	if err := m.store.Update(m.sess.Selected(), m.editID, m.draftText, at); err != nil {
		m.status = fmt.Sprintf("save failed: %v", err)
		return m, nil
	}
	m = m.closeForm()
	m = m.refresh(m.sess.TaskMutated(m.sess.Selected()))
	m.status = "Updated task"
	return m, nil
}

func (m Model) closeForm() Model {
	m.mode = modeList
	m.field = fieldText
	m.editID = ""
	m.draftText = ""
	m.draftTime = ""
	m.input.SetValue("")
	m.input.Blur()
	return m
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("Agenda"))
	label := calendar.FriendlyLabel(m.sess.Selected(), m.now())
	if label != "" {
		b.WriteString("  ")
		b.WriteString(styleFaint.Render(label))
	}
	b.WriteString("\n\n")

	b.WriteString(m.renderCalendar())
	b.WriteString("\n")
	b.WriteString(m.renderTasks())
	b.WriteString("\n")

	if m.mode != modeList {
		b.WriteString(m.formLabel())
		b.WriteString(" ")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.confirmDel {
		b.WriteString(styleWarn.Render(m.status))
	} else {
		b.WriteString(m.status)
	}
	b.WriteString("\n")
	b.WriteString(styleFaint.Render(renderHelp(m.cfg.Keys)))

	return b.String()
}

func (m Model) formLabel() string {
	verb := "Add"
	if m.mode == modeEdit {
		verb = "Edit"
	}
	switch m.field {
	case fieldDate:
		return verb + " date:"
	case fieldTime:
		return verb + " time:"
	default:
		return verb + " task:"
	}
}

func (m Model) renderCalendar() string {
	cur := m.sess.Cursor()
	today := calendar.TodayKey(m.now())

	var b strings.Builder
	b.WriteString(styleTitle.Render(cur.Title()))
	b.WriteString("\n")
	b.WriteString(styleFaint.Render("Su    Mo    Tu    We    Th    Fr    Sa"))
	b.WriteString("\n")

	lead := int(calendar.FirstWeekday(cur.Year, cur.Month))
	days := calendar.DaysInMonth(cur.Year, cur.Month)
	col := lead
	b.WriteString(strings.Repeat("      ", lead))

	for d := 1; d <= days; d++ {
		key := calendar.Key(cur.Year, cur.Month, d)
		cell := fmt.Sprintf("%2d", d)
		switch {
		case key == m.sess.Selected():
			cell = styleSelected.Render(cell)
		case key == today:
			cell = styleToday.Render(cell)
		}
		badge := "   "
		if n := len(m.all[key]); n > 0 {
			badge = styleBadge.Render(fmt.Sprintf("%-2s", badgeLabel(n))) + " "
		}
		b.WriteString(cell)
		b.WriteString(" ")
		b.WriteString(badge)
		col++
		if col == 7 && d != days {
			b.WriteString("\n")
			col = 0
		}
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderTasks() string {
	var b strings.Builder

	stored := m.all[m.sess.Selected()]
	total, pending, done := countTasks(stored)
	b.WriteString(styleFaint.Render(fmt.Sprintf("Total: %d  Pending: %d  Done: %d", total, pending, done)))
	b.WriteString("\n")

	if len(m.tasks) == 0 {
		b.WriteString(m.emptyMessage(total))
		b.WriteString("\n")
		return b.String()
	}

	for i, t := range m.tasks {
		cursor := " "
		if m.cursor == i && m.mode == modeList {
			cursor = ">"
		}
		checkbox := "[ ]"
		if t.Completed {
			checkbox = "[x]"
		}
		text := t.Text
		if t.Completed {
			text = styleDone.Render(text)
		}
		line := text
		if t.Time != "" {
			line = styleFaint.Render(t.Time+" — ") + text
		}
		fmt.Fprintf(&b, "%s %s %s\n", cursor, checkbox, line)
	}
	return b.String()
}

func (m Model) emptyMessage(totalStored int) string {
	if totalStored == 0 {
		return "No tasks for this day. Press 'a' to add one."
	}
	switch m.sess.Filter() {
	case session.FilterPending:
		return "No pending tasks"
	case session.FilterCompleted:
		return "No completed tasks"
	default:
		return "No tasks for this day. Press 'a' to add one."
	}
}

func renderHelp(k config.Keymap) string {
	return fmt.Sprintf("%s/%s move • %s add • %s edit • %s toggle • %s remove • %s/%s day • %s/%s month • %s today • %s filter • %s quit",
		k.Up, k.Down, k.Add, k.Edit, k.Toggle, k.Delete, k.PrevDay, k.NextDay, k.PrevMonth, k.NextMonth, k.Today, k.Filter, k.Quit)
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
