// ABOUTME: Bubbletea model for the interactive week by exercise grid.
// ABOUTME: Keys drive tracker operations; every view line mirrors tracker state.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/harperreed/gymbot/internal/models"
	"github.com/harperreed/gymbot/internal/pivot"
	"github.com/harperreed/gymbot/internal/tracker"
)

type mode int

const (
	modeBrowse mode = iota
	modeEdit
	modeNewName
	modeNewCategory
	modeConfirmDelete
)

type loadedMsg struct{ err error }

type actionMsg struct {
	note string
	err  error
}

type healthMsg tracker.HealthState

// Model is the interactive grid view.
type Model struct {
	ctx    context.Context
	tr     *tracker.Tracker
	prober tracker.Prober

	table   table.Model
	input   textinput.Model
	columns []pivot.Column
	weeks   []int
	col     int

	mode        mode
	editWeek    int
	editName    string
	pendingName string
	note        string
	health      tracker.HealthState

	styles Styles
}

// New creates the view over tr. prober backs the health line.
func New(ctx context.Context, tr *tracker.Tracker, prober tracker.Prober) Model {
	styles := DefaultStyles()

	t := table.New(
		table.WithFocused(true),
		table.WithHeight(12),
		table.WithStyles(styles.Table),
	)

	in := textinput.New()
	in.CharLimit = 40
	in.Width = 30

	return Model{
		ctx:    ctx,
		tr:     tr,
		prober: prober,
		table:  t,
		input:  in,
		health: tracker.HealthState{Status: tracker.StatusLoading},
		styles: styles,
	}
}

// Run starts the interactive view and blocks until the user quits.
func Run(ctx context.Context, tr *tracker.Tracker, prober tracker.Prober) error {
	_, err := tea.NewProgram(New(ctx, tr, prober), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// Init loads the grid and probes the backend.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.healthCmd())
}

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{err: m.tr.Load(m.ctx)}
	}
}

func (m Model) healthCmd() tea.Cmd {
	return func() tea.Msg {
		return healthMsg(tracker.Probe(m.ctx, m.prober))
	}
}

func (m Model) editCmd(week int, name, value string) tea.Cmd {
	return func() tea.Msg {
		applied, err := m.tr.Edit(m.ctx, week, name, value)
		if err != nil || !applied {
			return actionMsg{err: err}
		}
		return actionMsg{note: fmt.Sprintf("%s week %d set to %s", name, week, strings.TrimSpace(value))}
	}
}

func (m Model) addWeekCmd() tea.Cmd {
	return func() tea.Msg {
		week, err := m.tr.AddWeek(m.ctx)
		if err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{note: fmt.Sprintf("added week %d", week)}
	}
}

func (m Model) addExerciseCmd(name string, category models.Category) tea.Cmd {
	return func() tea.Msg {
		if err := m.tr.AddExercise(m.ctx, name, category); err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{note: fmt.Sprintf("added %s (%s)", strings.TrimSpace(name), category)}
	}
}

func (m Model) deleteCmd(name string) tea.Cmd {
	return func() tea.Msg {
		n, err := m.tr.DeleteExercise(m.ctx, name, func(string) bool { return true })
		if err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{note: fmt.Sprintf("deleted %s (%d records)", name, n)}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		m.refresh()
		return m, nil
	case actionMsg:
		if msg.err != nil {
			m.note = ""
		} else {
			m.note = msg.note
		}
		m.refresh()
		return m, nil
	case healthMsg:
		m.health = tracker.HealthState(msg)
		return m, nil
	case tea.KeyMsg:
		switch m.mode {
		case modeEdit, modeNewName, modeNewCategory:
			return m.updateInput(msg)
		case modeConfirmDelete:
			return m.updateConfirm(msg)
		default:
			return m.updateBrowse(msg)
		}
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "left", "h":
		if m.col > 0 {
			m.col--
			m.refresh()
		}
		return m, nil
	case "right", "l":
		if m.col < len(m.columns)-1 {
			m.col++
			m.refresh()
		}
		return m, nil
	case "enter":
		week, name, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.mode = modeEdit
		m.editWeek, m.editName = week, name
		m.input.Placeholder = "max reps"
		m.input.SetValue("")
		if c, _ := m.tr.Grid().Cell(week, name); !c.Empty() {
			m.input.SetValue(strconv.Itoa(*c.Reps))
		}
		m.input.Focus()
		return m, textinput.Blink
	case "w":
		m.note = ""
		return m, m.addWeekCmd()
	case "n":
		m.mode = modeNewName
		m.input.Placeholder = "exercise name"
		m.input.SetValue("")
		m.input.Focus()
		return m, textinput.Blink
	case "x":
		if _, name, ok := m.selectedColumn(); ok {
			m.mode = modeConfirmDelete
			m.pendingName = name
		}
		return m, nil
	case "r":
		m.note = ""
		return m, tea.Batch(m.loadCmd(), m.healthCmd())
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	m.refresh()
	return m, cmd
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.mode = modeBrowse
		m.input.Blur()
		return m, nil
	case "enter":
		value := m.input.Value()
		switch m.mode {
		case modeEdit:
			m.mode = modeBrowse
			m.input.Blur()
			return m, m.editCmd(m.editWeek, m.editName, value)
		case modeNewName:
			if strings.TrimSpace(value) == "" {
				m.note = models.ErrEmptyName.Error()
				return m, nil
			}
			m.pendingName = strings.TrimSpace(value)
			m.mode = modeNewCategory
			m.input.Placeholder = "push, pull, or leg"
			m.input.SetValue("")
			return m, nil
		case modeNewCategory:
			category, err := models.ParseCategory(value)
			if err != nil {
				m.note = err.Error()
				return m, nil
			}
			m.mode = modeBrowse
			m.input.Blur()
			m.note = ""
			return m, m.addExerciseCmd(m.pendingName, category)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = modeBrowse
	if msg.String() == "y" || msg.String() == "Y" {
		m.note = ""
		return m, m.deleteCmd(m.pendingName)
	}
	m.note = "delete cancelled"
	return m, nil
}

// selectedColumn returns the column under the cursor.
func (m Model) selectedColumn() (int, string, bool) {
	if m.col < 0 || m.col >= len(m.columns) {
		return 0, "", false
	}
	return m.col, m.columns[m.col].Name, true
}

// selected returns the (week, exercise) cell under the cursor.
func (m Model) selected() (int, string, bool) {
	_, name, ok := m.selectedColumn()
	row := m.table.Cursor()
	if !ok || row < 0 || row >= len(m.weeks) {
		return 0, "", false
	}
	return m.weeks[row], name, true
}

// refresh rebuilds the table from the tracker's current grid.
func (m *Model) refresh() {
	grid := m.tr.Grid()
	m.columns = grid.OrderedColumns()
	m.weeks = grid.Weeks
	if m.col >= len(m.columns) {
		m.col = len(m.columns) - 1
	}
	if m.col < 0 {
		m.col = 0
	}

	cols := []table.Column{{Title: "Week", Width: 6}}
	for i, c := range m.columns {
		title := c.Name
		if i == m.col {
			title = "> " + title
		}
		cols = append(cols, table.Column{Title: title, Width: max(len(title), 5) + 2})
	}

	cursor := m.table.Cursor()
	rows := make([]table.Row, 0, len(grid.Rows))
	for i, r := range grid.Rows {
		row := table.Row{strconv.Itoa(r.Week)}
		for j, c := range m.columns {
			text := "-"
			if cell := r.Cells[c.Name]; !cell.Empty() {
				text = strconv.Itoa(*cell.Reps)
			}
			if i == cursor && j == m.col {
				text = "[" + text + "]"
			}
			row = append(row, text)
		}
		rows = append(rows, row)
	}

	// Rows must shrink before columns so the table never indexes past a row.
	m.table.SetRows(nil)
	m.table.SetColumns(cols)
	m.table.SetRows(rows)
	if cursor >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

// View renders the grid with its header, status, and help lines.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("gymbot") + "  " + m.healthLine() + "\n\n")

	snap := m.tr.Snapshot()
	grid := snap.Grid
	if len(grid.Groups) > 0 {
		var parts []string
		for _, g := range grid.Groups {
			names := make([]string, len(g.Columns))
			for i, c := range g.Columns {
				names[i] = c.Name
			}
			parts = append(parts, m.styles.Category[g.Category].Render(string(g.Category))+" "+strings.Join(names, ", "))
		}
		b.WriteString(strings.Join(parts, "   ") + "\n")
	}

	if grid.Empty() {
		b.WriteString(m.styles.Status.Render("No exercises yet. Press n to add one.") + "\n")
	} else {
		b.WriteString(m.table.View() + "\n")
	}

	for _, c := range grid.Conflicts {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("week %d %s has %d records; showing the first", c.Week, c.Name, len(c.IDs))) + "\n")
	}

	if snap.Loading {
		b.WriteString(m.styles.Status.Render("Loading...") + "\n")
	}
	if snap.Err != "" {
		b.WriteString(m.styles.Error.Render(snap.Err) + "\n")
	}
	if m.note != "" {
		b.WriteString(m.styles.Status.Render(m.note) + "\n")
	}

	switch m.mode {
	case modeEdit:
		b.WriteString(m.styles.Prompt.Render(fmt.Sprintf("%s week %d: ", m.editName, m.editWeek)) + m.input.View() + "\n")
	case modeNewName:
		b.WriteString(m.styles.Prompt.Render("New exercise: ") + m.input.View() + "\n")
	case modeNewCategory:
		b.WriteString(m.styles.Prompt.Render(fmt.Sprintf("Category for %s: ", m.pendingName)) + m.input.View() + "\n")
	case modeConfirmDelete:
		b.WriteString(m.styles.Prompt.Render(fmt.Sprintf("Delete %s from every week? [y/N]", m.pendingName)) + "\n")
	default:
		b.WriteString(m.styles.Help.Render("arrows move • enter edit • w add week • n new exercise • x delete • r reload • q quit") + "\n")
	}

	return b.String()
}

func (m Model) healthLine() string {
	switch m.health.Status {
	case tracker.StatusConnected:
		label := "backend connected"
		if m.health.Info != nil {
			label = fmt.Sprintf("%s %s connected", m.health.Info.Application, m.health.Info.Version)
		}
		return m.styles.Healthy.Render("● " + label)
	case tracker.StatusError:
		return m.styles.Unwell.Render("● " + m.health.Message + " (r to retry)")
	default:
		return m.styles.Status.Render("● checking backend...")
	}
}
