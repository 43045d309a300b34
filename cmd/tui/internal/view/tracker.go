package view

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/invoicely/internal/dashboard"
	"github.com/MrJamesThe3rd/invoicely/internal/timeentry"
)

const tickInterval = time.Second

type trackerState int

const (
	trackerStateIdle trackerState = iota
	trackerStateForm
	trackerStateRunning
)

type TrackerModel struct {
	session *Session

	state     trackerState
	form      *huh.Form
	input     *timerInput
	startedAt time.Time
	elapsed   time.Duration
	// run identifies the current stopwatch; ticks from an earlier run are dropped.
	run int

	table   table.Model
	entries []timeentry.TimeEntry

	status string
	err    error
}

type timerInput struct {
	project     string
	description string
	clientID    uuid.UUID
}

func NewTrackerModel(s *Session) TrackerModel {
	columns := []table.Column{
		{Title: "Start", Width: 8},
		{Title: "Project", Width: 24},
		{Title: "Client", Width: 20},
		{Title: "Duration", Width: 10},
		{Title: "Billable", Width: 8},
	}

	return TrackerModel{
		session: s,
		table:   newTable(columns),
	}
}

func (m TrackerModel) Title() string { return "Time Tracker" }

func (m TrackerModel) ShortHelp() string {
	switch m.state {
	case trackerStateForm:
		return "Navigate form | Esc: cancel"
	case trackerStateRunning:
		return "s: stop and save | x: discard"
	}

	return "Esc: back | n: start timer | r: refresh"
}

func (m TrackerModel) Init() tea.Cmd {
	return m.session.refreshCmd()
}

func (m TrackerModel) Running() bool {
	return m.state == trackerStateRunning
}

func (m TrackerModel) Elapsed() time.Duration {
	return m.elapsed
}

type tickMsg struct {
	run int
	at  time.Time
}

func (m TrackerModel) tickCmd() tea.Cmd {
	run := m.run

	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg{run: run, at: t}
	})
}

func (m TrackerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshedMsg:
		m.err = msg.err
		m.refreshTable()

		return m, nil

	case tickMsg:
		if m.state != trackerStateRunning || msg.run != m.run {
			return m, nil
		}

		m.elapsed = m.session.Now().Sub(m.startedAt)

		return m, m.tickCmd()

	case timerSavedMsg:
		if msg.err != nil {
			m.status = errorStyle(fmt.Sprintf("Error saving: %v", msg.err))
		} else {
			m.status = successStyle(fmt.Sprintf("Logged %s on %s.",
				dashboard.FormatDuration(msg.entry.Duration), msg.entry.ProjectName))
		}

		m.refreshTable()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(max(msg.Height-14, 5))
		return m, nil
	}

	switch m.state {
	case trackerStateForm:
		return m.updateForm(msg)
	case trackerStateRunning:
		return m.updateRunning(msg)
	}

	return m.updateIdle(msg)
}

func (m TrackerModel) updateIdle(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			return m, m.session.refreshCmd()
		case "n":
			return m.enterForm()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m TrackerModel) enterForm() (tea.Model, tea.Cmd) {
	m.input = &timerInput{}

	options := []huh.Option[uuid.UUID]{huh.NewOption("No client", uuid.Nil)}
	for _, c := range m.session.Store.Clients() {
		options = append(options, huh.NewOption(c.Name, c.ID))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("project").
				Title("Project").
				Value(&m.input.project).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("project cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&m.input.description),

			huh.NewSelect[uuid.UUID]().
				Key("client").
				Title("Client").
				Options(options...).
				Value(&m.input.clientID),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = trackerStateForm
	m.table.Blur()

	return m, m.form.Init()
}

func (m TrackerModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = trackerStateIdle
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m.start(m.input)
}

// start begins timing input from the session clock.
func (m TrackerModel) start(input *timerInput) (tea.Model, tea.Cmd) {
	m.input = input
	m.form = nil
	m.state = trackerStateRunning
	m.startedAt = m.session.Now()
	m.elapsed = 0
	m.run++
	m.status = ""

	return m, m.tickCmd()
}

func (m TrackerModel) updateRunning(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "s", "enter":
		cmd := m.stopCmd()
		m.stop()

		return m, cmd
	case "x":
		m.stop()
		m.status = "Timer discarded."

		return m, nil
	}

	return m, nil
}

func (m *TrackerModel) stop() {
	m.state = trackerStateIdle
	m.elapsed = 0
	m.table.Focus()
}

func (m TrackerModel) View() string {
	if m.session.Store.Loading() {
		return lipgloss.NewStyle().Padding(2).Render("Loading time entries...")
	}

	var top string

	switch m.state {
	case trackerStateRunning:
		top = fmt.Sprintf("%s  %s\n%s",
			activeStyle(FormatClock(m.elapsed)),
			m.input.project,
			lipgloss.NewStyle().Faint(true).Render(m.input.description))
	case trackerStateForm:
		top = lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("Start Timer\n\n" + m.form.View())
	default:
		top = "No timer running. Press n to start one."
	}

	today := dashboard.TodayTracked(m.session.Store.TimeEntries(), m.session.Now())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(top),
		fmt.Sprintf("Today: %s, %s earned", dashboard.FormatDuration(today.Minutes), FormatMoney(today.Earnings)),
		boxed(m.table.View()),
	)

	if m.err != nil {
		content = errorStyle(fmt.Sprintf("Error: %v", m.err)) + "\n" + content
	}

	if m.status != "" {
		content = m.status + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

// refreshTable lists the entries that started on the session clock's day, newest first.
func (m *TrackerModel) refreshTable() {
	now := m.session.Now()
	y, mo, d := now.Date()
	clients := m.session.Store.Clients()

	m.entries = nil

	all := m.session.Store.TimeEntries()
	for i := len(all) - 1; i >= 0; i-- {
		e := all[i]
		if ey, emo, ed := e.StartTime.In(now.Location()).Date(); ey == y && emo == mo && ed == d {
			m.entries = append(m.entries, e)
		}
	}

	rows := make([]table.Row, 0, len(m.entries))
	for _, e := range m.entries {
		client := ""
		if e.ClientID != nil {
			client = dashboard.ClientName(clients, *e.ClientID)
		}

		billable := "no"
		if e.IsBillable {
			billable = "yes"
		}

		rows = append(rows, table.Row{
			e.StartTime.In(now.Location()).Format("15:04"),
			e.ProjectName,
			client,
			dashboard.FormatDuration(e.Duration),
			billable,
		})
	}

	m.table.SetRows(rows)
}

// Messages

type timerSavedMsg struct {
	entry *timeentry.TimeEntry
	err   error
}

// stopCmd records the running stopwatch as a time entry billed at the client's rate.
func (m TrackerModel) stopCmd() tea.Cmd {
	var (
		clientID *uuid.UUID
		rate     float64
	)

	if id := m.input.clientID; id != uuid.Nil {
		clientID = &id

		if c, ok := dashboard.FindClient(m.session.Store.Clients(), id); ok {
			rate = c.HourlyRate
		}
	}

	params := timeentry.FromTimer(m.startedAt, m.session.Now(), m.input.project, m.input.description, clientID, rate)

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		e, err := m.session.Gateway.AddTimeEntry(ctx, m.session.UserID, params)

		return timerSavedMsg{entry: e, err: err}
	}
}
