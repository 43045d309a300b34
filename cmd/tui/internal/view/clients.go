package view

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/invoicely/internal/client"
	"github.com/MrJamesThe3rd/invoicely/internal/dashboard"
)

type clientsState int

const (
	clientsStateBrowse clientsState = iota
	clientsStateSearch
	clientsStateAdd
	clientsStateDelete
)

type ClientsModel struct {
	session *Session

	state   clientsState
	table   table.Model
	search  textinput.Model
	form    *huh.Form
	clients []client.Client

	status string
	err    error

	input *clientInput
}

// clientInput holds the form bindings. It sits behind a pointer so the bindings
// survive the model being copied between updates.
type clientInput struct {
	name    string
	email   string
	company string
	rate    string
	confirm bool
}

func NewClientsModel(s *Session) ClientsModel {
	columns := []table.Column{
		{Title: "Name", Width: 24},
		{Title: "Company", Width: 20},
		{Title: "Email", Width: 28},
		{Title: "Rate", Width: 10},
		{Title: "Tags", Width: 20},
	}

	search := textinput.New()
	search.Placeholder = "name, email or company"
	search.Prompt = "/ "

	return ClientsModel{
		session: s,
		table:   newTable(columns),
		search:  search,
	}
}

func (m ClientsModel) Title() string { return "Clients" }

func (m ClientsModel) ShortHelp() string {
	switch m.state {
	case clientsStateAdd, clientsStateDelete:
		return "Navigate form | Esc: cancel"
	case clientsStateSearch:
		return "Enter: apply | Esc: clear"
	}

	return "Esc: back | a: add | d: delete | /: search | r: refresh"
}

func (m ClientsModel) Init() tea.Cmd {
	return m.session.refreshCmd()
}

func (m ClientsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshedMsg:
		m.err = msg.err
		m.refreshTable()

		return m, nil

	case clientSavedMsg:
		m.state = clientsStateBrowse
		m.form = nil
		m.table.Focus()

		if msg.err != nil {
			m.status = errorStyle(fmt.Sprintf("Error: %v", msg.err))
		} else {
			m.status = successStyle(msg.status)
		}

		m.refreshTable()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(max(msg.Height-10, 5))
		return m, nil
	}

	switch m.state {
	case clientsStateSearch:
		return m.updateSearch(msg)
	case clientsStateAdd, clientsStateDelete:
		return m.updateForm(msg)
	}

	return m.updateBrowse(msg)
}

func (m ClientsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			return m, m.session.refreshCmd()
		case "/":
			m.state = clientsStateSearch
			m.table.Blur()

			return m, m.search.Focus()
		case "a":
			return m.enterAddMode()
		case "d":
			return m.enterDeleteMode()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ClientsModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			m.search.SetValue("")
			fallthrough
		case tea.KeyEnter:
			m.state = clientsStateBrowse
			m.search.Blur()
			m.table.Focus()
			m.refreshTable()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.refreshTable()

	return m, cmd
}

func (m ClientsModel) enterAddMode() (tea.Model, tea.Cmd) {
	m.input = &clientInput{}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				Value(&m.input.name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("name cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("email").
				Title("Email").
				Placeholder("billing@example.com").
				Value(&m.input.email),

			huh.NewInput().
				Key("company").
				Title("Company").
				Value(&m.input.company),

			huh.NewInput().
				Key("hourly_rate").
				Title("Hourly rate").
				Placeholder("0").
				Value(&m.input.rate).
				Validate(func(s string) error {
					_, err := parseRate(s)
					return err
				}),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = clientsStateAdd
	m.table.Blur()

	return m, m.form.Init()
}

func (m ClientsModel) enterDeleteMode() (tea.Model, tea.Cmd) {
	c, ok := m.selected()
	if !ok {
		return m, nil
	}

	m.input = &clientInput{}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title(fmt.Sprintf("Delete %s?", c.Name)).
				Description("Their invoices and time entries are kept.").
				Affirmative("Delete").
				Negative("Cancel").
				Value(&m.input.confirm),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = clientsStateDelete
	m.table.Blur()

	return m, m.form.Init()
}

func (m ClientsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = clientsStateBrowse
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

	if m.state == clientsStateDelete {
		return m, m.deleteCmd()
	}

	return m, m.addCmd()
}

func (m ClientsModel) View() string {
	if m.session.Store.Loading() {
		return lipgloss.NewStyle().Padding(2).Render("Loading clients...")
	}

	header := fmt.Sprintf("%d client(s)", len(m.clients))
	if q := m.search.Value(); q != "" || m.state == clientsStateSearch {
		header = m.search.View()
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		boxed(m.table.View()),
	)

	if (m.state == clientsStateAdd || m.state == clientsStateDelete) && m.form != nil {
		title := "New Client"
		if m.state == clientsStateDelete {
			title = "Delete Client"
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(title + "\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.err != nil {
		content = errorStyle(fmt.Sprintf("Error: %v", m.err)) + "\n" + content
	}

	if m.status != "" {
		content = m.status + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *ClientsModel) refreshTable() {
	m.clients = dashboard.FilterClients(m.session.Store.Clients(), m.search.Value())

	rows := make([]table.Row, 0, len(m.clients))
	for _, c := range m.clients {
		rows = append(rows, table.Row{
			c.Name,
			deref(c.Company),
			deref(c.Email),
			FormatMoney(c.HourlyRate),
			strings.Join(c.Tags, ", "),
		})
	}

	m.table.SetRows(rows)
}

func (m ClientsModel) selected() (client.Client, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.clients) {
		return client.Client{}, false
	}

	return m.clients[idx], true
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	return &s
}

func parseRate(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	rate, err := strconv.ParseFloat(s, 64)
	if err != nil || rate < 0 {
		return 0, errors.New("rate must be a non-negative number")
	}

	return rate, nil
}

// Messages

type clientSavedMsg struct {
	status string
	err    error
}

func (m ClientsModel) addCmd() tea.Cmd {
	rate, _ := parseRate(m.input.rate) // validated by the form
	params := client.CreateParams{
		Name:       m.input.name,
		Email:      optional(m.input.email),
		Company:    optional(m.input.company),
		HourlyRate: rate,
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		c, err := m.session.Gateway.AddClient(ctx, m.session.UserID, params)
		if err != nil {
			return clientSavedMsg{err: err}
		}

		return clientSavedMsg{status: fmt.Sprintf("Added %s.", c.Name)}
	}
}

func (m ClientsModel) deleteCmd() tea.Cmd {
	c, ok := m.selected()
	if !ok || !m.input.confirm {
		return func() tea.Msg { return clientSavedMsg{status: "Cancelled."} }
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.session.Gateway.RemoveClient(ctx, m.session.UserID, c.ID); err != nil {
			return clientSavedMsg{err: err}
		}

		return clientSavedMsg{status: fmt.Sprintf("Deleted %s.", c.Name)}
	}
}
