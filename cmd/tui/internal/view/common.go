package view

import (
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/invoicely/internal/records"
)

// View is the interface that all TUI screens implement.
type View interface {
	tea.Model
	Title() string
	ShortHelp() string
}

// Session is shared by every screen: the signed-in user, their record store and
// the gateway that writes through it.
type Session struct {
	UserID  uuid.UUID
	Store   *records.Store
	Gateway *records.Gateway
	Now     func() time.Time
}

// NewSession wires a store and gateway over the given providers for userID.
func NewSession(userID uuid.UUID, clients records.ClientProvider, invoices records.InvoiceProvider, timeEntries records.TimeEntryProvider) *Session {
	store := records.NewStore(clients, invoices, timeEntries)

	return &Session{
		UserID:  userID,
		Store:   store,
		Gateway: records.NewGateway(store),
		Now:     time.Now,
	}
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// refreshedMsg is sent once a screen's Refresh has finished.
type refreshedMsg struct {
	err error
}

func (s *Session) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return refreshedMsg{err: s.Store.Refresh(ctx, s.UserID)}
	}
}

func newTable(columns []table.Column) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func errorStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(s)
}

func successStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Render(s)
}

func boxed(s string) string {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(s)
}
