package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/invoicely/internal/dashboard"
)

type DashboardModel struct {
	session *Session

	summary dashboard.Summary
	loaded  bool
	err     error
}

func NewDashboardModel(s *Session) DashboardModel {
	return DashboardModel{session: s}
}

func (m DashboardModel) Title() string     { return "Dashboard" }
func (m DashboardModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m DashboardModel) Init() tea.Cmd {
	return m.session.refreshCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshedMsg:
		m.err = msg.err
		m.loaded = true
		m.summarize()

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loaded = false
			return m, m.session.refreshCmd()
		}
	}

	return m, nil
}

func (m *DashboardModel) summarize() {
	snap := m.session.Store.Snapshot()
	m.summary = dashboard.Summarize(snap.Clients, snap.Invoices, snap.TimeEntries, m.session.Now())
}

func (m DashboardModel) View() string {
	if !m.loaded || m.session.Store.Loading() {
		return lipgloss.NewStyle().Padding(2).Render("Loading dashboard...")
	}

	s := m.summary

	stats := fmt.Sprintf(
		"Revenue: %s   Pending: %s   Invoices: %d   Clients: %d",
		activeStyle(FormatMoney(s.TotalRevenue)),
		FormatMoney(s.PendingAmount),
		s.TotalInvoices,
		s.ActiveClients,
	)

	if len(s.Overdue) > 0 {
		stats += "\n" + errorStyle(fmt.Sprintf("%d overdue invoice(s) totalling %s", len(s.Overdue), FormatMoney(s.OverdueTotal)))
	}

	today := fmt.Sprintf("Today: %s tracked, %s earned",
		dashboard.FormatDuration(s.Today.Minutes), FormatMoney(s.Today.Earnings))

	var trend strings.Builder
	for _, p := range s.RevenueTrend {
		fmt.Fprintf(&trend, "%-7s %10s\n", p.Label, FormatMoney(p.Revenue))
	}

	var statuses strings.Builder
	for _, st := range s.Statuses {
		fmt.Fprintf(&statuses, "%-8s %3d  %5.1f%%\n", st.Status, st.Count, st.Percentage)
	}

	var activity strings.Builder
	if len(s.Activity) == 0 {
		activity.WriteString("No recent activity\n")
	}

	for _, a := range s.Activity {
		line := fmt.Sprintf("%s  %-24s %s", FormatDate(a.OccurredAt.In(m.session.Now().Location())), a.Title, a.Subtitle)
		if a.Amount != nil {
			line += "  " + FormatMoney(*a.Amount)
		}

		if a.Status != nil {
			line += "  " + statusLabel(*a.Status)
		}

		activity.WriteString(line + "\n")
	}

	panels := lipgloss.JoinHorizontal(lipgloss.Top,
		boxed("Last 7 days\n\n"+trend.String()),
		boxed("Invoices by status\n\n"+statuses.String()),
	)

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(stats),
		today+"\n",
		panels,
		"\nRecent activity\n\n"+activity.String(),
	)

	if m.err != nil {
		content = errorStyle(fmt.Sprintf("Refresh failed, showing last loaded data: %v", m.err)) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}
