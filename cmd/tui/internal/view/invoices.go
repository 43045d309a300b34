package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/invoicely/internal/dashboard"
	"github.com/MrJamesThe3rd/invoicely/internal/invoice"
)

// statusFilters is the cycle order of the 's' key.
var statusFilters = append([]string{dashboard.StatusAll}, statusNames()...)

func statusNames() []string {
	names := make([]string, len(invoice.Statuses))
	for i, s := range invoice.Statuses {
		names[i] = string(s)
	}

	return names
}

type InvoicesModel struct {
	session *Session

	table     table.Model
	invoices  []invoice.Invoice
	filterIdx int

	status string
	err    error
}

func NewInvoicesModel(s *Session) InvoicesModel {
	columns := []table.Column{
		{Title: "Number", Width: 14},
		{Title: "Client", Width: 24},
		{Title: "Issued", Width: 12},
		{Title: "Due", Width: 12},
		{Title: "Total", Width: 12},
		{Title: "Status", Width: 10},
	}

	return InvoicesModel{
		session: s,
		table:   newTable(columns),
	}
}

func (m InvoicesModel) Title() string { return "Invoices" }

func (m InvoicesModel) ShortHelp() string {
	return "Esc: back | s: status filter | p: mark paid | m: mark sent | r: refresh"
}

func (m InvoicesModel) Init() tea.Cmd {
	return m.session.refreshCmd()
}

func (m InvoicesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshedMsg:
		m.err = msg.err
		m.refreshTable()

		return m, nil

	case invoiceSavedMsg:
		if msg.err != nil {
			m.status = errorStyle(fmt.Sprintf("Error saving: %v", msg.err))
		} else {
			m.status = successStyle(fmt.Sprintf("Invoice %s marked %s.", msg.number, msg.to))
		}

		m.refreshTable()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(max(msg.Height-10, 5))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			return m, m.session.refreshCmd()
		case "s":
			m.filterIdx = (m.filterIdx + 1) % len(statusFilters)
			m.refreshTable()

			return m, nil
		case "p":
			return m, m.setStatusCmd(invoice.StatusPaid)
		case "m":
			return m, m.setStatusCmd(invoice.StatusSent)
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m InvoicesModel) View() string {
	if m.session.Store.Loading() {
		return lipgloss.NewStyle().Padding(2).Render("Loading invoices...")
	}

	header := fmt.Sprintf("Filter: [s] Status: %s | %d invoice(s)",
		activeStyle(statusFilters[m.filterIdx]), len(m.invoices))

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
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

func (m *InvoicesModel) refreshTable() {
	clients := m.session.Store.Clients()
	m.invoices = dashboard.FilterInvoices(m.session.Store.Invoices(), clients, "", statusFilters[m.filterIdx])

	rows := make([]table.Row, 0, len(m.invoices))
	for _, inv := range m.invoices {
		rows = append(rows, table.Row{
			inv.InvoiceNumber,
			dashboard.ClientName(clients, inv.ClientID),
			inv.IssueDate.String(),
			inv.DueDate.String(),
			inv.Currency + " " + FormatMoney(inv.Total),
			string(inv.Status),
		})
	}

	m.table.SetRows(rows)
}

// Messages

type invoiceSavedMsg struct {
	number string
	to     invoice.Status
	err    error
}

func (m InvoicesModel) setStatusCmd(to invoice.Status) tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.invoices) {
		return nil
	}

	inv := m.invoices[idx]

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.session.Gateway.UpdateInvoice(ctx, m.session.UserID, inv.ID, invoice.UpdateParams{Status: new(to)})

		return invoiceSavedMsg{number: inv.InvoiceNumber, to: to, err: err}
	}
}
