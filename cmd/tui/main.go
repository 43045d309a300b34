package main

import (
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/invoicely/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/invoicely/internal/backend"
	"github.com/MrJamesThe3rd/invoicely/internal/client"
	"github.com/MrJamesThe3rd/invoicely/internal/config"
	"github.com/MrJamesThe3rd/invoicely/internal/importer"
	"github.com/MrJamesThe3rd/invoicely/internal/invoice"
	"github.com/MrJamesThe3rd/invoicely/internal/timeentry"
)

type model struct {
	session       *view.Session
	entryService  *timeentry.Service
	importService *importer.Service

	currentView View

	dashboardView view.DashboardModel
	clientsView   view.ClientsModel
	invoicesView  view.InvoicesModel
	trackerView   view.TrackerModel
	importView    view.ImportModel
}

type View int

const (
	ViewMenu      View = 0
	ViewDashboard View = 1
	ViewClients   View = 2
	ViewInvoices  View = 3
	ViewTracker   View = 4
	ViewImport    View = 5
)

func initialModel(store *backend.Backend, cfg *config.Config) model {
	userID, _ := cfg.DevUser() // validated by config.Load

	var (
		clientSvc  = client.NewService(store.Clients)
		invoiceSvc = invoice.NewService(store.Invoices)
		entrySvc   = timeentry.NewService(store.TimeEntries)
		impSvc     = importer.NewService(time.Local)
		session    = view.NewSession(userID, clientSvc, invoiceSvc, entrySvc)
	)

	return model{
		session:       session,
		entryService:  entrySvc,
		importService: impSvc,
		currentView:   ViewMenu,
		dashboardView: view.NewDashboardModel(session),
		clientsView:   view.NewClientsModel(session),
		invoicesView:  view.NewInvoicesModel(session),
		trackerView:   view.NewTrackerModel(session),
		importView:    view.NewImportModel(session, entrySvc, impSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.session)

				return m, m.dashboardView.Init()
			case "2":
				m.currentView = ViewClients
				m.clientsView = view.NewClientsModel(m.session)

				return m, m.clientsView.Init()
			case "3":
				m.currentView = ViewInvoices
				m.invoicesView = view.NewInvoicesModel(m.session)

				return m, m.invoicesView.Init()
			case "4":
				m.currentView = ViewTracker
				// The tracker keeps its state so a running timer survives a trip to the menu.
				return m, m.trackerView.Init()
			case "5":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.session, m.entryService, m.importService)

				return m, m.importView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewClients:
		var newModel tea.Model
		newModel, cmd = m.clientsView.Update(msg)
		m.clientsView = newModel.(view.ClientsModel)
	case ViewInvoices:
		var newModel tea.Model
		newModel, cmd = m.invoicesView.Update(msg)
		m.invoicesView = newModel.(view.InvoicesModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	}

	// Timer ticks reach the tracker wherever the user is.
	if m.currentView == ViewTracker || m.trackerView.Running() {
		if _, isKey := msg.(tea.KeyMsg); m.currentView == ViewTracker || !isKey {
			var newModel tea.Model
			var trackerCmd tea.Cmd
			newModel, trackerCmd = m.trackerView.Update(msg)
			m.trackerView = newModel.(view.TrackerModel)
			cmd = tea.Batch(cmd, trackerCmd)
		}
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		menu := "Invoicely\n\n" +
			"1. Dashboard\n" +
			"2. Clients\n" +
			"3. Invoices\n" +
			"4. Time Tracker\n" +
			"5. Import Time Entries\n\n" +
			"q. Quit"

		if m.trackerView.Running() {
			menu += "\n\n" + "Timer running: " + view.FormatClock(m.trackerView.Elapsed())
		}

		return lipgloss.NewStyle().Padding(2).Render(menu)
	}

	current := m.current()
	if current == nil {
		return "Unknown View"
	}

	help := lipgloss.NewStyle().Faint(true).PaddingLeft(1).Render(current.Title() + " | " + current.ShortHelp())

	return lipgloss.JoinVertical(lipgloss.Left, current.View(), help)
}

func (m model) current() view.View {
	switch m.currentView {
	case ViewDashboard:
		return m.dashboardView
	case ViewClients:
		return m.clientsView
	case ViewInvoices:
		return m.invoicesView
	case ViewTracker:
		return m.trackerView
	case ViewImport:
		return m.importView
	}

	return nil
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// The terminal belongs to the UI; logs go to a file when one is configured.
	logOut := io.Discard
	if path := os.Getenv("TUI_LOG_FILE"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err == nil {
			defer f.Close()
			logOut = f
		}
	}

	slog.SetDefault(cfg.NewLogger(logOut))

	store, err := backend.Open(cfg)
	if err != nil {
		slog.Error("failed to open backend", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	p := tea.NewProgram(initialModel(store, cfg))
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
