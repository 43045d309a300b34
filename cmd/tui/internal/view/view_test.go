package view

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/invoicely/internal/client"
	"github.com/MrJamesThe3rd/invoicely/internal/invoice"
	"github.com/MrJamesThe3rd/invoicely/internal/memory"
	"github.com/MrJamesThe3rd/invoicely/internal/timeentry"
)

var userID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time { return c.now }

func newTestSession(t *testing.T) (*Session, *clock) {
	t.Helper()

	store := memory.New()
	s := NewSession(userID,
		client.NewService(store),
		invoice.NewService(store),
		timeentry.NewService(store),
	)

	c := &clock{now: time.Date(2026, time.October, 16, 9, 0, 0, 0, time.UTC)}
	s.Now = c.Now

	require.NoError(t, s.Store.Refresh(context.Background(), userID))

	return s, c
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func addClient(t *testing.T, s *Session, name string, rate float64) *client.Client {
	t.Helper()

	c, err := s.Gateway.AddClient(context.Background(), userID, client.CreateParams{Name: name, HourlyRate: rate})
	require.NoError(t, err)

	return c
}

func TestTrackerModel_StartTickStop(t *testing.T) {
	s, clk := newTestSession(t)
	acme := addClient(t, s, "Acme", 80)

	m := NewTrackerModel(s)
	model, cmd := m.start(&timerInput{project: "Website", description: "Landing page", clientID: acme.ID})
	m = model.(TrackerModel)

	require.NotNil(t, cmd)
	assert.True(t, m.Running())

	clk.now = clk.now.Add(25*time.Minute + 30*time.Second)

	model, cmd = m.Update(tickMsg{run: m.run, at: clk.now})
	m = model.(TrackerModel)

	assert.NotNil(t, cmd)
	assert.Equal(t, 25*time.Minute+30*time.Second, m.Elapsed())

	model, cmd = m.Update(key("s"))
	m = model.(TrackerModel)

	require.NotNil(t, cmd)
	assert.False(t, m.Running())

	saved, ok := cmd().(timerSavedMsg)
	require.True(t, ok)
	require.NoError(t, saved.err)

	model, _ = m.Update(saved)
	m = model.(TrackerModel)

	entries := s.Store.TimeEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, 25, entries[0].Duration)
	assert.Equal(t, 80.0, entries[0].HourlyRate)
	assert.True(t, entries[0].IsBillable)
	require.NotNil(t, entries[0].ClientID)
	assert.Equal(t, acme.ID, *entries[0].ClientID)

	require.Len(t, m.entries, 1)
	assert.Contains(t, m.status, "Logged")
}

func TestTrackerModel_StaleTickIgnored(t *testing.T) {
	s, clk := newTestSession(t)

	m := NewTrackerModel(s)
	model, _ := m.start(&timerInput{project: "Website"})
	m = model.(TrackerModel)

	clk.now = clk.now.Add(time.Minute)

	model, cmd := m.Update(tickMsg{run: m.run - 1, at: clk.now})
	m = model.(TrackerModel)

	assert.Nil(t, cmd)
	assert.Zero(t, m.Elapsed())
}

func TestTrackerModel_Discard(t *testing.T) {
	s, clk := newTestSession(t)

	m := NewTrackerModel(s)
	model, _ := m.start(&timerInput{project: "Website"})
	m = model.(TrackerModel)

	clk.now = clk.now.Add(10 * time.Minute)

	model, cmd := m.Update(key("x"))
	m = model.(TrackerModel)

	assert.Nil(t, cmd)
	assert.False(t, m.Running())
	assert.Empty(t, s.Store.TimeEntries())
	assert.Equal(t, "Timer discarded.", m.status)
}

func TestTrackerModel_TableShowsToday(t *testing.T) {
	s, clk := newTestSession(t)
	ctx := context.Background()

	_, err := s.Gateway.AddTimeEntry(ctx, userID, timeentry.CreateParams{
		ProjectName: "Yesterday", StartTime: clk.now.Add(-24 * time.Hour), Duration: 30,
	})
	require.NoError(t, err)

	_, err = s.Gateway.AddTimeEntry(ctx, userID, timeentry.CreateParams{
		ProjectName: "Today", StartTime: clk.now.Add(-time.Hour), Duration: 45,
	})
	require.NoError(t, err)

	model, _ := NewTrackerModel(s).Update(refreshedMsg{})
	m := model.(TrackerModel)

	require.Len(t, m.entries, 1)
	assert.Equal(t, "Today", m.entries[0].ProjectName)
}

func TestInvoicesModel_MarkPaid(t *testing.T) {
	s, _ := newTestSession(t)
	acme := addClient(t, s, "Acme", 80)

	inv, err := s.Gateway.AddInvoice(context.Background(), userID, invoice.CreateParams{
		ClientID:      acme.ID,
		InvoiceNumber: "INV-001",
		Status:        invoice.StatusSent,
		IssueDate:     invoice.NewDate(2026, time.October, 1),
		DueDate:       invoice.NewDate(2026, time.October, 31),
		Total:         400,
	})
	require.NoError(t, err)

	model, _ := NewInvoicesModel(s).Update(refreshedMsg{})
	m := model.(InvoicesModel)
	require.Len(t, m.invoices, 1)

	_, cmd := m.Update(key("p"))
	require.NotNil(t, cmd)

	saved, ok := cmd().(invoiceSavedMsg)
	require.True(t, ok)
	require.NoError(t, saved.err)
	assert.Equal(t, "INV-001", saved.number)

	got := s.Store.Invoices()
	require.Len(t, got, 1)
	assert.Equal(t, inv.ID, got[0].ID)
	assert.Equal(t, invoice.StatusPaid, got[0].Status)
}

func TestInvoicesModel_StatusFilterCycles(t *testing.T) {
	s, _ := newTestSession(t)
	acme := addClient(t, s, "Acme", 80)

	for _, st := range []invoice.Status{invoice.StatusDraft, invoice.StatusPaid} {
		_, err := s.Gateway.AddInvoice(context.Background(), userID, invoice.CreateParams{
			ClientID:      acme.ID,
			InvoiceNumber: "INV-" + string(st),
			Status:        st,
			IssueDate:     invoice.NewDate(2026, time.October, 1),
			DueDate:       invoice.NewDate(2026, time.October, 31),
		})
		require.NoError(t, err)
	}

	model, _ := NewInvoicesModel(s).Update(refreshedMsg{})
	m := model.(InvoicesModel)
	assert.Len(t, m.invoices, 2)

	// all -> draft
	model, _ = m.Update(key("s"))
	m = model.(InvoicesModel)

	require.Len(t, m.invoices, 1)
	assert.Equal(t, invoice.StatusDraft, m.invoices[0].Status)
}

func TestClientsModel_RefreshAndFilter(t *testing.T) {
	s, _ := newTestSession(t)
	addClient(t, s, "Acme", 80)
	addClient(t, s, "Globex", 95)

	model, _ := NewClientsModel(s).Update(refreshedMsg{})
	m := model.(ClientsModel)
	assert.Len(t, m.clients, 2)

	model, _ = m.Update(key("/"))
	m = model.(ClientsModel)
	assert.Equal(t, clientsStateSearch, m.state)

	model, _ = m.Update(key("glob"))
	m = model.(ClientsModel)

	require.Len(t, m.clients, 1)
	assert.Equal(t, "Globex", m.clients[0].Name)

	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = model.(ClientsModel)

	assert.Equal(t, clientsStateBrowse, m.state)
	assert.Len(t, m.clients, 2)
}

func TestClientsModel_EscGoesBack(t *testing.T) {
	s, _ := newTestSession(t)

	_, cmd := NewClientsModel(s).Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, BackMsg{}, cmd())
}
