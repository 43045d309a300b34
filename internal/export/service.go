// Package export writes time entries out as CSV in the Toggl detailed-report
// layout, so an export can be imported again.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/invoicely/internal/client"
	"github.com/MrJamesThe3rd/invoicely/internal/dashboard"
	"github.com/MrJamesThe3rd/invoicely/internal/timeentry"
)

var header = []string{
	"Project", "Client", "Description", "Billable",
	"Start date", "Start time", "End date", "End time",
	"Duration", "Amount (USD)",
}

// Filter narrows the exported entries. Zero values don't filter.
type Filter struct {
	From       time.Time
	To         time.Time
	ClientID   *uuid.UUID
	Uninvoiced bool
}

func (f Filter) match(e timeentry.TimeEntry) bool {
	if !f.From.IsZero() && e.StartTime.Before(f.From) {
		return false
	}

	if !f.To.IsZero() && !e.StartTime.Before(f.To) {
		return false
	}

	if f.ClientID != nil && (e.ClientID == nil || *e.ClientID != *f.ClientID) {
		return false
	}

	return !f.Uninvoiced || !e.IsInvoiced
}

// Service exports a user's time entries.
type Service struct {
	entries *timeentry.Service
	clients *client.Service
	loc     *time.Location
}

// NewService creates an export service writing wall-clock times in loc. A nil
// loc means UTC.
func NewService(entries *timeentry.Service, clients *client.Service, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}

	return &Service{
		entries: entries,
		clients: clients,
		loc:     loc,
	}
}

// Export writes the user's entries matching filter to w, oldest first, and
// returns how many were written.
func (s *Service) Export(ctx context.Context, userID uuid.UUID, filter Filter, w io.Writer) (int, error) {
	entries, err := s.entries.List(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("listing time entries: %w", err)
	}

	clients, err := s.clients.List(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("listing clients: %w", err)
	}

	selected := make([]timeentry.TimeEntry, 0, len(entries))

	for _, e := range entries {
		if filter.match(*e) {
			selected = append(selected, *e)
		}
	}

	slices.SortStableFunc(selected, func(a, b timeentry.TimeEntry) int {
		return a.StartTime.Compare(b.StartTime)
	})

	cs := make([]client.Client, len(clients))
	for i, c := range clients {
		cs[i] = *c
	}

	if err := Write(w, selected, cs, s.loc); err != nil {
		return 0, err
	}

	return len(selected), nil
}

// Write renders entries as CSV. The amount column carries earnings at the entry's
// rate, which is what an import reads the rate back from.
func Write(w io.Writer, entries []timeentry.TimeEntry, clients []client.Client, loc *time.Location) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, e := range entries {
		if err := cw.Write(row(e, clients, loc)); err != nil {
			return fmt.Errorf("writing entry %s: %w", e.ID, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

func row(e timeentry.TimeEntry, clients []client.Client, loc *time.Location) []string {
	start := e.StartTime.In(loc)

	end := start.Add(time.Duration(e.Duration) * time.Minute)
	if e.EndTime != nil {
		end = e.EndTime.In(loc)
	}

	clientName := ""
	if e.ClientID != nil {
		if c, ok := dashboard.FindClient(clients, *e.ClientID); ok {
			clientName = c.Name
		}
	}

	billable := "No"
	if e.IsBillable {
		billable = "Yes"
	}

	amount := decimal.NewFromFloat(e.Earnings()).StringFixed(2)

	return []string{
		e.ProjectName,
		clientName,
		e.Description,
		billable,
		start.Format(time.DateOnly),
		start.Format(time.TimeOnly),
		end.Format(time.DateOnly),
		end.Format(time.TimeOnly),
		fmt.Sprintf("%d:%02d:00", e.Duration/60, e.Duration%60),
		amount,
	}
}

// Filename names an export covering [from, to). Open ends are left out.
func Filename(from, to time.Time) string {
	parts := []string{"time-entries"}

	if !from.IsZero() {
		parts = append(parts, from.Format("20060102"))
	}

	if !to.IsZero() {
		parts = append(parts, to.Format("20060102"))
	}

	return strings.Join(parts, "_") + ".csv"
}
