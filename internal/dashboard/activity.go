package dashboard

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/invoicely/internal/client"
	"github.com/MrJamesThe3rd/invoicely/internal/invoice"
	"github.com/MrJamesThe3rd/invoicely/internal/timeentry"
)

const (
	activityInvoices    = 5
	activityTimeEntries = 3
	activityLimit       = 8
)

// UnknownClient is shown wherever a client id no longer resolves.
const UnknownClient = "Unknown Client"

type ActivityKind string

const (
	ActivityInvoice   ActivityKind = "invoice"
	ActivityTimeEntry ActivityKind = "time"
)

type Activity struct {
	Kind       ActivityKind    `json:"kind"`
	ID         uuid.UUID       `json:"id"`
	Title      string          `json:"title"`
	Subtitle   string          `json:"subtitle"`
	Amount     *float64        `json:"amount,omitempty"`
	Status     *invoice.Status `json:"status,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// RecentActivity merges the last five invoices and the last three time entries of
// each collection (in collection order, before any sorting), newest first, capped at eight.
// An old entry at the end of its collection can therefore outrank a newer one that sits earlier.
func RecentActivity(invoices []invoice.Invoice, entries []timeentry.TimeEntry, clients []client.Client) []Activity {
	out := make([]Activity, 0, activityInvoices+activityTimeEntries)

	for _, inv := range lastN(invoices, activityInvoices) {
		out = append(out, Activity{
			Kind:       ActivityInvoice,
			ID:         inv.ID,
			Title:      "Invoice " + inv.InvoiceNumber,
			Subtitle:   ClientName(clients, inv.ClientID),
			Amount:     new(inv.Total),
			Status:     new(inv.Status),
			OccurredAt: inv.CreatedAt,
		})
	}

	for _, e := range lastN(entries, activityTimeEntries) {
		out = append(out, Activity{
			Kind:       ActivityTimeEntry,
			ID:         e.ID,
			Title:      e.ProjectName,
			Subtitle:   FormatDuration(e.Duration),
			OccurredAt: e.CreatedAt,
		})
	}

	slices.SortStableFunc(out, func(a, b Activity) int {
		return b.OccurredAt.Compare(a.OccurredAt)
	})

	if len(out) > activityLimit {
		out = out[:activityLimit]
	}

	return out
}

func lastN[T any](s []T, n int) []T {
	if len(s) <= n {
		return s
	}

	return s[len(s)-n:]
}

// FormatDuration renders minutes as "<h>h <m>m".
func FormatDuration(minutes int) string {
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// FindClient looks up a client by id.
func FindClient(clients []client.Client, id uuid.UUID) (client.Client, bool) {
	i := slices.IndexFunc(clients, func(c client.Client) bool { return c.ID == id })
	if i < 0 {
		return client.Client{}, false
	}

	return clients[i], true
}

// ClientName returns the client's name, or UnknownClient when id does not resolve.
func ClientName(clients []client.Client, id uuid.UUID) string {
	c, ok := FindClient(clients, id)
	if !ok || c.Name == "" {
		return UnknownClient
	}

	return c.Name
}
