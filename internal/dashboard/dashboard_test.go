package dashboard_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/invoicely/internal/client"
	"github.com/MrJamesThe3rd/invoicely/internal/dashboard"
	"github.com/MrJamesThe3rd/invoicely/internal/invoice"
	"github.com/MrJamesThe3rd/invoicely/internal/timeentry"
)

var now = time.Date(2026, time.October, 16, 15, 30, 0, 0, time.UTC)

func inv(status invoice.Status, total float64, created time.Time) invoice.Invoice {
	return invoice.Invoice{
		ID:            uuid.New(),
		InvoiceNumber: fmt.Sprintf("INV-%d", int(total)),
		Status:        status,
		Total:         total,
		DueDate:       invoice.DateOf(now.AddDate(0, 0, 14)),
		CreatedAt:     created,
	}
}

func TestTotalRevenue(t *testing.T) {
	invoices := []invoice.Invoice{
		inv(invoice.StatusPaid, 100, now),
		inv(invoice.StatusPaid, 50.5, now),
		inv(invoice.StatusDraft, 1000, now),
	}

	before := dashboard.TotalRevenue(invoices)
	assert.Equal(t, 150.5, before)

	invoices = append(invoices, inv(invoice.StatusSent, 100, now))
	assert.Equal(t, before, dashboard.TotalRevenue(invoices))
}

func TestPendingAmount(t *testing.T) {
	invoices := []invoice.Invoice{
		inv(invoice.StatusSent, 100, now),
		inv(invoice.StatusOverdue, 40, now),
		inv(invoice.StatusPaid, 500, now),
		inv(invoice.StatusCancelled, 70, now),
		inv(invoice.StatusDraft, 30, now),
	}

	assert.Equal(t, 140.0, dashboard.PendingAmount(invoices))
}

func TestOverdue(t *testing.T) {
	pastSent := inv(invoice.StatusSent, 1, now)
	pastSent.DueDate = invoice.DateOf(now.AddDate(0, 0, -1))

	futureSent := inv(invoice.StatusSent, 2, now)
	futureSent.DueDate = invoice.DateOf(now.AddDate(0, 0, 1))

	markedOverdue := inv(invoice.StatusOverdue, 3, now)
	markedOverdue.DueDate = invoice.DateOf(now.AddDate(1, 0, 0))

	pastDraft := inv(invoice.StatusDraft, 4, now)
	pastDraft.DueDate = invoice.DateOf(now.AddDate(0, 0, -10))

	dueToday := inv(invoice.StatusSent, 5, now)
	dueToday.DueDate = invoice.DateOf(now)

	got := dashboard.Overdue([]invoice.Invoice{pastSent, futureSent, markedOverdue, pastDraft, dueToday}, now)

	ids := make([]uuid.UUID, len(got))
	for i, g := range got {
		ids[i] = g.ID
	}

	assert.ElementsMatch(t, []uuid.UUID{pastSent.ID, markedOverdue.ID, dueToday.ID}, ids)
}

func TestRevenueTrend(t *testing.T) {
	t.Run("SevenDaysEndingToday", func(t *testing.T) {
		points := dashboard.RevenueTrend(nil, now)
		require.Len(t, points, 7)

		assert.Equal(t, "2026-10-10", points[0].Date)
		assert.Equal(t, "Oct 10", points[0].Label)
		assert.Equal(t, "2026-10-16", points[6].Date)
		assert.Equal(t, "Oct 16", points[6].Label)

		for _, p := range points {
			assert.Zero(t, p.Revenue)
		}
	})

	t.Run("PaidTodayOnlyBumpsToday", func(t *testing.T) {
		invoices := []invoice.Invoice{
			inv(invoice.StatusPaid, 50, now.Add(-time.Hour)),
			inv(invoice.StatusSent, 75, now),
			inv(invoice.StatusPaid, 20, now.AddDate(0, 0, -3)),
			inv(invoice.StatusPaid, 999, now.AddDate(0, 0, -7)),
		}

		points := dashboard.RevenueTrend(invoices, now)
		require.Len(t, points, 7)

		assert.Equal(t, 50.0, points[6].Revenue)
		assert.Equal(t, 20.0, points[3].Revenue)

		for _, i := range []int{0, 1, 2, 4, 5} {
			assert.Zero(t, points[i].Revenue, "day %d", i)
		}
	})

	t.Run("BucketsByLocalDate", func(t *testing.T) {
		loc := time.FixedZone("UTC-5", -5*60*60)
		localNow := time.Date(2026, time.October, 16, 20, 0, 0, 0, loc)

		// 02:00 UTC on the 17th is still the 16th five hours west.
		paid := inv(invoice.StatusPaid, 10, time.Date(2026, time.October, 17, 2, 0, 0, 0, time.UTC))

		points := dashboard.RevenueTrend([]invoice.Invoice{paid}, localNow)
		assert.Equal(t, 10.0, points[6].Revenue)
	})
}

func TestStatusDistribution(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		got := dashboard.StatusDistribution(nil)
		require.Len(t, got, 4)

		for _, s := range got {
			assert.Zero(t, s.Count)
			assert.Zero(t, s.Percentage)
		}
	})

	t.Run("SharesSumTo100", func(t *testing.T) {
		got := dashboard.StatusDistribution([]invoice.Invoice{
			inv(invoice.StatusPaid, 1, now),
			inv(invoice.StatusPaid, 2, now),
			inv(invoice.StatusSent, 3, now),
			inv(invoice.StatusDraft, 4, now),
			inv(invoice.StatusOverdue, 5, now),
			inv(invoice.StatusOverdue, 6, now),
		})

		order := []invoice.Status{invoice.StatusPaid, invoice.StatusSent, invoice.StatusDraft, invoice.StatusOverdue}

		var sum float64

		for i, s := range got {
			assert.Equal(t, order[i], s.Status)
			sum += s.Percentage
		}

		assert.Equal(t, 2, got[0].Count)
		assert.InDelta(t, 100.0/3, got[0].Percentage, 1e-9)
		assert.InDelta(t, 100.0, sum, 1e-9)
	})
}

func TestRecentActivity(t *testing.T) {
	acme := client.Client{ID: uuid.New(), Name: "Acme"}

	t.Run("ProjectsAndSortsNewestFirst", func(t *testing.T) {
		billed := inv(invoice.StatusSent, 120, now.Add(-2*time.Hour))
		billed.ClientID = acme.ID
		billed.InvoiceNumber = "INV-042"

		orphan := inv(invoice.StatusDraft, 10, now.Add(-3*time.Hour))
		orphan.ClientID = uuid.New()

		entry := timeentry.TimeEntry{ID: uuid.New(), ProjectName: "Website", Duration: 95, CreatedAt: now.Add(-time.Hour)}

		got := dashboard.RecentActivity(
			[]invoice.Invoice{orphan, billed},
			[]timeentry.TimeEntry{entry},
			[]client.Client{acme},
		)
		require.Len(t, got, 3)

		assert.Equal(t, dashboard.ActivityTimeEntry, got[0].Kind)
		assert.Equal(t, "Website", got[0].Title)
		assert.Equal(t, "1h 35m", got[0].Subtitle)
		assert.Nil(t, got[0].Amount)

		assert.Equal(t, "Invoice INV-042", got[1].Title)
		assert.Equal(t, "Acme", got[1].Subtitle)
		require.NotNil(t, got[1].Amount)
		assert.Equal(t, 120.0, *got[1].Amount)
		assert.Equal(t, invoice.StatusSent, *got[1].Status)

		assert.Equal(t, dashboard.UnknownClient, got[2].Subtitle)
	})

	t.Run("CappedAtEightAndDescending", func(t *testing.T) {
		var invoices []invoice.Invoice
		for i := range 10 {
			invoices = append(invoices, inv(invoice.StatusDraft, float64(i), now.Add(time.Duration(i)*time.Minute)))
		}

		var entries []timeentry.TimeEntry
		for i := range 10 {
			entries = append(entries, timeentry.TimeEntry{
				ID: uuid.New(), ProjectName: "P", CreatedAt: now.Add(time.Duration(i) * time.Second),
			})
		}

		got := dashboard.RecentActivity(invoices, entries, nil)
		require.Len(t, got, 8)

		for i := 1; i < len(got); i++ {
			assert.False(t, got[i].OccurredAt.After(got[i-1].OccurredAt))
		}
	})

	// Candidates are taken from the tail of each collection before sorting, so a
	// newer invoice earlier in the collection never reaches the feed.
	t.Run("PicksTailBeforeSorting", func(t *testing.T) {
		newest := inv(invoice.StatusPaid, 999, now)
		newest.InvoiceNumber = "NEWEST"

		invoices := []invoice.Invoice{newest}
		for i := range 5 {
			old := inv(invoice.StatusDraft, float64(i), now.AddDate(0, -1, 0))
			old.InvoiceNumber = fmt.Sprintf("OLD-%d", i)
			invoices = append(invoices, old)
		}

		got := dashboard.RecentActivity(invoices, nil, nil)
		require.Len(t, got, 5)

		for _, a := range got {
			assert.NotEqual(t, "Invoice NEWEST", a.Title)
		}
	})
}

func TestTodayTracked(t *testing.T) {
	entries := []timeentry.TimeEntry{
		{Duration: 90, HourlyRate: 40, IsBillable: true, CreatedAt: now.Add(-time.Hour)},
		{Duration: 30, HourlyRate: 100, IsBillable: false, CreatedAt: now.Add(-2 * time.Hour)},
		{Duration: 600, HourlyRate: 100, IsBillable: true, CreatedAt: now.AddDate(0, 0, -1)},
	}

	got := dashboard.TodayTracked(entries, now)
	assert.Equal(t, 120, got.Minutes)
	assert.InDelta(t, 60.0, got.Earnings, 1e-9)
}

func TestClientName(t *testing.T) {
	acme := client.Client{ID: uuid.New(), Name: "Acme"}
	clients := []client.Client{acme}

	assert.Equal(t, "Acme", dashboard.ClientName(clients, acme.ID))
	assert.Equal(t, dashboard.UnknownClient, dashboard.ClientName(clients, uuid.New()))
	assert.Equal(t, dashboard.UnknownClient, dashboard.ClientName(nil, uuid.Nil))

	_, ok := dashboard.FindClient(clients, uuid.New())
	assert.False(t, ok)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0h 0m"},
		{59, "0h 59m"},
		{60, "1h 0m"},
		{135, "2h 15m"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, dashboard.FormatDuration(tt.minutes))
	}
}

func TestFilterClients(t *testing.T) {
	clients := []client.Client{
		{Name: "Acme", Email: new("ops@acme.test")},
		{Name: "Globex", Company: new("Globex Corporation")},
		{Name: "Initech"},
	}

	assert.Len(t, dashboard.FilterClients(clients, ""), 3)
	assert.Len(t, dashboard.FilterClients(clients, "ACME"), 1)
	assert.Len(t, dashboard.FilterClients(clients, "corporation"), 1)
	assert.Len(t, dashboard.FilterClients(clients, "ops@"), 1)
	assert.Empty(t, dashboard.FilterClients(clients, "umbrella"))
}

func TestFilterInvoices(t *testing.T) {
	acme := client.Client{ID: uuid.New(), Name: "Acme"}

	a := inv(invoice.StatusPaid, 1, now)
	a.InvoiceNumber = "INV-001"
	a.ClientID = acme.ID

	b := inv(invoice.StatusSent, 2, now)
	b.InvoiceNumber = "INV-002"

	invoices := []invoice.Invoice{a, b}
	clients := []client.Client{acme}

	assert.Len(t, dashboard.FilterInvoices(invoices, clients, "", "all"), 2)
	assert.Len(t, dashboard.FilterInvoices(invoices, clients, "", ""), 2)
	assert.Len(t, dashboard.FilterInvoices(invoices, clients, "acme", ""), 1)
	assert.Len(t, dashboard.FilterInvoices(invoices, clients, "inv-00", "sent"), 1)
	assert.Empty(t, dashboard.FilterInvoices(invoices, clients, "acme", "sent"))
}

func TestSummarize_Empty(t *testing.T) {
	got := dashboard.Summarize(nil, nil, nil, now)

	assert.Zero(t, got.TotalRevenue)
	assert.Zero(t, got.PendingAmount)
	assert.Empty(t, got.Overdue)
	assert.Zero(t, got.OverdueTotal)
	require.Len(t, got.RevenueTrend, 7)
	assert.Empty(t, got.Activity)
	assert.Equal(t, dashboard.Tracked{}, got.Today)

	for _, s := range got.Statuses {
		assert.Zero(t, s.Percentage)
	}
}
