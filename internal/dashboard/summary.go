package dashboard

import (
	"time"

	"github.com/MrJamesThe3rd/invoicely/internal/client"
	"github.com/MrJamesThe3rd/invoicely/internal/invoice"
	"github.com/MrJamesThe3rd/invoicely/internal/timeentry"
)

// Summary is everything the dashboard screen shows, computed in one pass over the inputs.
type Summary struct {
	TotalRevenue  float64           `json:"total_revenue"`
	PendingAmount float64           `json:"pending_amount"`
	TotalInvoices int               `json:"total_invoices"`
	ActiveClients int               `json:"active_clients"`
	Overdue       []invoice.Invoice `json:"overdue"`
	OverdueTotal  float64           `json:"overdue_total"`
	RevenueTrend  []TrendPoint      `json:"revenue_trend"`
	Statuses      []StatusShare     `json:"statuses"`
	Activity      []Activity        `json:"activity"`
	Today         Tracked           `json:"today"`
}

func Summarize(clients []client.Client, invoices []invoice.Invoice, entries []timeentry.TimeEntry, now time.Time) Summary {
	overdue := Overdue(invoices, now)

	return Summary{
		TotalRevenue:  TotalRevenue(invoices),
		PendingAmount: PendingAmount(invoices),
		TotalInvoices: len(invoices),
		ActiveClients: len(clients),
		Overdue:       overdue,
		OverdueTotal:  sumTotals(overdue),
		RevenueTrend:  RevenueTrend(invoices, now),
		Statuses:      StatusDistribution(invoices),
		Activity:      RecentActivity(invoices, entries, clients),
		Today:         TodayTracked(entries, now),
	}
}
