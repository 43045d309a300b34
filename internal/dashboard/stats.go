// Package dashboard derives presentation figures from the record collections.
// Every function is pure: the same inputs and the same now give the same output.
package dashboard

import (
	"time"

	"github.com/MrJamesThe3rd/invoicely/internal/invoice"
	"github.com/MrJamesThe3rd/invoicely/internal/timeentry"
)

const trendDays = 7

// TotalRevenue sums the totals of paid invoices.
func TotalRevenue(invoices []invoice.Invoice) float64 {
	var sum float64

	for _, inv := range invoices {
		if inv.Status == invoice.StatusPaid {
			sum += inv.Total
		}
	}

	return sum
}

// PendingAmount sums the totals of invoices that have been sent but not paid.
func PendingAmount(invoices []invoice.Invoice) float64 {
	var sum float64

	for _, inv := range invoices {
		if inv.Status == invoice.StatusSent || inv.Status == invoice.StatusOverdue {
			sum += inv.Total
		}
	}

	return sum
}

// Overdue returns invoices marked overdue plus sent invoices whose due date has passed.
// A due date counts as passed from midnight of that day in now's location.
func Overdue(invoices []invoice.Invoice, now time.Time) []invoice.Invoice {
	out := []invoice.Invoice{}

	for _, inv := range invoices {
		switch inv.Status {
		case invoice.StatusOverdue:
			out = append(out, inv)
		case invoice.StatusSent:
			if inv.DueDate.StartIn(now.Location()).Before(now) {
				out = append(out, inv)
			}
		}
	}

	return out
}

func sumTotals(invoices []invoice.Invoice) float64 {
	var sum float64
	for _, inv := range invoices {
		sum += inv.Total
	}

	return sum
}

type TrendPoint struct {
	Date    string  `json:"date"`
	Label   string  `json:"label"`
	Revenue float64 `json:"revenue"`
}

// RevenueTrend returns seven daily points, oldest first, ending with now's day.
// Each point sums paid invoices whose creation date, read in now's location, is that day.
func RevenueTrend(invoices []invoice.Invoice, now time.Time) []TrendPoint {
	points := make([]TrendPoint, trendDays)

	for i := range trendDays {
		day := now.AddDate(0, 0, i-(trendDays-1))
		key := day.Format(time.DateOnly)

		var revenue float64

		for _, inv := range invoices {
			if inv.Status != invoice.StatusPaid {
				continue
			}

			if inv.CreatedAt.In(now.Location()).Format(time.DateOnly) == key {
				revenue += inv.Total
			}
		}

		points[i] = TrendPoint{Date: key, Label: day.Format("Jan 02"), Revenue: revenue}
	}

	return points
}

type StatusShare struct {
	Status     invoice.Status `json:"status"`
	Count      int            `json:"count"`
	Percentage float64        `json:"percentage"`
}

// distributionOrder is the fixed order of the status breakdown. Cancelled invoices are
// counted in the denominator but have no row of their own.
var distributionOrder = []invoice.Status{
	invoice.StatusPaid,
	invoice.StatusSent,
	invoice.StatusDraft,
	invoice.StatusOverdue,
}

// StatusDistribution counts invoices per status as a share of all invoices.
func StatusDistribution(invoices []invoice.Invoice) []StatusShare {
	out := make([]StatusShare, len(distributionOrder))

	for i, st := range distributionOrder {
		count := 0

		for _, inv := range invoices {
			if inv.Status == st {
				count++
			}
		}

		var pct float64
		if len(invoices) > 0 {
			pct = float64(count) / float64(len(invoices)) * 100
		}

		out[i] = StatusShare{Status: st, Count: count, Percentage: pct}
	}

	return out
}

type Tracked struct {
	Minutes  int     `json:"minutes"`
	Earnings float64 `json:"earnings"`
}

// TodayTracked totals the entries created on now's day. Minutes include every entry;
// earnings only billable ones.
func TodayTracked(entries []timeentry.TimeEntry, now time.Time) Tracked {
	today := now.Format(time.DateOnly)

	var t Tracked

	for _, e := range entries {
		if e.CreatedAt.In(now.Location()).Format(time.DateOnly) != today {
			continue
		}

		t.Minutes += e.Duration

		if e.IsBillable {
			t.Earnings += e.Earnings()
		}
	}

	return t
}
