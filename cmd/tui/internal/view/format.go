package view

import (
	"context"
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/invoicely/internal/invoice"
)

const dbTimeout = 5 * time.Second

// FormatMoney renders an amount with two decimals, e.g. "1234.50".
func FormatMoney(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatClock renders an elapsed duration as HH:MM:SS.
func FormatClock(d time.Duration) string {
	d = max(d, 0).Truncate(time.Second)
	h := int(d / time.Hour)
	m := int(d%time.Hour) / int(time.Minute)
	s := int(d%time.Minute) / int(time.Second)

	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func statusLabel(s invoice.Status) string {
	switch s {
	case invoice.StatusPaid:
		return successStyle(string(s))
	case invoice.StatusOverdue:
		return errorStyle(string(s))
	}

	return string(s)
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}
