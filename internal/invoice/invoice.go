package invoice

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of an invoice.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusSent      Status = "sent"
	StatusPaid      Status = "paid"
	StatusOverdue   Status = "overdue"
	StatusCancelled Status = "cancelled"
)

// Statuses lists every valid status.
var Statuses = []Status{StatusDraft, StatusSent, StatusPaid, StatusOverdue, StatusCancelled}

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusPaid, StatusOverdue, StatusCancelled:
		return true
	}

	return false
}

func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("invalid invoice status %q", s)
	}

	return st, nil
}

// Item is a single invoice line. Amount is quantity × rate by convention only.
type Item struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description" validate:"notblank"`
	Quantity    float64   `json:"quantity" validate:"gte=0"`
	Rate        float64   `json:"rate" validate:"gte=0"`
	Amount      float64   `json:"amount"`
}

// Invoice bills one client. Total is stored as supplied; it is never recomputed.
type Invoice struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	ClientID      uuid.UUID `json:"client_id" validate:"required"`
	InvoiceNumber string    `json:"invoice_number" validate:"notblank"`
	Status        Status    `json:"status" validate:"oneof=draft sent paid overdue cancelled"`
	IssueDate     Date      `json:"issue_date" validate:"required"`
	DueDate       Date      `json:"due_date" validate:"required"`
	Subtotal      float64   `json:"subtotal"`
	TaxRate       float64   `json:"tax_rate" validate:"gte=0"`
	TaxAmount     float64   `json:"tax_amount"`
	Total         float64   `json:"total"`
	Currency      string    `json:"currency" validate:"len=3"`
	Notes         *string   `json:"notes,omitempty"`
	Items         []Item    `json:"items" validate:"dive"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CreateParams are the caller-supplied fields of a new invoice.
// An empty Status defaults to draft and an empty Currency to DefaultCurrency.
type CreateParams struct {
	ClientID      uuid.UUID `json:"client_id"`
	InvoiceNumber string    `json:"invoice_number"`
	Status        Status    `json:"status,omitempty"`
	IssueDate     Date      `json:"issue_date"`
	DueDate       Date      `json:"due_date"`
	Subtotal      float64   `json:"subtotal"`
	TaxRate       float64   `json:"tax_rate"`
	TaxAmount     float64   `json:"tax_amount"`
	Total         float64   `json:"total"`
	Currency      string    `json:"currency,omitempty"`
	Notes         *string   `json:"notes,omitempty"`
	Items         []Item    `json:"items,omitempty"`
}

const DefaultCurrency = "USD"

// UpdateParams is a partial update; nil fields are left unchanged.
type UpdateParams struct {
	ClientID      *uuid.UUID `json:"client_id,omitempty" validate:"omitnil,required"`
	InvoiceNumber *string    `json:"invoice_number,omitempty" validate:"omitnil,notblank"`
	Status        *Status    `json:"status,omitempty" validate:"omitnil,oneof=draft sent paid overdue cancelled"`
	IssueDate     *Date      `json:"issue_date,omitempty" validate:"omitnil,required"`
	DueDate       *Date      `json:"due_date,omitempty" validate:"omitnil,required"`
	Subtotal      *float64   `json:"subtotal,omitempty"`
	TaxRate       *float64   `json:"tax_rate,omitempty" validate:"omitnil,gte=0"`
	TaxAmount     *float64   `json:"tax_amount,omitempty"`
	Total         *float64   `json:"total,omitempty"`
	Currency      *string    `json:"currency,omitempty" validate:"omitnil,len=3"`
	Notes         *string    `json:"notes,omitempty"`
	Items         []Item     `json:"items,omitempty" validate:"dive"`
}

func (p UpdateParams) apply(inv *Invoice) {
	if p.ClientID != nil {
		inv.ClientID = *p.ClientID
	}

	if p.InvoiceNumber != nil {
		inv.InvoiceNumber = strings.TrimSpace(*p.InvoiceNumber)
	}

	if p.Status != nil {
		inv.Status = *p.Status
	}

	if p.IssueDate != nil {
		inv.IssueDate = *p.IssueDate
	}

	if p.DueDate != nil {
		inv.DueDate = *p.DueDate
	}

	if p.Subtotal != nil {
		inv.Subtotal = *p.Subtotal
	}

	if p.TaxRate != nil {
		inv.TaxRate = *p.TaxRate
	}

	if p.TaxAmount != nil {
		inv.TaxAmount = *p.TaxAmount
	}

	if p.Total != nil {
		inv.Total = *p.Total
	}

	if p.Currency != nil {
		inv.Currency = strings.ToUpper(*p.Currency)
	}

	if p.Notes != nil {
		inv.Notes = p.Notes
	}

	if p.Items != nil {
		inv.Items = withItemIDs(p.Items)
	}
}

// withItemIDs assigns ids to lines that do not have one yet.
func withItemIDs(items []Item) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		if it.ID == uuid.Nil {
			it.ID = uuid.New()
		}

		out[i] = it
	}

	return out
}

// Date is a calendar date without time of day, encoded as YYYY-MM-DD.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar date in t's own location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// StartIn returns midnight of the date in loc.
func (d Date) StartIn(loc *time.Location) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
}

func (d Date) String() string {
	return d.Format(time.DateOnly)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`null`), nil
	}

	return json.Marshal(d.String())
}

// UnmarshalJSON accepts both "2006-01-02" and RFC 3339 timestamps.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		if string(b) == "null" {
			*d = Date{}
			return nil
		}

		return fmt.Errorf("date must be a string: %w", err)
	}

	parsed, err := parseDate(s)
	if err != nil {
		return err
	}

	*d = parsed

	return nil
}

func parseDate(s string) (Date, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return DateOf(t), nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}

	return DateOf(t), nil
}

func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}

func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = DateOf(v)
	case string:
		parsed, err := parseDate(v)
		if err != nil {
			return err
		}

		*d = parsed
	case []byte:
		return d.Scan(string(v))
	case nil:
		*d = Date{}
	default:
		return fmt.Errorf("cannot scan %T into invoice.Date", src)
	}

	return nil
}
