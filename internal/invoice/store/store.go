package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/invoicely/internal/apperr"
	"github.com/MrJamesThe3rd/invoicely/internal/database"
	"github.com/MrJamesThe3rd/invoicely/internal/invoice"
)

type Store struct {
	db *database.DB
}

func New(db *database.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectInvoiceColumns = `
	id, user_id, client_id, invoice_number, status, issue_date, due_date,
	subtotal, tax_rate, tax_amount, total, currency, notes, items, created_at, updated_at
`

func scanInvoice(s scanner) (*invoice.Invoice, error) {
	var (
		inv    invoice.Invoice
		status string
		items  []byte
	)

	if err := s.Scan(
		&inv.ID, &inv.UserID, &inv.ClientID, &inv.InvoiceNumber, &status, &inv.IssueDate, &inv.DueDate,
		&inv.Subtotal, &inv.TaxRate, &inv.TaxAmount, &inv.Total, &inv.Currency, &inv.Notes, &items,
		&inv.CreatedAt, &inv.UpdatedAt,
	); err != nil {
		return nil, err
	}

	st, err := invoice.ParseStatus(status)
	if err != nil {
		return nil, fmt.Errorf("invoice %s: %w", inv.ID, err)
	}

	inv.Status = st

	if err := json.Unmarshal(items, &inv.Items); err != nil {
		return nil, fmt.Errorf("decoding items of invoice %s: %w", inv.ID, err)
	}

	if inv.Items == nil {
		inv.Items = []invoice.Item{}
	}

	return &inv, nil
}

func (s *Store) ListInvoices(ctx context.Context, userID uuid.UUID) ([]*invoice.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + `
		FROM invoices
		WHERE user_id = ?
		ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, s.db.Rebind(query), userID)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	defer rows.Close()

	invoices := []*invoice.Invoice{}

	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning invoice: %w", err)
		}

		invoices = append(invoices, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invoice rows: %w", err)
	}

	return invoices, nil
}

func (s *Store) GetInvoice(ctx context.Context, userID, id uuid.UUID) (*invoice.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + `
		FROM invoices
		WHERE id = ? AND user_id = ?`

	inv, err := scanInvoice(s.db.QueryRowContext(ctx, s.db.Rebind(query), id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}

		return nil, fmt.Errorf("getting invoice: %w", err)
	}

	return inv, nil
}

func (s *Store) CreateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	items, err := encodeItems(inv.Items)
	if err != nil {
		return err
	}

	id := uuid.New()
	now := database.Now()

	query := `
		INSERT INTO invoices (
			id, user_id, client_id, invoice_number, status, issue_date, due_date,
			subtotal, tax_rate, tax_amount, total, currency, notes, items, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = s.db.ExecContext(ctx, s.db.Rebind(query),
		id, inv.UserID, inv.ClientID, inv.InvoiceNumber, string(inv.Status), inv.IssueDate, inv.DueDate,
		inv.Subtotal, inv.TaxRate, inv.TaxAmount, inv.Total, inv.Currency, inv.Notes, items, now, now,
	)
	if err != nil {
		return fmt.Errorf("creating invoice: %w", err)
	}

	inv.ID = id
	if inv.Items == nil {
		inv.Items = []invoice.Item{}
	}

	inv.CreatedAt = now
	inv.UpdatedAt = now

	return nil
}

func (s *Store) UpdateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	items, err := encodeItems(inv.Items)
	if err != nil {
		return err
	}

	now := database.Now()

	query := `
		UPDATE invoices
		SET client_id = ?, invoice_number = ?, status = ?, issue_date = ?, due_date = ?,
			subtotal = ?, tax_rate = ?, tax_amount = ?, total = ?, currency = ?, notes = ?, items = ?,
			updated_at = ?
		WHERE id = ? AND user_id = ?
	`

	res, err := s.db.ExecContext(ctx, s.db.Rebind(query),
		inv.ClientID, inv.InvoiceNumber, string(inv.Status), inv.IssueDate, inv.DueDate,
		inv.Subtotal, inv.TaxRate, inv.TaxAmount, inv.Total, inv.Currency, inv.Notes, items, now,
		inv.ID, inv.UserID,
	)
	if err != nil {
		return fmt.Errorf("updating invoice: %w", err)
	}

	if err := expectOneRow(res); err != nil {
		return err
	}

	inv.UpdatedAt = now

	return nil
}

func (s *Store) DeleteInvoice(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM invoices WHERE id = ? AND user_id = ?`

	res, err := s.db.ExecContext(ctx, s.db.Rebind(query), id, userID)
	if err != nil {
		return fmt.Errorf("deleting invoice: %w", err)
	}

	return expectOneRow(res)
}

func encodeItems(items []invoice.Item) (string, error) {
	if items == nil {
		items = []invoice.Item{}
	}

	b, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encoding items: %w", err)
	}

	return string(b), nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return apperr.ErrNotFound
	}

	return nil
}
