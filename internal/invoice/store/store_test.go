package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/invoicely/internal/apperr"
	"github.com/MrJamesThe3rd/invoicely/internal/database/databasetest"
	"github.com/MrJamesThe3rd/invoicely/internal/invoice"
	"github.com/MrJamesThe3rd/invoicely/internal/invoice/store"
)

func TestStore_InvoiceLifecycle(t *testing.T) {
	ctx := context.Background()
	s := store.New(databasetest.NewSQLite(t))

	userID := uuid.New()
	clientID := uuid.New()

	inv := &invoice.Invoice{
		UserID:        userID,
		ClientID:      clientID,
		InvoiceNumber: "INV-001",
		Status:        invoice.StatusSent,
		IssueDate:     invoice.NewDate(2026, time.October, 1),
		DueDate:       invoice.NewDate(2026, time.October, 15),
		Subtotal:      200,
		TaxRate:       10,
		TaxAmount:     20,
		Total:         220,
		Currency:      "USD",
		Items: []invoice.Item{
			{ID: uuid.New(), Description: "Build", Quantity: 4, Rate: 50, Amount: 200},
		},
	}
	require.NoError(t, s.CreateInvoice(ctx, inv))
	assert.NotEqual(t, uuid.Nil, inv.ID)

	second := &invoice.Invoice{
		UserID:        userID,
		ClientID:      clientID,
		InvoiceNumber: "INV-002",
		Status:        invoice.StatusDraft,
		IssueDate:     invoice.NewDate(2026, time.October, 2),
		DueDate:       invoice.NewDate(2026, time.October, 16),
		Currency:      "USD",
	}
	require.NoError(t, s.CreateInvoice(ctx, second))
	assert.Equal(t, []invoice.Item{}, second.Items)

	list, err := s.ListInvoices(ctx, userID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "INV-001", list[0].InvoiceNumber)
	assert.Equal(t, "INV-002", list[1].InvoiceNumber)
	assert.Equal(t, "2026-10-15", list[0].DueDate.String())
	assert.Equal(t, inv.Items, list[0].Items)
	assert.Equal(t, invoice.StatusSent, list[0].Status)

	inv.Status = invoice.StatusPaid
	require.NoError(t, s.UpdateInvoice(ctx, inv))

	got, err := s.GetInvoice(ctx, userID, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, invoice.StatusPaid, got.Status)
	assert.Equal(t, 220.0, got.Total)

	_, err = s.GetInvoice(ctx, uuid.New(), inv.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	require.NoError(t, s.DeleteInvoice(ctx, userID, inv.ID))
	assert.ErrorIs(t, s.DeleteInvoice(ctx, userID, inv.ID), apperr.ErrNotFound)
}
