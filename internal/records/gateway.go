package records

import (
	"context"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/invoicely/internal/apperr"
	"github.com/MrJamesThe3rd/invoicely/internal/client"
	"github.com/MrJamesThe3rd/invoicely/internal/invoice"
	"github.com/MrJamesThe3rd/invoicely/internal/timeentry"
)

// Gateway writes through the store's providers and, once a write is accepted,
// patches the store in place instead of reloading it. Writes are only accepted
// for the store's owner.
type Gateway struct {
	store *Store
}

func NewGateway(store *Store) *Gateway {
	return &Gateway{store: store}
}

// providerErr leaves validation failures as they are and wraps everything else.
func providerErr(op, table string, err error) error {
	if apperr.IsValidation(err) {
		return err
	}

	return &apperr.ProviderError{Op: op, Table: table, Err: err}
}

func (g *Gateway) AddClient(ctx context.Context, userID uuid.UUID, params client.CreateParams) (*client.Client, error) {
	if err := g.store.authorize(userID); err != nil {
		return nil, err
	}

	c, err := g.store.clients.Create(ctx, userID, params)
	if err != nil {
		return nil, providerErr("insert", tableClients, err)
	}

	rec := cloneClient(*c)
	g.store.patch(userID, func(s *Store) {
		s.clientList = upsert(s.clientList, cloneClient(rec), clientID)
	})

	return c, nil
}

func (g *Gateway) UpdateClient(ctx context.Context, userID, id uuid.UUID, params client.UpdateParams) (*client.Client, error) {
	if err := g.store.authorize(userID); err != nil {
		return nil, err
	}

	c, err := g.store.clients.Update(ctx, userID, id, params)
	if err != nil {
		return nil, providerErr("update", tableClients, err)
	}

	rec := cloneClient(*c)
	g.store.patch(userID, func(s *Store) {
		s.clientList = upsert(s.clientList, cloneClient(rec), clientID)
	})

	return c, nil
}

// RemoveClient deletes the client only. Invoices and time entries that point at it are kept.
func (g *Gateway) RemoveClient(ctx context.Context, userID, id uuid.UUID) error {
	if err := g.store.authorize(userID); err != nil {
		return err
	}

	if err := g.store.clients.Delete(ctx, userID, id); err != nil {
		return providerErr("delete", tableClients, err)
	}

	g.store.patch(userID, func(s *Store) {
		s.clientList = remove(s.clientList, id, clientID)
	})

	return nil
}

func (g *Gateway) AddInvoice(ctx context.Context, userID uuid.UUID, params invoice.CreateParams) (*invoice.Invoice, error) {
	if err := g.store.authorize(userID); err != nil {
		return nil, err
	}

	inv, err := g.store.invoices.Create(ctx, userID, params)
	if err != nil {
		return nil, providerErr("insert", tableInvoices, err)
	}

	rec := cloneInvoice(*inv)
	g.store.patch(userID, func(s *Store) {
		s.invoiceList = upsert(s.invoiceList, cloneInvoice(rec), invoiceID)
	})

	return inv, nil
}

func (g *Gateway) UpdateInvoice(ctx context.Context, userID, id uuid.UUID, params invoice.UpdateParams) (*invoice.Invoice, error) {
	if err := g.store.authorize(userID); err != nil {
		return nil, err
	}

	inv, err := g.store.invoices.Update(ctx, userID, id, params)
	if err != nil {
		return nil, providerErr("update", tableInvoices, err)
	}

	rec := cloneInvoice(*inv)
	g.store.patch(userID, func(s *Store) {
		s.invoiceList = upsert(s.invoiceList, cloneInvoice(rec), invoiceID)
	})

	return inv, nil
}

func (g *Gateway) RemoveInvoice(ctx context.Context, userID, id uuid.UUID) error {
	if err := g.store.authorize(userID); err != nil {
		return err
	}

	if err := g.store.invoices.Delete(ctx, userID, id); err != nil {
		return providerErr("delete", tableInvoices, err)
	}

	g.store.patch(userID, func(s *Store) {
		s.invoiceList = remove(s.invoiceList, id, invoiceID)
	})

	return nil
}

func (g *Gateway) AddTimeEntry(ctx context.Context, userID uuid.UUID, params timeentry.CreateParams) (*timeentry.TimeEntry, error) {
	if err := g.store.authorize(userID); err != nil {
		return nil, err
	}

	e, err := g.store.timeEntries.Create(ctx, userID, params)
	if err != nil {
		return nil, providerErr("insert", tableTimeEntries, err)
	}

	rec := cloneEntry(*e)
	g.store.patch(userID, func(s *Store) {
		s.entryList = upsert(s.entryList, rec, entryID)
	})

	return e, nil
}

func (g *Gateway) UpdateTimeEntry(ctx context.Context, userID, id uuid.UUID, params timeentry.UpdateParams) (*timeentry.TimeEntry, error) {
	if err := g.store.authorize(userID); err != nil {
		return nil, err
	}

	e, err := g.store.timeEntries.Update(ctx, userID, id, params)
	if err != nil {
		return nil, providerErr("update", tableTimeEntries, err)
	}

	rec := cloneEntry(*e)
	g.store.patch(userID, func(s *Store) {
		s.entryList = upsert(s.entryList, rec, entryID)
	})

	return e, nil
}

func (g *Gateway) RemoveTimeEntry(ctx context.Context, userID, id uuid.UUID) error {
	if err := g.store.authorize(userID); err != nil {
		return err
	}

	if err := g.store.timeEntries.Delete(ctx, userID, id); err != nil {
		return providerErr("delete", tableTimeEntries, err)
	}

	g.store.patch(userID, func(s *Store) {
		s.entryList = remove(s.entryList, id, entryID)
	})

	return nil
}
