// Package records keeps one user's clients, invoices and time entries in memory
// and applies mutations to them after the provider has accepted them.
package records

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/invoicely/internal/apperr"
	"github.com/MrJamesThe3rd/invoicely/internal/client"
	"github.com/MrJamesThe3rd/invoicely/internal/invoice"
	"github.com/MrJamesThe3rd/invoicely/internal/timeentry"
)

const (
	tableClients     = "clients"
	tableInvoices    = "invoices"
	tableTimeEntries = "time_entries"
)

type ClientProvider interface {
	List(ctx context.Context, userID uuid.UUID) ([]*client.Client, error)
	Create(ctx context.Context, userID uuid.UUID, params client.CreateParams) (*client.Client, error)
	Update(ctx context.Context, userID, id uuid.UUID, params client.UpdateParams) (*client.Client, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type InvoiceProvider interface {
	List(ctx context.Context, userID uuid.UUID) ([]*invoice.Invoice, error)
	Create(ctx context.Context, userID uuid.UUID, params invoice.CreateParams) (*invoice.Invoice, error)
	Update(ctx context.Context, userID, id uuid.UUID, params invoice.UpdateParams) (*invoice.Invoice, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type TimeEntryProvider interface {
	List(ctx context.Context, userID uuid.UUID) ([]*timeentry.TimeEntry, error)
	Create(ctx context.Context, userID uuid.UUID, params timeentry.CreateParams) (*timeentry.TimeEntry, error)
	Update(ctx context.Context, userID, id uuid.UUID, params timeentry.UpdateParams) (*timeentry.TimeEntry, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// State is where the store is in its load cycle.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	}

	return "uninitialized"
}

// Snapshot is a consistent copy of everything the store holds.
type Snapshot struct {
	Clients     []client.Client
	Invoices    []invoice.Invoice
	TimeEntries []timeentry.TimeEntry
	State       State
}

type Store struct {
	clients     ClientProvider
	invoices    InvoiceProvider
	timeEntries TimeEntryProvider

	mu          sync.RWMutex
	state       State
	owner       uuid.UUID
	clientList  []client.Client
	invoiceList []invoice.Invoice
	entryList   []timeentry.TimeEntry

	// inflight counts running refreshes; writes applied meanwhile are kept in
	// pending and replayed over the lists those refreshes fetched.
	inflight int
	pending  []pendingWrite
}

type pendingWrite struct {
	userID uuid.UUID
	apply  func(*Store)
}

func NewStore(clients ClientProvider, invoices InvoiceProvider, timeEntries TimeEntryProvider) *Store {
	return &Store{
		clients:     clients,
		invoices:    invoices,
		timeEntries: timeEntries,
		clientList:  []client.Client{},
		invoiceList: []invoice.Invoice{},
		entryList:   []timeentry.TimeEntry{},
	}
}

// Refresh reloads all three collections for userID, who then owns the store.
// The collections are replaced together or not at all; on failure the previous
// contents and owner stay in place. Gateway writes that land while the fetch is
// running are applied again on top of the fetched lists. Without a user it does nothing.
func (s *Store) Refresh(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return nil
	}

	s.mu.Lock()
	s.state = StateLoading
	s.inflight++
	s.mu.Unlock()

	var (
		clients []*client.Client
		invs    []*invoice.Invoice
		entries []*timeentry.TimeEntry
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error

		clients, err = s.clients.List(gctx, userID)
		if err != nil {
			return &apperr.ProviderError{Op: "list", Table: tableClients, Err: err}
		}

		return nil
	})

	g.Go(func() error {
		var err error

		invs, err = s.invoices.List(gctx, userID)
		if err != nil {
			return &apperr.ProviderError{Op: "list", Table: tableInvoices, Err: err}
		}

		return nil
	})

	g.Go(func() error {
		var err error

		entries, err = s.timeEntries.List(gctx, userID)
		if err != nil {
			return &apperr.ProviderError{Op: "list", Table: tableTimeEntries, Err: err}
		}

		return nil
	})

	err := g.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.inflight--
	pending := s.pending

	if s.inflight == 0 {
		s.state = StateReady
		s.pending = nil
	}

	if err != nil {
		return err
	}

	s.owner = userID
	s.clientList = derefAll(clients, cloneClient)
	s.invoiceList = derefAll(invs, cloneInvoice)
	s.entryList = derefAll(entries, cloneEntry)

	for _, w := range pending {
		if w.userID == userID {
			w.apply(s)
		}
	}

	return nil
}

// Owner returns the user the collections were loaded or written for, or uuid.Nil.
func (s *Store) Owner() uuid.UUID {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.owner
}

// authorize checks userID may write through the store. An unowned store is
// claimed by its first writer.
func (s *Store) authorize(userID uuid.UUID) error {
	if userID == uuid.Nil {
		return apperr.ErrUnauthenticated
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.owner {
	case uuid.Nil:
		s.owner = userID
	case userID:
	default:
		return apperr.ErrForbidden
	}

	return nil
}

// patch applies a confirmed write for userID. It is dropped when the store has
// since been reloaded for another user.
func (s *Store) patch(userID uuid.UUID, apply func(*Store)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.owner != userID {
		return
	}

	apply(s)

	if s.inflight > 0 {
		s.pending = append(s.pending, pendingWrite{userID: userID, apply: apply})
	}
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state
}

// Loading reports whether a refresh is in flight.
func (s *Store) Loading() bool {
	return s.State() == StateLoading
}

func (s *Store) Clients() []client.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return copyAll(s.clientList, cloneClient)
}

func (s *Store) Invoices() []invoice.Invoice {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return copyAll(s.invoiceList, cloneInvoice)
}

func (s *Store) TimeEntries() []timeentry.TimeEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return copyAll(s.entryList, cloneEntry)
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		Clients:     copyAll(s.clientList, cloneClient),
		Invoices:    copyAll(s.invoiceList, cloneInvoice),
		TimeEntries: copyAll(s.entryList, cloneEntry),
		State:       s.state,
	}
}

func derefAll[T any](in []*T, clone func(T) T) []T {
	out := make([]T, 0, len(in))
	for _, p := range in {
		if p != nil {
			out = append(out, clone(*p))
		}
	}

	return out
}

func copyAll[T any](in []T, clone func(T) T) []T {
	out := make([]T, len(in))
	for i, v := range in {
		out[i] = clone(v)
	}

	return out
}

// upsert replaces the element with the same id, or appends rec when none matches.
func upsert[T any](list []T, rec T, idOf func(T) uuid.UUID) []T {
	id := idOf(rec)

	i := slices.IndexFunc(list, func(v T) bool { return idOf(v) == id })
	if i < 0 {
		return append(list, rec)
	}

	list[i] = rec

	return list
}

func remove[T any](list []T, id uuid.UUID, idOf func(T) uuid.UUID) []T {
	return slices.DeleteFunc(list, func(v T) bool { return idOf(v) == id })
}

func cloneClient(c client.Client) client.Client {
	c.Tags = slices.Clone(c.Tags)
	if c.Tags == nil {
		c.Tags = []string{}
	}

	return c
}

func cloneInvoice(inv invoice.Invoice) invoice.Invoice {
	inv.Items = slices.Clone(inv.Items)
	if inv.Items == nil {
		inv.Items = []invoice.Item{}
	}

	return inv
}

func cloneEntry(e timeentry.TimeEntry) timeentry.TimeEntry {
	return e
}

func clientID(c client.Client) uuid.UUID { return c.ID }

func invoiceID(inv invoice.Invoice) uuid.UUID { return inv.ID }

func entryID(e timeentry.TimeEntry) uuid.UUID { return e.ID }
