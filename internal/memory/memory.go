// Package memory keeps records in process memory. It backs the api when
// DB_DRIVER=memory and stands in for the database in tests.
package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/invoicely/internal/apperr"
	"github.com/MrJamesThe3rd/invoicely/internal/client"
	"github.com/MrJamesThe3rd/invoicely/internal/database"
	"github.com/MrJamesThe3rd/invoicely/internal/invoice"
	"github.com/MrJamesThe3rd/invoicely/internal/timeentry"
)

var errTxDone = errors.New("import already committed or rolled back")

var (
	_ client.Repository    = (*Store)(nil)
	_ invoice.Repository   = (*Store)(nil)
	_ timeentry.Repository = (*Store)(nil)
)

// Store holds one table per record kind. The zero value is not usable; call New.
type Store struct {
	clients     *table[client.Client]
	invoices    *table[invoice.Invoice]
	timeEntries *table[timeentry.TimeEntry]
}

func New() *Store {
	return &Store{
		clients:     newTable[client.Client](),
		invoices:    newTable[invoice.Invoice](),
		timeEntries: newTable[timeentry.TimeEntry](),
	}
}

type row[T any] struct {
	userID uuid.UUID
	rec    T
}

// table is a map keyed by id that remembers insertion order.
type table[T any] struct {
	mu    sync.RWMutex
	rows  map[uuid.UUID]*row[T]
	order []uuid.UUID
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[uuid.UUID]*row[T])}
}

func (t *table[T]) list(userID uuid.UUID) []*T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := []*T{}

	for _, id := range t.order {
		r := t.rows[id]
		if r.userID != userID {
			continue
		}

		rec := r.rec
		out = append(out, &rec)
	}

	return out
}

func (t *table[T]) get(userID, id uuid.UUID) (*T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	r, ok := t.rows[id]
	if !ok || r.userID != userID {
		return nil, apperr.ErrNotFound
	}

	rec := r.rec

	return &rec, nil
}

func (t *table[T]) insert(userID, id uuid.UUID, rec T) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.rows[id] = &row[T]{userID: userID, rec: rec}
	t.order = append(t.order, id)
}

func (t *table[T]) insertAll(userID uuid.UUID, ids []uuid.UUID, recs []T) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i, id := range ids {
		t.rows[id] = &row[T]{userID: userID, rec: recs[i]}
		t.order = append(t.order, id)
	}
}

func (t *table[T]) replace(userID, id uuid.UUID, rec T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	r, ok := t.rows[id]
	if !ok || r.userID != userID {
		return apperr.ErrNotFound
	}

	r.rec = rec

	return nil
}

func (t *table[T]) delete(userID, id uuid.UUID) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	r, ok := t.rows[id]
	if !ok || r.userID != userID {
		return apperr.ErrNotFound
	}

	delete(t.rows, id)

	for i, oid := range t.order {
		if oid == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}

	return nil
}

func (s *Store) ListClients(_ context.Context, userID uuid.UUID) ([]*client.Client, error) {
	cs := s.clients.list(userID)
	for _, c := range cs {
		*c = cloneClient(*c)
	}

	return cs, nil
}

func (s *Store) GetClient(_ context.Context, userID, id uuid.UUID) (*client.Client, error) {
	c, err := s.clients.get(userID, id)
	if err != nil {
		return nil, err
	}

	*c = cloneClient(*c)

	return c, nil
}

func (s *Store) CreateClient(_ context.Context, c *client.Client) error {
	now := database.Now()
	c.ID = uuid.New()
	c.CreatedAt = now
	c.UpdatedAt = now

	if c.Tags == nil {
		c.Tags = []string{}
	}

	s.clients.insert(c.UserID, c.ID, cloneClient(*c))

	return nil
}

func (s *Store) UpdateClient(_ context.Context, c *client.Client) error {
	prev := c.UpdatedAt
	c.UpdatedAt = database.Now()

	if err := s.clients.replace(c.UserID, c.ID, cloneClient(*c)); err != nil {
		c.UpdatedAt = prev
		return err
	}

	return nil
}

func (s *Store) DeleteClient(_ context.Context, userID, id uuid.UUID) error {
	return s.clients.delete(userID, id)
}

func (s *Store) ListInvoices(_ context.Context, userID uuid.UUID) ([]*invoice.Invoice, error) {
	invs := s.invoices.list(userID)
	for _, inv := range invs {
		inv.Items = cloneItems(inv.Items)
	}

	return invs, nil
}

func (s *Store) GetInvoice(_ context.Context, userID, id uuid.UUID) (*invoice.Invoice, error) {
	inv, err := s.invoices.get(userID, id)
	if err != nil {
		return nil, err
	}

	inv.Items = cloneItems(inv.Items)

	return inv, nil
}

func (s *Store) CreateInvoice(_ context.Context, inv *invoice.Invoice) error {
	now := database.Now()
	inv.ID = uuid.New()
	inv.CreatedAt = now
	inv.UpdatedAt = now

	if inv.Items == nil {
		inv.Items = []invoice.Item{}
	}

	stored := *inv
	stored.Items = cloneItems(inv.Items)
	s.invoices.insert(inv.UserID, inv.ID, stored)

	return nil
}

func (s *Store) UpdateInvoice(_ context.Context, inv *invoice.Invoice) error {
	prev := inv.UpdatedAt
	inv.UpdatedAt = database.Now()

	stored := *inv
	stored.Items = cloneItems(inv.Items)

	if err := s.invoices.replace(inv.UserID, inv.ID, stored); err != nil {
		inv.UpdatedAt = prev
		return err
	}

	return nil
}

func (s *Store) DeleteInvoice(_ context.Context, userID, id uuid.UUID) error {
	return s.invoices.delete(userID, id)
}

func (s *Store) ListTimeEntries(_ context.Context, userID uuid.UUID) ([]*timeentry.TimeEntry, error) {
	return s.timeEntries.list(userID), nil
}

func (s *Store) GetTimeEntry(_ context.Context, userID, id uuid.UUID) (*timeentry.TimeEntry, error) {
	return s.timeEntries.get(userID, id)
}

func (s *Store) CreateTimeEntry(_ context.Context, e *timeentry.TimeEntry) error {
	now := database.Now()
	e.ID = uuid.New()
	e.CreatedAt = now
	e.UpdatedAt = now

	s.timeEntries.insert(e.UserID, e.ID, *e)

	return nil
}

func (s *Store) UpdateTimeEntry(_ context.Context, e *timeentry.TimeEntry) error {
	prev := e.UpdatedAt
	e.UpdatedAt = database.Now()

	if err := s.timeEntries.replace(e.UserID, e.ID, *e); err != nil {
		e.UpdatedAt = prev
		return err
	}

	return nil
}

func (s *Store) DeleteTimeEntry(_ context.Context, userID, id uuid.UUID) error {
	return s.timeEntries.delete(userID, id)
}

func (s *Store) BeginImport(_ context.Context, userID uuid.UUID) (timeentry.ImportTx, error) {
	return &importTx{store: s, userID: userID}, nil
}

// importTx stages entries and writes them to the table only on Commit.
type importTx struct {
	store  *Store
	userID uuid.UUID

	mu     sync.Mutex
	staged []timeentry.TimeEntry
	done   bool
}

func (tx *importTx) FindDuplicates(_ context.Context, entries []*timeentry.TimeEntry) ([]*timeentry.TimeEntry, error) {
	type key struct {
		project  string
		start    int64
		duration int
	}

	want := make(map[key]struct{}, len(entries))
	for _, e := range entries {
		want[key{e.ProjectName, e.StartTime.Unix(), e.Duration}] = struct{}{}
	}

	var out []*timeentry.TimeEntry

	for _, e := range tx.store.timeEntries.list(tx.userID) {
		if _, ok := want[key{e.ProjectName, e.StartTime.Unix(), e.Duration}]; ok {
			out = append(out, e)
		}
	}

	return out, nil
}

func (tx *importTx) CreateTimeEntries(_ context.Context, entries []*timeentry.TimeEntry) error {
	tx.mu.Lock()
	defer tx.mu.Unlock()

	if tx.done {
		return errTxDone
	}

	now := database.Now()

	for _, e := range entries {
		e.ID = uuid.New()
		e.UserID = tx.userID
		e.CreatedAt = now
		e.UpdatedAt = now

		tx.staged = append(tx.staged, *e)
	}

	return nil
}

func (tx *importTx) Commit() error {
	tx.mu.Lock()
	defer tx.mu.Unlock()

	if tx.done {
		return errTxDone
	}

	tx.done = true

	ids := make([]uuid.UUID, len(tx.staged))
	for i, e := range tx.staged {
		ids[i] = e.ID
	}

	tx.store.timeEntries.insertAll(tx.userID, ids, tx.staged)
	tx.staged = nil

	return nil
}

// Rollback discards staged entries. It is a no-op after Commit.
func (tx *importTx) Rollback() error {
	tx.mu.Lock()
	defer tx.mu.Unlock()

	tx.done = true
	tx.staged = nil

	return nil
}

func cloneClient(c client.Client) client.Client {
	c.Tags = append([]string{}, c.Tags...)
	return c
}

func cloneItems(items []invoice.Item) []invoice.Item {
	return append([]invoice.Item{}, items...)
}
