package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/invoicely/internal/apperr"
	"github.com/MrJamesThe3rd/invoicely/internal/database"
	"github.com/MrJamesThe3rd/invoicely/internal/timeentry"
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

const selectEntryColumns = `
	id, user_id, client_id, project_name, description, start_time, end_time,
	duration, hourly_rate, is_billable, is_invoiced, created_at, updated_at
`

func scanEntry(s scanner) (*timeentry.TimeEntry, error) {
	var (
		e        timeentry.TimeEntry
		clientID uuid.NullUUID
		endTime  sql.NullTime
	)

	if err := s.Scan(
		&e.ID, &e.UserID, &clientID, &e.ProjectName, &e.Description, &e.StartTime, &endTime,
		&e.Duration, &e.HourlyRate, &e.IsBillable, &e.IsInvoiced, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if clientID.Valid {
		e.ClientID = &clientID.UUID
	}

	if endTime.Valid {
		e.EndTime = &endTime.Time
	}

	return &e, nil
}

func (s *Store) ListTimeEntries(ctx context.Context, userID uuid.UUID) ([]*timeentry.TimeEntry, error) {
	query := `SELECT ` + selectEntryColumns + `
		FROM time_entries
		WHERE user_id = ?
		ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, s.db.Rebind(query), userID)
	if err != nil {
		return nil, fmt.Errorf("listing time entries: %w", err)
	}
	defer rows.Close()

	entries := []*timeentry.TimeEntry{}

	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning time entry: %w", err)
		}

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating time entry rows: %w", err)
	}

	return entries, nil
}

func (s *Store) GetTimeEntry(ctx context.Context, userID, id uuid.UUID) (*timeentry.TimeEntry, error) {
	query := `SELECT ` + selectEntryColumns + `
		FROM time_entries
		WHERE id = ? AND user_id = ?`

	e, err := scanEntry(s.db.QueryRowContext(ctx, s.db.Rebind(query), id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}

		return nil, fmt.Errorf("getting time entry: %w", err)
	}

	return e, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

const insertEntryQuery = `
	INSERT INTO time_entries (
		id, user_id, client_id, project_name, description, start_time, end_time,
		duration, hourly_rate, is_billable, is_invoiced, created_at, updated_at
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

func (s *Store) insertEntry(ctx context.Context, ex execer, e *timeentry.TimeEntry) error {
	id := uuid.New()
	now := database.Now()

	_, err := ex.ExecContext(ctx, s.db.Rebind(insertEntryQuery),
		id, e.UserID, nullUUID(e.ClientID), e.ProjectName, e.Description, e.StartTime.UTC(), nullTime(e.EndTime),
		e.Duration, e.HourlyRate, e.IsBillable, e.IsInvoiced, now, now,
	)
	if err != nil {
		return err
	}

	e.ID = id
	e.CreatedAt = now
	e.UpdatedAt = now

	return nil
}

func (s *Store) CreateTimeEntry(ctx context.Context, e *timeentry.TimeEntry) error {
	if err := s.insertEntry(ctx, s.db, e); err != nil {
		return fmt.Errorf("creating time entry: %w", err)
	}

	return nil
}

func (s *Store) UpdateTimeEntry(ctx context.Context, e *timeentry.TimeEntry) error {
	now := database.Now()

	query := `
		UPDATE time_entries
		SET client_id = ?, project_name = ?, description = ?, start_time = ?, end_time = ?,
			duration = ?, hourly_rate = ?, is_billable = ?, is_invoiced = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`

	res, err := s.db.ExecContext(ctx, s.db.Rebind(query),
		nullUUID(e.ClientID), e.ProjectName, e.Description, e.StartTime.UTC(), nullTime(e.EndTime),
		e.Duration, e.HourlyRate, e.IsBillable, e.IsInvoiced, now,
		e.ID, e.UserID,
	)
	if err != nil {
		return fmt.Errorf("updating time entry: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return apperr.ErrNotFound
	}

	e.UpdatedAt = now

	return nil
}

func (s *Store) DeleteTimeEntry(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM time_entries WHERE id = ? AND user_id = ?`

	res, err := s.db.ExecContext(ctx, s.db.Rebind(query), id, userID)
	if err != nil {
		return fmt.Errorf("deleting time entry: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return apperr.ErrNotFound
	}

	return nil
}

func importLockKey(userID uuid.UUID) int64 {
	h := fnv.New64a()
	h.Write(userID[:])

	return int64(h.Sum64())
}

type importTx struct {
	store  *Store
	tx     *sql.Tx
	userID uuid.UUID
}

// BeginImport opens the transaction a batch import runs in. On postgres it also takes a
// per-user advisory lock so two imports for the same user cannot interleave their
// duplicate checks.
func (s *Store) BeginImport(ctx context.Context, userID uuid.UUID) (timeentry.ImportTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning import tx: %w", err)
	}

	if s.db.Driver == database.DriverPostgres {
		if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", importLockKey(userID)); err != nil {
			dbTx.Rollback()
			return nil, fmt.Errorf("acquiring import lock: %w", err)
		}
	}

	return &importTx{store: s, tx: dbTx, userID: userID}, nil
}

func (itx *importTx) Commit() error   { return itx.tx.Commit() }
func (itx *importTx) Rollback() error { return itx.tx.Rollback() }

func (itx *importTx) FindDuplicates(ctx context.Context, entries []*timeentry.TimeEntry) ([]*timeentry.TimeEntry, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	type lookupKey struct {
		Project  string
		Start    int64
		Duration int
	}

	keySet := make(map[lookupKey]struct{}, len(entries))
	for _, e := range entries {
		keySet[lookupKey{e.ProjectName, e.StartTime.Unix(), e.Duration}] = struct{}{}
	}

	query := `SELECT ` + selectEntryColumns + `
		FROM time_entries
		WHERE user_id = ?
		ORDER BY created_at ASC`

	rows, err := itx.tx.QueryContext(ctx, itx.store.db.Rebind(query), itx.userID)
	if err != nil {
		return nil, fmt.Errorf("finding duplicates: %w", err)
	}
	defer rows.Close()

	var duplicates []*timeentry.TimeEntry

	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning time entry: %w", err)
		}

		if _, found := keySet[lookupKey{e.ProjectName, e.StartTime.Unix(), e.Duration}]; !found {
			continue
		}

		duplicates = append(duplicates, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating duplicate rows: %w", err)
	}

	return duplicates, nil
}

func (itx *importTx) CreateTimeEntries(ctx context.Context, entries []*timeentry.TimeEntry) error {
	for _, e := range entries {
		e.UserID = itx.userID

		if err := itx.store.insertEntry(ctx, itx.tx, e); err != nil {
			return fmt.Errorf("creating time entry %q: %w", e.ProjectName, err)
		}
	}

	return nil
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}

	return uuid.NullUUID{UUID: *id, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}

	return sql.NullTime{Time: t.UTC(), Valid: true}
}
