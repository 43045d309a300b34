package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/invoicely/internal/apperr"
	"github.com/MrJamesThe3rd/invoicely/internal/client"
	"github.com/MrJamesThe3rd/invoicely/internal/database"
)

type Store struct {
	db *database.DB
}

func New(db *database.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectClientColumns = `
	id, user_id, name, email, phone, address, company, hourly_rate, tags, notes, created_at, updated_at
`

func scanClient(s scanner) (*client.Client, error) {
	var c client.Client

	var tags []byte

	if err := s.Scan(
		&c.ID, &c.UserID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.Company,
		&c.HourlyRate, &tags, &c.Notes, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(tags, &c.Tags); err != nil {
		return nil, fmt.Errorf("decoding tags of client %s: %w", c.ID, err)
	}

	if c.Tags == nil {
		c.Tags = []string{}
	}

	return &c, nil
}

func (s *Store) ListClients(ctx context.Context, userID uuid.UUID) ([]*client.Client, error) {
	query := `SELECT ` + selectClientColumns + `
		FROM clients
		WHERE user_id = ?
		ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, s.db.Rebind(query), userID)
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	defer rows.Close()

	clients := []*client.Client{}

	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning client: %w", err)
		}

		clients = append(clients, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating client rows: %w", err)
	}

	return clients, nil
}

func (s *Store) GetClient(ctx context.Context, userID, id uuid.UUID) (*client.Client, error) {
	query := `SELECT ` + selectClientColumns + `
		FROM clients
		WHERE id = ? AND user_id = ?`

	c, err := scanClient(s.db.QueryRowContext(ctx, s.db.Rebind(query), id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}

		return nil, fmt.Errorf("getting client: %w", err)
	}

	return c, nil
}

func (s *Store) CreateClient(ctx context.Context, c *client.Client) error {
	tags, err := json.Marshal(nonNil(c.Tags))
	if err != nil {
		return fmt.Errorf("encoding tags: %w", err)
	}

	id := uuid.New()
	now := database.Now()

	query := `
		INSERT INTO clients (id, user_id, name, email, phone, address, company, hourly_rate, tags, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = s.db.ExecContext(ctx, s.db.Rebind(query),
		id, c.UserID, c.Name, c.Email, c.Phone, c.Address, c.Company,
		c.HourlyRate, string(tags), c.Notes, now, now,
	)
	if err != nil {
		return fmt.Errorf("creating client: %w", err)
	}

	c.ID = id
	c.Tags = nonNil(c.Tags)
	c.CreatedAt = now
	c.UpdatedAt = now

	return nil
}

func (s *Store) UpdateClient(ctx context.Context, c *client.Client) error {
	tags, err := json.Marshal(nonNil(c.Tags))
	if err != nil {
		return fmt.Errorf("encoding tags: %w", err)
	}

	now := database.Now()

	query := `
		UPDATE clients
		SET name = ?, email = ?, phone = ?, address = ?, company = ?, hourly_rate = ?, tags = ?, notes = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`

	res, err := s.db.ExecContext(ctx, s.db.Rebind(query),
		c.Name, c.Email, c.Phone, c.Address, c.Company, c.HourlyRate, string(tags), c.Notes, now,
		c.ID, c.UserID,
	)
	if err != nil {
		return fmt.Errorf("updating client: %w", err)
	}

	if err := expectOneRow(res); err != nil {
		return err
	}

	c.UpdatedAt = now

	return nil
}

func (s *Store) DeleteClient(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM clients WHERE id = ? AND user_id = ?`

	res, err := s.db.ExecContext(ctx, s.db.Rebind(query), id, userID)
	if err != nil {
		return fmt.Errorf("deleting client: %w", err)
	}

	return expectOneRow(res)
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

func nonNil(tags []string) []string {
	if tags == nil {
		return []string{}
	}

	return tags
}
