package timeentry

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/invoicely/internal/validation"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=timeentry
type Repository interface {
	ListTimeEntries(ctx context.Context, userID uuid.UUID) ([]*TimeEntry, error)
	GetTimeEntry(ctx context.Context, userID, id uuid.UUID) (*TimeEntry, error)
	CreateTimeEntry(ctx context.Context, e *TimeEntry) error
	UpdateTimeEntry(ctx context.Context, e *TimeEntry) error
	DeleteTimeEntry(ctx context.Context, userID, id uuid.UUID) error
	BeginImport(ctx context.Context, userID uuid.UUID) (ImportTx, error)
}

// ImportTx stores an import batch all at once. Nothing created through it is
// visible until Commit; Rollback after Commit is a no-op.
type ImportTx interface {
	FindDuplicates(ctx context.Context, entries []*TimeEntry) ([]*TimeEntry, error)
	CreateTimeEntries(ctx context.Context, entries []*TimeEntry) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*TimeEntry, error) {
	return s.repo.ListTimeEntries(ctx, userID)
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*TimeEntry, error) {
	return s.repo.GetTimeEntry(ctx, userID, id)
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, params CreateParams) (*TimeEntry, error) {
	e := params.entry(userID)

	if err := validation.Struct(e); err != nil {
		return nil, err
	}

	if err := s.repo.CreateTimeEntry(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, params UpdateParams) (*TimeEntry, error) {
	if err := validation.Struct(params); err != nil {
		return nil, err
	}

	e, err := s.repo.GetTimeEntry(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	params.apply(e)

	if err := s.repo.UpdateTimeEntry(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.DeleteTimeEntry(ctx, userID, id)
}

type ImportResult struct {
	Imported []*TimeEntry   `json:"imported"`
	Skipped  []CreateParams `json:"skipped"`
}

type dupKey struct {
	Project  string
	Start    int64
	Duration int
}

func keyOf(project string, start time.Time, duration int) dupKey {
	return dupKey{Project: project, Start: start.Unix(), Duration: duration}
}

// ImportBatch creates every entry in params that the user does not already have.
// An entry is a duplicate when project, start time and duration all match an existing
// entry or an earlier row of the same batch. Every row is validated before anything is
// stored, and the batch is stored in one import transaction: all of it or none.
func (s *Service) ImportBatch(ctx context.Context, userID uuid.UUID, params []CreateParams) (*ImportResult, error) {
	result := &ImportResult{Imported: []*TimeEntry{}, Skipped: []CreateParams{}}
	if len(params) == 0 {
		return result, nil
	}

	entries := make([]*TimeEntry, len(params))

	for i, p := range params {
		e := p.entry(userID)
		if err := validation.Struct(e); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		entries[i] = e
	}

	itx, err := s.repo.BeginImport(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	existing, err := itx.FindDuplicates(ctx, entries)
	if err != nil {
		return nil, fmt.Errorf("find duplicates: %w", err)
	}

	seen := make(map[dupKey]struct{}, len(existing)+len(params))
	for _, e := range existing {
		seen[keyOf(e.ProjectName, e.StartTime, e.Duration)] = struct{}{}
	}

	fresh := make([]*TimeEntry, 0, len(entries))

	for i, e := range entries {
		k := keyOf(e.ProjectName, e.StartTime, e.Duration)
		if _, dup := seen[k]; dup {
			result.Skipped = append(result.Skipped, params[i])
			continue
		}

		seen[k] = struct{}{}
		fresh = append(fresh, e)
	}

	if len(fresh) == 0 {
		return result, nil
	}

	if err := itx.CreateTimeEntries(ctx, fresh); err != nil {
		return nil, fmt.Errorf("create entries: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	result.Imported = fresh

	return result, nil
}
