package client

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/invoicely/internal/validation"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=client
type Repository interface {
	ListClients(ctx context.Context, userID uuid.UUID) ([]*Client, error)
	GetClient(ctx context.Context, userID, id uuid.UUID) (*Client, error)
	CreateClient(ctx context.Context, c *Client) error
	UpdateClient(ctx context.Context, c *Client) error
	DeleteClient(ctx context.Context, userID, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*Client, error) {
	return s.repo.ListClients(ctx, userID)
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*Client, error) {
	return s.repo.GetClient(ctx, userID, id)
}

// Create validates params and stores a new client owned by userID.
// The returned client carries the generated id and timestamps.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, params CreateParams) (*Client, error) {
	c := &Client{
		UserID:     userID,
		Name:       strings.TrimSpace(params.Name),
		Email:      params.Email,
		Phone:      params.Phone,
		Address:    params.Address,
		Company:    params.Company,
		HourlyRate: params.HourlyRate,
		Tags:       normalizeTags(params.Tags),
		Notes:      params.Notes,
	}

	if err := validation.Struct(c); err != nil {
		return nil, err
	}

	if err := s.repo.CreateClient(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// Update applies the supplied fields of params to the client and refreshes updated_at.
func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, params UpdateParams) (*Client, error) {
	if err := validation.Struct(params); err != nil {
		return nil, err
	}

	c, err := s.repo.GetClient(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	params.apply(c)

	if err := s.repo.UpdateClient(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.DeleteClient(ctx, userID, id)
}
