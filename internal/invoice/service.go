package invoice

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/invoicely/internal/validation"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=invoice
type Repository interface {
	ListInvoices(ctx context.Context, userID uuid.UUID) ([]*Invoice, error)
	GetInvoice(ctx context.Context, userID, id uuid.UUID) (*Invoice, error)
	CreateInvoice(ctx context.Context, inv *Invoice) error
	UpdateInvoice(ctx context.Context, inv *Invoice) error
	DeleteInvoice(ctx context.Context, userID, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*Invoice, error) {
	return s.repo.ListInvoices(ctx, userID)
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*Invoice, error) {
	return s.repo.GetInvoice(ctx, userID, id)
}

// Create stores a new invoice. Totals are taken as supplied.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, params CreateParams) (*Invoice, error) {
	inv := &Invoice{
		UserID:        userID,
		ClientID:      params.ClientID,
		InvoiceNumber: strings.TrimSpace(params.InvoiceNumber),
		Status:        params.Status,
		IssueDate:     params.IssueDate,
		DueDate:       params.DueDate,
		Subtotal:      params.Subtotal,
		TaxRate:       params.TaxRate,
		TaxAmount:     params.TaxAmount,
		Total:         params.Total,
		Currency:      strings.ToUpper(params.Currency),
		Notes:         params.Notes,
		Items:         withItemIDs(params.Items),
	}

	if inv.Status == "" {
		inv.Status = StatusDraft
	}

	if inv.Currency == "" {
		inv.Currency = DefaultCurrency
	}

	if err := validation.Struct(inv); err != nil {
		return nil, err
	}

	if err := s.repo.CreateInvoice(ctx, inv); err != nil {
		return nil, err
	}

	return inv, nil
}

func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, params UpdateParams) (*Invoice, error) {
	if err := validation.Struct(params); err != nil {
		return nil, err
	}

	inv, err := s.repo.GetInvoice(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	params.apply(inv)

	if err := s.repo.UpdateInvoice(ctx, inv); err != nil {
		return nil, err
	}

	return inv, nil
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.DeleteInvoice(ctx, userID, id)
}
