package client

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Client is a customer the user bills.
type Client struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	Name       string    `json:"name" validate:"notblank"`
	Email      *string   `json:"email,omitempty" validate:"omitempty,email"`
	Phone      *string   `json:"phone,omitempty"`
	Address    *string   `json:"address,omitempty"`
	Company    *string   `json:"company,omitempty"`
	HourlyRate float64   `json:"hourly_rate" validate:"gte=0"`
	Tags       []string  `json:"tags"`
	Notes      *string   `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CreateParams are the caller-supplied fields of a new client.
type CreateParams struct {
	Name       string   `json:"name"`
	Email      *string  `json:"email,omitempty"`
	Phone      *string  `json:"phone,omitempty"`
	Address    *string  `json:"address,omitempty"`
	Company    *string  `json:"company,omitempty"`
	HourlyRate float64  `json:"hourly_rate"`
	Tags       []string `json:"tags,omitempty"`
	Notes      *string  `json:"notes,omitempty"`
}

// UpdateParams is a partial update; nil fields are left unchanged.
type UpdateParams struct {
	Name       *string  `json:"name,omitempty" validate:"omitnil,notblank"`
	Email      *string  `json:"email,omitempty" validate:"omitempty,email"`
	Phone      *string  `json:"phone,omitempty"`
	Address    *string  `json:"address,omitempty"`
	Company    *string  `json:"company,omitempty"`
	HourlyRate *float64 `json:"hourly_rate,omitempty" validate:"omitnil,gte=0"`
	Tags       []string `json:"tags,omitempty"`
	Notes      *string  `json:"notes,omitempty"`
}

func (p UpdateParams) apply(c *Client) {
	if p.Name != nil {
		c.Name = strings.TrimSpace(*p.Name)
	}

	if p.Email != nil {
		c.Email = p.Email
	}

	if p.Phone != nil {
		c.Phone = p.Phone
	}

	if p.Address != nil {
		c.Address = p.Address
	}

	if p.Company != nil {
		c.Company = p.Company
	}

	if p.HourlyRate != nil {
		c.HourlyRate = *p.HourlyRate
	}

	if p.Tags != nil {
		c.Tags = normalizeTags(p.Tags)
	}

	if p.Notes != nil {
		c.Notes = p.Notes
	}
}

// normalizeTags trims and de-duplicates tags, keeping first-seen order.
func normalizeTags(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))

	for _, t := range in {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}

		if _, ok := seen[t]; ok {
			continue
		}

		seen[t] = struct{}{}
		out = append(out, t)
	}

	return out
}
