package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/invoicely/internal/apperr"
	"github.com/MrJamesThe3rd/invoicely/internal/validation"
)

type line struct {
	Description string  `json:"description" validate:"notblank"`
	Rate        float64 `json:"rate" validate:"gte=0"`
}

type sample struct {
	Name     string `json:"name" validate:"notblank"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Status   string `json:"status" validate:"oneof=draft sent"`
	Currency string `json:"currency" validate:"len=3"`
	Lines    []line `json:"lines" validate:"dive"`
}

func TestStruct(t *testing.T) {
	type testCase struct {
		name       string
		input      sample
		wantFields []apperr.FieldError
	}

	tests := []testCase{
		{
			name:  "Valid",
			input: sample{Name: "Acme", Status: "draft", Currency: "USD"},
		},
		{
			name:  "BlankName",
			input: sample{Name: "   ", Status: "sent", Currency: "EUR"},
			wantFields: []apperr.FieldError{
				{Field: "name", Message: "is required"},
			},
		},
		{
			name:  "SeveralViolations",
			input: sample{Name: "Acme", Email: "nope", Status: "paid", Currency: "EU"},
			wantFields: []apperr.FieldError{
				{Field: "email", Message: "must be a valid email address"},
				{Field: "status", Message: "must be one of: draft, sent"},
				{Field: "currency", Message: "must be exactly 3 characters"},
			},
		},
		{
			name: "NestedSlice",
			input: sample{
				Name: "Acme", Status: "draft", Currency: "USD",
				Lines: []line{{Description: "ok", Rate: 1}, {Description: "", Rate: -1}},
			},
			wantFields: []apperr.FieldError{
				{Field: "lines[1].description", Message: "is required"},
				{Field: "lines[1].rate", Message: "must be 0 or greater"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.Struct(tt.input)

			if tt.wantFields == nil {
				assert.NoError(t, err)
				return
			}

			var verr *apperr.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantFields, verr.Fields)
		})
	}
}
