package timeentry

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// TimeEntry is a block of tracked work. Duration is in whole minutes.
type TimeEntry struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	ClientID    *uuid.UUID `json:"client_id,omitempty"`
	ProjectName string     `json:"project_name" validate:"notblank"`
	Description string     `json:"description"`
	StartTime   time.Time  `json:"start_time" validate:"required"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	Duration    int        `json:"duration" validate:"gte=0"`
	HourlyRate  float64    `json:"hourly_rate" validate:"gte=0"`
	IsBillable  bool       `json:"is_billable"`
	IsInvoiced  bool       `json:"is_invoiced"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Hours returns the duration as fractional hours.
func (e *TimeEntry) Hours() float64 {
	return float64(e.Duration) / 60
}

// Earnings is duration × hourly rate, regardless of billability.
func (e *TimeEntry) Earnings() float64 {
	return e.Hours() * e.HourlyRate
}

// CreateParams are the caller-supplied fields of a new entry.
// A nil IsBillable means billable.
type CreateParams struct {
	ClientID    *uuid.UUID `json:"client_id,omitempty"`
	ProjectName string     `json:"project_name"`
	Description string     `json:"description"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	Duration    int        `json:"duration"`
	HourlyRate  float64    `json:"hourly_rate"`
	IsBillable  *bool      `json:"is_billable,omitempty"`
	IsInvoiced  bool       `json:"is_invoiced"`
}

func (p CreateParams) entry(userID uuid.UUID) *TimeEntry {
	billable := true
	if p.IsBillable != nil {
		billable = *p.IsBillable
	}

	return &TimeEntry{
		UserID:      userID,
		ClientID:    p.ClientID,
		ProjectName: strings.TrimSpace(p.ProjectName),
		Description: strings.TrimSpace(p.Description),
		StartTime:   p.StartTime,
		EndTime:     p.EndTime,
		Duration:    p.Duration,
		HourlyRate:  p.HourlyRate,
		IsBillable:  billable,
		IsInvoiced:  p.IsInvoiced,
	}
}

// UpdateParams is a partial update; nil fields are left unchanged.
type UpdateParams struct {
	ClientID    *uuid.UUID `json:"client_id,omitempty"`
	ProjectName *string    `json:"project_name,omitempty" validate:"omitnil,notblank"`
	Description *string    `json:"description,omitempty"`
	StartTime   *time.Time `json:"start_time,omitempty" validate:"omitnil,required"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	Duration    *int       `json:"duration,omitempty" validate:"omitnil,gte=0"`
	HourlyRate  *float64   `json:"hourly_rate,omitempty" validate:"omitnil,gte=0"`
	IsBillable  *bool      `json:"is_billable,omitempty"`
	IsInvoiced  *bool      `json:"is_invoiced,omitempty"`
}

func (p UpdateParams) apply(e *TimeEntry) {
	if p.ClientID != nil {
		e.ClientID = p.ClientID
	}

	if p.ProjectName != nil {
		e.ProjectName = strings.TrimSpace(*p.ProjectName)
	}

	if p.Description != nil {
		e.Description = strings.TrimSpace(*p.Description)
	}

	if p.StartTime != nil {
		e.StartTime = *p.StartTime
	}

	if p.EndTime != nil {
		e.EndTime = p.EndTime
	}

	if p.Duration != nil {
		e.Duration = *p.Duration
	}

	if p.HourlyRate != nil {
		e.HourlyRate = *p.HourlyRate
	}

	if p.IsBillable != nil {
		e.IsBillable = *p.IsBillable
	}

	if p.IsInvoiced != nil {
		e.IsInvoiced = *p.IsInvoiced
	}
}

// FromTimer builds the params for a stopped stopwatch: whole elapsed minutes,
// billable and not yet invoiced.
func FromTimer(start, end time.Time, projectName, description string, clientID *uuid.UUID, hourlyRate float64) CreateParams {
	minutes := max(int(end.Sub(start)/time.Minute), 0)

	return CreateParams{
		ClientID:    clientID,
		ProjectName: projectName,
		Description: description,
		StartTime:   start,
		EndTime:     &end,
		Duration:    minutes,
		HourlyRate:  hourlyRate,
		IsBillable:  new(true),
	}
}
