package timesheet_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/MrJamesThe3rd/invoicely/internal/importer/timesheet"
)

const togglCSV = `User,Email,Client,Project,Task,Description,Billable,Start date,Start time,End date,End time,Duration,Tags,Amount (USD)
Jane,jane@example.com,Acme,Website,,Homepage,Yes,2026-10-14,09:00:00,2026-10-14,10:30:00,01:30:00,,127.50
Jane,jane@example.com,,,,Admin,No,2026-10-15,14:00:00,2026-10-15,14:20:45,00:20:45,,

`

const clockifyCSV = `Project,Client,Description,Task,User,Group,Email,Tags,Billable,Start Date,Start Time,End Date,End Time,Duration (h),Duration (decimal),Billable Rate (USD),Billable Amount (USD)
Website,Acme,Homepage,,Jane,,jane@example.com,,Yes,10/14/2026,09:00:00 AM,10/14/2026,10:30:00 AM,01:30:00,1.50,"1,085.00","1,627.50"
`

func TestParser_Toggl(t *testing.T) {
	p := timesheet.NewParser(nil)

	entries, err := p.Parse(strings.NewReader(togglCSV))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	first := entries[0]
	assert.Equal(t, "Acme", first.Client)
	assert.Equal(t, "Website", first.Params.ProjectName)
	assert.Equal(t, "Homepage", first.Params.Description)
	assert.Equal(t, time.Date(2026, time.October, 14, 9, 0, 0, 0, time.UTC), first.Params.StartTime)
	require.NotNil(t, first.Params.EndTime)
	assert.Equal(t, time.Date(2026, time.October, 14, 10, 30, 0, 0, time.UTC), *first.Params.EndTime)
	assert.Equal(t, 90, first.Params.Duration)
	assert.InDelta(t, 85.0, first.Params.HourlyRate, 0.001)
	require.NotNil(t, first.Params.IsBillable)
	assert.True(t, *first.Params.IsBillable)

	second := entries[1]
	assert.Empty(t, second.Client)
	assert.Equal(t, timesheet.NoProject, second.Params.ProjectName)
	assert.Equal(t, 20, second.Params.Duration)
	assert.Zero(t, second.Params.HourlyRate)
	require.NotNil(t, second.Params.IsBillable)
	assert.False(t, *second.Params.IsBillable)
}

func TestParser_Clockify(t *testing.T) {
	p := timesheet.NewParser(nil)

	entries, err := p.Parse(strings.NewReader(clockifyCSV))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, "Acme", e.Client)
	assert.Equal(t, time.Date(2026, time.October, 14, 9, 0, 0, 0, time.UTC), e.Params.StartTime)
	assert.Equal(t, 90, e.Params.Duration)
	assert.InDelta(t, 1085.0, e.Params.HourlyRate, 0.001)
}

func TestParser_SemicolonDelimited(t *testing.T) {
	csv := `Project;Client;Description;Billable;Start Date;Start Time;End Date;End Time;Duration (h);Billable Rate (EUR)
Website;Acme;Homepage;Yes;2026-10-14;09:00;2026-10-14;10:00;01:00:00;85,00
`

	entries, err := timesheet.NewParser(nil).Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 60, entries[0].Params.Duration)
	assert.InDelta(t, 85.0, entries[0].Params.HourlyRate, 0.001)
}

func TestParser_Location(t *testing.T) {
	loc := time.FixedZone("UTC+1", 3600)

	entries, err := timesheet.NewParser(loc).Parse(strings.NewReader(clockifyCSV))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, time.Date(2026, time.October, 14, 8, 0, 0, 0, time.UTC), entries[0].Params.StartTime)
}

func TestParser_Windows1252(t *testing.T) {
	latin1, err := charmap.Windows1252.NewEncoder().String(strings.ReplaceAll(togglCSV, "Website", "Café"))
	require.NoError(t, err)

	entries, err := timesheet.NewParser(nil).Parse(bytes.NewReader([]byte(latin1)))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Café", entries[0].Params.ProjectName)
}

func TestParser_Errors(t *testing.T) {
	type testCase struct {
		name    string
		parser  *timesheet.Parser
		input   string
		wantErr string
	}

	tests := []testCase{
		{
			name:    "UnknownHeader",
			parser:  timesheet.NewParser(nil),
			input:   "Date,Amount\n2026-10-14,10\n",
			wantErr: "no matching export format",
		},
		{
			name:    "Empty",
			parser:  timesheet.NewParser(nil),
			input:   "",
			wantErr: "no matching export format",
		},
		{
			name:    "RestrictedProfile",
			parser:  timesheet.NewParser(nil, timesheet.ProfileToggl),
			input:   clockifyCSV,
			wantErr: "expected columns for toggl",
		},
		{
			name:    "BadDuration",
			parser:  timesheet.NewParser(nil),
			input:   "Project,Start date,Start time,Duration\nWebsite,2026-10-14,09:00:00,ninety\n",
			wantErr: "row 2",
		},
		{
			name:    "BadStart",
			parser:  timesheet.NewParser(nil),
			input:   "Project,Start date,Start time,Duration\nWebsite,14th,09:00:00,01:00:00\n",
			wantErr: "row 2: start",
		},
		{
			name:    "BadAmount",
			parser:  timesheet.NewParser(nil),
			input:   "Project,Start date,Start time,Duration,Amount (USD)\nWebsite,2026-10-14,09:00:00,01:00:00,n/a\n",
			wantErr: "invalid amount",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.parser.Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
