package importer_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/invoicely/internal/client"
	"github.com/MrJamesThe3rd/invoicely/internal/importer"
	"github.com/MrJamesThe3rd/invoicely/internal/importer/timesheet"
	"github.com/MrJamesThe3rd/invoicely/internal/timeentry"
)

const togglCSV = `Client,Project,Description,Billable,Start date,Start time,Duration,Amount (USD)
acme ,Website,Homepage,Yes,2026-10-14,09:00:00,01:00:00,
Globex,Audit,Review,Yes,2026-10-14,11:00:00,01:00:00,120.00
`

func TestService_Import(t *testing.T) {
	svc := importer.NewService(nil)

	tests := []struct {
		name    string
		format  importer.Format
		wantLen int
		wantErr bool
	}{
		{name: "Auto", format: importer.FormatAuto, wantLen: 2},
		{name: "EmptyMeansAuto", format: "", wantLen: 2},
		{name: "Named", format: importer.FormatToggl, wantLen: 2},
		{name: "CaseInsensitive", format: "TOGGL", wantLen: 2},
		{name: "WrongTracker", format: importer.FormatClockify, wantErr: true},
		{name: "Unknown", format: "harvest", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := svc.Import(tt.format, strings.NewReader(togglCSV))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Len(t, entries, tt.wantLen)
		})
	}
}

func TestResolve(t *testing.T) {
	acme := client.Client{ID: uuid.New(), Name: "Acme", HourlyRate: 85}

	entries := []timesheet.Entry{
		{Client: "acme", Params: timeentry.CreateParams{ProjectName: "Website"}},
		{Client: "ACME", Params: timeentry.CreateParams{ProjectName: "Audit", HourlyRate: 120}},
		{Client: "Globex", Params: timeentry.CreateParams{ProjectName: "Other"}},
		{Client: "", Params: timeentry.CreateParams{ProjectName: "Internal"}},
	}

	params := importer.Resolve(entries, []client.Client{acme})
	require.Len(t, params, 4)

	require.NotNil(t, params[0].ClientID)
	assert.Equal(t, acme.ID, *params[0].ClientID)
	assert.InDelta(t, 85.0, params[0].HourlyRate, 0.001)

	require.NotNil(t, params[1].ClientID)
	assert.InDelta(t, 120.0, params[1].HourlyRate, 0.001)

	assert.Nil(t, params[2].ClientID)
	assert.Zero(t, params[2].HourlyRate)

	assert.Nil(t, params[3].ClientID)
}
