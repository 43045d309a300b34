package export_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/invoicely/internal/client"
	"github.com/MrJamesThe3rd/invoicely/internal/export"
	"github.com/MrJamesThe3rd/invoicely/internal/importer"
	"github.com/MrJamesThe3rd/invoicely/internal/memory"
	"github.com/MrJamesThe3rd/invoicely/internal/timeentry"
)

var userID = uuid.New()

type fixture struct {
	svc     *export.Service
	entries *timeentry.Service
	clients *client.Service
	acme    *client.Client
}

func setup(t *testing.T) fixture {
	t.Helper()

	store := memory.New()
	f := fixture{
		entries: timeentry.NewService(store),
		clients: client.NewService(store),
	}
	f.svc = export.NewService(f.entries, f.clients, time.UTC)

	var err error
	f.acme, err = f.clients.Create(context.Background(), userID, client.CreateParams{Name: "Acme", HourlyRate: 80})
	require.NoError(t, err)

	return f
}

func (f fixture) add(t *testing.T, params timeentry.CreateParams) *timeentry.TimeEntry {
	t.Helper()

	e, err := f.entries.Create(context.Background(), userID, params)
	require.NoError(t, err)

	return e
}

func TestService_Export(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	f.add(t, timeentry.CreateParams{
		ClientID:    &f.acme.ID,
		ProjectName: "Website",
		Description: "Landing page",
		StartTime:   time.Date(2026, time.October, 16, 9, 0, 0, 0, time.UTC),
		Duration:    90,
		HourlyRate:  80,
	})
	f.add(t, timeentry.CreateParams{
		ProjectName: "Internal",
		StartTime:   time.Date(2026, time.October, 15, 14, 0, 0, 0, time.UTC),
		Duration:    30,
		IsBillable:  new(false),
	})

	var buf bytes.Buffer

	n, err := f.svc.Export(ctx, userID, export.Filter{}, &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Project,Client,Description,Billable,Start date,Start time,End date,End time,Duration,Amount (USD)", lines[0])
	assert.Equal(t, "Internal,,,No,2026-10-15,14:00:00,2026-10-15,14:30:00,0:30:00,0.00", lines[1])
	assert.Equal(t, "Website,Acme,Landing page,Yes,2026-10-16,09:00:00,2026-10-16,10:30:00,1:30:00,120.00", lines[2])
}

func TestService_ExportFilter(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	day := time.Date(2026, time.October, 16, 9, 0, 0, 0, time.UTC)

	f.add(t, timeentry.CreateParams{ProjectName: "Old", StartTime: day.AddDate(0, 0, -7), Duration: 60})
	f.add(t, timeentry.CreateParams{ProjectName: "Billed", StartTime: day, Duration: 60, IsInvoiced: true})
	f.add(t, timeentry.CreateParams{ProjectName: "Acme work", ClientID: &f.acme.ID, StartTime: day, Duration: 60})
	f.add(t, timeentry.CreateParams{ProjectName: "Other", StartTime: day.Add(time.Hour), Duration: 60})

	tests := []struct {
		name   string
		filter export.Filter
		want   int
	}{
		{name: "All", filter: export.Filter{}, want: 4},
		{name: "FromInclusive", filter: export.Filter{From: day}, want: 3},
		{name: "ToExclusive", filter: export.Filter{To: day}, want: 1},
		{name: "Client", filter: export.Filter{ClientID: &f.acme.ID}, want: 1},
		{name: "Uninvoiced", filter: export.Filter{From: day, Uninvoiced: true}, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			n, err := f.svc.Export(ctx, userID, tt.filter, &buf)
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestService_ExportReimports(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	original := f.add(t, timeentry.CreateParams{
		ClientID:    &f.acme.ID,
		ProjectName: "Website",
		Description: "Landing page",
		StartTime:   time.Date(2026, time.October, 16, 9, 0, 0, 0, time.UTC),
		Duration:    90,
		HourlyRate:  80,
	})

	var buf bytes.Buffer

	_, err := f.svc.Export(ctx, userID, export.Filter{}, &buf)
	require.NoError(t, err)

	imp := importer.NewService(time.UTC)

	entries, err := imp.Import("", &buf)
	require.NoError(t, err)

	params := importer.Resolve(entries, []client.Client{*f.acme})
	require.Len(t, params, 1)

	got := params[0]
	assert.Equal(t, original.ProjectName, got.ProjectName)
	assert.Equal(t, original.Description, got.Description)
	assert.True(t, original.StartTime.Equal(got.StartTime))
	assert.Equal(t, original.Duration, got.Duration)
	assert.InDelta(t, original.HourlyRate, got.HourlyRate, 0.001)
	require.NotNil(t, got.ClientID)
	assert.Equal(t, f.acme.ID, *got.ClientID)

	// The same file again is all duplicates.
	res, err := f.entries.ImportBatch(ctx, userID, params)
	require.NoError(t, err)
	assert.Empty(t, res.Imported)
	assert.Len(t, res.Skipped, 1)
}

func TestFilename(t *testing.T) {
	from := time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.November, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "time-entries_20261001_20261101.csv", export.Filename(from, to))
	assert.Equal(t, "time-entries_20261001.csv", export.Filename(from, time.Time{}))
	assert.Equal(t, "time-entries.csv", export.Filename(time.Time{}, time.Time{}))
}
