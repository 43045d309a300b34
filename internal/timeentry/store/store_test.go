package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/invoicely/internal/apperr"
	"github.com/MrJamesThe3rd/invoicely/internal/database/databasetest"
	"github.com/MrJamesThe3rd/invoicely/internal/timeentry"
	"github.com/MrJamesThe3rd/invoicely/internal/timeentry/store"
)

func TestStore_TimeEntryLifecycle(t *testing.T) {
	ctx := context.Background()
	s := store.New(databasetest.NewSQLite(t))

	userID := uuid.New()
	clientID := uuid.New()
	start := time.Date(2026, time.October, 16, 9, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)

	withClient := &timeentry.TimeEntry{
		UserID:      userID,
		ClientID:    &clientID,
		ProjectName: "Website",
		StartTime:   start,
		EndTime:     &end,
		Duration:    90,
		HourlyRate:  40,
		IsBillable:  true,
	}
	require.NoError(t, s.CreateTimeEntry(ctx, withClient))

	loose := &timeentry.TimeEntry{
		UserID:      userID,
		ProjectName: "Admin",
		StartTime:   start,
		Duration:    15,
	}
	require.NoError(t, s.CreateTimeEntry(ctx, loose))

	list, err := s.ListTimeEntries(ctx, userID)
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, clientID, *list[0].ClientID)
	require.NotNil(t, list[0].EndTime)
	assert.True(t, end.Equal(*list[0].EndTime))
	assert.True(t, start.Equal(list[0].StartTime))
	assert.True(t, list[0].IsBillable)

	assert.Nil(t, list[1].ClientID)
	assert.Nil(t, list[1].EndTime)
	assert.False(t, list[1].IsBillable)

	loose.IsInvoiced = true
	require.NoError(t, s.UpdateTimeEntry(ctx, loose))

	got, err := s.GetTimeEntry(ctx, userID, loose.ID)
	require.NoError(t, err)
	assert.True(t, got.IsInvoiced)

	require.NoError(t, s.DeleteTimeEntry(ctx, userID, loose.ID))

	_, err = s.GetTimeEntry(ctx, userID, loose.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.ErrorIs(t, s.UpdateTimeEntry(ctx, loose), apperr.ErrNotFound)
}

func TestStore_ImportTx(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	start := time.Date(2026, time.October, 16, 9, 0, 0, 0, time.UTC)

	t.Run("RollbackStoresNothing", func(t *testing.T) {
		s := store.New(databasetest.NewSQLite(t))

		itx, err := s.BeginImport(ctx, userID)
		require.NoError(t, err)

		require.NoError(t, itx.CreateTimeEntries(ctx, []*timeentry.TimeEntry{
			{ProjectName: "Website", StartTime: start, Duration: 60},
			{ProjectName: "API", StartTime: start, Duration: 30},
		}))
		require.NoError(t, itx.Rollback())

		list, err := s.ListTimeEntries(ctx, userID)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("CommitPersistsAndDuplicatesAreFound", func(t *testing.T) {
		s := store.New(databasetest.NewSQLite(t))

		itx, err := s.BeginImport(ctx, userID)
		require.NoError(t, err)

		created := []*timeentry.TimeEntry{
			{ProjectName: "Website", StartTime: start, Duration: 60},
			{ProjectName: "API", StartTime: start, Duration: 30},
		}
		require.NoError(t, itx.CreateTimeEntries(ctx, created))
		require.NoError(t, itx.Commit())

		assert.NotEqual(t, uuid.Nil, created[0].ID)
		assert.Equal(t, userID, created[0].UserID)

		list, err := s.ListTimeEntries(ctx, userID)
		require.NoError(t, err)
		assert.Len(t, list, 2)

		next, err := s.BeginImport(ctx, userID)
		require.NoError(t, err)
		defer next.Rollback()

		dups, err := next.FindDuplicates(ctx, []*timeentry.TimeEntry{
			{ProjectName: "Website", StartTime: start, Duration: 60},
			{ProjectName: "Website", StartTime: start, Duration: 45},
		})
		require.NoError(t, err)
		require.Len(t, dups, 1)
		assert.Equal(t, 60, dups[0].Duration)
	})
}
