package backend_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/invoicely/internal/backend"
	"github.com/MrJamesThe3rd/invoicely/internal/client"
	"github.com/MrJamesThe3rd/invoicely/internal/config"
	"github.com/MrJamesThe3rd/invoicely/internal/memory"
)

func TestOpen(t *testing.T) {
	tests := []struct {
		name   string
		env    map[string]string
		memory bool
	}{
		{
			name:   "Memory",
			env:    map[string]string{"DB_DRIVER": "memory"},
			memory: true,
		},
		{
			name: "SQLiteMigrated",
			env: map[string]string{
				"DB_DRIVER":       "sqlite",
				"DB_SQLITE_PATH":  filepath.Join(t.TempDir(), "nested", "invoicely.db"),
				"DB_AUTO_MIGRATE": "true",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := config.Load()
			require.NoError(t, err)

			b, err := backend.Open(cfg)
			require.NoError(t, err)
			t.Cleanup(func() { assert.NoError(t, b.Close()) })

			_, isMemory := b.Clients.(*memory.Store)
			assert.Equal(t, tt.memory, isMemory)

			svc := client.NewService(b.Clients)
			userID := uuid.New()

			c, err := svc.Create(context.Background(), userID, client.CreateParams{Name: "Acme"})
			require.NoError(t, err)

			got, err := svc.List(context.Background(), userID)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, c.ID, got[0].ID)
		})
	}
}
