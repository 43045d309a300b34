// Package backend opens the repositories selected by DB_DRIVER.
package backend

import (
	"fmt"
	"log/slog"

	"github.com/MrJamesThe3rd/invoicely/internal/client"
	clientStore "github.com/MrJamesThe3rd/invoicely/internal/client/store"
	"github.com/MrJamesThe3rd/invoicely/internal/config"
	"github.com/MrJamesThe3rd/invoicely/internal/database"
	"github.com/MrJamesThe3rd/invoicely/internal/invoice"
	invoiceStore "github.com/MrJamesThe3rd/invoicely/internal/invoice/store"
	"github.com/MrJamesThe3rd/invoicely/internal/memory"
	"github.com/MrJamesThe3rd/invoicely/internal/timeentry"
	timeEntryStore "github.com/MrJamesThe3rd/invoicely/internal/timeentry/store"
)

type Backend struct {
	Clients     client.Repository
	Invoices    invoice.Repository
	TimeEntries timeentry.Repository

	db *database.DB
}

// Open connects to the configured database, migrating it first when
// DB_AUTO_MIGRATE is set. The memory driver needs neither.
func Open(cfg *config.Config) (*Backend, error) {
	if cfg.DB.Driver == database.DriverMemory {
		mem := memory.New()
		slog.Info("initialized memory backend", "backend", cfg.DB.Driver)

		return &Backend{Clients: mem, Invoices: mem, TimeEntries: mem}, nil
	}

	dsn := cfg.ConnectionString()

	if cfg.DB.AutoMigrate {
		if err := database.Migrate(cfg.DB.Driver, dsn); err != nil {
			return nil, fmt.Errorf("migrate database: %w", err)
		}
	}

	db, err := database.New(cfg.DB.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	slog.Info("initialized sql backend", "backend", cfg.DB.Driver)

	return &Backend{
		Clients:     clientStore.New(db),
		Invoices:    invoiceStore.New(db),
		TimeEntries: timeEntryStore.New(db),
		db:          db,
	}, nil
}

func (b *Backend) Close() error {
	if b.db == nil {
		return nil
	}

	return b.db.Close()
}
