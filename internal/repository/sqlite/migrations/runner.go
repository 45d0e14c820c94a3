package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	log "github.com/sirupsen/logrus"
)

// FS holds the goose migration files compiled into the binary.
//
//go:embed *.sql
var FS embed.FS

// Run applies all unapplied migrations from the embedded FS to the database.
// goose tracks applied versions in its goose_db_version table.
func Run(ctx context.Context, db *sql.DB) error {
	provider, err := newProvider(db)
	if err != nil {
		return err
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	for _, res := range results {
		log.WithFields(log.Fields{
			"file":     res.Source.Path,
			"duration": res.Duration,
		}).Info("migration applied")
	}
	return nil
}

// Version reports the highest migration version applied to the database.
func Version(ctx context.Context, db *sql.DB) (int64, error) {
	provider, err := newProvider(db)
	if err != nil {
		return 0, err
	}
	return provider.GetDBVersion(ctx)
}

func newProvider(db *sql.DB) (*goose.Provider, error) {
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, FS)
	if err != nil {
		return nil, fmt.Errorf("create migration provider: %w", err)
	}
	return provider, nil
}
