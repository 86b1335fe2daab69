package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/server/migrations"
	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/server/repositories/books"
	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/server/repositories/users"
)

// SQLiteRepositoryManager vends repositories over an embedded SQLite file.
// A single connection is used, so writers never contend for the lock.
type SQLiteRepositoryManager struct {
	db *sql.DB
}

// OpenSQLite opens dsn (a path or a file: URI) with foreign keys enforced.
func OpenSQLite(ctx context.Context, dsn string) (*SQLiteRepositoryManager, error) {
	db, err := sql.Open("sqlite", withForeignKeys(dsn))
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}
	return &SQLiteRepositoryManager{db: db}, nil
}

func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}

func (m *SQLiteRepositoryManager) Users() users.Repository {
	return users.NewSQLiteRepository(m.db)
}

func (m *SQLiteRepositoryManager) Books() books.Repository {
	return books.NewSQLiteRepository(m.db)
}

func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context) error {
	return migrateUp(ctx, m.db, migrations.DialectSQLite)
}

func (m *SQLiteRepositoryManager) Ping(ctx context.Context) error {
	return m.db.PingContext(ctx)
}

func (m *SQLiteRepositoryManager) Close(context.Context) error {
	return m.db.Close()
}
