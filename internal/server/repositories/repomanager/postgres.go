package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/server/migrations"
	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/server/repositories/books"
	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/server/repositories/users"
)

// migrateUp is a seam for testing migrations.Up.
var migrateUp = migrations.Up

// PostgresRepositoryManager vends PostgreSQL-backed repositories over a
// pgx database/sql pool.
type PostgresRepositoryManager struct {
	db *sql.DB
}

// OpenPostgres opens a pool for dsn and verifies it with a ping.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresRepositoryManager, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}
	return NewPostgresRepositoryManager(db), nil
}

func NewPostgresRepositoryManager(db *sql.DB) *PostgresRepositoryManager {
	return &PostgresRepositoryManager{db: db}
}

func (m *PostgresRepositoryManager) Users() users.Repository {
	return users.NewPostgresRepository(m.db)
}

func (m *PostgresRepositoryManager) Books() books.Repository {
	return books.NewPostgresRepository(m.db)
}

// RunMigrations applies the embedded goose migrations.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	return migrateUp(ctx, m.db, migrations.DialectPostgres)
}

func (m *PostgresRepositoryManager) Ping(ctx context.Context) error {
	return m.db.PingContext(ctx)
}

func (m *PostgresRepositoryManager) Close(context.Context) error {
	return m.db.Close()
}
