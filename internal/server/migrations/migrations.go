// Package migrations embeds the goose SQL migrations for each SQL dialect
// and applies them.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/pressly/goose/v3"

	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/logging"
)

//go:embed postgres/*.sql
var Postgres embed.FS

//go:embed sqlite/*.sql
var SQLite embed.FS

// Dialect names the goose dialect of a database.
type Dialect string

const (
	DialectPostgres Dialect = "pgx"
	DialectSQLite   Dialect = "sqlite3"
)

// goose keeps its base FS, dialect and logger in package globals.
var (
	mu     sync.Mutex
	logger logging.Logger = logging.Nop{}
)

// SetLogger routes goose output to l. Until it is called the output is
// dropped.
func SetLogger(l logging.Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

// gooseLogger adapts logging.Logger to goose.Logger.
type gooseLogger struct {
	ctx    context.Context
	logger logging.Logger
}

func (g gooseLogger) Printf(format string, v ...any) {
	g.logger.Info(g.ctx, strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (g gooseLogger) Fatalf(format string, v ...any) {
	g.logger.Error(g.ctx, strings.TrimSpace(fmt.Sprintf(format, v...)))
	os.Exit(1)
}

// Up applies every pending migration of the dialect to db.
func Up(ctx context.Context, db *sql.DB, dialect Dialect) error {
	fsys, dir, err := source(dialect)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()

	goose.SetBaseFS(fsys)
	defer goose.SetBaseFS(nil)
	goose.SetLogger(gooseLogger{ctx: ctx, logger: logger})

	if err := goose.SetDialect(string(dialect)); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, dir)
}

func source(dialect Dialect) (fs.FS, string, error) {
	switch dialect {
	case DialectPostgres:
		return Postgres, "postgres", nil
	case DialectSQLite:
		return SQLite, "sqlite", nil
	}
	return nil, "", fmt.Errorf("unsupported migration dialect %q", dialect)
}
