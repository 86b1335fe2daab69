// Package repomanager owns a storage connection and vends the repositories
// built on it. One implementation exists per storage driver.
package repomanager

import (
	"context"
	"fmt"
	"time"

	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/server/repositories/books"
	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Users() users.Repository
	Books() books.Repository
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Opener establishes a connection to uri. The context bounds the attempt.
type Opener func(ctx context.Context, uri string) (RepositoryManager, error)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// NewOpener returns the Opener for a storage driver. databaseName is only
// used by mongo, when the URI does not name a database itself.
func NewOpener(driver, databaseName string) (Opener, error) {
	switch driver {
	case DriverMongo:
		return func(ctx context.Context, uri string) (RepositoryManager, error) {
			m, err := OpenMongo(ctx, uri, databaseName)
			if err != nil {
				return nil, err
			}
			return m, nil
		}, nil
	case DriverPostgres:
		return func(ctx context.Context, uri string) (RepositoryManager, error) {
			m, err := OpenPostgres(ctx, uri)
			if err != nil {
				return nil, err
			}
			return m, nil
		}, nil
	case DriverSQLite:
		return func(ctx context.Context, uri string) (RepositoryManager, error) {
			m, err := OpenSQLite(ctx, uri)
			if err != nil {
				return nil, err
			}
			return m, nil
		}, nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", driver)
}

// ConnectOptions drives Connect.
type ConnectOptions struct {
	PrimaryURI     string
	FallbackURI    string
	ConnectTimeout time.Duration
	RetryDelay     time.Duration
}
