package repomanager

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"

	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/server/repositories/books"
	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/server/repositories/users"
)

const mongoSocketTimeout = 45 * time.Second

// MongoRepositoryManager vends MongoDB-backed repositories. Its "migrations"
// are the collection indexes.
type MongoRepositoryManager struct {
	client *mongo.Client
	db     *mongo.Database
	users  *users.MongoRepository
	books  *books.MongoRepository
}

// OpenMongo connects to uri and pings the primary. The database named in the
// URI path wins over defaultDB. Server selection is bounded by the deadline
// of ctx when it has one.
func OpenMongo(ctx context.Context, uri, defaultDB string) (*MongoRepositoryManager, error) {
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	dbName := defaultDB
	if cs.Database != "" {
		dbName = cs.Database
	}

	opts := options.Client().ApplyURI(uri).SetSocketTimeout(mongoSocketTimeout)
	if deadline, ok := ctx.Deadline(); ok {
		opts.SetServerSelectionTimeout(time.Until(deadline))
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	return NewMongoRepositoryManager(client, client.Database(dbName)), nil
}

func NewMongoRepositoryManager(client *mongo.Client, db *mongo.Database) *MongoRepositoryManager {
	return &MongoRepositoryManager{
		client: client,
		db:     db,
		users:  users.NewMongoRepository(db),
		books:  books.NewMongoRepository(db),
	}
}

func (m *MongoRepositoryManager) Users() users.Repository { return m.users }

func (m *MongoRepositoryManager) Books() books.Repository { return m.books }

// RunMigrations creates the unique email index and the per-owner book index.
func (m *MongoRepositoryManager) RunMigrations(ctx context.Context) error {
	if err := m.users.EnsureIndexes(ctx); err != nil {
		return err
	}
	return m.books.EnsureIndexes(ctx)
}

func (m *MongoRepositoryManager) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

func (m *MongoRepositoryManager) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
