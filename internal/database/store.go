package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"gorm.io/gorm"
)

// Store is the long-lived document store handle shared by all repositories.
// Exactly one of SQL and Mongo is set, depending on Backend.
type Store struct {
	Backend Backend
	SQL     *gorm.DB
	Mongo   *mongo.Database

	mongoClient *mongo.Client
}

// Open connects to the backend selected by dsn. mongoDB names the database
// used when dsn is a MongoDB URI.
func Open(ctx context.Context, dsn, mongoDB string) (*Store, error) {
	backend := BackendFor(dsn)

	if backend == BackendMongo {
		client, err := ConnectMongo(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return &Store{
			Backend:     backend,
			Mongo:       client.Database(mongoDB),
			mongoClient: client,
		}, nil
	}

	db, err := Connect(dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", backend, err)
	}
	return &Store{Backend: backend, SQL: db}, nil
}

// NewSQLStore wraps an existing gorm handle.
func NewSQLStore(db *gorm.DB) *Store {
	return &Store{Backend: BackendSQLite, SQL: db}
}

// NewMongoStore wraps an existing MongoDB database handle.
func NewMongoStore(db *mongo.Database) *Store {
	return &Store{Backend: BackendMongo, Mongo: db, mongoClient: db.Client()}
}

// Ping checks that the store answers.
func (s *Store) Ping(ctx context.Context) error {
	if s.Mongo != nil {
		return s.mongoClient.Ping(ctx, readpref.Primary())
	}
	sqlDB, err := s.SQL.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the underlying connections.
func (s *Store) Close(ctx context.Context) error {
	if s.Mongo != nil {
		return s.mongoClient.Disconnect(ctx)
	}
	sqlDB, err := s.SQL.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
