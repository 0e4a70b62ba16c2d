package mongodb

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/blogapi/internal/core"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	postsCollection      = "posts"
	usersCollection      = "users"
	categoriesCollection = "categories"
	commentsCollection   = "comments"
)

type Options struct {
	URI          string
	Database     string
	MaxPoolSize  uint64
	MaxIdleTime  time.Duration
	QueryTimeout time.Duration
}

type Store struct {
	log          *slog.Logger
	client       *mongo.Client
	posts        *mongo.Collection
	users        *mongo.Collection
	categories   *mongo.Collection
	comments     *mongo.Collection
	queryTimeout time.Duration
}

// Open connects to the server and makes sure the unique indexes exist.
func Open(ctx context.Context, opts Options, log *slog.Logger) (*Store, error) {
	clientOpts := options.Client().
		ApplyURI(opts.URI).
		SetMaxPoolSize(opts.MaxPoolSize).
		SetMaxConnIdleTime(opts.MaxIdleTime)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, xerrors.New(err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, xerrors.New(err)
	}

	db := client.Database(opts.Database)
	s := &Store{
		log:          log,
		client:       client,
		posts:        db.Collection(postsCollection),
		users:        db.Collection(usersCollection),
		categories:   db.Collection(categoriesCollection),
		comments:     db.Collection(commentsCollection),
		queryTimeout: opts.QueryTimeout,
	}

	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	indexes := map[*mongo.Collection][]mongo.IndexModel{
		s.users: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		s.posts: {
			{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "updatedAt", Value: -1}, {Key: "_id", Value: -1}}},
			{Keys: bson.D{{Key: "categories", Value: 1}}},
		},
		s.comments: {
			{Keys: bson.D{{Key: "post", Value: 1}, {Key: "createdAt", Value: 1}}},
			{Keys: bson.D{{Key: "parent", Value: 1}}},
		},
	}

	for collection, idx := range indexes {
		if _, err := collection.Indexes().CreateMany(ctx, idx); err != nil {
			return xerrors.Newf("create indexes on %s: %w", collection.Name(), err)
		}
	}
	return nil
}

func (s *Store) Repositories() core.Repositories {
	return core.Repositories{
		Posts:      s,
		Users:      s,
		Categories: s,
		Comments:   s,
		Tx:         s,
	}
}

// DoTransactionally runs fn without a multi-document transaction; a standalone
// server does not support them.
func (s *Store) DoTransactionally(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.queryTimeout)
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return xerrors.New(core.NoRecordFound)
	}
	return xerrors.New(err)
}

// findAll runs a query and decodes every document, returning an empty slice when nothing matches.
func findAll[T any](ctx context.Context, collection *mongo.Collection, filter any, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := collection.Find(ctx, filter, opts...)
	if err != nil {
		return nil, xerrors.New(err)
	}

	docs := []T{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, xerrors.New(err)
	}
	return docs, nil
}

func pageOptions(sort bson.D, offset, limit int64) *options.FindOptions {
	return options.Find().SetSort(sort).SetSkip(offset).SetLimit(limit)
}

func requireMatched(matched int64) error {
	if matched == 0 {
		return xerrors.New(core.NoRecordFound)
	}
	return nil
}
