package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"io/fs"
	"log/slog"
	"time"

	"github.com/lib/pq"
	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/blogapi/internal/core"
	"github.com/siahsang/blogapi/internal/utils/databaseutils"
)

//go:embed schema.sql
var schemaFS embed.FS

const (
	uniqueViolation           = "23505"
	invalidTextRepresentation = "22P02"
)

type Options struct {
	URI          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
	QueryTimeout time.Duration
}

type Store struct {
	log         *slog.Logger
	db          *sql.DB
	sqlTemplate *databaseutils.SQLTemplate
	session     databaseutils.Session
}

// Open connects, pings and migrates the database.
func Open(ctx context.Context, opts Options, log *slog.Logger) (*Store, error) {
	db, err := sql.Open("postgres", opts.URI)
	if err != nil {
		return nil, xerrors.New(err)
	}

	db.SetMaxOpenConns(opts.MaxOpenConns)
	db.SetMaxIdleConns(opts.MaxIdleConns)
	db.SetConnMaxIdleTime(opts.MaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, xerrors.New(err)
	}

	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return New(db, opts.QueryTimeout, log), nil
}

func New(db *sql.DB, queryTimeout time.Duration, log *slog.Logger) *Store {
	return &Store{
		log:         log,
		db:          db,
		sqlTemplate: databaseutils.NewSQLTemplate(db, queryTimeout),
		session:     databaseutils.NewSession(db, log),
	}
}

func migrate(ctx context.Context, db *sql.DB) error {
	sqlBytes, err := fs.ReadFile(schemaFS, "schema.sql")
	if err != nil {
		return xerrors.New(err)
	}
	if _, err := db.ExecContext(ctx, string(sqlBytes)); err != nil {
		return xerrors.Newf("migrate schema: %w", err)
	}
	return nil
}

func (s *Store) Repositories() core.Repositories {
	return core.Repositories{
		Posts:      s,
		Users:      s,
		Categories: s,
		Comments:   s,
		Tx:         s.session,
	}
}

func (s *Store) Close() error {
	return s.db.Close()
}

// notFound maps sql.ErrNoRows, and ids that are not valid uuids, to core.NoRecordFound.
func notFound(err error) error {
	var pqErr *pq.Error
	if errors.Is(err, sql.ErrNoRows) || (errors.As(err, &pqErr) && pqErr.Code == invalidTextRepresentation) {
		return xerrors.New(core.NoRecordFound)
	}
	return xerrors.New(err)
}

func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation && pqErr.Constraint == constraint
}

func requireAffected(affected int64, err error) error {
	if err != nil {
		return notFound(err)
	}
	if affected == 0 {
		return xerrors.New(core.NoRecordFound)
	}
	return nil
}
