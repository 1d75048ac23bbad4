package store

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/vizitka/card-scanner/internal/common"
	"github.com/vizitka/card-scanner/internal/entity"
)

// createTableQuery provisions the contacts table. Matches the deployed schema
// exactly; id and created_at are backend-assigned.
const createTableQuery = `
CREATE TABLE IF NOT EXISTS contacts (
    id SERIAL PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    phones TEXT[],
    email VARCHAR(255),
    address TEXT,
    description TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);`

// PGStore is the row-resident backend: one contact per row, phones as a
// native text[] column. It intentionally has no update or delete path; rows
// are written by the scan pipeline and read back for listing and export.
type PGStore struct {
	db         *sqlx.DB
	logger     *slog.Logger
	insert     *sqlx.NamedStmt
	selectByID *sqlx.Stmt
	selectAll  *sqlx.Stmt
}

// contactRow is the sqlx row mapping for the contacts table.
type contactRow struct {
	ID          int64          `db:"id"`
	Name        string         `db:"name"`
	Phones      TextArray      `db:"phones"`
	Email       sql.NullString `db:"email"`
	Address     sql.NullString `db:"address"`
	Description sql.NullString `db:"description"`
	CreatedAt   time.Time      `db:"created_at"`
}

// OpenDB connects to Postgres through the pgx stdlib driver and verifies the
// connection. It does not assume the schema exists yet.
func OpenDB(ctx context.Context, cfg common.DatabaseConfig, logger *slog.Logger) (*sql.DB, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("store.pg.connecting")
	sqlDB, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		return nil, common.WrapError(err, "open database")
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx := ctx
	if cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
	}
	if err := sqlDB.PingContext(pingCtx); err != nil {
		logger.Error("store.pg.ping_failed", "error", err)
		return nil, common.WrapError(err, "ping database")
	}
	logger.Info("store.pg.connected")
	return sqlDB, nil
}

// EnsureSchema creates the contacts table if it does not exist yet. It takes
// a raw handle because it has to run before NewPGStore can prepare its
// statements against the table.
func EnsureSchema(ctx context.Context, sqlDB *sql.DB, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	if _, err := sqlDB.ExecContext(ctx, createTableQuery); err != nil {
		logger.Error("store.pg.ensure_schema_failed", "error", err)
		return classifyPGError(err)
	}
	logger.Info("store.pg.schema_ok")
	return nil
}

// Open is OpenDB plus statement preparation: the ready-to-serve store.
func Open(ctx context.Context, cfg common.DatabaseConfig, logger *slog.Logger) (*PGStore, error) {
	sqlDB, err := OpenDB(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return NewPGStore(sqlDB, logger)
}

// NewPGStore wraps an existing database handle. The handle can be a real
// connection for production use or a mock database within unit tests.
func NewPGStore(sqlDB *sql.DB, logger *slog.Logger) (*PGStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db := sqlx.NewDb(sqlDB, "pgx")
	s := &PGStore{db: db, logger: logger}

	// Prepared statements offer a significant speed increase if executed many times.
	var err error
	s.insert, err = db.PrepareNamed(`
		INSERT INTO contacts (name, phones, email, address, description)
		VALUES (:name, :phones, :email, :address, :description)
		RETURNING id
	`)
	if err != nil {
		return nil, common.WrapError(err, "prepare insert")
	}
	s.selectByID, err = db.Preparex(`
		SELECT id, name, phones, email, address, description, created_at
		FROM contacts WHERE id = $1
	`)
	if err != nil {
		return nil, common.WrapError(err, "prepare select by id")
	}
	s.selectAll, err = db.Preparex(`
		SELECT id, name, phones, email, address, description, created_at
		FROM contacts ORDER BY id
	`)
	if err != nil {
		return nil, common.WrapError(err, "prepare select all")
	}
	return s, nil
}

// Save inserts one row and returns the backend-assigned id. A not-null
// violation maps onto a distinct constraint error.
func (s *PGStore) Save(ctx context.Context, c entity.Contact) (string, error) {
	row := contactRow{
		Name:        c.Name,
		Phones:      TextArray(c.Phones),
		Email:       sql.NullString{String: c.Email, Valid: true},
		Address:     sql.NullString{String: c.Address, Valid: true},
		Description: sql.NullString{String: c.Description, Valid: true},
	}
	var id int64
	if err := s.insert.GetContext(ctx, &id, row); err != nil {
		s.logger.Error("store.pg.insert_failed", "name", c.Name, "error", err)
		return "", classifyPGError(err)
	}
	s.logger.Info("store.pg.saved", "id", id)
	return strconv.FormatInt(id, 10), nil
}

// Load fetches one row by its decimal id.
func (s *PGStore) Load(ctx context.Context, id string) (entity.Contact, error) {
	rowID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return entity.Contact{}, common.WrapError(common.ErrInvalidInput, "row id "+id)
	}
	var row contactRow
	if err := s.selectByID.GetContext(ctx, &row, rowID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Contact{}, common.WrapError(common.ErrNotFound, "row "+id)
		}
		return entity.Contact{}, classifyPGError(err)
	}
	return row.toContact(), nil
}

// List returns all rows ordered by id.
func (s *PGStore) List(ctx context.Context) ([]entity.Contact, error) {
	var rows []contactRow
	if err := s.selectAll.SelectContext(ctx, &rows); err != nil {
		return nil, classifyPGError(err)
	}
	out := make([]entity.Contact, len(rows))
	for i, r := range rows {
		out[i] = r.toContact()
	}
	return out, nil
}

// Close releases the prepared statements and the underlying handle.
func (s *PGStore) Close() error {
	return s.db.Close()
}

func (r contactRow) toContact() entity.Contact {
	phones := []string(r.Phones)
	if phones == nil {
		phones = []string{}
	}
	return entity.Contact{
		ID:          r.ID,
		Name:        r.Name,
		Phones:      phones,
		Email:       r.Email.String,
		Address:     r.Address.String,
		Description: r.Description.String,
		CreatedAt:   r.CreatedAt,
	}
}

// classifyPGError separates constraint violations from everything else so
// the caller can tell "the data was refused" apart from "the database is
// unreachable".
func classifyPGError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && len(pgErr.Code) >= 2 && pgErr.Code[:2] == "23" {
		return common.WrapError(common.ErrConstraint, pgErr.Message)
	}
	return common.WrapError(common.ErrStorage, err.Error())
}
