// Package local is the single-node fallback backend: an SQLite file for rows
// and a directory for receipt photos.
package local

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"

	domainErrors "github.com/gustavo230282-a11y/controle-de-retiradas/internal/domain/errors"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/domain/model"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/domain/repository"
)

// Storage keeps users and the bounded withdrawal list in SQLite.
type Storage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type withdrawalRepository struct {
	storage *Storage
}

type userRow struct {
	ID           string `db:"id"`
	Name         string `db:"name"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	Level        string `db:"level"`
}

type withdrawalRow struct {
	ID            string          `db:"id"`
	UserID        string          `db:"user_id"`
	UserName      string          `db:"user_name"`
	RecipientName string          `db:"recipient_name"`
	NFNumber      string          `db:"nf_number"`
	ImageURL      string          `db:"image_url"`
	Timestamp     int64           `db:"ts"`
	Latitude      sql.NullFloat64 `db:"latitude"`
	Longitude     sql.NullFloat64 `db:"longitude"`
}

// New opens (or creates) the SQLite file at path.
func New(ctx context.Context, path string, logger *slog.Logger) (*Storage, error) {
	db, err := sqlx.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}
	db.SetMaxOpenConns(1)

	storage := &Storage{db: db, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return storage, nil
}

// Reset deletes the local store at path. It is the recovery path for a
// corrupted fallback.
func Reset(path string) error {
	for _, p := range []string{path, path + "-journal", path + "-wal", path + "-shm"} {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove %s: %w", p, err)
		}
	}
	return nil
}

// Close releases the database handle.
func (s *Storage) Close() {
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Warn("close local store", slog.String("error", err.Error()))
		}
	}
}

func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Withdrawals() repository.WithdrawalRepository {
	return &withdrawalRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            seq INTEGER PRIMARY KEY AUTOINCREMENT,
            id TEXT NOT NULL,
            name TEXT NOT NULL,
            email TEXT NOT NULL,
            password_hash TEXT NOT NULL,
            level TEXT NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS withdrawals (
            seq INTEGER PRIMARY KEY AUTOINCREMENT,
            id TEXT NOT NULL,
            user_id TEXT NOT NULL,
            user_name TEXT NOT NULL,
            recipient_name TEXT NOT NULL,
            nf_number TEXT NOT NULL,
            image_url TEXT NOT NULL,
            ts INTEGER NOT NULL,
            latitude REAL,
            longitude REAL,
            CHECK ((latitude IS NULL) = (longitude IS NULL))
        )`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return s.fail("init schema", err)
		}
	}
	return nil
}

// fail wraps err as a storage error, marking SQLite corruption so callers
// can tell a reset is required.
func (s *Storage) fail(op string, err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && (sqliteErr.Code == sqlite3.ErrCorrupt || sqliteErr.Code == sqlite3.ErrNotADB) {
		s.logger.Error("local store corrupted", slog.String("op", op), slog.String("error", err.Error()))
		return domainErrors.Storage(op, fmt.Errorf("%w: %v", domainErrors.ErrStoreCorrupted, err))
	}
	return domainErrors.Storage(op, err)
}

// --- UserRepository implementation ---

// Create never reports a duplicate: ids are not checked by the fallback.
func (r *userRepository) Create(ctx context.Context, u model.User) error {
	const q = `INSERT INTO users (id, name, email, password_hash, level) VALUES (?, ?, ?, ?, ?)`
	if _, err := r.storage.db.ExecContext(ctx, q, u.ID, u.Name, u.Email, u.PasswordHash, string(u.Level)); err != nil {
		return r.storage.fail("create user", err)
	}
	return nil
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	var rows []userRow
	if err := r.storage.db.SelectContext(ctx, &rows, `SELECT id, name, email, password_hash, level FROM users ORDER BY seq`); err != nil {
		return nil, r.storage.fail("list users", err)
	}
	users := make([]model.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toModel())
	}
	return users, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var row userRow
	err := r.storage.db.GetContext(ctx, &row, `SELECT id, name, email, password_hash, level FROM users WHERE email = ? ORDER BY seq LIMIT 1`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, r.storage.fail("get user", err)
	}
	u := row.toModel()
	return &u, nil
}

func (row userRow) toModel() model.User {
	return model.User{
		ID:           row.ID,
		Name:         row.Name,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		Level:        model.Level(row.Level),
	}
}

// --- WithdrawalRepository implementation ---

// Save inserts at the head of the list and evicts whatever falls beyond the
// RecentLimit most recently saved records.
func (r *withdrawalRepository) Save(ctx context.Context, w model.Withdrawal) error {
	tx, err := r.storage.db.BeginTxx(ctx, nil)
	if err != nil {
		return r.storage.fail("save withdrawal", err)
	}
	defer func() { _ = tx.Rollback() }()

	lat, lng := w.LatLng()
	const insert = `INSERT INTO withdrawals
        (id, user_id, user_name, recipient_name, nf_number, image_url, ts, latitude, longitude)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, insert,
		w.ID, w.UserID, w.UserName, w.RecipientName, w.NFNumber, w.ImageURL, w.Timestamp.UnixMicro(), lat, lng); err != nil {
		return r.storage.fail("save withdrawal", err)
	}

	const evict = `DELETE FROM withdrawals WHERE seq NOT IN (SELECT seq FROM withdrawals ORDER BY seq DESC LIMIT ?)`
	if _, err := tx.ExecContext(ctx, evict, repository.RecentLimit); err != nil {
		return r.storage.fail("evict withdrawals", err)
	}

	if err := tx.Commit(); err != nil {
		return r.storage.fail("save withdrawal", err)
	}
	return nil
}

func (r *withdrawalRepository) ListRecent(ctx context.Context) ([]model.Withdrawal, error) {
	const q = `SELECT id, user_id, user_name, recipient_name, nf_number, image_url, ts, latitude, longitude
        FROM withdrawals ORDER BY ts DESC, seq DESC LIMIT ?`
	var rows []withdrawalRow
	if err := r.storage.db.SelectContext(ctx, &rows, q, repository.RecentLimit); err != nil {
		return nil, r.storage.fail("list withdrawals", err)
	}
	result := make([]model.Withdrawal, 0, len(rows))
	for _, row := range rows {
		result = append(result, row.toModel())
	}
	return result, nil
}

func (r *withdrawalRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.storage.db.ExecContext(ctx, `DELETE FROM withdrawals WHERE id = ?`, id); err != nil {
		return r.storage.fail("delete withdrawal", err)
	}
	return nil
}

func (row withdrawalRow) toModel() model.Withdrawal {
	w := model.Withdrawal{
		ID:            row.ID,
		UserID:        row.UserID,
		UserName:      row.UserName,
		RecipientName: row.RecipientName,
		NFNumber:      row.NFNumber,
		ImageURL:      row.ImageURL,
		Timestamp:     time.UnixMicro(row.Timestamp).UTC(),
	}
	if row.Latitude.Valid && row.Longitude.Valid {
		w.Location = &model.Coordinates{Latitude: row.Latitude.Float64, Longitude: row.Longitude.Float64}
	}
	return w
}
