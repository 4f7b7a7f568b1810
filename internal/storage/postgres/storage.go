package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/gustavo230282-a11y/controle-de-retiradas/internal/domain/errors"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/domain/model"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/domain/repository"
)

const uniqueViolation = "23505"

type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage keeps users and withdrawal rows in PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type withdrawalRepository struct {
	storage *Storage
}

// New connects to the database and verifies it is reachable. The schema is
// managed by Migrate.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.HealthCheck(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Withdrawals() repository.WithdrawalRepository {
	return &withdrawalRepository{storage: s}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, u model.User) error {
	const query = `INSERT INTO users (id, name, email, password_hash, level) VALUES ($1, $2, $3, $4, $5)`
	_, err := r.storage.pool.Exec(ctx, query, u.ID, u.Name, u.Email, u.PasswordHash, string(u.Level))
	if err != nil {
		if isUniqueViolation(err) {
			return domainErrors.Storage("create user", domainErrors.ErrAlreadyExists)
		}
		return domainErrors.Storage("create user", err)
	}
	return nil
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	const query = `SELECT id, name, email, password_hash, level FROM users`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, domainErrors.Storage("list users", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var (
			u     model.User
			level string
		)
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &level); err != nil {
			return nil, domainErrors.Storage("list users", err)
		}
		u.Level = model.Level(level)
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, domainErrors.Storage("list users", err)
	}
	return users, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const query = `SELECT id, name, email, password_hash, level FROM users WHERE email=$1`
	var (
		u     model.User
		level string
	)
	err := r.storage.pool.QueryRow(ctx, query, email).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &level)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, domainErrors.Storage("get user", err)
	}
	u.Level = model.Level(level)
	return &u, nil
}

// --- WithdrawalRepository implementation ---

func (r *withdrawalRepository) Save(ctx context.Context, w model.Withdrawal) error {
	const query = `INSERT INTO withdrawals
        (id, user_id, user_name, recipient_name, nf_number, image_url, "timestamp", latitude, longitude)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	lat, lng := w.LatLng()
	_, err := r.storage.pool.Exec(ctx, query,
		w.ID, w.UserID, w.UserName, w.RecipientName, w.NFNumber, w.ImageURL, w.Timestamp, lat, lng)
	if err != nil {
		if isUniqueViolation(err) {
			return domainErrors.Storage("save withdrawal", domainErrors.ErrAlreadyExists)
		}
		return domainErrors.Storage("save withdrawal", err)
	}
	return nil
}

func (r *withdrawalRepository) ListRecent(ctx context.Context) ([]model.Withdrawal, error) {
	const query = `SELECT id, user_id, user_name, recipient_name, nf_number, image_url, "timestamp", latitude, longitude
        FROM withdrawals ORDER BY "timestamp" DESC LIMIT $1`
	rows, err := r.storage.pool.Query(ctx, query, repository.RecentLimit)
	if err != nil {
		return nil, domainErrors.Storage("list withdrawals", err)
	}
	defer rows.Close()

	result := make([]model.Withdrawal, 0, repository.RecentLimit)
	for rows.Next() {
		var (
			w        model.Withdrawal
			lat, lng *float64
		)
		if err := rows.Scan(&w.ID, &w.UserID, &w.UserName, &w.RecipientName, &w.NFNumber, &w.ImageURL, &w.Timestamp, &lat, &lng); err != nil {
			return nil, domainErrors.Storage("list withdrawals", err)
		}
		w.Timestamp = w.Timestamp.UTC()
		w.Location = model.CoordinatesFrom(lat, lng)
		result = append(result, w)
	}
	if err := rows.Err(); err != nil {
		return nil, domainErrors.Storage("list withdrawals", err)
	}
	return result, nil
}

func (r *withdrawalRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM withdrawals WHERE id=$1`
	if _, err := r.storage.pool.Exec(ctx, query, id); err != nil {
		return domainErrors.Storage("delete withdrawal", err)
	}
	return nil
}
