package session

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/mmeshcher/rentcarx-storefront/internal/model"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var retryDelays = []time.Duration{1 * time.Second, 3 * time.Second, 5 * time.Second}

// PostgresStore хранит сессии в PostgreSQL, что позволяет переживать перезапуск витрины.
type PostgresStore struct {
	pool   *pgxpool.Pool
	delays []time.Duration
}

// NewPostgresStore подключается к базе dsn и применяет миграции.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse pool config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &PostgresStore{pool: pool, delays: retryDelays}

	if err := s.runMigrations(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

func (s *PostgresStore) runMigrations(ctx context.Context) error {
	db := stdlib.OpenDBFromPool(s.pool)
	defer db.Close()

	goose.SetBaseFS(migrationsFS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

// Close закрывает пул соединений.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// Save создаёт или обновляет сессию.
func (s *PostgresStore) Save(ctx context.Context, sess *model.Session) error {
	return s.withRetry(ctx, func() error {
		_, err := s.pool.Exec(ctx,
			`INSERT INTO sessions (id, token, role, name, created_at, expires_at)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 ON CONFLICT (id) DO UPDATE
			 SET token = EXCLUDED.token, role = EXCLUDED.role, name = EXCLUDED.name, expires_at = EXCLUDED.expires_at`,
			sess.ID, sess.Token, sess.Role, sess.Name, sess.CreatedAt, sess.ExpiresAt,
		)
		if err != nil {
			return fmt.Errorf("save session: %w", err)
		}
		return nil
	})
}

// Get возвращает сессию по идентификатору.
func (s *PostgresStore) Get(ctx context.Context, id string) (*model.Session, error) {
	var sess model.Session
	err := s.withRetry(ctx, func() error {
		return s.pool.QueryRow(ctx,
			`SELECT id, token, role, name, created_at, expires_at FROM sessions WHERE id = $1`,
			id,
		).Scan(&sess.ID, &sess.Token, &sess.Role, &sess.Name, &sess.CreatedAt, &sess.ExpiresAt)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &sess, nil
}

// Delete удаляет сессию.
func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	return s.withRetry(ctx, func() error {
		if _, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id); err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
		return nil
	})
}

// DeleteExpired удаляет истёкшие сессии и возвращает их идентификаторы.
func (s *PostgresStore) DeleteExpired(ctx context.Context, now time.Time) ([]string, error) {
	var removed []string
	err := s.withRetry(ctx, func() error {
		removed = removed[:0]

		rows, err := s.pool.Query(ctx, `DELETE FROM sessions WHERE expires_at <= $1 RETURNING id`, now)
		if err != nil {
			return fmt.Errorf("delete expired sessions: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				return fmt.Errorf("scan session id: %w", err)
			}
			removed = append(removed, id)
		}

		if err := rows.Err(); err != nil {
			return fmt.Errorf("rows error: %w", err)
		}
		return nil
	})
	return removed, err
}

func (s *PostgresStore) withRetry(ctx context.Context, fn func() error) error {
	var err error

	for i := 0; i <= len(s.delays); i++ {
		err = fn()
		if err == nil || !isRetryable(err) || i == len(s.delays) {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.delays[i]):
		}
	}
	return err
}

// isRetryable отбирает конфликты сериализации, взаимные блокировки и обрывы соединения.
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.SerializationFailure || pgErr.Code == pgerrcode.DeadlockDetected
	}

	return isConnectionError(err)
}

func isConnectionError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "connection reset by peer")
}
