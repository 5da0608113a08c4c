package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/nurbekov/mealbox/internal/domain/errors"
	"github.com/nurbekov/mealbox/internal/domain/model"
	"github.com/nurbekov/mealbox/internal/domain/repository"
)

// dbPool is the pool surface Storage depends on. Satisfied by pgxpool.Pool and
// by pgxmock pools in tests.
type dbPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// newPgxPool is swapped out in tests.
var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (dbPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   dbPool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type notificationRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
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
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Notifications() repository.NotificationRepository {
	return &notificationRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id BIGSERIAL PRIMARY KEY,
            email TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            name TEXT NOT NULL DEFAULT '',
            phone TEXT NOT NULL DEFAULT '',
            is_premium BOOLEAN NOT NULL DEFAULT FALSE,
            premium_expiry TIMESTAMPTZ,
            plan_type TEXT NOT NULL DEFAULT '',
            total_boxes INT NOT NULL DEFAULT 0,
            delivered_boxes INT NOT NULL DEFAULT 0,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id BIGSERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id),
            user_name TEXT NOT NULL DEFAULT '',
            user_email TEXT NOT NULL DEFAULT '',
            kind TEXT NOT NULL,
            status TEXT NOT NULL,
            items JSONB NOT NULL DEFAULT '[]',
            subtotal DOUBLE PRECISION NOT NULL DEFAULT 0,
            delivery_fee DOUBLE PRECISION NOT NULL DEFAULT 0,
            total DOUBLE PRECISION NOT NULL DEFAULT 0,
            address TEXT NOT NULL DEFAULT '',
            phone TEXT NOT NULL DEFAULT '',
            payment_method TEXT NOT NULL DEFAULT '',
            plan_type TEXT NOT NULL DEFAULT '',
            selections JSONB,
            protein_target INT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS notifications (
            id BIGSERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id),
            message TEXT NOT NULL,
            read BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_active ON orders(created_at)
            WHERE status NOT IN ('delivered', 'cancelled')`,
		`CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications(user_id, created_at DESC)`,
	}

	return s.WithinTransaction(ctx, func(tx pgx.Tx) error {
		for _, stmt := range statements {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("init schema: %w", err)
			}
		}
		return nil
	})
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, email, passwordHash, name string) (*model.User, error) {
	const query = `INSERT INTO users (email, password_hash, name) VALUES ($1, $2, $3) RETURNING id, created_at`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, email, passwordHash, name).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	u.Email = email
	u.PasswordHash = passwordHash
	u.Name = name
	return &u, nil
}

const userColumns = `id, email, password_hash, name, phone, is_premium, premium_expiry,
                     plan_type, total_boxes, delivered_boxes, created_at`

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email=$1`
	return r.scanUser(r.storage.pool.QueryRow(ctx, query, email))
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	return r.scanUser(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Phone, &u.IsPremium,
		&u.PremiumExpiry, &u.PlanType, &u.TotalBoxes, &u.DeliveredBoxes, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) ActivateSubscription(ctx context.Context, userID int64, planType string, expiry time.Time) error {
	const query = `UPDATE users SET is_premium=TRUE, plan_type=$1, premium_expiry=$2 WHERE id=$3`
	tag, err := r.storage.pool.Exec(ctx, query, planType, expiry, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *userRepository) SetBoxQuota(ctx context.Context, userID int64, totalBoxes int) error {
	const query = `UPDATE users SET total_boxes=$1, delivered_boxes=0 WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, totalBoxes, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *userRepository) ConsumeBox(ctx context.Context, userID int64) (*model.BoxQuota, error) {
	// LEAST keeps the ledger clamped even under concurrent consumers
	const query = `UPDATE users SET delivered_boxes = LEAST(delivered_boxes + 1, total_boxes)
                   WHERE id=$1 RETURNING total_boxes, delivered_boxes`
	var q model.BoxQuota
	err := r.storage.pool.QueryRow(ctx, query, userID).Scan(&q.TotalBoxes, &q.DeliveredBoxes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &q, nil
}

func (r *userRepository) GetBoxQuota(ctx context.Context, userID int64) (*model.BoxQuota, error) {
	const query = `SELECT total_boxes, delivered_boxes FROM users WHERE id=$1`
	var q model.BoxQuota
	err := r.storage.pool.QueryRow(ctx, query, userID).Scan(&q.TotalBoxes, &q.DeliveredBoxes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &q, nil
}

// --- OrderRepository implementation ---

const orderColumns = `id, user_id, user_name, user_email, kind, status, items,
                      subtotal, delivery_fee, total, address, phone, payment_method,
                      plan_type, selections, protein_target, created_at, updated_at`

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return nil, fmt.Errorf("encode items: %w", err)
	}
	var selections []byte
	if order.Selections != nil {
		if selections, err = json.Marshal(order.Selections); err != nil {
			return nil, fmt.Errorf("encode selections: %w", err)
		}
	}

	const query = `INSERT INTO orders (user_id, user_name, user_email, kind, status, items,
                       subtotal, delivery_fee, total, address, phone, payment_method,
                       plan_type, selections, protein_target, created_at, updated_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $16)
                   RETURNING id`
	created := *order
	err = r.storage.pool.QueryRow(ctx, query,
		order.UserID, order.UserName, order.UserEmail, order.Kind, order.Status, items,
		order.Subtotal, order.DeliveryFee, order.Total, order.Address, order.Phone,
		order.PaymentMethod, order.PlanType, selections, order.ProteinTarget,
		order.CreatedAt).Scan(&created.ID)
	if err != nil {
		return nil, err
	}
	created.UpdatedAt = order.CreatedAt
	return &created, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	row := r.storage.pool.QueryRow(ctx, query, id)
	order, err := scanOrderRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

func (r *orderRepository) ListActive(ctx context.Context, limit int) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
              WHERE status NOT IN ('delivered', 'cancelled')
              ORDER BY created_at LIMIT $1`
	rows, err := r.storage.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

// UpdateStatus refuses to touch terminal rows so a stale writer can never
// resurrect a delivered or cancelled order.
func (r *orderRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	const query = `UPDATE orders SET status=$1, updated_at=NOW()
	               WHERE id=$2 AND status NOT IN ('delivered', 'cancelled')`
	tag, err := r.storage.pool.Exec(ctx, query, status, orderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		var current model.OrderStatus
		err := r.storage.pool.QueryRow(ctx, `SELECT status FROM orders WHERE id=$1`, orderID).Scan(&current)
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return domainErrors.ErrNotFound
		case err != nil:
			return err
		}
		return domainErrors.ErrOrderTerminal
	}
	return nil
}

func (r *orderRepository) Delete(ctx context.Context, orderID int64) error {
	const query = `DELETE FROM orders WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, orderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func scanOrderRow(row pgx.Row) (*model.Order, error) {
	var (
		o          model.Order
		items      []byte
		selections []byte
	)
	err := row.Scan(&o.ID, &o.UserID, &o.UserName, &o.UserEmail, &o.Kind, &o.Status, &items,
		&o.Subtotal, &o.DeliveryFee, &o.Total, &o.Address, &o.Phone, &o.PaymentMethod,
		&o.PlanType, &selections, &o.ProteinTarget, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &o.Items); err != nil {
			return nil, fmt.Errorf("decode items: %w", err)
		}
	}
	if len(selections) > 0 {
		if err := json.Unmarshal(selections, &o.Selections); err != nil {
			return nil, fmt.Errorf("decode selections: %w", err)
		}
	}
	return &o, nil
}

func collectOrders(rows pgx.Rows) ([]model.Order, error) {
	var result []model.Order
	for rows.Next() {
		order, err := scanOrderRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- NotificationRepository implementation ---

func (r *notificationRepository) Create(ctx context.Context, userID int64, message string) (*model.Notification, error) {
	const query = `INSERT INTO notifications (user_id, message) VALUES ($1, $2) RETURNING id, created_at`
	n := model.Notification{UserID: userID, Message: message}
	if err := r.storage.pool.QueryRow(ctx, query, userID, message).Scan(&n.ID, &n.CreatedAt); err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID int64) ([]model.Notification, error) {
	const query = `SELECT id, user_id, message, read, created_at
                   FROM notifications WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Notification
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, userID, notificationID int64) error {
	const query = `UPDATE notifications SET read=TRUE WHERE id=$1 AND user_id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, notificationID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID int64) error {
	const query = `UPDATE notifications SET read=TRUE WHERE user_id=$1 AND read=FALSE`
	_, err := r.storage.pool.Exec(ctx, query, userID)
	return err
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
