package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/partyklinest/cleaning-backend/internal/models"
)

// Ошибки уровня репозитория.
var (
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderConflict означает, что версия заказа не совпала с ожидаемой:
	// между чтением и записью заказ изменил параллельный запрос.
	ErrOrderConflict = errors.New("order version conflict")
)

// OrderRepository отвечает за работу с таблицей orders.
type OrderRepository struct {
	db *sqlx.DB
}

// NewOrderRepository создаёт новый экземпляр.
func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

const orderColumns = `order_id, client_id, cleaner_id, status, mess_level, max_price, date, opinion_rating, opinion_comment, version, created_at, updated_at`

// GetByID возвращает заказ по идентификатору.
func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_id = $1`
	if err := r.db.GetContext(ctx, &order, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("order repository: get by id %w", err)
	}
	return &order, nil
}

// Create сохраняет новый заказ и заполняет идентификатор и версию.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	query := `
		INSERT INTO orders (client_id, cleaner_id, status, mess_level, max_price, date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING order_id, version, created_at, updated_at
	`
	if err := r.db.QueryRowxContext(
		ctx, query,
		order.ClientID, order.CleanerID, order.Status,
		order.MessLevel, order.MaxPrice, order.Date,
	).Scan(&order.OrderID, &order.Version, &order.CreatedAt, &order.UpdatedAt); err != nil {
		return fmt.Errorf("order repository: create %w", err)
	}
	return nil
}

// Update перезаписывает изменяемые поля заказа по принципу compare-and-swap:
// запись проходит только если version в базе совпадает с version заказа.
// При несовпадении возвращается ErrOrderConflict, при отсутствии записи —
// ErrOrderNotFound.
func (r *OrderRepository) Update(ctx context.Context, order *models.Order) error {
	query := `
		UPDATE orders
		SET cleaner_id = $3, status = $4, mess_level = $5, max_price = $6, date = $7,
		    opinion_rating = $8, opinion_comment = $9,
		    version = version + 1, updated_at = NOW()
		WHERE order_id = $1 AND version = $2
		RETURNING version, updated_at
	`
	err := r.db.QueryRowxContext(
		ctx, query,
		order.OrderID, order.Version,
		order.CleanerID, order.Status, order.MessLevel, order.MaxPrice, order.Date,
		order.OpinionRating, order.OpinionComment,
	).Scan(&order.Version, &order.UpdatedAt)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("order repository: update %w", err)
	}

	// Разделяем отсутствие заказа и конфликт версий.
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM orders WHERE order_id = $1)`, order.OrderID); err != nil {
		return fmt.Errorf("order repository: update existence check %w", err)
	}
	if !exists {
		return ErrOrderNotFound
	}
	return ErrOrderConflict
}

// ListByCleaner возвращает заказы, закреплённые за клинером.
func (r *OrderRepository) ListByCleaner(ctx context.Context, cleanerID string) ([]models.Order, error) {
	var orders []models.Order
	query := `SELECT ` + orderColumns + ` FROM orders WHERE cleaner_id = $1 ORDER BY date`
	if err := r.db.SelectContext(ctx, &orders, query, cleanerID); err != nil {
		return nil, fmt.Errorf("order repository: list by cleaner %w", err)
	}
	return orders, nil
}

// ListByClient возвращает заказы, созданные клиентом.
func (r *OrderRepository) ListByClient(ctx context.Context, clientID string) ([]models.Order, error) {
	var orders []models.Order
	query := `SELECT ` + orderColumns + ` FROM orders WHERE client_id = $1 ORDER BY date`
	if err := r.db.SelectContext(ctx, &orders, query, clientID); err != nil {
		return nil, fmt.Errorf("order repository: list by client %w", err)
	}
	return orders, nil
}

// DeleteByIDs удаляет заказы по списку идентификаторов.
func (r *OrderRepository) DeleteByIDs(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	query := `DELETE FROM orders WHERE order_id = ANY($1)`
	if _, err := r.db.ExecContext(ctx, query, pq.Array(ids)); err != nil {
		return fmt.Errorf("order repository: delete by ids %w", err)
	}
	return nil
}

// GetAverageClientRating возвращает среднюю оценку клиента по мнениям
// клинеров в закрытых заказах. Возвращает nil, если истории ещё нет.
func (r *OrderRepository) GetAverageClientRating(ctx context.Context, clientID string) (*float64, error) {
	var rating *float64
	query := `
		SELECT AVG(opinion_rating)
		FROM orders
		WHERE client_id = $1 AND status = $2 AND opinion_rating IS NOT NULL
	`
	if err := r.db.GetContext(ctx, &rating, query, clientID, models.OrderStatusClosed); err != nil {
		return nil, fmt.Errorf("order repository: average client rating %w", err)
	}
	return rating, nil
}
