package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/partyklinest/cleaning-backend/internal/models"
)

// ErrClientNotFound возвращается, когда запись клиента не найдена.
var ErrClientNotFound = errors.New("client not found")

// ClientRepository отвечает за работу с таблицей clients.
type ClientRepository struct {
	db *sqlx.DB
}

// NewClientRepository создаёт экземпляр репозитория.
func NewClientRepository(db *sqlx.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

// GetByID возвращает клиента по идентификатору.
func (r *ClientRepository) GetByID(ctx context.Context, clientID string) (*models.Client, error) {
	var client models.Client
	query := `SELECT client_id, name, email, created_at, updated_at FROM clients WHERE client_id = $1`
	if err := r.db.GetContext(ctx, &client, query, clientID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("client repository: get by id %w", err)
	}
	return &client, nil
}

// List возвращает всех клиентов.
func (r *ClientRepository) List(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	query := `SELECT client_id, name, email, created_at, updated_at FROM clients ORDER BY created_at`
	if err := r.db.SelectContext(ctx, &clients, query); err != nil {
		return nil, fmt.Errorf("client repository: list %w", err)
	}
	return clients, nil
}

// Create сохраняет нового клиента.
func (r *ClientRepository) Create(ctx context.Context, client *models.Client) error {
	query := `
		INSERT INTO clients (client_id, name, email)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at
	`
	if err := r.db.QueryRowxContext(ctx, query, client.ClientID, client.Name, client.Email).
		Scan(&client.CreatedAt, &client.UpdatedAt); err != nil {
		return fmt.Errorf("client repository: create %w", err)
	}
	return nil
}

// Delete удаляет клиента.
func (r *ClientRepository) Delete(ctx context.Context, clientID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE client_id = $1`, clientID)
	if err != nil {
		return fmt.Errorf("client repository: delete %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrClientNotFound
	}
	return nil
}
