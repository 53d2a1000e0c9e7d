package service

import (
	"context"
	"errors"

	"github.com/partyklinest/cleaning-backend/internal/models"
	"github.com/partyklinest/cleaning-backend/internal/pkg/apperror"
	"github.com/partyklinest/cleaning-backend/internal/repository"
)

// ClientRepository описывает взаимодействие сервиса с хранилищем клиентов.
type ClientRepository interface {
	GetByID(ctx context.Context, clientID string) (*models.Client, error)
	List(ctx context.Context) ([]models.Client, error)
	Create(ctx context.Context, client *models.Client) error
	Delete(ctx context.Context, clientID string) error
}

// ClientOrderFacade описывает операции над заказами, нужные сервису клиентов.
type ClientOrderFacade interface {
	ListCreatedOrdersBy(ctx context.Context, clientID string) ([]models.Order, error)
	DeleteOrders(ctx context.Context, orders []models.Order) error
}

// ClientService содержит бизнес-логику учёта клиентов.
type ClientService struct {
	clients ClientRepository
	orders  ClientOrderFacade
}

// NewClientService создаёт сервис клиентов.
func NewClientService(clients ClientRepository, orders ClientOrderFacade) *ClientService {
	return &ClientService{clients: clients, orders: orders}
}

// GetClient возвращает клиента по идентификатору.
func (s *ClientService) GetClient(ctx context.Context, clientID string) (*models.Client, error) {
	client, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrClientNotFound) {
			return nil, &apperror.ClientNotFoundError{ClientID: clientID}
		}
		return nil, err
	}
	return client, nil
}

// ListClients возвращает всех клиентов.
func (s *ClientService) ListClients(ctx context.Context) ([]models.Client, error) {
	return s.clients.List(ctx)
}

// AddClient регистрирует нового клиента.
func (s *ClientService) AddClient(ctx context.Context, client *models.Client) error {
	return s.clients.Create(ctx, client)
}

// DeleteClient удаляет клиента вместе со всеми созданными им заказами.
// Заказы удаляются раньше самого клиента.
func (s *ClientService) DeleteClient(ctx context.Context, clientID string) error {
	client, err := s.GetClient(ctx, clientID)
	if err != nil {
		return err
	}

	orders, err := s.orders.ListCreatedOrdersBy(ctx, client.ClientID)
	if err != nil {
		return err
	}

	if len(orders) > 0 {
		if err := s.orders.DeleteOrders(ctx, orders); err != nil {
			return err
		}
	}

	return s.clients.Delete(ctx, client.ClientID)
}
