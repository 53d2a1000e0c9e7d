package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/partyklinest/cleaning-backend/internal/models"
	"github.com/partyklinest/cleaning-backend/internal/pkg/apperror"
	"github.com/partyklinest/cleaning-backend/internal/repository"
)

// OrderRepository описывает взаимодействие сервиса с хранилищем заказов.
type OrderRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Order, error)
	Create(ctx context.Context, order *models.Order) error
	Update(ctx context.Context, order *models.Order) error
	ListByCleaner(ctx context.Context, cleanerID string) ([]models.Order, error)
	ListByClient(ctx context.Context, clientID string) ([]models.Order, error)
	DeleteByIDs(ctx context.Context, ids []int64) error
}

// OrderService содержит бизнес-логику работы с заказами.
type OrderService struct {
	repo OrderRepository
}

// NewOrderService создаёт новый сервис заказов.
func NewOrderService(repo OrderRepository) *OrderService {
	return &OrderService{repo: repo}
}

// CreateOrderInput описывает входные данные нового заказа.
type CreateOrderInput struct {
	ClientID  string
	MessLevel int
	MaxPrice  float64
	Date      time.Time
}

// CreateOrder создаёт заказ от имени клиента и возвращает его.
func (s *OrderService) CreateOrder(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	if in.MessLevel < 1 || in.MessLevel > 5 {
		return nil, fmt.Errorf("order service: уровень загрязнения должен быть от 1 до 5")
	}
	if in.MaxPrice <= 0 {
		return nil, fmt.Errorf("order service: максимальная цена должна быть положительной")
	}
	if in.Date.Before(time.Now()) {
		return nil, fmt.Errorf("order service: дата уборки не может быть в прошлом")
	}

	order := &models.Order{
		ClientID:  in.ClientID,
		Status:    models.OrderStatusCreated,
		MessLevel: in.MessLevel,
		MaxPrice:  in.MaxPrice,
		Date:      in.Date,
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

// GetOrder возвращает заказ по идентификатору.
func (s *OrderService) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, &apperror.OrderNotFoundError{OrderID: id}
		}
		return nil, err
	}
	return order, nil
}

// ListAssignedOrdersTo возвращает заказы, закреплённые за клинером.
func (s *OrderService) ListAssignedOrdersTo(ctx context.Context, cleanerID string) ([]models.Order, error) {
	return s.repo.ListByCleaner(ctx, cleanerID)
}

// ListCreatedOrdersBy возвращает заказы, созданные клиентом.
func (s *OrderService) ListCreatedOrdersBy(ctx context.Context, clientID string) ([]models.Order, error) {
	return s.repo.ListByClient(ctx, clientID)
}

// Update перезаписывает заказ. Запись условная: при несовпадении версии
// возвращается OrderConflictError, вызывающий должен перечитать заказ.
func (s *OrderService) Update(ctx context.Context, order *models.Order) error {
	if err := s.repo.Update(ctx, order); err != nil {
		switch {
		case errors.Is(err, repository.ErrOrderNotFound):
			return &apperror.OrderNotFoundError{OrderID: order.OrderID}
		case errors.Is(err, repository.ErrOrderConflict):
			return &apperror.OrderConflictError{OrderID: order.OrderID}
		default:
			return err
		}
	}
	return nil
}

// CloseOrder переводит заказ в закрытое состояние и сохраняет его.
func (s *OrderService) CloseOrder(ctx context.Context, order *models.Order) error {
	order.Status = models.OrderStatusClosed
	return s.Update(ctx, order)
}

// AssignCleaner делает клинеру предварительное предложение: заказ переходит
// из created в active с закреплённым клинером и ждёт подтверждения.
func (s *OrderService) AssignCleaner(ctx context.Context, orderID int64, cleanerID string) (*models.Order, error) {
	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.Status != models.OrderStatusCreated || order.CleanerID != nil {
		return nil, &apperror.NotCorrectOrderStatusError{
			StoredStatus: order.Status,
			SentStatus:   models.OrderStatusActive,
		}
	}

	order.Status = models.OrderStatusActive
	order.CleanerID = &cleanerID

	if err := s.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// DeleteOrders удаляет переданные заказы.
func (s *OrderService) DeleteOrders(ctx context.Context, orders []models.Order) error {
	ids := make([]int64, 0, len(orders))
	for _, order := range orders {
		ids = append(ids, order.OrderID)
	}
	return s.repo.DeleteByIDs(ctx, ids)
}
