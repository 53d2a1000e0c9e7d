package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/partyklinest/cleaning-backend/internal/models"
	"github.com/partyklinest/cleaning-backend/internal/pkg/apperror"
	"github.com/partyklinest/cleaning-backend/internal/repository"
)

type mockOrderRepo struct {
	mock.Mock
}

func (m *mockOrderRepo) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *mockOrderRepo) Create(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	if args.Error(0) == nil {
		order.OrderID = 1
		order.Version = 1
	}
	return args.Error(0)
}

func (m *mockOrderRepo) Update(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *mockOrderRepo) ListByCleaner(ctx context.Context, cleanerID string) ([]models.Order, error) {
	args := m.Called(ctx, cleanerID)
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *mockOrderRepo) ListByClient(ctx context.Context, clientID string) ([]models.Order, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *mockOrderRepo) DeleteByIDs(ctx context.Context, ids []int64) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

func TestOrderService_CreateOrder_Success(t *testing.T) {
	repo := new(mockOrderRepo)
	svc := NewOrderService(repo)
	ctx := context.Background()

	repo.On("Create", ctx, mock.AnythingOfType("*models.Order")).Return(nil)

	order, err := svc.CreateOrder(ctx, CreateOrderInput{
		ClientID:  "client-1",
		MessLevel: 3,
		MaxPrice:  2000,
		Date:      time.Now().Add(48 * time.Hour),
	})

	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusCreated, order.Status)
	assert.Nil(t, order.CleanerID)
	assert.Equal(t, int64(1), order.OrderID)
}

func TestOrderService_CreateOrder_InvalidInput(t *testing.T) {
	repo := new(mockOrderRepo)
	svc := NewOrderService(repo)
	ctx := context.Background()
	future := time.Now().Add(time.Hour)

	_, err := svc.CreateOrder(ctx, CreateOrderInput{ClientID: "c", MessLevel: 0, MaxPrice: 100, Date: future})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "от 1 до 5")

	_, err = svc.CreateOrder(ctx, CreateOrderInput{ClientID: "c", MessLevel: 2, MaxPrice: 0, Date: future})
	assert.Error(t, err)

	_, err = svc.CreateOrder(ctx, CreateOrderInput{ClientID: "c", MessLevel: 2, MaxPrice: 100, Date: time.Now().Add(-time.Hour)})
	assert.Error(t, err)

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOrderService_GetOrder_NotFound(t *testing.T) {
	repo := new(mockOrderRepo)
	svc := NewOrderService(repo)
	ctx := context.Background()

	repo.On("GetByID", ctx, int64(99)).Return(nil, repository.ErrOrderNotFound)

	_, err := svc.GetOrder(ctx, 99)

	var notFound *apperror.OrderNotFoundError
	assert.ErrorAs(t, err, &notFound)
	assert.Equal(t, int64(99), notFound.OrderID)
}

func TestOrderService_Update_VersionConflict(t *testing.T) {
	repo := new(mockOrderRepo)
	svc := NewOrderService(repo)
	ctx := context.Background()

	order := &models.Order{OrderID: 7, Status: models.OrderStatusActive, Version: 2}
	repo.On("Update", ctx, order).Return(repository.ErrOrderConflict)

	err := svc.Update(ctx, order)

	var conflict *apperror.OrderConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestOrderService_AssignCleaner_Success(t *testing.T) {
	repo := new(mockOrderRepo)
	svc := NewOrderService(repo)
	ctx := context.Background()

	order := &models.Order{OrderID: 7, ClientID: "client-1", Status: models.OrderStatusCreated, Version: 1}
	repo.On("GetByID", ctx, int64(7)).Return(order, nil)
	repo.On("Update", ctx, order).Return(nil)

	updated, err := svc.AssignCleaner(ctx, 7, "cleaner-1")

	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusActive, updated.Status)
	assert.NotNil(t, updated.CleanerID)
	assert.Equal(t, "cleaner-1", *updated.CleanerID)
}

func TestOrderService_AssignCleaner_AlreadyOffered(t *testing.T) {
	repo := new(mockOrderRepo)
	svc := NewOrderService(repo)
	ctx := context.Background()

	other := "cleaner-2"
	order := &models.Order{OrderID: 7, Status: models.OrderStatusActive, CleanerID: &other}
	repo.On("GetByID", ctx, int64(7)).Return(order, nil)

	_, err := svc.AssignCleaner(ctx, 7, "cleaner-1")

	var wrongStatus *apperror.NotCorrectOrderStatusError
	assert.ErrorAs(t, err, &wrongStatus)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestOrderService_DeleteOrders(t *testing.T) {
	repo := new(mockOrderRepo)
	svc := NewOrderService(repo)
	ctx := context.Background()

	orders := []models.Order{{OrderID: 1}, {OrderID: 2}}
	repo.On("DeleteByIDs", ctx, []int64{1, 2}).Return(nil)

	err := svc.DeleteOrders(ctx, orders)

	assert.NoError(t, err)
	repo.AssertCalled(t, "DeleteByIDs", ctx, []int64{1, 2})
}
