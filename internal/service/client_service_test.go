package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/partyklinest/cleaning-backend/internal/models"
	"github.com/partyklinest/cleaning-backend/internal/pkg/apperror"
	"github.com/partyklinest/cleaning-backend/internal/repository"
)

type mockClientRepo struct {
	mock.Mock
}

func (m *mockClientRepo) GetByID(ctx context.Context, clientID string) (*models.Client, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Client), args.Error(1)
}

func (m *mockClientRepo) List(ctx context.Context) ([]models.Client, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Client), args.Error(1)
}

func (m *mockClientRepo) Create(ctx context.Context, client *models.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *mockClientRepo) Delete(ctx context.Context, clientID string) error {
	args := m.Called(ctx, clientID)
	return args.Error(0)
}

type mockClientOrderFacade struct {
	mock.Mock
}

func (m *mockClientOrderFacade) ListCreatedOrdersBy(ctx context.Context, clientID string) ([]models.Order, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *mockClientOrderFacade) DeleteOrders(ctx context.Context, orders []models.Order) error {
	args := m.Called(ctx, orders)
	return args.Error(0)
}

func TestClientService_GetClient_NotFound(t *testing.T) {
	clients := new(mockClientRepo)
	orders := new(mockClientOrderFacade)
	svc := NewClientService(clients, orders)
	ctx := context.Background()

	clients.On("GetByID", ctx, "ghost").Return(nil, repository.ErrClientNotFound)

	_, err := svc.GetClient(ctx, "ghost")

	var notFound *apperror.ClientNotFoundError
	assert.ErrorAs(t, err, &notFound)
	assert.Equal(t, "ghost", notFound.ClientID)
}

func TestClientService_DeleteClient_CascadesOrders(t *testing.T) {
	clients := new(mockClientRepo)
	orders := new(mockClientOrderFacade)
	svc := NewClientService(clients, orders)
	ctx := context.Background()

	client := &models.Client{ClientID: "client-1", Name: "Мария"}
	created := []models.Order{{OrderID: 1, ClientID: "client-1"}, {OrderID: 2, ClientID: "client-1"}}

	clients.On("GetByID", ctx, "client-1").Return(client, nil)
	orders.On("ListCreatedOrdersBy", ctx, "client-1").Return(created, nil)
	orders.On("DeleteOrders", ctx, created).Return(nil)
	clients.On("Delete", ctx, "client-1").Return(nil)

	err := svc.DeleteClient(ctx, "client-1")

	assert.NoError(t, err)
	orders.AssertCalled(t, "DeleteOrders", ctx, created)
	clients.AssertCalled(t, "Delete", ctx, "client-1")
}

func TestClientService_DeleteClient_NoOrders(t *testing.T) {
	clients := new(mockClientRepo)
	orders := new(mockClientOrderFacade)
	svc := NewClientService(clients, orders)
	ctx := context.Background()

	client := &models.Client{ClientID: "client-1"}

	clients.On("GetByID", ctx, "client-1").Return(client, nil)
	orders.On("ListCreatedOrdersBy", ctx, "client-1").Return([]models.Order{}, nil)
	clients.On("Delete", ctx, "client-1").Return(nil)

	err := svc.DeleteClient(ctx, "client-1")

	assert.NoError(t, err)
	orders.AssertNotCalled(t, "DeleteOrders", mock.Anything, mock.Anything)
}

func TestClientService_DeleteClient_MissingClient(t *testing.T) {
	clients := new(mockClientRepo)
	orders := new(mockClientOrderFacade)
	svc := NewClientService(clients, orders)
	ctx := context.Background()

	clients.On("GetByID", ctx, "ghost").Return(nil, repository.ErrClientNotFound)

	err := svc.DeleteClient(ctx, "ghost")

	assert.Error(t, err)
	clients.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
