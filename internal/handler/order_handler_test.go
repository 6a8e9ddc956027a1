package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cocodile/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOrderService is a mock implementation of OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) CreateOrder(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderResponse), args.Error(1)
}

func (m *MockOrderService) GetByID(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderResponse), args.Error(1)
}

func (m *MockOrderService) List(ctx context.Context, retailerID, status string) ([]model.Order, error) {
	args := m.Called(ctx, retailerID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func TestOrderHandler_Create(t *testing.T) {
	logger := zerolog.Nop()

	orderID := uuid.New()
	resp := &model.OrderResponse{
		Order: model.Order{ID: orderID, RetailerID: "R001", Status: model.OrderStatusPending, Total: 40.00},
		Items: []model.OrderItem{
			{ID: uuid.New(), OrderID: orderID, ProductID: "P001", Quantity: 2, Price: 10.00, Subtotal: 20.00},
		},
	}

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockOrderService)
		handler := NewOrderHandler(mockService, logger)

		mockService.On("CreateOrder", mock.Anything, mock.MatchedBy(func(req *model.OrderRequest) bool {
			// The retailer id comes from the bearer token, never the body.
			return req.RetailerID == "R001" && len(req.Items) == 1
		})).Return(resp, nil)

		rec := do(handler.Create, http.MethodPost, "/api/orders", "R001", model.OrderRequest{
			Items: []model.OrderItemRequest{{ProductID: "P001", Quantity: 2}},
		})

		assert.Equal(t, http.StatusCreated, rec.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Validation error", func(t *testing.T) {
		mockService := new(MockOrderService)
		handler := NewOrderHandler(mockService, logger)

		mockService.On("CreateOrder", mock.Anything, mock.Anything).
			Return(nil, errors.New("order must contain at least one item"))

		rec := do(handler.Create, http.MethodPost, "/api/orders", "R001", model.OrderRequest{})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Invalid quantity", func(t *testing.T) {
		mockService := new(MockOrderService)
		handler := NewOrderHandler(mockService, logger)

		mockService.On("CreateOrder", mock.Anything, mock.Anything).
			Return(nil, model.ErrInvalidQuantity)

		rec := do(handler.Create, http.MethodPost, "/api/orders", "R001", model.OrderRequest{
			Items: []model.OrderItemRequest{{ProductID: "P001", Quantity: -1}},
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Service failure", func(t *testing.T) {
		mockService := new(MockOrderService)
		handler := NewOrderHandler(mockService, logger)

		mockService.On("CreateOrder", mock.Anything, mock.Anything).
			Return(nil, errors.New("database unavailable"))

		rec := do(handler.Create, http.MethodPost, "/api/orders", "R001", model.OrderRequest{
			Items: []model.OrderItemRequest{{ProductID: "P001", Quantity: 1}},
		})

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("Method not allowed", func(t *testing.T) {
		mockService := new(MockOrderService)
		handler := NewOrderHandler(mockService, logger)

		rec := do(handler.Create, http.MethodGet, "/api/orders", "R001", nil)

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		mockService.AssertNotCalled(t, "CreateOrder")
	})
}

func TestOrderHandler_List(t *testing.T) {
	logger := zerolog.Nop()

	orders := []model.Order{
		{ID: uuid.New(), RetailerID: "R001", Status: model.OrderStatusPending, Total: 100, CreatedAt: time.Now()},
		{ID: uuid.New(), RetailerID: "R001", Status: model.OrderStatusDelivered, Total: 50, CreatedAt: time.Now().Add(-time.Hour)},
	}

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockOrderService)
		handler := NewOrderHandler(mockService, logger)

		mockService.On("List", mock.Anything, "R001", "").Return(orders, nil)

		rec := do(handler.List, http.MethodGet, "/api/orders", "R001", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"total":2`)
		mockService.AssertExpectations(t)
	})

	t.Run("Status filter", func(t *testing.T) {
		mockService := new(MockOrderService)
		handler := NewOrderHandler(mockService, logger)

		mockService.On("List", mock.Anything, "R001", "pending").Return(orders[:1], nil)

		rec := do(handler.List, http.MethodGet, "/api/orders?status=pending", "R001", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Service failure", func(t *testing.T) {
		mockService := new(MockOrderService)
		handler := NewOrderHandler(mockService, logger)

		mockService.On("List", mock.Anything, "R001", "").Return(nil, errors.New("database error"))

		rec := do(handler.List, http.MethodGet, "/api/orders", "R001", nil)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestOrderHandler_GetByID(t *testing.T) {
	logger := zerolog.Nop()

	orderID := uuid.New()
	resp := &model.OrderResponse{
		Order: model.Order{ID: orderID, RetailerID: "R001", Status: model.OrderStatusPending},
	}

	tests := []struct {
		name           string
		method         string
		path           string
		mockID         uuid.UUID
		mockReturn     *model.OrderResponse
		mockError      error
		expectedStatus int
		expectService  bool
	}{
		{
			name:           "Success",
			method:         http.MethodGet,
			path:           "/api/orders/" + orderID.String(),
			mockID:         orderID,
			mockReturn:     resp,
			expectedStatus: http.StatusOK,
			expectService:  true,
		},
		{
			name:           "Order not found",
			method:         http.MethodGet,
			path:           "/api/orders/" + orderID.String(),
			mockID:         orderID,
			expectedStatus: http.StatusNotFound,
			expectService:  true,
		},
		{
			name:           "Invalid order ID format",
			method:         http.MethodGet,
			path:           "/api/orders/not-a-uuid",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Missing order ID",
			method:         http.MethodGet,
			path:           "/api/orders/",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Service error",
			method:         http.MethodGet,
			path:           "/api/orders/" + orderID.String(),
			mockID:         orderID,
			mockError:      errors.New("database error"),
			expectedStatus: http.StatusInternalServerError,
			expectService:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockOrderService)
			handler := NewOrderHandler(mockService, logger)

			if tt.expectService {
				mockService.On("GetByID", mock.Anything, tt.mockID).
					Return(tt.mockReturn, tt.mockError)
			}

			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()

			handler.GetByID(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectService {
				mockService.AssertExpectations(t)
			}
		})
	}
}
