package handler

import (
	"context"
	"net/http"
	"testing"

	"cocodile/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockWholesalerService is a mock implementation of WholesalerService.
type MockWholesalerService struct {
	mock.Mock
}

func (m *MockWholesalerService) ValidateCode(ctx context.Context, code string) (*model.Wholesaler, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Wholesaler), args.Error(1)
}

func TestWholesalerHandler_ValidateCode(t *testing.T) {
	logger := zerolog.Nop()

	wholesaler := &model.Wholesaler{ID: "W001", Name: "Acme Pharma", Code: "ACME2026"}

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockWholesalerService)
		handler := NewWholesalerHandler(mockService, logger)

		mockService.On("ValidateCode", mock.Anything, "ACME2026").Return(wholesaler, nil)

		rec := do(handler.ValidateCode, http.MethodPost, "/api/wholesalers/validate-code", "R001",
			validateCodeRequest{Code: "ACME2026"})

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"valid":true`)
		assert.Contains(t, rec.Body.String(), "W001")
		mockService.AssertExpectations(t)
	})

	t.Run("Invalid code", func(t *testing.T) {
		mockService := new(MockWholesalerService)
		handler := NewWholesalerHandler(mockService, logger)

		mockService.On("ValidateCode", mock.Anything, "BOGUS123").Return(nil, model.ErrInvalidAccessCode)

		rec := do(handler.ValidateCode, http.MethodPost, "/api/wholesalers/validate-code", "R001",
			validateCodeRequest{Code: "BOGUS123"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Missing code", func(t *testing.T) {
		mockService := new(MockWholesalerService)
		handler := NewWholesalerHandler(mockService, logger)

		rec := do(handler.ValidateCode, http.MethodPost, "/api/wholesalers/validate-code", "R001",
			validateCodeRequest{})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockService.AssertNotCalled(t, "ValidateCode")
	})

	t.Run("Method not allowed", func(t *testing.T) {
		mockService := new(MockWholesalerService)
		handler := NewWholesalerHandler(mockService, logger)

		rec := do(handler.ValidateCode, http.MethodGet, "/api/wholesalers/validate-code", "R001", nil)

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}
