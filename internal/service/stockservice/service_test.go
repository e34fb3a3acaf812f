package stockservice_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gocatalog/internal/domain"
	apperror "gocatalog/internal/errors"
	"gocatalog/internal/pkg/logger"
	"gocatalog/internal/service/stockservice"
)

// MockStockRepository é uma implementação mock da interface StockRepository
type MockStockRepository struct {
	mock.Mock
}

func (m *MockStockRepository) GetStockLevel(ctx context.Context, productID, warehouseID string) (domain.StockLevel, error) {
	args := m.Called(ctx, productID, warehouseID)
	return args.Get(0).(domain.StockLevel), args.Error(1)
}

func (m *MockStockRepository) UpdateStockLevel(ctx context.Context, adjustment domain.StockAdjustmentRequest) (domain.StockLevel, error) {
	args := m.Called(ctx, adjustment)
	return args.Get(0).(domain.StockLevel), args.Error(1)
}

func (m *MockStockRepository) GetStockByProduct(ctx context.Context, productID string) ([]domain.StockLevel, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]domain.StockLevel), args.Error(1)
}

// TestAdjustStock_Success_ExistingStock testa um ajuste de estoque bem-sucedido para um item existente.
func TestAdjustStock_Success_ExistingStock(t *testing.T) {
	mockRepo := new(MockStockRepository)
	svc := stockservice.NewService(mockRepo, logger.NewLogger("debug"))

	productID := uuid.New().String()
	warehouseID := uuid.New().String()
	delta := 5.0

	expectedUpdatedStockLevel := domain.StockLevel{
		ID:          uuid.New().String(),
		ProductID:   productID,
		WarehouseID: warehouseID,
		Quantity:    15,
		Version:     2,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	mockRepo.On("UpdateStockLevel", mock.Anything, mock.AnythingOfType("domain.StockAdjustmentRequest")).
		Return(expectedUpdatedStockLevel, nil)

	adjustment := domain.StockAdjustmentRequest{
		ProductID:   productID,
		WarehouseID: warehouseID,
		Delta:       delta,
	}
	ctx := context.Background()

	result, err := svc.AdjustStock(ctx, adjustment)

	assert.NoError(t, err)
	assert.Equal(t, expectedUpdatedStockLevel.Quantity, result.Quantity)
	assert.Equal(t, expectedUpdatedStockLevel.Version, result.Version)
	assert.NotZero(t, result.UpdatedAt)
	mockRepo.AssertExpectations(t)
}

// TestAdjustStock_Fail_NegativeResultingStock testa a prevenção de estoque negativo.
func TestAdjustStock_Fail_NegativeResultingStock(t *testing.T) {
	mockRepo := new(MockStockRepository)
	svc := stockservice.NewService(mockRepo, logger.NewLogger("debug"))

	mockRepo.On("UpdateStockLevel", mock.Anything, mock.AnythingOfType("domain.StockAdjustmentRequest")).
		Return(domain.StockLevel{}, apperror.NewValidationError("Ajuste resultaria em quantidade de estoque negativa."))

	adjustment := domain.StockAdjustmentRequest{
		ProductID:   uuid.New().String(),
		WarehouseID: uuid.New().String(),
		Delta:       -15,
	}
	ctx := context.Background()

	_, err := svc.AdjustStock(ctx, adjustment)

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	assert.Contains(t, err.Error(), "estoque negativa")
	mockRepo.AssertExpectations(t)
}

// TestAdjustStock_Fail_OCCConflict testa um conflito de concorrência otimista.
func TestAdjustStock_Fail_OCCConflict(t *testing.T) {
	mockRepo := new(MockStockRepository)
	svc := stockservice.NewService(mockRepo, logger.NewLogger("debug"))

	mockRepo.On("UpdateStockLevel", mock.Anything, mock.AnythingOfType("domain.StockAdjustmentRequest")).
		Return(domain.StockLevel{}, apperror.NewConflictError("O estoque foi modificado por outra operação. Tente novamente."))

	adjustment := domain.StockAdjustmentRequest{
		ProductID:   uuid.New().String(),
		WarehouseID: uuid.New().String(),
		Delta:       1,
	}
	ctx := context.Background()

	_, err := svc.AdjustStock(ctx, adjustment)

	assert.Error(t, err)
	assert.IsType(t, &apperror.ConflictError{}, err)
	assert.Contains(t, err.Error(), "concorrência")
	mockRepo.AssertExpectations(t)
}

// TestAdjustStock_Fail_ZeroDelta testa o caso onde o delta é zero.
func TestAdjustStock_Fail_ZeroDelta(t *testing.T) {
	mockRepo := new(MockStockRepository)
	svc := stockservice.NewService(mockRepo, logger.NewLogger("debug"))

	adjustment := domain.StockAdjustmentRequest{
		ProductID:   uuid.New().String(),
		WarehouseID: uuid.New().String(),
		Delta:       0,
	}
	ctx := context.Background()

	_, err := svc.AdjustStock(ctx, adjustment)

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	assert.Contains(t, err.Error(), "não pode ser zero")
	mockRepo.AssertNotCalled(t, "UpdateStockLevel")
}

// TestAdjustStock_Fail_InvalidIDs testa a rejeição de IDs que não são UUIDs.
func TestAdjustStock_Fail_InvalidIDs(t *testing.T) {
	mockRepo := new(MockStockRepository)
	svc := stockservice.NewService(mockRepo, logger.NewLogger("debug"))

	adjustment := domain.StockAdjustmentRequest{
		ProductID:   "not-a-uuid",
		WarehouseID: "also-not-a-uuid",
		Delta:       3,
	}
	ctx := context.Background()

	_, err := svc.AdjustStock(ctx, adjustment)

	assert.Error(t, err)
	vErr, ok := err.(*apperror.ValidationError)
	assert.True(t, ok)
	assert.Contains(t, vErr.Fields, "product_id")
	assert.Contains(t, vErr.Fields, "warehouse_id")
	mockRepo.AssertNotCalled(t, "UpdateStockLevel")
}

// TestAdjustStock_Fail_InternalError testa um erro interno do repositório.
func TestAdjustStock_Fail_InternalError(t *testing.T) {
	mockRepo := new(MockStockRepository)
	svc := stockservice.NewService(mockRepo, logger.NewLogger("debug"))

	repoError := errors.New("falha de conexão com o DB")
	mockRepo.On("UpdateStockLevel", mock.Anything, mock.AnythingOfType("domain.StockAdjustmentRequest")).
		Return(domain.StockLevel{}, repoError)

	adjustment := domain.StockAdjustmentRequest{
		ProductID:   uuid.New().String(),
		WarehouseID: uuid.New().String(),
		Delta:       1,
	}
	ctx := context.Background()

	_, err := svc.AdjustStock(ctx, adjustment)

	assert.Error(t, err)
	assert.IsType(t, &apperror.InternalError{}, err)
	assert.Contains(t, err.Error(), "Falha interna ao ajustar estoque.")
	mockRepo.AssertExpectations(t)
}

// TestGetStockLevel_Success testa a consulta do nível de estoque de um par produto/armazém.
func TestGetStockLevel_Success(t *testing.T) {
	mockRepo := new(MockStockRepository)
	svc := stockservice.NewService(mockRepo, logger.NewLogger("debug"))

	productID := uuid.New().String()
	warehouseID := uuid.New().String()
	expected := domain.StockLevel{
		ID:          uuid.New().String(),
		ProductID:   productID,
		WarehouseID: warehouseID,
		Quantity:    42,
		Version:     3,
	}

	mockRepo.On("GetStockLevel", mock.Anything, productID, warehouseID).Return(expected, nil)

	ctx := context.Background()
	result, err := svc.GetStockLevel(ctx, productID, warehouseID)

	assert.NoError(t, err)
	assert.Equal(t, expected.Quantity, result.Quantity)
	mockRepo.AssertExpectations(t)
}

// TestGetStockLevel_Fail_InvalidProductID testa a rejeição de um product_id inválido.
func TestGetStockLevel_Fail_InvalidProductID(t *testing.T) {
	mockRepo := new(MockStockRepository)
	svc := stockservice.NewService(mockRepo, logger.NewLogger("debug"))

	ctx := context.Background()
	_, err := svc.GetStockLevel(ctx, "bogus", uuid.New().String())

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	mockRepo.AssertNotCalled(t, "GetStockLevel")
}

// TestGetStockByProduct_Success testa a listagem de estoque de um produto em todos os armazéns.
func TestGetStockByProduct_Success(t *testing.T) {
	mockRepo := new(MockStockRepository)
	svc := stockservice.NewService(mockRepo, logger.NewLogger("debug"))

	productID := uuid.New().String()
	expected := []domain.StockLevel{
		{ID: uuid.New().String(), ProductID: productID, WarehouseID: uuid.New().String(), Quantity: 10},
		{ID: uuid.New().String(), ProductID: productID, WarehouseID: uuid.New().String(), Quantity: 4, Price: 19.9},
	}

	mockRepo.On("GetStockByProduct", mock.Anything, productID).Return(expected, nil)

	ctx := context.Background()
	results, err := svc.GetStockByProduct(ctx, productID)

	assert.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, expected[1].Price, results[1].Price)
	mockRepo.AssertExpectations(t)
}
