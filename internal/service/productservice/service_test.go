package productservice_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gocatalog/internal/domain"
	apperror "gocatalog/internal/errors"
	"gocatalog/internal/pkg/logger"
	"gocatalog/internal/service/productservice"
)

// MockProductRepository é uma implementação mock da interface ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Save(ctx context.Context, product domain.Product) (domain.Product, error) {
	args := m.Called(ctx, product)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id string) (domain.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, product domain.Product) (domain.Product, error) {
	args := m.Called(ctx, product)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProductRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestLogger() logger.Logger {
	return logger.NewLogger("debug")
}

func TestCreateProduct_Success(t *testing.T) {
	mockRepo := new(MockProductRepository)
	svc := productservice.NewService(mockRepo, newTestLogger())

	input := validProduct()

	mockRepo.On("Save", mock.Anything, mock.AnythingOfType("domain.Product")).Return(input, nil)

	ctx := context.Background()
	_, err := svc.CreateProduct(ctx, input)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// O serviço deve ter gerado um ID antes de salvar
	saved := mockRepo.Calls[0].Arguments.Get(1).(domain.Product)
	_, parseErr := uuid.Parse(saved.ID)
	assert.NoError(t, parseErr)
}

// TestCreateProduct_AppliesInvariantsBeforeSave: o agregado entregue ao
// repositório já passou pelo redutor de invariantes.
func TestCreateProduct_AppliesInvariantsBeforeSave(t *testing.T) {
	mockRepo := new(MockProductRepository)
	svc := productservice.NewService(mockRepo, newTestLogger())

	input := validProduct()
	input.IsBatch = true
	input.IsVariant = true
	input.Featured = true
	input.IsInitialStock = true

	mockRepo.On("Save", mock.Anything, mock.AnythingOfType("domain.Product")).Return(input, nil)

	_, err := svc.CreateProduct(context.Background(), input)
	assert.NoError(t, err)

	saved := mockRepo.Calls[0].Arguments.Get(1).(domain.Product)
	assert.True(t, saved.IsBatch)
	assert.False(t, saved.IsVariant)
	assert.False(t, saved.Featured)
	assert.False(t, saved.IsInitialStock)
}

// TestCreateProduct_RecomputesComboSubtotals: todo subtotal de linha está
// consistente com a fórmula ao chegar na persistência.
func TestCreateProduct_RecomputesComboSubtotals(t *testing.T) {
	mockRepo := new(MockProductRepository)
	svc := productservice.NewService(mockRepo, newTestLogger())

	input := validProduct()
	input.Type = domain.ProductTypeCombo
	input.ComboProducts = []domain.ComboLine{
		{ProductID: "p1", Quantity: 2, UnitPrice: 10, WastagePercent: 5, Subtotal: 999}, // subtotal inconsistente de propósito
	}

	mockRepo.On("Save", mock.Anything, mock.AnythingOfType("domain.Product")).Return(input, nil)

	_, err := svc.CreateProduct(context.Background(), input)
	assert.NoError(t, err)

	saved := mockRepo.Calls[0].Arguments.Get(1).(domain.Product)
	assert.Len(t, saved.ComboProducts, 1)
	assert.InDelta(t, 21.0, saved.ComboProducts[0].Subtotal, 1e-9)
}

// TestCreateProduct_DropsComboLinesForNonCombo: linhas de combo só têm
// sentido quando type = combo.
func TestCreateProduct_DropsComboLinesForNonCombo(t *testing.T) {
	mockRepo := new(MockProductRepository)
	svc := productservice.NewService(mockRepo, newTestLogger())

	input := validProduct()
	input.ComboProducts = []domain.ComboLine{{ProductID: "p1", Quantity: 1, UnitPrice: 5}}

	mockRepo.On("Save", mock.Anything, mock.AnythingOfType("domain.Product")).Return(input, nil)

	_, err := svc.CreateProduct(context.Background(), input)
	assert.NoError(t, err)

	saved := mockRepo.Calls[0].Arguments.Get(1).(domain.Product)
	assert.Empty(t, saved.ComboProducts)
}

func TestCreateProduct_ValidationFailureDoesNotTouchRepo(t *testing.T) {
	mockRepo := new(MockProductRepository)
	svc := productservice.NewService(mockRepo, newTestLogger())

	input := validProduct()
	input.Name = ""
	input.Type = domain.ProductTypeDigital // sem arquivo

	_, err := svc.CreateProduct(context.Background(), input)

	assert.Error(t, err)
	var vErr *apperror.ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Product name is required", vErr.Fields["name"])
	assert.Equal(t, "File is required for digital products", vErr.Fields["file"])
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestGetProductByID_InvalidUUID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	svc := productservice.NewService(mockRepo, newTestLogger())

	_, err := svc.GetProductByID(context.Background(), "não-é-uuid")

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	mockRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestGetProducts_ClampsPagination(t *testing.T) {
	mockRepo := new(MockProductRepository)
	svc := productservice.NewService(mockRepo, newTestLogger())

	expectedFilter := domain.ProductFilter{Page: 1, Limit: 100}
	mockRepo.On("FindAll", mock.Anything, expectedFilter).Return([]domain.Product{}, nil)

	_, err := svc.GetProducts(context.Background(), domain.ProductFilter{Page: 0, Limit: 500})

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestGetProducts_DefaultLimit(t *testing.T) {
	mockRepo := new(MockProductRepository)
	svc := productservice.NewService(mockRepo, newTestLogger())

	// Sem limit na querystring o filtro chega com Limit 0; a listagem
	// padrão deve usar a página de 10 em vez de LIMIT 0 no banco.
	expectedFilter := domain.ProductFilter{Page: 1, Limit: 10}
	mockRepo.On("FindAll", mock.Anything, expectedFilter).Return([]domain.Product{}, nil)

	_, err := svc.GetProducts(context.Background(), domain.ProductFilter{})

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestGetProducts_RepoErrorBecomesInternal(t *testing.T) {
	mockRepo := new(MockProductRepository)
	svc := productservice.NewService(mockRepo, newTestLogger())

	repoError := errors.New("database connection lost")
	mockRepo.On("FindAll", mock.Anything, mock.Anything).Return([]domain.Product{}, repoError)

	_, err := svc.GetProducts(context.Background(), domain.ProductFilter{Page: 1, Limit: 10})

	assert.Error(t, err)
	assert.IsType(t, &apperror.InternalError{}, err)
	assert.Contains(t, err.Error(), "Falha interna ao buscar produtos.")
}

func TestUpdateProduct_RequiresValidID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	svc := productservice.NewService(mockRepo, newTestLogger())

	input := validProduct()
	input.ID = "123"

	_, err := svc.UpdateProduct(context.Background(), input)

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeleteProduct_PropagatesNotFound(t *testing.T) {
	mockRepo := new(MockProductRepository)
	svc := productservice.NewService(mockRepo, newTestLogger())

	id := uuid.New().String()
	notFound := apperror.NewNotFoundError("produto não existe")
	mockRepo.On("Delete", mock.Anything, id).Return(notFound)

	err := svc.DeleteProduct(context.Background(), id)

	assert.Error(t, err)
	assert.IsType(t, &apperror.NotFoundError{}, err)
	mockRepo.AssertExpectations(t)
}

func TestGenerateCode_Format(t *testing.T) {
	code := productservice.GenerateCode()
	assert.Len(t, code, 11)
	assert.Equal(t, "PRD-", code[:4])
	for _, c := range code[4:] {
		assert.True(t, (c >= '0' && c <= '9') || (c >= 'A' && c <= 'Z'), "caractere inesperado: %c", c)
	}
}
