package brandservice_test

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
	"gocatalog/internal/service/brandservice"
)

func newTestLogger() logger.Logger {
	return logger.NewLogger("debug")
}

// MockBrandRepository é uma implementação mock da interface BrandRepository
type MockBrandRepository struct {
	mock.Mock
}

func (m *MockBrandRepository) CreateBrand(ctx context.Context, brand domain.Brand) (domain.Brand, error) {
	args := m.Called(ctx, brand)
	return args.Get(0).(domain.Brand), args.Error(1)
}

func (m *MockBrandRepository) GetBrandByID(ctx context.Context, id string) (domain.Brand, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Brand), args.Error(1)
}

func (m *MockBrandRepository) GetAllBrands(ctx context.Context) ([]domain.Brand, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Brand), args.Error(1)
}

func (m *MockBrandRepository) UpdateBrand(ctx context.Context, brand domain.Brand) (domain.Brand, error) {
	args := m.Called(ctx, brand)
	return args.Get(0).(domain.Brand), args.Error(1)
}

func (m *MockBrandRepository) DeleteBrand(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestCreateBrand_Success(t *testing.T) {
	mockRepo := new(MockBrandRepository)
	svc := brandservice.NewService(mockRepo, newTestLogger())

	input := domain.Brand{Title: "Acme", PageTitle: "Produtos Acme"}
	expected := input
	expected.ID = uuid.New().String()

	mockRepo.On("CreateBrand", mock.Anything, input).Return(expected, nil).Once()

	created, err := svc.CreateBrand(context.Background(), input)

	assert.NoError(t, err)
	assert.Equal(t, expected.ID, created.ID)
	mockRepo.AssertExpectations(t)
}

// Marca sem título não chega ao repositório.
func TestCreateBrand_Fail_MissingTitle(t *testing.T) {
	mockRepo := new(MockBrandRepository)
	svc := brandservice.NewService(mockRepo, newTestLogger())

	_, err := svc.CreateBrand(context.Background(), domain.Brand{})

	var vErr *apperror.ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "title")
	mockRepo.AssertNotCalled(t, "CreateBrand")
}

func TestGetBrandByID_Fail_InvalidID(t *testing.T) {
	mockRepo := new(MockBrandRepository)
	svc := brandservice.NewService(mockRepo, newTestLogger())

	_, err := svc.GetBrandByID(context.Background(), "nao-e-uuid")

	var vErr *apperror.ValidationError
	assert.ErrorAs(t, err, &vErr)
	mockRepo.AssertNotCalled(t, "GetBrandByID")
}

func TestGetAllBrands_Fail_RepositoryError(t *testing.T) {
	mockRepo := new(MockBrandRepository)
	svc := brandservice.NewService(mockRepo, newTestLogger())

	mockRepo.On("GetAllBrands", mock.Anything).Return([]domain.Brand(nil), errors.New("conexão recusada")).Once()

	_, err := svc.GetAllBrands(context.Background())

	var iErr *apperror.InternalError
	assert.ErrorAs(t, err, &iErr)
	mockRepo.AssertExpectations(t)
}
