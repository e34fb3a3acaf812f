package userservice_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"gocatalog/internal/domain"
	apperror "gocatalog/internal/errors"
	"gocatalog/internal/pkg/token"
	"gocatalog/internal/service/userservice"
)

// MockUserRepository é uma implementação mock da interface domain.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Save(ctx domain.Context, user domain.User) (domain.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx domain.Context, email string) (domain.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.User), args.Error(1)
}

// MockTokenService é uma implementação mock da interface TokenService
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateToken(userID string, userRole string) (string, error) {
	args := m.Called(userID, userRole)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) ValidateToken(tokenString string) (*token.CustomClaims, error) {
	args := m.Called(tokenString)
	claims, _ := args.Get(0).(*token.CustomClaims)
	return claims, args.Error(1)
}

func TestRegister_Success(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := userservice.NewService(mockRepo, new(MockTokenService))

	registration := domain.UserRegistration{Email: "maria@example.com", Password: "senhaforte1"}

	// A senha nunca chega em claro ao repositório; o hash gerado deve
	// verificar contra a senha original e o papel padrão é "user".
	mockRepo.On("Save", mock.Anything, mock.MatchedBy(func(u domain.User) bool {
		if u.Email != registration.Email || u.Role != domain.RoleUser {
			return false
		}
		return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(registration.Password)) == nil
	})).Return(domain.User{ID: uuid.New().String(), Email: registration.Email, Role: domain.RoleUser}, nil).Once()

	user, err := svc.Register(context.Background(), registration)

	assert.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	mockRepo.AssertExpectations(t)
}

func TestRegister_Fail_ShortPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := userservice.NewService(mockRepo, new(MockTokenService))

	_, err := svc.Register(context.Background(), domain.UserRegistration{Email: "maria@example.com", Password: "curta"})

	var vErr *apperror.ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "password")
	mockRepo.AssertNotCalled(t, "Save")
}

// E-mail já cadastrado vira conflito de negócio, não erro interno.
func TestRegister_Fail_DuplicateEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := userservice.NewService(mockRepo, new(MockTokenService))

	dbErr := apperror.NewInternalError("Falha ao salvar usuário", nil)
	mockRepo.On("Save", mock.Anything, mock.Anything).Return(domain.User{}, dbErr).Once()

	_, err := svc.Register(context.Background(), domain.UserRegistration{Email: "maria@example.com", Password: "senhaforte1"})

	var cErr *apperror.ConflictError
	assert.ErrorAs(t, err, &cErr)
	assert.Contains(t, err.Error(), "maria@example.com")
}

func TestLogin_Success(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockToken := new(MockTokenService)
	svc := userservice.NewService(mockRepo, mockToken)

	hash, _ := bcrypt.GenerateFromPassword([]byte("senhaforte1"), bcrypt.MinCost)
	user := domain.User{ID: uuid.New().String(), Email: "maria@example.com", PasswordHash: string(hash), Role: domain.RoleManager}

	mockRepo.On("FindByEmail", mock.Anything, user.Email).Return(user, nil).Once()
	mockToken.On("GenerateToken", user.ID, "manager").Return("token-assinado", nil).Once()

	tokenString, err := svc.Login(context.Background(), user.Email, "senhaforte1")

	assert.NoError(t, err)
	assert.Equal(t, "token-assinado", tokenString)
	mockRepo.AssertExpectations(t)
	mockToken.AssertExpectations(t)
}

func TestLogin_Fail_WrongPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockToken := new(MockTokenService)
	svc := userservice.NewService(mockRepo, mockToken)

	hash, _ := bcrypt.GenerateFromPassword([]byte("senhaforte1"), bcrypt.MinCost)
	user := domain.User{ID: uuid.New().String(), Email: "maria@example.com", PasswordHash: string(hash)}

	mockRepo.On("FindByEmail", mock.Anything, user.Email).Return(user, nil).Once()

	_, err := svc.Login(context.Background(), user.Email, "senha-errada")

	var uErr *apperror.UnauthorizedError
	assert.ErrorAs(t, err, &uErr)
	mockToken.AssertNotCalled(t, "GenerateToken")
}

// Usuário inexistente também responde credenciais inválidas.
func TestLogin_Fail_UnknownEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := userservice.NewService(mockRepo, new(MockTokenService))

	mockRepo.On("FindByEmail", mock.Anything, "ninguem@example.com").
		Return(domain.User{}, apperror.NewNotFoundError("Usuário não encontrado")).Once()

	_, err := svc.Login(context.Background(), "ninguem@example.com", "qualquer-senha")

	var uErr *apperror.UnauthorizedError
	assert.ErrorAs(t, err, &uErr)
}
