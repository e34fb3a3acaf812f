package categoryservice

import (
	"context"

	"github.com/google/uuid"

	"gocatalog/internal/domain"
	apperror "gocatalog/internal/errors"
	"gocatalog/internal/pkg/logger"
	"gocatalog/internal/pkg/validate"
)

// CategoryRepository define o contrato que o Serviço de Categorias espera da camada de Persistência.
type CategoryRepository interface {
	CreateCategory(ctx context.Context, category domain.Category) (domain.Category, error)
	GetCategoryByID(ctx context.Context, id string) (domain.Category, error)
	GetAllCategories(ctx context.Context) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, category domain.Category) (domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

// Service implementa a lógica de negócio de categorias.
type Service struct {
	repo   CategoryRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Categorias.
func NewService(repo CategoryRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateCategory cria uma nova categoria. ParentID, quando presente, precisa ser um UUID válido.
func (s *Service) CreateCategory(ctx domain.Context, category domain.Category) (domain.Category, error) {
	if fields := s.validateCategory(category); len(fields) > 0 {
		s.logger.Warn("Falha na validação da categoria.", map[string]interface{}{"name": category.Name})
		return domain.Category{}, apperror.NewFieldValidationError(fields)
	}

	ctxGo, ok := ctx.(context.Context)
	if !ok {
		ctxGo = context.Background()
		s.logger.Warn("Contexto de domínio inválido, usando context.Background() para CreateCategory", nil)
	}

	created, err := s.repo.CreateCategory(ctxGo, category)
	if err != nil {
		s.logger.Error("Falha ao criar categoria no repositório.", err)
		return domain.Category{}, apperror.NewInternalError("Falha interna ao criar categoria.", err)
	}

	s.logger.Info("Categoria criada com sucesso.", map[string]interface{}{"id": created.ID, "name": created.Name})
	return created, nil
}

// GetCategoryByID busca uma categoria pelo ID.
func (s *Service) GetCategoryByID(ctx domain.Context, id string) (domain.Category, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.Category{}, apperror.NewValidationError("O ID da categoria deve ser um UUID válido.")
	}

	ctxGo, ok := ctx.(context.Context)
	if !ok {
		ctxGo = context.Background()
		s.logger.Warn("Contexto de domínio inválido, usando context.Background() para GetCategoryByID", nil)
	}

	return s.repo.GetCategoryByID(ctxGo, id)
}

// GetAllCategories lista todas as categorias, incluindo subcategorias.
func (s *Service) GetAllCategories(ctx domain.Context) ([]domain.Category, error) {
	ctxGo, ok := ctx.(context.Context)
	if !ok {
		ctxGo = context.Background()
		s.logger.Warn("Contexto de domínio inválido, usando context.Background() para GetAllCategories", nil)
	}

	categories, err := s.repo.GetAllCategories(ctxGo)
	if err != nil {
		s.logger.Error("Falha ao buscar categorias no repositório.", err)
		return nil, apperror.NewInternalError("Falha interna ao buscar categorias.", err)
	}
	return categories, nil
}

// UpdateCategory atualiza uma categoria existente.
func (s *Service) UpdateCategory(ctx domain.Context, category domain.Category) (domain.Category, error) {
	if _, err := uuid.Parse(category.ID); err != nil {
		return domain.Category{}, apperror.NewValidationError("O ID da categoria deve ser um UUID válido.")
	}
	if fields := s.validateCategory(category); len(fields) > 0 {
		return domain.Category{}, apperror.NewFieldValidationError(fields)
	}
	if category.ParentID != "" && category.ParentID == category.ID {
		return domain.Category{}, apperror.NewValidationError("Uma categoria não pode ser pai de si mesma.")
	}

	ctxGo, ok := ctx.(context.Context)
	if !ok {
		ctxGo = context.Background()
		s.logger.Warn("Contexto de domínio inválido, usando context.Background() para UpdateCategory", nil)
	}

	updated, err := s.repo.UpdateCategory(ctxGo, category)
	if err != nil {
		s.logger.Error("Falha ao atualizar categoria no repositório.", err)
		return domain.Category{}, err
	}

	s.logger.Info("Categoria atualizada com sucesso.", map[string]interface{}{"id": updated.ID})
	return updated, nil
}

// DeleteCategory remove uma categoria.
func (s *Service) DeleteCategory(ctx domain.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperror.NewValidationError("O ID da categoria deve ser um UUID válido.")
	}

	ctxGo, ok := ctx.(context.Context)
	if !ok {
		ctxGo = context.Background()
		s.logger.Warn("Contexto de domínio inválido, usando context.Background() para DeleteCategory", nil)
	}

	if err := s.repo.DeleteCategory(ctxGo, id); err != nil {
		s.logger.Error("Falha ao deletar categoria no repositório.", err)
		return err
	}

	s.logger.Info("Categoria deletada com sucesso.", map[string]interface{}{"id": id})
	return nil
}

func (s *Service) validateCategory(category domain.Category) map[string]string {
	fields := validate.Struct(category)
	if category.ParentID != "" {
		if _, err := uuid.Parse(category.ParentID); err != nil {
			if fields == nil {
				fields = map[string]string{}
			}
			fields["parent_id"] = "Parent category must be a valid category"
		}
	}
	return fields
}
