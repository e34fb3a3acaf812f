package brandservice

import (
	"context"

	"github.com/google/uuid"

	"gocatalog/internal/domain"
	apperror "gocatalog/internal/errors"
	"gocatalog/internal/pkg/logger"
	"gocatalog/internal/pkg/validate"
)

// BrandRepository define o contrato que o Serviço de Marcas espera da camada de Persistência.
type BrandRepository interface {
	CreateBrand(ctx context.Context, brand domain.Brand) (domain.Brand, error)
	GetBrandByID(ctx context.Context, id string) (domain.Brand, error)
	GetAllBrands(ctx context.Context) ([]domain.Brand, error)
	UpdateBrand(ctx context.Context, brand domain.Brand) (domain.Brand, error)
	DeleteBrand(ctx context.Context, id string) error
}

// Service implementa a lógica de negócio de marcas.
type Service struct {
	repo   BrandRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Marcas.
func NewService(repo BrandRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateBrand cria uma nova marca após validações de negócio.
func (s *Service) CreateBrand(ctx domain.Context, brand domain.Brand) (domain.Brand, error) {
	if fields := validate.Struct(brand); len(fields) > 0 {
		s.logger.Warn("Falha na validação da marca.", map[string]interface{}{"title": brand.Title})
		return domain.Brand{}, apperror.NewFieldValidationError(fields)
	}

	ctxGo, ok := ctx.(context.Context)
	if !ok {
		ctxGo = context.Background()
		s.logger.Warn("Contexto de domínio inválido, usando context.Background() para CreateBrand", nil)
	}

	created, err := s.repo.CreateBrand(ctxGo, brand)
	if err != nil {
		s.logger.Error("Falha ao criar marca no repositório.", err)
		return domain.Brand{}, apperror.NewInternalError("Falha interna ao criar marca.", err)
	}

	s.logger.Info("Marca criada com sucesso.", map[string]interface{}{"id": created.ID, "title": created.Title})
	return created, nil
}

// GetBrandByID busca uma marca pelo ID após validação de formato.
func (s *Service) GetBrandByID(ctx domain.Context, id string) (domain.Brand, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.Brand{}, apperror.NewValidationError("O ID da marca deve ser um UUID válido.")
	}

	ctxGo, ok := ctx.(context.Context)
	if !ok {
		ctxGo = context.Background()
		s.logger.Warn("Contexto de domínio inválido, usando context.Background() para GetBrandByID", nil)
	}

	brand, err := s.repo.GetBrandByID(ctxGo, id)
	if err != nil {
		return domain.Brand{}, err // Erros do repositório já são NotFoundError ou DBError
	}
	return brand, nil
}

// GetAllBrands lista todas as marcas do catálogo.
func (s *Service) GetAllBrands(ctx domain.Context) ([]domain.Brand, error) {
	ctxGo, ok := ctx.(context.Context)
	if !ok {
		ctxGo = context.Background()
		s.logger.Warn("Contexto de domínio inválido, usando context.Background() para GetAllBrands", nil)
	}

	brands, err := s.repo.GetAllBrands(ctxGo)
	if err != nil {
		s.logger.Error("Falha ao buscar marcas no repositório.", err)
		return nil, apperror.NewInternalError("Falha interna ao buscar marcas.", err)
	}
	return brands, nil
}

// UpdateBrand atualiza uma marca existente.
func (s *Service) UpdateBrand(ctx domain.Context, brand domain.Brand) (domain.Brand, error) {
	if _, err := uuid.Parse(brand.ID); err != nil {
		return domain.Brand{}, apperror.NewValidationError("O ID da marca deve ser um UUID válido.")
	}
	if fields := validate.Struct(brand); len(fields) > 0 {
		return domain.Brand{}, apperror.NewFieldValidationError(fields)
	}

	ctxGo, ok := ctx.(context.Context)
	if !ok {
		ctxGo = context.Background()
		s.logger.Warn("Contexto de domínio inválido, usando context.Background() para UpdateBrand", nil)
	}

	updated, err := s.repo.UpdateBrand(ctxGo, brand)
	if err != nil {
		s.logger.Error("Falha ao atualizar marca no repositório.", err)
		return domain.Brand{}, err
	}

	s.logger.Info("Marca atualizada com sucesso.", map[string]interface{}{"id": updated.ID})
	return updated, nil
}

// DeleteBrand remove uma marca.
func (s *Service) DeleteBrand(ctx domain.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperror.NewValidationError("O ID da marca deve ser um UUID válido.")
	}

	ctxGo, ok := ctx.(context.Context)
	if !ok {
		ctxGo = context.Background()
		s.logger.Warn("Contexto de domínio inválido, usando context.Background() para DeleteBrand", nil)
	}

	if err := s.repo.DeleteBrand(ctxGo, id); err != nil {
		s.logger.Error("Falha ao deletar marca no repositório.", err)
		return err
	}

	s.logger.Info("Marca deletada com sucesso.", map[string]interface{}{"id": id})
	return nil
}
