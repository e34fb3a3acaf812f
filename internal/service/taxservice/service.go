package taxservice

import (
	"context"

	"github.com/google/uuid"

	"gocatalog/internal/domain"
	apperror "gocatalog/internal/errors"
	"gocatalog/internal/pkg/logger"
	"gocatalog/internal/pkg/validate"
)

// TaxRepository define o contrato que o Serviço de Impostos espera da camada de Persistência.
type TaxRepository interface {
	CreateTax(ctx context.Context, tax domain.Tax) (domain.Tax, error)
	GetTaxByID(ctx context.Context, id string) (domain.Tax, error)
	GetAllTaxes(ctx context.Context) ([]domain.Tax, error)
	UpdateTax(ctx context.Context, tax domain.Tax) (domain.Tax, error)
	DeleteTax(ctx context.Context, id string) error
}

// Service implementa a lógica de negócio de alíquotas de imposto.
type Service struct {
	repo   TaxRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Impostos.
func NewService(repo TaxRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateTax cria uma nova alíquota de imposto.
func (s *Service) CreateTax(ctx domain.Context, tax domain.Tax) (domain.Tax, error) {
	if fields := validate.Struct(tax); len(fields) > 0 {
		s.logger.Warn("Falha na validação do imposto.", map[string]interface{}{"name": tax.Name})
		return domain.Tax{}, apperror.NewFieldValidationError(fields)
	}

	ctxGo, ok := ctx.(context.Context)
	if !ok {
		ctxGo = context.Background()
		s.logger.Warn("Contexto de domínio inválido, usando context.Background() para CreateTax", nil)
	}

	created, err := s.repo.CreateTax(ctxGo, tax)
	if err != nil {
		s.logger.Error("Falha ao criar imposto no repositório.", err)
		return domain.Tax{}, apperror.NewInternalError("Falha interna ao criar imposto.", err)
	}

	s.logger.Info("Imposto criado com sucesso.", map[string]interface{}{"id": created.ID, "name": created.Name})
	return created, nil
}

// GetTaxByID busca uma alíquota pelo ID.
func (s *Service) GetTaxByID(ctx domain.Context, id string) (domain.Tax, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.Tax{}, apperror.NewValidationError("O ID do imposto deve ser um UUID válido.")
	}

	ctxGo, ok := ctx.(context.Context)
	if !ok {
		ctxGo = context.Background()
		s.logger.Warn("Contexto de domínio inválido, usando context.Background() para GetTaxByID", nil)
	}

	return s.repo.GetTaxByID(ctxGo, id)
}

// GetAllTaxes lista todas as alíquotas cadastradas.
func (s *Service) GetAllTaxes(ctx domain.Context) ([]domain.Tax, error) {
	ctxGo, ok := ctx.(context.Context)
	if !ok {
		ctxGo = context.Background()
		s.logger.Warn("Contexto de domínio inválido, usando context.Background() para GetAllTaxes", nil)
	}

	taxes, err := s.repo.GetAllTaxes(ctxGo)
	if err != nil {
		s.logger.Error("Falha ao buscar impostos no repositório.", err)
		return nil, apperror.NewInternalError("Falha interna ao buscar impostos.", err)
	}
	return taxes, nil
}

// UpdateTax atualiza uma alíquota existente.
func (s *Service) UpdateTax(ctx domain.Context, tax domain.Tax) (domain.Tax, error) {
	if _, err := uuid.Parse(tax.ID); err != nil {
		return domain.Tax{}, apperror.NewValidationError("O ID do imposto deve ser um UUID válido.")
	}
	if fields := validate.Struct(tax); len(fields) > 0 {
		return domain.Tax{}, apperror.NewFieldValidationError(fields)
	}

	ctxGo, ok := ctx.(context.Context)
	if !ok {
		ctxGo = context.Background()
		s.logger.Warn("Contexto de domínio inválido, usando context.Background() para UpdateTax", nil)
	}

	updated, err := s.repo.UpdateTax(ctxGo, tax)
	if err != nil {
		s.logger.Error("Falha ao atualizar imposto no repositório.", err)
		return domain.Tax{}, err
	}

	s.logger.Info("Imposto atualizado com sucesso.", map[string]interface{}{"id": updated.ID})
	return updated, nil
}

// DeleteTax remove uma alíquota.
func (s *Service) DeleteTax(ctx domain.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperror.NewValidationError("O ID do imposto deve ser um UUID válido.")
	}

	ctxGo, ok := ctx.(context.Context)
	if !ok {
		ctxGo = context.Background()
		s.logger.Warn("Contexto de domínio inválido, usando context.Background() para DeleteTax", nil)
	}

	if err := s.repo.DeleteTax(ctxGo, id); err != nil {
		s.logger.Error("Falha ao deletar imposto no repositório.", err)
		return err
	}

	s.logger.Info("Imposto deletado com sucesso.", map[string]interface{}{"id": id})
	return nil
}
