package unitservice

import (
	"context"

	"github.com/google/uuid"

	"gocatalog/internal/domain"
	apperror "gocatalog/internal/errors"
	"gocatalog/internal/pkg/logger"
	"gocatalog/internal/pkg/validate"
)

// UnitRepository define o contrato que o Serviço de Unidades espera da camada de Persistência.
type UnitRepository interface {
	CreateUnit(ctx context.Context, unit domain.Unit) (domain.Unit, error)
	GetUnitByID(ctx context.Context, id string) (domain.Unit, error)
	GetAllUnits(ctx context.Context) ([]domain.Unit, error)
	UpdateUnit(ctx context.Context, unit domain.Unit) (domain.Unit, error)
	DeleteUnit(ctx context.Context, id string) error
}

// Service implementa a lógica de negócio de unidades de medida.
type Service struct {
	repo   UnitRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Unidades.
func NewService(repo UnitRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateUnit cria uma nova unidade. Unidades derivadas exigem operador e valor de operação.
func (s *Service) CreateUnit(ctx domain.Context, unit domain.Unit) (domain.Unit, error) {
	if fields := validateUnit(unit); len(fields) > 0 {
		s.logger.Warn("Falha na validação da unidade.", map[string]interface{}{"code": unit.Code})
		return domain.Unit{}, apperror.NewFieldValidationError(fields)
	}

	ctxGo, ok := ctx.(context.Context)
	if !ok {
		ctxGo = context.Background()
		s.logger.Warn("Contexto de domínio inválido, usando context.Background() para CreateUnit", nil)
	}

	created, err := s.repo.CreateUnit(ctxGo, unit)
	if err != nil {
		s.logger.Error("Falha ao criar unidade no repositório.", err)
		return domain.Unit{}, apperror.NewInternalError("Falha interna ao criar unidade.", err)
	}

	s.logger.Info("Unidade criada com sucesso.", map[string]interface{}{"id": created.ID, "code": created.Code})
	return created, nil
}

// GetUnitByID busca uma unidade pelo ID.
func (s *Service) GetUnitByID(ctx domain.Context, id string) (domain.Unit, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.Unit{}, apperror.NewValidationError("O ID da unidade deve ser um UUID válido.")
	}

	ctxGo, ok := ctx.(context.Context)
	if !ok {
		ctxGo = context.Background()
		s.logger.Warn("Contexto de domínio inválido, usando context.Background() para GetUnitByID", nil)
	}

	return s.repo.GetUnitByID(ctxGo, id)
}

// GetAllUnits lista todas as unidades cadastradas.
func (s *Service) GetAllUnits(ctx domain.Context) ([]domain.Unit, error) {
	ctxGo, ok := ctx.(context.Context)
	if !ok {
		ctxGo = context.Background()
		s.logger.Warn("Contexto de domínio inválido, usando context.Background() para GetAllUnits", nil)
	}

	units, err := s.repo.GetAllUnits(ctxGo)
	if err != nil {
		s.logger.Error("Falha ao buscar unidades no repositório.", err)
		return nil, apperror.NewInternalError("Falha interna ao buscar unidades.", err)
	}
	return units, nil
}

// UpdateUnit atualiza uma unidade existente.
func (s *Service) UpdateUnit(ctx domain.Context, unit domain.Unit) (domain.Unit, error) {
	if _, err := uuid.Parse(unit.ID); err != nil {
		return domain.Unit{}, apperror.NewValidationError("O ID da unidade deve ser um UUID válido.")
	}
	if fields := validateUnit(unit); len(fields) > 0 {
		return domain.Unit{}, apperror.NewFieldValidationError(fields)
	}

	ctxGo, ok := ctx.(context.Context)
	if !ok {
		ctxGo = context.Background()
		s.logger.Warn("Contexto de domínio inválido, usando context.Background() para UpdateUnit", nil)
	}

	updated, err := s.repo.UpdateUnit(ctxGo, unit)
	if err != nil {
		s.logger.Error("Falha ao atualizar unidade no repositório.", err)
		return domain.Unit{}, err
	}

	s.logger.Info("Unidade atualizada com sucesso.", map[string]interface{}{"id": updated.ID})
	return updated, nil
}

// DeleteUnit remove uma unidade.
func (s *Service) DeleteUnit(ctx domain.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperror.NewValidationError("O ID da unidade deve ser um UUID válido.")
	}

	ctxGo, ok := ctx.(context.Context)
	if !ok {
		ctxGo = context.Background()
		s.logger.Warn("Contexto de domínio inválido, usando context.Background() para DeleteUnit", nil)
	}

	if err := s.repo.DeleteUnit(ctxGo, id); err != nil {
		s.logger.Error("Falha ao deletar unidade no repositório.", err)
		return err
	}

	s.logger.Info("Unidade deletada com sucesso.", map[string]interface{}{"id": id})
	return nil
}

// validateUnit aplica as regras de tags e a regra de unidade derivada.
func validateUnit(unit domain.Unit) map[string]string {
	fields := validate.Struct(unit)
	if unit.BaseUnitID != "" {
		if fields == nil {
			fields = map[string]string{}
		}
		if unit.Operator != domain.UnitMultiply && unit.Operator != domain.UnitDivide {
			fields["operator"] = "Operator is required for derived units"
		}
		if unit.OperationValue <= 0 {
			fields["operation_value"] = "Operation value must be greater than zero for derived units"
		}
		if len(fields) == 0 {
			fields = nil
		}
	}
	return fields
}
