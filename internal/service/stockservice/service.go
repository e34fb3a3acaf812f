package stockservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"gocatalog/internal/domain"
	apperror "gocatalog/internal/errors"
	"gocatalog/internal/pkg/logger"
	"gocatalog/internal/pkg/validate"
)

// StockRepository define o contrato que o Serviço de Estoque espera da camada de Persistência.
type StockRepository interface {
	GetStockLevel(ctx context.Context, productID, warehouseID string) (domain.StockLevel, error)
	UpdateStockLevel(ctx context.Context, adjustment domain.StockAdjustmentRequest) (domain.StockLevel, error)
	GetStockByProduct(ctx context.Context, productID string) ([]domain.StockLevel, error)
}

// Service implementa a lógica de negócio de níveis de estoque por armazém.
type Service struct {
	repo   StockRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Estoque.
func NewService(repo StockRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// AdjustStock aplica um ajuste ao nível de estoque de um produto em um armazém.
// O repositório usa controle de concorrência otimista; conflitos viram ConflictError.
func (s *Service) AdjustStock(ctx domain.Context, adjustment domain.StockAdjustmentRequest) (domain.StockLevel, error) {
	s.logger.Debug("Iniciando ajuste de estoque no serviço.", map[string]interface{}{
		"product_id":   adjustment.ProductID,
		"warehouse_id": adjustment.WarehouseID,
		"delta":        adjustment.Delta,
	})

	if fields := validate.Struct(adjustment); len(fields) > 0 {
		return domain.StockLevel{}, apperror.NewFieldValidationError(fields)
	}
	if adjustment.Delta == 0 {
		return domain.StockLevel{}, apperror.NewValidationError("O ajuste de estoque (delta) não pode ser zero.")
	}

	ctxGo, ok := ctx.(context.Context)
	if !ok {
		ctxGo = context.Background()
		s.logger.Warn("Contexto de domínio inválido, usando context.Background() para AdjustStock", nil)
	}

	stockLevel, err := s.repo.UpdateStockLevel(ctxGo, adjustment)
	if err != nil {
		s.logger.Error("Falha ao ajustar estoque no repositório.", err)
		var conflictErr *apperror.ConflictError
		if errors.As(err, &conflictErr) {
			return domain.StockLevel{}, apperror.NewConflictError(fmt.Sprintf("Falha de concorrência: %s", conflictErr.Error()))
		}
		var validationErr *apperror.ValidationError
		if errors.As(err, &validationErr) {
			return domain.StockLevel{}, apperror.NewValidationError(fmt.Sprintf("Validação do estoque: %s", validationErr.Error()))
		}
		return domain.StockLevel{}, apperror.NewInternalError("Falha interna ao ajustar estoque.", err)
	}

	s.logger.Info("Estoque ajustado com sucesso.", map[string]interface{}{
		"product_id":   stockLevel.ProductID,
		"warehouse_id": stockLevel.WarehouseID,
		"new_quantity": stockLevel.Quantity,
		"new_version":  stockLevel.Version,
	})
	return stockLevel, nil
}

// GetStockLevel consulta o nível de estoque de um produto em um armazém.
func (s *Service) GetStockLevel(ctx domain.Context, productID, warehouseID string) (domain.StockLevel, error) {
	if _, err := uuid.Parse(productID); err != nil {
		return domain.StockLevel{}, apperror.NewValidationError("O ID do produto deve ser um UUID válido.")
	}
	if _, err := uuid.Parse(warehouseID); err != nil {
		return domain.StockLevel{}, apperror.NewValidationError("O ID do armazém deve ser um UUID válido.")
	}

	ctxGo, ok := ctx.(context.Context)
	if !ok {
		ctxGo = context.Background()
		s.logger.Warn("Contexto de domínio inválido, usando context.Background() para GetStockLevel", nil)
	}

	return s.repo.GetStockLevel(ctxGo, productID, warehouseID)
}

// GetStockByProduct lista o estoque de um produto em todos os armazéns.
func (s *Service) GetStockByProduct(ctx domain.Context, productID string) ([]domain.StockLevel, error) {
	if _, err := uuid.Parse(productID); err != nil {
		return nil, apperror.NewValidationError("O ID do produto deve ser um UUID válido.")
	}

	ctxGo, ok := ctx.(context.Context)
	if !ok {
		ctxGo = context.Background()
		s.logger.Warn("Contexto de domínio inválido, usando context.Background() para GetStockByProduct", nil)
	}

	levels, err := s.repo.GetStockByProduct(ctxGo, productID)
	if err != nil {
		s.logger.Error("Falha ao buscar estoque do produto no repositório.", err)
		return nil, apperror.NewInternalError("Falha interna ao buscar estoque do produto.", err)
	}
	return levels, nil
}
