package stockrepo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"gocatalog/internal/domain"
	"gocatalog/internal/errors"
	"gocatalog/internal/pkg/logger"
)

// StockRepository persiste níveis de estoque por produto e armazém.
type StockRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewStockRepository cria e retorna uma nova instância do Repositório de Estoque.
func NewStockRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *StockRepository {
	return &StockRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

// GetStockLevel busca o nível de estoque para um produto em um armazém.
func (r *StockRepository) GetStockLevel(ctx context.Context, productID, warehouseID string) (domain.StockLevel, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        SELECT id, product_id, warehouse_id, quantity, COALESCE(price, 0), version, created_at, updated_at
        FROM stock_levels
        WHERE product_id = $1 AND warehouse_id = $2`

	var sl domain.StockLevel
	err := r.DB.QueryRowContext(ctxTimeout, query, productID, warehouseID).Scan(
		&sl.ID, &sl.ProductID, &sl.WarehouseID, &sl.Quantity, &sl.Price, &sl.Version, &sl.CreatedAt, &sl.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		r.logger.Info("Nível de estoque não encontrado.", map[string]interface{}{"product_id": productID, "warehouse_id": warehouseID})
		return domain.StockLevel{}, errors.NewNotFoundError(fmt.Sprintf("Estoque para produto %s no armazém %s não encontrado.", productID, warehouseID))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar nível de estoque no DB.", err)
		return domain.StockLevel{}, errors.NewDBError("Falha ao buscar nível de estoque", err)
	}

	return sl, nil
}

// GetStockByProduct lista os níveis de estoque de um produto em todos os armazéns.
func (r *StockRepository) GetStockByProduct(ctx context.Context, productID string) ([]domain.StockLevel, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        SELECT id, product_id, warehouse_id, quantity, COALESCE(price, 0), version, created_at, updated_at
        FROM stock_levels
        WHERE product_id = $1
        ORDER BY warehouse_id`

	rows, err := r.DB.QueryContext(ctxTimeout, query, productID)
	if err != nil {
		r.logger.Error("Falha ao buscar estoque por produto no DB.", err)
		return nil, errors.NewDBError("Falha ao buscar estoque por produto", err)
	}
	defer rows.Close()

	var levels []domain.StockLevel
	for rows.Next() {
		var sl domain.StockLevel
		if err := rows.Scan(&sl.ID, &sl.ProductID, &sl.WarehouseID, &sl.Quantity, &sl.Price, &sl.Version, &sl.CreatedAt, &sl.UpdatedAt); err != nil {
			return nil, errors.NewDBError("Falha ao mapear nível de estoque", err)
		}
		levels = append(levels, sl)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDBError("Erro após iteração de níveis de estoque", err)
	}
	return levels, nil
}

// UpdateStockLevel aplica um ajuste ao estoque, utilizando transação e controle de concorrência otimista (OCC).
func (r *StockRepository) UpdateStockLevel(ctx context.Context, adjustment domain.StockAdjustmentRequest) (domain.StockLevel, error) {
	r.logger.Debug("Iniciando atualização de estoque no repositório.", map[string]interface{}{
		"product_id":   adjustment.ProductID,
		"warehouse_id": adjustment.WarehouseID,
		"delta":        adjustment.Delta,
	})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	tx, err := r.DB.BeginTx(ctxTimeout, nil)
	if err != nil {
		r.logger.Error("Falha ao iniciar transação para atualização de estoque.", err)
		return domain.StockLevel{}, errors.NewDBError("Falha ao iniciar transação", err)
	}
	defer tx.Rollback() // Rollback em caso de erro

	// 1. Obter o nível de estoque atual (com FOR UPDATE para bloquear a linha na transação)
	var currentStock domain.StockLevel
	querySelect := `
        SELECT id, product_id, warehouse_id, quantity, COALESCE(price, 0), version, created_at, updated_at
        FROM stock_levels
        WHERE product_id = $1 AND warehouse_id = $2 FOR UPDATE`

	err = tx.QueryRowContext(ctxTimeout, querySelect, adjustment.ProductID, adjustment.WarehouseID).Scan(
		&currentStock.ID, &currentStock.ProductID, &currentStock.WarehouseID, &currentStock.Quantity,
		&currentStock.Price, &currentStock.Version, &currentStock.CreatedAt, &currentStock.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		// Se não houver registro, é uma inserção inicial
		newQuantity := adjustment.Delta
		if newQuantity < 0 {
			return domain.StockLevel{}, errors.NewValidationError("Não é possível criar estoque com quantidade negativa.")
		}

		queryInsert := `
            INSERT INTO stock_levels (id, product_id, warehouse_id, quantity, version, created_at, updated_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7)
            RETURNING id, product_id, warehouse_id, quantity, COALESCE(price, 0), version, created_at, updated_at`

		var newSl domain.StockLevel
		err = tx.QueryRowContext(ctxTimeout, queryInsert,
			uuid.New().String(), adjustment.ProductID, adjustment.WarehouseID, newQuantity, 1, time.Now(), time.Now(),
		).Scan(
			&newSl.ID, &newSl.ProductID, &newSl.WarehouseID, &newSl.Quantity,
			&newSl.Price, &newSl.Version, &newSl.CreatedAt, &newSl.UpdatedAt,
		)
		if err != nil {
			r.logger.Error("Falha ao inserir novo nível de estoque.", err)
			return domain.StockLevel{}, errors.NewDBError("Falha ao inserir novo nível de estoque", err)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return domain.StockLevel{}, errors.NewDBError("Falha ao commitar transação", commitErr)
		}
		r.logger.Info("Novo nível de estoque criado com sucesso.", map[string]interface{}{"product_id": adjustment.ProductID, "warehouse_id": adjustment.WarehouseID, "quantity": newSl.Quantity})
		return newSl, nil

	} else if err != nil {
		r.logger.Error("Falha ao selecionar nível de estoque para atualização.", err)
		return domain.StockLevel{}, errors.NewDBError("Falha ao buscar estoque para atualização", err)
	}

	// 2. Aplicar o ajuste e verificar se a quantidade resultará em negativo
	newQuantity := currentStock.Quantity + adjustment.Delta
	if newQuantity < 0 {
		return domain.StockLevel{}, errors.NewValidationError("Ajuste resultaria em quantidade de estoque negativa.")
	}

	// 3. Atualizar o nível de estoque com OCC
	queryUpdate := `
        UPDATE stock_levels
        SET quantity = $1, version = $2, updated_at = $3
        WHERE product_id = $4 AND warehouse_id = $5 AND version = $6`

	result, err := tx.ExecContext(ctxTimeout, queryUpdate,
		newQuantity,
		currentStock.Version+1,
		time.Now(),
		adjustment.ProductID,
		adjustment.WarehouseID,
		currentStock.Version, // Checa a versão antiga para OCC
	)
	if err != nil {
		r.logger.Error("Falha ao atualizar nível de estoque.", err)
		return domain.StockLevel{}, errors.NewDBError("Falha ao atualizar estoque", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return domain.StockLevel{}, errors.NewDBError("Falha ao verificar linhas afetadas", err)
	}

	if rowsAffected == 0 {
		r.logger.Warn("Falha no controle de concorrência otimista (OCC). Versão do registro desatualizada.", map[string]interface{}{
			"product_id":       adjustment.ProductID,
			"warehouse_id":     adjustment.WarehouseID,
			"expected_version": currentStock.Version,
		})
		return domain.StockLevel{}, errors.NewConflictError("O estoque foi modificado por outra operação. Tente novamente.")
	}

	if commitErr := tx.Commit(); commitErr != nil {
		return domain.StockLevel{}, errors.NewDBError("Falha ao commitar transação", commitErr)
	}

	currentStock.Quantity = newQuantity
	currentStock.Version++
	currentStock.UpdatedAt = time.Now()
	r.logger.Info("Nível de estoque atualizado com sucesso.", map[string]interface{}{
		"product_id":   adjustment.ProductID,
		"warehouse_id": adjustment.WarehouseID,
		"new_quantity": newQuantity,
		"new_version":  currentStock.Version,
	})
	return currentStock, nil
}
