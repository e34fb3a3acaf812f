package unitrepo

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

// UnitRepository implementa as operações CRUD de unidades de medida.
type UnitRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewUnitRepository cria e retorna uma nova instância do Repositório de Unidades.
func NewUnitRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *UnitRepository {
	return &UnitRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

const unitColumns = `id, code, name, COALESCE(base_unit_id::text, ''), COALESCE(operator, ''), operation_value, created_at, updated_at`

func scanUnit(row interface{ Scan(...interface{}) error }) (domain.Unit, error) {
	var u domain.Unit
	var operator string
	err := row.Scan(&u.ID, &u.Code, &u.Name, &u.BaseUnitID, &operator, &u.OperationValue, &u.CreatedAt, &u.UpdatedAt)
	u.Operator = domain.UnitOperator(operator)
	return u, err
}

// CreateUnit insere uma nova unidade no banco de dados.
func (r *UnitRepository) CreateUnit(ctx context.Context, unit domain.Unit) (domain.Unit, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	if unit.ID == "" {
		unit.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	unit.CreatedAt = now
	unit.UpdatedAt = now

	var baseUnitID, operator interface{}
	if unit.BaseUnitID != "" {
		baseUnitID = unit.BaseUnitID
		operator = string(unit.Operator)
	}

	query := `
        INSERT INTO units (id, code, name, base_unit_id, operator, operation_value, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING ` + unitColumns

	created, err := scanUnit(r.DB.QueryRowContext(ctxTimeout, query,
		unit.ID, unit.Code, unit.Name, baseUnitID, operator, unit.OperationValue,
		unit.CreatedAt, unit.UpdatedAt,
	))
	if err != nil {
		r.logger.Error("Falha ao inserir unidade no DB.", err)
		return domain.Unit{}, errors.NewDBError("Falha ao criar unidade", err)
	}

	r.logger.Info("Unidade criada com sucesso.", map[string]interface{}{"id": created.ID, "code": created.Code})
	return created, nil
}

// GetUnitByID busca uma unidade pelo ID.
func (r *UnitRepository) GetUnitByID(ctx context.Context, id string) (domain.Unit, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + unitColumns + ` FROM units WHERE id = $1`

	unit, err := scanUnit(r.DB.QueryRowContext(ctxTimeout, query, id))
	if err == sql.ErrNoRows {
		return domain.Unit{}, errors.NewNotFoundError(fmt.Sprintf("Unidade com ID %s não encontrada.", id))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar unidade no DB.", err)
		return domain.Unit{}, errors.NewDBError("Falha ao buscar unidade", err)
	}

	return unit, nil
}

// GetAllUnits busca todas as unidades.
func (r *UnitRepository) GetAllUnits(ctx context.Context) ([]domain.Unit, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + unitColumns + ` FROM units ORDER BY code`

	rows, err := r.DB.QueryContext(ctxTimeout, query)
	if err != nil {
		r.logger.Error("Falha ao executar GetAllUnits query.", err)
		return nil, errors.NewDBError("Falha ao buscar todas as unidades", err)
	}
	defer rows.Close()

	var units []domain.Unit
	for rows.Next() {
		unit, err := scanUnit(rows)
		if err != nil {
			return nil, errors.NewDBError("Falha ao mapear unidades do DB", err)
		}
		units = append(units, unit)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.NewDBError("Erro após iteração de unidades", err)
	}

	return units, nil
}

// UpdateUnit atualiza uma unidade existente.
func (r *UnitRepository) UpdateUnit(ctx context.Context, unit domain.Unit) (domain.Unit, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	unit.UpdatedAt = time.Now().UTC()

	var baseUnitID, operator interface{}
	if unit.BaseUnitID != "" {
		baseUnitID = unit.BaseUnitID
		operator = string(unit.Operator)
	}

	query := `
        UPDATE units
        SET code = $1, name = $2, base_unit_id = $3, operator = $4, operation_value = $5, updated_at = $6
        WHERE id = $7
        RETURNING ` + unitColumns

	updated, err := scanUnit(r.DB.QueryRowContext(ctxTimeout, query,
		unit.Code, unit.Name, baseUnitID, operator, unit.OperationValue, unit.UpdatedAt, unit.ID,
	))
	if err == sql.ErrNoRows {
		return domain.Unit{}, errors.NewNotFoundError(fmt.Sprintf("Unidade com ID %s não encontrada para atualização.", unit.ID))
	}
	if err != nil {
		r.logger.Error("Falha ao atualizar unidade no DB.", err)
		return domain.Unit{}, errors.NewDBError("Falha ao atualizar unidade", err)
	}

	r.logger.Info("Unidade atualizada com sucesso.", map[string]interface{}{"id": updated.ID, "code": updated.Code})
	return updated, nil
}

// DeleteUnit remove uma unidade pelo ID.
func (r *UnitRepository) DeleteUnit(ctx context.Context, id string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM units WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Falha ao deletar unidade do DB.", err)
		return errors.NewDBError("Falha ao deletar unidade", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewDBError("Falha ao verificar linhas afetadas", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("Unidade com ID %s não encontrada para exclusão.", id))
	}

	r.logger.Info("Unidade deletada com sucesso.", map[string]interface{}{"id": id})
	return nil
}
