package taxrepo

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

// TaxRepository implementa as operações CRUD de alíquotas de imposto.
type TaxRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewTaxRepository cria e retorna uma nova instância do Repositório de Impostos.
func NewTaxRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *TaxRepository {
	return &TaxRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

// CreateTax insere uma nova alíquota no banco de dados.
func (r *TaxRepository) CreateTax(ctx context.Context, tax domain.Tax) (domain.Tax, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	if tax.ID == "" {
		tax.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	tax.CreatedAt = now
	tax.UpdatedAt = now

	query := `
        INSERT INTO taxes (id, name, rate, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, name, rate, created_at, updated_at`

	err := r.DB.QueryRowContext(ctxTimeout, query,
		tax.ID, tax.Name, tax.Rate, tax.CreatedAt, tax.UpdatedAt,
	).Scan(&tax.ID, &tax.Name, &tax.Rate, &tax.CreatedAt, &tax.UpdatedAt)
	if err != nil {
		r.logger.Error("Falha ao inserir imposto no DB.", err)
		return domain.Tax{}, errors.NewDBError("Falha ao criar imposto", err)
	}

	r.logger.Info("Imposto criado com sucesso.", map[string]interface{}{"id": tax.ID, "name": tax.Name})
	return tax, nil
}

// GetTaxByID busca uma alíquota pelo ID.
func (r *TaxRepository) GetTaxByID(ctx context.Context, id string) (domain.Tax, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT id, name, rate, created_at, updated_at FROM taxes WHERE id = $1`

	var tax domain.Tax
	err := r.DB.QueryRowContext(ctxTimeout, query, id).Scan(
		&tax.ID, &tax.Name, &tax.Rate, &tax.CreatedAt, &tax.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return domain.Tax{}, errors.NewNotFoundError(fmt.Sprintf("Imposto com ID %s não encontrado.", id))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar imposto no DB.", err)
		return domain.Tax{}, errors.NewDBError("Falha ao buscar imposto", err)
	}

	return tax, nil
}

// GetAllTaxes busca todas as alíquotas.
func (r *TaxRepository) GetAllTaxes(ctx context.Context) ([]domain.Tax, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT id, name, rate, created_at, updated_at FROM taxes ORDER BY name`

	rows, err := r.DB.QueryContext(ctxTimeout, query)
	if err != nil {
		r.logger.Error("Falha ao executar GetAllTaxes query.", err)
		return nil, errors.NewDBError("Falha ao buscar todos os impostos", err)
	}
	defer rows.Close()

	var taxes []domain.Tax
	for rows.Next() {
		var tax domain.Tax
		if err := rows.Scan(&tax.ID, &tax.Name, &tax.Rate, &tax.CreatedAt, &tax.UpdatedAt); err != nil {
			return nil, errors.NewDBError("Falha ao mapear impostos do DB", err)
		}
		taxes = append(taxes, tax)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.NewDBError("Erro após iteração de impostos", err)
	}

	return taxes, nil
}

// UpdateTax atualiza uma alíquota existente.
func (r *TaxRepository) UpdateTax(ctx context.Context, tax domain.Tax) (domain.Tax, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	tax.UpdatedAt = time.Now().UTC()

	query := `
        UPDATE taxes
        SET name = $1, rate = $2, updated_at = $3
        WHERE id = $4
        RETURNING id, name, rate, created_at, updated_at`

	err := r.DB.QueryRowContext(ctxTimeout, query,
		tax.Name, tax.Rate, tax.UpdatedAt, tax.ID,
	).Scan(&tax.ID, &tax.Name, &tax.Rate, &tax.CreatedAt, &tax.UpdatedAt)

	if err == sql.ErrNoRows {
		return domain.Tax{}, errors.NewNotFoundError(fmt.Sprintf("Imposto com ID %s não encontrado para atualização.", tax.ID))
	}
	if err != nil {
		r.logger.Error("Falha ao atualizar imposto no DB.", err)
		return domain.Tax{}, errors.NewDBError("Falha ao atualizar imposto", err)
	}

	r.logger.Info("Imposto atualizado com sucesso.", map[string]interface{}{"id": tax.ID, "name": tax.Name})
	return tax, nil
}

// DeleteTax remove uma alíquota pelo ID.
func (r *TaxRepository) DeleteTax(ctx context.Context, id string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM taxes WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Falha ao deletar imposto do DB.", err)
		return errors.NewDBError("Falha ao deletar imposto", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewDBError("Falha ao verificar linhas afetadas", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("Imposto com ID %s não encontrado para exclusão.", id))
	}

	r.logger.Info("Imposto deletado com sucesso.", map[string]interface{}{"id": id})
	return nil
}
