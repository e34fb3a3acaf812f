package brandrepo

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

// BrandRepository implementa as operações CRUD de marcas.
type BrandRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewBrandRepository cria e retorna uma nova instância do Repositório de Marcas.
func NewBrandRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *BrandRepository {
	return &BrandRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

// CreateBrand insere uma nova marca no banco de dados.
func (r *BrandRepository) CreateBrand(ctx context.Context, brand domain.Brand) (domain.Brand, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	if brand.ID == "" {
		brand.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	brand.CreatedAt = now
	brand.UpdatedAt = now

	query := `
        INSERT INTO brands (id, title, image, page_title, short_description, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, title, image, page_title, short_description, created_at, updated_at`

	err := r.DB.QueryRowContext(ctxTimeout, query,
		brand.ID, brand.Title, brand.Image, brand.PageTitle, brand.ShortDescription,
		brand.CreatedAt, brand.UpdatedAt,
	).Scan(
		&brand.ID, &brand.Title, &brand.Image, &brand.PageTitle, &brand.ShortDescription,
		&brand.CreatedAt, &brand.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Falha ao inserir marca no DB.", err)
		return domain.Brand{}, errors.NewDBError("Falha ao criar marca", err)
	}

	r.logger.Info("Marca criada com sucesso.", map[string]interface{}{"id": brand.ID, "title": brand.Title})
	return brand, nil
}

// GetBrandByID busca uma marca pelo ID.
func (r *BrandRepository) GetBrandByID(ctx context.Context, id string) (domain.Brand, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        SELECT id, title, image, page_title, short_description, created_at, updated_at
        FROM brands
        WHERE id = $1`

	var brand domain.Brand
	err := r.DB.QueryRowContext(ctxTimeout, query, id).Scan(
		&brand.ID, &brand.Title, &brand.Image, &brand.PageTitle, &brand.ShortDescription,
		&brand.CreatedAt, &brand.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return domain.Brand{}, errors.NewNotFoundError(fmt.Sprintf("Marca com ID %s não encontrada.", id))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar marca no DB.", err)
		return domain.Brand{}, errors.NewDBError("Falha ao buscar marca", err)
	}

	return brand, nil
}

// GetAllBrands busca todas as marcas.
func (r *BrandRepository) GetAllBrands(ctx context.Context) ([]domain.Brand, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        SELECT id, title, image, page_title, short_description, created_at, updated_at
        FROM brands
        ORDER BY title`

	rows, err := r.DB.QueryContext(ctxTimeout, query)
	if err != nil {
		r.logger.Error("Falha ao executar GetAllBrands query.", err)
		return nil, errors.NewDBError("Falha ao buscar todas as marcas", err)
	}
	defer rows.Close()

	var brands []domain.Brand
	for rows.Next() {
		var brand domain.Brand
		err := rows.Scan(
			&brand.ID, &brand.Title, &brand.Image, &brand.PageTitle, &brand.ShortDescription,
			&brand.CreatedAt, &brand.UpdatedAt,
		)
		if err != nil {
			return nil, errors.NewDBError("Falha ao mapear marcas do DB", err)
		}
		brands = append(brands, brand)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.NewDBError("Erro após iteração de marcas", err)
	}

	return brands, nil
}

// UpdateBrand atualiza uma marca existente.
func (r *BrandRepository) UpdateBrand(ctx context.Context, brand domain.Brand) (domain.Brand, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	brand.UpdatedAt = time.Now().UTC()

	query := `
        UPDATE brands
        SET title = $1, image = $2, page_title = $3, short_description = $4, updated_at = $5
        WHERE id = $6
        RETURNING id, title, image, page_title, short_description, created_at, updated_at`

	err := r.DB.QueryRowContext(ctxTimeout, query,
		brand.Title, brand.Image, brand.PageTitle, brand.ShortDescription,
		brand.UpdatedAt, brand.ID,
	).Scan(
		&brand.ID, &brand.Title, &brand.Image, &brand.PageTitle, &brand.ShortDescription,
		&brand.CreatedAt, &brand.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return domain.Brand{}, errors.NewNotFoundError(fmt.Sprintf("Marca com ID %s não encontrada para atualização.", brand.ID))
	}
	if err != nil {
		r.logger.Error("Falha ao atualizar marca no DB.", err)
		return domain.Brand{}, errors.NewDBError("Falha ao atualizar marca", err)
	}

	r.logger.Info("Marca atualizada com sucesso.", map[string]interface{}{"id": brand.ID, "title": brand.Title})
	return brand, nil
}

// DeleteBrand remove uma marca pelo ID.
func (r *BrandRepository) DeleteBrand(ctx context.Context, id string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM brands WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Falha ao deletar marca do DB.", err)
		return errors.NewDBError("Falha ao deletar marca", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewDBError("Falha ao verificar linhas afetadas", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("Marca com ID %s não encontrada para exclusão.", id))
	}

	r.logger.Info("Marca deletada com sucesso.", map[string]interface{}{"id": id})
	return nil
}
