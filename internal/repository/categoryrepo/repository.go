package categoryrepo

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

// CategoryRepository implementa as operações CRUD de categorias.
type CategoryRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewCategoryRepository cria e retorna uma nova instância do Repositório de Categorias.
func NewCategoryRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *CategoryRepository {
	return &CategoryRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

const categoryColumns = `id, name, COALESCE(parent_id::text, ''), image, icon, featured, is_sync_disable,
        page_title, short_description, created_at, updated_at`

func scanCategory(row interface{ Scan(...interface{}) error }) (domain.Category, error) {
	var c domain.Category
	err := row.Scan(
		&c.ID, &c.Name, &c.ParentID, &c.Image, &c.Icon, &c.Featured, &c.IsSyncDisable,
		&c.PageTitle, &c.ShortDescription, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

// CreateCategory insere uma nova categoria no banco de dados.
func (r *CategoryRepository) CreateCategory(ctx context.Context, category domain.Category) (domain.Category, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	category.CreatedAt = now
	category.UpdatedAt = now

	var parentID interface{}
	if category.ParentID != "" {
		parentID = category.ParentID
	}

	query := `
        INSERT INTO categories (id, name, parent_id, image, icon, featured, is_sync_disable,
            page_title, short_description, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING ` + categoryColumns

	created, err := scanCategory(r.DB.QueryRowContext(ctxTimeout, query,
		category.ID, category.Name, parentID, category.Image, category.Icon,
		category.Featured, category.IsSyncDisable, category.PageTitle, category.ShortDescription,
		category.CreatedAt, category.UpdatedAt,
	))
	if err != nil {
		r.logger.Error("Falha ao inserir categoria no DB.", err)
		return domain.Category{}, errors.NewDBError("Falha ao criar categoria", err)
	}

	r.logger.Info("Categoria criada com sucesso.", map[string]interface{}{"id": created.ID, "name": created.Name})
	return created, nil
}

// GetCategoryByID busca uma categoria pelo ID.
func (r *CategoryRepository) GetCategoryByID(ctx context.Context, id string) (domain.Category, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`

	category, err := scanCategory(r.DB.QueryRowContext(ctxTimeout, query, id))
	if err == sql.ErrNoRows {
		return domain.Category{}, errors.NewNotFoundError(fmt.Sprintf("Categoria com ID %s não encontrada.", id))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar categoria no DB.", err)
		return domain.Category{}, errors.NewDBError("Falha ao buscar categoria", err)
	}

	return category, nil
}

// GetAllCategories busca todas as categorias, mães antes das filhas.
func (r *CategoryRepository) GetAllCategories(ctx context.Context) ([]domain.Category, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + categoryColumns + ` FROM categories ORDER BY parent_id NULLS FIRST, name`

	rows, err := r.DB.QueryContext(ctxTimeout, query)
	if err != nil {
		r.logger.Error("Falha ao executar GetAllCategories query.", err)
		return nil, errors.NewDBError("Falha ao buscar todas as categorias", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, errors.NewDBError("Falha ao mapear categorias do DB", err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.NewDBError("Erro após iteração de categorias", err)
	}

	return categories, nil
}

// UpdateCategory atualiza uma categoria existente.
func (r *CategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) (domain.Category, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	category.UpdatedAt = time.Now().UTC()

	var parentID interface{}
	if category.ParentID != "" {
		parentID = category.ParentID
	}

	query := `
        UPDATE categories
        SET name = $1, parent_id = $2, image = $3, icon = $4, featured = $5, is_sync_disable = $6,
            page_title = $7, short_description = $8, updated_at = $9
        WHERE id = $10
        RETURNING ` + categoryColumns

	updated, err := scanCategory(r.DB.QueryRowContext(ctxTimeout, query,
		category.Name, parentID, category.Image, category.Icon, category.Featured, category.IsSyncDisable,
		category.PageTitle, category.ShortDescription, category.UpdatedAt, category.ID,
	))
	if err == sql.ErrNoRows {
		return domain.Category{}, errors.NewNotFoundError(fmt.Sprintf("Categoria com ID %s não encontrada para atualização.", category.ID))
	}
	if err != nil {
		r.logger.Error("Falha ao atualizar categoria no DB.", err)
		return domain.Category{}, errors.NewDBError("Falha ao atualizar categoria", err)
	}

	r.logger.Info("Categoria atualizada com sucesso.", map[string]interface{}{"id": updated.ID, "name": updated.Name})
	return updated, nil
}

// DeleteCategory remove uma categoria pelo ID.
func (r *CategoryRepository) DeleteCategory(ctx context.Context, id string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Falha ao deletar categoria do DB.", err)
		return errors.NewDBError("Falha ao deletar categoria", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewDBError("Falha ao verificar linhas afetadas", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("Categoria com ID %s não encontrada para exclusão.", id))
	}

	r.logger.Info("Categoria deletada com sucesso.", map[string]interface{}{"id": id})
	return nil
}
