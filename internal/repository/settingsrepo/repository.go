package settingsrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"gocatalog/internal/domain"
	"gocatalog/internal/errors"
	"gocatalog/internal/pkg/logger"
)

// SettingsRepository persiste as configurações gerais da instalação.
// A tabela general_settings tem no máximo uma linha (id fixo).
type SettingsRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewSettingsRepository cria e retorna uma nova instância do Repositório de Configurações.
func NewSettingsRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *SettingsRepository {
	return &SettingsRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

// GetSettings lê a linha única de configurações.
func (r *SettingsRepository) GetSettings(ctx context.Context) (domain.GeneralSettings, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT modules, updated_at FROM general_settings WHERE id = 1`

	var settings domain.GeneralSettings
	err := r.DB.QueryRowContext(ctxTimeout, query).Scan(pq.Array(&settings.Modules), &settings.UpdatedAt)
	if err == sql.ErrNoRows {
		return domain.GeneralSettings{}, errors.NewNotFoundError("Configurações gerais ainda não definidas.")
	}
	if err != nil {
		r.logger.Error("Falha ao buscar configurações no DB.", err)
		return domain.GeneralSettings{}, errors.NewDBError("Falha ao buscar configurações", err)
	}

	return settings, nil
}

// SaveSettings grava (upsert) a linha única de configurações.
func (r *SettingsRepository) SaveSettings(ctx context.Context, settings domain.GeneralSettings) (domain.GeneralSettings, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	settings.UpdatedAt = time.Now().UTC()

	query := `
        INSERT INTO general_settings (id, modules, updated_at)
        VALUES (1, $1, $2)
        ON CONFLICT (id) DO UPDATE SET modules = EXCLUDED.modules, updated_at = EXCLUDED.updated_at
        RETURNING modules, updated_at`

	err := r.DB.QueryRowContext(ctxTimeout, query, pq.Array(settings.Modules), settings.UpdatedAt).
		Scan(pq.Array(&settings.Modules), &settings.UpdatedAt)
	if err != nil {
		r.logger.Error("Falha ao salvar configurações no DB.", err)
		return domain.GeneralSettings{}, errors.NewDBError("Falha ao salvar configurações", err)
	}

	r.logger.Info("Configurações gerais gravadas.", map[string]interface{}{"modules": settings.Modules})
	return settings, nil
}
