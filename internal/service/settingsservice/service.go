package settingsservice

import (
	"context"
	"errors"

	"gocatalog/internal/domain"
	apperror "gocatalog/internal/errors"
	"gocatalog/internal/pkg/logger"
)

// SettingsRepository define o contrato de persistência das configurações gerais.
type SettingsRepository interface {
	GetSettings(ctx context.Context) (domain.GeneralSettings, error)
	SaveSettings(ctx context.Context, settings domain.GeneralSettings) (domain.GeneralSettings, error)
}

// Service expõe leitura e escrita das configurações gerais da loja.
type Service struct {
	repo   SettingsRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Configurações.
func NewService(repo SettingsRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// GetSettings devolve as configurações atuais. Na ausência de registro,
// devolve configurações vazias (nenhum módulo habilitado).
func (s *Service) GetSettings(ctx domain.Context) (domain.GeneralSettings, error) {
	ctxGo, ok := ctx.(context.Context)
	if !ok {
		ctxGo = context.Background()
		s.logger.Warn("Contexto de domínio inválido, usando context.Background() para GetSettings", nil)
	}

	settings, err := s.repo.GetSettings(ctxGo)
	if err != nil {
		var notFound *apperror.NotFoundError
		if errors.As(err, &notFound) {
			return domain.GeneralSettings{}, nil
		}
		s.logger.Error("Falha ao buscar configurações no repositório.", err)
		return domain.GeneralSettings{}, apperror.NewInternalError("Falha interna ao buscar configurações.", err)
	}
	return settings, nil
}

// UpdateSettings substitui o conjunto de módulos habilitados. Módulos
// desconhecidos são rejeitados.
func (s *Service) UpdateSettings(ctx domain.Context, settings domain.GeneralSettings) (domain.GeneralSettings, error) {
	for _, module := range settings.Modules {
		switch module {
		case domain.ModuleEcommerce, domain.ModuleWooCommerce, domain.ModuleRestaurant:
		default:
			return domain.GeneralSettings{}, apperror.NewValidationError("Módulo desconhecido: " + module)
		}
	}

	ctxGo, ok := ctx.(context.Context)
	if !ok {
		ctxGo = context.Background()
		s.logger.Warn("Contexto de domínio inválido, usando context.Background() para UpdateSettings", nil)
	}

	saved, err := s.repo.SaveSettings(ctxGo, settings)
	if err != nil {
		s.logger.Error("Falha ao salvar configurações no repositório.", err)
		return domain.GeneralSettings{}, apperror.NewInternalError("Falha interna ao salvar configurações.", err)
	}

	s.logger.Info("Configurações atualizadas com sucesso.", map[string]interface{}{"modules": saved.Modules})
	return saved, nil
}
