package settings

import (
	"encoding/json"
	"fmt"
	"net/http"

	"gocatalog/internal/domain"
	apperror "gocatalog/internal/errors"
	"gocatalog/internal/pkg/logger"
)

// SettingsService define o contrato que o Handler espera da camada de Serviço.
type SettingsService interface {
	GetSettings(ctx domain.Context) (domain.GeneralSettings, error)
	UpdateSettings(ctx domain.Context, settings domain.GeneralSettings) (domain.GeneralSettings, error)
}

// Handler agrupa os métodos de Handler das configurações gerais.
type Handler struct {
	Service SettingsService
	Logger  logger.Logger
}

func NewHandler(svc SettingsService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// handleServiceResponse processa erros de serviço e envia respostas padronizadas ao cliente.
func (h *Handler) handleServiceResponse(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	if err == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(successStatus)
		if data != nil {
			if jsonErr := json.NewEncoder(w).Encode(data); jsonErr != nil {
				h.Logger.Error("Falha ao codificar JSON de resposta", jsonErr)
				http.Error(w, "Erro ao codificar resposta", http.StatusInternalServerError)
			}
		}
		return
	}

	status, category, message, fields := apperror.MapToHTTPStatus(err)

	if status >= 500 {
		h.Logger.Error(fmt.Sprintf("Erro de Servidor: %s", category), err)
	} else {
		h.Logger.Debug(fmt.Sprintf("Requisição rejeitada com status %d. Categoria: %s", status, category), map[string]interface{}{"path": r.URL.Path})
	}

	errorResponse := map[string]interface{}{
		"code":     status,
		"category": category,
		"message":  message,
	}
	if len(fields) > 0 {
		errorResponse["fields"] = fields
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse)
}

// GetSettingsHandler lida com a requisição GET /v1/settings.
// Quando nenhuma configuração foi salva ainda, retorna o documento vazio (todos os módulos desligados).
func (h *Handler) GetSettingsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	settings, err := h.Service.GetSettings(ctx)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, settings, nil, http.StatusOK)
}

// UpdateSettingsHandler lida com a requisição PUT /v1/settings.
func (h *Handler) UpdateSettingsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var settings domain.GeneralSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), http.StatusBadRequest)
		return
	}

	updated, err := h.Service.UpdateSettings(ctx, settings)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, updated, nil, http.StatusOK)
}
