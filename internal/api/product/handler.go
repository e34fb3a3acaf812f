package product

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"gocatalog/internal/domain"
	apperror "gocatalog/internal/errors"
	"gocatalog/internal/pkg/logger"
	"gocatalog/internal/pkg/middleware"
	"gocatalog/internal/service/productservice"
)

// ProductService define o contrato que o Handler espera da camada de Serviço.
// Usamos a assinatura com o tipo abstrato domain.Context para manter a pureza do domínio.
type ProductService interface {
	CreateProduct(ctx domain.Context, p domain.Product) (domain.Product, error)
	GetProductByID(ctx domain.Context, id string) (domain.Product, error)
	GetProducts(ctx domain.Context, filter domain.ProductFilter) ([]domain.Product, error)
	UpdateProduct(ctx domain.Context, p domain.Product) (domain.Product, error)
	DeleteProduct(ctx domain.Context, id string) error
}

// Handler agrupa todos os métodos de Handler do produto.
type Handler struct {
	Service ProductService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc ProductService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// handleServiceResponse processa erros de serviço e envia respostas padronizadas ao cliente.
// Erros de validação de formulário carregam o mapa campo→mensagem em "fields".
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

// extractID retira o ID do último segmento da URL (/v1/products/{id}).
func extractID(r *http.Request) string {
	path := strings.Trim(r.URL.Path, "/")
	segments := strings.Split(path, "/")
	if len(segments) < 3 {
		return ""
	}
	return segments[len(segments)-1]
}

// CreateProductHandler lida com a requisição POST /v1/products.
// @Summary Cria um novo produto
// @Description Cria um produto com variantes, linhas de combo, estoque inicial e preços por armazém.
// @Tags products
// @Accept json
// @Produce json
// @Param product body domain.Product true "Agregado do produto"
// @Success 201 {object} domain.Product "Produto criado com sucesso"
// @Failure 400 {object} domain.ErrorResponse "Validação falhou (mapa de campos em fields)"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Security ApiKeyAuth
// @Router /products [post]
func (h *Handler) CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if claims, ok := middleware.GetUserClaimsFromContext(ctx); ok {
		h.Logger.Info("Criação de produto solicitada.", map[string]interface{}{
			"user_id": claims.UserID,
			"role":    claims.Role,
		})
	}

	var product domain.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), http.StatusBadRequest)
		return
	}

	newProduct, err := h.Service.CreateProduct(ctx, product)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusCreated)
		return
	}

	h.handleServiceResponse(w, r, newProduct, nil, http.StatusCreated)
}

// ListProductsHandler lida com a requisição GET /v1/products.
// Filtros via query string: page, limit, name, code, category_id, active.
func (h *Handler) ListProductsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	filter := domain.ProductFilter{
		Page:       int(productservice.ParseNumericOrZero(q.Get("page"))),
		Limit:      int(productservice.ParseNumericOrZero(q.Get("limit"))),
		Name:       q.Get("name"),
		Code:       q.Get("code"),
		CategoryID: q.Get("category_id"),
		ActiveOnly: q.Get("active") == "true",
	}

	products, err := h.Service.GetProducts(ctx, filter)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, products, nil, http.StatusOK)
}

// GetProductByIDHandler lida com a requisição GET /v1/products/{id}.
func (h *Handler) GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	productID := extractID(r)
	if productID == "" {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("ID do produto é obrigatório."), http.StatusOK)
		return
	}

	product, err := h.Service.GetProductByID(ctx, productID)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, product, nil, http.StatusOK)
}

// UpdateProductHandler lida com a requisição PUT /v1/products/{id}.
func (h *Handler) UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	productID := extractID(r)
	var product domain.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), http.StatusBadRequest)
		return
	}
	product.ID = productID // O ID da URL prevalece sobre o do corpo

	updatedProduct, err := h.Service.UpdateProduct(ctx, product)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, updatedProduct, nil, http.StatusOK)
}

// DeleteProductHandler lida com a requisição DELETE /v1/products/{id}.
func (h *Handler) DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	productID := extractID(r)
	if err := h.Service.DeleteProduct(ctx, productID); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, nil, nil, http.StatusNoContent)
}

// GenerateCodeHandler lida com a requisição GET /v1/products/generate-code.
// Devolve um código candidato no formato PRD-XXXXXXX para preencher o formulário.
func (h *Handler) GenerateCodeHandler(w http.ResponseWriter, r *http.Request) {
	h.handleServiceResponse(w, r, map[string]string{"code": productservice.GenerateCode()}, nil, http.StatusOK)
}

// ExpandVariantsHandler lida com a requisição POST /v1/products/expand-variants.
// Recebe os pares (opção, valores separados por vírgula) do formulário e devolve
// as linhas concretas de variante, na ordem, sem deduplicação.
func (h *Handler) ExpandVariantsHandler(w http.ResponseWriter, r *http.Request) {
	var options []domain.VariantOption
	if err := json.NewDecoder(r.Body).Decode(&options); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), http.StatusBadRequest)
		return
	}

	candidates := productservice.ExpandVariantOptions(options)
	h.handleServiceResponse(w, r, map[string]interface{}{"variants": candidates}, nil, http.StatusOK)
}

// ComboRecalcRequest é o payload das operações de edição das linhas de combo.
// Op vale "add", "update" (padrão) ou "remove". Em "update", Value chega como
// string crua do formulário e texto não numérico vira zero; em "add", Product
// é o produto de origem da nova linha.
type ComboRecalcRequest struct {
	Lines   []domain.ComboLine `json:"lines"`
	Op      string             `json:"op,omitempty"`
	Index   int                `json:"index"`
	Field   string             `json:"field"`
	Value   string             `json:"value"`
	Product domain.Product     `json:"product,omitempty"`
}

// RecalcComboLineHandler lida com a requisição POST /v1/products/combo-lines/recalc.
// Aplica a operação de edição da sessão (adicionar, editar campo ou remover
// linha) e devolve todas as linhas com os subtotais rederivados.
func (h *Handler) RecalcComboLineHandler(w http.ResponseWriter, r *http.Request) {
	var req ComboRecalcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), http.StatusBadRequest)
		return
	}

	var (
		lines []domain.ComboLine
		err   error
	)
	switch req.Op {
	case "add":
		lines = productservice.AddComboLine(req.Lines, req.Product)
	case "remove":
		lines, err = productservice.RemoveComboLine(req.Lines, req.Index)
	case "", "update":
		lines, err = productservice.UpdateComboLine(req.Lines, req.Index, req.Field, req.Value)
	default:
		err = apperror.NewValidationError("Operação de linha de combo desconhecida: " + req.Op)
	}
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, map[string]interface{}{"lines": lines}, nil, http.StatusOK)
}
