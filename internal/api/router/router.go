package router

import (
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"gocatalog/internal/api/brand"
	"gocatalog/internal/api/category"
	"gocatalog/internal/api/product"
	"gocatalog/internal/api/settings"
	"gocatalog/internal/api/stock"
	"gocatalog/internal/api/tax"
	"gocatalog/internal/api/unit"
	"gocatalog/internal/api/user"
	"gocatalog/internal/api/warehouse"
	"gocatalog/internal/domain"
	"gocatalog/internal/pkg/cache"
	"gocatalog/internal/pkg/middleware"
)

// Deps reúne tudo que o roteador precisa receber por injeção de dependências:
// os Handlers de cada módulo, o serviço de tokens para o middleware de
// autenticação e o cliente de cache para o rate limiting.
type Deps struct {
	Product   *product.Handler
	Brand     *brand.Handler
	Category  *category.Handler
	Unit      *unit.Handler
	Tax       *tax.Handler
	Warehouse *warehouse.Handler
	Stock     *stock.Handler
	Settings  *settings.Handler
	User      *user.Handler

	TokenSvc middleware.TokenService
	Cache    cache.Client

	RateLimitMaxRequests int
	RateLimitPeriod      time.Duration
}

// NewRouter configura e retorna o roteador HTTP principal.
// Usamos o ServeMux padrão do net/http para roteamento.
// Como o ServeMux não diferencia métodos HTTP no registro da rota,
// usamos pequenos dispatchers por método nas rotas compartilhadas.
func NewRouter(d Deps) http.Handler {

	mux := http.NewServeMux()

	// Middlewares reutilizáveis
	auth := middleware.NewAuthMiddleware(d.TokenSvc)
	writer := middleware.PermissionMiddleware(domain.RoleAdmin, domain.RoleManager)
	adminOnly := middleware.PermissionMiddleware(domain.RoleAdmin)

	// --- 1. Health Check e Documentação ---
	mux.HandleFunc("/ping", PingHandler)
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	// --- 2. Autenticação (rotas públicas) ---
	mux.HandleFunc("/v1/register", d.User.RegisterUserHandler)
	mux.HandleFunc("/v1/login", d.User.LoginUserHandler)

	// --- 3. Produtos ---
	// As rotas utilitárias são registradas antes da subárvore /v1/products/
	// (o ServeMux prioriza o padrão mais específico).
	mux.HandleFunc("/v1/products/generate-code", auth(d.Product.GenerateCodeHandler))
	mux.HandleFunc("/v1/products/expand-variants", auth(d.Product.ExpandVariantsHandler))
	mux.HandleFunc("/v1/products/combo-lines/recalc", auth(d.Product.RecalcComboLineHandler))

	mux.HandleFunc("/v1/products", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			d.Product.ListProductsHandler(w, r)
		case http.MethodPost:
			auth(writer(d.Product.CreateProductHandler))(w, r)
		default:
			http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/v1/products/", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			d.Product.GetProductByIDHandler(w, r)
		case http.MethodPut:
			auth(writer(d.Product.UpdateProductHandler))(w, r)
		case http.MethodDelete:
			auth(writer(d.Product.DeleteProductHandler))(w, r)
		default:
			http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		}
	})

	// --- 4. Cadastros auxiliares (marcas, categorias, unidades, impostos) ---
	mux.HandleFunc("/v1/brands", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			d.Brand.GetAllBrandsHandler(w, r)
		case http.MethodPost:
			auth(writer(d.Brand.CreateBrandHandler))(w, r)
		default:
			http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/v1/brands/", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			d.Brand.GetBrandByIDHandler(w, r)
		case http.MethodPut:
			auth(writer(d.Brand.UpdateBrandHandler))(w, r)
		case http.MethodDelete:
			auth(writer(d.Brand.DeleteBrandHandler))(w, r)
		default:
			http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/v1/categories", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			d.Category.GetAllCategoriesHandler(w, r)
		case http.MethodPost:
			auth(writer(d.Category.CreateCategoryHandler))(w, r)
		default:
			http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/v1/categories/", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			d.Category.GetCategoryByIDHandler(w, r)
		case http.MethodPut:
			auth(writer(d.Category.UpdateCategoryHandler))(w, r)
		case http.MethodDelete:
			auth(writer(d.Category.DeleteCategoryHandler))(w, r)
		default:
			http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/v1/units", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			d.Unit.GetAllUnitsHandler(w, r)
		case http.MethodPost:
			auth(writer(d.Unit.CreateUnitHandler))(w, r)
		default:
			http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/v1/units/", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			d.Unit.GetUnitByIDHandler(w, r)
		case http.MethodPut:
			auth(writer(d.Unit.UpdateUnitHandler))(w, r)
		case http.MethodDelete:
			auth(writer(d.Unit.DeleteUnitHandler))(w, r)
		default:
			http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/v1/taxes", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			d.Tax.GetAllTaxesHandler(w, r)
		case http.MethodPost:
			auth(writer(d.Tax.CreateTaxHandler))(w, r)
		default:
			http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/v1/taxes/", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			d.Tax.GetTaxByIDHandler(w, r)
		case http.MethodPut:
			auth(writer(d.Tax.UpdateTaxHandler))(w, r)
		case http.MethodDelete:
			auth(writer(d.Tax.DeleteTaxHandler))(w, r)
		default:
			http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		}
	})

	// --- 5. Armazéns ---
	mux.HandleFunc("/v1/warehouses", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			d.Warehouse.GetAllWarehousesHandler(w, r)
		case http.MethodPost:
			auth(writer(d.Warehouse.CreateWarehouseHandler))(w, r)
		default:
			http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/v1/warehouses/", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			d.Warehouse.GetWarehouseByIDHandler(w, r)
		case http.MethodPut:
			auth(writer(d.Warehouse.UpdateWarehouseHandler))(w, r)
		case http.MethodDelete:
			auth(writer(d.Warehouse.DeleteWarehouseHandler))(w, r)
		default:
			http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		}
	})

	// --- 6. Estoque ---
	mux.HandleFunc("/v1/stock", auth(d.Stock.GetStockHandler))
	mux.HandleFunc("/v1/stock/update", auth(writer(d.Stock.AdjustStockHandler)))

	// --- 7. Configurações gerais ---
	// Leitura exige apenas autenticação; escrita é restrita a administradores.
	mux.HandleFunc("/v1/settings", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			auth(d.Settings.GetSettingsHandler)(w, r)
		case http.MethodPut:
			auth(adminOnly(d.Settings.UpdateSettingsHandler))(w, r)
		default:
			http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		}
	})

	// --- 8. Middlewares globais ---
	// O rate limiter envolve todo o mux (janela fixa por IP, contada no Redis).
	return middleware.RateLimiter(d.Cache, d.RateLimitMaxRequests, d.RateLimitPeriod)(mux)
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
