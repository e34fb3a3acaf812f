package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	// Pacotes de infraestrutura e utilitários
	"gocatalog/config"
	"gocatalog/internal/pkg/cache"
	"gocatalog/internal/pkg/database"
	"gocatalog/internal/pkg/logger"
	"gocatalog/internal/pkg/token"

	// Camadas para Injeção de Dependências
	"gocatalog/internal/api/brand"
	"gocatalog/internal/api/category"
	"gocatalog/internal/api/product"
	"gocatalog/internal/api/router"
	"gocatalog/internal/api/settings"
	"gocatalog/internal/api/stock"
	"gocatalog/internal/api/tax"
	"gocatalog/internal/api/unit"
	"gocatalog/internal/api/user"
	"gocatalog/internal/api/warehouse"
	"gocatalog/internal/repository/brandrepo"
	"gocatalog/internal/repository/categoryrepo"
	"gocatalog/internal/repository/productrepo"
	"gocatalog/internal/repository/settingsrepo"
	"gocatalog/internal/repository/stockrepo"
	"gocatalog/internal/repository/taxrepo"
	"gocatalog/internal/repository/unitrepo"
	"gocatalog/internal/repository/userrepo"
	"gocatalog/internal/repository/warehouserepo"
	"gocatalog/internal/service/brandservice"
	"gocatalog/internal/service/categoryservice"
	"gocatalog/internal/service/productservice"
	"gocatalog/internal/service/settingsservice"
	"gocatalog/internal/service/stockservice"
	"gocatalog/internal/service/taxservice"
	"gocatalog/internal/service/unitservice"
	"gocatalog/internal/service/userservice"
	"gocatalog/internal/service/warehouseservice"
)

// @title GoCatalog API
// @version 1.0
// @description Serviço de catálogo de produtos: cadastros, preços, variantes, combos e estoque.
// @BasePath /v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	// 0. CARREGAR VARIÁVEIS DE AMBIENTE (.env)
	// Se o arquivo .env não for encontrado, as variáveis essenciais podem
	// estar no ambiente do sistema (ex: Docker).
	if err := godotenv.Load(); err != nil {
		log.Println("Aviso: Arquivo .env não encontrado. Carregando configs apenas do ambiente do sistema.")
	}

	// 1. Configuração e Inicialização
	cfg := config.LoadConfig()
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("Configurações carregadas.", nil)

	// 2. Conexão com Recursos de Infraestrutura

	// A. Banco de Dados (PostgreSQL)
	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	defer db.Close()
	log.Info("Conexão PostgreSQL estabelecida.", nil)

	// B. Cache (Redis)
	cacheClient := cache.NewRedisClient(cfg.RedisAddr)
	log.Info("Conexão Redis estabelecida.", nil)

	// C. Serviço de Tokens (JWT)
	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)

	// 3. INJEÇÃO DE DEPENDÊNCIAS
	// Ordem: Repository -> Service -> Handler

	productRepo := productrepo.NewProductRepository(db, cacheClient, cfg.DBTimeout, cfg.CacheTTL)
	productSvc := productservice.NewService(productRepo, log)
	productHandler := product.NewHandler(productSvc, log)

	brandRepo := brandrepo.NewBrandRepository(db, cfg.DBTimeout, log)
	brandSvc := brandservice.NewService(brandRepo, log)
	brandHandler := brand.NewHandler(brandSvc, log)

	categoryRepo := categoryrepo.NewCategoryRepository(db, cfg.DBTimeout, log)
	categorySvc := categoryservice.NewService(categoryRepo, log)
	categoryHandler := category.NewHandler(categorySvc, log)

	unitRepo := unitrepo.NewUnitRepository(db, cfg.DBTimeout, log)
	unitSvc := unitservice.NewService(unitRepo, log)
	unitHandler := unit.NewHandler(unitSvc, log)

	taxRepo := taxrepo.NewTaxRepository(db, cfg.DBTimeout, log)
	taxSvc := taxservice.NewService(taxRepo, log)
	taxHandler := tax.NewHandler(taxSvc, log)

	warehouseRepo := warehouserepo.NewWarehouseRepository(db, cfg.DBTimeout, log)
	warehouseSvc := warehouseservice.NewService(warehouseRepo, log)
	warehouseHandler := warehouse.NewHandler(warehouseSvc, log)

	stockRepo := stockrepo.NewStockRepository(db, cfg.DBTimeout, log)
	stockSvc := stockservice.NewService(stockRepo, log)
	stockHandler := stock.NewHandler(stockSvc, log)

	settingsRepo := settingsrepo.NewSettingsRepository(db, cfg.DBTimeout, log)
	settingsSvc := settingsservice.NewService(settingsRepo, log)
	settingsHandler := settings.NewHandler(settingsSvc, log)

	userRepo := userrepo.NewUserRepository(db, cfg.DBTimeout, log)
	userSvc := userservice.NewService(userRepo, tokenSvc)
	userHandler := user.NewHandler(userSvc, log)

	log.Debug("Camadas de repositório, serviço e handler inicializadas.", nil)

	// 4. Configuração e Início do Roteador/Servidor
	r := router.NewRouter(router.Deps{
		Product:   productHandler,
		Brand:     brandHandler,
		Category:  categoryHandler,
		Unit:      unitHandler,
		Tax:       taxHandler,
		Warehouse: warehouseHandler,
		Stock:     stockHandler,
		Settings:  settingsHandler,
		User:      userHandler,

		TokenSvc: tokenSvc,
		Cache:    cacheClient,

		RateLimitMaxRequests: cfg.RateLimitMaxRequests,
		RateLimitPeriod:      cfg.RateLimitPeriod,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 5. Execução e Graceful Shutdown
	go func() {
		log.Info("Servidor GoCatalog ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Servidor falhou.", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Desligamento do servidor forçado.", err)
	}

	log.Info("Servidor encerrado com sucesso.", nil)
}
