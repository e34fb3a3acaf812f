package productservice

import (
	"context"
	"math/rand"

	"github.com/google/uuid"

	"gocatalog/internal/domain"
	apperror "gocatalog/internal/errors"
	"gocatalog/internal/pkg/logger"
)

// ProductRepository define o contrato que este Serviço espera da camada de
// Persistência (DB, Cache).
type ProductRepository interface {
	Save(ctx context.Context, product domain.Product) (domain.Product, error)
	FindByID(ctx context.Context, id string) (domain.Product, error)
	FindAll(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	Update(ctx context.Context, product domain.Product) (domain.Product, error)
	Delete(ctx context.Context, id string) error
}

// Service é a estrutura que implementa a lógica de negócio de produtos.
type Service struct {
	repo   ProductRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Produto.
func NewService(repo ProductRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// CreateProduct valida e persiste um novo produto com suas sub-entidades
// (variantes, linhas de combo, estoques por armazém) como um único agregado.
func (s *Service) CreateProduct(ctx domain.Context, product domain.Product) (domain.Product, error) {
	s.logger.Debug("Iniciando criação de produto no serviço.", map[string]interface{}{"name": product.Name, "code": product.Code})

	product = s.prepareAggregate(product)

	if fields := Validate(product); !fields.Empty() {
		s.logger.Warn("Produto reprovado na validação.", map[string]interface{}{"code": product.Code, "violations": len(fields)})
		return domain.Product{}, apperror.NewFieldValidationError(fields)
	}

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	for i := range product.Variants {
		if product.Variants[i].ID == "" {
			product.Variants[i].ID = uuid.New().String()
		}
		product.Variants[i].ProductID = product.ID
	}

	ctxGo, ok := ctx.(context.Context)
	if !ok {
		ctxGo = context.Background()
		s.logger.Warn("Contexto de domínio inválido, usando context.Background() para CreateProduct", nil)
	}

	created, err := s.repo.Save(ctxGo, product)
	if err != nil {
		s.logger.Error("Falha ao salvar produto no repositório.", err)
		return domain.Product{}, apperror.NewInternalError("Falha interna ao criar produto.", err)
	}

	s.logger.Info("Produto criado com sucesso.", map[string]interface{}{"id": created.ID, "code": created.Code})
	return created, nil
}

// GetProductByID busca um produto pelo ID após validações de formato.
func (s *Service) GetProductByID(ctx domain.Context, id string) (domain.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.Product{}, apperror.NewValidationError("O ID do produto deve ser um UUID válido.")
	}

	ctxGo, ok := ctx.(context.Context)
	if !ok {
		ctxGo = context.Background()
		s.logger.Warn("Contexto de domínio inválido, usando context.Background() para GetProductByID", nil)
	}

	product, err := s.repo.FindByID(ctxGo, id)
	if err != nil {
		return domain.Product{}, err // Erros do repositório já são NotFoundError ou DBError
	}
	return product, nil
}

// GetProducts lista produtos com filtros e paginação.
func (s *Service) GetProducts(ctx domain.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultPageLimit
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}

	ctxGo, ok := ctx.(context.Context)
	if !ok {
		ctxGo = context.Background()
		s.logger.Warn("Contexto de domínio inválido, usando context.Background() para GetProducts", nil)
	}

	products, err := s.repo.FindAll(ctxGo, filter)
	if err != nil {
		s.logger.Error("Falha ao buscar produtos no repositório.", err)
		return nil, apperror.NewInternalError("Falha interna ao buscar produtos.", err)
	}
	return products, nil
}

// UpdateProduct valida e persiste a edição de um produto existente. A
// submissão entrega o agregado completo de uma vez, então as sub-entidades
// são substituídas em bloco.
func (s *Service) UpdateProduct(ctx domain.Context, product domain.Product) (domain.Product, error) {
	s.logger.Debug("Iniciando atualização de produto no serviço.", map[string]interface{}{"id": product.ID})

	if _, err := uuid.Parse(product.ID); err != nil {
		return domain.Product{}, apperror.NewValidationError("O ID do produto deve ser um UUID válido.")
	}

	product = s.prepareAggregate(product)

	if fields := Validate(product); !fields.Empty() {
		s.logger.Warn("Produto reprovado na validação de atualização.", map[string]interface{}{"id": product.ID, "violations": len(fields)})
		return domain.Product{}, apperror.NewFieldValidationError(fields)
	}

	for i := range product.Variants {
		if product.Variants[i].ID == "" {
			product.Variants[i].ID = uuid.New().String()
		}
		product.Variants[i].ProductID = product.ID
	}

	ctxGo, ok := ctx.(context.Context)
	if !ok {
		ctxGo = context.Background()
		s.logger.Warn("Contexto de domínio inválido, usando context.Background() para UpdateProduct", nil)
	}

	updated, err := s.repo.Update(ctxGo, product)
	if err != nil {
		s.logger.Error("Falha ao atualizar produto no repositório.", err)
		return domain.Product{}, err // Erros do repositório já são NotFoundError ou DBError
	}

	s.logger.Info("Produto atualizado com sucesso.", map[string]interface{}{"id": updated.ID})
	return updated, nil
}

// DeleteProduct remove um produto e suas sub-entidades.
func (s *Service) DeleteProduct(ctx domain.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperror.NewValidationError("O ID do produto deve ser um UUID válido.")
	}

	ctxGo, ok := ctx.(context.Context)
	if !ok {
		ctxGo = context.Background()
		s.logger.Warn("Contexto de domínio inválido, usando context.Background() para DeleteProduct", nil)
	}

	if err := s.repo.Delete(ctxGo, id); err != nil {
		s.logger.Error("Falha ao deletar produto no repositório.", err)
		return err
	}

	s.logger.Info("Produto deletado com sucesso.", map[string]interface{}{"id": id})
	return nil
}

// prepareAggregate aplica o redutor de invariantes, descarta sub-entidades
// que só têm sentido para outro tipo/flag e garante que todo subtotal de
// linha de combo está consistente antes da validação e da persistência.
func (s *Service) prepareAggregate(product domain.Product) domain.Product {
	product = ApplyInvariants(product)

	if product.Type != domain.ProductTypeCombo {
		product.ComboProducts = nil
	}
	if !product.IsVariant {
		product.Variants = nil
	}
	if !product.IsInitialStock {
		product.InitialStock = nil
	}
	if !product.IsDiffPrice {
		product.DiffPrices = nil
	}

	for i := range product.ComboProducts {
		product.ComboProducts[i] = RecomputeLine(product.ComboProducts[i])
	}

	return product
}

const codeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateCode produz um código de produto aleatório no formato PRD-XXXXXXX
// (7 caracteres base 36 maiúsculos), como o botão "gerar código" do formulário.
func GenerateCode() string {
	buf := make([]byte, 7)
	for i := range buf {
		buf[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
	}
	return "PRD-" + string(buf)
}
