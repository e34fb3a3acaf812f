package domain

import (
	"time"
)

// ProductType define os tipos de produto suportados pelo catálogo.
type ProductType string

const (
	ProductTypeStandard ProductType = "standard"
	ProductTypeCombo    ProductType = "combo"
	ProductTypeDigital  ProductType = "digital"
	ProductTypeService  ProductType = "service"
)

// BarcodeSymbology define as simbologias de código de barras aceitas na impressão.
type BarcodeSymbology string

const (
	SymbologyC128  BarcodeSymbology = "C128"
	SymbologyC39   BarcodeSymbology = "C39"
	SymbologyUPCA  BarcodeSymbology = "UPCA"
	SymbologyUPCE  BarcodeSymbology = "UPCE"
	SymbologyEAN8  BarcodeSymbology = "EAN8"
	SymbologyEAN13 BarcodeSymbology = "EAN13"
)

// TaxMethod indica se o imposto está embutido no preço (inclusive) ou não (exclusive).
type TaxMethod string

const (
	TaxExclusive TaxMethod = "exclusive"
	TaxInclusive TaxMethod = "inclusive"
)

// WarrantyUnit é a unidade de tempo dos pares de garantia (warranty/guarantee).
type WarrantyUnit string

const (
	WarrantyDays   WarrantyUnit = "days"
	WarrantyMonths WarrantyUnit = "months"
	WarrantyYears  WarrantyUnit = "years"
)

// Product representa o agregado principal do catálogo (a Entidade).
// As tags `validate` alimentam as regras escalares do formulário;
// as regras cruzadas (digital/promoção/online) vivem no productservice.
type Product struct {
	ID               string           `json:"id"`
	Type             ProductType      `json:"type" validate:"required,oneof=standard combo digital service"`
	Name             string           `json:"name" validate:"required"`
	Code             string           `json:"code" validate:"required"`
	BarcodeSymbology BarcodeSymbology `json:"barcode_symbology" validate:"required,oneof=C128 C39 UPCA UPCE EAN8 EAN13"`

	// Referências de catálogo (resolvidas pelos serviços de lookup).
	File           string `json:"file,omitempty"`
	BrandID        string `json:"brand_id,omitempty"`
	CategoryID     string `json:"category_id" validate:"required"`
	UnitID         string `json:"unit_id,omitempty"`
	SaleUnitID     string `json:"sale_unit_id,omitempty"`
	PurchaseUnitID string `json:"purchase_unit_id,omitempty"`
	TaxID          string `json:"tax_id,omitempty"`

	// Preços e metas.
	Cost               float64   `json:"cost" validate:"gte=0"`
	ProfitMargin       float64   `json:"profit_margin,omitempty"`
	Price              float64   `json:"price" validate:"gte=0"`
	WholesalePrice     float64   `json:"wholesale_price,omitempty"`
	DailySaleObjective float64   `json:"daily_sale_objective,omitempty"`
	AlertQuantity      float64   `json:"alert_quantity,omitempty"`
	TaxMethod          TaxMethod `json:"tax_method" validate:"required,oneof=exclusive inclusive"`

	// Garantias: pares (valor, unidade).
	Warranty      int          `json:"warranty,omitempty"`
	WarrantyUnit  WarrantyUnit `json:"warranty_type,omitempty" validate:"omitempty,oneof=days months years"`
	Guarantee     int          `json:"guarantee,omitempty"`
	GuaranteeUnit WarrantyUnit `json:"guarantee_type,omitempty" validate:"omitempty,oneof=days months years"`

	ProductDetails string   `json:"product_details,omitempty"`
	Qty            float64  `json:"qty"`
	Images         []string `json:"images,omitempty"`
	ProductTags    []string `json:"product_tags,omitempty"`

	// Flags de comportamento. As exclusões mútuas entre elas são aplicadas
	// pelo redutor ApplyInvariants no productservice, nunca campo a campo.
	IsVariant      bool `json:"is_variant"`
	IsBatch        bool `json:"is_batch"`
	IsImei         bool `json:"is_imei"`
	IsEmbedded     bool `json:"is_embeded"`
	IsInitialStock bool `json:"is_initial_stock"`
	IsDiffPrice    bool `json:"is_diff_price"`
	Featured       bool `json:"featured"`
	Promotion      bool `json:"promotion"`
	IsActive       bool `json:"is_active"`
	IsSyncDisable  bool `json:"is_sync_disable"`
	IsOnline       bool `json:"is_online"`
	IsAddon        bool `json:"is_addon"`
	InStock        bool `json:"in_stock"`

	// Janela de promoção (válida apenas quando Promotion = true).
	PromotionPrice float64    `json:"promotion_price,omitempty"`
	StartingDate   *time.Time `json:"starting_date,omitempty"`
	LastDate       *time.Time `json:"last_date,omitempty"`

	// Campos de SEO (válidos apenas quando IsOnline = true).
	MetaTitle       string `json:"meta_title,omitempty"`
	MetaDescription string `json:"meta_description,omitempty"`

	RelatedProducts []string `json:"related_products,omitempty"`

	// Sub-entidades de posse exclusiva do produto (sem compartilhamento).
	ComboProducts []ComboLine      `json:"combo_products,omitempty"`
	Variants      []ProductVariant `json:"variants,omitempty"`
	InitialStock  []WarehouseStock `json:"initial_stock,omitempty"`
	DiffPrices    []WarehousePrice `json:"diff_prices,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ComboLine é uma linha de produto combo. O Subtotal é derivado (nunca
// editado à mão) e deve ser recalculado após toda mutação de Quantity,
// UnitPrice ou WastagePercent (ver productservice.RecomputeLine).
type ComboLine struct {
	ProductID      string  `json:"product_id"`
	VariantID      string  `json:"variant_id,omitempty"`
	ProductName    string  `json:"product_name"`
	ProductCode    string  `json:"product_code"`
	WastagePercent float64 `json:"wastage_percent"`
	Quantity       float64 `json:"quantity"`
	UnitID         string  `json:"unit_id,omitempty"`
	UnitCost       float64 `json:"unit_cost"`
	UnitPrice      float64 `json:"unit_price"`
	Subtotal       float64 `json:"subtotal"`
}

// ProductVariant é uma variante persistida de um produto (já com código de
// item e ajustes de custo/preço preenchidos pelo usuário).
type ProductVariant struct {
	ID              string  `json:"id"`
	ProductID       string  `json:"product_id"`
	Option          string  `json:"option"`
	Value           string  `json:"value"`
	ItemCode        string  `json:"item_code"`
	AdditionalCost  float64 `json:"additional_cost"`
	AdditionalPrice float64 `json:"additional_price"`
}

// VariantOption é um par (opção, valores separados por vírgula) ainda em
// edição no formulário, antes da expansão.
type VariantOption struct {
	Option string `json:"option"`
	Value  string `json:"value"`
}

// VariantCandidate é uma linha concreta gerada pela expansão de opções,
// ainda sem código de item nem preços.
type VariantCandidate struct {
	Option string `json:"option"`
	Value  string `json:"value"`
}

// WarehouseStock associa uma quantidade inicial de estoque a um armazém.
type WarehouseStock struct {
	WarehouseID string  `json:"warehouse_id"`
	Quantity    float64 `json:"quantity"`
}

// WarehousePrice associa um preço diferenciado a um armazém.
type WarehousePrice struct {
	WarehouseID string  `json:"warehouse_id"`
	Price       float64 `json:"price"`
}

// FieldErrors é o mapa campo→mensagem produzido pela validação do produto.
// Todas as violações são coletadas de uma vez (sem curto-circuito) para que
// o formulário consiga exibir todos os problemas simultaneamente.
type FieldErrors map[string]string

// Empty informa se a validação não encontrou nenhuma violação.
func (f FieldErrors) Empty() bool { return len(f) == 0 }

// ProductFilter define os parâmetros de busca e paginação da listagem.
type ProductFilter struct {
	Page       int
	Limit      int
	Name       string
	Code       string
	CategoryID string
	ActiveOnly bool
}

// ProductRepository é o contrato que a camada de Serviço espera da camada
// de Persistência (DB/Cache) para o agregado Product.
type ProductRepository interface {
	Save(ctx Context, product Product) (Product, error)
	FindByID(ctx Context, id string) (Product, error)
	FindAll(ctx Context, filter ProductFilter) ([]Product, error)
	Update(ctx Context, product Product) (Product, error)
	Delete(ctx Context, id string) error
}
