package productservice_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gocatalog/internal/domain"
	"gocatalog/internal/service/productservice"
)

// validProduct devolve um produto standard que passa em todas as regras.
func validProduct() domain.Product {
	return domain.Product{
		Type:             domain.ProductTypeStandard,
		Name:             "Feijão Preto 1kg",
		Code:             "PRD-FJP1KG1",
		BarcodeSymbology: domain.SymbologyC128,
		CategoryID:       "cat-1",
		Cost:             8,
		Price:            12.5,
		TaxMethod:        domain.TaxExclusive,
	}
}

func TestValidate_ValidProductHasNoErrors(t *testing.T) {
	fields := productservice.Validate(validProduct())
	assert.True(t, fields.Empty(), "esperava mapa vazio, obtido: %v", fields)
}

func TestValidate_RequiredIdentityFields(t *testing.T) {
	p := validProduct()
	p.Name = ""
	p.Code = ""
	p.CategoryID = ""

	fields := productservice.Validate(p)

	assert.Equal(t, "Product name is required", fields["name"])
	assert.Equal(t, "Product code is required", fields["code"])
	assert.Equal(t, "Category is required", fields["category_id"])
}

func TestValidate_NegativeCostAndPrice(t *testing.T) {
	p := validProduct()
	p.Cost = -1
	p.Price = -0.01

	fields := productservice.Validate(p)

	assert.Contains(t, fields, "cost")
	assert.Contains(t, fields, "price")
}

// TestValidate_CostSkippedForCombo: o custo de um combo é derivado das
// linhas, então a regra de não negatividade não se aplica.
func TestValidate_CostSkippedForCombo(t *testing.T) {
	p := validProduct()
	p.Type = domain.ProductTypeCombo
	p.Cost = -1

	fields := productservice.Validate(p)

	assert.NotContains(t, fields, "cost")
}

func TestValidate_DigitalRequiresFile(t *testing.T) {
	p := validProduct()
	p.Type = domain.ProductTypeDigital
	p.File = ""

	fields := productservice.Validate(p)
	assert.Equal(t, "File is required for digital products", fields["file"])

	p.File = "manual-de-uso.pdf"
	fields = productservice.Validate(p)
	assert.NotContains(t, fields, "file")
}

func TestValidate_PromotionRequiresPriceAndDates(t *testing.T) {
	p := validProduct()
	p.Promotion = true
	p.PromotionPrice = 0
	p.StartingDate = nil
	p.LastDate = nil

	fields := productservice.Validate(p)

	assert.Equal(t, "Promotion price is required when promotion is enabled", fields["promotion_price"])
	assert.Equal(t, "Start and end dates are required when promotion is enabled", fields["starting_date"])

	// Uma única data presente ainda viola a regra 8
	now := time.Now()
	p.StartingDate = &now
	fields = productservice.Validate(p)
	assert.Contains(t, fields, "starting_date")

	// Janela completa e preço > 0 ⇒ sem erros de promoção
	end := now.Add(48 * time.Hour)
	p.LastDate = &end
	p.PromotionPrice = 9.99
	fields = productservice.Validate(p)
	assert.NotContains(t, fields, "promotion_price")
	assert.NotContains(t, fields, "starting_date")
}

// TestValidate_PromotionOffRemovesRequirements: desligar promotion remove
// as duas exigências independentemente dos demais campos.
func TestValidate_PromotionOffRemovesRequirements(t *testing.T) {
	p := validProduct()
	p.Promotion = false
	p.PromotionPrice = 0
	p.StartingDate = nil
	p.LastDate = nil

	fields := productservice.Validate(p)

	assert.NotContains(t, fields, "promotion_price")
	assert.NotContains(t, fields, "starting_date")
}

// TestValidate_OnlineSEOFieldsIndependent: omitir apenas um dos campos de
// SEO produz exatamente um erro, não dois.
func TestValidate_OnlineSEOFieldsIndependent(t *testing.T) {
	p := validProduct()
	p.IsOnline = true
	p.MetaTitle = ""
	p.MetaDescription = ""

	fields := productservice.Validate(p)
	assert.Equal(t, "Meta title is required for online products", fields["meta_title"])
	assert.Equal(t, "Meta description is required for online products", fields["meta_description"])

	p.MetaTitle = "Feijão Preto 1kg"
	fields = productservice.Validate(p)
	assert.NotContains(t, fields, "meta_title")
	assert.Contains(t, fields, "meta_description")

	p.IsOnline = false
	p.MetaTitle = ""
	fields = productservice.Validate(p)
	assert.NotContains(t, fields, "meta_title")
	assert.NotContains(t, fields, "meta_description")
}

// TestValidate_CollectsAllViolationsAtOnce: as violações não são
// curto-circuitadas: todas aparecem em uma única avaliação.
func TestValidate_CollectsAllViolationsAtOnce(t *testing.T) {
	p := domain.Product{
		Type:             domain.ProductTypeDigital,
		BarcodeSymbology: domain.SymbologyEAN13,
		TaxMethod:        domain.TaxInclusive,
		Promotion:        true,
		IsOnline:         true,
		Price:            -5,
	}

	fields := productservice.Validate(p)

	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "code")
	assert.Contains(t, fields, "category_id")
	assert.Contains(t, fields, "price")
	assert.Contains(t, fields, "file")
	assert.Contains(t, fields, "promotion_price")
	assert.Contains(t, fields, "starting_date")
	assert.Contains(t, fields, "meta_title")
	assert.Contains(t, fields, "meta_description")
}
