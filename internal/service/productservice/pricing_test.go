package productservice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gocatalog/internal/domain"
	apperror "gocatalog/internal/errors"
	"gocatalog/internal/service/productservice"
)

func TestRecomputeLine_Formula(t *testing.T) {
	// Cenário de referência: 2 * 10 * (1 + 5/100) = 21.0
	line := domain.ComboLine{Quantity: 2, UnitPrice: 10, WastagePercent: 5}
	result := productservice.RecomputeLine(line)
	assert.InDelta(t, 21.0, result.Subtotal, 1e-9)
}

func TestRecomputeLine_ZeroWastage(t *testing.T) {
	// wastage 0 ⇒ subtotal = quantidade * preço unitário, sem markup
	line := domain.ComboLine{Quantity: 3, UnitPrice: 7.5, WastagePercent: 0}
	result := productservice.RecomputeLine(line)
	assert.InDelta(t, 22.5, result.Subtotal, 1e-9)
}

func TestRecomputeLine_ZeroQuantity(t *testing.T) {
	line := domain.ComboLine{Quantity: 0, UnitPrice: 99.9, WastagePercent: 10}
	result := productservice.RecomputeLine(line)
	assert.InDelta(t, 0.0, result.Subtotal, 1e-9)
}

func TestRecomputeLine_NegativeInputsNotRejected(t *testing.T) {
	// Valores negativos passam pelo cálculo sem rejeição (a não
	// negatividade é regra do chamador, não do calculador).
	line := domain.ComboLine{Quantity: -2, UnitPrice: 10, WastagePercent: 0}
	result := productservice.RecomputeLine(line)
	assert.InDelta(t, -20.0, result.Subtotal, 1e-9)
}

func TestParseNumericOrZero(t *testing.T) {
	assert.Equal(t, 12.5, productservice.ParseNumericOrZero("12.5"))
	assert.Equal(t, 12.5, productservice.ParseNumericOrZero("  12.5  "))
	assert.Equal(t, -3.0, productservice.ParseNumericOrZero("-3"))
	assert.Equal(t, 0.0, productservice.ParseNumericOrZero(""))
	assert.Equal(t, 0.0, productservice.ParseNumericOrZero("abc"))
	assert.Equal(t, 0.0, productservice.ParseNumericOrZero("12,5"))
	// ParseFloat aceita esses literais, mas valor não finito vale 0
	assert.Equal(t, 0.0, productservice.ParseNumericOrZero("NaN"))
	assert.Equal(t, 0.0, productservice.ParseNumericOrZero("Inf"))
	assert.Equal(t, 0.0, productservice.ParseNumericOrZero("-Inf"))
}

func TestAddComboLine_Defaults(t *testing.T) {
	source := domain.Product{
		ID:     "prod-1",
		Name:   "Arroz 5kg",
		Code:   "PRD-ARZ5KG1",
		UnitID: "unit-1",
		Cost:   18,
		Price:  25,
	}

	lines := productservice.AddComboLine(nil, source)

	assert.Len(t, lines, 1)
	assert.Equal(t, "prod-1", lines[0].ProductID)
	assert.Equal(t, "Arroz 5kg", lines[0].ProductName)
	assert.Equal(t, "PRD-ARZ5KG1", lines[0].ProductCode)
	assert.Equal(t, 1.0, lines[0].Quantity)
	assert.Equal(t, 0.0, lines[0].WastagePercent)
	// quantidade 1 e wastage 0 ⇒ subtotal = preço unitário
	assert.InDelta(t, 25.0, lines[0].Subtotal, 1e-9)
}

func TestAddComboLine_IgnoresDuplicateProduct(t *testing.T) {
	source := domain.Product{ID: "prod-1", Name: "Arroz", Code: "PRD-1", Price: 25}
	lines := productservice.AddComboLine(nil, source)
	lines = productservice.AddComboLine(lines, source)

	assert.Len(t, lines, 1)
}

func TestUpdateComboLine_RecomputesSubtotal(t *testing.T) {
	lines := []domain.ComboLine{{ProductID: "p1", Quantity: 1, UnitPrice: 10, WastagePercent: 0, Subtotal: 10}}

	updated, err := productservice.UpdateComboLine(lines, 0, productservice.FieldQuantity, "2")
	assert.NoError(t, err)
	assert.InDelta(t, 20.0, updated[0].Subtotal, 1e-9)

	updated, err = productservice.UpdateComboLine(updated, 0, productservice.FieldWastagePercent, "5")
	assert.NoError(t, err)
	assert.InDelta(t, 21.0, updated[0].Subtotal, 1e-9)

	// A lista original não é mutada
	assert.InDelta(t, 10.0, lines[0].Subtotal, 1e-9)
}

func TestUpdateComboLine_CoercesInvalidTextToZero(t *testing.T) {
	lines := []domain.ComboLine{{ProductID: "p1", Quantity: 2, UnitPrice: 10, Subtotal: 20}}

	updated, err := productservice.UpdateComboLine(lines, 0, productservice.FieldUnitPrice, "não-numérico")
	assert.NoError(t, err)
	assert.Equal(t, 0.0, updated[0].UnitPrice)
	assert.InDelta(t, 0.0, updated[0].Subtotal, 1e-9)
}

func TestUpdateComboLine_InvalidIndexAndField(t *testing.T) {
	lines := []domain.ComboLine{{ProductID: "p1"}}

	_, err := productservice.UpdateComboLine(lines, 5, productservice.FieldQuantity, "1")
	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)

	_, err = productservice.UpdateComboLine(lines, 0, "unit_cost", "1")
	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
}

func TestRemoveComboLine(t *testing.T) {
	lines := []domain.ComboLine{{ProductID: "a"}, {ProductID: "b"}, {ProductID: "c"}}

	updated, err := productservice.RemoveComboLine(lines, 1)
	assert.NoError(t, err)
	assert.Len(t, updated, 2)
	assert.Equal(t, "a", updated[0].ProductID)
	assert.Equal(t, "c", updated[1].ProductID)

	_, err = productservice.RemoveComboLine(updated, -1)
	assert.Error(t, err)
}
