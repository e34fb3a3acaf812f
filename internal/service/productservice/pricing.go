package productservice

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gocatalog/internal/domain"
	apperror "gocatalog/internal/errors"
)

// Campos de uma linha de combo que dirigem o recálculo do subtotal.
const (
	FieldWastagePercent = "wastage_percent"
	FieldQuantity       = "quantity"
	FieldUnitPrice      = "unit_price"
)

// RecomputeLine devolve a linha com o Subtotal derivado dos três campos que
// o dirigem: subtotal = quantity * unit_price * (1 + wastage_percent/100).
// O cálculo é ansioso (o subtotal é persistido junto com a linha), então
// esta função deve ser chamada após toda mutação de Quantity, UnitPrice ou
// WastagePercent. Valores negativos não são rejeitados aqui; a não
// negatividade, quando desejada, é regra do chamador.
func RecomputeLine(line domain.ComboLine) domain.ComboLine {
	line.Subtotal = line.Quantity * line.UnitPrice * (1 + line.WastagePercent/100)
	return line
}

// ParseNumericOrZero converte texto numérico permissivamente: entrada vazia
// ou não numérica vale 0 (os campos de input do formulário são tolerantes,
// e valor malformado nunca deve derrubar o cálculo).
func ParseNumericOrZero(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		// ParseFloat aceita "NaN" e "Inf"; um subtotal não finito nunca
		// pode ser persistido, então também valem 0.
		return 0
	}
	return v
}

// AddComboLine acrescenta uma linha de combo derivada do produto de origem.
// Um produto já presente na lista é ignorado (sem duplicatas); a linha nova
// entra com quantidade 1 e sem wastage, logo subtotal = preço unitário.
func AddComboLine(lines []domain.ComboLine, source domain.Product) []domain.ComboLine {
	for _, l := range lines {
		if l.ProductID == source.ID {
			return lines
		}
	}

	line := domain.ComboLine{
		ProductID:   source.ID,
		ProductName: source.Name,
		ProductCode: source.Code,
		Quantity:    1,
		UnitID:      source.UnitID,
		UnitCost:    source.Cost,
		UnitPrice:   source.Price,
	}
	return append(lines, RecomputeLine(line))
}

// UpdateComboLine aplica uma edição de campo vinda do formulário à linha na
// posição index e recalcula o subtotal. O valor chega como texto e é
// coagido com ParseNumericOrZero. A lista original não é mutada.
func UpdateComboLine(lines []domain.ComboLine, index int, field string, raw string) ([]domain.ComboLine, error) {
	if index < 0 || index >= len(lines) {
		return nil, apperror.NewValidationError(fmt.Sprintf("Índice de linha de combo inválido: %d.", index))
	}

	updated := make([]domain.ComboLine, len(lines))
	copy(updated, lines)

	value := ParseNumericOrZero(raw)
	switch field {
	case FieldWastagePercent:
		updated[index].WastagePercent = value
	case FieldQuantity:
		updated[index].Quantity = value
	case FieldUnitPrice:
		updated[index].UnitPrice = value
	default:
		return nil, apperror.NewValidationError(fmt.Sprintf("Campo de linha de combo desconhecido: %q.", field))
	}

	updated[index] = RecomputeLine(updated[index])
	return updated, nil
}

// RemoveComboLine remove a linha na posição index. A identidade das linhas
// é puramente posicional, não há renumeração.
func RemoveComboLine(lines []domain.ComboLine, index int) ([]domain.ComboLine, error) {
	if index < 0 || index >= len(lines) {
		return nil, apperror.NewValidationError(fmt.Sprintf("Índice de linha de combo inválido: %d.", index))
	}

	updated := make([]domain.ComboLine, 0, len(lines)-1)
	updated = append(updated, lines[:index]...)
	updated = append(updated, lines[index+1:]...)
	return updated, nil
}
