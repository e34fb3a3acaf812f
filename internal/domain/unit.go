package domain

import "time"

// UnitOperator define como uma unidade derivada se converte para a unidade base.
type UnitOperator string

const (
	UnitMultiply UnitOperator = "*"
	UnitDivide   UnitOperator = "/"
)

// Unit representa uma unidade de medida. Unidades derivadas (ex: Caixa = 12
// Peças) apontam para a unidade base com um operador e um valor de operação.
type Unit struct {
	ID             string       `json:"id"`
	Code           string       `json:"code" validate:"required"`
	Name           string       `json:"name" validate:"required"`
	BaseUnitID     string       `json:"base_unit,omitempty"`
	Operator       UnitOperator `json:"operator,omitempty" validate:"omitempty,oneof=* /"`
	OperationValue float64      `json:"operation_value,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}
