package domain

import "time"

// StockLevel representa o nível de estoque de um produto em um armazém.
// Inclui uma coluna 'version' para controle de concorrência otimista.
type StockLevel struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	WarehouseID string    `json:"warehouse_id"`
	Quantity    float64   `json:"quantity"`
	Price       float64   `json:"price,omitempty"` // Preço diferenciado por armazém (is_diff_price)
	Version     int       `json:"version"`         // Para Controle de Concorrência Otimista (OCC)
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// StockAdjustmentRequest é o payload esperado para a requisição de ajuste de estoque.
type StockAdjustmentRequest struct {
	ProductID   string  `json:"product_id" validate:"required,uuid"`
	WarehouseID string  `json:"warehouse_id" validate:"required,uuid"`
	Delta       float64 `json:"delta"` // Quantidade a ser adicionada/removida (pode ser negativa)
}
