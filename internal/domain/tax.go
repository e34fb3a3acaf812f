package domain

import "time"

// Tax representa uma alíquota de imposto aplicável a produtos.
type Tax struct {
	ID        string    `json:"id"`
	Name      string    `json:"name" validate:"required"`
	Rate      float64   `json:"rate" validate:"gte=0,lte=100"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
