package domain

import (
	"time"
)

// Warehouse representa um armazém físico ou lógico no sistema.
type Warehouse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name" validate:"required"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty" validate:"omitempty,email"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
