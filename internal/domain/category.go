package domain

import "time"

// Category representa uma categoria do catálogo. Categorias podem ser
// aninhadas através de ParentID (uma subcategoria aponta para a categoria mãe).
type Category struct {
	ID               string    `json:"id"`
	Name             string    `json:"name" validate:"required"`
	ParentID         string    `json:"parent_id,omitempty"`
	Image            string    `json:"image,omitempty"`
	Icon             string    `json:"icon,omitempty"`
	Featured         bool      `json:"featured"`
	IsSyncDisable    bool      `json:"is_sync_disable"`
	PageTitle        string    `json:"page_title,omitempty"`
	ShortDescription string    `json:"short_description,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
