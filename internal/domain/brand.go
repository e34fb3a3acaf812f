package domain

import "time"

// Brand representa uma marca do catálogo.
type Brand struct {
	ID               string    `json:"id"`
	Title            string    `json:"title" validate:"required"`
	Image            string    `json:"image,omitempty"`
	PageTitle        string    `json:"page_title,omitempty"`
	ShortDescription string    `json:"short_description,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
