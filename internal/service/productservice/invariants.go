package productservice

import (
	"gocatalog/internal/domain"
)

// ApplyInvariants é o redutor puro que aplica as exclusões mútuas entre as
// flags do produto. Ele deve ser chamado após TODA mutação de campo, como
// uma única atualização combinada, nunca como três escritas separadas que
// poderiam expor um estado intermediário inconsistente.
//
// Regras:
//   - type = combo  ⇒ is_variant = false, is_diff_price = false
//   - is_batch      ⇒ is_variant = false, is_initial_stock = false, featured = false
//   - is_imei       ⇒ is_initial_stock = false, featured = false
//   - is_variant    ⇒ is_initial_stock = false
func ApplyInvariants(p domain.Product) domain.Product {
	if p.Type == domain.ProductTypeCombo {
		p.IsVariant = false
		p.IsDiffPrice = false
	}
	if p.IsBatch {
		p.IsVariant = false
		p.IsInitialStock = false
		p.Featured = false
	}
	if p.IsImei {
		p.IsInitialStock = false
		p.Featured = false
	}
	if p.IsVariant {
		p.IsInitialStock = false
	}
	return p
}
