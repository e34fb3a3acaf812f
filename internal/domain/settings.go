package domain

import "time"

// Nomes dos módulos opcionais que podem ser habilitados na instalação.
const (
	ModuleEcommerce   = "ecommerce"
	ModuleWooCommerce = "woocommerce"
	ModuleRestaurant  = "restaurant"
)

// GeneralSettings guarda a configuração global da instalação, em particular
// o conjunto de módulos habilitados que condiciona quais grupos de campos
// do produto são exibidos e validados.
type GeneralSettings struct {
	Modules   []string  `json:"modules"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasModule é um teste puro de pertencimento ao conjunto de módulos habilitados.
func (s GeneralSettings) HasModule(name string) bool {
	for _, m := range s.Modules {
		if m == name {
			return true
		}
	}
	return false
}

// ShowsSEOFields informa se os campos de SEO (meta_title/meta_description)
// devem ser exibidos. Interage com as regras de validação de is_online, que
// só tem sentido quando um destes módulos está ativo.
func (s GeneralSettings) ShowsSEOFields() bool {
	return s.HasModule(ModuleEcommerce) || s.HasModule(ModuleRestaurant)
}

// ShowsWooSyncToggle informa se a opção "Disable WooCommerce Sync" é oferecida.
func (s GeneralSettings) ShowsWooSyncToggle() bool {
	return s.HasModule(ModuleWooCommerce)
}

// ShowsOnlineToggles informa se os toggles "Sell Online"/"In Stock" são oferecidos.
func (s GeneralSettings) ShowsOnlineToggles() bool {
	return s.HasModule(ModuleEcommerce) || s.HasModule(ModuleRestaurant)
}

// ShowsAddonToggle informa se a opção "Addon Item" é oferecida.
func (s GeneralSettings) ShowsAddonToggle() bool {
	return s.HasModule(ModuleRestaurant)
}
