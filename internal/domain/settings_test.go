package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gocatalog/internal/domain"
)

func TestHasModule(t *testing.T) {
	s := domain.GeneralSettings{Modules: []string{domain.ModuleEcommerce, domain.ModuleRestaurant}}

	assert.True(t, s.HasModule(domain.ModuleEcommerce))
	assert.True(t, s.HasModule(domain.ModuleRestaurant))
	assert.False(t, s.HasModule(domain.ModuleWooCommerce))
	assert.False(t, s.HasModule("inventario"))
}

func TestHasModule_Empty(t *testing.T) {
	var s domain.GeneralSettings

	assert.False(t, s.HasModule(domain.ModuleEcommerce))
}

// TestGatingPorModulo verifica quais grupos de campos cada combinação de
// módulos habilita no formulário de produto.
func TestGatingPorModulo(t *testing.T) {
	tests := []struct {
		name        string
		modules     []string
		seo         bool
		wooSync     bool
		online      bool
		addon       bool
	}{
		{
			name:    "nenhum módulo",
			modules: nil,
		},
		{
			name:    "somente ecommerce",
			modules: []string{domain.ModuleEcommerce},
			seo:     true,
			online:  true,
		},
		{
			name:    "somente restaurante",
			modules: []string{domain.ModuleRestaurant},
			seo:     true,
			online:  true,
			addon:   true,
		},
		{
			name:    "somente woocommerce",
			modules: []string{domain.ModuleWooCommerce},
			wooSync: true,
		},
		{
			name:    "todos os módulos",
			modules: []string{domain.ModuleEcommerce, domain.ModuleWooCommerce, domain.ModuleRestaurant},
			seo:     true,
			wooSync: true,
			online:  true,
			addon:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := domain.GeneralSettings{Modules: tt.modules}

			assert.Equal(t, tt.seo, s.ShowsSEOFields())
			assert.Equal(t, tt.wooSync, s.ShowsWooSyncToggle())
			assert.Equal(t, tt.online, s.ShowsOnlineToggles())
			assert.Equal(t, tt.addon, s.ShowsAddonToggle())
		})
	}
}
