package productservice

import (
	"strings"

	"gocatalog/internal/domain"
)

// ExpandVariantOptions achata a lista de pares (opção, valores separados
// por vírgula) em linhas concretas de variante para exibição/edição.
//
// Entradas cuja opção ou valor (após trim) estejam vazios contribuem com
// zero linhas e são puladas em silêncio, pois o usuário pode estar no meio da
// edição de uma linha nova em branco; isso é fluxo normal, não erro.
// A ordem das opções e a ordem dos tokens dentro de cada opção são
// preservadas. Tokens repetidos NÃO são deduplicados ("Red,Red" gera duas
// linhas idênticas).
//
// A expansão é apenas um staging de exibição: ela não muta a lista de
// variantes persistidas do produto. Persistir exige que o chamador
// preencha item_code, additional_cost e additional_price por linha.
func ExpandVariantOptions(options []domain.VariantOption) []domain.VariantCandidate {
	var candidates []domain.VariantCandidate

	for _, opt := range options {
		name := strings.TrimSpace(opt.Option)
		if name == "" || strings.TrimSpace(opt.Value) == "" {
			continue
		}

		for _, token := range strings.Split(opt.Value, ",") {
			value := strings.TrimSpace(token)
			if value == "" {
				continue
			}
			candidates = append(candidates, domain.VariantCandidate{Option: name, Value: value})
		}
	}

	return candidates
}
