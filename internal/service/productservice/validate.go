package productservice

import (
	"gocatalog/internal/domain"
	"gocatalog/internal/pkg/validate"
)

// Validate avalia todas as regras de submissão do produto e devolve o mapa
// campo→mensagem com TODAS as violações (nunca curto-circuito): o
// formulário precisa exibir todos os problemas de uma vez. Um mapa vazio
// significa produto submetível. Função pura, sem efeitos colaterais.
//
// As regras escalares (obrigatoriedade, não negatividade, enums) vêm das
// tags `validate` de domain.Product; as regras cruzadas (digital exige
// arquivo, promoção exige preço e datas, online exige campos de SEO) são
// verificadas explicitamente aqui.
func Validate(p domain.Product) domain.FieldErrors {
	fields := domain.FieldErrors(validate.Struct(p))
	if fields == nil {
		fields = domain.FieldErrors{}
	}

	// Mensagens do formulário para os campos de identificação.
	if _, ok := fields["name"]; ok {
		fields["name"] = "Product name is required"
	}
	if _, ok := fields["code"]; ok {
		fields["code"] = "Product code is required"
	}

	// Produtos combo não expõem custo próprio (derivado das linhas do
	// combo), então a regra de custo não se aplica a eles.
	if p.Type == domain.ProductTypeCombo {
		delete(fields, "cost")
	}

	// Regra 6: produto digital exige um arquivo.
	if p.Type == domain.ProductTypeDigital && p.File == "" {
		fields["file"] = "File is required for digital products"
	}

	// Regras 7 e 8: promoção exige preço promocional > 0 e ambas as datas.
	if p.Promotion {
		if p.PromotionPrice <= 0 {
			fields["promotion_price"] = "Promotion price is required when promotion is enabled"
		}
		if p.StartingDate == nil || p.LastDate == nil {
			fields["starting_date"] = "Start and end dates are required when promotion is enabled"
		}
	}

	// Regras 9 e 10: produto online exige os campos de SEO, cada um
	// reportado independentemente.
	if p.IsOnline {
		if p.MetaTitle == "" {
			fields["meta_title"] = "Meta title is required for online products"
		}
		if p.MetaDescription == "" {
			fields["meta_description"] = "Meta description is required for online products"
		}
	}

	return fields
}
