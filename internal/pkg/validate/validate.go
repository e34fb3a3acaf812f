package validate

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate é a instância única do validador, configurada para reportar os
// campos pelo nome da tag json (o mesmo nome que o formulário usa).
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	return v
}

// Struct avalia as tags `validate` de uma struct e devolve o mapa
// campo→mensagem com TODAS as violações encontradas (sem curto-circuito).
// Um mapa vazio/nil significa que a struct é válida.
func Struct(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	fields := map[string]string{}
	if errs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range errs {
			fields[fe.Field()] = message(fe)
		}
		return fields
	}

	// Erro de uso do validador (tipo não-struct, tag inválida). Não deve
	// acontecer em produção, mas não pode derrubar o processo.
	fields["_"] = err.Error()
	return fields
}

// message traduz um FieldError do validador em uma mensagem legível.
func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", labelFor(fe.Field()))
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", labelFor(fe.Field()), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", labelFor(fe.Field()), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", labelFor(fe.Field()), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", labelFor(fe.Field()), fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", labelFor(fe.Field()))
	case "uuid":
		return fmt.Sprintf("%s must be a valid UUID", labelFor(fe.Field()))
	default:
		return fmt.Sprintf("%s is invalid", labelFor(fe.Field()))
	}
}

// labelFor converte o nome json do campo em um rótulo de formulário
// ("category_id" → "Category", "name" → "Name"), reproduzindo as mensagens
// que o usuário vê na tela.
func labelFor(field string) string {
	name := strings.TrimSuffix(field, "_id")
	parts := strings.Split(name, "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
