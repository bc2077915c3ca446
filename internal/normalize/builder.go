package normalize

import (
	"strings"

	"github.com/griffnb/ts-swag/internal/domain"
	"github.com/griffnb/ts-swag/internal/parser/describe"
)

// builderNormalizer handles both builder-chain dialects. They share the
// chain structure and differ only in the inline description call and the
// array item convention (zod: array(item), joi: array().items(item)).
type builderNormalizer struct {
	dialect      domain.Dialect
	describeCall string
}

func (n builderNormalizer) Dialect() domain.Dialect {
	return n.dialect
}

func (n builderNormalizer) Normalize(decl *domain.Declaration) *domain.ObjectSchema {
	schema := &domain.ObjectSchema{Name: decl.Name}

	for _, raw := range decl.Fields {
		schema.Fields = appendField(schema.Fields, n.normalizeField(decl, raw))
	}

	return schema
}

func (n builderNormalizer) normalizeField(decl *domain.Declaration, raw domain.RawField) domain.FieldSchema {
	field := domain.FieldSchema{
		Name:     raw.Name,
		Type:     domain.TypeString,
		Required: true,
	}

	if len(raw.Chain) > 0 {
		field.Type = mapTypeToken(raw.Chain[0].Name)
		if field.Type == domain.TypeArray && len(raw.Chain[0].Args) > 0 {
			field.Items = chainItemSchema(raw.Chain[0].Args[0])
		}
	}

	var explicit string
	for _, call := range raw.Chain {
		switch call.Name {
		case "optional":
			field.Required = false
		case "min", "minimum":
			if len(call.Args) > 0 {
				field.Minimum = parseNumber(call.Args[0])
			}
		case "email":
			field.Format = "email"
		case "items":
			if len(call.Args) > 0 {
				field.Items = chainItemSchema(call.Args[0])
			}
		case n.describeCall:
			if len(call.Args) > 0 {
				explicit = describe.StripQuotes(call.Args[0])
			}
		}
	}

	field.Description = describe.Resolve(decl.Source, raw.Span, explicit)
	return field
}

// chainItemSchema derives the canonical item type from the raw text of a
// nested builder chain, e.g. "z.string().min(1)" or "Joi.number()". The
// token after the builder root decides the type; anything else falls back
// to string.
func chainItemSchema(raw string) *domain.FieldSchema {
	raw = strings.TrimSpace(raw)

	rest := raw
	if dot := strings.IndexByte(raw, '.'); dot >= 0 {
		rest = raw[dot+1:]
	}

	token := rest
	if paren := strings.IndexByte(rest, '('); paren >= 0 {
		token = rest[:paren]
	}

	return &domain.FieldSchema{Type: mapTypeToken(strings.TrimSpace(token))}
}
