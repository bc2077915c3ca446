package normalize

import (
	"github.com/griffnb/ts-swag/internal/domain"
	"github.com/griffnb/ts-swag/internal/parser/describe"
)

// classNormalizer handles validation-annotated classes (class-validator
// style decorators plus optional documentation decorators).
type classNormalizer struct{}

func (classNormalizer) Dialect() domain.Dialect {
	return domain.DialectAnnotatedClass
}

func (classNormalizer) Normalize(decl *domain.Declaration) *domain.ObjectSchema {
	schema := &domain.ObjectSchema{Name: decl.Name}

	for _, raw := range decl.Fields {
		schema.Fields = appendField(schema.Fields, normalizeClassField(decl, raw))
	}

	return schema
}

func normalizeClassField(decl *domain.Declaration, raw domain.RawField) domain.FieldSchema {
	typ, items := mapTypeText(raw.TypeText)
	field := domain.FieldSchema{
		Name:     raw.Name,
		Type:     typ,
		Items:    items,
		Required: !raw.Optional,
	}

	var explicit string
	for _, dec := range raw.Decorators {
		switch dec.Name {
		case "IsString":
			field.Type = domain.TypeString
		case "IsNumber", "IsInt", "IsNumberString":
			field.Type = domain.TypeNumber
		case "IsBoolean":
			field.Type = domain.TypeBoolean
		case "IsArray":
			field.Type = domain.TypeArray
			if field.Items == nil {
				field.Items = &domain.FieldSchema{Type: domain.TypeString}
			}
		case "IsObject":
			field.Type = domain.TypeObject
		case "IsEmail":
			field.Type = domain.TypeString
			field.Format = "email"
		case "IsOptional":
			field.Required = false
		case "Min", "Minimum":
			if len(dec.Args) > 0 {
				field.Minimum = parseNumber(dec.Args[0])
			}
		case "Description":
			if len(dec.Args) > 0 {
				explicit = describe.StripQuotes(dec.Args[0])
			}
		case "ApiProperty", "ApiPropertyOptional":
			if dec.Name == "ApiPropertyOptional" {
				field.Required = false
			}
			if d, ok := dec.Props["description"]; ok {
				explicit = d
			}
			if m, ok := dec.Props["minimum"]; ok {
				field.Minimum = parseNumber(m)
			}
			if r, ok := dec.Props["required"]; ok && r == "false" {
				field.Required = false
			}
		}
	}

	field.Description = describe.Resolve(decl.Source, raw.Span, explicit)
	return field
}
