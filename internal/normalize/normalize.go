// Package normalize converts raw declarations into the canonical
// ObjectSchema representation. Each dialect has its own Normalizer
// variant behind a closed dispatch; adding a dialect means adding a
// variant here, nothing downstream is dialect-aware.
package normalize

import (
	"strconv"
	"strings"

	"github.com/griffnb/ts-swag/internal/domain"
)

// Normalizer converts one dialect's raw declarations to ObjectSchemas.
type Normalizer interface {
	Dialect() domain.Dialect
	Normalize(decl *domain.Declaration) *domain.ObjectSchema
}

// ForDialect returns the normalizer variant for a dialect. The dialect
// set is closed, so an unknown value falls back to the type-declaration
// normalizer, which degrades to an empty schema.
func ForDialect(d domain.Dialect) Normalizer {
	switch d {
	case domain.DialectZodChain:
		return builderNormalizer{dialect: domain.DialectZodChain, describeCall: "describe"}
	case domain.DialectJoiChain:
		return builderNormalizer{dialect: domain.DialectJoiChain, describeCall: "description"}
	case domain.DialectAnnotatedClass:
		return classNormalizer{}
	default:
		return typeDeclNormalizer{}
	}
}

// Normalize converts a declaration to its canonical schema. A declaration
// with no recognizable object body yields an empty ObjectSchema, never an
// error: downstream consumers treat that as "object, shape unknown".
func Normalize(decl *domain.Declaration) *domain.ObjectSchema {
	if decl == nil {
		return nil
	}
	return ForDialect(decl.Dialect).Normalize(decl)
}

// mapTypeToken maps a dialect type token to a canonical type.
// Unrecognized tokens deliberately default to string: lossy but safe.
func mapTypeToken(token string) domain.FieldType {
	switch token {
	case "string":
		return domain.TypeString
	case "number", "integer", "bigint":
		return domain.TypeNumber
	case "boolean", "bool":
		return domain.TypeBoolean
	case "array":
		return domain.TypeArray
	case "object":
		return domain.TypeObject
	default:
		return domain.TypeString
	}
}

// mapTypeText maps a raw TypeScript type annotation to a canonical type
// plus array item type where applicable.
func mapTypeText(text string) (domain.FieldType, *domain.FieldSchema) {
	text = strings.TrimSpace(text)

	switch text {
	case "string":
		return domain.TypeString, nil
	case "number":
		return domain.TypeNumber, nil
	case "boolean":
		return domain.TypeBoolean, nil
	}

	if inner, ok := strings.CutSuffix(text, "[]"); ok {
		itemType, _ := mapTypeText(inner)
		return domain.TypeArray, &domain.FieldSchema{Type: itemType}
	}
	if inner, ok := strings.CutPrefix(text, "Array<"); ok {
		inner = strings.TrimSuffix(inner, ">")
		itemType, _ := mapTypeText(inner)
		return domain.TypeArray, &domain.FieldSchema{Type: itemType}
	}
	if strings.HasPrefix(text, "{") {
		return domain.TypeObject, nil
	}

	return domain.TypeString, nil
}

// appendField appends a field enforcing name uniqueness: a later field
// with the same name replaces the earlier one.
func appendField(fields []domain.FieldSchema, f domain.FieldSchema) []domain.FieldSchema {
	for i := range fields {
		if fields[i].Name == f.Name {
			fields[i] = f
			return fields
		}
	}
	return append(fields, f)
}

func parseNumber(raw string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return nil
	}
	return &v
}
