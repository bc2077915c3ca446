package normalize

import (
	"github.com/griffnb/ts-swag/internal/domain"
	"github.com/griffnb/ts-swag/internal/parser/describe"
)

// typeDeclNormalizer handles plain interface and type alias declarations.
// There is no required-field list to consult: required is exactly the
// negation of the '?' optionality marker.
type typeDeclNormalizer struct{}

func (typeDeclNormalizer) Dialect() domain.Dialect {
	return domain.DialectTypeDecl
}

func (typeDeclNormalizer) Normalize(decl *domain.Declaration) *domain.ObjectSchema {
	schema := &domain.ObjectSchema{Name: decl.Name}

	for _, raw := range decl.Fields {
		typ, items := mapTypeText(raw.TypeText)
		schema.Fields = appendField(schema.Fields, domain.FieldSchema{
			Name:        raw.Name,
			Type:        typ,
			Items:       items,
			Required:    !raw.Optional,
			Description: describe.Resolve(decl.Source, raw.Span, ""),
		})
	}

	return schema
}
