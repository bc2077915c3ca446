package declaration

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/griffnb/ts-swag/internal/domain"
	"github.com/griffnb/ts-swag/internal/parser/tsast"
)

// extractInterface extracts an interface declaration's property
// signatures as a type-declaration.
func (s *Service) extractInterface(node *sitter.Node, src []byte) *domain.Declaration {
	nameNode := tsast.FindChild(node, "type_identifier")
	if nameNode == nil {
		return nil
	}

	body := tsast.FindChild(node, "interface_body")
	if body == nil {
		body = tsast.FindChild(node, "object_type")
	}

	decl := &domain.Declaration{
		Name:    tsast.Text(nameNode, src),
		Dialect: domain.DialectTypeDecl,
		Span:    span(node),
		Body:    tsast.Text(node, src),
		Source:  src,
	}
	if body != nil {
		decl.Fields = s.extractPropertySignatures(body, src)
	}
	return decl
}

// extractTypeAlias extracts a type alias whose value is an object type.
// Aliases of other shapes (unions, inference helpers, mapped types) are
// deliberately not recorded: they have no field list of their own, and
// skipping them lets the resolver's naming fallbacks bridge a response
// type to the schema binding that actually constrains the payload.
func (s *Service) extractTypeAlias(node *sitter.Node, src []byte) *domain.Declaration {
	nameNode := node.ChildByFieldName("name")
	valueNode := node.ChildByFieldName("value")
	if nameNode == nil || valueNode == nil || valueNode.Type() != "object_type" {
		return nil
	}

	return &domain.Declaration{
		Name:    tsast.Text(nameNode, src),
		Dialect: domain.DialectTypeDecl,
		Span:    span(node),
		Body:    tsast.Text(node, src),
		Source:  src,
		Fields:  s.extractPropertySignatures(valueNode, src),
	}
}

func (s *Service) extractPropertySignatures(body *sitter.Node, src []byte) []domain.RawField {
	var fields []domain.RawField

	for i := 0; i < int(body.ChildCount()); i++ {
		prop := body.Child(i)
		if prop == nil || prop.Type() != "property_signature" {
			continue
		}

		field := domain.RawField{Span: span(prop)}
		for j := 0; j < int(prop.ChildCount()); j++ {
			child := prop.Child(j)
			if child == nil {
				continue
			}
			switch child.Type() {
			case "property_identifier":
				field.Name = tsast.Text(child, src)
			case "string":
				field.Name = tsast.StringContent(child, src)
			case "?":
				field.Optional = true
			case "type_annotation":
				field.TypeText = typeAnnotationText(child, src)
			}
		}

		if field.Name != "" {
			fields = append(fields, field)
		}
	}

	return fields
}
