package declaration

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/griffnb/ts-swag/internal/domain"
	"github.com/griffnb/ts-swag/internal/parser/tsast"
)

// extractClass extracts a class as an annotated-class declaration. Every
// class is recorded; whether its decorators carry validation meaning is
// the normalizer's concern.
func (s *Service) extractClass(node *sitter.Node, src []byte) *domain.Declaration {
	nameNode := tsast.FindChild(node, "type_identifier")
	if nameNode == nil {
		nameNode = tsast.FindChild(node, "identifier")
	}
	if nameNode == nil {
		return nil
	}

	decl := &domain.Declaration{
		Name:    tsast.Text(nameNode, src),
		Dialect: domain.DialectAnnotatedClass,
		Span:    span(node),
		Body:    tsast.Text(node, src),
		Source:  src,
	}

	body := tsast.FindChild(node, "class_body")
	if body == nil {
		return decl
	}

	for i := 0; i < int(body.ChildCount()); i++ {
		member := body.Child(i)
		if member == nil {
			continue
		}
		switch member.Type() {
		case "public_field_definition", "field_definition":
			if f, ok := s.extractClassField(member, src); ok {
				decl.Fields = append(decl.Fields, f)
			}
		}
	}

	return decl
}

func (s *Service) extractClassField(member *sitter.Node, src []byte) (domain.RawField, bool) {
	field := domain.RawField{
		Span: domain.Span{
			Start: tsast.DecoratorStart(member),
			End:   int(member.EndByte()),
		},
		Decorators: tsast.MemberDecorators(member, src),
	}

	for i := 0; i < int(member.ChildCount()); i++ {
		child := member.Child(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "property_identifier":
			field.Name = tsast.Text(child, src)
		case "?":
			field.Optional = true
		case "type_annotation":
			field.TypeText = typeAnnotationText(child, src)
		}
	}

	if field.Name == "" {
		return domain.RawField{}, false
	}
	return field, true
}

// typeAnnotationText returns the annotation text without the leading colon.
func typeAnnotationText(node *sitter.Node, src []byte) string {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child != nil && child.Type() != ":" {
			return strings.TrimSpace(tsast.Text(child, src))
		}
	}
	return ""
}
