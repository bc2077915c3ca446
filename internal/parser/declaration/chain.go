package declaration

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/griffnb/ts-swag/internal/domain"
	"github.com/griffnb/ts-swag/internal/parser/tsast"
)

// chainLink is one call of a fluent chain, keeping the arguments node so
// object-literal arguments can be walked structurally.
type chainLink struct {
	name string
	args *sitter.Node
}

// flattenChain flattens a fluent call expression like
// z.object({...}).strict() into its root identifier and the ordered list
// of calls. Unrecognized expression shapes return an empty root.
func flattenChain(node *sitter.Node, src []byte) (string, []chainLink) {
	if node == nil {
		return "", nil
	}

	switch node.Type() {
	case "call_expression":
		fn := node.ChildByFieldName("function")
		args := node.ChildByFieldName("arguments")
		if fn == nil {
			return "", nil
		}

		switch fn.Type() {
		case "member_expression":
			root, links := flattenChain(fn.ChildByFieldName("object"), src)
			prop := tsast.Text(fn.ChildByFieldName("property"), src)
			return root, append(links, chainLink{name: prop, args: args})
		case "identifier":
			name := tsast.Text(fn, src)
			return name, []chainLink{{name: name, args: args}}
		}
		return "", nil

	case "member_expression":
		root, links := flattenChain(node.ChildByFieldName("object"), src)
		prop := tsast.Text(node.ChildByFieldName("property"), src)
		return root, append(links, chainLink{name: prop})

	case "identifier":
		return tsast.Text(node, src), nil

	case "parenthesized_expression":
		for i := 0; i < int(node.NamedChildCount()); i++ {
			child := node.NamedChild(i)
			if child != nil && child.Type() != "comment" {
				return flattenChain(child, src)
			}
		}
	}

	return "", nil
}

// builderDialect decides whether a chain root belongs to a known schema
// builder, consulting the import table for aliased roots.
func builderDialect(root string, imports domain.ImportTable) (domain.Dialect, bool) {
	switch root {
	case "z", "zod":
		return domain.DialectZodChain, true
	case "Joi", "joi":
		return domain.DialectJoiChain, true
	}

	if module, ok := imports[root]; ok {
		switch {
		case strings.Contains(module, "zod"):
			return domain.DialectZodChain, true
		case strings.Contains(module, "joi"):
			return domain.DialectJoiChain, true
		}
	}

	return 0, false
}

// extractBuilderBindings extracts every top-level binding whose
// initializer is a schema-builder chain with an object-literal body.
func (s *Service) extractBuilderBindings(node *sitter.Node, src []byte, imports domain.ImportTable) []*domain.Declaration {
	var decls []*domain.Declaration

	for i := 0; i < int(node.ChildCount()); i++ {
		declarator := node.Child(i)
		if declarator == nil || declarator.Type() != "variable_declarator" {
			continue
		}

		nameNode := declarator.ChildByFieldName("name")
		valueNode := declarator.ChildByFieldName("value")
		if nameNode == nil || nameNode.Type() != "identifier" || valueNode == nil {
			continue
		}

		root, links := flattenChain(valueNode, src)
		dialect, ok := builderDialect(root, imports)
		if !ok {
			continue
		}

		objectNode := findObjectBody(links)
		decl := &domain.Declaration{
			Name:    tsast.Text(nameNode, src),
			Dialect: dialect,
			Span:    span(node),
			Body:    tsast.Text(valueNode, src),
			Source:  src,
		}
		if objectNode != nil {
			decl.Fields = s.extractObjectFields(objectNode, src)
		}
		decls = append(decls, decl)
	}

	return decls
}

// findObjectBody locates the object-literal argument of the chain's
// object(...) call. A chain without one yields a declaration with no
// fields, which normalizes to an empty schema.
func findObjectBody(links []chainLink) *sitter.Node {
	for _, link := range links {
		if link.name != "object" || link.args == nil {
			continue
		}
		if obj := tsast.FindChild(link.args, "object"); obj != nil {
			return obj
		}
	}
	return nil
}

// extractObjectFields walks an object literal's pairs into raw fields,
// flattening each value's builder chain.
func (s *Service) extractObjectFields(objectNode *sitter.Node, src []byte) []domain.RawField {
	var fields []domain.RawField

	for i := 0; i < int(objectNode.NamedChildCount()); i++ {
		pair := objectNode.NamedChild(i)
		if pair == nil || pair.Type() != "pair" {
			continue
		}

		keyNode := pair.ChildByFieldName("key")
		valueNode := pair.ChildByFieldName("value")
		if keyNode == nil {
			continue
		}

		name := fieldKeyName(keyNode, src)
		if name == "" {
			continue
		}

		field := domain.RawField{
			Name: name,
			Span: span(pair),
		}

		if valueNode != nil {
			switch valueNode.Type() {
			case "call_expression", "member_expression":
				_, links := flattenChain(valueNode, src)
				field.Chain = toChainCalls(links, src)
			case "object":
				// nested inline object literal
				field.Chain = []domain.ChainCall{{Name: "object"}}
			}
		}

		fields = append(fields, field)
	}

	return fields
}

func fieldKeyName(keyNode *sitter.Node, src []byte) string {
	switch keyNode.Type() {
	case "property_identifier", "identifier":
		return tsast.Text(keyNode, src)
	case "string":
		return tsast.StringContent(keyNode, src)
	}
	return ""
}

// toChainCalls converts chain links to their dialect-independent form,
// capturing raw argument text for the normalizer.
func toChainCalls(links []chainLink, src []byte) []domain.ChainCall {
	calls := make([]domain.ChainCall, 0, len(links))
	for _, link := range links {
		call := domain.ChainCall{Name: link.name}
		if link.args != nil {
			for i := 0; i < int(link.args.NamedChildCount()); i++ {
				arg := link.args.NamedChild(i)
				if arg == nil || arg.Type() == "comment" {
					continue
				}
				call.Args = append(call.Args, tsast.Text(arg, src))
			}
		}
		calls = append(calls, call)
	}
	return calls
}
