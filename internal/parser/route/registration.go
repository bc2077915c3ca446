package route

import (
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/griffnb/ts-swag/internal/domain"
	"github.com/griffnb/ts-swag/internal/parser/tsast"
)

// extractCallRoute recognizes a verb-named call on a router-like receiver
// whose first argument is a literal path. The second argument decides the
// registration style: an object literal with a schema key is an
// options-object registration, anything else is a call-chain registration
// whose arguments are scanned for schema references.
func (s *Service) extractCallRoute(call *sitter.Node, src []byte, file string) *domain.RouteDescriptor {
	fn := call.ChildByFieldName("function")
	if fn == nil || fn.Type() != "member_expression" {
		return nil
	}

	method, ok := httpVerbs[tsast.Text(fn.ChildByFieldName("property"), src)]
	if !ok {
		return nil
	}

	argsNode := call.ChildByFieldName("arguments")
	if argsNode == nil {
		return nil
	}

	var args []*sitter.Node
	for i := 0; i < int(argsNode.NamedChildCount()); i++ {
		arg := argsNode.NamedChild(i)
		if arg != nil && arg.Type() != "comment" {
			args = append(args, arg)
		}
	}

	if len(args) == 0 || args[0].Type() != "string" {
		return nil
	}
	rawPath := tsast.StringContent(args[0], src)
	if !strings.HasPrefix(rawPath, "/") {
		return nil
	}

	route := newDescriptor(method, rawPath, file, call)

	if len(args) > 1 && args[1].Type() == "object" {
		if schema := objectValue(args[1], "schema", src); schema != nil {
			s.applySchemaObject(route, schema, src, file)
			return route
		}
	}

	for _, arg := range args[1:] {
		s.scanChainArg(route, arg, src, file)
	}

	return route
}

// scanChainArg inspects one middleware/handler argument of a call-chain
// registration for schema references: either a schema-or-DTO-like
// identifier passed directly, or a validation middleware call carrying an
// identifier or a per-location configuration object.
func (s *Service) scanChainArg(route *domain.RouteDescriptor, arg *sitter.Node, src []byte, file string) {
	switch arg.Type() {
	case "identifier":
		name := tsast.Text(arg, src)
		if route.BodyRef == nil && schemaLike(name) {
			route.BodyRef = &domain.SchemaRef{Identifier: name, File: file}
		}

	case "call_expression":
		callee := calleeName(arg, src)
		if !strings.Contains(strings.ToLower(callee), "valid") && callee != "celebrate" {
			return
		}

		argsNode := arg.ChildByFieldName("arguments")
		if argsNode == nil {
			return
		}
		for i := 0; i < int(argsNode.NamedChildCount()); i++ {
			inner := argsNode.NamedChild(i)
			if inner == nil {
				continue
			}
			switch inner.Type() {
			case "identifier":
				if route.BodyRef == nil {
					route.BodyRef = &domain.SchemaRef{Identifier: tsast.Text(inner, src), File: file}
				}
			case "object":
				s.applyLocationObject(route, inner, src, file)
			}
		}
	}
}

// applySchemaObject maps a fastify-style schema object literal onto the
// route's per-location references.
func (s *Service) applySchemaObject(route *domain.RouteDescriptor, schema *sitter.Node, src []byte, file string) {
	s.applyLocationObject(route, schema, src, file)

	response := objectValue(schema, "response", src)
	if response == nil {
		return
	}

	for i := 0; i < int(response.NamedChildCount()); i++ {
		pair := response.NamedChild(i)
		if pair == nil || pair.Type() != "pair" {
			continue
		}
		key := pair.ChildByFieldName("key")
		value := pair.ChildByFieldName("value")
		if key == nil || value == nil || value.Type() != "identifier" {
			continue
		}

		status, err := strconv.Atoi(keyText(key, src))
		if err != nil {
			// non-numeric status classes like "4xx" carry no single code
			continue
		}
		route.ResponseRefs[status] = &domain.SchemaRef{Identifier: tsast.Text(value, src), File: file}
	}
}

// applyLocationObject maps body/query/params/headers keys of a
// configuration object onto the route. Values must be identifiers to be
// references; inline schemas are not references and are skipped.
func (s *Service) applyLocationObject(route *domain.RouteDescriptor, obj *sitter.Node, src []byte, file string) {
	set := func(slot **domain.SchemaRef, value *sitter.Node) {
		if *slot == nil && value != nil && value.Type() == "identifier" {
			*slot = &domain.SchemaRef{Identifier: tsast.Text(value, src), File: file}
		}
	}

	for i := 0; i < int(obj.NamedChildCount()); i++ {
		pair := obj.NamedChild(i)
		if pair == nil || pair.Type() != "pair" {
			continue
		}
		key := pair.ChildByFieldName("key")
		value := pair.ChildByFieldName("value")
		if key == nil {
			continue
		}

		switch keyText(key, src) {
		case "body":
			set(&route.BodyRef, value)
		case "query", "querystring":
			set(&route.QueryRef, value)
		case "params":
			set(&route.ParamsRef, value)
		case "headers":
			set(&route.HeadersRef, value)
		}
	}
}

// objectValue returns the object-literal value of a key within an object
// literal, or nil.
func objectValue(obj *sitter.Node, key string, src []byte) *sitter.Node {
	for i := 0; i < int(obj.NamedChildCount()); i++ {
		pair := obj.NamedChild(i)
		if pair == nil || pair.Type() != "pair" {
			continue
		}
		keyNode := pair.ChildByFieldName("key")
		value := pair.ChildByFieldName("value")
		if keyNode != nil && keyText(keyNode, src) == key && value != nil && value.Type() == "object" {
			return value
		}
	}
	return nil
}

func keyText(key *sitter.Node, src []byte) string {
	if key.Type() == "string" {
		return tsast.StringContent(key, src)
	}
	return tsast.Text(key, src)
}

func calleeName(call *sitter.Node, src []byte) string {
	fn := call.ChildByFieldName("function")
	if fn == nil {
		return ""
	}
	if fn.Type() == "member_expression" {
		return tsast.Text(fn.ChildByFieldName("property"), src)
	}
	return tsast.Text(fn, src)
}

// schemaLike reports whether an identifier looks like a schema or DTO
// binding by naming convention.
func schemaLike(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, "schema") ||
		strings.HasSuffix(name, "Dto") ||
		strings.HasSuffix(name, "DTO") ||
		strings.HasSuffix(name, "Request") ||
		strings.HasSuffix(name, "Payload")
}
