package route

import (
	"regexp"
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/griffnb/ts-swag/internal/domain"
	"github.com/griffnb/ts-swag/internal/parser/tsast"
)

var identPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// nonSchemaReturn lists return types that can never name a schema.
var nonSchemaReturn = map[string]bool{
	"void":      true,
	"any":       true,
	"unknown":   true,
	"never":     true,
	"null":      true,
	"undefined": true,
}

// extractControllerRoutes handles decorator-based controllers: a
// class-level path prefix decorator establishes the base path and each
// verb-decorated method contributes one route. Returns nil when the class
// carries no controller decorator.
func (s *Service) extractControllerRoutes(class *sitter.Node, src []byte, file string) []*domain.RouteDescriptor {
	basePath, ok := controllerBasePath(class, src)
	if !ok {
		return nil
	}

	body := tsast.FindChild(class, "class_body")
	if body == nil {
		return nil
	}

	var routes []*domain.RouteDescriptor
	for i := 0; i < int(body.ChildCount()); i++ {
		member := body.Child(i)
		if member == nil || member.Type() != "method_definition" {
			continue
		}
		if r := s.extractControllerMethod(member, basePath, src, file); r != nil {
			routes = append(routes, r)
		}
	}

	return routes
}

// controllerBasePath finds the class's @Controller decorator, looking at
// the class node itself and, for exported classes, at the enclosing
// export statement the decorators attach to.
func controllerBasePath(class *sitter.Node, src []byte) (string, bool) {
	var nodes []*sitter.Node
	if parent := class.Parent(); parent != nil && parent.Type() == "export_statement" {
		nodes = append(nodes, parent)
	}
	nodes = append(nodes, class)

	for _, n := range nodes {
		for i := 0; i < int(n.ChildCount()); i++ {
			child := n.Child(i)
			if child == nil || child.Type() != "decorator" {
				continue
			}
			dec := tsast.ParseDecorator(child, src)
			if dec.Name == "Controller" {
				if len(dec.Args) > 0 {
					return stripQuotes(dec.Args[0]), true
				}
				return "", true
			}
		}
	}

	return "", false
}

// extractControllerMethod builds one route from a verb-decorated method.
// Decorator association is structural: only decorators belonging to this
// method_definition node are consulted, so a decorator can never be
// attributed to a neighboring method.
func (s *Service) extractControllerMethod(method *sitter.Node, basePath string, src []byte, file string) *domain.RouteDescriptor {
	decorators := tsast.MemberDecorators(method, src)

	var verb, methodPath string
	for _, dec := range decorators {
		if m, ok := verbDecorators[dec.Name]; ok {
			verb = m
			if len(dec.Args) > 0 {
				methodPath = stripQuotes(dec.Args[0])
			}
			break
		}
	}
	if verb == "" {
		return nil
	}

	route := newDescriptor(verb, JoinPaths(basePath, methodPath), file, method)

	status := 200
	if verb == "POST" {
		status = 201
	}

	for _, dec := range decorators {
		if dec.Name == "HttpCode" && len(dec.Args) > 0 {
			if code, err := strconv.Atoi(dec.Args[0]); err == nil {
				status = code
			}
			continue
		}
		applyDecoratorLocations(route, dec, file)
	}

	s.applyMethodSignature(route, method, src, file, status)
	return route
}

// applyDecoratorLocations maps a validation-middleware decorator's
// configuration object onto the route's per-location references.
func applyDecoratorLocations(route *domain.RouteDescriptor, dec domain.DecoratorCall, file string) {
	if dec.Props == nil {
		return
	}

	set := func(slot **domain.SchemaRef, key string) {
		if *slot != nil {
			return
		}
		if ident, ok := dec.Props[key]; ok && identPattern.MatchString(ident) {
			*slot = &domain.SchemaRef{Identifier: ident, File: file}
		}
	}

	set(&route.BodyRef, "body")
	set(&route.QueryRef, "query")
	set(&route.ParamsRef, "params")
	set(&route.HeadersRef, "headers")

	if ident, ok := dec.Props["response"]; ok && identPattern.MatchString(ident) {
		if _, exists := route.ResponseRefs[200]; !exists {
			route.ResponseRefs[200] = &domain.SchemaRef{Identifier: ident, File: file}
		}
	}
}

// applyMethodSignature derives the body reference from a body-bound
// parameter's declared type and the response reference from the method's
// return type annotation.
func (s *Service) applyMethodSignature(route *domain.RouteDescriptor, method *sitter.Node, src []byte, file string, status int) {
	if params := tsast.FindChild(method, "formal_parameters"); params != nil {
		for i := 0; i < int(params.NamedChildCount()); i++ {
			param := params.NamedChild(i)
			if param == nil {
				continue
			}
			if param.Type() != "required_parameter" && param.Type() != "optional_parameter" {
				continue
			}
			if !paramHasDecorator(param, "Body", src) {
				continue
			}
			if ann := tsast.FindChild(param, "type_annotation"); ann != nil {
				typeText := annotationText(ann, src)
				if route.BodyRef == nil && identPattern.MatchString(typeText) {
					route.BodyRef = &domain.SchemaRef{Identifier: typeText, File: file}
				}
			}
		}
	}

	if ann := tsast.FindChild(method, "type_annotation"); ann != nil {
		returnType := unwrapPromise(annotationText(ann, src))
		if identPattern.MatchString(returnType) && !nonSchemaReturn[returnType] {
			if _, exists := route.ResponseRefs[status]; !exists {
				route.ResponseRefs[status] = &domain.SchemaRef{Identifier: returnType, File: file}
			}
		}
	}
}

func paramHasDecorator(param *sitter.Node, name string, src []byte) bool {
	for i := 0; i < int(param.ChildCount()); i++ {
		child := param.Child(i)
		if child != nil && child.Type() == "decorator" && tsast.ParseDecorator(child, src).Name == name {
			return true
		}
	}
	return false
}

func annotationText(ann *sitter.Node, src []byte) string {
	for i := 0; i < int(ann.ChildCount()); i++ {
		child := ann.Child(i)
		if child != nil && child.Type() != ":" {
			return strings.TrimSpace(tsast.Text(child, src))
		}
	}
	return ""
}

// unwrapPromise strips a Promise<T> wrapper from a return type.
func unwrapPromise(typeText string) string {
	if inner, ok := strings.CutPrefix(typeText, "Promise<"); ok {
		return strings.TrimSpace(strings.TrimSuffix(inner, ">"))
	}
	return typeText
}

func stripQuotes(raw string) string {
	raw = strings.TrimSpace(raw)
	if len(raw) >= 2 {
		first, last := raw[0], raw[len(raw)-1]
		if first == last && (first == '\'' || first == '"' || first == '`') {
			return raw[1 : len(raw)-1]
		}
	}
	return raw
}
