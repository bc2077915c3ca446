// Package route scans a source file for framework-style route
// registrations: call-chain registrations on a router-like receiver,
// options-object registrations carrying a schema key, and decorator-based
// controllers. It emits unresolved RouteDescriptors in source order.
package route

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/griffnb/ts-swag/internal/domain"
	"github.com/griffnb/ts-swag/internal/parser/tsast"
)

// Service extracts route registrations from source files.
type Service struct {
	debug Debugger
}

// Option configures the route extractor.
type Option func(*Service)

// Debugger is the interface for debug logging.
type Debugger interface {
	Printf(format string, v ...interface{})
}

type noOpDebugger struct{}

func (noOpDebugger) Printf(format string, v ...interface{}) {}

// NewService creates a new route extractor
func NewService(options ...Option) *Service {
	s := &Service{
		debug: &noOpDebugger{},
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// WithDebugger sets the debugger for logging
func WithDebugger(debugger Debugger) Option {
	return func(s *Service) {
		s.debug = debugger
	}
}

// httpVerbs maps registration call names to HTTP methods.
var httpVerbs = map[string]string{
	"get":     "GET",
	"post":    "POST",
	"put":     "PUT",
	"delete":  "DELETE",
	"patch":   "PATCH",
	"options": "OPTIONS",
	"head":    "HEAD",
}

// verbDecorators maps method decorator names to HTTP methods.
var verbDecorators = map[string]string{
	"Get":     "GET",
	"Post":    "POST",
	"Put":     "PUT",
	"Delete":  "DELETE",
	"Patch":   "PATCH",
	"Options": "OPTIONS",
	"Head":    "HEAD",
}

// Parse scans one file and returns its route descriptors in source order.
// Registrations are found anywhere in the file, including inside function
// bodies, since routers are commonly wired inside setup functions.
func (s *Service) Parse(ctx context.Context, path string, src []byte) ([]*domain.RouteDescriptor, error) {
	tree, err := tsast.Parse(ctx, path, src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, nil
	}

	var routes []*domain.RouteDescriptor

	tsast.Walk(root, func(n *sitter.Node) bool {
		switch n.Type() {
		case "call_expression":
			if r := s.extractCallRoute(n, src, path); r != nil {
				routes = append(routes, r)
				return false
			}
		case "class_declaration", "abstract_class_declaration":
			if rs := s.extractControllerRoutes(n, src, path); rs != nil {
				routes = append(routes, rs...)
				return false
			}
		}
		return true
	})

	return routes, nil
}

// newDescriptor builds a descriptor with its path normalized.
func newDescriptor(method, rawPath, file string, node *sitter.Node) *domain.RouteDescriptor {
	return &domain.RouteDescriptor{
		Method:       method,
		RawPath:      rawPath,
		Path:         NormalizePath(rawPath),
		ResponseRefs: make(map[int]*domain.SchemaRef),
		File:         file,
		Line:         int(node.StartPoint().Row) + 1,
	}
}
