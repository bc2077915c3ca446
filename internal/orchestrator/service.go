// Package orchestrator coordinates the scan pipeline: file enumeration,
// per-file extraction, and reference resolution. It delegates to the
// specialized services and owns the glue between them.
package orchestrator

import (
	"context"

	"github.com/griffnb/ts-swag/internal/domain"
	"github.com/griffnb/ts-swag/internal/loader"
	"github.com/griffnb/ts-swag/internal/parser/declaration"
	"github.com/griffnb/ts-swag/internal/parser/route"
	"github.com/griffnb/ts-swag/internal/resolver"
)

// Service coordinates scanning a source tree into resolved routes.
type Service struct {
	loader      *loader.Service
	declParser  *declaration.Service
	routeParser *route.Service
	debug       Debugger
}

// Option configures the orchestrator.
type Option func(*Service)

// Debugger is the interface for debug logging.
type Debugger interface {
	Printf(format string, v ...interface{})
}

type noOpDebugger struct{}

func (noOpDebugger) Printf(format string, v ...interface{}) {}

// NewService creates a new orchestrator with the given options.
func NewService(options ...Option) *Service {
	s := &Service{
		debug: &noOpDebugger{},
	}
	for _, opt := range options {
		opt(s)
	}

	if s.loader == nil {
		s.loader = loader.NewService(loader.WithDebugger(s.debug))
	}
	if s.declParser == nil {
		s.declParser = declaration.NewService(declaration.WithDebugger(s.debug))
	}
	if s.routeParser == nil {
		s.routeParser = route.NewService(route.WithDebugger(s.debug))
	}

	return s
}

// WithLoader sets the file enumeration service.
func WithLoader(l *loader.Service) Option {
	return func(s *Service) {
		s.loader = l
	}
}

// WithDebugger sets the debugger for logging
func WithDebugger(debugger Debugger) Option {
	return func(s *Service) {
		s.debug = debugger
	}
}

// Scan walks the scan paths, extracts declarations and route
// registrations from every source file, resolves each route's schema
// references, and returns the resolved routes. Per-file failures are
// logged and skipped; only enumeration itself can fail.
func (s *Service) Scan(ctx context.Context, scanPaths []string) ([]*domain.RouteInfo, error) {
	files, err := s.loader.EnumerateFiles(scanPaths)
	if err != nil {
		return nil, err
	}
	s.debug.Printf("scanning %d files", len(files))

	results, err := s.extractParallel(ctx, files)
	if err != nil {
		return nil, err
	}

	res := resolver.New(s.declParser, resolver.WithDebugger(s.debug))

	var descriptors []*domain.RouteDescriptor
	for _, fr := range results {
		if fr == nil {
			continue
		}
		if fr.source != nil {
			res.AddFile(fr.source)
		}
		descriptors = append(descriptors, fr.routes...)
	}
	s.debug.Printf("found %d route registrations", len(descriptors))

	routes := make([]*domain.RouteInfo, 0, len(descriptors))
	for _, d := range descriptors {
		routes = append(routes, s.resolveRoute(ctx, res, d))
	}

	return routes, nil
}

// resolveRoute resolves every schema reference a descriptor carries.
// Unresolvable references leave their slot nil; the route itself always
// survives.
func (s *Service) resolveRoute(ctx context.Context, res *resolver.Resolver, d *domain.RouteDescriptor) *domain.RouteInfo {
	info := &domain.RouteInfo{
		Method:    d.Method,
		Path:      d.Path,
		Responses: make(map[int]*domain.ObjectSchema),
		File:      d.File,
		Line:      d.Line,
	}

	resolve := func(ref *domain.SchemaRef) *domain.ObjectSchema {
		if ref == nil {
			return nil
		}
		schema := res.Resolve(ctx, ref.Identifier, ref.File)
		if schema == nil {
			s.debug.Printf("warning: %s:%d: unresolved schema reference %s", d.File, d.Line, ref.Identifier)
		}
		return schema
	}

	info.Body = resolve(d.BodyRef)
	info.Query = resolve(d.QueryRef)
	info.Params = resolve(d.ParamsRef)
	info.Headers = resolve(d.HeadersRef)

	for status, ref := range d.ResponseRefs {
		if schema := resolve(ref); schema != nil {
			info.Responses[status] = schema
		}
	}

	return info
}
