// Package resolver resolves schema identifiers to their canonical
// ObjectSchemas: local declarations first, then import edges (loading
// target files lazily), then naming-convention fallbacks. All state is
// per-invocation; two resolvers never share a cache.
package resolver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/griffnb/ts-swag/internal/domain"
	"github.com/griffnb/ts-swag/internal/normalize"
	"github.com/griffnb/ts-swag/internal/parser/declaration"
)

// Debugger is the interface for debug logging.
type Debugger interface {
	Printf(format string, v ...interface{})
}

type noOpDebugger struct{}

func (noOpDebugger) Printf(format string, v ...interface{}) {}

// Resolver resolves identifiers against a lazily populated file cache.
// Lookups serialize around the cache; create one Resolver per scan.
type Resolver struct {
	parser   *declaration.Service
	readFile func(string) ([]byte, error)
	debug    Debugger

	files    map[string]*domain.SourceFile
	resolved map[refKey]*domain.ObjectSchema
}

type refKey struct {
	file       string
	identifier string
}

// Option configures a resolver.
type Option func(*Resolver)

// New creates a resolver with its own cache and cycle guard.
func New(parser *declaration.Service, options ...Option) *Resolver {
	r := &Resolver{
		parser:   parser,
		readFile: os.ReadFile,
		debug:    &noOpDebugger{},
		files:    make(map[string]*domain.SourceFile),
		resolved: make(map[refKey]*domain.ObjectSchema),
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// WithReadFile overrides file reading, primarily for tests.
func WithReadFile(read func(string) ([]byte, error)) Option {
	return func(r *Resolver) {
		r.readFile = read
	}
}

// WithDebugger sets the debugger for logging
func WithDebugger(debugger Debugger) Option {
	return func(r *Resolver) {
		r.debug = debugger
	}
}

// AddFile seeds the cache with an already-extracted file.
func (r *Resolver) AddFile(f *domain.SourceFile) {
	r.files[f.Path] = f
}

// Resolve resolves an identifier referenced from the given file to its
// canonical schema. A miss returns nil, never an error; resolving the
// same reference twice yields the same schema. The cycle guard is scoped
// to this one top-level request.
func (r *Resolver) Resolve(ctx context.Context, identifier, fromFile string) *domain.ObjectSchema {
	guard := make(map[refKey]struct{})

	if schema := r.lookup(ctx, identifier, fromFile, guard); schema != nil {
		return schema
	}

	for _, derived := range fallbackNames(identifier) {
		if schema := r.lookup(ctx, derived, fromFile, guard); schema != nil {
			r.debug.Printf("resolved %s via naming fallback %s", identifier, derived)
			return schema
		}
	}

	return nil
}

// lookup performs the direct resolution steps: the referencing file's own
// declarations, then its import table, loading the target file on demand.
// Re-entering an in-progress (file, identifier) pair is treated as a
// failed resolution, which makes import cycles terminate.
func (r *Resolver) lookup(ctx context.Context, identifier, fromFile string, guard map[refKey]struct{}) *domain.ObjectSchema {
	key := refKey{file: fromFile, identifier: identifier}

	if schema, ok := r.resolved[key]; ok {
		return schema
	}
	if _, inProgress := guard[key]; inProgress {
		return nil
	}
	guard[key] = struct{}{}
	defer delete(guard, key)

	f := r.file(ctx, fromFile)
	if f == nil {
		return nil
	}

	if decl, ok := f.Declaration(identifier); ok {
		schema := normalize.Normalize(decl)
		r.resolved[key] = schema
		return schema
	}

	if specifier, ok := f.Imports[identifier]; ok {
		if target := r.resolveImportPath(fromFile, specifier); target != "" {
			if schema := r.lookup(ctx, identifier, target, guard); schema != nil {
				r.resolved[key] = schema
				return schema
			}
		}
	}

	return nil
}

// file returns the cached SourceFile for a path, extracting it on first
// use. Unreadable files resolve to nothing but never fail the scan.
func (r *Resolver) file(ctx context.Context, path string) *domain.SourceFile {
	if f, ok := r.files[path]; ok {
		return f
	}

	src, err := r.readFile(path)
	if err != nil {
		r.debug.Printf("warning: cannot read %s: %v", path, err)
		r.files[path] = nil
		return nil
	}

	f, err := r.parser.Parse(ctx, path, src)
	if err != nil {
		r.debug.Printf("warning: cannot extract %s: %v", path, err)
		r.files[path] = nil
		return nil
	}

	r.files[path] = f
	return f
}

// resolveImportPath maps a relative module specifier to a file path,
// trying the conventional extension and index-file expansions. Package
// imports (bare specifiers) are not resolvable to project files.
func (r *Resolver) resolveImportPath(fromFile, specifier string) string {
	if !strings.HasPrefix(specifier, "./") && !strings.HasPrefix(specifier, "../") {
		return ""
	}

	base := filepath.Clean(filepath.Join(filepath.Dir(fromFile), specifier))

	candidates := []string{
		base,
		base + ".ts",
		base + ".tsx",
		base + ".js",
		base + ".mjs",
		base + ".cjs",
		filepath.Join(base, "index.ts"),
		filepath.Join(base, "index.js"),
	}

	for _, candidate := range candidates {
		if f, ok := r.files[candidate]; ok {
			if f == nil {
				continue
			}
			return candidate
		}
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}

	return ""
}

// fallbackNames derives the naming-convention retries for an identifier:
// response-type names are stripped of their conventional prefix/suffix
// and retried with the schema suffix, then the schema suffix is tried on
// the identifier itself. Each base is also tried lower-cased, matching
// the common camelCase schema binding convention.
func fallbackNames(identifier string) []string {
	var names []string
	seen := map[string]struct{}{identifier: {}}

	add := func(base string) {
		for _, name := range []string{base + "Schema", lowerFirst(base) + "Schema"} {
			if _, ok := seen[name]; !ok {
				seen[name] = struct{}{}
				names = append(names, name)
			}
		}
	}

	if len(identifier) > 2 && identifier[0] == 'I' && unicode.IsUpper(rune(identifier[1])) {
		add(identifier[1:])
	}
	if base, ok := strings.CutSuffix(identifier, "Response"); ok && base != "" {
		add(base)
	}
	if !strings.HasSuffix(identifier, "Schema") {
		add(identifier)
	}

	return names
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
