// Package declaration extracts named, typed declarations and the import
// table from a single source file. It recognizes builder-chain schemas
// (zod and joi), validation-annotated classes, and plain interface/type
// alias declarations. Parsing is structural via tree-sitter, so multi-line
// field definitions, nested literals, and comments are never misattributed.
package declaration

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/griffnb/ts-swag/internal/domain"
	"github.com/griffnb/ts-swag/internal/parser/tsast"
)

// Service extracts declarations from source files.
type Service struct {
	debug Debugger
}

// Option configures the extractor service.
type Option func(*Service)

// Debugger is the interface for debug logging.
type Debugger interface {
	Printf(format string, v ...interface{})
}

type noOpDebugger struct{}

func (noOpDebugger) Printf(format string, v ...interface{}) {}

// NewService creates a new declaration extractor
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

// Parse extracts all declarations and the import table from one file.
// It is a pure function of the file text; syntax errors truncate the
// affected declaration rather than failing the file.
func (s *Service) Parse(ctx context.Context, path string, src []byte) (*domain.SourceFile, error) {
	tree, err := tsast.Parse(ctx, path, src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return domain.NewSourceFile(path, src, nil, nil), nil
	}

	if root.HasError() {
		s.debug.Printf("warning: %s contains syntax errors, extracting partial declarations", path)
	}

	imports := s.extractImports(root, src)

	var decls []*domain.Declaration
	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(i)
		if child == nil {
			continue
		}
		decls = append(decls, s.extractTopLevel(child, src, imports)...)
	}

	return domain.NewSourceFile(path, src, decls, imports), nil
}

// extractTopLevel handles one top-level statement, unwrapping export
// statements to reach the declaration inside.
func (s *Service) extractTopLevel(node *sitter.Node, src []byte, imports domain.ImportTable) []*domain.Declaration {
	switch node.Type() {
	case "export_statement":
		var decls []*domain.Declaration
		for i := 0; i < int(node.ChildCount()); i++ {
			child := node.Child(i)
			if child == nil {
				continue
			}
			decls = append(decls, s.extractTopLevel(child, src, imports)...)
		}
		return decls

	case "lexical_declaration", "variable_declaration":
		return s.extractBuilderBindings(node, src, imports)

	case "class_declaration", "abstract_class_declaration":
		if d := s.extractClass(node, src); d != nil {
			return []*domain.Declaration{d}
		}

	case "interface_declaration":
		if d := s.extractInterface(node, src); d != nil {
			return []*domain.Declaration{d}
		}

	case "type_alias_declaration":
		if d := s.extractTypeAlias(node, src); d != nil {
			return []*domain.Declaration{d}
		}
	}

	return nil
}

func span(n *sitter.Node) domain.Span {
	return domain.Span{Start: int(n.StartByte()), End: int(n.EndByte())}
}
