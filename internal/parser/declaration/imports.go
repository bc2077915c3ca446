package declaration

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/griffnb/ts-swag/internal/domain"
	"github.com/griffnb/ts-swag/internal/parser/tsast"
)

// extractImports builds the import table: imported identifier → module
// specifier as written. ES module imports and CommonJS require bindings
// are both recognized.
func (s *Service) extractImports(root *sitter.Node, src []byte) domain.ImportTable {
	table := make(domain.ImportTable)

	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "import_statement":
			s.processImportStatement(child, src, table)
		case "lexical_declaration", "variable_declaration":
			s.processRequire(child, src, table)
		}
	}

	return table
}

func (s *Service) processImportStatement(node *sitter.Node, src []byte, table domain.ImportTable) {
	var module string
	var clause *sitter.Node

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "import_clause":
			clause = child
		case "string":
			module = tsast.StringContent(child, src)
		}
	}

	if module == "" || clause == nil {
		return
	}

	for i := 0; i < int(clause.ChildCount()); i++ {
		child := clause.Child(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "identifier":
			// default import
			table[tsast.Text(child, src)] = module
		case "namespace_import":
			if ident := tsast.FindChild(child, "identifier"); ident != nil {
				table[tsast.Text(ident, src)] = module
			}
		case "named_imports":
			for j := 0; j < int(child.ChildCount()); j++ {
				specNode := child.Child(j)
				if specNode == nil || specNode.Type() != "import_specifier" {
					continue
				}
				if name := importedName(specNode, src); name != "" {
					table[name] = module
				}
			}
		}
	}
}

// importedName returns the local binding of an import specifier: the
// alias for `a as b`, otherwise the name itself.
func importedName(spec *sitter.Node, src []byte) string {
	var name string
	for i := 0; i < int(spec.ChildCount()); i++ {
		child := spec.Child(i)
		if child == nil {
			continue
		}
		if child.Type() == "identifier" {
			// the last identifier wins: it is the alias when present
			name = tsast.Text(child, src)
		}
	}
	return name
}

// processRequire records const foo = require('bar') bindings.
func (s *Service) processRequire(node *sitter.Node, src []byte, table domain.ImportTable) {
	for i := 0; i < int(node.ChildCount()); i++ {
		decl := node.Child(i)
		if decl == nil || decl.Type() != "variable_declarator" {
			continue
		}

		nameNode := decl.ChildByFieldName("name")
		valueNode := decl.ChildByFieldName("value")
		if nameNode == nil || valueNode == nil || valueNode.Type() != "call_expression" {
			continue
		}

		fn := valueNode.ChildByFieldName("function")
		if fn == nil || fn.Type() != "identifier" || tsast.Text(fn, src) != "require" {
			continue
		}

		args := valueNode.ChildByFieldName("arguments")
		if arg := tsast.FindChild(args, "string"); arg != nil {
			table[tsast.Text(nameNode, src)] = tsast.StringContent(arg, src)
		}
	}
}
