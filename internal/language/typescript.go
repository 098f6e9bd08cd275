package language

import (
	"context"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// typeScriptExtractor parses TypeScript and TSX files.
type typeScriptExtractor struct {
	*treeSitterExtractor
}

// NewTypeScriptExtractor creates the TypeScript backend.
func NewTypeScriptExtractor() Extractor {
	return &typeScriptExtractor{
		treeSitterExtractor: newTreeSitterExtractor("typescript", []string{"*.ts", "*.tsx", "*.mts", "*.cts"}, func() *sitter.Language {
			return sitter.NewLanguage(typescript.LanguageTypescript())
		}),
	}
}

func (e *typeScriptExtractor) Extract(ctx context.Context, filePath string, content []byte, opts ProcessingOptions) (*RawExtraction, error) {
	tree, err := e.parse(filePath, content)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	return extractECMAScript(tree.RootNode(), content, opts), nil
}

// extractECMAScript walks a TypeScript or JavaScript syntax tree. The two
// grammars share node kinds for everything JavaScript can express, so the
// TypeScript-only kinds (interfaces, type aliases, enums) simply never
// match on a JavaScript tree.
func extractECMAScript(root *sitter.Node, source []byte, opts ProcessingOptions) *RawExtraction {
	raw := &RawExtraction{}

	walkTree(root, func(n *sitter.Node) bool {
		switch n.Kind() {
		case "import_statement":
			if src := n.ChildByFieldName("source"); src != nil {
				raw.Imports = append(raw.Imports, RawImport{Source: stripQuotes(nodeText(src, source))})
			}
			return false
		case "export_statement":
			// Re-exports ("export ... from 'x'") also pull in a module.
			if src := n.ChildByFieldName("source"); src != nil {
				raw.Imports = append(raw.Imports, RawImport{Source: stripQuotes(nodeText(src, source))})
			}
			if decl := n.ChildByFieldName("declaration"); decl != nil {
				addECMADeclaration(raw, decl, source, "public", opts)
			}
			return false
		case "class_declaration", "abstract_class_declaration", "interface_declaration",
			"type_alias_declaration", "enum_declaration", "function_declaration",
			"lexical_declaration", "variable_declaration":
			// Not wrapped in an export statement: module-local.
			if opts.IncludePrivate {
				addECMADeclaration(raw, n, source, "private", opts)
			}
			return false
		}
		return true
	})

	return raw
}

func addECMADeclaration(raw *RawExtraction, decl *sitter.Node, source []byte, visibility string, opts ProcessingOptions) {
	start, end := nodeLines(decl)

	switch decl.Kind() {
	case "class_declaration", "abstract_class_declaration":
		raw.Exports = append(raw.Exports, RawExport{
			Name:       nodeName(decl, source),
			Kind:       "class",
			Signature:  signatureOf(decl, source),
			StartLine:  start,
			EndLine:    end,
			Visibility: visibility,
			Members:    classMembers(decl, source, opts),
		})
	case "interface_declaration":
		raw.Exports = append(raw.Exports, RawExport{
			Name:       nodeName(decl, source),
			Kind:       "interface",
			Signature:  signatureOf(decl, source),
			StartLine:  start,
			EndLine:    end,
			Visibility: visibility,
			Members:    interfaceMembers(decl, source),
		})
	case "type_alias_declaration":
		raw.Exports = append(raw.Exports, RawExport{
			Name:       nodeName(decl, source),
			Kind:       "type",
			Signature:  firstLine(nodeText(decl, source)),
			StartLine:  start,
			EndLine:    end,
			Visibility: visibility,
		})
	case "enum_declaration":
		raw.Exports = append(raw.Exports, RawExport{
			Name:       nodeName(decl, source),
			Kind:       "enum",
			Signature:  signatureOf(decl, source),
			StartLine:  start,
			EndLine:    end,
			Visibility: visibility,
		})
	case "function_declaration":
		raw.Exports = append(raw.Exports, RawExport{
			Name:       nodeName(decl, source),
			Kind:       "function",
			Signature:  signatureOf(decl, source),
			StartLine:  start,
			EndLine:    end,
			Visibility: visibility,
		})
	case "lexical_declaration", "variable_declaration":
		kind := "variable"
		if strings.HasPrefix(nodeText(decl, source), "const") {
			kind = "const"
		}
		for _, d := range findChildrenByType(decl, "variable_declarator") {
			name := nodeName(d, source)
			if name == "" {
				continue
			}
			dStart, dEnd := nodeLines(d)
			raw.Exports = append(raw.Exports, RawExport{
				Name:       name,
				Kind:       kind,
				Signature:  firstLine(nodeText(d, source)),
				StartLine:  dStart,
				EndLine:    dEnd,
				Visibility: visibility,
			})
		}
	}
}

// classMembers collects methods and fields from a class body.
func classMembers(decl *sitter.Node, source []byte, opts ProcessingOptions) []RawMember {
	body := decl.ChildByFieldName("body")
	if body == nil {
		return nil
	}

	var members []RawMember
	for i := 0; i < int(body.ChildCount()); i++ {
		child := body.Child(uint(i))
		switch child.Kind() {
		case "method_definition":
			if !opts.IncludePrivate && memberAccessibility(child, source) != "public" {
				continue
			}
			members = append(members, RawMember{
				Name:      nodeName(child, source),
				Signature: signatureOf(child, source),
				Kind:      methodKind(child, source),
			})
		case "public_field_definition", "field_definition":
			if !opts.IncludePrivate && memberAccessibility(child, source) != "public" {
				continue
			}
			members = append(members, RawMember{
				Name:      nodeName(child, source),
				Signature: firstLine(nodeText(child, source)),
				Kind:      "property",
			})
		}
	}
	return members
}

// interfaceMembers collects property and method signatures from an
// interface body.
func interfaceMembers(decl *sitter.Node, source []byte) []RawMember {
	body := decl.ChildByFieldName("body")
	if body == nil {
		return nil
	}

	var members []RawMember
	for i := 0; i < int(body.ChildCount()); i++ {
		child := body.Child(uint(i))
		switch child.Kind() {
		case "property_signature":
			members = append(members, RawMember{
				Name:      nodeName(child, source),
				Signature: firstLine(nodeText(child, source)),
				Kind:      "property",
			})
		case "method_signature":
			members = append(members, RawMember{
				Name:      nodeName(child, source),
				Signature: firstLine(nodeText(child, source)),
				Kind:      "method",
			})
		}
	}
	return members
}

// methodKind distinguishes constructors and accessors; downstream
// normalization folds all three back into "method".
func methodKind(node *sitter.Node, source []byte) string {
	name := nodeName(node, source)
	if name == "constructor" {
		return "constructor"
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		switch node.Child(uint(i)).Kind() {
		case "get":
			return "getter"
		case "set":
			return "setter"
		}
	}
	return "method"
}

// memberAccessibility reads a TypeScript accessibility modifier, or a
// leading "#" private name. Defaults to public.
func memberAccessibility(node *sitter.Node, source []byte) string {
	if mod := findChildByType(node, "accessibility_modifier"); mod != nil {
		return nodeText(mod, source)
	}
	if strings.HasPrefix(nodeName(node, source), "#") {
		return "private"
	}
	return "public"
}
