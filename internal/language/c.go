package language

import (
	"context"

	sitter "github.com/tree-sitter/go-tree-sitter"
	c "github.com/tree-sitter/tree-sitter-c/bindings/go"
)

// cExtractor parses C files. C has no visibility model, so everything at
// file scope defaults to public.
type cExtractor struct {
	*treeSitterExtractor
}

// NewCExtractor creates the C backend.
func NewCExtractor() Extractor {
	return &cExtractor{
		treeSitterExtractor: newTreeSitterExtractor("c", []string{"*.c", "*.h"}, func() *sitter.Language {
			return sitter.NewLanguage(c.Language())
		}),
	}
}

func (e *cExtractor) Extract(ctx context.Context, filePath string, content []byte, opts ProcessingOptions) (*RawExtraction, error) {
	tree, err := e.parse(filePath, content)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	raw := &RawExtraction{}

	for i := 0; i < int(root.ChildCount()); i++ {
		n := root.Child(uint(i))
		switch n.Kind() {
		case "preproc_include":
			if path := n.ChildByFieldName("path"); path != nil {
				raw.Imports = append(raw.Imports, RawImport{Source: stripInclude(nodeText(path, content))})
			}
		case "function_definition":
			e.addFunction(raw, n, content)
		case "type_definition":
			e.addTypedef(raw, n, content)
		case "struct_specifier", "enum_specifier":
			e.addTagged(raw, n, content)
		case "declaration":
			// Tagged types are often declared as "struct foo { ... };".
			if spec := findChildByType(n, "struct_specifier"); spec != nil {
				e.addTagged(raw, spec, content)
			} else if spec := findChildByType(n, "enum_specifier"); spec != nil {
				e.addTagged(raw, spec, content)
			}
		}
	}

	return raw, nil
}

func (e *cExtractor) addFunction(raw *RawExtraction, node *sitter.Node, source []byte) {
	name := cDeclaratorName(node.ChildByFieldName("declarator"), source)
	if name == "" {
		return
	}

	start, end := nodeLines(node)
	raw.Exports = append(raw.Exports, RawExport{
		Name:      name,
		Kind:      "function",
		Signature: signatureOf(node, source),
		StartLine: start,
		EndLine:   end,
	})
}

func (e *cExtractor) addTypedef(raw *RawExtraction, node *sitter.Node, source []byte) {
	name := cDeclaratorName(node.ChildByFieldName("declarator"), source)
	if name == "" {
		return
	}

	start, end := nodeLines(node)
	raw.Exports = append(raw.Exports, RawExport{
		Name:      name,
		Kind:      "type",
		Signature: firstLine(nodeText(node, source)),
		StartLine: start,
		EndLine:   end,
	})
}

func (e *cExtractor) addTagged(raw *RawExtraction, node *sitter.Node, source []byte) {
	// Only definitions with a body count; bare references appear all over.
	if node.ChildByFieldName("body") == nil {
		return
	}

	name := nodeName(node, source)
	if name == "" {
		return
	}

	kind := "class"
	if node.Kind() == "enum_specifier" {
		kind = "enum"
	}

	start, end := nodeLines(node)
	raw.Exports = append(raw.Exports, RawExport{
		Name:      name,
		Kind:      kind,
		Signature: signatureOf(node, source),
		StartLine: start,
		EndLine:   end,
	})
}

// cDeclaratorName digs through pointer and function declarators to the
// identifier.
func cDeclaratorName(node *sitter.Node, source []byte) string {
	for node != nil {
		switch node.Kind() {
		case "identifier", "type_identifier", "field_identifier":
			return nodeText(node, source)
		case "function_declarator", "pointer_declarator", "array_declarator", "parenthesized_declarator":
			node = node.ChildByFieldName("declarator")
		default:
			return ""
		}
	}
	return ""
}

// stripInclude removes the <> or "" delimiters from an include path.
func stripInclude(s string) string {
	s = stripQuotes(s)
	if len(s) >= 2 && s[0] == '<' && s[len(s)-1] == '>' {
		return s[1 : len(s)-1]
	}
	return s
}
