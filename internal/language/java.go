package language

import (
	"context"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	java "github.com/tree-sitter/tree-sitter-java/bindings/go"
)

// javaExtractor parses Java files.
type javaExtractor struct {
	*treeSitterExtractor
}

// NewJavaExtractor creates the Java backend.
func NewJavaExtractor() Extractor {
	return &javaExtractor{
		treeSitterExtractor: newTreeSitterExtractor("java", []string{"*.java"}, func() *sitter.Language {
			return sitter.NewLanguage(java.Language())
		}),
	}
}

func (e *javaExtractor) Extract(ctx context.Context, filePath string, content []byte, opts ProcessingOptions) (*RawExtraction, error) {
	tree, err := e.parse(filePath, content)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	raw := &RawExtraction{}

	walkTree(root, func(n *sitter.Node) bool {
		switch n.Kind() {
		case "import_declaration":
			for i := 0; i < int(n.ChildCount()); i++ {
				child := n.Child(uint(i))
				if child.Kind() == "scoped_identifier" || child.Kind() == "identifier" {
					raw.Imports = append(raw.Imports, RawImport{Source: nodeText(child, content)})
					break
				}
			}
			return false
		case "class_declaration":
			e.addType(raw, n, content, "class", opts)
			return false
		case "interface_declaration":
			e.addType(raw, n, content, "interface", opts)
			return false
		case "enum_declaration":
			e.addType(raw, n, content, "enum", opts)
			return false
		case "record_declaration":
			e.addType(raw, n, content, "class", opts)
			return false
		}
		return true
	})

	return raw, nil
}

func (e *javaExtractor) addType(raw *RawExtraction, node *sitter.Node, source []byte, kind string, opts ProcessingOptions) {
	vis := javaVisibility(node, source)
	if vis != "public" && !opts.IncludePrivate {
		return
	}

	start, end := nodeLines(node)
	exp := RawExport{
		Name:       nodeName(node, source),
		Kind:       kind,
		Signature:  signatureOf(node, source),
		StartLine:  start,
		EndLine:    end,
		Visibility: vis,
	}

	if body := node.ChildByFieldName("body"); body != nil {
		for i := 0; i < int(body.ChildCount()); i++ {
			child := body.Child(uint(i))
			memberVis := javaVisibility(child, source)
			if memberVis != "public" && !opts.IncludePrivate {
				continue
			}
			switch child.Kind() {
			case "method_declaration":
				exp.Members = append(exp.Members, RawMember{
					Name:      nodeName(child, source),
					Signature: signatureOf(child, source),
					Kind:      "method",
				})
			case "constructor_declaration":
				exp.Members = append(exp.Members, RawMember{
					Name:      nodeName(child, source),
					Signature: signatureOf(child, source),
					Kind:      "constructor",
				})
			case "field_declaration":
				if decl := findChildByType(child, "variable_declarator"); decl != nil {
					exp.Members = append(exp.Members, RawMember{
						Name:      nodeName(decl, source),
						Signature: firstLine(nodeText(child, source)),
						Kind:      "property",
					})
				}
			}
		}
	}

	raw.Exports = append(raw.Exports, exp)
}

// javaVisibility reads an explicit modifier; package-private (no modifier)
// maps to private for the purpose of a public API surface.
func javaVisibility(node *sitter.Node, source []byte) string {
	mods := findChildByType(node, "modifiers")
	if mods == nil {
		return "private"
	}
	text := nodeText(mods, source)
	switch {
	case strings.Contains(text, "public"):
		return "public"
	case strings.Contains(text, "protected"):
		return "protected"
	default:
		return "private"
	}
}
