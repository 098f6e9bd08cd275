package language

import (
	"context"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	php "github.com/tree-sitter/tree-sitter-php/bindings/go"
)

// phpExtractor parses PHP files.
type phpExtractor struct {
	*treeSitterExtractor
}

// NewPhpExtractor creates the PHP backend.
func NewPhpExtractor() Extractor {
	return &phpExtractor{
		treeSitterExtractor: newTreeSitterExtractor("php", []string{"*.php"}, func() *sitter.Language {
			return sitter.NewLanguage(php.LanguagePHP())
		}),
	}
}

func (e *phpExtractor) Extract(ctx context.Context, filePath string, content []byte, opts ProcessingOptions) (*RawExtraction, error) {
	tree, err := e.parse(filePath, content)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	raw := &RawExtraction{}

	walkTree(root, func(n *sitter.Node) bool {
		switch n.Kind() {
		case "namespace_use_declaration":
			walkTree(n, func(c *sitter.Node) bool {
				if c.Kind() == "qualified_name" || c.Kind() == "name" && c.Parent().Kind() == "namespace_use_clause" {
					raw.Imports = append(raw.Imports, RawImport{Source: nodeText(c, content)})
					return false
				}
				return true
			})
			return false
		case "require_expression", "require_once_expression", "include_expression", "include_once_expression":
			if str := findChildByType(n, "string"); str != nil {
				raw.Imports = append(raw.Imports, RawImport{Source: stripQuotes(nodeText(str, content))})
			}
			return false
		case "function_definition":
			start, end := nodeLines(n)
			raw.Exports = append(raw.Exports, RawExport{
				Name:      nodeName(n, content),
				Kind:      "function",
				Signature: signatureOf(n, content),
				StartLine: start,
				EndLine:   end,
			})
			return false
		case "class_declaration":
			e.addClassLike(raw, n, content, "class", opts)
			return false
		case "interface_declaration":
			e.addClassLike(raw, n, content, "interface", opts)
			return false
		case "trait_declaration":
			e.addClassLike(raw, n, content, "class", opts)
			return false
		case "enum_declaration":
			e.addClassLike(raw, n, content, "enum", opts)
			return false
		case "const_declaration":
			if decl := findChildByType(n, "const_element"); decl != nil {
				start, end := nodeLines(n)
				raw.Exports = append(raw.Exports, RawExport{
					Name:      nodeText(decl.Child(0), content),
					Kind:      "const",
					Signature: firstLine(nodeText(n, content)),
					StartLine: start,
					EndLine:   end,
				})
			}
			return false
		}
		return true
	})

	return raw, nil
}

func (e *phpExtractor) addClassLike(raw *RawExtraction, node *sitter.Node, source []byte, kind string, opts ProcessingOptions) {
	start, end := nodeLines(node)
	exp := RawExport{
		Name:      nodeName(node, source),
		Kind:      kind,
		Signature: signatureOf(node, source),
		StartLine: start,
		EndLine:   end,
	}

	if body := node.ChildByFieldName("body"); body != nil {
		for i := 0; i < int(body.ChildCount()); i++ {
			child := body.Child(uint(i))
			vis := phpVisibility(child, source)
			if vis != "public" && !opts.IncludePrivate {
				continue
			}
			switch child.Kind() {
			case "method_declaration":
				name := nodeName(child, source)
				memberKind := "method"
				if name == "__construct" {
					memberKind = "constructor"
				}
				exp.Members = append(exp.Members, RawMember{
					Name:      name,
					Signature: signatureOf(child, source),
					Kind:      memberKind,
				})
			case "property_declaration":
				if prop := findChildByType(child, "property_element"); prop != nil {
					name := nodeText(prop, source)
					if v := findChildByType(prop, "variable_name"); v != nil {
						name = nodeText(v, source)
					}
					exp.Members = append(exp.Members, RawMember{
						Name:      strings.TrimPrefix(firstLine(name), "$"),
						Signature: firstLine(nodeText(child, source)),
						Kind:      "property",
					})
				}
			}
		}
	}

	raw.Exports = append(raw.Exports, exp)
}

// phpVisibility reads a member's visibility modifier. PHP members default
// to public when unstated.
func phpVisibility(node *sitter.Node, source []byte) string {
	if mod := findChildByType(node, "visibility_modifier"); mod != nil {
		return nodeText(mod, source)
	}
	return "public"
}
