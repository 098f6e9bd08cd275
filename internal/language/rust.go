package language

import (
	"context"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
)

// rustExtractor parses Rust files.
type rustExtractor struct {
	*treeSitterExtractor
}

// NewRustExtractor creates the Rust backend.
func NewRustExtractor() Extractor {
	return &rustExtractor{
		treeSitterExtractor: newTreeSitterExtractor("rust", []string{"*.rs"}, func() *sitter.Language {
			return sitter.NewLanguage(rust.Language())
		}),
	}
}

func (e *rustExtractor) Extract(ctx context.Context, filePath string, content []byte, opts ProcessingOptions) (*RawExtraction, error) {
	tree, err := e.parse(filePath, content)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	raw := &RawExtraction{}
	byName := make(map[string]int)

	for i := 0; i < int(root.ChildCount()); i++ {
		n := root.Child(uint(i))
		switch n.Kind() {
		case "use_declaration":
			if arg := n.ChildByFieldName("argument"); arg != nil {
				raw.Imports = append(raw.Imports, RawImport{Source: nodeText(arg, content)})
			}
		case "function_item":
			e.addItem(raw, byName, n, content, "function", opts)
		case "struct_item":
			e.addItem(raw, byName, n, content, "class", opts)
		case "enum_item":
			e.addItem(raw, byName, n, content, "enum", opts)
		case "trait_item":
			e.addItem(raw, byName, n, content, "interface", opts)
		case "type_item":
			e.addItem(raw, byName, n, content, "type", opts)
		case "const_item", "static_item":
			e.addItem(raw, byName, n, content, "const", opts)
		case "impl_item":
			e.addImplMethods(raw, byName, n, content, opts)
		}
	}

	return raw, nil
}

func (e *rustExtractor) addItem(raw *RawExtraction, byName map[string]int, node *sitter.Node, source []byte, kind string, opts ProcessingOptions) {
	vis := rustVisibility(node, source)
	if vis != "public" && !opts.IncludePrivate {
		return
	}

	name := nodeName(node, source)
	if name == "" {
		return
	}

	start, end := nodeLines(node)
	sig := signatureOf(node, source)
	// Item-style declarations ("const X: u32 = 1;") have no body field, so
	// collapse them to the declaration line.
	if kind == "const" || kind == "type" {
		sig = firstLine(nodeText(node, source))
	}

	byName[name] = len(raw.Exports)
	raw.Exports = append(raw.Exports, RawExport{
		Name:       name,
		Kind:       kind,
		Signature:  sig,
		StartLine:  start,
		EndLine:    end,
		Visibility: vis,
	})
}

// addImplMethods attaches the functions of an inherent impl block to the
// struct or enum they implement, when that item was collected.
func (e *rustExtractor) addImplMethods(raw *RawExtraction, byName map[string]int, node *sitter.Node, source []byte, opts ProcessingOptions) {
	typeNode := node.ChildByFieldName("type")
	if typeNode == nil {
		return
	}

	idx, ok := byName[nodeText(typeNode, source)]
	if !ok {
		return
	}

	body := node.ChildByFieldName("body")
	if body == nil {
		return
	}

	for i := 0; i < int(body.ChildCount()); i++ {
		fn := body.Child(uint(i))
		if fn.Kind() != "function_item" {
			continue
		}
		if rustVisibility(fn, source) != "public" && !opts.IncludePrivate {
			continue
		}
		raw.Exports[idx].Members = append(raw.Exports[idx].Members, RawMember{
			Name:      nodeName(fn, source),
			Signature: signatureOf(fn, source),
			Kind:      "method",
		})
	}
}

func rustVisibility(node *sitter.Node, source []byte) string {
	if mod := findChildByType(node, "visibility_modifier"); mod != nil {
		if strings.HasPrefix(nodeText(mod, source), "pub") {
			return "public"
		}
	}
	return "private"
}
