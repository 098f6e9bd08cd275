package language

import (
	"context"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	ruby "github.com/tree-sitter/tree-sitter-ruby/bindings/go"
)

// rubyExtractor parses Ruby files. Ruby visibility is a runtime property,
// so everything defaults to public except underscore-prefixed methods.
type rubyExtractor struct {
	*treeSitterExtractor
}

// NewRubyExtractor creates the Ruby backend.
func NewRubyExtractor() Extractor {
	return &rubyExtractor{
		treeSitterExtractor: newTreeSitterExtractor("ruby", []string{"*.rb", "*.rake", "Rakefile", "Gemfile"}, func() *sitter.Language {
			return sitter.NewLanguage(ruby.Language())
		}),
	}
}

func (e *rubyExtractor) Extract(ctx context.Context, filePath string, content []byte, opts ProcessingOptions) (*RawExtraction, error) {
	tree, err := e.parse(filePath, content)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	raw := &RawExtraction{}

	walkTree(root, func(n *sitter.Node) bool {
		switch n.Kind() {
		case "call":
			e.addRequire(raw, n, content)
			return false
		case "class", "module":
			e.addClassLike(raw, n, content, opts)
			return false
		case "method":
			start, end := nodeLines(n)
			raw.Exports = append(raw.Exports, RawExport{
				Name:      nodeName(n, content),
				Kind:      "function",
				Signature: rubySignature(n, content),
				StartLine: start,
				EndLine:   end,
			})
			return false
		case "assignment":
			e.addConstant(raw, n, content)
			return false
		}
		return true
	})

	return raw, nil
}

// addRequire records require / require_relative calls as imports.
func (e *rubyExtractor) addRequire(raw *RawExtraction, node *sitter.Node, source []byte) {
	method := node.ChildByFieldName("method")
	if method == nil {
		return
	}
	name := nodeText(method, source)
	if name != "require" && name != "require_relative" {
		return
	}

	args := node.ChildByFieldName("arguments")
	if args == nil {
		return
	}
	if str := findChildByType(args, "string"); str != nil {
		raw.Imports = append(raw.Imports, RawImport{Source: stripQuotes(nodeText(str, source))})
	}
}

func (e *rubyExtractor) addClassLike(raw *RawExtraction, node *sitter.Node, source []byte, opts ProcessingOptions) {
	name := nodeName(node, source)
	if name == "" {
		return
	}

	start, end := nodeLines(node)
	exp := RawExport{
		Name:      name,
		Kind:      "class",
		Signature: node.Kind() + " " + name,
		StartLine: start,
		EndLine:   end,
	}

	// Methods sit either directly under the class node or inside a
	// body_statement child.
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if child.Kind() == "body_statement" {
			for j := 0; j < int(child.ChildCount()); j++ {
				e.addMethodMember(&exp, child.Child(uint(j)), source, opts)
			}
			continue
		}
		e.addMethodMember(&exp, child, source, opts)
	}

	raw.Exports = append(raw.Exports, exp)
}

func (e *rubyExtractor) addMethodMember(exp *RawExport, node *sitter.Node, source []byte, opts ProcessingOptions) {
	if node.Kind() != "method" && node.Kind() != "singleton_method" {
		return
	}
	methodName := nodeName(node, source)
	if strings.HasPrefix(methodName, "_") && !opts.IncludePrivate {
		return
	}
	kind := "method"
	if methodName == "initialize" {
		kind = "constructor"
	}
	exp.Members = append(exp.Members, RawMember{
		Name:      methodName,
		Signature: rubySignature(node, source),
		Kind:      kind,
	})
}

// addConstant records SCREAMING_CASE top-level assignments.
func (e *rubyExtractor) addConstant(raw *RawExtraction, node *sitter.Node, source []byte) {
	left := node.ChildByFieldName("left")
	if left == nil || left.Kind() != "constant" {
		return
	}

	start, end := nodeLines(node)
	raw.Exports = append(raw.Exports, RawExport{
		Name:      nodeText(left, source),
		Kind:      "const",
		Signature: firstLine(nodeText(node, source)),
		StartLine: start,
		EndLine:   end,
	})
}

// rubySignature renders "def name(params)" without the body.
func rubySignature(node *sitter.Node, source []byte) string {
	name := nodeName(node, source)
	sig := "def " + name
	if params := node.ChildByFieldName("parameters"); params != nil {
		sig += nodeText(params, source)
	}
	return sig
}
