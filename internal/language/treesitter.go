package language

import (
	"fmt"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// treeSitterExtractor provides the shared tree-sitter machinery for the
// grammar-backed backends. The grammar is loaded in Init so that a broken
// binding disables one language instead of the whole registry.
type treeSitterExtractor struct {
	lang     string
	patterns []string
	loadLang func() *sitter.Language
	language *sitter.Language
}

func newTreeSitterExtractor(lang string, patterns []string, loadLang func() *sitter.Language) *treeSitterExtractor {
	return &treeSitterExtractor{
		lang:     lang,
		patterns: patterns,
		loadLang: loadLang,
	}
}

func (e *treeSitterExtractor) Language() string { return e.lang }

func (e *treeSitterExtractor) Patterns() []string { return e.patterns }

func (e *treeSitterExtractor) Init() error {
	if e.language != nil {
		return nil
	}
	lang := e.loadLang()
	if lang == nil {
		return fmt.Errorf("grammar for %s failed to load", e.lang)
	}
	e.language = lang
	return nil
}

// parse parses source into a tree. Callers must Close the returned tree.
func (e *treeSitterExtractor) parse(filePath string, source []byte) (*sitter.Tree, error) {
	if e.language == nil {
		return nil, fmt.Errorf("%s backend not initialized", e.lang)
	}

	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(e.language); err != nil {
		return nil, fmt.Errorf("set %s grammar: %w", e.lang, err)
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse %s file: %s", e.lang, filePath)
	}
	return tree, nil
}

// nodeText extracts the text content of a tree-sitter node.
func nodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}

// nodeName extracts the text of a node's "name" field.
func nodeName(node *sitter.Node, source []byte) string {
	return nodeText(node.ChildByFieldName("name"), source)
}

// nodeLines returns the 1-indexed start and end lines of a node.
func nodeLines(node *sitter.Node) (int, int) {
	return int(node.StartPosition().Row) + 1, int(node.EndPosition().Row) + 1
}

// walkTree recursively walks a tree-sitter tree and calls the visitor for
// each node. Returning false from the visitor skips the node's children.
func walkTree(node *sitter.Node, visitor func(*sitter.Node) bool) {
	if node == nil {
		return
	}

	if !visitor(node) {
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		walkTree(node.Child(uint(i)), visitor)
	}
}

// findChildByType finds the first child node with the given type.
func findChildByType(node *sitter.Node, nodeType string) *sitter.Node {
	if node == nil {
		return nil
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if child.Kind() == nodeType {
			return child
		}
	}
	return nil
}

// findChildrenByType finds all child nodes with the given type.
func findChildrenByType(node *sitter.Node, nodeType string) []*sitter.Node {
	var results []*sitter.Node
	if node == nil {
		return results
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if child.Kind() == nodeType {
			results = append(results, child)
		}
	}
	return results
}

// stripQuotes removes surrounding string delimiters from an import source.
func stripQuotes(s string) string {
	s = strings.TrimSpace(s)
	return strings.Trim(s, `"'`+"`")
}

// firstLine returns the first line of a possibly multi-line snippet.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return strings.TrimSpace(s)
}

// signatureOf returns a one-line signature for a declaration node: the
// declaration text up to its body, collapsed to a single line.
func signatureOf(node *sitter.Node, source []byte) string {
	body := node.ChildByFieldName("body")
	var text string
	if body != nil {
		text = string(source[node.StartByte():body.StartByte()])
	} else {
		text = nodeText(node, source)
	}
	fields := strings.Fields(text)
	return strings.Join(fields, " ")
}
