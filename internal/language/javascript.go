package language

import (
	"context"

	sitter "github.com/tree-sitter/go-tree-sitter"
	javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
)

// javaScriptExtractor parses JavaScript and JSX files with the dedicated
// JavaScript grammar. The syntax tree shares node kinds with TypeScript,
// so the walker in typescript.go serves both.
type javaScriptExtractor struct {
	*treeSitterExtractor
}

// NewJavaScriptExtractor creates the JavaScript backend.
func NewJavaScriptExtractor() Extractor {
	return &javaScriptExtractor{
		treeSitterExtractor: newTreeSitterExtractor("javascript", []string{"*.js", "*.jsx", "*.mjs", "*.cjs"}, func() *sitter.Language {
			return sitter.NewLanguage(javascript.Language())
		}),
	}
}

func (e *javaScriptExtractor) Extract(ctx context.Context, filePath string, content []byte, opts ProcessingOptions) (*RawExtraction, error) {
	tree, err := e.parse(filePath, content)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	return extractECMAScript(tree.RootNode(), content, opts), nil
}
