package language

import (
	"context"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// pythonExtractor parses Python files.
type pythonExtractor struct {
	*treeSitterExtractor
}

// NewPythonExtractor creates the Python backend.
func NewPythonExtractor() Extractor {
	return &pythonExtractor{
		treeSitterExtractor: newTreeSitterExtractor("python", []string{"*.py", "*.pyi"}, func() *sitter.Language {
			return sitter.NewLanguage(python.Language())
		}),
	}
}

func (e *pythonExtractor) Extract(ctx context.Context, filePath string, content []byte, opts ProcessingOptions) (*RawExtraction, error) {
	tree, err := e.parse(filePath, content)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	raw := &RawExtraction{}

	walkTree(root, func(n *sitter.Node) bool {
		switch n.Kind() {
		case "import_statement":
			for _, name := range findChildrenByType(n, "dotted_name") {
				raw.Imports = append(raw.Imports, RawImport{Source: nodeText(name, content)})
			}
			for _, alias := range findChildrenByType(n, "aliased_import") {
				if name := alias.ChildByFieldName("name"); name != nil {
					raw.Imports = append(raw.Imports, RawImport{Source: nodeText(name, content)})
				}
			}
			return false
		case "import_from_statement":
			if module := n.ChildByFieldName("module_name"); module != nil {
				raw.Imports = append(raw.Imports, RawImport{Source: nodeText(module, content)})
			}
			return false
		case "class_definition":
			if !pythonTopLevel(n) {
				return false
			}
			e.addClass(raw, n, content, opts)
			return false
		case "function_definition":
			if !pythonTopLevel(n) {
				return true
			}
			name := nodeName(n, content)
			if pythonPrivate(name) && !opts.IncludePrivate {
				return false
			}
			start, end := nodeLines(n)
			raw.Exports = append(raw.Exports, RawExport{
				Name:       name,
				Kind:       "function",
				Signature:  pythonSignature(n, content, opts),
				StartLine:  start,
				EndLine:    end,
				Visibility: pythonVisibility(name),
			})
			return false
		case "assignment":
			if !pythonTopLevel(n) {
				return true
			}
			e.addAssignment(raw, n, content, opts)
			return false
		}
		return true
	})

	return raw, nil
}

func (e *pythonExtractor) addClass(raw *RawExtraction, node *sitter.Node, source []byte, opts ProcessingOptions) {
	name := nodeName(node, source)
	if pythonPrivate(name) && !opts.IncludePrivate {
		return
	}

	start, end := nodeLines(node)
	exp := RawExport{
		Name:       name,
		Kind:       "class",
		Signature:  pythonSignature(node, source, opts),
		StartLine:  start,
		EndLine:    end,
		Visibility: pythonVisibility(name),
	}

	if body := node.ChildByFieldName("body"); body != nil {
		for i := 0; i < int(body.ChildCount()); i++ {
			child := body.Child(uint(i))
			fn := child
			// Decorated methods wrap the function definition.
			if child.Kind() == "decorated_definition" {
				fn = child.ChildByFieldName("definition")
			}
			if fn == nil || fn.Kind() != "function_definition" {
				continue
			}
			methodName := nodeName(fn, source)
			// Dunder methods are part of the public surface; a single
			// leading underscore marks an internal method.
			if pythonPrivate(methodName) && !opts.IncludePrivate {
				continue
			}
			kind := "method"
			if methodName == "__init__" {
				kind = "constructor"
			}
			exp.Members = append(exp.Members, RawMember{
				Name:      methodName,
				Signature: pythonSignature(fn, source, opts),
				Kind:      kind,
			})
		}
	}

	raw.Exports = append(raw.Exports, exp)
}

func (e *pythonExtractor) addAssignment(raw *RawExtraction, node *sitter.Node, source []byte, opts ProcessingOptions) {
	left := node.ChildByFieldName("left")
	if left == nil || left.Kind() != "identifier" {
		return
	}

	name := nodeText(left, source)
	if pythonPrivate(name) && !opts.IncludePrivate {
		return
	}

	// ALL_CAPS names are constants by Python convention.
	kind := "variable"
	if name == strings.ToUpper(name) && name != strings.ToLower(name) {
		kind = "const"
	}

	start, end := nodeLines(node)
	raw.Exports = append(raw.Exports, RawExport{
		Name:       name,
		Kind:       kind,
		Signature:  firstLine(nodeText(node, source)),
		StartLine:  start,
		EndLine:    end,
		Visibility: pythonVisibility(name),
	})
}

// pythonTopLevel reports whether a node sits at module level.
func pythonTopLevel(node *sitter.Node) bool {
	parent := node.Parent()
	for parent != nil {
		switch parent.Kind() {
		case "class_definition", "function_definition":
			return false
		case "module":
			return true
		}
		parent = parent.Parent()
	}
	return true
}

// pythonPrivate follows the single-underscore convention; dunder names
// stay public.
func pythonPrivate(name string) bool {
	return strings.HasPrefix(name, "_") && !strings.HasPrefix(name, "__")
}

func pythonVisibility(name string) string {
	if pythonPrivate(name) {
		return "private"
	}
	return "public"
}

// pythonSignature renders "def name(params) -> ret" or "class name(bases)"
// without the body, optionally followed by the first docstring line.
func pythonSignature(node *sitter.Node, source []byte, opts ProcessingOptions) string {
	sig := signatureOf(node, source)
	sig = strings.TrimSuffix(strings.TrimSpace(sig), ":")

	if opts.IncludeDocstrings {
		if doc := pythonDocstring(node, source); doc != "" {
			sig += " # " + doc
		}
	}
	return sig
}

// pythonDocstring returns the first line of a leading docstring, if any.
func pythonDocstring(node *sitter.Node, source []byte) string {
	body := node.ChildByFieldName("body")
	if body == nil || body.ChildCount() == 0 {
		return ""
	}
	stmt := body.Child(0)
	if stmt.Kind() != "expression_statement" || stmt.ChildCount() == 0 {
		return ""
	}
	str := stmt.Child(0)
	if str.Kind() != "string" {
		return ""
	}
	text := strings.Trim(nodeText(str, source), `"'`)
	return firstLine(text)
}
