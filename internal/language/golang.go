package language

import (
	"bytes"
	"context"
	"fmt"
	"go/ast"
	"go/parser"
	"go/printer"
	"go/token"
	"strings"
)

// goExtractor parses Go files with go/ast rather than tree-sitter: the
// standard parser gives exact signatures and doc comments for free.
type goExtractor struct{}

// NewGoExtractor creates the Go backend.
func NewGoExtractor() Extractor {
	return &goExtractor{}
}

func (e *goExtractor) Language() string { return "go" }

func (e *goExtractor) Patterns() []string { return []string{"*.go"} }

func (e *goExtractor) Init() error { return nil }

// Extract parses a Go source file and reports imports, top-level
// declarations, struct fields and methods. Methods are attached to their
// receiver type as members.
func (e *goExtractor) Extract(ctx context.Context, filePath string, content []byte, opts ProcessingOptions) (*RawExtraction, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filePath, content, parser.ParseComments)
	if err != nil {
		return nil, err
	}

	raw := &RawExtraction{}

	for _, imp := range file.Imports {
		raw.Imports = append(raw.Imports, RawImport{Source: strings.Trim(imp.Path.Value, `"`)})
	}

	// Pass 1: types, constants, variables.
	byName := make(map[string]int)
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok {
			continue
		}
		for _, spec := range gen.Specs {
			switch s := spec.(type) {
			case *ast.TypeSpec:
				e.addTypeSpec(raw, byName, fset, s, gen, opts)
			case *ast.ValueSpec:
				e.addValueSpec(raw, fset, s, gen, opts)
			}
		}
	}

	// Pass 2: functions and methods.
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok {
			continue
		}
		e.addFuncDecl(raw, byName, fset, fn, opts)
	}

	return raw, nil
}

func (e *goExtractor) addTypeSpec(raw *RawExtraction, byName map[string]int, fset *token.FileSet, spec *ast.TypeSpec, gen *ast.GenDecl, opts ProcessingOptions) {
	name := spec.Name.Name
	if !ast.IsExported(name) && !opts.IncludePrivate {
		return
	}

	start := fset.Position(spec.Pos()).Line
	end := fset.Position(spec.End()).Line

	exp := RawExport{
		Name:       name,
		Kind:       "type",
		Signature:  "type " + name,
		StartLine:  start,
		EndLine:    end,
		Visibility: goVisibility(name),
	}

	switch t := spec.Type.(type) {
	case *ast.StructType:
		exp.Kind = "class"
		exp.Signature = "type " + name + " struct"
		if t.Fields != nil {
			for _, field := range t.Fields.List {
				typeText := printNode(fset, field.Type)
				for _, fieldName := range field.Names {
					if !ast.IsExported(fieldName.Name) && !opts.IncludePrivate {
						continue
					}
					exp.Members = append(exp.Members, RawMember{
						Name:      fieldName.Name,
						Signature: fieldName.Name + " " + typeText,
						Kind:      "property",
					})
				}
				// Embedded field: the type itself is the name.
				if len(field.Names) == 0 {
					exp.Members = append(exp.Members, RawMember{
						Name:      typeText,
						Signature: typeText,
						Kind:      "property",
					})
				}
			}
		}
	case *ast.InterfaceType:
		exp.Kind = "interface"
		exp.Signature = "type " + name + " interface"
		if t.Methods != nil {
			for _, method := range t.Methods.List {
				typeText := printNode(fset, method.Type)
				for _, methodName := range method.Names {
					exp.Members = append(exp.Members, RawMember{
						Name:      methodName.Name,
						Signature: methodName.Name + strings.TrimPrefix(typeText, "func"),
						Kind:      "method",
					})
				}
				if len(method.Names) == 0 {
					exp.Members = append(exp.Members, RawMember{
						Name:      typeText,
						Signature: typeText,
						Kind:      "method",
					})
				}
			}
		}
	default:
		exp.Signature = "type " + name + " " + printNode(fset, spec.Type)
	}

	if opts.IncludeDocstrings {
		exp.Signature = withDoc(exp.Signature, gen.Doc)
	}

	byName[name] = len(raw.Exports)
	raw.Exports = append(raw.Exports, exp)
}

func (e *goExtractor) addValueSpec(raw *RawExtraction, fset *token.FileSet, spec *ast.ValueSpec, gen *ast.GenDecl, opts ProcessingOptions) {
	kind := "const"
	if gen.Tok == token.VAR {
		// Canonicalized downstream; kept distinct so formatters can tell.
		kind = "variable"
	}

	for _, ident := range spec.Names {
		if ident.Name == "_" {
			continue
		}
		if !ast.IsExported(ident.Name) && !opts.IncludePrivate {
			continue
		}

		sig := gen.Tok.String() + " " + ident.Name
		if spec.Type != nil {
			sig += " " + printNode(fset, spec.Type)
		}
		if opts.IncludeDocstrings {
			sig = withDoc(sig, gen.Doc)
		}

		raw.Exports = append(raw.Exports, RawExport{
			Name:       ident.Name,
			Kind:       kind,
			Signature:  sig,
			StartLine:  fset.Position(spec.Pos()).Line,
			EndLine:    fset.Position(spec.End()).Line,
			Visibility: goVisibility(ident.Name),
		})
	}
}

func (e *goExtractor) addFuncDecl(raw *RawExtraction, byName map[string]int, fset *token.FileSet, fn *ast.FuncDecl, opts ProcessingOptions) {
	name := fn.Name.Name
	if !ast.IsExported(name) && !opts.IncludePrivate {
		return
	}

	sig := printNode(fset, &ast.FuncDecl{Recv: fn.Recv, Name: fn.Name, Type: fn.Type})
	start := fset.Position(fn.Pos()).Line
	end := fset.Position(fn.End()).Line

	if fn.Recv != nil && len(fn.Recv.List) > 0 {
		// Method: attach to the receiver type when it was collected.
		recv := receiverTypeName(fn.Recv.List[0].Type)
		if idx, ok := byName[recv]; ok {
			raw.Exports[idx].Members = append(raw.Exports[idx].Members, RawMember{
				Name:      name,
				Signature: sig,
				Kind:      "method",
			})
		}
		return
	}

	if opts.IncludeDocstrings {
		sig = withDoc(sig, fn.Doc)
	}

	raw.Exports = append(raw.Exports, RawExport{
		Name:       name,
		Kind:       "function",
		Signature:  sig,
		StartLine:  start,
		EndLine:    end,
		Visibility: goVisibility(name),
	})
}

// receiverTypeName unwraps a method receiver to its base type name.
func receiverTypeName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return receiverTypeName(t.X)
	case *ast.IndexExpr:
		return receiverTypeName(t.X)
	case *ast.IndexListExpr:
		return receiverTypeName(t.X)
	default:
		return ""
	}
}

func goVisibility(name string) string {
	if ast.IsExported(name) {
		return "public"
	}
	return "private"
}

// printNode renders an AST node back to source text.
func printNode(fset *token.FileSet, node any) string {
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, fset, node); err != nil {
		return ""
	}
	return strings.Join(strings.Fields(buf.String()), " ")
}

// withDoc appends the first line of a doc comment to a signature.
func withDoc(sig string, doc *ast.CommentGroup) string {
	if doc == nil {
		return sig
	}
	text := strings.TrimSpace(doc.Text())
	if text == "" {
		return sig
	}
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	return fmt.Sprintf("%s // %s", sig, text)
}
