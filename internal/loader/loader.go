// Package loader turns sources into signature trees. The Go frontend parses
// .go files with go/parser and maps files to modules, type declarations to
// classes, and funcs to functions or methods; the JSON frontend decodes
// trees produced by an external parser for any language.
package loader

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fieldlint/fieldlint/pkg/sig"
)

// UnanalyzableError marks a file no signature tree could be produced for.
// The caller records it against the file and continues with the batch.
type UnanalyzableError struct {
	Path string
	Err  error
}

func (e *UnanalyzableError) Error() string {
	return fmt.Sprintf("cannot analyze %s: %v", e.Path, e.Err)
}

func (e *UnanalyzableError) Unwrap() error { return e.Err }

// DiscoverOptions controls file discovery.
type DiscoverOptions struct {
	// SkipTests excludes _test.go files.
	SkipTests bool
}

// Discover returns the Go files under each root, recursively. Vendor,
// testdata and hidden or underscore-prefixed directories are skipped, the
// same set the Go toolchain ignores.
func Discover(roots []string, opts DiscoverOptions) ([]string, error) {
	var files []string
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", root, err)
		}
		if !info.IsDir() {
			files = append(files, root)
			continue
		}
		err = filepath.WalkDir(root, func(path string, de fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if de.IsDir() {
				if skipDir(de.Name(), path, root) {
					return filepath.SkipDir
				}
				return nil
			}
			if !strings.HasSuffix(de.Name(), ".go") {
				return nil
			}
			if opts.SkipTests && strings.HasSuffix(de.Name(), "_test.go") {
				return nil
			}
			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}
	return files, nil
}

func skipDir(name, path, root string) bool {
	if path == root {
		return false
	}
	return name == "vendor" || name == "testdata" ||
		strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

// ParseFile reads and parses one Go file into a module signature tree.
func ParseFile(path string) (*sig.Node, error) {
	src, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, &UnanalyzableError{Path: path, Err: err}
	}
	return ParseSource(path, src)
}

// ParseSource parses Go source into a module node named after the file.
func ParseSource(path string, src []byte) (*sig.Node, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, src, parser.ParseComments)
	if err != nil {
		return nil, &UnanalyzableError{Path: path, Err: err}
	}
	root, _ := FileNodes(fset, file, filepath.Base(path))
	return root, nil
}

// FileNodes builds the signature tree for a parsed file and returns a
// position index so callers reporting through go/analysis can map nodes
// back to source positions.
func FileNodes(fset *token.FileSet, file *ast.File, name string) (*sig.Node, map[*sig.Node]token.Pos) {
	pos := map[*sig.Node]token.Pos{}
	root := sig.NewModule(name, docText(file.Doc))
	pos[root] = file.Package

	// Classes first so methods can attach to receivers declared later in
	// the file; module children still follow declaration order.
	classes := map[string]*sig.Node{}
	for _, decl := range file.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, spec := range gd.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			doc := docText(ts.Doc)
			if doc == "" {
				doc = docText(gd.Doc)
			}
			cls := sig.NewClass(ts.Name.Name, line(fset, ts.Pos()), doc)
			cls.Private = privateIdent(ts.Name.Name)
			classes[ts.Name.Name] = cls
			pos[cls] = ts.Pos()
		}
	}

	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.GenDecl:
			if d.Tok != token.TYPE {
				continue
			}
			for _, spec := range d.Specs {
				if ts, ok := spec.(*ast.TypeSpec); ok {
					root.AddChild(classes[ts.Name.Name])
				}
			}
		case *ast.FuncDecl:
			fn := funcNode(fset, d)
			pos[fn] = d.Pos()
			if recv := receiverType(d); recv != "" {
				if cls, ok := classes[recv]; ok {
					cls.AddChild(fn)
					continue
				}
			}
			root.AddChild(fn)
		}
	}
	return root, pos
}

// funcNode converts one func declaration. The receiver never appears in the
// parameter list; go/ast keeps it out of Type.Params already.
func funcNode(fset *token.FileSet, d *ast.FuncDecl) *sig.Node {
	kind := sig.KindFunction
	if d.Recv != nil {
		kind = sig.KindMethod
	}
	n := sig.NewCallable(kind, d.Name.Name, line(fset, d.Pos()), docText(d.Doc))
	n.Private = privateIdent(d.Name.Name)
	if d.Type.Params != nil {
		for _, field := range d.Type.Params.List {
			for _, ident := range field.Names {
				if ident.Name == "_" {
					continue
				}
				n.Params = append(n.Params, sig.Parameter{Name: ident.Name})
			}
		}
	}
	// In Go the declared result list is authoritative: a non-empty result
	// list means every return carries a value, named results included.
	n.ReturnsValue = d.Type.Results != nil && d.Type.Results.NumFields() > 0
	return n
}

// receiverType returns the bare receiver type name, stripping pointers and
// type parameters.
func receiverType(d *ast.FuncDecl) string {
	if d.Recv == nil || len(d.Recv.List) == 0 {
		return ""
	}
	t := d.Recv.List[0].Type
	for {
		switch tt := t.(type) {
		case *ast.StarExpr:
			t = tt.X
		case *ast.IndexExpr:
			t = tt.X
		case *ast.IndexListExpr:
			t = tt.X
		case *ast.Ident:
			return tt.Name
		default:
			return ""
		}
	}
}

// privateIdent reports whether a Go identifier is exempt from documentation
// requirements: unexported names, plus the underscore convention for
// frontends feeding through generated code.
func privateIdent(name string) bool {
	return !ast.IsExported(name) || sig.PrivateName(name)
}

func docText(cg *ast.CommentGroup) string {
	if cg == nil {
		return ""
	}
	return strings.TrimRight(cg.Text(), "\n")
}

func line(fset *token.FileSet, p token.Pos) int {
	return fset.Position(p).Line
}
