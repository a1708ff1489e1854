// Package analyzer adapts the docstring checks to the go/analysis framework
// so they can run under `go vet -vettool` or as a standalone checker.
package analyzer

import (
	"path/filepath"

	"golang.org/x/tools/go/analysis"

	"github.com/fieldlint/fieldlint/internal/loader"
	"github.com/fieldlint/fieldlint/pkg/check"
)

// Analyzer checks field-list docstrings against callable signatures.
var Analyzer = &analysis.Analyzer{
	Name: "fieldlint",
	Doc:  "checks that field-list docstrings match the documented signatures",
	Run:  run,
}

func run(pass *analysis.Pass) (interface{}, error) {
	for _, file := range pass.Files {
		name := filepath.Base(pass.Fset.File(file.Pos()).Name())
		root, pos := loader.FileNodes(pass.Fset, file, name)
		for _, res := range check.Tree(root) {
			p, ok := pos[res.Node]
			if !ok {
				p = file.Pos()
			}
			for _, d := range res.Diags {
				pass.Reportf(p, "%s", d.Message)
			}
		}
	}
	return nil, nil
}
