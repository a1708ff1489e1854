// Package report collects diagnostics per source file and renders the
// linter report: per-file blocks for files with findings, then a summary
// with running error and warning totals. Clean runs print nothing.
package report

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/fieldlint/fieldlint/pkg/check"
	"github.com/fieldlint/fieldlint/pkg/sig"
)

var divider = strings.Repeat("*", 80)

// File holds the findings for a single analyzed file.
type File struct {
	Path    string
	Results []check.Result
	// Err is set when the frontend could not produce a signature tree for
	// the file. Counted as a single error; the batch continues.
	Err error

	errors   int
	warnings int
}

// NewFile constructs an empty per-file report.
func NewFile(path string) *File {
	return &File{Path: path}
}

// Add records one node's diagnostics and updates the file tallies.
func (f *File) Add(res check.Result) {
	f.Results = append(f.Results, res)
	for _, d := range res.Diags {
		if d.Severity == check.SevError {
			f.errors++
		} else {
			f.warnings++
		}
	}
}

// Fail marks the file as unanalyzable.
func (f *File) Fail(err error) {
	f.Err = err
	f.errors++
}

// HasIssues reports whether the file produced any finding at all.
func (f *File) HasIssues() bool {
	return f.errors+f.warnings > 0
}

// Report aggregates file reports and running totals. Add is safe for
// concurrent use; everything else expects the accumulation to be done.
type Report struct {
	mu       sync.Mutex
	files    []*File
	errors   int
	warnings int
}

// New constructs an empty report.
func New() *Report {
	return &Report{}
}

// Add appends a file report and folds its tallies into the totals.
func (r *Report) Add(f *File) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.files = append(r.files, f)
	r.errors += f.errors
	r.warnings += f.warnings
}

// Totals returns the accumulated error and warning counts.
func (r *Report) Totals() (errors, warnings int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.errors, r.warnings
}

// Render writes the report. Files without findings are skipped entirely;
// the summary block appears only when something was found.
func (r *Report) Render(w io.Writer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, f := range r.files {
		if !f.HasIssues() {
			continue
		}
		fmt.Fprintln(w, divider)
		fmt.Fprintln(w, f.Path)
		renderFile(w, f)
	}

	if r.errors+r.warnings > 0 {
		fmt.Fprintln(w, divider)
		fmt.Fprintln(w, "SUMMARY")
		fmt.Fprintf(w, "errors: %d\n", r.errors)
		fmt.Fprintf(w, "warnings: %d\n", r.warnings)
	}
}

func renderFile(w io.Writer, f *File) {
	if f.Err != nil {
		fmt.Fprintf(w, "  %s: unable to analyze: %v\n", marker(check.SevError), f.Err)
		return
	}
	for _, res := range f.Results {
		// The module header is always printed for a file with findings;
		// other nodes appear only when they produced diagnostics.
		if res.Node.Kind == sig.KindModule {
			fmt.Fprintf(w, "module: %s\n", res.Node.Name)
		} else if len(res.Diags) > 0 {
			fmt.Fprintf(w, "%d: %s: %s(%s)\n",
				res.Node.Line, res.Node.Kind, res.Node.Name,
				strings.Join(res.Node.ParamNames(), ","))
		}
		for _, d := range res.Diags {
			fmt.Fprintf(w, "  %s: %s\n", marker(d.Severity), d.Message)
		}
	}
}

// marker returns the severity prefix, colorized when the terminal allows.
func marker(s check.Severity) string {
	if s == check.SevError {
		return color.RedString(s.Marker())
	}
	return color.YellowString(s.Marker())
}
