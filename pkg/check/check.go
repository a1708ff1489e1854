// Package check cross-validates a signature node against its parsed
// docstring and emits diagnostics. Rules are evaluated in a fixed order so
// reports are reproducible.
package check

import (
	"fmt"

	"github.com/fieldlint/fieldlint/pkg/docstring"
	"github.com/fieldlint/fieldlint/pkg/sig"
)

// Severity is the importance of a diagnostic.
type Severity int

const (
	SevWarning Severity = iota
	SevError
)

// String returns the long severity name.
func (s Severity) String() string {
	if s == SevError {
		return "error"
	}
	return "warning"
}

// Marker returns the single-letter severity prefix used in reports.
func (s Severity) Marker() string {
	if s == SevError {
		return "E"
	}
	return "W"
}

// Diagnostic is one finding. Immutable once emitted; location is carried by
// the Result that owns it.
type Diagnostic struct {
	Severity Severity
	Message  string
}

// Result pairs a node with the diagnostics it produced.
type Result struct {
	Node  *sig.Node
	Diags []Diagnostic
}

// Tree checks root and every descendant, depth-first in declaration order,
// returning one result per node.
func Tree(root *sig.Node) []Result {
	results := []Result{{Node: root, Diags: Node(root)}}
	for _, child := range root.Children {
		results = append(results, Tree(child)...)
	}
	return results
}

// Node evaluates every rule against a single node. Private callables are
// exempt and produce nothing.
func Node(n *sig.Node) []Diagnostic {
	if n.Private && n.Kind.Callable() {
		return nil
	}
	if !n.HasDocstring() {
		switch n.Kind {
		case sig.KindModule:
			return []Diagnostic{errf("Docstring for module is missing")}
		case sig.KindClass:
			return []Diagnostic{errf("Docstring for class is missing")}
		default:
			return []Diagnostic{errf("Docstring missing")}
		}
	}
	if !n.Kind.Callable() {
		return nil
	}

	doc := docstring.Parse(n.Docstring)
	var diags []Diagnostic
	diags = append(diags, unknownFields(doc)...)
	diags = append(diags, checkParams(n, doc)...)
	diags = append(diags, checkReturns(n, doc)...)
	return diags
}

// unknownFields reports marker-shaped lines outside the tag grammar. The
// docstring keeps being checked; a malformed line never hides later rules.
func unknownFields(doc docstring.Parsed) []Diagnostic {
	var diags []Diagnostic
	for _, f := range doc.Unknown() {
		diags = append(diags, warnf("Unknown field ':%s:' in docstring.", f.Name))
	}
	return diags
}

// checkParams cross-checks the documented parameter set against the
// signature's. An entirely undocumented parameter reports only the missing
// :param finding, not a missing type on top.
func checkParams(n *sig.Node, doc docstring.Parsed) []Diagnostic {
	var diags []Diagnostic

	declared := map[string]bool{}
	for _, p := range n.Params {
		declared[p.Name] = true
	}

	for _, name := range doc.DocumentedParams() {
		if !declared[name] {
			diags = append(diags, errf("Additional ':param %s' in docstring.", name))
		}
	}
	for _, p := range n.Params {
		if f, ok := doc.Param(p.Name); ok && f.Text == "" {
			diags = append(diags, errf("No description in docstring for parameter: %s", p.Name))
		}
	}
	for _, p := range n.Params {
		if _, ok := doc.Param(p.Name); !ok {
			continue
		}
		if doc.TypeHint(p.Name) == "" {
			diags = append(diags, warnf("No type in docstring for parameter: %s", p.Name))
		}
	}
	for _, p := range n.Params {
		if _, ok := doc.Param(p.Name); !ok {
			diags = append(diags, errf("Missing :param for parameter: %s", p.Name))
		}
	}
	return diags
}

// checkReturns validates the return/rtype fields against ReturnsValue.
func checkReturns(n *sig.Node, doc docstring.Parsed) []Diagnostic {
	var diags []Diagnostic

	_, hasReturn := doc.Return()
	_, hasRtype := doc.Rtype()

	if n.ReturnsValue && !hasReturn {
		diags = append(diags, errf("':return: {description}' is missing."))
	}
	for _, f := range doc.Fields {
		if (f.Tag == docstring.TagReturn || f.Tag == docstring.TagRtype) && f.Text == "" {
			diags = append(diags, errf("Description after '%s': missing", f.Tag))
		}
	}
	if n.ReturnsValue && hasReturn && !hasRtype {
		diags = append(diags, warnf("':rtype: {description}' is missing."))
	}
	if !n.ReturnsValue && (hasReturn || hasRtype) {
		diags = append(diags, errf("Docstring describes return values but function does not return anything!"))
	}
	return diags
}

func errf(format string, args ...any) Diagnostic {
	return Diagnostic{Severity: SevError, Message: fmt.Sprintf(format, args...)}
}

func warnf(format string, args ...any) Diagnostic {
	return Diagnostic{Severity: SevWarning, Message: fmt.Sprintf(format, args...)}
}
