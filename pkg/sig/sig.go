// Package sig defines the language-agnostic signature model that docstrings
// are checked against. Nodes are built once by a frontend (or decoded from
// the JSON input contract) and are read-only afterwards.
package sig

import "strings"

// Kind classifies a documentable entity.
type Kind int

const (
	KindModule Kind = iota
	KindClass
	KindFunction
	KindMethod
	KindStaticMethod
)

// String returns the lower-case name of the kind as used in reports.
func (k Kind) String() string {
	switch k {
	case KindModule:
		return "module"
	case KindClass:
		return "class"
	case KindFunction:
		return "function"
	case KindMethod, KindStaticMethod:
		// Static methods render as plain methods; the distinction only
		// matters for receiver handling, not for reporting.
		return "method"
	}
	return "unknown"
}

// Callable reports whether nodes of this kind carry parameters and a return
// value.
func (k Kind) Callable() bool {
	return k == KindFunction || k == KindMethod || k == KindStaticMethod
}

// Parameter is one formal parameter of a callable. HasDefault is recorded by
// frontends but no current rule consumes it.
type Parameter struct {
	Name       string
	HasDefault bool
}

// Node is one documentable entity: a module, a class, or a callable. A
// module owns its classes and top-level functions; a class owns its methods.
//
// For Method nodes the implicit receiver is never part of Params; frontends
// strip it before constructing the node. StaticMethod nodes have no receiver
// to strip.
type Node struct {
	Kind Kind
	Name string
	// Line is the 1-based source line of the definition. Modules have no
	// definition line and leave it zero.
	Line int
	// Docstring is the raw documentation text. Empty means the entity has no
	// docstring; an all-whitespace docstring counts as missing too.
	Docstring string
	// Params is set for callables only.
	Params []Parameter
	// Private marks entities exempt from documentation requirements.
	Private bool
	// ReturnsValue is true when any code path returns a non-empty value.
	// Bare returns and implicit fall-through do not count.
	ReturnsValue bool
	Children     []*Node
}

// NewModule constructs a module node. The name is usually derived from the
// file name by the frontend.
func NewModule(name, docstring string) *Node {
	return &Node{Kind: KindModule, Name: name, Docstring: docstring}
}

// NewClass constructs a class node.
func NewClass(name string, line int, docstring string) *Node {
	return &Node{Kind: KindClass, Name: name, Line: line, Docstring: docstring}
}

// NewCallable constructs a function, method, or static-method node. Kinds
// that are not callable are rejected by returning nil; frontends treat that
// as a programming error.
func NewCallable(kind Kind, name string, line int, docstring string) *Node {
	if !kind.Callable() {
		return nil
	}
	return &Node{Kind: kind, Name: name, Line: line, Docstring: docstring}
}

// AddChild appends a nested definition, preserving declaration order.
func (n *Node) AddChild(child *Node) {
	n.Children = append(n.Children, child)
}

// ParamNames returns the parameter names in declaration order.
func (n *Node) ParamNames() []string {
	names := make([]string, len(n.Params))
	for i, p := range n.Params {
		names[i] = p.Name
	}
	return names
}

// HasDocstring reports whether the node carries a non-blank docstring.
func (n *Node) HasDocstring() bool {
	return strings.TrimSpace(n.Docstring) != ""
}

// PrivateName reports whether name follows the leading-underscore convention
// for internal members. Dunder-style names (leading and trailing double
// underscore, like __init__) are not private.
func PrivateName(name string) bool {
	if !strings.HasPrefix(name, "_") {
		return false
	}
	if len(name) >= 4 && strings.HasPrefix(name, "__") && strings.HasSuffix(name, "__") {
		return false
	}
	return true
}
