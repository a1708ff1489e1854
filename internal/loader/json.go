package loader

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fieldlint/fieldlint/pkg/sig"
)

// File pairs a display path with the signature tree built for it.
type File struct {
	Path string
	Root *sig.Node
}

// jsonFile is one entry of the external-parser input contract: the display
// path plus a fully populated module tree.
type jsonFile struct {
	Path   string   `json:"path"`
	Module jsonNode `json:"module"`
}

type jsonNode struct {
	Kind         string      `json:"kind"`
	Name         string      `json:"name"`
	Line         int         `json:"line,omitempty"`
	Docstring    string      `json:"docstring,omitempty"`
	Params       []jsonParam `json:"params,omitempty"`
	Private      bool        `json:"private,omitempty"`
	ReturnsValue bool        `json:"returns_value,omitempty"`
	Children     []jsonNode  `json:"children,omitempty"`
}

type jsonParam struct {
	Name       string `json:"name"`
	HasDefault bool   `json:"has_default,omitempty"`
}

// DecodeJSON reads signature trees produced by an external source parser.
// The input is either a JSON array of {path, module} entries or a stream of
// such objects.
func DecodeJSON(r io.Reader) ([]File, error) {
	dec := json.NewDecoder(r)

	var raw []jsonFile
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read signature input: %w", err)
	}
	if d, ok := tok.(json.Delim); ok && d == '[' {
		for dec.More() {
			var jf jsonFile
			if err := dec.Decode(&jf); err != nil {
				return nil, fmt.Errorf("decode signature entry: %w", err)
			}
			raw = append(raw, jf)
		}
	} else {
		return nil, fmt.Errorf("signature input must be a JSON array, got %v", tok)
	}

	files := make([]File, 0, len(raw))
	for _, jf := range raw {
		root, err := jf.Module.node()
		if err != nil {
			return nil, fmt.Errorf("entry %s: %w", jf.Path, err)
		}
		if root.Kind != sig.KindModule {
			return nil, fmt.Errorf("entry %s: root node must be a module, got %s", jf.Path, jf.Module.Kind)
		}
		files = append(files, File{Path: jf.Path, Root: root})
	}
	return files, nil
}

func (jn jsonNode) node() (*sig.Node, error) {
	kind, err := kindFromString(jn.Kind)
	if err != nil {
		return nil, err
	}
	n := &sig.Node{
		Kind:         kind,
		Name:         jn.Name,
		Line:         jn.Line,
		Docstring:    jn.Docstring,
		Private:      jn.Private,
		ReturnsValue: jn.ReturnsValue,
	}
	if kind.Callable() {
		for _, p := range jn.Params {
			n.Params = append(n.Params, sig.Parameter{Name: p.Name, HasDefault: p.HasDefault})
		}
	} else if len(jn.Params) > 0 {
		return nil, fmt.Errorf("node %s: %s nodes carry no parameters", jn.Name, jn.Kind)
	}
	for _, c := range jn.Children {
		child, err := c.node()
		if err != nil {
			return nil, err
		}
		n.AddChild(child)
	}
	return n, nil
}

func kindFromString(s string) (sig.Kind, error) {
	switch s {
	case "module":
		return sig.KindModule, nil
	case "class":
		return sig.KindClass, nil
	case "function":
		return sig.KindFunction, nil
	case "method":
		return sig.KindMethod, nil
	case "staticmethod":
		return sig.KindStaticMethod, nil
	}
	return 0, fmt.Errorf("unknown node kind %q", s)
}
