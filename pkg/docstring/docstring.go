// Package docstring parses field-list docstrings into a description plus a
// typed field sequence. The parser is purely syntactic: it records whatever
// the text declares and leaves cross-checking against the signature to the
// rule engine.
package docstring

import (
	"regexp"
	"strings"
)

// Tag identifies the kind of a field-list entry.
type Tag int

const (
	TagParam Tag = iota
	TagType
	TagReturn
	TagRtype
	// TagUnknown marks a line shaped like a field marker whose tag is not
	// part of the recognized grammar. Kept so one malformed line never hides
	// the checks that follow it.
	TagUnknown
)

// String returns the tag text as written in docstrings.
func (t Tag) String() string {
	switch t {
	case TagParam:
		return "param"
	case TagType:
		return "type"
	case TagReturn:
		return "return"
	case TagRtype:
		return "rtype"
	}
	return "unknown"
}

// Field is one parsed field-list entry.
type Field struct {
	Tag Tag
	// Name is the documented parameter name for param/type fields, or the
	// raw tag text for unknown fields.
	Name string
	// TypeHint is the inline type of the combined `:param (T) name:` form
	// (the bare `:param T name:` form is accepted as well).
	TypeHint string
	// Text is the description with continuation lines folded: newlines
	// replaced by single spaces, surrounding whitespace trimmed.
	Text string
}

// Parsed is the two-part result of parsing a docstring: the free text before
// the first field line, and the ordered fields that follow.
type Parsed struct {
	Description string
	Fields      []Field
}

// marker matches a field-list line: `:tag ...:` with the remainder of the
// line after the closing colon captured as the start of the field text.
var marker = regexp.MustCompile(`^:([A-Za-z][A-Za-z0-9_-]*)([^:]*):(.*)$`)

// Parse splits a raw docstring into description and fields. It never fails;
// unrecognized marker lines become TagUnknown fields.
func Parse(raw string) Parsed {
	var p Parsed
	var desc []string
	var cur *Field
	curIndent := 0

	lines := strings.Split(raw, "\n")
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		m := marker.FindStringSubmatch(trimmed)
		switch {
		case m != nil:
			if cur != nil {
				p.Fields = append(p.Fields, *cur)
			}
			f := newField(m[1], m[2], m[3])
			cur = &f
			curIndent = indentOf(line)
		case cur == nil:
			desc = append(desc, line)
		case trimmed == "":
			// A blank line only ends the field when de-indented content
			// follows; the fold below inserts at most single spaces anyway.
		case indentOf(line) > curIndent:
			cur.Text = fold(cur.Text, trimmed)
		default:
			// De-indented prose after a field belongs to no field.
			p.Fields = append(p.Fields, *cur)
			cur = nil
		}
	}
	if cur != nil {
		p.Fields = append(p.Fields, *cur)
	}
	p.Description = strings.TrimSpace(strings.Join(desc, "\n"))
	return p
}

// newField builds a field from the three marker captures: tag word, the text
// between tag and closing colon, and the rest of the marker line.
func newField(tag, middle, rest string) Field {
	f := Field{Text: strings.TrimSpace(rest)}
	parts := strings.Fields(middle)

	switch tag {
	case "param":
		f.Tag = TagParam
	case "type":
		f.Tag = TagType
	case "return":
		f.Tag = TagReturn
	case "rtype":
		f.Tag = TagRtype
	default:
		return Field{Tag: TagUnknown, Name: tag, Text: f.Text}
	}

	switch f.Tag {
	case TagParam, TagType:
		switch len(parts) {
		case 0:
			// `:param:` names nobody; surfaced as unknown so the engine can
			// flag the malformed line.
			return Field{Tag: TagUnknown, Name: tag, Text: f.Text}
		case 1:
			f.Name = parts[0]
		default:
			f.TypeHint = strings.Trim(strings.Join(parts[:len(parts)-1], " "), "()")
			f.Name = parts[len(parts)-1]
		}
	case TagReturn, TagRtype:
		if len(parts) > 0 {
			// return/rtype carry no name; anything between tag and colon is
			// outside the grammar.
			return Field{Tag: TagUnknown, Name: tag, Text: f.Text}
		}
	}
	return f
}

// fold appends a continuation line to already-folded text.
func fold(text, next string) string {
	if text == "" {
		return next
	}
	return text + " " + next
}

// indentOf returns the leading whitespace width of a line, tabs counted as
// one column.
func indentOf(line string) int {
	for i, r := range line {
		if r != ' ' && r != '\t' {
			return i
		}
	}
	return len(line)
}

// Param returns the field documenting the named parameter, if any. When the
// docstring repeats a parameter the last entry wins.
func (p Parsed) Param(name string) (Field, bool) {
	return p.last(TagParam, name)
}

// Type returns the `:type name:` field for the named parameter, if any.
func (p Parsed) Type(name string) (Field, bool) {
	return p.last(TagType, name)
}

// TypeHint returns the declared type for the named parameter from either the
// combined param form or a separate type field, unifying both styles onto
// the same parameter key.
func (p Parsed) TypeHint(name string) string {
	if f, ok := p.Param(name); ok && f.TypeHint != "" {
		return f.TypeHint
	}
	if f, ok := p.Type(name); ok && f.Text != "" {
		return f.Text
	}
	return ""
}

// Return returns the `:return:` field, if any; the last one wins.
func (p Parsed) Return() (Field, bool) {
	return p.last(TagReturn, "")
}

// Rtype returns the `:rtype:` field, if any; the last one wins.
func (p Parsed) Rtype() (Field, bool) {
	return p.last(TagRtype, "")
}

func (p Parsed) last(tag Tag, name string) (Field, bool) {
	for i := len(p.Fields) - 1; i >= 0; i-- {
		f := p.Fields[i]
		if f.Tag == tag && (name == "" || f.Name == name) {
			return f, true
		}
	}
	return Field{}, false
}

// DocumentedParams returns the parameter names mentioned by param or type
// fields, deduplicated, in first-appearance order.
func (p Parsed) DocumentedParams() []string {
	var names []string
	seen := map[string]bool{}
	for _, f := range p.Fields {
		if f.Tag != TagParam && f.Tag != TagType {
			continue
		}
		if !seen[f.Name] {
			seen[f.Name] = true
			names = append(names, f.Name)
		}
	}
	return names
}

// Unknown returns the malformed marker lines recorded during parsing.
func (p Parsed) Unknown() []Field {
	var out []Field
	for _, f := range p.Fields {
		if f.Tag == TagUnknown {
			out = append(out, f)
		}
	}
	return out
}
