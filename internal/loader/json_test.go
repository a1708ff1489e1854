package loader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldlint/fieldlint/pkg/sig"
)

const jsonInput = `[
  {
    "path": "pkg/calc.py",
    "module": {
      "kind": "module",
      "name": "calc.py",
      "docstring": "Calculator helpers.",
      "children": [
        {
          "kind": "class",
          "name": "Calc",
          "line": 4,
          "docstring": "A calculator.",
          "children": [
            {
              "kind": "method",
              "name": "add",
              "line": 7,
              "docstring": ":param (int) v: value\n:return: total\n:rtype: int",
              "params": [{"name": "v"}],
              "returns_value": true
            },
            {
              "kind": "staticmethod",
              "name": "version",
              "line": 12,
              "returns_value": true
            }
          ]
        },
        {
          "kind": "function",
          "name": "_helper",
          "line": 20,
          "private": true,
          "params": [{"name": "x", "has_default": true}]
        }
      ]
    }
  }
]`

func TestDecodeJSON(t *testing.T) {
	files, err := DecodeJSON(strings.NewReader(jsonInput))
	require.NoError(t, err)
	require.Len(t, files, 1)

	f := files[0]
	assert.Equal(t, "pkg/calc.py", f.Path)
	assert.Equal(t, sig.KindModule, f.Root.Kind)
	require.Len(t, f.Root.Children, 2)

	cls := f.Root.Children[0]
	assert.Equal(t, sig.KindClass, cls.Kind)
	require.Len(t, cls.Children, 2)

	add := cls.Children[0]
	assert.Equal(t, sig.KindMethod, add.Kind)
	assert.Equal(t, []string{"v"}, add.ParamNames())
	assert.True(t, add.ReturnsValue)

	static := cls.Children[1]
	assert.Equal(t, sig.KindStaticMethod, static.Kind)
	assert.Empty(t, static.Docstring)

	helper := f.Root.Children[1]
	assert.True(t, helper.Private)
	require.Len(t, helper.Params, 1)
	assert.True(t, helper.Params[0].HasDefault)
}

func TestDecodeJSON_Errors(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"not an array", `{"path": "x"}`, "must be a JSON array"},
		{"unknown kind", `[{"path": "x", "module": {"kind": "struct", "name": "x"}}]`, "unknown node kind"},
		{"non-module root", `[{"path": "x", "module": {"kind": "class", "name": "x"}}]`, "root node must be a module"},
		{"params on a class", `[{"path": "x", "module": {"kind": "module", "name": "m", "children": [{"kind": "class", "name": "C", "params": [{"name": "a"}]}]}}]`, "carry no parameters"},
		{"garbage", `nonsense`, ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := DecodeJSON(strings.NewReader(c.input))
			require.Error(t, err)
			if c.want != "" {
				assert.Contains(t, err.Error(), c.want)
			}
		})
	}
}
