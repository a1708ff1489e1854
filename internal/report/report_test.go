package report

import (
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldlint/fieldlint/pkg/check"
	"github.com/fieldlint/fieldlint/pkg/sig"
)

func init() {
	// Golden output below compares raw text.
	color.NoColor = true
}

func buildFile(t *testing.T, path string, root *sig.Node) *File {
	t.Helper()
	f := NewFile(path)
	for _, res := range check.Tree(root) {
		f.Add(res)
	}
	return f
}

func fixtureTree() *sig.Node {
	mod := sig.NewModule("thing.go", "The thing module.")
	cls := sig.NewClass("Thing", 3, "")
	mod.AddChild(cls)

	fn := sig.NewCallable(sig.KindFunction, "Add", 10,
		":param (int) a: first\n:param (int) b: second\n:return: the sum")
	fn.Params = []sig.Parameter{{Name: "a"}, {Name: "b"}}
	fn.ReturnsValue = true
	mod.AddChild(fn)
	return mod
}

func TestRender_FileBlock(t *testing.T) {
	rep := New()
	rep.Add(buildFile(t, "/src/thing.go", fixtureTree()))

	var sb strings.Builder
	rep.Render(&sb)

	stars := strings.Repeat("*", 80)
	want := stars + "\n" +
		"/src/thing.go\n" +
		"module: thing.go\n" +
		"3: class: Thing()\n" +
		"  E: Docstring for class is missing\n" +
		"10: function: Add(a,b)\n" +
		"  W: ':rtype: {description}' is missing.\n" +
		stars + "\n" +
		"SUMMARY\n" +
		"errors: 1\n" +
		"warnings: 1\n"
	assert.Equal(t, want, sb.String())
}

func TestRender_CleanRunIsSilent(t *testing.T) {
	mod := sig.NewModule("ok.go", "All documented.")
	rep := New()
	rep.Add(buildFile(t, "/src/ok.go", mod))

	var sb strings.Builder
	rep.Render(&sb)
	assert.Equal(t, "", sb.String())

	e, w := rep.Totals()
	assert.Zero(t, e)
	assert.Zero(t, w)
}

func TestRender_MixOfCleanAndDirtyFiles(t *testing.T) {
	rep := New()
	rep.Add(buildFile(t, "/src/ok.go", sig.NewModule("ok.go", "Documented.")))
	rep.Add(buildFile(t, "/src/bad.go", sig.NewModule("bad.go", "")))

	var sb strings.Builder
	rep.Render(&sb)
	out := sb.String()

	assert.NotContains(t, out, "/src/ok.go")
	assert.Contains(t, out, "/src/bad.go")
	assert.Contains(t, out, "module: bad.go\n  E: Docstring for module is missing\n")
	assert.Contains(t, out, "errors: 1\n")
}

func TestRender_UnanalyzableFile(t *testing.T) {
	f := NewFile("/src/broken.go")
	f.Fail(errors.New("expected declaration"))

	rep := New()
	rep.Add(f)

	var sb strings.Builder
	rep.Render(&sb)
	assert.Contains(t, sb.String(), "/src/broken.go\n  E: unable to analyze: expected declaration\n")

	e, w := rep.Totals()
	assert.Equal(t, 1, e)
	assert.Zero(t, w)
}

// Summary counts equal the per-severity sums over all files.
func TestTotals_SumAcrossFiles(t *testing.T) {
	rep := New()
	for i := 0; i < 3; i++ {
		rep.Add(buildFile(t, "/src/f.go", fixtureTree()))
	}

	e, w := rep.Totals()
	assert.Equal(t, 3, e)
	assert.Equal(t, 3, w)

	var sb strings.Builder
	rep.Render(&sb)
	require.Contains(t, sb.String(), "errors: 3\nwarnings: 3\n")
}
