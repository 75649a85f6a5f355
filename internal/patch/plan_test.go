package patch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oxsup/internal/oxlint"
)

var noUnusedVars = oxlint.Rule{Plugin: "eslint", Name: "no-unused-vars"}

func diagAt(target oxlint.Rule, line int) oxlint.Diagnostic {
	return oxlint.Diagnostic{
		Code:     target.Code(),
		Severity: "warning",
		Filename: "test.ts",
		Labels:   []oxlint.Label{{Span: oxlint.Span{Line: line, Column: 1}}},
	}
}

// patchSource plans and applies in one step, the way the CLI does per file.
func patchSource(t *testing.T, src string, diags []oxlint.Diagnostic, target oxlint.Rule) string {
	t.Helper()
	plan := Build(src, diags, target)
	out, err := Apply(src, plan.Edits)
	require.NoError(t, err)
	return out
}

func TestBuild_InsertDirective(t *testing.T) {
	src := "const unusedVar = 1;\n"
	got := patchSource(t, src, []oxlint.Diagnostic{diagAt(noUnusedVars, 1)}, noUnusedVars)

	assert.Equal(t, "// oxlint-disable-next-line eslint/no-unused-vars\nconst unusedVar = 1;\n", got)
}

func TestBuild_ExtendExistingDirective(t *testing.T) {
	src := "// oxlint-disable-next-line eslint/other-rule\nconst unusedVar = 1;\n"
	got := patchSource(t, src, []oxlint.Diagnostic{diagAt(noUnusedVars, 2)}, noUnusedVars)

	assert.Equal(t,
		"// oxlint-disable-next-line eslint/other-rule, eslint/no-unused-vars\nconst unusedVar = 1;\n",
		got)
}

func TestBuild_AlreadySuppressed(t *testing.T) {
	src := "// oxlint-disable-next-line eslint/no-unused-vars\nconst unusedVar = 1;\n"
	plan := Build(src, []oxlint.Diagnostic{diagAt(noUnusedVars, 2)}, noUnusedVars)

	assert.Zero(t, plan.Count(), "re-running on a patched file must be a no-op")

	got, err := Apply(src, plan.Edits)
	require.NoError(t, err)
	assert.Equal(t, src, got)
}

func TestBuild_NoMatchingLines(t *testing.T) {
	src := "export const usedVar = 1;\n"
	plan := Build(src, nil, noUnusedVars)

	assert.Zero(t, plan.Count())

	got, err := Apply(src, plan.Edits)
	require.NoError(t, err)
	assert.Equal(t, src, got)
}

func TestBuild_IndentationPreserved(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
		want string
	}{
		{
			name: "no indent",
			src:  "let a = 1;\n",
			line: 1,
			want: "// oxlint-disable-next-line eslint/no-unused-vars\nlet a = 1;\n",
		},
		{
			name: "four spaces",
			src:  "function f() {\n    let a = 1;\n}\n",
			line: 2,
			want: "function f() {\n    // oxlint-disable-next-line eslint/no-unused-vars\n    let a = 1;\n}\n",
		},
		{
			name: "nested mixed tabs and spaces",
			src:  "if (x) {\n\t  let a = 1;\n}\n",
			line: 2,
			want: "if (x) {\n\t  // oxlint-disable-next-line eslint/no-unused-vars\n\t  let a = 1;\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := patchSource(t, tt.src, []oxlint.Diagnostic{diagAt(noUnusedVars, tt.line)}, noUnusedVars)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuild_ExtendUsesAnnotatedLineIndentation(t *testing.T) {
	// The directive keeps the indentation of the line it annotates, not
	// its own previous indentation.
	src := "    // oxlint-disable-next-line eslint/other-rule\n    let a = 1;\n"
	got := patchSource(t, src, []oxlint.Diagnostic{diagAt(noUnusedVars, 2)}, noUnusedVars)

	assert.Equal(t,
		"    // oxlint-disable-next-line eslint/other-rule, eslint/no-unused-vars\n    let a = 1;\n",
		got)
}

func TestBuild_SameLineDiagnosticsCollapse(t *testing.T) {
	src := "const a = 1, b = 2, c = 3;\n"
	diags := []oxlint.Diagnostic{
		diagAt(noUnusedVars, 1),
		diagAt(noUnusedVars, 1),
		diagAt(noUnusedVars, 1),
	}

	plan := Build(src, diags, noUnusedVars)
	assert.Equal(t, 1, plan.Count())

	got, err := Apply(src, plan.Edits)
	require.NoError(t, err)
	assert.Equal(t, "// oxlint-disable-next-line eslint/no-unused-vars\nconst a = 1, b = 2, c = 3;\n", got)
}

func TestBuild_OrderIndependence(t *testing.T) {
	src := "let a;\nlet b;\nlet c;\nlet d;\nlet e;\nlet f;\nlet g;\nlet h;\nlet i;\n"

	orders := [][]int{
		{9, 5, 2},
		{2, 5, 9},
		{5, 9, 2},
		{2, 9, 5},
	}

	var want string
	for i, order := range orders {
		var diags []oxlint.Diagnostic
		for _, ln := range order {
			diags = append(diags, diagAt(noUnusedVars, ln))
		}
		got := patchSource(t, src, diags, noUnusedVars)
		if i == 0 {
			want = got
			continue
		}
		assert.Equal(t, want, got, "processing order %v changed the output", order)
	}

	assert.Contains(t, want, "// oxlint-disable-next-line eslint/no-unused-vars\nlet b;\n")
	assert.Contains(t, want, "// oxlint-disable-next-line eslint/no-unused-vars\nlet e;\n")
	assert.Contains(t, want, "// oxlint-disable-next-line eslint/no-unused-vars\nlet i;\n")
}

func TestBuild_AdjacentLines(t *testing.T) {
	src := "let a;\nlet b;\n"
	diags := []oxlint.Diagnostic{
		diagAt(noUnusedVars, 1),
		diagAt(noUnusedVars, 2),
	}

	got := patchSource(t, src, diags, noUnusedVars)
	assert.Equal(t,
		"// oxlint-disable-next-line eslint/no-unused-vars\nlet a;\n"+
			"// oxlint-disable-next-line eslint/no-unused-vars\nlet b;\n",
		got)
}

func TestBuild_SkipsDiagnosticWithoutLabel(t *testing.T) {
	src := "let a;\n"
	diags := []oxlint.Diagnostic{
		{Code: noUnusedVars.Code(), Filename: "test.ts"},
		diagAt(noUnusedVars, 1),
	}

	plan := Build(src, diags, noUnusedVars)
	assert.Equal(t, 1, plan.Count())
}

func TestBuild_SkipsLineOutOfRange(t *testing.T) {
	src := "let a;\n"
	diags := []oxlint.Diagnostic{
		diagAt(noUnusedVars, 0),
		diagAt(noUnusedVars, 99),
	}

	plan := Build(src, diags, noUnusedVars)
	assert.Zero(t, plan.Count())
}

func TestBuild_LineOneNeverExtends(t *testing.T) {
	// Diagnostic on line 1 has no preceding line; the extend branch must
	// not apply even when line 1 itself looks like a directive.
	src := "let a;\n"
	got := patchSource(t, src, []oxlint.Diagnostic{diagAt(noUnusedVars, 1)}, noUnusedVars)
	assert.Equal(t, "// oxlint-disable-next-line eslint/no-unused-vars\nlet a;\n", got)
}

func TestBuild_FinalLineWithoutNewline(t *testing.T) {
	src := "let a;\nlet b;"
	got := patchSource(t, src, []oxlint.Diagnostic{diagAt(noUnusedVars, 2)}, noUnusedVars)
	assert.Equal(t, "let a;\n// oxlint-disable-next-line eslint/no-unused-vars\nlet b;", got)
}

func TestBuild_MergePreservesRuleOrder(t *testing.T) {
	src := "// oxlint-disable-next-line a/one, b/two\nlet x;\n"
	target := oxlint.Rule{Plugin: "c", Name: "three"}
	got := patchSource(t, src, []oxlint.Diagnostic{diagAt(target, 2)}, target)

	assert.Equal(t, "// oxlint-disable-next-line a/one, b/two, c/three\nlet x;\n", got)
}

func TestBuild_NonInterference(t *testing.T) {
	src := "let a;\nlet keep1;\nlet b;\nlet keep2;\n"
	diags := []oxlint.Diagnostic{
		diagAt(noUnusedVars, 1),
		diagAt(noUnusedVars, 3),
	}

	got := patchSource(t, src, diags, noUnusedVars)
	assert.Contains(t, got, "let keep1;\n")
	assert.Contains(t, got, "let keep2;\n")

	// Stripping the inserted directive lines restores the input exactly.
	assert.Equal(t,
		"// oxlint-disable-next-line eslint/no-unused-vars\nlet a;\n"+
			"let keep1;\n"+
			"// oxlint-disable-next-line eslint/no-unused-vars\nlet b;\n"+
			"let keep2;\n",
		got)
}

func TestIndexLines(t *testing.T) {
	tests := []struct {
		name       string
		src        string
		wantTexts  []string
		wantStarts []int
	}{
		{
			name:       "trailing newline",
			src:        "ab\ncd\n",
			wantTexts:  []string{"ab", "cd"},
			wantStarts: []int{0, 3},
		},
		{
			name:       "no trailing newline",
			src:        "ab\ncd",
			wantTexts:  []string{"ab", "cd"},
			wantStarts: []int{0, 3},
		},
		{
			name:       "embedded empty line",
			src:        "a\n\nb\n",
			wantTexts:  []string{"a", "", "b"},
			wantStarts: []int{0, 2, 3},
		},
		{
			name:      "empty buffer",
			src:       "",
			wantTexts: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := indexLines(tt.src)
			require.Len(t, lines, len(tt.wantTexts))
			for i, want := range tt.wantTexts {
				assert.Equal(t, want, lines[i].text)
				assert.Equal(t, tt.wantStarts[i], lines[i].start)
			}
		})
	}
}
