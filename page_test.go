package texmath

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/dpotapov/go-texmath/texparse"
)

func typeset(t *testing.T, in string, opts *PageOptions) string {
	t.Helper()
	var out strings.Builder
	require.NoError(t, TypesetHTML(strings.NewReader(in), &out, opts))
	return out.String()
}

func TestTypesetHTML(t *testing.T) {
	got := typeset(t, `<p>Let $x$ be a number.</p>`, nil)
	require.Contains(t, got, `<p>Let <math xmlns="http://www.w3.org/1998/Math/MathML"><mi>x</mi></math> be a number.</p>`)
}

func TestTypesetHTMLDelimiters(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"paren_inline", `<p>\(x\)</p>`, `<math xmlns="http://www.w3.org/1998/Math/MathML"><mi>x</mi></math>`},
		{"dollar_display", `<p>$$x$$</p>`, `display="block"`},
		{"bracket_display", `<p>\[x\]</p>`, `display="block"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Contains(t, typeset(t, tt.in, nil), tt.want)
		})
	}
}

func TestTypesetHTMLEscapedDollar(t *testing.T) {
	got := typeset(t, `<p>Pay \$5 for $x$.</p>`, nil)
	require.Contains(t, got, "Pay $5 for ")
	require.Contains(t, got, "<mi>x</mi>")
}

func TestTypesetHTMLSkipsVerbatimElements(t *testing.T) {
	got := typeset(t, `<p><code>$x$</code> and $y$</p>`, nil)
	require.Contains(t, got, `<code>$x$</code>`)
	require.Contains(t, got, "<mi>y</mi>")

	got = typeset(t, `<pre>$x$</pre>`, nil)
	require.Contains(t, got, `<pre>$x$</pre>`)
}

func TestTypesetHTMLPlainTextUntouched(t *testing.T) {
	got := typeset(t, `<p>No math here.</p>`, nil)
	require.Contains(t, got, `<p>No math here.</p>`)
}

func TestTypesetHTMLKeepsFailedSpans(t *testing.T) {
	var failed []string
	opts := &PageOptions{OnError: func(src string, err error) {
		require.ErrorIs(t, err, texparse.ErrExtraOpenMissingClose)
		failed = append(failed, src)
	}}

	got := typeset(t, `<p>$ {x $ and $y$</p>`, opts)
	require.Equal(t, []string{" {x "}, failed)
	require.Contains(t, got, "$ {x $", "the failed span stays as written")
	require.Contains(t, got, "<mi>y</mi>")
}

func TestSplitMath(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []segment
	}{
		{
			"plain",
			"no math",
			[]segment{{text: "no math"}},
		},
		{
			"empty",
			"",
			[]segment{{text: ""}},
		},
		{
			"inline_dollar",
			"a $x$ b",
			[]segment{
				{text: "a "},
				{text: "x", raw: "$x$", math: true},
				{text: " b"},
			},
		},
		{
			"display_dollars",
			"$$x$$",
			[]segment{{text: "x", raw: "$$x$$", math: true, display: true}},
		},
		{
			"paren_inline",
			`\(x\)`,
			[]segment{{text: "x", raw: `\(x\)`, math: true}},
		},
		{
			"bracket_display",
			`\[x\]`,
			[]segment{{text: "x", raw: `\[x\]`, math: true, display: true}},
		},
		{
			"escaped_dollar",
			`\$5`,
			[]segment{{text: "$5"}},
		},
		{
			"unterminated_dollar",
			"a $x",
			[]segment{{text: "a $x"}},
		},
		{
			"unterminated_paren",
			`a \(x`,
			[]segment{{text: `a \(x`}},
		},
		{
			"other_escape",
			`a \n b`,
			[]segment{{text: `a \n b`}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitMath(tt.in)
			if diff := cmp.Diff(tt.want, got, cmp.AllowUnexported(segment{})); diff != "" {
				t.Errorf("splitMath(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}
