package mml

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	frac := Frac(Mi("a"), Mn("2"))

	got, err := Render(frac, nil)
	require.NoError(t, err)
	require.Equal(t, "<mfrac><mi>a</mi><mn>2</mn></mfrac>", got)
}

func TestRenderMath(t *testing.T) {
	got, err := RenderMath(Mi("x"), false, nil)
	require.NoError(t, err)
	require.Equal(t, `<math xmlns="http://www.w3.org/1998/Math/MathML"><mi>x</mi></math>`, got)

	got, err = RenderMath(Mi("x"), true, nil)
	require.NoError(t, err)
	require.Equal(t, `<math xmlns="http://www.w3.org/1998/Math/MathML" display="block"><mi>x</mi></math>`, got)
}

func TestRenderResolvesScripts(t *testing.T) {
	sup := Script(Mi("x"))
	sup.SetChild(SupSlot, Mn("2"))

	got, err := Render(sup, nil)
	require.NoError(t, err)
	require.Equal(t, "<msup><mi>x</mi><mn>2</mn></msup>", got, "empty slots fold away")
}

func TestRenderPresentationFlags(t *testing.T) {
	mo := Mo("(")
	mo.Fence = true
	mo.Stretchy = true
	mo.SetAttr("minsize", "1.2em")

	got, err := Render(mo, nil)
	require.NoError(t, err)
	require.Equal(t, `<mo fence="true" stretchy="true" minsize="1.2em">(</mo>`, got)

	frac := Frac(Mi("n"), Mi("k"))
	frac.LineThickness = "0"
	got, err = Render(frac, nil)
	require.NoError(t, err)
	require.Equal(t, `<mfrac linethickness="0"><mi>n</mi><mi>k</mi></mfrac>`, got)
}

func TestRenderOmitsParserState(t *testing.T) {
	// Reduction-side state must never leak into the markup.
	mo := Mo("+")
	mo.TexClass = ClassOp
	mo.MoveSupSub = true
	mo.MovableLimits = true
	mo.VariantForm = true

	row := New("mrow", mo)
	row.Inferred = true
	row.Atom = true
	row.Open, row.Close = "(", ")"

	got, err := Render(row, nil)
	require.NoError(t, err)
	require.Equal(t, "<mrow><mo>+</mo></mrow>", got)
}

func TestRenderSkipsNilSlots(t *testing.T) {
	n := New("msubsup", Mi("x"), nil, Mn("2"))
	got, err := Render(n, nil)
	require.NoError(t, err)
	require.False(t, strings.Contains(got, "msubsup"))
	require.Equal(t, "<msup><mi>x</mi><mn>2</mn></msup>", got)
}

func TestDump(t *testing.T) {
	frac := Frac(Mi("a"), New("msubsup", Mi("x"), nil, Mn("2")))
	frac.Kids[1].Kids[2].SetAttr("mathcolor", "red")

	want := `| <mfrac>
|   <mi> "a"
|   <msup>
|     <mi> "x"
|     <mn mathcolor="red"> "2"
`
	if diff := cmp.Diff(want, Dump(frac)); diff != "" {
		t.Errorf("Dump mismatch (-want +got):\n%s", diff)
	}
}

func TestIsToken(t *testing.T) {
	for _, name := range []string{"mi", "mn", "mo", "mtext", "ms"} {
		require.True(t, IsToken(name), name)
	}
	for _, name := range []string{"mrow", "mfrac", "mtable", "msubsup"} {
		require.False(t, IsToken(name), name)
	}
}
