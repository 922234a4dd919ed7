package mml

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolvedName(t *testing.T) {
	script := func(sub, sup *Node) *Node {
		n := Script(Mi("x"))
		n.SetChild(SubSlot, sub)
		n.SetChild(SupSlot, sup)
		return n
	}
	underOver := func(sub, sup *Node) *Node {
		n := UnderOver(Mi("x"))
		n.SetChild(SubSlot, sub)
		n.SetChild(SupSlot, sup)
		return n
	}
	moved := script(Mn("1"), nil)
	moved.MoveSupSub = true

	tests := []struct {
		name string
		n    *Node
		want string
	}{
		{"plain", Mi("x"), "mi"},
		{"empty_slots", script(nil, nil), "msubsup"},
		{"sub_only", script(Mn("1"), nil), "msub"},
		{"sup_only", script(nil, Mn("2")), "msup"},
		{"both", script(Mn("1"), Mn("2")), "msubsup"},
		{"under_only", underOver(Mn("1"), nil), "munder"},
		{"over_only", underOver(nil, Mn("2")), "mover"},
		{"under_over", underOver(Mn("1"), Mn("2")), "munderover"},
		{"moved_sub", moved, "munder"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.n.ResolvedName())
		})
	}
}

func TestRow(t *testing.T) {
	single := Mi("x")
	require.Same(t, single, Row([]*Node{single}, true), "a sole node is not wrapped")

	row := Row([]*Node{Mi("a"), Mi("b")}, true)
	require.Equal(t, "mrow", row.Name)
	require.True(t, row.Inferred)
	require.Equal(t, 2, row.Size())

	empty := Row(nil, false)
	require.Equal(t, "mrow", empty.Name)
	require.Equal(t, 0, empty.Size())
}

func TestAtomize(t *testing.T) {
	atom := Atomize(Mi("x"), ClassOp)
	require.Equal(t, "mrow", atom.Name)
	require.True(t, atom.Atom)
	require.Equal(t, ClassOp, atom.TexClass)
	require.Equal(t, 1, atom.Size())

	// An inferred row is flattened rather than nested.
	inner := Row([]*Node{Mi("a"), Mi("b")}, true)
	flat := Atomize(inner, ClassOrd)
	require.Equal(t, 2, flat.Size())
}

func TestSetChildGrows(t *testing.T) {
	n := New("msubsup", Mi("x"))
	n.SetChild(SupSlot, Mn("2"))
	require.Equal(t, 3, n.Size())
	require.Nil(t, n.Child(SubSlot))
	require.NotNil(t, n.Child(SupSlot))
	require.Nil(t, n.Child(5), "out of range slot reads as empty")
}

func TestSetAttr(t *testing.T) {
	n := Mi("x")
	n.SetAttr("mathvariant", "bold")
	n.SetAttr("mathcolor", "red")
	n.SetAttr("mathvariant", "italic")

	require.Equal(t, "italic", n.AttrVal("mathvariant"))
	require.Len(t, n.Attr, 2, "replacement keeps attribute order")
	require.Equal(t, "mathvariant", n.Attr[0].Key)
	require.Equal(t, "", n.AttrVal("missing"))
}

func TestCoreMO(t *testing.T) {
	mo := Mo("+")
	require.Same(t, mo, mo.CoreMO())

	sup := Script(mo)
	sup.SetChild(SupSlot, Mn("2"))
	require.Same(t, mo, sup.CoreMO())
	require.True(t, sup.IsEmbellished())

	row := New("mrow", Mspace("1em"), sup)
	require.Same(t, mo, row.CoreMO(), "space-like siblings are ignored")

	two := New("mrow", Mo("+"), Mo("-"))
	require.Nil(t, two.CoreMO(), "two cores disqualify the row")
	require.Nil(t, Mi("x").CoreMO())
}

func TestEffectiveClass(t *testing.T) {
	require.Equal(t, ClassBin, Mo("+").EffectiveClass())
	require.Equal(t, ClassRel, Mo("=").EffectiveClass())
	require.Equal(t, ClassOrd, Mi("x").EffectiveClass())

	sup := Script(Mo("+"))
	sup.SetChild(SupSlot, Mn("2"))
	require.Equal(t, ClassBin, sup.EffectiveClass(), "embellished operators keep the core class")
}

func TestIsSpaceLike(t *testing.T) {
	require.True(t, Mspace("1em").IsSpaceLike())
	require.True(t, Mtext("  ").IsSpaceLike())
	require.False(t, Mtext("x").IsSpaceLike())
	require.True(t, New("mrow", Mspace("1em"), Mtext(" ")).IsSpaceLike())
	require.False(t, New("mrow", Mspace("1em"), Mi("x")).IsSpaceLike())
}

func TestSingleChar(t *testing.T) {
	require.True(t, Mo("+").SingleChar())
	require.True(t, Mo("∑").SingleChar(), "one rune, several bytes")
	require.False(t, Mi("sin").SingleChar())
	require.False(t, Mi("").SingleChar())
}

func TestNegate(t *testing.T) {
	neg, ok := Negate('=')
	require.True(t, ok)
	require.Equal(t, '≠', neg)

	_, ok = Negate('x')
	require.False(t, ok)
}

func TestHasMovableLimits(t *testing.T) {
	require.True(t, HasMovableLimits("∑"))
	require.False(t, HasMovableLimits("∫"), "integrals keep side scripts")
	require.False(t, HasMovableLimits("ab"))
}
