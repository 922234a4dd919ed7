package texparse

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dpotapov/go-texmath/mml"
)

func TestFactoryCreate(t *testing.T) {
	f := &Factory{}
	tests := []struct {
		kind  ItemKind
		open  bool
		close bool
		final bool
	}{
		{KindStart, true, false, false},
		{KindStop, false, true, false},
		{KindOpen, true, false, false},
		{KindClose, false, true, false},
		{KindLeft, true, false, false},
		{KindRight, false, true, false},
		{KindBegin, true, false, false},
		{KindEnd, false, true, false},
		{KindOver, false, true, false},
		{KindSubsup, false, false, false},
		{KindPrime, false, false, false},
		{KindStyle, false, false, false},
		{KindPosition, false, false, false},
		{KindArray, true, false, false},
		{KindCell, false, true, false},
		{KindFn, false, false, false},
		{KindNot, false, false, false},
		{KindDots, false, false, false},
		{KindMml, false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			it := f.Create(tt.kind)
			require.Equal(t, tt.kind, it.Kind())
			require.Equal(t, tt.open, it.IsOpen(), "IsOpen")
			require.Equal(t, tt.close, it.IsClose(), "IsClose")
			require.Equal(t, tt.final, it.IsFinal(), "IsFinal")
		})
	}
}

func TestFactoryCreateUnknownKind(t *testing.T) {
	f := &Factory{}
	require.Panics(t, func() { f.Create(ItemKind(99)) })
}

func TestStackAbsorbsFinalItems(t *testing.T) {
	ctx := NewContext(nil)
	s := NewStack(ctx, nil)
	require.Equal(t, 1, s.Depth())
	require.Equal(t, KindStart, s.Top().Kind())

	require.NoError(t, s.Push(ctx.Factory.Mml(mml.Mi("x"))))
	require.Equal(t, 1, s.Depth(), "final item is absorbed, not stacked")
	require.Len(t, s.Top().Data(), 1)
}

func TestStackPrev(t *testing.T) {
	ctx := NewContext(nil)
	s := NewStack(ctx, nil)
	require.Nil(t, s.Prev(false))

	a, b := mml.Mi("a"), mml.Mi("b")
	require.NoError(t, s.Push(ctx.Factory.Mml(a), ctx.Factory.Mml(b)))

	require.Same(t, b, s.Prev(false))
	require.Len(t, s.Top().Data(), 2, "peek does not remove")

	require.Same(t, b, s.Prev(true))
	require.Len(t, s.Top().Data(), 1)
	require.Same(t, a, s.Prev(false))
}

func TestStackScopeEnvironment(t *testing.T) {
	ctx := NewContext(nil)
	s := NewStack(ctx, nil)
	s.Env()["font"] = "bold"

	// An open item copies the enclosing scope in.
	require.NoError(t, s.Push(ctx.Factory.Open()))
	require.Equal(t, "bold", s.Env()["font"])

	// Mutations stay local to the inner scope.
	s.Env()["font"] = "italic"
	require.NoError(t, s.Push(ctx.Factory.Mml(mml.Mi("x")), ctx.Factory.Close()))
	require.Equal(t, "bold", s.Env()["font"])
}

func TestStackArrayEnvironmentNotCopied(t *testing.T) {
	ctx := NewContext(nil)
	s := NewStack(ctx, nil)
	s.Env()["font"] = "bold"

	require.NoError(t, s.Push(ctx.Factory.Array()))
	_, ok := s.Env()["font"]
	require.False(t, ok, "array scope starts empty")
}

func TestStackTree(t *testing.T) {
	ctx := NewContext(nil)
	s := NewStack(ctx, nil)
	require.NoError(t, s.Push(ctx.Factory.Mml(mml.Mi("x")), ctx.Factory.Stop()))

	node, err := s.Tree()
	require.NoError(t, err)
	require.Equal(t, "mi", node.Name)
}

func TestStackTreeUnreduced(t *testing.T) {
	ctx := NewContext(nil)
	s := NewStack(ctx, nil)
	require.NoError(t, s.Push(ctx.Factory.Open()))

	_, err := s.Tree()
	require.Error(t, err)
	require.Equal(t, "start open", s.String())
}

func TestStackGroupReduction(t *testing.T) {
	ctx := NewContext(nil)
	s := NewStack(ctx, nil)
	require.NoError(t, s.Push(
		ctx.Factory.Open(),
		ctx.Factory.Mml(mml.Mi("a")),
		ctx.Factory.Mml(mml.Mi("b")),
		ctx.Factory.Close(),
		ctx.Factory.Stop(),
	))

	node, err := s.Tree()
	require.NoError(t, err)
	require.Equal(t, "mrow", node.Name)
	require.True(t, node.Atom)
	require.Equal(t, mml.ClassOrd, node.TexClass)
	require.Equal(t, 2, node.Size())
}

func TestStackGroupCollapsesSoleScript(t *testing.T) {
	// {x^2} reduces to the script container itself instead of wrapping it
	// in another atom row.
	sup := mml.Script(mml.Mi("x"))
	sup.SetChild(mml.SupSlot, mml.Mn("2"))

	ctx := NewContext(nil)
	s := NewStack(ctx, nil)
	require.NoError(t, s.Push(
		ctx.Factory.Open(),
		ctx.Factory.Mml(sup),
		ctx.Factory.Close(),
		ctx.Factory.Stop(),
	))

	node, err := s.Tree()
	require.NoError(t, err)
	require.Equal(t, 1, node.Size())
	require.Same(t, sup, node.Child(0))
}
