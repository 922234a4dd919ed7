package texparse

import (
	"unicode/utf8"

	"github.com/dpotapov/go-texmath/mml"
)

// StyleItem collects nodes following a style switch and wraps them in an
// mstyle carrying the switch attributes. Any closing item ends the run, so
// a switch inside a group stays local to that group.
type StyleItem struct {
	BaseItem
	styles []mml.Attr
}

func (it *StyleItem) CheckItem(ctx *Context, in StackItem) (Check, error) {
	if !in.IsClose() {
		return checkBase(it, ctx, in)
	}
	node := mml.New("mstyle", it.data...)
	for _, a := range it.styles {
		node.SetAttr(a.Key, a.Val)
	}
	return Replace(ctx.Factory.Mml(node), in), nil
}

// MoveKind selects how a position item displaces its box.
type MoveKind int

const (
	MoveVertical MoveKind = iota
	MoveHorizontal
)

// PositionItem shifts the next box vertically via mpadded or horizontally
// by flanking it with spacers of opposite widths.
type PositionItem struct {
	BaseItem
	name        string
	move        MoveKind
	dh, dd      string
	left, right *mml.Node
}

func (it *PositionItem) CheckItem(ctx *Context, in StackItem) (Check, error) {
	if in.IsClose() {
		return Check{}, ErrMissingBoxFor.New(it.name)
	}
	if in.IsFinal() {
		node := mml.Row(in.Data(), true)
		switch it.move {
		case MoveVertical:
			pad := mml.New("mpadded", node)
			pad.SetAttr("height", it.dh)
			pad.SetAttr("depth", it.dd)
			pad.SetAttr("voffset", it.dh)
			return Replace(ctx.Factory.Mml(pad)), nil
		case MoveHorizontal:
			return Replace(ctx.Factory.Mml(it.left), in, ctx.Factory.Mml(it.right)), nil
		}
	}
	return checkBase(it, ctx, in)
}

// FnItem holds a function name and decides whether an invisible apply
// operator separates it from what follows. No apply is inserted before
// spacing or before binary, relation, closing and punctuation operators.
type FnItem struct {
	BaseItem
}

func (it *FnItem) CheckItem(ctx *Context, in StackItem) (Check, error) {
	if len(it.data) > 0 {
		if in.IsOpen() {
			return Keep(), nil
		}
		if in.Kind() != KindFn {
			m, ok := in.(*MmlItem)
			if !ok || m.First() == nil {
				return Replace(ctx.Factory.Mml(it.data[0]), in), nil
			}
			node := m.First()
			if node.Name == "mspace" {
				return Replace(ctx.Factory.Mml(it.data[0]), in), nil
			}
			switch node.EffectiveClass() {
			case mml.ClassBin, mml.ClassRel, mml.ClassClose, mml.ClassPunct:
				return Replace(ctx.Factory.Mml(it.data[0]), in), nil
			}
		}
		apply := mml.Mo(mml.ApplyFunction)
		apply.TexClass = mml.ClassNone
		return Replace(ctx.Factory.Mml(it.data[0]), ctx.Factory.Mml(apply), in), nil
	}
	return checkBase(it, ctx, in)
}

// NotItem negates the operator that follows. Single-character tokens with a
// precomposed negation are remapped, other single characters receive a
// combining slash, and anything else gets a zero-width strike overlaid as a
// relation atom.
type NotItem struct {
	BaseItem
}

func (it *NotItem) CheckItem(ctx *Context, in StackItem) (Check, error) {
	switch in.Kind() {
	case KindOpen, KindLeft:
		return Keep(), nil
	}
	if m, ok := in.(*MmlItem); ok {
		node := m.First()
		if node != nil && isNegatable(node) {
			r, _ := utf8.DecodeRuneInString(node.Text)
			if neg, ok := mml.Negate(r); ok {
				node.Text = string(neg)
			} else {
				node.Text += mml.CombiningSlash
			}
			return Replace(in), nil
		}
	}
	pad := mml.New("mpadded", mml.Mtext(mml.StrikeSlash))
	pad.SetAttr("width", "0")
	return Replace(ctx.Factory.Mml(mml.Atomize(pad, mml.ClassRel)), in), nil
}

func isNegatable(n *mml.Node) bool {
	switch n.Name {
	case "mo", "mi", "mtext":
		return n.SingleChar() && !n.MoveSupSub
	}
	return false
}

// DotsItem picks between baseline and centered ellipsis dots based on what
// follows: an operator of binary or relation class centers the dots.
type DotsItem struct {
	BaseItem
	ldots, cdots *mml.Node
}

func (it *DotsItem) CheckItem(ctx *Context, in StackItem) (Check, error) {
	switch in.Kind() {
	case KindOpen, KindLeft:
		return Keep(), nil
	}
	dots := it.ldots
	if m, ok := in.(*MmlItem); ok {
		if node := m.First(); node != nil && node.IsEmbellished() {
			switch node.CoreMO().TexClass {
			case mml.ClassBin, mml.ClassRel:
				dots = it.cdots
			}
		}
	}
	return Replace(ctx.Factory.Mml(dots), in), nil
}
