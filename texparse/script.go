package texparse

import "github.com/dpotapov/go-texmath/mml"

// ScriptPos selects the pending slot of a script construct.
type ScriptPos int

const (
	Sub ScriptPos = iota
	Sup
)

func (p ScriptPos) String() string {
	if p == Sub {
		return "subscript"
	}
	return "superscript"
}

func (p ScriptPos) slot() int {
	if p == Sub {
		return mml.SubSlot
	}
	return mml.SupSlot
}

// SubsupItem waits for the argument of a pending sub- or superscript. Its
// data holds the script container the argument will be written into.
type SubsupItem struct {
	BaseItem
	position   ScriptPos
	primes     *mml.Node
	moveSupSub bool
}

func (it *SubsupItem) CheckItem(ctx *Context, in StackItem) (Check, error) {
	switch in.Kind() {
	case KindOpen, KindLeft:
		return Keep(), nil
	case KindMml:
		base := it.data[0]
		script := in.Data()[0]
		if it.primes != nil {
			if it.position != Sup {
				// Primes seen before a subscript keep their place in the
				// superscript slot.
				base.SetChild(mml.SupSlot, it.primes)
			} else {
				it.primes.VariantForm = true
				script = mml.New("mrow", it.primes, script)
			}
		}
		base.SetChild(it.position.slot(), script)
		if it.moveSupSub {
			base.MoveSupSub = true
		}
		return Replace(ctx.Factory.Mml(base)), nil
	}
	ck, err := checkBase(it, ctx, in)
	if err != nil {
		return ck, err
	}
	// Whatever the default rule would have stacked cannot supply the
	// pending script argument.
	if it.position == Sub {
		return Check{}, ErrMissingOpenForSub.New(it.position.String())
	}
	return Check{}, ErrMissingOpenForSup.New(it.position.String())
}

func (it *SubsupItem) CloseError(in StackItem) *ParseError {
	if in.Kind() == KindStop {
		return ErrMissingScript.New()
	}
	if it.position == Sub {
		return ErrMissingOpenForSub.New(it.position.String())
	}
	return ErrMissingOpenForSup.New(it.position.String())
}

// PrimeItem joins a base with a trailing prime glyph. Its data holds the
// base (possibly nil until an earlier prime in a chain supplies it) and the
// glyph.
type PrimeItem struct {
	BaseItem
}

func (it *PrimeItem) CheckItem(ctx *Context, in StackItem) (Check, error) {
	base, prime := it.data[0], it.data[1]
	if next, ok := in.(*PrimeItem); ok && next.data[0] == nil {
		// Successive primes nest: this prime's superscript becomes the
		// next one's base.
		next.data[0] = mml.New("msup", base, prime)
		return Replace(next), nil
	}
	if base.Name != "msubsup" {
		if base.Name == "msup" {
			prime.VariantForm = true
		}
		return Replace(ctx.Factory.Mml(mml.New("msup", base, prime)), in), nil
	}
	// A script container with a free superscript slot takes the prime
	// directly instead of growing another wrapper.
	base.SetChild(mml.SupSlot, prime)
	return Replace(ctx.Factory.Mml(base), in), nil
}

// OverItem assembles a fraction. Its numerator is captured from the
// enclosing scope by the shared reduction rule when the fraction marker
// appears; the denominator accumulates afterwards.
type OverItem struct {
	BaseItem
	name        string
	num         *mml.Node
	thickness   string // fraction rule, "" keeps the default
	open, close string
}

func (it *OverItem) CheckItem(ctx *Context, in StackItem) (Check, error) {
	if over, ok := in.(*OverItem); ok {
		return Check{}, ErrAmbiguousUseOf.New(over.name)
	}
	if in.IsClose() {
		node := mml.Frac(it.num, it.Row(false))
		if it.thickness != "" {
			node.LineThickness = it.thickness
		}
		if it.open != "" || it.close != "" {
			node = fixedFence(it.open, node, it.close)
		}
		return Replace(ctx.Factory.Mml(node), in), nil
	}
	return checkBase(it, ctx, in)
}
