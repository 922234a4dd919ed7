package texparse

import "github.com/dpotapov/go-texmath/mml"

// LeftItem is a stretchy opening delimiter. Its matching right item wraps
// the accumulated nodes as a fenced group carrying both delimiters.
type LeftItem struct {
	BaseItem
	delim string
}

func (it *LeftItem) CheckItem(ctx *Context, in StackItem) (Check, error) {
	if r, ok := in.(*RightItem); ok {
		return Replace(ctx.Factory.Mml(fenced(it.delim, it.Row(true), r.delim))), nil
	}
	return checkBase(it, ctx, in)
}

func (it *LeftItem) CloseError(in StackItem) *ParseError {
	if in.Kind() == KindStop {
		return ErrExtraLeftMissingRight.New()
	}
	return it.BaseItem.CloseError(in)
}

// RightItem is a stretchy closing delimiter. It never survives on the
// stack: a left item consumes it, anything else raises the pairing error.
type RightItem struct {
	BaseItem
	delim string
}

func (it *RightItem) CheckItem(ctx *Context, in StackItem) (Check, error) {
	return checkBase(it, ctx, in)
}

// EndFn finalizes a matched environment in place of the default
// wrap-and-emit, letting an environment shape its own result.
type EndFn func(ctx *Context, begin *BeginItem, end *EndItem) (Check, error)

// BeginItem opens a named environment.
type BeginItem struct {
	BaseItem
	name  string
	endFn EndFn
}

// Name returns the environment name.
func (it *BeginItem) Name() string { return it.name }

func (it *BeginItem) CheckItem(ctx *Context, in StackItem) (Check, error) {
	switch in := in.(type) {
	case *EndItem:
		if in.name != it.name {
			return Check{}, ErrEnvBadEnd.New(it.name, in.name)
		}
		if it.endFn != nil {
			return it.endFn(ctx, it, in)
		}
		return Replace(ctx.Factory.Mml(it.Row(true))), nil
	case *StopItem:
		return Check{}, ErrEnvMissingEnd.New(it.name)
	}
	return checkBase(it, ctx, in)
}

// EndItem closes a named environment.
type EndItem struct {
	BaseItem
	name string
}

func (it *EndItem) CheckItem(ctx *Context, in StackItem) (Check, error) {
	return checkBase(it, ctx, in)
}

// fenced wraps content between stretchy fence operators. The resulting row
// records the delimiters and takes the inner spacing class. Empty delimiter
// strings are skipped, which environments like cases use for a one-sided
// fence.
func fenced(open string, content *mml.Node, close string) *mml.Node {
	row := mml.New("mrow")
	row.TexClass = mml.ClassInner
	row.Open, row.Close = open, close
	if open != "" {
		mo := mml.Mo(open)
		mo.Fence, mo.Stretchy = true, true
		mo.TexClass = mml.ClassOpen
		row.Append(mo)
	}
	if content.Name == "mrow" && content.Inferred {
		row.Append(content.Kids...)
	} else {
		row.Append(content)
	}
	if close != "" {
		mo := mml.Mo(close)
		mo.Fence, mo.Stretchy = true, true
		mo.TexClass = mml.ClassClose
		row.Append(mo)
	}
	return row
}

// fixedFence is fenced with delimiters held near text size, used by
// choose-style fractions where the fences must not stretch to full height.
func fixedFence(open string, content *mml.Node, close string) *mml.Node {
	row := fenced(open, content, close)
	row.TexClass = mml.ClassOrd
	for _, c := range row.Kids {
		if c != nil && c.Name == "mo" && c.Fence {
			c.SetAttr("minsize", "1.2em")
			c.SetAttr("maxsize", "1.2em")
		}
	}
	return row
}
