// Package texparse converts TeX math notation into a presentation tree. The
// heart of the package is a pushdown reduction engine: the parser turns
// source constructs into typed stack items, and each time an item is about
// to join the stack the current top item's CheckItem rule decides whether to
// absorb it, let it stack, replace itself, or fail with a structured error.
package texparse

import (
	"strconv"

	"github.com/dpotapov/go-texmath/mml"
)

// ItemKind enumerates the closed set of stack item variants.
type ItemKind int

const (
	KindStart ItemKind = iota
	KindStop
	KindOpen
	KindClose
	KindLeft
	KindRight
	KindBegin
	KindEnd
	KindOver
	KindSubsup
	KindPrime
	KindStyle
	KindPosition
	KindArray
	KindCell
	KindFn
	KindNot
	KindDots
	KindMml
)

var kindNames = [...]string{
	"start", "stop", "open", "close", "left", "right", "begin", "end",
	"over", "subsup", "prime", "style", "position", "array", "cell",
	"fn", "not", "dots", "mml",
}

func (k ItemKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Context carries the parse-wide state threaded through every reduction
// call: the item factory, the shared flag map and the effective options.
type Context struct {
	Factory *Factory
	Global  map[string]any
	Options *Options
}

// NewContext returns a context for one parse. A nil opts selects the
// defaults.
func NewContext(opts *Options) *Context {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Context{Factory: &Factory{}, Global: map[string]any{}, Options: opts}
}

// Check is the outcome of one reduction step.
type Check struct {
	action checkAction
	items  []StackItem
}

type checkAction int

const (
	actionKeep checkAction = iota
	actionDrop
	actionReplace
)

// Keep lets the incoming item join the stack normally.
func Keep() Check { return Check{action: actionKeep} }

// Drop discards the incoming item without stacking it.
func Drop() Check { return Check{action: actionDrop} }

// Replace removes the current top item and pushes the given items in order,
// running each through the reduction protocol again.
func Replace(items ...StackItem) Check { return Check{action: actionReplace, items: items} }

// StackItem is one entry of the reduction stack.
//
// Items are created by the Factory, mutated only while they are the current
// top of stack, and either absorbed or replaced during reduction. Open items
// own a scope-local environment map; all other items alias the environment
// of the scope they were pushed into.
type StackItem interface {
	Kind() ItemKind
	IsOpen() bool
	IsClose() bool
	IsFinal() bool

	// Data is the ordered sequence of tree nodes accumulated by this item,
	// in left-to-right reading order.
	Data() []*mml.Node
	SetData(nodes []*mml.Node)
	Append(nodes ...*mml.Node)

	Env() map[string]any
	SetEnv(env map[string]any)
	// CopyEnv reports whether the item's fresh environment receives a copy
	// of the enclosing scope's entries when pushed.
	CopyEnv() bool

	// CheckItem reduces the incoming item against this one. It runs while
	// this item is the top of stack and in is about to join.
	CheckItem(ctx *Context, in StackItem) (Check, error)

	// CloseError returns the failure raised when in, a closing item,
	// reaches this item without a structural match, or nil to accept the
	// shared pairing defaults.
	CloseError(in StackItem) *ParseError
}

// BaseItem carries the state common to every item kind and supplies the
// default pairing errors. Concrete kinds embed it and delegate to checkBase
// for the shared reduction rule.
type BaseItem struct {
	kind    ItemKind
	open    bool
	close   bool
	final   bool
	copyEnv bool
	data    []*mml.Node
	env     map[string]any
}

func newBase(kind ItemKind) BaseItem {
	return BaseItem{kind: kind, copyEnv: true}
}

func newOpenBase(kind ItemKind) BaseItem {
	return BaseItem{kind: kind, open: true, copyEnv: true, env: map[string]any{}}
}

func newCloseBase(kind ItemKind) BaseItem {
	return BaseItem{kind: kind, close: true, copyEnv: true}
}

func (b *BaseItem) Kind() ItemKind             { return b.kind }
func (b *BaseItem) IsOpen() bool               { return b.open }
func (b *BaseItem) IsClose() bool              { return b.close }
func (b *BaseItem) IsFinal() bool              { return b.final }
func (b *BaseItem) Data() []*mml.Node          { return b.data }
func (b *BaseItem) SetData(nodes []*mml.Node)  { b.data = nodes }
func (b *BaseItem) Append(nodes ...*mml.Node)  { b.data = append(b.data, nodes...) }
func (b *BaseItem) Env() map[string]any        { return b.env }
func (b *BaseItem) SetEnv(env map[string]any)  { b.env = env }
func (b *BaseItem) CopyEnv() bool              { return b.copyEnv }

// Row wraps the accumulated nodes as a single node: a sole node is returned
// unwrapped, anything else becomes an mrow.
func (b *BaseItem) Row(inferred bool) *mml.Node {
	return mml.Row(b.data, inferred)
}

// CloseError supplies the default pairing failures: an unmatched close or
// environment end, and a right delimiter with no left counterpart.
func (b *BaseItem) CloseError(in StackItem) *ParseError {
	switch in.Kind() {
	case KindClose, KindEnd:
		return ErrExtraCloseMissingOpen.New()
	case KindRight:
		return ErrMissingLeftExtraRight.New()
	}
	return nil
}

// checkBase is the shared default reduction rule. Concrete CheckItem
// implementations fall back to it after handling their own pairings; it is
// passed the concrete item so overridden CloseError rules apply.
func checkBase(it StackItem, ctx *Context, in StackItem) (Check, error) {
	if over, ok := in.(*OverItem); ok && it.IsOpen() {
		// A fraction marker claims everything seen so far in this scope
		// as its numerator.
		over.num = mml.Row(it.Data(), false)
		it.SetData(nil)
	}
	if cell, ok := in.(*CellItem); ok && it.IsOpen() {
		if cell.lineBreak {
			return Drop(), nil
		}
		return Check{}, ErrMisplaced.New(cell.name)
	}
	if in.IsClose() {
		if e := it.CloseError(in); e != nil {
			return Check{}, e
		}
	}
	if !in.IsFinal() {
		return Keep(), nil
	}
	it.Append(in.Data()...)
	return Drop(), nil
}

// MmlItem wraps completed tree nodes. It is the only final kind; when
// emitted by a reduction it holds exactly one node.
type MmlItem struct {
	BaseItem
}

func (it *MmlItem) CheckItem(ctx *Context, in StackItem) (Check, error) {
	return checkBase(it, ctx, in)
}

// First returns the wrapped node, or nil when the item is empty.
func (it *MmlItem) First() *mml.Node {
	if len(it.data) == 0 {
		return nil
	}
	return it.data[0]
}

// StartItem anchors the stack; matching it with a stop item finalizes the
// parse into a single mml item.
type StartItem struct {
	BaseItem
}

func (it *StartItem) CheckItem(ctx *Context, in StackItem) (Check, error) {
	if in.Kind() == KindStop {
		return Replace(ctx.Factory.Mml(it.Row(true))), nil
	}
	return checkBase(it, ctx, in)
}

// StopItem terminates the push sequence.
type StopItem struct {
	BaseItem
}

func (it *StopItem) CheckItem(ctx *Context, in StackItem) (Check, error) {
	return checkBase(it, ctx, in)
}

// OpenItem is a grouping brace. Its matching close wraps the accumulated
// nodes as a single ordinary atom so surrounding spacing rules treat the
// group as one unit.
type OpenItem struct {
	BaseItem
}

func (it *OpenItem) CheckItem(ctx *Context, in StackItem) (Check, error) {
	if in.Kind() == KindClose {
		// Row unwraps a sole node, so a braced group ending in a script
		// atomizes the script container itself without an extra row.
		return Replace(ctx.Factory.Mml(mml.Atomize(it.Row(true), mml.ClassOrd))), nil
	}
	return checkBase(it, ctx, in)
}

func (it *OpenItem) CloseError(in StackItem) *ParseError {
	if in.Kind() == KindStop {
		return ErrExtraOpenMissingClose.New()
	}
	return it.BaseItem.CloseError(in)
}

// CloseItem is a closing grouping brace.
type CloseItem struct {
	BaseItem
}

func (it *CloseItem) CheckItem(ctx *Context, in StackItem) (Check, error) {
	return checkBase(it, ctx, in)
}
