package texparse

import (
	"github.com/dpotapov/go-texmath/mml"
)

// Factory constructs stack items. The set of kinds is closed: every item
// the engine can see is created here, and reduction code may rely on the
// concrete types behind each kind.
type Factory struct{}

// Create returns a bare item of the given kind with its defaults. Items
// whose construction needs arguments have dedicated constructors below;
// Create exists for uniform access and tests.
func (f *Factory) Create(kind ItemKind) StackItem {
	switch kind {
	case KindStart:
		return f.Start()
	case KindStop:
		return f.Stop()
	case KindOpen:
		return f.Open()
	case KindClose:
		return f.Close()
	case KindLeft:
		return f.Left("(")
	case KindRight:
		return f.Right(")")
	case KindBegin:
		return f.Begin("", nil)
	case KindEnd:
		return f.End("")
	case KindOver:
		return f.Over("")
	case KindSubsup:
		return f.Subsup(nil, Sup, nil, false)
	case KindPrime:
		return f.Prime(nil, nil)
	case KindStyle:
		return f.Style()
	case KindPosition:
		return f.Raise("", "+0em", "-0em")
	case KindArray:
		return f.Array()
	case KindCell:
		return f.Entry("")
	case KindFn:
		return f.Fn(nil)
	case KindNot:
		return f.Not()
	case KindDots:
		return f.Dots(nil, nil)
	case KindMml:
		return f.Mml()
	}
	panic("texparse: unknown stack item kind " + kind.String())
}

// Start anchors a fresh stack.
func (f *Factory) Start() *StartItem {
	return &StartItem{BaseItem: newOpenBase(KindStart)}
}

// Stop finalizes the stack.
func (f *Factory) Stop() *StopItem {
	return &StopItem{BaseItem: newCloseBase(KindStop)}
}

// Open begins a brace group.
func (f *Factory) Open() *OpenItem {
	return &OpenItem{BaseItem: newOpenBase(KindOpen)}
}

// Close ends a brace group.
func (f *Factory) Close() *CloseItem {
	return &CloseItem{BaseItem: newCloseBase(KindClose)}
}

// Left begins a fenced group with the given opening delimiter.
func (f *Factory) Left(delim string) *LeftItem {
	return &LeftItem{BaseItem: newOpenBase(KindLeft), delim: delim}
}

// Right ends a fenced group with the given closing delimiter.
func (f *Factory) Right(delim string) *RightItem {
	return &RightItem{BaseItem: newCloseBase(KindRight), delim: delim}
}

// Begin opens a named environment. A non-nil end handler finalizes the
// matched body in place of the default row wrap.
func (f *Factory) Begin(name string, endFn EndFn) *BeginItem {
	return &BeginItem{BaseItem: newOpenBase(KindBegin), name: name, endFn: endFn}
}

// End closes the named environment.
func (f *Factory) End(name string) *EndItem {
	return &EndItem{BaseItem: newCloseBase(KindEnd), name: name}
}

// Over marks a fraction split inside the current scope. The caller may set
// the rule thickness and fence delimiters on the returned item.
func (f *Factory) Over(name string) *OverItem {
	return &OverItem{BaseItem: newCloseBase(KindOver), name: name}
}

// Subsup awaits the script for the given slot of base. A non-nil primes
// node is merged into the finished script container; moveSupSub converts
// the container to limits form.
func (f *Factory) Subsup(base *mml.Node, pos ScriptPos, primes *mml.Node, moveSupSub bool) *SubsupItem {
	it := &SubsupItem{BaseItem: newBase(KindSubsup), position: pos, primes: primes, moveSupSub: moveSupSub}
	it.data = []*mml.Node{base}
	return it
}

// Prime attaches a prime glyph to base. A nil base lets the item take its
// base from the preceding prime in a chain.
func (f *Factory) Prime(base, glyph *mml.Node) *PrimeItem {
	it := &PrimeItem{BaseItem: newBase(KindPrime)}
	it.data = []*mml.Node{base, glyph}
	return it
}

// Style collects nodes under a style switch.
func (f *Factory) Style(styles ...mml.Attr) *StyleItem {
	return &StyleItem{BaseItem: newBase(KindStyle), styles: styles}
}

// Raise shifts the next box vertically. dh and dd carry signed dimensions
// for the height and depth adjustment.
func (f *Factory) Raise(name, dh, dd string) *PositionItem {
	return &PositionItem{BaseItem: newBase(KindPosition), name: name, move: MoveVertical, dh: dh, dd: dd}
}

// Shift moves the next box horizontally between two spacers of opposite
// widths.
func (f *Factory) Shift(name string, left, right *mml.Node) *PositionItem {
	return &PositionItem{BaseItem: newBase(KindPosition), name: name, move: MoveHorizontal, left: left, right: right}
}

// Array opens a table scope. The scope starts with an empty environment
// rather than a copy of the enclosing one.
func (f *Factory) Array() *ArrayItem {
	it := &ArrayItem{BaseItem: newOpenBase(KindArray)}
	it.copyEnv = false
	return it
}

// Entry separates two table cells.
func (f *Factory) Entry(name string) *CellItem {
	return &CellItem{BaseItem: newCloseBase(KindCell), name: name, isEntry: true}
}

// Cr separates two table rows.
func (f *Factory) Cr(name string) *CellItem {
	return &CellItem{BaseItem: newCloseBase(KindCell), name: name, isCR: true}
}

// Break is a row separator that doubles as a plain line break when no
// table is open.
func (f *Factory) Break(name string) *CellItem {
	return &CellItem{BaseItem: newCloseBase(KindCell), name: name, isCR: true, lineBreak: true}
}

// Fn holds a function name awaiting its argument.
func (f *Factory) Fn(name *mml.Node) *FnItem {
	it := &FnItem{BaseItem: newBase(KindFn)}
	if name != nil {
		it.data = []*mml.Node{name}
	}
	return it
}

// Not negates the following operator.
func (f *Factory) Not() *NotItem {
	return &NotItem{BaseItem: newBase(KindNot)}
}

// Dots picks between the two given ellipsis forms.
func (f *Factory) Dots(ldots, cdots *mml.Node) *DotsItem {
	return &DotsItem{BaseItem: newBase(KindDots), ldots: ldots, cdots: cdots}
}

// Mml wraps finished nodes for absorption by the item below.
func (f *Factory) Mml(nodes ...*mml.Node) *MmlItem {
	it := &MmlItem{BaseItem: newBase(KindMml)}
	it.final = true
	it.data = nodes
	return it
}
