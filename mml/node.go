// Package mml holds the tree representation built by the math parser:
// presentation nodes with ordered attributes and indexed children, plus the
// operator lookup tables consulted during reduction. Serialization to XML
// lives in render.go.
package mml

import (
	"strings"
	"unicode/utf8"
)

// TexClass classifies a node for spacing decisions between adjacent atoms.
type TexClass int

const (
	ClassOrd TexClass = iota
	ClassOp
	ClassBin
	ClassRel
	ClassOpen
	ClassClose
	ClassPunct
	ClassInner
	ClassVCenter

	// ClassNone suppresses spacing on both sides, used for invisible
	// operators such as function application.
	ClassNone TexClass = -1
)

var classNames = [...]string{"ORD", "OP", "BIN", "REL", "OPEN", "CLOSE", "PUNCT", "INNER", "VCENTER"}

func (c TexClass) String() string {
	if c == ClassNone {
		return "NONE"
	}
	if c < 0 || int(c) >= len(classNames) {
		return "ORD"
	}
	return classNames[c]
}

// Attr is a single element attribute. Order of attributes is preserved.
type Attr struct {
	Key string
	Val string
}

// Node is one element of the tree. Token elements (mi, mn, mo, mtext) carry
// their character data in Text; container elements carry children in Kids.
// Script containers ("msubsup", "munderover") may hold nil slots while the
// parse is in flight; ResolvedName folds empty slots away.
//
// The fields after Kids record parser-side state. They steer reduction
// decisions and are never serialized as attributes.
type Node struct {
	Name string
	Text string
	Attr []Attr
	Kids []*Node

	TexClass      TexClass
	Inferred      bool // row created implicitly rather than by a grouping construct
	Atom          bool // row acting as a single atom of class TexClass
	VariantForm   bool
	MoveSupSub    bool // scripts attach above/below instead of to the side
	MovableLimits bool
	Fence         bool
	Stretchy      bool
	Open, Close   string // delimiters recorded on a fenced row
	LineThickness string // fraction rule override, "" keeps the default
}

// New returns an element node with the given children.
func New(name string, kids ...*Node) *Node {
	return &Node{Name: name, Kids: kids}
}

// Mi returns an identifier token.
func Mi(text string) *Node {
	return &Node{Name: "mi", Text: text}
}

// Mn returns a number token.
func Mn(text string) *Node {
	return &Node{Name: "mn", Text: text}
}

// Mo returns an operator token classified through the operator dictionary.
func Mo(text string) *Node {
	return &Node{Name: "mo", Text: text, TexClass: texClassFor(text)}
}

// Mtext returns a text token.
func Mtext(text string) *Node {
	return &Node{Name: "mtext", Text: text}
}

// Mspace returns a horizontal space of the given width.
func Mspace(width string) *Node {
	n := &Node{Name: "mspace"}
	if width != "" {
		n.SetAttr("width", width)
	}
	return n
}

// Row wraps nodes in an mrow. A single node is returned as is; an empty
// slice yields an empty row.
func Row(kids []*Node, inferred bool) *Node {
	if len(kids) == 1 {
		return kids[0]
	}
	n := New("mrow", kids...)
	n.Inferred = inferred
	return n
}

// Atomize wraps a node as a single spacing atom of the given class. An
// inferred row is flattened into the atom instead of nesting two rows.
func Atomize(n *Node, class TexClass) *Node {
	var a *Node
	if n.Name == "mrow" && n.Inferred {
		a = New("mrow", n.Kids...)
	} else {
		a = New("mrow", n)
	}
	a.Atom = true
	a.TexClass = class
	return a
}

// Frac returns a fraction node.
func Frac(num, den *Node) *Node {
	return New("mfrac", num, den)
}

// Script returns a script container with empty sub and sup slots.
func Script(base *Node) *Node {
	return New("msubsup", base, nil, nil)
}

// UnderOver returns an under/over container with empty slots.
func UnderOver(base *Node) *Node {
	return New("munderover", base, nil, nil)
}

// Script containers index their slots after the base.
const (
	SubSlot = 1
	SupSlot = 2
)

// IsScriptContainer reports whether n holds scripts in indexed slots.
func (n *Node) IsScriptContainer() bool {
	return n.Name == "msubsup" || n.Name == "munderover"
}

// ResolvedName returns the element name with empty script slots folded away
// and MoveSupSub applied, the form the node takes when serialized.
func (n *Node) ResolvedName() string {
	if !n.IsScriptContainer() {
		return n.Name
	}
	under := n.Name == "munderover" || n.MoveSupSub
	sub, sup := n.Child(SubSlot) != nil, n.Child(SupSlot) != nil
	switch {
	case sub && sup:
		if under {
			return "munderover"
		}
		return "msubsup"
	case sub:
		if under {
			return "munder"
		}
		return "msub"
	case sup:
		if under {
			return "mover"
		}
		return "msup"
	}
	return n.Name
}

// Child returns the i-th child, or nil when the slot is empty or out of
// range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.Kids) {
		return nil
	}
	return n.Kids[i]
}

// SetChild stores c in slot i, growing the child list as needed.
func (n *Node) SetChild(i int, c *Node) {
	for len(n.Kids) <= i {
		n.Kids = append(n.Kids, nil)
	}
	n.Kids[i] = c
}

// Append adds children at the end.
func (n *Node) Append(kids ...*Node) {
	n.Kids = append(n.Kids, kids...)
}

// Size returns the number of child slots, including empty ones.
func (n *Node) Size() int {
	return len(n.Kids)
}

// SetAttr sets an attribute, replacing an existing value in place.
func (n *Node) SetAttr(key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, Attr{Key: key, Val: val})
}

// AttrVal returns the value of an attribute, "" when absent.
func (n *Node) AttrVal(key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// SingleChar reports whether n is a token holding exactly one character.
func (n *Node) SingleChar() bool {
	return n.Text != "" && utf8.RuneCountInString(n.Text) == 1
}

// CoreMO descends through an embellished operator to its core mo node. It
// returns nil when n is not an embellished operator.
func (n *Node) CoreMO() *Node {
	switch n.Name {
	case "mo":
		return n
	case "msubsup", "munderover", "mfrac":
		if c := n.Child(0); c != nil {
			return c.CoreMO()
		}
	case "mstyle", "mpadded", "mphantom", "mrow":
		var core *Node
		for _, c := range n.Kids {
			if c == nil || c.IsSpaceLike() {
				continue
			}
			if core != nil {
				return nil
			}
			core = c
		}
		if core != nil {
			return core.CoreMO()
		}
	}
	return nil
}

// IsEmbellished reports whether n is an operator possibly wrapped in
// scripts, fractions or style changes.
func (n *Node) IsEmbellished() bool {
	return n.CoreMO() != nil
}

// IsSpaceLike reports whether n contributes only spacing.
func (n *Node) IsSpaceLike() bool {
	switch n.Name {
	case "mspace":
		return true
	case "mtext":
		return strings.TrimSpace(n.Text) == ""
	case "mstyle", "mphantom", "mpadded", "mrow":
		for _, c := range n.Kids {
			if c != nil && !c.IsSpaceLike() {
				return false
			}
		}
		return true
	}
	return false
}

// EffectiveClass returns the spacing class of n, descending into embellished
// operators.
func (n *Node) EffectiveClass() TexClass {
	if mo := n.CoreMO(); mo != nil {
		return mo.TexClass
	}
	return n.TexClass
}
