package mml

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// RenderOptions control XML serialization.
type RenderOptions struct {
	// Indent is the number of spaces per nesting level; 0 renders compact
	// output on one line.
	Indent int
}

// Render serializes the tree to MathML markup. Script containers take their
// resolved names, empty script slots are omitted, and parser-side state that
// has no MathML representation (spacing classes, recorded fence delimiters,
// variant flags) stays out of the output.
func Render(n *Node, opts *RenderOptions) (string, error) {
	doc := etree.NewDocument()
	buildInto(&doc.Element, n)
	indent(doc, opts)
	return doc.WriteToString()
}

// RenderMath wraps the tree in a math element and serializes it.
func RenderMath(n *Node, display bool, opts *RenderOptions) (string, error) {
	doc := etree.NewDocument()
	math := doc.CreateElement("math")
	math.CreateAttr("xmlns", "http://www.w3.org/1998/Math/MathML")
	if display {
		math.CreateAttr("display", "block")
	}
	buildInto(math, n)
	indent(doc, opts)
	return doc.WriteToString()
}

func indent(doc *etree.Document, opts *RenderOptions) {
	if opts != nil && opts.Indent > 0 {
		doc.Indent(opts.Indent)
	}
}

func buildInto(parent *etree.Element, n *Node) {
	el := parent.CreateElement(n.ResolvedName())
	for _, a := range renderAttrs(n) {
		el.CreateAttr(a.Key, a.Val)
	}
	if IsToken(n.Name) {
		el.SetText(n.Text)
		return
	}
	for _, c := range n.Kids {
		if c == nil {
			continue
		}
		buildInto(el, c)
	}
}

// renderAttrs returns the attributes written for n: presentation flags that
// carry into MathML followed by the explicitly set attribute list.
func renderAttrs(n *Node) []Attr {
	var out []Attr
	if n.Name == "mo" {
		if n.Fence {
			out = append(out, Attr{Key: "fence", Val: "true"})
		}
		if n.Stretchy {
			out = append(out, Attr{Key: "stretchy", Val: "true"})
		}
	}
	if n.Name == "mfrac" && n.LineThickness != "" {
		out = append(out, Attr{Key: "linethickness", Val: n.LineThickness})
	}
	return append(out, n.Attr...)
}

// IsToken reports whether name is a MathML token element.
func IsToken(name string) bool {
	switch name {
	case "mi", "mn", "mo", "mtext", "ms":
		return true
	}
	return false
}

// Dump renders the tree one node per line with two-space indentation, the
// form golden tests compare against.
func Dump(n *Node) string {
	var b strings.Builder
	dumpLevel(&b, n, 0)
	return b.String()
}

func dumpLevel(b *strings.Builder, n *Node, level int) {
	b.WriteString("| ")
	b.WriteString(strings.Repeat("  ", level))
	b.WriteString("<")
	b.WriteString(n.ResolvedName())
	for _, a := range renderAttrs(n) {
		fmt.Fprintf(b, " %s=%q", a.Key, a.Val)
	}
	b.WriteString(">")
	if n.Text != "" {
		fmt.Fprintf(b, " %q", n.Text)
	}
	b.WriteString("\n")
	for _, c := range n.Kids {
		if c == nil {
			continue
		}
		dumpLevel(b, c, level+1)
	}
}
