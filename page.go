package texmath

import (
	"fmt"
	"io"
	"strings"

	"github.com/dpotapov/go-texmath/texparse"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// PageOptions control TypesetHTML.
type PageOptions struct {
	// Options are the parser options applied to every math span.
	Options *texparse.Options

	// OnError is called for each math span that fails to convert. The span
	// is left in the document as written. A nil callback ignores failures
	// the same way.
	OnError func(src string, err error)
}

// TypesetHTML reads an HTML document, converts the TeX math spans found in
// its text and writes the document back with MathML spliced in place.
// Inline math is delimited by $...$ or \(...\), display math by $$...$$ or
// \[...\]; \$ escapes a literal dollar sign. Text inside script, style,
// pre, code and textarea elements is left untouched.
func TypesetHTML(r io.Reader, w io.Writer, opts *PageOptions) error {
	if opts == nil {
		opts = &PageOptions{}
	}
	doc, err := html.Parse(r)
	if err != nil {
		return fmt.Errorf("parse HTML: %w", err)
	}
	typesetNode(doc, opts)
	if err := html.Render(w, doc); err != nil {
		return fmt.Errorf("render HTML: %w", err)
	}
	return nil
}

func typesetNode(n *html.Node, opts *PageOptions) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Script, atom.Style, atom.Pre, atom.Code, atom.Textarea:
			return
		}
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.TextNode {
			typesetText(n, c, opts)
		} else {
			typesetNode(c, opts)
		}
		c = next
	}
}

// typesetText replaces one text node with the sequence of text and math
// nodes its content splits into. The node stays as is when it holds no
// convertible math.
func typesetText(parent, text *html.Node, opts *PageOptions) {
	segs := splitMath(text.Data)
	if len(segs) == 1 && !segs[0].math {
		return
	}
	var repl []*html.Node
	for _, seg := range segs {
		if !seg.math {
			if seg.text != "" {
				repl = append(repl, &html.Node{Type: html.TextNode, Data: seg.text})
			}
			continue
		}
		mathml, err := ConvertWith(seg.text, seg.display, opts.Options)
		if err != nil {
			if opts.OnError != nil {
				opts.OnError(seg.text, err)
			}
			// keep the span as written
			repl = append(repl, &html.Node{Type: html.TextNode, Data: seg.raw})
			continue
		}
		nodes, err := parseMathML(mathml)
		if err != nil {
			if opts.OnError != nil {
				opts.OnError(seg.text, err)
			}
			repl = append(repl, &html.Node{Type: html.TextNode, Data: seg.raw})
			continue
		}
		repl = append(repl, nodes...)
	}
	for _, rn := range repl {
		parent.InsertBefore(rn, text)
	}
	parent.RemoveChild(text)
}

// parseMathML parses serialized MathML into HTML nodes for splicing.
func parseMathML(mathml string) ([]*html.Node, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	return html.ParseFragment(strings.NewReader(mathml), ctx)
}

// segment is one slice of a text node: either plain text or a math span
// with its source and the raw text to restore on conversion failure.
type segment struct {
	text    string
	raw     string
	math    bool
	display bool
}

// splitMath scans text for math delimiters. Unterminated delimiters leave
// the rest of the text as plain text.
func splitMath(text string) []segment {
	var segs []segment
	var run strings.Builder
	flush := func() {
		if run.Len() > 0 {
			segs = append(segs, segment{text: run.String()})
			run.Reset()
		}
	}
	math := func(src, raw string, display bool) {
		flush()
		segs = append(segs, segment{text: src, raw: raw, math: true, display: display})
	}
	for i := 0; i < len(text); {
		switch {
		case text[i] == '\\' && i+1 < len(text):
			switch text[i+1] {
			case '$':
				run.WriteByte('$')
				i += 2
			case '(':
				end := strings.Index(text[i+2:], `\)`)
				if end < 0 {
					run.WriteString(text[i:])
					i = len(text)
					break
				}
				math(text[i+2:i+2+end], text[i:i+2+end+2], false)
				i += 2 + end + 2
			case '[':
				end := strings.Index(text[i+2:], `\]`)
				if end < 0 {
					run.WriteString(text[i:])
					i = len(text)
					break
				}
				math(text[i+2:i+2+end], text[i:i+2+end+2], true)
				i += 2 + end + 2
			default:
				run.WriteByte(text[i])
				run.WriteByte(text[i+1])
				i += 2
			}
		case strings.HasPrefix(text[i:], "$$"):
			end := strings.Index(text[i+2:], "$$")
			if end < 0 {
				run.WriteString(text[i:])
				i = len(text)
				break
			}
			math(text[i+2:i+2+end], text[i:i+2+end+2], true)
			i += 2 + end + 2
		case text[i] == '$':
			end := strings.IndexByte(text[i+1:], '$')
			if end < 0 {
				run.WriteString(text[i:])
				i = len(text)
				break
			}
			math(text[i+1:i+1+end], text[i:i+1+end+1], false)
			i += 1 + end + 1
		default:
			run.WriteByte(text[i])
			i++
		}
	}
	flush()
	if segs == nil {
		segs = []segment{{text: ""}}
	}
	return segs
}
