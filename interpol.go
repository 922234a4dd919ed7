package texmath

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Interpolation of ${...} placeholders in the preview page template. The
// scanner follows https://go.dev/talks/2011/lex.slide.

const (
	eof        rune = -1
	leftDelim       = "${"
	rightDelim      = "}"
)

// Interpol compiles a template with ${}-style placeholders into the list
// of programs to evaluate. Plain text segments compile to constant
// programs, so rendering is a single pass over the result.
func Interpol(s string, args map[string]any) ([]*vm.Program, error) {
	l := &lexer{input: s}
	for state := lexText; state != nil; {
		state = state(l)
	}

	var progs []*vm.Program
	for _, it := range l.items {
		switch it.typ {
		case itemError:
			return nil, fmt.Errorf("interpolate: %s", it.val)
		case itemText:
			p, err := expr.Compile(quoteText(it.val))
			if err != nil {
				return nil, err
			}
			progs = append(progs, p)
		case itemExpr:
			p, err := expr.Compile(it.val, expr.Env(args))
			if err != nil {
				return nil, err
			}
			progs = append(progs, p)
		}
	}
	return progs, nil
}

// quoteText quotes a text segment as an expression literal.
func quoteText(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\t", `\t`, "\r", `\r`)
	return `"` + r.Replace(s) + `"`
}

// Render evaluates the compiled template against args and concatenates the
// results.
func Render(progs []*vm.Program, args map[string]any) (string, error) {
	var b strings.Builder
	for _, p := range progs {
		out, err := expr.Run(p, args)
		if err != nil {
			return "", err
		}
		if out != nil {
			fmt.Fprint(&b, out)
		}
	}
	return b.String(), nil
}

// lexer holds the state of the scanner.
type lexer struct {
	input       string // the string being scanned
	start       int    // start position of this item
	pos         int    // current position in the input
	width       int    // width of last rune read from input
	bracesDepth int    // nesting depth of braces {}
	items       []item
}

func (l *lexer) emit(t itemType) stateFn {
	l.items = append(l.items, item{t, l.input[l.start:l.pos]})
	l.start = l.pos
	return nil
}

// errorf records an error token and terminates the scan.
func (l *lexer) errorf(format string, args ...any) stateFn {
	l.items = append(l.items, item{itemError, fmt.Sprintf(format, args...)})
	return nil
}

func (l *lexer) scanString(quote rune) {
	for ch := l.next(); ch != quote; ch = l.next() {
		if ch == '\n' || ch == eof {
			l.errorf("unterminated string")
			return
		}
		if ch == '\\' {
			l.next()
		}
	}
}

func (l *lexer) next() (r rune) {
	if l.pos >= len(l.input) {
		l.width = 0
		return eof
	}
	r, l.width = utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += l.width
	return r
}

func (l *lexer) ignore() {
	l.start = l.pos
}

func (l *lexer) atRightDelim() bool {
	return l.bracesDepth == 0 && strings.HasPrefix(l.input[l.pos:], rightDelim)
}

func lexText(l *lexer) stateFn {
	if x := strings.Index(l.input[l.pos:], leftDelim); x >= 0 {
		if x > 0 {
			l.pos += x
			l.emit(itemText)
		}
		return lexLeftDelim
	}
	l.pos = len(l.input)
	if l.pos > l.start {
		l.emit(itemText)
	}
	return nil
}

func lexLeftDelim(l *lexer) stateFn {
	l.pos += len(leftDelim)
	l.ignore()
	return lexExpr // now inside ${ }
}

func lexRightDelim(l *lexer) stateFn {
	l.pos += len(rightDelim)
	l.ignore()
	return lexText
}

func lexExpr(l *lexer) stateFn {
	if l.atRightDelim() {
		l.emit(itemExpr)
		return lexRightDelim
	}
	switch r := l.next(); {
	case r == eof:
		return l.errorf("unclosed placeholder")
	case r == '\'' || r == '"':
		l.scanString(r)
	case r == '{':
		l.bracesDepth++
	case r == '}':
		l.bracesDepth--
	}
	return lexExpr
}

type itemType int

const (
	itemError itemType = iota
	itemText
	itemExpr
)

type item struct {
	typ itemType
	val string
}

// stateFn represents the state of the scanner as a function that returns
// the next state.
type stateFn func(*lexer) stateFn
