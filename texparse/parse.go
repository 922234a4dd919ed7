package texparse

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dpotapov/go-texmath/mml"
)

// Parse converts TeX math notation to a presentation tree. A nil opts
// selects DefaultOptions.
func Parse(tex string, opts *Options) (*mml.Node, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	p := newParser(tex, opts, nil)
	if opts.Display {
		p.stack.Env()["style"] = "D"
	}
	if err := p.run(); err != nil {
		return nil, err
	}
	return p.tree()
}

// ParseDisplay parses in display style.
func ParseDisplay(tex string, opts *Options) (*mml.Node, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	d := opts.clone()
	d.Display = true
	return Parse(tex, d)
}

// Parser drives the reduction stack: it scans the source, decides which
// item each construct becomes and pushes it. Macro handlers read their
// arguments through the Get* scanners below, which share the same cursor.
type Parser struct {
	src string
	i   int // byte cursor into src

	ctx   *Context
	stack *Stack

	subs int // macro substitutions performed, bounded by MaxSubstitutions
}

func newParser(src string, opts *Options, env map[string]any) *Parser {
	ctx := NewContext(opts)
	return &Parser{src: src, ctx: ctx, stack: NewStack(ctx, env)}
}

// subParse parses src on a fresh stack sharing this parse's context. The
// sub-parse sees a copy of the current scope environment.
func (p *Parser) subParse(src string) (*mml.Node, error) {
	sub := &Parser{src: src, ctx: p.ctx, stack: NewStack(p.ctx, p.copyEnv())}
	if err := sub.run(); err != nil {
		return nil, err
	}
	return sub.tree()
}

// run scans the remaining source and finishes the parse by pushing a stop
// item. Errors are pinned to the byte offset of the construct that raised
// them.
func (p *Parser) run() error {
	for p.i < len(p.src) {
		pos := p.i
		if err := p.step(); err != nil {
			if pe, ok := err.(*ParseError); ok && pe.Pos < 0 {
				pe.At(pos)
			}
			return err
		}
	}
	return p.push(p.ctx.Factory.Stop())
}

func (p *Parser) tree() (*mml.Node, error) {
	n, err := p.stack.Tree()
	if err != nil {
		return nil, err
	}
	if n == nil {
		n = mml.New("mrow")
	}
	return n, nil
}

func (p *Parser) push(items ...StackItem) error {
	return p.stack.Push(items...)
}

// step consumes one construct.
func (p *Parser) step() error {
	r, w := utf8.DecodeRuneInString(p.src[p.i:])
	switch {
	case r == ' ' || r == '\t' || r == '\n' || r == '\r':
		p.i += w
		return nil
	case r == '%':
		if nl := strings.IndexByte(p.src[p.i:], '\n'); nl >= 0 {
			p.i += nl + 1
		} else {
			p.i = len(p.src)
		}
		return nil
	case r == '\\':
		p.i += w
		return p.controlSequence()
	case r == '{':
		p.i += w
		return p.push(p.ctx.Factory.Open())
	case r == '}':
		p.i += w
		return p.push(p.ctx.Factory.Close())
	case r == '^':
		p.i += w
		return p.handleScript(Sup)
	case r == '_':
		p.i += w
		return p.handleScript(Sub)
	case r == '\'':
		p.i += w
		return p.handlePrime()
	case r == '&':
		p.i += w
		return p.push(p.ctx.Factory.Entry("&"))
	case r == '~':
		p.i += w
		return p.macroTilde("~")
	case r == '#':
		return ErrCantUseHash.New()
	case unicode.IsDigit(r):
		return p.scanNumber()
	case unicode.IsLetter(r):
		p.i += w
		mi := mml.Mi(string(r))
		if font := p.envFont(); font != "" {
			mi.SetAttr("mathvariant", font)
		}
		return p.push(p.ctx.Factory.Mml(mi))
	default:
		p.i += w
		ch := string(r)
		if re, ok := remapChars[r]; ok {
			ch = re
		}
		return p.push(p.ctx.Factory.Mml(mml.Mo(ch)))
	}
}

// controlSequence dispatches the sequence starting after the backslash.
func (p *Parser) controlSequence() error {
	cs := p.scanControlName()
	if p.ctx.Options.macroDisabled(cs) {
		return ErrUndefinedControlSequence.New("\\" + cs)
	}
	if fn, ok := macros[cs]; ok {
		return fn(p, "\\"+cs)
	}
	if def, ok := symIdentifiers[cs]; ok {
		return p.pushIdentifier(def)
	}
	if def, ok := symOperators[cs]; ok {
		return p.pushOperator(def)
	}
	if ch, ok := symUpright[cs]; ok {
		return p.pushUpright(ch)
	}
	if ch, ok := delimiters["\\"+cs]; ok {
		return p.pushDelimiter(ch)
	}
	return ErrUndefinedControlSequence.New("\\" + cs)
}

// scanControlName reads the sequence name after a backslash: a letter run,
// or a single character for the one-character sequences.
func (p *Parser) scanControlName() string {
	if p.i >= len(p.src) {
		return ""
	}
	r, w := utf8.DecodeRuneInString(p.src[p.i:])
	if !unicode.IsLetter(r) {
		p.i += w
		return string(r)
	}
	start := p.i
	for p.i < len(p.src) {
		r, w = utf8.DecodeRuneInString(p.src[p.i:])
		if !unicode.IsLetter(r) {
			break
		}
		p.i += w
	}
	return p.src[start:p.i]
}

var numberRe = regexp.MustCompile(`^\d+(?:\.\d*)?`)

func (p *Parser) scanNumber() error {
	m := numberRe.FindString(p.src[p.i:])
	p.i += len(m)
	mn := mml.Mn(m)
	if font := p.envFont(); font != "" {
		mn.SetAttr("mathvariant", font)
	}
	return p.push(p.ctx.Factory.Mml(mn))
}

// handleScript turns ^ or _ into a subsup item awaiting its argument. The
// base is the most recent finished node; primes left pending on the stack
// ride along into the script container.
func (p *Parser) handleScript(pos ScriptPos) error {
	var base, primes *mml.Node
	if prime, ok := p.stack.Top().(*PrimeItem); ok {
		base, primes = prime.data[0], prime.data[1]
		p.stack.pop()
	} else {
		base = p.stack.Prev(true)
	}
	if base == nil {
		base = mml.Mi("")
	}
	if base.IsScriptContainer() && base.Child(pos.slot()) != nil {
		switch {
		case pos == Sub:
			return ErrDoubleSubscripts.New()
		case primes != nil:
			return ErrDoubleExponentPrime.New()
		default:
			return ErrDoubleExponent.New()
		}
	}
	moveSupSub := base.MoveSupSub
	container := base
	if !base.IsScriptContainer() {
		if moveSupSub {
			container = mml.UnderOver(base)
		} else {
			container = mml.Script(base)
		}
	}
	return p.push(p.ctx.Factory.Subsup(container, pos, primes, moveSupSub))
}

func (p *Parser) handlePrime() error {
	glyph := mml.Mo(mml.PrimeGlyph)
	if _, ok := p.stack.Top().(*PrimeItem); ok {
		// Chained prime: the preceding prime item supplies the base.
		return p.push(p.ctx.Factory.Prime(nil, glyph))
	}
	base := p.stack.Prev(true)
	if base == nil {
		base = mml.New("mrow")
	}
	if base.IsScriptContainer() && base.Child(mml.SupSlot) != nil {
		return ErrDoubleExponentPrime.New()
	}
	return p.push(p.ctx.Factory.Prime(base, glyph))
}

// handleLimits applies \limits or \nolimits to the preceding operator.
func (p *Parser) handleLimits(name string, limits bool) error {
	core := p.stack.Prev(false)
	if core == nil || core.EffectiveClass() != mml.ClassOp {
		return ErrMisplacedLimits.New(name)
	}
	if mo := core.CoreMO(); mo != nil {
		mo.MoveSupSub = limits
		mo.MovableLimits = false
	}
	core.MoveSupSub = limits
	core.MovableLimits = false
	return nil
}

func (p *Parser) skipSpaces() {
	for p.i < len(p.src) {
		switch p.src[p.i] {
		case ' ', '\t', '\n', '\r':
			p.i++
		default:
			return
		}
	}
}

// peekNext skips spaces and returns the next rune without consuming it.
func (p *Parser) peekNext() (rune, error) {
	p.skipSpaces()
	if p.i >= len(p.src) {
		return 0, ErrMissingArgFor.New("")
	}
	r, _ := utf8.DecodeRuneInString(p.src[p.i:])
	return r, nil
}

// getArgument reads one macro argument: a braced group (returned without
// the braces), a control sequence, or a single character. With optional
// set, running out of input yields an empty argument instead of an error.
func (p *Parser) getArgument(name string, optional bool) (string, error) {
	p.skipSpaces()
	if p.i >= len(p.src) {
		if optional {
			return "", nil
		}
		return "", ErrMissingArgFor.New(name)
	}
	switch p.src[p.i] {
	case '{':
		return p.scanGroup()
	case '}':
		return "", ErrExtraCloseLooking.New(name)
	case '\\':
		p.i++
		return "\\" + p.scanControlName(), nil
	}
	r, w := utf8.DecodeRuneInString(p.src[p.i:])
	p.i += w
	return string(r), nil
}

// scanGroup consumes a balanced braced group starting at the cursor and
// returns its content.
func (p *Parser) scanGroup() (string, error) {
	start := p.i + 1
	depth := 0
	for p.i < len(p.src) {
		switch p.src[p.i] {
		case '\\':
			p.i++
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				arg := p.src[start:p.i]
				p.i++
				return arg, nil
			}
		}
		p.i++
	}
	return "", ErrMissingCloseBrace.New()
}

// getBrackets reads an optional [..] argument, "" when absent.
func (p *Parser) getBrackets(name string) (string, error) {
	p.skipSpaces()
	if p.i >= len(p.src) || p.src[p.i] != '[' {
		return "", nil
	}
	p.i++
	start := p.i
	depth := 0
	for p.i < len(p.src) {
		switch p.src[p.i] {
		case '\\':
			p.i++
		case '{':
			depth++
		case '}':
			depth--
		case ']':
			if depth == 0 {
				arg := p.src[start:p.i]
				p.i++
				return arg, nil
			}
		}
		p.i++
	}
	return "", ErrMissingCloseBracket.New(name)
}

// getUpTo accumulates source until the given control sequence appears at
// brace depth zero, consuming the sequence.
func (p *Parser) getUpTo(name, token string) (string, error) {
	p.skipSpaces()
	start := p.i
	depth := 0
	for p.i < len(p.src) {
		tok := p.i
		r, w := utf8.DecodeRuneInString(p.src[p.i:])
		p.i += w
		switch r {
		case '{':
			depth++
		case '}':
			depth--
		case '\\':
			cs := "\\" + p.scanControlName()
			if depth == 0 && cs == token {
				return p.src[start:tok], nil
			}
		}
	}
	return "", ErrTokenNotFound.New(token, name)
}

func (p *Parser) parseArg(name string) (*mml.Node, error) {
	arg, err := p.getArgument(name, false)
	if err != nil {
		return nil, err
	}
	return p.subParse(arg)
}

func (p *Parser) parseUpTo(name, token string) (*mml.Node, error) {
	arg, err := p.getUpTo(name, token)
	if err != nil {
		return nil, err
	}
	return p.subParse(arg)
}

// getDelimiter reads a delimiter token and resolves it through the
// delimiter table. With braceOK the delimiter may also be written as a
// braced group.
func (p *Parser) getDelimiter(name string, braceOK bool) (string, error) {
	p.skipSpaces()
	if p.i >= len(p.src) {
		return "", ErrMissingDelimiter.New(name)
	}
	var tok string
	switch p.src[p.i] {
	case '{':
		if !braceOK {
			return "", ErrMissingDelimiter.New(name)
		}
		arg, err := p.scanGroup()
		if err != nil {
			return "", err
		}
		tok = strings.TrimSpace(arg)
	case '\\':
		p.i++
		tok = "\\" + p.scanControlName()
	default:
		r, w := utf8.DecodeRuneInString(p.src[p.i:])
		p.i += w
		tok = string(r)
	}
	if d, ok := delimiters[tok]; ok {
		return d, nil
	}
	return "", ErrMissingDelimiter.New(name)
}

var dimenRe = regexp.MustCompile(`^([-+]?(?:\.\d+|\d+(?:\.\d*)?))\s*(em|ex|pt|pc|px|mm|cm|in|mu)`)

// getDimen reads a dimension, either inline or as a braced group.
func (p *Parser) getDimen(name string) (string, error) {
	p.skipSpaces()
	if p.i < len(p.src) && p.src[p.i] == '{' {
		arg, err := p.scanGroup()
		if err != nil {
			return "", err
		}
		arg = strings.TrimSpace(arg)
		if !isDimen(arg) {
			return "", ErrMissingDimOrUnits.New(name)
		}
		m := dimenRe.FindStringSubmatch(arg)
		return m[1] + m[2], nil
	}
	m := dimenRe.FindStringSubmatch(p.src[p.i:])
	if m == nil {
		return "", ErrMissingDimOrUnits.New(name)
	}
	p.i += len(m[0])
	return m[1] + m[2], nil
}

func isDimen(s string) bool {
	m := dimenRe.FindString(s)
	return m != "" && len(m) == len(s)
}

// dimenEm converts a dimension string to em units.
func dimenEm(s string) float64 {
	m := dimenRe.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	v, _ := strconv.ParseFloat(m[1], 64)
	switch m[2] {
	case "ex":
		v *= 0.43
	case "pt":
		v *= 0.1
	case "pc":
		v *= 1.2
	case "px":
		v *= 0.1
	case "mm":
		v *= 7.2 / 25.4
	case "cm":
		v *= 7.2 / 2.54
	case "in":
		v *= 7.2
	case "mu":
		v /= 18
	}
	return v
}

// emDim formats an em value the way attribute dimensions are written,
// rounded to three decimals.
func emDim(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "" || s == "-" {
		s = "0"
	}
	return s + "em"
}

// expandMacro splices expanded text in front of the unread source.
func (p *Parser) expandMacro(text string) error {
	p.subs++
	if p.subs > p.ctx.Options.MaxSubstitutions {
		return ErrMaxMacroSubs.New()
	}
	if len(text)+len(p.src)-p.i > p.ctx.Options.MaxBuffer {
		return ErrMaxBufferSize.New()
	}
	p.src = text + p.src[p.i:]
	p.i = 0
	return nil
}

// substituteArgs replaces #1..#9 in a macro template; ## yields a literal
// hash.
func substituteArgs(args []string, tpl string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(tpl); i++ {
		c := tpl[i]
		if c == '\\' && i+1 < len(tpl) {
			b.WriteByte(c)
			i++
			b.WriteByte(tpl[i])
			continue
		}
		if c != '#' {
			b.WriteByte(c)
			continue
		}
		i++
		if i == len(tpl) {
			return "", ErrIllegalMacroParam.New()
		}
		if tpl[i] == '#' {
			b.WriteByte('#')
			continue
		}
		k := int(tpl[i] - '1')
		if k < 0 || k >= len(args) {
			return "", ErrIllegalMacroParam.New()
		}
		b.WriteString(args[k])
	}
	return b.String(), nil
}

var tokenAttrRe = regexp.MustCompile(`^([a-zA-Z]+)\s*=\s*('[^']*'|"[^"]*"|[^\s,'"]+)\s*,?\s*`)

// internalMath parses text-mode content: plain text becomes mtext runs,
// spans delimited by $..$ or \(..\) parse as math. A level of zero or more
// wraps the result in a style scope pinned to that script level.
func (p *Parser) internalMath(text string, level int) ([]*mml.Node, error) {
	var nodes []*mml.Node
	var run strings.Builder
	flush := func() {
		if run.Len() == 0 {
			return
		}
		t := mml.Mtext(run.String())
		if font := p.envFont(); font != "" {
			t.SetAttr("mathvariant", font)
		}
		nodes = append(nodes, t)
		run.Reset()
	}
	math := func(src string) error {
		flush()
		n, err := p.subParse(src)
		if err != nil {
			return err
		}
		nodes = append(nodes, n)
		return nil
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
					return nil, ErrMathNotTerminated.New()
				}
				if err := math(text[i+2 : i+2+end]); err != nil {
					return nil, err
				}
				i += 2 + end + 2
			default:
				run.WriteByte(text[i])
				run.WriteByte(text[i+1])
				i += 2
			}
		case text[i] == '$':
			end := strings.IndexByte(text[i+1:], '$')
			if end < 0 {
				return nil, ErrMathNotTerminated.New()
			}
			if err := math(text[i+1 : i+1+end]); err != nil {
				return nil, err
			}
			i += 1 + end + 1
		default:
			run.WriteByte(text[i])
			i++
		}
	}
	flush()
	if level >= 0 {
		st := mml.New("mstyle", nodes...)
		st.SetAttr("displaystyle", "false")
		st.SetAttr("scriptlevel", strconv.Itoa(level))
		nodes = []*mml.Node{st}
	}
	return nodes, nil
}

// flattenRow returns the node list an inferred row holds, or the node
// itself.
func flattenRow(n *mml.Node) []*mml.Node {
	if n.Name == "mrow" && n.Inferred {
		return n.Kids
	}
	return []*mml.Node{n}
}

func (p *Parser) copyEnv() map[string]any {
	env := make(map[string]any, len(p.stack.Env()))
	for k, v := range p.stack.Env() {
		env[k] = v
	}
	return env
}

func (p *Parser) envFont() string {
	font, _ := p.stack.Env()["font"].(string)
	return font
}

func (p *Parser) envColor() string {
	if c, _ := p.stack.Env()["color"].(string); c != "" {
		return c
	}
	return "black"
}
