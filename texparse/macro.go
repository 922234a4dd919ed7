package texparse

import (
	"strconv"
	"strings"

	"github.com/dpotapov/go-texmath/mml"
)

// macroFn handles one control sequence. name is the sequence as written,
// with its leading backslash.
type macroFn func(p *Parser, name string) error

// macros maps control-sequence names to their handlers. Parameterized
// handlers are built by the closure helpers below; the rest are method
// expressions on Parser.
var macros map[string]macroFn

// The table is built in init: handler bodies recurse through the parser
// back into macros, which a package-level initializer may not do.
func init() {
	macros = map[string]macroFn{
		"displaystyle":      setStyle("D", "true", 0),
		"textstyle":         setStyle("T", "false", 0),
		"scriptstyle":       setStyle("S", "false", 1),
		"scriptscriptstyle": setStyle("SS", "false", 2),

		"rm":     setFont("normal"),
		"mit":    setFont("italic"),
		"it":     setFont("italic"),
		"bf":     setFont("bold"),
		"bbFont": setFont("double-struck"),
		"cal":    setFont("script"),
		"scr":    setFont("script"),
		"frak":   setFont("fraktur"),
		"sf":     setFont("sans-serif"),
		"tt":     setFont("monospace"),

		"tiny":       setSize(0.5),
		"Tiny":       setSize(0.6),
		"scriptsize": setSize(0.7),
		"small":      setSize(0.85),
		"normalsize": setSize(1.0),
		"large":      setSize(1.2),
		"Large":      setSize(1.44),
		"LARGE":      setSize(1.73),
		"huge":       setSize(2.07),
		"Huge":       setSize(2.49),

		"arcsin": namedFn(""), "arccos": namedFn(""), "arctan": namedFn(""),
		"arg": namedFn(""), "cos": namedFn(""), "cosh": namedFn(""),
		"cot": namedFn(""), "coth": namedFn(""), "csc": namedFn(""),
		"deg": namedFn(""), "dim": namedFn(""), "exp": namedFn(""),
		"hom": namedFn(""), "ker": namedFn(""), "lg": namedFn(""),
		"ln": namedFn(""), "log": namedFn(""), "sec": namedFn(""),
		"sin": namedFn(""), "sinh": namedFn(""), "tan": namedFn(""),
		"tanh": namedFn(""),

		"det": namedOp(""), "gcd": namedOp(""), "inf": namedOp(""),
		"lim": namedOp(""), "max": namedOp(""), "min": namedOp(""),
		"Pr": namedOp(""), "sup": namedOp(""),
		"liminf": namedOp("lim\u2009inf"), "limsup": namedOp("lim\u2009sup"),

		"limits":   limitsMacro(true),
		"nolimits": limitsMacro(false),

		"over":            (*Parser).macroOver,
		"overwithdelims":  (*Parser).macroOver,
		"atop":            (*Parser).macroOver,
		"atopwithdelims":  (*Parser).macroOver,
		"above":           (*Parser).macroOver,
		"abovewithdelims": (*Parser).macroOver,
		"brace":           overWith("{", "}"),
		"brack":           overWith("[", "]"),
		"choose":          overWith("(", ")"),

		"frac":     (*Parser).macroFrac,
		"sqrt":     (*Parser).macroSqrt,
		"root":     (*Parser).macroRoot,
		"uproot":   moveRoot("upRoot"),
		"leftroot": moveRoot("leftRoot"),

		"left":   (*Parser).macroLeftRight,
		"right":  (*Parser).macroLeftRight,
		"middle": (*Parser).macroMiddle,

		"llap": (*Parser).macroLap,
		"rlap": (*Parser).macroLap,

		"raise":     (*Parser).macroRaiseLower,
		"lower":     (*Parser).macroRaiseLower,
		"moveleft":  (*Parser).macroMoveLeftRight,
		"moveright": (*Parser).macroMoveLeftRight,

		",":            spacer(3.0 / 18),
		":":            spacer(4.0 / 18),
		">":            spacer(4.0 / 18),
		";":            spacer(5.0 / 18),
		"!":            spacer(-3.0 / 18),
		"enspace":      spacer(0.5),
		"quad":         spacer(1),
		"qquad":        spacer(2),
		"thinspace":    spacer(3.0 / 18),
		"negthinspace": spacer(-3.0 / 18),

		"hskip":  (*Parser).macroHskip,
		"hspace": (*Parser).macroHskip,
		"kern":   (*Parser).macroHskip,
		"mskip":  (*Parser).macroHskip,
		"mspace": (*Parser).macroHskip,
		"mkern":  (*Parser).macroHskip,

		"rule":  (*Parser).macroRule,
		"Rule":  ruleMacro(false),
		"Space": ruleMacro(true),

		"big":   makeBig(mml.ClassOrd, 0.85),
		"Big":   makeBig(mml.ClassOrd, 1.15),
		"bigg":  makeBig(mml.ClassOrd, 1.45),
		"Bigg":  makeBig(mml.ClassOrd, 1.75),
		"bigl":  makeBig(mml.ClassOpen, 0.85),
		"Bigl":  makeBig(mml.ClassOpen, 1.15),
		"biggl": makeBig(mml.ClassOpen, 1.45),
		"Biggl": makeBig(mml.ClassOpen, 1.75),
		"bigr":  makeBig(mml.ClassClose, 0.85),
		"Bigr":  makeBig(mml.ClassClose, 1.15),
		"biggr": makeBig(mml.ClassClose, 1.45),
		"Biggr": makeBig(mml.ClassClose, 1.75),
		"bigm":  makeBig(mml.ClassRel, 0.85),
		"Bigm":  makeBig(mml.ClassRel, 1.15),
		"biggm": makeBig(mml.ClassRel, 1.45),
		"Biggm": makeBig(mml.ClassRel, 1.75),

		"mathord":   texAtom(mml.ClassOrd),
		"mathop":    texAtom(mml.ClassOp),
		"mathopen":  texAtom(mml.ClassOpen),
		"mathclose": texAtom(mml.ClassClose),
		"mathbin":   texAtom(mml.ClassBin),
		"mathrel":   texAtom(mml.ClassRel),
		"mathpunct": texAtom(mml.ClassPunct),
		"mathinner": texAtom(mml.ClassInner),
		"vcenter":   texAtom(mml.ClassVCenter),

		"buildrel": (*Parser).macroBuildRel,

		"hbox": hbox(true),
		"mbox": hbox(true),
		"text": hbox(false),
		"fbox": (*Parser).macroFBox,

		"phantom":  phantom(true, true),
		"vphantom": phantom(true, false),
		"hphantom": phantom(false, true),
		"smash":    (*Parser).macroSmash,

		"acute":     accent("\u00B4", false),
		"grave":     accent("\u0060", false),
		"ddot":      accent("\u00A8", false),
		"tilde":     accent("\u007E", false),
		"bar":       accent("\u00AF", false),
		"breve":     accent("\u02D8", false),
		"check":     accent("\u02C7", false),
		"hat":       accent("\u005E", false),
		"vec":       accent("\u2192", false),
		"dot":       accent("\u02D9", false),
		"widetilde": accent("\u007E", true),
		"widehat":   accent("\u005E", true),

		"overline":           underOver("\u00AF", true, false),
		"underline":          underOver("\u005F", false, false),
		"overbrace":          underOver("\u23DE", true, true),
		"underbrace":         underOver("\u23DF", false, true),
		"overrightarrow":     underOver("\u2192", true, false),
		"underrightarrow":    underOver("\u2192", false, false),
		"overleftarrow":      underOver("\u2190", true, false),
		"underleftarrow":     underOver("\u2190", false, false),
		"overleftrightarrow": underOver("\u2194", true, false),

		"overset":  (*Parser).macroOverset,
		"underset": (*Parser).macroUnderset,
		"stackrel": textMacro("\\mathrel{\\mathop{#2}\\limits^{#1}}", 2),

		"matrix":       matrix("", "", "", false),
		"pmatrix":      matrix("(", ")", "", false),
		"cases":        matrix("{", "", "left left", false),
		"eqalign":      matrix("", "", "right left", false),
		"displaylines": matrix("", "", "center", false),
		"eqalignno":    matrix("", "", "right left", true),
		"leqalignno":   matrix("", "", "right left", true),

		"cr":        (*Parser).macroCr,
		"\\":        (*Parser).macroCrLaTeX,
		"newline":   (*Parser).macroCr,
		"hline":     hline("solid"),
		"hdashline": hline("dashed"),
		"hfill":     (*Parser).macroHFill,
		"hfil":      (*Parser).macroHFill,
		"hfilll":    (*Parser).macroHFill,

		"not":  (*Parser).macroNot,
		"dots": (*Parser).macroDots,

		"space":            (*Parser).macroTilde,
		" ":                (*Parser).macroTilde,
		"nonbreakingspace": (*Parser).macroTilde,

		"begin": (*Parser).macroBeginEnd,
		"end":   (*Parser).macroBeginEnd,

		"mmlToken": (*Parser).macroMmlToken,

		"bmod": textMacro("\\mmlToken{mo}[lspace=\"thickmathspace\" rspace=\"thickmathspace\"]{mod}", 0),
		"pmod": textMacro("\\pod{\\mmlToken{mi}{mod}\\kern 6mu #1}", 1),
		"mod":  textMacro("\\kern12mu\\mmlToken{mi}{mod}\\kern 6mu #1", 1),
		"pod":  textMacro("\\kern8mu(#1)", 1),
		"iff":  textMacro("\\;\\Longleftrightarrow\\;", 0),
		"skew": textMacro("{{#2{#3\\mkern#1mu}\\mkern-#1mu}{}}", 3),

		"mathcal":  textMacro("{\\cal #1}", 1),
		"mathscr":  textMacro("{\\scr #1}", 1),
		"mathrm":   textMacro("{\\rm #1}", 1),
		"mathbf":   textMacro("{\\bf #1}", 1),
		"mathbb":   textMacro("{\\bbFont #1}", 1),
		"Bbb":      textMacro("{\\bbFont #1}", 1),
		"mathit":   textMacro("{\\it #1}", 1),
		"mathfrak": textMacro("{\\frak #1}", 1),
		"mathsf":   textMacro("{\\sf #1}", 1),
		"mathtt":   textMacro("{\\tt #1}", 1),
		"textrm":   textMacro("\\mathord{\\rm\\text{#1}}", 1),
		"textit":   textMacro("\\mathord{\\it\\text{#1}}", 1),
		"textbf":   textMacro("\\mathord{\\bf\\text{#1}}", 1),
		"textsf":   textMacro("\\mathord{\\sf\\text{#1}}", 1),
		"texttt":   textMacro("\\mathord{\\tt\\text{#1}}", 1),

		"binom":     textMacro("\\left(#1\\atop#2\\right)", 2),
		"strut":     textMacro("\\vphantom{\\rule[-.3em]{0pt}{.7em}}", 0),
		"mathstrut": textMacro("\\vphantom{(}", 0),

		"TeX":   textMacro("T\\kern-.14em\\lower.5ex{E}\\kern-.115em X", 0),
		"LaTeX": textMacro("L\\kern-.325em\\raise.21em{\\scriptstyle{A}}\\kern-.17em\\TeX", 0),
	}
}

func setStyle(texStyle, display string, level int) macroFn {
	styles := []mml.Attr{
		{Key: "displaystyle", Val: display},
		{Key: "scriptlevel", Val: strconv.Itoa(level)},
	}
	return func(p *Parser, name string) error {
		p.stack.Env()["style"] = texStyle
		return p.push(p.ctx.Factory.Style(styles...))
	}
}

func setFont(variant string) macroFn {
	return func(p *Parser, name string) error {
		p.stack.Env()["font"] = variant
		return nil
	}
}

func setSize(size float64) macroFn {
	return func(p *Parser, name string) error {
		p.stack.Env()["size"] = size
		return p.push(p.ctx.Factory.Style(mml.Attr{Key: "mathsize", Val: emDim(size)}))
	}
}

func namedFn(id string) macroFn {
	return func(p *Parser, name string) error {
		if id == "" {
			id = name[1:]
		}
		mi := mml.Mi(id)
		mi.TexClass = mml.ClassOp
		return p.push(p.ctx.Factory.Fn(mi))
	}
}

func namedOp(id string) macroFn {
	return func(p *Parser, name string) error {
		if id == "" {
			id = name[1:]
		}
		mo := mml.Mo(id)
		mo.TexClass = mml.ClassOp
		mo.MoveSupSub = true
		mo.MovableLimits = true
		mo.SetAttr("form", "prefix")
		return p.push(p.ctx.Factory.Mml(mo))
	}
}

func limitsMacro(limits bool) macroFn {
	return func(p *Parser, name string) error {
		return p.handleLimits(name, limits)
	}
}

func overWith(open, close string) macroFn {
	return func(p *Parser, name string) error {
		return p.pushOver(name, open, close)
	}
}

func (p *Parser) macroOver(name string) error {
	return p.pushOver(name, "", "")
}

func (p *Parser) pushOver(name, open, close string) error {
	over := p.ctx.Factory.Over(name)
	if open != "" || close != "" {
		over.open, over.close = open, close
	} else if strings.HasSuffix(name, "withdelims") {
		var err error
		if over.open, err = p.getDelimiter(name, false); err != nil {
			return err
		}
		if over.close, err = p.getDelimiter(name, false); err != nil {
			return err
		}
	}
	switch {
	case strings.HasPrefix(name, "\\above"):
		thickness, err := p.getDimen(name)
		if err != nil {
			return err
		}
		over.thickness = thickness
	case strings.HasPrefix(name, "\\atop"), name == "\\choose", name == "\\brace", name == "\\brack":
		over.thickness = "0"
	}
	return p.push(over)
}

func (p *Parser) macroFrac(name string) error {
	num, err := p.parseArg(name)
	if err != nil {
		return err
	}
	den, err := p.parseArg(name)
	if err != nil {
		return err
	}
	return p.push(p.ctx.Factory.Mml(mml.Frac(num, den)))
}

func (p *Parser) macroSqrt(name string) error {
	index, err := p.getBrackets(name)
	if err != nil {
		return err
	}
	arg, err := p.getArgument(name, false)
	if err != nil {
		return err
	}
	if arg == "\\frac" {
		a, err := p.getArgument(arg, false)
		if err != nil {
			return err
		}
		b, err := p.getArgument(arg, false)
		if err != nil {
			return err
		}
		arg += "{" + a + "}{" + b + "}"
	}
	body, err := p.subParse(arg)
	if err != nil {
		return err
	}
	var node *mml.Node
	if index == "" {
		node = mml.New("msqrt", flattenRow(body)...)
	} else {
		root, err := p.parseRootIndex(index)
		if err != nil {
			return err
		}
		node = mml.New("mroot", body, root)
	}
	return p.push(p.ctx.Factory.Mml(node))
}

func (p *Parser) macroRoot(name string) error {
	index, err := p.getUpTo(name, "\\of")
	if err != nil {
		return err
	}
	body, err := p.parseArg(name)
	if err != nil {
		return err
	}
	root, err := p.parseRootIndex(index)
	if err != nil {
		return err
	}
	return p.push(p.ctx.Factory.Mml(mml.New("mroot", body, root)))
}

// parseRootIndex parses a root index in its own scope, applying any root
// displacement recorded by \uproot or \leftroot inside it.
func (p *Parser) parseRootIndex(src string) (*mml.Node, error) {
	env := p.copyEnv()
	env["inRoot"] = true
	sub := newParser(src, p.ctx.Options, env)
	if err := sub.run(); err != nil {
		return nil, err
	}
	node, err := sub.tree()
	if err != nil {
		return nil, err
	}
	up, _ := sub.ctx.Global["upRoot"].(string)
	left, _ := sub.ctx.Global["leftRoot"].(string)
	if up != "" || left != "" {
		pad := mml.New("mpadded", node)
		if left != "" {
			pad.SetAttr("width", left)
		}
		if up != "" {
			pad.SetAttr("voffset", up)
			pad.SetAttr("height", up)
		}
		node = pad
	}
	return node, nil
}

func moveRoot(id string) macroFn {
	return func(p *Parser, name string) error {
		if in, _ := p.stack.Env()["inRoot"].(bool); !in {
			return ErrMisplacedMoveRoot.New(name)
		}
		if p.ctx.Global[id] != nil {
			return ErrMultipleMoveRoot.New(name)
		}
		arg, err := p.getArgument(name, false)
		if err != nil {
			return err
		}
		n, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil {
			return ErrIntegerArg.New(name)
		}
		dim := emDim(float64(n) / 15)
		if !strings.HasPrefix(dim, "-") {
			dim = "+" + dim
		}
		p.ctx.Global[id] = dim
		return nil
	}
}

func (p *Parser) macroLeftRight(name string) error {
	delim, err := p.getDelimiter(name, false)
	if err != nil {
		return err
	}
	if name == "\\left" {
		return p.push(p.ctx.Factory.Left(delim))
	}
	return p.push(p.ctx.Factory.Right(delim))
}

func (p *Parser) macroMiddle(name string) error {
	delim, err := p.getDelimiter(name, false)
	if err != nil {
		return err
	}
	if p.stack.Top().Kind() != KindLeft {
		return ErrMisplacedMiddle.New(name)
	}
	closeAtom := mml.Atomize(mml.New("mrow"), mml.ClassClose)
	mo := mml.Mo(delim)
	mo.Stretchy = true
	openAtom := mml.Atomize(mml.New("mrow"), mml.ClassOpen)
	return p.push(p.ctx.Factory.Mml(closeAtom), p.ctx.Factory.Mml(mo), p.ctx.Factory.Mml(openAtom))
}

func (p *Parser) macroLap(name string) error {
	arg, err := p.parseArg(name)
	if err != nil {
		return err
	}
	pad := mml.New("mpadded", arg)
	pad.SetAttr("width", "0")
	if name == "\\llap" {
		pad.SetAttr("lspace", "-1width")
	}
	return p.push(p.ctx.Factory.Mml(mml.Atomize(pad, mml.ClassOrd)))
}

func (p *Parser) macroRaiseLower(name string) error {
	h, err := p.getDimen(name)
	if err != nil {
		return err
	}
	if strings.HasPrefix(h, "-") {
		h = h[1:]
		if name == "\\raise" {
			name = "\\lower"
		} else {
			name = "\\raise"
		}
	}
	var dh, dd string
	if name == "\\lower" {
		dh, dd = "-"+h, "+"+h
	} else {
		dh, dd = "+"+h, "-"+h
	}
	return p.push(p.ctx.Factory.Raise(name, dh, dd))
}

func (p *Parser) macroMoveLeftRight(name string) error {
	h, err := p.getDimen(name)
	if err != nil {
		return err
	}
	nh := "-" + h
	if strings.HasPrefix(h, "-") {
		nh = h[1:]
	}
	if name == "\\moveleft" {
		h, nh = nh, h
	}
	return p.push(p.ctx.Factory.Shift(name, mml.Mspace(h), mml.Mspace(nh)))
}

func spacer(em float64) macroFn {
	return func(p *Parser, name string) error {
		return p.push(p.ctx.Factory.Mml(mml.Mspace(emDim(em))))
	}
}

func (p *Parser) macroHskip(name string) error {
	w, err := p.getDimen(name)
	if err != nil {
		return err
	}
	return p.push(p.ctx.Factory.Mml(mml.Mspace(w)))
}

func (p *Parser) macroRule(name string) error {
	v, err := p.getBrackets(name)
	if err != nil {
		return err
	}
	w, err := p.getDimen(name)
	if err != nil {
		return err
	}
	h, err := p.getDimen(name)
	if err != nil {
		return err
	}
	node := mml.Mspace(w)
	node.SetAttr("height", h)
	node.SetAttr("mathbackground", p.envColor())
	if v != "" {
		pad := mml.New("mpadded", node)
		pad.SetAttr("voffset", v)
		if strings.HasPrefix(v, "-") {
			pad.SetAttr("height", v)
			pad.SetAttr("depth", "+"+v[1:])
		} else {
			pad.SetAttr("height", "+"+v)
		}
		node = pad
	}
	return p.push(p.ctx.Factory.Mml(node))
}

func ruleMacro(blank bool) macroFn {
	return func(p *Parser, name string) error {
		w, err := p.getDimen(name)
		if err != nil {
			return err
		}
		h, err := p.getDimen(name)
		if err != nil {
			return err
		}
		d, err := p.getDimen(name)
		if err != nil {
			return err
		}
		node := mml.Mspace(w)
		node.SetAttr("height", h)
		node.SetAttr("depth", d)
		if !blank {
			node.SetAttr("mathbackground", p.envColor())
		}
		return p.push(p.ctx.Factory.Mml(node))
	}
}

func makeBig(class mml.TexClass, size float64) macroFn {
	// scale delimiters against the 1.2/0.85 step used between fence sizes
	size *= 1.2 / 0.85
	dim := emDim(size)
	return func(p *Parser, name string) error {
		delim, err := p.getDelimiter(name, true)
		if err != nil {
			return err
		}
		mo := mml.Mo(delim)
		mo.Fence = true
		mo.Stretchy = true
		mo.SetAttr("minsize", dim)
		mo.SetAttr("maxsize", dim)
		mo.SetAttr("symmetric", "true")
		return p.push(p.ctx.Factory.Mml(mml.Atomize(mo, class)))
	}
}

func texAtom(class mml.TexClass) macroFn {
	return func(p *Parser, name string) error {
		if class == mml.ClassOp {
			arg, err := p.getArgument(name, false)
			if err != nil {
				return err
			}
			if body, ok := strings.CutPrefix(strings.TrimSpace(arg), "\\rm "); ok && isPlainText(body) {
				mi := mml.Mi(strings.TrimSpace(body))
				mi.TexClass = mml.ClassOp
				mi.MoveSupSub = true
				mi.MovableLimits = true
				mi.SetAttr("mathvariant", "normal")
				return p.push(p.ctx.Factory.Fn(mi))
			}
			body, err := p.subParse(arg)
			if err != nil {
				return err
			}
			atom := mml.Atomize(body, class)
			atom.MoveSupSub = true
			atom.MovableLimits = true
			return p.push(p.ctx.Factory.Fn(atom))
		}
		arg, err := p.parseArg(name)
		if err != nil {
			return err
		}
		return p.push(p.ctx.Factory.Mml(mml.Atomize(arg, class)))
	}
}

func isPlainText(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == ' ':
		default:
			return false
		}
	}
	return s != ""
}

func (p *Parser) macroBuildRel(name string) error {
	top, err := p.parseUpTo(name, "\\over")
	if err != nil {
		return err
	}
	bot, err := p.parseArg(name)
	if err != nil {
		return err
	}
	node := mml.UnderOver(bot)
	node.SetChild(mml.SupSlot, top)
	return p.push(p.ctx.Factory.Mml(mml.Atomize(node, mml.ClassRel)))
}

func hbox(reset bool) macroFn {
	return func(p *Parser, name string) error {
		arg, err := p.getArgument(name, false)
		if err != nil {
			return err
		}
		level := -1
		if reset {
			level = 0
		}
		nodes, err := p.internalMath(arg, level)
		if err != nil {
			return err
		}
		items := make([]StackItem, len(nodes))
		for i, n := range nodes {
			items[i] = p.ctx.Factory.Mml(n)
		}
		return p.push(items...)
	}
}

func (p *Parser) macroFBox(name string) error {
	arg, err := p.getArgument(name, false)
	if err != nil {
		return err
	}
	nodes, err := p.internalMath(arg, -1)
	if err != nil {
		return err
	}
	box := mml.New("menclose", nodes...)
	box.SetAttr("notation", "box")
	return p.push(p.ctx.Factory.Mml(box))
}

func phantom(keepV, keepH bool) macroFn {
	return func(p *Parser, name string) error {
		arg, err := p.parseArg(name)
		if err != nil {
			return err
		}
		box := mml.New("mphantom", arg)
		if !keepV || !keepH {
			pad := mml.New("mpadded", box)
			if keepH {
				pad.SetAttr("height", "0")
				pad.SetAttr("depth", "0")
			}
			if keepV {
				pad.SetAttr("width", "0")
			}
			box = pad
		}
		return p.push(p.ctx.Factory.Mml(mml.Atomize(box, mml.ClassOrd)))
	}
}

func (p *Parser) macroSmash(name string) error {
	bt, err := p.getBrackets(name)
	if err != nil {
		return err
	}
	arg, err := p.parseArg(name)
	if err != nil {
		return err
	}
	pad := mml.New("mpadded", arg)
	switch strings.TrimSpace(bt) {
	case "b":
		pad.SetAttr("depth", "0")
	case "t":
		pad.SetAttr("height", "0")
	default:
		pad.SetAttr("height", "0")
		pad.SetAttr("depth", "0")
	}
	return p.push(p.ctx.Factory.Mml(mml.Atomize(pad, mml.ClassOrd)))
}

func accent(ch string, stretchy bool) macroFn {
	return func(p *Parser, name string) error {
		base, err := p.parseArg(name)
		if err != nil {
			return err
		}
		mo := mml.Mo(ch)
		mo.Stretchy = stretchy
		mo.SetAttr("accent", "true")
		if font := p.envFont(); font != "" {
			mo.SetAttr("mathvariant", font)
		}
		node := mml.UnderOver(base)
		node.SetChild(mml.SupSlot, mo)
		node.SetAttr("accent", "true")
		return p.push(p.ctx.Factory.Mml(mml.Atomize(node, mml.ClassOrd)))
	}
}

func underOver(ch string, over, stack bool) macroFn {
	return func(p *Parser, name string) error {
		base, err := p.parseArg(name)
		if err != nil {
			return err
		}
		if mo := base.CoreMO(); mo != nil && mo.MovableLimits {
			mo.MovableLimits = false
		}
		base.MovableLimits = false
		node := mml.UnderOver(base)
		mo := mml.Mo(ch)
		mo.Stretchy = true
		mo.SetAttr("accent", "true")
		slot := mml.SubSlot
		if over {
			slot = mml.SupSlot
		}
		node.SetChild(slot, mo)
		if stack {
			atom := mml.Atomize(node, mml.ClassOp)
			atom.MoveSupSub = true
			atom.MovableLimits = true
			return p.push(p.ctx.Factory.Mml(atom))
		}
		return p.push(p.ctx.Factory.Mml(node))
	}
}

func (p *Parser) macroOverset(name string) error {
	top, err := p.parseArg(name)
	if err != nil {
		return err
	}
	base, err := p.parseArg(name)
	if err != nil {
		return err
	}
	node := mml.UnderOver(base)
	node.SetChild(mml.SupSlot, top)
	return p.push(p.ctx.Factory.Mml(node))
}

func (p *Parser) macroUnderset(name string) error {
	bottom, err := p.parseArg(name)
	if err != nil {
		return err
	}
	base, err := p.parseArg(name)
	if err != nil {
		return err
	}
	node := mml.UnderOver(base)
	node.SetChild(mml.SubSlot, bottom)
	return p.push(p.ctx.Factory.Mml(node))
}

func matrix(open, close, align string, numbered bool) macroFn {
	return func(p *Parser, name string) error {
		c, err := p.peekNext()
		if err != nil {
			return ErrMissingArgFor.New(name)
		}
		if c == '{' {
			p.i++
		} else {
			size := len(string(c))
			p.src = string(c) + "}" + p.src[p.i+size:]
			p.i = 0
		}
		array := p.newArrayItem()
		array.requireClose = true
		if numbered {
			array.numbered = true
			array.setDef("side", "right")
		}
		array.open, array.close = open, close
		if align != "" {
			array.setDef("columnalign", align)
		}
		if style, _ := p.stack.Env()["style"].(string); style == "D" {
			array.setDef("displaystyle", "true")
		}
		return p.push(array)
	}
}

func (p *Parser) macroCr(name string) error {
	return p.push(p.ctx.Factory.Cr(name))
}

func (p *Parser) macroCrLaTeX(name string) error {
	var dim string
	if p.i < len(p.src) && p.src[p.i] == '[' {
		br, err := p.getBrackets(name)
		if err != nil {
			return err
		}
		dim = strings.Replace(strings.ReplaceAll(br, " ", ""), ",", ".", 1)
		if dim != "" && !isDimen(dim) {
			return ErrBracketMustBeDimension.New(name)
		}
	}
	if err := p.push(p.ctx.Factory.Break(name)); err != nil {
		return err
	}
	if array, ok := p.stack.Top().(*ArrayItem); ok {
		if dim != "" && array.def("rowspacing") != "" {
			rows := strings.Split(array.def("rowspacing"), " ")
			if array.rowSpacing == "" {
				array.rowSpacing = strconv.FormatFloat(dimenEm(rows[0]), 'f', -1, 64)
			}
			base, _ := strconv.ParseFloat(array.rowSpacing, 64)
			for len(rows) < len(array.table) {
				rows = append(rows, emDim(base))
			}
			extra := base + dimenEm(dim)
			if extra < 0 {
				extra = 0
			}
			rows[len(array.table)-1] = emDim(extra)
			array.setDef("rowspacing", strings.Join(rows, " "))
		}
		return nil
	}
	space := mml.Mspace("")
	space.SetAttr("linebreak", "newline")
	if dim != "" {
		space.SetAttr("depth", dim)
	}
	return p.push(p.ctx.Factory.Mml(space))
}

func hline(style string) macroFn {
	return func(p *Parser, name string) error {
		array, ok := p.stack.Top().(*ArrayItem)
		if !ok || len(array.data) > 0 {
			return ErrMisplaced.New(name)
		}
		if len(array.table) == 0 {
			array.frame = append(array.frame, "top")
			return nil
		}
		var lines []string
		if rl := array.def("rowlines"); rl != "" {
			lines = strings.Split(rl, " ")
		}
		for len(lines) < len(array.table) {
			lines = append(lines, "none")
		}
		lines[len(array.table)-1] = style
		array.setDef("rowlines", strings.Join(lines, " "))
		return nil
	}
}

func (p *Parser) macroHFill(name string) error {
	array, ok := p.stack.Top().(*ArrayItem)
	if !ok {
		return ErrUndefinedControlSequence.New(name)
	}
	array.hfill = append(array.hfill, len(array.data))
	return nil
}

func (p *Parser) macroNot(name string) error {
	return p.push(p.ctx.Factory.Not())
}

func (p *Parser) macroDots(name string) error {
	ldots := mml.Mo("\u2026")
	ldots.TexClass = mml.ClassInner
	cdots := mml.Mo("\u22EF")
	cdots.TexClass = mml.ClassInner
	return p.push(p.ctx.Factory.Dots(ldots, cdots))
}

func (p *Parser) macroTilde(name string) error {
	return p.push(p.ctx.Factory.Mml(mml.Mtext(mml.NoBreakSpace)))
}

// macroMmlToken builds a raw token element with verbatim attributes.
func (p *Parser) macroMmlToken(name string) error {
	typ, err := p.getArgument(name, false)
	if err != nil {
		return err
	}
	attrs, err := p.getBrackets(name)
	if err != nil {
		return err
	}
	text, err := p.getArgument(name, false)
	if err != nil {
		return err
	}
	if !mml.IsToken(typ) {
		return ErrNotMathMLToken.New(typ)
	}
	node := mml.New(typ)
	node.Text = text
	for attrs = strings.TrimSpace(attrs); attrs != ""; attrs = strings.TrimSpace(attrs) {
		m := tokenAttrRe.FindStringSubmatch(attrs)
		if m == nil {
			return ErrInvalidMathMLAttr.New(attrs)
		}
		val := m[2]
		if len(val) > 1 && (val[0] == '"' || val[0] == '\'') {
			val = val[1 : len(val)-1]
		}
		node.SetAttr(m[1], val)
		attrs = attrs[len(m[0]):]
	}
	return p.push(p.ctx.Factory.Mml(node))
}

func textMacro(tpl string, argc int) macroFn {
	return func(p *Parser, name string) error {
		text := tpl
		if argc > 0 {
			args := make([]string, 0, argc)
			for i := 0; i < argc; i++ {
				arg, err := p.getArgument(name, false)
				if err != nil {
					return err
				}
				args = append(args, arg)
			}
			var err error
			text, err = substituteArgs(args, tpl)
			if err != nil {
				return err
			}
		}
		return p.expandMacro(text)
	}
}
