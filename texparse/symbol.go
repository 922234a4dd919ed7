package texparse

import (
	"github.com/dpotapov/go-texmath/mml"
)

// miSym is a named identifier symbol. A nonempty variant pins the
// mathvariant; variantForm selects the alternate glyph shape.
type miSym struct {
	ch          string
	variant     string
	variantForm bool
}

// moSym is a named operator symbol. The token class normally follows the
// character; setClass overrides it. limits forces limit-style scripts on
// operators the character table does not already mark.
type moSym struct {
	ch          string
	class       mml.TexClass
	setClass    bool
	limits      bool
	variantForm bool
}

var symIdentifiers = map[string]miSym{
	"alpha":      {ch: "α"},
	"beta":       {ch: "β"},
	"gamma":      {ch: "γ"},
	"delta":      {ch: "δ"},
	"epsilon":    {ch: "ϵ"},
	"zeta":       {ch: "ζ"},
	"eta":        {ch: "η"},
	"theta":      {ch: "θ"},
	"iota":       {ch: "ι"},
	"kappa":      {ch: "κ"},
	"lambda":     {ch: "λ"},
	"mu":         {ch: "μ"},
	"nu":         {ch: "ν"},
	"xi":         {ch: "ξ"},
	"omicron":    {ch: "ο"},
	"pi":         {ch: "π"},
	"rho":        {ch: "ρ"},
	"sigma":      {ch: "σ"},
	"tau":        {ch: "τ"},
	"upsilon":    {ch: "υ"},
	"phi":        {ch: "ϕ"},
	"chi":        {ch: "χ"},
	"psi":        {ch: "ψ"},
	"omega":      {ch: "ω"},
	"varepsilon": {ch: "ε"},
	"vartheta":   {ch: "ϑ"},
	"varpi":      {ch: "ϖ"},
	"varrho":     {ch: "ϱ"},
	"varsigma":   {ch: "ς"},
	"varphi":     {ch: "φ"},

	"S":        {ch: "§", variant: "normal"},
	"aleph":    {ch: "ℵ", variant: "normal"},
	"hbar":     {ch: "ℏ", variantForm: true},
	"imath":    {ch: "ı"},
	"jmath":    {ch: "ȷ"},
	"ell":      {ch: "ℓ"},
	"wp":       {ch: "℘", variant: "normal"},
	"Re":       {ch: "ℜ", variant: "normal"},
	"Im":       {ch: "ℑ", variant: "normal"},
	"partial":  {ch: "∂", variant: "normal"},
	"infty":    {ch: "∞", variant: "normal"},
	"prime":    {ch: "′", variant: "normal", variantForm: true},
	"emptyset": {ch: "∅", variant: "normal"},
	"nabla":    {ch: "∇", variant: "normal"},
	"top":      {ch: "⊤", variant: "normal"},
	"bot":      {ch: "⊥", variant: "normal"},
	"angle":    {ch: "∠", variant: "normal"},
	"triangle": {ch: "△", variant: "normal"},
	"forall":   {ch: "∀", variant: "normal"},
	"exists":   {ch: "∃", variant: "normal"},
	"neg":      {ch: "¬", variant: "normal"},
	"lnot":     {ch: "¬", variant: "normal"},

	"backslash": {ch: "∖", variant: "normal", variantForm: true},

	"flat":        {ch: "♭", variant: "normal"},
	"natural":     {ch: "♮", variant: "normal"},
	"sharp":       {ch: "♯", variant: "normal"},
	"clubsuit":    {ch: "♣", variant: "normal"},
	"diamondsuit": {ch: "♢", variant: "normal"},
	"heartsuit":   {ch: "♡", variant: "normal"},
	"spadesuit":   {ch: "♠", variant: "normal"},
}

var symOperators = map[string]moSym{
	"surd": {ch: "√"},

	// big operators
	"coprod":    {ch: "∐"},
	"bigvee":    {ch: "⋁"},
	"bigwedge":  {ch: "⋀"},
	"biguplus":  {ch: "⨄"},
	"bigcap":    {ch: "⋂"},
	"bigcup":    {ch: "⋃"},
	"int":       {ch: "∫"},
	"intop":     {ch: "∫", limits: true},
	"iint":      {ch: "∬"},
	"iiint":     {ch: "∭"},
	"prod":      {ch: "∏"},
	"sum":       {ch: "∑"},
	"bigotimes": {ch: "⨂"},
	"bigoplus":  {ch: "⨁"},
	"bigodot":   {ch: "⨀"},
	"oint":      {ch: "∮"},
	"bigsqcup":  {ch: "⨆"},
	"smallint":  {ch: "∫"},

	// binary operators
	"triangleleft":    {ch: "◃"},
	"triangleright":   {ch: "▹"},
	"bigtriangleup":   {ch: "△"},
	"bigtriangledown": {ch: "▽"},
	"wedge":           {ch: "∧"},
	"land":            {ch: "∧"},
	"vee":             {ch: "∨"},
	"lor":             {ch: "∨"},
	"cap":             {ch: "∩"},
	"cup":             {ch: "∪"},
	"ddagger":         {ch: "‡"},
	"dagger":          {ch: "†"},
	"sqcap":           {ch: "⊓"},
	"sqcup":           {ch: "⊔"},
	"uplus":           {ch: "⊎"},
	"amalg":           {ch: "⨿"},
	"diamond":         {ch: "⋄"},
	"bullet":          {ch: "∙"},
	"wr":              {ch: "≀"},
	"div":             {ch: "÷"},
	"odot":            {ch: "⊙"},
	"oslash":          {ch: "⊘"},
	"otimes":          {ch: "⊗"},
	"ominus":          {ch: "⊖"},
	"oplus":           {ch: "⊕"},
	"mp":              {ch: "∓"},
	"pm":              {ch: "±"},
	"circ":            {ch: "∘"},
	"bigcirc":         {ch: "◯"},
	"setminus":        {ch: "∖", variantForm: true},
	"cdot":            {ch: "⋅"},
	"ast":             {ch: "∗"},
	"times":           {ch: "×"},
	"star":            {ch: "⋆"},

	// relations
	"propto":     {ch: "∝"},
	"sqsubseteq": {ch: "⊑"},
	"sqsupseteq": {ch: "⊒"},
	"parallel":   {ch: "∥"},
	"mid":        {ch: "∣"},
	"dashv":      {ch: "⊣"},
	"vdash":      {ch: "⊢"},
	"leq":        {ch: "≤"},
	"le":         {ch: "≤"},
	"geq":        {ch: "≥"},
	"ge":         {ch: "≥"},
	"lt":         {ch: "<"},
	"gt":         {ch: ">"},
	"succ":       {ch: "≻"},
	"prec":       {ch: "≺"},
	"approx":     {ch: "≈"},
	"succeq":     {ch: "⪰"},
	"preceq":     {ch: "⪯"},
	"supset":     {ch: "⊃"},
	"subset":     {ch: "⊂"},
	"supseteq":   {ch: "⊇"},
	"subseteq":   {ch: "⊆"},
	"in":         {ch: "∈"},
	"ni":         {ch: "∋"},
	"notin":      {ch: "∉"},
	"owns":       {ch: "∋"},
	"gg":         {ch: "≫"},
	"ll":         {ch: "≪"},
	"sim":        {ch: "∼"},
	"simeq":      {ch: "≃"},
	"perp":       {ch: "⊥"},
	"equiv":      {ch: "≡"},
	"asymp":      {ch: "≍"},
	"smile":      {ch: "⌣"},
	"frown":      {ch: "⌢"},
	"ne":         {ch: "≠"},
	"neq":        {ch: "≠"},
	"cong":       {ch: "≅"},
	"doteq":      {ch: "≐"},
	"bowtie":     {ch: "⋈"},
	"models":     {ch: "⊨"},
	"notChar":    {ch: "⧸"},

	// arrows
	"Leftrightarrow":     {ch: "⇔"},
	"Leftarrow":          {ch: "⇐"},
	"Rightarrow":         {ch: "⇒"},
	"leftrightarrow":     {ch: "↔"},
	"leftarrow":          {ch: "←"},
	"gets":               {ch: "←"},
	"rightarrow":         {ch: "→"},
	"to":                 {ch: "→"},
	"mapsto":             {ch: "↦"},
	"leftharpoonup":      {ch: "↼"},
	"leftharpoondown":    {ch: "↽"},
	"rightharpoonup":     {ch: "⇀"},
	"rightharpoondown":   {ch: "⇁"},
	"nearrow":            {ch: "↗"},
	"searrow":            {ch: "↘"},
	"nwarrow":            {ch: "↖"},
	"swarrow":            {ch: "↙"},
	"rightleftharpoons":  {ch: "⇌"},
	"hookrightarrow":     {ch: "↪"},
	"hookleftarrow":      {ch: "↩"},
	"longleftarrow":      {ch: "⟵"},
	"Longleftarrow":      {ch: "⟸"},
	"longrightarrow":     {ch: "⟶"},
	"Longrightarrow":     {ch: "⟹"},
	"Longleftrightarrow": {ch: "⟺"},
	"longleftrightarrow": {ch: "⟷"},
	"longmapsto":         {ch: "⟼"},

	// punctuation and dots
	"ldots": {ch: "…", class: mml.ClassInner, setClass: true},
	"cdots": {ch: "⋯", class: mml.ClassInner, setClass: true},
	"vdots": {ch: "⋮"},
	"ddots": {ch: "⋱", class: mml.ClassInner, setClass: true},
	"ldotp": {ch: ".", class: mml.ClassPunct, setClass: true},
	"cdotp": {ch: "⋅", class: mml.ClassPunct, setClass: true},
	"colon": {ch: ":", class: mml.ClassPunct, setClass: true},

	// vertical bars and arrows usable as delimiters
	"vert":        {ch: "|", class: mml.ClassOrd, setClass: true},
	"Vert":        {ch: "∥", class: mml.ClassOrd, setClass: true},
	"uparrow":     {ch: "↑"},
	"downarrow":   {ch: "↓"},
	"updownarrow": {ch: "↕"},
	"Uparrow":     {ch: "⇑"},
	"Downarrow":   {ch: "⇓"},
	"Updownarrow": {ch: "⇕"},

	"langle":     {ch: "⟨"},
	"rangle":     {ch: "⟩"},
	"lbrace":     {ch: "{"},
	"rbrace":     {ch: "}"},
	"lceil":      {ch: "⌈"},
	"rceil":      {ch: "⌉"},
	"lfloor":     {ch: "⌊"},
	"rfloor":     {ch: "⌋"},
	"lbrack":     {ch: "["},
	"rbrack":     {ch: "]"},
	"lmoustache": {ch: "⎰"},
	"rmoustache": {ch: "⎱"},
	"lgroup":     {ch: "⟮"},
	"rgroup":     {ch: "⟯"},
	"arrowvert":  {ch: "⏐"},
	"Arrowvert":  {ch: "‖"},
	"bracevert":  {ch: "⎪"},
}

// symUpright names characters set upright regardless of the italic default
// for identifiers, unless the scope font overrides.
var symUpright = map[string]string{
	"Gamma":   "Γ",
	"Delta":   "Δ",
	"Theta":   "Θ",
	"Lambda":  "Λ",
	"Xi":      "Ξ",
	"Pi":      "Π",
	"Sigma":   "Σ",
	"Upsilon": "Υ",
	"Phi":     "Φ",
	"Psi":     "Ψ",
	"Omega":   "Ω",
	"_":       "_",
	"#":       "#",
	"$":       "$",
	"%":       "%",
	"&":       "&",
}

// delimiters maps delimiter notation, either a bare character or a control
// sequence, to the character it denotes. The empty delimiter "." maps to an
// empty string.
var delimiters = map[string]string{
	"(":             "(",
	")":             ")",
	"[":             "[",
	"]":             "]",
	"<":             "⟨",
	">":             "⟩",
	"/":             "/",
	"|":             "|",
	".":             "",
	"\\lt":          "⟨",
	"\\gt":          "⟩",
	"\\\\":          "\\",
	"\\lmoustache":  "⎰",
	"\\rmoustache":  "⎱",
	"\\lgroup":      "⟮",
	"\\rgroup":      "⟯",
	"\\arrowvert":   "⏐",
	"\\Arrowvert":   "‖",
	"\\bracevert":   "⎪",
	"\\Vert":        "∥",
	"\\|":           "∥",
	"\\vert":        "|",
	"\\uparrow":     "↑",
	"\\downarrow":   "↓",
	"\\updownarrow": "↕",
	"\\Uparrow":     "⇑",
	"\\Downarrow":   "⇓",
	"\\Updownarrow": "⇕",
	"\\backslash":   "\\",
	"\\rangle":      "⟩",
	"\\langle":      "⟨",
	"\\rbrace":      "}",
	"\\lbrace":      "{",
	"\\}":           "}",
	"\\{":           "{",
	"\\rceil":       "⌉",
	"\\lceil":       "⌈",
	"\\rfloor":      "⌋",
	"\\lfloor":      "⌊",
	"\\lbrack":      "[",
	"\\rbrack":      "]",
}

// remapChars substitutes characters whose TeX meaning differs from their
// ASCII form.
var remapChars = map[rune]string{
	'-': "−",
	'*': "∗",
	'`': "‘",
}

// pushIdentifier pushes the token for a named identifier symbol.
func (p *Parser) pushIdentifier(def miSym) error {
	mi := mml.Mi(def.ch)
	mi.VariantForm = def.variantForm
	if def.variant != "" {
		mi.SetAttr("mathvariant", def.variant)
	}
	if font := p.envFont(); font != "" && def.variant == "" {
		mi.SetAttr("mathvariant", font)
	}
	return p.push(p.ctx.Factory.Mml(mi))
}

// pushOperator pushes the token for a named operator symbol.
func (p *Parser) pushOperator(def moSym) error {
	mo := mml.Mo(def.ch)
	if def.setClass {
		mo.TexClass = def.class
	}
	mo.VariantForm = def.variantForm
	if def.limits || mml.HasMovableLimits(def.ch) {
		mo.MoveSupSub = true
		mo.MovableLimits = true
	}
	return p.push(p.ctx.Factory.Mml(mo))
}

// pushUpright pushes an identifier that defaults to upright shape.
func (p *Parser) pushUpright(ch string) error {
	mi := mml.Mi(ch)
	variant := "normal"
	if font := p.envFont(); font != "" {
		variant = font
	}
	mi.SetAttr("mathvariant", variant)
	return p.push(p.ctx.Factory.Mml(mi))
}

// pushDelimiter pushes a delimiter used outside a fence, which keeps its
// natural size.
func (p *Parser) pushDelimiter(ch string) error {
	mo := mml.Mo(ch)
	return p.push(p.ctx.Factory.Mml(mo))
}
