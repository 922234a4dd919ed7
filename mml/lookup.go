package mml

// Glyphs inserted by the parser.
const (
	ApplyFunction  = "⁡" // invisible function application
	PrimeGlyph     = "′"
	Ldots          = "…"
	Cdots          = "⋯"
	StrikeSlash    = "⧸" // big solidus used for the negation overlay
	CombiningSlash = "̸" // combining long solidus overlay
	NoBreakSpace   = " "
)

// texClasses maps operator characters to their spacing class. Characters
// not listed default to ClassOrd.
var texClasses = map[rune]TexClass{
	'+': ClassBin, '-': ClassBin, '*': ClassBin, '/': ClassOrd,
	'±': ClassBin, // ±
	'∓': ClassBin, // ∓
	'×': ClassBin, // ×
	'÷': ClassBin, // ÷
	'⋅': ClassBin, // ⋅
	'∘': ClassBin, // ∘
	'∗': ClassBin, // ∗
	'⋆': ClassBin, // ⋆
	'∩': ClassBin, // ∩
	'∪': ClassBin, // ∪
	'⊎': ClassBin, // ⊎
	'⊓': ClassBin, // ⊓
	'⊔': ClassBin, // ⊔
	'∧': ClassBin, // ∧
	'∨': ClassBin, // ∨
	'⊕': ClassBin, // ⊕
	'⊖': ClassBin, // ⊖
	'⊗': ClassBin, // ⊗
	'⊘': ClassBin, // ⊘
	'⊙': ClassBin, // ⊙
	'∖': ClassBin, // ∖
	'†': ClassBin, '‡': ClassBin, '≀': ClassBin,

	'=': ClassRel, '<': ClassRel, '>': ClassRel, ':': ClassRel,
	'≠': ClassRel, // ≠
	'≤': ClassRel, // ≤
	'≥': ClassRel, // ≥
	'≡': ClassRel, // ≡
	'≢': ClassRel, // ≢
	'∼': ClassRel, // ∼
	'≁': ClassRel, // ≁
	'≃': ClassRel, // ≃
	'≅': ClassRel, // ≅
	'≈': ClassRel, // ≈
	'≍': ClassRel, // ≍
	'∝': ClassRel, // ∝
	'∈': ClassRel, // ∈
	'∉': ClassRel, // ∉
	'∋': ClassRel, // ∋
	'⊂': ClassRel, // ⊂
	'⊃': ClassRel, // ⊃
	'⊆': ClassRel, // ⊆
	'⊇': ClassRel, // ⊇
	'⊏': ClassRel, // ⊏
	'⊐': ClassRel, // ⊐
	'⊑': ClassRel, // ⊑
	'⊒': ClassRel, // ⊒
	'⊢': ClassRel, // ⊢
	'⊣': ClassRel, // ⊣
	'⊤': ClassRel, // ⊤
	'⊥': ClassRel, // ⊥
	'⊨': ClassRel, // ⊨
	'∣': ClassRel, // ∣
	'∥': ClassRel, // ∥
	'≪': ClassRel, // ≪
	'≫': ClassRel, // ≫
	'≺': ClassRel, // ≺
	'≻': ClassRel, // ≻
	'≼': ClassRel, // ≼
	'≽': ClassRel, // ≽
	'←': ClassRel, // ←
	'→': ClassRel, // →
	'↔': ClassRel, // ↔
	'⇐': ClassRel, // ⇐
	'⇒': ClassRel, // ⇒
	'⇔': ClassRel, // ⇔
	'↦': ClassRel, // ↦
	'↑': ClassRel, '↓': ClassRel, '⇄': ClassRel,

	'(': ClassOpen, '[': ClassOpen, '{': ClassOpen,
	'⟨': ClassOpen, // ⟨
	'⌊': ClassOpen, // ⌊
	'⌈': ClassOpen, // ⌈

	')': ClassClose, ']': ClassClose, '}': ClassClose,
	'⟩': ClassClose, // ⟩
	'⌋': ClassClose, // ⌋
	'⌉': ClassClose, // ⌉
	'!':      ClassClose,

	',': ClassPunct, ';': ClassPunct,

	'∑': ClassOp, // ∑
	'∏': ClassOp, // ∏
	'∐': ClassOp, // ∐
	'∫': ClassOp, // ∫
	'∬': ClassOp, '∭': ClassOp,
	'∮': ClassOp, // ∮
	'⋀': ClassOp, // ⋀
	'⋁': ClassOp, // ⋁
	'⋂': ClassOp, // ⋂
	'⋃': ClassOp, // ⋃
	'⨁': ClassOp, '⨂': ClassOp, '⨄': ClassOp, '⨆': ClassOp,
}

// movableLimitOps are the big operators whose scripts move above and below
// in display style. Integrals keep side scripts.
var movableLimitOps = map[rune]bool{
	'∑': true, '∏': true, '∐': true,
	'⋀': true, '⋁': true, '⋂': true, '⋃': true,
	'⨁': true, '⨂': true, '⨄': true, '⨆': true,
}

func texClassFor(text string) TexClass {
	rs := []rune(text)
	if len(rs) != 1 {
		return ClassOrd
	}
	if c, ok := texClasses[rs[0]]; ok {
		return c
	}
	return ClassOrd
}

// HasMovableLimits reports whether the operator character moves its scripts
// above and below in display style.
func HasMovableLimits(text string) bool {
	rs := []rune(text)
	return len(rs) == 1 && movableLimitOps[rs[0]]
}

// negations maps a character to its negated form. Characters without an
// entry take a combining overlay instead.
var negations = map[rune]rune{
	0x2190: 0x219A, // ← ↚
	0x2192: 0x219B, // → ↛
	0x2194: 0x21AE, // ↔ ↮
	0x21D0: 0x21CD, // ⇐ ⇍
	0x21D2: 0x21CF, // ⇒ ⇏
	0x21D4: 0x21CE, // ⇔ ⇎
	0x2203: 0x2204, // ∃ ∄
	0x2208: 0x2209, // ∈ ∉
	0x220B: 0x220C, // ∋ ∌
	0x2223: 0x2224, // ∣ ∤
	0x2225: 0x2226, // ∥ ∦
	0x223C: 0x2241, // ∼ ≁
	0x007E: 0x2241, // ~ ≁
	0x2243: 0x2244, // ≃ ≄
	0x2245: 0x2247, // ≅ ≇
	0x2248: 0x2249, // ≈ ≉
	0x224A: 0x2246, // ≊ ≆
	0x003D: 0x2260, // = ≠
	0x2261: 0x2262, // ≡ ≢
	0x224D: 0x226D, // ≍ ≭
	0x003C: 0x226E, // < ≮
	0x003E: 0x226F, // > ≯
	0x2264: 0x2270, // ≤ ≰
	0x2265: 0x2271, // ≥ ≱
	0x2272: 0x2274, // ≲ ≴
	0x2273: 0x2275, // ≳ ≵
	0x2276: 0x2278, // ≶ ≸
	0x2277: 0x2279, // ≷ ≹
	0x227A: 0x2280, // ≺ ⊀
	0x227B: 0x2281, // ≻ ⊁
	0x227C: 0x22E0, // ≼ ⋠
	0x227D: 0x22E1, // ≽ ⋡
	0x2282: 0x2284, // ⊂ ⊄
	0x2283: 0x2285, // ⊃ ⊅
	0x2286: 0x2288, // ⊆ ⊈
	0x2287: 0x2289, // ⊇ ⊉
	0x2291: 0x22E2, // ⊑ ⋢
	0x2292: 0x22E3, // ⊒ ⋣
	0x22A2: 0x22AC, // ⊢ ⊬
	0x22A8: 0x22AD, // ⊨ ⊭
	0x22A9: 0x22AE, // ⊩ ⊮
	0x22AB: 0x22AF, // ⊫ ⊯
	0x22B2: 0x22EA, // ⊲ ⋪
	0x22B3: 0x22EB, // ⊳ ⋫
	0x22B4: 0x22EC, // ⊴ ⋬
	0x22B5: 0x22ED, // ⊵ ⋭
}

// Negate returns the negated form of a relation character when one exists.
func Negate(r rune) (rune, bool) {
	neg, ok := negations[r]
	return neg, ok
}
