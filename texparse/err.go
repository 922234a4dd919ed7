package texparse

import "strings"

// ParseError is a structured parse failure. Key identifies the failure kind
// for machine matching; Template is the human-readable message with
// positional placeholders %1..%9 bound from Args when the error is printed.
type ParseError struct {
	Key      string
	Template string
	Args     []string
	Pos      int // byte offset into the source, -1 when unknown
}

// Prototype errors raised by the reduction rules. Bind message arguments
// with New; match with errors.Is against the prototype.
var (
	ErrExtraOpenMissingClose = proto("ExtraOpenMissingClose", "Extra open brace or missing close brace")
	ErrExtraCloseMissingOpen = proto("ExtraCloseMissingOpen", "Extra close brace or missing open brace")
	ErrMissingLeftExtraRight = proto("MissingLeftExtraRight", "Missing \\left or extra \\right")
	ErrExtraLeftMissingRight = proto("ExtraLeftMissingRight", "Extra \\left or missing \\right")
	ErrEnvBadEnd             = proto("EnvBadEnd", "\\begin{%1} ended with \\end{%2}")
	ErrEnvMissingEnd         = proto("EnvMissingEnd", "Missing \\end{%1}")
	ErrMissingScript         = proto("MissingScript", "Missing superscript or subscript argument")
	ErrMissingOpenForSub     = proto("MissingOpenForSub", "Missing open brace for subscript")
	ErrMissingOpenForSup     = proto("MissingOpenForSup", "Missing open brace for superscript")
	ErrAmbiguousUseOf        = proto("AmbiguousUseOf", "Ambiguous use of %1")
	ErrMisplaced             = proto("Misplaced", "Misplaced %1")
	ErrMissingBoxFor         = proto("MissingBoxFor", "Missing box for %1")
	ErrMissingCloseBrace     = proto("MissingCloseBrace", "Missing close brace")
)

// Errors raised by the tokenizer and macro driver.
var (
	ErrUndefinedControlSequence = proto("UndefinedControlSequence", "Undefined control sequence %1")
	ErrMissingArgFor            = proto("MissingArgFor", "Missing argument for %1")
	ErrDoubleExponent           = proto("DoubleExponent", "Double exponent: use braces to clarify")
	ErrDoubleSubscripts         = proto("DoubleSubscripts", "Double subscripts: use braces to clarify")
	ErrDoubleExponentPrime      = proto("DoubleExponentPrime", "Prime causes double exponent: use braces to clarify")
	ErrMissingDelimiter         = proto("MissingDelimiter", "Missing or unrecognized delimiter for %1")
	ErrUnknownEnv               = proto("UnknownEnv", "Unknown environment '%1'")
	ErrMisplacedLimits          = proto("MisplacedLimits", "%1 is allowed only on operators")
	ErrMissingDimOrUnits        = proto("MissingDimOrUnits", "Missing dimension or its units for %1")
	ErrMaxBufferSize            = proto("MaxBufferSize", "Internal buffer size exceeded; is there a recursive macro call?")
	ErrMaxMacroSubs             = proto("MaxMacroSubs", "Maximum macro substitution count exceeded; is there a recursive macro call?")
	ErrIllegalMacroParam        = proto("IllegalMacroParam", "Illegal macro parameter reference")
	ErrMissingCloseBracket      = proto("MissingCloseBracket", "Couldn't find closing ']' for argument to %1")
	ErrExtraCloseLooking        = proto("ExtraCloseLooking", "Extra close brace while looking for %1")
	ErrTokenNotFound            = proto("TokenNotFound", "Couldn't find %1 for %2")
	ErrCantUseHash              = proto("CantUseHash", "You can't use 'macro parameter character #' in math mode")
	ErrInvalidEnv               = proto("InvalidEnv", "Invalid environment name '%1'")
	ErrMisplacedMiddle          = proto("MisplacedMiddle", "%1 must be within \\left and \\right")
	ErrMisplacedMoveRoot        = proto("MisplacedMoveRoot", "%1 can appear only within a root")
	ErrMultipleMoveRoot         = proto("MultipleMoveRoot", "Multiple use of %1")
	ErrIntegerArg               = proto("IntegerArg", "The argument to %1 must be an integer")
	ErrMathNotTerminated        = proto("MathNotTerminated", "Math not terminated in text box")
	ErrNotMathMLToken           = proto("NotMathMLToken", "%1 is not a token element")
	ErrInvalidMathMLAttr        = proto("InvalidMathMLAttr", "Invalid MathML attribute: %1")
	ErrBracketMustBeDimension   = proto("BracketMustBeDimension", "Bracket argument to %1 must be a dimension")
)

func proto(key, template string) *ParseError {
	return &ParseError{Key: key, Template: template, Pos: -1}
}

// New returns a copy of the prototype with args bound to its placeholders.
func (e *ParseError) New(args ...string) *ParseError {
	return &ParseError{Key: e.Key, Template: e.Template, Args: args, Pos: -1}
}

// At pins the error to a byte offset in the source and returns it.
func (e *ParseError) At(pos int) *ParseError {
	e.Pos = pos
	return e
}

func (e *ParseError) Error() string {
	var b strings.Builder
	t := e.Template
	for i := 0; i < len(t); i++ {
		c := t[i]
		if c != '%' || i+1 == len(t) {
			b.WriteByte(c)
			continue
		}
		i++
		switch d := t[i]; {
		case d == '%':
			b.WriteByte('%')
		case d >= '1' && d <= '9':
			if k := int(d - '1'); k < len(e.Args) {
				b.WriteString(e.Args[k])
			}
		default:
			b.WriteByte('%')
			b.WriteByte(d)
		}
	}
	return b.String()
}

// Is matches any ParseError with the same Key, so the prototypes above work
// as errors.Is targets.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	return ok && t.Key == e.Key
}
