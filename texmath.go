// Package texmath converts TeX math notation to MathML. The conversion
// engine lives in the texparse subpackage; this package adds the string
// facade, whole-page HTML typesetting and a live preview HTTP handler.
package texmath

import (
	"github.com/dpotapov/go-texmath/mml"
	"github.com/dpotapov/go-texmath/texparse"
)

// Convert turns one TeX math expression into inline MathML markup.
func Convert(tex string) (string, error) {
	return ConvertWith(tex, false, nil)
}

// ConvertDisplay turns one TeX math expression into display MathML markup.
func ConvertDisplay(tex string) (string, error) {
	return ConvertWith(tex, true, nil)
}

// ConvertWith converts with explicit display mode and parser options. A nil
// opts selects the defaults; the display argument overrides opts.Display.
func ConvertWith(tex string, display bool, opts *texparse.Options) (string, error) {
	var node *mml.Node
	var err error
	if display {
		node, err = texparse.ParseDisplay(tex, opts)
	} else {
		node, err = texparse.Parse(tex, opts)
	}
	if err != nil {
		return "", err
	}
	return mml.RenderMath(node, display, nil)
}
