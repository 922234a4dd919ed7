package texparse

import (
	"strings"
)

// envFn configures the items a \begin pushes for one environment. The
// begin item itself is pushed first; the matching \end unwinds whatever the
// handler stacked on top of it.
type envFn func(p *Parser, begin *BeginItem) error

var environments = map[string]envFn{
	"array":       envArray,
	"matrix":      envMatrix("", "", ""),
	"pmatrix":     envMatrix("(", ")", ""),
	"bmatrix":     envMatrix("[", "]", ""),
	"Bmatrix":     envMatrix("{", "}", ""),
	"vmatrix":     envMatrix("|", "|", ""),
	"Vmatrix":     envMatrix("∥", "∥", ""),
	"smallmatrix": envSmallMatrix,
	"cases":       envCases,
	"aligned":     envAligned,
	"eqnarray":    envEqnarray(true),
	"eqnarray*":   envEqnarray(false),
}

// macroBeginEnd handles \begin and \end. The environment name decides the
// table shape; \end pushes the closing item that unwinds to the begin.
func (p *Parser) macroBeginEnd(name string) error {
	arg, err := p.getArgument(name, false)
	if err != nil {
		return err
	}
	env := strings.TrimSpace(arg)
	if !validEnvName(env) {
		return ErrInvalidEnv.New(env)
	}
	if name == "\\end" {
		return p.push(p.ctx.Factory.End(env))
	}
	fn, ok := environments[env]
	if !ok {
		return ErrUnknownEnv.New(env)
	}
	begin := p.ctx.Factory.Begin(env, nil)
	if err := p.push(begin); err != nil {
		return err
	}
	return fn(p, begin)
}

func validEnvName(env string) bool {
	name := strings.TrimSuffix(env, "*")
	if name == "" {
		return false
	}
	for _, r := range name {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

// newArrayItem returns an array item carrying the configured spacing
// defaults.
func (p *Parser) newArrayItem() *ArrayItem {
	array := p.ctx.Factory.Array()
	array.setDef("rowspacing", p.ctx.Options.Array.RowSpacing)
	array.setDef("columnspacing", p.ctx.Options.Array.ColumnSpacing)
	return array
}

func envMatrix(open, close, align string) envFn {
	return func(p *Parser, begin *BeginItem) error {
		array := p.newArrayItem()
		array.open, array.close = open, close
		if align != "" {
			array.setDef("columnalign", align)
		}
		return p.push(array)
	}
}

func envSmallMatrix(p *Parser, begin *BeginItem) error {
	array := p.ctx.Factory.Array()
	array.setDef("rowspacing", "0.2em")
	array.setDef("columnspacing", "0.333em")
	array.setDef("scriptlevel", "1")
	return p.push(array)
}

func envCases(p *Parser, begin *BeginItem) error {
	array := p.newArrayItem()
	array.open = "{"
	array.setDef("columnalign", "left left")
	return p.push(array)
}

func envAligned(p *Parser, begin *BeginItem) error {
	array := p.newArrayItem()
	array.setDef("columnalign", "right left right left right left right left right left")
	array.setDef("columnspacing", "0em")
	array.setDef("rowspacing", "3pt")
	array.setDef("displaystyle", "true")
	return p.push(array)
}

func envEqnarray(numbered bool) envFn {
	return func(p *Parser, begin *BeginItem) error {
		array := p.newArrayItem()
		array.numbered = numbered && p.ctx.Options.EqnNumbering != "none"
		array.setDef("columnalign", "right center left")
		array.setDef("columnspacing", "0.278em")
		array.setDef("rowspacing", "3pt")
		array.setDef("displaystyle", "true")
		if array.numbered {
			array.setDef("side", "right")
		}
		return p.push(array)
	}
}

// envArray handles \begin{array}: an optional [t|b] vertical alignment and
// a column template of l, c, r letters with | and : separators for solid
// and dashed column lines. A leading or trailing separator becomes a frame
// side.
func envArray(p *Parser, begin *BeginItem) error {
	valign, err := p.getBrackets("\\begin{array}")
	if err != nil {
		return err
	}
	tmpl, err := p.getArgument("\\begin{array}", false)
	if err != nil {
		return err
	}
	array := p.newArrayItem()
	var aligns, lines []string
	pending := ""
	sawColumn := false
	for _, r := range tmpl {
		switch r {
		case 'c', 'l', 'r':
			if sawColumn {
				if pending == "" {
					pending = "none"
				}
				lines = append(lines, pending)
			}
			pending = ""
			sawColumn = true
			switch r {
			case 'c':
				aligns = append(aligns, "center")
			case 'l':
				aligns = append(aligns, "left")
			case 'r':
				aligns = append(aligns, "right")
			}
		case '|':
			if !sawColumn {
				array.frame = append(array.frame, "left")
			} else {
				pending = "solid"
			}
		case ':':
			if !sawColumn {
				array.frame = append(array.frame, "left")
				array.dashed = true
			} else {
				pending = "dashed"
			}
		}
	}
	if pending != "" {
		array.frame = append(array.frame, "right")
		if pending == "dashed" {
			array.dashed = true
		}
	}
	if len(aligns) > 0 {
		array.setDef("columnalign", strings.Join(aligns, " "))
	}
	if hasAnyLine(lines) {
		array.setDef("columnlines", strings.Join(lines, " "))
	}
	switch strings.TrimSpace(valign) {
	case "t":
		array.setDef("align", "baseline 1")
	case "b":
		array.setDef("align", "baseline -1")
	}
	return p.push(array)
}

func hasAnyLine(lines []string) bool {
	for _, l := range lines {
		if l != "none" {
			return true
		}
	}
	return false
}
