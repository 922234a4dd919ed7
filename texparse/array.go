package texparse

import (
	"strings"

	"github.com/dpotapov/go-texmath/mml"
)

// ArrayItem assembles tabular content in three levels: nodes accumulate
// into entries, entries into rows, rows into the finished table. The item
// opens a scope but starts with an empty environment instead of copying the
// enclosing one, so per-cell definitions never leak out.
type ArrayItem struct {
	BaseItem
	table []*mml.Node
	row   []*mml.Node
	frame []string
	hfill []int

	arraydef     []mml.Attr
	dashed       bool
	open, close  string
	requireClose bool
	numbered     bool
	rowSpacing   string // extra per-row spacing base, in em units
}

func (it *ArrayItem) CheckItem(ctx *Context, in StackItem) (Check, error) {
	if in.IsClose() && in.Kind() != KindOver {
		if cell, ok := in.(*CellItem); ok {
			if cell.isEntry {
				it.EndEntry()
				it.clearEnv()
				return Drop(), nil
			}
			if cell.isCR {
				it.EndEntry()
				it.EndRow()
				it.clearEnv()
				return Drop(), nil
			}
		}
		it.EndTable()
		it.clearEnv()

		scriptLevel := it.takeDef("scriptlevel")
		node := mml.New("mtable", it.table...)
		for _, a := range it.arraydef {
			node.SetAttr(a.Key, a.Val)
		}
		if len(it.frame) == 4 {
			style := "solid"
			if it.dashed {
				style = "dashed"
			}
			node.SetAttr("frame", style)
		} else if len(it.frame) > 0 {
			if rl := node.AttrVal("rowlines"); rl != "" {
				node.SetAttr("rowlines", collapseNone(rl))
			}
			enc := mml.New("menclose", node)
			enc.SetAttr("notation", strings.Join(it.frame, " "))
			if hasLines(node.AttrVal("columnlines")) || hasLines(node.AttrVal("rowlines")) {
				enc.SetAttr("padding", "0")
			}
			node = enc
		}
		if scriptLevel != "" {
			st := mml.New("mstyle", node)
			st.SetAttr("scriptlevel", scriptLevel)
			node = st
		}
		if it.open != "" || it.close != "" {
			node = fenced(it.open, node, it.close)
		}
		out := ctx.Factory.Mml(node)
		if it.requireClose {
			if in.Kind() == KindClose {
				return Replace(out), nil
			}
			return Check{}, ErrMissingCloseBrace.New()
		}
		return Replace(out, in), nil
	}
	return checkBase(it, ctx, in)
}

// EndEntry closes the pending entry into a table cell. Recorded fill
// markers translate into cell alignment: a leading fill right-aligns the
// content, a trailing fill centers it when a leading one was present and
// left-aligns it otherwise.
func (it *ArrayItem) EndEntry() {
	td := mml.New("mtd", it.data...)
	if len(it.hfill) > 0 {
		if it.hfill[0] == 0 {
			td.SetAttr("columnalign", "right")
		}
		if it.hfill[len(it.hfill)-1] == len(it.data) {
			align := "left"
			if td.AttrVal("columnalign") != "" {
				align = "center"
			}
			td.SetAttr("columnalign", align)
		}
	}
	it.row = append(it.row, td)
	it.data = nil
	it.hfill = it.hfill[:0]
}

// EndRow closes the pending row. In a numbered table a three-cell row is a
// labeled equation row: the leading cell carries the equation number.
func (it *ArrayItem) EndRow() {
	name := "mtr"
	if it.numbered && len(it.row) == 3 {
		name = "mlabeledtr"
	}
	it.table = append(it.table, mml.New(name, it.row...))
	it.row = nil
}

// EndTable flushes any pending entry and row, then normalizes the per-row
// line and spacing attributes against the final row count.
func (it *ArrayItem) EndTable() {
	if len(it.data) > 0 || len(it.row) > 0 {
		it.EndEntry()
		it.EndRow()
	}
	it.checkLines()
}

// checkLines reconciles rowlines with the row count: a spec entry per row
// means the last line closes the table and becomes a bottom frame; a short
// spec is padded with "none". Row spacing is padded the same way.
func (it *ArrayItem) checkLines() {
	if rl := it.def("rowlines"); rl != "" {
		lines := strings.Split(rl, " ")
		if len(lines) == len(it.table) {
			it.frame = append(it.frame, "bottom")
			lines = lines[:len(lines)-1]
		} else {
			for len(lines) < len(it.table) {
				lines = append(lines, "none")
			}
		}
		it.setDef("rowlines", strings.Join(lines, " "))
	}
	if it.rowSpacing != "" {
		var rows []string
		if rs := it.def("rowspacing"); rs != "" {
			rows = strings.Split(rs, " ")
		}
		for len(rows) < len(it.table) {
			rows = append(rows, it.rowSpacing+"em")
		}
		it.setDef("rowspacing", strings.Join(rows, " "))
	}
}

func (it *ArrayItem) clearEnv() {
	for k := range it.env {
		delete(it.env, k)
	}
}

func (it *ArrayItem) setDef(key, val string) {
	for i := range it.arraydef {
		if it.arraydef[i].Key == key {
			it.arraydef[i].Val = val
			return
		}
	}
	it.arraydef = append(it.arraydef, mml.Attr{Key: key, Val: val})
}

func (it *ArrayItem) def(key string) string {
	for _, a := range it.arraydef {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func (it *ArrayItem) takeDef(key string) string {
	for i, a := range it.arraydef {
		if a.Key == key {
			it.arraydef = append(it.arraydef[:i], it.arraydef[i+1:]...)
			return a.Val
		}
	}
	return ""
}

// collapseNone folds a run of trailing "none" entries into one.
func collapseNone(rowlines string) string {
	lines := strings.Split(rowlines, " ")
	n := len(lines)
	for n > 1 && lines[n-1] == "none" && lines[n-2] == "none" {
		n--
	}
	return strings.Join(lines[:n], " ")
}

func hasLines(spec string) bool {
	return spec != "" && spec != "none"
}

// CellItem separates table entries and rows. The lineBreak flag marks a row
// break occurring outside any table, which scopes treat as a plain line
// break instead of an error.
type CellItem struct {
	BaseItem
	name      string
	isEntry   bool
	isCR      bool
	lineBreak bool
}

func (it *CellItem) CheckItem(ctx *Context, in StackItem) (Check, error) {
	return checkBase(it, ctx, in)
}
