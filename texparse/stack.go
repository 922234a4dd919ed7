package texparse

import (
	"fmt"

	"github.com/dpotapov/go-texmath/mml"
)

// Stack runs the reduction protocol. Every push offers the incoming item to
// the current top, which may accept it, absorb it, or replace itself with
// new items that are pushed again in turn. The stack also tracks the
// innermost scope environment so token handlers can read and write it
// without walking the items.
type Stack struct {
	ctx   *Context
	items []StackItem
	env   map[string]any
}

// NewStack returns a stack anchored by a start item. A non-nil env becomes
// the root scope environment; the caller keeps ownership of the map.
func NewStack(ctx *Context, env map[string]any) *Stack {
	start := ctx.Factory.Start()
	if env != nil {
		start.SetEnv(env)
	}
	return &Stack{ctx: ctx, items: []StackItem{start}, env: start.Env()}
}

// Push offers each item in order to the top of the stack. Nil entries are
// skipped. The first reduction error aborts the sequence.
func (s *Stack) Push(items ...StackItem) error {
	for _, it := range items {
		if it == nil {
			continue
		}
		if err := s.push1(it); err != nil {
			return err
		}
	}
	return nil
}

func (s *Stack) push1(it StackItem) error {
	if len(s.items) == 0 {
		s.place(it)
		return nil
	}
	chk, err := s.Top().CheckItem(s.ctx, it)
	if err != nil {
		return err
	}
	switch chk.action {
	case actionDrop:
		return nil
	case actionReplace:
		s.pop()
		return s.Push(chk.items...)
	default:
		s.place(it)
		return nil
	}
}

// place appends the item and wires its scope environment: items owning an
// environment copy the enclosing one in unless they opt out, and become the
// innermost scope; all others alias the current scope.
func (s *Stack) place(it StackItem) {
	s.items = append(s.items, it)
	if env := it.Env(); env != nil {
		if it.CopyEnv() {
			for k, v := range s.env {
				env[k] = v
			}
		}
		s.env = env
	} else {
		it.SetEnv(s.env)
	}
}

func (s *Stack) pop() StackItem {
	it := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	if !it.IsOpen() {
		it.SetEnv(nil)
	}
	if len(s.items) > 0 {
		s.env = s.Top().Env()
	} else {
		s.env = map[string]any{}
	}
	return it
}

// Top returns the current top item, or nil on an empty stack.
func (s *Stack) Top() StackItem {
	if len(s.items) == 0 {
		return nil
	}
	return s.items[len(s.items)-1]
}

// Prev returns the most recent node collected by the top item. With pop
// set, the node is removed so the caller can re-attach it elsewhere.
func (s *Stack) Prev(pop bool) *mml.Node {
	top := s.Top()
	data := top.Data()
	if len(data) == 0 {
		return nil
	}
	last := data[len(data)-1]
	if pop {
		top.SetData(data[:len(data)-1])
	}
	return last
}

// Env exposes the innermost scope environment.
func (s *Stack) Env() map[string]any { return s.env }

// Depth reports the number of stacked items.
func (s *Stack) Depth() int { return len(s.items) }

// Tree returns the finished parse tree. It fails unless the stack has been
// reduced to a single mml item, which the stop item arranges for wellformed
// input.
func (s *Stack) Tree() (*mml.Node, error) {
	if len(s.items) == 1 {
		if m, ok := s.items[0].(*MmlItem); ok {
			return m.First(), nil
		}
	}
	return nil, fmt.Errorf("texparse: parse left stack at %s", s.String())
}

// String renders the item kinds bottom-up, for diagnostics.
func (s *Stack) String() string {
	out := ""
	for i, it := range s.items {
		if i > 0 {
			out += " "
		}
		out += it.Kind().String()
	}
	return out
}
