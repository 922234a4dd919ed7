package texparse

import (
	"fmt"
	"strings"

	"github.com/fatih/camelcase"
)

// Options configure one parse. They are fixed once the parse starts;
// reduction code reads them through the Context.
type Options struct {
	// Display selects display style for the whole input.
	Display bool

	// EqnNumbering is "none" or "all" and controls equation labeling in
	// numbered environments.
	EqnNumbering string

	// DisabledMacros lists control sequences the parser refuses, reported
	// as undefined.
	DisabledMacros []string

	// MaxBuffer bounds the unread source during macro expansion, guarding
	// against runaway substitution.
	MaxBuffer int

	// MaxSubstitutions bounds the number of macro expansions in one parse.
	MaxSubstitutions int

	// Array holds table spacing defaults.
	Array ArrayOptions
}

// ArrayOptions are the spacing defaults applied to array and matrix
// environments.
type ArrayOptions struct {
	ColumnSpacing string
	RowSpacing    string
}

// DefaultOptions returns the built-in configuration.
func DefaultOptions() *Options {
	return &Options{
		EqnNumbering:     "none",
		MaxBuffer:        5 * 1024,
		MaxSubstitutions: 10000,
		Array: ArrayOptions{
			ColumnSpacing: "1em",
			RowSpacing:    "4pt",
		},
	}
}

func (o *Options) clone() *Options {
	c := *o
	c.DisabledMacros = append([]string(nil), o.DisabledMacros...)
	return &c
}

func (o *Options) macroDisabled(name string) bool {
	for _, m := range o.DisabledMacros {
		if m == name {
			return true
		}
	}
	return false
}

// appendKey extends a list-valued option instead of replacing it when used
// as the sole key of the value map.
const appendKey = "[+]"

// MergeOptions merges user-supplied values into dst. Keys are accepted in
// camelCase or snake_case; unknown keys and type mismatches are errors.
// Nested maps merge recursively, and list values accept the append
// directive {"[+]": [...]} to extend the default list.
func MergeOptions(dst *Options, user map[string]any) error {
	for k, v := range user {
		switch normalizeKey(k) {
		case "display":
			b, ok := v.(bool)
			if !ok {
				return optionTypeError(k, "bool", v)
			}
			dst.Display = b
		case "eqn_numbering":
			s, ok := v.(string)
			if !ok {
				return optionTypeError(k, "string", v)
			}
			if s != "none" && s != "all" {
				return fmt.Errorf(`option %q must be "none" or "all"`, k)
			}
			dst.EqnNumbering = s
		case "disabled_macros":
			list, app, err := stringList(k, v)
			if err != nil {
				return err
			}
			if app {
				dst.DisabledMacros = append(dst.DisabledMacros, list...)
			} else {
				dst.DisabledMacros = list
			}
		case "max_buffer":
			n, ok := intValue(v)
			if !ok {
				return optionTypeError(k, "int", v)
			}
			dst.MaxBuffer = n
		case "max_substitutions":
			n, ok := intValue(v)
			if !ok {
				return optionTypeError(k, "int", v)
			}
			dst.MaxSubstitutions = n
		case "array":
			m, ok := v.(map[string]any)
			if !ok {
				return optionTypeError(k, "map", v)
			}
			if err := mergeArrayOptions(&dst.Array, m); err != nil {
				return err
			}
		default:
			return fmt.Errorf("invalid option %q", k)
		}
	}
	return nil
}

func mergeArrayOptions(dst *ArrayOptions, user map[string]any) error {
	for k, v := range user {
		s, ok := v.(string)
		if !ok {
			return optionTypeError("array."+k, "string", v)
		}
		switch normalizeKey(k) {
		case "column_spacing":
			dst.ColumnSpacing = s
		case "row_spacing":
			dst.RowSpacing = s
		default:
			return fmt.Errorf("invalid option %q", "array."+k)
		}
	}
	return nil
}

// stringList accepts a plain list or the {"[+]": [...]} append form. The
// second result reports whether the append directive was used.
func stringList(key string, v any) ([]string, bool, error) {
	app := false
	if m, ok := v.(map[string]any); ok {
		inner, ok := m[appendKey]
		if !ok || len(m) != 1 {
			return nil, false, fmt.Errorf("option %q takes a list or the %q directive", key, appendKey)
		}
		app = true
		v = inner
	}
	var out []string
	switch list := v.(type) {
	case []string:
		out = append(out, list...)
	case []any:
		for _, e := range list {
			s, ok := e.(string)
			if !ok {
				return nil, false, optionTypeError(key, "list of strings", v)
			}
			out = append(out, s)
		}
	default:
		return nil, false, optionTypeError(key, "list of strings", v)
	}
	return out, app, nil
}

func intValue(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	}
	return 0, false
}

func optionTypeError(key, want string, v any) error {
	return fmt.Errorf("option %q expects %s, got %T", key, want, v)
}

// normalizeKey folds camelCase and kebab-case spellings to snake_case, the
// canonical option key form.
func normalizeKey(k string) string {
	k = strings.ReplaceAll(k, "-", "_")
	var words []string
	for _, part := range strings.Split(k, "_") {
		for _, w := range camelcase.Split(part) {
			words = append(words, strings.ToLower(w))
		}
	}
	return strings.Join(words, "_")
}
