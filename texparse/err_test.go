package texparse

import (
	"errors"
	"testing"
)

func TestParseErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *ParseError
		want string
	}{
		{"no_args", ErrMissingCloseBrace.New(), "Missing close brace"},
		{"one_arg", ErrUndefinedControlSequence.New(`\foo`), `Undefined control sequence \foo`},
		{"two_args", ErrEnvBadEnd.New("matrix", "pmatrix"), `\begin{matrix} ended with \end{pmatrix}`},
		{"missing_arg", ErrUndefinedControlSequence.New(), "Undefined control sequence "},
		{"unused_args", ErrMissingCloseBrace.New("x", "y"), "Missing close brace"},
		{
			"literal_percent",
			&ParseError{Key: "t", Template: "100%% done, %1", Args: []string{"ok"}},
			"100% done, ok",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseErrorIs(t *testing.T) {
	err := ErrEnvBadEnd.New("a", "b").At(3)

	if !errors.Is(err, ErrEnvBadEnd) {
		t.Error("errors.Is should match the prototype by key")
	}
	if errors.Is(err, ErrEnvMissingEnd) {
		t.Error("errors.Is should not match a different key")
	}
	if errors.Is(err, errors.New("other")) {
		t.Error("errors.Is should not match a plain error")
	}
}

func TestParseErrorNewCopies(t *testing.T) {
	err := ErrMissingArgFor.New(`\frac`).At(7)
	if ErrMissingArgFor.Pos != -1 {
		t.Error("New must not mutate the prototype")
	}
	if err.Pos != 7 {
		t.Errorf("Pos = %d, want 7", err.Pos)
	}
	if len(ErrMissingArgFor.Args) != 0 {
		t.Error("prototype args must stay empty")
	}
}
