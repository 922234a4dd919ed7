package texmath

import (
	"testing"
)

func TestInterpol(t *testing.T) {
	args := map[string]any{
		"title": "Preview",
		"count": 2,
	}
	tests := []struct {
		name    string
		s       string
		want    string
		wantErr bool
	}{
		{"empty", "", "", false},
		{"no_interpol", "plain text", "plain text", false},
		{"expr_only", "${title}", "Preview", false},
		{"leading_text", "hello ${title}", "hello Preview", false},
		{"trailing_text", "${title}!", "Preview!", false},
		{"two_exprs", "${title}-${count}", "Preview-2", false},
		{"nested_braces", `${{"a": 1}["a"]}`, "1", false},
		{"quoted_brace", `${"}"}`, "}", false},
		{"special_chars", "a\"b\n${title}", "a\"b\nPreview", false},
		{"unclosed", "${title", "", true},
		{"bad_expr", "${]}", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			progs, err := Interpol(tt.s, args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Interpol() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			got, err := Render(progs, args)
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}
