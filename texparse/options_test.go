package texparse

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	require.False(t, opts.Display)
	require.Equal(t, "none", opts.EqnNumbering)
	require.Equal(t, 5*1024, opts.MaxBuffer)
	require.Equal(t, 10000, opts.MaxSubstitutions)
	require.Equal(t, "1em", opts.Array.ColumnSpacing)
	require.Equal(t, "4pt", opts.Array.RowSpacing)
}

func TestMergeOptions(t *testing.T) {
	tests := []struct {
		name    string
		user    map[string]any
		want    func(*Options)
		wantErr string
	}{
		{
			name: "display",
			user: map[string]any{"display": true},
			want: func(o *Options) { o.Display = true },
		},
		{
			name: "camel_case_key",
			user: map[string]any{"eqnNumbering": "all"},
			want: func(o *Options) { o.EqnNumbering = "all" },
		},
		{
			name: "kebab_case_key",
			user: map[string]any{"max-buffer": 100},
			want: func(o *Options) { o.MaxBuffer = 100 },
		},
		{
			name: "json_number",
			user: map[string]any{"maxSubstitutions": float64(50)},
			want: func(o *Options) { o.MaxSubstitutions = 50 },
		},
		{
			name: "disabled_macros_replace",
			user: map[string]any{"disabledMacros": []any{"frac", "sqrt"}},
			want: func(o *Options) { o.DisabledMacros = []string{"frac", "sqrt"} },
		},
		{
			name: "disabled_macros_append",
			user: map[string]any{"disabledMacros": map[string]any{"[+]": []string{"sqrt"}}},
			want: func(o *Options) { o.DisabledMacros = []string{"frac", "sqrt"} },
		},
		{
			name: "array_nested",
			user: map[string]any{"array": map[string]any{"columnSpacing": "2em", "row_spacing": "6pt"}},
			want: func(o *Options) { o.Array = ArrayOptions{ColumnSpacing: "2em", RowSpacing: "6pt"} },
		},
		{
			name:    "unknown_key",
			user:    map[string]any{"colour": "red"},
			wantErr: `invalid option "colour"`,
		},
		{
			name:    "unknown_nested_key",
			user:    map[string]any{"array": map[string]any{"padding": "1em"}},
			wantErr: `invalid option "array.padding"`,
		},
		{
			name:    "type_mismatch",
			user:    map[string]any{"display": "yes"},
			wantErr: `option "display" expects bool, got string`,
		},
		{
			name:    "bad_numbering",
			user:    map[string]any{"eqnNumbering": "some"},
			wantErr: `option "eqnNumbering" must be "none" or "all"`,
		},
		{
			name:    "fractional_int",
			user:    map[string]any{"maxBuffer": 1.5},
			wantErr: `option "maxBuffer" expects int, got float64`,
		},
		{
			name:    "bad_list",
			user:    map[string]any{"disabledMacros": []any{"frac", 7}},
			wantErr: `option "disabledMacros" expects list of strings`,
		},
		{
			name:    "bad_append_directive",
			user:    map[string]any{"disabledMacros": map[string]any{"[+]": []string{"a"}, "x": 1}},
			wantErr: `option "disabledMacros" takes a list or the "[+]" directive`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := DefaultOptions()
			dst.DisabledMacros = []string{"frac"}

			err := MergeOptions(dst, tt.user)
			if tt.wantErr != "" {
				require.Error(t, err)
				require.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)

			want := DefaultOptions()
			want.DisabledMacros = []string{"frac"}
			tt.want(want)
			if diff := cmp.Diff(want, dst); diff != "" {
				t.Errorf("options mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNormalizeKey(t *testing.T) {
	tests := []struct{ in, want string }{
		{"display", "display"},
		{"eqnNumbering", "eqn_numbering"},
		{"EqnNumbering", "eqn_numbering"},
		{"eqn_numbering", "eqn_numbering"},
		{"max-buffer", "max_buffer"},
		{"MaxBufferSize", "max_buffer_size"},
	}
	for _, tt := range tests {
		if got := normalizeKey(tt.in); got != tt.want {
			t.Errorf("normalizeKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
