package texmath

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dpotapov/go-texmath/texparse"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name string
		tex  string
		want string
	}{
		{
			"identifier", "x",
			`<math xmlns="http://www.w3.org/1998/Math/MathML"><mi>x</mi></math>`,
		},
		{
			"superscript", "x^2",
			`<math xmlns="http://www.w3.org/1998/Math/MathML"><msup><mi>x</mi><mn>2</mn></msup></math>`,
		},
		{
			"fraction", `\frac{a}{b}`,
			`<math xmlns="http://www.w3.org/1998/Math/MathML"><mfrac><mi>a</mi><mi>b</mi></mfrac></math>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(tt.tex)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestConvertDisplay(t *testing.T) {
	got, err := ConvertDisplay("x")
	require.NoError(t, err)
	require.Equal(t, `<math xmlns="http://www.w3.org/1998/Math/MathML" display="block"><mi>x</mi></math>`, got)
}

func TestConvertError(t *testing.T) {
	_, err := Convert("{x")
	require.ErrorIs(t, err, texparse.ErrExtraOpenMissingClose)
}

func TestConvertWithOptions(t *testing.T) {
	opts := texparse.DefaultOptions()
	opts.DisabledMacros = []string{"frac"}

	_, err := ConvertWith(`\frac{a}{b}`, false, opts)
	require.ErrorIs(t, err, texparse.ErrUndefinedControlSequence)
}
