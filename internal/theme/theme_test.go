package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveBaseStepUnchanged(t *testing.T) {
	p, err := Derive("#10b981")
	require.NoError(t, err)
	assert.Equal(t, "#10b981", p[500])
	assert.Len(t, p, 10)
}

func TestDeriveDeterministic(t *testing.T) {
	for _, hex := range []string{"#10b981", "#000000", "#ffffff", "#123456"} {
		a, err := Derive(hex)
		require.NoError(t, err)
		b, err := Derive(hex)
		require.NoError(t, err)
		assert.Equal(t, a, b, "palette for %s must be stable", hex)
	}
}

func TestDeriveKnownShades(t *testing.T) {
	p, err := Derive("#10b981")
	require.NoError(t, err)

	// r=16 g=185 b=129
	// 400: lighten 0.25 -> r=16+round(239*.25)=76, g=185+round(70*.25)=203, b=129+round(126*.25)=161
	assert.Equal(t, "#4ccba1", p[400])
	// 600: darken 0.15 -> r=round(16*.85)=14, g=round(185*.85)=157, b=round(129*.85)=110
	assert.Equal(t, "#0e9d6e", p[600])
	// 50: lighten 0.95 -> r=16+round(239*.95)=243, g=185+round(70*.95)=252(185+67), b=129+round(126*.95)=249
	assert.Equal(t, "#f3fcf9", p[50])
}

func TestDeriveExtremes(t *testing.T) {
	black, err := Derive("#000000")
	require.NoError(t, err)
	assert.Equal(t, "#000000", black[900], "darkening black stays black")
	assert.Equal(t, "#f2f2f2", black[50])

	white, err := Derive("#ffffff")
	require.NoError(t, err)
	assert.Equal(t, "#ffffff", white[50], "lightening white stays white")
	assert.Equal(t, "#666666", white[900])
}

func TestDeriveInvalid(t *testing.T) {
	for _, hex := range []string{"", "#fff", "#gggggg", "10b98", "#10b9811"} {
		_, err := Derive(hex)
		assert.ErrorIs(t, err, ErrInvalidColor, "input %q", hex)
	}
}

func TestCSSVariables(t *testing.T) {
	p, err := Derive("#336699")
	require.NoError(t, err)
	vars := p.CSSVariables()
	assert.Equal(t, "#336699", vars["--color-primary-500"])
	assert.Len(t, vars, 10)
}
