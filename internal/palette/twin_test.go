package palette

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildTwinsIsInvolution(t *testing.T) {
	colors := []Color{
		{R: 0, G: 0, B: 0},
		{R: 10, G: 10, B: 10},
		{R: 200, G: 200, B: 200},
		{R: 255, G: 255, B: 255},
		{R: 5, G: 5, B: 5},
		{R: 250, G: 250, B: 250},
	}
	inv, err := BuildTwins(colors)
	require.NoError(t, err)
	require.Equal(t, len(colors), inv.Len())

	for _, c := range colors {
		tw := inv.Twin(c)
		require.NotEqual(t, c, tw)
		require.Equal(t, c, inv.Twin(tw))
	}
}

func TestBuildTwinsRejectsOddSet(t *testing.T) {
	_, err := BuildTwins([]Color{{R: 1}, {R: 2}, {R: 3}})
	require.ErrorIs(t, err, ErrOddPalette)
}

func TestBuildTwinsFourColorExample(t *testing.T) {
	a := Color{0, 0, 0}
	b := Color{0, 0, 1}
	c := Color{255, 255, 254}
	d := Color{255, 255, 255}
	inv, err := BuildTwins([]Color{a, b, c, d})
	require.NoError(t, err)
	require.Equal(t, b, inv.Twin(a))
	require.Equal(t, a, inv.Twin(b))
	require.Equal(t, d, inv.Twin(c))
	require.Equal(t, c, inv.Twin(d))
}

func TestLowerUpperOrdering(t *testing.T) {
	a := Color{1, 2, 3}
	b := Color{1, 2, 4}
	lo, hi := Lower(a, b)
	require.Equal(t, a, lo)
	require.Equal(t, b, hi)

	lo2, hi2 := Lower(b, a)
	require.Equal(t, a, lo2)
	require.Equal(t, b, hi2)
}

func TestDistance(t *testing.T) {
	require.Equal(t, float32(0), Distance(Color{1, 2, 3}, Color{1, 2, 3}))
	require.InDelta(t, 5.0, Distance(Color{0, 0, 0}, Color{3, 4, 0}), 1e-6)
}
