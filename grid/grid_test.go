package grid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFlooredPositionNegative(t *testing.T) {
	require.Equal(t, "-2 -4", FlooredPosition(-1.2, -3.1))
}

func TestFlooredPositionPositive(t *testing.T) {
	require.Equal(t, "1 3", FlooredPosition(1.2, 3.4))
}

func TestFlooredPositionNoNegativeZero(t *testing.T) {
	require.Equal(t, "0 0", FlooredPosition(0, 0))
	require.Equal(t, "0 0", FlooredPosition(0.5, 0.9))
}

func TestUnitGridKey(t *testing.T) {
	u := Unit{ID: "a1", X: 1.9, Y: 3.1}
	require.Equal(t, "1 3", u.GridKey())
}
