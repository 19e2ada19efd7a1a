package grid

import (
	"math"
	"strconv"
)

// Unit is one 2D point in a party's private set. ID is opaque to the
// protocol — only (X, Y) enters the cryptography.
type Unit struct {
	ID string
	X  float64
	Y  float64
}

// FlooredPosition computes the canonical grid key "{floor(x)} {floor(y)}",
// flooring toward negative infinity, with no padding and standard
// signed-integer formatting. "-0" can never appear: flooring -0.3 gives
// -1, and flooring exactly 0 or -0.0 gives the integer 0.
func FlooredPosition(x, y float64) string {
	fx := int64(math.Floor(x))
	fy := int64(math.Floor(y))
	return strconv.FormatInt(fx, 10) + " " + strconv.FormatInt(fy, 10)
}

// GridKey returns the Unit's canonical floor-grid position.
func (u Unit) GridKey() string {
	return FlooredPosition(u.X, u.Y)
}
