package tile

import (
	"math/bits"

	"github.com/google/hilbert"
)

func curveSide(rows, cols int) int {
	n := max(rows, cols, 1)
	return 1 << bits.Len(uint(n-1))
}

// EncodePosition maps a grid position to its index along a Hilbert curve covering
// the smallest power-of-two square that contains a rows x cols grid.
// Neighbouring tiles get close codes, which keeps spatially adjacent rows together in storage.
func EncodePosition(pos Position, rows, cols int) uint64 {
	h, _ := hilbert.NewHilbert(curveSide(rows, cols))
	code, _ := h.MapInverse(pos.Col, pos.Row)
	return uint64(code)
}

func DecodePosition(code uint64, rows, cols int) Position {
	h, _ := hilbert.NewHilbert(curveSide(rows, cols))
	x, y, _ := h.Map(int(code))
	return Position{Row: y, Col: x}
}
