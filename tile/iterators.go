package tile

import "iter"

// IterTiles returns an iterator over all tiles in the grid in row-major order:
// left to right within a tile row before advancing to the next row.
func IterTiles(g *Grid) iter.Seq2[Position, Tile] {
	return func(yield func(Position, Tile) bool) {
		for row := range g.Rows {
			for col := range g.Cols {
				pos := Position{Row: row, Col: col}
				if !yield(pos, g.Tile(pos)) {
					return
				}
			}
		}
	}
}

// IterPositions returns an iterator over all positions of a rows x cols grid
// in row-major order.
func IterPositions(rows, cols int) iter.Seq[Position] {
	return func(yield func(Position) bool) {
		for row := range rows {
			for col := range cols {
				if !yield(Position{Row: row, Col: col}) {
					return
				}
			}
		}
	}
}
