package geometry

// SquareGrid tiles the extent with cells of the given size, clipping the
// last row and column to the extent. Non-positive cell sizes or a
// degenerate extent produce an empty grid.
func SquareGrid(extent Rect, cellWidth, cellHeight float64) []Rect {
	var grid []Rect

	if cellWidth <= 0 || cellHeight <= 0 {
		return grid
	}
	if extent.MinX >= extent.MaxX || extent.MinY >= extent.MaxY {
		return grid
	}

	for x := extent.MinX; x < extent.MaxX; x += cellWidth {
		for y := extent.MinY; y < extent.MaxY; y += cellHeight {
			cellMaxX := x + cellWidth
			if cellMaxX > extent.MaxX {
				cellMaxX = extent.MaxX
			}
			cellMaxY := y + cellHeight
			if cellMaxY > extent.MaxY {
				cellMaxY = extent.MaxY
			}
			grid = append(grid, Rect{MinX: x, MinY: y, MaxX: cellMaxX, MaxY: cellMaxY})
		}
	}

	return grid
}
