package calculator

type tileCalculator struct{}

// New creates a Calculator implementing both the fixed-grid and the
// guide-driven partitioning strategies.
func New() Calculator {
	return &tileCalculator{}
}

// ComputeGrid partitions the image into fixed-size tiles separated by
// discardable dividers. The image is walked left-to-right, top-to-bottom,
// advancing by tileWidth then dividerWidth; a column (or row) is emitted
// whenever a full tile still fits at the current offset, so the final
// column/row needs no trailing divider. Rectangles are returned in
// column-major order: all rows of column 0, then column 1, and so on.
//
// Degenerate inputs (non-positive tile size, or a tile larger than the image)
// return an empty list with zeroed metadata, so the function is safe to call
// without prior validation.
func (c *tileCalculator) ComputeGrid(imageWidth, imageHeight, tileWidth, tileHeight, dividerWidth int) ([]Rect, Metadata) {
	meta := Metadata{Method: MethodGrid}

	if tileWidth <= 0 || tileHeight <= 0 || dividerWidth < 0 {
		return nil, meta
	}
	if tileWidth > imageWidth || tileHeight > imageHeight {
		return nil, meta
	}

	var tiles []Rect

	for x := 0; x+tileWidth <= imageWidth; x += tileWidth + dividerWidth {
		meta.Cols++
		rowCount := 0
		for y := 0; y+tileHeight <= imageHeight; y += tileHeight + dividerWidth {
			tiles = append(tiles, Rect{X: x, Y: y, Width: tileWidth, Height: tileHeight})
			rowCount++
		}
		// Every column yields the same rows; record the first.
		if meta.Rows == 0 {
			meta.Rows = rowCount
		}
	}

	meta.TotalTiles = len(tiles)
	return tiles, meta
}

// ComputeCutLines returns the pixel offsets of the internal tile boundaries,
// never including 0 or the image extent. The stepping model matches
// ComputeGrid: the first line sits at tileWidth (the right edge of the first
// column), subsequent lines advance by dividerWidth+tileWidth. Positions are
// used for preview visualisation only.
func (c *tileCalculator) ComputeCutLines(imageWidth, imageHeight, tileWidth, tileHeight, dividerWidth int) (vertical, horizontal []int) {
	if tileWidth <= 0 || tileHeight <= 0 || dividerWidth < 0 {
		return nil, nil
	}
	for x := tileWidth; x < imageWidth; x += dividerWidth + tileWidth {
		vertical = append(vertical, x)
	}
	for y := tileHeight; y < imageHeight; y += dividerWidth + tileHeight {
		horizontal = append(horizontal, y)
	}
	return vertical, horizontal
}
