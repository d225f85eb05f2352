package calculator

import "sort"

// ComputeFromGuides partitions the image along externally supplied guide
// positions (e.g. user-placed ruler guides). The image boundaries 0 and the
// image extent are merged with the guides into the full set of grid lines;
// adjacent line pairs define candidate cells. A cell is emitted only when both
// its width and height are positive and at least minSize — degenerate or
// too-small cells are silently dropped, never reported as errors.
//
// Metadata.Rows and Metadata.Cols are derived from the grid-line counts
// before filtering, while Metadata.TotalTiles counts the rectangles actually
// emitted. No validation step precedes this function: duplicate guides and
// guides at or beyond the image boundary are tolerated and discarded.
func (c *tileCalculator) ComputeFromGuides(imageWidth, imageHeight int, verticalGuides, horizontalGuides []int, minSize int) ([]Rect, Metadata) {
	meta := Metadata{Method: MethodGuides}

	if imageWidth <= 0 || imageHeight <= 0 {
		return nil, meta
	}

	xs := mergeGridLines(verticalGuides, imageWidth)
	ys := mergeGridLines(horizontalGuides, imageHeight)

	meta.Cols = len(xs) - 1
	meta.Rows = len(ys) - 1

	var tiles []Rect

	for i := 0; i < len(xs)-1; i++ {
		x := xs[i]
		w := xs[i+1] - x
		if w <= 0 || w < minSize {
			continue
		}
		for j := 0; j < len(ys)-1; j++ {
			y := ys[j]
			h := ys[j+1] - y
			if h <= 0 || h < minSize {
				continue
			}
			tiles = append(tiles, Rect{X: x, Y: y, Width: w, Height: h})
		}
	}

	meta.TotalTiles = len(tiles)
	return tiles, meta
}

// mergeGridLines combines guide positions with the implicit boundary lines at
// 0 and extent into a sorted, deduplicated line set. Guides outside the open
// interval (0, extent) carry no cut information: boundary duplicates collapse
// into the implicit lines and out-of-range positions are dropped so every
// resulting cell stays inside the image.
func mergeGridLines(guides []int, extent int) []int {
	seen := map[int]struct{}{0: {}, extent: {}}
	for _, g := range guides {
		if g <= 0 || g >= extent {
			continue
		}
		seen[g] = struct{}{}
	}

	lines := make([]int, 0, len(seen))
	for pos := range seen {
		lines = append(lines, pos)
	}
	sort.Ints(lines)
	return lines
}
