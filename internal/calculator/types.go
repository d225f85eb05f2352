package calculator

// Method identifies the partitioning strategy that produced a result.
type Method string

const (
	// MethodGrid partitions the image by a fixed tile size with optional dividers.
	MethodGrid Method = "grid"
	// MethodGuides partitions the image along externally supplied guide positions.
	MethodGuides Method = "guides"
)

// Rect is an axis-aligned region of the source image in pixel coordinates.
// X and Y locate the top-left corner; Width and Height are always positive
// for rectangles emitted by the calculators, and every emitted rectangle lies
// entirely within the source image bounds.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Metadata summarises a partition result. TotalTiles is always the literal
// count of emitted rectangles. For the guide method, Rows and Cols report the
// grid-line-derived counts before any minimum-size filtering, so callers must
// not assume TotalTiles == Rows*Cols.
type Metadata struct {
	Rows       int
	Cols       int
	TotalTiles int
	Method     Method
}

// Calculator describes the behaviour required from a tile region calculator.
// All methods are pure functions over their arguments: identical inputs yield
// identical, order-stable outputs, and no call retains state.
type Calculator interface {
	Validate(imageWidth, imageHeight, tileWidth, tileHeight, dividerWidth int) error
	ComputeGrid(imageWidth, imageHeight, tileWidth, tileHeight, dividerWidth int) ([]Rect, Metadata)
	ComputeCutLines(imageWidth, imageHeight, tileWidth, tileHeight, dividerWidth int) (vertical, horizontal []int)
	ComputeFromGuides(imageWidth, imageHeight int, verticalGuides, horizontalGuides []int, minSize int) ([]Rect, Metadata)
}
