package calculator

import "errors"

var (
	// ErrTileWidthNotPositive is returned when the requested tile width is zero or negative.
	ErrTileWidthNotPositive = errors.New("tile width must be positive")
	// ErrTileHeightNotPositive is returned when the requested tile height is zero or negative.
	ErrTileHeightNotPositive = errors.New("tile height must be positive")
	// ErrNegativeDividerWidth is returned when the divider width is negative.
	ErrNegativeDividerWidth = errors.New("divider width cannot be negative")
	// ErrTileExceedsImage is returned when a tile dimension is larger than the image.
	ErrTileExceedsImage = errors.New("tile does not fit inside the image")
	// ErrNoCompleteTiles is returned when tile plus divider overflow the image
	// and more than one tile would be needed, so no complete tiles are possible.
	ErrNoCompleteTiles = errors.New("no complete tiles possible")
)
