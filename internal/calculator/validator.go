package calculator

import "fmt"

// Validate checks slicing parameters for the grid method before any
// computation. It returns nil when the parameters describe at least one valid
// tile, and an error wrapping one of the sentinel errors otherwise. Rules are
// checked in a fixed order so the reported reason is deterministic: the first
// failing rule wins.
//
// An invalid result is a regular return value, not a failure; callers decide
// whether to abort or re-prompt. The guide method needs no validation and
// bypasses this entirely.
func (c *tileCalculator) Validate(imageWidth, imageHeight, tileWidth, tileHeight, dividerWidth int) error {
	if tileWidth <= 0 {
		return ErrTileWidthNotPositive
	}
	if tileHeight <= 0 {
		return ErrTileHeightNotPositive
	}
	if dividerWidth < 0 {
		return ErrNegativeDividerWidth
	}

	if tileWidth > imageWidth {
		return fmt.Errorf("tile width (%d) exceeds image width (%d): %w", tileWidth, imageWidth, ErrTileExceedsImage)
	}
	if tileHeight > imageHeight {
		return fmt.Errorf("tile height (%d) exceeds image height (%d): %w", tileHeight, imageHeight, ErrTileExceedsImage)
	}

	// A single tile that exactly fills the image is still valid even though
	// tile+divider would overflow: no second tile is being attempted.
	if tileWidth+dividerWidth > imageWidth && tileWidth < imageWidth {
		return fmt.Errorf("tile width (%d) plus divider (%d) exceeds image width (%d): %w",
			tileWidth, dividerWidth, imageWidth, ErrNoCompleteTiles)
	}
	if tileHeight+dividerWidth > imageHeight && tileHeight < imageHeight {
		return fmt.Errorf("tile height (%d) plus divider (%d) exceeds image height (%d): %w",
			tileHeight, dividerWidth, imageHeight, ErrNoCompleteTiles)
	}

	return nil
}
