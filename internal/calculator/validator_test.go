package calculator

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		imageW  int
		imageH  int
		tileW   int
		tileH   int
		divider int
		wantErr error
	}{
		{
			name:   "ValidParameters",
			imageW: 1000, imageH: 1000, tileW: 100, tileH: 100, divider: 0,
		},
		{
			name:   "ValidWithDividers",
			imageW: 1000, imageH: 1000, tileW: 100, tileH: 100, divider: 10,
		},
		{
			name:   "ZeroTileWidth",
			imageW: 100, imageH: 100, tileW: 0, tileH: 50, divider: 0,
			wantErr: ErrTileWidthNotPositive,
		},
		{
			name:   "NegativeTileHeight",
			imageW: 100, imageH: 100, tileW: 50, tileH: -10, divider: 0,
			wantErr: ErrTileHeightNotPositive,
		},
		{
			name:   "NegativeDivider",
			imageW: 100, imageH: 100, tileW: 50, tileH: 50, divider: -5,
			wantErr: ErrNegativeDividerWidth,
		},
		{
			name:   "TileWiderThanImage",
			imageW: 100, imageH: 100, tileW: 200, tileH: 50, divider: 0,
			wantErr: ErrTileExceedsImage,
		},
		{
			name:   "TileTallerThanImage",
			imageW: 100, imageH: 100, tileW: 50, tileH: 200, divider: 0,
			wantErr: ErrTileExceedsImage,
		},
		{
			name:   "DividerLeavesNoRoomHorizontally",
			imageW: 100, imageH: 100, tileW: 90, tileH: 50, divider: 20,
			wantErr: ErrNoCompleteTiles,
		},
		{
			name:   "DividerLeavesNoRoomVertically",
			imageW: 100, imageH: 100, tileW: 50, tileH: 90, divider: 20,
			wantErr: ErrNoCompleteTiles,
		},
		{
			name:   "SingleTileExactFitIgnoresDividerOverflow",
			imageW: 100, imageH: 100, tileW: 100, tileH: 100, divider: 50,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := New().Validate(tc.imageW, tc.imageH, tc.tileW, tc.tileH, tc.divider)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected error %v, got %v", tc.wantErr, err)
			}
		})
	}
}

// The first failing rule determines the reported reason, so error messages
// stay deterministic when several rules fail at once.
func TestValidateRuleOrder(t *testing.T) {
	t.Parallel()

	// Both tile dimensions invalid: width is reported first.
	if err := New().Validate(100, 100, 0, 0, -1); !errors.Is(err, ErrTileWidthNotPositive) {
		t.Fatalf("expected ErrTileWidthNotPositive, got %v", err)
	}

	// Negative divider beats the oversize checks.
	if err := New().Validate(100, 100, 200, 200, -1); !errors.Is(err, ErrNegativeDividerWidth) {
		t.Fatalf("expected ErrNegativeDividerWidth, got %v", err)
	}

	// Width oversize is reported before height oversize.
	err := New().Validate(100, 100, 200, 200, 0)
	if !errors.Is(err, ErrTileExceedsImage) {
		t.Fatalf("expected ErrTileExceedsImage, got %v", err)
	}
	if !strings.Contains(err.Error(), "tile width") {
		t.Fatalf("expected reason to mention tile width, got %q", err.Error())
	}
}

func TestValidateMessagesNameValues(t *testing.T) {
	t.Parallel()

	err := New().Validate(100, 100, 200, 50, 0)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, fragment := range []string{"tile width", "200", "100"} {
		if !strings.Contains(err.Error(), fragment) {
			t.Fatalf("expected message to contain %q, got %q", fragment, err.Error())
		}
	}

	err = New().Validate(100, 100, 50, 50, -5)
	if err == nil || !strings.Contains(err.Error(), "negative") {
		t.Fatalf("expected reason to mention negative divider, got %v", err)
	}
}

// A degenerate parameter set rejected by Validate must also short-circuit
// ComputeGrid to an empty result, so the calculator stays safe to call
// without prior validation.
func TestValidateAgreesWithComputeGrid(t *testing.T) {
	t.Parallel()

	calc := New()
	degenerate := [][5]int{
		{100, 100, 0, 50, 0},
		{100, 100, 50, 0, 0},
		{100, 100, 50, 50, -1},
		{500, 500, 600, 600, 0},
	}

	for _, p := range degenerate {
		if err := calc.Validate(p[0], p[1], p[2], p[3], p[4]); err == nil {
			t.Fatalf("expected %v to be invalid", p)
		}
		tiles, meta := calc.ComputeGrid(p[0], p[1], p[2], p[3], p[4])
		if len(tiles) != 0 || meta.TotalTiles != 0 || meta.Rows != 0 || meta.Cols != 0 {
			t.Fatalf("expected empty result for %v, got %d tiles, meta %+v", p, len(tiles), meta)
		}
	}
}
