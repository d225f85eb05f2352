package slicer

import (
	"fmt"
	"strings"
)

// Format enumerates the supported export encodings.
type Format string

const (
	// FormatPNG exports lossless PNG tiles, preserving transparency.
	FormatPNG Format = "png"
	// FormatJPEG exports JPEG tiles; transparent regions are flattened onto white.
	FormatJPEG Format = "jpg"
	// FormatTIFF exports TIFF tiles, preserving transparency.
	FormatTIFF Format = "tiff"
)

// ParseFormat normalises a user-supplied format name into a Format.
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (supported: png, jpg, tiff)", raw)
	}
}

// Ext returns the file extension used for tiles in this format, without the dot.
func (f Format) Ext() string {
	return string(f)
}
