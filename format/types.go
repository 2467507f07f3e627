// Package format defines small enums shared by the outer archive container.
//
// The row-group format itself (encoding/, rowgroup/) has no per-column type
// tag: every row group lays out the same six columns in the same order.
// CompressionType selects the whole-file compression wrapper the CLI applies
// around a stream of row groups (see compress/).
package format

import (
	"fmt"
	"strings"
)

type CompressionType uint8

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompressionType maps a CLI-facing name (none, zstd, s2, lz4; case
// insensitive) to its CompressionType.
func ParseCompressionType(s string) (CompressionType, error) {
	switch strings.ToLower(s) {
	case "none":
		return CompressionNone, nil
	case "zstd":
		return CompressionZstd, nil
	case "s2":
		return CompressionS2, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("format: unknown compression %q", s)
	}
}
