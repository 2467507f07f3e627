// Package compress provides compression and decompression codecs for the
// outer row-group archive container.
//
// The row-group format itself is an uncompressed concatenation of row groups
// (see package rowgroup). This package implements an optional whole-file
// wrapper the CLI applies around that concatenated byte stream, independent
// of any column-level encoding already applied inside each row group.
//
// # Supported algorithms
//
//   - None (format.CompressionNone): no compression, zero overhead.
//   - Zstd (format.CompressionZstd): best compression ratio, moderate speed.
//   - S2 (format.CompressionS2): balanced speed and ratio, a Snappy derivative.
//   - LZ4 (format.CompressionLZ4): fastest decompression, moderate ratio.
//
// # Architecture
//
// The package defines three core interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// CreateCodec and GetCodec construct a Codec from a format.CompressionType,
// which is how the CLI's load and query subcommands select an algorithm from
// a flag value (see cmd/lineitemcol).
//
// # Choosing an algorithm
//
// Zstd favors archival datasets where write-once, read-rarely access patterns
// make a slower, better compression ratio worth paying for once. S2 and LZ4
// favor datasets queried repeatedly, where decompression happens on every
// query and fast decode matters more than shaving a few more percent off disk
// usage. None is appropriate when the row-group stream is already small or
// when CPU budget, not disk space, is the binding constraint.
package compress
