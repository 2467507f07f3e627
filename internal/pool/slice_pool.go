package pool

import "sync"

// uint16SlicePool backs GetUint16Slice, reducing allocations when decoding
// measure columns from their on-disk bytes into uint16 slices.
var uint16SlicePool = sync.Pool{
	New: func() any { return &[]uint16{} },
}

// GetUint16Slice retrieves and resizes a uint16 slice from the pool.
//
// Measure column decoders use this to obtain a reusable destination buffer
// sized to the row group's record count, rather than allocating fresh per
// row group. Callers decoding successive row groups should request this
// slice each time; with size held constant across groups the same backing
// array is handed back.
//
// Parameters:
//   - size: The desired length of the slice
//
// Returns:
//   - []uint16: A slice with length equal to size
//   - func(): Cleanup function that must be called (typically with defer) to return the slice to the pool
func GetUint16Slice(size int) ([]uint16, func()) {
	ptr, _ := uint16SlicePool.Get().(*[]uint16)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]uint16, size)
		*ptr = slice
	} else {
		slice = slice[:size]
		*ptr = slice
	}

	return slice, func() { uint16SlicePool.Put(ptr) }
}
