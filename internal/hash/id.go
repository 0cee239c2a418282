package hash

import "github.com/cespare/xxhash/v2"

// Sum64 computes the xxHash64 of data.
func Sum64(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Checksum32 folds the xxHash64 of data into 32 bits for fixed-size headers.
func Checksum32(data []byte) uint32 {
	h := Sum64(data)
	return uint32(h>>32) ^ uint32(h) //nolint:gosec
}
