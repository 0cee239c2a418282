package compress

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4MaxDecodedSize bounds the allocation made for a declared original size.
const lz4MaxDecodedSize = 128 * 1024 * 1024

var errLZ4Corrupt = errors.New("lz4: corrupt block header")

// lz4CompressorPool pools lz4.Compressor instances for reuse.
// The lz4.Compressor maintains a hash table that benefits from reuse.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Compressor provides LZ4 block compression.
//
// Each block is prefixed with the original length as a uvarint so that
// decompression allocates exactly once. Input that LZ4 cannot shrink is
// stored raw after the prefix; a body as long as the declared length marks
// that case.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 compressor.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses the input data using a pooled lz4.Compressor.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dst := make([]byte, binary.MaxVarintLen64+lz4.CompressBlockBound(len(data)))
	prefix := binary.PutUvarint(dst, uint64(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst[prefix:])
	if err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}

	// CompressBlock reports 0 for incompressible input.
	if n == 0 || n >= len(data) {
		n = copy(dst[prefix:], data)
	}

	return dst[:prefix+n], nil
}

// Decompress decompresses a block produced by Compress.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	size, prefix := binary.Uvarint(data)
	if prefix <= 0 || size > lz4MaxDecodedSize {
		return nil, errLZ4Corrupt
	}

	body := data[prefix:]
	if size == 0 {
		if len(body) != 0 {
			return nil, errLZ4Corrupt
		}

		return []byte{}, nil
	}

	out := make([]byte, size)
	if uint64(len(body)) == size {
		copy(out, body)
		return out, nil
	}

	n, err := lz4.UncompressBlock(body, out)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompression failed: %w", err)
	}
	if uint64(n) != size { //nolint:gosec
		return nil, fmt.Errorf("lz4 decompression failed: got %d bytes, expected %d", n, size)
	}

	return out, nil
}
