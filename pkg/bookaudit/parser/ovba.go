package parser

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// MS-OVBA compressed container decompression. VBA source and the project
// "dir" stream are stored as a CompressedContainer: a one-byte signature
// followed by chunks of at most 4096 decompressed bytes each, where a chunk
// is either stored raw or run-length encoded with back-reference copy tokens.

// ErrInvalidContainer indicates a malformed compressed container.
var ErrInvalidContainer = errors.New("invalid compressed container")

const (
	containerSignature = 0x01
	chunkSignature     = 0b011
	maxChunkSize       = 4096
)

// DecompressContainer decompresses an MS-OVBA CompressedContainer.
func DecompressContainer(data []byte) ([]byte, error) {
	if len(data) == 0 || data[0] != containerSignature {
		return nil, fmt.Errorf("%w: missing signature byte", ErrInvalidContainer)
	}

	var out []byte
	i := 1
	for i+2 <= len(data) {
		header := binary.LittleEndian.Uint16(data[i:])
		i += 2

		// The size field encodes the total chunk size minus 3.
		payloadLen := int(header&0x0FFF) + 1
		if sig := (header >> 12) & 0x7; sig != chunkSignature {
			return nil, fmt.Errorf("%w: bad chunk signature %#x", ErrInvalidContainer, sig)
		}

		end := i + payloadLen
		if end > len(data) {
			end = len(data)
		}

		if header&0x8000 == 0 {
			// Raw chunk: payload stored verbatim.
			out = append(out, data[i:end]...)
		} else {
			chunk, err := decompressChunk(data[i:end])
			if err != nil {
				return nil, err
			}
			out = append(out, chunk...)
		}
		i = end
	}

	return out, nil
}

// decompressChunk decodes one compressed chunk: flag bytes each governing
// eight tokens, where a clear bit is a literal byte and a set bit is a
// two-byte copy token referencing earlier output of the same chunk.
func decompressChunk(data []byte) ([]byte, error) {
	out := make([]byte, 0, maxChunkSize)
	i := 0
	for i < len(data) {
		flags := data[i]
		i++
		for bit := 0; bit < 8 && i < len(data); bit++ {
			if flags&(1<<bit) == 0 {
				out = append(out, data[i])
				i++
				continue
			}
			if i+2 > len(data) {
				return nil, fmt.Errorf("%w: truncated copy token", ErrInvalidContainer)
			}
			token := binary.LittleEndian.Uint16(data[i:])
			i += 2

			length, offset := decodeCopyToken(token, len(out))
			if offset > len(out) {
				return nil, fmt.Errorf("%w: copy token offset %d beyond %d decompressed bytes",
					ErrInvalidContainer, offset, len(out))
			}
			// Overlapping copies are legal and must be done bytewise.
			for j := 0; j < length; j++ {
				out = append(out, out[len(out)-offset])
			}
		}
	}
	return out, nil
}

// decodeCopyToken splits a copy token into its length and backward offset.
// The offset/length bit split varies with the number of bytes already
// decompressed in the chunk.
func decodeCopyToken(token uint16, pos int) (length, offset int) {
	bitCount := copyTokenBitCount(pos)
	lengthMask := uint16(0xFFFF) >> bitCount
	length = int(token&lengthMask) + 3
	offset = int(token>>(16-bitCount)) + 1
	return length, offset
}

// copyTokenBitCount returns the number of offset bits for a copy token at
// the given decompressed position: max(ceil(log2(pos)), 4), capped at 12.
func copyTokenBitCount(pos int) uint {
	n := uint(4)
	for n < 12 && 1<<n < pos {
		n++
	}
	return n
}
