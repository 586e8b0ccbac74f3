// Package loader turns a raw program image (a byte stream) into the
// sequence of big-endian 32-bit words the machine's segment 0 is seeded
// with.
package loader

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrTruncated indicates the image length is not a multiple of 4 bytes.
var ErrTruncated = errors.New("loader: program image length is not a multiple of 4 bytes")

// Load reads an entire program image from r and decodes it into big-endian
// 32-bit words.
func Load(r io.Reader) ([]uint32, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("loader: read failed: %w", err)
	}
	return decode(raw)
}

// LoadFile reads a program image from the named file.
func LoadFile(path string) ([]uint32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	defer f.Close()
	return Load(f)
}

func decode(raw []byte) ([]uint32, error) {
	if len(raw)%4 != 0 {
		return nil, fmt.Errorf("%w: got %d bytes", ErrTruncated, len(raw))
	}
	words := make([]uint32, len(raw)/4)
	for i := range words {
		words[i] = binary.BigEndian.Uint32(raw[i*4 : i*4+4])
	}
	return words, nil
}
