package loader

import (
	"bytes"
	"errors"
	"testing"
)

func assert(t *testing.T, cond bool, format string, args ...any) {
	t.Helper()
	if !cond {
		t.Fatalf(format, args...)
	}
}

func TestLoadDecodesBigEndianWords(t *testing.T) {
	raw := []byte{0x70, 0x00, 0x00, 0x00, 0xD0, 0x00, 0x00, 0x41}
	words, err := Load(bytes.NewReader(raw))
	assert(t, err == nil, "unexpected error: %v", err)
	assert(t, len(words) == 2, "expected 2 words, got %d", len(words))
	assert(t, words[0] == 0x70000000, "word 0 mismatch: %08x", words[0])
	assert(t, words[1] == 0xD0000041, "word 1 mismatch: %08x", words[1])
}

func TestLoadEmptyIsValid(t *testing.T) {
	words, err := Load(bytes.NewReader(nil))
	assert(t, err == nil, "unexpected error: %v", err)
	assert(t, len(words) == 0, "expected no words, got %d", len(words))
}

func TestLoadRejectsTruncatedImage(t *testing.T) {
	raw := []byte{0x70, 0x00, 0x00}
	_, err := Load(bytes.NewReader(raw))
	assert(t, errors.Is(err, ErrTruncated), "expected ErrTruncated, got %v", err)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile("/nonexistent/path/to/program.um")
	assert(t, err != nil, "expected error for missing file")
}
