// Package segment implements the segmented memory manager: a table of
// independently-sized word arrays keyed by opaque ids, with freed ids
// reused on a last-in-first-out basis.
package segment

import (
	"errors"
	"fmt"
)

// Sentinel errors, wrapped with context via fmt.Errorf("%w: ...") at the
// point of detection.
var (
	ErrUnmapped    = errors.New("segment: id refers to an unmapped segment")
	ErrOutOfBounds = errors.New("segment: offset is out of bounds")
	ErrReservedID  = errors.New("segment: id 0 cannot be freed")
)

type slot struct {
	cells []uint32
	live  bool
}

// Table is the segment table. The zero value is not usable; construct one
// with New. Table is not safe for concurrent use — the machine it backs is
// single-threaded by design.
type Table struct {
	slots     []slot
	free      []uint32 // LIFO pool of reusable ids
	highWater int
}

// New returns a Table whose segment 0 (the program segment) holds the given
// initial words.
func New(program []uint32) *Table {
	t := &Table{}
	t.slots = append(t.slots, slot{cells: append([]uint32(nil), program...), live: true})
	t.highWater = 1
	return t
}

// Allocate maps a new segment of the given length, all cells zeroed, and
// returns its id. Freed ids are reused before new ones are minted, LIFO.
func (t *Table) Allocate(length uint32) uint32 {
	cells := make([]uint32, length)
	if n := len(t.free); n > 0 {
		id := t.free[n-1]
		t.free = t.free[:n-1]
		t.slots[id] = slot{cells: cells, live: true}
		return id
	}
	id := uint32(len(t.slots))
	t.slots = append(t.slots, slot{cells: cells, live: true})
	if len(t.slots) > t.highWater {
		t.highWater = len(t.slots)
	}
	return id
}

// Free unmaps the segment with the given id, releasing its backing storage
// and returning the id to the free pool for reuse.
func (t *Table) Free(id uint32) error {
	if id == 0 {
		return fmt.Errorf("%w", ErrReservedID)
	}
	s, err := t.lookup(id)
	if err != nil {
		return err
	}
	s.cells = nil
	s.live = false
	t.slots[id] = *s
	t.free = append(t.free, id)
	return nil
}

// Read returns the word at offset in the segment with the given id.
func (t *Table) Read(id, offset uint32) (uint32, error) {
	s, err := t.lookup(id)
	if err != nil {
		return 0, fmt.Errorf("%w (offset %d)", err, offset)
	}
	if int(offset) >= len(s.cells) {
		return 0, fmt.Errorf("%w: segment %d offset %d (len %d)", ErrOutOfBounds, id, offset, len(s.cells))
	}
	return s.cells[offset], nil
}

// Write stores value at offset in the segment with the given id.
func (t *Table) Write(id, offset, value uint32) error {
	s, err := t.lookup(id)
	if err != nil {
		return fmt.Errorf("%w (offset %d)", err, offset)
	}
	if int(offset) >= len(s.cells) {
		return fmt.Errorf("%w: segment %d offset %d (len %d)", ErrOutOfBounds, id, offset, len(s.cells))
	}
	s.cells[offset] = value
	return nil
}

// Replace overwrites segment 0 with a clone of the segment with the given
// id. When id is 0 this is a no-op (segment 0 is already itself).
func (t *Table) Replace(id uint32) error {
	if id == 0 {
		return nil
	}
	s, err := t.lookup(id)
	if err != nil {
		return err
	}
	clone := append([]uint32(nil), s.cells...)
	t.slots[0] = slot{cells: clone, live: true}
	return nil
}

// Len returns the number of words in the segment with the given id.
func (t *Table) Len(id uint32) (int, error) {
	s, err := t.lookup(id)
	if err != nil {
		return 0, err
	}
	return len(s.cells), nil
}

func (t *Table) lookup(id uint32) (*slot, error) {
	if int(id) >= len(t.slots) || !t.slots[id].live {
		return nil, fmt.Errorf("%w: id %d", ErrUnmapped, id)
	}
	return &t.slots[id], nil
}

// Stats reports the current footprint of the table: live segment count,
// the highest slot count ever reached, and the depth of the free-id pool.
// Used only by tests and diagnostics, never by the dispatch loop.
type Stats struct {
	Live      int
	HighWater int
	FreePool  int
}

func (t *Table) Stats() Stats {
	live := 0
	for _, s := range t.slots {
		if s.live {
			live++
		}
	}
	return Stats{Live: live, HighWater: t.highWater, FreePool: len(t.free)}
}
