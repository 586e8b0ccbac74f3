package vm

import (
	"errors"
	"fmt"
	"io"
	"log"
)

// step decodes and executes exactly one instruction, advancing pc before
// the handler runs so that a handler which sets pc itself (LoadProgram)
// is never overwritten by the generic advance.
func (v *VM) step() error {
	word, err := v.segments.Read(0, v.pc)
	if err != nil {
		return fmt.Errorf("%w: fetch failed at pc=%d: %w", ErrBadSegment, v.pc, err)
	}
	d := decode(word)
	v.pc++

	switch d.Opcode {
	case OpCMov:
		return v.opCMov(d)
	case OpLoad:
		return v.opLoad(d)
	case OpStore:
		return v.opStore(d)
	case OpAdd:
		return v.opAdd(d)
	case OpMul:
		return v.opMul(d)
	case OpDiv:
		return v.opDiv(d)
	case OpNand:
		return v.opNand(d)
	case OpHalt:
		return v.opHalt(d)
	case OpMapSegment:
		return v.opMapSegment(d)
	case OpUnmapSegment:
		return v.opUnmapSegment(d)
	case OpOutput:
		return v.opOutput(d)
	case OpInput:
		return v.opInput(d)
	case OpLoadProgram:
		return v.opLoadProgram(d)
	case OpLoadValue:
		return v.opLoadValue(d)
	default:
		return fmt.Errorf("%w: %d at pc=%d", ErrUnknownOpcode, d.Opcode, v.pc-1)
	}
}

func (v *VM) opCMov(d decoded) error {
	if v.registers[d.C] != 0 {
		v.registers[d.A] = v.registers[d.B]
	}
	return nil
}

func (v *VM) opLoad(d decoded) error {
	val, err := v.segments.Read(v.registers[d.B], v.registers[d.C])
	if err != nil {
		return fmt.Errorf("%w: segmented load at pc=%d: %w", ErrBadSegment, v.pc-1, err)
	}
	v.registers[d.A] = val
	return nil
}

func (v *VM) opStore(d decoded) error {
	if err := v.segments.Write(v.registers[d.A], v.registers[d.B], v.registers[d.C]); err != nil {
		return fmt.Errorf("%w: segmented store at pc=%d: %w", ErrBadSegment, v.pc-1, err)
	}
	return nil
}

func (v *VM) opAdd(d decoded) error {
	v.registers[d.A] = v.registers[d.B] + v.registers[d.C]
	return nil
}

func (v *VM) opMul(d decoded) error {
	v.registers[d.A] = v.registers[d.B] * v.registers[d.C]
	return nil
}

func (v *VM) opDiv(d decoded) error {
	if v.registers[d.C] == 0 {
		return fmt.Errorf("%w: at pc=%d", ErrDivideByZero, v.pc-1)
	}
	v.registers[d.A] = v.registers[d.B] / v.registers[d.C]
	return nil
}

func (v *VM) opNand(d decoded) error {
	v.registers[d.A] = ^(v.registers[d.B] & v.registers[d.C])
	return nil
}

func (v *VM) opHalt(d decoded) error {
	v.state = Halted
	return nil
}

func (v *VM) opMapSegment(d decoded) error {
	id := v.segments.Allocate(v.registers[d.C])
	v.registers[d.B] = id
	return nil
}

func (v *VM) opUnmapSegment(d decoded) error {
	if err := v.segments.Free(v.registers[d.C]); err != nil {
		return fmt.Errorf("%w: unmap at pc=%d: %w", ErrBadSegment, v.pc-1, err)
	}
	return nil
}

// opOutput resolves the overlarge-value open question: the low 8 bits are
// always written, and a value above 255 additionally logs a warning
// instead of aborting the machine.
func (v *VM) opOutput(d decoded) error {
	val := v.registers[d.C]
	if val > 255 {
		log.Printf("vm: output register holds %d (>255) at pc=%d; writing low byte only", val, v.pc-1)
	}
	if err := v.stdout.WriteByte(byte(val)); err != nil {
		return fmt.Errorf("vm: output failed at pc=%d: %w", v.pc-1, err)
	}
	return nil
}

// inputEOF is the sentinel value placed in a register when Input hits
// end-of-stream.
const inputEOF = 0xFFFFFFFF

func (v *VM) opInput(d decoded) error {
	b, err := v.stdin.ReadByte()
	if err != nil {
		if errors.Is(err, io.EOF) {
			v.registers[d.C] = inputEOF
			return nil
		}
		return fmt.Errorf("vm: input failed at pc=%d: %w", v.pc-1, err)
	}
	v.registers[d.C] = uint32(b)
	return nil
}

// opLoadProgram clones the addressed segment into segment 0 and jumps to
// the given offset, unless the source is segment 0 itself (only the jump
// happens, per the documented copy-elision policy).
func (v *VM) opLoadProgram(d decoded) error {
	src := v.registers[d.B]
	if err := v.segments.Replace(src); err != nil {
		return fmt.Errorf("%w: load program at pc=%d: %w", ErrBadSegment, v.pc-1, err)
	}
	v.pc = v.registers[d.C]
	return nil
}

func (v *VM) opLoadValue(d decoded) error {
	v.registers[d.A] = d.Imm
	return nil
}
