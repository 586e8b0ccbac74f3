package vm

import "um/bitpack"

// Opcode identifies one of the 14 operations a word can encode. The
// ordering matches the original disassembler's match arms.
type Opcode uint32

const (
	OpCMov Opcode = iota
	OpLoad
	OpStore
	OpAdd
	OpMul
	OpDiv
	OpNand
	OpHalt
	OpMapSegment
	OpUnmapSegment
	OpOutput
	OpInput
	OpLoadProgram
	OpLoadValue
)

func (op Opcode) String() string {
	switch op {
	case OpCMov:
		return "CMOV"
	case OpLoad:
		return "LOAD"
	case OpStore:
		return "STORE"
	case OpAdd:
		return "ADD"
	case OpMul:
		return "MUL"
	case OpDiv:
		return "DIV"
	case OpNand:
		return "NAND"
	case OpHalt:
		return "HALT"
	case OpMapSegment:
		return "MAP"
	case OpUnmapSegment:
		return "UNMAP"
	case OpOutput:
		return "OUT"
	case OpInput:
		return "IN"
	case OpLoadProgram:
		return "LOADPROG"
	case OpLoadValue:
		return "LOADVAL"
	default:
		return "UNKNOWN"
	}
}

var (
	fieldOpcode = bitpack.Field{Width: 4, Lsb: 28}
	fieldA      = bitpack.Field{Width: 3, Lsb: 6}
	fieldB      = bitpack.Field{Width: 3, Lsb: 3}
	fieldC      = bitpack.Field{Width: 3, Lsb: 0}
	fieldLVReg  = bitpack.Field{Width: 3, Lsb: 25}
	fieldLVImm  = bitpack.Field{Width: 25, Lsb: 0}
)

// decoded is the result of decoding one instruction word. For LoadValue,
// only Opcode, A, and Imm are meaningful; for every other opcode, only
// Opcode, A, B, and C are meaningful.
type decoded struct {
	Opcode  Opcode
	A, B, C uint32
	Imm     uint32
}

// decode extracts the opcode and operand fields from a raw instruction
// word. It performs no validation beyond field extraction — an opcode
// value of 14 or 15 decodes successfully to an invalid Opcode that the
// dispatch loop rejects.
func decode(word uint32) decoded {
	op := Opcode(fieldOpcode.Get(word))
	if op == OpLoadValue {
		return decoded{Opcode: op, A: fieldLVReg.Get(word), Imm: fieldLVImm.Get(word)}
	}
	return decoded{
		Opcode: op,
		A:      fieldA.Get(word),
		B:      fieldB.Get(word),
		C:      fieldC.Get(word),
	}
}
