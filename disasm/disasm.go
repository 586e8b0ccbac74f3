// Package disasm renders decoded instruction words as human-readable
// mnemonic lines, for the CLI's disassembly mode and for diagnostics.
package disasm

import (
	"fmt"
	"io"

	"um/bitpack"
)

// Opcode mirrors vm.Opcode without importing vm, keeping this package a
// leaf the vm package itself could depend on if it ever needs to render a
// diagnostic line.
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

var mnemonics = map[Opcode]string{
	OpCMov:         "cmov",
	OpLoad:         "load",
	OpStore:        "store",
	OpAdd:          "add",
	OpMul:          "mul",
	OpDiv:          "div",
	OpNand:         "nand",
	OpHalt:         "halt",
	OpMapSegment:   "map",
	OpUnmapSegment: "unmap",
	OpOutput:       "output",
	OpInput:        "input",
	OpLoadProgram:  "loadprogram",
	OpLoadValue:    "loadvalue",
}

var (
	fieldOpcode = bitpack.Field{Width: 4, Lsb: 28}
	fieldA      = bitpack.Field{Width: 3, Lsb: 6}
	fieldB      = bitpack.Field{Width: 3, Lsb: 3}
	fieldC      = bitpack.Field{Width: 3, Lsb: 0}
	fieldLVReg  = bitpack.Field{Width: 3, Lsb: 25}
	fieldLVImm  = bitpack.Field{Width: 25, Lsb: 0}
)

// One renders a single instruction word as a mnemonic line, e.g.
// "add r3, r1, r2" or "loadvalue r0, 65".
func One(word uint32) string {
	op := Opcode(fieldOpcode.Get(word))
	name, known := mnemonics[op]
	if !known {
		return fmt.Sprintf("unknown(%d)", op)
	}
	if op == OpLoadValue {
		a := fieldLVReg.Get(word)
		imm := fieldLVImm.Get(word)
		return fmt.Sprintf("%s r%d, %d", name, a, imm)
	}
	a, b, c := fieldA.Get(word), fieldB.Get(word), fieldC.Get(word)
	switch op {
	case OpHalt:
		return name
	case OpMapSegment:
		return fmt.Sprintf("%s r%d, r%d", name, b, c)
	case OpUnmapSegment:
		return fmt.Sprintf("%s r%d", name, c)
	case OpOutput:
		return fmt.Sprintf("%s r%d", name, c)
	case OpInput:
		return fmt.Sprintf("%s r%d", name, c)
	case OpLoadProgram:
		return fmt.Sprintf("%s r%d, r%d", name, b, c)
	default:
		return fmt.Sprintf("%s r%d, r%d, r%d", name, a, b, c)
	}
}

// Dump writes one "index: [hex] mnemonic" line per word to w.
func Dump(w io.Writer, words []uint32) error {
	for i, word := range words {
		if _, err := fmt.Fprintf(w, "%d: [%08x] %s\n", i, word, One(word)); err != nil {
			return err
		}
	}
	return nil
}
