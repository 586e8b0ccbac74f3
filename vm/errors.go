package vm

import "errors"

// Sentinel errors for the failure kinds a running machine can report.
// The fault sentinels are wrapped with pc/id/offset context via fmt.Errorf
// at the point of detection, per the error-kind table; ErrAlreadyHalted and
// ErrAlreadyFaulted are returned by Run as they are, without wrapping.
var (
	ErrUnknownOpcode  = errors.New("vm: unknown opcode")
	ErrDivideByZero   = errors.New("vm: division by zero")
	ErrBadSegment     = errors.New("vm: operation on an invalid segment")
	ErrAlreadyHalted  = errors.New("vm: machine is halted")
	ErrAlreadyFaulted = errors.New("vm: machine is faulted")
)
