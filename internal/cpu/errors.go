package cpu

import (
	"errors"
	"fmt"
)

// ErrIllegalInstruction is returned when the fetch/decode loop lands on one
// of the eleven undefined base opcodes: 0xD3, 0xDB, 0xDD,
// 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD.
var ErrIllegalInstruction = errors.New("cpu: illegal instruction")

// illegalInstructionError wraps ErrIllegalInstruction with the offending
// opcode and address for diagnostics.
type illegalInstructionError struct {
	opcode uint8
	pc     uint16
}

func (e *illegalInstructionError) Error() string {
	return fmt.Sprintf("cpu: illegal instruction %#02x at %#04x", e.opcode, e.pc)
}

func (e *illegalInstructionError) Unwrap() error {
	return ErrIllegalInstruction
}
