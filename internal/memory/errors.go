package memory

import "errors"

// Sentinel errors the MMU and cartridge loader raise, per the core's error
// handling design: memory and dispatch errors are fatal faults that bubble
// up to the host unchanged.
var (
	// ErrReadOnly is returned for a write to a truly read-only address.
	ErrReadOnly = errors.New("memory: write to read-only address")
	// ErrUnimplemented is returned for access to an address range this
	// core does not model.
	ErrUnimplemented = errors.New("memory: access to unimplemented address range")
	// ErrCartridgeFormat is returned when a ROM file isn't a multiple of
	// 16 KiB or declares an unsupported MBC type.
	ErrCartridgeFormat = errors.New("memory: invalid cartridge format")
)
