package oer

import "errors"

var (
	// ErrUnexpectedEnd indicates that the input ended before a complete
	// value could be read.
	ErrUnexpectedEnd = errors.New("unexpected end of input")

	// ErrVarUIntTooLong indicates a VarUInt whose length byte exceeds 0x7F.
	ErrVarUIntTooLong = errors.New("varuint length byte exceeds 0x7f")

	// ErrValueTooLarge indicates a value that does not fit the supported range.
	ErrValueTooLarge = errors.New("value too large")

	// ErrIndefiniteLength indicates the reserved indefinite-length prefix 0x80.
	ErrIndefiniteLength = errors.New("indefinite length prefix is not supported")

	// ErrLengthMismatch indicates a fixed-size octet string of the wrong length.
	ErrLengthMismatch = errors.New("octet string length mismatch")
)
