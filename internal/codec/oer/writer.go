// Package oer implements the subset of OER-style encoding used by
// crypto-conditions: fixed-width big-endian integers, length-prefixed
// octet strings, and the VarUInt form (a length-prefixed minimum-length
// big-endian integer).
//
// Three sinks share the Writer interface: BufferWriter appends to a
// growable buffer, Hasher feeds a running SHA-256 context, and Predictor
// only counts bytes. Encoding logic is written once against the
// interface so the serialized form, the fingerprint and the predicted
// length can never drift apart.
package oer

import (
	"bytes"
	"encoding/binary"
)

// Writer is the sink interface shared by BufferWriter, Hasher and Predictor.
type Writer interface {
	Write(b []byte)
	WriteUInt8(v uint8)
	WriteUInt16(v uint16)
	WriteUInt32(v uint32)
	WriteVarUInt(v uint64)
	WriteVarOctetString(b []byte)
	WriteOctetString(b []byte, length int) error
}

// uintBytes returns the minimum-length big-endian representation of v,
// at least one byte long.
func uintBytes(v uint64) []byte {
	var scratch [8]byte
	binary.BigEndian.PutUint64(scratch[:], v)
	i := 0
	for i < 7 && scratch[i] == 0 {
		i++
	}
	return scratch[i:]
}

// lengthPrefix returns the length-prefix encoding of n: a single byte
// below 0x80, otherwise 0x80|k followed by the k-byte big-endian length.
func lengthPrefix(n int) []byte {
	if n < 0x80 {
		return []byte{byte(n)}
	}
	lb := uintBytes(uint64(n))
	return append([]byte{0x80 | byte(len(lb))}, lb...)
}

// BufferWriter serializes values into a growable in-memory buffer.
type BufferWriter struct {
	buf bytes.Buffer
}

// NewWriter returns an empty BufferWriter.
func NewWriter() *BufferWriter {
	return &BufferWriter{}
}

// Bytes returns the serialized contents written so far.
func (w *BufferWriter) Bytes() []byte {
	return w.buf.Bytes()
}

// Write appends raw bytes.
func (w *BufferWriter) Write(b []byte) {
	w.buf.Write(b)
}

// WriteUInt8 appends a single byte.
func (w *BufferWriter) WriteUInt8(v uint8) {
	w.buf.WriteByte(v)
}

// WriteUInt16 appends a big-endian 16-bit integer.
func (w *BufferWriter) WriteUInt16(v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	w.buf.Write(b[:])
}

// WriteUInt32 appends a big-endian 32-bit integer.
func (w *BufferWriter) WriteUInt32(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	w.buf.Write(b[:])
}

// WriteVarUInt appends v as a length-prefixed minimum-length big-endian
// integer. Zero is written as a single zero value byte (01 00).
func (w *BufferWriter) WriteVarUInt(v uint64) {
	b := uintBytes(v)
	w.buf.WriteByte(byte(len(b)))
	w.buf.Write(b)
}

// WriteVarOctetString appends b prefixed by its encoded length.
func (w *BufferWriter) WriteVarOctetString(b []byte) {
	w.buf.Write(lengthPrefix(len(b)))
	w.buf.Write(b)
}

// WriteOctetString appends b without a length prefix. The expected fixed
// length must match exactly.
func (w *BufferWriter) WriteOctetString(b []byte, length int) error {
	if len(b) != length {
		return ErrLengthMismatch
	}
	w.buf.Write(b)
	return nil
}
