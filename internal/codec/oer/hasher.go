package oer

import (
	"crypto/sha256"
	"encoding/binary"
	"hash"
)

// Hasher feeds serialized values into a running SHA-256 context instead
// of keeping them in memory. Digest returns the 32-byte fingerprint of
// everything written so far.
type Hasher struct {
	h hash.Hash
}

// NewHasher returns a Hasher over a fresh SHA-256 context.
func NewHasher() *Hasher {
	return &Hasher{h: sha256.New()}
}

// Digest returns the SHA-256 digest of the bytes written so far.
func (h *Hasher) Digest() []byte {
	return h.h.Sum(nil)
}

// Write feeds raw bytes into the hash.
func (h *Hasher) Write(b []byte) {
	h.h.Write(b)
}

// WriteUInt8 feeds a single byte.
func (h *Hasher) WriteUInt8(v uint8) {
	h.h.Write([]byte{v})
}

// WriteUInt16 feeds a big-endian 16-bit integer.
func (h *Hasher) WriteUInt16(v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	h.h.Write(b[:])
}

// WriteUInt32 feeds a big-endian 32-bit integer.
func (h *Hasher) WriteUInt32(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	h.h.Write(b[:])
}

// WriteVarUInt feeds v in VarUInt form.
func (h *Hasher) WriteVarUInt(v uint64) {
	b := uintBytes(v)
	h.h.Write([]byte{byte(len(b))})
	h.h.Write(b)
}

// WriteVarOctetString feeds b prefixed by its encoded length.
func (h *Hasher) WriteVarOctetString(b []byte) {
	h.h.Write(lengthPrefix(len(b)))
	h.h.Write(b)
}

// WriteOctetString feeds b without a length prefix. The expected fixed
// length must match exactly.
func (h *Hasher) WriteOctetString(b []byte, length int) error {
	if len(b) != length {
		return ErrLengthMismatch
	}
	h.h.Write(b)
	return nil
}
