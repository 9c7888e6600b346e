package oer

// Predictor accumulates the encoded size of the values written to it
// without materializing any bytes. It backs the max-fulfillment-length
// calculations, which must agree exactly with what BufferWriter would
// produce.
type Predictor struct {
	size int
}

// NewPredictor returns a Predictor with a zero counter.
func NewPredictor() *Predictor {
	return &Predictor{}
}

// Size returns the number of bytes the written values would occupy.
func (p *Predictor) Size() int {
	return p.size
}

// Skip accounts for n bytes whose content is irrelevant to the size.
func (p *Predictor) Skip(n int) {
	p.size += n
}

// Write accounts for raw bytes.
func (p *Predictor) Write(b []byte) {
	p.size += len(b)
}

// WriteUInt8 accounts for a single byte.
func (p *Predictor) WriteUInt8(v uint8) {
	p.size++
}

// WriteUInt16 accounts for a big-endian 16-bit integer.
func (p *Predictor) WriteUInt16(v uint16) {
	p.size += 2
}

// WriteUInt32 accounts for a big-endian 32-bit integer.
func (p *Predictor) WriteUInt32(v uint32) {
	p.size += 4
}

// WriteVarUInt accounts for v in VarUInt form.
func (p *Predictor) WriteVarUInt(v uint64) {
	p.size += VarUIntSize(v)
}

// WriteVarOctetString accounts for b prefixed by its encoded length.
func (p *Predictor) WriteVarOctetString(b []byte) {
	p.size += VarOctetStringSize(len(b))
}

// WriteOctetString accounts for a fixed-size octet string.
func (p *Predictor) WriteOctetString(b []byte, length int) error {
	if len(b) != length {
		return ErrLengthMismatch
	}
	p.size += length
	return nil
}

// VarUIntSize returns the encoded size of v in VarUInt form.
func VarUIntSize(v uint64) int {
	return 1 + len(uintBytes(v))
}

// LengthPrefixSize returns the encoded size of the length prefix for an
// octet string of n bytes.
func LengthPrefixSize(n int) int {
	return len(lengthPrefix(n))
}

// VarOctetStringSize returns the encoded size of an n-byte octet string
// including its length prefix.
func VarOctetStringSize(n int) int {
	return LengthPrefixSize(n) + n
}
