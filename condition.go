// Package cryptoconditions implements crypto-conditions: distributable
// cryptographic commitments (conditions) and the proofs that satisfy
// them (fulfillments), in the compact cc:/cf: URI and binary encodings
// used for conditional payments and escrow on interledger networks.
package cryptoconditions

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/LeJamon/go-crypto-conditions/internal/codec/oer"
)

const (
	// MaxSafeFulfillmentSize is the largest max_fulfillment_length a
	// condition may commit to.
	MaxSafeFulfillmentSize = 65535

	// SupportedBitmask is the union of all feature bits this
	// implementation can verify.
	SupportedBitmask uint32 = FeatureSha256 | FeaturePreimage | FeaturePrefix |
		FeatureThreshold | FeatureRsaPss | FeatureEd25519

	// conditionHashSize is the fingerprint length shared by all
	// supported types.
	conditionHashSize = 32
)

// Feature bits a fulfiller must support to verify a condition.
const (
	FeatureSha256    uint32 = 0x01
	FeaturePreimage  uint32 = 0x02
	FeaturePrefix    uint32 = 0x04
	FeatureThreshold uint32 = 0x08
	FeatureRsaPss    uint32 = 0x10
	FeatureEd25519   uint32 = 0x20
)

// Hex values in condition URIs are lowercase with no leading zeros; the
// base64url hash carries no padding.
var conditionURIPattern = regexp.MustCompile(
	`^cc:([1-9a-f][0-9a-f]*|0):([1-9a-f][0-9a-f]*|0):([A-Za-z0-9_-]*):(0|[1-9][0-9]*)$`)

// Condition is the immutable fingerprint of a verification predicate:
// the type, the feature set a verifier needs, the hash of the
// type-specific payload, and the committed worst-case fulfillment size.
type Condition struct {
	TypeID               uint16
	Bitmask              uint32
	Hash                 []byte
	MaxFulfillmentLength int
}

// ParseConditionURI parses the textual cc: form of a condition.
func ParseConditionURI(uri string) (*Condition, error) {
	m := conditionURIPattern.FindStringSubmatch(uri)
	if m == nil {
		return nil, fmt.Errorf("%w: not a valid condition URI", ErrParse)
	}
	typeID, err := strconv.ParseUint(m[1], 16, 16)
	if err != nil {
		return nil, fmt.Errorf("%w: condition type: %s", ErrParse, err)
	}
	bitmask, err := strconv.ParseUint(m[2], 16, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: feature bitmask: %s", ErrParse, err)
	}
	hash, err := base64.RawURLEncoding.DecodeString(m[3])
	if err != nil {
		return nil, fmt.Errorf("%w: condition hash: %s", ErrParse, err)
	}
	maxLength, err := strconv.ParseUint(m[4], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: max fulfillment length: %s", ErrParse, err)
	}
	return &Condition{
		TypeID:               uint16(typeID),
		Bitmask:              uint32(bitmask),
		Hash:                 hash,
		MaxFulfillmentLength: int(maxLength),
	}, nil
}

// ParseConditionBinary parses the binary form of a condition and
// requires the input to be fully consumed.
func ParseConditionBinary(b []byte) (*Condition, error) {
	r := oer.NewReader(b)
	c, err := readCondition(r)
	if err != nil {
		return nil, err
	}
	if r.HasMore() {
		return nil, fmt.Errorf("%w: trailing bytes after condition", ErrParse)
	}
	return c, nil
}

// readCondition parses one condition from the reader, leaving any
// following bytes unread.
func readCondition(r *oer.Reader) (*Condition, error) {
	typeID, err := r.ReadUInt16()
	if err != nil {
		return nil, fmt.Errorf("%w: condition type: %s", ErrParse, err)
	}
	bitmask, err := r.ReadVarUInt()
	if err != nil {
		return nil, fmt.Errorf("%w: feature bitmask: %s", ErrParse, err)
	}
	if bitmask > math.MaxUint32 {
		return nil, fmt.Errorf("%w: feature bitmask %d", ErrTooLarge, bitmask)
	}
	hash, err := r.ReadVarOctetString()
	if err != nil {
		return nil, fmt.Errorf("%w: condition hash: %s", ErrParse, err)
	}
	maxLength, err := r.ReadVarUInt()
	if err != nil {
		return nil, fmt.Errorf("%w: max fulfillment length: %s", ErrParse, err)
	}
	if maxLength > math.MaxUint32 {
		return nil, fmt.Errorf("%w: max fulfillment length %d", ErrTooLarge, maxLength)
	}
	return &Condition{
		TypeID:               typeID,
		Bitmask:              uint32(bitmask),
		Hash:                 append([]byte(nil), hash...),
		MaxFulfillmentLength: int(maxLength),
	}, nil
}

// URI returns the textual cc: form of the condition.
func (c *Condition) URI() string {
	return fmt.Sprintf("cc:%x:%x:%s:%d",
		c.TypeID,
		c.Bitmask,
		base64.RawURLEncoding.EncodeToString(c.Hash),
		c.MaxFulfillmentLength)
}

// Binary returns the binary form of the condition.
func (c *Condition) Binary() []byte {
	w := oer.NewWriter()
	c.writeBinary(w)
	return w.Bytes()
}

func (c *Condition) writeBinary(w oer.Writer) {
	w.WriteUInt16(c.TypeID)
	w.WriteVarUInt(uint64(c.Bitmask))
	w.WriteVarOctetString(c.Hash)
	w.WriteVarUInt(uint64(c.MaxFulfillmentLength))
}

// binarySize returns the encoded size of the condition without
// materializing it.
func (c *Condition) binarySize() int {
	p := oer.NewPredictor()
	c.writeBinary(p)
	return p.Size()
}

// Validate checks that the condition only requires what this
// implementation supports: a registered type, known feature bits, and a
// committed fulfillment size within the supported ceiling.
func (c *Condition) Validate() error {
	if _, ok := registry[c.TypeID]; !ok {
		return fmt.Errorf("%w: type %d", ErrUnsupportedType, c.TypeID)
	}
	if c.Bitmask&^SupportedBitmask != 0 {
		return fmt.Errorf("%w: bitmask %#x", ErrUnsupportedFeature, c.Bitmask)
	}
	if len(c.Hash) != conditionHashSize {
		return fmt.Errorf("%w: hash length %d", ErrInvalidArgument, len(c.Hash))
	}
	if c.MaxFulfillmentLength > MaxSafeFulfillmentSize {
		return fmt.Errorf("%w: max fulfillment length %d", ErrTooLarge, c.MaxFulfillmentLength)
	}
	return nil
}

// Equal reports whether two conditions have identical binary encodings.
func (c *Condition) Equal(other *Condition) bool {
	return other != nil && bytes.Equal(c.Binary(), other.Binary())
}
