package cryptoconditions

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strconv"

	"github.com/LeJamon/go-crypto-conditions/internal/codec/oer"
)

// Condition type IDs. The registry below is authoritative; a type ID
// outside it fails with ErrUnsupportedType.
const (
	TypePreimageSha256  uint16 = 0
	TypePrefixSha256    uint16 = 1
	TypeThresholdSha256 uint16 = 2
	TypeRsaSha256       uint16 = 3
	TypeEd25519         uint16 = 4
)

// maxNestingDepth bounds composite recursion (prefix/threshold) so
// adversarial nesting cannot blow the stack.
const maxNestingDepth = 1024

var fulfillmentURIPattern = regexp.MustCompile(
	`^cf:([1-9a-f][0-9a-f]*|0):([A-Za-z0-9_-]*)$`)

// Fulfillment is the proof side of a condition: one of the five
// registered variants, populated by setters, signing, or parsing.
type Fulfillment interface {
	// TypeID returns the registered type ID of the variant.
	TypeID() uint16

	// Bitmask returns the feature bits a verifier of the derived
	// condition must support, including subcondition features for
	// composites.
	Bitmask() uint32

	// Condition derives the condition this fulfillment satisfies.
	Condition() (*Condition, error)

	// Validate checks the fulfillment against a message. It returns nil
	// only on complete success.
	Validate(message []byte) error

	// fingerprint returns the condition hash: the SHA-256 of the
	// type-specific hash payload for most types, the bare public key
	// for Ed25519.
	fingerprint() ([]byte, error)

	// writePayload serializes the fulfillment payload.
	writePayload(w oer.Writer) error

	// parsePayload populates the fulfillment from a payload reader,
	// consuming it fully. depth tracks composite nesting.
	parsePayload(r *oer.Reader, depth int) error

	// maxFulfillmentLength computes the committed worst-case payload size.
	maxFulfillmentLength() (int, error)
}

// hashPayloadWriter is implemented by the types whose fingerprint is the
// SHA-256 of a hash payload.
type hashPayloadWriter interface {
	writeHashPayload(w oer.Writer) error
}

var registry = map[uint16]func() Fulfillment{
	TypePreimageSha256:  func() Fulfillment { return &PreimageSha256{} },
	TypePrefixSha256:    func() Fulfillment { return &PrefixSha256{} },
	TypeThresholdSha256: func() Fulfillment { return &ThresholdSha256{} },
	TypeRsaSha256:       func() Fulfillment { return &RsaSha256{} },
	TypeEd25519:         func() Fulfillment { return &Ed25519{} },
}

// newFulfillment returns an empty fulfillment of the given type.
func newFulfillment(typeID uint16) (Fulfillment, error) {
	ctor, ok := registry[typeID]
	if !ok {
		return nil, fmt.Errorf("%w: type %d", ErrUnsupportedType, typeID)
	}
	return ctor(), nil
}

// sha256Fingerprint hashes the type-specific hash payload. It is the
// default fingerprint for every type except Ed25519, which commits to
// the public key directly.
func sha256Fingerprint(f hashPayloadWriter) ([]byte, error) {
	h := oer.NewHasher()
	if err := f.writeHashPayload(h); err != nil {
		return nil, err
	}
	return h.Digest(), nil
}

// deriveCondition assembles the condition tuple from a populated
// fulfillment.
func deriveCondition(f Fulfillment) (*Condition, error) {
	hash, err := f.fingerprint()
	if err != nil {
		return nil, err
	}
	maxLength, err := f.maxFulfillmentLength()
	if err != nil {
		return nil, err
	}
	return &Condition{
		TypeID:               f.TypeID(),
		Bitmask:              f.Bitmask(),
		Hash:                 hash,
		MaxFulfillmentLength: maxLength,
	}, nil
}

// FulfillmentPayload serializes the type-specific payload: the bytes a
// cf: URI encodes.
func FulfillmentPayload(f Fulfillment) ([]byte, error) {
	w := oer.NewWriter()
	if err := f.writePayload(w); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// FulfillmentBinary serializes the full binary form:
// uint16 type_id | VarOctetString(payload).
func FulfillmentBinary(f Fulfillment) ([]byte, error) {
	payload, err := FulfillmentPayload(f)
	if err != nil {
		return nil, err
	}
	w := oer.NewWriter()
	w.WriteUInt16(f.TypeID())
	w.WriteVarOctetString(payload)
	return w.Bytes(), nil
}

// FulfillmentURI serializes the textual cf: form.
func FulfillmentURI(f Fulfillment) (string, error) {
	payload, err := FulfillmentPayload(f)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("cf:%x:%s",
		f.TypeID(), base64.RawURLEncoding.EncodeToString(payload)), nil
}

// ParseFulfillmentURI parses the textual cf: form of a fulfillment.
func ParseFulfillmentURI(uri string) (Fulfillment, error) {
	m := fulfillmentURIPattern.FindStringSubmatch(uri)
	if m == nil {
		return nil, fmt.Errorf("%w: not a valid fulfillment URI", ErrParse)
	}
	typeID, err := strconv.ParseUint(m[1], 16, 16)
	if err != nil {
		return nil, fmt.Errorf("%w: fulfillment type: %s", ErrParse, err)
	}
	payload, err := base64.RawURLEncoding.DecodeString(m[2])
	if err != nil {
		return nil, fmt.Errorf("%w: fulfillment payload: %s", ErrParse, err)
	}
	return parsePayloadBytes(uint16(typeID), payload, 0)
}

// ParseFulfillmentBinary parses the binary form of a fulfillment and
// requires the input to be fully consumed.
func ParseFulfillmentBinary(b []byte) (Fulfillment, error) {
	r := oer.NewReader(b)
	f, err := readFulfillment(r, 0)
	if err != nil {
		return nil, err
	}
	if r.HasMore() {
		return nil, fmt.Errorf("%w: trailing bytes after fulfillment", ErrParse)
	}
	return f, nil
}

// readFulfillment parses one binary fulfillment from the reader, leaving
// any following bytes unread.
func readFulfillment(r *oer.Reader, depth int) (Fulfillment, error) {
	typeID, err := r.ReadUInt16()
	if err != nil {
		return nil, fmt.Errorf("%w: fulfillment type: %s", ErrParse, err)
	}
	payload, err := r.ReadVarOctetString()
	if err != nil {
		return nil, fmt.Errorf("%w: fulfillment payload: %s", ErrParse, err)
	}
	return parsePayloadBytes(typeID, payload, depth)
}

// parsePayloadBytes dispatches to the type's payload parser and requires
// the payload to be fully consumed.
func parsePayloadBytes(typeID uint16, payload []byte, depth int) (Fulfillment, error) {
	if depth >= maxNestingDepth {
		return nil, fmt.Errorf("%w: nesting depth %d", ErrTooLarge, depth)
	}
	f, err := newFulfillment(typeID)
	if err != nil {
		return nil, err
	}
	r := oer.NewReader(payload)
	if err := f.parsePayload(r, depth); err != nil {
		return nil, err
	}
	if r.HasMore() {
		return nil, fmt.Errorf("%w: trailing bytes in fulfillment payload", ErrParse)
	}
	return f, nil
}
