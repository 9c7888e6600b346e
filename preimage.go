package cryptoconditions

import (
	"fmt"

	"github.com/LeJamon/go-crypto-conditions/internal/codec/oer"
)

// PreimageSha256 is the hashlock type: the condition commits to the
// SHA-256 of a secret preimage and is satisfied by revealing it. The
// message is ignored.
type PreimageSha256 struct {
	preimage []byte
}

// NewPreimageSha256 returns a fulfillment holding the given preimage.
// An empty preimage is valid; a nil preimage is stored as empty.
func NewPreimageSha256(preimage []byte) *PreimageSha256 {
	f := &PreimageSha256{}
	f.SetPreimage(preimage)
	return f
}

// SetPreimage sets the secret preimage.
func (f *PreimageSha256) SetPreimage(preimage []byte) {
	if preimage == nil {
		preimage = []byte{}
	}
	f.preimage = append([]byte(nil), preimage...)
}

// Preimage returns the secret preimage.
func (f *PreimageSha256) Preimage() []byte {
	return f.preimage
}

// TypeID returns TypePreimageSha256.
func (f *PreimageSha256) TypeID() uint16 {
	return TypePreimageSha256
}

// Bitmask returns the features needed to verify a preimage condition.
func (f *PreimageSha256) Bitmask() uint32 {
	return FeatureSha256 | FeaturePreimage
}

// Condition derives the hashlock condition.
func (f *PreimageSha256) Condition() (*Condition, error) {
	return deriveCondition(f)
}

// Validate always succeeds once a preimage is present; matching the
// preimage against the condition hash is the caller's comparison of the
// derived condition.
func (f *PreimageSha256) Validate(message []byte) error {
	if f.preimage == nil {
		return fmt.Errorf("%w: preimage not set", ErrMissingData)
	}
	return nil
}

func (f *PreimageSha256) fingerprint() ([]byte, error) {
	return sha256Fingerprint(f)
}

// writeHashPayload writes the preimage verbatim: the condition hash is
// SHA-256 of the bare preimage.
func (f *PreimageSha256) writeHashPayload(w oer.Writer) error {
	if f.preimage == nil {
		return fmt.Errorf("%w: preimage not set", ErrMissingData)
	}
	w.Write(f.preimage)
	return nil
}

// writePayload writes the preimage verbatim; the binary framing and the
// URI add their own length information.
func (f *PreimageSha256) writePayload(w oer.Writer) error {
	if f.preimage == nil {
		return fmt.Errorf("%w: preimage not set", ErrMissingData)
	}
	w.Write(f.preimage)
	return nil
}

func (f *PreimageSha256) parsePayload(r *oer.Reader, depth int) error {
	preimage, err := r.ReadOctetString(r.Remaining())
	if err != nil {
		return fmt.Errorf("%w: preimage: %s", ErrParse, err)
	}
	f.SetPreimage(preimage)
	return nil
}

func (f *PreimageSha256) maxFulfillmentLength() (int, error) {
	if f.preimage == nil {
		return 0, fmt.Errorf("%w: preimage not set", ErrMissingData)
	}
	p := oer.NewPredictor()
	p.Write(f.preimage)
	return p.Size(), nil
}
