package cryptoconditions

import (
	"fmt"

	"github.com/LeJamon/go-crypto-conditions/internal/codec/oer"
)

// PrefixSha256 wraps another fulfillment and prepends a fixed prefix to
// the message before delegating validation to it. The condition commits
// to both the prefix and the subcondition.
type PrefixSha256 struct {
	prefix         []byte
	subfulfillment Fulfillment
	// subcondition stands in for the subfulfillment on the condition
	// side, letting holders of only the subcondition build the wrapper
	// condition.
	subcondition *Condition
}

// NewPrefixSha256 returns a prefix wrapper around sub.
func NewPrefixSha256(prefix []byte, sub Fulfillment) *PrefixSha256 {
	f := &PrefixSha256{}
	f.SetPrefix(prefix)
	f.SetSubfulfillment(sub)
	return f
}

// SetPrefix sets the bytes prepended to every message.
func (f *PrefixSha256) SetPrefix(prefix []byte) {
	if prefix == nil {
		prefix = []byte{}
	}
	f.prefix = append([]byte(nil), prefix...)
}

// Prefix returns the message prefix.
func (f *PrefixSha256) Prefix() []byte {
	return f.prefix
}

// SetSubfulfillment sets the wrapped fulfillment.
func (f *PrefixSha256) SetSubfulfillment(sub Fulfillment) {
	f.subfulfillment = sub
}

// Subfulfillment returns the wrapped fulfillment.
func (f *PrefixSha256) Subfulfillment() Fulfillment {
	return f.subfulfillment
}

// SetSubcondition sets the wrapped condition for condition-side use when
// no subfulfillment is available.
func (f *PrefixSha256) SetSubcondition(sub *Condition) {
	f.subcondition = sub
}

// subConditionValue resolves the wrapped condition, deriving it from the
// subfulfillment when one is present.
func (f *PrefixSha256) subConditionValue() (*Condition, error) {
	if f.subfulfillment != nil {
		return f.subfulfillment.Condition()
	}
	if f.subcondition != nil {
		return f.subcondition, nil
	}
	return nil, fmt.Errorf("%w: subfulfillment not set", ErrMissingData)
}

// TypeID returns TypePrefixSha256.
func (f *PrefixSha256) TypeID() uint16 {
	return TypePrefixSha256
}

// Bitmask returns the prefix features plus everything the wrapped
// fulfillment requires.
func (f *PrefixSha256) Bitmask() uint32 {
	mask := FeatureSha256 | FeaturePrefix
	if f.subfulfillment != nil {
		mask |= f.subfulfillment.Bitmask()
	} else if f.subcondition != nil {
		mask |= f.subcondition.Bitmask
	}
	return mask
}

// Condition derives the prefix condition.
func (f *PrefixSha256) Condition() (*Condition, error) {
	return deriveCondition(f)
}

// Validate prepends the prefix to the message and delegates to the
// wrapped fulfillment.
func (f *PrefixSha256) Validate(message []byte) error {
	if f.prefix == nil || f.subfulfillment == nil {
		return fmt.Errorf("%w: prefix or subfulfillment not set", ErrMissingData)
	}
	effective := make([]byte, 0, len(f.prefix)+len(message))
	effective = append(effective, f.prefix...)
	effective = append(effective, message...)
	return f.subfulfillment.Validate(effective)
}

func (f *PrefixSha256) fingerprint() ([]byte, error) {
	return sha256Fingerprint(f)
}

// writeHashPayload commits to the prefix and the subcondition's binary
// form.
func (f *PrefixSha256) writeHashPayload(w oer.Writer) error {
	if f.prefix == nil {
		return fmt.Errorf("%w: prefix not set", ErrMissingData)
	}
	sub, err := f.subConditionValue()
	if err != nil {
		return err
	}
	w.WriteVarOctetString(f.prefix)
	sub.writeBinary(w)
	return nil
}

func (f *PrefixSha256) writePayload(w oer.Writer) error {
	if f.prefix == nil || f.subfulfillment == nil {
		return fmt.Errorf("%w: prefix or subfulfillment not set", ErrMissingData)
	}
	sub, err := FulfillmentBinary(f.subfulfillment)
	if err != nil {
		return err
	}
	w.WriteVarOctetString(f.prefix)
	w.Write(sub)
	return nil
}

func (f *PrefixSha256) parsePayload(r *oer.Reader, depth int) error {
	prefix, err := r.ReadVarOctetString()
	if err != nil {
		return fmt.Errorf("%w: prefix: %s", ErrParse, err)
	}
	sub, err := readFulfillment(r, depth+1)
	if err != nil {
		return err
	}
	f.SetPrefix(prefix)
	f.subfulfillment = sub
	return nil
}

// maxFulfillmentLength is the prefix framing plus the wrapped
// fulfillment's committed bound. The subfulfillment's own binary framing
// is not added; this reproduces the committed format.
func (f *PrefixSha256) maxFulfillmentLength() (int, error) {
	if f.prefix == nil {
		return 0, fmt.Errorf("%w: prefix not set", ErrMissingData)
	}
	var subMax int
	if f.subfulfillment != nil {
		var err error
		subMax, err = f.subfulfillment.maxFulfillmentLength()
		if err != nil {
			return 0, err
		}
	} else if f.subcondition != nil {
		subMax = f.subcondition.MaxFulfillmentLength
	} else {
		return 0, fmt.Errorf("%w: subfulfillment not set", ErrMissingData)
	}
	p := oer.NewPredictor()
	p.WriteVarOctetString(f.prefix)
	p.Skip(subMax)
	return p.Size(), nil
}
