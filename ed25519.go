package cryptoconditions

import (
	"crypto/ed25519"
	"fmt"

	"github.com/LeJamon/go-crypto-conditions/internal/codec/oer"
)

const (
	ed25519PublicKeySize = 32
	ed25519SignatureSize = 64

	// ed25519MaxFulfillmentLength is fixed: 32 public key bytes and 64
	// signature bytes, both written without length prefixes.
	ed25519MaxFulfillmentLength = ed25519PublicKeySize + ed25519SignatureSize
)

// Ed25519 is the pure Ed25519 signature type. The condition's hash field
// is the 32-byte public key itself rather than a SHA-256 digest: the key
// is already a short binding commitment.
type Ed25519 struct {
	publicKey []byte
	signature []byte
}

// NewEd25519 returns a fulfillment holding a public key and signature.
func NewEd25519(publicKey, signature []byte) (*Ed25519, error) {
	f := &Ed25519{}
	if err := f.SetPublicKey(publicKey); err != nil {
		return nil, err
	}
	if err := f.SetSignature(signature); err != nil {
		return nil, err
	}
	return f, nil
}

// SetPublicKey sets the 32-byte public key.
func (f *Ed25519) SetPublicKey(publicKey []byte) error {
	if len(publicKey) != ed25519PublicKeySize {
		return fmt.Errorf("%w: public key length %d", ErrInvalidArgument, len(publicKey))
	}
	f.publicKey = append([]byte(nil), publicKey...)
	return nil
}

// PublicKey returns the public key.
func (f *Ed25519) PublicKey() []byte {
	return f.publicKey
}

// SetSignature sets the 64-byte signature.
func (f *Ed25519) SetSignature(signature []byte) error {
	if len(signature) != ed25519SignatureSize {
		return fmt.Errorf("%w: signature length %d", ErrInvalidArgument, len(signature))
	}
	f.signature = append([]byte(nil), signature...)
	return nil
}

// Signature returns the signature.
func (f *Ed25519) Signature() []byte {
	return f.signature
}

// Sign computes the pure Ed25519 signature of message with the 32-byte
// private seed and stores the key pair's public half alongside it.
func (f *Ed25519) Sign(message, seed []byte) error {
	if len(seed) != ed25519.SeedSize {
		return fmt.Errorf("%w: seed length %d", ErrInvalidArgument, len(seed))
	}
	privateKey := ed25519.NewKeyFromSeed(seed)
	f.publicKey = append([]byte(nil), privateKey.Public().(ed25519.PublicKey)...)
	f.signature = ed25519.Sign(privateKey, message)
	return nil
}

// TypeID returns TypeEd25519.
func (f *Ed25519) TypeID() uint16 {
	return TypeEd25519
}

// Bitmask returns the features needed to verify an Ed25519 condition.
func (f *Ed25519) Bitmask() uint32 {
	return FeatureEd25519
}

// Condition derives the Ed25519 condition.
func (f *Ed25519) Condition() (*Condition, error) {
	return deriveCondition(f)
}

// Validate verifies the signature over the message.
func (f *Ed25519) Validate(message []byte) error {
	if f.publicKey == nil || f.signature == nil {
		return fmt.Errorf("%w: public key or signature not set", ErrMissingData)
	}
	if !ed25519.Verify(ed25519.PublicKey(f.publicKey), message, f.signature) {
		return fmt.Errorf("%w: ed25519 verification failed", ErrInvalidSignature)
	}
	return nil
}

// fingerprint returns the public key: the condition commits to the key
// directly, with no hash indirection.
func (f *Ed25519) fingerprint() ([]byte, error) {
	if f.publicKey == nil {
		return nil, fmt.Errorf("%w: public key not set", ErrMissingData)
	}
	return append([]byte(nil), f.publicKey...), nil
}

func (f *Ed25519) writePayload(w oer.Writer) error {
	if f.publicKey == nil || f.signature == nil {
		return fmt.Errorf("%w: public key or signature not set", ErrMissingData)
	}
	if err := w.WriteOctetString(f.publicKey, ed25519PublicKeySize); err != nil {
		return fmt.Errorf("%w: public key: %s", ErrInvalidArgument, err)
	}
	if err := w.WriteOctetString(f.signature, ed25519SignatureSize); err != nil {
		return fmt.Errorf("%w: signature: %s", ErrInvalidArgument, err)
	}
	return nil
}

func (f *Ed25519) parsePayload(r *oer.Reader, depth int) error {
	publicKey, err := r.ReadOctetString(ed25519PublicKeySize)
	if err != nil {
		return fmt.Errorf("%w: public key: %s", ErrParse, err)
	}
	signature, err := r.ReadOctetString(ed25519SignatureSize)
	if err != nil {
		return fmt.Errorf("%w: signature: %s", ErrParse, err)
	}
	f.publicKey = append([]byte(nil), publicKey...)
	f.signature = append([]byte(nil), signature...)
	return nil
}

func (f *Ed25519) maxFulfillmentLength() (int, error) {
	return ed25519MaxFulfillmentLength, nil
}
