package cryptoconditions

import (
	"bytes"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"fmt"
	"math/big"

	"github.com/LeJamon/go-crypto-conditions/internal/codec/oer"
	"github.com/LeJamon/go-crypto-conditions/internal/crypto/rsakey"
)

const (
	rsaMinModulusSize = 128
	rsaMaxModulusSize = 512

	// rsaPublicExponent is the only accepted public exponent.
	rsaPublicExponent = 65537

	// rsaSaltSize is the PSS salt length, fixed to the digest size.
	rsaSaltSize = 32
)

// RsaSha256 is the RSA-PSS signature type: SHA-256 message digest,
// MGF1-SHA-256, 32-byte salt, public exponent 65537. The condition
// commits to the public modulus; the signature always has the modulus
// length.
type RsaSha256 struct {
	modulus   []byte
	signature []byte
}

// NewRsaSha256 returns an empty RSA-SHA-256 fulfillment.
func NewRsaSha256() *RsaSha256 {
	return &RsaSha256{}
}

// SetPublicModulus sets the public modulus. The modulus must be 128 to
// 512 bytes with no leading zero byte; trailing zeros are accepted.
func (f *RsaSha256) SetPublicModulus(modulus []byte) error {
	if len(modulus) < rsaMinModulusSize || len(modulus) > rsaMaxModulusSize {
		return fmt.Errorf("%w: modulus length %d", ErrInvalidArgument, len(modulus))
	}
	if modulus[0] == 0 {
		return fmt.Errorf("%w: modulus has leading zero byte", ErrInvalidArgument)
	}
	f.modulus = append([]byte(nil), modulus...)
	return nil
}

// PublicModulus returns the public modulus.
func (f *RsaSha256) PublicModulus() []byte {
	return f.modulus
}

// SetSignature sets the signature, which must match the modulus length.
func (f *RsaSha256) SetSignature(signature []byte) error {
	if f.modulus == nil {
		return fmt.Errorf("%w: modulus not set", ErrMissingData)
	}
	if len(signature) != len(f.modulus) {
		return fmt.Errorf("%w: signature length %d does not match modulus length %d",
			ErrInvalidArgument, len(signature), len(f.modulus))
	}
	f.signature = append([]byte(nil), signature...)
	return nil
}

// Signature returns the signature.
func (f *RsaSha256) Signature() []byte {
	return f.signature
}

// Sign computes the RSA-PSS signature of message with the PEM-encoded
// private key. When no modulus is set it is taken from the key;
// otherwise the key must match the committed modulus. Keys with a public
// exponent other than 65537 are rejected.
func (f *RsaSha256) Sign(message, privateKeyPEM []byte) error {
	key, err := rsakey.ParsePrivateKeyPEM(privateKeyPEM)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidArgument, err)
	}
	if key.E != rsaPublicExponent {
		return fmt.Errorf("%w: public exponent %d", ErrInvalidArgument, key.E)
	}
	modulus := rsakey.Modulus(key)
	if f.modulus == nil {
		if err := f.SetPublicModulus(modulus); err != nil {
			return err
		}
	} else if !bytes.Equal(f.modulus, modulus) {
		return fmt.Errorf("%w: key does not match committed modulus", ErrInvalidArgument)
	}
	digest := sha256.Sum256(message)
	signature, err := rsa.SignPSS(rand.Reader, key, crypto.SHA256, digest[:],
		&rsa.PSSOptions{SaltLength: rsaSaltSize, Hash: crypto.SHA256})
	if err != nil {
		return fmt.Errorf("%w: rsa-pss: %s", ErrInvalidSignature, err)
	}
	// PSS output has the modulus length, padded with leading zeros if
	// the big-integer form is shorter.
	if len(signature) != len(f.modulus) {
		padded := make([]byte, len(f.modulus))
		copy(padded[len(padded)-len(signature):], signature)
		signature = padded
	}
	f.signature = signature
	return nil
}

// TypeID returns TypeRsaSha256.
func (f *RsaSha256) TypeID() uint16 {
	return TypeRsaSha256
}

// Bitmask returns the features needed to verify an RSA condition.
func (f *RsaSha256) Bitmask() uint32 {
	return FeatureSha256 | FeatureRsaPss
}

// Condition derives the RSA condition.
func (f *RsaSha256) Condition() (*Condition, error) {
	return deriveCondition(f)
}

// Validate verifies the RSA-PSS signature over the message.
func (f *RsaSha256) Validate(message []byte) error {
	if f.modulus == nil || f.signature == nil {
		return fmt.Errorf("%w: modulus or signature not set", ErrMissingData)
	}
	publicKey := &rsa.PublicKey{
		N: new(big.Int).SetBytes(f.modulus),
		E: rsaPublicExponent,
	}
	digest := sha256.Sum256(message)
	err := rsa.VerifyPSS(publicKey, crypto.SHA256, digest[:], f.signature,
		&rsa.PSSOptions{SaltLength: rsaSaltSize, Hash: crypto.SHA256})
	if err != nil {
		return fmt.Errorf("%w: rsa-pss verification failed", ErrInvalidSignature)
	}
	return nil
}

func (f *RsaSha256) fingerprint() ([]byte, error) {
	return sha256Fingerprint(f)
}

// writeHashPayload commits to the public modulus only; the signature is
// not part of the condition.
func (f *RsaSha256) writeHashPayload(w oer.Writer) error {
	if f.modulus == nil {
		return fmt.Errorf("%w: modulus not set", ErrMissingData)
	}
	w.WriteVarOctetString(f.modulus)
	return nil
}

func (f *RsaSha256) writePayload(w oer.Writer) error {
	if f.modulus == nil || f.signature == nil {
		return fmt.Errorf("%w: modulus or signature not set", ErrMissingData)
	}
	w.WriteVarOctetString(f.modulus)
	w.WriteVarOctetString(f.signature)
	return nil
}

func (f *RsaSha256) parsePayload(r *oer.Reader, depth int) error {
	modulus, err := r.ReadVarOctetString()
	if err != nil {
		return fmt.Errorf("%w: modulus: %s", ErrParse, err)
	}
	signature, err := r.ReadVarOctetString()
	if err != nil {
		return fmt.Errorf("%w: signature: %s", ErrParse, err)
	}
	if err := f.SetPublicModulus(modulus); err != nil {
		return err
	}
	return f.SetSignature(signature)
}

// maxFulfillmentLength predicts the payload explicitly as
// VarOctetString(modulus) plus VarOctetString of a signature of the
// modulus length.
func (f *RsaSha256) maxFulfillmentLength() (int, error) {
	if f.modulus == nil {
		return 0, fmt.Errorf("%w: modulus not set", ErrMissingData)
	}
	return oer.VarOctetStringSize(len(f.modulus)) +
		oer.VarOctetStringSize(len(f.modulus)), nil
}
