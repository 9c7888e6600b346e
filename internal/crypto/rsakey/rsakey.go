// Package rsakey extracts RSA key material from PEM-encoded private
// keys. The only behavior the condition types depend on is "give me the
// key, and through it the modulus bytes"; both the PKCS#1 and PKCS#8
// containers are accepted.
package rsakey

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
)

var (
	// ErrNoPEMBlock indicates input without a decodable PEM block.
	ErrNoPEMBlock = errors.New("no PEM block found")

	// ErrNotRSA indicates a PEM block holding a non-RSA key.
	ErrNotRSA = errors.New("not an RSA private key")
)

// ParsePrivateKeyPEM decodes the first PEM block of b and parses it as
// an RSA private key in either PKCS#1 or PKCS#8 form.
func ParsePrivateKeyPEM(b []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(b)
	if block == nil {
		return nil, ErrNoPEMBlock
	}
	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}
	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, ErrNotRSA
	}
	return key, nil
}

// Modulus returns the minimum-length big-endian bytes of the key's
// public modulus.
func Modulus(key *rsa.PrivateKey) []byte {
	return key.N.Bytes()
}
