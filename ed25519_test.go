package cryptoconditions

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	ed25519ZeroKeyConditionURI = "cc:4:20:O2onvM62pC1io6jQKm8Nc2UyFXcd4kOmOsBIoYtZ2ik:96"
	ed25519ZeroKeyFulfillment  = "cf:4:O2onvM62pC1io6jQKm8Nc2UyFXcd4kOmOsBIoYtZ2imPiVs8r-LJUGA50OKmY4JWgARnT-jSN3hQkuQNaq9IPk_GAWhwXzHxAVlhOM4hqjV8DTKgZPQj3D7kqjq_U_gD"
	ed25519OnesKeyConditionURI = "cc:4:20:dqFZIESm5PURJlvKc6YE2QsFKdHfYCvjChmpJXZg0fU:96"
)

func TestEd25519ZeroSeedEmptyMessage(t *testing.T) {
	f := &Ed25519{}
	require.NoError(t, f.Sign(nil, make([]byte, 32)))

	condition, err := f.Condition()
	require.NoError(t, err)
	assert.Equal(t, ed25519ZeroKeyConditionURI, condition.URI())

	uri, err := FulfillmentURI(f)
	require.NoError(t, err)
	assert.Equal(t, ed25519ZeroKeyFulfillment, uri)

	assert.NoError(t, f.Validate(nil))
}

func TestEd25519AllOnesSeed(t *testing.T) {
	f := &Ed25519{}
	require.NoError(t, f.Sign([]byte{0x61, 0x62, 0x63}, bytes.Repeat([]byte{0xff}, 32)))

	condition, err := f.Condition()
	require.NoError(t, err)
	assert.Equal(t, ed25519OnesKeyConditionURI, condition.URI())

	assert.NoError(t, f.Validate([]byte("abc")))
	assert.ErrorIs(t, f.Validate([]byte("abd")), ErrInvalidSignature)
}

func TestEd25519ConditionHashIsPublicKey(t *testing.T) {
	f := &Ed25519{}
	require.NoError(t, f.Sign([]byte("msg"), make([]byte, 32)))

	condition, err := f.Condition()
	require.NoError(t, err)
	assert.Equal(t, f.PublicKey(), condition.Hash)
	assert.Equal(t, 96, condition.MaxFulfillmentLength)
}

func TestEd25519RoundTrip(t *testing.T) {
	parsed, err := ParseFulfillmentURI(ed25519ZeroKeyFulfillment)
	require.NoError(t, err)

	uri, err := FulfillmentURI(parsed)
	require.NoError(t, err)
	assert.Equal(t, ed25519ZeroKeyFulfillment, uri)

	binary, err := FulfillmentBinary(parsed)
	require.NoError(t, err)
	fromBinary, err := ParseFulfillmentBinary(binary)
	require.NoError(t, err)
	fromBinaryURI, err := FulfillmentURI(fromBinary)
	require.NoError(t, err)
	assert.Equal(t, ed25519ZeroKeyFulfillment, fromBinaryURI)
}

func TestEd25519Tampering(t *testing.T) {
	f := &Ed25519{}
	require.NoError(t, f.Sign([]byte("payment"), make([]byte, 32)))

	t.Run("SignatureBitFlip", func(t *testing.T) {
		tampered := &Ed25519{}
		require.NoError(t, tampered.SetPublicKey(f.PublicKey()))
		signature := append([]byte(nil), f.Signature()...)
		signature[0] ^= 0x01
		require.NoError(t, tampered.SetSignature(signature))
		assert.ErrorIs(t, tampered.Validate([]byte("payment")), ErrInvalidSignature)
	})
	t.Run("PublicKeyBitFlip", func(t *testing.T) {
		tampered := &Ed25519{}
		publicKey := append([]byte(nil), f.PublicKey()...)
		publicKey[5] ^= 0x80
		require.NoError(t, tampered.SetPublicKey(publicKey))
		require.NoError(t, tampered.SetSignature(f.Signature()))
		assert.ErrorIs(t, tampered.Validate([]byte("payment")), ErrInvalidSignature)
	})
	t.Run("MessageBitFlip", func(t *testing.T) {
		assert.ErrorIs(t, f.Validate([]byte("paymenu")), ErrInvalidSignature)
	})
}

func TestEd25519InvalidArguments(t *testing.T) {
	f := &Ed25519{}
	assert.ErrorIs(t, f.Sign(nil, make([]byte, 31)), ErrInvalidArgument)
	assert.ErrorIs(t, f.SetPublicKey(make([]byte, 33)), ErrInvalidArgument)
	assert.ErrorIs(t, f.SetSignature(make([]byte, 63)), ErrInvalidArgument)
	assert.ErrorIs(t, f.Validate(nil), ErrMissingData)
}

func TestEd25519TruncatedPayload(t *testing.T) {
	_, err := ParseFulfillmentURI("cf:4:O2onvM62pC1io6jQKm8Nc2UyFXcd4kOmOsBIoYtZ2ik")
	assert.ErrorIs(t, err, ErrParse)
}
