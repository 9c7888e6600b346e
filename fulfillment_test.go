package cryptoconditions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeJamon/go-crypto-conditions/internal/codec/oer"
)

func TestParseFulfillmentURIMalformed(t *testing.T) {
	tests := []struct {
		name string
		uri  string
	}{
		{"WrongScheme", "cc:0:"},
		{"MissingPayloadField", "cf:0"},
		{"UppercaseHex", "cf:A:"},
		{"LeadingZeroHex", "cf:00:"},
		{"Base64Padding", "cf:0:AA=="},
		{"Empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFulfillmentURI(tt.uri)
			assert.ErrorIs(t, err, ErrParse)
		})
	}
}

func TestParseFulfillmentUnsupportedType(t *testing.T) {
	_, err := ParseFulfillmentURI("cf:9:")
	assert.ErrorIs(t, err, ErrUnsupportedType)

	// Binary form: type 9, empty payload.
	_, err = ParseFulfillmentBinary([]byte{0x00, 0x09, 0x00})
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestParseFulfillmentBinaryTrailingBytes(t *testing.T) {
	f := NewPreimageSha256([]byte("x"))
	binary, err := FulfillmentBinary(f)
	require.NoError(t, err)

	_, err = ParseFulfillmentBinary(append(binary, 0x00))
	assert.ErrorIs(t, err, ErrParse)
}

// nestedPrefixBinary wraps an empty preimage in depth layers of prefix
// fulfillments with empty prefixes.
func nestedPrefixBinary(t *testing.T, depth int) []byte {
	t.Helper()
	inner, err := FulfillmentBinary(NewPreimageSha256(nil))
	require.NoError(t, err)
	for i := 0; i < depth; i++ {
		w := oer.NewWriter()
		w.WriteUInt16(TypePrefixSha256)
		pw := oer.NewWriter()
		pw.WriteVarOctetString(nil)
		pw.Write(inner)
		w.WriteVarOctetString(pw.Bytes())
		inner = w.Bytes()
	}
	return inner
}

func TestNestingDepthCap(t *testing.T) {
	t.Run("DeepButLegal", func(t *testing.T) {
		f, err := ParseFulfillmentBinary(nestedPrefixBinary(t, 1023))
		require.NoError(t, err)
		assert.NoError(t, f.Validate(nil))
	})
	t.Run("BeyondCap", func(t *testing.T) {
		_, err := ParseFulfillmentBinary(nestedPrefixBinary(t, 1024))
		assert.ErrorIs(t, err, ErrTooLarge)
	})
}

func TestRegistryCoversAllTypes(t *testing.T) {
	for _, typeID := range []uint16{
		TypePreimageSha256, TypePrefixSha256, TypeThresholdSha256,
		TypeRsaSha256, TypeEd25519,
	} {
		f, err := newFulfillment(typeID)
		require.NoError(t, err)
		assert.Equal(t, typeID, f.TypeID())
	}
}
