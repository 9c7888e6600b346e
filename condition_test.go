package cryptoconditions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const emptyPreimageConditionURI = "cc:0:3:47DEQpj8HBSa-_TImW-5JCeuQeRkm5NMpJWZG3hSuFU:0"

func TestParseConditionURI(t *testing.T) {
	condition, err := ParseConditionURI(emptyPreimageConditionURI)
	require.NoError(t, err)
	assert.Equal(t, TypePreimageSha256, condition.TypeID)
	assert.Equal(t, FeatureSha256|FeaturePreimage, condition.Bitmask)
	assert.Len(t, condition.Hash, 32)
	assert.Equal(t, 0, condition.MaxFulfillmentLength)
	assert.NoError(t, condition.Validate())
	assert.Equal(t, emptyPreimageConditionURI, condition.URI())
}

func TestConditionBinaryRoundTrip(t *testing.T) {
	condition, err := ParseConditionURI(emptyPreimageConditionURI)
	require.NoError(t, err)

	parsed, err := ParseConditionBinary(condition.Binary())
	require.NoError(t, err)
	assert.True(t, condition.Equal(parsed))
	assert.Equal(t, emptyPreimageConditionURI, parsed.URI())
}

func TestConditionBinaryTrailingBytes(t *testing.T) {
	condition, err := ParseConditionURI(emptyPreimageConditionURI)
	require.NoError(t, err)

	_, err = ParseConditionBinary(append(condition.Binary(), 0x00))
	assert.ErrorIs(t, err, ErrParse)
}

func TestParseConditionURIMalformed(t *testing.T) {
	tests := []struct {
		name string
		uri  string
	}{
		{"WrongScheme", "cf:0:3:47DEQpj8HBSa-_TImW-5JCeuQeRkm5NMpJWZG3hSuFU:0"},
		{"MissingField", "cc:0:3:47DEQpj8HBSa-_TImW-5JCeuQeRkm5NMpJWZG3hSuFU"},
		{"UppercaseHex", "cc:0:A:47DEQpj8HBSa-_TImW-5JCeuQeRkm5NMpJWZG3hSuFU:0"},
		{"LeadingZeroHex", "cc:00:3:47DEQpj8HBSa-_TImW-5JCeuQeRkm5NMpJWZG3hSuFU:0"},
		{"LeadingZeroDecimal", "cc:0:3:47DEQpj8HBSa-_TImW-5JCeuQeRkm5NMpJWZG3hSuFU:01"},
		{"Base64Padding", "cc:0:3:47DEQpj8HBSa-_TImW-5JCeuQeRkm5NMpJWZG3hSuFU=:0"},
		{"Base64Plus", "cc:0:3:47DEQpj8HBSa+_TImW-5JCeuQeRkm5NMpJWZG3hSuFU:0"},
		{"Empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConditionURI(tt.uri)
			assert.ErrorIs(t, err, ErrParse)
		})
	}
}

func TestConditionValidate(t *testing.T) {
	base, err := ParseConditionURI(emptyPreimageConditionURI)
	require.NoError(t, err)

	t.Run("UnsupportedType", func(t *testing.T) {
		condition := *base
		condition.TypeID = 9
		assert.ErrorIs(t, condition.Validate(), ErrUnsupportedType)
	})
	t.Run("UnsupportedFeature", func(t *testing.T) {
		condition := *base
		condition.Bitmask = 0x40
		assert.ErrorIs(t, condition.Validate(), ErrUnsupportedFeature)
	})
	t.Run("MaxLengthTooLarge", func(t *testing.T) {
		condition := *base
		condition.MaxFulfillmentLength = MaxSafeFulfillmentSize + 1
		assert.ErrorIs(t, condition.Validate(), ErrTooLarge)
	})
	t.Run("WrongHashLength", func(t *testing.T) {
		condition := *base
		condition.Hash = condition.Hash[:16]
		assert.ErrorIs(t, condition.Validate(), ErrInvalidArgument)
	})
}
