package cryptoconditions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreimageEmpty(t *testing.T) {
	f := NewPreimageSha256(nil)

	condition, err := f.Condition()
	require.NoError(t, err)
	assert.Equal(t, emptyPreimageConditionURI, condition.URI())

	uri, err := FulfillmentURI(f)
	require.NoError(t, err)
	assert.Equal(t, "cf:0:", uri)

	assert.NoError(t, f.Validate(nil))
	assert.NoError(t, f.Validate([]byte("message is ignored")))
}

func TestPreimageRoundTrip(t *testing.T) {
	f := NewPreimageSha256([]byte("secret preimage"))

	uri, err := FulfillmentURI(f)
	require.NoError(t, err)

	parsed, err := ParseFulfillmentURI(uri)
	require.NoError(t, err)
	reparsed, ok := parsed.(*PreimageSha256)
	require.True(t, ok)
	assert.Equal(t, f.Preimage(), reparsed.Preimage())

	reURI, err := FulfillmentURI(parsed)
	require.NoError(t, err)
	assert.Equal(t, uri, reURI)

	binary, err := FulfillmentBinary(f)
	require.NoError(t, err)
	fromBinary, err := ParseFulfillmentBinary(binary)
	require.NoError(t, err)
	fromBinaryURI, err := FulfillmentURI(fromBinary)
	require.NoError(t, err)
	assert.Equal(t, uri, fromBinaryURI)
}

func TestPreimageConditionCommitsToPreimage(t *testing.T) {
	a, err := NewPreimageSha256([]byte("a")).Condition()
	require.NoError(t, err)
	b, err := NewPreimageSha256([]byte("b")).Condition()
	require.NoError(t, err)
	assert.False(t, a.Equal(b))
}

func TestPreimageMaxFulfillmentLength(t *testing.T) {
	f := NewPreimageSha256([]byte("12345"))
	condition, err := f.Condition()
	require.NoError(t, err)
	assert.Equal(t, 5, condition.MaxFulfillmentLength)

	payload, err := FulfillmentPayload(f)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(payload), condition.MaxFulfillmentLength)
}
