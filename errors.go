package cryptoconditions

import "errors"

var (
	// ErrParse indicates a malformed URI, invalid base64 or truncated binary.
	ErrParse = errors.New("parse error")

	// ErrUnsupportedType indicates a type ID outside the registry.
	ErrUnsupportedType = errors.New("unsupported condition type")

	// ErrUnsupportedFeature indicates a feature bit outside the supported mask.
	ErrUnsupportedFeature = errors.New("unsupported feature")

	// ErrMissingData indicates signing or serialization with an unset field.
	ErrMissingData = errors.New("required data missing")

	// ErrInvalidArgument indicates a structurally invalid input such as a
	// wrong-length key or an out-of-range modulus.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrThresholdNotMet indicates too few weighted subfulfillments.
	ErrThresholdNotMet = errors.New("threshold not met")

	// ErrInvalidSignature indicates a failed cryptographic verification.
	ErrInvalidSignature = errors.New("invalid signature")

	// ErrConditionMismatch indicates that a fulfillment does not derive the
	// condition it was checked against.
	ErrConditionMismatch = errors.New("fulfillment does not match condition")

	// ErrTooLarge indicates a length beyond a supported or committed bound.
	ErrTooLarge = errors.New("length exceeds supported bound")
)
