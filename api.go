package cryptoconditions

import (
	"bytes"
	"fmt"
)

// ValidateCondition parses a cc: URI and checks that this implementation
// can verify fulfillments for it.
func ValidateCondition(conditionURI string) error {
	condition, err := ParseConditionURI(conditionURI)
	if err != nil {
		return err
	}
	return condition.Validate()
}

// ValidateFulfillment parses a cf: and a cc: URI, requires the
// fulfillment to derive exactly the given condition, checks the
// fulfillment against the condition's committed size bound, and
// validates it against the message.
func ValidateFulfillment(fulfillmentURI, conditionURI string, message []byte) error {
	fulfillment, err := ParseFulfillmentURI(fulfillmentURI)
	if err != nil {
		return err
	}
	condition, err := ParseConditionURI(conditionURI)
	if err != nil {
		return err
	}
	derived, err := fulfillment.Condition()
	if err != nil {
		return err
	}
	if !bytes.Equal(derived.Binary(), condition.Binary()) {
		return fmt.Errorf("%w: derived %s", ErrConditionMismatch, derived.URI())
	}
	payload, err := FulfillmentPayload(fulfillment)
	if err != nil {
		return err
	}
	if len(payload) > condition.MaxFulfillmentLength {
		return fmt.Errorf("%w: fulfillment length %d exceeds committed %d",
			ErrTooLarge, len(payload), condition.MaxFulfillmentLength)
	}
	return fulfillment.Validate(message)
}

// FulfillmentToCondition parses a cf: URI and returns the cc: URI of the
// condition it satisfies.
func FulfillmentToCondition(fulfillmentURI string) (string, error) {
	fulfillment, err := ParseFulfillmentURI(fulfillmentURI)
	if err != nil {
		return "", err
	}
	condition, err := fulfillment.Condition()
	if err != nil {
		return "", err
	}
	return condition.URI(), nil
}
