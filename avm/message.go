package avm

import (
	"fmt"

	"github.com/avm-project/machine/avm/value"
)

// Message is one token-carrying communication between machine instances.
type Message struct {
	Data        value.Value
	Destination value.U256
	Currency    value.U256
	Token       TokenType
}

// ToValue renders the message into the generic value representation: a
// 4-element tuple of (data, destination, currency, token-as-integer). The
// element order is a wire contract.
func (m Message) ToValue() value.Value {
	return value.TupleValue(
		m.Data,
		value.IntValue(m.Destination),
		value.IntValue(m.Currency),
		value.IntValue(m.Token.Value()),
	)
}

// MessageFromValue decodes a message from the generic value representation.
// It returns false if the value is not a 4-element tuple or if elements 1-3
// are not integers. The token identifier is recovered through the
// truncating integer-form conversion.
func MessageFromValue(val value.Value) (Message, bool) {
	elements, ok := val.AsTuple()
	if !ok || len(elements) != 4 {
		return Message{}, false
	}
	destination, ok := elements[1].AsInt()
	if !ok {
		return Message{}, false
	}
	currency, ok := elements[2].AsInt()
	if !ok {
		return Message{}, false
	}
	tokenValue, ok := elements[3].AsInt()
	if !ok {
		return Message{}, false
	}
	return Message{
		Data:        elements[0],
		Destination: destination,
		Currency:    currency,
		Token:       TokenTypeFromValue(tokenValue),
	}, true
}

func (m Message) String() string {
	return fmt.Sprintf("Message(%v, %v, %v, %x)", m.Data, m.Destination, m.Currency, m.Token[:])
}
