package serialize

import "errors"

// Every failure is terminal for the call that produced it. There is no
// recovery or defaulting anywhere in the pipeline: the output is hashed and
// signed, so guessing is never acceptable.
var (
	// ErrMalformedInput means the input is not shaped like a transaction
	// (top level not an object, or a required sub-structure is missing).
	ErrMalformedInput = errors.New("malformed transaction input")
	// ErrTypeMismatch means a known field holds a value whose shape does not
	// match the field's declared type.
	ErrTypeMismatch = errors.New("value does not match field type")
	// ErrUnsupportedType means a field references a wire type with no encoder.
	ErrUnsupportedType = errors.New("unsupported field type")
	// ErrInvalidHashLength means a fixed-width hash decodes to the wrong
	// number of bytes.
	ErrInvalidHashLength = errors.New("invalid hash length")
	// ErrVariableLengthOverflow means a payload exceeds the maximum length
	// representable by the length-prefix scheme.
	ErrVariableLengthOverflow = errors.New("variable length field overflow")
	// ErrAmountOutOfRange means a native amount exceeds the drops ceiling.
	ErrAmountOutOfRange = errors.New("amount out of range")
	// ErrInvalidAmountFormat means an amount value cannot be parsed.
	ErrInvalidAmountFormat = errors.New("invalid amount format")
	// ErrAmountPrecisionLoss means an issued amount cannot be represented
	// without dropping significant digits or overflowing the exponent.
	ErrAmountPrecisionLoss = errors.New("amount precision loss")
	// ErrNestingTooDeep means object/array recursion exceeded the limit.
	ErrNestingTooDeep = errors.New("nesting too deep")
	// ErrUnknownTransactionType means a symbolic transaction type name has no
	// entry in the registry.
	ErrUnknownTransactionType = errors.New("unknown transaction type")
)
