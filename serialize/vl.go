package serialize

import "fmt"

// Length-prefix thresholds. Protocol constants, not tunable.
const (
	maxLengthOneByte    = 192
	maxLengthTwoBytes   = 12480
	maxLengthThreeBytes = 918744
)

// EncodeVariableLength returns the 1-3 byte length prefix for a payload of n
// bytes. Lengths up to 192 take one byte, up to 12480 two, up to 918744
// three; anything larger is not representable.
func EncodeVariableLength(n int) ([]byte, error) {
	switch {
	case n < 0:
		return nil, fmt.Errorf("%w: negative length %d", ErrVariableLengthOverflow, n)
	case n <= maxLengthOneByte:
		return []byte{byte(n)}, nil
	case n <= maxLengthTwoBytes:
		n -= maxLengthOneByte + 1
		return []byte{byte(193 + n>>8), byte(n & 0xff)}, nil
	case n <= maxLengthThreeBytes:
		n -= maxLengthTwoBytes + 1
		return []byte{byte(241 + n>>16), byte(n >> 8 & 0xff), byte(n & 0xff)}, nil
	default:
		return nil, fmt.Errorf("%w: %d bytes", ErrVariableLengthOverflow, n)
	}
}

// DecodeVariableLength reads a length prefix from the front of b and reports
// the payload length and the number of prefix bytes consumed.
func DecodeVariableLength(b []byte) (n, consumed int, err error) {
	if len(b) == 0 {
		return 0, 0, fmt.Errorf("%w: empty input", ErrMalformedInput)
	}
	first := int(b[0])
	switch {
	case first <= maxLengthOneByte:
		return first, 1, nil
	case first <= 240:
		if len(b) < 2 {
			return 0, 0, fmt.Errorf("%w: truncated length prefix", ErrMalformedInput)
		}
		return 193 + (first-193)<<8 + int(b[1]), 2, nil
	case first <= 254:
		if len(b) < 3 {
			return 0, 0, fmt.Errorf("%w: truncated length prefix", ErrMalformedInput)
		}
		return 12481 + (first-241)<<16 + int(b[1])<<8 + int(b[2]), 3, nil
	default:
		return 0, 0, fmt.Errorf("%w: reserved prefix byte 0x%02x", ErrMalformedInput, first)
	}
}
