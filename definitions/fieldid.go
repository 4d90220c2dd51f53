package definitions

import (
	"errors"
	"fmt"
)

// ErrBadFieldHeader is returned when a field header cannot be decoded.
var ErrBadFieldHeader = errors.New("bad field header")

// EncodeFieldHeader packs a (typeCode, fieldCode) pair into its 1-3 byte wire
// tag. Codes below 16 pack into nibbles of a single byte; larger codes spill
// into trailing bytes.
func EncodeFieldHeader(typeCode, fieldCode int32) []byte {
	switch {
	case typeCode < 16 && fieldCode < 16:
		return []byte{byte(typeCode<<4 | fieldCode)}
	case typeCode >= 16 && fieldCode < 16:
		return []byte{byte(fieldCode), byte(typeCode)}
	case typeCode < 16 && fieldCode >= 16:
		return []byte{byte(typeCode << 4), byte(fieldCode)}
	default:
		return []byte{0x00, byte(typeCode), byte(fieldCode)}
	}
}

// DecodeFieldHeader reads one field header from the front of b and reports
// how many bytes it consumed.
func DecodeFieldHeader(b []byte) (typeCode, fieldCode int32, n int, err error) {
	if len(b) == 0 {
		return 0, 0, 0, fmt.Errorf("%w: empty input", ErrBadFieldHeader)
	}
	typeCode = int32(b[0] >> 4)
	fieldCode = int32(b[0] & 0x0f)
	n = 1
	if typeCode == 0 {
		if len(b) < 2 {
			return 0, 0, 0, fmt.Errorf("%w: truncated type code", ErrBadFieldHeader)
		}
		typeCode = int32(b[1])
		n = 2
		if typeCode < 16 {
			return 0, 0, 0, fmt.Errorf("%w: non-canonical type code %d", ErrBadFieldHeader, typeCode)
		}
	}
	if fieldCode == 0 {
		if len(b) < n+1 {
			return 0, 0, 0, fmt.Errorf("%w: truncated field code", ErrBadFieldHeader)
		}
		fieldCode = int32(b[n])
		n++
		if fieldCode < 16 {
			return 0, 0, 0, fmt.Errorf("%w: non-canonical field code %d", ErrBadFieldHeader, fieldCode)
		}
	}
	return typeCode, fieldCode, n, nil
}
