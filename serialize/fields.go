package serialize

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/anyswap/ripple-binary-codec/addresscodec"
	"github.com/anyswap/ripple-binary-codec/definitions"
)

// writeFieldValue encodes one field payload (the field header is already
// written by the caller). The type set is closed by the protocol, so any
// other type code is an error, not an extension point.
func (s *Serializer) writeFieldValue(buf *bytes.Buffer, def *definitions.FieldDefinition, value interface{}, depth int) error {
	switch def.Type {
	case "UInt8":
		return s.writeUint(buf, def, value, 1)
	case "UInt16":
		return s.writeUint(buf, def, value, 2)
	case "UInt32":
		return s.writeUint(buf, def, value, 4)
	case "UInt64":
		return s.writeUint64(buf, value)
	case "Hash128":
		return writeHash(buf, value, 16)
	case "Hash160":
		return writeHash(buf, value, 20)
	case "Hash256":
		return writeHash(buf, value, 32)
	case "Blob":
		return writeBlob(buf, value)
	case "AccountID":
		return writeAccountID(buf, value)
	case "Amount":
		return s.writeAmount(buf, value)
	case "STObject":
		return s.writeSTObject(buf, value, depth)
	case "STArray":
		return s.writeSTArray(buf, value, depth)
	case "PathSet":
		return s.writePathSet(buf, value)
	case "Vector256":
		return writeVector256(buf, value)
	default:
		return fmt.Errorf("%w: %s (type code %d)", ErrUnsupportedType, def.Type, def.TypeCode)
	}
}

// writeUint emits a fixed-width big-endian integer. The named enum fields
// additionally accept their symbolic string form, resolved through the
// registry tables.
func (s *Serializer) writeUint(buf *bytes.Buffer, def *definitions.FieldDefinition, value interface{}, width int) error {
	var n uint64
	switch v := value.(type) {
	case json.Number:
		parsed, err := strconv.ParseUint(v.String(), 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %q is not an unsigned integer", ErrTypeMismatch, v.String())
		}
		n = parsed
	case string:
		code, err := s.lookupEnum(def.Name, v)
		if err != nil {
			return err
		}
		n = code
	default:
		return fmt.Errorf("%w: expected integer, got %T", ErrTypeMismatch, value)
	}
	max := uint64(1)<<(8*width) - 1
	if n > max {
		return fmt.Errorf("%w: %d exceeds %d-bit range", ErrTypeMismatch, n, 8*width)
	}
	var scratch [8]byte
	binary.BigEndian.PutUint64(scratch[:], n)
	buf.Write(scratch[8-width:])
	return nil
}

// lookupEnum resolves the symbolic names the protocol allows in place of
// numeric codes for a few enum-valued fields.
func (s *Serializer) lookupEnum(fieldName, symbol string) (uint64, error) {
	var (
		table map[string]int32
		code  int32
		exist bool
	)
	switch fieldName {
	case "TransactionType":
		table = s.defs.TransactionTypes
	case "LedgerEntryType":
		table = s.defs.LedgerEntryTypes
	case "TransactionResult":
		table = s.defs.TransactionResults
	default:
		return 0, fmt.Errorf("%w: field %s expects a number, got string", ErrTypeMismatch, fieldName)
	}
	if code, exist = table[symbol]; !exist {
		return 0, fmt.Errorf("%w: %q", ErrUnknownTransactionType, symbol)
	}
	if code < 0 {
		return 0, fmt.Errorf("%w: %q maps to negative code %d", ErrTypeMismatch, symbol, code)
	}
	return uint64(code), nil
}

// writeUint64 emits an 8-byte integer. UInt64 fields travel as hexadecimal
// strings in transaction JSON; plain numbers are accepted as well.
func (s *Serializer) writeUint64(buf *bytes.Buffer, value interface{}) error {
	var n uint64
	switch v := value.(type) {
	case json.Number:
		parsed, err := strconv.ParseUint(v.String(), 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %q is not an unsigned integer", ErrTypeMismatch, v.String())
		}
		n = parsed
	case string:
		if len(v) == 0 || len(v) > 16 {
			return fmt.Errorf("%w: %q is not a 64-bit hex value", ErrTypeMismatch, v)
		}
		parsed, err := strconv.ParseUint(v, 16, 64)
		if err != nil {
			return fmt.Errorf("%w: %q is not a 64-bit hex value", ErrTypeMismatch, v)
		}
		n = parsed
	default:
		return fmt.Errorf("%w: expected integer or hex string, got %T", ErrTypeMismatch, value)
	}
	var scratch [8]byte
	binary.BigEndian.PutUint64(scratch[:], n)
	buf.Write(scratch[:])
	return nil
}

// writeHash emits a fixed-width hash given as a hex string. No length
// prefix; the width is implied by the type.
func writeHash(buf *bytes.Buffer, value interface{}, size int) error {
	str, ok := value.(string)
	if !ok {
		return fmt.Errorf("%w: expected hex string, got %T", ErrTypeMismatch, value)
	}
	decoded, err := hex.DecodeString(str)
	if err != nil {
		return fmt.Errorf("invalid hex: %w", err)
	}
	if len(decoded) != size {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidHashLength, len(decoded), size)
	}
	buf.Write(decoded)
	return nil
}

// writeBlob emits opaque bytes given as a hex string, preceded by the
// length prefix.
func writeBlob(buf *bytes.Buffer, value interface{}) error {
	str, ok := value.(string)
	if !ok {
		return fmt.Errorf("%w: expected hex string, got %T", ErrTypeMismatch, value)
	}
	decoded, err := hex.DecodeString(str)
	if err != nil {
		return fmt.Errorf("invalid hex: %w", err)
	}
	prefix, err := EncodeVariableLength(len(decoded))
	if err != nil {
		return err
	}
	buf.Write(prefix)
	buf.Write(decoded)
	return nil
}

// writeAccountID emits a length prefix (always one byte, 20) followed by the
// raw 20-byte account id decoded from its checksummed address form.
func writeAccountID(buf *bytes.Buffer, value interface{}) error {
	address, ok := value.(string)
	if !ok {
		return fmt.Errorf("%w: expected address string, got %T", ErrTypeMismatch, value)
	}
	accountID, err := addresscodec.DecodeAccountID(address)
	if err != nil {
		return err
	}
	prefix, err := EncodeVariableLength(len(accountID))
	if err != nil {
		return err
	}
	buf.Write(prefix)
	buf.Write(accountID)
	return nil
}

// writeVector256 emits a length prefix over a concatenation of 256-bit
// hashes.
func writeVector256(buf *bytes.Buffer, value interface{}) error {
	list, ok := value.([]interface{})
	if !ok {
		return fmt.Errorf("%w: expected array of hashes, got %T", ErrTypeMismatch, value)
	}
	var hashes bytes.Buffer
	for _, item := range list {
		if err := writeHash(&hashes, item, 32); err != nil {
			return err
		}
	}
	prefix, err := EncodeVariableLength(hashes.Len())
	if err != nil {
		return err
	}
	buf.Write(prefix)
	buf.Write(hashes.Bytes())
	return nil
}
