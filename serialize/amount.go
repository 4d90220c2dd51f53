package serialize

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"regexp"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/anyswap/ripple-binary-codec/addresscodec"
)

// Amounts come in two wire forms. Native amounts are exact integer drops in
// 8 bytes. Issued amounts are a normalized mantissa/exponent pair in 8 bytes
// followed by a 20-byte currency code and a 20-byte issuer account id: wide
// dynamic range with bounded precision for arbitrary assets, exact integers
// for the scarce native one.
const (
	notNative uint64 = 0x8000000000000000
	positive  uint64 = 0x4000000000000000

	minExponent int64 = -96
	maxExponent int64 = 80

	// the network ceiling on drops, 10^17
	maxNativeNetwork uint64 = 100000000000000000
)

var (
	// normalized mantissa range [10^15, 10^16)
	minMantissa = big.NewInt(0).SetUint64(1000000000000000)
	maxMantissa = big.NewInt(0).SetUint64(9999999999999999)
	bigTen      = big.NewInt(10)

	currencyISO = regexp.MustCompile(`^[A-Za-z0-9?!@#$%^&*<>(){}\[\]|]{3}$`)
	currencyHex = regexp.MustCompile(`^[0-9a-fA-F]{40}$`)
)

func (s *Serializer) writeAmount(buf *bytes.Buffer, value interface{}) error {
	switch v := value.(type) {
	case string:
		return writeNativeAmount(buf, v)
	case json.Number:
		return writeNativeAmount(buf, v.String())
	case map[string]interface{}:
		return writeIssuedAmount(buf, v)
	default:
		return fmt.Errorf("%w: expected drops string or currency object, got %T", ErrTypeMismatch, value)
	}
}

// writeNativeAmount emits 8 bytes: top bit clear, positive bit set, then the
// drops count.
func writeNativeAmount(buf *bytes.Buffer, drops string) error {
	n, err := strconv.ParseUint(drops, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: %q is not a non-negative integer drops count", ErrInvalidAmountFormat, drops)
	}
	if n >= maxNativeNetwork {
		return fmt.Errorf("%w: %d drops exceeds the network maximum", ErrAmountOutOfRange, n)
	}
	var scratch [8]byte
	binary.BigEndian.PutUint64(scratch[:], n|positive)
	buf.Write(scratch[:])
	return nil
}

// writeIssuedAmount emits the 48-byte issued-currency layout.
func writeIssuedAmount(buf *bytes.Buffer, obj map[string]interface{}) error {
	if len(obj) != 3 {
		return fmt.Errorf("%w: issued amount needs exactly currency, issuer and value", ErrMalformedInput)
	}
	currency, okCurrency := obj["currency"].(string)
	issuer, okIssuer := obj["issuer"].(string)
	strnum, okValue := obj["value"].(string)
	if !okCurrency || !okIssuer || !okValue {
		return fmt.Errorf("%w: issued amount needs string currency, issuer and value", ErrMalformedInput)
	}

	header, err := issuedAmountHeader(strnum)
	if err != nil {
		return err
	}
	currencyBytes, err := currencyToBytes(currency, false)
	if err != nil {
		return err
	}
	issuerID, err := addresscodec.DecodeAccountID(issuer)
	if err != nil {
		return err
	}

	var scratch [8]byte
	binary.BigEndian.PutUint64(scratch[:], header)
	buf.Write(scratch[:])
	buf.Write(currencyBytes)
	// raw 20 bytes; the checksum wrapper is a string-level concern only
	buf.Write(issuerID)
	return nil
}

// issuedAmountHeader normalizes a decimal value into the 64-bit header:
// bit 63 not-native, bit 62 sign, bits 61..54 biased exponent, bits 53..0
// mantissa in [10^15, 10^16). Zero is the distinguished all-zero-mantissa
// form with only the not-native bit set.
func issuedAmountHeader(strnum string) (uint64, error) {
	value, err := decimal.NewFromString(strnum)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmountFormat, strnum)
	}
	if value.IsZero() {
		return notNative, nil
	}
	mantissa := new(big.Int).Abs(value.Coefficient())
	exp := int64(value.Exponent())

	for mantissa.Cmp(minMantissa) < 0 && exp > minExponent {
		mantissa.Mul(mantissa, bigTen)
		exp--
	}
	remainder := new(big.Int)
	for mantissa.Cmp(maxMantissa) > 0 {
		if exp >= maxExponent {
			return 0, fmt.Errorf("%w: %q exponent above %d", ErrAmountPrecisionLoss, strnum, maxExponent)
		}
		mantissa.QuoRem(mantissa, bigTen, remainder)
		if remainder.Sign() != 0 {
			return 0, fmt.Errorf("%w: %q has too many significant digits", ErrAmountPrecisionLoss, strnum)
		}
		exp++
	}
	if exp < minExponent || mantissa.Cmp(minMantissa) < 0 {
		// underflow rounds to the canonical zero
		return notNative, nil
	}
	if exp > maxExponent {
		return 0, fmt.Errorf("%w: %q exponent above %d", ErrAmountPrecisionLoss, strnum, maxExponent)
	}

	header := notNative
	if value.Sign() > 0 {
		header |= positive
	}
	header |= uint64(exp+97) << 54
	header |= mantissa.Uint64()
	return header, nil
}

// currencyToBytes produces the 20-byte currency code field: a three-letter
// ISO-style code in the standard layout, or a 40-hex custom code verbatim.
// The native currency is all zeroes and only legal where xrpOK says so.
func currencyToBytes(code string, xrpOK bool) ([]byte, error) {
	switch {
	case currencyISO.MatchString(code):
		if code == "XRP" {
			if !xrpOK {
				return nil, fmt.Errorf("%w: XRP is not a valid issued currency", ErrInvalidAmountFormat)
			}
			return make([]byte, 20), nil
		}
		out := make([]byte, 20)
		copy(out[12:], code)
		return out, nil
	case currencyHex.MatchString(code):
		return hex.DecodeString(code)
	default:
		return nil, fmt.Errorf("%w: bad currency code %q", ErrInvalidAmountFormat, code)
	}
}
