// Package addresscodec converts 160-bit account identifiers to and from
// their checksummed base58 string form.
package addresscodec

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/mr-tron/base58"

	"github.com/anyswap/ripple-binary-codec/crypto"
)

// Alphabet is the base58 dictionary used by the ledger. The version byte 0x00
// maps to the leading 'r' of every account address.
const Alphabet = "rpshnaf39wBUDNEGHJKLM4PQRST7VWXYZ2bcdeCg65jkm8oFqi1tuvAxyz"

const (
	accountIDLength = 20
	checksumLength  = 4
	accountIDPrefix = 0x00
)

var (
	// ErrInvalidAlphabet is returned when the input contains characters
	// outside the base58 dictionary.
	ErrInvalidAlphabet = errors.New("invalid base58 character")
	// ErrInvalidChecksum is returned when the trailing checksum does not
	// match the payload.
	ErrInvalidChecksum = errors.New("invalid address checksum")
	// ErrInvalidAccountID is returned for payloads of the wrong length or
	// with the wrong version byte.
	ErrInvalidAccountID = errors.New("invalid account id")
)

var rippleAlphabet = base58.NewAlphabet(Alphabet)

func checksum(b []byte) []byte {
	return crypto.DoubleSha256(b)[:checksumLength]
}

// EncodeAccountID encodes raw 20 account id bytes into the checksummed
// base58 address form.
func EncodeAccountID(accountID []byte) (string, error) {
	if len(accountID) != accountIDLength {
		return "", fmt.Errorf("%w: payload is %d bytes, want %d", ErrInvalidAccountID, len(accountID), accountIDLength)
	}
	payload := append([]byte{accountIDPrefix}, accountID...)
	payload = append(payload, checksum(payload)...)
	return base58.EncodeAlphabet(payload, rippleAlphabet), nil
}

// DecodeAccountID decodes a checksummed base58 address back into its raw 20
// bytes. A transposed or mistyped character fails the checksum; it is never
// silently accepted.
func DecodeAccountID(address string) ([]byte, error) {
	decoded, err := base58.DecodeAlphabet(address, rippleAlphabet)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAlphabet, err)
	}
	if len(decoded) != 1+accountIDLength+checksumLength {
		return nil, fmt.Errorf("%w: decoded to %d bytes, want %d", ErrInvalidAccountID, len(decoded), 1+accountIDLength+checksumLength)
	}
	body, sum := decoded[:len(decoded)-checksumLength], decoded[len(decoded)-checksumLength:]
	if !bytes.Equal(checksum(body), sum) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidChecksum, address)
	}
	if body[0] != accountIDPrefix {
		return nil, fmt.Errorf("%w: version byte 0x%02x, want 0x%02x", ErrInvalidAccountID, body[0], accountIDPrefix)
	}
	return body[1:], nil
}
