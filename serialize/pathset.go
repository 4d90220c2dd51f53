package serialize

import (
	"bytes"
	"fmt"

	"github.com/anyswap/ripple-binary-codec/addresscodec"
)

// Path step component flags. A step carries one or more components; the flag
// byte announces which payloads follow.
const (
	pathStepAccount  = 0x01
	pathStepCurrency = 0x10
	pathStepIssuer   = 0x20
)

const (
	pathSeparator = 0xff
	pathSetEnd    = 0x00
)

// writePathSet emits an array of payment paths. Paths are separated by 0xFF
// and the set is terminated by 0x00. The "type" and "type_hex" members of a
// step merely restate which components are present and are ignored.
func (s *Serializer) writePathSet(buf *bytes.Buffer, value interface{}) error {
	pathset, ok := value.([]interface{})
	if !ok {
		return fmt.Errorf("%w: expected array of paths, got %T", ErrTypeMismatch, value)
	}
	if len(pathset) == 0 {
		return fmt.Errorf("%w: empty path set", ErrMalformedInput)
	}
	for i, path := range pathset {
		if err := writePath(buf, path); err != nil {
			return err
		}
		if i+1 == len(pathset) {
			buf.WriteByte(pathSetEnd)
		} else {
			buf.WriteByte(pathSeparator)
		}
	}
	return nil
}

func writePath(buf *bytes.Buffer, value interface{}) error {
	path, ok := value.([]interface{})
	if !ok {
		return fmt.Errorf("%w: path is %T, not an array", ErrTypeMismatch, value)
	}
	for _, step := range path {
		if err := writePathStep(buf, step); err != nil {
			return err
		}
	}
	return nil
}

func writePathStep(buf *bytes.Buffer, value interface{}) error {
	step, ok := value.(map[string]interface{})
	if !ok {
		return fmt.Errorf("%w: path step is %T, not an object", ErrTypeMismatch, value)
	}
	var (
		flags   byte
		payload bytes.Buffer
	)
	if account, exist := step["account"]; exist {
		address, ok := account.(string)
		if !ok {
			return fmt.Errorf("%w: step account is %T, not a string", ErrTypeMismatch, account)
		}
		accountID, err := addresscodec.DecodeAccountID(address)
		if err != nil {
			return err
		}
		flags |= pathStepAccount
		payload.Write(accountID)
	}
	if currency, exist := step["currency"]; exist {
		code, ok := currency.(string)
		if !ok {
			return fmt.Errorf("%w: step currency is %T, not a string", ErrTypeMismatch, currency)
		}
		currencyBytes, err := currencyToBytes(code, true)
		if err != nil {
			return err
		}
		flags |= pathStepCurrency
		payload.Write(currencyBytes)
	}
	if issuer, exist := step["issuer"]; exist {
		address, ok := issuer.(string)
		if !ok {
			return fmt.Errorf("%w: step issuer is %T, not a string", ErrTypeMismatch, issuer)
		}
		issuerID, err := addresscodec.DecodeAccountID(address)
		if err != nil {
			return err
		}
		flags |= pathStepIssuer
		payload.Write(issuerID)
	}
	if flags == 0 {
		return fmt.Errorf("%w: path step has no account, currency or issuer", ErrMalformedInput)
	}
	buf.WriteByte(flags)
	buf.Write(payload.Bytes())
	return nil
}
