package serialize

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anyswap/ripple-binary-codec/definitions"
)

func TestIssuedAmountHeader(t *testing.T) {
	tests := []struct {
		value string
		want  uint64
	}{
		{"12.123", 0xd4c44e9496dc7800},
		{"-12.123", 0x94c44e9496dc7800},
		{"7072.8", 0xd55920ac93914000},
		{"0.6275558355", 0xd4564b964a845ac0},
		{"0", 0x8000000000000000},
		{"0.0", 0x8000000000000000},
		{"-0", 0x8000000000000000},
		// largest representable magnitude
		{"9999999999999999e80", 0xec6386f26fc0ffff},
		{"1e80", 0xe8838d7ea4c68000},
		// below the smallest representable magnitude, collapses to zero
		{"1e-96", 0x8000000000000000},
		{"1e-100", 0x8000000000000000},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			header, err := issuedAmountHeader(tt.value)
			assert.Nil(t, err)
			assert.Equal(t, tt.want, header)
		})
	}
}

func TestIssuedAmountHeaderErrors(t *testing.T) {
	tests := []struct {
		value   string
		wantErr error
	}{
		{"", ErrInvalidAmountFormat},
		{"abc", ErrInvalidAmountFormat},
		{"12..3", ErrInvalidAmountFormat},
		// 17 significant digits cannot fit the 54-bit mantissa
		{"0.12345678901234567", ErrAmountPrecisionLoss},
		{"10000000000000001", ErrAmountPrecisionLoss},
		{"1e96", ErrAmountPrecisionLoss},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			_, err := issuedAmountHeader(tt.value)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestWriteNativeAmount(t *testing.T) {
	tests := []struct {
		drops string
		want  string
	}{
		{"0", "4000000000000000"},
		{"10", "400000000000000a"},
		{"5973490832", "40000001640c3c90"},
		{"499999000", "400000001dcd6118"},
		{"99999999999999999", "416345785d89ffff"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		err := writeNativeAmount(&buf, tt.drops)
		assert.Nil(t, err)
		assert.Equal(t, tt.want, hex.EncodeToString(buf.Bytes()), "drops %s", tt.drops)
	}
}

func TestWriteNativeAmountErrors(t *testing.T) {
	var buf bytes.Buffer
	err := writeNativeAmount(&buf, "100000000000000000")
	assert.ErrorIs(t, err, ErrAmountOutOfRange)
	for _, drops := range []string{"", "-1", "1.5", "12drops", "18446744073709551616"} {
		err := writeNativeAmount(&buf, drops)
		assert.ErrorIs(t, err, ErrInvalidAmountFormat, "drops %q", drops)
	}
}

func TestWriteAmount(t *testing.T) {
	s := NewSerializer(definitions.Get())

	issued := mustDecodeJSON(t, `{
		"currency": "USD",
		"value": "12.123",
		"issuer": "rf1BiGeXwwQoi8Z2ueFYTEXSwuJYfV2Jpn"
	}`)
	var buf bytes.Buffer
	err := s.writeAmount(&buf, issued)
	assert.Nil(t, err)
	want := "D4C44E9496DC7800" +
		"0000000000000000000000005553440000000000" +
		"4B4E9C06F24296074F7BC48F92A97916C6DC5EA9"
	assert.Equal(t, want, strings.ToUpper(hex.EncodeToString(buf.Bytes())))

	buf.Reset()
	err = s.writeAmount(&buf, "5973490832")
	assert.Nil(t, err)
	assert.Equal(t, "40000001640c3c90", hex.EncodeToString(buf.Bytes()))

	buf.Reset()
	err = s.writeAmount(&buf, json.Number("499999000"))
	assert.Nil(t, err)
	assert.Equal(t, "400000001dcd6118", hex.EncodeToString(buf.Bytes()))
}

func TestWriteAmountErrors(t *testing.T) {
	s := NewSerializer(definitions.Get())
	tests := []struct {
		name    string
		value   string
		wantErr error
	}{
		{
			name:    "missing member",
			value:   `{"currency": "USD", "value": "1"}`,
			wantErr: ErrMalformedInput,
		},
		{
			name:    "extra member",
			value:   `{"currency": "USD", "value": "1", "issuer": "rf1BiGeXwwQoi8Z2ueFYTEXSwuJYfV2Jpn", "extra": 1}`,
			wantErr: ErrMalformedInput,
		},
		{
			name:    "non-string value",
			value:   `{"currency": "USD", "value": 1, "issuer": "rf1BiGeXwwQoi8Z2ueFYTEXSwuJYfV2Jpn"}`,
			wantErr: ErrMalformedInput,
		},
		{
			name:    "xrp as issued currency",
			value:   `{"currency": "XRP", "value": "1", "issuer": "rf1BiGeXwwQoi8Z2ueFYTEXSwuJYfV2Jpn"}`,
			wantErr: ErrInvalidAmountFormat,
		},
		{
			name:    "bad currency code",
			value:   `{"currency": "USDX", "value": "1", "issuer": "rf1BiGeXwwQoi8Z2ueFYTEXSwuJYfV2Jpn"}`,
			wantErr: ErrInvalidAmountFormat,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := s.writeAmount(&buf, mustDecodeJSON(t, tt.value))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	var buf bytes.Buffer
	err := s.writeAmount(&buf, true)
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestCurrencyToBytes(t *testing.T) {
	out, err := currencyToBytes("USD", false)
	assert.Nil(t, err)
	assert.Equal(t, "0000000000000000000000005553440000000000", hex.EncodeToString(out))

	// native code is all zeroes and only legal inside paths
	out, err = currencyToBytes("XRP", true)
	assert.Nil(t, err)
	assert.Equal(t, make([]byte, 20), out)

	custom := "015841551A748AD2C1F76FF6ECB0CCCD00000000"
	out, err = currencyToBytes(custom, false)
	assert.Nil(t, err)
	assert.Equal(t, custom, strings.ToUpper(hex.EncodeToString(out)))

	_, err = currencyToBytes("XRP", false)
	assert.ErrorIs(t, err, ErrInvalidAmountFormat)
	_, err = currencyToBytes("us", false)
	assert.ErrorIs(t, err, ErrInvalidAmountFormat)
}
