package definitions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	defs := Get()
	assert.NotNil(t, defs)
	// the registry is built once and shared
	assert.Same(t, defs, Get())
	assert.True(t, defs.FieldCount() > 100)

	assert.Equal(t, int32(7), defs.TransactionTypes["OfferCreate"])
	assert.Equal(t, int32(0), defs.TransactionTypes["Payment"])
	assert.Equal(t, int32(114), defs.LedgerEntryTypes["RippleState"])
	assert.Equal(t, int32(0), defs.TransactionResults["tesSUCCESS"])
}

func TestFieldByName(t *testing.T) {
	defs := Get()
	tests := []struct {
		name      string
		typeCode  int32
		fieldCode int32
		fieldType string
	}{
		{"TransactionType", 1, 2, "UInt16"},
		{"Flags", 2, 2, "UInt32"},
		{"Sequence", 2, 4, "UInt32"},
		{"OfferSequence", 2, 25, "UInt32"},
		{"Amount", 6, 1, "Amount"},
		{"Fee", 6, 8, "Amount"},
		{"SigningPubKey", 7, 3, "Blob"},
		{"TxnSignature", 7, 4, "Blob"},
		{"Account", 8, 1, "AccountID"},
		{"Destination", 8, 3, "AccountID"},
		{"Memos", 15, 9, "STArray"},
		{"Paths", 18, 1, "PathSet"},
		{"TickSize", 16, 16, "UInt8"},
	}
	for _, tt := range tests {
		field, err := defs.FieldByName(tt.name)
		assert.Nil(t, err, tt.name)
		typeCode, fieldCode := field.SortKey()
		assert.Equal(t, tt.typeCode, typeCode, tt.name)
		assert.Equal(t, tt.fieldCode, fieldCode, tt.name)
		assert.Equal(t, tt.fieldType, field.Type, tt.name)
		assert.Equal(t, tt.name, field.Name)
	}

	_, err := defs.FieldByName("NoSuchField")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestFieldFlags(t *testing.T) {
	defs := Get()

	txnSignature, err := defs.FieldByName("TxnSignature")
	assert.Nil(t, err)
	assert.True(t, txnSignature.IsSerialized)
	assert.False(t, txnSignature.IsSigningField)

	hash, err := defs.FieldByName("hash")
	assert.Nil(t, err)
	assert.False(t, hash.IsSerialized)

	account, err := defs.FieldByName("Account")
	assert.Nil(t, err)
	assert.True(t, account.IsSerialized)
	assert.True(t, account.IsSigningField)
	assert.True(t, account.IsVLEncoded)
}

func TestTypeCode(t *testing.T) {
	defs := Get()
	tests := map[string]int32{
		"UInt16":    1,
		"UInt32":    2,
		"UInt64":    3,
		"Hash256":   5,
		"Amount":    6,
		"Blob":      7,
		"AccountID": 8,
		"STObject":  14,
		"STArray":   15,
		"UInt8":     16,
		"Hash160":   17,
		"PathSet":   18,
		"Vector256": 19,
	}
	for name, want := range tests {
		code, err := defs.TypeCode(name)
		assert.Nil(t, err, name)
		assert.Equal(t, want, code, name)
	}
	_, err := defs.TypeCode("NoSuchType")
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestLoad(t *testing.T) {
	data := []byte(`{
		"TYPES": {"UInt32": 2},
		"LEDGER_ENTRY_TYPES": {},
		"FIELDS": [
			["Sequence", {"nth": 4, "isVLEncoded": false, "isSerialized": true, "isSigningField": true, "type": "UInt32"}]
		],
		"TRANSACTION_RESULTS": {},
		"TRANSACTION_TYPES": {}
	}`)
	defs, err := Load(data)
	assert.Nil(t, err)
	assert.Equal(t, 1, defs.FieldCount())
	field, err := defs.FieldByName("Sequence")
	assert.Nil(t, err)
	assert.Equal(t, int32(2), field.TypeCode)
	assert.Equal(t, int32(4), field.Nth)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load([]byte("not json"))
	assert.NotNil(t, err)

	// field entry must be a [name, definition] pair
	_, err = Load([]byte(`{"TYPES": {}, "FIELDS": [["OnlyName"]]}`))
	assert.NotNil(t, err)

	// field referencing a missing type
	_, err = Load([]byte(`{
		"TYPES": {},
		"FIELDS": [["Sequence", {"nth": 4, "type": "UInt32"}]]
	}`))
	assert.ErrorIs(t, err, ErrUnknownType)
}
