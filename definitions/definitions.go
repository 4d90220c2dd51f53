// Package definitions holds the protocol field and type tables driving the
// canonical binary encoding. The tables are versioned protocol data embedded
// verbatim from definitions.json and must stay in sync with the enum
// definitions shipped by the reference server.
package definitions

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

//go:embed definitions.json
var definitionsJSON []byte

var (
	// ErrUnknownField is returned when a field name has no registry entry.
	ErrUnknownField = errors.New("unknown field")
	// ErrUnknownType is returned when a type name has no registry entry.
	ErrUnknownType = errors.New("unknown type")
)

// FieldDefinition describes one named field: its wire type, its code within
// that type, and its serialization flags. The pair (TypeCode, Nth) is unique
// across all fields and doubles as the canonical sort key.
type FieldDefinition struct {
	Nth            int32  `json:"nth"`
	IsVLEncoded    bool   `json:"isVLEncoded"`
	IsSerialized   bool   `json:"isSerialized"`
	IsSigningField bool   `json:"isSigningField"`
	Type           string `json:"type"`

	// filled in after load
	Name     string `json:"-"`
	TypeCode int32  `json:"-"`
}

// Definitions is the immutable registry of protocol tables. Built once,
// read-only thereafter, safe for any number of concurrent readers.
type Definitions struct {
	Types              map[string]int32
	LedgerEntryTypes   map[string]int32
	TransactionResults map[string]int32
	TransactionTypes   map[string]int32

	fields map[string]*FieldDefinition
}

type rawDefinitions struct {
	Types              map[string]int32  `json:"TYPES"`
	LedgerEntryTypes   map[string]int32  `json:"LEDGER_ENTRY_TYPES"`
	Fields             []json.RawMessage `json:"FIELDS"`
	TransactionResults map[string]int32  `json:"TRANSACTION_RESULTS"`
	TransactionTypes   map[string]int32  `json:"TRANSACTION_TYPES"`
}

var (
	loadOnce sync.Once
	loaded   *Definitions
	loadErr  error
)

// Get returns the registry built from the embedded definitions data.
// The build happens exactly once; racing callers share the same instance.
func Get() *Definitions {
	loadOnce.Do(func() {
		loaded, loadErr = Load(definitionsJSON)
		if loadErr != nil {
			panic(fmt.Sprintf("definitions: embedded data is invalid: %v", loadErr))
		}
	})
	return loaded
}

// Load parses a definitions document. Tests may load an alternate registry
// instead of relying on the embedded one.
func Load(data []byte) (*Definitions, error) {
	var raw rawDefinitions
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("definitions: %v", err)
	}
	defs := &Definitions{
		Types:              raw.Types,
		LedgerEntryTypes:   raw.LedgerEntryTypes,
		TransactionResults: raw.TransactionResults,
		TransactionTypes:   raw.TransactionTypes,
		fields:             make(map[string]*FieldDefinition, len(raw.Fields)),
	}
	// FIELDS is a list of [name, definition] pairs
	for _, entry := range raw.Fields {
		var pair []json.RawMessage
		if err := json.Unmarshal(entry, &pair); err != nil {
			return nil, fmt.Errorf("definitions: bad field entry: %v", err)
		}
		if len(pair) != 2 {
			return nil, fmt.Errorf("definitions: field entry has %d elements, want 2", len(pair))
		}
		var name string
		if err := json.Unmarshal(pair[0], &name); err != nil {
			return nil, fmt.Errorf("definitions: bad field name: %v", err)
		}
		field := new(FieldDefinition)
		if err := json.Unmarshal(pair[1], field); err != nil {
			return nil, fmt.Errorf("definitions: bad field %q: %v", name, err)
		}
		typeCode, exist := defs.Types[field.Type]
		if !exist {
			return nil, fmt.Errorf("definitions: field %q references %w %q", name, ErrUnknownType, field.Type)
		}
		field.Name = name
		field.TypeCode = typeCode
		defs.fields[name] = field
	}
	return defs, nil
}

// FieldByName looks up a field definition.
func (d *Definitions) FieldByName(name string) (*FieldDefinition, error) {
	field, exist := d.fields[name]
	if !exist {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return field, nil
}

// TypeCode looks up the numeric code of a wire type.
func (d *Definitions) TypeCode(typeName string) (int32, error) {
	code, exist := d.Types[typeName]
	if !exist {
		return 0, fmt.Errorf("%w: %q", ErrUnknownType, typeName)
	}
	return code, nil
}

// FieldCount reports the number of known fields.
func (d *Definitions) FieldCount() int {
	return len(d.fields)
}

// SortKey is the canonical (typeCode, fieldCode) ordering key of the field.
func (f *FieldDefinition) SortKey() (int32, int32) {
	return f.TypeCode, f.Nth
}

// Header returns the wire Field ID tag for this field.
func (f *FieldDefinition) Header() []byte {
	return EncodeFieldHeader(f.TypeCode, f.Nth)
}
