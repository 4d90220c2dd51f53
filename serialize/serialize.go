// Package serialize produces the canonical binary form of a ledger
// transaction. The output is the exact byte sequence the protocol hashes and
// signs, so encoding is strictly deterministic: identical input always yields
// byte-identical output.
package serialize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/anyswap/ripple-binary-codec/definitions"
)

// DefaultMaxDepth bounds object/array recursion. Legitimate transactions
// nest a handful of levels; the bound exists to reject adversarial input
// before it exhausts the stack.
const DefaultMaxDepth = 32

// Serializer encodes transactions against an injected definitions registry.
// It holds no per-call state and is safe for concurrent use.
type Serializer struct {
	defs     *definitions.Definitions
	maxDepth int
}

// NewSerializer returns a Serializer using the given registry.
func NewSerializer(defs *definitions.Definitions) *Serializer {
	return &Serializer{defs: defs, maxDepth: DefaultMaxDepth}
}

// SetMaxDepth overrides the recursion bound.
func (s *Serializer) SetMaxDepth(depth int) {
	s.maxDepth = depth
}

// SerializeTx encodes the transaction JSON with the embedded registry.
// With forSigning set, only signing fields are emitted, so the output is
// suitable as input to a signing step.
func SerializeTx(txJSON string, forSigning bool) ([]byte, error) {
	return NewSerializer(definitions.Get()).SerializeTx(txJSON, forSigning)
}

// SerializeTx encodes one transaction. The top level of the input must be an
// object. Numbers are kept as json.Number so 64-bit drops never lose
// precision in transit.
func (s *Serializer) SerializeTx(txJSON string, forSigning bool) ([]byte, error) {
	dec := json.NewDecoder(strings.NewReader(txJSON))
	dec.UseNumber()
	var parsed interface{}
	if err := dec.Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	tx, ok := parsed.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: top level is not an object", ErrMalformedInput)
	}
	var buf bytes.Buffer
	if err := s.writeObject(&buf, tx, forSigning, 0); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// fieldSlot pairs a present field with its registry definition for one pass.
type fieldSlot struct {
	def   *definitions.FieldDefinition
	value interface{}
}

// writeObject emits the fields of one object in canonical order. The signing
// filter applies only at the top level; nested objects always carry their
// serialized fields in full.
func (s *Serializer) writeObject(buf *bytes.Buffer, obj map[string]interface{}, forSigning bool, depth int) error {
	if depth > s.maxDepth {
		return fmt.Errorf("%w: depth %d exceeds limit %d", ErrNestingTooDeep, depth, s.maxDepth)
	}
	slots := make([]fieldSlot, 0, len(obj))
	for name, value := range obj {
		def, err := s.defs.FieldByName(name)
		if err != nil {
			// unknown names are a hard error: silently dropping a field
			// would corrupt what gets signed
			return err
		}
		if !def.IsSerialized {
			continue
		}
		if forSigning && !def.IsSigningField {
			continue
		}
		slots = append(slots, fieldSlot{def: def, value: value})
	}
	sort.Slice(slots, func(i, j int) bool {
		iType, iField := slots[i].def.SortKey()
		jType, jField := slots[j].def.SortKey()
		if iType != jType {
			return iType < jType
		}
		return iField < jField
	})
	for _, slot := range slots {
		buf.Write(slot.def.Header())
		if err := s.writeFieldValue(buf, slot.def, slot.value, depth); err != nil {
			return fmt.Errorf("field %s: %w", slot.def.Name, err)
		}
	}
	return nil
}
