package serialize

import (
	"bytes"
	"fmt"
)

// Nested objects travel wrapped: the value of an STObject field is a
// one-entry map whose key names the inner object's field, e.g.
// {"Memo": {"MemoData": "..."}}. The wrapper key must be unique so the
// encoding stays deterministic.

// writeSTObject emits the wrapped object's fields in canonical order,
// terminated by the ObjectEndMarker. The end marker delimits the object, so
// there is no outer length prefix.
func (s *Serializer) writeSTObject(buf *bytes.Buffer, value interface{}, depth int) error {
	wrapper, ok := value.(map[string]interface{})
	if !ok {
		return fmt.Errorf("%w: expected object, got %T", ErrTypeMismatch, value)
	}
	if len(wrapper) != 1 {
		return fmt.Errorf("%w: object wrapper has %d keys, want 1", ErrMalformedInput, len(wrapper))
	}
	var inner map[string]interface{}
	for _, wrapped := range wrapper {
		inner, ok = wrapped.(map[string]interface{})
		if !ok {
			return fmt.Errorf("%w: wrapped value is %T, not an object", ErrTypeMismatch, wrapped)
		}
	}
	if err := s.writeObject(buf, inner, false, depth+1); err != nil {
		return err
	}
	endMarker, err := s.defs.FieldByName("ObjectEndMarker")
	if err != nil {
		return err
	}
	buf.Write(endMarker.Header())
	return nil
}

// writeSTArray emits each element as its wrapping field header plus the
// object encoding, terminated by the ArrayEndMarker. An element that fails
// to encode is a hard error; dropping it would corrupt the signed bytes.
func (s *Serializer) writeSTArray(buf *bytes.Buffer, value interface{}, depth int) error {
	list, ok := value.([]interface{})
	if !ok {
		return fmt.Errorf("%w: expected array, got %T", ErrTypeMismatch, value)
	}
	for _, element := range list {
		wrapper, ok := element.(map[string]interface{})
		if !ok {
			return fmt.Errorf("%w: array element is %T, not an object", ErrTypeMismatch, element)
		}
		if len(wrapper) != 1 {
			return fmt.Errorf("%w: array element has %d keys, want 1", ErrMalformedInput, len(wrapper))
		}
		for name := range wrapper {
			def, err := s.defs.FieldByName(name)
			if err != nil {
				return err
			}
			buf.Write(def.Header())
			if err := s.writeFieldValue(buf, def, element, depth+1); err != nil {
				return fmt.Errorf("field %s: %w", name, err)
			}
		}
	}
	endMarker, err := s.defs.FieldByName("ArrayEndMarker")
	if err != nil {
		return err
	}
	buf.Write(endMarker.Header())
	return nil
}
