// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2014 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package codec implements the strict canonical serialisation contract
// shared by every consensus-critical type: deny-unknown-fields, reject
// trailing data, and byte-stable output for equal inputs (spec §4.1).
//
// Two wire representations are provided: Object/DecodeObject for the
// textual (JSON) form, and Writer/Reader for the binary form.
package codec

import (
	"bytes"
	"encoding/json"

	cerrors "coinjecture.dev/consensus/errors"
)

// Object is a decoded top-level JSON object, keyed by field name, with
// each value left as raw JSON so the caller can unmarshal it into the
// precise Go type its schema declares.
type Object map[string]json.RawMessage

// DecodeObject decodes data as a single JSON object value, rejecting any
// key not present in allowed and failing if any key in required is
// absent. It also rejects trailing tokens after the top-level value,
// satisfying spec invariant 4 (TrailingData).
func DecodeObject(data []byte, allowed, required []string) (Object, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return nil, cerrors.TypeMismatch("<root>")
	}
	if rest := bytes.TrimLeft(data[dec.InputOffset():], " \t\r\n"); len(rest) > 0 {
		return nil, cerrors.TrailingData(int(dec.InputOffset()))
	}

	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, cerrors.TypeMismatch("<root>")
	}

	allowedSet := make(map[string]struct{}, len(allowed))
	for _, name := range allowed {
		allowedSet[name] = struct{}{}
	}
	for key := range m {
		if _, ok := allowedSet[key]; !ok {
			return nil, cerrors.UnknownField(key)
		}
	}
	for _, name := range required {
		if _, ok := m[name]; !ok {
			return nil, cerrors.MissingField(name)
		}
	}

	return Object(m), nil
}

// Field unmarshals the named field into dst. A field absent from the
// decoded object is a no-op, leaving dst untouched — callers check
// required fields up front via DecodeObject's required list.
func (o Object) Field(name string, dst interface{}) error {
	raw, ok := o[name]
	if !ok {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return cerrors.TypeMismatch(name)
	}
	return nil
}

// EncodeObject marshals v, a plain struct whose exported fields are
// declared in schema order, to its canonical JSON form. encoding/json
// marshals struct fields in declaration order and without optional
// whitespace when no indentation option is used, which is exactly the
// byte-stability spec §4.1 requires.
func EncodeObject(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}
