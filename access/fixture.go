package access

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Fixtures are JSON arrays of records, used to keep expected logs as data:
//
//	[
//	  {"type": "w", "addr": "0x40000000", "after": 17},
//	  {"ty": "read", "addr": 1073741828, "len": 4, "before": 0, "after": 0}
//	]
//
// Every field is optional. The kind is given as "ty" or "type" with the value
// "read", "r", "write" or "w". Numbers can be JSON numbers or strings in any
// base strconv.ParseUint understands with base 0.

// ParseFixtures decodes a JSON array of records.
func ParseFixtures(data []byte) ([]Record, error) {
	return LoadFixtures(bytes.NewReader(data))
}

// MustParseFixtures is ParseFixtures for literals in tests. It panics on
// malformed input.
func MustParseFixtures(data string) []Record {
	records, err := ParseFixtures([]byte(data))
	if err != nil {
		panic(err)
	}

	return records
}

// LoadFixtures decodes a JSON array of records from reader.
func LoadFixtures(reader io.Reader) ([]Record, error) {
	decoder := json.NewDecoder(reader)

	var records []Record

	err := decoder.Decode(&records)
	if err != nil {
		return nil, fmt.Errorf("decoding access fixtures: %w", err)
	}

	return records, nil
}

// WriteFixtures encodes records as an indented JSON array that
// LoadFixtures reads back. Addresses and values are written in hex.
func WriteFixtures(writer io.Writer, records []Record) error {
	encoder := json.NewEncoder(writer)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")

	if records == nil {
		records = []Record{}
	}

	return encoder.Encode(records)
}

// ParseKind converts a short kind code into a Kind.
func ParseKind(code string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case "read", "r":
		return KindRead, nil
	case "write", "w":
		return KindWrite, nil
	default:
		return 0, fmt.Errorf("unknown access kind %q", code)
	}
}

// MarshalJSON writes the kind as "read" or "write".
func (k Kind) MarshalJSON() ([]byte, error) {
	switch k {
	case KindRead:
		return []byte(`"read"`), nil
	case KindWrite:
		return []byte(`"write"`), nil
	default:
		return nil, fmt.Errorf("cannot encode access kind %d", int(k))
	}
}

// UnmarshalJSON accepts the codes listed in ParseKind.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var code string
	if err := json.Unmarshal(data, &code); err != nil {
		return fmt.Errorf("access kind must be a string: %w", err)
	}

	kind, err := ParseKind(code)
	if err != nil {
		return err
	}

	*k = kind

	return nil
}

// fixtureUint is a number that may also be spelled as a string such as
// "0x40000000".
type fixtureUint uint64

func (u fixtureUint) MarshalJSON() ([]byte, error) {
	return json.Marshal(fmt.Sprintf("0x%X", uint64(u)))
}

func (u *fixtureUint) UnmarshalJSON(data []byte) error {
	text := string(data)
	base := 10

	if strings.HasPrefix(text, `"`) {
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}

		base = 0
	}

	v, err := strconv.ParseUint(strings.TrimSpace(text), base, 64)
	if err != nil {
		return fmt.Errorf("invalid fixture number %s: %w", data, err)
	}

	*u = fixtureUint(v)

	return nil
}

// fixtureLen is an access width. It is written as a plain number and read
// like a fixtureUint.
type fixtureLen uint

func (n *fixtureLen) UnmarshalJSON(data []byte) error {
	var v fixtureUint
	if err := v.UnmarshalJSON(data); err != nil {
		return err
	}

	if uint64(v) > math.MaxUint {
		return fmt.Errorf("fixture length %s out of range", data)
	}

	*n = fixtureLen(v)

	return nil
}

type fixtureRecord struct {
	Ty     *Kind        `json:"ty,omitempty"`
	Type   *Kind        `json:"type,omitempty"`
	Addr   *fixtureUint `json:"addr,omitempty"`
	Len    *fixtureLen  `json:"len,omitempty"`
	Before *fixtureUint `json:"before,omitempty"`
	After  *fixtureUint `json:"after,omitempty"`
}

// MarshalJSON writes the populated fields only.
func (r Record) MarshalJSON() ([]byte, error) {
	fr := fixtureRecord{Ty: r.Kind}

	if r.Len != nil {
		v := fixtureLen(*r.Len)
		fr.Len = &v
	}

	if r.Addr != nil {
		v := fixtureUint(*r.Addr)
		fr.Addr = &v
	}

	if r.Before != nil {
		v := fixtureUint(*r.Before)
		fr.Before = &v
	}

	if r.After != nil {
		v := fixtureUint(*r.After)
		fr.After = &v
	}

	return json.Marshal(fr)
}

// UnmarshalJSON reads one fixture record. Unknown fields are rejected so that
// typos do not silently widen a partial record.
func (r *Record) UnmarshalJSON(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()

	var fr fixtureRecord
	if err := decoder.Decode(&fr); err != nil {
		return err
	}

	if fr.Ty != nil && fr.Type != nil && *fr.Ty != *fr.Type {
		return fmt.Errorf("conflicting access kinds %s and %s", *fr.Ty, *fr.Type)
	}

	*r = Record{Kind: fr.Ty}
	if r.Kind == nil {
		r.Kind = fr.Type
	}

	if fr.Len != nil {
		n := uint(*fr.Len)
		r.Len = &n
	}

	if fr.Addr != nil {
		addr := Addr(*fr.Addr)
		r.Addr = &addr
	}

	if fr.Before != nil {
		v := uint64(*fr.Before)
		r.Before = &v
	}

	if fr.After != nil {
		v := uint64(*fr.After)
		r.After = &v
	}

	return nil
}
