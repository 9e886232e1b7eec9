// Package access defines the records that describe register accesses, the
// partial "matches" relation used to compare them, and the run-length encoded
// log that stores them.
package access

import (
	"fmt"
	"strings"
)

// Addr is the physical address of a memory-mapped register.
type Addr uint64

// String formats the address the way register maps usually print them.
func (a Addr) String() string {
	return fmt.Sprintf("0x%08X", uint64(a))
}

// Kind tells whether an access read or wrote a register.
type Kind int

// Kinds of register accesses.
const (
	KindRead Kind = iota + 1
	KindWrite
)

func (k Kind) String() string {
	switch k {
	case KindRead:
		return "Read"
	case KindWrite:
		return "Write"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// A Record describes one register access.
//
// Every field is optional. A nil field is absent and is ignored when records
// are compared with Matches, which allows tests to describe only the part of
// an access they care about.
type Record struct {
	Kind   *Kind
	Addr   *Addr
	Len    *uint
	Before *uint64
	After  *uint64
}

// New creates a record with every field populated.
func New(kind Kind, addr Addr, length uint, before, after uint64) Record {
	return Record{
		Kind:   &kind,
		Addr:   &addr,
		Len:    &length,
		Before: &before,
		After:  &after,
	}
}

// Read describes a read from addr.
func Read(addr Addr) Record {
	kind := KindRead
	return Record{Kind: &kind, Addr: &addr}
}

// ReadValue describes a read from addr that returned value.
func ReadValue(addr Addr, value uint64) Record {
	r := Read(addr)
	r.After = &value

	return r
}

// Write describes a write to addr.
func Write(addr Addr) Record {
	kind := KindWrite
	return Record{Kind: &kind, Addr: &addr}
}

// WriteValue describes a write to addr that stored value.
func WriteValue(addr Addr, value uint64) Record {
	r := Write(addr)
	r.After = &value

	return r
}

// Matches reports whether a and b agree on every field that is populated on
// both sides. A record with no populated field matches every record.
//
// The relation is reflexive and symmetric but not transitive: Read(A) and
// Read(B) both match a kind-only Read record, yet do not match each other. It
// must not be used where an equivalence is assumed, such as map keys.
func Matches(a, b Record) bool {
	return optMatches(a.Kind, b.Kind) &&
		optMatches(a.Addr, b.Addr) &&
		optMatches(a.Len, b.Len) &&
		optMatches(a.Before, b.Before) &&
		optMatches(a.After, b.After)
}

// Matches reports whether r matches other. See the package level Matches.
func (r Record) Matches(other Record) bool {
	return Matches(r, other)
}

// Equal reports whether r and other populate the same fields with the same
// values.
func (r Record) Equal(other Record) bool {
	return optEqual(r.Kind, other.Kind) &&
		optEqual(r.Addr, other.Addr) &&
		optEqual(r.Len, other.Len) &&
		optEqual(r.Before, other.Before) &&
		optEqual(r.After, other.After)
}

// IsRead reports whether the record is known to be a read.
func (r Record) IsRead() bool {
	return r.Kind != nil && *r.Kind == KindRead
}

// IsWrite reports whether the record is known to be a write.
func (r Record) IsWrite() bool {
	return r.Kind != nil && *r.Kind == KindWrite
}

// Targets reports whether the record is known to touch addr.
func (r Record) Targets(addr Addr) bool {
	return r.Addr != nil && *r.Addr == addr
}

// Clone returns a deep copy so that the copy does not share fields with r.
func (r Record) Clone() Record {
	return Record{
		Kind:   clonePtr(r.Kind),
		Addr:   clonePtr(r.Addr),
		Len:    clonePtr(r.Len),
		Before: clonePtr(r.Before),
		After:  clonePtr(r.After),
	}
}

// String prints the populated fields only.
func (r Record) String() string {
	return r.Describe(nil)
}

// Describe prints the populated fields, naming the register with resolver
// when one is given.
func (r Record) Describe(resolver Resolver) string {
	fields := make([]string, 0, 5)

	if r.Kind != nil {
		fields = append(fields, "kind: "+r.Kind.String())
	}

	if r.Addr != nil {
		fields = append(fields, "addr: "+resolver.Describe(*r.Addr))
	}

	if r.Len != nil {
		fields = append(fields, fmt.Sprintf("len: %d", *r.Len))
	}

	if r.Before != nil {
		fields = append(fields, fmt.Sprintf("before: 0x%08X", *r.Before))
	}

	if r.After != nil {
		fields = append(fields, fmt.Sprintf("after: 0x%08X", *r.After))
	}

	return "{" + strings.Join(fields, ", ") + "}"
}

func optMatches[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return true
	}

	return *a == *b
}

func optEqual[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	return *a == *b
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}

	v := *p

	return &v
}
