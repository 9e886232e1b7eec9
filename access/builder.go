package access

// RecordBuilder builds partial records field by field.
//
//	r := access.RecordBuilder{}.WithKind(access.KindRead).WithAfter(10).Build()
type RecordBuilder struct {
	record Record
}

// WithKind sets the kind of the access.
func (b RecordBuilder) WithKind(kind Kind) RecordBuilder {
	b.record.Kind = &kind
	return b
}

// WithAddr sets the accessed register.
func (b RecordBuilder) WithAddr(addr Addr) RecordBuilder {
	b.record.Addr = &addr
	return b
}

// WithLen sets the width of the access in bytes.
func (b RecordBuilder) WithLen(length uint) RecordBuilder {
	b.record.Len = &length
	return b
}

// WithBefore sets the register value before the access.
func (b RecordBuilder) WithBefore(value uint64) RecordBuilder {
	b.record.Before = &value
	return b
}

// WithAfter sets the register value after the access.
func (b RecordBuilder) WithAfter(value uint64) RecordBuilder {
	b.record.After = &value
	return b
}

// Build returns the record. The builder can keep being used afterwards.
func (b RecordBuilder) Build() Record {
	return b.record.Clone()
}
