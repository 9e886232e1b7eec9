package matchers

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/sarchlab/regmock/access"
)

// WrittenSequenceMatcher requires the exact sequence of values written to a
// register.
type WrittenSequenceMatcher struct {
	options
	target access.Addr
	values []uint64
}

// WrittenSequence succeeds if the values written to target are exactly
// values, in order. Reads and writes to other registers are ignored.
func WrittenSequence(
	target access.Addr,
	values []uint64,
	opts ...Option,
) WrittenSequenceMatcher {
	return WrittenSequenceMatcher{
		options: buildOptions(opts),
		target:  target,
		values:  slices.Clone(values),
	}
}

// Name returns "WrittenSequenceMatcher".
func (m WrittenSequenceMatcher) Name() string { return "WrittenSequenceMatcher" }

// Match checks the log.
func (m WrittenSequenceMatcher) Match(log iter.Seq[access.Record]) error {
	var written iter.Seq[uint64] = func(yield func(uint64) bool) {
		for w := range writesTo(log, m.target) {
			if w.After != nil && !yield(*w.After) {
				return
			}
		}
	}

	d := diffSequences(written, slices.Values(m.values),
		func(a, e uint64) bool { return a == e })
	if d == nil {
		return nil
	}

	switch d.kind {
	case surplusActual:
		return fail(m.Name(),
			"Found more writes to %s than expected. Expected %d writes.\n"+
				"Values of the surplus writes are:\n%s",
			m.reg(m.target), d.index, hexLines(d.actual))
	case missingExpected:
		return fail(m.Name(),
			"Expected more writes to %s. Only %d values were written.\n"+
				"Values of the remaining expected writes are:\n%s",
			m.reg(m.target), d.index, hexLines(d.expected))
	default:
		return fail(m.Name(),
			"Actual writes to %s differ from expected writes at index: %d "+
				"with actual: 0x%08X and expected: 0x%08X",
			m.reg(m.target), d.index, d.actual[0], d.expected[0])
	}
}

// LogSequenceMatcher compares whole access sequences.
type LogSequenceMatcher struct {
	options
	expected []access.Record
}

// LogSequence succeeds if the log has as many accesses as expected and each
// access matches the expected record at the same position, using the partial
// access.Matches relation. It covers every register and both kinds.
func LogSequence(expected []access.Record, opts ...Option) LogSequenceMatcher {
	return LogSequenceMatcher{
		options:  buildOptions(opts),
		expected: slices.Clone(expected),
	}
}

// Name returns "LogSequenceMatcher".
func (m LogSequenceMatcher) Name() string { return "LogSequenceMatcher" }

// Match checks the log.
func (m LogSequenceMatcher) Match(log iter.Seq[access.Record]) error {
	d := diffSequences(log, slices.Values(m.expected), access.Matches)
	if d == nil {
		return nil
	}

	switch d.kind {
	case surplusActual:
		return fail(m.Name(),
			"Found more accesses than expected. Expected %d accesses.\n"+
				"The surplus accesses are:\n%s",
			d.index, m.recordLines(d.actual))
	case missingExpected:
		return fail(m.Name(),
			"Expected more accesses. Only %d accesses were recorded.\n"+
				"The remaining expected accesses are:\n%s",
			d.index, m.recordLines(d.expected))
	default:
		return fail(m.Name(),
			"Actual register accesses differ from expected accesses at index: %d with\n"+
				"expected: %s\nactual:   %s",
			d.index,
			d.expected[0].Describe(m.resolver),
			d.actual[0].Describe(m.resolver))
	}
}

func (m LogSequenceMatcher) recordLines(records []access.Record) string {
	lines := make([]string, len(records))
	for i, r := range records {
		lines[i] = r.Describe(m.resolver)
	}

	return strings.Join(lines, "\n")
}

func hexLines(values []uint64) string {
	lines := make([]string, len(values))
	for i, v := range values {
		lines[i] = fmt.Sprintf("0x%08X", v)
	}

	return strings.Join(lines, "\n")
}
