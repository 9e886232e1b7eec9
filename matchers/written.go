package matchers

import (
	"iter"

	"github.com/sarchlab/regmock/access"
)

// ReadLastMatcher requires the last access to a register to be a read.
type ReadLastMatcher struct {
	options
	target access.Addr
}

// ReadLast succeeds if target was accessed and its last access, ignoring
// other registers, is a read.
func ReadLast(target access.Addr, opts ...Option) ReadLastMatcher {
	return ReadLastMatcher{options: buildOptions(opts), target: target}
}

// Name returns "ReadLastMatcher".
func (m ReadLastMatcher) Name() string { return "ReadLastMatcher" }

// Match checks the log.
func (m ReadLastMatcher) Match(log iter.Seq[access.Record]) error {
	var (
		last     access.Record
		accessed bool
	)

	for r := range log {
		if r.Targets(m.target) {
			last = r
			accessed = true
		}
	}

	if !accessed {
		return fail(m.Name(), "Register: %s was not accessed.", m.reg(m.target))
	}

	if !last.IsRead() {
		kind := "unknown"
		if last.Kind != nil {
			kind = last.Kind.String()
		}

		return fail(m.Name(), "Last access to register: %s was: %s",
			m.reg(m.target), kind)
	}

	return nil
}

// NotWrittenMatcher requires a register to never be written.
type NotWrittenMatcher struct {
	options
	target access.Addr
}

// NotWritten succeeds if target is never written. Reads are ignored.
func NotWritten(target access.Addr, opts ...Option) NotWrittenMatcher {
	return NotWrittenMatcher{options: buildOptions(opts), target: target}
}

// Name returns "NotWrittenMatcher".
func (m NotWrittenMatcher) Name() string { return "NotWrittenMatcher" }

// Match checks the log.
func (m NotWrittenMatcher) Match(log iter.Seq[access.Record]) error {
	if n := count(writesTo(log, m.target)); n != 0 {
		return fail(m.Name(), "Register: %s was written to %d times",
			m.reg(m.target), n)
	}

	return nil
}

// WrittenOnceMatcher requires a register to be written exactly once.
type WrittenOnceMatcher struct {
	options
	target access.Addr
}

// WrittenOnce succeeds if target is written exactly once. Reads are ignored.
func WrittenOnce(target access.Addr, opts ...Option) WrittenOnceMatcher {
	return WrittenOnceMatcher{options: buildOptions(opts), target: target}
}

// Name returns "WrittenOnceMatcher".
func (m WrittenOnceMatcher) Name() string { return "WrittenOnceMatcher" }

// Match checks the log.
func (m WrittenOnceMatcher) Match(log iter.Seq[access.Record]) error {
	if n := count(writesTo(log, m.target)); n != 1 {
		return fail(m.Name(), "Register: %s was written to %d times",
			m.reg(m.target), n)
	}

	return nil
}
