package matchers

import (
	"iter"

	"github.com/sarchlab/regmock/access"
)

// WrittenBeforeMatcher requires a register to be written before another one.
type WrittenBeforeMatcher struct {
	options
	target access.Addr
	other  access.Addr
}

// WrittenBefore succeeds if, among the writes to target and other, the first
// one goes to target and a write to other follows. Additional writes do not
// matter. Reads are ignored.
func WrittenBefore(target, other access.Addr, opts ...Option) WrittenBeforeMatcher {
	return WrittenBeforeMatcher{
		options: buildOptions(opts),
		target:  target,
		other:   other,
	}
}

// Name returns "WrittenBeforeMatcher".
func (m WrittenBeforeMatcher) Name() string { return "WrittenBeforeMatcher" }

// Match checks the log.
func (m WrittenBeforeMatcher) Match(log iter.Seq[access.Record]) error {
	first := true

	for w := range writesTo(log, m.target, m.other) {
		if first {
			first = false

			if !w.Targets(m.target) {
				return fail(m.Name(),
					"Other register: %s was written to before target register: %s",
					m.reg(m.other), m.reg(m.target))
			}

			continue
		}

		if w.Targets(m.other) {
			return nil
		}
	}

	if first {
		return fail(m.Name(),
			"No writes to target register: %s or other register: %s recorded",
			m.reg(m.target), m.reg(m.other))
	}

	return fail(m.Name(),
		"Other register: %s was not written to after write to target register: %s",
		m.reg(m.other), m.reg(m.target))
}

// AllWrittenBeforeMatcher requires every write to a register to precede the
// writes to another one.
type AllWrittenBeforeMatcher struct {
	options
	target access.Addr
	other  access.Addr
}

// AllWrittenBefore succeeds if no write to target follows a write to other.
// It also succeeds when neither register is written. Reads and other
// registers are ignored.
func AllWrittenBefore(target, other access.Addr, opts ...Option) AllWrittenBeforeMatcher {
	return AllWrittenBeforeMatcher{
		options: buildOptions(opts),
		target:  target,
		other:   other,
	}
}

// Name returns "AllWrittenBeforeMatcher".
func (m AllWrittenBeforeMatcher) Name() string { return "AllWrittenBeforeMatcher" }

// Match checks the log.
func (m AllWrittenBeforeMatcher) Match(log iter.Seq[access.Record]) error {
	leading := true

	for w := range writesTo(log, m.target, m.other) {
		if leading && w.Targets(m.target) {
			continue
		}

		leading = false

		if !w.Targets(m.other) {
			return fail(m.Name(),
				"Target register: %s was written to after write to other register: %s",
				m.reg(m.target), m.reg(m.other))
		}
	}

	return nil
}
