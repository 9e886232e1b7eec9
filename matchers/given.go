package matchers

import (
	"errors"
	"iter"

	"github.com/sarchlab/regmock/access"
)

// TestingT is the part of testing.T that Given needs. GinkgoT() satisfies it
// as well.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
}

// Given fails the test if m does not accept log.
func Given(t TestingT, log iter.Seq[access.Record], m Matcher) {
	t.Helper()

	err := m.Match(log)
	if err == nil {
		return
	}

	var me *MatchError
	if errors.As(err, &me) {
		t.Fatalf("\nFailed to match %s because:\n'%s'", me.Name, me.Reason)
		return
	}

	t.Fatalf("\nFailed to run %s: %v", m.Name(), err)
}
