// Package matchers checks properties of recorded register accesses.
//
// A matcher is built with the register(s) and values it is about, and is then
// run once against any sequence of records: the compressed or full view of an
// access.Log, or a filtered subsequence.
//
//	log := state.Log()
//	err := matchers.WrittenOnce(ctrl).Match(log.Full())
package matchers

import (
	"fmt"
	"iter"

	"github.com/sarchlab/regmock/access"
)

// A Matcher checks a sequence of register accesses.
type Matcher interface {
	// Name identifies the matcher in failure reports.
	Name() string

	// Match returns nil if the sequence satisfies the matcher and a
	// *MatchError describing the violation otherwise.
	Match(log iter.Seq[access.Record]) error
}

// MatchError is the failure of a matcher.
type MatchError struct {
	Name   string
	Reason string
}

func (e *MatchError) Error() string {
	return fmt.Sprintf("%s: %s", e.Name, e.Reason)
}

func fail(name, format string, args ...any) error {
	return &MatchError{Name: name, Reason: fmt.Sprintf(format, args...)}
}

// An Option adjusts how a matcher reports failures.
type Option func(*options)

type options struct {
	resolver access.Resolver
}

// WithResolver makes failure reports name registers.
func WithResolver(resolver access.Resolver) Option {
	return func(o *options) {
		o.resolver = resolver
	}
}

func buildOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

func (o options) reg(addr access.Addr) string {
	return o.resolver.Describe(addr)
}

// Filter yields the records of log for which keep returns true.
func Filter(
	log iter.Seq[access.Record],
	keep func(access.Record) bool,
) iter.Seq[access.Record] {
	return func(yield func(access.Record) bool) {
		for r := range log {
			if keep(r) && !yield(r) {
				return
			}
		}
	}
}

func writesTo(log iter.Seq[access.Record], addrs ...access.Addr) iter.Seq[access.Record] {
	return Filter(log, func(r access.Record) bool {
		if !r.IsWrite() {
			return false
		}

		for _, a := range addrs {
			if r.Targets(a) {
				return true
			}
		}

		return false
	})
}

func count(log iter.Seq[access.Record]) int {
	n := 0
	for range log {
		n++
	}

	return n
}
