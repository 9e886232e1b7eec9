package matchers

import "iter"

type diffKind int

const (
	firstMismatch diffKind = iota + 1
	surplusActual
	missingExpected
)

// sequenceDiff describes where two sequences stop agreeing. actual and
// expected hold the remaining elements from index on.
type sequenceDiff[A, E any] struct {
	kind     diffKind
	index    int
	actual   []A
	expected []E
}

// diffSequences walks both sequences in lockstep and returns nil if they have
// the same length and eq holds pairwise.
func diffSequences[A, E any](
	actual iter.Seq[A],
	expected iter.Seq[E],
	eq func(a A, e E) bool,
) *sequenceDiff[A, E] {
	nextActual, stopActual := iter.Pull(actual)
	defer stopActual()

	nextExpected, stopExpected := iter.Pull(expected)
	defer stopExpected()

	for index := 0; ; index++ {
		a, hasActual := nextActual()
		e, hasExpected := nextExpected()

		switch {
		case !hasActual && !hasExpected:
			return nil
		case !hasExpected:
			return &sequenceDiff[A, E]{
				kind:   surplusActual,
				index:  index,
				actual: append([]A{a}, drain(nextActual)...),
			}
		case !hasActual:
			return &sequenceDiff[A, E]{
				kind:     missingExpected,
				index:    index,
				expected: append([]E{e}, drain(nextExpected)...),
			}
		case !eq(a, e):
			return &sequenceDiff[A, E]{
				kind:     firstMismatch,
				index:    index,
				actual:   append([]A{a}, drain(nextActual)...),
				expected: append([]E{e}, drain(nextExpected)...),
			}
		}
	}
}

func drain[T any](next func() (T, bool)) []T {
	var rest []T

	for {
		v, ok := next()
		if !ok {
			return rest
		}

		rest = append(rest, v)
	}
}
