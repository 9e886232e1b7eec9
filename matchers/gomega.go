package matchers

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/onsi/gomega/types"

	"github.com/sarchlab/regmock/access"
)

// Satisfy adapts a Matcher for Gomega assertions. The actual value can be an
// iter.Seq[access.Record], a []access.Record or an access.Log, which is
// checked in its full view.
//
//	Expect(state.Log()).To(matchers.Satisfy(matchers.WrittenOnce(ctrl)))
func Satisfy(m Matcher) types.GomegaMatcher {
	return &gomegaAdapter{matcher: m}
}

type gomegaAdapter struct {
	matcher Matcher
	reason  string
}

func (g *gomegaAdapter) Match(actual any) (bool, error) {
	log, err := toSeq(actual)
	if err != nil {
		return false, err
	}

	err = g.matcher.Match(log)
	if err == nil {
		return true, nil
	}

	var me *MatchError
	if errors.As(err, &me) {
		g.reason = me.Reason
		return false, nil
	}

	return false, err
}

func (g *gomegaAdapter) FailureMessage(any) string {
	return fmt.Sprintf("Failed to match %s because:\n%s", g.matcher.Name(), g.reason)
}

func (g *gomegaAdapter) NegatedFailureMessage(any) string {
	return fmt.Sprintf("Expected %s to fail, but the accesses satisfied it",
		g.matcher.Name())
}

func toSeq(actual any) (iter.Seq[access.Record], error) {
	switch v := actual.(type) {
	case iter.Seq[access.Record]:
		return v, nil
	case func(func(access.Record) bool):
		return v, nil
	case []access.Record:
		return slices.Values(v), nil
	case access.Log:
		return v.Full(), nil
	case *access.Log:
		return v.Full(), nil
	default:
		return nil, fmt.Errorf(
			"regmock matchers expect accesses, got %T", actual)
	}
}
