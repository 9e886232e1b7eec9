package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sarchlab/regmock/access"
	"github.com/sarchlab/regmock/matchers"
)

const rulesHelp = `Rules:
  read-last=ADDR               the last access to ADDR is a read
  not-written=ADDR             ADDR is never written
  written-once=ADDR            ADDR is written exactly once
  written-before=ADDR,OTHER    ADDR is written first and OTHER afterwards
  all-written-before=ADDR,OTHER  no write to ADDR follows a write to OTHER
  written-sequence=ADDR:V,V... the values written to ADDR, in order`

func newMatchCommand(cfg *config) *cobra.Command {
	var rules []string

	c := &cobra.Command{
		Use:   "match actual.json --rule RULE...",
		Short: "Run access matchers against a recorded log",
		Long:  "Run access matchers against a recorded log.\n\n" + rulesHelp,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(rules) == 0 {
				return fmt.Errorf("no rules given\n\n%s", rulesHelp)
			}

			actual, err := loadFixtureFile(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			failed := 0

			for _, rule := range rules {
				m, err := parseRule(rule, matchers.WithResolver(cfg.resolver))
				if err != nil {
					return err
				}

				if err := m.Match(cfg.viewOf(actual)); err != nil {
					failed++
					fmt.Fprintf(out, "FAIL\t%s\t%s\n", rule, err)

					continue
				}

				fmt.Fprintf(out, "OK\t%s\n", rule)
			}

			if failed > 0 {
				return fmt.Errorf("%w: %d of %d rules failed",
					ErrMismatch, failed, len(rules))
			}

			return nil
		},
	}

	c.Flags().StringArrayVarP(&rules, "rule", "r", nil, "matcher rule, may be repeated")

	return c
}

func parseRule(rule string, opt matchers.Option) (matchers.Matcher, error) {
	name, arg, ok := strings.Cut(rule, "=")
	if !ok {
		return nil, fmt.Errorf("rule %q has no argument", rule)
	}

	switch name {
	case "read-last", "not-written", "written-once":
		addr, err := parseAddr(arg)
		if err != nil {
			return nil, err
		}

		switch name {
		case "read-last":
			return matchers.ReadLast(addr, opt), nil
		case "not-written":
			return matchers.NotWritten(addr, opt), nil
		default:
			return matchers.WrittenOnce(addr, opt), nil
		}
	case "written-before", "all-written-before":
		target, other, err := parseAddrPair(arg)
		if err != nil {
			return nil, err
		}

		if name == "written-before" {
			return matchers.WrittenBefore(target, other, opt), nil
		}

		return matchers.AllWrittenBefore(target, other, opt), nil
	case "written-sequence":
		return parseWrittenSequence(arg, opt)
	default:
		return nil, fmt.Errorf("unknown rule %q\n\n%s", name, rulesHelp)
	}
}

func parseAddrPair(arg string) (access.Addr, access.Addr, error) {
	a, b, ok := strings.Cut(arg, ",")
	if !ok {
		return 0, 0, fmt.Errorf("expected two addresses, got %q", arg)
	}

	target, err := parseAddr(a)
	if err != nil {
		return 0, 0, err
	}

	other, err := parseAddr(b)
	if err != nil {
		return 0, 0, err
	}

	return target, other, nil
}

func parseWrittenSequence(arg string, opt matchers.Option) (matchers.Matcher, error) {
	a, list, ok := strings.Cut(arg, ":")
	if !ok {
		return nil, fmt.Errorf("expected ADDR:V,V..., got %q", arg)
	}

	addr, err := parseAddr(a)
	if err != nil {
		return nil, err
	}

	var values []uint64

	if list != "" {
		for _, field := range strings.Split(list, ",") {
			v, err := strconv.ParseUint(strings.TrimSpace(field), 0, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid value %q", field)
			}

			values = append(values, v)
		}
	}

	return matchers.WrittenSequence(addr, values, opt), nil
}
