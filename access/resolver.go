package access

import "fmt"

// A Resolver maps a register address to a human readable name. It returns
// false when the address is unknown.
type Resolver func(addr Addr) (string, bool)

// Name returns the register name, or the hex address if the resolver is nil
// or does not know addr.
func (r Resolver) Name(addr Addr) string {
	if r != nil {
		if name, ok := r(addr); ok {
			return name
		}
	}

	return addr.String()
}

// Describe returns the hex address, followed by the register name in
// parentheses when it is known.
func (r Resolver) Describe(addr Addr) string {
	if r != nil {
		if name, ok := r(addr); ok {
			return fmt.Sprintf("%s (%s)", addr, name)
		}
	}

	return addr.String()
}

// MapResolver resolves names from a fixed table.
func MapResolver(names map[Addr]string) Resolver {
	return func(addr Addr) (string, bool) {
		name, ok := names[addr]
		return name, ok
	}
}
