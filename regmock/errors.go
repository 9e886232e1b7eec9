package regmock

import "errors"

// Misuse of the mock harness is fatal. The operations below panic with one of
// these errors, wrapped with details, instead of returning it.
var (
	// ErrNotInstalled is raised when a participant uses a registry before
	// installing a State.
	ErrNotInstalled = errors.New("regmock: no mock installed")

	// ErrAlreadyInstalled is raised when a participant installs a second
	// State.
	ErrAlreadyInstalled = errors.New("regmock: mock already installed")

	// ErrPoisoned is raised when a State is used after a behavior or hook
	// panicked while holding its lock.
	ErrPoisoned = errors.New("regmock: mock poisoned by a panic")
)
