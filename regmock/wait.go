package regmock

import (
	"fmt"
	"runtime"
	"time"

	"github.com/sarchlab/regmock/access"
)

// TimeoutError reports that a register was not polled in time.
type TimeoutError struct {
	Addr      access.Addr
	Name      string
	Threshold int
	Timeout   time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf(
		"timed out after %v waiting for %s to be polled more than %d times",
		e.Timeout, e.Name, e.Threshold)
}

// WaitUntilPolled blocks until the last recorded access is a read of addr
// repeated more than threshold times, which means the DUT is busy-waiting on
// the register. A timeout of zero or less waits forever.
//
// The driver gives no notification when it starts polling, so the log is
// checked repeatedly. The lock is only held for each check and the processor
// is yielded in between, which keeps a DUT goroutine on the same State
// running.
func (s *State) WaitUntilPolled(
	addr access.Addr,
	threshold int,
	timeout time.Duration,
) error {
	start := time.Now()

	for !s.IsBeingPolled(addr, threshold) {
		if timeout > 0 && time.Since(start) > timeout {
			return &TimeoutError{
				Addr:      addr,
				Name:      s.resolver.Describe(addr),
				Threshold: threshold,
				Timeout:   timeout,
			}
		}

		runtime.Gosched()
	}

	return nil
}
