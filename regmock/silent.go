package regmock

// Silent runs body with capture and callbacks disabled and restores both
// flags afterwards, even if body panics.
//
// Calls nest: an inner Silent restores the flags of the enclosing Silent,
// which are still disabled, and flags changed inside body are discarded on
// return.
func (s *State) Silent(body func()) {
	var capture, callbacks bool

	s.do(func() {
		capture, callbacks = s.capture, s.callbacks
		s.capture, s.callbacks = false, false
	})

	// No poison check here: a panic raised by body must surface unchanged.
	defer func() {
		s.mu.Lock()
		s.capture, s.callbacks = capture, callbacks
		s.mu.Unlock()
	}()

	body()
}

// SilentValue is Silent for a body that returns a value.
func SilentValue[T any](s *State, body func() T) T {
	var out T

	s.Silent(func() { out = body() })

	return out
}

// SetCapture enables or disables logging of accesses. Register values are
// updated either way.
func (s *State) SetCapture(enabled bool) {
	s.do(func() { s.capture = enabled })
}

// Capture reports whether accesses are logged.
func (s *State) Capture() bool {
	var enabled bool

	s.do(func() { enabled = s.capture })

	return enabled
}

// SetCallbacks enables or disables the read and write behaviors.
func (s *State) SetCallbacks(enabled bool) {
	s.do(func() { s.callbacks = enabled })
}

// Callbacks reports whether read and write behaviors run.
func (s *State) Callbacks() bool {
	var enabled bool

	s.do(func() { enabled = s.callbacks })

	return enabled
}
