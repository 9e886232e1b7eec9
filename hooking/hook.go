// Package hooking lets observers follow the register accesses recorded by a
// mock without taking part in them.
package hooking

import (
	"reflect"

	"github.com/sarchlab/regmock/access"
)

// HookPos names the point in an access pipeline where hooks run.
type HookPos struct {
	Name string
}

// HookCtx carries what a hook learns about one access.
type HookCtx struct {
	// Domain is the object that performed the access.
	Domain Hookable

	// Pos tells which kind of operation triggered the hook.
	Pos *HookPos

	// Record is the access as it was appended to the log.
	Record access.Record

	// Requested is the value the caller asked to write. For reads it equals
	// the value read.
	Requested uint64
}

// Hookable defines an object that accepts Hooks.
type Hookable interface {
	// AcceptHook registers a hook.
	AcceptHook(hook Hook)

	// NumHooks returns the number of hooks registered.
	NumHooks() int

	// Hooks returns all the hooks registered.
	Hooks() []Hook
}

// Hook is a short piece of program that is invoked on every recorded access.
type Hook interface {
	Func(ctx HookCtx)
}

// HookFunc turns a function into a Hook.
type HookFunc func(ctx HookCtx)

// Func calls f.
func (f HookFunc) Func(ctx HookCtx) {
	f(ctx)
}

// HookableBase implements the bookkeeping of Hookable. It does no locking;
// embedders serialize access themselves.
type HookableBase struct {
	hookList []Hook
}

// NumHooks returns the number of hooks registered.
func (h *HookableBase) NumHooks() int {
	return len(h.hookList)
}

// Hooks returns a copy of the registered hooks.
func (h *HookableBase) Hooks() []Hook {
	out := make([]Hook, len(h.hookList))
	copy(out, h.hookList)

	return out
}

// AcceptHook registers a hook. Registering the same hook twice panics.
func (h *HookableBase) AcceptHook(hook Hook) {
	h.mustNotHaveDuplicatedHook(hook)
	h.hookList = append(h.hookList, hook)
}

func (h *HookableBase) mustNotHaveDuplicatedHook(hook Hook) {
	for _, existing := range h.hookList {
		if sameHook(existing, hook) {
			panic("duplicated hook")
		}
	}
}

// sameHook compares hooks by identity. Hooks of non-comparable types, such
// as HookFunc, are never treated as duplicates.
func sameHook(a, b Hook) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}

	return a == b
}

// InvokeHook runs every registered hook in registration order.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.hookList {
		hook.Func(ctx)
	}
}
