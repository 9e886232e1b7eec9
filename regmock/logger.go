package regmock

import (
	"log"

	"github.com/sarchlab/regmock/access"
	"github.com/sarchlab/regmock/hooking"
)

// AccessLogger is a hook that prints every recorded access.
type AccessLogger struct {
	logger *log.Logger
}

// NewAccessLogger returns an AccessLogger writing into logger.
func NewAccessLogger(logger *log.Logger) *AccessLogger {
	h := new(AccessLogger)

	h.logger = logger

	return h
}

// Func writes the access into the logger.
func (h *AccessLogger) Func(ctx hooking.HookCtx) {
	var (
		name     = "?"
		resolver access.Resolver
	)

	if state, ok := ctx.Domain.(*State); ok {
		name = state.Name()
		resolver = state.Resolver()
	}

	pos := "?"
	if ctx.Pos != nil {
		pos = ctx.Pos.Name
	}

	h.logger.Printf("%s: %s %s", name, pos, ctx.Record.Describe(resolver))
}
