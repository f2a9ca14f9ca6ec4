// Package tracing turns hook notifications of PEPC cores and stimulus drivers
// into database rows and log lines.
package tracing

import (
	"fmt"
	"reflect"

	"github.com/sarchlab/pepc/sim"
)

type hookLister interface {
	Hooks() []sim.Hook
}

// CollectTrace attaches a hook to a domain. Attaching the same hook twice
// panics.
func CollectTrace(domain sim.Component, hook sim.Hook) {
	l, ok := domain.(hookLister)
	if ok && reflect.TypeOf(hook).Comparable() {
		for _, h := range l.Hooks() {
			if h == hook {
				panic(fmt.Sprintf("domain %s already has hook %s",
					domain.Name(), reflect.TypeOf(hook)))
			}
		}
	}

	domain.AcceptHook(hook)
}

func domainName(ctx sim.HookCtx) string {
	if n, ok := ctx.Domain.(sim.Named); ok {
		return n.Name()
	}

	return ""
}
