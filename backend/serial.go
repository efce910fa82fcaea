package backend

import (
	"context"

	"github.com/gogpu/compute/dispatch"
)

func init() {
	Register(EngineSerial, func() Engine { return Serial{} })
}

// Serial runs groups one after another on the calling goroutine, in
// Z, Y, X order. The context is checked between groups.
type Serial struct{}

// Name returns the engine identifier.
func (Serial) Name() string { return EngineSerial }

// Run executes plan.
func (Serial) Run(ctx context.Context, plan dispatch.Plan, fn func(dispatch.Invocation)) error {
	n := plan.Groups.Count()
	slogger().Debug("backend: serial run", "grid", plan.Grid, "group", plan.Group, "groups", n)

	for i := range n {
		if err := ctx.Err(); err != nil {
			return err
		}
		plan.Each(plan.GroupAt(i), fn)
	}
	return nil
}
