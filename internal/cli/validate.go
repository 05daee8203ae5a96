package cli

import (
	"fmt"

	"github.com/aristath/pulse/internal/modules/wellness"
)

type ValidateCmd struct {
	Source SourceFlags `embed:""`
}

func (cmd *ValidateCmd) Run(ctx *Context) error {
	source, release, err := cmd.Source.open(ctx)
	if err != nil {
		return err
	}
	defer release()

	ds, err := source.Load(ctx.Ctx)
	if err != nil {
		return err
	}

	all := ds.Baseline()
	fmt.Fprintf(ctx.Out, "%s: %d rows, %s to %s\n",
		source.Name(),
		ds.Len(),
		all.Start().Format(wellness.DateLayout),
		all.End().Format(wellness.DateLayout),
	)
	return nil
}
