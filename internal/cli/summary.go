package cli

import (
	"encoding/json"
	"fmt"

	"github.com/aristath/pulse/internal/modules/wellness"
)

type SummaryCmd struct {
	Source   SourceFlags   `embed:""`
	Analysis AnalysisFlags `embed:""`

	Indent bool `help:"Pretty-print the JSON output."`
}

func (cmd *SummaryCmd) Run(ctx *Context) error {
	summarizer, err := wellness.NewSummarizer(cmd.Analysis.config())
	if err != nil {
		return err
	}

	source, release, err := cmd.Source.open(ctx)
	if err != nil {
		return err
	}
	defer release()

	service := wellness.NewService(source, summarizer, nil, ctx.Log)
	summary, err := service.WeeklySummary(ctx.Ctx)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(ctx.Out)
	if cmd.Indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(summary); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}
