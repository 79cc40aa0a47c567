package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/solhycool/visualizations/internal/application/pipeline"
	"github.com/solhycool/visualizations/internal/infrastructure/monitoring/logging"
)

// runReport prints a pipeline RunStatus.
type runReport struct {
	*pipeline.RunStatus
}

func (r runReport) String() string {
	outcome := color.GreenString(r.Outcome)
	if r.Failed > 0 || r.PublishErr > 0 {
		outcome = color.YellowString(r.Outcome)
	}
	return fmt.Sprintf("Run %s %s in %s: %d files, %d points (%d new), %d rendered, %d skipped, %d failed, %d publish errors",
		r.RunID, outcome, r.Duration.Round(time.Millisecond), r.Files, r.Points, r.NewPoints,
		r.Rendered, r.Skipped, r.Failed, r.PublishErr)
}

func (r runReport) TableHeaders() []string {
	return []string{"RUN", "OUTCOME", "FILES", "POINTS", "NEW", "RENDERED", "SKIPPED", "FAILED", "PUBLISH ERRORS"}
}

func (r runReport) TableRows() [][]string {
	return [][]string{{
		r.RunID,
		r.Outcome,
		strconv.Itoa(r.Files),
		strconv.Itoa(r.Points),
		strconv.Itoa(r.NewPoints),
		strconv.Itoa(r.Rendered),
		strconv.Itoa(r.Skipped),
		strconv.Itoa(r.Failed),
		strconv.Itoa(r.PublishErr),
	}}
}

func newRenderCmd() *cobra.Command {
	flags := &pipelineFlags{}
	var publish bool

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Aggregate once and render every missing diagram",
		Long: "Run the pipeline once without the watch gate: aggregate the results folder,\n" +
			"render a diagram for every operating point that has none, and optionally hand\n" +
			"the new artifacts to the configured publishers.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			cfg := flags.apply(cmd, cliCtx.Config)

			a, err := newApp(cmd.Context(), cfg, cliCtx.Logger, publish)
			if err != nil {
				return err
			}
			defer func() {
				if err := a.Close(); err != nil {
					cliCtx.Logger.Warn("failed to close publishers", logging.Err(err))
				}
			}()

			status, err := a.pipeline.Run(cmd.Context(), pipeline.TriggerManual)
			if err != nil {
				return err
			}
			return PrintResult(cmd, runReport{status})
		},
	}
	flags.registerDiagram(cmd)
	cmd.Flags().BoolVar(&publish, "publish", false, "hand new artifacts to the publishers enabled in the config")
	return cmd
}

//Personal.AI order the ending
