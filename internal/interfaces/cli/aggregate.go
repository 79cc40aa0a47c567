package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/solhycool/visualizations/internal/infrastructure/monitoring/logging"
)

// AggregateReport is the outcome of one aggregation pass.
type AggregateReport struct {
	Index         string   `json:"index"`
	Files         int      `json:"files"`
	Conditions    int      `json:"conditions"`
	Points        int      `json:"points"`
	NewConditions int      `json:"new_conditions"`
	NewPoints     []string `json:"new_points"`
}

func (r *AggregateReport) String() string {
	return fmt.Sprintf("Aggregated %d files into %s: %d conditions (%d new), %d points (%d new)",
		r.Files, r.Index, r.Conditions, r.NewConditions, r.Points, len(r.NewPoints))
}

func (r *AggregateReport) TableHeaders() []string {
	return []string{"INDEX", "FILES", "CONDITIONS", "POINTS", "NEW CONDITIONS", "NEW POINTS"}
}

func (r *AggregateReport) TableRows() [][]string {
	return [][]string{{
		r.Index,
		strconv.Itoa(r.Files),
		strconv.Itoa(r.Conditions),
		strconv.Itoa(r.Points),
		strconv.Itoa(r.NewConditions),
		strconv.Itoa(len(r.NewPoints)),
	}}
}

func newAggregateCmd() *cobra.Command {
	flags := &pipelineFlags{}
	cmd := &cobra.Command{
		Use:   "aggregate",
		Short: "Merge the result files into the consolidated index",
		Long:  "Run one aggregation pass over the results folder and rewrite the consolidated index.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			cfg := flags.apply(cmd, cliCtx.Config)
			_, metrics, err := newMetrics(cfg, cliCtx.Logger)
			if err != nil {
				return err
			}

			agg := newAggregator(cfg, cliCtx.Logger, metrics)
			res, err := agg.Aggregate()
			if err != nil {
				return err
			}

			report := &AggregateReport{
				Index:         agg.IndexPath(),
				Files:         res.Files,
				Conditions:    len(res.Index),
				Points:        res.Index.Len(),
				NewConditions: res.NewConditions,
				NewPoints:     make([]string, 0, len(res.NewKeys)),
			}
			for _, k := range res.NewKeys {
				report.NewPoints = append(report.NewPoints, k.String())
			}
			cliCtx.Logger.Debug("aggregate command finished", logging.Int("new_points", len(report.NewPoints)))
			return PrintResult(cmd, report)
		},
	}
	flags.registerResults(cmd)
	return cmd
}

//Personal.AI order the ending
