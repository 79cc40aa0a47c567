package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/solhycool/visualizations/internal/application/summary"
)

// summaryReport is the per-condition overview of the index.
type summaryReport struct {
	Conditions []summary.ConditionSummary `json:"conditions"`
}

func (r summaryReport) String() string {
	if len(r.Conditions) == 0 {
		return "Index is empty"
	}
	var sb strings.Builder
	for _, c := range r.Conditions {
		fmt.Fprintf(&sb, "%s: %d points, %d on the Pareto front, Ce %s..%s kWe, Cw %s..%s L/h\n",
			c.Condition, c.Points, c.Pareto,
			formatValue(c.MinElectricity), formatValue(c.MaxElectricity),
			formatValue(c.MinWater), formatValue(c.MaxWater))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func (r summaryReport) TableHeaders() []string {
	return []string{"CONDITION", "POINTS", "PARETO", "MIN CE", "MAX CE", "MIN CW", "MAX CW"}
}

func (r summaryReport) TableRows() [][]string {
	rows := make([][]string, 0, len(r.Conditions))
	for _, c := range r.Conditions {
		rows = append(rows, []string{
			c.Condition,
			strconv.Itoa(c.Points),
			strconv.Itoa(c.Pareto),
			formatValue(c.MinElectricity),
			formatValue(c.MaxElectricity),
			formatValue(c.MinWater),
			formatValue(c.MaxWater),
		})
	}
	return rows
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func newSummaryCmd() *cobra.Command {
	flags := &pipelineFlags{}
	var (
		asCSV   bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarize the index per operating condition",
		Long: "Print, for every operating condition, the number of operating points, the\n" +
			"size of its Pareto front and the consumption bounds across its points.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			cfg := flags.apply(cmd, cliCtx.Config)

			points, err := loadPoints(cfg, cliCtx.Logger, refresh)
			if err != nil {
				return err
			}
			rows := summary.Summarize(points)
			if asCSV {
				return summary.WriteSummaryCSV(cmd.OutOrStdout(), rows)
			}
			if rows == nil {
				rows = []summary.ConditionSummary{}
			}
			return PrintResult(cmd, summaryReport{Conditions: rows})
		},
	}
	flags.registerResults(cmd)
	cmd.Flags().BoolVar(&asCSV, "csv", false, "write the summary as CSV")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "aggregate the results folder before summarizing")
	return cmd
}

//Personal.AI order the ending
