package cli

import (
	"github.com/spf13/cobra"

	"github.com/solhycool/visualizations/internal/application/summary"
	"github.com/solhycool/visualizations/internal/config"
	"github.com/solhycool/visualizations/internal/domain/result"
	"github.com/solhycool/visualizations/internal/infrastructure/monitoring/logging"
	"github.com/solhycool/visualizations/internal/infrastructure/storage/localfs"
)

// loadPoints reads the consolidated index, optionally refreshing it first,
// and decodes its points with the Pareto flags set.
func loadPoints(cfg *config.Config, logger logging.Logger, refresh bool) ([]summary.Point, error) {
	_, metrics, err := newMetrics(cfg, logger)
	if err != nil {
		return nil, err
	}
	agg := newAggregator(cfg, logger, metrics)

	var idx result.Index
	if refresh {
		res, err := agg.Aggregate()
		if err != nil {
			return nil, err
		}
		idx = res.Index
	} else {
		idx, err = agg.LoadIndex()
		if err != nil {
			return nil, err
		}
	}
	return summary.Points(idx)
}

func newExportCmd() *cobra.Command {
	flags := &pipelineFlags{}
	var (
		file    string
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the index as a flat CSV table",
		Long: "Flatten the consolidated index to one CSV row per operating point with\n" +
			"condition, point and pareto columns followed by one <group>_<field> column\n" +
			"per numeric record field.",
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
			table := summary.Flatten(points)

			if file != "" && file != "-" {
				err = localfs.WriteAtomic(file, 0o644, table.WriteCSV)
			} else {
				err = table.WriteCSV(cmd.OutOrStdout())
			}
			if err != nil {
				return err
			}
			cliCtx.Logger.Info("index exported",
				logging.Int("rows", len(table.Rows)),
				logging.Int("columns", len(table.Columns)),
				logging.String("file", file))
			return nil
		},
	}
	flags.registerResults(cmd)
	cmd.Flags().StringVarP(&file, "file", "f", "", "destination CSV file (default: stdout)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "aggregate the results folder before exporting")
	return cmd
}

//Personal.AI order the ending
