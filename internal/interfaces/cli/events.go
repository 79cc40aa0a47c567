package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/solhycool/visualizations/internal/domain/artifact"
	"github.com/solhycool/visualizations/internal/infrastructure/messaging/kafka"
	"github.com/solhycool/visualizations/internal/infrastructure/monitoring/logging"
	"github.com/solhycool/visualizations/pkg/errors"
)

// errLimitReached stops consumption after --limit events.
var errLimitReached = errors.New(errors.ErrCodeOK, "event limit reached")

// formatEvent renders one envelope as a single line.
func formatEvent(env *kafka.EventEnvelope) string {
	ts := env.Timestamp.UTC().Format("2006-01-02T15:04:05Z")
	ev := env.Payload
	switch ev.Type {
	case artifact.EventDiagramRendered:
		return fmt.Sprintf("%s %s run=%s %s/%s theme=%s path=%s",
			ts, color.CyanString(env.EventType), ev.RunID, ev.Condition, ev.Point, ev.Theme, ev.Path)
	case artifact.EventIndexUpdated:
		return fmt.Sprintf("%s %s run=%s conditions=%d points=%d path=%s",
			ts, color.GreenString(env.EventType), ev.RunID, ev.Conditions, ev.Points, ev.Path)
	default:
		return fmt.Sprintf("%s %s run=%s source=%s", ts, env.EventType, ev.RunID, env.Source)
	}
}

// eventPrinter returns a handler printing each envelope, failing with
// errLimitReached once limit events were printed. A limit of zero is
// unbounded.
func eventPrinter(cmd *cobra.Command, format string, limit int) kafka.EventHandler {
	seen := 0
	return func(_ context.Context, env *kafka.EventEnvelope) error {
		var err error
		if format == OutputJSON {
			err = printJSON(cmd, env)
		} else {
			_, err = fmt.Fprintln(cmd.OutOrStdout(), formatEvent(env))
		}
		if err != nil {
			return err
		}
		seen++
		if limit > 0 && seen >= limit {
			return errLimitReached
		}
		return nil
	}
}

func newEventsCmd() *cobra.Command {
	var (
		brokers       []string
		topic         string
		group         string
		fromBeginning bool
		limit         int
	)

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Follow the artifact events published to Kafka",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			cfg := cliCtx.Config.Kafka
			if len(brokers) > 0 {
				cfg.Brokers = brokers
			}
			if topic != "" {
				cfg.Topic = topic
			}

			consumer, err := kafka.NewConsumer(kafka.ConsumerConfig{
				Brokers:       cfg.Brokers,
				Topic:         cfg.Topic,
				GroupID:       group,
				FromBeginning: fromBeginning,
			}, cliCtx.Logger.Named("kafka"))
			if err != nil {
				return err
			}
			defer func() {
				if err := consumer.Close(); err != nil {
					cliCtx.Logger.Warn("failed to close consumer", logging.Err(err))
				}
			}()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cliCtx.Logger.Info("following events",
				logging.Strings("brokers", cfg.Brokers),
				logging.String("topic", cfg.Topic),
				logging.String("group", group))
			err = consumer.Consume(ctx, eventPrinter(cmd, cliCtx.OutputFormat, limit))
			if errors.Is(err, errLimitReached) {
				return nil
			}
			return err
		},
	}
	fs := cmd.Flags()
	fs.StringSliceVar(&brokers, "brokers", nil, "Kafka brokers (overrides kafka.brokers)")
	fs.StringVar(&topic, "topic", "", "topic to follow (overrides kafka.topic)")
	fs.StringVar(&group, "group", "", "consumer group; committed offsets are resumed when set")
	fs.BoolVar(&fromBeginning, "from-beginning", false, "start from the oldest retained event when no group is set")
	fs.IntVar(&limit, "limit", 0, "stop after this many events (0: follow until interrupted)")
	return cmd
}

//Personal.AI order the ending
