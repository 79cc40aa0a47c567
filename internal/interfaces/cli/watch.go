package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/solhycool/visualizations/internal/application/pipeline"
	"github.com/solhycool/visualizations/internal/application/watch"
	"github.com/solhycool/visualizations/internal/config"
	"github.com/solhycool/visualizations/internal/infrastructure/monitoring/logging"
	httpserver "github.com/solhycool/visualizations/internal/interfaces/http"
	"github.com/solhycool/visualizations/internal/interfaces/http/handlers"
	"github.com/solhycool/visualizations/internal/interfaces/http/middleware"
)

func newWatchCmd() *cobra.Command {
	flags := &pipelineFlags{}
	var initialRun bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the results folder and render diagrams as results arrive",
		Long: "Observe the results folder recursively. A change triggers aggregation and\n" +
			"diagram generation once the change delay has passed since the previous change\n" +
			"and the cooldown period since the previous run. Runs until SIGINT or SIGTERM.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, cliCtx, flags.apply(cmd, cliCtx.Config), initialRun)
		},
	}
	flags.registerDiagram(cmd)
	cmd.Flags().BoolVar(&initialRun, "initial-run", false, "run the pipeline once before waiting for changes")
	return cmd
}

// runWatch blocks until ctx is cancelled.
func runWatch(ctx context.Context, cliCtx *CLIContext, cfg *config.Config, initialRun bool) error {
	logger := cliCtx.Logger

	a, err := newApp(ctx, cfg, logger, true)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Warn("failed to close publishers", logging.Err(err))
		}
	}()

	gate := watch.NewGate(cfg.Watch.ChangeDelayDuration(), cfg.Watch.CooldownDuration())
	run := func(ctx context.Context) error {
		_, err := a.pipeline.Run(ctx, pipeline.TriggerWatch)
		return err
	}
	watcher := watch.NewWatcher(cfg.Results.Dir, gate, run, logger.Named("watch"),
		watch.WithMetrics(a.metrics),
		watch.WithIgnore(cfg.IndexPath(), cfg.DiagramOutputDir()))

	if cliCtx.ConfigPath != "" {
		reloadTimings(cliCtx.ConfigPath, gate, logger)
	}

	if cfg.Server.Enabled {
		server := newStatusServer(cfg, a, gate, logger)
		go func() {
			if err := server.Start(); err != nil {
				logger.Error("status server failed", logging.Err(err))
			}
		}()
		defer func() {
			if err := server.Stop(context.Background()); err != nil {
				logger.Warn("failed to stop status server", logging.Err(err))
			}
		}()
	}

	if initialRun {
		if _, err := a.pipeline.Run(ctx, pipeline.TriggerManual); err != nil {
			logger.Error("initial pipeline run failed", logging.Err(err))
		}
	}

	changeDelay, cooldown := gate.Timings()
	logger.Info("watch started",
		logging.String("results", cfg.Results.Dir),
		logging.Duration("change_delay", changeDelay),
		logging.Duration("cooldown", cooldown),
		logging.Strings("publishers", a.pipeline.Publishers()))
	return watcher.Run(ctx)
}

// reloadTimings applies watch timing edits of the config file to the gate.
// Other sections need a restart.
func reloadTimings(path string, gate *watch.Gate, logger logging.Logger) {
	err := config.Watch(path, func(next *config.Config) {
		changeDelay, cooldown := next.Watch.ChangeDelayDuration(), next.Watch.CooldownDuration()
		gate.SetTimings(changeDelay, cooldown)
		logger.Info("watch timings reloaded",
			logging.Duration("change_delay", changeDelay),
			logging.Duration("cooldown", cooldown))
	}, func(err error) {
		logger.Warn("ignoring invalid config change", logging.Err(err))
	})
	if err != nil {
		logger.Warn("config reload disabled", logging.String("path", path), logging.Err(err))
	}
}

func newStatusServer(cfg *config.Config, a *app, gate *watch.Gate, logger logging.Logger) *httpserver.Server {
	log := logger.Named("http")
	router := httpserver.NewRouter(httpserver.RouterConfig{
		HealthHandler:    handlers.NewHealthHandler(Version, a.checkers...),
		StatusHandler:    handlers.NewStatusHandler(a.pipeline, gate),
		Logger:           log,
		Logging:          middleware.DefaultLoggingConfig(),
		MetricsCollector: a.collector,
		Mode:             cfg.Server.Mode,
	})
	return httpserver.NewServer(httpserver.ServerConfig{
		Host:            cfg.Server.Host,
		Port:            cfg.Server.Port,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}, router, log)
}

//Personal.AI order the ending
