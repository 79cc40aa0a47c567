package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/solhycool/visualizations/internal/application/aggregation"
	"github.com/solhycool/visualizations/internal/application/diagram"
	"github.com/solhycool/visualizations/internal/application/pipeline"
	"github.com/solhycool/visualizations/internal/config"
	"github.com/solhycool/visualizations/internal/domain/artifact"
	"github.com/solhycool/visualizations/internal/infrastructure/database/redis"
	"github.com/solhycool/visualizations/internal/infrastructure/messaging/kafka"
	"github.com/solhycool/visualizations/internal/infrastructure/monitoring/logging"
	"github.com/solhycool/visualizations/internal/infrastructure/monitoring/prometheus"
	"github.com/solhycool/visualizations/internal/infrastructure/storage/minio"
	"github.com/solhycool/visualizations/internal/infrastructure/svg"
	"github.com/solhycool/visualizations/internal/interfaces/http/handlers"
)

// runLockName names the lock shared by every process rendering one results
// folder.
const runLockName = "pipeline"

// ─── Flag overrides ─────────────────────────────────────────────────────────

// pipelineFlags override the results and diagram sections of the config.
type pipelineFlags struct {
	results   string
	template  string
	outputDir string
	dark      bool
}

// registerResults adds --results.
func (f *pipelineFlags) registerResults(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.results, "results", "", "results folder (overrides results.dir)")
}

// registerDiagram adds --results plus the diagram overrides.
func (f *pipelineFlags) registerDiagram(cmd *cobra.Command) {
	f.registerResults(cmd)
	fs := cmd.Flags()
	fs.StringVar(&f.template, "template", "", "diagram template SVG (overrides diagram.template_path)")
	fs.StringVar(&f.outputDir, "output-dir", "", "diagram output folder (overrides diagram.output_dir)")
	fs.BoolVar(&f.dark, "dark", false, "also render the dark variant (overrides diagram.generate_dark)")
}

// apply returns a copy of cfg with the flags that were set applied.
func (f *pipelineFlags) apply(cmd *cobra.Command, cfg *config.Config) *config.Config {
	out := *cfg
	if f.results != "" {
		out.Results.Dir = f.results
	}
	if f.template != "" {
		out.Diagram.TemplatePath = f.template
	}
	if f.outputDir != "" {
		out.Diagram.OutputDir = f.outputDir
	}
	if flag := cmd.Flags().Lookup("dark"); flag != nil && flag.Changed {
		out.Diagram.GenerateDark = f.dark
	}
	return &out
}

// ─── Component wiring ───────────────────────────────────────────────────────

// newMetrics returns a registry-backed metric set when metrics are enabled,
// and a no-op set with a nil collector otherwise.
func newMetrics(cfg *config.Config, logger logging.Logger) (prometheus.MetricsCollector, *prometheus.PipelineMetrics, error) {
	if !cfg.Metrics.Enabled {
		return nil, prometheus.NewNopPipelineMetrics(), nil
	}
	collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
		Namespace:            cfg.Metrics.Namespace,
		Subsystem:            cfg.Metrics.Subsystem,
		EnableProcessMetrics: true,
		EnableGoMetrics:      true,
	}, logger)
	if err != nil {
		return nil, nil, err
	}
	return collector, prometheus.NewPipelineMetrics(collector), nil
}

func newAggregator(cfg *config.Config, logger logging.Logger, metrics *prometheus.PipelineMetrics) *aggregation.Aggregator {
	return aggregation.NewAggregator(cfg.Results.Dir, cfg.IndexPath(), logger.Named("aggregation"),
		aggregation.WithMetrics(metrics))
}

// app is the wired pipeline plus what the long-running commands expose.
type app struct {
	cfg       *config.Config
	collector prometheus.MetricsCollector
	metrics   *prometheus.PipelineMetrics
	pipeline  *pipeline.Pipeline
	checkers  []handlers.HealthChecker
}

// Close releases the publishers.
func (a *app) Close() error {
	return a.pipeline.Close()
}

// newApp loads the template and builds the pipeline. Publishers enabled in
// the config are connected only when withPublishers is set.
func newApp(ctx context.Context, cfg *config.Config, logger logging.Logger, withPublishers bool) (*app, error) {
	collector, metrics, err := newMetrics(cfg, logger)
	if err != nil {
		return nil, err
	}

	tpl, err := svg.LoadTemplate(cfg.Diagram.TemplatePath)
	if err != nil {
		return nil, err
	}
	agg := newAggregator(cfg, logger, metrics)
	gen := diagram.NewGenerator(tpl, diagram.NewDirAssets(cfg.AssetsDir()), logger.Named("diagram"),
		diagram.WithMetrics(metrics))
	batch := diagram.BatchOptions{
		OutputDir: cfg.DiagramOutputDir(),
		Themes:    diagram.Themes(cfg.Diagram.GenerateDark),
	}

	opts := []pipeline.Option{pipeline.WithMetrics(metrics)}
	var checkers []handlers.HealthChecker
	if withPublishers {
		pubs, lock, cs, err := newPublishers(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		opts = append(opts, pipeline.WithPublishers(pubs...))
		if lock != nil {
			opts = append(opts, pipeline.WithLock(lock))
		}
		checkers = cs
	}

	return &app{
		cfg:       cfg,
		collector: collector,
		metrics:   metrics,
		pipeline:  pipeline.New(agg, gen, batch, logger.Named("pipeline"), opts...),
		checkers:  checkers,
	}, nil
}

// newPublishers connects every enabled publisher. When Redis is enabled its
// run lock is returned too. A connection failure closes the publishers
// already opened.
func newPublishers(ctx context.Context, cfg *config.Config, logger logging.Logger) ([]artifact.Publisher, pipeline.Locker, []handlers.HealthChecker, error) {
	var (
		pubs     []artifact.Publisher
		lock     pipeline.Locker
		checkers []handlers.HealthChecker
	)
	fail := func(err error) ([]artifact.Publisher, pipeline.Locker, []handlers.HealthChecker, error) {
		for _, p := range pubs {
			if cerr := p.Close(); cerr != nil {
				logger.Warn("failed to close publisher", logging.String("publisher", p.Name()), logging.Err(cerr))
			}
		}
		return nil, nil, nil, err
	}

	if cfg.MinIO.Enabled {
		log := logger.Named("minio")
		client, err := minio.NewMinIOClient(&minio.MinIOConfig{
			Endpoint:        cfg.MinIO.Endpoint,
			AccessKeyID:     cfg.MinIO.AccessKey,
			SecretAccessKey: cfg.MinIO.SecretKey,
			UseSSL:          cfg.MinIO.UseSSL,
			Region:          cfg.MinIO.Region,
			Bucket:          cfg.MinIO.Bucket,
			Prefix:          cfg.MinIO.Prefix,
		}, log)
		if err != nil {
			return fail(err)
		}
		pubs = append(pubs, minio.NewPublisher(client, log))
		checkers = append(checkers, handlers.NewChecker("minio", client.Ping))
	}

	if cfg.Redis.Enabled {
		log := logger.Named("redis")
		client, err := redis.NewClient(&redis.RedisConfig{
			Addr:         cfg.Redis.Addr,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
			IndexTTL:     cfg.Redis.IndexTTL,
			KeyPrefix:    cfg.Redis.KeyPrefix,
			LockTTL:      cfg.Redis.LockTTL,
		}, log)
		if err != nil {
			return fail(err)
		}
		pubs = append(pubs, redis.NewIndexCache(client, log))
		lock = redis.NewRunLock(client, runLockName, log, redis.WithLockTTL(cfg.Redis.LockTTL))
		checkers = append(checkers, handlers.NewChecker("redis", client.Ping))
	}

	if cfg.Kafka.Enabled {
		log := logger.Named("kafka")
		producer, err := kafka.NewProducer(kafka.ProducerConfig{
			Brokers:      cfg.Kafka.Brokers,
			Topic:        cfg.Kafka.Topic,
			ClientID:     cfg.Kafka.ClientID,
			BatchSize:    cfg.Kafka.BatchSize,
			BatchTimeout: cfg.Kafka.BatchTimeout,
			WriteTimeout: cfg.Kafka.WriteTimeout,
			RequiredAcks: cfg.Kafka.RequiredAcks,
		}, log)
		if err != nil {
			return fail(err)
		}
		pubs = append(pubs, kafka.NewEventPublisher(producer, eventSource(), log))
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}
	return pubs, lock, checkers, nil
}

// eventSource identifies this process in emitted events.
func eventSource() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		return "solhycool"
	}
	return "solhycool@" + host
}

//Personal.AI order the ending
