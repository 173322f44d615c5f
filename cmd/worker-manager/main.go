// cmd/worker-manager/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	api "scholarship-workers/internal/api/http"
	"scholarship-workers/internal/catalog"
	"scholarship-workers/internal/common/aws"
	"scholarship-workers/internal/common/camunda"
	"scholarship-workers/internal/common/config"
	"scholarship-workers/internal/common/database"
	"scholarship-workers/internal/common/logger"
	"scholarship-workers/internal/common/observability"
	"scholarship-workers/internal/compare"
	"scholarship-workers/internal/finder"
	"scholarship-workers/internal/lead"
	"scholarship-workers/pkg/registry"

	ss "scholarship-workers/internal/workers/catalog/search-scholarships"
	mcl "scholarship-workers/internal/workers/compare/manage-compare-list"
	fs "scholarship-workers/internal/workers/finder/find-scholarships"
	swi "scholarship-workers/internal/workers/finder/simulate-what-if"
	cl "scholarship-workers/internal/workers/lead/capture-lead"
)

func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config load failed:", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs, err := observability.New(cfg.App.Name, nil)
	if err != nil {
		zapLog.Warn("observability disabled", zap.Error(err))
	}

	ctx := context.Background()
	health := map[string]database.Pinger{}

	redis := database.NewRedis(cfg.Database.Redis)
	err = retryWithBackoff(func() error {
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	health["redis"] = redis
	zapLog.Info("Redis connected successfully")

	var pg *database.PostgresClient
	if cfg.Database.Postgres.Host != "" {
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer pg.Close()
		health["postgres"] = pg
		zapLog.Info("PostgreSQL connected successfully")
	}

	var es *database.ElasticsearchClient
	if cfg.Database.Elasticsearch.Enabled() {
		err = retryWithBackoff(func() error {
			var err error
			es, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return es.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		health["elasticsearch"] = es
		zapLog.Info("Elasticsearch connected successfully")
	}

	store, err := loadCatalog(ctx, cfg, pg, redis, log)
	if err != nil {
		zapLog.Fatal("catalog load failed", zap.Error(err))
	}
	zapLog.Info("Scholarship catalog loaded", zap.Int("scholarships", store.Len()))

	var searcher catalog.Searcher = catalog.LocalSearch{Store: store}
	if es != nil {
		index := catalog.NewSearchIndex(es.Client, cfg.Catalog.SearchIndex, store)
		if err := index.Index(ctx); err != nil {
			zapLog.Warn("catalog indexing failed, using in-memory search", zap.Error(err))
		} else {
			searcher = index
		}
	}

	engine := finder.NewEngine(store)
	compareSvc := compare.NewService(compare.NewRedisStore(redis.Client, config.GetSeconds(cfg.Compare.TTL)), store)
	leadSvc := lead.NewService(
		lead.NewRedisIntake(redis.Client, config.GetSeconds(cfg.Lead.IntakeTTL)),
		newNotifier(ctx, cfg, zapLog),
		log,
	)

	var workers *camunda.Workers
	if cfg.Camunda.Enabled {
		var cam *camunda.Client
		err = retryWithBackoff(func() error {
			var err error
			cam, err = camunda.NewClient(camunda.ConfigFrom(cfg.Camunda))
			return err
		}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
		if err != nil {
			zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
		}
		defer cam.Close()
		health["zeebe"] = cam
		zapLog.Info("Zeebe client connected successfully")

		workers = camunda.NewWorkers(cam.Zeebe(), log)
		startWorkers(workers, cfg, engine, searcher, compareSvc, leadSvc, log)
		checkRegistry(cfg.Registry.Path, workers.TaskTypes(), zapLog)
	}

	router := api.NewRouter(api.Deps{
		Catalog: store,
		Search:  searcher,
		Engine:  engine,
		Compare: compareSvc,
		Leads:   leadSvc,
		Health:  health,
		Metrics: promhttp.Handler(),
		Obs:     obs,
		Logger:  log,
		HTTP:    cfg.HTTP,
		Finder:  cfg.Finder,
	})
	srv := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.HTTP.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Warn("http server shutdown failed", zap.Error(err))
	}
	if workers != nil {
		workers.Close()
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		zapLog.Warn("observability shutdown failed", zap.Error(err))
	}
	zapLog.Info("Worker manager stopped")
}

// loadCatalog reads the catalog from its configured source, through the
// redis cache when a cache TTL is set.
func loadCatalog(ctx context.Context, cfg *config.Config, pg *database.PostgresClient, redis *database.RedisClient, log logger.Logger) (*catalog.Store, error) {
	var src catalog.Source
	switch cfg.Catalog.Source {
	case config.CatalogSourcePostgres:
		if pg == nil {
			return nil, fmt.Errorf("catalog source %q needs database.postgres", cfg.Catalog.Source)
		}
		src = catalog.SQLSource{DB: pg.DB}
	default:
		src = catalog.FileSource{Path: cfg.Catalog.Path}
	}

	if cfg.Catalog.CacheTTL > 0 {
		src = &catalog.CachedSource{
			Origin: src,
			Redis:  redis.Client,
			TTL:    config.GetSeconds(cfg.Catalog.CacheTTL),
			Logger: log,
		}
	}
	return catalog.LoadStore(ctx, src)
}

func newNotifier(ctx context.Context, cfg *config.Config, zapLog *zap.Logger) *lead.Notifier {
	ncfg := lead.NotifierConfig{
		EmailEnabled:    cfg.Lead.EmailEnabled,
		SMSEnabled:      cfg.Lead.SMSEnabled,
		AdmissionsEmail: cfg.Lead.AdmissionsEmail,
		FromEmail:       cfg.Lead.FromEmail,
		SMSSenderID:     cfg.Lead.SMSSenderID,
	}
	if !ncfg.EmailEnabled && !ncfg.SMSEnabled {
		return lead.NewNotifier(ncfg, nil, nil)
	}

	clients, err := aws.NewClients(ctx, cfg.AWS.Region)
	if err != nil {
		zapLog.Warn("aws clients unavailable, lead notifications disabled", zap.Error(err))
		return lead.NewNotifier(ncfg, nil, nil)
	}
	return lead.NewNotifier(ncfg, clients.SES, clients.SNS)
}

func startWorkers(
	workers *camunda.Workers,
	cfg *config.Config,
	engine *finder.Engine,
	searcher catalog.Searcher,
	compareSvc *compare.Service,
	leadSvc *lead.Service,
	log logger.Logger,
) {
	if wcfg := config.GetWorkerConfig(cfg, fs.TaskType); wcfg.Enabled {
		c := fs.LoadConfig()
		c.Timeout = config.GetDuration(wcfg.Timeout)
		c.ShareBaseURL = cfg.Finder.ShareBaseURL
		workers.Start(fs.TaskType, wcfg, fs.NewHandler(c, engine, log))
	}

	if wcfg := config.GetWorkerConfig(cfg, swi.TaskType); wcfg.Enabled {
		c := swi.LoadConfig()
		c.Timeout = config.GetDuration(wcfg.Timeout)
		c.MaxBonusTN = cfg.Finder.MaxBonusTN
		c.MaxBonusDGNL = cfg.Finder.MaxBonusDGNL
		workers.Start(swi.TaskType, wcfg, swi.NewHandler(c, engine, log))
	}

	if wcfg := config.GetWorkerConfig(cfg, ss.TaskType); wcfg.Enabled {
		c := ss.LoadConfig()
		c.Timeout = config.GetDuration(wcfg.Timeout)
		workers.Start(ss.TaskType, wcfg, ss.NewHandler(c, searcher, log))
	}

	if wcfg := config.GetWorkerConfig(cfg, mcl.TaskType); wcfg.Enabled {
		c := mcl.LoadConfig()
		c.Timeout = config.GetDuration(wcfg.Timeout)
		workers.Start(mcl.TaskType, wcfg, mcl.NewHandler(c, compareSvc, log))
	}

	if wcfg := config.GetWorkerConfig(cfg, cl.TaskType); wcfg.Enabled {
		c := cl.LoadConfig()
		c.Timeout = config.GetDuration(wcfg.Timeout)
		workers.Start(cl.TaskType, wcfg, cl.NewHandler(c, leadSvc, log))
	}
}

// checkRegistry warns about started task types the activity registry does
// not describe.
func checkRegistry(path string, taskTypes []string, zapLog *zap.Logger) {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		zapLog.Warn("activity registry not loaded", zap.String("path", path), zap.Error(err))
		return
	}
	if err := reg.Validate(); err != nil {
		zapLog.Warn("activity registry is invalid", zap.Error(err))
	}
	if missing := reg.Missing(taskTypes); len(missing) > 0 {
		zapLog.Warn("workers missing from activity registry", zap.Strings("taskTypes", missing))
	}
}
