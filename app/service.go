package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	apiaudit "github.com/freightops/loadmatch/api/audit"
	apimatches "github.com/freightops/loadmatch/api/matches"
	apioutreach "github.com/freightops/loadmatch/api/outreach"
	"github.com/freightops/loadmatch/config"
	coreaudit "github.com/freightops/loadmatch/core/audit"
	"github.com/freightops/loadmatch/core/matching"
	coremetrics "github.com/freightops/loadmatch/core/metrics"
	"github.com/freightops/loadmatch/core/outreach"
	infraaudit "github.com/freightops/loadmatch/infra/audit"
	"github.com/freightops/loadmatch/infra/logger"
	"github.com/freightops/loadmatch/infra/metrics"
	"github.com/freightops/loadmatch/infra/store"
	"github.com/freightops/loadmatch/infra/transport"
	"github.com/freightops/loadmatch/internal/eventbus"
)

// storage is the combined persistence surface the service wires together.
type storage interface {
	matching.CarrierSource
	matching.LaneSource
	outreach.LoadSource
	outreach.Store
}

// Service orchestrates the matching engine, the outreach dispatcher and the
// HTTP API.
type Service struct {
	Engine     *outreach.Dispatcher
	Matcher    *matching.Engine
	Store      storage
	AuditStore coreaudit.Store

	bus         eventbus.EventBus
	sink        coremetrics.OutreachSink
	log         logger.Logger
	httpPort    string
	promEnabled bool
	promPort    string
	closers     []func() error
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	svc := &Service{
		bus:         eventbus.New(),
		log:         logg,
		httpPort:    cfg.Server.Port,
		promEnabled: cfg.Metrics.PrometheusEnabled,
		promPort:    cfg.Metrics.PrometheusPort,
	}

	var st storage
	switch cfg.Store.Backend {
	case "memory":
		st = store.NewMemoryStore()
	default:
		sqlStore, err := store.NewSQLiteStore(cfg.Store.Path)
		if err != nil {
			return nil, fmt.Errorf("sqlite store: %w", err)
		}
		svc.closers = append(svc.closers, sqlStore.Close)
		st = sqlStore
	}
	svc.Store = st

	var sinks []coremetrics.OutreachSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sink := metrics.NewInfluxSinkWithFallback(cfg.Metrics.InfluxURL,
			cfg.Metrics.InfluxToken, cfg.Metrics.InfluxOrg, cfg.Metrics.InfluxBucket)
		sinks = append(sinks, sink)
	}
	var sink coremetrics.OutreachSink
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}
	svc.sink = sink

	matcher, err := matching.NewEngine(st, st, matching.HardEligibilityFilter{},
		cfg.Matching, logger.New("matching"), svc.bus)
	if err != nil {
		return nil, fmt.Errorf("matching engine: %w", err)
	}
	svc.Matcher = matcher

	auditStore, err := infraaudit.NewStore(cfg.Audit)
	if err != nil {
		return nil, fmt.Errorf("audit store: %w", err)
	}
	auditSinks := coreaudit.MultiSink{coreaudit.LoggerSink{Log: logger.New("audit")}}
	if auditStore != nil {
		svc.AuditStore = auditStore
		svc.closers = append(svc.closers, auditStore.Close)
		auditSinks = append(auditSinks, coreaudit.StoreSink{Store: auditStore})
	}

	tr, err := transport.New(cfg.Transport)
	if err != nil {
		return nil, fmt.Errorf("transport: %w", err)
	}
	selector, err := outreach.NewSelector(matcher)
	if err != nil {
		return nil, fmt.Errorf("selector: %w", err)
	}
	dispatcher, err := outreach.NewDispatcher(cfg.Outreach, st, selector, st, tr,
		auditSinks, sink, svc.bus, logger.New("outreach"))
	if err != nil {
		return nil, fmt.Errorf("dispatcher: %w", err)
	}
	svc.Engine = dispatcher

	return svc, nil
}

// Run starts the HTTP API and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	metrics.StartEventCollector(ctx, s.bus, s.sink)

	mux := http.NewServeMux()
	mux.Handle("/api/freight/matches", apimatches.NewHandler(s.Matcher, s.Store))
	mux.Handle("/api/freight/outreach/send", apioutreach.NewSendHandler(s.Engine))
	if s.AuditStore != nil {
		mux.Handle("/api/freight/audit/logs", apiaudit.NewLogHandler(s.AuditStore))
	}

	srv := &http.Server{Addr: ":" + s.httpPort, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("http server shutdown: %v", err)
		}
	}()

	if s.promEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, ":"+s.promPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	s.log.Infof("listening on :%s", s.httpPort)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.bus.Close()
	var first error
	for _, c := range s.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
