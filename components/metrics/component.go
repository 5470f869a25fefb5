package metrics

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/dig"

	"github.com/iotaledger/hive.go/app"
	"github.com/iotaledger/iota-txpool/components/metrics/collector"
	"github.com/iotaledger/iota-txpool/pkg/daemon"
	"github.com/iotaledger/iota-txpool/pkg/protocol/engine/txpool"
	"github.com/iotaledger/iota-txpool/pkg/restapi"
)

func init() {
	Component = &app.Component{
		Name:      "Metrics",
		DepsFunc:  func(cDeps dependencies) { deps = cDeps },
		Params:    params,
		Provide:   provide,
		Configure: configure,
		Run:       run,
		IsEnabled: func(*dig.Container) bool {
			return ParamsMetrics.Enabled
		},
	}
}

var (
	Component *app.Component
	deps      dependencies
)

type dependencies struct {
	dig.In

	TransactionPool txpool.TransactionPool
	Collector       *collector.Collector
}

func provide(c *dig.Container) error {
	return c.Provide(collector.New)
}

func configure() error {
	if ParamsMetrics.GoMetrics {
		deps.Collector.Registry.MustRegister(collectors.NewGoCollector())
	}
	if ParamsMetrics.ProcessMetrics {
		deps.Collector.Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}

	if ParamsMetrics.TxPool.Enabled {
		return deps.Collector.RegisterCollection(TxPoolMetrics)
	}

	return nil
}

func run() error {
	return Component.Daemon().BackgroundWorker("Prometheus exporter", func(ctx context.Context) {
		Component.LogInfof("Starting Prometheus exporter on http://%s/metrics ...", ParamsMetrics.BindAddress)
		restapi.Serve(ctx, Component.Logger, newExporter(deps.Collector), ParamsMetrics.BindAddress, ParamsMetrics.ScrapeTimeout)
		Component.LogInfo("Stopping Prometheus exporter ... done")
	}, daemon.PriorityMetrics)
}

// newExporter creates the echo server that collects and serves the metrics on every scrape.
func newExporter(metricsCollector *collector.Collector) *echo.Echo {
	handler := promhttp.HandlerFor(metricsCollector.Registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
	if ParamsMetrics.PromhttpMetrics {
		handler = promhttp.InstrumentMetricHandler(metricsCollector.Registry, handler)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = ParamsMetrics.ScrapeTimeout
	e.Server.WriteTimeout = ParamsMetrics.ScrapeTimeout
	e.Use(middleware.Recover())

	e.GET("/metrics", func(c echo.Context) error {
		metricsCollector.Collect()
		handler.ServeHTTP(c.Response(), c.Request())

		return nil
	})

	return e
}
