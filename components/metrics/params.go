package metrics

import (
	"time"

	"github.com/iotaledger/hive.go/app"
)

// ParametersMetrics contains the definition of the parameters used by the Prometheus exporter.
type ParametersMetrics struct {
	// Enabled defines whether the Prometheus exporter is served.
	Enabled bool `default:"true" usage:"whether the Prometheus exporter is served"`
	// BindAddress defines the address the exporter listens on.
	BindAddress string `default:"0.0.0.0:9311" usage:"the bind address of the Prometheus exporter"`
	// ScrapeTimeout bounds reading a scrape request and writing its response.
	ScrapeTimeout time.Duration `default:"5s" usage:"the read and write timeout of a scrape"`

	TxPool struct {
		// Enabled defines whether the transaction pool metrics are exported.
		Enabled bool `default:"true" usage:"whether the transaction pool metrics are exported"`
		// QueueSizes defines whether the size of every queue is exported on each scrape.
		QueueSizes bool `default:"true" usage:"whether the size of every queue is exported on each scrape"`
	} `name:"txPool"`

	// GoMetrics defines whether to include Go runtime metrics.
	GoMetrics bool `default:"false" usage:"include go metrics"`
	// ProcessMetrics defines whether to include process metrics.
	ProcessMetrics bool `default:"false" usage:"include process metrics"`
	// PromhttpMetrics defines whether to include metrics about the exporter itself.
	PromhttpMetrics bool `default:"false" usage:"include promhttp metrics"`
}

// ParamsMetrics contains the configuration of the Prometheus exporter.
var ParamsMetrics = &ParametersMetrics{}

var params = &app.ComponentParams{
	Params: map[string]any{
		"prometheus": ParamsMetrics,
	},
}
