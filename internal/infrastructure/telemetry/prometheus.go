package telemetry

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ScrapeConfig configures the Prometheus scrape registry
type ScrapeConfig struct {
	Namespace   string
	ServiceName string
	Version     string
	// DB adds connection pool collectors when set
	DB     *sql.DB
	DBName string
}

// ScrapeRegistry is a dedicated Prometheus registry exposing runtime,
// process and connection pool collectors for pull-based scraping.
type ScrapeRegistry struct {
	registry *prometheus.Registry
}

// NewScrapeRegistry creates a registry with the standard collectors
func NewScrapeRegistry(cfg ScrapeConfig) (*ScrapeRegistry, error) {
	if cfg.Namespace == "" {
		cfg.Namespace = "inventory"
	}

	registry := prometheus.NewRegistry()
	toRegister := []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{Namespace: cfg.Namespace}),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Name:      "build_info",
			Help:      "Build information of the running service.",
			ConstLabels: prometheus.Labels{
				"service": cfg.ServiceName,
				"version": cfg.Version,
			},
		}, func() float64 { return 1 }),
	}
	if cfg.DB != nil {
		name := cfg.DBName
		if name == "" {
			name = "primary"
		}
		toRegister = append(toRegister, collectors.NewDBStatsCollector(cfg.DB, name))
	}

	for _, c := range toRegister {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register prometheus collector: %w", err)
		}
	}
	return &ScrapeRegistry{registry: registry}, nil
}

// Handler returns the /metrics HTTP handler
func (r *ScrapeRegistry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{
		Registry:          r.registry,
		EnableOpenMetrics: true,
	})
}

// Registry exposes the underlying registry for additional collectors
func (r *ScrapeRegistry) Registry() *prometheus.Registry {
	return r.registry
}
