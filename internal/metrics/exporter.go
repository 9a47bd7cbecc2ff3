// Package metrics exposes the latest report as Prometheus gauges.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"perfoverlay/internal/model"
)

const namespace = "perfoverlay"

type Exporter struct {
	registry *prometheus.Registry
	cpu      *prometheus.GaugeVec
	memory   *prometheus.GaugeVec
	fps      prometheus.Gauge
	thermal  prometheus.Gauge
	reports  prometheus.Counter
}

func NewExporter() *Exporter {
	e := &Exporter{
		registry: prometheus.NewRegistry(),
		cpu: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cpu_usage_percent",
			Help:      "CPU usage of the process summed over busy threads, by statistic.",
		}, []string{"stat"}),
		memory: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "memory_bytes",
			Help:      "Resident memory of the process and installed memory, by statistic.",
		}, []string{"stat"}),
		fps: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "frames_per_second",
			Help:      "Frames counted over the last second.",
		}),
		thermal: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "thermal_state",
			Help:      "Thermal state: 0 unsupported, 1 nominal, 2 fair, 3 serious, 4 critical.",
		}),
		reports: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_total",
			Help:      "Reports emitted since the process started.",
		}),
	}
	e.registry.MustRegister(e.cpu, e.memory, e.fps, e.thermal, e.reports)
	return e
}

// Observe is a report subscriber.
func (e *Exporter) Observe(r model.PerformanceReportV2) {
	e.cpu.WithLabelValues("current").Set(r.CPUReport.Usage)
	e.cpu.WithLabelValues("average").Set(r.CPUReport.Average)
	e.cpu.WithLabelValues("max").Set(r.CPUReport.Max)
	e.cpu.WithLabelValues("min").Set(r.CPUReport.Min)

	e.memory.WithLabelValues("used").Set(float64(r.MemoryReport.Usage.Used))
	e.memory.WithLabelValues("total").Set(float64(r.MemoryReport.Usage.Total))
	e.memory.WithLabelValues("average").Set(r.MemoryReport.Average)
	e.memory.WithLabelValues("max").Set(r.MemoryReport.Max)
	e.memory.WithLabelValues("min").Set(r.MemoryReport.Min)

	e.fps.Set(float64(r.FPS))
	e.thermal.Set(float64(r.ThermalReport.State))
	e.reports.Inc()
}

func (e *Exporter) Registry() *prometheus.Registry {
	return e.registry
}

func (e *Exporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{})
}
