package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder on a Prometheus registry.
type PrometheusRecorder struct {
	buildDuration    prom.Histogram
	pagesRendered    prom.Counter
	artifactsWritten prom.Counter
	buildOutcome     *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers the build metrics.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "bookbinder",
			Name:      "build_duration_seconds",
			Help:      "Total site build duration",
			Buckets:   prom.DefBuckets,
		}),
		pagesRendered: prom.NewCounter(prom.CounterOpts{
			Namespace: "bookbinder",
			Name:      "pages_rendered_total",
			Help:      "HTML pages written during builds",
		}),
		artifactsWritten: prom.NewCounter(prom.CounterOpts{
			Namespace: "bookbinder",
			Name:      "artifacts_written_total",
			Help:      "Auxiliary artifacts (sitemap, feed, robots, manifest) written during builds",
		}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "bookbinder",
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"}),
	}
	reg.MustRegister(pr.buildDuration, pr.pagesRendered, pr.artifactsWritten, pr.buildOutcome)
	return pr
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) AddPagesRendered(n int) {
	p.pagesRendered.Add(float64(n))
}

func (p *PrometheusRecorder) AddArtifactsWritten(n int) {
	p.artifactsWritten.Add(float64(n))
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome string) {
	p.buildOutcome.WithLabelValues(outcome).Inc()
}

// NewRequestCounter registers and returns a counter suitable for
// promhttp.InstrumentHandlerCounter around the site file server.
func NewRequestCounter(reg *prom.Registry) *prom.CounterVec {
	c := prom.NewCounterVec(prom.CounterOpts{
		Namespace: "bookbinder",
		Name:      "http_requests_total",
		Help:      "Requests served for the built site",
	}, []string{"code", "method"})
	reg.MustRegister(c)
	return c
}
