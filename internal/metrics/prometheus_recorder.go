package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "rvgswg"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry           *prom.Registry
	featureDuration    *prom.HistogramVec
	featureResults     *prom.CounterVec
	buildDuration      prom.Histogram
	buildOutcome       *prom.CounterVec
	conversionDuration *prom.HistogramVec
	conversionResults  *prom.CounterVec
	conversionWorkers  prom.Gauge
	feedItems          prom.Gauge
}

// NewPrometheusRecorder constructs the collectors and registers them on reg.
// A nil reg gets a fresh registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		registry: reg,
		featureDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "feature_duration_seconds",
			Help:      "Duration of individual pipeline features",
			Buckets:   prom.DefBuckets,
		}, []string{"feature"}),
		featureResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "feature_results_total",
			Help:      "Feature result counts by outcome",
		}, []string{"feature", "result"}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Total build duration",
			Buckets:   prom.DefBuckets,
		}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"}),
		conversionDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "conversion_duration_seconds",
			Help:      "Duration of individual document conversions",
			Buckets:   prom.DefBuckets,
		}, []string{"result"}),
		conversionResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "conversion_results_total",
			Help:      "Document conversion results by success/failure",
		}, []string{"result"}),
		conversionWorkers: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "conversion_workers",
			Help:      "Worker pool size of the last conversion run",
		}),
		feedItems: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "feed_items",
			Help:      "Items written to the RSS feed by the last build",
		}),
	}
	reg.MustRegister(
		pr.featureDuration, pr.featureResults,
		pr.buildDuration, pr.buildOutcome,
		pr.conversionDuration, pr.conversionResults, pr.conversionWorkers,
		pr.feedItems,
	)
	return pr
}

// Registry returns the registry the collectors are registered on.
func (p *PrometheusRecorder) Registry() *prom.Registry {
	return p.registry
}

func resultLabel(success bool) string {
	if success {
		return "success"
	}
	return "failed"
}

func (p *PrometheusRecorder) ObserveFeatureDuration(feature string, d time.Duration) {
	if p == nil || p.featureDuration == nil {
		return
	}
	p.featureDuration.WithLabelValues(feature).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncFeatureResult(feature string, result ResultLabel) {
	if p == nil || p.featureResults == nil {
		return
	}
	p.featureResults.WithLabelValues(feature, string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil || p.buildDuration == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome BuildOutcomeLabel) {
	if p == nil || p.buildOutcome == nil {
		return
	}
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) ObserveConversionDuration(d time.Duration, success bool) {
	if p == nil || p.conversionDuration == nil {
		return
	}
	p.conversionDuration.WithLabelValues(resultLabel(success)).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncConversionResult(success bool) {
	if p == nil || p.conversionResults == nil {
		return
	}
	p.conversionResults.WithLabelValues(resultLabel(success)).Inc()
}

func (p *PrometheusRecorder) SetConversionWorkers(n int) {
	if p == nil || p.conversionWorkers == nil {
		return
	}
	p.conversionWorkers.Set(float64(n))
}

func (p *PrometheusRecorder) SetFeedItems(n int) {
	if p == nil || p.feedItems == nil {
		return
	}
	p.feedItems.Set(float64(n))
}

// WriteTextfile writes every metric gathered from the registry to path in the
// Prometheus text exposition format.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	return prom.WriteToTextfile(path, p.registry)
}
