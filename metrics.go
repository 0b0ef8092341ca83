package qsim

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

const transformsMetric = "qsim_transforms_total"

/*
Metrics aggregates engine activity in a prometheus registry owned by one
engine, so engines never share series. Recording is lock-free and costs the
same whether a transform runs as one job or as one job per amplitude.
Percentiles are estimated from the latency histogram when exported.
*/
type Metrics struct {
	registry      *prometheus.Registry
	transforms    *prometheus.CounterVec
	rejected      prometheus.Counter
	jobsSucceeded prometheus.Counter
	jobsFailed    prometheus.Counter
	jobDuration   prometheus.Histogram
	lastTransform prometheus.Gauge
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	jobs := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "qsim",
		Name:      "jobs_total",
		Help:      "Pool jobs executed, by outcome.",
	}, []string{"status"})

	return &Metrics{
		registry: registry,
		transforms: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "qsim",
			Name:      "transforms_total",
			Help:      "Completed transforms by strategy.",
		}, []string{"strategy"}),
		rejected: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "qsim",
			Name:      "rejected_total",
			Help:      "Requests that failed validation or admission.",
		}),
		jobsSucceeded: jobs.WithLabelValues("ok"),
		jobsFailed:    jobs.WithLabelValues("failed"),
		jobDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "qsim",
			Name:      "job_duration_seconds",
			Help:      "Pool job latency in seconds.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12), // 1µs to ~4s
		}),
		lastTransform: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "qsim",
			Name:      "last_transform_timestamp_seconds",
			Help:      "Unix time of the last completed transform.",
		}),
	}
}

// Registry exposes the series for scraping, e.g. through promhttp.HandlerFor.
func (m *Metrics) Registry() prometheus.Gatherer {
	return m.registry
}

// recordTransform counts one completed state transformation by strategy name.
func (m *Metrics) recordTransform(strategy string) {
	m.transforms.WithLabelValues(strategy).Inc()
	m.lastTransform.SetToCurrentTime()
}

// recordRejected counts a request that failed validation.
func (m *Metrics) recordRejected() {
	m.rejected.Inc()
}

func (m *Metrics) recordJobExecution(startTime time.Time, success bool) {
	m.jobDuration.Observe(time.Since(startTime).Seconds())

	if success {
		m.jobsSucceeded.Inc()
		return
	}

	m.jobsFailed.Inc()
}

// TransformCount returns how many transforms ran with the named strategy.
func (m *Metrics) TransformCount(strategy string) int64 {
	return counterValue(m.transforms.WithLabelValues(strategy))
}

func (m *Metrics) Rejected() int64 {
	return counterValue(m.rejected)
}

func (m *Metrics) JobCount() int64 {
	return counterValue(m.jobsSucceeded) + counterValue(m.jobsFailed)
}

func (m *Metrics) FailedJobs() int64 {
	return counterValue(m.jobsFailed)
}

// JobSuccessRate is zero until the first job has run.
func (m *Metrics) JobSuccessRate() float64 {
	total := m.JobCount()
	if total == 0 {
		return 0
	}

	return float64(total-m.FailedJobs()) / float64(total)
}

func (m *Metrics) LastTransform() time.Time {
	var metric dto.Metric
	if err := m.lastTransform.Write(&metric); err != nil {
		return time.Time{}
	}

	seconds := metric.GetGauge().GetValue()
	if seconds == 0 {
		return time.Time{}
	}

	return time.Unix(0, int64(seconds*float64(time.Second)))
}

func (m *Metrics) ExportMetrics() map[string]interface{} {
	transforms := make(map[string]int64)

	if families, err := m.registry.Gather(); err == nil {
		for _, family := range families {
			if family.GetName() != transformsMetric {
				continue
			}

			for _, metric := range family.GetMetric() {
				for _, label := range metric.GetLabel() {
					if label.GetName() == "strategy" {
						transforms[label.GetValue()] = int64(metric.GetCounter().GetValue())
					}
				}
			}
		}
	}

	var latency dto.Metric
	_ = m.jobDuration.Write(&latency)
	histogram := latency.GetHistogram()

	var average time.Duration
	if count := histogram.GetSampleCount(); count > 0 {
		average = seconds(histogram.GetSampleSum() / float64(count))
	}

	return map[string]interface{}{
		"transforms":   transforms,
		"rejected":     m.Rejected(),
		"job_count":    m.JobCount(),
		"failed_jobs":  m.FailedJobs(),
		"success_rate": m.JobSuccessRate(),
		"avg_latency":  average.Microseconds(),
		"p95_latency":  seconds(histogramQuantile(histogram, 0.95)).Microseconds(),
		"p99_latency":  seconds(histogramQuantile(histogram, 0.99)).Microseconds(),
	}
}

func counterValue(c prometheus.Counter) int64 {
	var metric dto.Metric
	if err := c.Write(&metric); err != nil {
		return 0
	}

	return int64(metric.GetCounter().GetValue())
}

/*
histogramQuantile interpolates linearly inside the bucket that holds the
q-th observation, the same estimate PromQL's histogram_quantile makes.
Observations past the last bucket report its upper bound.
*/
func histogramQuantile(h *dto.Histogram, q float64) float64 {
	total := float64(h.GetSampleCount())
	if total == 0 {
		return 0
	}

	rank := q * total
	lower, below := 0.0, 0.0

	for _, bucket := range h.GetBucket() {
		upper := bucket.GetUpperBound()
		cumulative := float64(bucket.GetCumulativeCount())

		if cumulative >= rank {
			if cumulative == below {
				return upper
			}

			return lower + (upper-lower)*(rank-below)/(cumulative-below)
		}

		lower, below = upper, cumulative
	}

	return lower
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
