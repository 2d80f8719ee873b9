// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package metrics exports circuit simulation metrics to Prometheus.
//
package metrics

import (
	"net/http"

	"github.com/db47h/chipsim"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "chipsim"

// KindLabel is the label holding the chip kind on fault counters.
//
const KindLabel = "kind"

// Observer is a chipsim.Observer that records step statistics and faults.
//
type Observer struct {
	steps      prometheus.Counter
	faults     *prometheus.CounterVec
	duration   prometheus.Histogram
	primitives prometheus.Gauge
	cyclic     prometheus.Gauge
	step       prometheus.Gauge
}

var _ chipsim.Observer = (*Observer)(nil)

// New creates an observer and registers its collectors with reg.
//
func New(reg prometheus.Registerer) (*Observer, error) {
	o := &Observer{
		steps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "steps_total",
			Help:      "Number of simulation steps run",
		}),
		faults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "faults_total",
			Help:      "Number of primitive chip faults, by chip kind",
		}, []string{KindLabel}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "step_duration_seconds",
			Help:      "Wall clock time spent in a simulation step",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
		primitives: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "step_primitives",
			Help:      "Number of primitive invocations in the last step",
		}),
		cyclic: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "step_cyclic_evaluations",
			Help:      "Number of chip evaluations within feedback loops in the last step",
		}),
		step: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "step_number",
			Help:      "Step counter of the simulated circuit",
		}),
	}
	for _, c := range []prometheus.Collector{o.steps, o.faults, o.duration, o.primitives, o.cyclic, o.step} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// StepDone implements chipsim.Observer.
//
func (o *Observer) StepDone(st chipsim.StepStats) {
	o.steps.Inc()
	o.duration.Observe(st.Duration.Seconds())
	o.primitives.Set(float64(st.Primitives))
	o.cyclic.Set(float64(st.Cyclic))
	o.step.Set(float64(st.Step))
}

// Fault implements chipsim.Observer.
//
func (o *Observer) Fault(f *chipsim.Fault) {
	o.faults.WithLabelValues(f.Chip.Kind).Inc()
}

// Handler returns an HTTP handler serving the metrics gathered by g, along
// with a /healthz endpoint.
//
func Handler(g prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	return mux
}
