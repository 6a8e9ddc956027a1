package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CartMetrics holds the prometheus collectors for cart and order-placement
// activity.
type CartMetrics struct {
	mutations         *prometheus.CounterVec
	ordersPlaced      prometheus.Counter
	ordersFailed      prometheus.Counter
	placementDuration prometheus.Histogram
	activePlacements  prometheus.Gauge
}

// NewCartMetrics creates cart metrics registered on the default registerer.
// Registering twice returns the already-registered collectors, so repeated
// construction is safe.
func NewCartMetrics() *CartMetrics {
	return NewCartMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

// NewCartMetricsWithRegisterer creates cart metrics on the given
// registerer. Tests pass a fresh prometheus.NewRegistry().
func NewCartMetricsWithRegisterer(registerer prometheus.Registerer) *CartMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &CartMetrics{
		mutations: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "cocodile_cart_mutations_total",
			Help: "Total number of cart mutations by operation",
		}, []string{"op"}),
		ordersPlaced: registerCounter(registerer, prometheus.CounterOpts{
			Name: "cocodile_orders_placed_total",
			Help: "Total number of orders placed successfully",
		}),
		ordersFailed: registerCounter(registerer, prometheus.CounterOpts{
			Name: "cocodile_orders_failed_total",
			Help: "Total number of order placements that failed",
		}),
		placementDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "cocodile_order_placement_duration_seconds",
			Help:    "Duration of order placement calls in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		activePlacements: registerGauge(registerer, prometheus.GaugeOpts{
			Name: "cocodile_active_placements",
			Help: "Number of order placements currently in flight",
		}),
	}
}

// Mutation records one cart mutation for the operation label
// (add, update, remove, clear).
func (m *CartMetrics) Mutation(op string) {
	m.mutations.WithLabelValues(op).Inc()
}

// PlacementStarted marks an order placement as in flight.
func (m *CartMetrics) PlacementStarted() {
	m.activePlacements.Inc()
}

// PlacementFinished records the outcome and duration of a placement that
// was previously marked started.
func (m *CartMetrics) PlacementFinished(start time.Time, success bool) {
	m.activePlacements.Dec()
	m.placementDuration.Observe(time.Since(start).Seconds())
	if success {
		m.ordersPlaced.Inc()
	} else {
		m.ordersFailed.Inc()
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerGauge(registerer prometheus.Registerer, opts prometheus.GaugeOpts) prometheus.Gauge {
	collector := prometheus.NewGauge(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Gauge)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register gauge %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}
