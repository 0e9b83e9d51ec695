package metrics

import "github.com/prometheus/client_golang/prometheus"

// CartMetrics counts order total recomputations triggered by cart mutations.
type CartMetrics struct {
	recomputes *prometheus.CounterVec
}

func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	recomputes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_total_recomputes_total",
		Help: "Order total recomputations by cart operation and outcome.",
	}, []string{"operation", "outcome"})
	reg.MustRegister(recomputes)
	return &CartMetrics{recomputes: recomputes}
}

// ObserveRecompute records whether the mutation plus recompute committed.
func (c *CartMetrics) ObserveRecompute(operation string, err error) {
	if c == nil || c.recomputes == nil {
		return
	}
	outcome := "committed"
	if err != nil {
		outcome = "rolled_back"
	}
	c.recomputes.WithLabelValues(normalizeLabel(operation), outcome).Inc()
}
