package metrics

import "github.com/prometheus/client_golang/prometheus"

// IntakeMetrics exposes counters/histograms for the intake flows.
type IntakeMetrics struct {
	chatMessagesTotal *prometheus.CounterVec
	bookingsTotal     *prometheus.CounterVec
	scoringPassTotal  *prometheus.CounterVec
	leadsAssigned     prometheus.Counter
	scoringDuration   prometheus.Histogram
}

func NewIntakeMetrics(reg prometheus.Registerer) *IntakeMetrics {
	m := &IntakeMetrics{
		chatMessagesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "intake",
			Subsystem: "chat",
			Name:      "messages_total",
			Help:      "Total inbound chat messages",
		}, []string{"language", "path"}),
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "intake",
			Subsystem: "booking",
			Name:      "bookings_total",
			Help:      "Total booking commit attempts",
		}, []string{"language", "status"}),
		scoringPassTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "intake",
			Subsystem: "scoring",
			Name:      "passes_total",
			Help:      "Total scoring passes",
		}, []string{"status"}),
		leadsAssigned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "intake",
			Subsystem: "scoring",
			Name:      "leads_assigned_total",
			Help:      "Total leads routed to an attorney",
		}),
		scoringDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "intake",
			Subsystem: "scoring",
			Name:      "pass_duration_seconds",
			Help:      "Duration of one scoring pass",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.chatMessagesTotal, m.bookingsTotal, m.scoringPassTotal, m.leadsAssigned, m.scoringDuration)
	return m
}

// ObserveChatMessage records one inbound message and which path answered it,
// "booking" or "llm".
func (m *IntakeMetrics) ObserveChatMessage(language, path string) {
	if m == nil {
		return
	}
	m.chatMessagesTotal.WithLabelValues(language, path).Inc()
}

func (m *IntakeMetrics) ObserveBooking(language, status string) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(language, status).Inc()
}

func (m *IntakeMetrics) ObserveScoringPass(status string, seconds float64) {
	if m == nil {
		return
	}
	m.scoringPassTotal.WithLabelValues(status).Inc()
	m.scoringDuration.Observe(seconds)
}

func (m *IntakeMetrics) ObserveLeadsAssigned(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.leadsAssigned.Add(float64(n))
}
