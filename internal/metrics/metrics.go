package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the service counters and registers them on the given registry.
type Collector struct {
	runsTotal       *prometheus.CounterVec
	remindersSent   prometheus.Counter
	escalationsSent prometheus.Counter
	sendFailures    prometheus.Counter
	retrievalFails  prometheus.Counter
	lateRosterSize  prometheus.Gauge
}

func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		runsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reminder_runs_total",
			Help: "Scheduler evaluations, labelled by whether a trigger fired.",
		}, []string{"fired"}),
		remindersSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "reminder_messages_sent_total",
			Help: "Individual reminder messages delivered.",
		}),
		escalationsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "reminder_escalations_sent_total",
			Help: "Aggregated channel escalations delivered.",
		}),
		sendFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "reminder_send_failures_total",
			Help: "Message deliveries that failed.",
		}),
		retrievalFails: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "reminder_retrieval_failures_total",
			Help: "Gateway retrievals that aborted a run.",
		}),
		lateRosterSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "reminder_late_roster_size",
			Help: "Size of the late roster at the last resolved run.",
		}),
	}
	reg.MustRegister(c.runsTotal, c.remindersSent, c.escalationsSent, c.sendFailures, c.retrievalFails, c.lateRosterSize)
	return c
}

func (c *Collector) RecordRun(fired bool) {
	label := "false"
	if fired {
		label = "true"
	}
	c.runsTotal.WithLabelValues(label).Inc()
}

func (c *Collector) RecordRemindersSent(n int) { c.remindersSent.Add(float64(n)) }

func (c *Collector) RecordEscalation() { c.escalationsSent.Inc() }

func (c *Collector) RecordSendFailure() { c.sendFailures.Inc() }

func (c *Collector) RecordRetrievalFailure() { c.retrievalFails.Inc() }

func (c *Collector) SetLateRosterSize(n int) { c.lateRosterSize.Set(float64(n)) }

// Handler exposes the registry in Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
