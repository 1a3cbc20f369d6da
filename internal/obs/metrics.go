// Package obs exposes Prometheus metrics for the identity core.
package obs

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Login outcomes used as the "outcome" label.
const (
	OutcomeSuccess   = "success"
	OutcomeNotFound  = "not_found"
	OutcomeBadSecret = "invalid_credential"
	OutcomeSuspended = "suspended"
	OutcomeDuplicate = "duplicate_email"
	OutcomeError     = "error"
)

// Metrics groups the identity counters. A nil *Metrics is valid and records nothing.
type Metrics struct {
	logins        *prometheus.CounterVec
	signups       *prometheus.CounterVec
	notifications prometheus.Counter
	statusChanges *prometheus.CounterVec
	accounts      prometheus.Gauge
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "inodesk_logins_total",
			Help: "Login attempts by outcome.",
		}, []string{"outcome"}),
		signups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "inodesk_signups_total",
			Help: "Signup attempts by outcome.",
		}, []string{"outcome"}),
		notifications: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "inodesk_notifications_pushed_total",
			Help: "Messages pushed into account ledgers.",
		}),
		statusChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "inodesk_status_changes_total",
			Help: "Account status toggles by resulting status.",
		}, []string{"status"}),
		accounts: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "inodesk_accounts",
			Help: "Accounts currently in the directory.",
		}),
	}
	reg.MustRegister(m.logins, m.signups, m.notifications, m.statusChanges, m.accounts)
	return m
}

func (m *Metrics) Login(outcome string) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Signup(outcome string) {
	if m == nil {
		return
	}
	m.signups.WithLabelValues(outcome).Inc()
}

func (m *Metrics) NotificationPushed() {
	if m == nil {
		return
	}
	m.notifications.Inc()
}

func (m *Metrics) StatusChanged(status string) {
	if m == nil {
		return
	}
	m.statusChanges.WithLabelValues(status).Inc()
}

func (m *Metrics) SetAccounts(n int) {
	if m == nil {
		return
	}
	m.accounts.Set(float64(n))
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
