package obs

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.Login(OutcomeSuccess)
	m.Login(OutcomeSuccess)
	m.Login(OutcomeSuspended)
	m.Signup(OutcomeDuplicate)
	m.NotificationPushed()
	m.StatusChanged("Suspended")
	m.SetAccounts(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.logins.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.logins.WithLabelValues(OutcomeSuspended)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.signups.WithLabelValues(OutcomeDuplicate)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.notifications))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.statusChanges.WithLabelValues("Suspended")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.accounts))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	require.NotPanics(t, func() {
		m.Login(OutcomeSuccess)
		m.Signup(OutcomeSuccess)
		m.NotificationPushed()
		m.StatusChanged("Active")
		m.SetAccounts(1)
	})
}

func TestHandler_ServesRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	m.Login(OutcomeNotFound)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, string(body), `inodesk_logins_total{outcome="not_found"} 1`)
}
