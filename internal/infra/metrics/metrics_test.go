package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"loginflow/config"
	"loginflow/internal/domain/service"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findFamily(t *testing.T, reg *prometheus.Registry, name string) *dto.MetricFamily {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)

	for _, mf := range families {
		if mf.GetName() == name {
			return mf
		}
	}
	t.Fatalf("metric %s not found", name)

	return nil
}

func counterByOutcome(mf *dto.MetricFamily) map[string]float64 {
	values := make(map[string]float64)
	for _, m := range mf.GetMetric() {
		for _, label := range m.GetLabel() {
			if label.GetName() == "outcome" {
				values[label.GetValue()] = m.GetCounter().GetValue()
			}
		}
	}

	return values
}

func TestCollector_ObserveVerify(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.ObserveVerify(service.VerifyOutcomeRequiresReset)
	c.ObserveVerify(service.VerifyOutcomeRequiresReset)
	c.ObserveVerify(service.VerifyOutcomeExpired)

	values := counterByOutcome(findFamily(t, reg, "loginflow_verify_login_total"))
	assert.Equal(t, map[string]float64{"requires_reset": 2, "expired": 1}, values)
}

func TestCollector_ObserveResetAndIssued(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.ObserveReset(service.ResetOutcomePolicyViolation)
	c.ObserveReset(service.ResetOutcomeSuccess)
	c.ObserveIssued()

	values := counterByOutcome(findFamily(t, reg, "loginflow_password_reset_total"))
	assert.Equal(t, map[string]float64{"policy_violation": 1, "success": 1}, values)

	issued := findFamily(t, reg, "loginflow_temporary_password_issued_total")
	require.Len(t, issued.GetMetric(), 1)
	assert.InDelta(t, 1, issued.GetMetric()[0].GetCounter().GetValue(), 0)
}

func TestNewLoginMetrics_Disabled(t *testing.T) {
	reg := prometheus.NewRegistry()

	assert.Nil(t, NewLoginMetrics(&config.Config{}, reg))
	assert.Nil(t, NewLoginMetrics(&config.Config{Metrics: &config.MetricsConfig{Enabled: false}}, reg))
	assert.NotNil(t, NewLoginMetrics(&config.Config{Metrics: &config.MetricsConfig{Enabled: true}}, reg))
}

func TestHandler(t *testing.T) {
	reg := NewRegistry()
	NewCollector(reg).ObserveIssued()

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "loginflow_temporary_password_issued_total 1"))
	assert.True(t, strings.Contains(rec.Body.String(), "go_goroutines"))
}
