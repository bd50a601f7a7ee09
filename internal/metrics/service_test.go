package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestServiceCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := NewService(reg)

	s.IncTogglesProcessed()
	s.IncTogglesProcessed()
	s.IncSubstitutionsCompleted()
	s.IncValidationRejections()
	s.IncPolicyAlerts()
	s.IncNotifSent()
	s.IncNotifFailed()
	s.SetStartupTime(1.5)

	assert.Equal(t, float64(2), testutil.ToFloat64(s.TogglesProcessed))
	assert.Equal(t, float64(1), testutil.ToFloat64(s.SubstitutionsCompleted))
	assert.Equal(t, float64(0), testutil.ToFloat64(s.SubstitutionsCancelled))
	assert.Equal(t, float64(1), testutil.ToFloat64(s.ValidationRejections))
	assert.Equal(t, float64(1), testutil.ToFloat64(s.PolicyAlerts))
	assert.Equal(t, float64(1), testutil.ToFloat64(s.NotifSent))
	assert.Equal(t, float64(1), testutil.ToFloat64(s.NotifFailed))
	assert.Equal(t, 1.5, testutil.ToFloat64(s.StartupTimeSeconds))
}

func TestServiceRegistersAllCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := NewService(reg)
	s.IncSnapshotSyncs()
	s.ObserveSyncDuration(0.02)

	families, err := reg.Gather()
	assert.NoError(t, err)
	assert.Len(t, families, 10)
}
