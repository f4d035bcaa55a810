package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestProfilerConfig_Validate(t *testing.T) {
	assert.NoError(t, ProfilerConfig{}.Validate())
	assert.ErrorContains(t, ProfilerConfig{Enabled: true, ApplicationName: "inv"}.Validate(), "server address")
	assert.ErrorContains(t, ProfilerConfig{Enabled: true, ServerAddress: "http://p:4040"}.Validate(), "application name")
	assert.NoError(t, ProfilerConfig{Enabled: true, ServerAddress: "http://p:4040", ApplicationName: "inv"}.Validate())
}

func TestNewProfiler_Disabled(t *testing.T) {
	p, err := NewProfiler(ProfilerConfig{}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, p.IsEnabled())
	assert.NoError(t, p.Stop())
	assert.NoError(t, p.Stop())
}

func TestNewProfiler_InvalidConfig(t *testing.T) {
	_, err := NewProfiler(ProfilerConfig{Enabled: true}, nil)
	assert.Error(t, err)
}

func TestOrDefault(t *testing.T) {
	assert.Equal(t, 5, orDefault(0, 5))
	assert.Equal(t, 5, orDefault(-1, 5))
	assert.Equal(t, 3, orDefault(3, 5))
}
