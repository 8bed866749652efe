package telemetry

import (
	"context"
	"testing"

	"delit-api/internal/config"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWithoutEndpointIsNoop(t *testing.T) {
	p, err := New(context.Background(), config.TelemetryConfig{ServiceName: "delit-api"}, zap.NewNop())
	require.NoError(t, err)
	require.False(t, p.Enabled())
	require.NotNil(t, p.Tracer())
	require.NoError(t, p.Shutdown(context.Background()))
}

func TestNilProvider(t *testing.T) {
	var p *Provider
	require.False(t, p.Enabled())
	require.NoError(t, p.Shutdown(context.Background()))
}
