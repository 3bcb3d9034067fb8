package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOtlpProtocol(t *testing.T) {
	testCases := []struct {
		name     string
		config   OtlpConnConfig
		protocol string
	}{
		{name: "empty", config: OtlpConnConfig{}, protocol: ""},
		{name: "grpc", config: OtlpConnConfig{GrpcEndpoint: "http://localhost:4317"}, protocol: "grpc"},
		{name: "http", config: OtlpConnConfig{HttpEndpoint: "http://localhost:4318"}, protocol: "http"},
		{
			name: "grpc wins",
			config: OtlpConnConfig{
				GrpcEndpoint: "http://localhost:4317",
				HttpEndpoint: "http://localhost:4318",
			},
			protocol: "grpc",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.protocol, tc.config.protocol())
			require.Equal(t, tc.protocol != "", tc.config.configured())
		})
	}
}

func TestSetupWithoutEndpoints(t *testing.T) {
	tel, err := Setup(context.Background(), "subastas-test", Config{})
	require.NoError(t, err)
	require.Nil(t, tel.TracerProvider)
	require.Nil(t, tel.MeterProvider)
	require.NoError(t, tel.Shutdown(context.Background()))
}

func TestSetupHttpExporters(t *testing.T) {
	endpoint := OtlpConnConfig{HttpEndpoint: "http://127.0.0.1:1/v1"}
	tel, err := Setup(context.Background(), "subastas-test", Config{
		Otlp: OtlpConfig{Traces: endpoint},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = tel.Shutdown(context.Background()) })
	require.NotNil(t, tel.TracerProvider)
	require.Nil(t, tel.MeterProvider)
}
