package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/teemow/mcp-todo-server/internal/instrumentation"
)

func TestInstrument(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	metrics, err := instrumentation.NewMetrics(mp.Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	m := NewMemory()
	open := Instrument("memory", m.Open, metrics)

	s, err := open(ctx, "token")
	require.NoError(t, err)

	id, err := s.Create(ctx, "db", Fields{Name: "buy milk"})
	require.NoError(t, err)
	require.NoError(t, s.Archive(ctx, id))
	require.Error(t, s.Archive(ctx, "missing"))

	var names []string
	for _, span := range recorder.Ended() {
		names = append(names, span.Name())
	}
	assert.Equal(t, []string{
		"store.memory.open",
		"store.memory.create",
		"store.memory.archive",
		"store.memory.archive",
	}, names)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	statuses := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, md := range sm.Metrics {
			if md.Name != "remote_store_operations_total" {
				continue
			}
			for _, dp := range md.Data.(metricdata.Sum[int64]).DataPoints {
				op, _ := dp.Attributes.Value("operation")
				status, _ := dp.Attributes.Value("status")
				statuses[op.AsString()+"/"+status.AsString()] += dp.Value
			}
		}
	}
	assert.Equal(t, map[string]int64{
		"open/success":    1,
		"create/success":  1,
		"archive/success": 1,
		"archive/error":   1,
	}, statuses)
}

func TestInstrument_OpenFailure(t *testing.T) {
	open := Instrument("notion", failingOpener, nil)
	_, err := open(context.Background(), "bad")
	assert.EqualError(t, err, "invalid token")
}
