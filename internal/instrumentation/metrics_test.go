package instrumentation

import (
	"context"
	"testing"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestMetrics(t *testing.T) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("failed to create metrics: %v", err)
	}
	return m, reader
}

// counterTotal sums every data point of the named Int64 counter.
func counterTotal(t *testing.T, reader *sdkmetric.ManualReader, name string) int64 {
	t.Helper()

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}

	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("metric %s is %T, not an int64 sum", name, m.Data)
			}
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
		}
	}
	return total
}

func TestMetrics_RecordHTTPRequest(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordHTTPRequest(ctx, "GET", "/healthz", 200, 10*time.Millisecond)
	m.RecordHTTPRequest(ctx, "POST", "/mcp", 500, 50*time.Millisecond)

	if got := counterTotal(t, reader, "http_requests_total"); got != 2 {
		t.Errorf("http_requests_total = %d, want 2", got)
	}
}

func TestMetrics_RecordStoreOperation(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordStoreOperation(ctx, "notion", OperationCreate, StatusSuccess, 200*time.Millisecond)
	m.RecordStoreOperation(ctx, "notion", OperationArchive, StatusError, 100*time.Millisecond)
	m.RecordStoreOperation(ctx, "google-tasks", OperationOpen, StatusSuccess, time.Millisecond)

	if got := counterTotal(t, reader, "remote_store_operations_total"); got != 3 {
		t.Errorf("remote_store_operations_total = %d, want 3", got)
	}
}

func TestMetrics_RecordSync(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordSync(ctx, SyncResultSynced, 2)
	m.RecordSync(ctx, SyncResultFailed, 1)
	m.RecordSync(ctx, SyncResultNotConfigured, 0)

	if got := counterTotal(t, reader, "todo_sync_runs_total"); got != 3 {
		t.Errorf("todo_sync_runs_total = %d, want 3", got)
	}
	if got := counterTotal(t, reader, "todo_tasks_synced_total"); got != 3 {
		t.Errorf("todo_tasks_synced_total = %d, want 3", got)
	}
}

func TestMetrics_RecordToolInvocation(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordToolInvocation(ctx, "add_task", StatusSuccess, 5*time.Millisecond)
	m.RecordToolInvocation(ctx, "sync_to_notion", StatusError, time.Second)

	if got := counterTotal(t, reader, "mcp_tool_invocations_total"); got != 2 {
		t.Errorf("mcp_tool_invocations_total = %d, want 2", got)
	}
}

func TestMetrics_NilSafe(t *testing.T) {
	ctx := context.Background()

	var nilMetrics *Metrics
	nilMetrics.RecordHTTPRequest(ctx, "GET", "/", 200, time.Millisecond)
	nilMetrics.RecordStoreOperation(ctx, "notion", OperationCreate, StatusSuccess, time.Millisecond)
	nilMetrics.RecordSync(ctx, SyncResultSynced, 1)
	nilMetrics.RecordToolInvocation(ctx, "add_task", StatusSuccess, time.Millisecond)

	zero := &Metrics{}
	zero.RecordHTTPRequest(ctx, "GET", "/", 200, time.Millisecond)
	zero.RecordStoreOperation(ctx, "notion", OperationCreate, StatusSuccess, time.Millisecond)
	zero.RecordSync(ctx, SyncResultSynced, 1)
	zero.RecordToolInvocation(ctx, "add_task", StatusSuccess, time.Millisecond)
}
