package store

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/teemow/mcp-todo-server/internal/instrumentation"
)

// Instrument wraps open so that opening a client and every call on the
// returned Store produce a span and a remote_store_operations_total sample
// labelled with backend. metrics may be nil.
func Instrument(backend string, open Opener, metrics *instrumentation.Metrics) Opener {
	return func(ctx context.Context, credential string) (Store, error) {
		ctx, span := instrumentation.StartStoreSpan(ctx, backend, instrumentation.OperationOpen)
		defer span.End()

		start := time.Now()
		inner, err := open(ctx, credential)
		record(ctx, metrics, backend, instrumentation.OperationOpen, start, err)
		if err != nil {
			instrumentation.SetSpanError(span, err)
			return nil, err
		}
		instrumentation.SetSpanSuccess(span)

		return &instrumentedStore{inner: inner, backend: backend, metrics: metrics}, nil
	}
}

type instrumentedStore struct {
	inner   Store
	backend string
	metrics *instrumentation.Metrics
}

func (s *instrumentedStore) Create(ctx context.Context, collectionID string, fields Fields) (string, error) {
	ctx, span := instrumentation.StartStoreSpan(ctx, s.backend, instrumentation.OperationCreate,
		attribute.String(instrumentation.SpanAttrCollection, collectionID))
	defer span.End()

	start := time.Now()
	id, err := s.inner.Create(ctx, collectionID, fields)
	record(ctx, s.metrics, s.backend, instrumentation.OperationCreate, start, err)
	if err != nil {
		instrumentation.SetSpanError(span, err)
		return "", err
	}

	span.SetAttributes(attribute.String(instrumentation.SpanAttrPageID, id))
	instrumentation.SetSpanSuccess(span)
	return id, nil
}

func (s *instrumentedStore) Archive(ctx context.Context, id string) error {
	ctx, span := instrumentation.StartStoreSpan(ctx, s.backend, instrumentation.OperationArchive,
		attribute.String(instrumentation.SpanAttrPageID, id))
	defer span.End()

	start := time.Now()
	err := s.inner.Archive(ctx, id)
	record(ctx, s.metrics, s.backend, instrumentation.OperationArchive, start, err)
	if err != nil {
		instrumentation.SetSpanError(span, err)
		return err
	}

	instrumentation.SetSpanSuccess(span)
	return nil
}

func record(ctx context.Context, metrics *instrumentation.Metrics, backend, operation string, start time.Time, err error) {
	status := instrumentation.StatusSuccess
	if err != nil {
		status = instrumentation.StatusError
	}
	metrics.RecordStoreOperation(ctx, backend, operation, status, time.Since(start))
}
