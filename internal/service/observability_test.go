package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/alexanderramin/studycal/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestLogUseCaseObserver_WritesEvents(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	obs := NewLogUseCaseObserver(logger)

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:     "generate-plan",
		Duration: 12 * time.Millisecond,
		Success:  true,
		Fields:   map[string]any{"items": 3},
	})
	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name: "ingest-html",
		Err:  errors.New("model offline"),
	})

	out := buf.String()
	assert.Contains(t, out, "level=INFO msg=service_use_case use_case=generate-plan duration_ms=12 success=true items=3")
	assert.Contains(t, out, "level=ERROR msg=service_use_case use_case=ingest-html")
	assert.Contains(t, out, `error="model offline"`)
}

func TestNewLogUseCaseObserver_NilLogger(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
}

func TestLogUseCaseObserver_InputErrorsAreWarnings(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(slog.New(slog.NewTextHandler(&buf, nil)))

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name: "generate-plan",
		Err:  &domain.ParseError{Field: "start_time", Value: "7pm", Reason: "expected HH:MM"},
	})

	assert.Contains(t, buf.String(), "level=WARN msg=service_use_case use_case=generate-plan")
	assert.NotContains(t, buf.String(), "level=ERROR")
}

func TestLogUseCaseObserver_RequestID(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(slog.New(slog.NewTextHandler(&buf, nil)))

	ctx := WithRequestID(context.Background(), "req-42")
	assert.Equal(t, "req-42", RequestIDFrom(ctx))
	assert.Empty(t, RequestIDFrom(context.Background()))

	obs.ObserveUseCase(ctx, UseCaseEvent{Name: "delete-plan", Success: true})
	assert.Contains(t, buf.String(), "request_id=req-42")
}

func TestCombineObservers(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, combineObservers(nil))
	assert.IsType(t, NoopUseCaseObserver{}, combineObservers([]UseCaseObserver{nil}))

	a, b := &recordingObserver{}, &recordingObserver{}
	assert.Same(t, a, combineObservers([]UseCaseObserver{nil, a}))

	both := combineObservers([]UseCaseObserver{a, nil, b})
	both.ObserveUseCase(context.Background(), UseCaseEvent{Name: "ingest-text"})
	assert.Len(t, a.events, 1)
	assert.Len(t, b.events, 1)
}
