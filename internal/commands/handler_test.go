package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

type testMessage struct {
	Course string
}

func (testMessage) Type() string { return "tutors.test.message" }

func (testMessage) Validate() error { return nil }

type invalidMessage struct{}

func (invalidMessage) Type() string { return "tutors.test.invalid" }

func (invalidMessage) Validate() error { return errors.New("invalid") }

func TestHandlerExecuteSuccess(t *testing.T) {
	called := false
	h := NewHandler(func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	if err := h.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !called {
		t.Fatal("expected handler to be invoked")
	}
}

func TestHandlerValidationShortCircuitsExecution(t *testing.T) {
	called := false
	h := NewHandler(func(ctx context.Context, msg invalidMessage) error {
		called = true
		return nil
	})

	err := h.Execute(context.Background(), invalidMessage{})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when validation fails")
	}
}

func TestHandlerContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	h := NewHandler(func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	err := h.Execute(ctx, testMessage{})
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled to be preserved, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when context is cancelled")
	}
}

func TestHandlerWrapsExecutionError(t *testing.T) {
	execErr := errors.New("boom")
	h := NewHandler(func(ctx context.Context, msg testMessage) error {
		return execErr
	})

	err := h.Execute(context.Background(), testMessage{})
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if !errors.Is(err, execErr) {
		t.Fatalf("expected wrapped error to unwrap to the cause, got %v", err)
	}
}

func TestHandlerHonoursTimeoutOption(t *testing.T) {
	h := NewHandler(func(ctx context.Context, msg testMessage) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
			return nil
		}
	}, WithTimeout[testMessage](10*time.Millisecond))

	err := h.Execute(context.Background(), testMessage{})
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category for timeout, got %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestHandlerReportsTelemetry(t *testing.T) {
	var infos []TelemetryInfo
	telemetry := func(_ context.Context, _ testMessage, info TelemetryInfo) {
		infos = append(infos, info)
	}
	fail := errors.New("fail")
	calls := 0
	h := NewHandler(func(ctx context.Context, msg testMessage) error {
		calls++
		if calls == 2 {
			return fail
		}
		return nil
	},
		WithOperation[testMessage]("course.generate"),
		WithMessageFields(func(msg testMessage) map[string]any {
			return map[string]any{"course_dir": msg.Course}
		}),
		WithTelemetry(telemetry),
	)

	if err := h.Execute(context.Background(), testMessage{Course: "/c"}); err != nil {
		t.Fatalf("first execute: %v", err)
	}
	if err := h.Execute(context.Background(), testMessage{Course: "/c"}); err == nil {
		t.Fatal("expected second execute to fail")
	}

	if len(infos) != 2 {
		t.Fatalf("expected two telemetry callbacks, got %d", len(infos))
	}
	first := infos[0]
	if first.Status != TelemetryStatusSuccess || first.Command != "tutors.test.message" || first.Operation != "course.generate" {
		t.Fatalf("unexpected success telemetry %+v", first)
	}
	if first.Fields["course_dir"] != "/c" {
		t.Fatalf("expected message fields in telemetry, got %v", first.Fields)
	}
	if infos[1].Status != TelemetryStatusFailed || !errors.Is(infos[1].Error, fail) {
		t.Fatalf("unexpected failure telemetry %+v", infos[1])
	}
}

func TestCommandLoggerDefaultsModule(t *testing.T) {
	if CommandLogger(nil, " ") == nil {
		t.Fatal("expected a logger without provider")
	}
}
