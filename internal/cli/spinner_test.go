package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func captureSpinner(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := spinnerOut
	spinnerOut = &buf
	t.Cleanup(func() { spinnerOut = prev })
	return &buf
}

func TestSpinnerBasic(t *testing.T) {
	buf := captureSpinner(t)

	s := newSpinner("Loading pizza.owl...")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if !strings.Contains(buf.String(), "Loading pizza.owl...") {
		t.Errorf("spinner output missing message: %q", buf.String())
	}
	if s.Cancelled() {
		t.Error("Stop should not count as cancellation")
	}
}

func TestSpinnerWithContext(t *testing.T) {
	captureSpinner(t)
	ctx, cancel := context.WithCancel(context.Background())

	s := newSpinnerWithContext(ctx, "Testing with context...")
	s.Start()
	cancel()
	s.Stop()

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context cancellation")
	}
}

func TestSpinnerWithTimeout(t *testing.T) {
	captureSpinner(t)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	s := newSpinnerWithContext(ctx, "Testing with timeout...")
	s.Start()
	<-ctx.Done()
	s.Stop()

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context timeout")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	captureSpinner(t)
	s := newSpinner("Testing idempotent stop...")
	s.Start()
	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithoutStart(t *testing.T) {
	captureSpinner(t)
	s := newSpinner("never started")
	s.Stop()
}

func TestSpinnerStopWithMessage(t *testing.T) {
	captureSpinner(t)
	out := captureStdout(t)

	s := newSpinner("Rendering...")
	s.Start()
	s.StopWithSuccess("Rendered 3 files")

	s = newSpinner("Rendering...")
	s.Start()
	s.StopWithError("render failed")

	got := out.String()
	for _, want := range []string{iconSuccess + " Rendered 3 files", iconError + " render failed"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}
