package guardian

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestRun_NotFound(t *testing.T) {
	_, err := Run(context.Background(), "definitely-not-a-real-binary-xyz", nil, Options{})
	if err == nil {
		t.Fatal("expected an error for a missing binary")
	}
	if !IsNotFound(err) {
		t.Errorf("expected NotFound, got %v", err)
	}
}

func TestRun_Success(t *testing.T) {
	res, err := Run(context.Background(), "echo", []string{"hello"}, Options{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(res.Stdout, "hello") {
		t.Errorf("expected stdout to contain %q, got %q", "hello", res.Stdout)
	}
	if res.ExitCode != 0 {
		t.Errorf("expected exit code 0, got %d", res.ExitCode)
	}
}

func TestRun_Timeout(t *testing.T) {
	_, err := Run(context.Background(), "sleep", []string{"5"}, Options{Timeout: 50 * time.Millisecond})
	if err == nil {
		t.Fatal("expected a timeout error")
	}
	if !IsTimeout(err) {
		t.Errorf("expected Timeout, got %v", err)
	}
}

func TestRun_ExecutionErrorRetries(t *testing.T) {
	var calls int
	_, err := Run(context.Background(), "false", nil, Options{
		MaxRetries: 2,
		RetryDelay: time.Millisecond,
		ErrorHandler: func(e *Error) {
			calls++
		},
	})
	if err == nil {
		t.Fatal("expected an execution error")
	}
	if !IsExecution(err) {
		t.Errorf("expected Execution, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 attempts (1 + 2 retries), got %d", calls)
	}
}

func TestRun_NotFoundIsNotRetried(t *testing.T) {
	var calls int
	_, err := Run(context.Background(), "definitely-not-a-real-binary-xyz", nil, Options{
		MaxRetries:   3,
		ErrorHandler: func(e *Error) { calls++ },
	})
	if err == nil {
		t.Fatal("expected an error")
	}
	if calls != 1 {
		t.Errorf("expected exactly 1 attempt for a not-found binary, got %d", calls)
	}
}

func TestMaskSensitiveArgs(t *testing.T) {
	masked := maskSensitiveArgs([]string{"mytool", "--token", "abc123", "--other", "val"})
	if strings.Contains(masked, "abc123") {
		t.Errorf("expected token value to be masked, got %q", masked)
	}
	if !strings.Contains(masked, "val") {
		t.Errorf("expected non-sensitive value to survive masking, got %q", masked)
	}
}

func TestRun_OutputTruncation(t *testing.T) {
	script := "for i in $(seq 1 1000); do echo aaaaaaaaaaaaaaaaaaaaaaaaaaaa; done"
	res, err := Run(context.Background(), "sh", []string{"-c", script}, Options{MaxOutputBytes: 16})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if int64(len(res.Stdout)) > 16 {
		t.Errorf("expected stdout capped at 16 bytes, got %d", len(res.Stdout))
	}
	if !res.Truncated {
		t.Error("expected Truncated to be true")
	}
}
