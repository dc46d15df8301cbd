package common

import (
	"context"
	"syscall"
	"testing"
	"time"
)

func TestGracefulContext_Signal(t *testing.T) {
	ctx, cancel := GracefulContext(context.Background())
	defer cancel()

	if err := syscall.Kill(syscall.Getpid(), syscall.SIGTERM); err != nil {
		t.Fatalf("failed to send signal: %v", err)
	}

	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("context was not canceled after SIGTERM")
	}
}

func TestGracefulContext_Cancel(t *testing.T) {
	ctx, cancel := GracefulContext(context.Background())
	cancel()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context was not canceled")
	}
}
