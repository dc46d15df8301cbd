package common

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/apex/log"
)

// GracefulContext returns a context canceled on SIGINT or SIGTERM.
func GracefulContext(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			log.Infof("Received %s, starting graceful shutdown...", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
