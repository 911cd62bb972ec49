// Command bandpower computes windowed spectral band powers for a folder of
// recordings and writes summary and detail tables.
//
// Usage:
//
//	bandpower run [dir] [flags]
//	bandpower bands
//	bandpower tapers [-size N] [-periodic]
//	bandpower config show
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
