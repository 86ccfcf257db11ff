package utils

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
)

// CallbackOnInterrupt calls cb once on SIGINT or SIGTERM unless ctx is done first
func CallbackOnInterrupt(ctx context.Context, cb func()) {
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-c:
			cb()
		case <-ctx.Done():
		}
		signal.Stop(c)
	}()
}

func IsTty() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
