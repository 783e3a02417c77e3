package bridge

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"
)

// Run parses CLI options, locates the editor server and serves stdio until
// end of input or interrupt. A startup failure surfaces as the returned
// error; a clean shutdown returns nil.
func Run(args []string) error {
	options := &Options{}
	_, err := flags.ParseArgs(options, args)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	srv, err := New(ctx, options)
	if err != nil {
		return err
	}
	return srv.Serve(ctx)
}
