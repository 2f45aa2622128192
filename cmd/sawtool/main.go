// Command sawtool inspects and queries tables stored in SAW format.
//
// Usage:
//
//	sawtool --root ./data list
//	sawtool --root ./data info bush
//	sawtool --root ./data head -n 5 bush
//	sawtool --root ./data sort -- bush -approval who
//	sawtool --root ./data filter --where "approval>=60" --where "who=fox" bush
//	sawtool --root ./data index --min 50 --max 70 bush approval
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
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "sawtool:", err)
		os.Exit(1)
	}
}
