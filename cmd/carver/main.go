// Command carver shrinks images with content-aware seam carving.
//
// Usage:
//
//	carver carve photo.jpg -o small.png --cols 120 --rows 40
//	carver carve photo.jpg -o small.png --size 800x600 --faces
//	carver seams photo.jpg -o seams.png --cols 50
//	carver energy photo.jpg -o energy.png
//	carver batch ./img/input ./img/output --cols 1
//	carver config init
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

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
