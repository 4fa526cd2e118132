package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/goliatone/go-tutors"
	"github.com/goliatone/go-tutors/cmd/tutors/internal/bootstrap"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := runMon(ctx, os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("tutors-mon: %v", err)
	}
}

func runMon(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("tutors-mon", flag.ExitOnError)
	opts := bootstrap.RegisterFlags(fs, true)
	if err := fs.Parse(args); err != nil {
		return err
	}
	opts.RequireCourseFile = true

	module, err := moduleBuilder(*opts)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	if module == nil || module.Watcher == nil {
		return fmt.Errorf("watcher not configured")
	}

	err = module.Watcher.Watch(ctx, func(result *tutors.Result, err error) {
		if err != nil {
			fmt.Fprintf(stdout, "generation failed: %v\n", err)
			return
		}
		fmt.Fprintln(stdout, bootstrap.Summary(result))
	})
	if err != nil {
		return fmt.Errorf("watch %s: %w", module.Config.CourseDir, err)
	}
	return nil
}
