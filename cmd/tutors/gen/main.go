package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/goliatone/go-tutors/cmd/tutors/internal/bootstrap"
	generatecmd "github.com/goliatone/go-tutors/internal/commands/generate"
	"github.com/goliatone/go-tutors/internal/generator"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runGen(context.Background(), os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("tutors-gen: %v", err)
	}
}

func runGen(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("tutors-gen", flag.ExitOnError)
	opts := bootstrap.RegisterFlags(fs, false)
	dryRun := fs.Bool("dry-run", false, "Build the course without writing any file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(*opts)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	if module == nil || module.Generator == nil {
		return fmt.Errorf("generator service not configured")
	}

	var result *generator.Result
	handler := generatecmd.NewGenerateCourseHandler(module.Generator, module.Logger)
	cmd := generatecmd.GenerateCourseCommand{
		CourseDir:         module.Config.CourseDir,
		OutputDir:         module.Config.OutputDir,
		DryRun:            *dryRun,
		RequireCourseFile: module.Config.RequireCourseFile,
		ResultCallback:    func(r *generator.Result) { result = r },
	}
	if err := handler.Execute(ctx, cmd); err != nil {
		return fmt.Errorf("execute generate command: %w", err)
	}

	fmt.Fprintln(stdout, bootstrap.Summary(result))
	return nil
}
