// Command schemacheck validates a JSON document against a schema file.
//
// Usage:
//
//	schemacheck -schema signup.yaml [-strip] [-paths] [-max-depth n] [record.json]
//
// The record is read from stdin when no file is given. The result is printed
// as JSON; a summary of failures goes to stderr. The exit status is 0 for a valid record, 1 for an invalid one and
// 2 for usage or input errors.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dmitrymomot/reqguard/pkg/binder"
	"github.com/dmitrymomot/reqguard/pkg/engine"
	"github.com/dmitrymomot/reqguard/pkg/schema"
)

const (
	exitValid   = 0
	exitInvalid = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("schemacheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	schemaFile := fs.String("schema", "", "schema file (.json, .yaml or .yml)")
	strip := fs.Bool("strip", false, "also print the record restricted to declared fields")
	paths := fs.Bool("paths", false, "name nested fields by their dotted path")
	maxDepth := fs.Int("max-depth", engine.DefaultMaxDepth, "maximum object nesting depth")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if *schemaFile == "" || fs.NArg() > 1 {
		fmt.Fprintln(stderr, "usage: schemacheck -schema FILE [-strip] [-paths] [-max-depth N] [RECORD]")
		return exitUsage
	}

	content, err := os.ReadFile(*schemaFile)
	if err != nil {
		fmt.Fprintf(stderr, "schemacheck: %v\n", err)
		return exitUsage
	}
	s, err := schema.ParseFile(ctx, *schemaFile, content)
	if err != nil {
		fmt.Fprintf(stderr, "schemacheck: %v\n", err)
		return exitUsage
	}
	for _, path := range s.Unsupported() {
		fmt.Fprintf(stderr, "schemacheck: warning: field %s has an unsupported type\n", path)
	}
	for _, path := range s.UnknownDateFormats() {
		fmt.Fprintf(stderr, "schemacheck: warning: field %s has an unknown date format\n", path)
	}

	in := stdin
	if fs.NArg() == 1 && fs.Arg(0) != "-" {
		f, err := os.Open(fs.Arg(0))
		if err != nil {
			fmt.Fprintf(stderr, "schemacheck: %v\n", err)
			return exitUsage
		}
		defer f.Close()
		in = f
	}
	data, err := io.ReadAll(in)
	if err != nil {
		fmt.Fprintf(stderr, "schemacheck: read record: %v\n", err)
		return exitUsage
	}
	record, err := binder.Decode(data)
	if err != nil {
		fmt.Fprintf(stderr, "schemacheck: %v\n", err)
		return exitUsage
	}

	opts := []engine.Option{engine.WithMaxDepth(*maxDepth)}
	if *strip {
		opts = append(opts, engine.WithStripUnknown())
	}
	if *paths {
		opts = append(opts, engine.WithNestedPaths())
	}
	res := engine.Validate(record, s, opts...)

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		fmt.Fprintf(stderr, "schemacheck: %v\n", err)
		return exitUsage
	}
	if err := res.Err(); err != nil {
		fmt.Fprintf(stderr, "schemacheck: %v\n", err)
		return exitInvalid
	}
	return exitValid
}
