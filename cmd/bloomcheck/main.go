package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/rag-nar1/bloomcheck/filter"
	"github.com/rag-nar1/bloomcheck/internal/checker"
	"github.com/rag-nar1/bloomcheck/internal/logger"
	"github.com/rag-nar1/bloomcheck/internal/report"
	"github.com/rag-nar1/bloomcheck/internal/source"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("bloomcheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fpRate := fs.Float64("p", 1e-7, "target false-positive probability")
	hashName := fs.String("hash", "murmur3", "hash family: "+strings.Join(filter.HashNames(), ", "))
	workers := fs.Int("workers", 1, "goroutines used to insert and query")
	header := fs.Bool("header", false, "skip the first row of both files")
	logLevel := fs.String("log-level", "warn", "log level: debug, info, warn, error")
	logFile := fs.String("log-file", "", "write logs to a rotated file instead of stderr")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: bloomcheck [flags] db_input.csv db_check.csv")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return exitUsage
	}

	log, err := logger.New(logger.Config{Level: *logLevel, File: *logFile, Output: stderr})
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	defer log.Sync()

	hash, err := filter.HashByName(*hashName)
	if err != nil {
		log.Error("invalid hash", zap.Error(err))
		return exitUsage
	}

	opts := source.Options{SkipHeader: *header}
	corpusPath, queryPath := fs.Arg(0), fs.Arg(1)

	corpus, err := source.ReadFile(corpusPath, opts)
	if err != nil {
		log.Error("failed to read corpus", zap.String("path", corpusPath), zap.Error(err))
		return exitError
	}

	c, err := checker.Build(ctx, corpus, checker.Config{
		FalsePositiveRate: *fpRate,
		Hash:              hash,
		Workers:           *workers,
		Logger:            log,
	})
	if err != nil {
		log.Error("failed to build filter", zap.Error(err))
		return exitError
	}

	queries, err := source.ReadFile(queryPath, opts)
	if err != nil {
		log.Error("failed to read queries", zap.String("path", queryPath), zap.Error(err))
		return exitError
	}

	results, err := c.Check(ctx, queries)
	if err != nil {
		log.Error("failed to check queries", zap.Error(err))
		return exitError
	}

	if err := report.NewWriter(stdout).WriteAll(results); err != nil {
		log.Error("failed to write results", zap.Error(err))
		return exitError
	}
	return exitOK
}
