// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Program jdocd serves demonstration JSON documents over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/creachadair/jdoc/internal/config"
	"github.com/creachadair/jdoc/internal/demo"
	"github.com/creachadair/jdoc/serve"
	"github.com/spf13/cobra"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type settings struct {
	addr       string
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	var s settings
	cmd := &cobra.Command{
		Use:          "jdocd",
		Short:        "Serve JSON documents built from Go values",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(s.configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr = s.addr
			}
			level, err := cfg.Level()
			if err != nil {
				return err
			}
			if s.verbose {
				level = log.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(level))
			return run(ctx, cfg)
		},
	}
	cmd.Flags().StringVar(&s.addr, "addr", config.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&s.configPath, "config", "", "path of a TOML configuration file")
	cmd.PersistentFlags().BoolVarP(&s.verbose, "verbose", "v", false, "enable verbose logging")
	return cmd
}

func run(ctx context.Context, cfg config.Config) error {
	logger := loggerFromContext(ctx)

	srv := serve.New(serve.Options{Logger: logger})
	srv.Register(demo.Controllers(cfg)...)
	srv.Handle("health", demo.Health)
	for _, route := range srv.Routes() {
		logger.Debug("route", "path", route)
	}

	logger.Info("listening", "addr", cfg.Addr)
	err := srv.ListenAndServe(ctx, cfg.Addr)
	if err == nil || errors.Is(err, context.Canceled) {
		logger.Info("stopped")
		return nil
	}
	return err
}

func newLogger(level log.Level) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
		Prefix:          "jdocd",
	})
}

type ctxKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
