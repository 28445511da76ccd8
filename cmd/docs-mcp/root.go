// ABOUTME: Root command wiring config, logging, cache and the API client.
// ABOUTME: Subcommands share the client set up in PersistentPreRunE.

package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/harper/docs-mcp/internal/api"
	"github.com/harper/docs-mcp/internal/cache"
	"github.com/harper/docs-mcp/internal/config"
)

var (
	cfg      *config.Config
	client   *api.Client
	docCache *cache.Cache
	logger   *log.Logger
)

var rootCmd = &cobra.Command{
	Use:           "docs-mcp",
	Short:         "CLI and MCP server for a Docs collaborative-document instance",
	Long:          `docs-mcp talks to a Docs instance (the suite's collaborative document editor) over its REST API. It works as a regular CLI and as an MCP server for AI agents.`,
	Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initClient()
	},
}

func initClient() error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return err
	}

	logger = newLogger(cfg.LogLevel)

	opts := []api.Option{api.WithLogger(logger)}
	if cfg.CacheEnabled {
		docCache, err = cache.Open(cache.DefaultDir(), cfg.CacheTTL)
		if err != nil {
			logger.Warn("cache unavailable, continuing without it", "err", err)
		} else {
			opts = append(opts, api.WithCache(docCache))
		}
	}

	client = api.New(cfg, opts...)
	return nil
}

func newLogger(level string) *log.Logger {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "docs-mcp",
	})
	switch level {
	case "debug":
		l.SetLevel(log.DebugLevel)
	case "warn":
		l.SetLevel(log.WarnLevel)
	case "error":
		l.SetLevel(log.ErrorLevel)
	default:
		l.SetLevel(log.InfoLevel)
	}
	return l
}

func Execute() error {
	defer func() {
		if docCache != nil {
			docCache.Close()
		}
	}()
	return rootCmd.Execute()
}
