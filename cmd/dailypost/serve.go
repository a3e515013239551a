package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ziara/dailypost"
)

var addr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Preview the generated site locally",
	Long: `Serves the site root as static files, plus a small JSON API:

  GET /api/posts?category=&limit=   index records, newest first
  GET /api/posts/:filename          a single record
  GET /api/categories               distinct categories`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		if addr != "" {
			cfg.Addr = addr
		}
		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer cancel()
		return dailypost.NewServer(cfg, logger).Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default: DAILYPOST_ADDR or :8000)")
}
