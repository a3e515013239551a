// Command dailypost generates the daily post for a static site, and serves,
// lists and scaffolds such sites.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ziara/dailypost"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	verbose bool
	root    string
	palette string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "dailypost",
	Short: "Generate today's post for a static news site",
	Long: `dailypost asks an LLM provider for a news article, renders it as an HTML
page with a banner image (and an optional chart and table), refreshes the
site stylesheet and appends the post to posts-index.json.

Run without arguments to publish one post.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runGenerate,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the dailypost version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "dailypost %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&root, "root", "r", "", "Site root directory (default: DAILYPOST_ROOT or current)")
	rootCmd.PersistentFlags().StringVar(&palette, "palette", "", "Palette mode: seasonal or fixed (default: DAILYPOST_PALETTE or seasonal)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the environment and applies command-line overrides.
func loadConfig() dailypost.Config {
	cfg := dailypost.LoadConfig()
	if root != "" {
		cfg.SiteRoot = root
	}
	if palette != "" {
		cfg.PaletteMode = palette
	}
	return cfg
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := loadConfig()
	client, err := dailypost.NewClient(ctx, cfg)
	if err != nil {
		return err
	}

	app := dailypost.New(cfg, client, dailypost.WithLogger(logger))
	rep, err := app.Run(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if rep.Fallback {
		fmt.Fprintln(out, "warning: provider answer unusable, fallback post published")
	}
	fmt.Fprintf(out, "published %q\n  page:  %s\n  image: %s\n  index: %d posts\n",
		rep.Record.Title, rep.Record.Filename, rep.Record.Image, rep.Posts)
	return nil
}
