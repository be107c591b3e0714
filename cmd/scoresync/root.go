package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"scoresync/internal/config"
	"scoresync/internal/fetch"
	"scoresync/internal/home"
	"scoresync/internal/output"
	"scoresync/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
	noCache      bool
)

var rootCmd = &cobra.Command{
	Use:   "scoresync",
	Short: "Fuse audio, score images, and note annotations into one synchronized manifest",
	Long: `scoresync cross-references four documents describing a single musical
performance - an audio manifest, a scanned-score image manifest, and two
annotation collections linking note identifiers to audio time spans and
to page regions - and reconciles them into one timeline manifest where
every note has both a time segment and a polygon on a page.

The pipeline:
  - Joins the two annotation collections on the shared note identifier
  - Accumulates observed time windows per score page
  - Reconciles windows into a gap-free partition (midpoint splitting)
  - Emits painting annotations per page and highlight annotations per note`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.scoresync/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "scoresync home directory (default: ~/.scoresync)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "json", "output format for stdout results: yaml or json",
	)
	rootCmd.PersistentFlags().BoolVar(
		&noCache, "no-cache", false, "bypass the on-disk fetch cache",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		output.SetFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
}

// newLogger builds the CLI logger.
func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// setup loads config and the home directory shared by the commands.
func setup() (*config.Manager, *home.Dir, error) {
	cm, err := config.NewManager(cfgFile)
	if err != nil {
		return nil, nil, err
	}
	h, err := home.New(homeDir)
	if err != nil {
		return nil, nil, err
	}
	return cm, h, nil
}

// newFetchClient builds a fetch client from the current config,
// opening the cache unless disabled by flag or config.
func newFetchClient(cfg *config.Config, h *home.Dir, logger *slog.Logger) (*fetch.Client, func(), error) {
	cleanup := func() {}

	var cache *fetch.Cache
	if cfg.Cache.Enabled && !noCache {
		if err := h.EnsureExists(); err != nil {
			return nil, nil, err
		}
		path := cfg.Cache.Path
		if path == "" {
			path = h.CachePath()
		}
		c, err := fetch.OpenCache(path)
		if err != nil {
			return nil, nil, err
		}
		cache = c
		cleanup = func() { c.Close() }
	}

	client := fetch.New(fetch.Config{
		Timeout:  cfg.Fetch.Timeout(),
		Attempts: cfg.Fetch.Attempts,
		Cache:    cache,
		Logger:   logger,
	})
	return client, cleanup, nil
}
