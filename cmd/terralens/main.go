// Package main provides the terralens CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/terralens/terralens/internal/config"
	"github.com/terralens/terralens/internal/scenes"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "terralens",
	Short: "Search, inspect, and download satellite imagery",
	Long: `terralens is a command-line client for the TerraLens imagery API.

Core features:
  - Scene search by area of interest (GeoJSON in, GeoJSON out)
  - Scene metadata retrieval with a local cache
  - Concurrent full-scene downloads
  - Saved search workspaces on the service
  - API key management via 'terralens init'

Commands print the raw JSON payload returned by the service, so output
pipes cleanly into jq and friends.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// clientParams carries client-construction settings captured from
// global flags before any subcommand runs.
type clientParams struct {
	APIKey  string
	Workers int
	BaseURL string
}

var params clientParams

func init() {
	// Load .env file if present (for TL_API_KEY)
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVarP(&params.APIKey, "api-key", "k", "", "TerraLens API key (overrides TL_API_KEY and stored credentials)")
	rootCmd.PersistentFlags().IntVar(&params.Workers, "workers", scenes.DefaultWorkers, "Concurrent download workers")
	rootCmd.PersistentFlags().StringVar(&params.BaseURL, "base-url", "", "Override the service base URL")

	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

// newClient builds the remote client from global flags layered over the
// global config file. It is a variable so tests can substitute a fake.
var newClient = func() scenes.API {
	cfg, err := config.Load()
	if err != nil {
		cfg = &config.GlobalConfig{}
	}

	opts := []scenes.ClientOption{}
	if key := firstNonEmpty(params.APIKey, cfg.APIKey); key != "" {
		opts = append(opts, scenes.WithAPIKey(key))
	}
	if u := firstNonEmpty(params.BaseURL, cfg.BaseURL); u != "" {
		opts = append(opts, scenes.WithBaseURL(u))
	}

	workers := params.Workers
	if workers == scenes.DefaultWorkers && cfg.Workers > 0 {
		workers = cfg.Workers
	}
	opts = append(opts, scenes.WithWorkers(workers))

	return scenes.NewClient(opts...)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
