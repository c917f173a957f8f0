package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/terralens/terralens/internal/cache"
	"github.com/terralens/terralens/internal/config"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and manage the local scene-metadata cache",
}

var cacheInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show cache location and size",
	RunE:  runCacheInfo,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached scene metadata",
	RunE:  runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cacheInfoCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

// CacheInfoResponse is the JSON output of 'cache info'.
type CacheInfoResponse struct {
	Path   string `json:"path"`
	Scenes int    `json:"scenes"`
}

func runCacheInfo(cmd *cobra.Command, args []string) error {
	path := config.CacheDBPath()
	db, err := cache.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := db.Count()
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(CacheInfoResponse{Path: path, Scenes: n})
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	db, err := cache.Open(config.CacheDBPath())
	if err != nil {
		return err
	}
	defer db.Close()

	return db.Clear()
}
