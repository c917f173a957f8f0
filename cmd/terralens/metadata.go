package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/terralens/terralens/internal/cache"
	"github.com/terralens/terralens/internal/config"
	"github.com/terralens/terralens/internal/scenes"
)

var (
	metadataType   string
	metadataCached bool
)

func init() {
	metadataCmd.Flags().StringVar(&metadataType, "type", scenes.DefaultSceneType, "Scene type")
	metadataCmd.Flags().BoolVar(&metadataCached, "cached", false, "Serve from the local cache without touching the network")
	rootCmd.AddCommand(metadataCmd)
}

var metadataCmd = &cobra.Command{
	Use:   "metadata SCENE_ID",
	Short: "Get metadata for a scene",
	Long: `Fetch the metadata record for a single scene.

Fetched records are written through to a local cache; --cached reads
the last fetched copy instead of calling the service.

Examples:
  terralens metadata 20150615_190229_0905
  terralens metadata 20150615_190229_0905 --cached`,
	Args: cobra.ExactArgs(1),
	RunE: runMetadata,
}

func runMetadata(cmd *cobra.Command, args []string) error {
	id := args[0]

	if metadataCached {
		return serveCachedMetadata(cmd, id)
	}

	resp, err := callAndWrap(func() (*scenes.Response, error) {
		return newClient().GetSceneMetadata(cmd.Context(), id, metadataType)
	})
	if err != nil {
		return err
	}

	// Write-through; a broken cache never fails the fetch.
	if db, err := cache.Open(config.CacheDBPath()); err == nil {
		_ = db.Put(id, metadataType, resp.GetBody().GetRaw())
		db.Close()
	}

	echoRaw(cmd, resp)
	return nil
}

func serveCachedMetadata(cmd *cobra.Command, id string) error {
	db, err := cache.Open(config.CacheDBPath())
	if err != nil {
		return err
	}
	defer db.Close()

	raw, ok, err := db.Get(id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("scene %s not in cache (fetch it once without --cached)", id)
	}

	fmt.Fprintln(cmd.OutOrStdout(), raw)
	return nil
}
