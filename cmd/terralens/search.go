package main

import (
	"github.com/spf13/cobra"

	"github.com/terralens/terralens/internal/scenes"
)

var (
	searchType  string
	searchLimit int
)

func init() {
	searchCmd.Flags().StringVar(&searchType, "type", scenes.DefaultSceneType, "Scene type to search")
	searchCmd.Flags().IntVar(&searchLimit, "limit", scenes.DefaultSearchCount, "Maximum results to return")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search [AOI]",
	Short: "Get a list of scenes",
	Long: `Search for scenes intersecting an area of interest.

The AOI is a GeoJSON geometry and may be given as a literal, as @file,
or as - / @- to read standard input. With no argument the AOI is read
from standard input; an empty stdin searches without a geometry filter.

Examples:
  terralens search '{"type": "Point", "coordinates": [-122.3, 37.8]}'
  terralens search @aoi.geojson --limit 10
  cat aoi.geojson | terralens search`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	aoi := "@-"
	if len(args) > 0 {
		aoi = args[0]
	}

	intersects, err := resolveString(cmd, aoi)
	if err != nil {
		return err
	}

	resp, err := callAndWrap(func() (*scenes.Response, error) {
		return newClient().GetScenesList(cmd.Context(), searchType, scenes.SearchOptions{
			Intersects: intersects,
			Count:      searchLimit,
		})
	})
	if err != nil {
		return err
	}

	echoRaw(cmd, resp)
	return nil
}
