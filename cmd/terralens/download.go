package main

import (
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/terralens/terralens/internal/scenes"
)

var (
	downloadType    string
	downloadProduct string
	downloadDest    string
)

func init() {
	downloadCmd.Flags().StringVar(&downloadType, "type", scenes.DefaultSceneType, "Scene type")
	downloadCmd.Flags().StringVar(&downloadProduct, "product", scenes.DefaultProduct, "Image product to download")
	downloadCmd.Flags().StringVar(&downloadDest, "dest", ".", "Destination directory")
	rootCmd.AddCommand(downloadCmd)
}

var downloadCmd = &cobra.Command{
	Use:   "download SCENE_ID...",
	Short: "Download full scene imagery",
	Long: `Download full imagery for one or more scenes.

Scenes are fetched concurrently; tune the pool with the global
--workers flag. Each scene lands at <dest>/<id>.tif.

Examples:
  terralens download 20150615_190229_0905
  terralens download --dest ./imagery --product analytic a1 b2 c3`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDownload,
}

func runDownload(cmd *cobra.Command, args []string) error {
	// Progress only when a human is watching stderr.
	if isatty.IsTerminal(os.Stderr.Fd()) {
		s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
		s.Suffix = " downloading scenes"
		s.Start()
		defer s.Stop()
	}

	err := newClient().Download(cmd.Context(), scenes.DownloadRequest{
		IDs:       args,
		SceneType: downloadType,
		Product:   downloadProduct,
		Dest:      downloadDest,
	})
	if err != nil {
		return wrapClientError(err)
	}
	return nil
}
