package main

import (
	"github.com/spf13/cobra"

	"github.com/terralens/terralens/internal/scenes"
	"github.com/terralens/terralens/internal/workspace"
)

var (
	wsCreate bool
	wsID     string
	wsName   string
	wsAOI    string
)

func init() {
	setWorkspaceCmd.Flags().BoolVar(&wsCreate, "create", false, "Create a new workspace even if the document carries an id")
	setWorkspaceCmd.Flags().StringVar(&wsID, "id", "", "Workspace id to update")
	setWorkspaceCmd.Flags().StringVar(&wsName, "name", "", "Workspace name")
	setWorkspaceCmd.Flags().StringVar(&wsAOI, "aoi", "", "GeoJSON geometry for the workspace filter (literal, @file, or @-)")
	rootCmd.AddCommand(setWorkspaceCmd)
}

var setWorkspaceCmd = &cobra.Command{
	Use:   "set-workspace [WORKSPACE_JSON]",
	Short: "Create or update a saved search workspace",
	Long: `Create or update a workspace, a named search-filter configuration
stored on the service.

The workspace document may be given as a literal JSON value, as @file,
or read from standard input (the default). --name and --aoi merge into
the document before it is sent.

The id the update is addressed to is taken from --id, or from the
document's own "id" field; --create forces creation of a new workspace.

Examples:
  terralens set-workspace @workspace.json
  terralens set-workspace --id 12345 @workspace.json
  terralens set-workspace --create --name california --aoi @aoi.geojson '{}'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSetWorkspace,
}

func runSetWorkspace(cmd *cobra.Command, args []string) error {
	doc := "@-"
	if len(args) > 0 {
		doc = args[0]
	}

	raw, err := resolveString(cmd, doc)
	if err != nil {
		return err
	}

	ws, err := workspace.Parse(raw)
	if err != nil {
		return err
	}

	workspace.ApplyName(ws, wsName)

	// --aoi accepts the same sentinels as positionals, so the geometry
	// can come from a file or stdin too.
	aoi, err := resolveString(cmd, wsAOI)
	if err != nil {
		return err
	}
	if err := workspace.ApplyAOI(ws, aoi); err != nil {
		return err
	}

	id := workspace.ID(ws, wsID, wsCreate)

	resp, err := callAndWrap(func() (*scenes.Response, error) {
		return newClient().SetWorkspace(cmd.Context(), ws, id)
	})
	if err != nil {
		return err
	}

	echoRaw(cmd, resp)
	return nil
}
