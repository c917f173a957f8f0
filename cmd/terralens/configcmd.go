package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/terralens/terralens/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage global configuration",
	Long: `Manage the global config file (` + config.GlobalConfigFile + ` under
XDG_CONFIG_HOME). Settings layer under command-line flags: a flag
always wins over the file.`,
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the global configuration",
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set a configuration value (base_url, api_key, workers)",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(cfg)
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := cfg.Set(args[0], args[1]); err != nil {
		return err
	}
	return cfg.Save()
}
