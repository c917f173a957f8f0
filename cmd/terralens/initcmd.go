package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/terralens/terralens/internal/creds"
	"github.com/terralens/terralens/internal/scenes"
)

var (
	initEmail    string
	initPassword string
)

func init() {
	initCmd.Flags().StringVar(&initEmail, "email", "", "Account email")
	initCmd.Flags().StringVar(&initPassword, "password", "", "Account password")
	initCmd.MarkFlagRequired("email")
	initCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Log in and store the API key",
	Long: `Exchange account credentials for an API key and store it locally.

The key lands in ` + creds.File + ` in your home directory and is picked
up automatically by every other command.`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	resp, err := callAndWrap(func() (*scenes.Response, error) {
		return newClient().Login(cmd.Context(), initEmail, initPassword)
	})
	if err != nil {
		return err
	}

	var login struct {
		APIKey string `json:"api_key"`
	}
	if err := json.Unmarshal([]byte(resp.GetBody().GetRaw()), &login); err != nil {
		return fmt.Errorf("parsing login response: %w", err)
	}
	if login.APIKey == "" {
		return fmt.Errorf("login response carried no api_key")
	}

	return creds.Store(login.APIKey)
}
