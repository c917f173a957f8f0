package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/terralens/terralens/internal/argio"
	"github.com/terralens/terralens/internal/scenes"
)

// echoRaw prints the raw service payload, newline-terminated.
func echoRaw(cmd *cobra.Command, resp *scenes.Response) {
	fmt.Fprintln(cmd.OutOrStdout(), resp.GetBody().GetRaw())
}

// resolver builds an input resolver bound to the command's stdin, so
// @- and - sentinels read from whatever the dispatcher wired up.
func resolver(cmd *cobra.Command) *argio.Resolver {
	return &argio.Resolver{Stdin: cmd.InOrStdin()}
}

// resolveString resolves an argument value expected to come back as a
// single string (literal, file content, or stdin).
func resolveString(cmd *cobra.Command, value string) (string, error) {
	resolved, err := resolver(cmd).Resolve(value, false)
	if err != nil {
		return "", err
	}
	s, _ := resolved.(string)
	return s, nil
}
