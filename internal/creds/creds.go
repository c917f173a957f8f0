// Package creds stores the TerraLens API key obtained by login.
//
// The key lives in a single JSON file in the user's home directory,
// shaped as {"key": "..."}.
package creds

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// File is the credentials file name in the user's home directory.
const File = ".terralens.json"

// Path locates the credentials file. It is a variable so tests can
// point it at a scratch file.
var Path = func() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}
	return filepath.Join(home, File), nil
}

type credentials struct {
	Key string `json:"key"`
}

// Load reads the stored API key. A missing file is an error; callers
// treating credentials as optional should ignore it.
func Load() (string, error) {
	path, err := Path()
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading credentials: %w", err)
	}

	var c credentials
	if err := json.Unmarshal(data, &c); err != nil {
		return "", fmt.Errorf("parsing credentials: %w", err)
	}
	return c.Key, nil
}

// Store writes the API key, replacing any previous credentials. The
// file is readable only by the owner.
func Store(key string) error {
	path, err := Path()
	if err != nil {
		return err
	}

	data, err := json.Marshal(credentials{Key: key})
	if err != nil {
		return fmt.Errorf("encoding credentials: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing credentials: %w", err)
	}
	return nil
}
