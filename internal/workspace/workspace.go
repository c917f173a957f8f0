// Package workspace assembles saved-search workspace documents from
// CLI inputs before they are sent to the service.
package workspace

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Parse parses a raw JSON workspace document. Empty or whitespace-only
// input yields an empty document, letting flags build the workspace
// from scratch.
func Parse(raw string) (map[string]any, error) {
	if strings.TrimSpace(raw) == "" {
		return map[string]any{}, nil
	}

	var ws map[string]any
	if err := json.Unmarshal([]byte(raw), &ws); err != nil {
		return nil, fmt.Errorf("parsing workspace: %w", err)
	}
	return ws, nil
}

// ApplyName overrides the workspace name when one was given.
func ApplyName(ws map[string]any, name string) {
	if name != "" {
		ws["name"] = name
	}
}

// ApplyAOI parses a GeoJSON geometry and installs it as the workspace
// geometry filter at filters.geometry.intersects, preserving any other
// filters already in the document.
func ApplyAOI(ws map[string]any, geometry string) error {
	if geometry == "" {
		return nil
	}

	var geom any
	if err := json.Unmarshal([]byte(geometry), &geom); err != nil {
		return fmt.Errorf("parsing aoi geometry: %w", err)
	}

	filters, ok := ws["filters"].(map[string]any)
	if !ok {
		filters = map[string]any{}
		ws["filters"] = filters
	}

	geomFilter, ok := filters["geometry"].(map[string]any)
	if !ok {
		geomFilter = map[string]any{}
		filters["geometry"] = geomFilter
	}
	geomFilter["intersects"] = geom

	return nil
}

// ID picks the workspace id the update is addressed to: an explicit
// --id wins, --create forces a new workspace, otherwise the document's
// own id is reused when present. The id stays in the document body
// either way.
func ID(ws map[string]any, explicit string, create bool) string {
	if explicit != "" {
		return explicit
	}
	if create {
		return ""
	}
	if id, ok := ws["id"].(string); ok {
		return id
	}
	return ""
}
