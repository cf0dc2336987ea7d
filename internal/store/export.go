// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paperdesk/pkg/types"
)

// exportPageSize bounds each listing query during export.
const exportPageSize = 500

// ExportYAML writes every saved record, joined with its paper, to path as a
// YAML document ordered by save time.
func (s *Store) ExportYAML(ctx context.Context, path string) error {
	items, err := s.allSaved(ctx)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportJSON writes every saved record, joined with its paper, to path as an
// indented JSON array ordered by save time.
func (s *Store) ExportJSON(ctx context.Context, path string) error {
	items, err := s.allSaved(ctx)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (s *Store) allSaved(ctx context.Context) ([]types.SavedPaper, error) {
	all := []types.SavedPaper{}
	for page := 1; ; page++ {
		items, total, err := s.ListSaved(ctx, ListOptions{
			Page: page, PageSize: exportPageSize,
		})
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
		if len(all) >= total || len(items) == 0 {
			return all, nil
		}
	}
}
