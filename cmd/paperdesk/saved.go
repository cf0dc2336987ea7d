// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paperdesk/internal/store"
)

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "Work with the saved-paper collection",
}

// --- list subcommand ---

var savedListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved papers with filters, sorting, and pagination",
	RunE:  runSavedList,
}

func runSavedList(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	page, _ := flags.GetInt("page")
	pageSize, _ := flags.GetInt("page-size")
	keyword, _ := flags.GetString("keyword")
	author, _ := flags.GetString("author")
	category, _ := flags.GetString("category")
	tag, _ := flags.GetString("tag")
	sortBy, _ := flags.GetString("sort-by")
	sortOrder, _ := flags.GetString("sort-order")

	st, err := store.Open(loadConfig().Database)
	if err != nil {
		return err
	}
	defer st.Close()

	items, total, err := st.ListSaved(context.Background(), store.ListOptions{
		Page:      page,
		PageSize:  pageSize,
		Keyword:   keyword,
		Author:    author,
		Category:  category,
		Tag:       tag,
		SortBy:    sortBy,
		SortOrder: sortOrder,
	})
	if err != nil {
		return err
	}

	if jsonOutput, _ := flags.GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}

	if len(items) == 0 {
		fmt.Println("No saved papers.")
		return nil
	}

	fmt.Printf("%-5s  %-14s  %-50s  %-20s  %s\n", "ID", "ArXiv ID", "Title", "Tags", "Saved")
	fmt.Println(strings.Repeat("-", 104))
	for _, saved := range items {
		fmt.Printf("%-5d  %-14s  %-50s  %-20s  %s\n",
			saved.ID, saved.Paper.ArxivID, truncate(saved.Paper.Title, 50),
			truncate(saved.Tags, 20), saved.CreatedAt.Format("2006-01-02"))
	}
	fmt.Printf("\npage %d of %d total\n", page, total)
	return nil
}

// --- export subcommand ---

var savedExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the saved-paper collection to a YAML or JSON file",
	RunE:  runSavedExport,
}

func runSavedExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")

	st, err := store.Open(loadConfig().Database)
	if err != nil {
		return err
	}
	defer st.Close()

	switch format {
	case "yaml":
		err = st.ExportYAML(context.Background(), out)
	case "json":
		err = st.ExportJSON(context.Background(), out)
	default:
		return fmt.Errorf("unknown export format %q: expected yaml or json", format)
	}
	if err != nil {
		return err
	}
	fmt.Printf("Exported saved papers to %s\n", out)
	return nil
}

func init() {
	savedListCmd.Flags().Int("page", 1, "1-indexed page number")
	savedListCmd.Flags().Int("page-size", 10, "results per page (max 50)")
	savedListCmd.Flags().String("keyword", "", "substring match against title or summary")
	savedListCmd.Flags().String("author", "", "substring match against authors")
	savedListCmd.Flags().String("category", "", "substring match against categories")
	savedListCmd.Flags().String("tag", "", "substring match against tags")
	savedListCmd.Flags().String("sort-by", "created_at", "sort field: created_at, published, or updated")
	savedListCmd.Flags().String("sort-order", "desc", "sort direction: asc or desc")
	savedListCmd.Flags().Bool("json", false, "output results as JSON")

	savedExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	savedExportCmd.Flags().String("out", "export.yaml", "output file path")

	savedCmd.AddCommand(savedListCmd)
	savedCmd.AddCommand(savedExportCmd)
	rootCmd.AddCommand(savedCmd)
}
