// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paperdesk/internal/arxiv"
	"github.com/pdiddy/paperdesk/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search the arXiv API for papers",
	Long: `Search queries the arXiv API with structured filters: free-text terms,
title/abstract/author scoping, category codes, and a submitted/updated date
range. Explicit IDs via --id bypass the query and look papers up directly.

Requests honor the provider's rate-limit policy (one request per 3 seconds
with bounded retries), so large result sets take several seconds.`,
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	filter, err := filterFromFlags(cmd)
	if err != nil {
		return err
	}

	cfg := loadConfig()
	client := arxiv.NewClient(cfg.Arxiv)

	papers, err := client.Search(cmd.Context(), filter)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(papers)
	}
	formatPaperTable(papers)
	return nil
}

func filterFromFlags(cmd *cobra.Command) (arxiv.Filter, error) {
	flags := cmd.Flags()

	query, _ := flags.GetString("query")
	title, _ := flags.GetString("title")
	abstract, _ := flags.GetString("abstract")
	author, _ := flags.GetString("author")
	categories, _ := flags.GetStringSlice("categories")
	dateMode, _ := flags.GetString("date-mode")
	from, _ := flags.GetString("from")
	to, _ := flags.GetString("to")
	sortBy, _ := flags.GetString("sort-by")
	sortOrder, _ := flags.GetString("sort-order")
	maxResults, _ := flags.GetInt("max-results")
	idList, _ := flags.GetStringSlice("id")

	f := arxiv.Filter{
		AllTerms:   query,
		Title:      title,
		Abstract:   abstract,
		Author:     author,
		Categories: categories,
		DateMode:   arxiv.DateMode(dateMode),
		SortBy:     arxiv.SortBy(sortBy),
		SortOrder:  arxiv.SortOrder(sortOrder),
		MaxResults: maxResults,
		IDList:     idList,
	}

	var err error
	if from != "" {
		if f.DateFrom, err = arxiv.ParseDate(from); err != nil {
			return arxiv.Filter{}, err
		}
	}
	if to != "" {
		if f.DateTo, err = arxiv.ParseDate(to); err != nil {
			return arxiv.Filter{}, err
		}
	}
	return f, nil
}

func formatPaperTable(papers []types.Paper) {
	if len(papers) == 0 {
		fmt.Println("No results found.")
		return
	}

	fmt.Printf("%-14s  %-56s  %-24s  %-10s  %s\n",
		"ID", "Title", "Authors", "Published", "Category")
	fmt.Println(strings.Repeat("-", 118))

	for _, p := range papers {
		published := ""
		if p.Published != nil {
			published = p.Published.Format("2006-01-02")
		}
		fmt.Printf("%-14s  %-56s  %-24s  %-10s  %s\n",
			p.ArxivID, truncate(p.Title, 56), formatAuthors(p.Authors),
			published, p.PrimaryCategory)
	}
	fmt.Printf("\n%d results\n", len(papers))
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncate(authors[0], 24)
	default:
		return truncate(authors[0], 18) + " et al."
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func init() {
	searchCmd.Flags().String("query", "", "free-text terms matched across all fields")
	searchCmd.Flags().String("title", "", "terms matched against the title")
	searchCmd.Flags().String("abstract", "", "terms matched against the abstract")
	searchCmd.Flags().String("author", "", "terms matched against author names")
	searchCmd.Flags().StringSlice("categories", nil, "category codes (e.g. cs.LG,cs.AI)")
	searchCmd.Flags().String("date-mode", "", "date range field: submitted or updated")
	searchCmd.Flags().String("from", "", "date range start (YYYY-MM-DD)")
	searchCmd.Flags().String("to", "", "date range end (YYYY-MM-DD)")
	searchCmd.Flags().String("sort-by", "relevance", "sort key: relevance, submittedDate, or lastUpdatedDate")
	searchCmd.Flags().String("sort-order", "descending", "sort direction: ascending or descending")
	searchCmd.Flags().Int("max-results", 20, "maximum number of results (capped at 50)")
	searchCmd.Flags().StringSlice("id", nil, "look up papers by arXiv ID instead of querying")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}
