// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the paperdesk CLI: an arXiv search
// proxy and saved-paper service. The serve subcommand runs the HTTP API;
// search and saved expose the same operations from the terminal.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paperdesk/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the paperdesk CLI.
var rootCmd = &cobra.Command{
	Use:   "paperdesk",
	Short: "Search arXiv and keep an annotated collection of saved papers",
	Long: `paperdesk proxies structured search queries to the public arXiv API and
persists saved papers with tags and notes in a local SQLite database.

Run the HTTP API with "paperdesk serve", or use "search" and "saved" to
work with the same components from the terminal.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./paperdesk.yaml or ~/.config/paperdesk/config.yaml)")
}

func initConfig() {
	// A .env file in the working directory feeds the env overrides below.
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("paperdesk")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "paperdesk"))
		}
	}

	viper.SetEnvPrefix("PAPERDESK")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig assembles the explicit configuration struct that components
// receive; there is no process-wide settings singleton beyond this.
func loadConfig() types.Config {
	viper.SetDefault("server.addr", ":8000")
	viper.SetDefault("server.cors_allow_origins", []string{
		"http://localhost:5373",
		"http://127.0.0.1:5373",
		"http://localhost:3000",
	})
	viper.SetDefault("database.path", "paperdesk.db")
	viper.SetDefault("arxiv.page_size", 50)
	viper.SetDefault("arxiv.delay", 3*time.Second)
	viper.SetDefault("arxiv.num_retries", 3)
	viper.SetDefault("arxiv.timeout", 30*time.Second)
	viper.SetDefault("arxiv.user_agent", "paperdesk/"+version)

	return types.Config{
		Server: types.ServerConfig{
			Addr:             viper.GetString("server.addr"),
			CORSAllowOrigins: viper.GetStringSlice("server.cors_allow_origins"),
		},
		Database: types.DatabaseConfig{
			Path: viper.GetString("database.path"),
		},
		Arxiv: types.ArxivConfig{
			BaseURL:    viper.GetString("arxiv.base_url"),
			PageSize:   viper.GetInt("arxiv.page_size"),
			Delay:      viper.GetDuration("arxiv.delay"),
			NumRetries: viper.GetInt("arxiv.num_retries"),
			Timeout:    viper.GetDuration("arxiv.timeout"),
			UserAgent:  viper.GetString("arxiv.user_agent"),
		},
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
