// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ServerConfig holds settings for the HTTP API server.
type ServerConfig struct {
	// Addr is the listen address (e.g. ":8000").
	Addr string `json:"addr" yaml:"addr"`

	// CORSAllowOrigins lists origins permitted by the CORS middleware.
	// A comma-separated string from the environment is split on load.
	CORSAllowOrigins []string `json:"cors_allow_origins" yaml:"cors_allow_origins"`
}

// DatabaseConfig holds settings for the relational store.
type DatabaseConfig struct {
	// Path is the SQLite database file path.
	Path string `json:"path" yaml:"path"`
}

// ArxivConfig holds settings for the arXiv API client.
type ArxivConfig struct {
	// BaseURL is the arXiv query endpoint.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// PageSize is the number of results fetched per request (1..50).
	PageSize int `json:"page_size" yaml:"page_size"`

	// Delay is the minimum interval between consecutive API requests.
	// The provider asks for at least 3 seconds.
	Delay time.Duration `json:"delay" yaml:"delay"`

	// NumRetries is the number of retry attempts for transient failures.
	NumRetries int `json:"num_retries" yaml:"num_retries"`

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with API requests.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// Config groups all component configurations. It is constructed once at
// process start and passed explicitly to the components that need it.
type Config struct {
	Server   ServerConfig   `json:"server" yaml:"server"`
	Database DatabaseConfig `json:"database" yaml:"database"`
	Arxiv    ArxivConfig    `json:"arxiv" yaml:"arxiv"`
}
