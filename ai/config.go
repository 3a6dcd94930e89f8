// Copyright 2025 Variant Lab
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ai

import (
	"errors"
	"strings"
)

// Config holds configuration for AI service providers.
type Config struct {
	// SearchHost is the base URL for the knowledge-lookup service API.
	// Example: "http://localhost:11434/v1" for local OpenAI-compatible server
	SearchHost string

	// ChatHost is the base URL for the generation service API.
	// Example: "http://localhost:11434/v1" for local OpenAI-compatible server
	ChatHost string

	// SearchModel is the model identifier to use for knowledge lookups.
	// Example: "gemini-2.0-flash", "gpt-4o-mini"
	SearchModel string

	// ChatModel is the model identifier to use for conversational replies.
	// Example: "gemini-2.0-flash", "qwen2.5:3b"
	ChatModel string

	// TitleModel is the model identifier to use for session titles.
	// A smaller, faster model is usually sufficient here.
	TitleModel string

	// APIToken authenticates against the hosts. "none" works for local
	// OpenAI-compatible services that don't require authentication.
	APIToken string
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithSearchHost sets the knowledge-lookup service host URL.
func WithSearchHost(host string) ConfigOption {
	return func(c *Config) {
		c.SearchHost = host
	}
}

// WithChatHost sets the generation service host URL.
func WithChatHost(host string) ConfigOption {
	return func(c *Config) {
		c.ChatHost = host
	}
}

// WithHost sets both search and chat hosts to the same URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.SearchHost = host
		c.ChatHost = host
	}
}

// WithSearchModel sets the knowledge-lookup model identifier.
func WithSearchModel(model string) ConfigOption {
	return func(c *Config) {
		c.SearchModel = model
	}
}

// WithChatModel sets the conversational model identifier.
func WithChatModel(model string) ConfigOption {
	return func(c *Config) {
		c.ChatModel = model
	}
}

// WithTitleModel sets the title model identifier.
func WithTitleModel(model string) ConfigOption {
	return func(c *Config) {
		c.TitleModel = model
	}
}

// WithAPIToken sets the API token for both hosts.
func WithAPIToken(token string) ConfigOption {
	return func(c *Config) {
		c.APIToken = token
	}
}

// DefaultConfig returns a Config with sensible defaults for local OpenAI-compatible services.
// By default, search and chat use the same host.
func DefaultConfig() *Config {
	defaultHost := "http://localhost:11434/v1"
	return &Config{
		SearchHost:  defaultHost,
		ChatHost:    defaultHost,
		SearchModel: "gemini-2.0-flash",
		ChatModel:   "gemini-2.0-flash",
		TitleModel:  "gemini-2.5-flash",
		APIToken:    "none",
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
// This is the recommended way to create a Config with custom settings.
//
// Example:
//   cfg := NewConfig(
//       WithHost("http://localhost:11434/v1"),
//       WithChatModel("qwen2.5:3b"),
//   )
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// It automatically adds the /v1 suffix to hosts if missing, which is required
// by most OpenAI-compatible APIs (Ollama, LocalAI, vLLM, etc).
func (c *Config) Normalize() {
	if c.SearchHost != "" && !strings.HasSuffix(c.SearchHost, "/v1") {
		c.SearchHost = strings.TrimSuffix(c.SearchHost, "/")
		c.SearchHost = c.SearchHost + "/v1"
	}
	if c.ChatHost != "" && !strings.HasSuffix(c.ChatHost, "/v1") {
		c.ChatHost = strings.TrimSuffix(c.ChatHost, "/")
		c.ChatHost = c.ChatHost + "/v1"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	// Normalize first to ensure hosts are in correct format
	c.Normalize()

	if c.SearchHost == "" {
		return errors.New("ai config: SearchHost is required")
	}
	if c.ChatHost == "" {
		return errors.New("ai config: ChatHost is required")
	}
	if c.SearchModel == "" {
		return errors.New("ai config: SearchModel is required")
	}
	if c.ChatModel == "" {
		return errors.New("ai config: ChatModel is required")
	}
	if c.TitleModel == "" {
		return errors.New("ai config: TitleModel is required")
	}
	return nil
}
