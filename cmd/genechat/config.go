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

package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"github.com/variantlab/genechat/ai"
	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the YAML configuration file. Every field is optional;
// unset fields keep their defaults.
type fileConfig struct {
	SearchHost  string `yaml:"search_host"`
	ChatHost    string `yaml:"chat_host"`
	SearchModel string `yaml:"search_model"`
	ChatModel   string `yaml:"chat_model"`
	TitleModel  string `yaml:"title_model"`
	APIToken    string `yaml:"api_token"`
}

// loadAIConfig builds the AI configuration from the optional --config YAML
// file. The GENECHAT_API_TOKEN environment variable overrides the file's
// token so secrets can stay out of config files.
func loadAIConfig(c *cli.Context) (*ai.Config, error) {
	var opts []ai.ConfigOption

	if path := c.String("config"); path != "" {
		fc, err := readConfigFile(path)
		if err != nil {
			return nil, err
		}
		if fc.SearchHost != "" {
			opts = append(opts, ai.WithSearchHost(fc.SearchHost))
		}
		if fc.ChatHost != "" {
			opts = append(opts, ai.WithChatHost(fc.ChatHost))
		}
		if fc.SearchModel != "" {
			opts = append(opts, ai.WithSearchModel(fc.SearchModel))
		}
		if fc.ChatModel != "" {
			opts = append(opts, ai.WithChatModel(fc.ChatModel))
		}
		if fc.TitleModel != "" {
			opts = append(opts, ai.WithTitleModel(fc.TitleModel))
		}
		if fc.APIToken != "" {
			opts = append(opts, ai.WithAPIToken(fc.APIToken))
		}
	}

	if token := os.Getenv("GENECHAT_API_TOKEN"); token != "" {
		opts = append(opts, ai.WithAPIToken(token))
	}

	return ai.NewConfig(opts...), nil
}

func readConfigFile(path string) (*fileConfig, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("open config file %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory, expected a file", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return &fc, nil
}
