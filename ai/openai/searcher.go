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


package openai

import (
	"context"
	"log/slog"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/variantlab/genechat/ai"
)

// Searcher implements ai.Searcher using OpenAI-compatible chat APIs.
type Searcher struct {
	client llms.Model
	logger *slog.Logger
}

// newSearcher is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newSearcher(config *ai.Config) (*Searcher, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.SearchHost),
		openai.WithToken(config.APIToken),
		openai.WithModel(config.SearchModel),
	)
	if err != nil {
		return nil, err
	}

	return &Searcher{
		client: client,
		logger: slog.Default().With("component", "openai-searcher"),
	}, nil
}

// NewSearcher creates a new knowledge-lookup service using the provided configuration.
//
// Returns ai.Searcher interface to enforce abstraction.
func NewSearcher(config *ai.Config) (ai.Searcher, error) {
	return newSearcher(config)
}

// Search runs one knowledge lookup. Rate-limit rejections are mapped to
// *ai.ThrottleError so the annotation layer can honor suggested delays.
func (s *Searcher) Search(ctx context.Context, query string) (string, error) {
	s.logger.Debug("running knowledge lookup", "length", len(query))

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(searchSystemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(query),
			},
		},
	}

	response, err := s.client.GenerateContent(ctx, content, llms.WithTemperature(0.2))
	if err != nil {
		s.logger.Error("knowledge lookup failed", "err", err)
		return "", ai.WrapThrottle(err)
	}

	if len(response.Choices) < 1 {
		s.logger.Debug("no choices returned from model")
		return "", nil
	}

	return response.Choices[0].Content, nil
}
