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
	"fmt"
	"log/slog"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/variantlab/genechat/ai"
)

// Generator implements ai.Generator using OpenAI-compatible chat APIs.
// Conversational replies and titles may use different models; titles
// usually get a smaller one.
type Generator struct {
	chatClient  llms.Model
	titleClient llms.Model
	logger      *slog.Logger
}

// newGenerator is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newGenerator(config *ai.Config) (*Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	chatClient, err := openai.New(
		openai.WithBaseURL(config.ChatHost),
		openai.WithToken(config.APIToken),
		openai.WithModel(config.ChatModel),
	)
	if err != nil {
		return nil, err
	}

	titleClient, err := openai.New(
		openai.WithBaseURL(config.ChatHost),
		openai.WithToken(config.APIToken),
		openai.WithModel(config.TitleModel),
	)
	if err != nil {
		return nil, err
	}

	return &Generator{
		chatClient:  chatClient,
		titleClient: titleClient,
		logger:      slog.Default().With("component", "openai-generator"),
	}, nil
}

// NewGenerator creates a new generation service using the provided configuration.
//
// Returns ai.Generator interface to enforce abstraction.
func NewGenerator(config *ai.Config) (ai.Generator, error) {
	return newGenerator(config)
}

// Chat generates the next assistant reply for the conversation history.
func (g *Generator) Chat(ctx context.Context, history []ai.Turn) (string, error) {
	g.logger.Debug("generating chat reply", "turns", len(history))

	content := make([]llms.MessageContent, 0, len(history)+1)
	content = append(content, llms.MessageContent{
		Role: llms.ChatMessageTypeSystem,
		Parts: []llms.ContentPart{
			llms.TextPart(chatSystemPrompt),
		},
	})
	for _, turn := range history {
		content = append(content, llms.MessageContent{
			Role: chatMessageType(turn.Role),
			Parts: []llms.ContentPart{
				llms.TextPart(turn.Content),
			},
		})
	}

	response, err := g.chatClient.GenerateContent(ctx, content, llms.WithTemperature(0.7))
	if err != nil {
		g.logger.Error("chat generation failed", "err", err)
		return "", ai.WrapThrottle(err)
	}

	if len(response.Choices) < 1 {
		g.logger.Debug("no choices returned from model")
		return "", nil
	}

	return response.Choices[0].Content, nil
}

// Title derives a short session title from the latest exchange.
// Only the most recent user input and assistant reply are submitted,
// not the full history.
func (g *Generator) Title(ctx context.Context, user, assistant string) (string, error) {
	exchange := fmt.Sprintf("User: %s\nAssistant: %s", user, assistant)
	g.logger.Debug("generating session title", "length", len(exchange))

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(titleSystemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(exchange),
			},
		},
	}

	response, err := g.titleClient.GenerateContent(ctx, content, llms.WithTemperature(0.0))
	if err != nil {
		g.logger.Error("title generation failed", "err", err)
		return "", ai.WrapThrottle(err)
	}

	if len(response.Choices) < 1 {
		return "", nil
	}

	return strings.TrimSpace(response.Choices[0].Content), nil
}

// chatMessageType maps wire role names onto langchaingo message types.
func chatMessageType(role string) llms.ChatMessageType {
	switch role {
	case "assistant":
		return llms.ChatMessageTypeAI
	default:
		return llms.ChatMessageTypeHuman
	}
}
