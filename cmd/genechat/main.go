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
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	"github.com/variantlab/genechat"
	"github.com/variantlab/genechat/ai"
	"github.com/variantlab/genechat/ai/openai"
	"github.com/variantlab/genechat/annotate"
	"github.com/variantlab/genechat/chat"
	"github.com/variantlab/genechat/core"
	"github.com/variantlab/genechat/vcf"
)

func main() {
	app := &cli.App{
		Name:  "genechat",
		Usage: "Conversational analysis of genetic variant files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML configuration file",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "analyze",
				Usage:  "Parse and enrich a VCF file, printing the summary",
				Action: analyzeCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Path to the VCF file",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "note",
						Usage: "Contextual note passed to enrichment",
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Maximum concurrent lookup calls",
						Value: 1,
					},
					&cli.DurationFlag{
						Name:  "call-interval",
						Usage: "Minimum spacing between lookup calls",
						Value: 7 * time.Second,
					},
				},
			},
			{
				Name:   "chat",
				Usage:  "Send one conversation turn to a session",
				Action: chatCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.Uint64Flag{
						Name:    "session",
						Aliases: []string{"s"},
						Usage:   "Session ID (omit to create a new session)",
					},
					&cli.StringFlag{
						Name:    "message",
						Aliases: []string{"m"},
						Usage:   "Text message to send",
					},
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Usage:   "VCF file to upload with the turn",
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Maximum concurrent lookup calls",
						Value: 1,
					},
				},
			},
			{
				Name:   "sessions",
				Usage:  "List sessions in the database",
				Action: sessionsCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func analyzeCommand(c *cli.Context) error {
	ctx := context.Background()

	variants, err := vcf.ExtractFile(c.String("file"))
	if err != nil {
		return fmt.Errorf("failed to parse VCF: %w", err)
	}
	if len(variants) == 0 {
		fmt.Println("No variants found.")
		return nil
	}

	aiConfig, err := loadAIConfig(c)
	if err != nil {
		return err
	}
	provider, err := newProvider(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create AI provider: %w", err)
	}
	defer provider.Close()

	annotator, err := annotate.New(provider.Searcher(),
		annotate.WithPoolSize(c.Int("pool-size")),
		annotate.WithCallInterval(c.Duration("call-interval")),
	)
	if err != nil {
		return err
	}
	defer annotator.Release()

	enriched, err := annotator.Annotate(ctx, variants, c.String("note"))
	if err != nil {
		return fmt.Errorf("annotation failed: %w", err)
	}

	for _, v := range enriched {
		fmt.Printf("%s:%d %s %s->%s\n  %s\n\n",
			v.Chromosome, v.Position, v.Gene, v.Reference, v.Alternate, v.SearchSummary)
	}
	return nil
}

func chatCommand(c *cli.Context) error {
	ctx := context.Background()

	message := c.String("message")
	filePath := c.String("file")
	if message == "" && filePath == "" {
		return fmt.Errorf("either --message or --file is required")
	}

	aiConfig, err := loadAIConfig(c)
	if err != nil {
		return err
	}

	svc, err := genechat.NewService(c.String("db"),
		genechat.WithAIConfig(aiConfig),
		genechat.WithPoolSize(c.Int("pool-size")),
	)
	if err != nil {
		return fmt.Errorf("failed to open service: %w", err)
	}
	defer svc.Close()

	sessionID := core.ID(c.Uint64("session"))
	if sessionID == 0 {
		session, err := svc.SessionStore().AddSession(ctx, &core.Session{Kind: core.KindGeneral})
		if err != nil {
			return fmt.Errorf("failed to create session: %w", err)
		}
		sessionID = session.Id
		fmt.Printf("Created session %d\n", sessionID)
	}

	var upload *chat.Upload
	if filePath != "" {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return fmt.Errorf("failed to read upload: %w", err)
		}
		upload = &chat.Upload{Filename: filepath.Base(filePath), Data: data}
	}

	controller := svc.NewController()
	resp, err := controller.HandleInput(ctx, sessionID, message, upload)
	if err != nil {
		return err
	}

	fmt.Printf("[%s]\n\n%s\n", resp.Title, resp.Response)
	return nil
}

func sessionsCommand(c *cli.Context) error {
	ctx := context.Background()

	svc, err := genechat.NewService(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open service: %w", err)
	}
	defer svc.Close()

	sessions, err := svc.SessionStore().ListSessions(ctx)
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}
	if len(sessions) == 0 {
		fmt.Println("No sessions.")
		return nil
	}

	for _, s := range sessions {
		fmt.Printf("%6d  %-12s  %-40s  %s\n",
			s.Id, s.Kind, s.Title, s.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

func newProvider(config *ai.Config) (ai.Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}
	return openai.NewProvider(config)
}
