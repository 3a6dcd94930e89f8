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

// Package genechat assembles the variant-analysis chat service: an embedded
// BadgerDB for sessions and message logs, a directory-backed upload store,
// an AI provider for lookups and generation, a rate-aware enrichment
// annotator, and the conversation controller that ties them together.
package genechat

import (
	"log/slog"
	"path/filepath"
	"time"

	"github.com/variantlab/genechat/ai"
	"github.com/variantlab/genechat/ai/openai"
	"github.com/variantlab/genechat/annotate"
	"github.com/variantlab/genechat/chat"
	"github.com/variantlab/genechat/storage"
	"github.com/variantlab/genechat/storage/badger"
	"github.com/variantlab/genechat/storage/dirupload"
)

// Service is the composition root for the variant chat system. One Service
// is intended per process; its annotator and rate gate are shared across
// all conversation turns.
type Service struct {
	backend   *badger.Backend
	sessions  storage.SessionStore
	messages  storage.MessageLog
	uploads   storage.UploadStore
	provider  ai.Provider
	annotator *annotate.Annotator
	logger    *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	aiConfig     *ai.Config
	provider     ai.Provider
	poolSize     int
	callInterval time.Duration
	uploadDir    string
}

// WithAIConfig overrides the default AI configuration.
func WithAIConfig(config *ai.Config) ServiceOption {
	return func(o *serviceOptions) {
		o.aiConfig = config
	}
}

// WithProvider injects a pre-built AI provider, bypassing WithAIConfig.
func WithProvider(provider ai.Provider) ServiceOption {
	return func(o *serviceOptions) {
		o.provider = provider
	}
}

// WithPoolSize sets the enrichment concurrency ceiling.
func WithPoolSize(size int) ServiceOption {
	return func(o *serviceOptions) {
		o.poolSize = size
	}
}

// WithCallInterval sets the minimum spacing between lookup calls.
func WithCallInterval(interval time.Duration) ServiceOption {
	return func(o *serviceOptions) {
		o.callInterval = interval
	}
}

// WithUploadDir sets the directory uploads are persisted under.
// Default is "uploads" next to the database.
func WithUploadDir(dir string) ServiceOption {
	return func(o *serviceOptions) {
		o.uploadDir = dir
	}
}

// NewService opens the database at filePath and wires up the full service.
func NewService(filePath string, opts ...ServiceOption) (*Service, error) {
	options := &serviceOptions{
		aiConfig:     ai.DefaultConfig(),
		poolSize:     1,
		callInterval: -1, // sentinel: keep the annotator default
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	sessions, err := badger.NewSessionRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	messages, err := badger.NewMessageRepository(backend)
	if err != nil {
		sessions.Close()
		backend.Close()
		return nil, err
	}

	uploadDir := options.uploadDir
	if uploadDir == "" {
		uploadDir = filepath.Join(filepath.Dir(filePath), "uploads")
	}
	uploads, err := dirupload.NewStore(uploadDir)
	if err != nil {
		messages.Close()
		sessions.Close()
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			messages.Close()
			sessions.Close()
			backend.Close()
			return nil, err
		}
	}

	annotatorOpts := []annotate.Option{annotate.WithPoolSize(options.poolSize)}
	if options.callInterval >= 0 {
		annotatorOpts = append(annotatorOpts, annotate.WithCallInterval(options.callInterval))
	}
	annotator, err := annotate.New(provider.Searcher(), annotatorOpts...)
	if err != nil {
		provider.Close()
		messages.Close()
		sessions.Close()
		backend.Close()
		return nil, err
	}

	return &Service{
		backend:   backend,
		sessions:  sessions,
		messages:  messages,
		uploads:   uploads,
		provider:  provider,
		annotator: annotator,
		logger:    slog.Default(),
	}, nil
}

// Close releases the service's resources in dependency order.
func (s *Service) Close() error {
	s.annotator.Release()

	if err := s.provider.Close(); err != nil {
		s.logger.Error("error closing AI provider", "err", err)
	}

	if err := s.messages.Close(); err != nil {
		s.logger.Error("error closing message log", "err", err)
		return err
	}
	if err := s.sessions.Close(); err != nil {
		s.logger.Error("error closing session store", "err", err)
		return err
	}
	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// SessionStore returns the session store.
func (s *Service) SessionStore() storage.SessionStore {
	return s.sessions
}

// MessageLog returns the message log.
func (s *Service) MessageLog() storage.MessageLog {
	return s.messages
}

// Annotator returns the shared enrichment annotator.
func (s *Service) Annotator() *annotate.Annotator {
	return s.annotator
}

// NewController creates a conversation controller over the service's
// collaborators.
func (s *Service) NewController() *chat.Controller {
	return chat.NewController(s.sessions, s.messages, s.uploads, s.annotator, s.provider.Generator())
}
