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


package mock

import "github.com/variantlab/genechat/ai"

// MockProvider is a test double for ai.Provider.
// It aggregates mock searcher and generator instances.
type MockProvider struct {
	searcher  *MockSearcher
	generator *MockGenerator
}

// NewMockProvider creates a new mock provider with default mock services.
//
// Returns ai.Provider interface for consistency with production constructors.
// Use GetMockSearcher()/GetMockGenerator() to access concrete types for test assertions.
func NewMockProvider() ai.Provider {
	return &MockProvider{
		searcher:  NewMockSearcher(),
		generator: NewMockGenerator(),
	}
}

// NewMockProviderWithServices creates a mock provider with custom mock services.
// This allows full control over the behavior of each service.
func NewMockProviderWithServices(searcher *MockSearcher, generator *MockGenerator) ai.Provider {
	return &MockProvider{
		searcher:  searcher,
		generator: generator,
	}
}

// Searcher returns the mock searcher.
func (p *MockProvider) Searcher() ai.Searcher {
	return p.searcher
}

// Generator returns the mock generator.
func (p *MockProvider) Generator() ai.Generator {
	return p.generator
}

// Close is a no-op for mock provider.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockSearcher returns the underlying mock searcher for test assertions.
// This allows tests to check call counts and inject custom behavior.
func (p *MockProvider) GetMockSearcher() *MockSearcher {
	return p.searcher
}

// GetMockGenerator returns the underlying mock generator for test assertions.
// This allows tests to check call counts and inject custom behavior.
func (p *MockProvider) GetMockGenerator() *MockGenerator {
	return p.generator
}
