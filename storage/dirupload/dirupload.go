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

// Package dirupload stores uploaded files in a flat directory on disk.
package dirupload

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/variantlab/genechat/storage"
)

// Store implements storage.UploadStore backed by a single directory.
type Store struct {
	dir    string
	logger *slog.Logger
}

var _ storage.UploadStore = (*Store)(nil)

// NewStore creates an upload store rooted at dir, creating the directory
// if it does not exist.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &Store{
		dir:    dir,
		logger: slog.Default().With("component", "dirupload"),
	}, nil
}

// Save writes data under the given filename and returns the stored path.
// Path components in filename are stripped so uploads cannot escape the
// store's directory.
func (s *Store) Save(filename string, data []byte) (string, error) {
	base := filepath.Base(filename)
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "", storage.ErrEmptyFilename
	}

	path := filepath.Join(s.dir, base)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}

	s.logger.Debug("saved upload", "path", path, "bytes", len(data))
	return path, nil
}
