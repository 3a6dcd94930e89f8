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

package chat

import "errors"

var (
	// ErrNoInput indicates that neither a text message nor a file upload
	// was provided.
	ErrNoInput = errors.New("either a message or a VCF file must be provided")

	// ErrSessionNotFound indicates the target session does not exist.
	ErrSessionNotFound = errors.New("session not found")

	// ErrFileProcessing indicates the uploaded file could not be parsed
	// or enriched.
	ErrFileProcessing = errors.New("error processing VCF file")

	// ErrGenerationFailed indicates the assistant reply could not be
	// produced. The user's message is still committed to the log.
	ErrGenerationFailed = errors.New("reply generation failed")
)
