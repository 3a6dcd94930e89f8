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

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/variantlab/genechat/ai"
	"github.com/variantlab/genechat/annotate"
	"github.com/variantlab/genechat/core"
	"github.com/variantlab/genechat/storage"
	"github.com/variantlab/genechat/vcf"
)

// Upload carries the raw bytes of a user-provided VCF file.
type Upload struct {
	Filename string
	Data     []byte
}

// Response is the result of one conversation turn: the latest assistant
// output, the session's full transcript, and its current title.
type Response struct {
	SessionId  core.ID
	Response   string
	Transcript []*core.Message
	Title      string
}

// Controller merges text and file input into a session's message log.
// Callers must serialize turns on the same session; the controller does
// no per-session locking of its own.
type Controller struct {
	sessions  storage.SessionStore
	messages  storage.MessageLog
	uploads   storage.UploadStore
	annotator *annotate.Annotator
	generator ai.Generator
	logger    *slog.Logger
}

// NewController creates a conversation controller over its collaborators.
func NewController(
	sessions storage.SessionStore,
	messages storage.MessageLog,
	uploads storage.UploadStore,
	annotator *annotate.Annotator,
	generator ai.Generator,
) *Controller {
	return &Controller{
		sessions:  sessions,
		messages:  messages,
		uploads:   uploads,
		annotator: annotator,
		generator: generator,
		logger:    slog.Default().With("component", "chat"),
	}
}

// HandleInput runs one conversation turn against a session. Either text or
// upload (or both) must be present. When both are given the file branch runs
// and commits first, with the text passed to enrichment as a contextual
// note, then the text branch runs against the updated history.
func (c *Controller) HandleInput(ctx context.Context, sessionID core.ID, text string, upload *Upload) (*Response, error) {
	text = strings.TrimSpace(text)
	if text == "" && upload == nil {
		return nil, ErrNoInput
	}

	session, err := c.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %d", ErrSessionNotFound, sessionID)
	}

	var responseText, lastUserInput string

	if upload != nil {
		summary, err := c.handleUpload(ctx, sessionID, text, upload)
		if err != nil {
			return nil, err
		}
		responseText = summary
		lastUserInput = fmt.Sprintf("Uploaded VCF: %s", upload.Filename)
	}

	if text != "" {
		reply, err := c.handleText(ctx, sessionID, text)
		if err != nil {
			return nil, err
		}
		responseText = reply
		lastUserInput = text
	}

	title := c.maybeNameSession(ctx, session, lastUserInput, responseText)

	transcript, err := c.messages.ListMessages(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return &Response{
		SessionId:  sessionID,
		Response:   responseText,
		Transcript: transcript,
		Title:      title,
	}, nil
}

// handleUpload persists the file, extracts and enriches its variants, and
// commits the user/assistant message pair atomically. Returns the summary.
func (c *Controller) handleUpload(ctx context.Context, sessionID core.ID, note string, upload *Upload) (string, error) {
	// The stored name is keyed by content: re-uploading identical bytes lands
	// on the same path, while a changed file under a reused name never
	// clobbers the earlier copy.
	contentID := core.IDFromContent(string(upload.Data))
	storedName := fmt.Sprintf("%016x_%s", uint64(contentID), upload.Filename)
	path, err := c.uploads.Save(storedName, upload.Data)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFileProcessing, err)
	}
	c.logger.Debug("upload saved", "path", path, "content_id", contentID)

	variants, err := vcf.Extract(bytes.NewReader(upload.Data))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFileProcessing, err)
	}

	enriched, err := c.annotator.Annotate(ctx, variants, note)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFileProcessing, err)
	}

	summary := formatSummary(enriched)

	userContent := fmt.Sprintf("Uploaded VCF: %s", upload.Filename)
	if note != "" {
		userContent += fmt.Sprintf("\n\nUser note:\n%s", note)
	}

	// One transaction: the upload description and its summary land together
	// or not at all.
	_, err = c.messages.AppendMessages(ctx, sessionID,
		&core.Message{Role: core.RoleUser, Contents: userContent},
		&core.Message{Role: core.RoleAssistant, Contents: summary},
	)
	if err != nil {
		return "", err
	}

	return summary, nil
}

// handleText commits the user message, then generates a reply from the full
// history. The user message stays committed even when generation fails.
func (c *Controller) handleText(ctx context.Context, sessionID core.ID, text string) (string, error) {
	_, err := c.messages.AppendMessages(ctx, sessionID,
		&core.Message{Role: core.RoleUser, Contents: text})
	if err != nil {
		return "", err
	}

	history, err := c.messages.ListMessages(ctx, sessionID)
	if err != nil {
		return "", err
	}

	turns := make([]ai.Turn, len(history))
	for i, m := range history {
		turns[i] = ai.Turn{Role: m.Role.String(), Content: m.Contents}
	}

	reply, err := c.generator.Chat(ctx, turns)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}
	if reply == "" {
		reply = "(no reply generated)"
	}
	reply = frameReply(reply)

	_, err = c.messages.AppendMessages(ctx, sessionID,
		&core.Message{Role: core.RoleAssistant, Contents: reply})
	if err != nil {
		return "", err
	}

	return reply, nil
}

// maybeNameSession derives a title once per session: only while the title
// is still the default placeholder, only for real (non-greeting) input, and
// only when a reply was produced. Failures are logged, never surfaced.
// Returns the session's current title.
func (c *Controller) maybeNameSession(ctx context.Context, session *core.Session, lastUserInput, responseText string) string {
	if session.Title != core.DefaultTitle {
		return session.Title
	}
	if lastUserInput == "" || responseText == "" || isGreeting(lastUserInput) {
		return session.Title
	}

	generated, err := c.generator.Title(ctx, lastUserInput, responseText)
	if err != nil {
		c.logger.Warn("failed to auto-generate title", "session", session.Id, "error", err)
		return session.Title
	}

	title := cleanTitle(generated)
	if title == "" {
		c.logger.Warn("empty generated title, using fallback", "session", session.Id)
		title = core.FallbackTitle
	}

	updated, err := c.sessions.SetSessionTitle(ctx, session.Id, title)
	if err != nil {
		c.logger.Warn("failed to store generated title", "session", session.Id, "error", err)
		return session.Title
	}
	session.Title = updated.Title
	return updated.Title
}
