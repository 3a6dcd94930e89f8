package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/variantlab/genechat/core"
)

func TestSessionRoundTrip(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	tests := []struct {
		name    string
		session core.Session
	}{
		{
			name: "default session",
			session: core.Session{
				Id:        1,
				Title:     core.DefaultTitle,
				Kind:      core.KindGeneral,
				CreatedAt: now,
				UpdatedAt: now,
			},
		},
		{
			name: "named file analysis session",
			session: core.Session{
				Id:        core.IDFromContent("upload.vcf"),
				Title:     "BRCA1 Variant Review",
				Kind:      core.KindFileAnalysis,
				CreatedAt: now.Add(-time.Hour),
				UpdatedAt: now,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalSession(&tt.session)
			decoded, err := UnmarshalSession(data)
			require.NoError(t, err)

			assert.Equal(t, tt.session.Id, decoded.Id)
			assert.Equal(t, tt.session.Title, decoded.Title)
			assert.Equal(t, tt.session.Kind, decoded.Kind)
			assert.True(t, tt.session.CreatedAt.Equal(decoded.CreatedAt))
			assert.True(t, tt.session.UpdatedAt.Equal(decoded.UpdatedAt))
		})
	}
}

func TestMessageRoundTrip(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	message := core.Message{
		Id:        42,
		SessionId: 7,
		Role:      core.RoleAssistant,
		Contents:  "The variant is likely benign.\n\nWith a second paragraph.",
		CreatedAt: now,
	}

	data := MarshalMessage(&message)
	decoded, err := UnmarshalMessage(data)
	require.NoError(t, err)

	assert.Equal(t, message.Id, decoded.Id)
	assert.Equal(t, message.SessionId, decoded.SessionId)
	assert.Equal(t, message.Role, decoded.Role)
	assert.Equal(t, message.Contents, decoded.Contents)
	assert.True(t, message.CreatedAt.Equal(decoded.CreatedAt))
}

func TestUnmarshalMessage_Truncated(t *testing.T) {
	message := core.Message{
		Id:        1,
		SessionId: 1,
		Role:      core.RoleUser,
		Contents:  "hello",
		CreatedAt: time.Now().UTC(),
	}

	data := MarshalMessage(&message)
	_, err := UnmarshalMessage(data[:len(data)/2])
	require.Error(t, err)
}

func TestIDRoundTrip(t *testing.T) {
	for _, id := range []core.ID{0, 1, 255, 1 << 40, core.IDFromContent("x")} {
		data := MarshalID(id)
		decoded, err := UnmarshalID(data)
		require.NoError(t, err)
		assert.Equal(t, id, decoded)
	}
}
