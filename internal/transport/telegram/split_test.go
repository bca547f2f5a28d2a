package telegram

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitMessage_ShortTextIsSingleChunk(t *testing.T) {
	text := "hello\nworld"
	chunks := SplitMessage(text, 4000)
	require.Len(t, chunks, 1)
	assert.Equal(t, text, chunks[0])
}

func TestSplitMessage_ExactlyAtLimit(t *testing.T) {
	text := strings.Repeat("a", 4000)
	chunks := SplitMessage(text, 4000)
	require.Len(t, chunks, 1)
	assert.Equal(t, text, chunks[0])
}

func TestSplitMessage_EmptyTextSendsNothing(t *testing.T) {
	assert.Empty(t, SplitMessage("", 4000))
}

func TestSplitMessage_HardCutWithoutNewlines(t *testing.T) {
	// 8500 chars, no newlines: three chunks of 4000, 4000, 500.
	text := strings.Repeat("x", 8500)
	chunks := SplitMessage(text, 4000)

	require.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 4000)
	assert.Len(t, chunks[1], 4000)
	assert.Len(t, chunks[2], 500)
	assert.Equal(t, text, strings.Join(chunks, ""))
}

func TestSplitMessage_PrefersNewlineBoundary(t *testing.T) {
	line := strings.Repeat("a", 30)
	text := ""
	for i := 0; i < 10; i++ {
		text += line + "\n"
	}
	text = strings.TrimRight(text, "\n") // 309 chars, newline every 31

	chunks := SplitMessage(text, 100)
	for i, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 100)
		assert.False(t, strings.HasPrefix(chunk, "\n"), "chunk %d starts with newline", i)
		assert.False(t, strings.HasSuffix(chunk, "\n"), "chunk %d ends with newline", i)
	}
	// Only newlines were consumed at the cuts.
	assert.Equal(t, strings.ReplaceAll(text, "\n", ""), strings.Join(chunks, ""))
}

func TestSplitMessage_LosslessWithSeparatorsReinserted(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		limit int
	}{
		{name: "newline heavy", text: strings.Repeat("line one\nline two\n\nline three\n", 50), limit: 80},
		{name: "no newlines", text: strings.Repeat("abcdefghij", 100), limit: 64},
		{name: "mixed", text: strings.Repeat("paragraph\n", 7) + strings.Repeat("z", 300) + "\ntail", limit: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := SplitMessage(tt.text, tt.limit)

			for _, chunk := range chunks {
				require.LessOrEqual(t, len(chunk), tt.limit)
				require.NotEmpty(t, chunk)
			}

			// Replaying the split against the original must line up chunk
			// by chunk: every divergence is a run of consumed newlines.
			rest := tt.text
			for _, chunk := range chunks {
				rest = strings.TrimLeft(rest, "\n")
				require.True(t, strings.HasPrefix(rest, chunk), "chunk %q does not align with remaining text", chunk)
				rest = rest[len(chunk):]
			}
			assert.Empty(t, strings.TrimLeft(rest, "\n"))
		})
	}
}
