package telegram

import "strings"

// MaxMessageLen is the per-message ceiling we send to Telegram, with a
// safety margin below the API's 4096-character limit.
const MaxMessageLen = 4000

// SplitMessage splits text into ordered chunks no longer than limit.
// Each cut lands on the last newline at or before the limit; when a
// window has no newline the cut is hard, mid-word, so progress is always
// guaranteed. The newline consumed at each cut and any further leading
// newlines of the remainder are the only characters dropped; rejoining
// the chunks with those separators reproduces the input exactly. Text
// already within the limit comes back as a single chunk.
func SplitMessage(text string, limit int) []string {
	if text == "" {
		return nil
	}
	if len(text) <= limit {
		return []string{text}
	}

	var chunks []string
	for len(text) > limit {
		cut := strings.LastIndexByte(text[:limit], '\n')
		if cut == -1 {
			cut = limit
		}
		if chunk := text[:cut]; chunk != "" {
			chunks = append(chunks, chunk)
		}
		text = strings.TrimLeft(text[cut:], "\n")
	}
	if text != "" {
		chunks = append(chunks, text)
	}
	return chunks
}
