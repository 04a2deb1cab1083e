package model

import (
	"strings"
	"unicode/utf8"
)

const (
	// MaxContextRunes bounds every raw context and transcript.
	MaxContextRunes = 2000
	// MaxContextEntries bounds the lines kept from a single capture.
	MaxContextEntries = 50
)

// Labels names the participants when rendering messages as text.
type Labels struct {
	Self string // Label for self-authored messages
	Peer string // Fallback when a message has no sender
}

// FormatMessage renders a message as "[sender]: content".
func FormatMessage(m ChatMessage, labels Labels) string {
	sender := m.Sender
	if m.IsFromSelf {
		sender = labels.Self
	} else if sender == "" {
		sender = labels.Peer
	}
	return "[" + sender + "]: " + m.Content
}

// BuildContext renders messages as a transcript: one formatted line per
// message, blanks and repeated lines dropped, bounded to MaxContextRunes.
// A sender repeating the same text keeps only its first line, so the line
// count is not a message count.
func BuildContext(messages []ChatMessage, labels Labels) string {
	lines := make([]string, 0, len(messages))
	for _, m := range messages {
		lines = append(lines, FormatMessage(m, labels))
	}
	return BuildRawContext(lines, 0)
}

// BuildRawContext joins text entries with newlines after dropping blank
// entries and exact duplicates (first occurrence wins). When maxEntries is
// positive only the last maxEntries survivors are kept. The result is
// truncated to MaxContextRunes.
func BuildRawContext(entries []string, maxEntries int) string {
	cleaned := Distinct(entries)
	if maxEntries > 0 && len(cleaned) > maxEntries {
		cleaned = cleaned[len(cleaned)-maxEntries:]
	}
	return TruncateRunes(strings.Join(cleaned, "\n"), MaxContextRunes)
}

// Distinct drops blank strings and repeats, preserving first-seen order.
func Distinct(entries []string) []string {
	seen := make(map[string]bool, len(entries))
	result := make([]string, 0, len(entries))
	for _, e := range entries {
		if strings.TrimSpace(e) == "" || seen[e] {
			continue
		}
		seen[e] = true
		result = append(result, e)
	}
	return result
}

// TruncateRunes keeps at most n runes of s.
func TruncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
