// Package reply turns a finished transcript into a short list of candidate
// replies.
package reply

import (
	"context"
	"strings"
	"unicode/utf8"
)

// Option is one candidate reply with its style label.
type Option struct {
	Title string `yaml:"title" json:"title"`
	Text  string `yaml:"text" json:"text"`
}

// Provider produces reply options for a transcript.
type Provider interface {
	Suggest(ctx context.Context, transcript string, limit int) ([]Option, error)
}

// Titles used for options that carry no style label of their own.
const (
	TitleSuggestion = "Suggestion"
	TitleHint       = "Hint"
	TitleRaw        = "Reply"
)

// HintOption is returned when there is nothing to reply to.
var HintOption = Option{Title: TitleHint, Text: "Nothing to reply to yet: capture a conversation first."}

// ParseReplies splits a model response into options. A line opening with
// a bracketed label (【Safe】 or [Safe]) becomes an option with that title;
// other lines longer than two characters become suggestions. If nothing
// parses, the whole response is one option.
func ParseReplies(content string) []Option {
	var out []Option
	for _, line := range strings.Split(strings.TrimSpace(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if title, text, ok := splitLabel(line); ok {
			if text != "" {
				out = append(out, Option{Title: title, Text: text})
			}
			continue
		}
		if strings.HasPrefix(line, "【") || strings.HasPrefix(line, "[") {
			continue
		}
		if utf8.RuneCountInString(line) > 2 {
			out = append(out, Option{Title: TitleSuggestion, Text: line})
		}
	}
	if len(out) == 0 && strings.TrimSpace(content) != "" {
		return []Option{{Title: TitleRaw, Text: strings.TrimSpace(content)}}
	}
	return out
}

func splitLabel(line string) (title, text string, ok bool) {
	for _, br := range [][2]string{{"【", "】"}, {"[", "]"}} {
		if !strings.HasPrefix(line, br[0]) {
			continue
		}
		rest := line[len(br[0]):]
		end := strings.Index(rest, br[1])
		if end <= 0 {
			return "", "", false
		}
		title = strings.TrimSpace(rest[:end])
		if title == "" {
			return "", "", false
		}
		return title, strings.TrimSpace(rest[end+len(br[1]):]), true
	}
	return "", "", false
}

func limitOptions(opts []Option, limit int) []Option {
	if limit > 0 && len(opts) > limit {
		return opts[:limit]
	}
	return opts
}
