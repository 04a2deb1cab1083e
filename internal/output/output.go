package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mj1618/chatscribe/internal/model"
	"github.com/mj1618/chatscribe/internal/reply"
	"gopkg.in/yaml.v3"
)

// Format represents the output format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// OutputFormat is the current output format, set by the root command's --format flag.
var OutputFormat Format = FormatYAML

// PrettyOutput enables pretty-printing for JSON output.
var PrettyOutput bool

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatYAML:
		return FormatYAML, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported output format: %q (expected yaml or json)", s)
	}
}

// CaptureResult is the output of the `collect` command.
type CaptureResult struct {
	TS    int64 `yaml:"ts"              json:"ts"`
	Frame int   `yaml:"frame,omitempty" json:"frame,omitempty"`

	model.CollectionResult `yaml:",inline"`
}

// MergeResult is the output of the `merge` command.
type MergeResult struct {
	Added      int                 `yaml:"added"      json:"added"`
	Messages   []model.ChatMessage `yaml:"messages"   json:"messages"`
	Transcript string              `yaml:"transcript" json:"transcript"`
}

// GestureResult is the output of the `hold` command.
type GestureResult struct {
	Gesture     string                  `yaml:"gesture"                json:"gesture"`
	Iterations  int                     `yaml:"iterations,omitempty"   json:"iterations,omitempty"`
	Stopped     string                  `yaml:"stopped,omitempty"      json:"stopped,omitempty"`
	Offset      *[2]float64             `yaml:"offset,omitempty,flow"  json:"offset,omitempty"`
	Result      *model.CollectionResult `yaml:"result,omitempty"       json:"result,omitempty"`
	Suggestions []reply.Option          `yaml:"suggestions,omitempty"  json:"suggestions,omitempty"`
}

// SuggestResult is the output of the `suggest` command.
type SuggestResult struct {
	Transcript string         `yaml:"transcript" json:"transcript"`
	Options    []reply.Option `yaml:"options"    json:"options"`
}

// Print serializes v to stdout in the current output format.
func Print(v interface{}) error {
	return Fprint(os.Stdout, v)
}

// Fprint serializes v to w in the current output format.
func Fprint(w io.Writer, v interface{}) error {
	switch OutputFormat {
	case FormatJSON:
		return WriteJSON(w, v, PrettyOutput)
	case FormatYAML:
		return WriteYAML(w, v)
	default:
		return fmt.Errorf("unsupported output format: %s", OutputFormat)
	}
}

// WriteJSON serializes v as single-line JSON, or indented when pretty.
func WriteJSON(w io.Writer, v interface{}, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// WriteYAML serializes v as YAML.
func WriteYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}

// YAMLString renders v as YAML text.
func YAMLString(v interface{}) (string, error) {
	var b strings.Builder
	if err := WriteYAML(&b, v); err != nil {
		return "", err
	}
	return b.String(), nil
}
