package server

import (
	"encoding/json"
	"fmt"

	"github.com/mj1618/chatscribe/internal/model"
)

func stringParam(params map[string]interface{}, key, defaultVal string) string {
	if v, ok := params[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprintf("%v", v)
	}
	return defaultVal
}

func intParam(params map[string]interface{}, key string, defaultVal int) int {
	if v, ok := params[key]; ok {
		switch n := v.(type) {
		case int:
			return n
		case float64:
			return int(n)
		case int64:
			return int(n)
		}
	}
	return defaultVal
}

// messagesParam reads a message list given either as a JSON array value or
// as a string holding one. A missing key is an empty list.
func messagesParam(params map[string]interface{}, key string) ([]model.ChatMessage, error) {
	v, ok := params[key]
	if !ok || v == nil {
		return nil, nil
	}
	var data []byte
	if s, ok := v.(string); ok {
		if s == "" {
			return nil, nil
		}
		data = []byte(s)
	} else {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		data = b
	}
	var msgs []model.ChatMessage
	if err := json.Unmarshal(data, &msgs); err != nil {
		return nil, fmt.Errorf("%s must be an array of {sender, content, self} objects: %w", key, err)
	}
	return msgs, nil
}
