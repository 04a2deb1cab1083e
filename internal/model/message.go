package model

// ChatMessage is one reconstructed chat line. Two messages are equal when
// sender, content and self flag all match; the struct is comparable with ==.
type ChatMessage struct {
	Sender     string `yaml:"sender,omitempty" json:"sender,omitempty"`
	Content    string `yaml:"content"          json:"content"`
	IsFromSelf bool   `yaml:"self,omitempty"   json:"self,omitempty"`
}

// DisplayLimit caps the messages shown for a single capture.
const DisplayLimit = 20

// CollectionResult is the outcome of one capture, or of a finalized
// continuous capture.
type CollectionResult struct {
	Messages   []ChatMessage `yaml:"messages"          json:"messages"`
	RawContext string        `yaml:"raw_context"       json:"raw_context"`
	App        string        `yaml:"app,omitempty"     json:"app,omitempty"`
	Session    string        `yaml:"session,omitempty" json:"session,omitempty"`
	DebugInfo  string        `yaml:"debug,omitempty"   json:"debug,omitempty"`
}

// ForDisplay returns a copy of the result keeping only the last
// DisplayLimit messages. The raw context is left untouched.
func (r CollectionResult) ForDisplay() CollectionResult {
	if len(r.Messages) > DisplayLimit {
		r.Messages = append([]ChatMessage(nil), r.Messages[len(r.Messages)-DisplayLimit:]...)
	}
	return r
}

// IsEmpty reports whether the result carries neither messages nor text.
func (r CollectionResult) IsEmpty() bool {
	return len(r.Messages) == 0 && r.RawContext == ""
}
