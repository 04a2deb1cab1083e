package capture

import (
	"log/slog"

	"github.com/mj1618/chatscribe/internal/model"
)

// Screen is the display size the heuristics measure against.
type Screen struct {
	Width  int
	Height int
}

// Reconstruct rebuilds sender-attributed messages from the tree under root
// using the layout described by p.
func Reconstruct(root model.Node, p Profile, screen Screen, h Heuristics, logger *slog.Logger) []model.ChatMessage {
	return ReconstructObservations(model.Extract(root, logger), p, screen, h)
}

// ReconstructObservations rebuilds messages from already extracted
// observations. Observations are read top to bottom; identifiers other than
// the profile's sender label and content are ignored.
func ReconstructObservations(obs []model.TextObservation, p Profile, screen Screen, h Heuristics) []model.ChatMessage {
	sorted := model.SortByY(obs)

	// Chat kind and peer name come from the whole screen; the band only
	// limits which messages are read.
	isGroup := model.HasIdentifier(sorted, p.SenderLabelID)
	peer := h.PeerPlaceholder
	if !isGroup {
		if title, ok := model.FindByIdentifier(sorted, p.TitleID); ok {
			peer = title.Text
		}
	}

	isSelf := selfSide(screen.Width, h.SelfThresholdRatio)

	var (
		messages   []model.ChatMessage
		lastSender string
	)
	for _, o := range model.FilterBand(sorted, screen.Height, h.BandTopRatio, h.BandBottomRatio) {
		if o.Identifier == "" {
			continue
		}
		switch o.Identifier {
		case p.SenderLabelID:
			lastSender = o.Text
		case p.ContentID:
			m := model.ChatMessage{Content: o.Text}
			switch {
			case isSelf(o.X):
				m.Sender = h.SelfLabel
				m.IsFromSelf = true
			case !isGroup:
				m.Sender = peer
			case lastSender != "":
				// Consecutive bubbles from one member share a single label.
				m.Sender = lastSender
			default:
				m.Sender = h.MemberPlaceholder
			}
			messages = append(messages, m)
		}
	}
	return messages
}

// selfSide returns a predicate telling whether a left edge at x lies on
// the self-authored (trailing) side. An unknown width disables detection.
func selfSide(width int, ratio float64) func(x int) bool {
	threshold, ok := SelfThreshold(width, ratio)
	if !ok {
		return func(int) bool { return false }
	}
	return func(x int) bool { return float64(x) > threshold }
}

// SelfThreshold is the x position beyond which text counts as
// self-authored. ok is false when the width is unknown.
func SelfThreshold(width int, ratio float64) (threshold float64, ok bool) {
	if width <= 0 {
		return 0, false
	}
	return ratio * float64(width), true
}
