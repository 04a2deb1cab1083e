package capture

// Heuristics tunes structured reconstruction. Ratios are fractions of the
// current screen size so the same settings work across resolutions.
type Heuristics struct {
	// SelfThresholdRatio splits the screen horizontally: text whose left
	// edge lies beyond SelfThresholdRatio*width is self-authored.
	SelfThresholdRatio float64
	// BandTopRatio and BandBottomRatio restrict observations to a
	// vertical band of the screen. 0 and 1 disable the filter.
	BandTopRatio    float64
	BandBottomRatio float64

	SelfLabel         string // Sender for self-authored messages
	PeerPlaceholder   string // Private-chat peer when the title bar is missing
	MemberPlaceholder string // Group-chat sender when no label has been seen

	// Structured enables reconstruction for recognised apps. When false
	// every app goes through the generic collector.
	Structured bool
}

// DefaultHeuristics returns the settings used when none are configured.
func DefaultHeuristics() Heuristics {
	return Heuristics{
		SelfThresholdRatio: 1.0 / 7.0,
		BandTopRatio:       0,
		BandBottomRatio:    1,
		SelfLabel:          "me",
		PeerPlaceholder:    "peer",
		MemberPlaceholder:  "member",
		Structured:         true,
	}
}
