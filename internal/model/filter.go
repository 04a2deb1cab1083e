package model

import "sort"

// SortByY orders observations top to bottom. The sort is stable, so nodes
// on the same row keep their traversal order.
func SortByY(obs []TextObservation) []TextObservation {
	sorted := make([]TextObservation, len(obs))
	copy(sorted, obs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Y < sorted[j].Y
	})
	return sorted
}

// FilterBand keeps observations whose top edge lies within the vertical
// band [topRatio*screenHeight, bottomRatio*screenHeight). A full band
// (0, 1) or an unknown screen height returns the input unchanged.
func FilterBand(obs []TextObservation, screenHeight int, topRatio, bottomRatio float64) []TextObservation {
	if screenHeight <= 0 || (topRatio <= 0 && bottomRatio >= 1) {
		return obs
	}
	top := int(topRatio * float64(screenHeight))
	bottom := int(bottomRatio * float64(screenHeight))

	var result []TextObservation
	for _, o := range obs {
		if o.Y >= top && o.Y < bottom {
			result = append(result, o)
		}
	}
	return result
}

// HasIdentifier reports whether any observation carries the identifier.
func HasIdentifier(obs []TextObservation, id string) bool {
	if id == "" {
		return false
	}
	for _, o := range obs {
		if o.Identifier == id {
			return true
		}
	}
	return false
}

// FindByIdentifier returns the first observation with the identifier.
func FindByIdentifier(obs []TextObservation, id string) (TextObservation, bool) {
	if id == "" {
		return TextObservation{}, false
	}
	for _, o := range obs {
		if o.Identifier == id {
			return o, true
		}
	}
	return TextObservation{}, false
}
