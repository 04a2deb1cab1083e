package model

// Merge folds a batch captured after scrolling backward into the messages
// accumulated so far. batch holds older content than accumulated, so its
// tail may repeat the head of accumulated.
//
// The largest k for which the last k messages of batch equal the first k
// of accumulated is dropped from accumulated, and the result is
// batch ++ accumulated[k:]. Matching is exact. With no overlap the two are
// concatenated, batch first.
func Merge(accumulated, batch []ChatMessage) []ChatMessage {
	if len(accumulated) == 0 {
		return batch
	}
	if len(batch) == 0 {
		return accumulated
	}

	k := overlap(accumulated, batch)
	result := make([]ChatMessage, 0, len(batch)+len(accumulated)-k)
	result = append(result, batch...)
	result = append(result, accumulated[k:]...)
	return result
}

// overlap returns the largest k such that batch[len(batch)-k:] equals
// accumulated[:k] element-wise.
func overlap(accumulated, batch []ChatMessage) int {
	maxK := min(len(accumulated), len(batch))
	for k := maxK; k > 0; k-- {
		if equalRun(batch[len(batch)-k:], accumulated[:k]) {
			return k
		}
	}
	return 0
}

func equalRun(a, b []ChatMessage) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
