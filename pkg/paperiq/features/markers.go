package features

import "github.com/cognicore/paperiq/pkg/paperiq/segment"

var (
	causalMarkers = map[string]struct{}{
		"because":      {},
		"therefore":    {},
		"thus":         {},
		"hence":        {},
		"consequently": {},
		"so":           {},
	}
	modalHedges = map[string]struct{}{
		"may":    {},
		"might":  {},
		"could":  {},
		"should": {},
		"would":  {},
	}
)

// CausalMarkers returns the causal connectives counted as explicit reasoning.
func CausalMarkers() []string {
	return []string{"because", "therefore", "thus", "hence", "consequently", "so"}
}

// ModalHedges returns the modal verbs counted as hedging.
func ModalHedges() []string {
	return []string{"may", "might", "could", "should", "would"}
}

// HasCausalMarker reports whether sentence contains a causal connective as a
// whole word, ignoring case.
func HasCausalMarker(sentence string) bool {
	for _, term := range segment.Terms(sentence) {
		if _, ok := causalMarkers[term]; ok {
			return true
		}
	}
	return false
}

// IsModalHedge reports whether a lower-cased word token is a modal hedge.
func IsModalHedge(word string) bool {
	_, ok := modalHedges[word]
	return ok
}
