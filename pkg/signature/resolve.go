package signature

import (
	schemaerr "schemacore/pkg/error"
)

// Resolve picks the candidate actual binds to with the fewest widenings.
// Ties go to the earliest candidate. It returns the candidate's index.
func Resolve(actual *Signature, candidates []*Signature) (int, error) {
	best, bestWidenings := -1, 0
	for i, candidate := range candidates {
		if !actual.Is(candidate) {
			continue
		}
		w := actual.widenings(candidate)
		if best < 0 || w < bestWidenings {
			best, bestWidenings = i, w
		}
		if w == 0 {
			break
		}
	}
	if best < 0 {
		return -1, schemaerr.SignatureNotResolved("", actual.String()).In("Resolve", "Signature")
	}
	return best, nil
}
