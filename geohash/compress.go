package geohash

import (
	"fmt"
	"math"
	"slices"
)

// Compress reduces a cover to fewer, shorter codes. A code is replaced by
// its parent once at least 32*accuracy of the parent's children are
// present, and codes already covered by a shorter code in the set are
// dropped. Passes repeat until one leaves the set unchanged. With accuracy 1
// a parent is only used when all 32 children are present; lower values trade
// false inclusions for a smaller result.
//
// codes is not modified. Codes of any non-zero length are accepted.
func Compress(codes []string, accuracy float64) ([]string, error) {
	if math.IsNaN(accuracy) || accuracy <= 0 || accuracy > 1 {
		return nil, fmt.Errorf("%w: %v not in (0, 1]", ErrInvalidAccuracy, accuracy)
	}
	for _, c := range codes {
		if c == "" {
			return nil, fmt.Errorf("empty code: %w", ErrInvalidPrecision)
		}
		for i := 0; i < len(c); i++ {
			if _, err := symbolIndex(c[i]); err != nil {
				return nil, fmt.Errorf("code %q at %d: %w", c, i, err)
			}
		}
	}

	threshold := float64(len(alphabet)) * accuracy
	cur := append(make([]string, 0, len(codes)), codes...)
	for {
		next := compressPass(cur, threshold)
		if slices.Equal(next, cur) {
			return next, nil
		}
		cur = next
	}
}

// compressPass runs one merge pass over codes.
func compressPass(codes []string, threshold float64) []string {
	children := make(map[string]int, len(codes))
	present := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		present[c] = struct{}{}
		if len(c) >= 2 {
			children[c[:len(c)-1]]++
		}
	}

	out := newCodeSet(len(codes))
	for _, c := range codes {
		if hasProperPrefixIn(c, present) {
			continue
		}
		if len(c) < 2 {
			out.add(c)
			continue
		}
		parent := c[:len(c)-1]
		if float64(children[parent]) < threshold {
			out.add(c)
		} else {
			out.add(parent)
		}
	}
	return out.list
}

func hasProperPrefixIn(code string, set map[string]struct{}) bool {
	for n := 1; n < len(code); n++ {
		if _, ok := set[code[:n]]; ok {
			return true
		}
	}
	return false
}
