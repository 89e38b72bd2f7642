// Package match decides whether a progression path appears, in order, within
// a person's title history.
package match

// IsSubsequence reports whether every element of candidate occurs in full in
// the same relative order. Elements of full may be skipped; elements of
// candidate may not. An empty candidate always matches.
//
// The scan is greedy: consuming the earliest eligible occurrence never rules
// out a later match, so a single pass over full is enough.
func IsSubsequence[T comparable](full, candidate []T) bool {
	i := 0
	for _, v := range full {
		if i == len(candidate) {
			break
		}
		if v == candidate[i] {
			i++
		}
	}
	return i == len(candidate)
}
