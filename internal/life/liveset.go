package life

import "sort"

// LiveSet is the set of live cells, keyed by geohash.
type LiveSet map[string]struct{}

func NewLiveSet(hashes ...string) LiveSet {
	s := make(LiveSet, len(hashes))
	for _, h := range hashes {
		s[h] = struct{}{}
	}
	return s
}

func (s LiveSet) Add(hash string)    { s[hash] = struct{}{} }
func (s LiveSet) Remove(hash string) { delete(s, hash) }
func (s LiveSet) Len() int           { return len(s) }

func (s LiveSet) Contains(hash string) bool {
	_, ok := s[hash]
	return ok
}

// Toggle flips membership of hash and reports whether it is now alive.
func (s LiveSet) Toggle(hash string) bool {
	if s.Contains(hash) {
		delete(s, hash)
		return false
	}
	s[hash] = struct{}{}
	return true
}

func (s LiveSet) Clone() LiveSet {
	c := make(LiveSet, len(s))
	for h := range s {
		c[h] = struct{}{}
	}
	return c
}

// Equal reports whether both sets hold exactly the same cells.
func (s LiveSet) Equal(other LiveSet) bool {
	if len(s) != len(other) {
		return false
	}
	for h := range s {
		if _, ok := other[h]; !ok {
			return false
		}
	}
	return true
}

// Sorted returns the cells in lexical order.
func (s LiveSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for h := range s {
		out = append(out, h)
	}
	sort.Strings(out)
	return out
}

// Diff counts cells that appear in next but not prev (born) and the
// reverse (died).
func Diff(prev, next LiveSet) (born, died int) {
	for h := range next {
		if !prev.Contains(h) {
			born++
		}
	}
	for h := range prev {
		if !next.Contains(h) {
			died++
		}
	}
	return born, died
}
