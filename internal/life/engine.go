package life

import "github.com/san-kum/geolife/internal/geohash"

// Step returns the generation after live. Only live cells and their
// neighbours can change, so those are the only candidates evaluated.
// Every cell is scored over all 8 slots of its NeighborSet, so in the
// polar rows the cell itself and the repeated NE/E (or SE/E) entries
// are counted as they appear.
//
// Entries of live that are not valid geohashes are dropped.
func Step(live LiveSet) LiveSet {
	// candidate -> live neighbour count, discarded on return
	counts := make(map[string]int, len(live)*9)
	for h := range live {
		ns, err := geohash.Neighbors(h)
		if err != nil {
			continue
		}
		counts[h] = 0
		for _, n := range ns {
			counts[n] = 0
		}
	}

	next := make(LiveSet, len(live))
	for c := range counts {
		ns, err := geohash.Neighbors(c)
		if err != nil {
			continue
		}
		n := CountLive(live, ns[:])
		counts[c] = n
		if Conway(n, live.Contains(c)) {
			next.Add(c)
		}
	}
	return next
}

// CountLive counts how many of hashes are in live. Repeated entries count
// once per occurrence.
func CountLive(live LiveSet, hashes []string) int {
	n := 0
	for _, h := range hashes {
		if live.Contains(h) {
			n++
		}
	}
	return n
}
