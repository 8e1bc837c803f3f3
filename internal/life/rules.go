package life

// Conway applies the B3/S23 rule: a live cell survives with 2 or 3 live
// neighbours, a dead cell is born with exactly 3.
func Conway(neighbors int, alive bool) bool {
	return (alive && neighbors == 2) || neighbors == 3
}
