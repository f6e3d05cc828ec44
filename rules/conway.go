package rules

/*
ApplyConwayRules returns the state of a cell in the next generation.

A live cell survives with two or three live neighbors, a dead cell is born with exactly three,
every other cell is dead.
*/
func ApplyConwayRules(neighbors int, alive bool) bool {
	return (alive && neighbors == 2) || neighbors == 3
}

// Flips reports whether the cell changes state in the next generation
func Flips(neighbors int, alive bool) bool {
	return ApplyConwayRules(neighbors, alive) != alive
}
