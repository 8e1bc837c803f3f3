package config

import "sort"

// Pattern is a named starting shape. Rows are read top (north) to bottom
// (south); 'O' marks a live cell.
type Pattern struct {
	Name        string
	Description string
	Rows        []string
}

// Cells returns the live cells as (row, column) offsets from the top left.
func (p *Pattern) Cells() [][2]int {
	var cells [][2]int
	for r, row := range p.Rows {
		for c, ch := range row {
			if ch == 'O' {
				cells = append(cells, [2]int{r, c})
			}
		}
	}
	return cells
}

var Patterns = map[string]*Pattern{
	"block": {
		Name: "block", Description: "still life",
		Rows: []string{"OO", "OO"},
	},
	"beehive": {
		Name: "beehive", Description: "still life",
		Rows: []string{".OO.", "O..O", ".OO."},
	},
	"loaf": {
		Name: "loaf", Description: "still life",
		Rows: []string{".OO.", "O..O", ".O.O", "..O."},
	},
	"blinker": {
		Name: "blinker", Description: "period 2 oscillator",
		Rows: []string{"OOO"},
	},
	"toad": {
		Name: "toad", Description: "period 2 oscillator",
		Rows: []string{".OOO", "OOO."},
	},
	"beacon": {
		Name: "beacon", Description: "period 2 oscillator",
		Rows: []string{"OO..", "OO..", "..OO", "..OO"},
	},
	"glider": {
		Name: "glider", Description: "spaceship heading south east",
		Rows: []string{".O.", "..O", "OOO"},
	},
	"lwss": {
		Name: "lwss", Description: "lightweight spaceship heading west",
		Rows: []string{".O..O", "O....", "O...O", "OOOO."},
	},
	"rpentomino": {
		Name: "rpentomino", Description: "methuselah, settles after 1103 generations",
		Rows: []string{".OO", "OO.", ".O."},
	},
}

func GetPattern(name string) *Pattern {
	p, ok := Patterns[name]
	if !ok {
		return nil
	}
	return p
}

func ListPatterns() []string {
	names := make([]string, 0, len(Patterns))
	for name := range Patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
