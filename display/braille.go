package display

import (
	"strings"

	"github.com/sheikhrachel/oled-gol/model"
)

// Braille patterns pack 2x4 dots per rune:
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
const brailleBlank = 0x2800

var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const (
	brailleCols = model.Width / 2
	brailleRows = model.Height / 4
)

// renderBraille draws the framebuffer as brailleRows lines of brailleCols runes
func renderBraille(fb *model.Framebuffer) string {
	var b strings.Builder
	b.Grow(brailleRows * (brailleCols*3 + 1))

	for row := range brailleRows {
		for col := range brailleCols {
			r := rune(brailleBlank)
			for subY := range 4 {
				for subX := range 2 {
					if fb.Get(col*2+subX, row*4+subY) {
						r |= pixelMap[subY][subX]
					}
				}
			}
			b.WriteRune(r)
		}
		if row < brailleRows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
