package render

import (
	"image/color"

	"github.com/openhydro/watermap-cli/internal/domain"
)

// Class colours follow the viridis anchors the original map used for
// codes 0 through 3. Unknown codes render grey so they stand out against
// the ramp.
var classColors = map[domain.WaterClass]color.NRGBA{
	domain.ClassNoWater:          {R: 0x44, G: 0x01, B: 0x54, A: 0xFF},
	domain.ClassOccasionalWater:  {R: 0x31, G: 0x68, B: 0x8E, A: 0xFF},
	domain.ClassSeasonalWater:    {R: 0x35, G: 0xB7, B: 0x79, A: 0xFF},
	domain.ClassPermanentWater:   {R: 0xFD, G: 0xE7, B: 0x25, A: 0xFF},
	domain.ClassUnknown:          {R: 0xBB, G: 0xBB, B: 0xBB, A: 0xFF},
}

// ClassColor returns the display colour for a class.
func ClassColor(c domain.WaterClass) color.NRGBA {
	if col, ok := classColors[c]; ok {
		return col
	}
	return classColors[domain.ClassUnknown]
}
