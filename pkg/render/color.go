package render

import (
	"fmt"
	"image/color"
)

// DefaultColor is used for bodies without a valid "#rrggbb" colour.
var DefaultColor = color.RGBA{200, 200, 255, 255}

// DefaultRadius is used for bodies without a radius.
const DefaultRadius = 5.0

// --- HEX colour parser ---
func ParseColor(hex string) color.RGBA {
	var r, g, b uint8
	if len(hex) == 7 && hex[0] == '#' {
		n, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b)
		if err == nil && n == 3 {
			return color.RGBA{r, g, b, 255}
		}
	}
	return DefaultColor
}
