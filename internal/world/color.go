package world

import "fmt"

// RGB is a cell color.
type RGB struct {
	R, G, B uint8
}

func (c RGB) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// The named palette. White is the unpainted default.
var namedColors = map[string]RGB{
	"red":    {255, 0, 0},
	"green":  {0, 255, 0},
	"blue":   {0, 0, 255},
	"yellow": {255, 255, 0},
	"cyan":   {0, 255, 255},
	"orange": {255, 165, 0},
	"white":  {255, 255, 255},
	"black":  {0, 0, 0},
	"gray":   {204, 204, 204},
	"purple": {155, 48, 255},
}

// ParseColor accepts a palette name, "#rgb" or "#rrggbb".
func ParseColor(s string) (RGB, error) {
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	var c RGB
	switch len(s) {
	case 4:
		var r, g, b uint8
		if _, err := fmt.Sscanf(s, "#%1x%1x%1x", &r, &g, &b); err == nil {
			return RGB{r * 17, g * 17, b * 17}, nil
		}
	case 7:
		if _, err := fmt.Sscanf(s, "#%2x%2x%2x", &c.R, &c.G, &c.B); err == nil {
			return c, nil
		}
	}
	return RGB{}, fmt.Errorf("unknown color %q", s)
}

// White is the color of an unpainted cell.
var White = RGB{255, 255, 255}
