package layout

import (
	"strconv"

	"github.com/rapidmidiex/rmxpiano/rmxerr"
)

// Dimensions is the outer size of the keyboard. Without a fixed width the keyboard fills
// its container and both sides are relative.
type Dimensions struct {
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Fixed  bool    `json:"fixed"`
}

// ValidateWidth rejects widths that have no CSS length, NaN and the infinities.
func ValidateWidth(width float64) error {
	if !finite(width) {
		return rmxerr.New(rmxerr.InvalidConfig, "width %v is not a finite number", width)
	}
	return nil
}

// Dimensions resolves the height for a fixed pixel width. A width of zero or less
// means the keyboard is responsive, and so does one rejected by ValidateWidth.
func (k *Keyboard) Dimensions(width float64) Dimensions {
	if width <= 0 || !finite(width) {
		return Dimensions{}
	}
	return Dimensions{
		Width:  width,
		Height: width * k.unit / k.cfg.KeyWidthToHeightRatio,
		Fixed:  true,
	}
}

// CSS returns the width and height as CSS lengths.
func (d Dimensions) CSS() (width, height string) {
	if !d.Fixed {
		return "100%", "100%"
	}
	return px(d.Width), px(d.Height)
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}
