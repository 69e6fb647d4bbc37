package draw

// ANSI SGR sequences.
const (
	ColorReset       = "\033[0m"
	ColorBold        = "\033[1m"
	ColorDim         = "\033[2m"
	ColorRed         = "\033[31m"
	ColorYellow      = "\033[33m"
	ColorBrightCyan  = "\033[96m"
	ColorBrightWhite = "\033[97m"
)

// Pen is the color a canvas pixel is drawn with.
type Pen uint8

const (
	PenNone Pen = iota // Unset pixel
	PenWhite
	PenCyan
	PenYellow
	PenRed
	PenDim
)

// Code returns the escape sequence that selects the pen's color. Each code
// starts with a reset so attributes never accumulate between pens.
func (p Pen) Code() string {
	switch p {
	case PenCyan:
		return "\033[0;96m"
	case PenYellow:
		return "\033[0;33m"
	case PenRed:
		return "\033[0;31m"
	case PenDim:
		return "\033[0;2m"
	default:
		return ColorReset
	}
}
