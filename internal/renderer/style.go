package renderer

// Attribute is a set of text attributes for overlay lines.
type Attribute uint8

const (
	AttrBold Attribute = 1 << iota
	AttrReverse

	AttrNone Attribute = 0
)

// Has reports whether every attribute in attr is set.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr == attr
}

// Style colors one overlay line. Default colors leave the frontend's own.
type Style struct {
	Foreground Color
	Background Color
	Attributes Attribute
}

// Equals reports whether s and other draw the same.
func (s Style) Equals(other Style) bool {
	return s.Attributes == other.Attributes &&
		s.Foreground.Equals(other.Foreground) &&
		s.Background.Equals(other.Background)
}

// Infobar and help styles. The infobar style follows the mode: plain
// Normal, pending count, Error or Success.
var (
	StyleInfobar = Style{Foreground: ColorDefault, Background: ColorDefault, Attributes: AttrReverse}
	StylePending = Style{Foreground: ColorBlack, Background: ColorYellow, Attributes: AttrBold}
	StyleError   = Style{Foreground: ColorWhite, Background: ColorRed, Attributes: AttrBold}
	StyleSuccess = Style{Foreground: ColorBlack, Background: ColorGreen}
	StyleHelp    = Style{Foreground: ColorWhite, Background: ColorFromRGB(32, 32, 32)}
)
