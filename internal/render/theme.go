package render

// Theme holds the key-face colors. The work family sweeps a warm
// gradient, the break family a cool one.
type Theme struct {
	Background         string
	Text               string
	Track              string
	DotNeutral         string
	WorkGradientStart  string
	WorkGradientEnd    string
	BreakGradientStart string
	BreakGradientEnd   string
}

// DefaultTheme returns the stock key-face palette.
func DefaultTheme() Theme {
	return Theme{
		Background:         "#1A1D23",
		Text:               "#F4F4F5",
		Track:              "#3A3F4B",
		DotNeutral:         "#6B7280",
		WorkGradientStart:  "#FF6B6B",
		WorkGradientEnd:    "#FFA94D",
		BreakGradientStart: "#4ECDC4",
		BreakGradientEnd:   "#45B7D1",
	}
}
