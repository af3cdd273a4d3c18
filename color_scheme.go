package editline

import (
	"fmt"
	"strings"
)

// ColorScheme defines the colors used when drawing the prompt and the
// completion candidate table. The line itself is always drawn uncolored so
// that characters appended without a redraw look the same as redrawn ones.
type ColorScheme struct {
	Name   string `json:"name"`
	Prompt Color  `json:"prompt"`
	Match  Color  `json:"match"` // Completion candidates
}

// Color represents an RGB color with optional formatting.
type Color struct {
	R    uint8 `json:"r"`
	G    uint8 `json:"g"`
	B    uint8 `json:"b"`
	Bold bool  `json:"bold"`
}

// ThemeDefault has a green prompt and gray candidates
var ThemeDefault = &ColorScheme{
	Name:   "default",
	Prompt: Color{R: 0, G: 255, B: 0, Bold: true},
	Match:  Color{R: 200, G: 200, B: 200},
}

// ThemeDark has a light blue prompt and purple candidates
var ThemeDark = &ColorScheme{
	Name:   "Dark",
	Prompt: Color{R: 102, G: 217, B: 239, Bold: true},
	Match:  Color{R: 189, G: 147, B: 249},
}

// ThemeSolarizedDark is the Solarized Dark color scheme
var ThemeSolarizedDark = &ColorScheme{
	Name:   "Solarized Dark",
	Prompt: Color{R: 133, G: 153, B: 0, Bold: true},
	Match:  Color{R: 131, G: 148, B: 150},
}

// ThemeAccessible is a colorblind-safe theme with high contrast
var ThemeAccessible = &ColorScheme{
	Name:   "Accessible",
	Prompt: Color{R: 0, G: 114, B: 178, Bold: true},
	Match:  Color{R: 255, G: 255, B: 255},
}

// ThemeDracula is the Dracula color scheme
var ThemeDracula = &ColorScheme{
	Name:   "Dracula",
	Prompt: Color{R: 255, G: 121, B: 198, Bold: true},
	Match:  Color{R: 139, G: 233, B: 253},
}

// ToANSI converts a Color to an ANSI escape sequence.
func (c Color) ToANSI() string {
	var codes []string

	// Bold formatting comes first
	if c.Bold {
		codes = append(codes, "1")
	}

	// RGB color (true color support)
	codes = append(codes, fmt.Sprintf("38;2;%d;%d;%d", c.R, c.G, c.B))

	return fmt.Sprintf("\x1b[%sm", strings.Join(codes, ";"))
}

// Reset returns the ANSI reset sequence.
func Reset() string {
	return "\x1b[0m"
}
