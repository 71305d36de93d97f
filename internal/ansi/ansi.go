// Package ansi provides ANSI escape sequence constants and the foreground
// color name tables harness resolves configuration colors against. Only the
// data needed by harness is included here to avoid an external dep.
package ansi

// Control sequence building blocks.
const (
	ESC   = "\x1b"
	CSI   = ESC + "["
	Reset = CSI + "0m"
)

// SGR wraps the given parameter string in a CSI...m sequence.
func SGR(params string) string {
	return CSI + params + "m"
}

// Foreground4Bit maps the 16 basic color names to their SGR foreground
// attribute.
var Foreground4Bit = map[string]string{
	"black":          "30",
	"red":            "31",
	"green":          "32",
	"yellow":         "33",
	"blue":           "34",
	"magenta":        "35",
	"cyan":           "36",
	"white":          "37",
	"bright-black":   "90",
	"bright-red":     "91",
	"bright-green":   "92",
	"bright-yellow":  "93",
	"bright-blue":    "94",
	"bright-magenta": "95",
	"bright-cyan":    "96",
	"bright-white":   "97",
}

// Foreground8Bit maps the same names to their 256-color palette indices.
var Foreground8Bit = map[string]uint8{
	"black":          0,
	"red":            1,
	"green":          2,
	"yellow":         3,
	"blue":           4,
	"magenta":        5,
	"cyan":           6,
	"white":          7,
	"bright-black":   8,
	"bright-red":     9,
	"bright-green":   10,
	"bright-yellow":  11,
	"bright-blue":    12,
	"bright-magenta": 13,
	"bright-cyan":    14,
	"bright-white":   15,
}
