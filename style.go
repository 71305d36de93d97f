package harness

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"pkt.systems/harness/internal/ansi"
)

// Style selects the ANSI palette configuration colors resolve against.
type Style int

const (
	// Style4Bit uses the basic 16-color SGR attributes.
	Style4Bit Style = iota
	// Style8Bit uses 256-color (38;5;n) sequences.
	Style8Bit
	// Style24Bit uses true-color (38;2;r;g;b) sequences; configuration
	// colors are R,G,B triples.
	Style24Bit
)

func (s Style) String() string {
	switch s {
	case Style4Bit:
		return "4bit"
	case Style8Bit:
		return "8bit"
	case Style24Bit:
		return "24bit"
	default:
		return "style(" + strconv.Itoa(int(s)) + ")"
	}
}

// ParseStyle maps a -s/--style flag value to a Style.
func ParseStyle(name string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "4bit":
		return Style4Bit, nil
	case "8bit":
		return Style8Bit, nil
	case "24bit":
		return Style24Bit, nil
	}
	return 0, fmt.Errorf("invalid style %q (use one of: 4bit, 8bit, 24bit)", name)
}

// ColorSpec pairs a configuration color value with its resolved escape
// sequence. It is resolved once at startup and read-only thereafter.
type ColorSpec struct {
	Name string
	Seq  string
}

// UnknownColorError reports a configuration color value that does not exist
// in the selected style's table. It is surfaced at configuration load,
// before any child output is produced.
type UnknownColorError struct {
	Name  string
	Style Style
}

func (e *UnknownColorError) Error() string {
	if e.Style == Style24Bit {
		return fmt.Sprintf("unknown color %q for style %s (expected R,G,B with each value 0-255)", e.Name, e.Style)
	}
	return fmt.Sprintf("unknown color %q for style %s (use one of: %s, or a numeric code)", e.Name, e.Style, strings.Join(ColorNames(), ", "))
}

// ColorNames returns the sorted list of named colors shared by the 4bit and
// 8bit styles.
func ColorNames() []string {
	names := make([]string, 0, len(ansi.Foreground4Bit))
	for name := range ansi.Foreground4Bit {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve looks up a configuration color value against the selected style and
// returns its escape sequence. The 4bit and 8bit styles accept the shared
// color names or a raw numeric code; the 24bit style accepts R,G,B triples.
func Resolve(name string, style Style) (ColorSpec, error) {
	value := strings.TrimSpace(name)
	switch style {
	case Style4Bit:
		if code, ok := ansi.Foreground4Bit[strings.ToLower(value)]; ok {
			return ColorSpec{Name: value, Seq: ansi.SGR(code)}, nil
		}
		if n, err := strconv.Atoi(value); err == nil && n >= 0 && n <= 107 {
			return ColorSpec{Name: value, Seq: ansi.SGR(strconv.Itoa(n))}, nil
		}
	case Style8Bit:
		if idx, ok := ansi.Foreground8Bit[strings.ToLower(value)]; ok {
			return ColorSpec{Name: value, Seq: ansi.SGR("38;5;" + strconv.Itoa(int(idx)))}, nil
		}
		if n, err := strconv.Atoi(value); err == nil && n >= 0 && n <= 255 {
			return ColorSpec{Name: value, Seq: ansi.SGR("38;5;" + strconv.Itoa(n))}, nil
		}
	case Style24Bit:
		if r, g, b, ok := parseRGB(value); ok {
			return ColorSpec{Name: value, Seq: ansi.SGR(fmt.Sprintf("38;2;%d;%d;%d", r, g, b))}, nil
		}
	}
	return ColorSpec{}, &UnknownColorError{Name: value, Style: style}
}

func parseRGB(value string) (r, g, b int, ok bool) {
	parts := strings.Split(value, ",")
	if len(parts) != 3 {
		return 0, 0, 0, false
	}
	var comps [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 || n > 255 {
			return 0, 0, 0, false
		}
		comps[i] = n
	}
	return comps[0], comps[1], comps[2], true
}

// errorColor is the default color stderr lines are painted with, matching
// the style in use.
func (s Style) errorColor() string {
	switch s {
	case Style4Bit:
		return "31"
	case Style24Bit:
		return "211,70,65"
	default:
		return "160"
	}
}
