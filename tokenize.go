package harness

import (
	"fmt"
	"strings"
	"unicode"
)

// Mode selects the colorization granularity.
type Mode int

const (
	// ModeLine treats an entire line as one token.
	ModeLine Mode = iota
	// ModeWord colors whitespace-delimited words independently.
	ModeWord
)

func (m Mode) String() string {
	if m == ModeWord {
		return "word"
	}
	return "line"
}

// ParseMode maps a -m/--mode flag value to a Mode.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "line":
		return ModeLine, nil
	case "word":
		return ModeWord, nil
	}
	return 0, fmt.Errorf("invalid mode %q (use one of: line, word)", name)
}

// Token is a unit of text considered for color matching, together with the
// whitespace run that follows it. Concatenating Content+Delim over a line's
// tokens reproduces the line byte-for-byte.
type Token struct {
	Content string
	Delim   string
}

// Tokenize splits a line (terminator already stripped) into tokens according
// to mode. It holds no state; word splitting never spans lines.
func Tokenize(line string, mode Mode) []Token {
	if mode == ModeLine {
		return []Token{{Content: line}}
	}
	return splitWords(line)
}

// splitWords alternates non-whitespace runs with the whitespace run that
// follows each. Leading whitespace becomes an empty-content token so nothing
// is dropped.
func splitWords(line string) []Token {
	var tokens []Token
	rest := line
	for rest != "" {
		end := strings.IndexFunc(rest, unicode.IsSpace)
		if end == -1 {
			tokens = append(tokens, Token{Content: rest})
			break
		}
		content := rest[:end]
		rest = rest[end:]
		ws := strings.IndexFunc(rest, func(r rune) bool { return !unicode.IsSpace(r) })
		if ws == -1 {
			tokens = append(tokens, Token{Content: content, Delim: rest})
			break
		}
		tokens = append(tokens, Token{Content: content, Delim: rest[:ws]})
		rest = rest[ws:]
	}
	return tokens
}
